package models

// User is an operator account sourced from the Master sheet at login time.
// Accounts are not stored locally; the sheet row is the system of record
// and the issued JWT is the only session state.
type User struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role"`
}

// Roles carried in the Master sheet's role column. Admin passes every gate.
const (
	RoleAdmin      = "admin"
	RoleRequester  = "requester"
	RoleApprover   = "approver"
	RoleSupervisor = "supervisor"
	RoleInspector  = "inspector"
	RoleAccounts   = "accounts"
)
