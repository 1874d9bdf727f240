// Package schema is the single source of truth for the indent sheet layout.
// Every column offset used by the classifiers, mutation builders and the
// aggregator lives here; nothing else in the codebase hard-codes an offset.
package schema

// The indent sheet is positional: ~40 columns, no named headers consulted at
// runtime. Offsets are 0-based; the sheet itself is 1-based and carries two
// header rows, so the first data row is sheet row 3.
const (
	ColTimestamp    = 0 // creation timestamp, DD/MM/YYYY HH:MM:SS
	ColIndentNo     = 1
	ColMachineName  = 2
	ColDepartment   = 3
	ColProblem      = 4
	ColPriority     = 5
	ColExpectedDate = 6
	ColImageURL     = 7
	ColPlannedDate  = 8

	ColApprovalTimestamp = 9
	ColApprovalStatus    = 11 // "approved" / "rejected" / empty = pending
	ColApprovalRemarks   = 12
	ColApprovalPlanned   = 13

	ColAssignActual    = 14
	ColTechnicianName  = 16
	ColTechnicianPhone = 17
	ColAssignedDate    = 18
	ColWorkNotes       = 19
	ColAssignPlanned   = 20

	ColWorkActual       = 21
	ColCompletionStatus = 23 // "Completed" / "Terminate" / empty = in progress
	ColAdditionalNotes  = 24
	ColWorkPlanned      = 25

	ColInspectionActual = 26
	ColInspectedBy      = 28
	ColInspectionDate   = 29
	ColInspectionResult = 30 // "Done" clears the row for payment
	ColInspectionNotes  = 31
	ColInspectionPlan   = 32

	ColPaymentActual = 33
	ColBillNo        = 35
	ColAmount        = 36
	ColPaymentDate   = 37
	ColBillImageURL  = 38

	ColTAT = 39
)

// Per-stage write widths: a sparse update array is sized to the highest
// offset the stage writes, plus one. The remote handler treats empty strings
// as "do not modify", so width only bounds which columns a stage can touch.
const (
	WidthCreation   = 9
	WidthApproval   = 14
	WidthAssignment = 21
	WidthWork       = 26
	WidthInspection = 33
	WidthPayment    = 39
)

// FirstDataRow is the lowest sheet row an update may target. Rows 1 and 2
// are the header and sub-header.
const FirstDataRow = 3

// Approval status values stored in ColApprovalStatus.
const (
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Completion status values stored in ColCompletionStatus. Both terminal
// values move a row out of the work-tracking pending bucket.
const (
	CompletionDone       = "Completed"
	CompletionTerminated = "Terminate"
)

// InspectionPassed is the ColInspectionResult value that releases a row to
// the payment stage.
const InspectionPassed = "Done"

// Master sheet layout (login credentials).
const (
	MasterColUsername = 0
	MasterColPassword = 1
	MasterColName     = 2
	MasterColRole     = 3
)

// Row is one sheet row as flat display strings, indexed by column offset.
// Missing trailing cells read as empty.
type Row []string

// Get returns the cell at offset col, or "" when the row is too short.
func (r Row) Get(col int) string {
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// NewUpdate returns a sparse update array of the given width. Callers fill
// only the offsets their stage owns; everything else stays "" (untouched).
func NewUpdate(width int) []string {
	return make([]string, width)
}
