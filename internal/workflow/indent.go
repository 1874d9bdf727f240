package workflow

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/sbhworks/indentflow/internal/schema"
	"github.com/sbhworks/indentflow/internal/sheet"
)

// Indent is one maintenance request, denormalized across every stage's
// column group. Identity is (indent number, sheet row index); the row index
// is the authoritative handle for updates.
type Indent struct {
	ID       string `json:"id"`
	RowIndex int    `json:"rowIndex"`

	Timestamp    string `json:"timestamp"`
	IndentNo     string `json:"indentNo"`
	MachineName  string `json:"machineName"`
	Department   string `json:"department"`
	Problem      string `json:"problem"`
	Priority     string `json:"priority"`
	ExpectedDate string `json:"expectedDate,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
	TAT          string `json:"tat,omitempty"`

	ApprovalTimestamp string `json:"approvalTimestamp,omitempty"`
	ApprovalStatus    string `json:"approvalStatus,omitempty"`
	// StatusLabel renders the stored decision for history views
	// ("Approved", "Rejected", or "Processed" for a decided row whose
	// status cell was hand-cleared).
	StatusLabel     string `json:"statusLabel,omitempty"`
	ApprovalRemarks string `json:"approvalRemarks,omitempty"`

	TechnicianName  string `json:"technicianName,omitempty"`
	TechnicianPhone string `json:"technicianPhone,omitempty"`
	AssignedDate    string `json:"assignedDate,omitempty"`
	WorkNotes       string `json:"workNotes,omitempty"`

	CompletionStatus string `json:"completionStatus,omitempty"`
	AdditionalNotes  string `json:"additionalNotes,omitempty"`

	InspectedBy      string `json:"inspectedBy,omitempty"`
	InspectionDate   string `json:"inspectionDate,omitempty"`
	InspectionResult string `json:"inspectionResult,omitempty"`
	InspectionNotes  string `json:"inspectionNotes,omitempty"`

	BillNo        string `json:"billNo,omitempty"`
	Amount        string `json:"amount,omitempty"`
	AmountDisplay string `json:"amountDisplay,omitempty"`
	PaymentDate   string `json:"paymentDate,omitempty"`
	BillImageURL  string `json:"billImageUrl,omitempty"`
}

// ParseIndent builds an Indent from a sheet record. Date-bearing cells are
// normalized to DD/MM/YYYY; everything else is carried as stored.
func ParseIndent(rec sheet.Record) Indent {
	row := rec.Cells

	ind := Indent{
		RowIndex:     rec.RowIndex,
		Timestamp:    row.Get(schema.ColTimestamp),
		IndentNo:     row.Get(schema.ColIndentNo),
		MachineName:  row.Get(schema.ColMachineName),
		Department:   row.Get(schema.ColDepartment),
		Problem:      row.Get(schema.ColProblem),
		Priority:     row.Get(schema.ColPriority),
		ExpectedDate: sheet.FormatDate(row.Get(schema.ColExpectedDate)),
		ImageURL:     row.Get(schema.ColImageURL),
		TAT:          row.Get(schema.ColTAT),

		ApprovalTimestamp: row.Get(schema.ColApprovalTimestamp),
		ApprovalStatus:    row.Get(schema.ColApprovalStatus),
		ApprovalRemarks:   row.Get(schema.ColApprovalRemarks),

		TechnicianName:  row.Get(schema.ColTechnicianName),
		TechnicianPhone: row.Get(schema.ColTechnicianPhone),
		AssignedDate:    sheet.FormatDate(row.Get(schema.ColAssignedDate)),
		WorkNotes:       row.Get(schema.ColWorkNotes),

		CompletionStatus: row.Get(schema.ColCompletionStatus),
		AdditionalNotes:  row.Get(schema.ColAdditionalNotes),

		InspectedBy:      row.Get(schema.ColInspectedBy),
		InspectionDate:   sheet.FormatDate(row.Get(schema.ColInspectionDate)),
		InspectionResult: row.Get(schema.ColInspectionResult),
		InspectionNotes:  row.Get(schema.ColInspectionNotes),

		BillNo:       row.Get(schema.ColBillNo),
		Amount:       row.Get(schema.ColAmount),
		PaymentDate:  sheet.FormatDate(row.Get(schema.ColPaymentDate)),
		BillImageURL: row.Get(schema.ColBillImageURL),
	}

	if ind.Priority == "" {
		ind.Priority = "Medium"
	}
	if ind.Amount != "" {
		ind.AmountDisplay = "₹" + ind.Amount
	}
	if ind.ApprovalTimestamp != "" {
		if ind.ApprovalStatus == "" {
			ind.StatusLabel = "Processed"
		} else {
			first, size := utf8.DecodeRuneInString(ind.ApprovalStatus)
			ind.StatusLabel = string(unicode.ToUpper(first)) + ind.ApprovalStatus[size:]
		}
	}
	ind.ID = fmt.Sprintf("%s-%d", ind.IndentNo, ind.RowIndex)

	return ind
}
