package workflow

import (
	"fmt"
	"time"

	"github.com/sbhworks/indentflow/internal/schema"
	"github.com/sbhworks/indentflow/internal/sheet"
)

// Mutation builders. Each stage writes a disjoint set of column offsets; the
// sparse arrays produced here are sized to the stage's write width so the
// remote handler leaves every other column alone.

// Decision is an approval verdict.
type Decision string

const (
	Approve Decision = schema.StatusApproved
	Reject  Decision = schema.StatusRejected
)

// NewIndentRow builds the append payload for a freshly submitted indent.
// The image URL slot stays empty; the script endpoint fills it after the
// upload completes. The indent number column is assigned by the sheet.
func NewIndentRow(machine, department, problem, priority, expectedDate string, now time.Time) []string {
	row := schema.NewUpdate(schema.WidthCreation)
	row[schema.ColTimestamp] = sheet.Timestamp(now)
	row[schema.ColMachineName] = machine
	row[schema.ColDepartment] = department
	row[schema.ColProblem] = problem
	row[schema.ColPriority] = priority
	row[schema.ColExpectedDate] = expectedDate
	row[schema.ColPlannedDate] = sheet.Timestamp(now)
	return row
}

// ApprovalUpdate records an approve/reject decision.
func ApprovalUpdate(decision Decision, remarks string, now time.Time) []string {
	ts := sheet.Timestamp(now)
	row := schema.NewUpdate(schema.WidthApproval)
	row[schema.ColApprovalTimestamp] = ts
	row[schema.ColApprovalStatus] = string(decision)
	row[schema.ColApprovalRemarks] = remarks
	row[schema.ColApprovalPlanned] = ts
	return row
}

// Assignment carries the technician details collected at assignment time.
type Assignment struct {
	TechnicianName  string
	TechnicianPhone string
	AssignedDate    string
	WorkNotes       string
}

func (a Assignment) Validate() error {
	if a.TechnicianName == "" {
		return fmt.Errorf("technician name is required")
	}
	if a.TechnicianPhone == "" {
		return fmt.Errorf("technician phone is required")
	}
	return nil
}

// AssignmentUpdate records a technician assignment.
func AssignmentUpdate(a Assignment, now time.Time) []string {
	ts := sheet.Timestamp(now)
	row := schema.NewUpdate(schema.WidthAssignment)
	row[schema.ColAssignActual] = ts
	row[schema.ColTechnicianName] = a.TechnicianName
	row[schema.ColTechnicianPhone] = a.TechnicianPhone
	row[schema.ColAssignedDate] = a.AssignedDate
	row[schema.ColWorkNotes] = a.WorkNotes
	row[schema.ColAssignPlanned] = ts
	return row
}

// WorkResult closes out the work-tracking stage.
type WorkResult struct {
	CompletionStatus string // Completed or Terminate
	AdditionalNotes  string
}

func (w WorkResult) Validate() error {
	if w.CompletionStatus != schema.CompletionDone && w.CompletionStatus != schema.CompletionTerminated {
		return fmt.Errorf("completion status must be %q or %q",
			schema.CompletionDone, schema.CompletionTerminated)
	}
	return nil
}

// WorkUpdate records the work outcome.
func WorkUpdate(w WorkResult, now time.Time) []string {
	ts := sheet.Timestamp(now)
	row := schema.NewUpdate(schema.WidthWork)
	row[schema.ColWorkActual] = ts
	row[schema.ColCompletionStatus] = w.CompletionStatus
	row[schema.ColAdditionalNotes] = w.AdditionalNotes
	row[schema.ColWorkPlanned] = ts
	return row
}

// Inspection carries the post-repair inspection findings.
type Inspection struct {
	InspectedBy    string
	InspectionDate string
	Result         string // Done or Not Done
	Remarks        string
}

func (i Inspection) Validate() error {
	if i.InspectedBy == "" {
		return fmt.Errorf("inspector name is required")
	}
	if i.Result == "" {
		return fmt.Errorf("inspection result is required")
	}
	return nil
}

// InspectionUpdate records an inspection.
func InspectionUpdate(i Inspection, now time.Time) []string {
	ts := sheet.Timestamp(now)
	row := schema.NewUpdate(schema.WidthInspection)
	row[schema.ColInspectionActual] = ts
	row[schema.ColInspectedBy] = i.InspectedBy
	row[schema.ColInspectionDate] = i.InspectionDate
	row[schema.ColInspectionResult] = i.Result
	row[schema.ColInspectionNotes] = i.Remarks
	row[schema.ColInspectionPlan] = ts
	return row
}

// Payment settles an inspected indent.
type Payment struct {
	BillNo      string
	Amount      string
	PaymentDate string
	BillImage   string // resolved URL, or empty when the script uploads one
}

func (p Payment) Validate() error {
	if p.BillNo == "" {
		return fmt.Errorf("bill number is required")
	}
	if p.Amount == "" {
		return fmt.Errorf("amount is required")
	}
	return nil
}

// PaymentUpdate records a payment. When the mutation bundles a bill image
// upload, the script endpoint overwrites the bill-image column with the
// stored file's URL.
func PaymentUpdate(p Payment, now time.Time) []string {
	row := schema.NewUpdate(schema.WidthPayment)
	row[schema.ColPaymentActual] = sheet.Timestamp(now)
	row[schema.ColBillNo] = p.BillNo
	row[schema.ColAmount] = p.Amount
	row[schema.ColPaymentDate] = sheet.FormatDate(p.PaymentDate)
	row[schema.ColBillImageURL] = p.BillImage
	return row
}
