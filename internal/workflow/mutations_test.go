package workflow

import (
	"testing"
	"time"

	"github.com/sbhworks/indentflow/internal/schema"
)

var fixedNow = time.Date(2025, 1, 16, 9, 30, 0, 0, time.UTC)

func TestApprovalUpdate(t *testing.T) {
	row := ApprovalUpdate(Approve, "looks fine", fixedNow)

	if len(row) != schema.WidthApproval {
		t.Fatalf("Expected width %d, got %d", schema.WidthApproval, len(row))
	}
	if row[schema.ColApprovalTimestamp] != "16/01/2025 09:30:00" {
		t.Errorf("Unexpected timestamp %q", row[schema.ColApprovalTimestamp])
	}
	if row[schema.ColApprovalStatus] != "approved" {
		t.Errorf("Unexpected status %q", row[schema.ColApprovalStatus])
	}
	if row[schema.ColApprovalRemarks] != "looks fine" {
		t.Errorf("Unexpected remarks %q", row[schema.ColApprovalRemarks])
	}

	// Everything outside the approval column group stays untouched.
	for i, v := range row {
		switch i {
		case schema.ColApprovalTimestamp, schema.ColApprovalStatus,
			schema.ColApprovalRemarks, schema.ColApprovalPlanned:
			continue
		}
		if v != "" {
			t.Errorf("Column %d should be empty, got %q", i, v)
		}
	}

	reject := ApprovalUpdate(Reject, "", fixedNow)
	if reject[schema.ColApprovalStatus] != "rejected" {
		t.Errorf("Unexpected reject status %q", reject[schema.ColApprovalStatus])
	}
}

// Applying an approval update to a pending row must flip its classification
// to history with the decision label preserved.
func TestApprovalTransition(t *testing.T) {
	cells := schema.Row{"15/01/2025 10:00:00", "IND001", "Lathe-1", "Production",
		"Bearing noise", "High", "15/01/2025", "", ""}

	if got := Classify(StageApproval, cells); got != Pending {
		t.Fatalf("Expected pending before decision, got %v", got)
	}

	update := ApprovalUpdate(Approve, "ok", fixedNow)
	after := make(schema.Row, len(update))
	copy(after, cells)
	// Sparse-merge semantics: empty strings leave the cell alone.
	for i, v := range update {
		if v != "" {
			after[i] = v
		}
	}

	if got := Classify(StageApproval, after); got != History {
		t.Fatalf("Expected history after decision, got %v", got)
	}
}

func TestAssignmentUpdate(t *testing.T) {
	a := Assignment{
		TechnicianName:  "R. Kumar",
		TechnicianPhone: "9800000000",
		AssignedDate:    "17/01/2025",
		WorkNotes:       "carry spare bearings",
	}
	if err := a.Validate(); err != nil {
		t.Fatalf("Valid assignment rejected: %v", err)
	}

	row := AssignmentUpdate(a, fixedNow)
	if len(row) != schema.WidthAssignment {
		t.Fatalf("Expected width %d, got %d", schema.WidthAssignment, len(row))
	}
	if row[schema.ColTechnicianName] != "R. Kumar" {
		t.Errorf("Unexpected technician %q", row[schema.ColTechnicianName])
	}
	if row[schema.ColApprovalStatus] != "" {
		t.Error("Assignment must not touch the approval column group")
	}

	if err := (Assignment{TechnicianPhone: "9800000000"}).Validate(); err == nil {
		t.Error("Expected missing technician name to be rejected")
	}
}

func TestWorkUpdate(t *testing.T) {
	if err := (WorkResult{CompletionStatus: "Done"}).Validate(); err == nil {
		t.Error("Expected an unknown completion status to be rejected")
	}

	for _, status := range []string{schema.CompletionDone, schema.CompletionTerminated} {
		result := WorkResult{CompletionStatus: status, AdditionalNotes: "n"}
		if err := result.Validate(); err != nil {
			t.Fatalf("Valid completion status %q rejected: %v", status, err)
		}
		row := WorkUpdate(result, fixedNow)
		if len(row) != schema.WidthWork {
			t.Fatalf("Expected width %d, got %d", schema.WidthWork, len(row))
		}
		if row[schema.ColCompletionStatus] != status {
			t.Errorf("Unexpected completion status %q", row[schema.ColCompletionStatus])
		}
	}
}

func TestInspectionUpdate(t *testing.T) {
	i := Inspection{
		InspectedBy:    "S. Mehta",
		InspectionDate: "20/01/2025",
		Result:         schema.InspectionPassed,
		Remarks:        "vibration within limits",
	}
	row := InspectionUpdate(i, fixedNow)
	if len(row) != schema.WidthInspection {
		t.Fatalf("Expected width %d, got %d", schema.WidthInspection, len(row))
	}
	if row[schema.ColInspectionResult] != "Done" {
		t.Errorf("Unexpected result %q", row[schema.ColInspectionResult])
	}
	if row[schema.ColInspectionActual] == "" {
		t.Error("Inspection must stamp the actual-value column")
	}
}

func TestPaymentUpdate(t *testing.T) {
	p := Payment{BillNo: "B-1042", Amount: "4500", PaymentDate: "22/01/2025"}
	if err := p.Validate(); err != nil {
		t.Fatalf("Valid payment rejected: %v", err)
	}

	row := PaymentUpdate(p, fixedNow)
	if len(row) != schema.WidthPayment {
		t.Fatalf("Expected width %d, got %d", schema.WidthPayment, len(row))
	}
	if row[schema.ColBillNo] != "B-1042" || row[schema.ColAmount] != "4500" {
		t.Errorf("Bill fields not written: %q %q", row[schema.ColBillNo], row[schema.ColAmount])
	}
	if row[schema.ColBillImageURL] != "" {
		t.Error("Bill image column should stay empty until the script fills it")
	}

	if err := (Payment{Amount: "4500"}).Validate(); err == nil {
		t.Error("Expected missing bill number to be rejected")
	}
}

func TestNewIndentRow(t *testing.T) {
	row := NewIndentRow("Lathe-1", "Production", "Bearing noise", "High", "20/01/2025", fixedNow)

	if len(row) != schema.WidthCreation {
		t.Fatalf("Expected width %d, got %d", schema.WidthCreation, len(row))
	}
	if row[schema.ColIndentNo] != "" {
		t.Error("Indent number is assigned by the sheet, not the client")
	}
	if row[schema.ColImageURL] != "" {
		t.Error("Image URL is filled by the script after upload")
	}
	if row[schema.ColTimestamp] != "16/01/2025 09:30:00" {
		t.Errorf("Unexpected creation timestamp %q", row[schema.ColTimestamp])
	}
}
