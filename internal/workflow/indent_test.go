package workflow

import (
	"testing"

	"github.com/sbhworks/indentflow/internal/schema"
	"github.com/sbhworks/indentflow/internal/sheet"
)

func TestParseIndent(t *testing.T) {
	row := make(schema.Row, schema.ColTAT+1)
	row[schema.ColTimestamp] = "15/01/2025 10:00:00"
	row[schema.ColIndentNo] = "IND042"
	row[schema.ColMachineName] = "Lathe-1"
	row[schema.ColDepartment] = "Production"
	row[schema.ColProblem] = "Bearing noise"
	row[schema.ColExpectedDate] = "Date(2025,0,20)"
	row[schema.ColApprovalTimestamp] = "16/01/2025 09:00:00"
	row[schema.ColApprovalStatus] = "approved"
	row[schema.ColAmount] = "4500"
	row[schema.ColPaymentDate] = "45658"

	ind := ParseIndent(sheet.Record{RowIndex: 7, Cells: row})

	if ind.ID != "IND042-7" {
		t.Errorf("ID = %q, want IND042-7", ind.ID)
	}
	if ind.RowIndex != 7 {
		t.Errorf("RowIndex = %d, want 7", ind.RowIndex)
	}
	// Date literals use 0-based months; Date(2025,0,20) is 20 January.
	if ind.ExpectedDate != "20/01/2025" {
		t.Errorf("ExpectedDate = %q, want 20/01/2025", ind.ExpectedDate)
	}
	if ind.PaymentDate != "01/01/2025" {
		t.Errorf("PaymentDate = %q, want 01/01/2025", ind.PaymentDate)
	}
	if ind.StatusLabel != "Approved" {
		t.Errorf("StatusLabel = %q, want Approved", ind.StatusLabel)
	}
	if ind.AmountDisplay != "₹4500" {
		t.Errorf("AmountDisplay = %q, want ₹4500", ind.AmountDisplay)
	}
	if ind.Priority != "Medium" {
		t.Errorf("Priority should default to Medium, got %q", ind.Priority)
	}
}

func TestParseIndentStatusLabel(t *testing.T) {
	row := make(schema.Row, schema.WidthApproval)
	row[schema.ColIndentNo] = "IND001"

	if got := ParseIndent(sheet.Record{RowIndex: 3, Cells: row}).StatusLabel; got != "" {
		t.Errorf("Undecided row should carry no status label, got %q", got)
	}

	row[schema.ColApprovalTimestamp] = "16/01/2025 09:00:00"
	if got := ParseIndent(sheet.Record{RowIndex: 3, Cells: row}).StatusLabel; got != "Processed" {
		t.Errorf("Decided row with a cleared status cell should read Processed, got %q", got)
	}

	row[schema.ColApprovalStatus] = "rejected"
	if got := ParseIndent(sheet.Record{RowIndex: 3, Cells: row}).StatusLabel; got != "Rejected" {
		t.Errorf("StatusLabel = %q, want Rejected", got)
	}

	// A hand-edited status cell may start with a multi-byte rune.
	row[schema.ColApprovalStatus] = "éligible"
	if got := ParseIndent(sheet.Record{RowIndex: 3, Cells: row}).StatusLabel; got != "Éligible" {
		t.Errorf("StatusLabel = %q, want Éligible", got)
	}
}

func TestParseIndentShortRow(t *testing.T) {
	rec := sheet.Record{RowIndex: 3, Cells: schema.Row{"15/01/2025 10:00:00", "IND001"}}

	ind := ParseIndent(rec)
	if ind.IndentNo != "IND001" || ind.BillNo != "" {
		t.Errorf("Short rows should read missing cells as empty: %+v", ind)
	}
}
