package sheet

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sbhworks/indentflow/internal/schema"
)

const gvizFixture = `/*O_o*/
google.visualization.Query.setResponse({"version":"0.6","reqId":"0","status":"ok","table":{"cols":[{"id":"A","type":"string"}],"rows":[
{"c":[{"v":"Timestamp"},{"v":"Indent No"}]},
{"c":[{"v":"15/01/2025 10:00:00"},{"v":"IND001"},{"v":"Lathe-1"},{"v":"Production"},{"v":"Bearing noise"},{"v":"High"},{"v":45658,"f":"01/01/2025"},null,{"v":""}]},
{"c":[{"v":"16/01/2025 11:30:00"},{"v":"IND002"},{"v":"CNC-2"},{"v":"Tooling"},{"v":"Spindle jam"},{"v":"Medium"},null,null,null]}
]}});`

func TestParseGviz(t *testing.T) {
	rows, err := parseGviz([]byte(gvizFixture))
	if err != nil {
		t.Fatalf("Failed to parse gviz fixture: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	// Numeric cells flatten to their raw value, null cells to "".
	if got := rows[1].Get(6); got != "45658" {
		t.Errorf("Expected numeric cell to flatten to \"45658\", got %q", got)
	}
	if got := rows[1].Get(7); got != "" {
		t.Errorf("Expected null cell to be empty, got %q", got)
	}
	if got := rows[2].Get(1); got != "IND002" {
		t.Errorf("Expected IND002, got %q", got)
	}

	// Reads past the stored cells are empty, not a panic.
	if got := rows[2].Get(schema.ColBillNo); got != "" {
		t.Errorf("Expected short row to read empty, got %q", got)
	}
}

func TestStripWrapperRejectsNonJSON(t *testing.T) {
	if _, err := parseGviz([]byte("totally not wrapped")); err == nil {
		t.Error("Expected an error for a body with no JSON payload")
	}
}

func TestReadRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("sheet"); got != "SBH Maintenance" {
			t.Errorf("Expected sheet query param, got %q", got)
		}
		fmt.Fprint(w, gvizFixture)
	}))
	defer server.Close()

	client := NewClient("sheet-id", "http://unused.invalid")
	client.GvizBase = server.URL

	records, err := client.ReadRecords(context.Background(), "SBH Maintenance")
	if err != nil {
		t.Fatalf("ReadRecords failed: %v", err)
	}

	// The sub-header row is skipped and data starts at sheet row 3.
	if len(records) != 2 {
		t.Fatalf("Expected 2 data records, got %d", len(records))
	}
	if records[0].RowIndex != 3 {
		t.Errorf("Expected first data record at row 3, got %d", records[0].RowIndex)
	}
	if records[1].RowIndex != 4 {
		t.Errorf("Expected second data record at row 4, got %d", records[1].RowIndex)
	}
	if got := records[0].Cells.Get(schema.ColIndentNo); got != "IND001" {
		t.Errorf("Expected IND001 at row 3, got %q", got)
	}
}

func TestReadFailsOnHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient("sheet-id", "http://unused.invalid")
	client.GvizBase = server.URL

	if _, err := client.Read(context.Background(), "Master"); err == nil {
		t.Error("Expected an error for a non-200 response")
	}
}
