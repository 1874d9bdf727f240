package sheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sbhworks/indentflow/internal/schema"
)

// Client talks to the spreadsheet's two faces: the public gviz endpoint for
// reads and the script endpoint for writes. All persistent workflow state
// lives in the sheet; this client is the only code that touches it.
type Client struct {
	SheetID   string
	ScriptURL string
	GvizBase  string

	httpClient *http.Client
}

const defaultGvizBase = "https://docs.google.com/spreadsheets/d"

// NewClient creates a sheet client. gvizBase is overridable for tests.
func NewClient(sheetID, scriptURL string) *Client {
	return &Client{
		SheetID:    sheetID,
		ScriptURL:  scriptURL,
		GvizBase:   defaultGvizBase,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Record pairs a data row with its authoritative 1-based sheet row index,
// the handle every in-place update targets.
type Record struct {
	RowIndex int
	Cells    schema.Row
}

// Read fetches every row of the named sheet, including any header rows the
// gviz endpoint returns. Used for the Master (credentials) sheet, which has
// no sub-header convention.
func (c *Client) Read(ctx context.Context, sheetName string) ([]schema.Row, error) {
	u := fmt.Sprintf("%s/%s/gviz/tq?tqx=out:json&sheet=%s",
		c.GvizBase, c.SheetID, url.QueryEscape(sheetName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet %q: %w", sheetName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch sheet %q: unexpected status %d", sheetName, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q response: %w", sheetName, err)
	}

	rows, err := parseGviz(body)
	if err != nil {
		return nil, fmt.Errorf("parse sheet %q: %w", sheetName, err)
	}
	return rows, nil
}

// ReadRecords fetches the indent sheet's data rows. The first gviz row is
// the sub-header and is skipped; data row i maps to sheet row i+3.
func (c *Client) ReadRecords(ctx context.Context, sheetName string) ([]Record, error) {
	rows, err := c.Read(ctx, sheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		records = append(records, Record{
			RowIndex: i + schema.FirstDataRow,
			Cells:    row,
		})
	}
	return records, nil
}
