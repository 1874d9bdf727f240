package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sbhworks/indentflow/internal/schema"
)

// Script endpoint actions.
const (
	ActionInsert             = "insert"
	ActionAdd                = "add"
	ActionUpdate             = "update"
	ActionUploadFile         = "uploadFile"
	ActionUploadAndInsert    = "uploadAndInsert"
	ActionUploadAndUpdatePay = "uploadAndUpdatePayment"
)

// Mutation is one write against the sheet: an append or a sparse in-place
// update, optionally bundled with a file upload the script stores first.
// Empty strings in RowData leave the corresponding column untouched.
type Mutation struct {
	Action    string
	SheetName string
	RowIndex  int      // update actions only, must be >= schema.FirstDataRow
	RowData   []string // sparse, sized to the stage's write width
	Upload    *Upload
}

// Upload carries a base64-encoded file for the upload-capable actions.
type Upload struct {
	Base64Data string
	FileName   string
	MimeType   string
	FolderID   string
}

// Ack is the script endpoint's JSON response. Writes are request/response:
// a submission either comes back acknowledged or returns an error, never
// fire-and-forget.
type Ack struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Err        string `json:"error"`
	ImageURL   string `json:"imageUrl"`
	FileURL    string `json:"fileUrl"`
	UpdatedRow int    `json:"updatedRow"`
	RowCount   int    `json:"rowCount"`
}

// ScriptError is a rejection reported by the script endpoint itself.
type ScriptError struct {
	Message string
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script endpoint rejected mutation: %s", e.Message)
}

func (m *Mutation) validate() error {
	switch m.Action {
	case ActionInsert, ActionAdd, ActionUploadAndInsert:
		if len(m.RowData) == 0 {
			return fmt.Errorf("action %s requires row data", m.Action)
		}
	case ActionUpdate, ActionUploadAndUpdatePay:
		if len(m.RowData) == 0 {
			return fmt.Errorf("action %s requires row data", m.Action)
		}
		if m.RowIndex < schema.FirstDataRow {
			return fmt.Errorf("row index %d targets a header row (minimum %d)",
				m.RowIndex, schema.FirstDataRow)
		}
	case ActionUploadFile:
		if m.Upload == nil {
			return fmt.Errorf("action %s requires an upload", m.Action)
		}
	default:
		return fmt.Errorf("unknown action %q", m.Action)
	}

	if m.Upload != nil {
		if m.Upload.Base64Data == "" || m.Upload.FileName == "" || m.Upload.MimeType == "" {
			return fmt.Errorf("upload requires base64 data, file name and mime type")
		}
	}
	return nil
}

// Submit sends a mutation to the script endpoint and waits for its ack.
func (c *Client) Submit(ctx context.Context, m Mutation) (*Ack, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("action", m.Action)
	if m.SheetName != "" {
		form.Set("sheetName", m.SheetName)
	}
	if m.Action == ActionUpdate || m.Action == ActionUploadAndUpdatePay {
		form.Set("rowIndex", strconv.Itoa(m.RowIndex))
	}
	if len(m.RowData) > 0 {
		rowData, err := json.Marshal(m.RowData)
		if err != nil {
			return nil, fmt.Errorf("encode row data: %w", err)
		}
		form.Set("rowData", string(rowData))
	}
	if m.Upload != nil {
		form.Set("base64Data", m.Upload.Base64Data)
		form.Set("fileName", m.Upload.FileName)
		form.Set("mimeType", m.Upload.MimeType)
		if m.Upload.FolderID != "" {
			form.Set("folderId", m.Upload.FolderID)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ScriptURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit %s: %w", m.Action, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s ack: %w", m.Action, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("submit %s: unexpected status %d", m.Action, resp.StatusCode)
	}

	var ack Ack
	if err := json.Unmarshal(body, &ack); err != nil {
		return nil, fmt.Errorf("decode %s ack: %w", m.Action, err)
	}
	if !ack.Success {
		msg := ack.Message
		if msg == "" {
			msg = ack.Err
		}
		return &ack, &ScriptError{Message: msg}
	}
	return &ack, nil
}
