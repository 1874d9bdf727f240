package sheet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sbhworks/indentflow/internal/schema"
)

func TestSubmitUpdate(t *testing.T) {
	var gotForm map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("Failed to parse form: %v", err)
		}
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}
		fmt.Fprint(w, `{"success":true,"message":"Row 5 updated successfully","updatedRow":5}`)
	}))
	defer server.Close()

	client := NewClient("sheet-id", server.URL)

	rowData := schema.NewUpdate(schema.WidthApproval)
	rowData[schema.ColApprovalStatus] = "approved"

	ack, err := client.Submit(context.Background(), Mutation{
		Action:    ActionUpdate,
		SheetName: "SBH Maintenance",
		RowIndex:  5,
		RowData:   rowData,
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if !ack.Success || ack.UpdatedRow != 5 {
		t.Errorf("Unexpected ack: %+v", ack)
	}
	if gotForm["action"] != "update" {
		t.Errorf("Expected action update, got %q", gotForm["action"])
	}
	if gotForm["rowIndex"] != "5" {
		t.Errorf("Expected rowIndex 5, got %q", gotForm["rowIndex"])
	}

	var decoded []string
	if err := json.Unmarshal([]byte(gotForm["rowData"]), &decoded); err != nil {
		t.Fatalf("rowData was not JSON: %v", err)
	}
	if len(decoded) != schema.WidthApproval {
		t.Errorf("Expected rowData width %d, got %d", schema.WidthApproval, len(decoded))
	}
	if decoded[schema.ColApprovalStatus] != "approved" {
		t.Errorf("Expected sparse status value, got %q", decoded[schema.ColApprovalStatus])
	}
}

func TestSubmitRejectsHeaderRow(t *testing.T) {
	client := NewClient("sheet-id", "http://unused.invalid")

	_, err := client.Submit(context.Background(), Mutation{
		Action:    ActionUpdate,
		SheetName: "SBH Maintenance",
		RowIndex:  2,
		RowData:   schema.NewUpdate(schema.WidthApproval),
	})
	if err == nil {
		t.Fatal("Expected row index 2 to be rejected (headers end at row 2)")
	}
}

func TestSubmitSurfacesScriptRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":false,"error":"Sheet not found: Bogus","message":"Failed to process request"}`)
	}))
	defer server.Close()

	client := NewClient("sheet-id", server.URL)

	_, err := client.Submit(context.Background(), Mutation{
		Action:    ActionInsert,
		SheetName: "Bogus",
		RowData:   []string{"x"},
	})

	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) {
		t.Fatalf("Expected a ScriptError, got %v", err)
	}
}

func TestSubmitUploadFieldsForwarded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostForm.Get("base64Data") == "" || r.PostForm.Get("fileName") != "bill.png" {
			t.Errorf("Upload fields missing: %v", r.PostForm)
		}
		if r.PostForm.Get("folderId") != "folder-1" {
			t.Errorf("Expected folderId, got %q", r.PostForm.Get("folderId"))
		}
		fmt.Fprint(w, `{"success":true,"message":"ok","imageUrl":"https://drive/x"}`)
	}))
	defer server.Close()

	client := NewClient("sheet-id", server.URL)

	ack, err := client.Submit(context.Background(), Mutation{
		Action:    ActionUploadAndUpdatePay,
		SheetName: "SBH Maintenance",
		RowIndex:  7,
		RowData:   schema.NewUpdate(schema.WidthPayment),
		Upload: &Upload{
			Base64Data: "aGVsbG8=",
			FileName:   "bill.png",
			MimeType:   "image/png",
			FolderID:   "folder-1",
		},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if ack.ImageURL != "https://drive/x" {
		t.Errorf("Expected image URL in ack, got %q", ack.ImageURL)
	}
}

func TestSubmitRejectsUnknownAction(t *testing.T) {
	client := NewClient("sheet-id", "http://unused.invalid")
	if _, err := client.Submit(context.Background(), Mutation{Action: "drop"}); err == nil {
		t.Error("Expected unknown action to be rejected")
	}
}
