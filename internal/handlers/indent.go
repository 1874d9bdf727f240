package handlers

import (
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sbhworks/indentflow/internal/services/printer"
	"github.com/sbhworks/indentflow/internal/sheet"
	"github.com/sbhworks/indentflow/internal/workflow"
)

const maxImageSize = 5 << 20 // 5MB

// createIndent appends a new maintenance request to the sheet, optionally
// bundling a problem photo the script endpoint stores and links into the
// image column.
//
// Multipart fields: machineName (required), problem (required), department,
// priority, expectedDate, image (file).
func (r *Router) createIndent(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(maxImageSize + 1<<20); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart payload")
		return
	}

	machine := req.FormValue("machineName")
	problem := req.FormValue("problem")
	if machine == "" || problem == "" {
		respondError(w, http.StatusBadRequest, "Machine name and problem are required")
		return
	}
	priority := req.FormValue("priority")
	if priority == "" {
		priority = "Medium"
	}

	upload, err := r.readImageUpload(req, "image")
	if err != nil {
		respondRequestError(w, err)
		return
	}

	rowData := workflow.NewIndentRow(
		machine,
		req.FormValue("department"),
		problem,
		priority,
		req.FormValue("expectedDate"),
		time.Now(),
	)

	ack, err := r.submitMutation(req, sheet.Mutation{
		Action:    sheet.ActionUploadAndInsert,
		SheetName: r.cfg.Sheets.IndentSheet,
		RowData:   rowData,
		Upload:    upload,
	})
	if err != nil {
		log.Printf("Error creating indent: %v", err)
		respondMutationError(w, err, "Failed to record indent")
		return
	}

	respondJSON(w, http.StatusCreated, ack)
}

// readImageUpload extracts and validates an optional image part. Uploads
// are capped at 5MB and must carry an image/* content type.
func (r *Router) readImageUpload(req *http.Request, field string) (*sheet.Upload, error) {
	file, header, err := req.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, &requestError{http.StatusBadRequest, "Invalid file upload"}
	}
	defer file.Close()

	if header.Size > maxImageSize {
		return nil, &requestError{http.StatusBadRequest, "Image size should be less than 5MB"}
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		return nil, &requestError{http.StatusBadRequest, "Failed to read uploaded file"}
	}
	if len(data) > maxImageSize {
		return nil, &requestError{http.StatusBadRequest, "Image size should be less than 5MB"}
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, &requestError{http.StatusBadRequest, "Please upload an image file"}
	}

	return &sheet.Upload{
		Base64Data: base64.StdEncoding.EncodeToString(data),
		FileName:   header.Filename,
		MimeType:   mimeType,
		FolderID:   r.cfg.Sheets.DriveFolderID,
	}, nil
}

// getIndentSlip renders a printable PDF slip for an indent row.
func (r *Router) getIndentSlip(w http.ResponseWriter, req *http.Request) {
	rowIndex, err := strconv.Atoi(mux.Vars(req)["rowIndex"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid row index")
		return
	}

	records, err := r.sheets.ReadRecords(req.Context(), r.cfg.Sheets.IndentSheet)
	if err != nil {
		log.Printf("Error reading indent sheet for slip: %v", err)
		respondError(w, http.StatusBadGateway, "Failed to read indent sheet")
		return
	}

	for _, rec := range records {
		if rec.RowIndex != rowIndex {
			continue
		}
		ind := workflow.ParseIndent(rec)
		if ind.IndentNo == "" {
			break
		}
		pdf, err := printer.GenerateIndentSlip(ind)
		if err != nil {
			log.Printf("Error generating slip for row %d: %v", rowIndex, err)
			respondError(w, http.StatusInternalServerError, "Failed to generate slip")
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("inline; filename=%q", "indent-"+ind.IndentNo+".pdf"))
		w.Write(pdf)
		return
	}

	respondError(w, http.StatusNotFound, fmt.Sprintf("No indent at row %d", rowIndex))
}
