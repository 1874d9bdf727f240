package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/sbhworks/indentflow/internal/sheet"
	"github.com/sbhworks/indentflow/internal/workflow"
)

// WorkRequest closes out the work-tracking stage for an assigned indent.
type WorkRequest struct {
	CompletionStatus string `json:"completionStatus"` // Completed or Terminate
	AdditionalNotes  string `json:"additionalNotes"`
}

func (r *Router) listWork(w http.ResponseWriter, req *http.Request) {
	r.listStage(w, req, workflow.StageWork)
}

func (r *Router) recordWork(w http.ResponseWriter, req *http.Request) {
	var body WorkRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result := workflow.WorkResult{
		CompletionStatus: body.CompletionStatus,
		AdditionalNotes:  body.AdditionalNotes,
	}
	if err := result.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := r.targetRow(req, workflow.StageWork)
	if err != nil {
		respondRequestError(w, err)
		return
	}

	ack, err := r.submitMutation(req, sheet.Mutation{
		Action:    sheet.ActionUpdate,
		SheetName: r.cfg.Sheets.IndentSheet,
		RowIndex:  rec.RowIndex,
		RowData:   workflow.WorkUpdate(result, time.Now()),
	})
	if err != nil {
		log.Printf("Error recording work outcome for row %d: %v", rec.RowIndex, err)
		respondMutationError(w, err, "Failed to record work outcome")
		return
	}

	respondJSON(w, http.StatusOK, ack)
}
