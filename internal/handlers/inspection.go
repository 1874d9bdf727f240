package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/sbhworks/indentflow/internal/sheet"
	"github.com/sbhworks/indentflow/internal/workflow"
)

// InspectionRequest records the post-repair inspection findings.
type InspectionRequest struct {
	InspectedBy    string `json:"inspectedBy"`
	InspectionDate string `json:"inspectionDate"`
	Result         string `json:"result"`
	Remarks        string `json:"remarks"`
}

func (r *Router) listInspections(w http.ResponseWriter, req *http.Request) {
	r.listStage(w, req, workflow.StageInspection)
}

func (r *Router) recordInspection(w http.ResponseWriter, req *http.Request) {
	var body InspectionRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	inspection := workflow.Inspection{
		InspectedBy:    body.InspectedBy,
		InspectionDate: body.InspectionDate,
		Result:         body.Result,
		Remarks:        body.Remarks,
	}
	if err := inspection.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if inspection.InspectionDate == "" {
		inspection.InspectionDate = time.Now().Format("02/01/2006")
	}

	rec, err := r.targetRow(req, workflow.StageInspection)
	if err != nil {
		respondRequestError(w, err)
		return
	}

	ack, err := r.submitMutation(req, sheet.Mutation{
		Action:    sheet.ActionUpdate,
		SheetName: r.cfg.Sheets.IndentSheet,
		RowIndex:  rec.RowIndex,
		RowData:   workflow.InspectionUpdate(inspection, time.Now()),
	})
	if err != nil {
		log.Printf("Error recording inspection for row %d: %v", rec.RowIndex, err)
		respondMutationError(w, err, "Failed to record inspection")
		return
	}

	respondJSON(w, http.StatusOK, ack)
}
