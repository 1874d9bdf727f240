package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/sbhworks/indentflow/internal/sheet"
	"github.com/sbhworks/indentflow/internal/workflow"
)

// AssignmentRequest carries the technician details for an approved indent.
type AssignmentRequest struct {
	TechnicianName  string `json:"technicianName"`
	TechnicianPhone string `json:"technicianPhone"`
	AssignedDate    string `json:"assignedDate"`
	WorkNotes       string `json:"workNotes"`
}

func (r *Router) listAssignments(w http.ResponseWriter, req *http.Request) {
	r.listStage(w, req, workflow.StageAssignment)
}

func (r *Router) assignTechnician(w http.ResponseWriter, req *http.Request) {
	var body AssignmentRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	assignment := workflow.Assignment{
		TechnicianName:  body.TechnicianName,
		TechnicianPhone: body.TechnicianPhone,
		AssignedDate:    body.AssignedDate,
		WorkNotes:       body.WorkNotes,
	}
	if err := assignment.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := r.targetRow(req, workflow.StageAssignment)
	if err != nil {
		respondRequestError(w, err)
		return
	}

	ack, err := r.submitMutation(req, sheet.Mutation{
		Action:    sheet.ActionUpdate,
		SheetName: r.cfg.Sheets.IndentSheet,
		RowIndex:  rec.RowIndex,
		RowData:   workflow.AssignmentUpdate(assignment, time.Now()),
	})
	if err != nil {
		log.Printf("Error assigning technician for row %d: %v", rec.RowIndex, err)
		respondMutationError(w, err, "Failed to record assignment")
		return
	}

	respondJSON(w, http.StatusOK, ack)
}
