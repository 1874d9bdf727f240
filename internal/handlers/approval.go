package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/sbhworks/indentflow/internal/sheet"
	"github.com/sbhworks/indentflow/internal/workflow"
)

// DecisionRequest carries an approve/reject verdict for a pending indent.
type DecisionRequest struct {
	Decision string `json:"decision"` // approve or reject
	Remarks  string `json:"remarks"`
}

func (r *Router) listApprovals(w http.ResponseWriter, req *http.Request) {
	r.listStage(w, req, workflow.StageApproval)
}

// decideApproval records a decision on a pending indent: the decision
// timestamp, status, remarks and planned date columns in one sparse update.
func (r *Router) decideApproval(w http.ResponseWriter, req *http.Request) {
	var body DecisionRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	var decision workflow.Decision
	switch body.Decision {
	case "approve":
		decision = workflow.Approve
	case "reject":
		decision = workflow.Reject
	default:
		respondError(w, http.StatusBadRequest, `Decision must be "approve" or "reject"`)
		return
	}

	rec, err := r.targetRow(req, workflow.StageApproval)
	if err != nil {
		respondRequestError(w, err)
		return
	}

	ack, err := r.submitMutation(req, sheet.Mutation{
		Action:    sheet.ActionUpdate,
		SheetName: r.cfg.Sheets.IndentSheet,
		RowIndex:  rec.RowIndex,
		RowData:   workflow.ApprovalUpdate(decision, body.Remarks, time.Now()),
	})
	if err != nil {
		log.Printf("Error recording approval decision for row %d: %v", rec.RowIndex, err)
		respondMutationError(w, err, "Failed to record decision")
		return
	}

	respondJSON(w, http.StatusOK, ack)
}
