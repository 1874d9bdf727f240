package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/sbhworks/indentflow/internal/workflow"
)

// DashboardResponse wraps the aggregate stats. Degraded marks the fixed
// fallback dataset served when the sheet is unreachable, so the UI can show
// a soft warning instead of an empty page.
type DashboardResponse struct {
	workflow.Stats
	Degraded bool `json:"degraded,omitempty"`
}

func (r *Router) getDashboard(w http.ResponseWriter, req *http.Request) {
	records, err := r.sheets.ReadRecords(req.Context(), r.cfg.Sheets.IndentSheet)
	if err != nil {
		log.Printf("Error reading indent sheet for dashboard: %v", err)
		respondJSON(w, http.StatusOK, DashboardResponse{
			Stats:    workflow.MockStats(),
			Degraded: true,
		})
		return
	}

	respondJSON(w, http.StatusOK, DashboardResponse{
		Stats: workflow.Aggregate(records, time.Now()),
	})
}
