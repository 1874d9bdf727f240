package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sbhworks/indentflow/internal/buildinfo"
	"github.com/sbhworks/indentflow/internal/config"
	"github.com/sbhworks/indentflow/internal/database"
	"github.com/sbhworks/indentflow/internal/live"
	"github.com/sbhworks/indentflow/internal/middleware"
	"github.com/sbhworks/indentflow/internal/models"
	"github.com/sbhworks/indentflow/internal/sheet"
)

// mutationJournal is the slice of journal.Store the handlers consume.
type mutationJournal interface {
	Begin(key, submittedBy string, m sheet.Mutation) (*models.MutationJournal, bool, error)
	Acknowledge(entry *models.MutationJournal, message string) error
	Fail(entry *models.MutationJournal, cause error) error
}

// Router wraps the mux router and the service dependencies
type Router struct {
	*mux.Router
	db      *database.DB
	cfg     *config.Config
	sheets  *sheet.Client
	journal mutationJournal
	hub     *live.Hub
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, sheets *sheet.Client, jrnl mutationJournal, hub *live.Hub) *Router {
	r := &Router{
		Router:  mux.NewRouter(),
		db:      db,
		cfg:     cfg,
		sheets:  sheets,
		journal: jrnl,
		hub:     hub,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")

	authn := middleware.Auth(cfg.JWTSecret)

	// Dashboard
	dashboard := r.PathPrefix("/api/dashboard").Subrouter()
	dashboard.Use(authn)
	dashboard.HandleFunc("", r.getDashboard).Methods("GET")

	// Live stats stream
	r.HandleFunc("/ws/dashboard", func(w http.ResponseWriter, req *http.Request) {
		live.ServeWs(hub, w, req)
	})

	// Indent creation and slips
	indents := r.PathPrefix("/api/indents").Subrouter()
	indents.Use(authn)
	indents.Handle("", middleware.RequireRole(models.RoleRequester)(
		http.HandlerFunc(r.createIndent))).Methods("POST")
	indents.HandleFunc("/{rowIndex}/slip", r.getIndentSlip).Methods("GET")

	// Stage views and actions
	stage := func(prefix string, list, act http.HandlerFunc, role string) {
		sub := r.PathPrefix(prefix).Subrouter()
		sub.Use(authn)
		sub.HandleFunc("", list).Methods("GET")
		sub.Handle("/{rowIndex}", middleware.RequireRole(role)(act)).Methods("POST")
	}
	stage("/api/approvals", r.listApprovals, r.decideApproval, models.RoleApprover)
	stage("/api/assignments", r.listAssignments, r.assignTechnician, models.RoleSupervisor)
	stage("/api/work", r.listWork, r.recordWork, models.RoleSupervisor)
	stage("/api/inspections", r.listInspections, r.recordInspection, models.RoleInspector)
	stage("/api/payments", r.listPayments, r.recordPayment, models.RoleAccounts)

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":     "ok",
		"buildTime":  buildinfo.BuildTime,
		"commitTime": buildinfo.CommitTime,
		"commitHash": buildinfo.CommitHash,
		"startTime":  buildinfo.StartTime,
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
