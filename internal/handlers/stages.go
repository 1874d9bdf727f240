package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sbhworks/indentflow/internal/middleware"
	"github.com/sbhworks/indentflow/internal/sheet"
	"github.com/sbhworks/indentflow/internal/workflow"
)

// StageView is the two-bucket listing every workflow page renders.
type StageView struct {
	Pending []workflow.Indent `json:"pending"`
	History []workflow.Indent `json:"history"`
}

// listStage reads the indent sheet and partitions its rows for one stage.
// The optional ?tab= query trims the response to a single bucket.
func (r *Router) listStage(w http.ResponseWriter, req *http.Request, stage workflow.Stage) {
	records, err := r.sheets.ReadRecords(req.Context(), r.cfg.Sheets.IndentSheet)
	if err != nil {
		log.Printf("Error reading indent sheet for %s view: %v", stage, err)
		respondError(w, http.StatusBadGateway, "Failed to read indent sheet")
		return
	}

	view := StageView{
		Pending: []workflow.Indent{},
		History: []workflow.Indent{},
	}
	for _, rec := range records {
		switch workflow.Classify(stage, rec.Cells) {
		case workflow.Pending:
			view.Pending = append(view.Pending, workflow.ParseIndent(rec))
		case workflow.History:
			view.History = append(view.History, workflow.ParseIndent(rec))
		}
	}

	switch req.URL.Query().Get("tab") {
	case "pending":
		respondJSON(w, http.StatusOK, map[string]interface{}{"items": view.Pending})
	case "history":
		respondJSON(w, http.StatusOK, map[string]interface{}{"items": view.History})
	default:
		respondJSON(w, http.StatusOK, view)
	}
}

// targetRow resolves the {rowIndex} path variable and verifies the row is
// pending in the given stage, so a stale or hand-edited row cannot take an
// out-of-order transition.
func (r *Router) targetRow(req *http.Request, stage workflow.Stage) (sheet.Record, error) {
	rowIndex, err := strconv.Atoi(mux.Vars(req)["rowIndex"])
	if err != nil {
		return sheet.Record{}, &requestError{http.StatusBadRequest, "Invalid row index"}
	}

	records, err := r.sheets.ReadRecords(req.Context(), r.cfg.Sheets.IndentSheet)
	if err != nil {
		log.Printf("Error reading indent sheet for %s action: %v", stage, err)
		return sheet.Record{}, &requestError{http.StatusBadGateway, "Failed to read indent sheet"}
	}

	for _, rec := range records {
		if rec.RowIndex != rowIndex {
			continue
		}
		if workflow.Classify(stage, rec.Cells) != workflow.Pending {
			return sheet.Record{}, &requestError{http.StatusConflict,
				fmt.Sprintf("Row %d is not pending in the %s stage", rowIndex, stage)}
		}
		return rec, nil
	}
	return sheet.Record{}, &requestError{http.StatusNotFound,
		fmt.Sprintf("No indent at row %d", rowIndex)}
}

// requestError carries an HTTP status alongside the message.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string { return e.message }

func respondRequestError(w http.ResponseWriter, err error) {
	if re, ok := err.(*requestError); ok {
		respondError(w, re.status, re.message)
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}

// respondMutationError distinguishes a script-side rejection (the payload
// reached the endpoint and was refused, with a reason worth relaying) from
// an unreachable or misbehaving endpoint.
func respondMutationError(w http.ResponseWriter, err error, fallback string) {
	var scriptErr *sheet.ScriptError
	if errors.As(err, &scriptErr) {
		respondError(w, http.StatusUnprocessableEntity, scriptErr.Message)
		return
	}
	respondError(w, http.StatusBadGateway, fallback)
}

// submitMutation journals and submits one sheet write. The Idempotency-Key
// header makes a retried click safe: an already-acknowledged key returns the
// stored outcome without touching the sheet again.
func (r *Router) submitMutation(req *http.Request, m sheet.Mutation) (*sheet.Ack, error) {
	key := req.Header.Get("Idempotency-Key")
	if key == "" {
		key = uuid.New().String()
	}

	submittedBy := ""
	if user := middleware.UserFromContext(req.Context()); user != nil {
		submittedBy = user.Username
	}

	entry, replay, err := r.journal.Begin(key, submittedBy, m)
	if err != nil {
		return nil, err
	}
	if replay {
		log.Printf("🔁 Idempotent replay of %s (key %s)", m.Action, key)
		return &sheet.Ack{Success: true, Message: entry.Message}, nil
	}

	ack, err := r.sheets.Submit(req.Context(), m)
	if err != nil {
		if jerr := r.journal.Fail(entry, err); jerr != nil {
			log.Printf("Error journaling failed mutation: %v", jerr)
		}
		return ack, err
	}

	if err := r.journal.Acknowledge(entry, ack.Message); err != nil {
		log.Printf("Error journaling acknowledged mutation: %v", err)
	}

	// Refresh the live dashboard off the request path.
	go r.refreshStats()

	return ack, nil
}

// refreshStats recomputes dashboard stats and pushes them to subscribers.
func (r *Router) refreshStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	records, err := r.sheets.ReadRecords(ctx, r.cfg.Sheets.IndentSheet)
	if err != nil {
		log.Printf("Error refreshing dashboard stats: %v", err)
		return
	}
	r.hub.Broadcast(workflow.Aggregate(records, time.Now()))
}
