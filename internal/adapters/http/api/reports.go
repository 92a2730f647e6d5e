// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"

	"github.com/reelscore/reelscore/internal/domain/model"
)

// ReportsHandler handles evaluation report reads.
type ReportsHandler struct {
	deps Dependencies
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(deps Dependencies) *ReportsHandler {
	return &ReportsHandler{deps: deps}
}

// HandleGetByFilm handles GET /evaluations/film/{film_submission_id} requests.
func (h *ReportsHandler) HandleGetByFilm(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_report_by_film"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	callerID, role, ok := requireRole(w, r,
		model.RolePlayer, model.RoleEvaluator, model.RoleAdmin, model.RoleCoach)
	if !ok {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/evaluations/film/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	report, err := h.deps.ReportByFilm(r.Context(), id, callerID, role)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// HandleGetByPlayer handles GET /evaluations/player/{user_id} requests.
// Returns the player's reports, newest first, capped at 200.
func (h *ReportsHandler) HandleGetByPlayer(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_reports_by_player"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	callerID, role, ok := requireRole(w, r,
		model.RolePlayer, model.RoleEvaluator, model.RoleAdmin, model.RoleCoach)
	if !ok {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/evaluations/player/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	reports, err := h.deps.ReportsByPlayer(r.Context(), id, callerID, role)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	if reports == nil {
		reports = []model.EvaluationReport{}
	}

	writeJSON(w, http.StatusOK, reports)
}
