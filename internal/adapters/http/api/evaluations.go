// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/reelscore/reelscore/internal/app"
	"github.com/reelscore/reelscore/internal/domain/model"
)

// EvaluationsHandler handles evaluation submission requests.
type EvaluationsHandler struct {
	deps Dependencies
}

// NewEvaluationsHandler creates a new evaluations handler.
func NewEvaluationsHandler(deps Dependencies) *EvaluationsHandler {
	return &EvaluationsHandler{deps: deps}
}

// evaluationRequest mirrors the POST /evaluations body.
type evaluationRequest struct {
	FilmSubmissionID string                `json:"film_submission_id"`
	Sport            string                `json:"sport,omitempty"`
	Position         string                `json:"position,omitempty"`
	Rubric           *model.RubricResponse `json:"rubric,omitempty"`
	OverallGrade     *int                  `json:"overall_grade,omitempty"`
	Strengths        string                `json:"strengths"`
	Improvements     string                `json:"improvements"`
	Notes            string                `json:"notes,omitempty"`
}

func (e evaluationRequest) validate() error {
	switch {
	case strings.TrimSpace(e.FilmSubmissionID) == "":
		return errors.New("missing film_submission_id")
	case strings.TrimSpace(e.Strengths) == "":
		return errors.New("missing strengths")
	case strings.TrimSpace(e.Improvements) == "":
		return errors.New("missing improvements")
	}
	return nil
}

// HandlePostEvaluation handles POST /evaluations requests.
func (h *EvaluationsHandler) HandlePostEvaluation(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_evaluation"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	callerID, role, ok := requireRole(w, r, model.RoleEvaluator, model.RoleAdmin)
	if !ok {
		return
	}

	var req evaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	report, err := h.deps.SubmitEvaluation(r.Context(), callerID, role, service.EvaluationInput{
		FilmSubmissionID: req.FilmSubmissionID,
		Sport:            req.Sport,
		Position:         req.Position,
		Rubric:           req.Rubric,
		OverallGrade:     req.OverallGrade,
		Strengths:        req.Strengths,
		Improvements:     req.Improvements,
		Notes:            req.Notes,
	})
	if err != nil {
		writeDomainError(w, op, err)
		return
	}

	writeJSON(w, http.StatusCreated, report)
}
