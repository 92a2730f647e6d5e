// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/reelscore/reelscore/internal/domain/model"
)

// SubmissionsHandler handles film submission intake and reads. Intake
// proper belongs to the out-of-scope player flow; this is its minimal
// surface so the workflow can be exercised end to end.
type SubmissionsHandler struct {
	deps Dependencies
}

// NewSubmissionsHandler creates a new submissions handler.
func NewSubmissionsHandler(deps Dependencies) *SubmissionsHandler {
	return &SubmissionsHandler{deps: deps}
}

// submissionRequest mirrors the POST /film-submissions body.
type submissionRequest struct {
	Title      string `json:"title"`
	VideoRef   string `json:"video_ref"`
	PlayerName string `json:"player_name,omitempty"`
}

func (s submissionRequest) validate() error {
	switch {
	case strings.TrimSpace(s.Title) == "":
		return errors.New("missing title")
	case strings.TrimSpace(s.VideoRef) == "":
		return errors.New("missing video_ref")
	}
	return nil
}

// HandlePostSubmission handles POST /film-submissions requests.
func (h *SubmissionsHandler) HandlePostSubmission(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_submission"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	callerID, _, ok := requireRole(w, r, model.RolePlayer, model.RoleAdmin)
	if !ok {
		return
	}

	var req submissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	sub, err := h.deps.CreateSubmission(r.Context(), &model.FilmSubmission{
		PlayerID:   callerID,
		PlayerName: req.PlayerName,
		Title:      req.Title,
		VideoRef:   req.VideoRef,
	})
	if err != nil {
		writeDomainError(w, op, err)
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

// HandleGetSubmission handles GET /film-submissions/{id} requests.
func (h *SubmissionsHandler) HandleGetSubmission(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_submission"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	callerID, role, ok := requireRole(w, r,
		model.RolePlayer, model.RoleEvaluator, model.RoleAdmin, model.RoleCoach)
	if !ok {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/film-submissions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	sub, err := h.deps.GetSubmission(r.Context(), id)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	if role == model.RolePlayer && sub.PlayerID != callerID {
		writeError(w, http.StatusForbidden, "forbidden", NewKind(op, ErrForbidden))
		return
	}

	writeJSON(w, http.StatusOK, sub)
}
