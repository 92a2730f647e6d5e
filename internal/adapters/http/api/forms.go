// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/reelscore/reelscore/internal/domain/model"
	"github.com/reelscore/reelscore/internal/domain/rubric"
)

// FormsHandler handles rubric definition requests.
type FormsHandler struct {
	deps Dependencies
}

// NewFormsHandler creates a new forms handler.
func NewFormsHandler(deps Dependencies) *FormsHandler {
	return &FormsHandler{deps: deps}
}

// HandleGetActive handles GET /evaluation-forms/active?sport=s requests.
// Creates the default definition for the sport if none is active.
func (h *FormsHandler) HandleGetActive(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_active_form"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	if _, _, ok := requireRole(w, r, model.RoleEvaluator, model.RoleAdmin); !ok {
		return
	}

	def, err := h.deps.ActiveForm(r.Context(), r.URL.Query().Get("sport"))
	if err != nil {
		writeDomainError(w, op, err)
		return
	}

	writeJSON(w, http.StatusOK, def)
}

// HandleActivate handles POST /evaluation-forms/activate requests.
// Admin only: makes the submitted definition the single active one for
// its sport.
func (h *FormsHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	const op = "api.activate_form"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	callerID, _, ok := requireRole(w, r, model.RoleAdmin)
	if !ok {
		return
	}

	var def rubric.Definition
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if def.CreatedBy == "" {
		def.CreatedBy = callerID
	}

	if err := h.deps.ActivateForm(r.Context(), &def); err != nil {
		writeDomainError(w, op, err)
		return
	}

	writeJSON(w, http.StatusOK, def)
}
