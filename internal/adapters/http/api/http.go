// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/reelscore/reelscore/internal/adapters/repository"
	service "github.com/reelscore/reelscore/internal/app"
	"github.com/reelscore/reelscore/internal/domain/model"
	"github.com/reelscore/reelscore/internal/domain/rubric"
)

// Identity headers populated by the out-of-scope auth layer.
const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to implementations in other
// packages.
type Dependencies interface {
	SubmitEvaluation(ctx context.Context, evaluatorID string, role model.Role, in service.EvaluationInput) (*model.EvaluationReport, error)
	ActiveForm(ctx context.Context, sport string) (*rubric.Definition, error)
	ActivateForm(ctx context.Context, def *rubric.Definition) error
	ReportByFilm(ctx context.Context, filmSubmissionID, callerID string, role model.Role) (*model.EvaluationReport, error)
	ReportsByPlayer(ctx context.Context, playerID, callerID string, role model.Role) ([]model.EvaluationReport, error)
	CreateSubmission(ctx context.Context, sub *model.FilmSubmission) (*model.FilmSubmission, error)
	GetSubmission(ctx context.Context, id string) (*model.FilmSubmission, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	evaluationsHandler *EvaluationsHandler
	formsHandler       *FormsHandler
	reportsHandler     *ReportsHandler
	submissionsHandler *SubmissionsHandler
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		evaluationsHandler: NewEvaluationsHandler(deps),
		formsHandler:       NewFormsHandler(deps),
		reportsHandler:     NewReportsHandler(deps),
		submissionsHandler: NewSubmissionsHandler(deps),
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/evaluation-forms/active", MetricsMiddleware(s.formsHandler.HandleGetActive, "forms_active"))
	mux.HandleFunc("/evaluation-forms/activate", MetricsMiddleware(s.formsHandler.HandleActivate, "forms_activate"))
	mux.HandleFunc("/evaluations/film/", MetricsMiddleware(s.reportsHandler.HandleGetByFilm, "report_by_film"))
	mux.HandleFunc("/evaluations/player/", MetricsMiddleware(s.reportsHandler.HandleGetByPlayer, "reports_by_player"))
	mux.HandleFunc("/evaluations", MetricsMiddleware(s.evaluationsHandler.HandlePostEvaluation, "evaluations"))
	mux.HandleFunc("/film-submissions/", MetricsMiddleware(s.submissionsHandler.HandleGetSubmission, "submission_get"))
	mux.HandleFunc("/film-submissions", MetricsMiddleware(s.submissionsHandler.HandlePostSubmission, "submission_post"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates orchestrator and store errors to the
// API's status/code taxonomy.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, Wrap(op, err))
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, repository.ErrAlreadyAssigned):
		return http.StatusConflict, "already_assigned"
	case errors.Is(err, repository.ErrReportExists):
		return http.StatusConflict, "report_exists"
	case errors.Is(err, repository.ErrCompleted):
		return http.StatusConflict, "already_completed"
	case errors.Is(err, service.ErrGradeRequired),
		errors.Is(err, service.ErrInvalidGrade),
		errors.Is(err, service.ErrInvalidForm):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// identity extracts the caller's id and role from the trusted headers.
func identity(r *http.Request) (string, model.Role) {
	return r.Header.Get(headerUserID), model.Role(r.Header.Get(headerUserRole))
}

// requireRole writes a 403 and returns false unless the caller has one
// of the allowed roles.
func requireRole(w http.ResponseWriter, r *http.Request, allowed ...model.Role) (string, model.Role, bool) {
	id, role := identity(r)
	for _, a := range allowed {
		if role == a {
			return id, role, true
		}
	}
	writeError(w, http.StatusForbidden, "forbidden", ErrForbidden)
	return "", "", false
}

// Wrap tags an error with the failing operation.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// NewKind creates an operation-tagged error from a sentinel kind.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind tags an error with an operation and a sentinel kind so
// callers can match the kind with errors.Is.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}
