// Package repository defines the persistence interfaces and errors for
// submissions, reports, rubric definitions and watchlists.
package repository

import (
	"context"

	"github.com/reelscore/reelscore/internal/domain/model"
	"github.com/reelscore/reelscore/internal/domain/rubric"
)

// SubmissionStore provides access to film submissions. Claim and
// Complete apply the state machine transitions atomically with respect
// to concurrent callers of the same store.
type SubmissionStore interface {
	// GetSubmission returns the submission or ErrNotFound.
	GetSubmission(ctx context.Context, id string) (*model.FilmSubmission, error)

	// PutSubmission inserts or replaces a submission. Submissions are
	// created by the out-of-scope intake flow; this exists for that
	// flow, seeding and tests.
	PutSubmission(ctx context.Context, sub *model.FilmSubmission) error

	// ClaimSubmission performs the claim transition as an atomic
	// conditional update: a submission assigned to a different
	// evaluator fails with ErrAlreadyAssigned unless the actor is an
	// admin. Returns the post-claim submission.
	ClaimSubmission(ctx context.Context, id, evaluatorID string, role model.Role) (*model.FilmSubmission, error)

	// CompleteSubmission advances the submission to completed and
	// appends the history entry. Returns the updated submission.
	CompleteSubmission(ctx context.Context, id, evaluatorID string) (*model.FilmSubmission, error)
}

// ReportStore provides access to evaluation reports. The
// one-report-per-submission invariant is enforced here, by constraint,
// not by the caller's existence check.
type ReportStore interface {
	// CreateReport persists a report exactly once per film submission.
	// A second insert for the same film submission fails with
	// ErrReportExists regardless of timing.
	CreateReport(ctx context.Context, report *model.EvaluationReport) error

	// ReportByFilm returns the report for a film submission or ErrNotFound.
	ReportByFilm(ctx context.Context, filmSubmissionID string) (*model.EvaluationReport, error)

	// ReportsByPlayer returns a player's reports, newest first,
	// capped at limit.
	ReportsByPlayer(ctx context.Context, playerID string, limit int) ([]model.EvaluationReport, error)

	// CountReports returns the number of stored reports.
	CountReports(ctx context.Context) int
}

// FormStore provides access to rubric definitions.
type FormStore interface {
	// ActiveForm returns the active definition for a sport or ErrNotFound.
	ActiveForm(ctx context.Context, sport model.Sport) (*rubric.Definition, error)

	// SaveForm inserts or replaces a definition by id.
	SaveForm(ctx context.Context, def *rubric.Definition) error

	// ActivateForm marks the definition active and deactivates every
	// other definition for the same sport, atomically from the
	// caller's perspective.
	ActivateForm(ctx context.Context, def *rubric.Definition) error
}

// WatchlistStore tracks which coaches watch which players. Only coaches
// with an active paid subscription are fanned notifications.
type WatchlistStore interface {
	// Watch records that a coach watches a player.
	Watch(ctx context.Context, coachID, playerID string, activeSubscription bool) error

	// ActiveWatchers returns the ids of coaches watching the player
	// whose subscription is active.
	ActiveWatchers(ctx context.Context, playerID string) ([]string, error)
}

// Store bundles all persistence concerns behind one backend.
type Store interface {
	SubmissionStore
	ReportStore
	FormStore
	WatchlistStore

	Close() error
}
