// Package model contains domain entities passed between layers.
package model

import "time"

// Sport identifies the sport a rubric or submission belongs to.
type Sport string

// Supported sports. Unknown values normalize to SportOther.
const (
	SportFootball   Sport = "football"
	SportBasketball Sport = "basketball"
	SportVolleyball Sport = "volleyball"
	SportSoccer     Sport = "soccer"
	SportTrack      Sport = "track"
	SportOther      Sport = "other"
)

// NormalizeSport maps an arbitrary string onto the sport enum,
// defaulting unknown values to SportOther.
func NormalizeSport(s string) Sport {
	switch Sport(s) {
	case SportFootball, SportBasketball, SportVolleyball, SportSoccer, SportTrack:
		return Sport(s)
	default:
		return SportOther
	}
}

// Role identifies the acting user's role.
type Role string

const (
	RolePlayer    Role = "player"
	RoleEvaluator Role = "evaluator"
	RoleAdmin     Role = "admin"
	RoleCoach     Role = "coach"
)

// SubmissionStatus is the lifecycle state of a film submission.
type SubmissionStatus string

const (
	StatusSubmitted    SubmissionStatus = "submitted"
	StatusInReview     SubmissionStatus = "in_review"
	StatusNeedsChanges SubmissionStatus = "needs_changes"
	StatusCompleted    SubmissionStatus = "completed"
)

// HistoryEntry is one record in a submission's append-only audit trail.
type HistoryEntry struct {
	Action     string           `json:"action"`
	FromStatus SubmissionStatus `json:"from_status,omitempty"`
	ToStatus   SubmissionStatus `json:"to_status,omitempty"`
	ByUserID   string           `json:"by_user_id"`
	At         time.Time        `json:"at"`
}

// FilmSubmission is a player's film awaiting or undergoing evaluation.
// History is append-only; entries are never mutated or removed.
type FilmSubmission struct {
	ID                  string           `json:"id"`
	PlayerID            string           `json:"player_id"`
	PlayerName          string           `json:"player_name,omitempty"`
	Title               string           `json:"title"`
	VideoRef            string           `json:"video_ref"`
	Status              SubmissionStatus `json:"status"`
	AssignedEvaluatorID string           `json:"assigned_evaluator_id,omitempty"`
	AssignedAt          *time.Time       `json:"assigned_at,omitempty"`
	History             []HistoryEntry   `json:"history,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
}

// RubricResponse is an evaluator's raw answers against a rubric definition.
// It is embedded in the report for audit; it is never persisted on its own.
type RubricResponse struct {
	Categories []ResponseCategory `json:"categories"`
}

// ResponseCategory groups trait answers under a rubric category key.
type ResponseCategory struct {
	Key    string          `json:"key"`
	Traits []ResponseTrait `json:"traits"`
}

// ResponseTrait is a single trait answer. Slider traits carry ValueNumber,
// select traits carry ValueOption. Both are optional; unanswered traits
// simply do not contribute to the grade.
type ResponseTrait struct {
	Key         string   `json:"key"`
	ValueNumber *float64 `json:"value_number,omitempty"`
	ValueOption *string  `json:"value_option,omitempty"`
}

// Projection is the advisory qualitative outlook derived from the raw grade.
type Projection string

const (
	ProjectionEliteUpside   Projection = "elite_upside"
	ProjectionHighUpside    Projection = "high_upside"
	ProjectionSolid         Projection = "solid"
	ProjectionDevelopmental Projection = "developmental"
)

// EvaluationReport is the single, immutable record of a completed
// evaluation for one film submission.
type EvaluationReport struct {
	ID                  string          `json:"id"`
	FilmSubmissionID    string          `json:"film_submission_id"`
	PlayerID            string          `json:"player_id"`
	EvaluatorID         string          `json:"evaluator_id"`
	OverallGrade        int             `json:"overall_grade"`
	OverallGradeRaw     *float64        `json:"overall_grade_raw,omitempty"`
	SuggestedProjection Projection      `json:"suggested_projection,omitempty"`
	Rubric              *RubricResponse `json:"rubric,omitempty"`
	FormID              string          `json:"form_id,omitempty"`
	Strengths           string          `json:"strengths"`
	Improvements        string          `json:"improvements"`
	Notes               string          `json:"notes,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}
