package model

import "time"

// NotificationKind distinguishes downstream notification events.
type NotificationKind string

const (
	// KindEvaluationCompleted tells a player their film was evaluated.
	KindEvaluationCompleted NotificationKind = "evaluation_completed"
	// KindWatchlistEvalCompleted tells a coach a watchlisted player's
	// film was evaluated.
	KindWatchlistEvalCompleted NotificationKind = "watchlist_eval_completed"
)

// Notification is an outbound domain event. The core owns what to say and
// to whom; delivery (email, in-app) belongs to the notifier collaborator.
type Notification struct {
	ID           string           `json:"id"`
	Kind         NotificationKind `json:"kind"`
	RecipientID  string           `json:"recipient_id"`
	SubmissionID string           `json:"submission_id"`
	DeepLink     string           `json:"deep_link"`
	FilmTitle    string           `json:"film_title"`
	PlayerName   string           `json:"player_name"`
	CreatedAt    time.Time        `json:"created_at"`
}
