package worker

import (
	"context"

	"github.com/reelscore/reelscore/pkg/logger"
)

// LogNotifier is the default Notifier: it writes the notification to
// the structured log. Real deployments swap in an email or push
// transport behind the same interface.
type LogNotifier struct {
	logger logger.Logger
}

// NewLogNotifier creates a notifier that logs deliveries.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: logger.Get().Named("log-notifier")}
}

// Notify logs the notification and reports success.
func (n *LogNotifier) Notify(ctx context.Context, note Notification) error {
	n.logger.Info(ctx, "notification",
		logger.String("kind", string(note.Kind)),
		logger.String("recipient", note.RecipientID),
		logger.String("submission", note.SubmissionID),
		logger.String("deep_link", note.DeepLink),
		logger.String("film_title", note.FilmTitle),
		logger.String("player_name", note.PlayerName),
	)
	return nil
}
