package notifier

import (
	"context"
	"log/slog"
)

// LogNotifier writes every message to the structured log instead of delivering
// it. Useful in development and as the default sender when no gateway is
// configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that logs through the given logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Send logs the message at info level.
func (n *LogNotifier) Send(ctx context.Context, userID int64, subject, body string) error {
	n.logger.InfoContext(ctx, "notification",
		slog.Int64("user_id", userID),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}
