// Package notifier is the outbound notification port of the back office.
// It defines the Notifier interface which allows different delivery mechanisms
// (mail gateway, messenger bridge, logging) to be used interchangeably through
// dependency injection.
//
// The package ships a no-op notifier for when notifications are disabled, a
// slog-backed notifier for development, and a circuit-breaker wrapper for
// flaky downstream senders.
package notifier

import "context"

// Notifier delivers a short message to a user through whatever channel the
// implementation represents.
type Notifier interface {
	// Send delivers a message to the user. Implementations resolve the
	// user's delivery address themselves and must respect context
	// cancellation.
	Send(ctx context.Context, userID int64, subject, body string) error
}
