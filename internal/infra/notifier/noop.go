package notifier

import "context"

// NoOpNotifier discards every message. It is used when notifications are
// disabled to avoid nil checks in the services.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a new NoOpNotifier instance.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// Send does nothing and returns nil immediately.
func (n *NoOpNotifier) Send(ctx context.Context, userID int64, subject, body string) error {
	return nil
}
