package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerNotifier wraps a Notifier with a circuit breaker so a failing
// downstream gateway stops being hammered. While the breaker is open every
// Send fails fast with the breaker's error.
type BreakerNotifier struct {
	next Notifier
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerNotifier wraps next with a circuit breaker. The breaker opens
// after three consecutive failures and probes again after the interval.
func NewBreakerNotifier(name string, next Notifier, openTimeout time.Duration) *BreakerNotifier {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	return &BreakerNotifier{next: next, cb: cb}
}

// Send delivers through the wrapped notifier under the breaker.
func (n *BreakerNotifier) Send(ctx context.Context, userID int64, subject, body string) error {
	_, err := n.cb.Execute(func() (any, error) {
		return nil, n.next.Send(ctx, userID, subject, body)
	})
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}
