// Package verify implements the one-time verification-code capability used to
// gate sensitive account operations.
package verify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"magazine-backoffice/internal/domain/entity"
	"magazine-backoffice/internal/infra/notifier"
	"magazine-backoffice/internal/observability/metrics"
	"magazine-backoffice/internal/repository"
)

// Default limits for code sends per user.
const (
	defaultSendInterval = time.Minute
	defaultSendBurst    = 3
)

// Service issues, checks and expires verification codes. Codes are one-time:
// a successful check consumes the record.
type Service struct {
	Codes    *repository.VerificationRepository
	Notifier notifier.Notifier
	Logger   *slog.Logger

	// TTL bounds code validity; Sweep drops older records.
	TTL time.Duration

	// Now is the clock, overridable in tests.
	Now func() time.Time

	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
}

// NewService builds the verification service with the given TTL.
func NewService(codes *repository.VerificationRepository, n notifier.Notifier, logger *slog.Logger, ttl time.Duration) *Service {
	return &Service{
		Codes:    codes,
		Notifier: n,
		Logger:   logger,
		TTL:      ttl,
		Now:      time.Now,
		limiters: make(map[int64]*rate.Limiter),
	}
}

// limiter returns the per-user send limiter, creating it on first use.
func (s *Service) limiter(userID int64) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[userID]
	if !ok {
		l = rate.NewLimiter(rate.Every(defaultSendInterval), defaultSendBurst)
		s.limiters[userID] = l
	}
	return l
}

// SendCode generates a fresh code for the (user, purpose) pair, persists it
// and dispatches it through the notifier. Sends are rate limited per user;
// exceeding the limit fails with a Forbidden error.
func (s *Service) SendCode(ctx context.Context, userID int64, purpose entity.VerifyPurpose) error {
	if !s.limiter(userID).Allow() {
		return entity.Forbiddenf("too many verification codes requested for user %d", userID)
	}
	code := uuid.NewString()
	if _, err := s.Codes.CreateCode(ctx, userID, code, purpose, s.Now()); err != nil {
		return fmt.Errorf("persist verification code: %w", err)
	}
	subject := "Your verification code"
	body := fmt.Sprintf("Verification code for %s: %s", purpose, code)
	if err := s.Notifier.Send(ctx, userID, subject, body); err != nil {
		return fmt.Errorf("dispatch verification code: %w", err)
	}
	metrics.RecordCodeSent(string(purpose))
	s.Logger.InfoContext(ctx, "verification code sent",
		slog.Int64("user_id", userID),
		slog.String("purpose", string(purpose)),
	)
	return nil
}

// CheckCode reports whether the code authorizes the (user, purpose) pair.
// A matching unexpired code is consumed; expired matches are dropped and
// reported as a miss.
func (s *Service) CheckCode(ctx context.Context, code string, userID int64, purpose entity.VerifyPurpose) (bool, error) {
	records, err := s.Codes.GetByUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("load verification codes: %w", err)
	}
	now := s.Now()
	for _, rec := range records {
		if !rec.Matches(code, userID, purpose) {
			continue
		}
		if _, err := s.Codes.Delete(ctx, rec.ID()); err != nil {
			return false, fmt.Errorf("consume verification code: %w", err)
		}
		if rec.Expired(now, s.TTL) {
			return false, nil
		}
		return true, nil
	}
	return false, nil
}

// Sweep deletes every expired verification record and returns how many were
// dropped. It is scheduled from the wiring binary.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	records, err := s.Codes.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load verification codes: %w", err)
	}
	now := s.Now()
	dropped := 0
	for _, rec := range records {
		if !rec.Expired(now, s.TTL) {
			continue
		}
		ok, err := s.Codes.Delete(ctx, rec.ID())
		if err != nil {
			return dropped, fmt.Errorf("drop expired code %d: %w", rec.ID(), err)
		}
		if ok {
			dropped++
		}
	}
	if dropped > 0 {
		s.Logger.InfoContext(ctx, "expired verification codes swept", slog.Int("count", dropped))
	}
	return dropped, nil
}
