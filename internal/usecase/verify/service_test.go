package verify_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magazine-backoffice/internal/domain/entity"
	"magazine-backoffice/internal/repository"
	"magazine-backoffice/internal/store"
	"magazine-backoffice/internal/usecase/verify"
)

// spyNotifier records every sent message.
type spyNotifier struct {
	mu    sync.Mutex
	sends []sentMessage
}

type sentMessage struct {
	userID  int64
	subject string
	body    string
}

func (s *spyNotifier) Send(_ context.Context, userID int64, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sends = append(s.sends, sentMessage{userID: userID, subject: subject, body: body})
	return nil
}

func (s *spyNotifier) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sends)
}

func newService(t *testing.T) (*verify.Service, *repository.VerificationRepository, *spyNotifier) {
	t.Helper()
	reg := repository.NewRegistry()
	require.NoError(t, repository.RegisterFactories(reg))
	codes, err := repository.NewVerificationRepository(reg, store.NewMemoryStore())
	require.NoError(t, err)

	spy := &spyNotifier{}
	svc := verify.NewService(codes, spy, slog.New(slog.NewTextHandler(io.Discard, nil)), 15*time.Minute)
	return svc, codes, spy
}

func TestService_SendCode_PersistsAndDispatches(t *testing.T) {
	svc, codes, spy := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, 1, entity.PurposeLogin))

	pending, err := codes.GetByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, entity.PurposeLogin, pending[0].Purpose())

	require.Equal(t, 1, spy.count())
	assert.Equal(t, int64(1), spy.sends[0].userID)
	assert.Contains(t, spy.sends[0].body, "LOGIN")
}

func TestService_SendCode_RateLimited(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.SendCode(ctx, 1, entity.PurposeLogin))
	}
	err := svc.SendCode(ctx, 1, entity.PurposeLogin)
	assert.Equal(t, entity.KindForbidden, entity.KindOf(err))

	// another user has their own budget
	assert.NoError(t, svc.SendCode(ctx, 2, entity.PurposeLogin))
}

func TestService_CheckCode_IsOneTime(t *testing.T) {
	svc, codes, _ := newService(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	_, err := codes.CreateCode(ctx, 1, "the-code", entity.PurposeRemind, now)
	require.NoError(t, err)

	ok, err := svc.CheckCode(ctx, "the-code", 1, entity.PurposeRemind)
	require.NoError(t, err)
	assert.True(t, ok)

	// consumed on the first successful check
	ok, err = svc.CheckCode(ctx, "the-code", 1, entity.PurposeRemind)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_CheckCode_PurposeAndUserMustMatch(t *testing.T) {
	svc, codes, _ := newService(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	_, err := codes.CreateCode(ctx, 1, "the-code", entity.PurposeRemind, now)
	require.NoError(t, err)

	ok, err := svc.CheckCode(ctx, "the-code", 1, entity.PurposeLogin)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.CheckCode(ctx, "the-code", 2, entity.PurposeRemind)
	require.NoError(t, err)
	assert.False(t, ok)

	// a mismatched check does not consume the code
	ok, err = svc.CheckCode(ctx, "the-code", 1, entity.PurposeRemind)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestService_CheckCode_ExpiredCodeIsDropped(t *testing.T) {
	svc, codes, _ := newService(t)
	ctx := context.Background()
	created := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	_, err := codes.CreateCode(ctx, 1, "the-code", entity.PurposeRemind, created)
	require.NoError(t, err)

	svc.Now = func() time.Time { return created.Add(16 * time.Minute) }

	ok, err := svc.CheckCode(ctx, "the-code", 1, entity.PurposeRemind)
	require.NoError(t, err)
	assert.False(t, ok)

	pending, err := codes.GetByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, pending, "expired matches are consumed, not retried")
}

func TestService_Sweep(t *testing.T) {
	svc, codes, _ := newService(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	_, err := codes.CreateCode(ctx, 1, "old", entity.PurposeLogin, base)
	require.NoError(t, err)
	_, err = codes.CreateCode(ctx, 2, "fresh", entity.PurposeLogin, base.Add(20*time.Minute))
	require.NoError(t, err)

	svc.Now = func() time.Time { return base.Add(30 * time.Minute) }

	dropped, err := svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)

	remaining, err := codes.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, int64(2), remaining[0].UserID())
}
