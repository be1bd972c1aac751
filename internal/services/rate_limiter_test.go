package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/learnsphere/internal/infrastructure/repositories"
	"github.com/you/learnsphere/internal/infrastructure/storage"
)

func newTestLoginLimiter(t *testing.T, start time.Time) (*RateLimiter, *time.Time) {
	t.Helper()

	repo := repositories.NewLoginAttemptRepository(storage.NewMemoryStore())
	limiter := NewRateLimiter(repo, LoginLimiterConfig())

	current := start
	limiter.now = func() time.Time { return current }
	return limiter, &current
}

func TestRateLimiter_AllowsFreshEmail(t *testing.T) {
	limiter, _ := newTestLoginLimiter(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	allowed, msg, err := limiter.Check(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Empty(t, msg)
}

func TestRateLimiter_LocksAfterMaxFailuresInWindow(t *testing.T) {
	ctx := context.Background()
	limiter, _ := newTestLoginLimiter(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	for i := 0; i < 5; i++ {
		allowed, _, err := limiter.Check(ctx, "a@b.com")
		require.NoError(t, err)
		require.True(t, allowed)
		_, err = limiter.Record(ctx, "a@b.com")
		require.NoError(t, err)
	}

	allowed, msg, err := limiter.Check(ctx, "a@b.com")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, "Too many failed attempts. Account locked for 5 minutes.", msg)
}

func TestRateLimiter_ReportsRemainingMinutesWhileLocked(t *testing.T) {
	ctx := context.Background()
	limiter, current := newTestLoginLimiter(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	for i := 0; i < 5; i++ {
		_, err := limiter.Record(ctx, "a@b.com")
		require.NoError(t, err)
	}
	_, _, err := limiter.Check(ctx, "a@b.com") // applies the lock
	require.NoError(t, err)

	*current = current.Add(90 * time.Second)
	allowed, msg, err := limiter.Check(ctx, "a@b.com")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, "Account temporarily locked. Try again in 4 minutes.", msg)
}

func TestRateLimiter_LockExpiresByWallClock(t *testing.T) {
	ctx := context.Background()
	limiter, current := newTestLoginLimiter(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	for i := 0; i < 5; i++ {
		_, err := limiter.Record(ctx, "a@b.com")
		require.NoError(t, err)
	}
	_, _, err := limiter.Check(ctx, "a@b.com")
	require.NoError(t, err)

	// Past the lockout AND the trailing window: attempts are allowed again.
	*current = current.Add(6 * time.Minute)
	allowed, msg, err := limiter.Check(ctx, "a@b.com")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Empty(t, msg)
}

func TestRateLimiter_LoginCountSurvivesExpiredLock(t *testing.T) {
	ctx := context.Background()
	limiter, current := newTestLoginLimiter(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	for i := 0; i < 5; i++ {
		_, err := limiter.Record(ctx, "a@b.com")
		require.NoError(t, err)
	}
	_, _, err := limiter.Check(ctx, "a@b.com")
	require.NoError(t, err)

	// The lock lapses but the count does not reset; one fresh failure locks
	// again immediately.
	*current = current.Add(6 * time.Minute)
	allowed, _, err := limiter.Check(ctx, "a@b.com")
	require.NoError(t, err)
	require.True(t, allowed)

	_, err = limiter.Record(ctx, "a@b.com")
	require.NoError(t, err)

	allowed, msg, err := limiter.Check(ctx, "a@b.com")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, "Too many failed attempts. Account locked for 5 minutes.", msg)
}

func TestRateLimiter_OTPCountResetsAfterWindow(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewOTPAttemptRepository(storage.NewMemoryStore())
	limiter := NewRateLimiter(repo, OTPLimiterConfig())
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }

	for i := 0; i < 3; i++ {
		_, err := limiter.Record(ctx, "a@b.com")
		require.NoError(t, err)
	}

	current = current.Add(10*time.Minute + time.Second)
	allowed, _, err := limiter.Check(ctx, "a@b.com")
	require.NoError(t, err)
	require.True(t, allowed)

	// The elapsed window zeroed the count: the next request is the first of
	// a fresh window, not a fourth.
	got, err := limiter.Record(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestRateLimiter_ClearForgetsHistory(t *testing.T) {
	ctx := context.Background()
	limiter, _ := newTestLoginLimiter(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	for i := 0; i < 5; i++ {
		_, err := limiter.Record(ctx, "a@b.com")
		require.NoError(t, err)
	}
	require.NoError(t, limiter.Clear(ctx, "a@b.com"))

	allowed, _, err := limiter.Check(ctx, "a@b.com")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimiter_RecordCounts(t *testing.T) {
	ctx := context.Background()
	limiter, _ := newTestLoginLimiter(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	for want := 1; want <= 3; want++ {
		got, err := limiter.Record(ctx, "a@b.com")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// Separate emails keep separate counts.
	got, err := limiter.Record(ctx, "other@b.com")
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}
