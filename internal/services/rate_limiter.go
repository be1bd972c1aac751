package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/you/learnsphere/domain"
)

// LimiterConfig parametrizes one windowed limiter instance.
type LimiterConfig struct {
	// MaxAttempts within Window triggers a Lockout.
	MaxAttempts int
	Window      time.Duration
	Lockout     time.Duration
	// ResetOnElapse zeroes the count once Window has passed since the last
	// attempt. Only the OTP limiter does this; the login limiter keeps its
	// count until cleared, so a single fresh failure after an expired lock
	// locks again immediately.
	ResetOnElapse bool
	// OnLock is the message returned when the lock is first applied.
	OnLock string
	// WhileLocked is a format string taking the remaining whole minutes.
	WhileLocked string
}

// LoginLimiterConfig is the login-failure policy: 5 failures in 5 minutes
// lock the account for 5 minutes. The record is cleared on successful login.
func LoginLimiterConfig() LimiterConfig {
	return LimiterConfig{
		MaxAttempts: 5,
		Window:      5 * time.Minute,
		Lockout:     5 * time.Minute,
		OnLock:      "Too many failed attempts. Account locked for 5 minutes.",
		WhileLocked: "Account temporarily locked. Try again in %d minutes.",
	}
}

// OTPLimiterConfig is the OTP-generation policy: 3 requests per
// (email, purpose) in 10 minutes lock issuance for 10 minutes. Unlike the
// login limiter this one is never cleared on success; the lock only lapses
// by the window elapsing.
func OTPLimiterConfig() LimiterConfig {
	return LimiterConfig{
		MaxAttempts:   3,
		Window:        10 * time.Minute,
		Lockout:       10 * time.Minute,
		ResetOnElapse: true,
		OnLock:        "Too many OTP requests. Please wait 10 minutes before trying again.",
		WhileLocked:   "Too many OTP requests. Try again in %d minutes.",
	}
}

// RateLimiter enforces a trailing-window attempt cap with a lazily computed
// lockout. State lives in an AttemptRepository; no background timers run,
// a lock expires purely by wall-clock comparison at the next Check.
type RateLimiter struct {
	repo domain.AttemptRepository
	cfg  LimiterConfig
	now  func() time.Time
}

// NewRateLimiter creates a limiter over the given attempt record.
func NewRateLimiter(repo domain.AttemptRepository, cfg LimiterConfig) *RateLimiter {
	return &RateLimiter{repo: repo, cfg: cfg, now: time.Now}
}

// Check reports whether a new attempt is allowed. When it is not, the
// returned message includes the remaining wait. Check may write back the
// record: it applies a pending lock and resets counters whose window has
// elapsed.
func (l *RateLimiter) Check(ctx context.Context, email string) (bool, string, error) {
	rec, err := l.repo.Find(ctx, email)
	if err != nil {
		return false, "", err
	}
	if rec == nil {
		return true, "", nil
	}

	now := l.now()

	if rec.LockedUntil != nil && rec.LockedUntil.After(now) {
		mins := int(math.Ceil(rec.LockedUntil.Sub(now).Minutes()))
		return false, fmt.Sprintf(l.cfg.WhileLocked, mins), nil
	}

	windowStart := now.Add(-l.cfg.Window)
	if rec.Attempts >= l.cfg.MaxAttempts && rec.LastAttempt.After(windowStart) {
		until := now.Add(l.cfg.Lockout)
		rec.LockedUntil = &until
		if err := l.repo.Put(ctx, rec); err != nil {
			return false, "", err
		}
		return false, l.cfg.OnLock, nil
	}

	// Window elapsed since the last attempt: the count starts over, where
	// the policy allows it.
	if l.cfg.ResetOnElapse && !rec.LastAttempt.After(windowStart) && rec.Attempts > 0 {
		rec.Attempts = 0
		rec.LockedUntil = nil
		if err := l.repo.Put(ctx, rec); err != nil {
			return false, "", err
		}
	}

	return true, "", nil
}

// Record adds one attempt for the email and returns the new count.
func (l *RateLimiter) Record(ctx context.Context, email string) (int, error) {
	rec, err := l.repo.Find(ctx, email)
	if err != nil {
		return 0, err
	}
	now := l.now()
	if rec == nil {
		rec = &domain.AttemptRecord{Email: email}
	}
	rec.Attempts++
	rec.LastAttempt = now
	if err := l.repo.Put(ctx, rec); err != nil {
		return 0, err
	}
	return rec.Attempts, nil
}

// Clear drops the record for the email entirely.
func (l *RateLimiter) Clear(ctx context.Context, email string) error {
	return l.repo.Clear(ctx, email)
}
