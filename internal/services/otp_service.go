package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/you/learnsphere/domain"
)

// OTPConfig parametrizes the OTP manager.
type OTPConfig struct {
	TTL         time.Duration
	MaxAttempts int
}

// DefaultOTPConfig is the documented policy: 5-minute codes, 3 attempts.
func DefaultOTPConfig() OTPConfig {
	return OTPConfig{TTL: 5 * time.Minute, MaxAttempts: 3}
}

// OTPService issues and verifies one-time codes. At most one live entry
// exists per (email, purpose); issuing replaces the prior entry and
// verification destroys it on success, exhaustion, or expiry. Expired
// entries are purged lazily on every call.
type OTPService struct {
	otps     domain.OTPRepository
	requests *RateLimiter
	logins   *RateLimiter
	notifier domain.NotificationService
	logger   zerolog.Logger
	config   OTPConfig

	now      func() time.Time
	generate func() (string, error)
}

// NewOTPService creates the OTP manager. requests limits (re)generation per
// (email, purpose); logins is the login-failure limiter whose history a
// successful verification clears.
func NewOTPService(otps domain.OTPRepository, requests, logins *RateLimiter, notifier domain.NotificationService, logger zerolog.Logger, config OTPConfig) *OTPService {
	return &OTPService{
		otps:     otps,
		requests: requests,
		logins:   logins,
		notifier: notifier,
		logger:   logger,
		config:   config,
		now:      time.Now,
		generate: generateCode,
	}
}

// requestKey scopes the generation limiter to the (email, purpose) pair.
func requestKey(email string, purpose domain.OTPPurpose) string {
	return email + ":" + string(purpose)
}

// Issue generates, stores and hands off a fresh code. A limiter rejection
// is returned as ErrRateLimited wrapping the wait message. Delivery failure
// is logged but never fails the issue; the manager does not depend on the
// delivery collaborator succeeding.
func (s *OTPService) Issue(ctx context.Context, email string, purpose domain.OTPPurpose) (*domain.OTPEntry, error) {
	email = strings.ToLower(email)
	now := s.now()

	if err := s.otps.PurgeExpired(ctx, now); err != nil {
		return nil, err
	}

	allowed, msg, err := s.requests.Check(ctx, requestKey(email, purpose))
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s", domain.ErrRateLimited, msg)
	}

	code, err := s.generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	count, err := s.requests.Record(ctx, requestKey(email, purpose))
	if err != nil {
		return nil, err
	}

	entry := &domain.OTPEntry{
		Email:         email,
		Code:          code,
		Purpose:       purpose,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.config.TTL),
		Attempts:      0,
		RequestCount:  count,
		LastRequestAt: now,
	}
	if err := s.otps.Put(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.notifier.DeliverOTP(email, code, purpose); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("OTP delivery failed")
	}

	return entry, nil
}

// Verify checks a submitted code. Outcomes are user-facing results; only
// storage failures surface as errors.
func (s *OTPService) Verify(ctx context.Context, email string, purpose domain.OTPPurpose, code string) (*domain.VerifyResult, error) {
	email = strings.ToLower(email)
	code = strings.TrimSpace(code)
	now := s.now()

	if err := s.otps.PurgeExpired(ctx, now); err != nil {
		return nil, err
	}

	entry, err := s.otps.Find(ctx, email, purpose)
	if err == domain.ErrOTPNotFound {
		return &domain.VerifyResult{OK: false, Message: "No OTP found. Please request a new one."}, nil
	}
	if err != nil {
		return nil, err
	}

	if entry.Expired(now) {
		if err := s.otps.Remove(ctx, email, purpose); err != nil {
			return nil, err
		}
		return &domain.VerifyResult{OK: false, Message: "OTP has expired. Please request a new one."}, nil
	}

	if entry.Attempts >= s.config.MaxAttempts {
		if err := s.otps.Remove(ctx, email, purpose); err != nil {
			return nil, err
		}
		return &domain.VerifyResult{OK: false, Message: "Too many incorrect attempts. Please request a new OTP."}, nil
	}

	if entry.Code != code {
		entry.Attempts++
		if err := s.otps.Put(ctx, entry); err != nil {
			return nil, err
		}
		remaining := s.config.MaxAttempts - entry.Attempts
		if remaining <= 0 {
			return &domain.VerifyResult{OK: false, Message: "Too many incorrect attempts. Please request a new OTP."}, nil
		}
		plural := "s"
		if remaining == 1 {
			plural = ""
		}
		return &domain.VerifyResult{
			OK:      false,
			Message: fmt.Sprintf("Incorrect OTP. You have %d attempt%s left.", remaining, plural),
		}, nil
	}

	if err := s.otps.Remove(ctx, email, purpose); err != nil {
		return nil, err
	}
	// A verified identity also wipes the login failure history for the
	// email. The generation limiter is deliberately left alone: its window
	// must lapse naturally.
	if err := s.logins.Clear(ctx, email); err != nil {
		return nil, err
	}

	return &domain.VerifyResult{OK: true, Message: "OTP verified successfully!"}, nil
}

// generateCode draws a uniform 6-digit code from crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
