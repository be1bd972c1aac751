package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/you/learnsphere/domain"
	"github.com/you/learnsphere/internal/infrastructure/auth"
	"github.com/you/learnsphere/internal/validation"
)

// SessionConfig parametrizes session lifetimes.
type SessionConfig struct {
	TTL         time.Duration
	RememberTTL time.Duration
}

// DefaultSessionConfig is the documented policy: 24 hours, 7 days with
// "remember me".
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{TTL: 24 * time.Hour, RememberTTL: 7 * 24 * time.Hour}
}

// AccountService implements the credential store and session manager.
// Signup and login are two-phase: the first call validates and signals that
// OTP verification is required, the Complete* call persists the outcome.
type AccountService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	hasher   domain.PasswordHasher
	limiter  *RateLimiter
	logger   zerolog.Logger
	config   SessionConfig

	now      func() time.Time
	newToken func() (string, error)
}

// NewAccountService creates the account service. limiter is the
// login-failure limiter.
func NewAccountService(users domain.UserRepository, sessions domain.SessionRepository, hasher domain.PasswordHasher, limiter *RateLimiter, logger zerolog.Logger, config SessionConfig) *AccountService {
	return &AccountService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		limiter:  limiter,
		logger:   logger,
		config:   config,
		now:      time.Now,
		newToken: auth.NewSessionToken,
	}
}

// validateSignup enforces the signup rules on already-sanitized values.
// Shape and policy failures come back as validation errors; uniqueness
// conflicts as ErrEmailTaken or ErrUsernameTaken.
func (s *AccountService) validateSignup(ctx context.Context, username, email, password string) error {
	if !validation.IsSafe(username) || !validation.IsSafe(email) {
		return domain.NewValidationError("Invalid input detected")
	}
	if len(username) < 3 {
		return domain.NewValidationError("Username must be at least 3 characters long")
	}
	if !validation.ValidEmail(email) {
		return domain.NewValidationError("Please enter a valid email address")
	}
	if errs := validation.PasswordErrors(password); len(errs) > 0 {
		return domain.NewValidationError(strings.Join(errs, ". "))
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	return nil
}

// CreateUser validates a signup request without persisting anything. The
// user record is only written by CompleteUserCreation after the signup OTP
// verifies.
func (s *AccountService) CreateUser(ctx context.Context, username, email, password string) (*domain.SignupCheck, error) {
	cleanUsername := validation.Sanitize(username)
	cleanEmail := validation.Sanitize(strings.ToLower(email))

	err := s.validateSignup(ctx, cleanUsername, cleanEmail, password)
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return &domain.SignupCheck{Message: "An account with this email already exists"}, nil
	case errors.Is(err, domain.ErrUsernameTaken):
		return &domain.SignupCheck{Message: "This username is already taken"}, nil
	case errors.Is(err, domain.ErrValidation):
		return &domain.SignupCheck{Message: err.Error()}, nil
	case err != nil:
		return nil, err
	}

	return &domain.SignupCheck{
		OK:          true,
		Message:     "Please verify your email with the OTP sent to you",
		RequiresOTP: true,
	}, nil
}

// CompleteUserCreation persists the user after OTP verification. The signup
// rules run again in full: the OTP endpoints are publicly reachable, so this
// call cannot trust that the values ever passed CreateUser. Creation alone
// does not authenticate; a session is only issued by CompleteLogin.
func (s *AccountService) CompleteUserCreation(ctx context.Context, username, email, password string) (*domain.User, error) {
	cleanUsername := validation.Sanitize(username)
	cleanEmail := validation.Sanitize(strings.ToLower(email))

	if err := s.validateSignup(ctx, cleanUsername, cleanEmail, password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     cleanUsername,
		Email:        cleanEmail,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.users.Append(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user created")
	return user, nil
}

// Login checks credentials under the failure limiter. On success the caller
// must still verify an OTP before CompleteLogin grants a session. The
// mismatch message is deliberately generic so account existence never
// leaks.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	cleanEmail := validation.Sanitize(strings.ToLower(email))

	allowed, msg, err := s.limiter.Check(ctx, cleanEmail)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return &domain.LoginResult{Message: msg}, nil
	}

	if !validation.IsSafe(cleanEmail) || !validation.IsSafe(password) {
		if _, err := s.limiter.Record(ctx, cleanEmail); err != nil {
			return nil, err
		}
		return &domain.LoginResult{Message: "Invalid input detected"}, nil
	}

	user, err := s.users.FindByEmail(ctx, cleanEmail)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if user == nil || !s.hasher.Verify(user.PasswordHash, password) {
		if _, err := s.limiter.Record(ctx, cleanEmail); err != nil {
			return nil, err
		}
		return &domain.LoginResult{Message: "Incorrect email or password"}, nil
	}

	if err := s.limiter.Clear(ctx, cleanEmail); err != nil {
		return nil, err
	}

	return &domain.LoginResult{
		OK:          true,
		Message:     "Please verify your identity with the OTP sent to your email",
		User:        user,
		RequiresOTP: true,
	}, nil
}

// CompleteLogin issues the session after the login OTP verified. The new
// session overwrites any previous one.
func (s *AccountService) CompleteLogin(ctx context.Context, user *domain.User, rememberMe bool) (*domain.Session, error) {
	token, err := s.newToken()
	if err != nil {
		return nil, err
	}

	ttl := s.config.TTL
	if rememberMe {
		ttl = s.config.RememberTTL
	}
	session := &domain.Session{
		Token:      token,
		UserID:     user.ID,
		ExpiresAt:  s.now().Add(ttl),
		RememberMe: rememberMe,
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Bool("remember_me", rememberMe).Msg("session issued")
	return session, nil
}

// CurrentUser resolves the persisted session. An expired session is deleted
// lazily here; no timer revokes it earlier. Returns (nil, nil) when nobody
// is logged in.
func (s *AccountService) CurrentUser(ctx context.Context) (*domain.User, error) {
	session, err := s.sessions.Current(ctx)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !session.ExpiresAt.After(s.now()) {
		if err := s.sessions.Delete(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Logout deletes the current session unconditionally.
func (s *AccountService) Logout(ctx context.Context) error {
	return s.sessions.Delete(ctx)
}
