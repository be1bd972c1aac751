package domain

import "time"

// OTPPurpose identifies the flow an OTP belongs to. There is at most one
// live OTPEntry per (email, purpose) pair.
type OTPPurpose string

const (
	OTPPurposeSignup OTPPurpose = "signup"
	OTPPurposeLogin  OTPPurpose = "login"
)

// User represents a registered account. Emails are lowercased before any
// lookup or storage; records are immutable once created.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// OTPEntry is a stored one-time code. A new request for the same
// (email, purpose) pair replaces the prior entry.
type OTPEntry struct {
	Email         string     `json:"email"`
	Code          string     `json:"code"`
	Purpose       OTPPurpose `json:"purpose"`
	CreatedAt     time.Time  `json:"createdAt"`
	ExpiresAt     time.Time  `json:"expiresAt"`
	Attempts      int        `json:"attempts"`
	RequestCount  int        `json:"requestCount"`
	LastRequestAt time.Time  `json:"lastRequest"`
}

// Expired reports whether the entry is past its expiry at the given instant.
func (e *OTPEntry) Expired(now time.Time) bool {
	return !e.ExpiresAt.After(now)
}

// AttemptRecord accumulates failed logins or OTP requests for one email.
// Lockout state is computed lazily from the stored timestamps; there are no
// background timers.
type AttemptRecord struct {
	Email       string     `json:"email"`
	Attempts    int        `json:"attempts"`
	LastAttempt time.Time  `json:"lastAttempt"`
	LockedUntil *time.Time `json:"lockedUntil,omitempty"`
}

// Session is the single current authenticated state. A new login overwrites
// any previous session; validity is a pure function of time vs ExpiresAt.
type Session struct {
	Token      string    `json:"token"`
	UserID     string    `json:"userId"`
	ExpiresAt  time.Time `json:"expiresAt"`
	RememberMe bool      `json:"rememberMe"`
}

// SignupCheck is the outcome of validating a signup request. The user is
// not persisted until OTP verification completes.
type SignupCheck struct {
	OK          bool
	Message     string
	RequiresOTP bool
}

// LoginResult is the outcome of a credential check. A session is only
// issued after the follow-up OTP verification.
type LoginResult struct {
	OK          bool
	Message     string
	User        *User
	RequiresOTP bool
}

// VerifyResult is the outcome of an OTP verification attempt.
type VerifyResult struct {
	OK      bool
	Message string
}
