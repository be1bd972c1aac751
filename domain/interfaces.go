package domain

import (
	"context"
	"time"
)

// Store is an injected key-value repository holding a small set of named
// JSON records. Every operation above it is read-all / mutate / write-back,
// so concurrent writers are last-write-wins; that is an accepted limitation
// of the simulation and is documented rather than locked around.
type Store interface {
	// Load unmarshals the record stored under key into v, returning
	// ErrRecordNotFound when the key is absent.
	Load(ctx context.Context, key string, v interface{}) error
	Save(ctx context.Context, key string, v interface{}) error
	Delete(ctx context.Context, key string) error
}

// UserRepository defines user data access operations.
type UserRepository interface {
	Append(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}

// OTPRepository defines access to stored one-time codes.
type OTPRepository interface {
	Find(ctx context.Context, email string, purpose OTPPurpose) (*OTPEntry, error)
	// Put replaces any existing entry for the same (email, purpose) pair.
	Put(ctx context.Context, entry *OTPEntry) error
	Remove(ctx context.Context, email string, purpose OTPPurpose) error
	// PurgeExpired drops every entry whose expiry is at or before now.
	PurgeExpired(ctx context.Context, now time.Time) error
}

// AttemptRepository tracks failure or request counts per email. Two
// instances exist over distinct records: login failures and OTP requests.
type AttemptRepository interface {
	Find(ctx context.Context, email string) (*AttemptRecord, error)
	Put(ctx context.Context, rec *AttemptRecord) error
	Clear(ctx context.Context, email string) error
}

// SessionRepository holds the single current session.
type SessionRepository interface {
	Put(ctx context.Context, session *Session) error
	Current(ctx context.Context) (*Session, error)
	Delete(ctx context.Context) error
}

// PasswordHasher defines the password digest contract: a deterministic-or-
// verifiable digest is stored instead of the plaintext, verification never
// reveals which field was wrong.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// NotificationService is the out-of-band delivery boundary. The OTP manager
// does not depend on delivery succeeding.
type NotificationService interface {
	DeliverOTP(email, code string, purpose OTPPurpose) error
	SendEmail(to, subject, body string) error
}
