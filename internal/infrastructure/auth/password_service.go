package auth

import (
	"strconv"
	"unicode/utf16"

	"golang.org/x/crypto/bcrypt"

	"github.com/you/learnsphere/domain"
)

// PasswordServiceImpl implements domain.PasswordHasher with bcrypt. This is
// the default hasher.
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a bcrypt-backed password service.
func NewPasswordService() domain.PasswordHasher {
	return &PasswordServiceImpl{cost: bcrypt.DefaultCost}
}

// Hash implements domain.PasswordHasher.
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordHasher.
func (p *PasswordServiceImpl) Verify(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// LegacyHasher implements domain.PasswordHasher with the 32-bit rolling
// hash the prototype shipped with: abs(djb-style hash) in base 36 plus the
// password length. It is deterministic and NOT cryptographically secure;
// it exists to keep stores written by the prototype readable and for the
// documented deterministic-digest contract. Do not select it for new
// deployments.
type LegacyHasher struct{}

// NewLegacyHasher creates the prototype-compatible hasher.
func NewLegacyHasher() domain.PasswordHasher {
	return LegacyHasher{}
}

// Hash implements domain.PasswordHasher.
func (LegacyHasher) Hash(password string) (string, error) {
	units := utf16.Encode([]rune(password))
	var h int32
	for _, u := range units {
		h = (h << 5) - h + int32(u)
	}
	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}
	return strconv.FormatInt(abs, 36) + strconv.Itoa(len(units)), nil
}

// Verify implements domain.PasswordHasher by recomputing the digest.
func (l LegacyHasher) Verify(hashedPassword, password string) bool {
	h, err := l.Hash(password)
	if err != nil {
		return false
	}
	return h == hashedPassword
}
