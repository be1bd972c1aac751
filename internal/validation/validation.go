// Package validation holds the input hygiene rules shared by the signup and
// login flows: XSS-oriented sanitization, a suspicious-pattern blocklist,
// and the email/password shape checks.
package validation

import (
	"regexp"
	"strings"
)

var (
	angleBrackets = regexp.MustCompile(`[<>]`)
	jsProtocol    = regexp.MustCompile(`(?i)javascript:`)
	eventHandler  = regexp.MustCompile(`(?i)on\w+=`)
	scriptWord    = regexp.MustCompile(`(?i)script`)

	emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	passwordUpper   = regexp.MustCompile(`[A-Z]`)
	passwordDigit   = regexp.MustCompile(`[0-9]`)
	passwordSpecial = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)

	// Blocklist applied to every free-text credential field. The word
	// patterns double as a crude prompt-injection guard.
	suspiciousPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)ignore`),
		regexp.MustCompile(`(?i)system`),
		regexp.MustCompile(`(?i)prompt`),
		regexp.MustCompile(`(?i)assistant`),
		regexp.MustCompile(`[\x00-\x1f]`),
		regexp.MustCompile(`(?i)<script`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)data:`),
		regexp.MustCompile(`(?i)vbscript:`),
	}
)

// Sanitize strips HTML brackets, javascript: protocols, inline event
// handler attributes and the literal substring "script", then trims
// surrounding whitespace.
func Sanitize(input string) string {
	s := angleBrackets.ReplaceAllString(input, "")
	s = jsProtocol.ReplaceAllString(s, "")
	s = eventHandler.ReplaceAllString(s, "")
	s = scriptWord.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// IsSafe reports whether input matches none of the suspicious patterns.
func IsSafe(input string) bool {
	for _, p := range suspiciousPatterns {
		if p.MatchString(input) {
			return false
		}
	}
	return true
}

// ValidEmail checks the local@domain.tld shape used across the site,
// including the lead-capture endpoints.
func ValidEmail(email string) bool {
	return emailShape.MatchString(email)
}

// PasswordErrors returns every policy violation for the given password.
// An empty slice means the password is acceptable.
func PasswordErrors(password string) []string {
	var errs []string
	if len(password) < 8 {
		errs = append(errs, "Password must be at least 8 characters long")
	}
	if !passwordUpper.MatchString(password) {
		errs = append(errs, "Password must contain at least one uppercase letter")
	}
	if !passwordDigit.MatchString(password) {
		errs = append(errs, "Password must contain at least one number")
	}
	if !passwordSpecial.MatchString(password) {
		errs = append(errs, "Password must contain at least one special character")
	}
	return errs
}
