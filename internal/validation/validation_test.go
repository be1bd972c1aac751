package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "alice", "alice"},
		{"angle brackets stripped", "<b>alice</b>", "balice/b"},
		{"javascript protocol stripped", "javascript:alert(1)", "alert(1)"},
		{"event handler stripped", "onclick=alert(1)", "alert(1)"},
		{"script substring stripped", "de script ion", "de  ion"},
		{"whitespace trimmed", "  alice  ", "alice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestIsSafe(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain email", "alice@example.com", true},
		{"ignore keyword", "please IGNORE this", false},
		{"system keyword", "system", false},
		{"prompt keyword", "my-Prompt", false},
		{"assistant keyword", "assistant42", false},
		{"control character", "ali\x07ce", false},
		{"script tag", "<script>x</script>", false},
		{"data uri", "data:text/html;base64,x", false},
		{"vbscript uri", "vbscript:msgbox", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSafe(tt.input))
		})
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("a@b.com"))
	assert.True(t, ValidEmail("alice.smith+tag@sub.example.co"))
	assert.False(t, ValidEmail("alice"))
	assert.False(t, ValidEmail("a b@c.com"))
	assert.False(t, ValidEmail("a@b"))
	assert.False(t, ValidEmail("@b.com"))
}

func TestPasswordErrors(t *testing.T) {
	assert.Empty(t, PasswordErrors("Password123!"))

	errs := PasswordErrors("weak")
	assert.Len(t, errs, 4)

	assert.Len(t, PasswordErrors("password123!"), 1) // missing uppercase
	assert.Len(t, PasswordErrors("Password!"), 1)    // missing digit
	assert.Len(t, PasswordErrors("Password123"), 1)  // missing special
	assert.Len(t, PasswordErrors("Pw1!"), 1)         // too short only
}
