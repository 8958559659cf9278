package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     int
	}{
		{"empty", "", 0},
		{"short lowercase", "abc", 0},
		{"length only", "abcdef", 25},
		{"length and upper", "Abcdef", 50},
		{"length upper digit", "Abcde1", 75},
		{"all four checks", "Abcd1!", 100},
		{"short but varied", "A1!", 75},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PasswordStrength(tc.password))
		})
	}
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		confirm  string
		wantErr  string
	}{
		{"valid", "alice", "a@b.com", "secret1", "secret1", ""},
		{"missing username", "", "a@b.com", "secret1", "secret1", "username: is required"},
		{"bad email", "alice", "not-an-email", "secret1", "secret1", "email: must be a valid email address"},
		{"short password", "alice", "a@b.com", "abc", "abc", "password: must be at least 6 characters"},
		{"mismatch", "alice", "a@b.com", "secret1", "secret2", "password: passwords do not match"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := ValidateRegistration(tc.username, tc.email, tc.password, tc.confirm)
			if tc.wantErr == "" {
				assert.False(t, v.HasErrors(), "unexpected errors: %v", v.Errors())
				assert.Empty(t, v.FirstMessage())
				return
			}
			assert.True(t, v.HasErrors())
			assert.Equal(t, tc.wantErr, v.FirstMessage())
		})
	}
}

func TestValidator_CollectsAllErrors(t *testing.T) {
	v := ValidateRegistration("", "", "x", "y")
	assert.GreaterOrEqual(t, len(v.Errors()), 3)
}
