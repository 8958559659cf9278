// Package validation provides the client-side checks that run before any
// network call: registration form rules and the password strength score.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

var (
	upperRe  = regexp.MustCompile(`[A-Z]`)
	digitRe  = regexp.MustCompile(`[0-9]`)
	symbolRe = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// FieldError is a single failed check on a named field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator accumulates field checks so a form can report every problem at
// once instead of stopping at the first.
type Validator struct {
	errors []FieldError
}

func NewValidator() *Validator {
	return &Validator{errors: make([]FieldError, 0)}
}

// Required checks that value is not blank.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.errors = append(v.errors, FieldError{Field: field, Message: "is required"})
	}
	return v
}

// MinLength checks the minimum length of value.
func (v *Validator) MinLength(field, value string, min int) *Validator {
	if len(value) < min {
		v.errors = append(v.errors, FieldError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters", min),
		})
	}
	return v
}

// Email checks that value looks like an email address.
func (v *Validator) Email(field, value string) *Validator {
	if value != "" && !strings.Contains(value, "@") {
		v.errors = append(v.errors, FieldError{Field: field, Message: "must be a valid email address"})
	}
	return v
}

// Matches checks that two fields carry the same value.
func (v *Validator) Matches(field, value, other, message string) *Validator {
	if value != other {
		v.errors = append(v.errors, FieldError{Field: field, Message: message})
	}
	return v
}

func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

func (v *Validator) Errors() []FieldError {
	return v.errors
}

// FirstMessage returns the first failed check formatted for display, or the
// empty string when everything passed.
func (v *Validator) FirstMessage() string {
	if len(v.errors) == 0 {
		return ""
	}
	return v.errors[0].Error()
}

// ValidateRegistration runs the pre-submit checks for the registration form.
func ValidateRegistration(username, email, password, confirm string) *Validator {
	v := NewValidator()
	v.Required("username", username)
	v.Required("email", email).Email("email", email)
	v.MinLength("password", password, MinPasswordLength)
	v.Matches("password", password, confirm, "passwords do not match")
	return v
}

// PasswordStrength scores a password 0–100: 25 points each for minimum
// length, an uppercase letter, a digit, and a symbol.
func PasswordStrength(password string) int {
	if password == "" {
		return 0
	}
	strength := 0
	if len(password) >= MinPasswordLength {
		strength += 25
	}
	if upperRe.MatchString(password) {
		strength += 25
	}
	if digitRe.MatchString(password) {
		strength += 25
	}
	if symbolRe.MatchString(password) {
		strength += 25
	}
	return strength
}
