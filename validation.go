package main

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validator accumulates user-facing validation errors so a form can be
// redisplayed with every problem listed at once. All checks run
// server-side regardless of client-side hints.
type Validator struct {
	errors []string
}

func NewValidator() *Validator {
	return &Validator{errors: make([]string, 0)}
}

func (v *Validator) AddError(message string) {
	v.errors = append(v.errors, message)
}

func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

func (v *Validator) Errors() []string {
	return v.errors
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateRequired checks that a value is not blank.
func (v *Validator) ValidateRequired(value, message string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(message)
	}
	return v
}

// ValidateMaxLength checks a rune-count upper bound.
func (v *Validator) ValidateMaxLength(value, field string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.AddError(fmt.Sprintf("%s is too long (max %d characters).", field, max))
	}
	return v
}

// ValidateEmail checks email format. Skips blank values so required
// checks report separately.
func (v *Validator) ValidateEmail(email string) *Validator {
	if email == "" {
		return v
	}
	if len(email) > 255 || !emailPattern.MatchString(email) {
		v.AddError("Please enter a valid email address.")
	}
	return v
}

// ValidatePassword enforces the registration password policy: at least
// 8 characters with an uppercase letter, a digit, and a special
// character.
func (v *Validator) ValidatePassword(password string) *Validator {
	if utf8.RuneCountInString(password) < 8 {
		v.AddError("Password must be at least 8 characters.")
		return v
	}

	var hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		v.AddError("Password must contain at least one uppercase letter.")
	case !hasDigit:
		v.AddError("Password must contain at least one number.")
	case !hasSpecial:
		v.AddError("Password must contain at least one special character.")
	}
	return v
}

// ValidateMatch checks that two values (e.g. password and its
// confirmation) are identical.
func (v *Validator) ValidateMatch(a, b, message string) *Validator {
	if a != b {
		v.AddError(message)
	}
	return v
}
