package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequired(t *testing.T) {
	v := NewValidator()
	v.ValidateRequired("present", "First name is required.")
	assert.False(t, v.HasErrors())

	v.ValidateRequired("   ", "First name is required.")
	assert.Equal(t, []string{"First name is required."}, v.Errors())
}

func TestValidateMaxLength(t *testing.T) {
	v := NewValidator()
	v.ValidateMaxLength(strings.Repeat("a", 255), "Title", 255)
	assert.False(t, v.HasErrors())

	v.ValidateMaxLength(strings.Repeat("a", 256), "Title", 255)
	assert.Equal(t, []string{"Title is too long (max 255 characters)."}, v.Errors())
}

func TestValidateMaxLengthCountsRunes(t *testing.T) {
	v := NewValidator()
	v.ValidateMaxLength(strings.Repeat("ż", 10), "Notes", 10)
	assert.False(t, v.HasErrors(), "multibyte characters count once each")
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last+tag@example.org", "UPPER@EXAMPLE.COM"}
	for _, email := range valid {
		v := NewValidator()
		v.ValidateEmail(email)
		assert.False(t, v.HasErrors(), "expected %q to be valid", email)
	}

	invalid := []string{"plain", "missing@tld", "@example.com", "a b@example.com", "a@example.com" + strings.Repeat("m", 255)}
	for _, email := range invalid {
		v := NewValidator()
		v.ValidateEmail(email)
		assert.True(t, v.HasErrors(), "expected %q to be invalid", email)
	}
}

func TestValidateEmailSkipsBlank(t *testing.T) {
	v := NewValidator()
	v.ValidateEmail("")
	assert.False(t, v.HasErrors(), "required check reports blanks separately")
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		want     string
	}{
		{"Abc1!xyz", ""},
		{"Ab1!", "Password must be at least 8 characters."},
		{"abcd1!xyz", "Password must contain at least one uppercase letter."},
		{"Abcdefg!", "Password must contain at least one number."},
		{"Abcdefg1", "Password must contain at least one special character."},
	}

	for _, tc := range cases {
		v := NewValidator()
		v.ValidatePassword(tc.password)
		if tc.want == "" {
			assert.False(t, v.HasErrors(), "expected %q to pass", tc.password)
			continue
		}
		assert.Equal(t, []string{tc.want}, v.Errors(), "password %q", tc.password)
	}
}

func TestValidateMatch(t *testing.T) {
	v := NewValidator()
	v.ValidateMatch("same", "same", "Passwords do not match.")
	assert.False(t, v.HasErrors())

	v.ValidateMatch("one", "two", "Passwords do not match.")
	assert.Equal(t, []string{"Passwords do not match."}, v.Errors())
}

func TestValidatorChaining(t *testing.T) {
	v := NewValidator()
	v.ValidateRequired("", "Email is required.").
		ValidateRequired("", "Password is required.")

	assert.Equal(t, []string{"Email is required.", "Password is required."}, v.Errors())
}
