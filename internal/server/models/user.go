// Package models holds the persisted domain records of Sentivox.
package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Roles assignable to a user.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	ErrNameRequired  = errors.New("please add a name")
	ErrNameTooLong   = errors.New("name can not be more than 50 characters")
	ErrEmailRequired = errors.New("please add an email")
	ErrEmailInvalid  = errors.New("please add a valid email")
	ErrPasswordShort = errors.New("password must be at least 6 characters")
	ErrPasswordLong  = errors.New("password can not be more than 72 bytes")
)

// maxPasswordBytes is the bcrypt input limit; longer candidates make
// bcrypt.GenerateFromPassword fail, so they are rejected up front.
const maxPasswordBytes = 72

// User is a credential-store record. The Password field holds only the
// bcrypt digest and is never serialized in responses.
type User struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Password        string    `json:"-"`
	Role            string    `json:"role"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NormalizeEmail lowercases and trims an email address before storage or
// lookup so the unique index is case-insensitive in effect.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegistration checks the user-supplied registration fields.
// The password is the plaintext candidate, not the digest.
func ValidateRegistration(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(name) > 50 {
		return ErrNameTooLong
	}
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if !emailRe.MatchString(NormalizeEmail(email)) {
		return ErrEmailInvalid
	}
	if len(password) < 6 {
		return ErrPasswordShort
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordLong
	}
	return nil
}
