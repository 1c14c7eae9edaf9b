package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	// RefreshToken holds the single live refresh token for the account.
	// Empty string means no active session.
	RefreshToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfilePatch carries the optional fields of an account update.
// A nil field is left untouched.
type ProfilePatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	UserId       uuid.UUID
}
