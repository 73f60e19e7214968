package types

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. The password hash is never
// serialized in any response.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UpdateProfileParams defines the fields allowed for profile updates.
// Pointers distinguish "not provided" from an empty value. Email and
// password are immutable on this surface.
type UpdateProfileParams struct {
	Name   *string
	Avatar *string
}
