// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered API user who can own devices.
// PasswordHash is only ever produced and checked through the PasswordHasher
// service; the plaintext password never reaches this entity.
type User struct {
	ID           uuid.UUID `json:"id"`         // The Global Unique Identifier (GUID) for the user.
	Name         string    `json:"name"`       // The user's display name.
	Email        string    `json:"email"`      // The user's unique email, used as the login identifier.
	PasswordHash string    `json:"-"`          // bcrypt hash of the user's password. Never serialized.
	CreatedAt    time.Time `json:"created_at"` // Timestamp of when this account was created.
	UpdatedAt    time.Time `json:"updated_at"` // Timestamp of the last modification.
}
