package entity

import (
	"time"

	"github.com/google/uuid"
)

// Location is a named place a device may be attached to.
// Devices reference locations but do not own them; only existence is checked
// before a device may point at one.
type Location struct {
	ID        uuid.UUID `json:"id"`         // The Global Unique Identifier (GUID) for the location.
	Name      string    `json:"name"`       // Human-readable location name.
	CreatedAt time.Time `json:"created_at"` // Timestamp of when this location was created.
	UpdatedAt time.Time `json:"updated_at"` // Timestamp of the last modification.
}
