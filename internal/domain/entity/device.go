package entity

import (
	"time"

	"github.com/google/uuid"
)

// Device represents an IoT endpoint credential owned by a single user.
// OwnerID is stamped once at creation from the authenticated identity and is
// immutable afterwards; every read or mutation must pass OwnedBy first.
type Device struct {
	ID         uuid.UUID  `json:"id"`          // The Global Unique Identifier (GUID) for the device.
	Name       string     `json:"name"`        // Human-readable device name.
	Type       string     `json:"type"`        // Device type, e.g. "sensor", "camera".
	Login      string     `json:"login"`       // Login the device authenticates with against its endpoint.
	Password   string     `json:"password"`    // Credential for the device endpoint (opaque to this service).
	LocationID *uuid.UUID `json:"location_id"` // Optional reference to a Location; validated on create/update.
	OwnerID    uuid.UUID  `json:"owner_id"`    // The user who created the device. Immutable.
	CreatedAt  time.Time  `json:"created_at"`  // Timestamp of when this device was registered.
	UpdatedAt  time.Time  `json:"updated_at"`  // Timestamp of the last modification.
}

// OwnedBy reports whether the device belongs to the given user.
func (d *Device) OwnedBy(userID uuid.UUID) bool {
	return d.OwnerID == userID
}
