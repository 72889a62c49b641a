package repository

import (
	"context"
	"errors"

	"devicehub/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for device persistence.
var (
	// ErrDeviceNotFound is returned when a device is not found.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrIntegrityViolation is returned when a referential constraint is violated.
	ErrIntegrityViolation = errors.New("integrity constraint violation")
)

// DeviceRepository defines the interface for device-related database operations.
type DeviceRepository interface {
	// Create persists a new device. The OwnerID on the entity must already be set.
	Create(ctx context.Context, device *entity.Device) error

	// FindByID retrieves a device by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Device, error)

	// Update persists the mutable fields of an existing device.
	// OwnerID is never written; ownership is fixed at creation.
	Update(ctx context.Context, device *entity.Device) error

	// Delete removes a device by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
