package usecase

import (
	"context"

	"devicehub/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateDeviceInput defines the data required to register a new device.
// The owner never comes from input; it is stamped from the caller's identity.
type CreateDeviceInput struct {
	Name       string
	Type       string
	Login      string
	Password   string
	LocationID *uuid.UUID
}

// UpdateDeviceInput defines a partial update: nil fields are left untouched.
type UpdateDeviceInput struct {
	Name       *string
	Type       *string
	Login      *string
	Password   *string
	LocationID *uuid.UUID
}

// DeviceUsecase defines the interface for device management use cases.
// Every operation takes the caller's identity and enforces the ownership rule:
// a device is visible and mutable only to the user recorded as its owner.
type DeviceUsecase interface {
	// CreateDevice registers a new device owned by the caller.
	CreateDevice(ctx context.Context, ownerID uuid.UUID, input *CreateDeviceInput) (*entity.Device, error)

	// GetDevice retrieves a device the caller owns.
	GetDevice(ctx context.Context, callerID, deviceID uuid.UUID) (*entity.Device, error)

	// UpdateDevice applies a partial update to a device the caller owns and
	// returns the updated representation.
	UpdateDevice(ctx context.Context, callerID, deviceID uuid.UUID, input *UpdateDeviceInput) (*entity.Device, error)

	// DeleteDevice removes a device the caller owns.
	DeleteDevice(ctx context.Context, callerID, deviceID uuid.UUID) error
}
