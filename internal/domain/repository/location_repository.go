package repository

import (
	"context"
	"errors"

	"devicehub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrLocationNotFound is returned when a location is not found.
var ErrLocationNotFound = errors.New("location not found")

// LocationRepository defines the interface for location lookups.
// Devices only reference locations, so existence checks are the core need.
type LocationRepository interface {
	// FindByID retrieves a location by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Location, error)

	// Exists reports whether a location with the given ID exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
