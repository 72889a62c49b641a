package postgres

import (
	"context"

	"devicehub/internal/domain/entity"
	domainerrors "devicehub/internal/domain/errors"
	"devicehub/internal/domain/repository"
	"devicehub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// deviceRepository implements the repository.DeviceRepository interface.
type deviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository is the constructor for deviceRepository.
func NewDeviceRepository(db *gorm.DB) repository.DeviceRepository {
	return &deviceRepository{db: db}
}

// Create persists a new device.
func (repo *deviceRepository) Create(ctx context.Context, device *entity.Device) error {
	deviceM := fromDeviceDomain(device)

	if err := repo.db.WithContext(ctx).Create(deviceM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) || isNotNullConstraintViolation(err) {
			return repository.ErrIntegrityViolation
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create device")
	}

	// Update the entity with generated values.
	device.ID = deviceM.ID
	device.CreatedAt = deviceM.CreatedAt
	device.UpdatedAt = deviceM.UpdatedAt

	return nil
}

// FindByID retrieves a device by its unique ID.
func (repo *deviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Device, error) {
	var deviceM model.DeviceModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&deviceM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDeviceNotFound
		}

		return nil, errors.Wrap(err, "failed to find device by id")
	}

	return toDeviceDomain(&deviceM), nil
}

// Update persists the mutable fields of an existing device.
// owner_id is deliberately excluded: ownership is fixed at creation.
func (repo *deviceRepository) Update(ctx context.Context, device *entity.Device) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DeviceModel{}).
		Where("id = ?", device.ID).
		Updates(map[string]any{
			"name":        device.Name,
			"type":        device.Type,
			"login":       device.Login,
			"password":    device.Password,
			"location_id": device.LocationID,
		})

	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrIntegrityViolation
		}

		return errors.Wrap(result.Error, "failed to update device")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDeviceNotFound
	}

	return nil
}

// Delete removes a device by its ID.
func (repo *deviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.DeviceModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete device")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDeviceNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toDeviceDomain converts a GORM DeviceModel to a domain Device entity.
func toDeviceDomain(data *model.DeviceModel) *entity.Device {
	if data == nil {
		return nil
	}

	return &entity.Device{
		ID:         data.ID,
		Name:       data.Name,
		Type:       data.Type,
		Login:      data.Login,
		Password:   data.Password,
		LocationID: data.LocationID,
		OwnerID:    data.OwnerID,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromDeviceDomain converts a domain Device entity to a GORM DeviceModel.
func fromDeviceDomain(data *entity.Device) *model.DeviceModel {
	if data == nil {
		return nil
	}

	return &model.DeviceModel{
		ID:         data.ID,
		Name:       data.Name,
		Type:       data.Type,
		Login:      data.Login,
		Password:   data.Password,
		LocationID: data.LocationID,
		OwnerID:    data.OwnerID,
	}
}
