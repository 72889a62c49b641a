package impl

import (
	"context"
	"log/slog"

	deliverycontext "devicehub/internal/delivery/context"
	"devicehub/internal/domain/entity"
	domainerrors "devicehub/internal/domain/errors"
	"devicehub/internal/domain/repository"
	"devicehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// deviceService implements the DeviceUsecase interface.
//
// Access rule for every fetch-then-act operation: a missing device is 404, an
// existing device owned by someone else is 403. A 403 therefore confirms the
// id exists; that is part of the public contract and kept on purpose.
type deviceService struct {
	txManager    repository.TransactionManager
	deviceRepo   repository.DeviceRepository
	locationRepo repository.LocationRepository
	logger       *slog.Logger
}

// DeviceServiceParams holds dependencies for deviceService, injected by Fx.
type DeviceServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	DeviceRepo   repository.DeviceRepository
	LocationRepo repository.LocationRepository
	Logger       *slog.Logger
}

// NewDeviceService is the constructor for deviceService.
func NewDeviceService(params DeviceServiceParams) usecase.DeviceUsecase {
	return &deviceService{
		txManager:    params.TxManager,
		deviceRepo:   params.DeviceRepo,
		locationRepo: params.LocationRepo,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *deviceService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateDevice registers a new device. The owner is stamped from the caller's
// identity, never from input, so ownership cannot be forged.
func (srv *deviceService) CreateDevice(ctx context.Context, ownerID uuid.UUID, input *usecase.CreateDeviceInput) (*entity.Device, error) {
	device := &entity.Device{
		Name:       input.Name,
		Type:       input.Type,
		Login:      input.Login,
		Password:   input.Password,
		LocationID: input.LocationID,
		OwnerID:    ownerID,
	}

	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := srv.checkLocationExists(ctx, repoFactory.LocationRepo(), input.LocationID); err != nil {
			return err
		}

		if err := repoFactory.DeviceRepo().Create(ctx, device); err != nil {
			if errors.Is(err, repository.ErrIntegrityViolation) {
				return domainerrors.ErrIntegrityViolation.WrapMessage("failed to create device")
			}

			return errors.Wrap(err, "failed to create device")
		}

		return nil
	}); err != nil {
		srv.log(ctx).Warn("Device creation failed", slog.Any("ownerID", ownerID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Created device", slog.Any("deviceID", device.ID), slog.Any("ownerID", ownerID))

	return device, nil
}

// GetDevice retrieves a device after passing the ownership check.
func (srv *deviceService) GetDevice(ctx context.Context, callerID, deviceID uuid.UUID) (*entity.Device, error) {
	device, err := srv.fetchOwnedDevice(ctx, srv.deviceRepo, callerID, deviceID)
	if err != nil {
		return nil, err
	}

	return device, nil
}

// UpdateDevice applies a partial update to an owned device inside one
// transaction and returns the updated representation.
func (srv *deviceService) UpdateDevice(ctx context.Context, callerID, deviceID uuid.UUID, input *usecase.UpdateDeviceInput) (*entity.Device, error) {
	var updated *entity.Device

	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		// The referenced location is validated before the device is even
		// fetched, so a dangling location answers 400 regardless of ownership.
		if input.LocationID != nil {
			if err := srv.checkLocationExists(ctx, repoFactory.LocationRepo(), input.LocationID); err != nil {
				return err
			}
		}

		deviceRepo := repoFactory.DeviceRepo()

		device, err := srv.fetchOwnedDevice(ctx, deviceRepo, callerID, deviceID)
		if err != nil {
			return err
		}

		applyDeviceUpdate(device, input)

		if err := deviceRepo.Update(ctx, device); err != nil {
			if errors.Is(err, repository.ErrIntegrityViolation) {
				return domainerrors.ErrIntegrityViolation.WrapMessage("failed to update device")
			}

			return errors.Wrap(err, "failed to update device")
		}

		// Re-read so the response reflects database-applied values (timestamps).
		updated, err = deviceRepo.FindByID(ctx, deviceID)
		if err != nil {
			return errors.Wrap(err, "failed to reload device after update")
		}

		return nil
	}); err != nil {
		srv.log(ctx).Warn("Device update failed", slog.Any("deviceID", deviceID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Updated device", slog.Any("deviceID", deviceID))

	return updated, nil
}

// DeleteDevice removes an owned device.
func (srv *deviceService) DeleteDevice(ctx context.Context, callerID, deviceID uuid.UUID) error {
	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		deviceRepo := repoFactory.DeviceRepo()

		if _, err := srv.fetchOwnedDevice(ctx, deviceRepo, callerID, deviceID); err != nil {
			return err
		}

		if err := deviceRepo.Delete(ctx, deviceID); err != nil {
			return errors.Wrap(err, "failed to delete device")
		}

		return nil
	}); err != nil {
		srv.log(ctx).Warn("Device deletion failed", slog.Any("deviceID", deviceID), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Debug("Deleted device", slog.Any("deviceID", deviceID))

	return nil
}

// fetchOwnedDevice loads a device and applies the ownership check.
func (srv *deviceService) fetchOwnedDevice(ctx context.Context, deviceRepo repository.DeviceRepository, callerID, deviceID uuid.UUID) (*entity.Device, error) {
	device, err := deviceRepo.FindByID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return nil, domainerrors.ErrDeviceNotFound.WrapMessage("device lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find device by id")
	}

	if !device.OwnedBy(callerID) {
		srv.log(ctx).Warn("Ownership check failed",
			slog.Any("deviceID", deviceID),
			slog.Any("callerID", callerID),
		)

		return nil, domainerrors.ErrDeviceForbidden.WrapMessage("ownership check failed")
	}

	return device, nil
}

// checkLocationExists validates a referenced location before a device may point at it.
func (srv *deviceService) checkLocationExists(ctx context.Context, locationRepo repository.LocationRepository, locationID *uuid.UUID) error {
	if locationID == nil {
		return nil
	}

	exists, err := locationRepo.Exists(ctx, *locationID)
	if err != nil {
		return errors.Wrap(err, "failed to check location existence")
	}
	if !exists {
		return domainerrors.ErrLocationNotFound.WrapMessage("device references a missing location")
	}

	return nil
}

// applyDeviceUpdate copies the non-nil fields of a partial update onto the device.
func applyDeviceUpdate(device *entity.Device, input *usecase.UpdateDeviceInput) {
	if input.Name != nil {
		device.Name = *input.Name
	}
	if input.Type != nil {
		device.Type = *input.Type
	}
	if input.Login != nil {
		device.Login = *input.Login
	}
	if input.Password != nil {
		device.Password = *input.Password
	}
	if input.LocationID != nil {
		device.LocationID = input.LocationID
	}
}
