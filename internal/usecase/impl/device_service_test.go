package impl

import (
	"context"
	"testing"

	"devicehub/internal/domain/entity"
	domainerrors "devicehub/internal/domain/errors"
	"devicehub/internal/domain/repository"
	mockRepo "devicehub/internal/mocks/repository"
	"devicehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// deviceServiceFixtures holds all test dependencies for device service tests.
type deviceServiceFixtures struct {
	service      usecase.DeviceUsecase
	txManager    *mockRepo.MockTransactionManager
	deviceRepo   *mockRepo.MockDeviceRepository
	locationRepo *mockRepo.MockLocationRepository
}

func createTestDeviceService(t *testing.T) deviceServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	locationRepo := mockRepo.NewMockLocationRepository(t)

	service := NewDeviceService(DeviceServiceParams{
		TxManager:    txManager,
		DeviceRepo:   deviceRepo,
		LocationRepo: locationRepo,
		Logger:       newDiscardLogger(),
	})

	return deviceServiceFixtures{
		service:      service,
		txManager:    txManager,
		deviceRepo:   deviceRepo,
		locationRepo: locationRepo,
	}
}

func TestDeviceService_CreateDevice_StampsOwner(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	deviceID := uuid.New()
	input := &usecase.CreateDeviceInput{
		Name:     "Boiler sensor",
		Type:     "sensor",
		Login:    "boiler-01",
		Password: "s3cret",
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockDeviceRepo := mockRepo.NewMockDeviceRepository(t)
			mockLocationRepo := mockRepo.NewMockLocationRepository(t)

			mockFactory.EXPECT().DeviceRepo().Return(mockDeviceRepo)
			mockFactory.EXPECT().LocationRepo().Return(mockLocationRepo)

			mockDeviceRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Device")).
				Run(func(ctx context.Context, device *entity.Device) {
					device.ID = deviceID
				}).
				Return(nil)

			return fn(mockFactory)
		})

	device, err := fx.service.CreateDevice(ctx, ownerID, input)

	require.NoError(t, err)
	require.NotNil(t, device)
	assert.Equal(t, deviceID, device.ID)
	assert.Equal(t, ownerID, device.OwnerID)
	assert.Equal(t, input.Name, device.Name)
	assert.Nil(t, device.LocationID)
}

func TestDeviceService_CreateDevice_LocationMissing(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	locationID := uuid.New()
	input := &usecase.CreateDeviceInput{
		Name:       "Boiler sensor",
		Type:       "sensor",
		Login:      "boiler-01",
		Password:   "s3cret",
		LocationID: &locationID,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockDeviceRepo := mockRepo.NewMockDeviceRepository(t)
			mockLocationRepo := mockRepo.NewMockLocationRepository(t)

			mockFactory.EXPECT().DeviceRepo().Return(mockDeviceRepo).Maybe()
			mockFactory.EXPECT().LocationRepo().Return(mockLocationRepo)

			mockLocationRepo.EXPECT().Exists(ctx, locationID).Return(false, nil)

			return fn(mockFactory)
		})

	device, err := fx.service.CreateDevice(ctx, ownerID, input)

	assert.Error(t, err)
	assert.Nil(t, device)
	assert.True(t, errors.Is(err, domainerrors.ErrLocationNotFound))
}

func TestDeviceService_GetDevice_Success(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	deviceID := uuid.New()
	device := &entity.Device{ID: deviceID, OwnerID: ownerID, Name: "Boiler sensor"}

	fx.deviceRepo.EXPECT().FindByID(ctx, deviceID).Return(device, nil)

	got, err := fx.service.GetDevice(ctx, ownerID, deviceID)

	require.NoError(t, err)
	assert.Equal(t, device, got)
}

func TestDeviceService_GetDevice_NotFound(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	deviceID := uuid.New()

	fx.deviceRepo.EXPECT().FindByID(ctx, deviceID).Return(nil, repository.ErrDeviceNotFound)

	got, err := fx.service.GetDevice(ctx, uuid.New(), deviceID)

	assert.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, domainerrors.ErrDeviceNotFound))
}

func TestDeviceService_GetDevice_ForeignOwner(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	deviceID := uuid.New()
	device := &entity.Device{ID: deviceID, OwnerID: uuid.New()}

	fx.deviceRepo.EXPECT().FindByID(ctx, deviceID).Return(device, nil)

	got, err := fx.service.GetDevice(ctx, uuid.New(), deviceID)

	assert.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, domainerrors.ErrDeviceForbidden))
}

func TestDeviceService_UpdateDevice_PartialUpdate(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	deviceID := uuid.New()
	device := &entity.Device{
		ID:      deviceID,
		OwnerID: ownerID,
		Name:    "Old name",
		Type:    "sensor",
		Login:   "boiler-01",
	}
	newName := "New name"
	input := &usecase.UpdateDeviceInput{Name: &newName}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockDeviceRepo := mockRepo.NewMockDeviceRepository(t)

			mockFactory.EXPECT().DeviceRepo().Return(mockDeviceRepo)

			mockDeviceRepo.EXPECT().FindByID(ctx, deviceID).Return(device, nil)
			mockDeviceRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.Device")).
				Return(nil)

			return fn(mockFactory)
		})

	updated, err := fx.service.UpdateDevice(ctx, ownerID, deviceID, input)

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, newName, updated.Name)
	// Untouched fields survive a partial update.
	assert.Equal(t, "sensor", updated.Type)
	assert.Equal(t, "boiler-01", updated.Login)
}

func TestDeviceService_UpdateDevice_ForeignOwner(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	deviceID := uuid.New()
	device := &entity.Device{ID: deviceID, OwnerID: uuid.New()}
	newName := "New name"
	input := &usecase.UpdateDeviceInput{Name: &newName}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockDeviceRepo := mockRepo.NewMockDeviceRepository(t)

			mockFactory.EXPECT().DeviceRepo().Return(mockDeviceRepo)

			mockDeviceRepo.EXPECT().FindByID(ctx, deviceID).Return(device, nil)

			return fn(mockFactory)
		})

	updated, err := fx.service.UpdateDevice(ctx, uuid.New(), deviceID, input)

	assert.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrDeviceForbidden))
}

func TestDeviceService_UpdateDevice_LocationMissing(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	deviceID := uuid.New()
	locationID := uuid.New()
	input := &usecase.UpdateDeviceInput{LocationID: &locationID}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockLocationRepo := mockRepo.NewMockLocationRepository(t)

			mockFactory.EXPECT().LocationRepo().Return(mockLocationRepo)

			mockLocationRepo.EXPECT().Exists(ctx, locationID).Return(false, nil)

			return fn(mockFactory)
		})

	updated, err := fx.service.UpdateDevice(ctx, ownerID, deviceID, input)

	assert.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrLocationNotFound))
}

func TestDeviceService_UpdateDevice_LocationCheckedBeforeOwnership(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	deviceID := uuid.New()
	locationID := uuid.New()
	input := &usecase.UpdateDeviceInput{LocationID: &locationID}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockDeviceRepo := mockRepo.NewMockDeviceRepository(t)
			mockLocationRepo := mockRepo.NewMockLocationRepository(t)

			// The device must never be fetched once the location is missing,
			// so a caller cannot learn anything about a foreign device.
			mockFactory.EXPECT().DeviceRepo().Return(mockDeviceRepo).Maybe()
			mockFactory.EXPECT().LocationRepo().Return(mockLocationRepo)

			mockLocationRepo.EXPECT().Exists(ctx, locationID).Return(false, nil)

			return fn(mockFactory)
		})

	// Caller does not own the device; the dangling location must still win.
	updated, err := fx.service.UpdateDevice(ctx, uuid.New(), deviceID, input)

	assert.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrLocationNotFound))
	assert.False(t, errors.Is(err, domainerrors.ErrDeviceForbidden))
}

func TestDeviceService_DeleteDevice_Success(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	deviceID := uuid.New()
	device := &entity.Device{ID: deviceID, OwnerID: ownerID}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockDeviceRepo := mockRepo.NewMockDeviceRepository(t)

			mockFactory.EXPECT().DeviceRepo().Return(mockDeviceRepo)

			mockDeviceRepo.EXPECT().FindByID(ctx, deviceID).Return(device, nil)
			mockDeviceRepo.EXPECT().Delete(ctx, deviceID).Return(nil)

			return fn(mockFactory)
		})

	err := fx.service.DeleteDevice(ctx, ownerID, deviceID)

	require.NoError(t, err)
}

func TestDeviceService_DeleteDevice_NotFound(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	deviceID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockDeviceRepo := mockRepo.NewMockDeviceRepository(t)

			mockFactory.EXPECT().DeviceRepo().Return(mockDeviceRepo)

			mockDeviceRepo.EXPECT().FindByID(ctx, deviceID).Return(nil, repository.ErrDeviceNotFound)

			return fn(mockFactory)
		})

	err := fx.service.DeleteDevice(ctx, uuid.New(), deviceID)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDeviceNotFound))
}
