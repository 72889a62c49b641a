package handler

import (
	"log/slog"
	"net/http"

	"devicehub/internal/delivery/http/middleware"
	"devicehub/internal/delivery/http/response"
	"devicehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DeviceHandlerParams holds dependencies for DeviceHandler, injected by Fx.
type DeviceHandlerParams struct {
	fx.In

	DeviceUC usecase.DeviceUsecase
	Logger   *slog.Logger
}

// DeviceHandler holds dependencies for device-related handlers
type DeviceHandler struct {
	deviceUC usecase.DeviceUsecase
	logger   *slog.Logger
}

// NewDeviceHandler is the constructor for DeviceHandler
func NewDeviceHandler(params DeviceHandlerParams) *DeviceHandler {
	return &DeviceHandler{
		deviceUC: params.DeviceUC,
		logger:   params.Logger,
	}
}

// CreateDeviceRequest represents the request body for registering a device
type CreateDeviceRequest struct {
	Name       string `json:"name" validate:"required"`
	Type       string `json:"type" validate:"required"`
	Login      string `json:"login" validate:"required"`
	Password   string `json:"password" validate:"required"`
	LocationID string `json:"location_id" validate:"omitempty,uuid"`
}

// UpdateDeviceRequest represents a partial device update; absent fields stay untouched
type UpdateDeviceRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1"`
	Type       *string `json:"type" validate:"omitempty,min=1"`
	Login      *string `json:"login" validate:"omitempty,min=1"`
	Password   *string `json:"password" validate:"omitempty,min=1"`
	LocationID *string `json:"location_id" validate:"omitempty,uuid"`
}

// CreateDevice handles device registration
func (h *DeviceHandler) CreateDevice(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req CreateDeviceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid device input")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	locationID, err := parseOptionalUUID(req.LocationID)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid location ID")
	}

	device, err := h.deviceUC.CreateDevice(c.Request().Context(), userID, &usecase.CreateDeviceInput{
		Name:       req.Name,
		Type:       req.Type,
		Login:      req.Login,
		Password:   req.Password,
		LocationID: locationID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, device, "Device registered successfully")
}

// GetDevice handles retrieving a single device
func (h *DeviceHandler) GetDevice(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	deviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid device ID")
	}

	device, err := h.deviceUC.GetDevice(c.Request().Context(), userID, deviceID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, device, "Device retrieved successfully")
}

// UpdateDevice handles a partial update of a device
func (h *DeviceHandler) UpdateDevice(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	deviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid device ID")
	}

	var req UpdateDeviceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid device input")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	// A location_id that is present in the body must parse; an empty string is
	// invalid input here, not a request to leave the location untouched.
	var locationID *uuid.UUID
	if req.LocationID != nil {
		id, err := uuid.Parse(*req.LocationID)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid location ID")
		}
		locationID = &id
	}

	device, err := h.deviceUC.UpdateDevice(c.Request().Context(), userID, deviceID, &usecase.UpdateDeviceInput{
		Name:       req.Name,
		Type:       req.Type,
		Login:      req.Login,
		Password:   req.Password,
		LocationID: locationID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, device, "Device updated successfully")
}

// DeleteDevice handles removing a device
func (h *DeviceHandler) DeleteDevice(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	deviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid device ID")
	}

	if err := h.deviceUC.DeleteDevice(c.Request().Context(), userID, deviceID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"deleted": true}, "Device deleted successfully")
}

// parseOptionalUUID maps an empty string to nil and anything else to a parsed id.
func parseOptionalUUID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}

	return &id, nil
}
