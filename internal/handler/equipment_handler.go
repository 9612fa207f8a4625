package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "gymgate/internal/errors"
	"gymgate/internal/model"
	"gymgate/internal/service"
)

// EquipmentHandler handles equipment endpoints.
type EquipmentHandler struct {
	equipmentService service.EquipmentService
}

// NewEquipmentHandler creates a new equipment handler.
func NewEquipmentHandler(equipmentService service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipmentService: equipmentService}
}

// EquipmentRequest represents an equipment create or update request.
type EquipmentRequest struct {
	Name   string `json:"name" validate:"required"`
	Status string `json:"status" validate:"omitempty,oneof=usable under_maintenance disabled"`
}

// CreateEquipment godoc
// @Summary Register a piece of equipment
// @Tags equipment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EquipmentRequest true "Equipment data"
// @Success 201 {object} model.Equipment
// @Failure 400 {object} errors.ErrorResponse
// @Router /equipment [post]
func (h *EquipmentHandler) CreateEquipment(c echo.Context) error {
	var req EquipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	eq, err := h.equipmentService.Add(c.Request().Context(), req.Name, model.EquipmentStatus(req.Status))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, eq)
}

// GetEquipment godoc
// @Summary Get a piece of equipment
// @Tags equipment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Equipment ID"
// @Success 200 {object} model.Equipment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /equipment/{id} [get]
func (h *EquipmentHandler) GetEquipment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	eq, err := h.equipmentService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, eq)
}

// ListEquipment godoc
// @Summary List all equipment
// @Tags equipment
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Equipment
// @Failure 500 {object} errors.ErrorResponse
// @Router /equipment [get]
func (h *EquipmentHandler) ListEquipment(c echo.Context) error {
	items, err := h.equipmentService.List(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, items)
}

// UpdateEquipment godoc
// @Summary Update a piece of equipment
// @Tags equipment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Equipment ID"
// @Param request body EquipmentRequest true "Equipment data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /equipment/{id} [put]
func (h *EquipmentHandler) UpdateEquipment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req EquipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.equipmentService.Update(c.Request().Context(), id, req.Name, model.EquipmentStatus(req.Status)); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "equipment updated"})
}

// RecordMaintenance godoc
// @Summary Mark equipment as serviced and usable
// @Tags equipment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Equipment ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /equipment/{id}/maintenance [post]
func (h *EquipmentHandler) RecordMaintenance(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.equipmentService.RecordMaintenance(c.Request().Context(), id); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "maintenance recorded"})
}

// DeleteEquipment godoc
// @Summary Delete a piece of equipment
// @Tags equipment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Equipment ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /equipment/{id} [delete]
func (h *EquipmentHandler) DeleteEquipment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.equipmentService.Delete(c.Request().Context(), id); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "equipment deleted"})
}
