package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "gymgate/internal/errors"
	"gymgate/internal/service"
)

// PlanHandler handles subscription-plan endpoints.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new plan handler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// PlanRequest represents a plan create or update request.
type PlanRequest struct {
	Name         string          `json:"name" validate:"required"`
	DurationDays int             `json:"duration_days" validate:"required,gt=0"`
	Price        decimal.Decimal `json:"price"`
}

// CreatePlan godoc
// @Summary Create a subscription plan
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PlanRequest true "Plan data"
// @Success 201 {object} model.Plan
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /plans [post]
func (h *PlanHandler) CreatePlan(c echo.Context) error {
	var req PlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plan, err := h.planService.Add(c.Request().Context(), req.Name, req.DurationDays, req.Price)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, plan)
}

// GetPlan godoc
// @Summary Get a plan
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID"
// @Success 200 {object} model.Plan
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /plans/{id} [get]
func (h *PlanHandler) GetPlan(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	plan, err := h.planService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, plan)
}

// ListPlans godoc
// @Summary List all plans
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Plan
// @Failure 500 {object} errors.ErrorResponse
// @Router /plans [get]
func (h *PlanHandler) ListPlans(c echo.Context) error {
	plans, err := h.planService.List(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, plans)
}

// UpdatePlan godoc
// @Summary Update a plan
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID"
// @Param request body PlanRequest true "Plan data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /plans/{id} [put]
func (h *PlanHandler) UpdatePlan(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req PlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.planService.Update(c.Request().Context(), id, req.Name, req.DurationDays, req.Price); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "plan updated"})
}

// DeletePlan godoc
// @Summary Delete a plan
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /plans/{id} [delete]
func (h *PlanHandler) DeletePlan(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.planService.Delete(c.Request().Context(), id); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "plan deleted"})
}
