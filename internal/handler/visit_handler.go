package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "gymgate/internal/errors"
	"gymgate/internal/service"
)

// VisitHandler handles check-in and visit history endpoints.
type VisitHandler struct {
	visitService service.VisitService
}

// NewVisitHandler creates a new visit handler.
func NewVisitHandler(visitService service.VisitService) *VisitHandler {
	return &VisitHandler{visitService: visitService}
}

// CheckInRequest represents a barcode check-in request.
type CheckInRequest struct {
	Barcode string `json:"barcode" validate:"required,len=12,numeric"`
}

// CheckIn godoc
// @Summary Check a member in by barcode
// @Tags visits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CheckInRequest true "Scanned barcode"
// @Success 200 {object} service.CheckInResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /visits/checkin [post]
func (h *VisitHandler) CheckIn(c echo.Context) error {
	var req CheckInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.visitService.CheckIn(c.Request().Context(), req.Barcode)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, result)
}

// History godoc
// @Summary List a member's visits, newest first
// @Tags visits
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {array} model.Visit
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /members/{id}/visits [get]
func (h *VisitHandler) History(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	visits, err := h.visitService.History(c.Request().Context(), id)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, visits)
}
