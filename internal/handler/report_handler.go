package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "gymgate/internal/errors"
	"gymgate/internal/service"
)

// ReportHandler handles report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary godoc
// @Summary Dashboard headline counts
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Summary
// @Failure 500 {object} errors.ErrorResponse
// @Router /reports/summary [get]
func (h *ReportHandler) Summary(c echo.Context) error {
	summary, err := h.reportService.Summary(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, summary)
}

// RevenueByPlan godoc
// @Summary Revenue grouped by plan
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} repository.PlanRevenue
// @Failure 500 {object} errors.ErrorResponse
// @Router /reports/revenue [get]
func (h *ReportHandler) RevenueByPlan(c echo.Context) error {
	rows, err := h.reportService.RevenueByPlan(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, rows)
}

// Visits godoc
// @Summary Daily check-in counts for the last 30 days
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} repository.DayVisits
// @Failure 500 {object} errors.ErrorResponse
// @Router /reports/visits [get]
func (h *ReportHandler) Visits(c echo.Context) error {
	rows, err := h.reportService.VisitsLast30Days(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, rows)
}

// Equipment godoc
// @Summary Equipment counts grouped by status
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} repository.StatusCount
// @Failure 500 {object} errors.ErrorResponse
// @Router /reports/equipment [get]
func (h *ReportHandler) Equipment(c echo.Context) error {
	rows, err := h.reportService.EquipmentByStatus(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, rows)
}

// ExpiredMembers godoc
// @Summary Members whose subscription has lapsed
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.MemberView
// @Failure 500 {object} errors.ErrorResponse
// @Router /reports/expired [get]
func (h *ReportHandler) ExpiredMembers(c echo.Context) error {
	members, err := h.reportService.ExpiredMembers(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, members)
}
