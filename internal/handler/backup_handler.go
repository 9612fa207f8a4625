package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "gymgate/internal/errors"
	"gymgate/internal/service"
)

// BackupHandler handles database backup and restore endpoints.
type BackupHandler struct {
	backupService service.BackupService
}

// NewBackupHandler creates a new backup handler.
func NewBackupHandler(backupService service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// BackupRequest represents a backup request. Destination is optional; when
// empty a timestamped file is written to the configured backup directory.
type BackupRequest struct {
	Destination string `json:"destination"`
}

// RestoreRequest represents a restore request. Confirm must be true: restore
// replaces the live database.
type RestoreRequest struct {
	Source  string `json:"source" validate:"required"`
	Confirm bool   `json:"confirm" validate:"required"`
}

// Backup godoc
// @Summary Snapshot the database to a file
// @Tags backup
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BackupRequest true "Optional destination path"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /backup [post]
func (h *BackupHandler) Backup(c echo.Context) error {
	var req BackupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	path, err := h.backupService.Backup(c.Request().Context(), req.Destination)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "backup written",
		"path":    path,
	})
}

// Restore godoc
// @Summary Replace the live database with a snapshot
// @Tags backup
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RestoreRequest true "Snapshot path and confirmation"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /backup/restore [post]
func (h *BackupHandler) Restore(c echo.Context) error {
	var req RestoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.backupService.Restore(c.Request().Context(), req.Source); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "database restored",
	})
}
