package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"joblit/internal/service"
)

// ApplicationHandler handles a job seeker's applications.
type ApplicationHandler struct {
	applicationService service.ApplicationService
}

// NewApplicationHandler creates a new application handler.
func NewApplicationHandler(applicationService service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// ApplicationStatusResponse reports whether the caller applied to a job.
type ApplicationStatusResponse struct {
	JobID   uint `json:"job_id"`
	Applied bool `json:"applied"`
}

// Apply godoc
// @Summary Apply to a job as the signed-in seeker
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 201 {object} ApplicationStatusResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /jobs/{id}/application [post]
func (h *ApplicationHandler) Apply(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	jobID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.applicationService.Apply(c.Request().Context(), claims.UserID, jobID); err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, ApplicationStatusResponse{JobID: jobID, Applied: true})
}

// Status godoc
// @Summary Report whether the signed-in seeker applied to a job
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} ApplicationStatusResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /jobs/{id}/application [get]
func (h *ApplicationHandler) Status(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	jobID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	applied, err := h.applicationService.HasApplied(c.Request().Context(), claims.UserID, jobID)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, ApplicationStatusResponse{JobID: jobID, Applied: applied})
}

// Withdraw godoc
// @Summary Withdraw the signed-in seeker's application to a job
// @Tags applications
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /jobs/{id}/application [delete]
func (h *ApplicationHandler) Withdraw(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	jobID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.applicationService.Withdraw(c.Request().Context(), claims.UserID, jobID); err != nil {
		return errorResponse(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMine godoc
// @Summary List the jobs the signed-in seeker applied to, latest first
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Job
// @Failure 403 {object} errors.ErrorResponse
// @Router /me/applications [get]
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}

	jobs, err := h.applicationService.ListAppliedJobs(c.Request().Context(), claims.UserID)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, jobs)
}
