package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"joblit/internal/errors"
	"joblit/internal/service"
)

// JobHandler handles job endpoints.
type JobHandler struct {
	jobService         service.JobService
	applicationService service.ApplicationService
}

// NewJobHandler creates a new job handler.
func NewJobHandler(jobService service.JobService, applicationService service.ApplicationService) *JobHandler {
	return &JobHandler{jobService: jobService, applicationService: applicationService}
}

// JobRequest carries the editable fields of a job. A missing, negative or
// unreadable salary is stored as 0.
type JobRequest struct {
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description" validate:"required"`
	Location    string      `json:"location" validate:"required"`
	Salary      SalaryInput `json:"salary" swaggertype:"string" example:"50000"`
	CompanyName string      `json:"company_name"`
}

// SalaryInput keeps the raw text of a salary given as a JSON string or number.
// Any other JSON value reads as blank.
type SalaryInput string

// UnmarshalJSON implements json.Unmarshaler.
func (s *SalaryInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) > 0 && data[0] == '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = SalaryInput(text)
	case len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		*s = SalaryInput(data)
	default:
		*s = ""
	}
	return nil
}

// ListJobs godoc
// @Summary List all jobs, newest first
// @Tags jobs
// @Produce json
// @Success 200 {array} model.Job
// @Failure 500 {object} errors.ErrorResponse
// @Router /jobs [get]
func (h *JobHandler) ListJobs(c echo.Context) error {
	jobs, err := h.jobService.ListAll(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, jobs)
}

// SearchJobs godoc
// @Summary Search jobs by title, description or location
// @Tags jobs
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {array} model.Job
// @Failure 400 {object} errors.ErrorResponse
// @Router /jobs/search [get]
func (h *JobHandler) SearchJobs(c echo.Context) error {
	term := c.QueryParam("q")
	if term == "" {
		return badRequest("query parameter q is required", "VALIDATION_ERROR")
	}

	jobs, err := h.jobService.Search(c.Request().Context(), term)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, jobs)
}

// GetJob godoc
// @Summary Get job by id
// @Tags jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} model.Job
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /jobs/{id} [get]
func (h *JobHandler) GetJob(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	job, err := h.jobService.GetJob(c.Request().Context(), id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, job)
}

// PostJob godoc
// @Summary Post a job as the signed-in employer
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body JobRequest true "Job data"
// @Success 201 {object} model.Job
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /jobs [post]
func (h *JobHandler) PostJob(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}

	var req JobRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_BODY")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	job, err := h.jobService.PostJob(c.Request().Context(), claims.UserID, service.PostJobInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Salary:      string(req.Salary),
		CompanyName: req.CompanyName,
	})
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, job)
}

// UpdateJob godoc
// @Summary Update one of the signed-in employer's jobs
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param request body JobRequest true "Job data"
// @Success 200 {object} model.Job
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /jobs/{id} [put]
func (h *JobHandler) UpdateJob(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req JobRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_BODY")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	job, err := h.jobService.UpdateJob(c.Request().Context(), claims.UserID, id, service.JobUpdate{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Salary:      string(req.Salary),
	})
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, job)
}

// DeleteJob godoc
// @Summary Delete one of the signed-in employer's jobs and its applications
// @Tags jobs
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /jobs/{id} [delete]
func (h *JobHandler) DeleteJob(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.jobService.DeleteJob(c.Request().Context(), claims.UserID, id); err != nil {
		return errorResponse(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMyJobs godoc
// @Summary List the signed-in employer's jobs
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Job
// @Failure 403 {object} errors.ErrorResponse
// @Router /me/jobs [get]
func (h *JobHandler) ListMyJobs(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}

	jobs, err := h.jobService.ListByEmployer(c.Request().Context(), claims.UserID)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, jobs)
}

// ListApplicants godoc
// @Summary List the seekers who applied to one of the signed-in employer's jobs
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {array} UserResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /jobs/{id}/applicants [get]
func (h *JobHandler) ListApplicants(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	job, err := h.jobService.GetJob(ctx, id)
	if err != nil {
		return errorResponse(err)
	}
	if job.EmployerID != claims.UserID {
		return errorResponse(errors.ErrForbidden)
	}

	users, err := h.applicationService.ListApplicants(ctx, id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, newUserResponses(users))
}
