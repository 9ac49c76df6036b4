package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"joblit/internal/service"
)

// AccountHandler serves the signed-in user's own profile.
type AccountHandler struct {
	accountService service.AccountService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// UpdateProfileRequest replaces the caller's profile. An empty password keeps
// the current one; only the fields of the caller's type are used.
type UpdateProfileRequest struct {
	Email       string `json:"email" validate:"required"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	Skills      string `json:"skills"`
	ResumeInfo  string `json:"resume_info"`
	CompanyName string `json:"company_name"`
}

// ResumeRequest updates a job seeker's skills and resume.
type ResumeRequest struct {
	Skills     string `json:"skills"`
	ResumeInfo string `json:"resume_info"`
}

// GetMe godoc
// @Summary Get the signed-in user
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me [get]
func (h *AccountHandler) GetMe(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}

	user, err := h.accountService.GetUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, NewUserResponse(user))
}

// UpdateMe godoc
// @Summary Update the signed-in user's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile data"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /me [put]
func (h *AccountHandler) UpdateMe(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_BODY")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	user, err := h.accountService.UpdateProfile(c.Request().Context(), claims.UserID, service.ProfileUpdate{
		Email:    req.Email,
		Password: req.Password,
		Profile:  profileFromFields(claims.Type, req.FullName, req.Skills, req.ResumeInfo, req.CompanyName),
	})
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, NewUserResponse(user))
}

// SaveResume godoc
// @Summary Save the signed-in seeker's skills and resume
// @Tags profile
// @Accept json
// @Security BearerAuth
// @Param request body ResumeRequest true "Resume data"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /me/resume [put]
func (h *AccountHandler) SaveResume(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}

	var req ResumeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_BODY")
	}

	if err := h.accountService.SaveResume(c.Request().Context(), claims.UserID, req.Skills, req.ResumeInfo); err != nil {
		return errorResponse(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteMe godoc
// @Summary Delete the signed-in user with their jobs and applications
// @Tags profile
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me [delete]
func (h *AccountHandler) DeleteMe(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}

	if err := h.accountService.DeleteProfile(c.Request().Context(), claims.UserID); err != nil {
		return errorResponse(err)
	}
	return c.NoContent(http.StatusNoContent)
}
