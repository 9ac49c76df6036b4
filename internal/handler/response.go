package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"joblit/internal/auth"
	"joblit/internal/errors"
	"joblit/internal/model"
)

// UserResponse is the public form of a user with its profile flattened.
type UserResponse struct {
	ID          uint           `json:"id"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	Type        model.UserType `json:"type"`
	FullName    string         `json:"full_name,omitempty"`
	Skills      string         `json:"skills,omitempty"`
	ResumeInfo  string         `json:"resume_info,omitempty"`
	CompanyName string         `json:"company_name,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewUserResponse flattens u.
func NewUserResponse(u *model.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Type:      u.Type,
		CreatedAt: u.CreatedAt,
	}
	switch p := u.Profile().(type) {
	case model.SeekerProfile:
		resp.FullName = p.FullName
		resp.Skills = p.Skills
		resp.ResumeInfo = p.ResumeInfo
	case model.EmployerProfile:
		resp.CompanyName = p.CompanyName
	}
	return resp
}

func newUserResponses(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// profileFromFields builds the profile variant for t from flat request fields.
func profileFromFields(t model.UserType, fullName, skills, resumeInfo, companyName string) model.Profile {
	switch t {
	case model.UserTypeSeeker:
		return model.SeekerProfile{FullName: fullName, Skills: skills, ResumeInfo: resumeInfo}
	case model.UserTypeEmployer:
		return model.EmployerProfile{CompanyName: companyName}
	default:
		return nil
	}
}

// errorResponse maps a service error onto an echo HTTP error.
func errorResponse(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message, code string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: message, Code: code})
}

func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, badRequest("invalid "+name, "INVALID_ID")
	}
	return uint(id), nil
}

// claimsFrom returns the claims stored by the JWT middleware.
func claimsFrom(c echo.Context) (*auth.Claims, error) {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok || claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "invalid token",
			Code:  "UNAUTHORIZED",
		})
	}
	return claims, nil
}

// RequireUserType rejects requests whose token is not of type t.
func RequireUserType(t model.UserType) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := claimsFrom(c)
			if err != nil {
				return err
			}
			switch t {
			case model.UserTypeEmployer:
				if !claims.IsEmployer() {
					return errorResponse(errors.ErrNotEmployer)
				}
			case model.UserTypeSeeker:
				if !claims.IsSeeker() {
					return errorResponse(errors.ErrNotSeeker)
				}
			default:
				return errorResponse(errors.ErrForbidden)
			}
			return next(c)
		}
	}
}
