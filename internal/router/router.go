package router

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"joblit/internal/auth"
	"joblit/internal/handler"
	"joblit/internal/model"
)

// AccessTokenValidator checks bearer tokens for the secured routes.
type AccessTokenValidator interface {
	ValidateAccessToken(ctx context.Context, token string) (*auth.Claims, error)
}

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Account      *handler.AccountHandler
	Job          *handler.JobHandler
	Application  *handler.ApplicationHandler
	Tokens       AccessTokenValidator
	HealthChecks []func(c echo.Context) error
}

// Register wires routes and middleware.
func Register(e *echo.Echo, h Handlers) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		for _, check := range h.HealthChecks {
			if err := check(c); err != nil {
				return c.String(http.StatusServiceUnavailable, err.Error())
			}
		}
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/logout", h.Auth.Logout)

	api.GET("/jobs", h.Job.ListJobs)
	api.GET("/jobs/search", h.Job.SearchJobs)
	api.GET("/jobs/:id", h.Job.GetJob)

	// Secured routes carry their middleware per route; an unknown /api path is a 404.
	jwtAuth := echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return h.Tokens.ValidateAccessToken(c.Request().Context(), token)
		},
	})
	employer := handler.RequireUserType(model.UserTypeEmployer)
	seeker := handler.RequireUserType(model.UserTypeSeeker)

	api.GET("/me", h.Account.GetMe, jwtAuth)
	api.PUT("/me", h.Account.UpdateMe, jwtAuth)
	api.DELETE("/me", h.Account.DeleteMe, jwtAuth)

	api.POST("/jobs", h.Job.PostJob, jwtAuth, employer)
	api.PUT("/jobs/:id", h.Job.UpdateJob, jwtAuth, employer)
	api.DELETE("/jobs/:id", h.Job.DeleteJob, jwtAuth, employer)
	api.GET("/jobs/:id/applicants", h.Job.ListApplicants, jwtAuth, employer)
	api.GET("/me/jobs", h.Job.ListMyJobs, jwtAuth, employer)

	api.PUT("/me/resume", h.Account.SaveResume, jwtAuth, seeker)
	api.GET("/jobs/:id/application", h.Application.Status, jwtAuth, seeker)
	api.POST("/jobs/:id/application", h.Application.Apply, jwtAuth, seeker)
	api.DELETE("/jobs/:id/application", h.Application.Withdraw, jwtAuth, seeker)
	api.GET("/me/applications", h.Application.ListMine, jwtAuth, seeker)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
