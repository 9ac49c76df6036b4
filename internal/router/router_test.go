package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joblit/internal/auth"
	"joblit/internal/cache"
	"joblit/internal/db/dbtest"
	"joblit/internal/handler"
	"joblit/internal/logger"
	"joblit/internal/model"
	"joblit/internal/repository"
	"joblit/internal/service"
)

type apiClient struct {
	t *testing.T
	e *echo.Echo
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	mr := miniredis.RunT(t)
	cacheClient := cache.New(mr.Addr(), "", 0)
	repos := repository.New(dbtest.New(t))
	log := logger.Discard()

	jwtService := auth.NewJWTService("test-secret")
	accounts := service.NewAccountService(repos, cacheClient, log)
	jobs := service.NewJobService(repos, cacheClient, log)
	applications := service.NewApplicationService(repos, log)
	authService := service.NewAuthService(accounts, jwtService, auth.NewTokenStore(cacheClient))

	e := echo.New()
	Register(e, Handlers{
		Auth:        handler.NewAuthHandler(authService, accounts),
		Account:     handler.NewAccountHandler(accounts),
		Job:         handler.NewJobHandler(jobs, applications),
		Application: handler.NewApplicationHandler(applications),
		Tokens:      authService,
	})
	return &apiClient{t: t, e: e}
}

func (a *apiClient) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *apiClient) registerAndLogin(body map[string]string) handler.AuthResponse {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/auth/register", "", body)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": body["username"],
		"password": body["password"],
	})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp handler.AuthResponse
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestAPI_JobBoardFlow(t *testing.T) {
	api := newAPI(t)

	employer := api.registerAndLogin(map[string]string{
		"username": "acme", "password": "pw1234", "email": "e@x.com",
		"type": "EMPLOYER", "company_name": "Acme",
	})
	seeker := api.registerAndLogin(map[string]string{
		"username": "alice", "password": "pw1234", "email": "a@x.com",
		"type": "SEEKER", "full_name": "Alice A",
	})
	assert.Equal(t, "Alice A", seeker.User.FullName)

	rec := api.do(http.MethodPost, "/api/jobs", employer.AccessToken, map[string]string{
		"title": "Welder", "description": "Weld things", "location": "NYC", "salary": "-1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	job := decode[model.Job](t, rec)
	assert.Equal(t, "Acme", job.CompanyName)
	assert.True(t, job.Salary.IsZero())

	rec = api.do(http.MethodPost, "/api/jobs", seeker.AccessToken, map[string]string{
		"title": "x", "description": "y", "location": "z",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodGet, "/api/jobs/search?q=Weld", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Job](t, rec), 1)

	applyPath := fmt.Sprintf("/api/jobs/%d/application", job.ID)
	rec = api.do(http.MethodPost, applyPath, seeker.AccessToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPost, applyPath, seeker.AccessToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "ALREADY_APPLIED")

	rec = api.do(http.MethodGet, "/api/me/applications", seeker.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Job](t, rec), 1)

	rec = api.do(http.MethodGet, fmt.Sprintf("/api/jobs/%d/applicants", job.ID), employer.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	applicants := decode[[]handler.UserResponse](t, rec)
	require.Len(t, applicants, 1)
	assert.Equal(t, "alice", applicants[0].Username)

	rec = api.do(http.MethodDelete, applyPath, seeker.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodDelete, "/api/me", employer.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, fmt.Sprintf("/api/jobs/%d", job.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_AuthErrors(t *testing.T) {
	api := newAPI(t)

	rec := api.do(http.MethodGet, "/api/me", "", nil)
	assert.Contains(t, []int{http.StatusBadRequest, http.StatusUnauthorized}, rec.Code)

	rec = api.do(http.MethodGet, "/api/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "ghost", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")

	rec = api.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "bob", "password": "pw", "email": "not-an-email", "type": "SEEKER", "full_name": "Bob",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestAPI_RefreshAndLogout(t *testing.T) {
	api := newAPI(t)
	session := api.registerAndLogin(map[string]string{
		"username": "alice", "password": "pw1234", "email": "a@x.com",
		"type": "SEEKER", "full_name": "Alice A",
	})

	// A refresh token cannot be used as an access token.
	rec := api.do(http.MethodGet, "/api/me", session.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, "/api/auth/refresh", "", map[string]string{"refresh_token": session.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	refreshed := decode[handler.AuthResponse](t, rec)

	rec = api.do(http.MethodGet, "/api/me", refreshed.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", decode[handler.UserResponse](t, rec).Username)

	rec = api.do(http.MethodPost, "/api/auth/logout", refreshed.AccessToken, map[string]string{"refresh_token": session.RefreshToken})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodPost, "/api/auth/refresh", "", map[string]string{"refresh_token": session.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The access token sent with logout is revoked; the one issued at login is not.
	rec = api.do(http.MethodGet, "/api/me", refreshed.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = api.do(http.MethodGet, "/api/me", session.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_PostJobAcceptsNumericSalary(t *testing.T) {
	api := newAPI(t)
	employer := api.registerAndLogin(map[string]string{
		"username": "acme", "password": "pw1234", "email": "e@x.com",
		"type": "EMPLOYER", "company_name": "Acme",
	})

	tests := []struct {
		name   string
		salary interface{}
		want   string
	}{
		{name: "number", salary: 50000, want: "50000"},
		{name: "negative number", salary: -5, want: "0"},
		{name: "fraction", salary: 1.5, want: "1.5"},
		{name: "numeric string", salary: "72000.50", want: "72000.5"},
		{name: "non-numeric string", salary: "abc", want: "0"},
		{name: "null", salary: nil, want: "0"},
		{name: "boolean", salary: true, want: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(http.MethodPost, "/api/jobs", employer.AccessToken, map[string]interface{}{
				"title": "Welder", "description": "Weld things", "location": "NYC", "salary": tt.salary,
			})
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			job := decode[model.Job](t, rec)
			assert.Equal(t, tt.want, job.Salary.String())

			rec = api.do(http.MethodPut, fmt.Sprintf("/api/jobs/%d", job.ID), employer.AccessToken, map[string]interface{}{
				"title": "Welder", "description": "Weld things", "location": "NYC", "salary": tt.salary,
			})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.want, decode[model.Job](t, rec).Salary.String())
		})
	}
}

func TestAPI_UnknownPathIsNotFound(t *testing.T) {
	api := newAPI(t)

	for _, path := range []string{"/api/nope", "/api/me/nope", "/api/jobs/1/nope"} {
		rec := api.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}

	rec := api.do(http.MethodGet, "/api/me", "", nil)
	assert.NotEqual(t, http.StatusNotFound, rec.Code)
}

func TestAPI_Healthz(t *testing.T) {
	api := newAPI(t)
	rec := api.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
