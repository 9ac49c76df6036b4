package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"joblit/internal/cache"
	"joblit/internal/db/dbtest"
	"joblit/internal/logger"
	"joblit/internal/model"
	"joblit/internal/repository"
)

type testEnv struct {
	db           *gorm.DB
	redis        *miniredis.Miniredis
	cache        *cache.Client
	repos        *repository.Repositories
	accounts     AccountService
	jobs         JobService
	applications ApplicationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := dbtest.New(t)
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })

	repos := repository.New(gdb)
	log := logger.Discard()
	return &testEnv{
		db:           gdb,
		redis:        mr,
		cache:        c,
		repos:        repos,
		accounts:     NewAccountService(repos, c, log),
		jobs:         NewJobService(repos, c, log),
		applications: NewApplicationService(repos, log),
	}
}

func (e *testEnv) registerSeeker(t *testing.T, username string) *model.User {
	t.Helper()
	u, err := e.accounts.Register(context.Background(), RegisterInput{
		Username: username,
		Password: "pw1234",
		Email:    username + "@x.com",
		Type:     model.UserTypeSeeker,
		Profile:  model.SeekerProfile{FullName: "Seeker " + username, Skills: "go"},
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) registerEmployer(t *testing.T, username, company string) *model.User {
	t.Helper()
	u, err := e.accounts.Register(context.Background(), RegisterInput{
		Username: username,
		Password: "pw1234",
		Email:    username + "@x.com",
		Type:     model.UserTypeEmployer,
		Profile:  model.EmployerProfile{CompanyName: company},
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) postJob(t *testing.T, employerID uint, title string) *model.Job {
	t.Helper()
	job, err := e.jobs.PostJob(context.Background(), employerID, PostJobInput{
		Title:       title,
		Description: title + " description",
		Location:    "NYC",
		Salary:      "50000",
	})
	require.NoError(t, err)
	return job
}

func (e *testEnv) countApplications(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&model.Application{}).Count(&n).Error)
	return n
}
