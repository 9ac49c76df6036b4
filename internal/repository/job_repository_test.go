package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"joblit/internal/db/dbtest"
	"joblit/internal/model"
)

func seedJobs(t *testing.T, gdb *gorm.DB) (*model.User, []*model.Job) {
	t.Helper()
	ctx := context.Background()

	employer := newEmployer("acme", "Acme")
	require.NoError(t, NewUserRepository(gdb).Create(ctx, employer))

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	jobs := []*model.Job{
		{EmployerID: employer.ID, Title: "Go Developer", Description: "Build services", Location: "Berlin", CompanyName: "Acme", PostedAt: base},
		{EmployerID: employer.ID, Title: "Data Analyst", Description: "SQL and 100% dashboards", Location: "Remote", CompanyName: "Acme", PostedAt: base.Add(time.Hour)},
		{EmployerID: employer.ID, Title: "Office_Manager", Description: "Keep things running", Location: "Hamburg", CompanyName: "Acme", PostedAt: base.Add(2 * time.Hour)},
	}
	repo := NewJobRepository(gdb)
	for _, j := range jobs {
		require.NoError(t, repo.Create(ctx, j))
	}
	return employer, jobs
}

func titles(jobs []model.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.Title)
	}
	return out
}

func TestJobRepository_CreateAndFind(t *testing.T) {
	gdb := dbtest.New(t)
	repo := NewJobRepository(gdb)
	ctx := context.Background()

	employer := newEmployer("acme", "Acme")
	require.NoError(t, NewUserRepository(gdb).Create(ctx, employer))

	job := &model.Job{
		EmployerID:  employer.ID,
		Title:       "Go Developer",
		Description: "Build services",
		Location:    "Berlin",
		Salary:      decimal.RequireFromString("85000.50"),
		CompanyName: "Acme",
	}
	require.NoError(t, repo.Create(ctx, job))
	assert.NotZero(t, job.ID)
	assert.False(t, job.PostedAt.IsZero())

	got, err := repo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Developer", got.Title)
	assert.True(t, got.Salary.Equal(decimal.RequireFromString("85000.50")))

	_, err = repo.FindByID(ctx, 4242)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestJobRepository_ListOrdersNewestFirst(t *testing.T) {
	gdb := dbtest.New(t)
	employer, _ := seedJobs(t, gdb)
	repo := NewJobRepository(gdb)
	ctx := context.Background()

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Office_Manager", "Data Analyst", "Go Developer"}, titles(all))

	mine, err := repo.ListByEmployer(ctx, employer.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	none, err := repo.ListByEmployer(ctx, employer.ID+100)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestJobRepository_Search(t *testing.T) {
	gdb := dbtest.New(t)
	seedJobs(t, gdb)
	repo := NewJobRepository(gdb)
	ctx := context.Background()

	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "title", term: "Developer", want: []string{"Go Developer"}},
		{name: "description", term: "dashboards", want: []string{"Data Analyst"}},
		{name: "location", term: "Remote", want: []string{"Data Analyst"}},
		{name: "location city", term: "Hamburg", want: []string{"Office_Manager"}},
		{name: "matches across jobs", term: "e", want: []string{"Office_Manager", "Data Analyst", "Go Developer"}},
		{name: "percent is literal", term: "100%", want: []string{"Data Analyst"}},
		{name: "underscore is literal", term: "_", want: []string{"Office_Manager"}},
		{name: "no match", term: "plumber", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Search(ctx, tt.term)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestJobRepository_UpdateAndDeleteAreScopedToOwner(t *testing.T) {
	gdb := dbtest.New(t)
	owner, jobs := seedJobs(t, gdb)
	repo := NewJobRepository(gdb)
	ctx := context.Background()

	other := newEmployer("globex", "Globex")
	require.NoError(t, NewUserRepository(gdb).Create(ctx, other))

	edit := *jobs[0]
	edit.Title = "Senior Go Developer"
	edit.Salary = decimal.NewFromInt(90000)

	edit.EmployerID = other.ID
	n, err := repo.Update(ctx, &edit)
	require.NoError(t, err)
	assert.Zero(t, n)

	edit.EmployerID = owner.ID
	n, err = repo.Update(ctx, &edit)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.FindByID(ctx, jobs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Senior Go Developer", got.Title)
	assert.Equal(t, "Acme", got.CompanyName)
	assert.True(t, got.PostedAt.Equal(jobs[0].PostedAt))

	n, err = repo.Delete(ctx, other.ID, jobs[0].ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.Delete(ctx, owner.ID, jobs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.DeleteByEmployer(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
