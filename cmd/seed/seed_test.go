package main

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joblit/internal/db/dbtest"
	"joblit/internal/logger"
	"joblit/internal/repository"
	"joblit/internal/service"
)

func TestSeed_IsIdempotent(t *testing.T) {
	file, err := os.Open("fixture.yaml")
	require.NoError(t, err)
	defer file.Close()

	fixture, err := ParseFixture(file)
	require.NoError(t, err)
	require.Len(t, fixture.Users, 4)

	repos := repository.New(dbtest.New(t))
	log := logger.Discard()
	accounts := service.NewAccountService(repos, nil, log)
	jobs := service.NewJobService(repos, nil, log)
	ctx := context.Background()

	res, err := Seed(ctx, fixture, accounts, jobs, log)
	require.NoError(t, err)
	assert.Equal(t, Result{UsersCreated: 4, JobsPosted: 3}, res)

	res, err = Seed(ctx, fixture, accounts, jobs, log)
	require.NoError(t, err)
	assert.Equal(t, Result{UsersSkipped: 4}, res)

	all, err := jobs.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	for _, j := range all {
		assert.NotEmpty(t, j.CompanyName)
	}

	alice, err := accounts.Authenticate(ctx, "alice", "alice-pass")
	require.NoError(t, err)
	profile, ok := alice.Seeker()
	require.True(t, ok)
	assert.Equal(t, "Alice Anders", profile.FullName)
}

func TestParseFixture_Invalid(t *testing.T) {
	_, err := ParseFixture(strings.NewReader("users: [unclosed"))
	assert.Error(t, err)
}
