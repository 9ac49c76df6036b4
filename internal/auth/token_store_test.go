package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joblit/internal/cache"
	"joblit/internal/model"
)

func TestTokenStore_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewTokenStore(cache.New(mr.Addr(), "", 0))
	ctx := context.Background()

	session := Session{UserID: 3, Username: "alice", Type: model.UserTypeSeeker}
	require.NoError(t, store.StoreRefreshToken(ctx, "tid", session, time.Hour))
	assert.True(t, mr.Exists("refresh_token:tid"))

	got, err := store.GetRefreshToken(ctx, "tid")
	require.NoError(t, err)
	assert.Equal(t, session, got)

	require.NoError(t, store.DeleteRefreshToken(ctx, "tid"))
	_, err = store.GetRefreshToken(ctx, "tid")
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
}

func TestTokenStore_Expiry(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewTokenStore(cache.New(mr.Addr(), "", 0))
	ctx := context.Background()

	require.NoError(t, store.StoreRefreshToken(ctx, "tid", Session{UserID: 1}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := store.GetRefreshToken(ctx, "tid")
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
}

func TestTokenStore_RejectsEmptyID(t *testing.T) {
	store := NewTokenStore(nil)
	assert.Error(t, store.StoreRefreshToken(context.Background(), "", Session{}, time.Minute))
}

func TestTokenStore_AccessTokenBlacklist(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewTokenStore(cache.New(mr.Addr(), "", 0))
	ctx := context.Background()

	revoked, err := store.IsAccessTokenBlacklisted(ctx, "aid")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.BlacklistAccessToken(ctx, "aid", time.Minute))
	assert.True(t, mr.Exists("blacklist:access_token:aid"))
	revoked, err = store.IsAccessTokenBlacklisted(ctx, "aid")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = store.IsAccessTokenBlacklisted(ctx, "aid")
	require.NoError(t, err)
	assert.False(t, revoked)

	assert.Error(t, store.BlacklistAccessToken(ctx, "", time.Minute))
}
