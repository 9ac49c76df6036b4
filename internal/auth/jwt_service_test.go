package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joblit/internal/model"
)

func testUser() *model.User {
	u := model.NewUser("acme", "hr@acme.test", "", model.EmployerProfile{CompanyName: "Acme"})
	u.ID = 7
	return u
}

func TestJWTService_AccessToken(t *testing.T) {
	svc := NewJWTService("secret")

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "acme", claims.Username)
	assert.True(t, claims.IsEmployer())
	assert.False(t, claims.IsSeeker())
	assert.Equal(t, "7", claims.Subject)

	_, err = svc.ValidateRefreshToken(token)
	assert.ErrorIs(t, err, ErrWrongTokenKind)
}

func TestJWTService_RefreshToken(t *testing.T) {
	svc := NewJWTService("secret")

	id, token, err := svc.GenerateRefreshToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	claims, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.ID)
	assert.Equal(t, KindRefresh, claims.Kind)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrWrongTokenKind)
}

func TestJWTService_RejectsForeignAndExpiredTokens(t *testing.T) {
	svc := NewJWTService("secret")
	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = NewJWTService("other").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	svc.now = func() time.Time { return time.Now().Add(AccessTokenExpiry + time.Minute) }
	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
