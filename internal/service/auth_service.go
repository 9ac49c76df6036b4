package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"joblit/internal/auth"
	apperrors "joblit/internal/errors"
	"joblit/internal/model"
)

// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
var ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")

// UserAuthenticator is the part of AccountService that sessions depend on.
type UserAuthenticator interface {
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

// AuthService issues and revokes session tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
	ValidateAccessToken(ctx context.Context, accessToken string) (*auth.Claims, error)
}

type authService struct {
	users      UserAuthenticator
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(users UserAuthenticator, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Login authenticates a user and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error) {
	user, err = s.users.Authenticate(ctx, username, password)
	if err != nil {
		return "", "", nil, err
	}

	accessToken, err = s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	session := auth.Session{UserID: user.ID, Username: user.Username, Type: user.Type}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, session, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// RefreshToken validates a refresh token and returns a new access token. The
// user must still exist.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	session, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	if session.UserID != claims.UserID {
		return "", ErrInvalidRefreshToken
	}

	user, err := s.users.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			_ = s.tokenStore.DeleteRefreshToken(ctx, claims.ID)
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token. A still valid access token, when given,
// is blacklisted for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	if err := s.tokenStore.DeleteRefreshToken(ctx, claims.ID); err != nil {
		return err
	}

	if accessToken == "" {
		return nil
	}
	access, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil || access.UserID != claims.UserID || access.ExpiresAt == nil {
		return nil
	}
	if ttl := time.Until(access.ExpiresAt.Time); ttl > 0 {
		return s.tokenStore.BlacklistAccessToken(ctx, access.ID, ttl)
	}
	return nil
}

// ValidateAccessToken checks the signature, kind and expiry of an access token
// and rejects tokens revoked by Logout.
func (s *authService) ValidateAccessToken(ctx context.Context, accessToken string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, err
	}
	revoked, err := s.tokenStore.IsAccessTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, auth.ErrInvalidToken
	}
	return claims, nil
}
