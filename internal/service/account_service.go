package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"joblit/internal/cache"
	apperrors "joblit/internal/errors"
	"joblit/internal/model"
	"joblit/internal/repository"
)

const bcryptCost = 10

// RegisterInput is a registration candidate. Profile must be the variant
// matching Type.
type RegisterInput struct {
	Username        string         `json:"username" validate:"required,max=100"`
	Password        string         `json:"password" validate:"required"`
	ConfirmPassword string         `json:"confirm_password" validate:"omitempty,eqfield=Password"`
	Email           string         `json:"email" validate:"required,email,max=255"`
	Type            model.UserType `json:"type" validate:"required,oneof=SEEKER EMPLOYER"`
	Profile         model.Profile  `json:"-" validate:"-"`
}

// ProfileUpdate replaces the editable fields of a user. An empty Password
// keeps the current one.
type ProfileUpdate struct {
	Email    string        `json:"email" validate:"required,email,max=255"`
	Password string        `json:"password"`
	Profile  model.Profile `json:"-" validate:"-"`
}

// AccountService manages user registration, credentials and profiles.
// Users it returns never carry the password hash.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint, in ProfileUpdate) (*model.User, error)
	SaveResume(ctx context.Context, seekerID uint, skills, resumeInfo string) error
	DeleteProfile(ctx context.Context, id uint) error
}

type accountService struct {
	repos     *repository.Repositories
	cache     *cache.Client
	validator *InputValidator
	log       *slog.Logger
}

// NewAccountService creates a new account service. cache may be nil.
func NewAccountService(repos *repository.Repositories, cache *cache.Client, log *slog.Logger) AccountService {
	if log == nil {
		log = slog.Default()
	}
	return &accountService{
		repos:     repos,
		cache:     cache,
		validator: NewInputValidator(),
		log:       log.With("service", "account"),
	}
}

// dummyHash is compared against when the username is unknown so both failure
// paths cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("joblit-dummy-password"), bcryptCost)
	return h
})

func (s *accountService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	profile, err := s.validator.Profile(in.Profile)
	if err != nil {
		return nil, err
	}
	if model.ProfileType(profile) != in.Type {
		return nil, apperrors.NewValidationError("profile", "does not match user type")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.NewUser(in.Username, in.Email, string(hash), profile)
	if err := s.repos.Users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateUser
		}
		s.log.ErrorContext(ctx, "register user failed", "username", in.Username, "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.InfoContext(ctx, "user registered", "user_id", user.ID, "type", user.Type)
	return redact(user), nil
}

// Authenticate reports ErrInvalidCredentials for an unknown username and for
// a wrong password alike. The username is trimmed as in Register.
func (s *accountService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repos.Users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return redact(user), nil
}

// GetUser retrieves a user by ID with caching.
func (s *accountService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var cached cachedUser
	if s.cache.GetJSON(ctx, userCacheKey(id), &cached) {
		return cached.user(), nil
	}

	user, err := s.repos.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	user = redact(user)
	s.cache.SetJSON(ctx, userCacheKey(id), newCachedUser(user), userCacheTTL)
	return user, nil
}

// UpdateProfile persists email, password and the variant fields. The user
// type cannot change.
func (s *accountService) UpdateProfile(ctx context.Context, id uint, in ProfileUpdate) (*model.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	profile, err := s.validator.Profile(in.Profile)
	if err != nil {
		return nil, err
	}

	user, err := s.repos.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if model.ProfileType(profile) != user.Type {
		return nil, apperrors.NewValidationError("profile", "cannot change user type")
	}

	user.Email = in.Email
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	user.SetProfile(profile)

	n, err := s.repos.Users.UpdateProfile(ctx, user)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateUser
		}
		s.log.ErrorContext(ctx, "update profile failed", "user_id", id, "error", err)
		return nil, fmt.Errorf("update profile: %w", err)
	}
	_ = s.cache.Delete(ctx, userCacheKey(id))
	if n == 0 {
		return nil, apperrors.ErrUserNotFound
	}
	return redact(user), nil
}

// SaveResume updates only the skills and resume of a job seeker.
func (s *accountService) SaveResume(ctx context.Context, seekerID uint, skills, resumeInfo string) error {
	n, err := s.repos.Users.UpdateResume(ctx, seekerID, strings.TrimSpace(skills), resumeInfo)
	if err != nil {
		s.log.ErrorContext(ctx, "save resume failed", "user_id", seekerID, "error", err)
		return fmt.Errorf("save resume: %w", err)
	}
	_ = s.cache.Delete(ctx, userCacheKey(seekerID))
	if n == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// DeleteProfile removes a user and everything that depends on it in one
// transaction. For an employer that is the applications to its jobs and the
// jobs themselves; for a seeker, its applications.
func (s *accountService) DeleteProfile(ctx context.Context, id uint) error {
	var jobIDs []uint
	err := s.repos.WithTransaction(ctx, func(ctx context.Context, tx *repository.Repositories) error {
		user, err := tx.Users.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return fmt.Errorf("find user: %w", err)
		}

		switch user.Type {
		case model.UserTypeSeeker:
			if _, err := tx.Applications.DeleteBySeeker(ctx, id); err != nil {
				return fmt.Errorf("delete applications: %w", err)
			}
		case model.UserTypeEmployer:
			jobs, err := tx.Jobs.ListByEmployer(ctx, id)
			if err != nil {
				return fmt.Errorf("list jobs: %w", err)
			}
			for _, j := range jobs {
				jobIDs = append(jobIDs, j.ID)
			}
			if _, err := tx.Applications.DeleteByEmployer(ctx, id); err != nil {
				return fmt.Errorf("delete applications: %w", err)
			}
			if _, err := tx.Jobs.DeleteByEmployer(ctx, id); err != nil {
				return fmt.Errorf("delete jobs: %w", err)
			}
		}

		n, err := tx.Users.Delete(ctx, id)
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		if n == 0 {
			return apperrors.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			s.log.ErrorContext(ctx, "delete profile rolled back", "user_id", id, "error", err)
		}
		return err
	}

	keys := []string{userCacheKey(id)}
	for _, jobID := range jobIDs {
		keys = append(keys, jobCacheKey(jobID))
	}
	_ = s.cache.Delete(ctx, keys...)

	s.log.InfoContext(ctx, "profile deleted", "user_id", id, "jobs_removed", len(jobIDs))
	return nil
}

func redact(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.PasswordHash = ""
	return &cp
}

// cachedUser is the cache representation of a user. The variant columns are
// hidden from model.User's JSON form, so they are carried explicitly.
type cachedUser struct {
	User     model.User             `json:"user"`
	Seeker   *model.SeekerProfile   `json:"seeker,omitempty"`
	Employer *model.EmployerProfile `json:"employer,omitempty"`
}

func newCachedUser(u *model.User) cachedUser {
	c := cachedUser{User: *u}
	if p, ok := u.Seeker(); ok {
		c.Seeker = &p
	}
	if p, ok := u.Employer(); ok {
		c.Employer = &p
	}
	return c
}

func (c cachedUser) user() *model.User {
	u := c.User
	switch {
	case c.Seeker != nil:
		u.SetProfile(*c.Seeker)
	case c.Employer != nil:
		u.SetProfile(*c.Employer)
	}
	return &u
}
