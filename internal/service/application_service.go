package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	apperrors "joblit/internal/errors"
	"joblit/internal/model"
	"joblit/internal/repository"
)

// ApplicationService manages applications of seekers to jobs.
type ApplicationService interface {
	Apply(ctx context.Context, seekerID, jobID uint) error
	Withdraw(ctx context.Context, seekerID, jobID uint) error
	HasApplied(ctx context.Context, seekerID, jobID uint) (bool, error)
	ListApplicants(ctx context.Context, jobID uint) ([]model.User, error)
	ListAppliedJobs(ctx context.Context, seekerID uint) ([]model.Job, error)
}

type applicationService struct {
	repos *repository.Repositories
	log   *slog.Logger
	now   func() time.Time
}

// NewApplicationService creates a new application service.
func NewApplicationService(repos *repository.Repositories, log *slog.Logger) ApplicationService {
	if log == nil {
		log = slog.Default()
	}
	return &applicationService{
		repos: repos,
		log:   log.With("service", "application"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Apply records an application. A second application for the same pair fails
// with ErrAlreadyApplied; the uniqueness check happens inside the insert.
func (s *applicationService) Apply(ctx context.Context, seekerID, jobID uint) error {
	seeker, err := s.repos.Users.FindByID(ctx, seekerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find seeker: %w", err)
	}
	if seeker.Type != model.UserTypeSeeker {
		return apperrors.ErrNotSeeker
	}

	if _, err := s.repos.Jobs.FindByID(ctx, jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrJobNotFound
		}
		return fmt.Errorf("find job: %w", err)
	}

	inserted, err := s.repos.Applications.Insert(ctx, &model.Application{
		SeekerID:  seekerID,
		JobID:     jobID,
		AppliedAt: s.now(),
	})
	if err != nil {
		s.log.ErrorContext(ctx, "apply failed", "seeker_id", seekerID, "job_id", jobID, "error", err)
		return fmt.Errorf("insert application: %w", err)
	}
	if !inserted {
		return apperrors.ErrAlreadyApplied
	}

	s.log.InfoContext(ctx, "application submitted", "seeker_id", seekerID, "job_id", jobID)
	return nil
}

func (s *applicationService) Withdraw(ctx context.Context, seekerID, jobID uint) error {
	n, err := s.repos.Applications.Delete(ctx, seekerID, jobID)
	if err != nil {
		s.log.ErrorContext(ctx, "withdraw failed", "seeker_id", seekerID, "job_id", jobID, "error", err)
		return fmt.Errorf("delete application: %w", err)
	}
	if n == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

func (s *applicationService) HasApplied(ctx context.Context, seekerID, jobID uint) (bool, error) {
	ok, err := s.repos.Applications.Exists(ctx, seekerID, jobID)
	if err != nil {
		return false, fmt.Errorf("check application: %w", err)
	}
	return ok, nil
}

// ListApplicants returns the seekers who applied to jobID, earliest first.
func (s *applicationService) ListApplicants(ctx context.Context, jobID uint) ([]model.User, error) {
	users, err := s.repos.Applications.ListApplicants(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// ListAppliedJobs returns the jobs seekerID applied to, latest application first.
func (s *applicationService) ListAppliedJobs(ctx context.Context, seekerID uint) ([]model.Job, error) {
	jobs, err := s.repos.Applications.ListAppliedJobs(ctx, seekerID)
	if err != nil {
		return nil, fmt.Errorf("list applied jobs: %w", err)
	}
	return jobs, nil
}
