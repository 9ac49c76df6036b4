package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"joblit/internal/cache"
	apperrors "joblit/internal/errors"
	"joblit/internal/model"
	"joblit/internal/repository"
)

// maxSalary is the largest value a decimal(12,2) column holds.
var maxSalary = decimal.RequireFromString("9999999999.99")

// PostJobInput describes a new job. Salary is raw user text; see ParseSalary.
type PostJobInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location" validate:"required,max=255"`
	Salary      string `json:"salary"`
	CompanyName string `json:"company_name" validate:"max=255"`
}

// JobUpdate replaces the editable fields of a job.
type JobUpdate struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location" validate:"required,max=255"`
	Salary      string `json:"salary"`
}

// JobService manages job postings.
type JobService interface {
	PostJob(ctx context.Context, employerID uint, in PostJobInput) (*model.Job, error)
	GetJob(ctx context.Context, id uint) (*model.Job, error)
	UpdateJob(ctx context.Context, employerID, jobID uint, in JobUpdate) (*model.Job, error)
	DeleteJob(ctx context.Context, employerID, jobID uint) error
	ListAll(ctx context.Context) ([]model.Job, error)
	ListByEmployer(ctx context.Context, employerID uint) ([]model.Job, error)
	Search(ctx context.Context, term string) ([]model.Job, error)
}

type jobService struct {
	repos     *repository.Repositories
	cache     *cache.Client
	validator *InputValidator
	log       *slog.Logger
}

// NewJobService creates a new job service. cache may be nil.
func NewJobService(repos *repository.Repositories, cache *cache.Client, log *slog.Logger) JobService {
	if log == nil {
		log = slog.Default()
	}
	return &jobService{
		repos:     repos,
		cache:     cache,
		validator: NewInputValidator(),
		log:       log.With("service", "job"),
	}
}

// ParseSalary turns user text into a salary. Blank, unparsable, negative and
// out of range input all yield zero, which means unspecified. The result is
// rounded to cents.
func ParseSalary(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	d = d.Round(2)
	if d.GreaterThan(maxSalary) {
		return decimal.Zero
	}
	return d
}

func (s *jobService) PostJob(ctx context.Context, employerID uint, in PostJobInput) (*model.Job, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	employer, err := s.repos.Users.FindByID(ctx, employerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find employer: %w", err)
	}
	profile, ok := employer.Employer()
	if !ok {
		return nil, apperrors.ErrNotEmployer
	}

	companyName := in.CompanyName
	if companyName == "" {
		companyName = profile.CompanyName
	}

	job := &model.Job{
		EmployerID:  employerID,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Salary:      ParseSalary(in.Salary),
		CompanyName: companyName,
	}
	if err := s.repos.Jobs.Create(ctx, job); err != nil {
		s.log.ErrorContext(ctx, "post job failed", "employer_id", employerID, "error", err)
		return nil, fmt.Errorf("create job: %w", err)
	}

	s.log.InfoContext(ctx, "job posted", "job_id", job.ID, "employer_id", employerID)
	return job, nil
}

// GetJob retrieves a job by ID with caching.
func (s *jobService) GetJob(ctx context.Context, id uint) (*model.Job, error) {
	var cached model.Job
	if s.cache.GetJSON(ctx, jobCacheKey(id), &cached) {
		return &cached, nil
	}

	job, err := s.repos.Jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}

	s.cache.SetJSON(ctx, jobCacheKey(id), job, jobCacheTTL)
	return job, nil
}

// UpdateJob edits a job owned by employerID. A job owned by someone else is
// reported as not found.
func (s *jobService) UpdateJob(ctx context.Context, employerID, jobID uint, in JobUpdate) (*model.Job, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	job := &model.Job{
		ID:          jobID,
		EmployerID:  employerID,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Salary:      ParseSalary(in.Salary),
	}
	n, err := s.repos.Jobs.Update(ctx, job)
	if err != nil {
		s.log.ErrorContext(ctx, "update job failed", "job_id", jobID, "error", err)
		return nil, fmt.Errorf("update job: %w", err)
	}
	_ = s.cache.Delete(ctx, jobCacheKey(jobID))
	if n == 0 {
		return nil, apperrors.ErrJobNotFound
	}

	updated, err := s.repos.Jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("reload job: %w", err)
	}
	return updated, nil
}

// DeleteJob removes a job owned by employerID together with its applications.
func (s *jobService) DeleteJob(ctx context.Context, employerID, jobID uint) error {
	err := s.repos.WithTransaction(ctx, func(ctx context.Context, tx *repository.Repositories) error {
		job, err := tx.Jobs.FindByID(ctx, jobID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrJobNotFound
			}
			return fmt.Errorf("find job: %w", err)
		}
		if job.EmployerID != employerID {
			return apperrors.ErrJobNotFound
		}

		if _, err := tx.Applications.DeleteByJob(ctx, jobID); err != nil {
			return fmt.Errorf("delete applications: %w", err)
		}
		n, err := tx.Jobs.Delete(ctx, employerID, jobID)
		if err != nil {
			return fmt.Errorf("delete job: %w", err)
		}
		if n == 0 {
			return apperrors.ErrJobNotFound
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrJobNotFound) {
			s.log.ErrorContext(ctx, "delete job rolled back", "job_id", jobID, "error", err)
		}
		return err
	}

	_ = s.cache.Delete(ctx, jobCacheKey(jobID))
	s.log.InfoContext(ctx, "job deleted", "job_id", jobID, "employer_id", employerID)
	return nil
}

func (s *jobService) ListAll(ctx context.Context) ([]model.Job, error) {
	jobs, err := s.repos.Jobs.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (s *jobService) ListByEmployer(ctx context.Context, employerID uint) ([]model.Job, error) {
	jobs, err := s.repos.Jobs.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("list employer jobs: %w", err)
	}
	return jobs, nil
}

// Search does not validate term; an empty term matches every job.
func (s *jobService) Search(ctx context.Context, term string) ([]model.Job, error) {
	jobs, err := s.repos.Jobs.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	return jobs, nil
}
