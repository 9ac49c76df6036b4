package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"joblit/internal/model"
)

const jobOrder = "posted_at DESC, id DESC"

// likeEscaper escapes LIKE wildcards; the query declares '!' as the escape character.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// JobRepository defines job persistence operations.
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	FindByID(ctx context.Context, id uint) (*model.Job, error)
	Update(ctx context.Context, job *model.Job) (int64, error)
	Delete(ctx context.Context, employerID, jobID uint) (int64, error)
	DeleteByEmployer(ctx context.Context, employerID uint) (int64, error)
	ListAll(ctx context.Context) ([]model.Job, error)
	ListByEmployer(ctx context.Context, employerID uint) ([]model.Job, error)
	Search(ctx context.Context, term string) ([]model.Job, error)
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create inserts a job; id and posted_at are assigned by the store.
func (r *jobRepository) Create(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// FindByID finds a job by ID.
func (r *jobRepository) FindByID(ctx context.Context, id uint) (*model.Job, error) {
	var job model.Job
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// Update writes the editable fields of a job owned by job.EmployerID.
func (r *jobRepository) Update(ctx context.Context, job *model.Job) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Job{}).
		Where("id = ? AND employer_id = ?", job.ID, job.EmployerID).
		Updates(map[string]interface{}{
			"title":       job.Title,
			"description": job.Description,
			"location":    job.Location,
			"salary":      job.Salary,
			"updated_at":  time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

// Delete removes one job owned by the employer.
func (r *jobRepository) Delete(ctx context.Context, employerID, jobID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND employer_id = ?", jobID, employerID).
		Delete(&model.Job{})
	return res.RowsAffected, res.Error
}

// DeleteByEmployer removes every job of an employer.
func (r *jobRepository) DeleteByEmployer(ctx context.Context, employerID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("employer_id = ?", employerID).Delete(&model.Job{})
	return res.RowsAffected, res.Error
}

// ListAll lists every job, most recently posted first.
func (r *jobRepository) ListAll(ctx context.Context) ([]model.Job, error) {
	jobs := make([]model.Job, 0)
	if err := r.db.WithContext(ctx).Order(jobOrder).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListByEmployer lists the jobs of one employer, most recently posted first.
func (r *jobRepository) ListByEmployer(ctx context.Context, employerID uint) ([]model.Job, error) {
	jobs := make([]model.Job, 0)
	if err := r.db.WithContext(ctx).Where("employer_id = ?", employerID).
		Order(jobOrder).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Search matches term as a substring of title, description or location.
// Case sensitivity follows the column collation.
func (r *jobRepository) Search(ctx context.Context, term string) ([]model.Job, error) {
	pattern := "%" + likeEscaper.Replace(term) + "%"
	jobs := make([]model.Job, 0)
	if err := r.db.WithContext(ctx).
		Where("title LIKE ? ESCAPE '!' OR description LIKE ? ESCAPE '!' OR location LIKE ? ESCAPE '!'",
			pattern, pattern, pattern).
		Order(jobOrder).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}
