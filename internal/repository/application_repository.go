package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"joblit/internal/model"
)

// ApplicationRepository defines application persistence operations.
type ApplicationRepository interface {
	// Insert adds the application unless the pair already exists. It reports
	// whether a row was inserted; the check and the insert are one statement.
	Insert(ctx context.Context, app *model.Application) (bool, error)
	Exists(ctx context.Context, seekerID, jobID uint) (bool, error)
	Delete(ctx context.Context, seekerID, jobID uint) (int64, error)
	DeleteBySeeker(ctx context.Context, seekerID uint) (int64, error)
	DeleteByJob(ctx context.Context, jobID uint) (int64, error)
	DeleteByEmployer(ctx context.Context, employerID uint) (int64, error)
	ListApplicants(ctx context.Context, jobID uint) ([]model.User, error)
	ListAppliedJobs(ctx context.Context, seekerID uint) ([]model.Job, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Insert(ctx context.Context, app *model.Application) (bool, error) {
	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(app)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *applicationRepository) Exists(ctx context.Context, seekerID, jobID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("seeker_id = ? AND job_id = ?", seekerID, jobID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *applicationRepository) Delete(ctx context.Context, seekerID, jobID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("seeker_id = ? AND job_id = ?", seekerID, jobID).
		Delete(&model.Application{})
	return res.RowsAffected, res.Error
}

func (r *applicationRepository) DeleteBySeeker(ctx context.Context, seekerID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("seeker_id = ?", seekerID).Delete(&model.Application{})
	return res.RowsAffected, res.Error
}

func (r *applicationRepository) DeleteByJob(ctx context.Context, jobID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("job_id = ?", jobID).Delete(&model.Application{})
	return res.RowsAffected, res.Error
}

// DeleteByEmployer removes every application that references one of the employer's jobs.
func (r *applicationRepository) DeleteByEmployer(ctx context.Context, employerID uint) (int64, error) {
	jobIDs := r.db.Model(&model.Job{}).Select("id").Where("employer_id = ?", employerID)
	res := r.db.WithContext(ctx).Where("job_id IN (?)", jobIDs).Delete(&model.Application{})
	return res.RowsAffected, res.Error
}

// ListApplicants returns the seekers who applied to a job, earliest application first.
func (r *applicationRepository) ListApplicants(ctx context.Context, jobID uint) ([]model.User, error) {
	users := make([]model.User, 0)
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("users.*").
		Joins("JOIN applications ON applications.seeker_id = users.id").
		Where("applications.job_id = ? AND users.type = ?", jobID, model.UserTypeSeeker).
		Order("applications.applied_at ASC, users.id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListAppliedJobs returns the jobs a seeker applied to, latest application first.
func (r *applicationRepository) ListAppliedJobs(ctx context.Context, seekerID uint) ([]model.Job, error) {
	jobs := make([]model.Job, 0)
	if err := r.db.WithContext(ctx).Model(&model.Job{}).
		Select("jobs.*").
		Joins("JOIN applications ON applications.job_id = jobs.id").
		Where("applications.seeker_id = ?", seekerID).
		Order("applications.applied_at DESC, jobs.id DESC").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}
