package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"joblit/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) (int64, error)
	UpdateResume(ctx context.Context, seekerID uint, skills, resumeInfo string) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile writes email, password hash and the variant columns. The type
// is part of the filter so a row can never switch variants.
func (r *userRepository) UpdateProfile(ctx context.Context, user *model.User) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND type = ?", user.ID, user.Type).
		Updates(map[string]interface{}{
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"full_name":     user.FullName,
			"skills":        user.Skills,
			"resume_info":   user.ResumeInfo,
			"company_name":  user.CompanyName,
			"updated_at":    time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

// UpdateResume changes only the skills and resume of a seeker.
func (r *userRepository) UpdateResume(ctx context.Context, seekerID uint, skills, resumeInfo string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND type = ?", seekerID, model.UserTypeSeeker).
		Updates(map[string]interface{}{
			"skills":      skills,
			"resume_info": resumeInfo,
			"updated_at":  time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.User{}, id)
	return res.RowsAffected, res.Error
}
