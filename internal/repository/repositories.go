package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories groups the repositories that share one database handle.
type Repositories struct {
	Users        UserRepository
	Jobs         JobRepository
	Applications ApplicationRepository

	db *gorm.DB
}

// New builds all repositories over db.
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(db),
		Jobs:         NewJobRepository(db),
		Applications: NewApplicationRepository(db),
		db:           db,
	}
}

// WithTransaction executes fn with repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back on an error or panic.
func (r *Repositories) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, New(tx))
	})
}
