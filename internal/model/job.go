package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Job is a posting owned by an employer.
type Job struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	EmployerID  uint            `json:"employer_id" gorm:"not null;index"`
	Title       string          `json:"title" gorm:"size:255;not null"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Location    string          `json:"location" gorm:"size:255;not null"`
	Salary      decimal.Decimal `json:"salary" gorm:"type:decimal(12,2);not null;default:0"` // 0 means unspecified
	// CompanyName is copied from the employer when the job is posted and is not
	// kept in sync with later renames.
	CompanyName string    `json:"company_name" gorm:"size:255"`
	PostedAt    time.Time `json:"posted_at" gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Employer User `json:"-" gorm:"foreignKey:EmployerID;constraint:OnDelete:CASCADE"`
}
