package model

import "time"

// Application records that a seeker applied to a job. The (SeekerID, JobID)
// primary key allows at most one application per pair.
type Application struct {
	SeekerID  uint      `json:"seeker_id" gorm:"primaryKey;autoIncrement:false"`
	JobID     uint      `json:"job_id" gorm:"primaryKey;autoIncrement:false;index"`
	AppliedAt time.Time `json:"applied_at" gorm:"not null;index"`

	// Relations
	Seeker User `json:"-" gorm:"foreignKey:SeekerID;constraint:OnDelete:CASCADE"`
	Job    Job  `json:"-" gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
}
