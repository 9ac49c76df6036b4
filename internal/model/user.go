package model

import "time"

// UserType discriminates the two kinds of account. It never changes after registration.
type UserType string

const (
	UserTypeSeeker   UserType = "SEEKER"
	UserTypeEmployer UserType = "EMPLOYER"
)

// Valid reports whether t is a known user type.
func (t UserType) Valid() bool {
	return t == UserTypeSeeker || t == UserTypeEmployer
}

// Profile is the type-specific payload of a User. It is either a SeekerProfile
// or an EmployerProfile.
type Profile interface {
	userType() UserType
}

// SeekerProfile holds the fields that only apply to job seekers.
type SeekerProfile struct {
	FullName   string `json:"full_name" validate:"required,max=255"`
	Skills     string `json:"skills"` // free text, comma separated
	ResumeInfo string `json:"resume_info"`
}

func (SeekerProfile) userType() UserType { return UserTypeSeeker }

// EmployerProfile holds the fields that only apply to employers.
type EmployerProfile struct {
	CompanyName string `json:"company_name" validate:"required,max=255"`
}

func (EmployerProfile) userType() UserType { return UserTypeEmployer }

// ProfileType returns the user type a profile belongs to, or "" for nil.
func ProfileType(p Profile) UserType {
	if p == nil {
		return ""
	}
	return p.userType()
}

// User is a registered account. The variant columns of the inapplicable type
// are always NULL; use Profile to read them.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:100;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Type         UserType  `json:"type" gorm:"type:varchar(10);not null;index"`
	FullName     *string   `json:"-" gorm:"size:255"`
	Skills       *string   `json:"-" gorm:"type:text"`
	ResumeInfo   *string   `json:"-" gorm:"type:text"`
	CompanyName  *string   `json:"-" gorm:"size:255"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser builds a user whose type is taken from the profile variant.
func NewUser(username, email, passwordHash string, profile Profile) *User {
	u := &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	u.SetProfile(profile)
	return u
}

// SetProfile replaces the variant columns and sets Type from the profile.
func (u *User) SetProfile(profile Profile) {
	u.FullName, u.Skills, u.ResumeInfo, u.CompanyName = nil, nil, nil, nil
	switch p := profile.(type) {
	case SeekerProfile:
		u.Type = UserTypeSeeker
		u.FullName = strPtr(p.FullName)
		u.Skills = strPtr(p.Skills)
		u.ResumeInfo = strPtr(p.ResumeInfo)
	case *SeekerProfile:
		u.SetProfile(*p)
	case EmployerProfile:
		u.Type = UserTypeEmployer
		u.CompanyName = strPtr(p.CompanyName)
	case *EmployerProfile:
		u.SetProfile(*p)
	}
}

// Profile rebuilds the type-specific payload from the discriminant.
func (u *User) Profile() Profile {
	switch u.Type {
	case UserTypeSeeker:
		return SeekerProfile{
			FullName:   deref(u.FullName),
			Skills:     deref(u.Skills),
			ResumeInfo: deref(u.ResumeInfo),
		}
	case UserTypeEmployer:
		return EmployerProfile{CompanyName: deref(u.CompanyName)}
	default:
		return nil
	}
}

// Seeker returns the seeker payload and true when u is a job seeker.
func (u *User) Seeker() (SeekerProfile, bool) {
	p, ok := u.Profile().(SeekerProfile)
	return p, ok
}

// Employer returns the employer payload and true when u is an employer.
func (u *User) Employer() (EmployerProfile, bool) {
	p, ok := u.Profile().(EmployerProfile)
	return p, ok
}

func strPtr(s string) *string { return &s }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
