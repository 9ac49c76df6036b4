package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	apperrors "joblit/internal/errors"
	"joblit/internal/model"
	"joblit/internal/service"
)

// Fixture is the YAML document the seed tool loads.
type Fixture struct {
	Users []FixtureUser `yaml:"users"`
}

// FixtureUser is one account; Jobs are only read for employers.
type FixtureUser struct {
	Username    string         `yaml:"username"`
	Password    string         `yaml:"password"`
	Email       string         `yaml:"email"`
	Type        model.UserType `yaml:"type"`
	FullName    string         `yaml:"fullName"`
	Skills      string         `yaml:"skills"`
	ResumeInfo  string         `yaml:"resumeInfo"`
	CompanyName string         `yaml:"companyName"`
	Jobs        []FixtureJob   `yaml:"jobs"`
}

// FixtureJob is a job posted by the enclosing employer.
type FixtureJob struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Location    string `yaml:"location"`
	Salary      string `yaml:"salary"`
}

// Result counts what a seed run created.
type Result struct {
	UsersCreated int
	UsersSkipped int
	JobsPosted   int
}

// ParseFixture decodes a fixture document.
func ParseFixture(r io.Reader) (*Fixture, error) {
	var f Fixture
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

func (u FixtureUser) profile() model.Profile {
	if u.Type == model.UserTypeEmployer {
		return model.EmployerProfile{CompanyName: u.CompanyName}
	}
	return model.SeekerProfile{FullName: u.FullName, Skills: u.Skills, ResumeInfo: u.ResumeInfo}
}

// Seed registers every fixture user through the services. Existing users are
// skipped along with their jobs, so running it twice changes nothing.
func Seed(ctx context.Context, f *Fixture, accounts service.AccountService, jobs service.JobService, log *slog.Logger) (Result, error) {
	var res Result
	for _, fu := range f.Users {
		user, err := accounts.Register(ctx, service.RegisterInput{
			Username: fu.Username,
			Password: fu.Password,
			Email:    fu.Email,
			Type:     fu.Type,
			Profile:  fu.profile(),
		})
		if errors.Is(err, apperrors.ErrDuplicateUser) {
			log.Info("user exists, skipping", "username", fu.Username)
			res.UsersSkipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("register %s: %w", fu.Username, err)
		}
		res.UsersCreated++

		if user.Type != model.UserTypeEmployer {
			continue
		}
		for _, fj := range fu.Jobs {
			if _, err := jobs.PostJob(ctx, user.ID, service.PostJobInput{
				Title:       fj.Title,
				Description: fj.Description,
				Location:    fj.Location,
				Salary:      fj.Salary,
			}); err != nil {
				return res, fmt.Errorf("post job %q for %s: %w", fj.Title, fu.Username, err)
			}
			res.JobsPosted++
		}
	}
	return res, nil
}
