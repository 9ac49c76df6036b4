package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "joblit/internal/errors"
	"joblit/internal/model"
)

// InputValidator checks service inputs before anything reaches the store.
type InputValidator struct {
	validate *validator.Validate
}

// NewInputValidator creates a validator that reports fields by their JSON names.
func NewInputValidator() *InputValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &InputValidator{validate: v}
}

// Struct validates s and converts the first failure into a ValidationError.
func (v *InputValidator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.NewValidationError("", err.Error())
	}
	fe := fieldErrs[0]
	return apperrors.NewValidationError(fe.Field(), reason(fe))
}

// Profile trims and validates a profile and returns it as a value variant.
// A nil profile is rejected.
func (v *InputValidator) Profile(p model.Profile) (model.Profile, error) {
	switch pp := p.(type) {
	case *model.SeekerProfile:
		if pp == nil {
			break
		}
		return v.Profile(*pp)
	case *model.EmployerProfile:
		if pp == nil {
			break
		}
		return v.Profile(*pp)
	case model.SeekerProfile:
		pp.FullName = strings.TrimSpace(pp.FullName)
		pp.Skills = strings.TrimSpace(pp.Skills)
		if err := v.Struct(pp); err != nil {
			return nil, err
		}
		return pp, nil
	case model.EmployerProfile:
		pp.CompanyName = strings.TrimSpace(pp.CompanyName)
		if err := v.Struct(pp); err != nil {
			return nil, err
		}
		return pp, nil
	}
	return nil, apperrors.NewValidationError("profile", "is required")
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "eqfield":
		return "does not match " + strings.ToLower(fe.Param())
	case "oneof":
		return "must be one of " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
