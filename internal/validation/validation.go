package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/dimitrije/taskapp-api/internal/apperr"
	"github.com/dimitrije/taskapp-api/internal/i18n"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\+[0-9]{1,3}[0-9]{6,14}$`)

var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

var validate = newValidator()

// Normalizer is implemented by request types that trim their input before
// validation.
type Normalizer interface {
	Normalize()
}

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return models.Priority(fl.Field().Int()).Valid()
	})
	_ = v.RegisterValidation("duedate", func(fl validator.FieldLevel) bool {
		_, err := ParseDueDate(fl.Field().String())
		return err == nil
	})

	return v
}

// Struct normalizes and validates s, returning a validation *apperr.Error
// with one code per failing rule, deduplicated, in field order.
func Struct(s any) error {
	if n, ok := s.(Normalizer); ok {
		n.Normalize()
	}

	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Internal(err)
	}

	var codes []i18n.Code
	seen := make(map[i18n.Code]bool)
	for _, fe := range verrs {
		code := codeFor(fe)
		if seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return apperr.Validation(codes...)
}

func codeFor(fe validator.FieldError) i18n.Code {
	switch fe.Tag() {
	case "required":
		return i18n.ErrMissingField
	case "email":
		return i18n.ErrInvalidEmail
	case "phone":
		return i18n.ErrInvalidPhone
	case "priority":
		return i18n.ErrInvalidPriority
	case "duedate":
		return i18n.ErrInvalidDueDate
	case "eqfield":
		return i18n.ErrPasswordMismatch
	case "min":
		if strings.Contains(fe.Field(), "password") {
			return i18n.ErrPasswordTooShort
		}
		return i18n.ErrMissingField
	case "max":
		switch fe.Field() {
		case "email":
			return i18n.ErrEmailTooLong
		case "description":
			return i18n.ErrDescriptionTooLong
		case "phone":
			return i18n.ErrPhoneTooLong
		default:
			return i18n.ErrNameTooLong
		}
	}
	return i18n.ErrMissingField
}

// ParseDueDate accepts RFC 3339 timestamps, HTML datetime-local values and
// plain dates. An empty string means no due date.
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, apperr.Validation(i18n.ErrInvalidDueDate)
}

// TrimAll trims surrounding whitespace from each string pointer.
func TrimAll(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}
