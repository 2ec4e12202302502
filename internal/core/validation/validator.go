// Package validation holds the field-level checks applied to form input before
// any store is consulted. Every check is pure; uniqueness lives in the stores.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/agors/historiography/internal/core/domain"
)

const (
	MinUsernameLen = 3
	MaxUsernameLen = 30
	MinPasswordLen = 6
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9_+&*-]+(?:\.[a-zA-Z0-9_+&*-]+)*@(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,7}$`)
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	mustRegister(v, "username_chars", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "mailbox", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// FieldError is a single failed check. Its message is meant for the end user.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return e.Reason }

func (e *FieldError) Unwrap() error { return domain.ErrValidation }

// Field names one form value for RequiredFieldsNonEmpty.
type Field struct {
	Name  string
	Value string
}

// ValidUsername accepts 3–30 characters drawn from letters, digits, '.', '_'
// and '-'.
func ValidUsername(s string) error {
	return check("username", s, "required,min=3,max=30,username_chars")
}

// ValidEmail accepts local@domain.tld forms.
func ValidEmail(s string) error {
	return check("email", s, "required,mailbox")
}

// ValidPassword only enforces the minimum length.
func ValidPassword(s string) error {
	return check("password", s, "required,min=6")
}

// RequiredFieldsNonEmpty fails on the first field that is blank after trimming.
func RequiredFieldsNonEmpty(fields ...Field) error {
	for _, f := range fields {
		if err := check(f.Name, strings.TrimSpace(f.Value), "required"); err != nil {
			return err
		}
	}
	return nil
}

// RatingInRange accepts domain.MinRating..domain.MaxRating inclusive.
func RatingInRange(n int) error {
	return check("rating", n, fmt.Sprintf("min=%d,max=%d", domain.MinRating, domain.MaxRating))
}

// ParseRating converts the rating field text and applies RatingInRange.
func ParseRating(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &FieldError{Field: "rating", Reason: "rating is required"}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &FieldError{Field: "rating", Reason: fmt.Sprintf("rating must be a whole number from %d to %d", domain.MinRating, domain.MaxRating)}
	}
	if err := RatingInRange(n); err != nil {
		return 0, err
	}
	return n, nil
}

func check(field string, value any, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return &FieldError{Field: field, Reason: fieldError(field, ve[0])}
	}
	return fmt.Errorf("validate %s: %w", field, err)
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if field == "rating" {
			return fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating)
		}
		if field == "username" {
			return fmt.Sprintf("username must be %d to %d characters long", MinUsernameLen, MaxUsernameLen)
		}
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "max":
		if field == "rating" {
			return fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating)
		}
		return fmt.Sprintf("%s must be %d to %d characters long", field, MinUsernameLen, MaxUsernameLen)
	case "username_chars":
		return "username may only contain letters, digits, '.', '_' and '-'"
	case "mailbox":
		return "email must look like name@example.com"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
