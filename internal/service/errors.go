package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lshigami/Edutrack/internal/pagination"
	"github.com/lshigami/Edutrack/internal/policy"
	"github.com/lshigami/Edutrack/internal/repository"
)

// Error kinds shared by every service. Controllers map them to status codes
// in one place.
var (
	ErrForbidden = policy.ErrForbidden
	ErrNotFound  = errors.New("not found")
)

// ValidationError reports malformed input field by field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// ConflictError is a well-formed request that the current state rejects,
// such as blocking a user who is already blocked.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func notFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

// translate maps lower-layer sentinels onto service error kinds.
func translate(err error, what string, id uint) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFoundf("%s with ID %d not found or deleted", what, id)
	case errors.Is(err, pagination.ErrPageOutOfRange):
		return notFoundf("invalid page")
	}
	return err
}

// FormatValidationErrors flattens validator errors into field messages.
func FormatValidationErrors(err error) map[string]string {
	fields := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fields
	}
	for _, e := range validationErrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			fields[field] = fmt.Sprintf("%s is required", e.Field())
		case "email":
			fields[field] = "Invalid email format"
		case "min":
			fields[field] = fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
		case "max":
			fields[field] = fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
		case "gte":
			fields[field] = fmt.Sprintf("%s must be greater than or equal to %s", e.Field(), e.Param())
		case "oneof":
			fields[field] = fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
		default:
			fields[field] = fmt.Sprintf("%s is invalid", e.Field())
		}
	}
	return fields
}
