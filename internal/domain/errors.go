package domain

import (
	"errors"
	"strings"
)

var (
	// ErrFoodNotFound is returned when a food cannot be found in the food database
	ErrFoodNotFound = errors.New("food not found in USDA database")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrUSDAAPIFailure is returned when USDA API request fails
	ErrUSDAAPIFailure = errors.New("USDA API request failed")

	// ErrFoodSourceUnavailable is returned when no food database is configured
	ErrFoodSourceUnavailable = errors.New("food database is not configured")
)

// Validation failure kinds. A ValidationError matches each kind it carries
// through errors.Is.
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidRange         = errors.New("value out of range")
	ErrUnsupportedVariant   = errors.New("unsupported formula variant")
)

// Violation describes a single rejected input field.
type Violation struct {
	Field   string `json:"field"`
	Kind    error  `json:"-"`
	Message string `json:"message"`
}

// Code returns the wire code for the violation kind.
func (v Violation) Code() string {
	switch {
	case errors.Is(v.Kind, ErrMissingRequiredField):
		return "MISSING_REQUIRED_FIELD"
	case errors.Is(v.Kind, ErrInvalidRange):
		return "INVALID_RANGE"
	case errors.Is(v.Kind, ErrUnsupportedVariant):
		return "UNSUPPORTED_FORMULA_VARIANT"
	default:
		return "INVALID_REQUEST"
	}
}

// ValidationError collects every violation found in one request. It is
// returned before any computation runs.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the violation kinds so errors.Is(err, ErrInvalidRange) works.
func (e *ValidationError) Unwrap() []error {
	kinds := make([]error, 0, len(e.Violations))
	for _, v := range e.Violations {
		kinds = append(kinds, v.Kind)
	}
	return kinds
}

// NewValidationError builds a ValidationError holding a single violation.
func NewValidationError(field string, kind error, message string) *ValidationError {
	return &ValidationError{Violations: []Violation{{Field: field, Kind: kind, Message: message}}}
}
