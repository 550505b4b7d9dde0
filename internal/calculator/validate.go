// Package calculator implements the nutrition and anthropometric formulas.
// Every function is pure: inputs are validated as a whole before any
// arithmetic runs, and a result is either complete or absent.
package calculator

import (
	"fmt"
	"math"

	"github.com/dietdesk/backend/internal/domain"
)

// Plausibility bounds for numeric inputs
const (
	maxWeightKg        = 500.0
	maxHeightCm        = 300.0
	maxAgeYears        = 130
	maxCircumferenceCm = 300.0
	maxDurationWeeks   = 520
	maxTotalCalories   = 20000.0
	maxBMR             = 10000.0
)

// UnitKcalPerDay is the display unit of energy expenditure results
const UnitKcalPerDay = "kcal/gün"

// validator collects violations so a request reports all bad fields at once
type validator struct {
	violations []domain.Violation
}

func (v *validator) add(field string, kind error, format string, args ...interface{}) {
	v.violations = append(v.violations, domain.Violation{
		Field:   field,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

// positive requires 0 < value <= max. Zero counts as missing.
func (v *validator) positive(field string, value, max float64) {
	switch {
	case math.IsNaN(value) || math.IsInf(value, 0):
		v.add(field, domain.ErrInvalidRange, "%s must be a finite number", field)
	case value == 0:
		v.add(field, domain.ErrMissingRequiredField, "%s is required", field)
	case value < 0:
		v.add(field, domain.ErrInvalidRange, "%s must be positive, got %g", field, value)
	case value > max:
		v.add(field, domain.ErrInvalidRange, "%s must not exceed %g, got %g", field, max, value)
	}
}

func (v *validator) positiveInt(field string, value, max int) {
	switch {
	case value == 0:
		v.add(field, domain.ErrMissingRequiredField, "%s is required", field)
	case value < 0:
		v.add(field, domain.ErrInvalidRange, "%s must be positive, got %d", field, value)
	case value > max:
		v.add(field, domain.ErrInvalidRange, "%s must not exceed %d, got %d", field, max, value)
	}
}

// percent requires 0 <= value <= 100
func (v *validator) percent(field string, value float64) {
	if math.IsNaN(value) || value < 0 || value > 100 {
		v.add(field, domain.ErrInvalidRange, "%s must be between 0 and 100, got %g", field, value)
	}
}

func (v *validator) nonNegative(field string, value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		v.add(field, domain.ErrInvalidRange, "%s must be a non-negative number, got %g", field, value)
	}
}

func (v *validator) sex(s domain.Sex) {
	switch {
	case s == "":
		v.add("sex", domain.ErrMissingRequiredField, "sex is required")
	case !s.Valid():
		v.add("sex", domain.ErrUnsupportedVariant, "sex %q is not supported", s)
	}
}

func (v *validator) activity(a domain.ActivityLevel) {
	switch {
	case a == "":
		v.add("activityLevel", domain.ErrMissingRequiredField, "activityLevel is required")
	case !a.Valid():
		v.add("activityLevel", domain.ErrUnsupportedVariant, "activityLevel %q is not supported", a)
	}
}

func (v *validator) variant(field string, value string, valid bool) {
	if !valid {
		v.add(field, domain.ErrUnsupportedVariant, "%s %q is not supported", field, value)
	}
}

// positiveBMR rejects a formula result that is not a positive energy
// expenditure. Each input is in range on its own but the combination is not.
func (v *validator) positiveBMR(bmr float64, fields ...string) {
	if round(bmr, 0) > 0 {
		return
	}
	for _, field := range fields {
		v.add(field, domain.ErrInvalidRange, "%s is implausible in combination: estimated BMR is %g kcal", field, round(bmr, 0))
	}
}

func (v *validator) err() error {
	if len(v.violations) == 0 {
		return nil
	}
	return &domain.ValidationError{Violations: v.violations}
}

// round rounds half away from zero to the given number of decimals
func round(x float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(x*p) / p
}
