package calculator

import (
	"math"

	"github.com/dietdesk/backend/internal/domain"
)

// MethodUSNavy names the circumference-based body fat method
const MethodUSNavy = "US Navy"

// Body fat categories
const (
	BodyFatEssential = "essential"
	BodyFatAthletic  = "athletic"
	BodyFatFitness   = "fitness"
	BodyFatAverage   = "average"
	BodyFatObese     = "obese"
)

// bodyFatBand is an exclusive upper bound for a category
type bodyFatBand struct {
	upper    float64
	category string
}

const bodyFatOlderAge = 40

// bodyFatBands is keyed by sex and whether the person is 40 or older.
// A percent at or above the last bound is obese.
var bodyFatBands = map[domain.Sex]map[bool][]bodyFatBand{
	domain.SexMale: {
		false: {{6, BodyFatEssential}, {14, BodyFatAthletic}, {18, BodyFatFitness}, {25, BodyFatAverage}},
		true:  {{8, BodyFatEssential}, {16, BodyFatAthletic}, {20, BodyFatFitness}, {27, BodyFatAverage}},
	},
	domain.SexFemale: {
		false: {{14, BodyFatEssential}, {21, BodyFatAthletic}, {25, BodyFatFitness}, {32, BodyFatAverage}},
		true:  {{16, BodyFatEssential}, {23, BodyFatAthletic}, {27, BodyFatFitness}, {34, BodyFatAverage}},
	},
}

// BodyFat estimates body fat percentage with the US Navy method.
// Female input must include the hip circumference; it is never computed
// with the male equation instead.
func BodyFat(in domain.BodyFatInput) (*domain.BodyFatResult, error) {
	var v validator
	v.positive("weightKg", in.WeightKg, maxWeightKg)
	v.positive("heightCm", in.HeightCm, maxHeightCm)
	v.positiveInt("ageYears", in.AgeYears, maxAgeYears)
	v.sex(in.Sex)
	v.positive("neckCm", in.NeckCm, maxCircumferenceCm)
	v.positive("waistCm", in.WaistCm, maxCircumferenceCm)
	if in.Sex == domain.SexFemale {
		v.positive("hipCm", in.HipCm, maxCircumferenceCm)
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	var percent float64
	switch in.Sex {
	case domain.SexMale:
		if in.WaistCm <= in.NeckCm {
			return nil, domain.NewValidationError("waistCm", domain.ErrInvalidRange, "waistCm must be greater than neckCm")
		}
		percent = 495/(1.0324-0.19077*math.Log10(in.WaistCm-in.NeckCm)+0.15456*math.Log10(in.HeightCm)) - 450
	case domain.SexFemale:
		if in.WaistCm+in.HipCm <= in.NeckCm {
			return nil, domain.NewValidationError("waistCm", domain.ErrInvalidRange, "waistCm plus hipCm must be greater than neckCm")
		}
		percent = 495/(1.29579-0.35004*math.Log10(in.WaistCm+in.HipCm-in.NeckCm)+0.22100*math.Log10(in.HeightCm)) - 450
	}

	percent = round(percent, 1)
	if percent <= 0 || percent >= 100 || math.IsNaN(percent) {
		return nil, domain.NewValidationError("waistCm", domain.ErrInvalidRange,
			"circumference measurements give an implausible body fat percentage")
	}

	fatMass := in.WeightKg * percent / 100
	return &domain.BodyFatResult{
		BodyFatPercent: percent,
		Category:       BodyFatCategory(in.Sex, in.AgeYears, percent),
		Method:         MethodUSNavy,
		FatMassKg:      round(fatMass, 1),
		LeanMassKg:     round(in.WeightKg-fatMass, 1),
	}, nil
}

// BodyFatCategory classifies a body fat percentage by sex and age bracket
func BodyFatCategory(sex domain.Sex, ageYears int, percent float64) string {
	for _, band := range bodyFatBands[sex][ageYears >= bodyFatOlderAge] {
		if percent < band.upper {
			return band.category
		}
	}
	return BodyFatObese
}
