package calculator

import "github.com/dietdesk/backend/internal/domain"

// activityMultipliers maps each activity level to its TDEE multiplier
var activityMultipliers = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary:  1.2,
	domain.ActivityLight:      1.375,
	domain.ActivityModerate:   1.55,
	domain.ActivityActive:     1.725,
	domain.ActivityVeryActive: 1.9,
}

// ActivityMultiplier returns the TDEE multiplier for a supported level
func ActivityMultiplier(level domain.ActivityLevel) (float64, bool) {
	m, ok := activityMultipliers[level]
	return m, ok
}

// BMR computes basal metabolic rate, rounded to whole kcal/day.
// An empty formula selects Mifflin-St Jeor.
func BMR(in domain.BMRInput) (*domain.BMRResult, error) {
	formula := in.Formula
	if formula == "" {
		formula = domain.FormulaMifflinStJeor
	}

	var v validator
	v.positive("weightKg", in.WeightKg, maxWeightKg)
	v.positive("heightCm", in.HeightCm, maxHeightCm)
	v.positiveInt("ageYears", in.AgeYears, maxAgeYears)
	v.sex(in.Sex)
	v.variant("formula", string(formula), formula.Valid())
	if err := v.err(); err != nil {
		return nil, err
	}

	var bmr float64
	switch formula {
	case domain.FormulaMifflinStJeor:
		bmr = mifflinStJeor(in.WeightKg, in.HeightCm, in.AgeYears, in.Sex)
	case domain.FormulaHarrisBenedict:
		bmr = harrisBenedict(in.WeightKg, in.HeightCm, in.AgeYears, in.Sex)
	}
	v.positiveBMR(bmr, "weightKg", "heightCm", "ageYears")
	if err := v.err(); err != nil {
		return nil, err
	}

	return &domain.BMRResult{
		BMR:         round(bmr, 0),
		FormulaUsed: formula,
		Unit:        UnitKcalPerDay,
	}, nil
}

func mifflinStJeor(weightKg, heightCm float64, ageYears int, sex domain.Sex) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if sex == domain.SexMale {
		return base + 5
	}
	return base - 161
}

func harrisBenedict(weightKg, heightCm float64, ageYears int, sex domain.Sex) float64 {
	age := float64(ageYears)
	if sex == domain.SexMale {
		return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*age
	}
	return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*age
}

// TDEE scales a previously computed BMR by the activity multiplier.
// There is no fallback BMR: a zero BMR is reported as missing.
func TDEE(in domain.TDEEInput) (*domain.TDEEResult, error) {
	var v validator
	v.positive("bmr", in.BMR, maxBMR)
	v.activity(in.ActivityLevel)
	if err := v.err(); err != nil {
		return nil, err
	}

	multiplier := activityMultipliers[in.ActivityLevel]
	return &domain.TDEEResult{
		TDEE:          round(in.BMR*multiplier, 0),
		BMR:           in.BMR,
		ActivityLevel: in.ActivityLevel,
		Multiplier:    multiplier,
		Unit:          UnitKcalPerDay,
	}, nil
}
