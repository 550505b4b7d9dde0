package calculator

import "github.com/dietdesk/backend/internal/domain"

// DefaultSplit is the protein/carbohydrate/fat split used by Profile when
// the caller does not supply one
var DefaultSplit = domain.MacroSplitInput{ProteinPercent: 30, CarbPercent: 40, FatPercent: 30}

// Profile chains BMI, BMR, TDEE and the macro split, handing each result to
// the next step explicitly. The split's total calories always come from the
// computed TDEE.
func Profile(in domain.ProfileInput) (*domain.ProfileResult, error) {
	formula := in.Formula
	if formula == "" {
		formula = domain.FormulaMifflinStJeor
	}
	split := DefaultSplit
	if in.Split != nil {
		split = *in.Split
	}

	var v validator
	v.positive("weightKg", in.WeightKg, maxWeightKg)
	v.positive("heightCm", in.HeightCm, maxHeightCm)
	v.positiveInt("ageYears", in.AgeYears, maxAgeYears)
	v.sex(in.Sex)
	v.variant("formula", string(formula), formula.Valid())
	v.activity(in.ActivityLevel)
	v.percent("split.proteinPercent", split.ProteinPercent)
	v.percent("split.carbPercent", split.CarbPercent)
	v.percent("split.fatPercent", split.FatPercent)
	if err := v.err(); err != nil {
		return nil, err
	}

	bmi, err := BMI(in.WeightKg, in.HeightCm)
	if err != nil {
		return nil, err
	}
	bmr, err := BMR(domain.BMRInput{BodyMetrics: in.BodyMetrics, Formula: formula})
	if err != nil {
		return nil, err
	}
	tdee, err := TDEE(domain.TDEEInput{BMR: bmr.BMR, ActivityLevel: in.ActivityLevel})
	if err != nil {
		return nil, err
	}
	split.TotalCalories = tdee.TDEE
	macros, err := MacroSplit(split)
	if err != nil {
		return nil, err
	}

	return &domain.ProfileResult{BMI: *bmi, BMR: *bmr, TDEE: *tdee, Macros: *macros}, nil
}
