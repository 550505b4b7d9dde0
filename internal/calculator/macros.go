package calculator

import "github.com/dietdesk/backend/internal/domain"

// Energy density of macronutrients in kcal per gram
const (
	KcalPerGramProtein      = 4.0
	KcalPerGramCarbohydrate = 4.0
	KcalPerGramFat          = 9.0
)

// MacroSplit allocates total calories across protein, carbohydrate and fat.
// The split is used exactly as given; percents that do not add up to 100
// are not normalized, PercentTotal reports their sum.
func MacroSplit(in domain.MacroSplitInput) (*domain.MacroSplitResult, error) {
	var v validator
	v.positive("totalCalories", in.TotalCalories, maxTotalCalories)
	v.percent("proteinPercent", in.ProteinPercent)
	v.percent("carbPercent", in.CarbPercent)
	v.percent("fatPercent", in.FatPercent)
	if err := v.err(); err != nil {
		return nil, err
	}

	return &domain.MacroSplitResult{
		TotalCalories: in.TotalCalories,
		Protein:       macroAmount(in.TotalCalories, in.ProteinPercent, KcalPerGramProtein),
		Carbohydrates: macroAmount(in.TotalCalories, in.CarbPercent, KcalPerGramCarbohydrate),
		Fat:           macroAmount(in.TotalCalories, in.FatPercent, KcalPerGramFat),
		PercentTotal:  round(in.ProteinPercent+in.CarbPercent+in.FatPercent, 1),
	}, nil
}

func macroAmount(total, percent, kcalPerGram float64) domain.MacroAmount {
	calories := total * percent / 100
	return domain.MacroAmount{
		Percent:  percent,
		Calories: round(calories, 1),
		Grams:    round(calories/kcalPerGram, 1),
	}
}
