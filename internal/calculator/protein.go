package calculator

import (
	"math"

	"github.com/dietdesk/backend/internal/domain"
)

const (
	proteinPer100gChickenBreast = 31.0
	proteinPerEgg               = 6.0
)

// proteinPerKgTable is indexed by goal, then by position in
// domain.ActivityLevels. Rows and columns are both non-decreasing.
var proteinPerKgTable = map[domain.ProteinGoal][5]float64{
	domain.GoalMaintenance: {0.8, 0.9, 1.0, 1.1, 1.2},
	domain.GoalWeightLoss:  {1.0, 1.1, 1.2, 1.3, 1.4},
	domain.GoalMuscleGain:  {1.4, 1.5, 1.6, 1.8, 2.0},
	domain.GoalAthletic:    {1.6, 1.7, 1.8, 2.0, 2.2},
}

// ProteinPerKg looks up the g/kg requirement for a goal and activity level
func ProteinPerKg(goal domain.ProteinGoal, level domain.ActivityLevel) (float64, bool) {
	row, ok := proteinPerKgTable[goal]
	if !ok {
		return 0, false
	}
	for i, l := range domain.ActivityLevels {
		if l == level {
			return row[i], true
		}
	}
	return 0, false
}

// ProteinNeeds computes daily protein needs. An empty goal means maintenance.
func ProteinNeeds(in domain.ProteinNeedsInput) (*domain.ProteinNeedsResult, error) {
	goal := in.Goal
	if goal == "" {
		goal = domain.GoalMaintenance
	}

	var v validator
	v.positive("weightKg", in.WeightKg, maxWeightKg)
	v.activity(in.ActivityLevel)
	v.variant("goal", string(goal), goal.Valid())
	if err := v.err(); err != nil {
		return nil, err
	}

	perKg, _ := ProteinPerKg(goal, in.ActivityLevel)
	grams := perKg * in.WeightKg

	return &domain.ProteinNeedsResult{
		ProteinGrams:    round(grams, 1),
		ProteinPerKg:    perKg,
		ProteinCalories: round(grams*KcalPerGramProtein, 0),
		ActivityLevel:   in.ActivityLevel,
		Goal:            goal,
		FoodEquivalents: domain.FoodEquivalents{
			ChickenBreast100gPortions: round(grams/proteinPer100gChickenBreast, 1),
			Eggs:                      int(math.Round(grams / proteinPerEgg)),
		},
	}, nil
}
