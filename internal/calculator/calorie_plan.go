package calculator

import (
	"fmt"
	"math"

	"github.com/dietdesk/backend/internal/domain"
)

const (
	// KcalPerKgBodyMass is the energy content of one kilogram of body mass
	KcalPerKgBodyMass = 7700.0

	// SafeWeeklyChangeKg is the inclusive ceiling for a safe weekly change
	SafeWeeklyChangeKg = 1.0

	// bmrPerKgEstimate is the weight-only BMR estimate used when height,
	// age or sex is not supplied
	bmrPerKgEstimate = 22.0
)

// CaloriePlan plans the daily calorie deficit or surplus needed to move from
// the current to the target weight over the given number of weeks.
//
// BMR uses Mifflin-St Jeor when height, age and sex are all supplied, and
// 22 kcal per kg of current weight otherwise. An empty activity level means
// moderate. Exceeding the safe weekly rate is an advisory, not an error.
func CaloriePlan(in domain.CaloriePlanInput) (*domain.CaloriePlanResult, error) {
	level := in.ActivityLevel
	if level == "" {
		level = domain.ActivityModerate
	}

	var v validator
	v.positive("currentWeightKg", in.CurrentWeightKg, maxWeightKg)
	v.positive("targetWeightKg", in.TargetWeightKg, maxWeightKg)
	v.positiveInt("durationWeeks", in.DurationWeeks, maxDurationWeeks)
	v.activity(level)
	if in.HeightCm != 0 {
		v.positive("heightCm", in.HeightCm, maxHeightCm)
	}
	if in.AgeYears != 0 {
		v.positiveInt("ageYears", in.AgeYears, maxAgeYears)
	}
	if in.Sex != "" {
		v.sex(in.Sex)
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	bmr, method := plannerBMR(in)
	if method == domain.BMRMethodMifflin {
		v.positiveBMR(bmr, "currentWeightKg", "heightCm", "ageYears")
		if err := v.err(); err != nil {
			return nil, err
		}
	}
	tdee := bmr * activityMultipliers[level]

	weeks := float64(in.DurationWeeks)
	weightDiff := in.TargetWeightKg - in.CurrentWeightKg
	total := weightDiff * KcalPerKgBodyMass
	daily := total / (weeks * 7)
	weeklyChange := round(weightDiff/weeks, 2)

	planType := domain.PlanMaintenance
	switch {
	case daily < 0:
		planType = domain.PlanDeficit
	case daily > 0:
		planType = domain.PlanSurplus
	}

	safe := math.Abs(weeklyChange) <= SafeWeeklyChangeKg

	return &domain.CaloriePlanResult{
		Type:                     planType,
		DailyCalorieDifference:   round(daily, 0),
		WeeklyCalorieDifference:  round(total/weeks, 0),
		TotalCalorieDifference:   round(total, 0),
		RecommendedDailyCalories: round(tdee+daily, 0),
		EstimatedBMR:             round(bmr, 0),
		BMRMethod:                method,
		EstimatedTDEE:            round(tdee, 0),
		ActivityLevel:            level,
		WeeklyWeightChangeKg:     weeklyChange,
		WeightDifferenceKg:       round(weightDiff, 2),
		DurationWeeks:            in.DurationWeeks,
		IsSafe:                   safe,
		SafetyMessage:            safetyMessage(planType, safe, weeklyChange),
	}, nil
}

func plannerBMR(in domain.CaloriePlanInput) (float64, domain.BMRMethod) {
	if in.HeightCm > 0 && in.AgeYears > 0 && in.Sex.Valid() {
		return mifflinStJeor(in.CurrentWeightKg, in.HeightCm, in.AgeYears, in.Sex), domain.BMRMethodMifflin
	}
	return bmrPerKgEstimate * in.CurrentWeightKg, domain.BMRMethodWeightEstimate
}

func safetyMessage(planType domain.PlanType, safe bool, weeklyChange float64) string {
	rate := math.Abs(weeklyChange)
	switch {
	case planType == domain.PlanMaintenance:
		return "Hedef kilo mevcut kilonuzla aynı; mevcut enerji alımınızı koruyun."
	case planType == domain.PlanDeficit && safe:
		return fmt.Sprintf("Haftada %.2f kg kayıp güvenli sınırlar içinde.", rate)
	case planType == domain.PlanDeficit:
		return fmt.Sprintf("Haftada %.2f kg kayıp önerilen %.0f kg/hafta sınırını aşıyor; süreyi uzatmayı düşünün.", rate, SafeWeeklyChangeKg)
	case safe:
		return fmt.Sprintf("Haftada %.2f kg artış güvenli sınırlar içinde.", rate)
	default:
		return fmt.Sprintf("Haftada %.2f kg artış önerilen %.0f kg/hafta sınırını aşıyor; süreyi uzatmayı düşünün.", rate, SafeWeeklyChangeKg)
	}
}
