package domain

// BodyMetrics holds the measurements shared by BMI, BMR, body fat and ideal weight
type BodyMetrics struct {
	WeightKg float64 `json:"weightKg"`
	HeightCm float64 `json:"heightCm"`
	AgeYears int     `json:"ageYears"`
	Sex      Sex     `json:"sex"`
}

// BMICategory is the WHO weight class for a BMI value
type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal"
	BMIOverweight  BMICategory = "overweight"
	BMIObese       BMICategory = "obese"
)

// BMIResult is the output of the BMI calculator
type BMIResult struct {
	BMI         float64     `json:"bmi"`
	Category    BMICategory `json:"category"`
	Description string      `json:"description"`
}

// BMRInput is the input of the BMR calculator
type BMRInput struct {
	BodyMetrics
	Formula BMRFormula `json:"formula"`
}

// BMRResult is the output of the BMR calculator
type BMRResult struct {
	BMR         float64    `json:"bmr"`
	FormulaUsed BMRFormula `json:"formulaUsed"`
	Unit        string     `json:"unit"`
}

// TDEEInput takes a BMR produced by an earlier BMR calculation
type TDEEInput struct {
	BMR           float64       `json:"bmr"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
}

// TDEEResult is the output of the TDEE calculator
type TDEEResult struct {
	TDEE          float64       `json:"tdee"`
	BMR           float64       `json:"bmr"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Multiplier    float64       `json:"multiplier"`
	Unit          string        `json:"unit"`
}

// MacroSplitInput is the caller-supplied split; percents are not normalized
type MacroSplitInput struct {
	TotalCalories  float64 `json:"totalCalories"`
	ProteinPercent float64 `json:"proteinPercent"`
	CarbPercent    float64 `json:"carbPercent"`
	FatPercent     float64 `json:"fatPercent"`
}

// MacroAmount is the share of one macronutrient
type MacroAmount struct {
	Percent  float64 `json:"percent"`
	Calories float64 `json:"calories"`
	Grams    float64 `json:"grams"`
}

// MacroSplitResult is the output of the macro split calculator
type MacroSplitResult struct {
	TotalCalories float64     `json:"totalCalories"`
	Protein       MacroAmount `json:"protein"`
	Carbohydrates MacroAmount `json:"carbohydrates"`
	Fat           MacroAmount `json:"fat"`
	PercentTotal  float64     `json:"percentTotal"`
}

// IdealWeightInput is the input of the ideal weight calculator
type IdealWeightInput struct {
	HeightCm float64            `json:"heightCm"`
	Sex      Sex                `json:"sex"`
	Formula  IdealWeightFormula `json:"formula"`
}

// IdealWeightResult is the output of the ideal weight calculator
type IdealWeightResult struct {
	IdealWeightKg float64            `json:"idealWeightKg"`
	FormulaUsed   IdealWeightFormula `json:"formulaUsed"`
}

// BodyFatInput holds circumferences for the US Navy method.
// HipCm is required for female input only.
type BodyFatInput struct {
	BodyMetrics
	NeckCm  float64 `json:"neckCm"`
	WaistCm float64 `json:"waistCm"`
	HipCm   float64 `json:"hipCm,omitempty"`
}

// BodyFatResult is the output of the body fat calculator
type BodyFatResult struct {
	BodyFatPercent float64 `json:"bodyFatPercent"`
	Category       string  `json:"category"`
	Method         string  `json:"method"`
	FatMassKg      float64 `json:"fatMassKg"`
	LeanMassKg     float64 `json:"leanMassKg"`
}

// WaterIntakeInput is the input of the water intake calculator
type WaterIntakeInput struct {
	WeightKg      float64       `json:"weightKg"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Season        Season        `json:"season"`
}

// WaterIntakeResult is the output of the water intake calculator
type WaterIntakeResult struct {
	WaterIntakeMl  float64       `json:"waterIntakeMl"`
	WaterIntakeL   float64       `json:"waterIntakeL"`
	Glasses        int           `json:"glasses"`
	ActivityLevel  ActivityLevel `json:"activityLevel"`
	Season         Season        `json:"season"`
	Recommendation string        `json:"recommendation"`
}

// ProteinNeedsInput is the input of the protein calculator
type ProteinNeedsInput struct {
	WeightKg      float64       `json:"weightKg"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          ProteinGoal   `json:"goal"`
}

// FoodEquivalents expresses a protein amount in everyday foods
type FoodEquivalents struct {
	ChickenBreast100gPortions float64 `json:"chickenBreast100gPortions"`
	Eggs                      int     `json:"eggs"`
}

// ProteinNeedsResult is the output of the protein calculator
type ProteinNeedsResult struct {
	ProteinGrams    float64         `json:"proteinGrams"`
	ProteinPerKg    float64         `json:"proteinPerKg"`
	ProteinCalories float64         `json:"proteinCalories"`
	ActivityLevel   ActivityLevel   `json:"activityLevel"`
	Goal            ProteinGoal     `json:"goal"`
	FoodEquivalents FoodEquivalents `json:"foodEquivalents"`
}

// PlanType classifies a calorie plan
type PlanType string

const (
	PlanDeficit     PlanType = "deficit"
	PlanSurplus     PlanType = "surplus"
	PlanMaintenance PlanType = "maintenance"
)

// BMRMethod records how the planner estimated resting energy expenditure
type BMRMethod string

const (
	BMRMethodMifflin        BMRMethod = "mifflin_st_jeor"
	BMRMethodWeightEstimate BMRMethod = "weight_estimate"
)

// CaloriePlanInput is the input of the calorie deficit/surplus planner.
// HeightCm, AgeYears and Sex are optional; without all three the planner
// falls back to a weight-only BMR estimate.
type CaloriePlanInput struct {
	CurrentWeightKg float64       `json:"currentWeightKg"`
	TargetWeightKg  float64       `json:"targetWeightKg"`
	DurationWeeks   int           `json:"durationWeeks"`
	ActivityLevel   ActivityLevel `json:"activityLevel"`
	HeightCm        float64       `json:"heightCm,omitempty"`
	AgeYears        int           `json:"ageYears,omitempty"`
	Sex             Sex           `json:"sex,omitempty"`
}

// CaloriePlanResult is the output of the calorie deficit/surplus planner
type CaloriePlanResult struct {
	Type                     PlanType      `json:"type"`
	DailyCalorieDifference   float64       `json:"dailyCalorieDifference"`
	WeeklyCalorieDifference  float64       `json:"weeklyCalorieDifference"`
	TotalCalorieDifference   float64       `json:"totalCalorieDifference"`
	RecommendedDailyCalories float64       `json:"recommendedDailyCalories"`
	EstimatedBMR             float64       `json:"estimatedBMR"`
	BMRMethod                BMRMethod     `json:"bmrMethod"`
	EstimatedTDEE            float64       `json:"estimatedTDEE"`
	ActivityLevel            ActivityLevel `json:"activityLevel"`
	WeeklyWeightChangeKg     float64       `json:"weeklyWeightChangeKg"`
	WeightDifferenceKg       float64       `json:"weightDifferenceKg"`
	DurationWeeks            int           `json:"durationWeeks"`
	IsSafe                   bool          `json:"isSafe"`
	SafetyMessage            string        `json:"safetyMessage"`
}

// ProfileInput drives the composite BMI → BMR → TDEE → macro split calculation
type ProfileInput struct {
	BodyMetrics
	Formula       BMRFormula       `json:"formula"`
	ActivityLevel ActivityLevel    `json:"activityLevel"`
	Split         *MacroSplitInput `json:"split,omitempty"`
}

// ProfileResult bundles the chained results
type ProfileResult struct {
	BMI    BMIResult        `json:"bmi"`
	BMR    BMRResult        `json:"bmr"`
	TDEE   TDEEResult       `json:"tdee"`
	Macros MacroSplitResult `json:"macros"`
}
