package domain

import (
	"fmt"
	"strings"
)

// Sex is the biological sex used by sex-specific formulas
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Valid reports whether s is a supported value
func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// ParseSex parses a sex value. Empty input is reported as missing.
func ParseSex(s string) (Sex, error) {
	switch normalizeEnum(s) {
	case "":
		return "", NewValidationError("sex", ErrMissingRequiredField, "sex is required")
	case "male", "erkek":
		return SexMale, nil
	case "female", "kadın", "kadin":
		return SexFemale, nil
	}
	return "", unsupported("sex", s)
}

// ActivityLevel is the physical activity tier used by TDEE, water and protein tables
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// ActivityLevels lists the tiers from least to most active
var ActivityLevels = []ActivityLevel{
	ActivitySedentary,
	ActivityLight,
	ActivityModerate,
	ActivityActive,
	ActivityVeryActive,
}

// Valid reports whether a is a supported value
func (a ActivityLevel) Valid() bool {
	for _, level := range ActivityLevels {
		if a == level {
			return true
		}
	}
	return false
}

// ParseActivityLevel parses an activity level. Empty input is reported as missing.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	v := ActivityLevel(strings.ReplaceAll(normalizeEnum(s), "-", "_"))
	if v == "" {
		return "", NewValidationError("activityLevel", ErrMissingRequiredField, "activityLevel is required")
	}
	if !v.Valid() {
		return "", unsupported("activityLevel", s)
	}
	return v, nil
}

// BMRFormula selects the basal metabolic rate equation
type BMRFormula string

const (
	FormulaMifflinStJeor  BMRFormula = "mifflin_st_jeor"
	FormulaHarrisBenedict BMRFormula = "harris_benedict"
)

// Valid reports whether f is a supported value
func (f BMRFormula) Valid() bool {
	return f == FormulaMifflinStJeor || f == FormulaHarrisBenedict
}

// ParseBMRFormula parses a BMR formula name; empty input selects Mifflin-St Jeor.
func ParseBMRFormula(s string) (BMRFormula, error) {
	switch strings.ReplaceAll(normalizeEnum(s), "-", "_") {
	case "":
		return FormulaMifflinStJeor, nil
	case "mifflin_st_jeor", "mifflin":
		return FormulaMifflinStJeor, nil
	case "harris_benedict", "harris":
		return FormulaHarrisBenedict, nil
	}
	return "", unsupported("formula", s)
}

// IdealWeightFormula selects the ideal body weight equation
type IdealWeightFormula string

const (
	FormulaRobinson IdealWeightFormula = "robinson"
	FormulaMiller   IdealWeightFormula = "miller"
	FormulaDevine   IdealWeightFormula = "devine"
	FormulaHamwi    IdealWeightFormula = "hamwi"
)

// Valid reports whether f is a supported value
func (f IdealWeightFormula) Valid() bool {
	switch f {
	case FormulaRobinson, FormulaMiller, FormulaDevine, FormulaHamwi:
		return true
	}
	return false
}

// ParseIdealWeightFormula parses a formula name; empty input selects Robinson.
func ParseIdealWeightFormula(s string) (IdealWeightFormula, error) {
	v := IdealWeightFormula(normalizeEnum(s))
	if v == "" {
		return FormulaRobinson, nil
	}
	if !v.Valid() {
		return "", unsupported("formula", s)
	}
	return v, nil
}

// Season adjusts the water intake recommendation
type Season string

const (
	SeasonNormal Season = "normal"
	SeasonSummer Season = "summer"
	SeasonWinter Season = "winter"
)

// Valid reports whether s is a supported value
func (s Season) Valid() bool {
	return s == SeasonNormal || s == SeasonSummer || s == SeasonWinter
}

// ParseSeason parses a season; the Turkish labels yaz and kış are accepted.
// Empty input selects the normal season. Unicode lowercasing maps the dotless
// capital in "KIŞ" to a dotted i, hence the kiş alias.
func ParseSeason(s string) (Season, error) {
	switch normalizeEnum(s) {
	case "", "normal":
		return SeasonNormal, nil
	case "summer", "yaz":
		return SeasonSummer, nil
	case "winter", "kış", "kiş", "kis":
		return SeasonWinter, nil
	}
	return "", unsupported("season", s)
}

// ProteinGoal selects the protein requirement row
type ProteinGoal string

const (
	GoalMaintenance ProteinGoal = "maintenance"
	GoalWeightLoss  ProteinGoal = "weight_loss"
	GoalMuscleGain  ProteinGoal = "muscle_gain"
	GoalAthletic    ProteinGoal = "athletic"
)

// Valid reports whether g is a supported value
func (g ProteinGoal) Valid() bool {
	switch g {
	case GoalMaintenance, GoalWeightLoss, GoalMuscleGain, GoalAthletic:
		return true
	}
	return false
}

// ParseProteinGoal parses a goal; empty input selects maintenance.
func ParseProteinGoal(s string) (ProteinGoal, error) {
	v := ProteinGoal(strings.ReplaceAll(normalizeEnum(s), "-", "_"))
	if v == "" {
		return GoalMaintenance, nil
	}
	if !v.Valid() {
		return "", unsupported("goal", s)
	}
	return v, nil
}

func normalizeEnum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func unsupported(field, value string) *ValidationError {
	return NewValidationError(field, ErrUnsupportedVariant, fmt.Sprintf("%s %q is not supported", field, value))
}
