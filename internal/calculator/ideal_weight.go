package calculator

import "github.com/dietdesk/backend/internal/domain"

const (
	cmPerInch      = 2.54
	baselineInches = 60.0 // five feet
)

// idealWeightCoefficients holds the base weight at five feet and the kg
// added per inch above it
type idealWeightCoefficients struct {
	baseKg    float64
	kgPerInch float64
}

var idealWeightTable = map[domain.IdealWeightFormula]map[domain.Sex]idealWeightCoefficients{
	domain.FormulaRobinson: {
		domain.SexMale:   {52, 1.9},
		domain.SexFemale: {49, 1.7},
	},
	domain.FormulaMiller: {
		domain.SexMale:   {56.2, 1.41},
		domain.SexFemale: {53.1, 1.36},
	},
	domain.FormulaDevine: {
		domain.SexMale:   {50, 2.3},
		domain.SexFemale: {45.5, 2.3},
	},
	domain.FormulaHamwi: {
		domain.SexMale:   {48, 2.7},
		domain.SexFemale: {45.5, 2.2},
	},
}

// IdealWeight estimates ideal body weight. An empty formula selects Robinson.
// Heights under five feet extrapolate the same line downwards.
func IdealWeight(in domain.IdealWeightInput) (*domain.IdealWeightResult, error) {
	formula := in.Formula
	if formula == "" {
		formula = domain.FormulaRobinson
	}

	var v validator
	v.positive("heightCm", in.HeightCm, maxHeightCm)
	v.sex(in.Sex)
	v.variant("formula", string(formula), formula.Valid())
	if err := v.err(); err != nil {
		return nil, err
	}

	c := idealWeightTable[formula][in.Sex]
	inchesOver := in.HeightCm/cmPerInch - baselineInches

	return &domain.IdealWeightResult{
		IdealWeightKg: round(c.baseKg+c.kgPerInch*inchesOver, 1),
		FormulaUsed:   formula,
	}, nil
}
