package calculator

import "github.com/dietdesk/backend/internal/domain"

var bmiDescriptions = map[domain.BMICategory]string{
	domain.BMIUnderweight: "Zayıf: vücut ağırlığınız boyunuza göre sağlıklı aralığın altında.",
	domain.BMINormal:      "Normal: vücut ağırlığınız sağlıklı aralıkta.",
	domain.BMIOverweight:  "Fazla kilolu: vücut ağırlığınız sağlıklı aralığın üzerinde.",
	domain.BMIObese:       "Obez: sağlık riskleri artmıştır, bir uzmanla kilo planı yapılması önerilir.",
}

// BMI computes body mass index from weight and height.
// The category is derived from the value rounded to one decimal, so the
// displayed number and class always agree.
func BMI(weightKg, heightCm float64) (*domain.BMIResult, error) {
	var v validator
	v.positive("weightKg", weightKg, maxWeightKg)
	v.positive("heightCm", heightCm, maxHeightCm)
	if err := v.err(); err != nil {
		return nil, err
	}

	heightM := heightCm / 100
	bmi := round(weightKg/(heightM*heightM), 1)
	category := BMICategoryFor(bmi)

	return &domain.BMIResult{
		BMI:         bmi,
		Category:    category,
		Description: bmiDescriptions[category],
	}, nil
}

// BMICategoryFor classifies a BMI value with WHO thresholds
func BMICategoryFor(bmi float64) domain.BMICategory {
	switch {
	case bmi < 18.5:
		return domain.BMIUnderweight
	case bmi < 25:
		return domain.BMINormal
	case bmi < 30:
		return domain.BMIOverweight
	default:
		return domain.BMIObese
	}
}
