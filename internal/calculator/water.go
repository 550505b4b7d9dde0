package calculator

import (
	"fmt"
	"math"

	"github.com/dietdesk/backend/internal/domain"
)

const (
	waterMlPerKg      = 33.0
	waterGlassMl      = 250.0
	waterSummerBonus  = 500.0
	waterWinterChange = 0.0
)

var waterActivityBonusMl = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary:  0,
	domain.ActivityLight:      250,
	domain.ActivityModerate:   500,
	domain.ActivityActive:     750,
	domain.ActivityVeryActive: 1000,
}

// WaterIntake recommends daily water intake: 33 ml/kg plus an activity
// bonus, plus 500 ml in summer. An empty season means normal.
func WaterIntake(in domain.WaterIntakeInput) (*domain.WaterIntakeResult, error) {
	season := in.Season
	if season == "" {
		season = domain.SeasonNormal
	}

	var v validator
	v.positive("weightKg", in.WeightKg, maxWeightKg)
	v.activity(in.ActivityLevel)
	v.variant("season", string(season), season.Valid())
	if err := v.err(); err != nil {
		return nil, err
	}

	ml := in.WeightKg*waterMlPerKg + waterActivityBonusMl[in.ActivityLevel]
	switch season {
	case domain.SeasonSummer:
		ml += waterSummerBonus
	case domain.SeasonWinter:
		ml += waterWinterChange
	}
	ml = round(ml, 0)

	liters := round(ml/1000, 2)
	glasses := int(math.Round(ml / waterGlassMl))

	return &domain.WaterIntakeResult{
		WaterIntakeMl:  ml,
		WaterIntakeL:   liters,
		Glasses:        glasses,
		ActivityLevel:  in.ActivityLevel,
		Season:         season,
		Recommendation: waterRecommendation(liters, glasses, in.ActivityLevel, season),
	}, nil
}

func waterRecommendation(liters float64, glasses int, level domain.ActivityLevel, season domain.Season) string {
	msg := fmt.Sprintf("Günde %.2f litre (yaklaşık %d bardak) su için.", liters, glasses)
	if level == domain.ActivityActive || level == domain.ActivityVeryActive {
		msg += " Egzersiz öncesinde, sırasında ve sonrasında düzenli olarak su için."
	}
	switch season {
	case domain.SeasonSummer:
		msg += " Sıcak havada terle kaybedilen sıvıyı telafi etmek için ek su tüketin."
	case domain.SeasonWinter:
		msg += " Soğuk havada susuzluk hissi azalsa da su tüketimini sürdürün."
	}
	return msg
}
