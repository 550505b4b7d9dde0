package calculator

import (
	"errors"
	"testing"

	"github.com/dietdesk/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaterIntake(t *testing.T) {
	tests := []struct {
		name        string
		input       domain.WaterIntakeInput
		wantMl      float64
		wantL       float64
		wantGlasses int
		wantSeason  domain.Season
	}{
		{
			name:        "moderate defaults to normal season",
			input:       domain.WaterIntakeInput{WeightKg: 70, ActivityLevel: domain.ActivityModerate},
			wantMl:      2810,
			wantL:       2.81,
			wantGlasses: 11,
			wantSeason:  domain.SeasonNormal,
		},
		{
			name:        "sedentary",
			input:       domain.WaterIntakeInput{WeightKg: 70, ActivityLevel: domain.ActivitySedentary, Season: domain.SeasonNormal},
			wantMl:      2310,
			wantL:       2.31,
			wantGlasses: 9,
			wantSeason:  domain.SeasonNormal,
		},
		{
			name:        "summer adds a bonus",
			input:       domain.WaterIntakeInput{WeightKg: 70, ActivityLevel: domain.ActivityModerate, Season: domain.SeasonSummer},
			wantMl:      3310,
			wantL:       3.31,
			wantGlasses: 13,
			wantSeason:  domain.SeasonSummer,
		},
		{
			name:        "winter leaves the amount unchanged",
			input:       domain.WaterIntakeInput{WeightKg: 70, ActivityLevel: domain.ActivityModerate, Season: domain.SeasonWinter},
			wantMl:      2810,
			wantL:       2.81,
			wantGlasses: 11,
			wantSeason:  domain.SeasonWinter,
		},
		{
			name:        "very active",
			input:       domain.WaterIntakeInput{WeightKg: 60, ActivityLevel: domain.ActivityVeryActive},
			wantMl:      2980,
			wantL:       2.98,
			wantGlasses: 12,
			wantSeason:  domain.SeasonNormal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := WaterIntake(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMl, result.WaterIntakeMl)
			assert.Equal(t, tt.wantL, result.WaterIntakeL)
			assert.Equal(t, tt.wantGlasses, result.Glasses)
			assert.Equal(t, tt.wantSeason, result.Season)
			assert.Contains(t, result.Recommendation, "litre")
		})
	}
}

func TestWaterIntake_Recommendation(t *testing.T) {
	result, err := WaterIntake(domain.WaterIntakeInput{WeightKg: 70, ActivityLevel: domain.ActivityActive, Season: domain.SeasonSummer})
	require.NoError(t, err)
	assert.Contains(t, result.Recommendation, "3.56 litre")
	assert.Contains(t, result.Recommendation, "Egzersiz")
	assert.Contains(t, result.Recommendation, "Sıcak havada")
}

func TestWaterIntake_Validation(t *testing.T) {
	_, err := WaterIntake(domain.WaterIntakeInput{WeightKg: 70})
	assert.True(t, errors.Is(err, domain.ErrMissingRequiredField))

	_, err = WaterIntake(domain.WaterIntakeInput{WeightKg: 70, ActivityLevel: domain.ActivityLight, Season: "monsoon"})
	assert.True(t, errors.Is(err, domain.ErrUnsupportedVariant))

	_, err = WaterIntake(domain.WaterIntakeInput{WeightKg: -1, ActivityLevel: domain.ActivityLight})
	assert.True(t, errors.Is(err, domain.ErrInvalidRange))
}
