package calculator

import (
	"errors"
	"testing"

	"github.com/dietdesk/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceQuantity(t *testing.T) {
	tests := []struct {
		unit string
		want float64
	}{
		{"100g", 100},
		{"100 g", 100},
		{" 250ml", 250},
		{"0.5 l", 0.5},
		{"0,5 l", 0.5},
		{".5 cup", 0.5},
		{"1 adet", 1},
		{"adet", 1},
		{"porsiyon", 1},
		{"", 1},
		{"0g", 1},
	}

	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			assert.Equal(t, tt.want, ReferenceQuantity(tt.unit))
		})
	}
}

func TestSumNutrients(t *testing.T) {
	rice := &domain.FoodItem{
		Name: "Pirinç pilavı",
		Unit: "100g",
		Nutrients: domain.Nutrients{
			EnergyKcal:     200,
			ProteinG:       4,
			CarbohydratesG: 44,
			FatG:           0.5,
		},
	}

	result, err := SumNutrients([]domain.FoodSelection{{Food: rice, Quantity: 150}})
	require.NoError(t, err)

	assert.Equal(t, 300.0, result.Totals.EnergyKcal)
	assert.Equal(t, 6.0, result.Totals.ProteinG)
	assert.Equal(t, 66.0, result.Totals.CarbohydratesG)
	assert.Equal(t, 0.75, result.Totals.FatG)

	require.Len(t, result.Items, 1)
	assert.Equal(t, 100.0, result.Items[0].ReferenceQuantity)
	assert.Equal(t, 1.5, result.Items[0].Multiplier)
	assert.Equal(t, 300.0, result.Items[0].Nutrients.EnergyKcal)
}

func TestSumNutrients_UnparseableUnitUsesBaseOne(t *testing.T) {
	egg := &domain.FoodItem{
		Name:      "Yumurta",
		Unit:      "adet",
		Nutrients: domain.Nutrients{EnergyKcal: 78, ProteinG: 6.3, CarbohydratesG: 0.6, FatG: 5.3},
	}

	result, err := SumNutrients([]domain.FoodSelection{{Food: egg, Quantity: 2}})
	require.NoError(t, err)

	assert.Equal(t, 1.0, result.Items[0].ReferenceQuantity)
	assert.Equal(t, 156.0, result.Totals.EnergyKcal)
	assert.Equal(t, 12.6, result.Totals.ProteinG)
}

func TestSumNutrients_OrderIndependent(t *testing.T) {
	bread := &domain.FoodItem{Name: "Ekmek", Unit: "100g", Nutrients: domain.Nutrients{EnergyKcal: 265.3, ProteinG: 9.1, CarbohydratesG: 49.2, FatG: 3.3}}
	cheese := &domain.FoodItem{Name: "Beyaz peynir", Unit: "30g", Nutrients: domain.Nutrients{EnergyKcal: 93.7, ProteinG: 5.1, CarbohydratesG: 0.4, FatG: 7.9}}

	forward, err := SumNutrients([]domain.FoodSelection{
		{Food: bread, Quantity: 70},
		{Food: cheese, Quantity: 45},
		{Food: bread, Quantity: 33.3},
	})
	require.NoError(t, err)

	backward, err := SumNutrients([]domain.FoodSelection{
		{Food: bread, Quantity: 33.3},
		{Food: cheese, Quantity: 45},
		{Food: bread, Quantity: 70},
	})
	require.NoError(t, err)

	assert.Equal(t, forward.Totals, backward.Totals)
}

func TestSumNutrients_Empty(t *testing.T) {
	result, err := SumNutrients(nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Nutrients{}, result.Totals)
	assert.Empty(t, result.Items)
}

func TestSumNutrients_Validation(t *testing.T) {
	food := &domain.FoodItem{Name: "Elma", Unit: "100g", Nutrients: domain.Nutrients{EnergyKcal: 52}}

	t.Run("missing food", func(t *testing.T) {
		_, err := SumNutrients([]domain.FoodSelection{{Quantity: 100}})
		assert.True(t, errors.Is(err, domain.ErrMissingRequiredField))
	})

	t.Run("missing quantity", func(t *testing.T) {
		_, err := SumNutrients([]domain.FoodSelection{{Food: food}})
		assert.True(t, errors.Is(err, domain.ErrMissingRequiredField))
	})

	t.Run("negative quantity", func(t *testing.T) {
		result, err := SumNutrients([]domain.FoodSelection{{Food: food, Quantity: 100}, {Food: food, Quantity: -5}})
		assert.Nil(t, result)
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "items[1].quantity", verr.Violations[0].Field)
	})

	t.Run("negative nutrient value", func(t *testing.T) {
		bad := &domain.FoodItem{Name: "?", Unit: "100g", Nutrients: domain.Nutrients{FatG: -1}}
		_, err := SumNutrients([]domain.FoodSelection{{Food: bad, Quantity: 100}})
		assert.True(t, errors.Is(err, domain.ErrInvalidRange))
	})
}
