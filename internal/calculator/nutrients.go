package calculator

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/dietdesk/backend/internal/domain"
)

// leadingQuantityRegex captures the number a unit label starts with
// ("100g", "0,5 l", "1 adet")
var leadingQuantityRegex = regexp.MustCompile(`^\s*(\d*[.,]?\d+)`)

// ReferenceQuantity returns the numeric amount implied by a unit label.
// Labels without a positive leading number fall back to 1, so the requested
// quantity is read as already being in reference units.
func ReferenceQuantity(unit string) float64 {
	m := leadingQuantityRegex.FindStringSubmatch(unit)
	if m == nil {
		return 1
	}
	q, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
	if err != nil || q <= 0 {
		return 1
	}
	return q
}

// SumNutrients aggregates calories and macronutrients over a food selection.
// Each nutrient is scaled by quantity / reference quantity. Contributions are
// summed in sorted order, which makes the totals independent of selection
// order, and are rounded to two decimals once at the end.
func SumNutrients(selections []domain.FoodSelection) (*domain.NutrientTotals, error) {
	var v validator
	for i, sel := range selections {
		field := fmt.Sprintf("items[%d]", i)
		if sel.Food == nil {
			v.add(field+".food", domain.ErrMissingRequiredField, "%s.food is required", field)
			continue
		}
		v.positive(field+".quantity", sel.Quantity, 1e6)
		v.nonNegative(field+".nutrients.energy_kcal", sel.Food.Nutrients.EnergyKcal)
		v.nonNegative(field+".nutrients.protein_g", sel.Food.Nutrients.ProteinG)
		v.nonNegative(field+".nutrients.carbohydrates_g", sel.Food.Nutrients.CarbohydratesG)
		v.nonNegative(field+".nutrients.fat_g", sel.Food.Nutrients.FatG)
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	n := len(selections)
	energy := make([]float64, 0, n)
	protein := make([]float64, 0, n)
	carbs := make([]float64, 0, n)
	fat := make([]float64, 0, n)
	items := make([]domain.ItemContribution, 0, n)

	for _, sel := range selections {
		ref := ReferenceQuantity(sel.Food.Unit)
		multiplier := sel.Quantity / ref
		scaled := domain.Nutrients{
			EnergyKcal:     sel.Food.Nutrients.EnergyKcal * multiplier,
			ProteinG:       sel.Food.Nutrients.ProteinG * multiplier,
			CarbohydratesG: sel.Food.Nutrients.CarbohydratesG * multiplier,
			FatG:           sel.Food.Nutrients.FatG * multiplier,
		}

		energy = append(energy, scaled.EnergyKcal)
		protein = append(protein, scaled.ProteinG)
		carbs = append(carbs, scaled.CarbohydratesG)
		fat = append(fat, scaled.FatG)

		items = append(items, domain.ItemContribution{
			Name:              sel.Food.Name,
			Quantity:          sel.Quantity,
			ReferenceQuantity: ref,
			Multiplier:        round(multiplier, 4),
			Nutrients:         roundNutrients(scaled),
		})
	}

	return &domain.NutrientTotals{
		Totals: roundNutrients(domain.Nutrients{
			EnergyKcal:     sortedSum(energy),
			ProteinG:       sortedSum(protein),
			CarbohydratesG: sortedSum(carbs),
			FatG:           sortedSum(fat),
		}),
		Items: items,
	}, nil
}

func sortedSum(values []float64) float64 {
	slices.Sort(values)
	var sum float64
	for _, x := range values {
		sum += x
	}
	return sum
}

func roundNutrients(n domain.Nutrients) domain.Nutrients {
	return domain.Nutrients{
		EnergyKcal:     round(n.EnergyKcal, 2),
		ProteinG:       round(n.ProteinG, 2),
		CarbohydratesG: round(n.CarbohydratesG, 2),
		FatG:           round(n.FatG, 2),
	}
}
