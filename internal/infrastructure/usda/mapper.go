package usda

import (
	"strconv"
	"strings"

	"github.com/dietdesk/backend/internal/domain"
)

// USDA Nutrient IDs for key macronutrients
const (
	NutrientIDEnergy       = 1008 // Energy (kcal)
	NutrientIDProtein      = 1003 // Protein (g)
	NutrientIDCarbohydrate = 1005 // Carbohydrate, by difference (g)
	NutrientIDTotalFat     = 1004 // Total lipid (fat) (g)

	// Foundation foods often report energy only as Atwater factors
	NutrientIDEnergyAtwaterGeneral  = 2047
	NutrientIDEnergyAtwaterSpecific = 2048
)

// ReferenceUnit is the quantity USDA nutrient values are given for
const ReferenceUnit = "100g"

// SourceUSDA marks foods that came straight from FoodData Central
const SourceUSDA = "USDA"

// MapToFoodItem converts USDA food data to a food database entry
func MapToFoodItem(usdaFood *domain.USDAFood) domain.FoodItem {
	return domain.FoodItem{
		FdcID:     strconv.Itoa(usdaFood.FdcID),
		Name:      strings.TrimSpace(usdaFood.Description),
		Unit:      ReferenceUnit,
		Nutrients: extractNutrients(usdaFood.Nutrients),
		DataType:  usdaFood.DataType,
		Source:    SourceUSDA,
	}
}

// extractNutrients extracts the key macronutrients from USDA nutrient list
func extractNutrients(usdaNutrients []domain.USDANutrient) domain.Nutrients {
	nutrients := domain.Nutrients{}

	for _, nutrient := range usdaNutrients {
		switch nutrient.NutrientID {
		case NutrientIDEnergy:
			// Some entries list energy twice, once in kJ
			if nutrient.UnitName == "" || strings.EqualFold(nutrient.UnitName, "kcal") {
				nutrients.EnergyKcal = nutrient.Value
			}
		case NutrientIDProtein:
			nutrients.ProteinG = nutrient.Value
		case NutrientIDCarbohydrate:
			nutrients.CarbohydratesG = nutrient.Value
		case NutrientIDTotalFat:
			nutrients.FatG = nutrient.Value
		}
	}

	if nutrients.EnergyKcal == 0 {
		nutrients.EnergyKcal = FindNutrientValue(usdaNutrients, NutrientIDEnergyAtwaterGeneral)
	}
	if nutrients.EnergyKcal == 0 {
		nutrients.EnergyKcal = FindNutrientValue(usdaNutrients, NutrientIDEnergyAtwaterSpecific)
	}
	return nutrients
}

// FindNutrientValue finds a specific nutrient value by ID
func FindNutrientValue(nutrients []domain.USDANutrient, nutrientID int) float64 {
	for _, nutrient := range nutrients {
		if nutrient.NutrientID == nutrientID {
			return nutrient.Value
		}
	}
	return 0.0
}
