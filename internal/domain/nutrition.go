package domain

import (
	"encoding/json"
	"time"
)

// FoodItem is an entry of the food/nutrient database. Nutrient values are
// given per Unit, e.g. per "100g".
type FoodItem struct {
	FdcID      string    `json:"fdcId,omitempty"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	Nutrients  Nutrients `json:"nutrients"`
	DataType   string    `json:"dataType,omitempty"`
	MatchScore float64   `json:"matchScore,omitempty"`
	Source     string    `json:"source,omitempty"` // "USDA" or "Cache"
	CachedAt   time.Time `json:"cachedAt,omitempty"`
}

// Nutrients contains the macronutrients tracked per food
type Nutrients struct {
	EnergyKcal     float64 `json:"energy_kcal"`
	ProteinG       float64 `json:"protein_g"`
	CarbohydratesG float64 `json:"carbohydrates_g"`
	FatG           float64 `json:"fat_g"`
}

// FoodSelection is a food chosen in a diet plan with a quantity expressed in
// the food's display unit (150 for "150 g" of a "100g" food)
type FoodSelection struct {
	Food     *FoodItem `json:"food,omitempty"`
	FdcID    string    `json:"fdcId,omitempty"`
	Quantity float64   `json:"quantity"`
}

// ItemContribution is the scaled nutrient contribution of one selection
type ItemContribution struct {
	Name              string    `json:"name"`
	Quantity          float64   `json:"quantity"`
	ReferenceQuantity float64   `json:"referenceQuantity"`
	Multiplier        float64   `json:"multiplier"`
	Nutrients         Nutrients `json:"nutrients"`
}

// NutrientTotals is the aggregate over a food selection
type NutrientTotals struct {
	Totals Nutrients          `json:"totals"`
	Items  []ItemContribution `json:"items"`
}

// USDAFood represents a food item from the USDA FoodData Central API
type USDAFood struct {
	FdcID       int            `json:"fdcId"`
	Description string         `json:"description"`
	DataType    string         `json:"dataType"`
	BrandOwner  string         `json:"brandOwner,omitempty"`
	Nutrients   []USDANutrient `json:"foodNutrients"`
}

// USDANutrient represents a single nutrient from USDA data
type USDANutrient struct {
	NutrientID     int     `json:"nutrientId"`
	NutrientName   string  `json:"nutrientName"`
	NutrientNumber string  `json:"nutrientNumber,omitempty"`
	UnitName       string  `json:"unitName"`
	Value          float64 `json:"value"`
}

// UnmarshalJSON accepts both the flat search shape and the nested
// {"nutrient": {...}, "amount": n} shape returned by the food details endpoint
func (n *USDANutrient) UnmarshalJSON(data []byte) error {
	type flat USDANutrient
	var raw struct {
		flat
		Nutrient *struct {
			ID       int    `json:"id"`
			Number   string `json:"number"`
			Name     string `json:"name"`
			UnitName string `json:"unitName"`
		} `json:"nutrient"`
		Amount *float64 `json:"amount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = USDANutrient(raw.flat)
	if raw.Nutrient != nil {
		n.NutrientID = raw.Nutrient.ID
		n.NutrientName = raw.Nutrient.Name
		n.NutrientNumber = raw.Nutrient.Number
		n.UnitName = raw.Nutrient.UnitName
	}
	if raw.Amount != nil {
		n.Value = *raw.Amount
	}
	return nil
}

// USDASearchResponse represents the response from USDA search API
type USDASearchResponse struct {
	Foods       []USDAFood `json:"foods"`
	TotalHits   int        `json:"totalHits"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
}
