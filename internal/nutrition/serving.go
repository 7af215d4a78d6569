package nutrition

import "math"

// GramsPerDay converts the daily requirement into grams of food per day.
// Returns nil when the caloric density is unknown or non-positive: a serving
// size must never be fabricated from an absent value.
func GramsPerDay(dailyKcal int, kcalPer100g *float64) *int {
	if kcalPer100g == nil || *kcalPer100g <= 0 {
		return nil
	}
	g := int(math.Round(float64(dailyKcal) / *kcalPer100g * 100))
	return &g
}

// PiecesPerDay converts the 10% treat budget into whole treat pieces per day,
// always at least one. Returns nil when per-piece calories are unknown or
// non-positive.
func PiecesPerDay(dailyKcal int, kcalPerPiece *float64) *int {
	if kcalPerPiece == nil || *kcalPerPiece <= 0 {
		return nil
	}
	n := int(math.Floor(float64(TreatBudget(dailyKcal)) / *kcalPerPiece))
	if n < 1 {
		n = 1
	}
	return &n
}
