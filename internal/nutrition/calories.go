// Package nutrition holds the caloric-need estimate and serving calculators.
package nutrition

import (
	"math"

	"github.com/jipsa-lab/cat-meal-advisor/internal/domain"
)

// MinDailyKcal is the floor applied to every daily estimate.
const MinDailyKcal = 120

// minWeightKg is the clamping floor for implausibly small weights.
const minWeightKg = 0.5

// StageFor buckets age into a coarse life stage: kitten below one year,
// senior from ten years, adult in between.
func StageFor(ageYears float64) domain.LifeStage {
	switch {
	case ageYears < 1:
		return domain.StageKitten
	case ageYears >= 10:
		return domain.StageSenior
	default:
		return domain.StageAdult
	}
}

// DailyCalories estimates the daily caloric requirement in kcal.
//
// Base is the resting energy requirement RER = 70 * weight^0.75. The
// adjustment factor starts at 1.0 and each applicable modifier is added to
// that same base (not multiplied): -0.05 neutered, -0.10 low activity,
// +0.15 high activity, +0.25 kitten, -0.05 senior. The rounded result is
// floored at MinDailyKcal.
func DailyCalories(weightKg float64, activity domain.Activity, neutered bool, stage domain.LifeStage) int {
	w := math.Max(minWeightKg, weightKg)
	rer := 70 * math.Pow(w, 0.75)

	factor := 1.0
	if neutered {
		factor -= 0.05
	}
	switch activity {
	case domain.ActivityLow:
		factor -= 0.10
	case domain.ActivityHigh:
		factor += 0.15
	}
	switch stage {
	case domain.StageKitten:
		factor += 0.25
	case domain.StageSenior:
		factor -= 0.05
	}

	kcal := int(math.Round(rer * factor))
	if kcal < MinDailyKcal {
		kcal = MinDailyKcal
	}
	return kcal
}

// TreatBudget is the conventional 10% treat allowance, floored.
func TreatBudget(dailyKcal int) int {
	return dailyKcal / 10
}
