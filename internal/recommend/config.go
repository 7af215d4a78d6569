package recommend

import (
	"encoding/json"
	"fmt"
	"os"
)

// Weights defines the additive contribution of each scoring rule.
type Weights struct {
	PriceTierMatch   float64 `json:"price_tier_match"`
	TextureMatch     float64 `json:"texture_match"`
	ProteinMatch     float64 `json:"protein_match"`
	KittenTag        float64 `json:"kitten_tag"`
	SeniorTag        float64 `json:"senior_tag"`
	LowCalorie       float64 `json:"low_calorie"`
	HighActivity     float64 `json:"high_activity"`
	UrinaryMoisture  float64 `json:"urinary_moisture"`
	UrinaryMagnesium float64 `json:"urinary_magnesium"`
	KidneyPhosphorus float64 `json:"kidney_phosphorus"`
	KidneySodium     float64 `json:"kidney_sodium"`
	DigestiveTag     float64 `json:"digestive_tag"`
	HairballTag      float64 `json:"hairball_tag"`
	DentalCare       float64 `json:"dental_care"`
	HighProteinTag   float64 `json:"high_protein_tag"`
	AllergyPenalty   float64 `json:"allergy_penalty"`
	DislikePenalty   float64 `json:"dislike_penalty"`
	FavoriteBonus    float64 `json:"favorite_bonus"`
}

// DefaultWeights returns the canonical rule weights.
func DefaultWeights() Weights {
	return Weights{
		PriceTierMatch:   0.5,
		TextureMatch:     0.5,
		ProteinMatch:     0.5,
		KittenTag:        1.5,
		SeniorTag:        1.5,
		LowCalorie:       1.5,
		HighActivity:     0.7,
		UrinaryMoisture:  1.5,
		UrinaryMagnesium: 1.0,
		KidneyPhosphorus: 1.0,
		KidneySodium:     0.8,
		DigestiveTag:     1.0,
		HairballTag:      1.0,
		DentalCare:       2.0,
		HighProteinTag:   0.6,
		AllergyPenalty:   -5.0,
		DislikePenalty:   -2.0,
		FavoriteBonus:    0.5,
	}
}

// LoadWeightsFromFile loads weights from a JSON file, falling back to defaults
// on read errors.
func LoadWeightsFromFile(path string) (Weights, error) {
	w := DefaultWeights()
	b, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read weights file: %w", err)
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return w, fmt.Errorf("unmarshal weights: %w", err)
	}
	return w, nil
}
