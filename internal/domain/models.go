package domain

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

type ItemType string

const (
	ItemTypeFood  ItemType = "food"
	ItemTypeTreat ItemType = "treat"
)

type Texture string

const (
	TextureDry Texture = "dry"
	TextureWet Texture = "wet"
)

type PriceTier string

const (
	PriceTierLow     PriceTier = "low"
	PriceTierMedium  PriceTier = "medium"
	PriceTierPremium PriceTier = "premium"
)

type Activity string

const (
	ActivityLow      Activity = "low"
	ActivityModerate Activity = "moderate"
	ActivityHigh     Activity = "high"
)

type LifeStage string

const (
	StageKitten LifeStage = "kitten"
	StageAdult  LifeStage = "adult"
	StageSenior LifeStage = "senior"
)

type Condition string

const (
	ConditionObesityProne Condition = "obesity-prone"
	ConditionUrinary      Condition = "urinary"
	ConditionKidney       Condition = "kidney"
	ConditionLiver        Condition = "liver"
	ConditionDigestive    Condition = "digestive-sensitivity"
	ConditionHairball     Condition = "hairball"
	ConditionDental       Condition = "dental"
)

// PreferenceAny disables a texture or protein preference.
const PreferenceAny = "any"

// FilterAll is the sentinel meaning "no restriction" inside a filter set.
const FilterAll = "all"

// Well-known catalog tags the scoring rules look at.
const (
	TagKitten      = "kitten"
	TagSenior      = "senior"
	TagDigestive   = "digestive-sensitivity"
	TagHairball    = "hairball"
	TagDentalCare  = "dental-care"
	TagHighProtein = "high-protein"
)

// CatalogFilters narrows the catalog before scoring. Empty sets (or sets
// containing FilterAll) leave the corresponding dimension unrestricted.
type CatalogFilters struct {
	Brands        []string `json:"brands,omitempty"`
	PriceTiers    []string `json:"price_tiers,omitempty"`
	Textures      []string `json:"textures,omitempty"`
	Proteins      []string `json:"proteins,omitempty"`
	MinPriceKRW   *int     `json:"min_price_krw,omitempty"`
	MaxPriceKRW   *int     `json:"max_price_krw,omitempty"`
	GrainFreeOnly bool     `json:"grain_free_only,omitempty"`
	VetDietOnly   bool     `json:"vet_diet_only,omitempty"`
}

// PetProfile is the caller-supplied input for one recommendation pass.
// It is treated as immutable while the pass runs.
type PetProfile struct {
	WeightKg          float64        `json:"weight_kg"`
	AgeYears          float64        `json:"age_years"`
	Neutered          bool           `json:"neutered"`
	Activity          Activity       `json:"activity"`
	Conditions        []Condition    `json:"conditions,omitempty"`
	TexturePreference string         `json:"texture_preference,omitempty"`
	ProteinPreference string         `json:"protein_preference,omitempty"`
	AllergyTokens     []string       `json:"allergy_tokens,omitempty"`
	Filters           CatalogFilters `json:"filters,omitempty"`
}

func (p PetProfile) HasCondition(c Condition) bool {
	for _, have := range p.Conditions {
		if have == c {
			return true
		}
	}
	return false
}

// CatalogItem is one row of the product catalog. Numeric nutrition fields are
// pointers: nil means the value is unknown, which is different from zero and
// must never pass an eligibility threshold.
type CatalogItem struct {
	ID          string    `json:"id"`
	SKU         string    `json:"sku,omitempty"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Type        ItemType  `json:"type"`
	Texture     Texture   `json:"texture"`
	Protein     string    `json:"protein"`
	Ingredients string    `json:"ingredients,omitempty"`
	PriceTier   PriceTier `json:"price_tier"`
	PriceKRW    *int      `json:"price_krw,omitempty"`

	KcalPer100g           *float64 `json:"kcal_per_100g,omitempty"`
	TreatKcalPerPiece     *float64 `json:"treat_kcal_per_piece,omitempty"`
	MoisturePct           *float64 `json:"moisture_pct,omitempty"`
	MagnesiumMgPer100kcal *float64 `json:"magnesium_mg_per_100kcal,omitempty"`
	PhosphorusPctDM       *float64 `json:"phosphorus_pct_dm,omitempty"`
	SodiumPctDM           *float64 `json:"sodium_pct_dm,omitempty"`

	Tags           []string `json:"tags,omitempty"`
	GrainFree      bool     `json:"grain_free,omitempty"`
	SingleProtein  bool     `json:"single_protein,omitempty"`
	VeterinaryDiet bool     `json:"veterinary_diet,omitempty"`
	ProductURL     string   `json:"product_url,omitempty"`
}

func (i CatalogItem) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ItemKey derives a stable identifier from the SKU, or from name+brand when no
// SKU exists, with a short md5 suffix to disambiguate near-identical rows.
func ItemKey(i CatalogItem) string {
	base := i.SKU
	if base == "" {
		base = i.Name + "_" + i.Brand
	}
	sum := md5.Sum([]byte(base))
	return base + "-" + hex.EncodeToString(sum[:])[:8]
}

type ReasonCode string

const (
	ReasonPriceTierMatch ReasonCode = "price-tier-match"
	ReasonTextureMatch   ReasonCode = "texture-match"
	ReasonProteinMatch   ReasonCode = "protein-match"
	ReasonKittenFit      ReasonCode = "kitten-fit"
	ReasonSeniorFit      ReasonCode = "senior-fit"
	ReasonLowCalorie     ReasonCode = "low-calorie"
	ReasonHighActivity   ReasonCode = "high-activity-fit"
	ReasonHighMoisture   ReasonCode = "high-moisture"
	ReasonLowMagnesium   ReasonCode = "low-magnesium"
	ReasonLowPhosphorus  ReasonCode = "low-phosphorus"
	ReasonModerateSodium ReasonCode = "moderate-sodium"
	ReasonDigestiveFit   ReasonCode = "digestive-fit"
	ReasonHairballCare   ReasonCode = "hairball-care"
	ReasonDentalCare     ReasonCode = "dental-care"
	ReasonHighProtein    ReasonCode = "high-protein"
	ReasonAllergyRisk    ReasonCode = "allergy-risk"
	ReasonDisliked       ReasonCode = "disliked"
	ReasonFavorite       ReasonCode = "favorite"
)

// Reason explains one scoring contribution. Code is stable so presentation
// layers can localize; Message is a default human-readable label.
type Reason struct {
	Code    ReasonCode `json:"code"`
	Message string     `json:"message"`
}

// ScoredItem is a catalog item annotated for one profile. Recomputed on every
// request, never persisted.
type ScoredItem struct {
	Item         CatalogItem `json:"item"`
	Score        float64     `json:"score"`
	Reasons      []Reason    `json:"reasons"`
	GramsPerDay  *int        `json:"grams_per_day,omitempty"`
	PiecesPerDay *int        `json:"pieces_per_day,omitempty"`
}

// Recommendation is the full result of one pass: the computed caloric context
// plus the ranked food and treat lists.
type Recommendation struct {
	DailyKcal       int          `json:"daily_kcal"`
	Stage           LifeStage    `json:"life_stage"`
	TreatBudgetKcal int          `json:"treat_budget_kcal"`
	Food            []ScoredItem `json:"food"`
	Treats          []ScoredItem `json:"treats"`
}

// NormalizeEnums lowercases the enum-like fields so catalog rows loaded from
// files with mixed casing compare cleanly against filters and preferences.
func (i *CatalogItem) NormalizeEnums() {
	i.Type = ItemType(strings.ToLower(string(i.Type)))
	i.Texture = Texture(strings.ToLower(string(i.Texture)))
	i.PriceTier = PriceTier(strings.ToLower(string(i.PriceTier)))
	i.Protein = strings.ToLower(i.Protein)
}
