// Package recommend implements the rule-based scoring and ranking engine.
package recommend

import (
	"sort"
	"strings"

	"github.com/jipsa-lab/cat-meal-advisor/internal/allergy"
	"github.com/jipsa-lab/cat-meal-advisor/internal/domain"
	"github.com/jipsa-lab/cat-meal-advisor/internal/nutrition"
)

// Nutrition thresholds the condition rules gate on.
const (
	lowCalorieKcalMax   = 330.0
	highActivityKcalMin = 360.0
	urinaryMoistureMin  = 70.0
	urinaryMagnesiumMax = 25.0
	kidneyPhosphorusMax = 0.6
	kidneySodiumMax     = 0.4
)

const defaultTopN = 3

// Dental items are also recognized by name when untagged.
var dentalNameKeywords = []string{"dental", "덴탈"}

type Engine struct {
	weights Weights
}

func NewEngine(w Weights) *Engine {
	return &Engine{weights: w}
}

// Options carries per-request state that lives outside the profile: session
// favorites/dislikes (keyed by item ID) and list truncation limits.
type Options struct {
	TopFood   int
	TopTreats int
	Favorites map[string]bool
	Dislikes  map[string]bool
}

// Recommend runs the full pipeline for one profile over a catalog snapshot:
// caloric estimate, allergy expansion, catalog filter, per-item scoring,
// serving attachment, then a stable descending sort and top-N cut per type.
func (e *Engine) Recommend(profile domain.PetProfile, catalog []domain.CatalogItem, opts Options) domain.Recommendation {
	stage := nutrition.StageFor(profile.AgeYears)
	dailyKcal := nutrition.DailyCalories(profile.WeightKg, profile.Activity, profile.Neutered, stage)
	terms := allergy.ExpandTerms(profile.AllergyTokens)

	eligible := FilterCatalog(catalog, profile.Filters)

	var food, treats []domain.ScoredItem
	for _, item := range eligible {
		score, reasons := e.ScoreItem(item, profile, stage, terms, opts)
		scored := domain.ScoredItem{Item: item, Score: score, Reasons: reasons}
		switch item.Type {
		case domain.ItemTypeFood:
			scored.GramsPerDay = nutrition.GramsPerDay(dailyKcal, item.KcalPer100g)
			food = append(food, scored)
		case domain.ItemTypeTreat:
			scored.PiecesPerDay = nutrition.PiecesPerDay(dailyKcal, item.TreatKcalPerPiece)
			treats = append(treats, scored)
		}
	}

	return domain.Recommendation{
		DailyKcal:       dailyKcal,
		Stage:           stage,
		TreatBudgetKcal: nutrition.TreatBudget(dailyKcal),
		Food:            rank(food, opts.TopFood),
		Treats:          rank(treats, opts.TopTreats),
	}
}

// rank sorts descending by score, keeping catalog order among ties, and
// truncates to topN.
func rank(items []domain.ScoredItem, topN int) []domain.ScoredItem {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Score > items[j].Score })
	if topN <= 0 {
		topN = defaultTopN
	}
	if len(items) > topN {
		items = items[:topN]
	}
	return items
}

// ScoreItem evaluates every rule against one item and returns the additive
// score with one reason per contribution, in evaluation order. Rules gated on
// an absent numeric field are skipped silently.
func (e *Engine) ScoreItem(item domain.CatalogItem, profile domain.PetProfile, stage domain.LifeStage, allergyTerms map[string]struct{}, opts Options) (float64, []domain.Reason) {
	var score float64
	var reasons []domain.Reason

	add := func(delta float64, code domain.ReasonCode, msg string) {
		score += delta
		reasons = append(reasons, domain.Reason{Code: code, Message: msg})
	}

	if tiers := activeSet(profile.Filters.PriceTiers); tiers != nil && inSet(tiers, string(item.PriceTier)) {
		add(e.weights.PriceTierMatch, domain.ReasonPriceTierMatch, string(item.PriceTier)+" price tier")
	}
	if pref := strings.ToLower(profile.TexturePreference); pref != "" && pref != domain.PreferenceAny && pref == string(item.Texture) {
		add(e.weights.TextureMatch, domain.ReasonTextureMatch, "preferred "+pref+" texture")
	}
	if pref := strings.ToLower(profile.ProteinPreference); pref != "" && pref != domain.PreferenceAny && pref == strings.ToLower(item.Protein) {
		add(e.weights.ProteinMatch, domain.ReasonProteinMatch, "preferred "+pref+" protein")
	}

	if stage == domain.StageKitten && item.HasTag(domain.TagKitten) {
		add(e.weights.KittenTag, domain.ReasonKittenFit, "formulated for kittens")
	}
	if stage == domain.StageSenior && item.HasTag(domain.TagSenior) {
		add(e.weights.SeniorTag, domain.ReasonSeniorFit, "formulated for seniors")
	}

	if profile.HasCondition(domain.ConditionObesityProne) && item.KcalPer100g != nil && *item.KcalPer100g <= lowCalorieKcalMax {
		add(e.weights.LowCalorie, domain.ReasonLowCalorie, "low calorie density")
	}
	if profile.Activity == domain.ActivityHigh && item.KcalPer100g != nil && *item.KcalPer100g >= highActivityKcalMin {
		add(e.weights.HighActivity, domain.ReasonHighActivity, "energy-dense for high activity")
	}

	if profile.HasCondition(domain.ConditionUrinary) {
		if item.Texture == domain.TextureWet || (item.MoisturePct != nil && *item.MoisturePct >= urinaryMoistureMin) {
			add(e.weights.UrinaryMoisture, domain.ReasonHighMoisture, "high moisture for urinary health")
		}
		if item.MagnesiumMgPer100kcal != nil && *item.MagnesiumMgPer100kcal <= urinaryMagnesiumMax {
			add(e.weights.UrinaryMagnesium, domain.ReasonLowMagnesium, "low magnesium")
		}
	}
	if profile.HasCondition(domain.ConditionKidney) {
		if item.PhosphorusPctDM != nil && *item.PhosphorusPctDM <= kidneyPhosphorusMax {
			add(e.weights.KidneyPhosphorus, domain.ReasonLowPhosphorus, "low phosphorus")
		}
		if item.SodiumPctDM != nil && *item.SodiumPctDM <= kidneySodiumMax {
			add(e.weights.KidneySodium, domain.ReasonModerateSodium, "moderate sodium")
		}
	}

	if profile.HasCondition(domain.ConditionDigestive) && item.HasTag(domain.TagDigestive) {
		add(e.weights.DigestiveTag, domain.ReasonDigestiveFit, "gentle on digestion")
	}
	if profile.HasCondition(domain.ConditionHairball) && item.HasTag(domain.TagHairball) {
		add(e.weights.HairballTag, domain.ReasonHairballCare, "hairball control")
	}
	if profile.HasCondition(domain.ConditionDental) && isDentalItem(item) {
		add(e.weights.DentalCare, domain.ReasonDentalCare, "dental care")
	}

	if item.HasTag(domain.TagHighProtein) {
		add(e.weights.HighProteinTag, domain.ReasonHighProtein, "high protein")
	}

	blob := strings.ToLower(item.Name + " " + item.Protein + " " + item.Ingredients)
	if allergy.MatchesAny(allergyTerms, blob) {
		add(e.weights.AllergyPenalty, domain.ReasonAllergyRisk, "allergy-risk ingredient")
	}

	if key := itemKey(item); key != "" {
		if opts.Dislikes[key] {
			add(e.weights.DislikePenalty, domain.ReasonDisliked, "previously disliked")
		}
		if opts.Favorites[key] {
			add(e.weights.FavoriteBonus, domain.ReasonFavorite, "marked as favorite")
		}
	}

	return score, reasons
}

func isDentalItem(item domain.CatalogItem) bool {
	if item.HasTag(domain.TagDentalCare) {
		return true
	}
	name := strings.ToLower(item.Name)
	for _, kw := range dentalNameKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

func itemKey(item domain.CatalogItem) string {
	if item.ID != "" {
		return item.ID
	}
	return domain.ItemKey(item)
}
