package recommend

import (
	"strings"

	"github.com/jipsa-lab/cat-meal-advisor/internal/domain"
)

// activeSet turns a filter slice into a lookup set. Returns nil when the
// dimension is unrestricted (empty slice or an "all" sentinel present).
func activeSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if v == domain.FilterAll {
			return nil
		}
		set[v] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

func inSet(set map[string]struct{}, value string) bool {
	if set == nil {
		return true
	}
	_, ok := set[strings.ToLower(value)]
	return ok
}

// FilterCatalog returns the subset of items passing every active filter
// dimension. The input slice is never mutated.
//
// Items without a price are excluded whenever a price range is active: an
// unknown price is not treated as zero, so it cannot sneak past a minimum.
func FilterCatalog(items []domain.CatalogItem, f domain.CatalogFilters) []domain.CatalogItem {
	brands := activeSet(f.Brands)
	tiers := activeSet(f.PriceTiers)
	textures := activeSet(f.Textures)
	proteins := activeSet(f.Proteins)
	rangeActive := f.MinPriceKRW != nil || f.MaxPriceKRW != nil

	out := make([]domain.CatalogItem, 0, len(items))
	for _, it := range items {
		if !inSet(brands, it.Brand) {
			continue
		}
		if !inSet(tiers, string(it.PriceTier)) {
			continue
		}
		if !inSet(textures, string(it.Texture)) {
			continue
		}
		if !inSet(proteins, it.Protein) {
			continue
		}
		if rangeActive {
			if it.PriceKRW == nil {
				continue
			}
			if f.MinPriceKRW != nil && *it.PriceKRW < *f.MinPriceKRW {
				continue
			}
			if f.MaxPriceKRW != nil && *it.PriceKRW > *f.MaxPriceKRW {
				continue
			}
		}
		if f.GrainFreeOnly && !it.GrainFree {
			continue
		}
		if f.VetDietOnly && !it.VeterinaryDiet {
			continue
		}
		out = append(out, it)
	}
	return out
}
