package recommend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jipsa-lab/cat-meal-advisor/internal/domain"
)

func iptr(v int) *int { return &v }

func testCatalog() []domain.CatalogItem {
	return []domain.CatalogItem{
		{
			ID: "a", Brand: "Acme", Type: domain.ItemTypeFood,
			Texture: domain.TextureDry, Protein: "chicken",
			PriceTier: domain.PriceTierLow, PriceKRW: iptr(12000),
			GrainFree: true,
		},
		{
			ID: "b", Brand: "Bento", Type: domain.ItemTypeFood,
			Texture: domain.TextureWet, Protein: "fish",
			PriceTier: domain.PriceTierPremium, PriceKRW: iptr(45000),
			VeterinaryDiet: true,
		},
		{
			ID: "c", Brand: "Acme", Type: domain.ItemTypeTreat,
			Texture: domain.TextureDry, Protein: "beef",
			PriceTier: domain.PriceTierMedium, // price unknown
		},
	}
}

func ids(items []domain.CatalogItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestFilterNoCriteriaPassesAll(t *testing.T) {
	got := FilterCatalog(testCatalog(), domain.CatalogFilters{})
	require.Equal(t, []string{"a", "b", "c"}, ids(got))
}

func TestFilterAllSentinelPassesAll(t *testing.T) {
	f := domain.CatalogFilters{
		Brands:     []string{domain.FilterAll},
		PriceTiers: []string{"low", domain.FilterAll},
	}
	got := FilterCatalog(testCatalog(), f)
	require.Equal(t, []string{"a", "b", "c"}, ids(got))
}

func TestFilterDimensionsCombineWithAND(t *testing.T) {
	f := domain.CatalogFilters{
		Brands:   []string{"Acme"},
		Textures: []string{"dry"},
		Proteins: []string{"chicken", "beef"},
	}
	got := FilterCatalog(testCatalog(), f)
	require.Equal(t, []string{"a", "c"}, ids(got))

	f.PriceTiers = []string{"low"}
	got = FilterCatalog(testCatalog(), f)
	require.Equal(t, []string{"a"}, ids(got))
}

func TestFilterBrandMatchingIsCaseInsensitive(t *testing.T) {
	f := domain.CatalogFilters{Brands: []string{"acme"}}
	got := FilterCatalog(testCatalog(), f)
	require.Equal(t, []string{"a", "c"}, ids(got))
}

func TestFilterPriceRangeInclusive(t *testing.T) {
	f := domain.CatalogFilters{MinPriceKRW: iptr(12000), MaxPriceKRW: iptr(45000)}
	got := FilterCatalog(testCatalog(), f)
	require.Equal(t, []string{"a", "b"}, ids(got))

	f = domain.CatalogFilters{MinPriceKRW: iptr(12001)}
	got = FilterCatalog(testCatalog(), f)
	require.Equal(t, []string{"b"}, ids(got))
}

func TestFilterAbsentPriceExcludedWhenRangeActive(t *testing.T) {
	// Item "c" has no price. A min of 0 would have let it pass if absent were
	// coerced to zero; it must be excluded instead.
	f := domain.CatalogFilters{MinPriceKRW: iptr(0)}
	got := FilterCatalog(testCatalog(), f)
	require.Equal(t, []string{"a", "b"}, ids(got))

	// Without an active range the same item passes.
	got = FilterCatalog(testCatalog(), domain.CatalogFilters{})
	require.Contains(t, ids(got), "c")
}

func TestFilterBooleanFlags(t *testing.T) {
	got := FilterCatalog(testCatalog(), domain.CatalogFilters{GrainFreeOnly: true})
	require.Equal(t, []string{"a"}, ids(got))

	got = FilterCatalog(testCatalog(), domain.CatalogFilters{VetDietOnly: true})
	require.Equal(t, []string{"b"}, ids(got))
}
