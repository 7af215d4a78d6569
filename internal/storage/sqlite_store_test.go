package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jipsa-lab/cat-meal-advisor/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.EnsureSchema())
	return store
}

func seedItems() []domain.CatalogItem {
	price := func(v int) *int { return &v }
	kcal := func(v float64) *float64 { return &v }
	return []domain.CatalogItem{
		{
			ID: "a1", Name: "Adult Chicken Formula", Brand: "Purrina",
			Type: domain.ItemTypeFood, Texture: domain.TextureDry, Protein: "chicken",
			PriceTier: domain.PriceTierMedium, PriceKRW: price(32000), KcalPer100g: kcal(375),
			Tags: []string{"high-protein"}, GrainFree: true,
		},
		{
			ID: "b2", Name: "Salmon Pate", Brand: "Oceanside",
			Type: domain.ItemTypeFood, Texture: domain.TextureWet, Protein: "fish",
			PriceTier: domain.PriceTierPremium, PriceKRW: price(3800), KcalPer100g: kcal(90),
		},
		{
			ID: "c3", Name: "Mystery Kibble", Brand: "NoLabel",
			Type: domain.ItemTypeFood, Texture: domain.TextureDry, Protein: "chicken",
			PriceTier: domain.PriceTierLow,
		},
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.UpsertMany(seedItems()))

	n, err := store.Count()
	require.NoError(t, err)
	require.Equal(t, 3, n)

	got, ok, err := store.Get("a1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Adult Chicken Formula", got.Name)
	require.NotNil(t, got.PriceKRW)
	require.Equal(t, 32000, *got.PriceKRW)
	require.Equal(t, []string{"high-protein"}, got.Tags)
	require.True(t, got.GrainFree)

	// NULL numeric columns must come back as nil, not zero.
	mystery, ok, err := store.Get("c3")
	require.NoError(t, err)
	require.True(t, ok)
	require.Nil(t, mystery.PriceKRW)
	require.Nil(t, mystery.KcalPer100g)
}

func TestSQLiteUpsertIgnoresDuplicates(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.UpsertMany(seedItems()))
	require.NoError(t, store.UpsertMany(seedItems()))

	n, err := store.Count()
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestSQLiteListFiltered(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.UpsertMany(seedItems()))

	items, total, err := store.ListFiltered(10, 0, "purrina", "", "", 0, 0, "")
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, items, 1)
	require.Equal(t, "a1", items[0].ID)

	// NULL prices never match an active price bound.
	items, total, err = store.ListFiltered(10, 0, "", "", "", 1000, 40000, "price_asc")
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Equal(t, "b2", items[0].ID)
	require.Equal(t, "a1", items[1].ID)

	items, _, err = store.ListFiltered(1, 1, "", "", "", 0, 0, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "b2", items[0].ID)
}

func TestSQLiteDelete(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.UpsertMany(seedItems()))

	deleted, err := store.Delete("b2")
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = store.Delete("b2")
	require.NoError(t, err)
	require.False(t, deleted)

	_, ok, err := store.Get("b2")
	require.NoError(t, err)
	require.False(t, ok)
}
