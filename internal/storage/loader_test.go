package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jipsa-lab/cat-meal-advisor/internal/domain"
)

func TestLoadCatalogFromCSV(t *testing.T) {
	items, err := LoadCatalogFromFile(filepath.Join("testdata", "catalog.csv"))
	require.NoError(t, err)
	require.Len(t, items, 5)

	byName := make(map[string]domain.CatalogItem, len(items))
	for _, it := range items {
		byName[it.Name] = it
	}

	kibble := byName["Adult Chicken Formula"]
	require.Equal(t, domain.ItemTypeFood, kibble.Type)
	require.Equal(t, domain.TextureDry, kibble.Texture)
	require.Equal(t, domain.PriceTierMedium, kibble.PriceTier)
	require.NotNil(t, kibble.PriceKRW)
	require.Equal(t, 32000, *kibble.PriceKRW)
	require.NotNil(t, kibble.KcalPer100g)
	require.InDelta(t, 375, *kibble.KcalPer100g, 1e-9)
	require.Equal(t, []string{"high-protein"}, kibble.Tags)
	require.True(t, kibble.GrainFree)
	require.False(t, kibble.VeterinaryDiet)
	require.NotEmpty(t, kibble.ID)
}

func TestLoadCatalogAbsentNumbersStayAbsent(t *testing.T) {
	items, err := LoadCatalogFromFile(filepath.Join("testdata", "catalog.csv"))
	require.NoError(t, err)

	var mystery domain.CatalogItem
	for _, it := range items {
		if it.Name == "Mystery Kibble" {
			mystery = it
		}
	}
	require.Equal(t, "XX-404", mystery.SKU)

	// Every blank numeric cell must parse to nil, not zero.
	require.Nil(t, mystery.PriceKRW)
	require.Nil(t, mystery.KcalPer100g)
	require.Nil(t, mystery.TreatKcalPerPiece)
	require.Nil(t, mystery.MoisturePct)
	require.Nil(t, mystery.MagnesiumMgPer100kcal)
	require.Nil(t, mystery.PhosphorusPctDM)
	require.Nil(t, mystery.SodiumPctDM)
}

func TestLoadCatalogSplitsTags(t *testing.T) {
	items, err := LoadCatalogFromFile(filepath.Join("testdata", "catalog.csv"))
	require.NoError(t, err)

	for _, it := range items {
		if it.Name == "Urinary Support Pouch" {
			require.Equal(t, []string{"urinary-care", "kitten"}, it.Tags)
			require.True(t, it.SingleProtein)
			require.True(t, it.VeterinaryDiet)
			return
		}
	}
	t.Fatal("Urinary Support Pouch not found")
}

func TestLoadCatalogUnsupportedExtension(t *testing.T) {
	_, err := LoadCatalogFromFile("catalog.xlsx")
	require.Error(t, err)
}

func TestLoadCatalogStableIDs(t *testing.T) {
	a, err := LoadCatalogFromFile(filepath.Join("testdata", "catalog.csv"))
	require.NoError(t, err)
	b, err := LoadCatalogFromFile(filepath.Join("testdata", "catalog.csv"))
	require.NoError(t, err)

	for i := range a {
		require.Equal(t, a[i].ID, b[i].ID)
	}
}
