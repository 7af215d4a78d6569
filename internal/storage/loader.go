package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jipsa-lab/cat-meal-advisor/internal/domain"
)

// LoadCatalogFromFile reads a catalog snapshot from a JSON or CSV file,
// chosen by extension. Items get their stable ID assigned and enum-like
// fields normalized.
func LoadCatalogFromFile(path string) ([]domain.CatalogItem, error) {
	var (
		items []domain.CatalogItem
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		items, err = loadCSV(path)
	case ".json":
		items, err = loadJSON(path)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].NormalizeEnums()
		if items[i].ID == "" {
			items[i].ID = domain.ItemKey(items[i])
		}
	}
	return items, nil
}

func loadJSON(path string) ([]domain.CatalogItem, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var items []domain.CatalogItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return items, nil
}

// loadCSV parses the tabular catalog format. Blank or malformed numeric cells
// become absent values (nil), never zero.
func loadCSV(path string) ([]domain.CatalogItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read catalog csv: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("catalog csv is empty")
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}

	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	items := make([]domain.CatalogItem, 0, len(records)-1)
	for _, row := range records[1:] {
		it := domain.CatalogItem{
			SKU:         cell(row, "sku"),
			Name:        cell(row, "name"),
			Brand:       cell(row, "brand"),
			Type:        domain.ItemType(cell(row, "type")),
			Texture:     domain.Texture(cell(row, "texture")),
			Protein:     cell(row, "protein"),
			Ingredients: cell(row, "ingredients"),
			PriceTier:   domain.PriceTier(cell(row, "price_tier")),
			ProductURL:  cell(row, "product_url"),

			PriceKRW:              parseOptInt(cell(row, "price_krw")),
			KcalPer100g:           parseOptFloat(cell(row, "kcal_per_100g")),
			TreatKcalPerPiece:     parseOptFloat(cell(row, "treat_kcal_per_piece")),
			MoisturePct:           parseOptFloat(cell(row, "moisture_pct")),
			MagnesiumMgPer100kcal: parseOptFloat(cell(row, "magnesium_mg_per_100kcal")),
			PhosphorusPctDM:       parseOptFloat(cell(row, "phosphorus_pct_dm")),
			SodiumPctDM:           parseOptFloat(cell(row, "sodium_pct_dm")),

			Tags:           splitTags(cell(row, "tags")),
			GrainFree:      parseBool(cell(row, "grain_free")),
			SingleProtein:  parseBool(cell(row, "single_protein")),
			VeterinaryDiet: parseBool(cell(row, "veterinary_diet")),
		}
		if it.Name == "" && it.SKU == "" {
			continue
		}
		items = append(items, it)
	}
	return items, nil
}

func parseOptFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

func parseOptInt(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "y", "yes":
		return true
	}
	return false
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
