package storage

import (
	"database/sql"
	"encoding/json"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jipsa-lab/cat-meal-advisor/internal/domain"
)

// SQLiteStore persists the product catalog. Numeric nutrition columns are
// nullable so that "unknown" survives a round trip instead of becoming zero.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) EnsureSchema() error {
	const createTable = `
CREATE TABLE IF NOT EXISTS catalog_items (
  id TEXT PRIMARY KEY,
  sku TEXT NOT NULL DEFAULT '',
  name TEXT NOT NULL,
  brand TEXT NOT NULL,
  item_type TEXT NOT NULL,
  texture TEXT NOT NULL,
  protein TEXT NOT NULL,
  ingredients TEXT NOT NULL DEFAULT '',
  price_tier TEXT NOT NULL,
  price_krw INTEGER,
  kcal_per_100g REAL,
  treat_kcal_per_piece REAL,
  moisture_pct REAL,
  magnesium_mg_per_100kcal REAL,
  phosphorus_pct_dm REAL,
  sodium_pct_dm REAL,
  tags_json TEXT NOT NULL DEFAULT '[]',
  grain_free INTEGER NOT NULL DEFAULT 0,
  single_protein INTEGER NOT NULL DEFAULT 0,
  veterinary_diet INTEGER NOT NULL DEFAULT 0,
  product_url TEXT NOT NULL DEFAULT ''
);
`
	if _, err := s.db.Exec(createTable); err != nil {
		return err
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_catalog_brand ON catalog_items(brand);`); err != nil {
		return err
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_catalog_price ON catalog_items(price_krw);`); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM catalog_items`).Scan(&n)
	return n, err
}

const itemColumns = `id, sku, name, brand, item_type, texture, protein, ingredients, price_tier,
price_krw, kcal_per_100g, treat_kcal_per_piece, moisture_pct, magnesium_mg_per_100kcal,
phosphorus_pct_dm, sodium_pct_dm, tags_json, grain_free, single_protein, veterinary_diet, product_url`

// UpsertMany seeds the catalog without duplicating rows by id.
func (s *SQLiteStore) UpsertMany(items []domain.CatalogItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT OR IGNORE INTO catalog_items (` + itemColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, it := range items {
		if _, err := stmt.Exec(insertArgs(it)...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Create(it domain.CatalogItem) (domain.CatalogItem, error) {
	if it.ID == "" {
		it.ID = domain.ItemKey(it)
	}
	_, err := s.db.Exec(`
INSERT INTO catalog_items (`+itemColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, insertArgs(it)...)
	return it, err
}

func (s *SQLiteStore) Delete(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM catalog_items WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (s *SQLiteStore) Get(id string) (domain.CatalogItem, bool, error) {
	row := s.db.QueryRow(`SELECT `+itemColumns+` FROM catalog_items WHERE id = ?`, id)
	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return domain.CatalogItem{}, false, nil
	}
	if err != nil {
		return domain.CatalogItem{}, false, err
	}
	return it, true, nil
}

// List returns all catalog items in id order, typically used to build the
// in-memory scoring snapshot.
func (s *SQLiteStore) List() ([]domain.CatalogItem, error) {
	rows, err := s.db.Query(`SELECT ` + itemColumns + ` FROM catalog_items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CatalogItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// ListFiltered pages through the catalog applying optional brand/type/texture
// and price-range criteria in SQL. Rows with NULL price never match an active
// price bound.
func (s *SQLiteStore) ListFiltered(limit, offset int, brand, itemType, texture string, minPrice, maxPrice int, sortBy string) ([]domain.CatalogItem, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where := make([]string, 0, 5)
	args := make([]any, 0, 8)

	if strings.TrimSpace(brand) != "" {
		where = append(where, "LOWER(brand) LIKE '%' || LOWER(?) || '%'")
		args = append(args, brand)
	}
	if strings.TrimSpace(itemType) != "" {
		where = append(where, "item_type = ?")
		args = append(args, strings.ToLower(itemType))
	}
	if strings.TrimSpace(texture) != "" {
		where = append(where, "texture = ?")
		args = append(args, strings.ToLower(texture))
	}
	if minPrice > 0 {
		where = append(where, "price_krw >= ?")
		args = append(args, minPrice)
	}
	if maxPrice > 0 {
		where = append(where, "price_krw <= ?")
		args = append(args, maxPrice)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	orderSQL := "ORDER BY id"
	switch sortBy {
	case "price_asc":
		orderSQL = "ORDER BY price_krw ASC"
	case "price_desc":
		orderSQL = "ORDER BY price_krw DESC"
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM catalog_items "+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rowsSQL := "SELECT " + itemColumns + " FROM catalog_items " + whereSQL + "\n" + orderSQL + "\nLIMIT ? OFFSET ?"
	rowsArgs := append(append([]any{}, args...), limit, offset)

	rows, err := s.db.Query(rowsSQL, rowsArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.CatalogItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func insertArgs(it domain.CatalogItem) []any {
	tags, _ := json.Marshal(it.Tags)
	return []any{
		it.ID, it.SKU, it.Name, it.Brand, string(it.Type), string(it.Texture), it.Protein,
		it.Ingredients, string(it.PriceTier),
		nullInt(it.PriceKRW), nullFloat(it.KcalPer100g), nullFloat(it.TreatKcalPerPiece),
		nullFloat(it.MoisturePct), nullFloat(it.MagnesiumMgPer100kcal),
		nullFloat(it.PhosphorusPctDM), nullFloat(it.SodiumPctDM),
		string(tags), boolInt(it.GrainFree), boolInt(it.SingleProtein), boolInt(it.VeterinaryDiet),
		it.ProductURL,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(r rowScanner) (domain.CatalogItem, error) {
	var (
		it         domain.CatalogItem
		price      sql.NullInt64
		kcal       sql.NullFloat64
		perPiece   sql.NullFloat64
		moisture   sql.NullFloat64
		mg         sql.NullFloat64
		phos       sql.NullFloat64
		sodium     sql.NullFloat64
		tagsJSON   string
		gf, sp, vd int
	)
	err := r.Scan(
		&it.ID, &it.SKU, &it.Name, &it.Brand, &it.Type, &it.Texture, &it.Protein,
		&it.Ingredients, &it.PriceTier,
		&price, &kcal, &perPiece, &moisture, &mg, &phos, &sodium,
		&tagsJSON, &gf, &sp, &vd, &it.ProductURL,
	)
	if err != nil {
		return domain.CatalogItem{}, err
	}

	it.PriceKRW = intPtr(price)
	it.KcalPer100g = floatPtr(kcal)
	it.TreatKcalPerPiece = floatPtr(perPiece)
	it.MoisturePct = floatPtr(moisture)
	it.MagnesiumMgPer100kcal = floatPtr(mg)
	it.PhosphorusPctDM = floatPtr(phos)
	it.SodiumPctDM = floatPtr(sodium)
	_ = json.Unmarshal([]byte(tagsJSON), &it.Tags)
	it.GrainFree = gf != 0
	it.SingleProtein = sp != 0
	it.VeterinaryDiet = vd != 0
	return it, nil
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
