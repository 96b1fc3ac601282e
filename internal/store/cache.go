// Package store caches warehouse snapshots in a local SQLite database so
// repeat runs inside the TTL window skip the network entirely.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"infla/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // register sqlite driver
)

const dateLayout = "2006-01-02"

// Cache is the SQLite-backed snapshot store.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the snapshot database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the snapshot database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Meta returns the stored load result for a dataset, if a snapshot exists.
func (c *Cache) Meta(dataset string) (model.LoadResult, bool, error) {
	var source, loadID, fetchedAt string
	var rows int
	err := c.db.QueryRow(`SELECT source, load_id, fetched_at, row_count
		FROM snapshot_meta WHERE dataset = ?`, dataset).
		Scan(&source, &loadID, &fetchedAt, &rows)
	if errors.Is(err, sql.ErrNoRows) {
		return model.LoadResult{}, false, nil
	}
	if err != nil {
		return model.LoadResult{}, false, err
	}

	res := model.LoadResult{
		Dataset: dataset,
		Source:  model.ParseDataSource(source),
		Rows:    rows,
	}
	res.LoadID, _ = uuid.Parse(loadID)
	res.FetchedAt, _ = time.Parse(time.RFC3339, fetchedAt)
	return res, true, nil
}

// Fresh reports whether a snapshot exists and is younger than ttl.
func (c *Cache) Fresh(dataset string, ttl time.Duration) (bool, error) {
	res, ok, err := c.Meta(dataset)
	if err != nil || !ok {
		return false, err
	}
	return time.Since(res.FetchedAt) < ttl, nil
}

// SaveInflation replaces the inflation snapshot in one transaction.
func (c *Cache) SaveInflation(records []model.InflationRecord, res model.LoadResult) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM inflation_rates"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO inflation_rates
		(country_code, country_name, product_code, product_name, date, year, month,
		 yoy, mom, price_index, hierarchy_level, parent_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		if _, err := stmt.Exec(r.CountryCode, r.CountryName, r.ProductCode, r.ProductName,
			r.Date.UTC().Format(dateLayout), r.Year, r.Month,
			r.YoY, r.MoM, r.PriceIndex, r.Level, r.ParentCode); err != nil {
			return err
		}
	}

	if err := saveMeta(tx, model.DatasetInflation, res); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadInflation reads the cached inflation snapshot.
func (c *Cache) LoadInflation() ([]model.InflationRecord, error) {
	rows, err := c.db.Query(`SELECT country_code, country_name, product_code, product_name,
		date, year, month, yoy, mom, price_index, hierarchy_level, parent_code
		FROM inflation_rates ORDER BY country_name, product_code, date`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []model.InflationRecord
	for rows.Next() {
		var r model.InflationRecord
		var date string
		if err := rows.Scan(&r.CountryCode, &r.CountryName, &r.ProductCode, &r.ProductName,
			&date, &r.Year, &r.Month, &r.YoY, &r.MoM, &r.PriceIndex,
			&r.Level, &r.ParentCode); err != nil {
			return nil, err
		}
		r.Date, _ = time.ParseInLocation(dateLayout, date, time.UTC)
		records = append(records, r)
	}
	return records, rows.Err()
}

// SaveEconomic replaces the economic snapshot in one transaction.
func (c *Cache) SaveEconomic(records []model.EconomicRecord, res model.LoadResult) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM economic_indicators"); err != nil {
		return err
	}

	for _, r := range records {
		if _, err := tx.Exec(`INSERT INTO economic_indicators
			(country_code, country_name, year, gdp_per_capita, cpi, inflation_rate, gdp_growth)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.CountryCode, r.CountryName, r.Year,
			r.GDPPerCapita, r.CPI, r.InflationRate, r.GDPGrowth); err != nil {
			return err
		}
	}

	if err := saveMeta(tx, model.DatasetEconomic, res); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadEconomic reads the cached economic snapshot.
func (c *Cache) LoadEconomic() ([]model.EconomicRecord, error) {
	rows, err := c.db.Query(`SELECT country_code, country_name, year,
		gdp_per_capita, cpi, inflation_rate, gdp_growth
		FROM economic_indicators ORDER BY country_name, year`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []model.EconomicRecord
	for rows.Next() {
		var r model.EconomicRecord
		if err := rows.Scan(&r.CountryCode, &r.CountryName, &r.Year,
			&r.GDPPerCapita, &r.CPI, &r.InflationRate, &r.GDPGrowth); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// SavePrices replaces the product-price snapshot in one transaction.
// Decimal prices are stored as TEXT and re-parsed on read.
func (c *Cache) SavePrices(records []model.ProductPriceRecord, res model.LoadResult) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM product_prices"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO product_prices
		(record_id, product_id, product_name, brand, country_code, country_name,
		 food_category, price, currency, price_per_unit, unit, date, year, month,
		 nutrition_grade, category_inflation, overall_inflation, gdp_per_capita,
		 gdp_growth, price_deviation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		if _, err := stmt.Exec(r.RecordID, r.ProductID, r.ProductName, r.Brand,
			r.CountryCode, r.CountryName, r.FoodCategory,
			r.Price.String(), r.Currency, r.PricePerUnit.String(), r.Unit,
			r.Date.UTC().Format(dateLayout), r.Year, r.Month,
			r.NutritionGrade, r.CategoryInflation, r.OverallInflation,
			r.GDPPerCapita, r.GDPGrowth, r.PriceDeviation); err != nil {
			return err
		}
	}

	if err := saveMeta(tx, model.DatasetPrices, res); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadPrices reads the cached product-price snapshot.
func (c *Cache) LoadPrices() ([]model.ProductPriceRecord, error) {
	rows, err := c.db.Query(`SELECT record_id, product_id, product_name, brand,
		country_code, country_name, food_category, price, currency, price_per_unit,
		unit, date, year, month, nutrition_grade, category_inflation,
		overall_inflation, gdp_per_capita, gdp_growth, price_deviation
		FROM product_prices ORDER BY record_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []model.ProductPriceRecord
	for rows.Next() {
		var r model.ProductPriceRecord
		var price, perUnit, date string
		if err := rows.Scan(&r.RecordID, &r.ProductID, &r.ProductName, &r.Brand,
			&r.CountryCode, &r.CountryName, &r.FoodCategory, &price, &r.Currency,
			&perUnit, &r.Unit, &date, &r.Year, &r.Month, &r.NutritionGrade,
			&r.CategoryInflation, &r.OverallInflation, &r.GDPPerCapita,
			&r.GDPGrowth, &r.PriceDeviation); err != nil {
			return nil, err
		}
		if r.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parsing cached price %q: %w", price, err)
		}
		if r.PricePerUnit, err = decimal.NewFromString(perUnit); err != nil {
			return nil, fmt.Errorf("parsing cached unit price %q: %w", perUnit, err)
		}
		r.Date, _ = time.ParseInLocation(dateLayout, date, time.UTC)
		records = append(records, r)
	}
	return records, rows.Err()
}

// Purge drops every snapshot and its metadata. The next load goes back to
// the warehouse (or sample data).
func (c *Cache) Purge() error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	for _, table := range []string{"inflation_rates", "economic_indicators", "product_prices", "snapshot_meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("purging %s: %w", table, err)
		}
	}
	return tx.Commit()
}

func saveMeta(tx *sql.Tx, dataset string, res model.LoadResult) error {
	_, err := tx.Exec(`INSERT OR REPLACE INTO snapshot_meta
		(dataset, source, load_id, fetched_at, row_count)
		VALUES (?, ?, ?, ?, ?)`,
		dataset, res.Source.String(), res.LoadID.String(),
		res.FetchedAt.UTC().Format(time.RFC3339), res.Rows)
	return err
}
