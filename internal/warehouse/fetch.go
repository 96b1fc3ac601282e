package warehouse

import (
	"context"
	"database/sql"
	"fmt"

	"infla/internal/model"
)

// Queries carry a %s placeholder for the configured schema. lib/pq cannot
// parameterize identifiers, and the schema comes from the operator's own
// config, not user input.
const (
	inflationQuery = `SELECT country_code, country_name, product_code, product_name,
       date, year, month, inflation_rate_yoy, inflation_rate_mom, price_index,
       hierarchy_level, parent_code
FROM %s.fact_inflation_rates
ORDER BY country_name, product_code, date`

	economicQuery = `SELECT country_code, country_name, year,
       gdp_per_capita, cpi, inflation_rate, gdp_growth
FROM %s.int_economic_indicators
ORDER BY country_name, year`

	pricesQuery = `SELECT record_id, product_id, product_name, brand,
       country_code, country_name, food_category, price, currency,
       price_per_unit, unit, date, year, month, nutrition_grade,
       category_inflation, overall_inflation, gdp_per_capita, gdp_growth,
       price_deviation
FROM %s.fact_product_prices
ORDER BY country_name, food_category, product_id, date`
)

var factTables = []string{
	"fact_inflation_rates",
	"int_economic_indicators",
	"fact_product_prices",
}

// FetchInflation returns the monthly inflation facts plus the number of
// malformed rows that were skipped.
func (c *Client) FetchInflation(ctx context.Context) ([]model.InflationRecord, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := c.db.QueryContext(ctx, fmt.Sprintf(inflationQuery, c.schema))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: inflation: %v", ErrQuery, err)
	}
	defer rows.Close()

	var records []model.InflationRecord
	skipped := 0
	for rows.Next() {
		var r model.InflationRecord
		var parent sql.NullString
		if err := rows.Scan(&r.CountryCode, &r.CountryName, &r.ProductCode, &r.ProductName,
			&r.Date, &r.Year, &r.Month, &r.YoY, &r.MoM, &r.PriceIndex,
			&r.Level, &parent); err != nil {
			return nil, 0, fmt.Errorf("%w: inflation scan: %v", ErrQuery, err)
		}
		r.ParentCode = parent.String
		if !validInflation(r) {
			skipped++
			continue
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: inflation rows: %v", ErrQuery, err)
	}
	return records, skipped, nil
}

// FetchEconomic returns the yearly macro indicators plus the number of
// malformed rows that were skipped.
func (c *Client) FetchEconomic(ctx context.Context) ([]model.EconomicRecord, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := c.db.QueryContext(ctx, fmt.Sprintf(economicQuery, c.schema))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: economic: %v", ErrQuery, err)
	}
	defer rows.Close()

	var records []model.EconomicRecord
	skipped := 0
	for rows.Next() {
		var r model.EconomicRecord
		if err := rows.Scan(&r.CountryCode, &r.CountryName, &r.Year,
			&r.GDPPerCapita, &r.CPI, &r.InflationRate, &r.GDPGrowth); err != nil {
			return nil, 0, fmt.Errorf("%w: economic scan: %v", ErrQuery, err)
		}
		if !validEconomic(r) {
			skipped++
			continue
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: economic rows: %v", ErrQuery, err)
	}
	return records, skipped, nil
}

// FetchPrices returns the retail price facts plus the number of malformed
// rows that were skipped. Decimal columns scan losslessly.
func (c *Client) FetchPrices(ctx context.Context) ([]model.ProductPriceRecord, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := c.db.QueryContext(ctx, fmt.Sprintf(pricesQuery, c.schema))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: prices: %v", ErrQuery, err)
	}
	defer rows.Close()

	var records []model.ProductPriceRecord
	skipped := 0
	for rows.Next() {
		var r model.ProductPriceRecord
		var brand, grade sql.NullString
		if err := rows.Scan(&r.RecordID, &r.ProductID, &r.ProductName, &brand,
			&r.CountryCode, &r.CountryName, &r.FoodCategory, &r.Price, &r.Currency,
			&r.PricePerUnit, &r.Unit, &r.Date, &r.Year, &r.Month, &grade,
			&r.CategoryInflation, &r.OverallInflation, &r.GDPPerCapita, &r.GDPGrowth,
			&r.PriceDeviation); err != nil {
			return nil, 0, fmt.Errorf("%w: prices scan: %v", ErrQuery, err)
		}
		r.Brand = brand.String
		r.NutritionGrade = grade.String
		if !validPrice(r) {
			skipped++
			continue
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: prices rows: %v", ErrQuery, err)
	}
	return records, skipped, nil
}

// TableCounts returns per-table row counts for the status display and the
// volume quality metric.
func (c *Client) TableCounts(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	counts := make(map[string]int64, len(factTables))
	for _, table := range factTables {
		var n int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s.%s", c.schema, table)
		if err := c.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
			return nil, fmt.Errorf("%w: counting %s: %v", ErrQuery, table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

func validInflation(r model.InflationRecord) bool {
	return r.CountryCode != "" && r.ProductCode != "" && !r.Date.IsZero()
}

func validEconomic(r model.EconomicRecord) bool {
	return r.CountryCode != "" && r.Year != 0
}

func validPrice(r model.ProductPriceRecord) bool {
	return r.CountryCode != "" && r.ProductName != "" && !r.Date.IsZero()
}
