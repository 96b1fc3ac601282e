// Package pipeline filters and aggregates the loaded datasets into the
// shapes the pages render. Everything here is a pure function over slices.
package pipeline

import (
	"time"

	"infla/internal/model"
)

// InflationFilter narrows inflation records. Zero-valued dimensions match
// everything; dimensions AND together.
type InflationFilter struct {
	Countries []string
	Codes     []string
	Levels    []int
	FromYear  int
	ToYear    int
}

// FilterInflation applies f to records.
func FilterInflation(records []model.InflationRecord, f InflationFilter) []model.InflationRecord {
	countries := stringSet(f.Countries)
	codes := stringSet(f.Codes)
	levels := intSet(f.Levels)

	var result []model.InflationRecord
	for _, r := range records {
		if countries != nil {
			if _, ok := countries[r.CountryName]; !ok {
				continue
			}
		}
		if codes != nil {
			if _, ok := codes[r.ProductCode]; !ok {
				continue
			}
		}
		if levels != nil {
			if _, ok := levels[r.Level]; !ok {
				continue
			}
		}
		if f.FromYear != 0 && r.Year < f.FromYear {
			continue
		}
		if f.ToYear != 0 && r.Year > f.ToYear {
			continue
		}
		result = append(result, r)
	}
	return result
}

// EconomicFilter narrows economic records.
type EconomicFilter struct {
	Countries []string
	FromYear  int
	ToYear    int
}

// FilterEconomic applies f to records.
func FilterEconomic(records []model.EconomicRecord, f EconomicFilter) []model.EconomicRecord {
	countries := stringSet(f.Countries)

	var result []model.EconomicRecord
	for _, r := range records {
		if countries != nil {
			if _, ok := countries[r.CountryName]; !ok {
				continue
			}
		}
		if f.FromYear != 0 && r.Year < f.FromYear {
			continue
		}
		if f.ToYear != 0 && r.Year > f.ToYear {
			continue
		}
		result = append(result, r)
	}
	return result
}

// PriceFilter narrows product-price records. From and To bound the month
// (inclusive) when non-zero.
type PriceFilter struct {
	Countries  []string
	Categories []string
	Brands     []string
	From       time.Time
	To         time.Time
}

// FilterPrices applies f to records.
func FilterPrices(records []model.ProductPriceRecord, f PriceFilter) []model.ProductPriceRecord {
	countries := stringSet(f.Countries)
	categories := stringSet(f.Categories)
	brands := stringSet(f.Brands)

	var result []model.ProductPriceRecord
	for _, r := range records {
		if countries != nil {
			if _, ok := countries[r.CountryName]; !ok {
				continue
			}
		}
		if categories != nil {
			if _, ok := categories[r.FoodCategory]; !ok {
				continue
			}
		}
		if brands != nil {
			if _, ok := brands[r.Brand]; !ok {
				continue
			}
		}
		if !f.From.IsZero() && r.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && r.Date.After(f.To) {
			continue
		}
		result = append(result, r)
	}
	return result
}

func stringSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func intSet(values []int) map[int]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[int]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
