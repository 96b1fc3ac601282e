package pipeline

import (
	"sort"
	"time"

	"infla/internal/model"

	"github.com/shopspring/decimal"
)

// SummarizePrices averages the prices page metrics over the filtered
// records.
func SummarizePrices(records []model.ProductPriceRecord) model.PriceSummary {
	var s model.PriceSummary
	if len(records) == 0 {
		return s
	}

	unit := decimal.Zero
	var category, overall, deviation sumCount
	for _, r := range records {
		unit = unit.Add(r.PricePerUnit)
		category.add(r.CategoryInflation)
		overall.add(r.OverallInflation)
		deviation.add(r.PriceDeviation)
	}
	s.AvgUnitPrice = unit.Div(decimal.NewFromInt(int64(len(records))))
	s.AvgCategoryInflation = category.mean()
	s.AvgOverallInflation = overall.mean()
	s.AvgDeviation = deviation.mean()
	return s
}

// PricesByCategory averages the unit price per food category, most expensive
// first.
func PricesByCategory(records []model.ProductPriceRecord) []model.CategoryPrice {
	type acc struct {
		unit string
		sum  decimal.Decimal
		n    int64
	}
	byCategory := make(map[string]*acc)
	for _, r := range records {
		a, ok := byCategory[r.FoodCategory]
		if !ok {
			a = &acc{unit: r.Unit}
			byCategory[r.FoodCategory] = a
		}
		a.sum = a.sum.Add(r.PricePerUnit)
		a.n++
	}

	prices := make([]model.CategoryPrice, 0, len(byCategory))
	for category, a := range byCategory {
		prices = append(prices, model.CategoryPrice{
			Category: category,
			Unit:     a.unit,
			AvgPrice: a.sum.Div(decimal.NewFromInt(a.n)),
		})
	}
	sort.Slice(prices, func(i, j int) bool {
		if c := prices[i].AvgPrice.Cmp(prices[j].AvgPrice); c != 0 {
			return c > 0
		}
		return prices[i].Category < prices[j].Category
	})
	return prices
}

// PriceSeries builds per-country monthly means of unit price and the two
// inflation rates, countries in alphabetical order, points in date order.
func PriceSeries(records []model.ProductPriceRecord) []model.CountryPriceSeries {
	type acc struct {
		price    sumCount
		category sumCount
		overall  sumCount
	}
	byCountry := make(map[string]map[time.Time]*acc)
	for _, r := range records {
		months, ok := byCountry[r.CountryName]
		if !ok {
			months = make(map[time.Time]*acc)
			byCountry[r.CountryName] = months
		}
		a, ok := months[r.Date]
		if !ok {
			a = &acc{}
			months[r.Date] = a
		}
		a.price.add(r.PricePerUnit.InexactFloat64())
		a.category.add(r.CategoryInflation)
		a.overall.add(r.OverallInflation)
	}

	series := make([]model.CountryPriceSeries, 0, len(byCountry))
	for country, months := range byCountry {
		points := make([]model.PricePoint, 0, len(months))
		for date, a := range months {
			points = append(points, model.PricePoint{
				Date:              date,
				AvgPrice:          a.price.mean(),
				CategoryInflation: a.category.mean(),
				OverallInflation:  a.overall.mean(),
			})
		}
		sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
		series = append(series, model.CountryPriceSeries{Country: country, Points: points})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Country < series[j].Country })
	return series
}

// TopProducts returns the n most expensive records by unit price. The input
// slice is left untouched.
func TopProducts(records []model.ProductPriceRecord, n int) []model.ProductPriceRecord {
	if n <= 0 || len(records) == 0 {
		return nil
	}

	sorted := append([]model.ProductPriceRecord(nil), records...)
	sort.Slice(sorted, func(i, j int) bool {
		if c := sorted[i].PricePerUnit.Cmp(sorted[j].PricePerUnit); c != 0 {
			return c > 0
		}
		return sorted[i].RecordID < sorted[j].RecordID
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
