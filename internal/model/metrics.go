package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateExtreme is a rate observation with its country and date attribution.
type RateExtreme struct {
	Value   float64
	Country string
	Date    time.Time
}

// InflationSummary holds the overview metric block.
type InflationSummary struct {
	LatestYear    int
	LatestAverage float64
	Max           RateExtreme
	Min           RateExtreme
}

// CountryRate is one country's rate at a given date (latest-by-country bars).
type CountryRate struct {
	Country string
	Code    string
	Value   float64
	Date    time.Time
}

// SeriesPoint is one month of a trend series.
type SeriesPoint struct {
	Date  time.Time
	Value float64
}

// CountrySeries is a per-country monthly trend.
type CountrySeries struct {
	Country string
	Points  []SeriesPoint
}

// CategoryRate is a category's aggregated rate (category comparison bars).
type CategoryRate struct {
	Code  string
	Name  string
	Value float64
}

// HeatGrid is a labeled value grid for heatmap rendering. Missing cells are
// NaN. Correlation matrices use Rows == Cols.
type HeatGrid struct {
	Rows   []string
	Cols   []string
	Values [][]float64
}

// EconomicRow is an economic record joined with the yearly category-inflation
// rates derived from the inflation dataset. Category fields are NaN for years
// outside the monthly window.
type EconomicRow struct {
	CountryCode string
	CountryName string
	Year        int

	GDPPerCapita  float64
	CPI           float64
	InflationRate float64
	GDPGrowth     float64

	OverallInflation   float64
	FoodInflation      float64
	HousingInflation   float64
	TransportInflation float64
}

// EconomicSummary holds the economy page metric block (latest-year averages).
type EconomicSummary struct {
	Year             int
	AvgGDPPerCapita  float64
	AvgGrowth        float64
	AvgInflation     float64
	AvgFoodInflation float64
}

// CountryProfile is one country's normalized indicator profile.
type CountryProfile struct {
	Country string
	Values  []float64
}

// PriceSummary holds the prices page metric block.
type PriceSummary struct {
	AvgUnitPrice         decimal.Decimal
	AvgCategoryInflation float64
	AvgOverallInflation  float64
	AvgDeviation         float64
}

// CategoryPrice is a food category's average unit price.
type CategoryPrice struct {
	Category string
	Unit     string
	AvgPrice decimal.Decimal
}

// PricePoint is one month of the price-vs-inflation series.
type PricePoint struct {
	Date              time.Time
	AvgPrice          float64
	CategoryInflation float64
	OverallInflation  float64
}

// CountryPriceSeries is a per-country monthly price/inflation trend.
type CountryPriceSeries struct {
	Country string
	Points  []PricePoint
}
