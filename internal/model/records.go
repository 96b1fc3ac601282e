// Package model defines the dataset records and aggregate types shared by
// the loader, pipeline, and renderers.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InflationRecord is one row of the inflation fact table: a COICOP category
// rate observation for a country and month. PriceIndex accumulates from a
// base of 100 at the first month of the window.
type InflationRecord struct {
	CountryCode string
	CountryName string
	ProductCode string
	ProductName string
	Date        time.Time
	Year        int
	Month       int
	YoY         float64
	MoM         float64
	PriceIndex  float64
	Level       int
	ParentCode  string
}

// EconomicRecord is one row of the economic indicators table: yearly macro
// figures for a country.
type EconomicRecord struct {
	CountryCode   string
	CountryName   string
	Year          int
	GDPPerCapita  float64
	CPI           float64
	InflationRate float64
	GDPGrowth     float64
}

// ProductPriceRecord is one row of the product price fact table: an observed
// retail price with its inflation context. Price and PricePerUnit are money
// values rounded to two places; PricePerUnit equals Price since records are
// unit-normalized.
type ProductPriceRecord struct {
	RecordID     int64
	ProductID    int64
	ProductName  string
	Brand        string
	CountryCode  string
	CountryName  string
	FoodCategory string
	Price        decimal.Decimal
	Currency     string
	PricePerUnit decimal.Decimal
	Unit         string
	Date         time.Time
	Year         int
	Month        int

	NutritionGrade    string
	CategoryInflation float64
	OverallInflation  float64
	GDPPerCapita      float64
	GDPGrowth         float64
	PriceDeviation    float64
}
