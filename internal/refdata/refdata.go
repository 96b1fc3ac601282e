// Package refdata is the single shared definition of countries, calendars,
// product catalogs, and rate factors consumed by the generators, the
// pipeline, and the quality engine.
package refdata

import "time"

// Country is one of the eight tracked EU countries. The slice index in
// Countries drives per-country offsets in the generators, so order matters.
type Country struct {
	Name string
	Code string
}

// Countries in generator index order.
var Countries = []Country{
	{Name: "Germany", Code: "DE"},
	{Name: "France", Code: "FR"},
	{Name: "Spain", Code: "ES"},
	{Name: "Italy", Code: "IT"},
	{Name: "Netherlands", Code: "NL"},
	{Name: "Belgium", Code: "BE"},
	{Name: "Austria", Code: "AT"},
	{Name: "Portugal", Code: "PT"},
}

// Monthly window shared by the inflation and product-price datasets.
const (
	StartYear = 2020
	EndYear   = 2023
)

// The economic dataset reaches back to the pre-pandemic baseline.
const (
	EconStartYear = 2018
	EconEndYear   = 2023
)

// MonthCount is the number of months in the canonical window.
const MonthCount = (EndYear - StartYear + 1) * 12

// Months returns the first-of-month dates of the canonical window in UTC.
func Months() []time.Time {
	months := make([]time.Time, 0, MonthCount)
	for y := StartYear; y <= EndYear; y++ {
		for m := time.January; m <= time.December; m++ {
			months = append(months, time.Date(y, m, 1, 0, 0, 0, 0, time.UTC))
		}
	}
	return months
}

// EconYears returns the years covered by the economic dataset.
func EconYears() []int {
	years := make([]int, 0, EconEndYear-EconStartYear+1)
	for y := EconStartYear; y <= EconEndYear; y++ {
		years = append(years, y)
	}
	return years
}

// CountryByName returns the country and its generator index.
func CountryByName(name string) (Country, int, bool) {
	for i, c := range Countries {
		if c.Name == name {
			return c, i, true
		}
	}
	return Country{}, 0, false
}

// CountryByCode returns the country and its generator index.
func CountryByCode(code string) (Country, int, bool) {
	for i, c := range Countries {
		if c.Code == code {
			return c, i, true
		}
	}
	return Country{}, 0, false
}

// CountryNames returns the country names in index order.
func CountryNames() []string {
	names := make([]string, len(Countries))
	for i, c := range Countries {
		names[i] = c.Name
	}
	return names
}
