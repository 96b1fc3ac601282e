package quality

import (
	"math"
	"sort"
	"strconv"
	"time"

	"infla/internal/model"
	"infla/internal/refdata"
)

const dateLayout = "2006-01-02"

// Run computes the full check suite against the bundle. minTotalRows is the
// volume requirement for the three datasets combined.
func Run(bundle *model.Bundle, minTotalRows int) *Report {
	report := &Report{
		CheckedAt: time.Now().UTC(),
		Checks: []Check{
			eurostatNullCheck(bundle.Inflation),
			eurostatDateCheck(bundle.Inflation),
			eurostatValueCheck(bundle.Inflation),
			worldbankNullCheck(bundle.Economic),
			worldbankYearCheck(bundle.Economic),
			openfoodNullCheck(bundle.Prices),
			openfoodPriceCheck(bundle.Prices),
			openfoodDuplicateCheck(bundle.Prices),
			volumeCheck(bundle, minTotalRows),
		},
		Volumes: []Volume{
			{Source: "Eurostat", Rows: len(bundle.Inflation)},
			{Source: "World Bank", Rows: len(bundle.Economic)},
			{Source: "Open Food Facts", Rows: len(bundle.Prices)},
		},
		TotalRows: len(bundle.Inflation) + len(bundle.Economic) + len(bundle.Prices),
	}
	for i := range report.Checks {
		report.Checks[i].CheckedAt = report.CheckedAt
	}
	sort.Slice(report.Checks, func(i, j int) bool { return report.Checks[i].Name < report.Checks[j].Name })
	return report
}

func verdict(failures int) Status {
	if failures > 0 {
		return StatusFail
	}
	return StatusPass
}

func count(label string, n int) Detail {
	return Detail{Label: label, Value: strconv.Itoa(n)}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

type distribution struct {
	min, mean, median, max float64
}

func describe(values []float64) distribution {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}
	return distribution{
		min:    sorted[0],
		mean:   sum / float64(len(sorted)),
		median: median,
		max:    sorted[len(sorted)-1],
	}
}

func eurostatNullCheck(records []model.InflationRecord) Check {
	var countryNulls, productNulls, dateNulls, rateNulls int
	for _, r := range records {
		if r.CountryCode == "" {
			countryNulls++
		}
		if r.ProductCode == "" {
			productNulls++
		}
		if r.Date.IsZero() {
			dateNulls++
		}
		if math.IsNaN(r.YoY) {
			rateNulls++
		}
	}
	return Check{
		Name:        "eurostat_null_check",
		Source:      "eurostat",
		Description: "Checks for null values in critical Eurostat data columns",
		Status:      verdict(countryNulls + productNulls + dateNulls + rateNulls),
		Records:     len(records),
		Details: []Detail{
			count("country code nulls", countryNulls),
			count("product code nulls", productNulls),
			count("date nulls", dateNulls),
			count("rate nulls", rateNulls),
		},
	}
}

func eurostatDateCheck(records []model.InflationRecord) Check {
	windowStart := time.Date(refdata.StartYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(refdata.EndYear, time.December, 1, 0, 0, 0, 0, time.UTC)

	var invalid int
	var minDate, maxDate time.Time
	for _, r := range records {
		if r.Date.Before(windowStart) || r.Date.After(windowEnd) {
			invalid++
		}
		if minDate.IsZero() || r.Date.Before(minDate) {
			minDate = r.Date
		}
		if r.Date.After(maxDate) {
			maxDate = r.Date
		}
	}

	details := []Detail{count("dates outside window", invalid)}
	if !minDate.IsZero() {
		details = append(details,
			Detail{Label: "min date", Value: minDate.Format(dateLayout)},
			Detail{Label: "max date", Value: maxDate.Format(dateLayout)},
		)
	}
	return Check{
		Name:        "eurostat_date_check",
		Source:      "eurostat",
		Description: "Validates date format and range in Eurostat data",
		Status:      verdict(invalid),
		Records:     len(records),
		Details:     details,
	}
}

func eurostatValueCheck(records []model.InflationRecord) Check {
	const lowIndex, highIndex = 50.0, 200.0

	indexes := make([]float64, 0, len(records))
	var outliers int
	for _, r := range records {
		if math.IsNaN(r.PriceIndex) {
			continue
		}
		indexes = append(indexes, r.PriceIndex)
		if r.PriceIndex < lowIndex || r.PriceIndex > highIndex {
			outliers++
		}
	}

	details := []Detail{count("index outliers", outliers)}
	if len(indexes) > 0 {
		d := describe(indexes)
		details = append(details,
			Detail{Label: "min index", Value: formatFloat(d.min)},
			Detail{Label: "mean index", Value: formatFloat(d.mean)},
			Detail{Label: "median index", Value: formatFloat(d.median)},
			Detail{Label: "max index", Value: formatFloat(d.max)},
		)
	}
	return Check{
		Name:        "eurostat_value_check",
		Source:      "eurostat",
		Description: "Checks for outliers in index values in Eurostat data",
		Status:      verdict(outliers),
		Records:     len(records),
		Details:     details,
	}
}

func worldbankNullCheck(records []model.EconomicRecord) Check {
	var countryNulls, yearNulls int
	for _, r := range records {
		if r.CountryCode == "" {
			countryNulls++
		}
		if r.Year == 0 {
			yearNulls++
		}
	}
	return Check{
		Name:        "worldbank_null_check",
		Source:      "worldbank",
		Description: "Checks for null values in critical World Bank data columns",
		Status:      verdict(countryNulls + yearNulls),
		Records:     len(records),
		Details: []Detail{
			count("country code nulls", countryNulls),
			count("year nulls", yearNulls),
		},
	}
}

func worldbankYearCheck(records []model.EconomicRecord) Check {
	var invalid, minYear, maxYear int
	for _, r := range records {
		if r.Year < refdata.EconStartYear || r.Year > refdata.EconEndYear {
			invalid++
		}
		if minYear == 0 || r.Year < minYear {
			minYear = r.Year
		}
		if r.Year > maxYear {
			maxYear = r.Year
		}
	}

	details := []Detail{count("years outside window", invalid)}
	if maxYear != 0 {
		details = append(details, count("min year", minYear), count("max year", maxYear))
	}
	return Check{
		Name:        "worldbank_year_check",
		Source:      "worldbank",
		Description: "Validates year format and range in World Bank data",
		Status:      verdict(invalid),
		Records:     len(records),
		Details:     details,
	}
}

func openfoodNullCheck(records []model.ProductPriceRecord) Check {
	var idNulls, nameNulls, priceNulls int
	for _, r := range records {
		if r.RecordID == 0 {
			idNulls++
		}
		if r.ProductName == "" {
			nameNulls++
		}
		if r.Price.IsZero() {
			priceNulls++
		}
	}
	return Check{
		Name:        "openfood_null_check",
		Source:      "openfood",
		Description: "Checks for null values in critical Open Food Facts data columns",
		Status:      verdict(idNulls + nameNulls + priceNulls),
		Records:     len(records),
		Details: []Detail{
			count("record id nulls", idNulls),
			count("product name nulls", nameNulls),
			count("price nulls", priceNulls),
		},
	}
}

func openfoodPriceCheck(records []model.ProductPriceRecord) Check {
	prices := make([]float64, 0, len(records))
	var nonPositive int
	for _, r := range records {
		if r.PricePerUnit.Sign() <= 0 {
			nonPositive++
		}
		prices = append(prices, r.PricePerUnit.InexactFloat64())
	}

	details := []Detail{count("negative or zero prices", nonPositive)}
	if len(prices) > 0 {
		d := describe(prices)
		details = append(details,
			Detail{Label: "min price", Value: formatFloat(d.min)},
			Detail{Label: "mean price", Value: formatFloat(d.mean)},
			Detail{Label: "median price", Value: formatFloat(d.median)},
			Detail{Label: "max price", Value: formatFloat(d.max)},
		)
	}
	return Check{
		Name:        "openfood_price_check",
		Source:      "openfood",
		Description: "Validates price values in Open Food Facts data",
		Status:      verdict(nonPositive),
		Records:     len(records),
		Details:     details,
	}
}

func openfoodDuplicateCheck(records []model.ProductPriceRecord) Check {
	seen := make(map[int64]struct{}, len(records))
	var duplicates int
	for _, r := range records {
		if _, ok := seen[r.RecordID]; ok {
			duplicates++
			continue
		}
		seen[r.RecordID] = struct{}{}
	}
	return Check{
		Name:        "openfood_duplicate_check",
		Source:      "openfood",
		Description: "Checks for duplicate record ids in Open Food Facts data",
		Status:      verdict(duplicates),
		Records:     len(records),
		Details:     []Detail{count("duplicate record ids", duplicates)},
	}
}

func volumeCheck(bundle *model.Bundle, minTotalRows int) Check {
	total := len(bundle.Inflation) + len(bundle.Economic) + len(bundle.Prices)
	shortfall := 0
	if total < minTotalRows {
		shortfall = minTotalRows - total
	}
	return Check{
		Name:        "volume_check",
		Source:      "volume",
		Description: "Checks if total data volume meets the minimum row requirement",
		Status:      verdict(shortfall),
		Records:     total,
		Details: []Detail{
			count("eurostat rows", len(bundle.Inflation)),
			count("worldbank rows", len(bundle.Economic)),
			count("openfood rows", len(bundle.Prices)),
			count("total rows", total),
			count("required rows", minTotalRows),
			count("shortfall", shortfall),
		},
	}
}
