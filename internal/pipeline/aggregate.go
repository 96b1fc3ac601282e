package pipeline

import (
	"math"
	"sort"
	"strconv"
	"time"

	"infla/internal/model"
)

type sumCount struct {
	sum float64
	n   int
}

func (s *sumCount) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	s.sum += v
	s.n++
}

func (s *sumCount) mean() float64 {
	if s.n == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.n)
}

// LatestDate returns the most recent record date, or the zero time.
func LatestDate(records []model.InflationRecord) time.Time {
	var latest time.Time
	for _, r := range records {
		if r.Date.After(latest) {
			latest = r.Date
		}
	}
	return latest
}

// Summarize computes the overview metric block: the latest calendar year's
// average rate plus the extremes with attribution.
func Summarize(records []model.InflationRecord) model.InflationSummary {
	var s model.InflationSummary
	if len(records) == 0 {
		return s
	}

	for _, r := range records {
		if r.Year > s.LatestYear {
			s.LatestYear = r.Year
		}
	}

	latest := sumCount{}
	s.Max = model.RateExtreme{Value: math.Inf(-1)}
	s.Min = model.RateExtreme{Value: math.Inf(1)}
	for _, r := range records {
		if math.IsNaN(r.YoY) {
			continue
		}
		if r.Year == s.LatestYear {
			latest.add(r.YoY)
		}
		if r.YoY > s.Max.Value {
			s.Max = model.RateExtreme{Value: r.YoY, Country: r.CountryName, Date: r.Date}
		}
		if r.YoY < s.Min.Value {
			s.Min = model.RateExtreme{Value: r.YoY, Country: r.CountryName, Date: r.Date}
		}
	}
	s.LatestAverage = latest.mean()
	return s
}

// LatestByCountry returns each country's rate at the latest month, highest
// first.
func LatestByCountry(records []model.InflationRecord) []model.CountryRate {
	latest := LatestDate(records)
	if latest.IsZero() {
		return nil
	}

	type acc struct {
		code string
		sumCount
	}
	byCountry := make(map[string]*acc)
	for _, r := range records {
		if !r.Date.Equal(latest) {
			continue
		}
		a, ok := byCountry[r.CountryName]
		if !ok {
			a = &acc{code: r.CountryCode}
			byCountry[r.CountryName] = a
		}
		a.add(r.YoY)
	}

	rates := make([]model.CountryRate, 0, len(byCountry))
	for country, a := range byCountry {
		rates = append(rates, model.CountryRate{
			Country: country,
			Code:    a.code,
			Value:   a.mean(),
			Date:    latest,
		})
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].Value > rates[j].Value })
	return rates
}

// CountrySeries builds per-country monthly trend series, countries in
// alphabetical order, points in date order.
func CountrySeries(records []model.InflationRecord) []model.CountrySeries {
	acc := make(map[string]map[time.Time]*sumCount)
	for _, r := range records {
		months, ok := acc[r.CountryName]
		if !ok {
			months = make(map[time.Time]*sumCount)
			acc[r.CountryName] = months
		}
		sc, ok := months[r.Date]
		if !ok {
			sc = &sumCount{}
			months[r.Date] = sc
		}
		sc.add(r.YoY)
	}

	series := make([]model.CountrySeries, 0, len(acc))
	for country, months := range acc {
		points := make([]model.SeriesPoint, 0, len(months))
		for date, sc := range months {
			points = append(points, model.SeriesPoint{Date: date, Value: sc.mean()})
		}
		sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
		series = append(series, model.CountrySeries{Country: country, Points: points})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Country < series[j].Country })
	return series
}

// CategoryAverages computes the latest month's mean rate per category,
// highest first.
func CategoryAverages(records []model.InflationRecord) []model.CategoryRate {
	latest := LatestDate(records)
	if latest.IsZero() {
		return nil
	}

	type acc struct {
		name string
		sumCount
	}
	byCode := make(map[string]*acc)
	for _, r := range records {
		if !r.Date.Equal(latest) {
			continue
		}
		a, ok := byCode[r.ProductCode]
		if !ok {
			a = &acc{name: r.ProductName}
			byCode[r.ProductCode] = a
		}
		a.add(r.YoY)
	}

	rates := make([]model.CategoryRate, 0, len(byCode))
	for code, a := range byCode {
		rates = append(rates, model.CategoryRate{Code: code, Name: a.name, Value: a.mean()})
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].Value > rates[j].Value })
	return rates
}

// CategoryCountryHeat builds the latest-month country x level-1-category
// grid. Cells with no observation are NaN.
func CategoryCountryHeat(records []model.InflationRecord) model.HeatGrid {
	latest := LatestDate(records)

	cells := make(map[string]map[string]*sumCount)
	codeSet := make(map[string]struct{})
	for _, r := range records {
		if !r.Date.Equal(latest) || r.Level != 1 {
			continue
		}
		codeSet[r.ProductCode] = struct{}{}
		byCode, ok := cells[r.CountryName]
		if !ok {
			byCode = make(map[string]*sumCount)
			cells[r.CountryName] = byCode
		}
		sc, ok := byCode[r.ProductCode]
		if !ok {
			sc = &sumCount{}
			byCode[r.ProductCode] = sc
		}
		sc.add(r.YoY)
	}

	rows := make([]string, 0, len(cells))
	for country := range cells {
		rows = append(rows, country)
	}
	sort.Strings(rows)
	cols := make([]string, 0, len(codeSet))
	for code := range codeSet {
		cols = append(cols, code)
	}
	sort.Strings(cols)

	values := make([][]float64, len(rows))
	for i, country := range rows {
		values[i] = make([]float64, len(cols))
		for j, code := range cols {
			if sc, ok := cells[country][code]; ok {
				values[i][j] = sc.mean()
			} else {
				values[i][j] = math.NaN()
			}
		}
	}
	return model.HeatGrid{Rows: rows, Cols: cols, Values: values}
}

// YearlyCategoryHeat builds the category x year mean-rate grid, categories
// in catalog-code order, years ascending.
func YearlyCategoryHeat(records []model.InflationRecord) model.HeatGrid {
	type catKey struct {
		code string
		name string
	}
	cells := make(map[catKey]map[int]*sumCount)
	yearSet := make(map[int]struct{})
	for _, r := range records {
		key := catKey{code: r.ProductCode, name: r.ProductName}
		yearSet[r.Year] = struct{}{}
		byYear, ok := cells[key]
		if !ok {
			byYear = make(map[int]*sumCount)
			cells[key] = byYear
		}
		sc, ok := byYear[r.Year]
		if !ok {
			sc = &sumCount{}
			byYear[r.Year] = sc
		}
		sc.add(r.YoY)
	}

	cats := make([]catKey, 0, len(cells))
	for key := range cells {
		cats = append(cats, key)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].code < cats[j].code })
	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	rows := make([]string, len(cats))
	cols := make([]string, len(years))
	for j, y := range years {
		cols[j] = strconv.Itoa(y)
	}
	values := make([][]float64, len(cats))
	for i, key := range cats {
		rows[i] = key.name
		values[i] = make([]float64, len(years))
		for j, y := range years {
			if sc, ok := cells[key][y]; ok {
				values[i][j] = sc.mean()
			} else {
				values[i][j] = math.NaN()
			}
		}
	}
	return model.HeatGrid{Rows: rows, Cols: cols, Values: values}
}
