package pipeline

import (
	"math"
	"sort"

	"infla/internal/model"
)

// CategoryYearRates holds one country-year's mean rate per headline
// category.
type CategoryYearRates struct {
	Overall   float64
	Food      float64
	Housing   float64
	Transport float64
}

// YearlyCategoryRates averages the headline category rates per country and
// year, keyed by country code. A category with no observations in a given
// country-year is NaN.
func YearlyCategoryRates(records []model.InflationRecord) map[string]map[int]CategoryYearRates {
	type acc struct {
		overall   sumCount
		food      sumCount
		housing   sumCount
		transport sumCount
	}
	byCountry := make(map[string]map[int]*acc)
	for _, r := range records {
		byYear, ok := byCountry[r.CountryCode]
		if !ok {
			byYear = make(map[int]*acc)
			byCountry[r.CountryCode] = byYear
		}
		a, ok := byYear[r.Year]
		if !ok {
			a = &acc{}
			byYear[r.Year] = a
		}
		switch r.ProductCode {
		case "CP00":
			a.overall.add(r.YoY)
		case "CP01":
			a.food.add(r.YoY)
		case "CP04":
			a.housing.add(r.YoY)
		case "CP07":
			a.transport.add(r.YoY)
		}
	}

	rates := make(map[string]map[int]CategoryYearRates, len(byCountry))
	for code, byYear := range byCountry {
		years := make(map[int]CategoryYearRates, len(byYear))
		for year, a := range byYear {
			years[year] = CategoryYearRates{
				Overall:   a.overall.mean(),
				Food:      a.food.mean(),
				Housing:   a.housing.mean(),
				Transport: a.transport.mean(),
			}
		}
		rates[code] = years
	}
	return rates
}

// CombineEconomic left-joins the yearly category rates onto the economic
// indicators by country and year. Rows without a matching country-year keep
// NaN in the category columns. Rows come back ordered by country then year.
func CombineEconomic(econ []model.EconomicRecord, inflation []model.InflationRecord) []model.EconomicRow {
	rates := YearlyCategoryRates(inflation)

	rows := make([]model.EconomicRow, 0, len(econ))
	for _, e := range econ {
		row := model.EconomicRow{
			CountryCode:        e.CountryCode,
			CountryName:        e.CountryName,
			Year:               e.Year,
			GDPPerCapita:       e.GDPPerCapita,
			CPI:                e.CPI,
			InflationRate:      e.InflationRate,
			GDPGrowth:          e.GDPGrowth,
			OverallInflation:   math.NaN(),
			FoodInflation:      math.NaN(),
			HousingInflation:   math.NaN(),
			TransportInflation: math.NaN(),
		}
		if r, ok := rates[e.CountryCode][e.Year]; ok {
			row.OverallInflation = r.Overall
			row.FoodInflation = r.Food
			row.HousingInflation = r.Housing
			row.TransportInflation = r.Transport
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CountryName != rows[j].CountryName {
			return rows[i].CountryName < rows[j].CountryName
		}
		return rows[i].Year < rows[j].Year
	})
	return rows
}

// SummarizeEconomy averages the latest year's headline indicators.
func SummarizeEconomy(rows []model.EconomicRow) model.EconomicSummary {
	var s model.EconomicSummary
	if len(rows) == 0 {
		return s
	}

	for _, r := range rows {
		if r.Year > s.Year {
			s.Year = r.Year
		}
	}
	var gdp, growth, inflation, food sumCount
	for _, r := range rows {
		if r.Year != s.Year {
			continue
		}
		gdp.add(r.GDPPerCapita)
		growth.add(r.GDPGrowth)
		inflation.add(r.InflationRate)
		food.add(r.FoodInflation)
	}
	s.AvgGDPPerCapita = gdp.mean()
	s.AvgGrowth = growth.mean()
	s.AvgInflation = inflation.mean()
	s.AvgFoodInflation = food.mean()
	return s
}

// CorrelationColumns names the indicator columns of the correlation matrix,
// in matrix order.
var CorrelationColumns = []string{
	"GDP per Capita",
	"GDP Growth",
	"Inflation Rate",
	"Overall Inflation",
	"Food Inflation",
	"Housing Inflation",
	"Transport Inflation",
}

// Correlation computes the Pearson matrix over the indicator columns. Each
// pair uses only the rows where both values are present; a cell with fewer
// than two such rows, or no variance on either side, is NaN. The diagonal is
// always 1.
func Correlation(rows []model.EconomicRow) model.HeatGrid {
	cols := make([][]float64, len(CorrelationColumns))
	for i := range cols {
		cols[i] = make([]float64, len(rows))
	}
	for k, r := range rows {
		cols[0][k] = r.GDPPerCapita
		cols[1][k] = r.GDPGrowth
		cols[2][k] = r.InflationRate
		cols[3][k] = r.OverallInflation
		cols[4][k] = r.FoodInflation
		cols[5][k] = r.HousingInflation
		cols[6][k] = r.TransportInflation
	}

	n := len(CorrelationColumns)
	values := make([][]float64, n)
	for i := 0; i < n; i++ {
		values[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			switch {
			case i == j:
				values[i][j] = 1
			case j < i:
				values[i][j] = values[j][i]
			default:
				values[i][j] = pearson(cols[i], cols[j])
			}
		}
	}

	labels := append([]string(nil), CorrelationColumns...)
	return model.HeatGrid{Rows: labels, Cols: labels, Values: values}
}

func pearson(xs, ys []float64) float64 {
	var n int
	var sumX, sumY float64
	for k := range xs {
		if math.IsNaN(xs[k]) || math.IsNaN(ys[k]) {
			continue
		}
		n++
		sumX += xs[k]
		sumY += ys[k]
	}
	if n < 2 {
		return math.NaN()
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for k := range xs {
		if math.IsNaN(xs[k]) || math.IsNaN(ys[k]) {
			continue
		}
		dx := xs[k] - meanX
		dy := ys[k] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}

// ProfileIndicators names the radar axes, in profile value order.
var ProfileIndicators = []string{
	"GDP per Capita",
	"GDP Growth Rate",
	"Inflation Rate",
	"Food Inflation",
}

// Profiles scales the latest year's indicators per country onto a 0-1 range
// for the comparison radar. Rates score higher the closer they sit to zero;
// GDP per capita is min-max scaled so the richest country scores 1. With a
// single country, or no spread, values pass through unscaled.
func Profiles(rows []model.EconomicRow) []model.CountryProfile {
	var latestYear int
	for _, r := range rows {
		if r.Year > latestYear {
			latestYear = r.Year
		}
	}

	profiles := make([]model.CountryProfile, 0, 8)
	for _, r := range rows {
		if r.Year != latestYear {
			continue
		}
		profiles = append(profiles, model.CountryProfile{
			Country: r.CountryName,
			Values:  []float64{r.GDPPerCapita, r.GDPGrowth, r.InflationRate, r.FoodInflation},
		})
	}
	if len(profiles) == 0 {
		return nil
	}

	minGDP, maxGDP := math.Inf(1), math.Inf(-1)
	for _, p := range profiles {
		if v := p.Values[0]; !math.IsNaN(v) {
			minGDP = math.Min(minGDP, v)
			maxGDP = math.Max(maxGDP, v)
		}
	}
	if maxGDP > minGDP {
		for _, p := range profiles {
			p.Values[0] = (p.Values[0] - minGDP) / (maxGDP - minGDP)
		}
	}

	for col := 1; col < len(ProfileIndicators); col++ {
		var maxAbs float64
		for _, p := range profiles {
			if v := math.Abs(p.Values[col]); !math.IsNaN(v) && v > maxAbs {
				maxAbs = v
			}
		}
		if maxAbs > 0 {
			for _, p := range profiles {
				p.Values[col] = 1 - math.Abs(p.Values[col])/maxAbs
			}
		}
	}

	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Country < profiles[j].Country })
	return profiles
}
