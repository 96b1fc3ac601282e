package pipeline

import (
	"math"
	"reflect"
	"testing"

	"infla/internal/model"
	"infla/internal/refdata"
)

func econ(cc string, year int, gdp, rate, growth float64) model.EconomicRecord {
	country, _, _ := refdata.CountryByCode(cc)
	return model.EconomicRecord{
		CountryCode:   cc,
		CountryName:   country.Name,
		Year:          year,
		GDPPerCapita:  gdp,
		InflationRate: rate,
		GDPGrowth:     growth,
	}
}

func TestYearlyCategoryRates(t *testing.T) {
	records := []model.InflationRecord{
		infl("DE", "CP00", monthOf(2022, 1), 5.0),
		infl("DE", "CP00", monthOf(2022, 2), 6.0),
		infl("DE", "CP01", monthOf(2022, 1), 7.0),
		infl("DE", "CP07", monthOf(2022, 1), 9.0),
		infl("DE", "CP06", monthOf(2022, 1), 1.0),
		infl("FR", "CP00", monthOf(2023, 1), 2.0),
	}

	rates := YearlyCategoryRates(records)
	de, ok := rates["DE"][2022]
	if !ok {
		t.Fatal("missing DE 2022")
	}
	if math.Abs(de.Overall-5.5) > 1e-9 {
		t.Errorf("Overall = %v, want 5.5 (mean of two months)", de.Overall)
	}
	if de.Food != 7.0 || de.Transport != 9.0 {
		t.Errorf("Food/Transport = %v/%v, want 7/9", de.Food, de.Transport)
	}
	if !math.IsNaN(de.Housing) {
		t.Errorf("Housing = %v, want NaN (no CP04 rows)", de.Housing)
	}
	if _, ok := rates["FR"][2023]; !ok {
		t.Error("missing FR 2023")
	}
}

func TestCombineEconomic(t *testing.T) {
	econRecords := []model.EconomicRecord{
		econ("DE", 2022, 48000, 8.7, 1.8),
		econ("FR", 2022, 41000, 6.0, 1.2),
		econ("DE", 2021, 46000, 3.1, 2.9),
	}
	inflation := []model.InflationRecord{
		infl("DE", "CP00", monthOf(2022, 1), 5.0),
		infl("DE", "CP01", monthOf(2022, 1), 7.0),
	}

	rows := CombineEconomic(econRecords, inflation)
	if len(rows) != 3 {
		t.Fatalf("len = %d, want 3", len(rows))
	}
	if rows[0].CountryName != "France" || rows[1].Year != 2021 || rows[2].Year != 2022 {
		t.Fatalf("order = %s/%d, %s/%d, %s/%d, want France 2022, Germany 2021, Germany 2022",
			rows[0].CountryName, rows[0].Year, rows[1].CountryName, rows[1].Year, rows[2].CountryName, rows[2].Year)
	}

	de := rows[2]
	if de.GDPPerCapita != 48000 || de.InflationRate != 8.7 {
		t.Errorf("Germany 2022 indicators = %v/%v, want 48000/8.7", de.GDPPerCapita, de.InflationRate)
	}
	if de.OverallInflation != 5.0 || de.FoodInflation != 7.0 {
		t.Errorf("joined rates = %v/%v, want 5/7", de.OverallInflation, de.FoodInflation)
	}
	if !math.IsNaN(de.HousingInflation) {
		t.Errorf("HousingInflation = %v, want NaN", de.HousingInflation)
	}
	if !math.IsNaN(rows[0].OverallInflation) {
		t.Errorf("France OverallInflation = %v, want NaN (no inflation rows)", rows[0].OverallInflation)
	}
}

func TestSummarizeEconomy(t *testing.T) {
	rows := []model.EconomicRow{
		{CountryName: "Germany", Year: 2021, GDPPerCapita: 46000, GDPGrowth: 2.9, InflationRate: 3.1, FoodInflation: 2.0},
		{CountryName: "Germany", Year: 2022, GDPPerCapita: 48000, GDPGrowth: 2.0, InflationRate: 8.0, FoodInflation: 7.0},
		{CountryName: "France", Year: 2022, GDPPerCapita: 42000, GDPGrowth: 1.0, InflationRate: 6.0, FoodInflation: math.NaN()},
	}

	s := SummarizeEconomy(rows)
	if s.Year != 2022 {
		t.Errorf("Year = %d, want 2022", s.Year)
	}
	if s.AvgGDPPerCapita != 45000 {
		t.Errorf("AvgGDPPerCapita = %v, want 45000", s.AvgGDPPerCapita)
	}
	if s.AvgGrowth != 1.5 {
		t.Errorf("AvgGrowth = %v, want 1.5", s.AvgGrowth)
	}
	if s.AvgInflation != 7.0 {
		t.Errorf("AvgInflation = %v, want 7.0", s.AvgInflation)
	}
	if s.AvgFoodInflation != 7.0 {
		t.Errorf("AvgFoodInflation = %v, want 7.0 (NaN rows skipped)", s.AvgFoodInflation)
	}
}

func TestPearson(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		ys   []float64
		want float64
	}{
		{"perfect positive", []float64{1, 2, 3}, []float64{2, 4, 6}, 1},
		{"perfect negative", []float64{1, 2, 3}, []float64{6, 4, 2}, -1},
		{"skips incomplete pairs", []float64{1, 2, 3, 4}, []float64{2, 4, math.NaN(), 8}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pearson(tt.xs, tt.ys); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("pearson = %v, want %v", got, tt.want)
			}
		})
	}

	if got := pearson([]float64{1, 2}, []float64{5, 5}); !math.IsNaN(got) {
		t.Errorf("zero-variance pearson = %v, want NaN", got)
	}
	if got := pearson([]float64{1}, []float64{2}); !math.IsNaN(got) {
		t.Errorf("single-pair pearson = %v, want NaN", got)
	}
}

func TestCorrelation(t *testing.T) {
	nan := math.NaN()
	rows := []model.EconomicRow{
		{GDPPerCapita: 1, GDPGrowth: 2, InflationRate: 3, OverallInflation: nan, FoodInflation: nan, HousingInflation: nan, TransportInflation: nan},
		{GDPPerCapita: 2, GDPGrowth: 4, InflationRate: 2, OverallInflation: nan, FoodInflation: nan, HousingInflation: nan, TransportInflation: nan},
		{GDPPerCapita: 3, GDPGrowth: 6, InflationRate: 1, OverallInflation: nan, FoodInflation: nan, HousingInflation: nan, TransportInflation: nan},
	}

	grid := Correlation(rows)
	if !reflect.DeepEqual(grid.Rows, CorrelationColumns) || !reflect.DeepEqual(grid.Cols, CorrelationColumns) {
		t.Fatalf("labels = %v / %v, want the indicator columns", grid.Rows, grid.Cols)
	}
	if math.Abs(grid.Values[0][1]-1) > 1e-9 {
		t.Errorf("corr(GDP, growth) = %v, want 1", grid.Values[0][1])
	}
	if math.Abs(grid.Values[0][2]+1) > 1e-9 {
		t.Errorf("corr(GDP, inflation) = %v, want -1", grid.Values[0][2])
	}
	if grid.Values[1][0] != grid.Values[0][1] {
		t.Errorf("matrix not symmetric: %v vs %v", grid.Values[1][0], grid.Values[0][1])
	}
	if !math.IsNaN(grid.Values[0][3]) {
		t.Errorf("corr(GDP, overall) = %v, want NaN (column empty)", grid.Values[0][3])
	}
	for i := range grid.Values {
		if grid.Values[i][i] != 1 {
			t.Errorf("diagonal[%d] = %v, want 1", i, grid.Values[i][i])
		}
	}
}

func TestProfiles(t *testing.T) {
	rows := []model.EconomicRow{
		{CountryName: "Germany", Year: 2023, GDPPerCapita: 50000, GDPGrowth: 1.0, InflationRate: 2.0, FoodInflation: 4.0},
		{CountryName: "France", Year: 2023, GDPPerCapita: 40000, GDPGrowth: -2.0, InflationRate: 4.0, FoodInflation: 2.0},
		{CountryName: "Germany", Year: 2022, GDPPerCapita: 48000, GDPGrowth: 9.0, InflationRate: 9.0, FoodInflation: 9.0},
	}

	profiles := Profiles(rows)
	if len(profiles) != 2 {
		t.Fatalf("len = %d, want 2 (latest year only)", len(profiles))
	}
	if profiles[0].Country != "France" || profiles[1].Country != "Germany" {
		t.Fatalf("order = %s, %s, want France, Germany", profiles[0].Country, profiles[1].Country)
	}

	wantDE := []float64{1, 0.5, 0.5, 0}
	wantFR := []float64{0, 0, 0, 0.5}
	for i := range ProfileIndicators {
		if math.Abs(profiles[1].Values[i]-wantDE[i]) > 1e-9 {
			t.Errorf("Germany %s = %v, want %v", ProfileIndicators[i], profiles[1].Values[i], wantDE[i])
		}
		if math.Abs(profiles[0].Values[i]-wantFR[i]) > 1e-9 {
			t.Errorf("France %s = %v, want %v", ProfileIndicators[i], profiles[0].Values[i], wantFR[i])
		}
	}
}
