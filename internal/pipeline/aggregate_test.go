package pipeline

import (
	"math"
	"reflect"
	"testing"
	"time"

	"infla/internal/model"
	"infla/internal/refdata"
)

func monthOf(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// infl builds an inflation record with names and hierarchy filled from the
// catalog.
func infl(cc, code string, date time.Time, yoy float64) model.InflationRecord {
	country, _, _ := refdata.CountryByCode(cc)
	product, _ := refdata.ProductByCode(code)
	return model.InflationRecord{
		CountryCode: cc,
		CountryName: country.Name,
		ProductCode: code,
		ProductName: product.Name,
		Date:        date,
		Year:        date.Year(),
		Month:       int(date.Month()),
		YoY:         yoy,
		Level:       product.Level,
		ParentCode:  product.Parent,
	}
}

func TestLatestDate(t *testing.T) {
	records := []model.InflationRecord{
		infl("DE", "CP00", monthOf(2023, 10), 3.0),
		infl("DE", "CP00", monthOf(2023, 12), 2.9),
		infl("FR", "CP00", monthOf(2023, 11), 3.1),
	}
	if got, want := LatestDate(records), monthOf(2023, 12); !got.Equal(want) {
		t.Errorf("LatestDate = %v, want %v", got, want)
	}
	if got := LatestDate(nil); !got.IsZero() {
		t.Errorf("LatestDate(nil) = %v, want zero time", got)
	}
}

func TestSummarize(t *testing.T) {
	records := []model.InflationRecord{
		infl("DE", "CP00", monthOf(2022, 6), 8.0),
		infl("FR", "CP00", monthOf(2022, 7), 1.0),
		infl("DE", "CP00", monthOf(2023, 1), 4.0),
		infl("FR", "CP00", monthOf(2023, 1), 2.0),
		infl("FR", "CP04", monthOf(2023, 2), -1.0),
	}

	s := Summarize(records)
	if s.LatestYear != 2023 {
		t.Errorf("LatestYear = %d, want 2023", s.LatestYear)
	}
	if want := (4.0 + 2.0 - 1.0) / 3; math.Abs(s.LatestAverage-want) > 1e-9 {
		t.Errorf("LatestAverage = %v, want %v", s.LatestAverage, want)
	}
	if s.Max.Value != 8.0 || s.Max.Country != "Germany" || !s.Max.Date.Equal(monthOf(2022, 6)) {
		t.Errorf("Max = %+v, want 8.0 in Germany at 2022-06", s.Max)
	}
	if s.Min.Value != -1.0 || s.Min.Country != "France" || !s.Min.Date.Equal(monthOf(2023, 2)) {
		t.Errorf("Min = %+v, want -1.0 in France at 2023-02", s.Min)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.LatestYear != 0 || s.LatestAverage != 0 {
		t.Errorf("Summarize(nil) = %+v, want zero value", s)
	}
}

func TestLatestByCountry(t *testing.T) {
	records := []model.InflationRecord{
		infl("DE", "CP00", monthOf(2023, 11), 9.9),
		infl("DE", "CP00", monthOf(2023, 12), 3.0),
		infl("DE", "CP01", monthOf(2023, 12), 5.0),
		infl("FR", "CP00", monthOf(2023, 12), 2.0),
	}

	rates := LatestByCountry(records)
	if len(rates) != 2 {
		t.Fatalf("len = %d, want 2", len(rates))
	}
	if rates[0].Country != "Germany" || rates[0].Code != "DE" || math.Abs(rates[0].Value-4.0) > 1e-9 {
		t.Errorf("rates[0] = %+v, want Germany (DE) 4.0", rates[0])
	}
	if rates[1].Country != "France" || math.Abs(rates[1].Value-2.0) > 1e-9 {
		t.Errorf("rates[1] = %+v, want France 2.0", rates[1])
	}
	for _, r := range rates {
		if !r.Date.Equal(monthOf(2023, 12)) {
			t.Errorf("%s date = %v, want 2023-12", r.Country, r.Date)
		}
	}
}

func TestCountrySeries(t *testing.T) {
	records := []model.InflationRecord{
		infl("FR", "CP00", monthOf(2023, 2), 1.0),
		infl("DE", "CP00", monthOf(2023, 2), 5.0),
		infl("DE", "CP01", monthOf(2023, 1), 4.0),
		infl("DE", "CP00", monthOf(2023, 1), 2.0),
	}

	series := CountrySeries(records)
	if len(series) != 2 {
		t.Fatalf("len = %d, want 2", len(series))
	}
	if series[0].Country != "France" || series[1].Country != "Germany" {
		t.Fatalf("countries = %s, %s, want France, Germany", series[0].Country, series[1].Country)
	}

	de := series[1].Points
	if len(de) != 2 {
		t.Fatalf("Germany points = %d, want 2", len(de))
	}
	if !de[0].Date.Equal(monthOf(2023, 1)) || math.Abs(de[0].Value-3.0) > 1e-9 {
		t.Errorf("Germany point[0] = %+v, want 3.0 at 2023-01 (mean of two categories)", de[0])
	}
	if !de[1].Date.Equal(monthOf(2023, 2)) || math.Abs(de[1].Value-5.0) > 1e-9 {
		t.Errorf("Germany point[1] = %+v, want 5.0 at 2023-02", de[1])
	}
}

func TestCategoryAverages(t *testing.T) {
	records := []model.InflationRecord{
		infl("DE", "CP00", monthOf(2023, 11), 9.9),
		infl("DE", "CP00", monthOf(2023, 12), 3.0),
		infl("FR", "CP00", monthOf(2023, 12), 1.0),
		infl("DE", "CP01", monthOf(2023, 12), 6.0),
	}

	rates := CategoryAverages(records)
	if len(rates) != 2 {
		t.Fatalf("len = %d, want 2", len(rates))
	}
	if rates[0].Code != "CP01" || math.Abs(rates[0].Value-6.0) > 1e-9 {
		t.Errorf("rates[0] = %+v, want CP01 6.0", rates[0])
	}
	if rates[0].Name != "Food and Non-Alcoholic Beverages" {
		t.Errorf("rates[0].Name = %q, want catalog name", rates[0].Name)
	}
	if rates[1].Code != "CP00" || math.Abs(rates[1].Value-2.0) > 1e-9 {
		t.Errorf("rates[1] = %+v, want CP00 2.0 (mean of both countries)", rates[1])
	}
}

func TestCategoryCountryHeat(t *testing.T) {
	records := []model.InflationRecord{
		infl("DE", "CP00", monthOf(2023, 11), 9.9),
		infl("DE", "CP00", monthOf(2023, 12), 3.0),
		infl("DE", "CP01", monthOf(2023, 12), 5.0),
		infl("DE", "CP011", monthOf(2023, 12), 7.0),
		infl("FR", "CP00", monthOf(2023, 12), 2.0),
	}

	grid := CategoryCountryHeat(records)
	if want := []string{"France", "Germany"}; !reflect.DeepEqual(grid.Rows, want) {
		t.Fatalf("Rows = %v, want %v", grid.Rows, want)
	}
	if want := []string{"CP00", "CP01"}; !reflect.DeepEqual(grid.Cols, want) {
		t.Fatalf("Cols = %v, want %v (level 2 excluded)", grid.Cols, want)
	}
	if grid.Values[1][0] != 3.0 || grid.Values[1][1] != 5.0 {
		t.Errorf("Germany row = %v, want [3 5]", grid.Values[1])
	}
	if grid.Values[0][0] != 2.0 {
		t.Errorf("France/CP00 = %v, want 2.0", grid.Values[0][0])
	}
	if !math.IsNaN(grid.Values[0][1]) {
		t.Errorf("France/CP01 = %v, want NaN (no observation)", grid.Values[0][1])
	}
}

func TestYearlyCategoryHeat(t *testing.T) {
	records := []model.InflationRecord{
		infl("DE", "CP00", monthOf(2022, 1), 8.0),
		infl("DE", "CP00", monthOf(2022, 2), 6.0),
		infl("DE", "CP00", monthOf(2023, 1), 3.0),
		infl("DE", "CP04", monthOf(2022, 1), 10.0),
	}

	grid := YearlyCategoryHeat(records)
	wantRows := []string{"All Items", "Housing, Water, Electricity, Gas and Other Fuels"}
	if !reflect.DeepEqual(grid.Rows, wantRows) {
		t.Fatalf("Rows = %v, want %v", grid.Rows, wantRows)
	}
	if want := []string{"2022", "2023"}; !reflect.DeepEqual(grid.Cols, want) {
		t.Fatalf("Cols = %v, want %v", grid.Cols, want)
	}
	if math.Abs(grid.Values[0][0]-7.0) > 1e-9 {
		t.Errorf("All Items 2022 = %v, want 7.0 (mean of two months)", grid.Values[0][0])
	}
	if grid.Values[0][1] != 3.0 {
		t.Errorf("All Items 2023 = %v, want 3.0", grid.Values[0][1])
	}
	if !math.IsNaN(grid.Values[1][1]) {
		t.Errorf("Housing 2023 = %v, want NaN", grid.Values[1][1])
	}
}
