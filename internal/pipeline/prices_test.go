package pipeline

import (
	"math"
	"testing"
	"time"

	"infla/internal/model"
	"infla/internal/refdata"

	"github.com/shopspring/decimal"
)

func price(cc, category string, date time.Time, unitPrice string, catInfl, overall, dev float64) model.ProductPriceRecord {
	country, _, _ := refdata.CountryByCode(cc)
	cat, _ := refdata.FoodCategoryByName(category)
	return model.ProductPriceRecord{
		CountryCode:       cc,
		CountryName:       country.Name,
		FoodCategory:      category,
		Price:             decimal.RequireFromString(unitPrice),
		Currency:          refdata.PriceCurrency,
		PricePerUnit:      decimal.RequireFromString(unitPrice),
		Unit:              cat.Unit,
		Date:              date,
		Year:              date.Year(),
		Month:             int(date.Month()),
		CategoryInflation: catInfl,
		OverallInflation:  overall,
		PriceDeviation:    dev,
	}
}

func TestSummarizePrices(t *testing.T) {
	records := []model.ProductPriceRecord{
		price("DE", "Dairy products", monthOf(2022, 1), "2.00", 4.0, 3.0, 1.0),
		price("FR", "Dairy products", monthOf(2022, 2), "3.00", 6.0, 5.0, -1.0),
	}

	s := SummarizePrices(records)
	if want := decimal.RequireFromString("2.5"); !s.AvgUnitPrice.Equal(want) {
		t.Errorf("AvgUnitPrice = %s, want %s", s.AvgUnitPrice, want)
	}
	if s.AvgCategoryInflation != 5.0 || s.AvgOverallInflation != 4.0 || s.AvgDeviation != 0.0 {
		t.Errorf("averages = %v/%v/%v, want 5/4/0",
			s.AvgCategoryInflation, s.AvgOverallInflation, s.AvgDeviation)
	}
}

func TestSummarizePrices_Empty(t *testing.T) {
	s := SummarizePrices(nil)
	if !s.AvgUnitPrice.IsZero() || s.AvgCategoryInflation != 0 {
		t.Errorf("SummarizePrices(nil) = %+v, want zero value", s)
	}
}

func TestPricesByCategory(t *testing.T) {
	records := []model.ProductPriceRecord{
		price("DE", "Beverages", monthOf(2022, 1), "1.50", 0, 0, 0),
		price("DE", "Dairy products", monthOf(2022, 1), "2.00", 0, 0, 0),
		price("FR", "Dairy products", monthOf(2022, 2), "4.00", 0, 0, 0),
	}

	prices := PricesByCategory(records)
	if len(prices) != 2 {
		t.Fatalf("len = %d, want 2", len(prices))
	}
	if prices[0].Category != "Dairy products" || prices[0].Unit != "kg" {
		t.Errorf("prices[0] = %+v, want Dairy products per kg", prices[0])
	}
	if want := decimal.RequireFromString("3"); !prices[0].AvgPrice.Equal(want) {
		t.Errorf("dairy AvgPrice = %s, want %s", prices[0].AvgPrice, want)
	}
	if prices[1].Category != "Beverages" || prices[1].Unit != "l" {
		t.Errorf("prices[1] = %+v, want Beverages per l", prices[1])
	}
}

func TestPriceSeries(t *testing.T) {
	records := []model.ProductPriceRecord{
		price("DE", "Dairy products", monthOf(2022, 2), "5.00", 7.0, 6.0, 0),
		price("DE", "Dairy products", monthOf(2022, 1), "2.00", 4.0, 2.0, 0),
		price("DE", "Beverages", monthOf(2022, 1), "4.00", 6.0, 4.0, 0),
		price("FR", "Dairy products", monthOf(2022, 1), "3.00", 5.0, 4.0, 0),
	}

	series := PriceSeries(records)
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
	if !de[0].Date.Equal(monthOf(2022, 1)) {
		t.Fatalf("Germany point[0] at %v, want 2022-01", de[0].Date)
	}
	if math.Abs(de[0].AvgPrice-3.0) > 1e-9 {
		t.Errorf("AvgPrice = %v, want 3.0 (mean of 2 and 4)", de[0].AvgPrice)
	}
	if math.Abs(de[0].CategoryInflation-5.0) > 1e-9 || math.Abs(de[0].OverallInflation-3.0) > 1e-9 {
		t.Errorf("inflation = %v/%v, want 5/3", de[0].CategoryInflation, de[0].OverallInflation)
	}
}

func TestTopProducts(t *testing.T) {
	records := []model.ProductPriceRecord{
		price("DE", "Dairy products", monthOf(2022, 1), "5.00", 0, 0, 0),
		price("DE", "Dairy products", monthOf(2022, 1), "9.00", 0, 0, 0),
		price("DE", "Dairy products", monthOf(2022, 1), "7.00", 0, 0, 0),
	}
	for i := range records {
		records[i].RecordID = int64(i + 1)
	}

	top := TopProducts(records, 2)
	if len(top) != 2 {
		t.Fatalf("len = %d, want 2", len(top))
	}
	if top[0].RecordID != 2 || top[1].RecordID != 3 {
		t.Errorf("top IDs = %d, %d, want 2, 3 (most expensive first)", top[0].RecordID, top[1].RecordID)
	}
	if records[0].RecordID != 1 {
		t.Error("input slice was reordered")
	}

	if got := TopProducts(records, 10); len(got) != 3 {
		t.Errorf("oversized n kept %d records, want all 3", len(got))
	}
	if got := TopProducts(records, 0); got != nil {
		t.Errorf("n=0 returned %d records, want nil", len(got))
	}
}

func TestTopProducts_TieBreaksOnRecordID(t *testing.T) {
	records := []model.ProductPriceRecord{
		price("DE", "Dairy products", monthOf(2022, 1), "9.00", 0, 0, 0),
		price("DE", "Dairy products", monthOf(2022, 1), "9.00", 0, 0, 0),
	}
	records[0].RecordID = 5
	records[1].RecordID = 2

	top := TopProducts(records, 2)
	if top[0].RecordID != 2 || top[1].RecordID != 5 {
		t.Errorf("tie order = %d, %d, want 2, 5", top[0].RecordID, top[1].RecordID)
	}
}
