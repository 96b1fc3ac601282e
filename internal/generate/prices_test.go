package generate

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"infla/internal/refdata"
)

func TestPricesShape(t *testing.T) {
	records := Prices(NewRand(DefaultSeed))

	if len(records) != 23040 {
		t.Fatalf("got %d records, want 23040", len(records))
	}
	for k, r := range records {
		if r.RecordID != int64(10001+k) {
			t.Fatalf("record %d has RecordID %d, want %d", k, r.RecordID, 10001+k)
		}
	}
	if got := records[0].ProductID; got != 1001 {
		t.Errorf("first ProductID = %d, want 1001", got)
	}
	wantMax := int64(1000 + len(refdata.Countries)*len(refdata.FoodCategories)*productsPerCategory)
	if got := records[len(records)-1].ProductID; got != wantMax {
		t.Errorf("last ProductID = %d, want %d", got, wantMax)
	}
}

func TestPricesBrandStablePerProduct(t *testing.T) {
	brands := make(map[int64]string)
	for _, r := range Prices(NewRand(DefaultSeed)) {
		if prev, ok := brands[r.ProductID]; ok && prev != r.Brand {
			t.Fatalf("product %d carries brands %q and %q", r.ProductID, prev, r.Brand)
		}
		brands[r.ProductID] = r.Brand
		if !strings.HasPrefix(r.ProductName, r.Brand+" ") {
			t.Fatalf("product name %q does not begin with brand %q", r.ProductName, r.Brand)
		}
	}
}

func TestPricesFieldsValid(t *testing.T) {
	grades := map[string]bool{"A": true, "B": true, "C": true, "D": true, "E": true}

	for _, r := range Prices(NewRand(DefaultSeed)) {
		if !r.Price.IsPositive() {
			t.Fatalf("record %d has price %s, want positive", r.RecordID, r.Price)
		}
		if !r.PricePerUnit.Equal(r.Price) {
			t.Fatalf("record %d unit price %s differs from price %s", r.RecordID, r.PricePerUnit, r.Price)
		}
		if r.Currency != refdata.PriceCurrency {
			t.Fatalf("record %d currency = %q, want %q", r.RecordID, r.Currency, refdata.PriceCurrency)
		}
		wantUnit := "kg"
		if r.FoodCategory == "Beverages" {
			wantUnit = "l"
		}
		if r.Unit != wantUnit {
			t.Fatalf("%s record %d unit = %q, want %q", r.FoodCategory, r.RecordID, r.Unit, wantUnit)
		}
		if !grades[r.NutritionGrade] {
			t.Fatalf("record %d nutrition grade = %q", r.RecordID, r.NutritionGrade)
		}
		if r.Year != r.Date.Year() || r.Month != int(r.Date.Month()) {
			t.Fatalf("record %d year/month %d-%02d does not match date %v", r.RecordID, r.Year, r.Month, r.Date)
		}
	}
}

func TestPricesCategoryTracksOverall(t *testing.T) {
	for _, r := range Prices(NewRand(DefaultSeed)) {
		want := r.OverallInflation * refdata.PriceInflationFactor(r.FoodCategory)
		if diff := math.Abs(r.CategoryInflation - want); diff > 0.01 {
			t.Fatalf("record %d category inflation %v strays %v from overall %v x factor",
				r.RecordID, r.CategoryInflation, diff, r.OverallInflation)
		}
	}
}

func TestPricesDeviationConsistent(t *testing.T) {
	for _, r := range Prices(NewRand(DefaultSeed)) {
		tf := priceTimeFactor(r.Date, r.FoodCategory)
		want := round2(((tf - 1) - r.OverallInflation/100) * 100)
		if math.Abs(r.PriceDeviation-want) > 1e-9 {
			t.Fatalf("record %d deviation = %v, want %v", r.RecordID, r.PriceDeviation, want)
		}
	}
}

func TestPricesCrisisLiftsDairy(t *testing.T) {
	var calm, crisis float64
	var calmN, crisisN int
	for _, r := range Prices(NewRand(DefaultSeed)) {
		if r.FoodCategory != "Dairy products" {
			continue
		}
		switch r.Year {
		case 2020:
			calm += r.Price.InexactFloat64()
			calmN++
		case 2022:
			crisis += r.Price.InexactFloat64()
			crisisN++
		}
	}
	if calmN == 0 || crisisN == 0 {
		t.Fatal("dairy records missing for comparison years")
	}
	if crisis/float64(crisisN) <= calm/float64(calmN) {
		t.Errorf("2022 dairy average %v not above 2020 average %v",
			crisis/float64(crisisN), calm/float64(calmN))
	}
}

func TestPricesDeterministic(t *testing.T) {
	a := Prices(NewRand(DefaultSeed))
	b := Prices(NewRand(DefaultSeed))
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different datasets")
	}

	c := Prices(NewRand(DefaultSeed + 1))
	if reflect.DeepEqual(a, c) {
		t.Fatal("different seeds produced identical datasets")
	}
}

func TestPriceTimeFactor(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		category string
		want     float64
	}{
		{"before the crisis", time.Date(2021, time.May, 1, 0, 0, 0, 0, time.UTC), "Fruits", 1.0},
		{"mid 2021 uptick", time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC), "Fruits", 1.03},
		{"2022 baseline", time.Date(2022, time.August, 1, 0, 0, 0, 0, time.UTC), "Fruits", 1.08},
		{"2022 dairy surcharge", time.Date(2022, time.August, 1, 0, 0, 0, 0, time.UTC), "Dairy products", 1.08 * 1.04},
		{"2023 easing", time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC), "Fruits", 1.054},
		{"2023 second half", time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC), "Fruits", 1.047},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := priceTimeFactor(tt.date, tt.category); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("priceTimeFactor(%s, %q) = %v, want %v",
					tt.date.Format("2006-01"), tt.category, got, tt.want)
			}
		})
	}
}

func TestOverallInflationRegimes(t *testing.T) {
	tests := []struct {
		year, month int
		want        float64
	}{
		{2020, 7, 1.5},
		{2021, 5, 2.0},
		{2021, 6, 3.0},
		{2022, 5, 5.0},
		{2022, 6, 8.0},
		{2023, 5, 6.5},
		{2023, 6, 4.0},
	}
	for _, tt := range tests {
		if got := overallInflation(tt.year, tt.month); got != tt.want {
			t.Errorf("overallInflation(%d, %d) = %v, want %v", tt.year, tt.month, got, tt.want)
		}
	}
}
