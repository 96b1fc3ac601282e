package pipeline

import (
	"testing"

	"infla/internal/model"
)

func TestFilterInflation(t *testing.T) {
	records := []model.InflationRecord{
		infl("DE", "CP00", monthOf(2021, 5), 2.0),
		infl("DE", "CP011", monthOf(2022, 5), 8.0),
		infl("FR", "CP00", monthOf(2022, 6), 5.0),
		infl("IT", "CP0111", monthOf(2023, 1), 6.0),
	}

	tests := []struct {
		name   string
		filter InflationFilter
		want   int
	}{
		{"empty filter keeps all", InflationFilter{}, 4},
		{"by country", InflationFilter{Countries: []string{"Germany"}}, 2},
		{"by code", InflationFilter{Codes: []string{"CP00"}}, 2},
		{"by level", InflationFilter{Levels: []int{1}}, 2},
		{"by year range", InflationFilter{FromYear: 2022, ToYear: 2022}, 2},
		{"combined", InflationFilter{Countries: []string{"Germany", "France"}, FromYear: 2022}, 2},
		{"no match", InflationFilter{Countries: []string{"Norway"}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterInflation(records, tt.filter)
			if len(got) != tt.want {
				t.Errorf("got %d records, want %d", len(got), tt.want)
			}
		})
	}
}

func TestFilterEconomic(t *testing.T) {
	records := []model.EconomicRecord{
		{CountryCode: "DE", CountryName: "Germany", Year: 2019},
		{CountryCode: "DE", CountryName: "Germany", Year: 2022},
		{CountryCode: "FR", CountryName: "France", Year: 2022},
	}

	got := FilterEconomic(records, EconomicFilter{Countries: []string{"Germany"}, FromYear: 2020})
	if len(got) != 1 || got[0].Year != 2022 {
		t.Errorf("got %+v, want the single Germany 2022 row", got)
	}

	if got := FilterEconomic(records, EconomicFilter{}); len(got) != 3 {
		t.Errorf("empty filter kept %d records, want 3", len(got))
	}
}

func TestFilterPrices_DateBoundsInclusive(t *testing.T) {
	records := []model.ProductPriceRecord{
		{CountryName: "Germany", FoodCategory: "Dairy products", Brand: "Arla", Date: monthOf(2022, 1)},
		{CountryName: "Germany", FoodCategory: "Dairy products", Brand: "Arla", Date: monthOf(2022, 6)},
		{CountryName: "Germany", FoodCategory: "Bakery products", Brand: "Lidl", Date: monthOf(2022, 12)},
		{CountryName: "France", FoodCategory: "Dairy products", Brand: "Danone", Date: monthOf(2023, 1)},
	}

	got := FilterPrices(records, PriceFilter{From: monthOf(2022, 6), To: monthOf(2022, 12)})
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2 (bounds are inclusive)", len(got))
	}
	if !got[0].Date.Equal(monthOf(2022, 6)) || !got[1].Date.Equal(monthOf(2022, 12)) {
		t.Errorf("kept dates %v and %v, want the June and December rows", got[0].Date, got[1].Date)
	}

	got = FilterPrices(records, PriceFilter{Categories: []string{"Dairy products"}, Brands: []string{"Danone"}})
	if len(got) != 1 || got[0].CountryName != "France" {
		t.Errorf("got %+v, want the single Danone row", got)
	}
}
