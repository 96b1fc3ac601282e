package generate

import (
	"reflect"
	"testing"

	"infla/internal/refdata"
)

func TestEconomicShape(t *testing.T) {
	records := Economic(NewRand(DefaultSeed))

	want := len(refdata.Countries) * (refdata.EconEndYear - refdata.EconStartYear + 1)
	if len(records) != want {
		t.Fatalf("got %d records, want %d", len(records), want)
	}

	perYear := make(map[int]int)
	for _, r := range records {
		perYear[r.Year]++
	}
	for y := refdata.EconStartYear; y <= refdata.EconEndYear; y++ {
		if perYear[y] != len(refdata.Countries) {
			t.Errorf("year %d has %d rows, want %d", y, perYear[y], len(refdata.Countries))
		}
	}
}

func TestEconomicPandemicContraction(t *testing.T) {
	for _, r := range Economic(NewRand(DefaultSeed)) {
		if r.Year == 2020 && r.GDPGrowth >= 0 {
			t.Errorf("%s 2020 growth = %v, want negative", r.CountryCode, r.GDPGrowth)
		}
	}
}

func TestEconomicCPIRises(t *testing.T) {
	first := make(map[string]float64)
	last := make(map[string]float64)
	for _, r := range Economic(NewRand(DefaultSeed)) {
		switch r.Year {
		case refdata.EconStartYear:
			first[r.CountryCode] = r.CPI
		case refdata.EconEndYear:
			last[r.CountryCode] = r.CPI
		}
	}

	if len(first) != len(refdata.Countries) {
		t.Fatalf("baseline year covers %d countries, want %d", len(first), len(refdata.Countries))
	}
	for code, start := range first {
		if end := last[code]; end <= start {
			t.Errorf("%s CPI went %v -> %v, want an increase", code, start, end)
		}
	}
}

func TestEconomicDeterministic(t *testing.T) {
	a := Economic(NewRand(DefaultSeed))
	b := Economic(NewRand(DefaultSeed))
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different datasets")
	}

	c := Economic(NewRand(DefaultSeed + 1))
	if reflect.DeepEqual(a, c) {
		t.Fatal("different seeds produced identical datasets")
	}
}
