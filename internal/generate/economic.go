package generate

import (
	"math/rand"

	"infla/internal/model"
	"infla/internal/refdata"
)

// Economic synthesizes yearly macro indicators per country, including the
// 2018-2019 pre-pandemic baseline years that sit outside the monthly window.
func Economic(rng *rand.Rand) []model.EconomicRecord {
	years := refdata.EconYears()
	records := make([]model.EconomicRecord, 0, len(refdata.Countries)*len(years))

	for i, country := range refdata.Countries {
		for _, year := range years {
			offset := float64(year - refdata.EconStartYear)
			gdp := 30000 + 5000*float64(i) + 1000*offset + rng.Float64()*500
			cpi := 100 + 2*offset + rng.Float64()*1.5

			var inflation float64
			switch {
			case year <= 2019:
				inflation = 1.5 + (rng.Float64() - 0.5)
			case year == 2020:
				inflation = 0.8 + (rng.Float64() - 0.5)
			case year == 2021:
				inflation = 2.5 + rng.Float64()*1.5
			case year == 2022:
				inflation = 5.0 + rng.Float64()*3.0 + float64(i%3)
			default:
				inflation = 3.0 + rng.Float64()*2.0 - float64(i%2)
			}

			var growth float64
			switch {
			case year <= 2019:
				growth = 2.0 + (rng.Float64() - 0.5) + float64(i%2)
			case year == 2020:
				growth = -5.0 + rng.Float64()*3.0 - float64(i%2)
			case year == 2021:
				growth = 5.0 + rng.Float64()*2.0 + float64(i%3)
			case year == 2022:
				growth = 2.5 + (rng.Float64() - 0.5) - float64(i%2)
			default:
				growth = 1.0 + (rng.Float64() - 0.5) + float64(i%2)
			}

			records = append(records, model.EconomicRecord{
				CountryCode:   country.Code,
				CountryName:   country.Name,
				Year:          year,
				GDPPerCapita:  gdp,
				CPI:           cpi,
				InflationRate: inflation,
				GDPGrowth:     growth,
			})
		}
	}
	return records
}
