package generate

import (
	"math/rand"
	"time"

	"infla/internal/model"
	"infla/internal/refdata"
)

// Inflation synthesizes monthly HICP-style rates for every country and
// catalog product over the canonical window. Rates follow the calendar
// regimes (pre-pandemic calm, late-2021 pickup, the 2022 spike, the 2023
// cooldown) scaled by per-category factors, with bounded noise on top.
func Inflation(rng *rand.Rand) []model.InflationRecord {
	months := refdata.Months()
	records := make([]model.InflationRecord, 0, len(refdata.Countries)*len(refdata.Products)*len(months))

	for i, country := range refdata.Countries {
		for _, product := range refdata.Products {
			for j, date := range months {
				base := baseRate(date, i, product.Code)
				yoy := base + (rng.Float64() - 0.5)
				mom := yoy/12 + (rng.Float64()-0.5)*0.2

				records = append(records, model.InflationRecord{
					CountryCode: country.Code,
					CountryName: country.Name,
					ProductCode: product.Code,
					ProductName: product.Name,
					Date:        date,
					Year:        date.Year(),
					Month:       int(date.Month()),
					YoY:         yoy,
					MoM:         mom,
					PriceIndex:  100 + float64(j)*mom/10,
					Level:       product.Level,
					ParentCode:  product.Parent,
				})
			}
		}
	}
	return records
}

// baseRate picks the pre-noise rate for one country, product, and month.
// Values can go negative in the cooldown regimes; nothing clamps them.
func baseRate(date time.Time, countryIdx int, code string) float64 {
	factor := refdata.CategoryFactor(code)
	year, month := date.Year(), int(date.Month())

	switch {
	case year < 2021 || (year == 2021 && month <= 5):
		// Pre-crisis calm: flat across countries and categories.
		return 2.0
	case year == 2021:
		return 3.5*factor + float64(countryIdx%3)
	case year == 2022:
		return (5.0*factor + float64(countryIdx%4)) * refdata.EnergyCrisisFactor(code)
	case month <= 6:
		return 4.0*factor - 0.1*float64(month) + float64(countryIdx%3)
	default:
		return 2.5*factor - 0.1*float64(month-6) + float64(countryIdx%2)
	}
}
