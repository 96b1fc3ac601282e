package generate

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"infla/internal/model"
	"infla/internal/refdata"

	"github.com/shopspring/decimal"
)

// productsPerCategory is how many sample products each food category carries.
const productsPerCategory = 5

var nutritionGrades = []struct {
	grade  string
	weight float64
}{
	{"A", 0.20},
	{"B", 0.30},
	{"C", 0.30},
	{"D", 0.15},
	{"E", 0.05},
}

// Prices synthesizes the retail product-price dataset: five products per
// food category per country, priced monthly over the canonical window.
// Brand and product factor are drawn once per product; everything else
// varies per month. Record and product IDs are sequential so the dataset
// mirrors warehouse surrogate keys.
func Prices(rng *rand.Rand) []model.ProductPriceRecord {
	months := refdata.Months()
	records := make([]model.ProductPriceRecord, 0,
		len(refdata.Countries)*len(refdata.FoodCategories)*productsPerCategory*len(months))

	recordID := int64(10000)
	productID := int64(1000)

	for i, country := range refdata.Countries {
		countryFactor := 1 + float64(i%3)*0.1
		for _, category := range refdata.FoodCategories {
			inflationFactor := refdata.PriceInflationFactor(category.Name)

			for p := 0; p < productsPerCategory; p++ {
				productID++
				brand := refdata.Brands[rng.Intn(len(refdata.Brands))]
				productFactor := 0.9 + 0.05*float64(p) + rng.Float64()*0.2
				name := fmt.Sprintf("%s %s %d", brand, category.Templates[p], p+1)

				for _, date := range months {
					recordID++
					year, month := date.Year(), int(date.Month())
					timeFactor := priceTimeFactor(date, category.Name)

					raw := category.BasePrice * countryFactor * productFactor *
						timeFactor * (0.98 + rng.Float64()*0.04)
					price := decimal.NewFromFloat(raw).Round(2)

					overall := round2(overallInflation(year, month) + (rng.Float64() - 0.5))
					categoryInflation := round2(overall * inflationFactor)

					gdpPerCapita := 30000 + 5000*float64(i) + 1000*float64(year-2020)
					var growth float64
					if year == 2020 {
						growth = -3.0 + rng.Float64()*2
					} else {
						growth = 1.5 + 0.5*float64(year-2020) + (rng.Float64() - 0.5)
					}
					growth = round2(growth)

					deviation := round2(((timeFactor - 1) - overall/100) * 100)
					grade := nutritionGrade(rng)

					records = append(records, model.ProductPriceRecord{
						RecordID:          recordID,
						ProductID:         productID,
						ProductName:       name,
						Brand:             brand,
						CountryCode:       country.Code,
						CountryName:       country.Name,
						FoodCategory:      category.Name,
						Price:             price,
						Currency:          refdata.PriceCurrency,
						PricePerUnit:      price,
						Unit:              category.Unit,
						Date:              date,
						Year:              year,
						Month:             month,
						NutritionGrade:    grade,
						CategoryInflation: categoryInflation,
						OverallInflation:  overall,
						GDPPerCapita:      gdpPerCapita,
						GDPGrowth:         growth,
						PriceDeviation:    deviation,
					})
				}
			}
		}
	}
	return records
}

// priceTimeFactor scales prices by the calendar regime. The 2022 spike
// bites hardest in animal products and prepared meals.
func priceTimeFactor(date time.Time, category string) float64 {
	year, month := date.Year(), int(date.Month())
	switch {
	case year == 2021 && month >= 6:
		return 1.03
	case year == 2022:
		factor := 1.08
		switch category {
		case "Dairy products", "Meat products", "Prepared meals":
			factor *= 1.04
		}
		return factor
	case year == 2023 && month <= 6:
		return 1.06 - 0.002*float64(month)
	case year == 2023:
		return 1.05 - 0.001*float64(month-6)
	default:
		return 1.0
	}
}

// overallInflation is the pre-noise headline rate stamped on price records.
func overallInflation(year, month int) float64 {
	switch {
	case year == 2020:
		return 1.5
	case year == 2021 && month < 6:
		return 2.0
	case year == 2021:
		return 3.0
	case year == 2022 && month < 6:
		return 5.0
	case year == 2022:
		return 8.0
	case month < 6:
		return 6.5
	default:
		return 4.0
	}
}

// nutritionGrade draws a grade from the fixed A-E distribution.
func nutritionGrade(rng *rand.Rand) string {
	u := rng.Float64()
	acc := 0.0
	for _, g := range nutritionGrades {
		acc += g.weight
		if u < acc {
			return g.grade
		}
	}
	return nutritionGrades[len(nutritionGrades)-1].grade
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
