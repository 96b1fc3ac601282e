package refdata

import "strings"

// Product is one COICOP catalog entry, carrying both the fact-table fields
// (code, name, level, parent) and the dimension fields (description, main
// category).
type Product struct {
	Code         string
	Name         string
	Level        int
	Parent       string
	Description  string
	MainCategory string
}

// Products is the COICOP catalog. Level 1 codes are 4 characters; each extra
// character nests one level deeper under the shared prefix.
var Products = []Product{
	{Code: "CP00", Name: "All Items", Level: 1, Description: "Overall HICP", MainCategory: "Overall"},
	{Code: "CP01", Name: "Food and Non-Alcoholic Beverages", Level: 1, Description: "Food and beverages consumed at home", MainCategory: "Food"},
	{Code: "CP02", Name: "Alcoholic Beverages and Tobacco", Level: 1, Description: "Alcoholic drinks and tobacco products", MainCategory: "Food"},
	{Code: "CP03", Name: "Clothing and Footwear", Level: 1, Description: "Garments, footwear and related services", MainCategory: "Clothing"},
	{Code: "CP04", Name: "Housing, Water, Electricity, Gas and Other Fuels", Level: 1, Description: "Housing costs and utilities", MainCategory: "Housing"},
	{Code: "CP05", Name: "Furnishings, Household Equipment and Routine Household Maintenance", Level: 1, Description: "Furniture, appliances and services", MainCategory: "Housing"},
	{Code: "CP06", Name: "Health", Level: 1, Description: "Medical products and services", MainCategory: "Health"},
	{Code: "CP07", Name: "Transport", Level: 1, Description: "Vehicles, fuel and transport services", MainCategory: "Transport"},
	{Code: "CP08", Name: "Communications", Level: 1, Description: "Postal and telecommunication services", MainCategory: "Communications"},
	{Code: "CP09", Name: "Recreation and Culture", Level: 1, Description: "Recreational goods, services and cultural activities", MainCategory: "Recreation"},
	{Code: "CP10", Name: "Education", Level: 1, Description: "Educational services", MainCategory: "Education"},
	{Code: "CP11", Name: "Restaurants and Hotels", Level: 1, Description: "Catering and accommodation services", MainCategory: "Food"},
	{Code: "CP12", Name: "Miscellaneous Goods and Services", Level: 1, Description: "Personal care, insurance and financial services", MainCategory: "Other"},

	{Code: "CP011", Name: "Food", Level: 2, Parent: "CP01", Description: "Food products", MainCategory: "Food"},
	{Code: "CP012", Name: "Non-Alcoholic Beverages", Level: 2, Parent: "CP01", Description: "Coffee, tea, water, juices", MainCategory: "Food"},

	{Code: "CP0111", Name: "Bread and Cereals", Level: 3, Parent: "CP011", Description: "Bread, rice, pasta, cereals", MainCategory: "Food"},
	{Code: "CP0112", Name: "Meat", Level: 3, Parent: "CP011", Description: "All types of meat products", MainCategory: "Food"},
	{Code: "CP0113", Name: "Fish", Level: 3, Parent: "CP011", Description: "Fresh, chilled, frozen fish and seafood", MainCategory: "Food"},
	{Code: "CP0114", Name: "Milk, Cheese and Eggs", Level: 3, Parent: "CP011", Description: "Dairy products and eggs", MainCategory: "Food"},
	{Code: "CP0115", Name: "Oils and Fats", Level: 3, Parent: "CP011", Description: "Butter, margarine, oils", MainCategory: "Food"},
	{Code: "CP0116", Name: "Fruit", Level: 3, Parent: "CP011", Description: "Fresh and preserved fruits", MainCategory: "Food"},
	{Code: "CP0117", Name: "Vegetables", Level: 3, Parent: "CP011", Description: "Fresh and preserved vegetables", MainCategory: "Food"},
	{Code: "CP0118", Name: "Sugar, Jam, Honey, Chocolate and Confectionery", Level: 3, Parent: "CP011", Description: "Sweet products", MainCategory: "Food"},
	{Code: "CP0119", Name: "Food Products n.e.c.", Level: 3, Parent: "CP011", Description: "Other food products", MainCategory: "Food"},

	{Code: "CP041", Name: "Actual Rentals for Housing", Level: 2, Parent: "CP04", Description: "Rent payments", MainCategory: "Housing"},
	{Code: "CP042", Name: "Imputed Rentals for Housing", Level: 2, Parent: "CP04", Description: "Imputed rent for owner-occupiers", MainCategory: "Housing"},
	{Code: "CP043", Name: "Maintenance and Repair of the Dwelling", Level: 2, Parent: "CP04", Description: "Materials and services for maintenance", MainCategory: "Housing"},
	{Code: "CP044", Name: "Water Supply and Miscellaneous Services", Level: 2, Parent: "CP04", Description: "Water, sewerage, waste collection", MainCategory: "Housing"},
	{Code: "CP045", Name: "Electricity, Gas and Other Fuels", Level: 2, Parent: "CP04", Description: "Energy for the home", MainCategory: "Housing"},

	{Code: "CP071", Name: "Purchase of Vehicles", Level: 2, Parent: "CP07", Description: "Cars, motorcycles, bicycles", MainCategory: "Transport"},
	{Code: "CP072", Name: "Operation of Personal Transport Equipment", Level: 2, Parent: "CP07", Description: "Fuel, maintenance, parts", MainCategory: "Transport"},
	{Code: "CP073", Name: "Transport Services", Level: 2, Parent: "CP07", Description: "Rail, road, air transport", MainCategory: "Transport"},
}

var productsByCode = makeProductIndex(Products)

func makeProductIndex(products []Product) map[string]Product {
	index := make(map[string]Product, len(products))
	for _, p := range products {
		index[p.Code] = p
	}
	return index
}

// ProductByCode looks up a catalog entry by COICOP code.
func ProductByCode(code string) (Product, bool) {
	p, ok := productsByCode[code]
	return p, ok
}

// MainProducts returns the level-1 catalog entries in catalog order.
func MainProducts() []Product {
	var main []Product
	for _, p := range Products {
		if p.Level == 1 {
			main = append(main, p)
		}
	}
	return main
}

// LevelForCode derives the hierarchy level from the code length: 4 characters
// is level 1, each extra character one level deeper.
func LevelForCode(code string) int {
	if len(code) < 4 {
		return 0
	}
	return len(code) - 3
}

// Subtree returns the catalog entries under a main category: the code itself
// plus every longer code sharing its prefix.
func Subtree(mainCode string) []Product {
	var sub []Product
	for _, p := range Products {
		if p.Code == mainCode || (len(p.Code) > len(mainCode) && strings.HasPrefix(p.Code, mainCode)) {
			sub = append(sub, p)
		}
	}
	return sub
}

// CategoryFactor is the per-category inflation multiplier. Special level-1
// codes match exactly; families match on the level-1 prefix.
func CategoryFactor(code string) float64 {
	switch {
	case strings.HasPrefix(code, "CP01"):
		return 1.3 // food runs hot
	case strings.HasPrefix(code, "CP04"):
		return 1.1
	case strings.HasPrefix(code, "CP07"):
		return 1.4 // transport is volatile
	case code == "CP06":
		return 0.7
	case code == "CP08":
		return 0.5 // communications deflate
	default:
		return 1.0
	}
}

// EnergyCrisisFactor is the extra multiplier applied during the 2022 regime:
// household energy doubles, the food family gains half again.
func EnergyCrisisFactor(code string) float64 {
	switch {
	case code == "CP045":
		return 2.0
	case strings.HasPrefix(code, "CP011"):
		return 1.5
	default:
		return 1.0
	}
}
