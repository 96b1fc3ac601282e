package refdata

// FoodCategory describes one retail food category: its base price per
// standard unit, the unit itself, and the five product templates the sample
// generator instantiates.
type FoodCategory struct {
	Name      string
	BasePrice float64
	Unit      string
	Templates []string
}

// FoodCategories in generator order.
var FoodCategories = []FoodCategory{
	{Name: "Dairy products", BasePrice: 3.5, Unit: "kg", Templates: []string{"Milk", "Yogurt", "Cheese", "Butter", "Cream"}},
	{Name: "Cereals and cereal products", BasePrice: 2.8, Unit: "kg", Templates: []string{"Oats", "Cornflakes", "Rice", "Pasta", "Quinoa"}},
	{Name: "Fruits", BasePrice: 2.5, Unit: "kg", Templates: []string{"Apples", "Bananas", "Oranges", "Berries", "Grapes"}},
	{Name: "Vegetables", BasePrice: 2.2, Unit: "kg", Templates: []string{"Carrots", "Tomatoes", "Potatoes", "Broccoli", "Spinach"}},
	{Name: "Meat products", BasePrice: 8.5, Unit: "kg", Templates: []string{"Chicken", "Beef", "Pork", "Turkey", "Lamb"}},
	{Name: "Fish products", BasePrice: 10.0, Unit: "kg", Templates: []string{"Salmon", "Tuna", "Cod", "Shrimp", "Sardines"}},
	{Name: "Beverages", BasePrice: 1.5, Unit: "l", Templates: []string{"Water", "Juice", "Soda", "Coffee", "Tea"}},
	{Name: "Snacks", BasePrice: 7.0, Unit: "kg", Templates: []string{"Chips", "Crackers", "Nuts", "Popcorn", "Pretzels"}},
	{Name: "Bakery products", BasePrice: 4.0, Unit: "kg", Templates: []string{"Bread", "Rolls", "Cake", "Cookies", "Muffins"}},
	{Name: "Confectionery", BasePrice: 9.0, Unit: "kg", Templates: []string{"Chocolate", "Candy", "Gum", "Licorice", "Marshmallows"}},
	{Name: "Prepared meals", BasePrice: 6.5, Unit: "kg", Templates: []string{"Pizza", "Lasagna", "Soup", "Salad", "Sandwich"}},
	{Name: "Condiments and sauces", BasePrice: 5.0, Unit: "kg", Templates: []string{"Ketchup", "Mustard", "Mayonnaise", "Salsa", "Pesto"}},
}

// Brands available to the product-price generator.
var Brands = []string{
	"Nestlé", "Danone", "Unilever", "Kraft Heinz", "Kellogg's", "Mondelez",
	"Carrefour", "Lidl", "Aldi", "Tesco", "Barilla", "Ferrero", "Dr. Oetker",
	"Coca-Cola", "PepsiCo", "Mars", "Bonduelle", "Arla", "Müller", "Lavazza",
}

// PriceCurrency is the currency of every product-price record.
const PriceCurrency = "EUR"

// FoodCategoryNames returns the category names in generator order.
func FoodCategoryNames() []string {
	names := make([]string, len(FoodCategories))
	for i, c := range FoodCategories {
		names[i] = c.Name
	}
	return names
}

// FoodCategoryByName looks up a food category.
func FoodCategoryByName(name string) (FoodCategory, bool) {
	for _, c := range FoodCategories {
		if c.Name == name {
			return c, true
		}
	}
	return FoodCategory{}, false
}

// PriceInflationFactor scales overall inflation into a category-specific
// rate for product-price records.
func PriceInflationFactor(category string) float64 {
	switch category {
	case "Dairy products", "Meat products":
		return 1.2
	case "Fruits", "Vegetables":
		return 1.3
	case "Beverages":
		return 0.8
	default:
		return 1.0
	}
}
