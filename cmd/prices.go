package cmd

import (
	"fmt"

	"infla/internal/cli"
	"infla/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagPriceCategories []string
	flagPriceBrands     []string
	flagTopN            int
)

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Retail food prices against inflation",
	RunE:  runPrices,
}

func init() {
	pricesCmd.Flags().StringSliceVar(&flagPriceCategories, "category", nil, "Filter to food categories")
	pricesCmd.Flags().StringSliceVar(&flagPriceBrands, "brand", nil, "Filter to brands")
	pricesCmd.Flags().IntVar(&flagTopN, "top", 10, "Number of products in the top-price table")
	rootCmd.AddCommand(pricesCmd)
}

func runPrices(_ *cobra.Command, _ []string) error {
	filter, err := priceFilter(flagPriceCategories, flagPriceBrands)
	if err != nil {
		return err
	}

	bundle := loadBundle()
	records := pipeline.FilterPrices(bundle.Prices, filter)
	if len(records) == 0 {
		fmt.Println("\n  No price data for the selected filters.")
		return nil
	}

	summary := pipeline.SummarizePrices(records)

	fmt.Println()
	fmt.Println(cli.RenderTitle("PRODUCT PRICES  Retail Food"))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Average unit price", cli.FormatEUR(summary.AvgUnitPrice)},
			{"Category inflation", cli.FormatRate(summary.AvgCategoryInflation)},
			{"Overall inflation", cli.FormatRate(summary.AvgOverallInflation)},
			{"Price vs inflation", cli.FormatSignedRate(summary.AvgDeviation)},
		},
	}))

	byCategory := pipeline.PricesByCategory(records)
	if len(byCategory) > 0 {
		rows := make([][]string, 0, len(byCategory))
		maxPrice := byCategory[0].AvgPrice.InexactFloat64()
		for _, c := range byCategory {
			rows = append(rows, []string{
				c.Category,
				c.Unit,
				cli.FormatEUR(c.AvgPrice),
				cli.RenderHorizontalBar("", c.AvgPrice.InexactFloat64(), maxPrice, 20, ""),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Average price by category",
			Headers: []string{"Category", "Unit", "Price", ""},
			Rows:    rows,
		}))
	}

	top := pipeline.TopProducts(records, flagTopN)
	if len(top) > 0 {
		rows := make([][]string, 0, len(top))
		for _, p := range top {
			rows = append(rows, []string{
				p.ProductName,
				p.Brand,
				p.CountryName,
				p.FoodCategory,
				fmt.Sprintf("%s/%s", cli.FormatEUR(p.PricePerUnit), p.Unit),
				cli.FormatMonth(p.Date),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("Top %d by unit price", len(top)),
			Headers: []string{"Product", "Brand", "Country", "Category", "Price", "Month"},
			Rows:    rows,
		}))
	}

	return nil
}
