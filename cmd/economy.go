package cmd

import (
	"fmt"
	"sort"

	"infla/internal/cli"
	"infla/internal/model"
	"infla/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagIndicator string

// indicatorColumns maps the --indicator flag to an EconomicRow accessor.
var indicatorColumns = map[string]struct {
	label string
	value func(model.EconomicRow) float64
}{
	"gdp":       {"GDP per Capita", func(r model.EconomicRow) float64 { return r.GDPPerCapita }},
	"cpi":       {"CPI", func(r model.EconomicRow) float64 { return r.CPI }},
	"inflation": {"Inflation Rate", func(r model.EconomicRow) float64 { return r.InflationRate }},
	"growth":    {"GDP Growth Rate", func(r model.EconomicRow) float64 { return r.GDPGrowth }},
	"food":      {"Food Inflation", func(r model.EconomicRow) float64 { return r.FoodInflation }},
	"housing":   {"Housing Inflation", func(r model.EconomicRow) float64 { return r.HousingInflation }},
	"transport": {"Transport Inflation", func(r model.EconomicRow) float64 { return r.TransportInflation }},
}

var economyCmd = &cobra.Command{
	Use:   "economy",
	Short: "Macro indicators and their correlations",
	RunE:  runEconomy,
}

func init() {
	economyCmd.Flags().StringVar(&flagIndicator, "indicator", "gdp", "Indicator table to show (gdp, cpi, inflation, growth, food, housing, transport)")
	rootCmd.AddCommand(economyCmd)
}

func runEconomy(_ *cobra.Command, _ []string) error {
	col, ok := indicatorColumns[flagIndicator]
	if !ok {
		return fmt.Errorf("unknown indicator %q", flagIndicator)
	}

	filter, err := economicFilter()
	if err != nil {
		return err
	}

	bundle := loadBundle()
	econ := pipeline.FilterEconomic(bundle.Economic, filter)
	if len(econ) == 0 {
		fmt.Println("\n  No economic data for the selected filters.")
		return nil
	}

	rows := pipeline.CombineEconomic(econ, bundle.Inflation)
	summary := pipeline.SummarizeEconomy(rows)

	fmt.Println()
	fmt.Println(cli.RenderTitle("ECONOMIC INDICATORS"))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", fmt.Sprintf("Average %d", summary.Year)},
		Rows: [][]string{
			{"GDP per capita", cli.FormatUSD(summary.AvgGDPPerCapita)},
			{"GDP growth", cli.FormatRate(summary.AvgGrowth)},
			{"Inflation", cli.FormatRate(summary.AvgInflation)},
			{"Food inflation", cli.FormatRate(summary.AvgFoodInflation)},
		},
	}))

	fmt.Println()
	fmt.Print(renderIndicatorTable(col.label, rows, col.value))

	if grid := pipeline.Correlation(rows); len(grid.Rows) > 0 {
		fmt.Println()
		fmt.Print(renderHeatTable("Correlation matrix (Pearson)", grid))
	}

	return nil
}

// renderIndicatorTable pivots one indicator into a country x year table.
func renderIndicatorTable(label string, rows []model.EconomicRow, value func(model.EconomicRow) float64) string {
	yearSet := make(map[int]struct{})
	byCountry := make(map[string]map[int]float64)
	for _, r := range rows {
		yearSet[r.Year] = struct{}{}
		years, ok := byCountry[r.CountryName]
		if !ok {
			years = make(map[int]float64)
			byCountry[r.CountryName] = years
		}
		years[r.Year] = value(r)
	}

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	countries := make([]string, 0, len(byCountry))
	for c := range byCountry {
		countries = append(countries, c)
	}
	sort.Strings(countries)

	headers := []string{"Country"}
	for _, y := range years {
		headers = append(headers, fmt.Sprintf("%d", y))
	}

	tableRows := make([][]string, 0, len(countries))
	for _, c := range countries {
		row := []string{c}
		for _, y := range years {
			if v, ok := byCountry[c][y]; ok {
				row = append(row, cli.FormatFloat(v))
			} else {
				row = append(row, "n/a")
			}
		}
		tableRows = append(tableRows, row)
	}

	return cli.RenderTable(cli.Table{Title: label + " by year", Headers: headers, Rows: tableRows})
}
