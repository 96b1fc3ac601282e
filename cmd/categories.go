package cmd

import (
	"fmt"
	"strings"

	"infla/internal/cli"
	"infla/internal/model"
	"infla/internal/pipeline"
	"infla/internal/refdata"

	"github.com/spf13/cobra"
)

var (
	flagLevel int
	flagMain  string
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Inflation by COICOP product category",
	RunE:  runCategories,
}

func init() {
	categoriesCmd.Flags().IntVar(&flagLevel, "level", 0, "Restrict to a hierarchy level (1-3)")
	categoriesCmd.Flags().StringVar(&flagMain, "main", "", "Drill into a main category subtree (e.g. CP01)")
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(_ *cobra.Command, _ []string) error {
	filter, err := inflationFilter()
	if err != nil {
		return err
	}
	if flagLevel != 0 {
		filter.Levels = []int{flagLevel}
	}
	if flagMain != "" {
		flagMain = strings.ToUpper(flagMain)
		if _, ok := refdata.ProductByCode(flagMain); !ok {
			return fmt.Errorf("unknown category code %q", flagMain)
		}
	}

	bundle := loadBundle()
	records := pipeline.FilterInflation(bundle.Inflation, filter)
	if len(records) == 0 {
		fmt.Println("\n  No inflation data for the selected filters.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("PRODUCT CATEGORIES  COICOP"))
	fmt.Println()

	averages := pipeline.CategoryAverages(records)
	if len(averages) > 0 {
		maxRate := averages[0].Value
		rows := make([][]string, 0, len(averages))
		for _, c := range averages {
			rows = append(rows, []string{
				c.Code,
				c.Name,
				cli.FormatRate(c.Value),
				cli.RenderHorizontalBar("", c.Value, maxRate, 20, ""),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("Latest averages  %s", cli.FormatMonth(pipeline.LatestDate(records))),
			Headers: []string{"Code", "Category", "YoY", ""},
			Rows:    rows,
		}))
	}

	if grid := pipeline.CategoryCountryHeat(records); len(grid.Rows) > 0 {
		fmt.Println()
		fmt.Print(renderHeatTable("Country x category", grid))
	}

	if grid := pipeline.YearlyCategoryHeat(records); len(grid.Rows) > 0 {
		fmt.Println()
		fmt.Print(renderHeatTable("Category x year", grid))
	}

	if flagMain != "" {
		subtree := pipeline.Subtree(records, flagMain)
		if len(subtree) == 0 {
			fmt.Printf("\n  No records under %s.\n", flagMain)
			return nil
		}
		byCode := pipeline.CategoryAverages(subtree)
		rows := make([][]string, 0, len(byCode))
		for _, c := range byCode {
			level := refdata.LevelForCode(c.Code)
			indent := strings.Repeat("  ", level-1)
			rows = append(rows, []string{indent + c.Code, c.Name, cli.FormatRate(c.Value)})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("Subtree of %s", flagMain),
			Headers: []string{"Code", "Category", "Latest YoY"},
			Rows:    rows,
		}))
	}

	return nil
}

// renderHeatTable flattens a heat grid into a bordered table, one line per
// grid row. NaN cells render as n/a.
func renderHeatTable(title string, grid model.HeatGrid) string {
	headers := append([]string{""}, grid.Cols...)
	rows := make([][]string, 0, len(grid.Rows))
	for i, label := range grid.Rows {
		row := make([]string, 0, len(grid.Cols)+1)
		row = append(row, label)
		for _, v := range grid.Values[i] {
			row = append(row, cli.FormatFloat(v))
		}
		rows = append(rows, row)
	}
	return cli.RenderTable(cli.Table{Title: title, Headers: headers, Rows: rows})
}
