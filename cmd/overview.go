package cmd

import (
	"fmt"

	"infla/internal/cli"
	"infla/internal/pipeline"

	"github.com/spf13/cobra"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Headline inflation metrics and trends",
	RunE:  runOverview,
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

func runOverview(_ *cobra.Command, _ []string) error {
	filter, err := inflationFilter()
	if err != nil {
		return err
	}
	// The overview reads the headline series only.
	filter.Codes = []string{"CP00"}

	bundle := loadBundle()
	records := pipeline.FilterInflation(bundle.Inflation, filter)
	if len(records) == 0 {
		fmt.Println("\n  No inflation data for the selected filters.")
		return nil
	}

	summary := pipeline.Summarize(records)

	fmt.Println()
	fmt.Println(cli.RenderTitle("INFLATION OVERVIEW  HICP All Items"))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{fmt.Sprintf("Average YoY (%d)", summary.LatestYear), cli.FormatRate(summary.LatestAverage)},
			{"---"},
			{"Highest YoY", fmt.Sprintf("%s  %s %s", cli.FormatRate(summary.Max.Value), summary.Max.Country, cli.FormatMonth(summary.Max.Date))},
			{"Lowest YoY", fmt.Sprintf("%s  %s %s", cli.FormatRate(summary.Min.Value), summary.Min.Country, cli.FormatMonth(summary.Min.Date))},
		},
	}))

	latest := pipeline.LatestByCountry(records)
	if len(latest) > 0 {
		rows := make([][]string, 0, len(latest))
		maxRate := latest[0].Value
		for _, cr := range latest {
			rows = append(rows, []string{
				cr.Country,
				cr.Code,
				cli.FormatRate(cr.Value),
				cli.RenderHorizontalBar("", cr.Value, maxRate, 24, ""),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("Latest rates  %s", cli.FormatMonth(latest[0].Date)),
			Headers: []string{"Country", "Code", "YoY", ""},
			Rows:    rows,
		}))
	}

	series := pipeline.CountrySeries(records)
	if len(series) > 0 {
		rows := make([][]string, 0, len(series))
		for _, s := range series {
			values := make([]float64, len(s.Points))
			for i, p := range s.Points {
				values[i] = p.Value
			}
			rows = append(rows, []string{s.Country, cli.RenderSparkline(values)})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Monthly trend",
			Headers: []string{"Country", "YoY over time"},
			Rows:    rows,
		}))
	}

	return nil
}
