package cmd

import (
	"fmt"

	"infla/internal/cli"

	"github.com/spf13/cobra"
)

var flagSection string

// docSections is the built-in project documentation, one entry per tab of
// the original dashboard's documentation page.
var docSections = []struct {
	key   string
	title string
	body  string
}{
	{
		key:   "overview",
		title: "Project Overview",
		body: `infla tracks inflation across eight EU countries by combining three
upstream sources: Eurostat HICP rates, World Bank macro indicators, and Open
Food Facts retail prices. Every view works from the same three datasets and
the same load path: warehouse query, hourly snapshot cache, or deterministic
sample data when the warehouse is unreachable.`,
	},
	{
		key:   "data-model",
		title: "Data Model",
		body: `Inflation records carry a COICOP product code, monthly YoY and MoM
rates, and a price index accumulating from 100. Economic records are yearly
per-country macro figures (GDP per capita, CPI, inflation, growth). Product
price records are individual retail observations with their inflation
context. The COICOP hierarchy is encoded in code length: CP01 is level 1,
CP011 level 2, CP0111 level 3.`,
	},
	{
		key:   "architecture",
		title: "Architecture",
		body: `The warehouse exposes curated mart tables: fact_inflation_rates,
int_economic_indicators, fact_product_prices, and the dim_products
dimension. infla reads them over the Postgres wire, snapshots each fetch
into a local SQLite database, and serves snapshots for an hour before
refetching. Forced sample mode (--sample or INFLA_USE_SAMPLE_DATA) skips
the warehouse entirely.`,
	},
	{
		key:   "pipeline",
		title: "Load Pipeline",
		body: `Per dataset the loader tries, in order: forced sample data, a fresh
snapshot, a live fetch. Warehouse failures are typed (not configured,
unreachable, query failed) and recorded on the load result, so every view
can say exactly where its data came from. A load never fails outright;
sample data is the terminal fallback.`,
	},
	{
		key:   "dashboard",
		title: "Dashboard",
		body: `Each analysis view exists twice: as a subcommand printing metric
blocks and tables (overview, categories, economy, prices, quality), and as
a tab of the full-screen dashboard started with 'infla tui'. The dashboard
reloads in the background and shows the data source, snapshot age, and the
quality pass rate in its status bar.`,
	},
}

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Project documentation",
	RunE:  runDocs,
}

func init() {
	docsCmd.Flags().StringVar(&flagSection, "section", "", "Show one section (overview, data-model, architecture, pipeline, dashboard)")
	rootCmd.AddCommand(docsCmd)
}

func runDocs(_ *cobra.Command, _ []string) error {
	if flagSection != "" {
		for _, s := range docSections {
			if s.key == flagSection {
				printDocSection(s.title, s.body)
				return nil
			}
		}
		return fmt.Errorf("unknown section %q", flagSection)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("DOCUMENTATION"))
	for _, s := range docSections {
		printDocSection(s.title, s.body)
	}
	return nil
}

func printDocSection(title, body string) {
	fmt.Println()
	fmt.Printf("  %s\n\n", title)
	fmt.Printf("  %s\n", body)
}
