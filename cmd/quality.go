package cmd

import (
	"fmt"
	"strings"

	"infla/internal/cli"
	"infla/internal/quality"

	"github.com/spf13/cobra"
)

var (
	flagQualitySource string
	flagQualityStatus string
)

var qualityCmd = &cobra.Command{
	Use:   "quality",
	Short: "Data-quality checks over the loaded datasets",
	RunE:  runQuality,
}

func init() {
	qualityCmd.Flags().StringVar(&flagQualitySource, "source", "", "Filter checks by source (eurostat, worldbank, openfood, volume)")
	qualityCmd.Flags().StringVar(&flagQualityStatus, "status", "", "Filter checks by status (PASS or FAIL)")
	rootCmd.AddCommand(qualityCmd)
}

func runQuality(_ *cobra.Command, _ []string) error {
	status := quality.Status(strings.ToUpper(flagQualityStatus))
	if status != "" && status != quality.StatusPass && status != quality.StatusFail {
		return fmt.Errorf("invalid --status %q (want PASS or FAIL)", flagQualityStatus)
	}

	bundle := loadBundle()
	report := quality.Run(bundle, appCfg.Quality.MinTotalRows)

	fmt.Println()
	fmt.Println(cli.RenderTitle("DATA QUALITY"))
	fmt.Println()

	fmt.Printf("  Checks: %d passed, %d failed   Pass rate: %.1f%%\n",
		report.Passing(), report.Failing(), report.PassRate())
	fmt.Printf("  %s\n", cli.RenderProgressBar(report.Passing(), len(report.Checks), 40))
	fmt.Println()

	volumeRows := make([][]string, 0, len(report.Volumes)+1)
	for _, v := range report.Volumes {
		volumeRows = append(volumeRows, []string{v.Source, cli.FormatNumber(int64(v.Rows))})
	}
	volumeRows = append(volumeRows, []string{"---"})
	volumeRows = append(volumeRows, []string{"total", cli.FormatNumber(int64(report.TotalRows))})
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Row volumes",
		Headers: []string{"Source", "Rows"},
		Rows:    volumeRows,
	}))

	checks := report.Filter(flagQualitySource, status)
	if len(checks) == 0 {
		fmt.Println("\n  No checks match the selected filters.")
		return nil
	}

	rows := make([][]string, 0, len(checks))
	for _, c := range checks {
		details := make([]string, 0, len(c.Details))
		for _, d := range c.Details {
			details = append(details, fmt.Sprintf("%s=%s", d.Label, d.Value))
		}
		rows = append(rows, []string{
			c.Name,
			c.Source,
			string(c.Status),
			strings.Join(details, "  "),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Checks",
		Headers: []string{"Check", "Source", "Status", "Details"},
		Rows:    rows,
	}))

	return nil
}
