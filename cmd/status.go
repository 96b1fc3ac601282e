package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"infla/internal/cli"
	"infla/internal/config"
	"infla/internal/model"
	"infla/internal/store"
	"infla/internal/warehouse"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show warehouse reachability and snapshot state",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	fmt.Println()
	fmt.Println(cli.RenderTitle("INFLA STATUS"))
	fmt.Println()

	fmt.Printf("  Config file:  %s", config.ConfigPath())
	if !config.Exists() {
		fmt.Print("  (not created, using defaults)")
	}
	fmt.Println()
	fmt.Printf("  Data dir:     %s\n", dataDir())
	fmt.Printf("  Sample mode:  %v\n", appCfg.General.UseSampleData)
	fmt.Printf("  Cache TTL:    %dm\n", appCfg.General.CacheTTLMinutes)
	fmt.Println()

	printWarehouseStatus()
	printSnapshotStatus()
	return nil
}

func printWarehouseStatus() {
	if appCfg.General.UseSampleData {
		fmt.Println("  Warehouse:    skipped (sample mode)")
		return
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Checking warehouse...\n")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := warehouse.Open(ctx, appCfg.Warehouse)
	switch {
	case errors.Is(err, warehouse.ErrNotConfigured):
		fmt.Println("  Warehouse:    not configured (run `infla setup`)")
		return
	case err != nil:
		fmt.Printf("  Warehouse:    unreachable (%v)\n", err)
		return
	}
	defer client.Close()

	counts, err := client.TableCounts(ctx)
	if err != nil {
		fmt.Printf("  Warehouse:    connected, count query failed (%v)\n", err)
		return
	}

	fmt.Printf("  Warehouse:    connected (%s:%d/%s)\n",
		appCfg.Warehouse.Host, appCfg.Warehouse.Port, appCfg.Warehouse.Database)
	rows := make([][]string, 0, len(counts))
	for _, table := range []string{"fact_inflation_rates", "int_economic_indicators", "fact_product_prices"} {
		rows = append(rows, []string{table, cli.FormatNumber(counts[table])})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Mart tables",
		Headers: []string{"Table", "Rows"},
		Rows:    rows,
	}))
}

func printSnapshotStatus() {
	cache, err := store.Open(snapshotPath())
	if err != nil {
		fmt.Printf("  Snapshots:    unavailable (%v)\n", err)
		return
	}
	defer cache.Close()

	now := time.Now()
	rows := make([][]string, 0, 3)
	for _, name := range []string{model.DatasetInflation, model.DatasetEconomic, model.DatasetPrices} {
		meta, ok, err := cache.Meta(name)
		switch {
		case err != nil:
			rows = append(rows, []string{name, "error", "", ""})
		case !ok:
			rows = append(rows, []string{name, "none", "", ""})
		default:
			fresh := "stale"
			if now.Sub(meta.FetchedAt) < time.Duration(appCfg.General.CacheTTLMinutes)*time.Minute {
				fresh = "fresh"
			}
			rows = append(rows, []string{
				name,
				fresh,
				cli.FormatAge(meta.FetchedAt, now),
				cli.FormatNumber(int64(meta.Rows)),
			})
		}
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Snapshots",
		Headers: []string{"Dataset", "State", "Age", "Rows"},
		Rows:    rows,
	}))
}
