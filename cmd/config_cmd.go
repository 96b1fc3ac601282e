// Package cmd implements the infla CLI commands.
package cmd

import (
	"fmt"
	"strings"

	"infla/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config [path]",
	Short: "Show current configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, args []string) error {
	if len(args) == 1 && args[0] == "path" {
		fmt.Println(config.ConfigPath())
		return nil
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Sample data:  %v\n", appCfg.General.UseSampleData)
	fmt.Printf("    Sample seed:  %d\n", appCfg.General.SampleSeed)
	fmt.Printf("    Cache TTL:    %dm\n", appCfg.General.CacheTTLMinutes)
	if len(appCfg.General.DefaultCountries) > 0 {
		fmt.Printf("    Countries:    %s\n", strings.Join(appCfg.General.DefaultCountries, ", "))
	}
	fmt.Printf("    Data dir:     %s\n", dataDir())
	fmt.Println()

	fmt.Println("  [Warehouse]")
	if appCfg.Warehouse.Host == "" {
		fmt.Println("    Not configured")
	} else {
		fmt.Printf("    Host:     %s:%d\n", appCfg.Warehouse.Host, appCfg.Warehouse.Port)
		fmt.Printf("    Database: %s (schema %s)\n", appCfg.Warehouse.Database, appCfg.Warehouse.Schema)
		fmt.Printf("    User:     %s\n", appCfg.Warehouse.User)
		if appCfg.Warehouse.Password != "" {
			fmt.Println("    Password: ********")
		}
		fmt.Printf("    SSL mode: %s\n", appCfg.Warehouse.SSLMode)
	}
	fmt.Println()

	fmt.Println("  [Quality]")
	fmt.Printf("    Min total rows: %d\n", appCfg.Quality.MinTotalRows)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", appCfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `infla setup` to reconfigure.")
	return nil
}
