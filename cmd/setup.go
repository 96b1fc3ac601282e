package cmd

import (
	"fmt"
	"strconv"

	"infla/internal/config"
	"infla/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive warehouse and preferences setup",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	host := cfg.Warehouse.Host
	port := strconv.Itoa(cfg.Warehouse.Port)
	database := cfg.Warehouse.Database
	schema := cfg.Warehouse.Schema
	user := cfg.Warehouse.User
	password := cfg.Warehouse.Password
	sampleMode := cfg.General.UseSampleData
	themeName := cfg.Appearance.Theme

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("infla setup").
				Description("Connection details for the inflation warehouse.\nLeave the host empty to run on sample data only."),
			huh.NewInput().Title("Warehouse host").Value(&host),
			huh.NewInput().Title("Port").Value(&port).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := strconv.Atoi(s); err != nil {
						return fmt.Errorf("port must be a number")
					}
					return nil
				}),
			huh.NewInput().Title("Database").Value(&database),
			huh.NewInput().Title("Schema").Value(&schema),
			huh.NewInput().Title("User").Value(&user),
			huh.NewInput().Title("Password").Value(&password).EchoMode(huh.EchoModePassword),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Always use sample data?").
				Description("Skips the warehouse even when configured.").
				Value(&sampleMode),
			huh.NewSelect[string]().Title("Color theme").
				Options(themeOpts...).
				Value(&themeName),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("setup aborted: %w", err)
	}

	cfg.Warehouse.Host = host
	if port != "" {
		cfg.Warehouse.Port, _ = strconv.Atoi(port)
	}
	cfg.Warehouse.Database = database
	cfg.Warehouse.Schema = schema
	cfg.Warehouse.User = user
	cfg.Warehouse.Password = password
	cfg.General.UseSampleData = sampleMode
	cfg.Appearance.Theme = themeName

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved %s\n", config.ConfigPath())
	fmt.Println("  Run `infla status` to verify the connection.")
	return nil
}
