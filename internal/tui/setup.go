package tui

import (
	"fmt"
	"strconv"

	"infla/internal/config"

	"github.com/charmbracelet/huh"
)

// setupValues backs the first-run setup form.
type setupValues struct {
	host       string
	port       string
	database   string
	schema     string
	user       string
	password   string
	sampleMode bool
}

// newSetupForm builds the first-run wizard shown when no config file exists
// yet. The form writes into vals; apply folds the result into a Config.
func newSetupForm(vals *setupValues, cfg config.Config) *huh.Form {
	vals.host = cfg.Warehouse.Host
	vals.port = strconv.Itoa(cfg.Warehouse.Port)
	vals.database = cfg.Warehouse.Database
	vals.schema = cfg.Warehouse.Schema
	vals.user = cfg.Warehouse.User
	vals.password = cfg.Warehouse.Password
	vals.sampleMode = cfg.General.UseSampleData

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to infla").
				Description("Connection details for the inflation warehouse.\nLeave the host empty to run on sample data only."),
			huh.NewInput().Title("Warehouse host").Value(&vals.host),
			huh.NewInput().Title("Port").Value(&vals.port).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := strconv.Atoi(s); err != nil {
						return fmt.Errorf("port must be a number")
					}
					return nil
				}),
			huh.NewInput().Title("Database").Value(&vals.database),
			huh.NewInput().Title("Schema").Value(&vals.schema),
			huh.NewInput().Title("User").Value(&vals.user),
			huh.NewInput().Title("Password").Value(&vals.password).EchoMode(huh.EchoModePassword),
			huh.NewConfirm().Title("Always use sample data?").
				Description("Skips the warehouse even when configured.").
				Value(&vals.sampleMode),
		),
	)
}

// apply folds the completed form into cfg and persists it.
func (v setupValues) apply(cfg config.Config) config.Config {
	cfg.Warehouse.Host = v.host
	if v.port != "" {
		cfg.Warehouse.Port, _ = strconv.Atoi(v.port)
	}
	cfg.Warehouse.Database = v.database
	cfg.Warehouse.Schema = v.schema
	cfg.Warehouse.User = v.user
	cfg.Warehouse.Password = v.password
	cfg.General.UseSampleData = v.sampleMode
	_ = config.Save(cfg)
	return cfg
}
