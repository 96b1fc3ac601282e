package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds all infla configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Warehouse  WarehouseConfig  `toml:"warehouse"`
	Quality    QualityConfig    `toml:"quality"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	UseSampleData    bool     `toml:"use_sample_data"`
	SampleSeed       int64    `toml:"sample_seed"`
	CacheTTLMinutes  int      `toml:"cache_ttl_minutes"`
	DefaultCountries []string `toml:"default_countries,omitempty"`
	DataDir          string   `toml:"data_dir,omitempty"`
}

// WarehouseConfig holds Postgres warehouse connection settings.
type WarehouseConfig struct {
	Host     string `toml:"host,omitempty"`
	Port     int    `toml:"port"`
	Database string `toml:"database,omitempty"`
	Schema   string `toml:"schema"`
	User     string `toml:"user,omitempty"`
	Password string `toml:"password,omitempty"`
	SSLMode  string `toml:"sslmode"`
}

// QualityConfig holds data-quality thresholds.
type QualityConfig struct {
	MinTotalRows int `toml:"min_total_rows"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			SampleSeed:      42,
			CacheTTLMinutes: 60,
		},
		Warehouse: WarehouseConfig{
			Port:    5432,
			Schema:  "public",
			SSLMode: "disable",
		},
		Quality: QualityConfig{
			MinTotalRows: 1_000_000,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "infla")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "infla")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultDataDir returns the XDG-compliant data directory that holds the
// snapshot cache unless a flag, env var, or config entry overrides it.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "infla")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "infla")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk. The file may carry warehouse credentials,
// so it is not group or world readable.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// ApplyEnv overlays INFLA_* environment variables on the config.
// The environment always wins so deployments can override the file.
func ApplyEnv(cfg Config) Config {
	if v := os.Getenv("INFLA_DB_HOST"); v != "" {
		cfg.Warehouse.Host = v
	}
	if v := os.Getenv("INFLA_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Warehouse.Port = port
		}
	}
	if v := os.Getenv("INFLA_DB_NAME"); v != "" {
		cfg.Warehouse.Database = v
	}
	if v := os.Getenv("INFLA_DB_SCHEMA"); v != "" {
		cfg.Warehouse.Schema = v
	}
	if v := os.Getenv("INFLA_DB_USER"); v != "" {
		cfg.Warehouse.User = v
	}
	if v := os.Getenv("INFLA_DB_PASSWORD"); v != "" {
		cfg.Warehouse.Password = v
	}
	if v := os.Getenv("INFLA_DB_SSLMODE"); v != "" {
		cfg.Warehouse.SSLMode = v
	}
	if v := os.Getenv("INFLA_USE_SAMPLE_DATA"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.General.UseSampleData = b
		}
	}
	if v := os.Getenv("INFLA_DATA_DIR"); v != "" {
		cfg.General.DataDir = v
	}
	return cfg
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
