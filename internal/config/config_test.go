package config

import (
	"os"
	"reflect"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("got %+v, want defaults", cfg)
	}
	if Exists() {
		t.Error("Exists() = true before any Save")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	want := DefaultConfig()
	want.General.UseSampleData = true
	want.General.DefaultCountries = []string{"Germany", "France"}
	want.Warehouse.Host = "warehouse.internal"
	want.Warehouse.Database = "inflation"
	want.Appearance.Theme = "flexoki-light"

	if err := Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	info, err := os.Stat(ConfigPath())
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file mode = %o, want 600", perm)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestApplyEnv_OverridesFileValues(t *testing.T) {
	t.Setenv("INFLA_DB_HOST", "db.example.com")
	t.Setenv("INFLA_DB_PORT", "6432")
	t.Setenv("INFLA_DB_SSLMODE", "require")
	t.Setenv("INFLA_USE_SAMPLE_DATA", "true")

	cfg := ApplyEnv(DefaultConfig())
	if cfg.Warehouse.Host != "db.example.com" {
		t.Errorf("host = %q, want db.example.com", cfg.Warehouse.Host)
	}
	if cfg.Warehouse.Port != 6432 {
		t.Errorf("port = %d, want 6432", cfg.Warehouse.Port)
	}
	if cfg.Warehouse.SSLMode != "require" {
		t.Errorf("sslmode = %q, want require", cfg.Warehouse.SSLMode)
	}
	if !cfg.General.UseSampleData {
		t.Error("use_sample_data not forced on")
	}
}

func TestApplyEnv_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("INFLA_DB_PORT", "not-a-port")
	t.Setenv("INFLA_USE_SAMPLE_DATA", "maybe")

	cfg := ApplyEnv(DefaultConfig())
	if cfg.Warehouse.Port != 5432 {
		t.Errorf("port = %d, want default 5432", cfg.Warehouse.Port)
	}
	if cfg.General.UseSampleData {
		t.Error("malformed bool flipped use_sample_data")
	}
}
