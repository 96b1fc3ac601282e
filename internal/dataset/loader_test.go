package dataset

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"infla/internal/config"
	"infla/internal/model"
	"infla/internal/store"
	"infla/internal/warehouse"

	"github.com/google/uuid"
)

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Warehouse = config.WarehouseConfig{}
	return cfg
}

func TestLoadBundle_ForcedSample(t *testing.T) {
	cfg := testConfig()
	cfg.General.UseSampleData = true

	l := NewLoader(cfg, nil)
	defer l.Close()

	b := l.LoadBundle(context.Background(), Options{})
	if len(b.Inflation) == 0 || len(b.Economic) == 0 || len(b.Prices) == 0 {
		t.Fatal("forced sample load produced empty datasets")
	}
	for _, res := range b.Loads() {
		if res.Source != model.SourceSample {
			t.Errorf("%s source = %v, want sample", res.Dataset, res.Source)
		}
		if res.FallbackReason != nil {
			t.Errorf("%s has fallback reason %v on a forced sample load", res.Dataset, res.FallbackReason)
		}
		if res.LoadID == uuid.Nil {
			t.Errorf("%s load ID not stamped", res.Dataset)
		}
		if res.Rows == 0 {
			t.Errorf("%s row count not stamped", res.Dataset)
		}
	}
	if b.AnyFallback() {
		t.Error("forced sample loads must not count as fallbacks")
	}
}

func TestLoadBundle_FallsBackWhenNotConfigured(t *testing.T) {
	var msgs []string
	l := NewLoader(testConfig(), nil)
	defer l.Close()

	b := l.LoadBundle(context.Background(), Options{Progress: func(m string) { msgs = append(msgs, m) }})

	for _, res := range b.Loads() {
		if res.Source != model.SourceSample {
			t.Errorf("%s source = %v, want sample", res.Dataset, res.Source)
		}
		if !errors.Is(res.FallbackReason, warehouse.ErrNotConfigured) {
			t.Errorf("%s fallback reason = %v, want ErrNotConfigured", res.Dataset, res.FallbackReason)
		}
		if !res.UsedFallback() {
			t.Errorf("%s not marked as fallback", res.Dataset)
		}
	}
	if !b.AnyFallback() {
		t.Error("bundle does not report the fallback")
	}

	joined := strings.Join(msgs, "\n")
	if !strings.Contains(joined, "sample data") {
		t.Errorf("progress output never mentioned the fallback:\n%s", joined)
	}
}

func TestLoadBundle_ServesFreshSnapshot(t *testing.T) {
	cache, err := store.Open(filepath.Join(t.TempDir(), "snapshot.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	cached := []model.EconomicRecord{
		{CountryCode: "DE", CountryName: "Germany", Year: 2022, GDPPerCapita: 34000, CPI: 108.2, InflationRate: 6.9, GDPGrowth: 1.8},
	}
	saved := model.LoadResult{
		Dataset:   model.DatasetEconomic,
		Source:    model.SourceLive,
		FetchedAt: time.Now().UTC(),
		LoadID:    uuid.New(),
		Rows:      len(cached),
	}
	if err := cache.SaveEconomic(cached, saved); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	l := NewLoader(testConfig(), cache)
	defer l.Close()

	records, res := l.LoadEconomic(context.Background(), Options{})
	if res.Source != model.SourceCache {
		t.Fatalf("source = %v, want cache", res.Source)
	}
	if res.LoadID != saved.LoadID {
		t.Errorf("load ID = %v, want the snapshot's %v", res.LoadID, saved.LoadID)
	}
	if len(records) != len(cached) || records[0].CountryCode != "DE" {
		t.Errorf("got %+v, want the cached rows", records)
	}
	if res.UsedFallback() {
		t.Error("cache hit reported as fallback")
	}
}

func TestLoadBundle_NoCacheBypassesSnapshot(t *testing.T) {
	cache, err := store.Open(filepath.Join(t.TempDir(), "snapshot.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	cached := []model.EconomicRecord{
		{CountryCode: "DE", CountryName: "Germany", Year: 2022, GDPPerCapita: 34000, CPI: 108.2, InflationRate: 6.9, GDPGrowth: 1.8},
	}
	saved := model.LoadResult{
		Dataset:   model.DatasetEconomic,
		Source:    model.SourceLive,
		FetchedAt: time.Now().UTC(),
		LoadID:    uuid.New(),
		Rows:      len(cached),
	}
	if err := cache.SaveEconomic(cached, saved); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	l := NewLoader(testConfig(), cache)
	defer l.Close()

	// With the snapshot bypassed and no warehouse configured, the load
	// must land on sample data.
	_, res := l.LoadEconomic(context.Background(), Options{NoCache: true})
	if res.Source == model.SourceCache {
		t.Fatal("--no-cache load still served the snapshot")
	}
	if res.Source != model.SourceSample {
		t.Fatalf("source = %v, want sample", res.Source)
	}
	if !errors.Is(res.FallbackReason, warehouse.ErrNotConfigured) {
		t.Errorf("fallback reason = %v, want ErrNotConfigured", res.FallbackReason)
	}
}

func TestLoader_StaleSnapshotIgnored(t *testing.T) {
	cache, err := store.Open(filepath.Join(t.TempDir(), "snapshot.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	saved := model.LoadResult{
		Dataset:   model.DatasetEconomic,
		Source:    model.SourceLive,
		FetchedAt: time.Now().Add(-3 * time.Hour),
		LoadID:    uuid.New(),
		Rows:      1,
	}
	records := []model.EconomicRecord{
		{CountryCode: "DE", CountryName: "Germany", Year: 2022, GDPPerCapita: 34000, CPI: 108.2, InflationRate: 6.9, GDPGrowth: 1.8},
	}
	if err := cache.SaveEconomic(records, saved); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	l := NewLoader(testConfig(), cache)
	defer l.Close()

	_, res := l.LoadEconomic(context.Background(), Options{})
	if res.Source == model.SourceCache {
		t.Fatal("stale snapshot was served")
	}
	if res.Source != model.SourceSample {
		t.Fatalf("source = %v, want sample fallback", res.Source)
	}
}

func TestLoader_SeedFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.General.UseSampleData = true
	cfg.General.SampleSeed = 7

	a, _ := NewLoader(cfg, nil).LoadInflation(context.Background(), Options{})
	b, _ := NewLoader(cfg, nil).LoadInflation(context.Background(), Options{})
	if a[0].YoY != b[0].YoY || a[100].MoM != b[100].MoM {
		t.Fatal("same configured seed produced different sample data")
	}

	cfg.General.SampleSeed = 8
	c, _ := NewLoader(cfg, nil).LoadInflation(context.Background(), Options{})
	if a[0].YoY == c[0].YoY && a[100].MoM == c[100].MoM {
		t.Error("different configured seeds produced identical sample data")
	}
}
