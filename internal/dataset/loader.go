// Package dataset decides where each dataset comes from: forced sample
// data, a fresh local snapshot, or a live warehouse fetch that falls back
// to sample data on any failure. Loads never hard-fail; the dashboard
// always has something to render, and every path stamps a LoadResult so
// callers can tell which it was.
package dataset

import (
	"context"
	"fmt"
	"time"

	"infla/internal/config"
	"infla/internal/generate"
	"infla/internal/model"
	"infla/internal/store"
	"infla/internal/warehouse"

	"github.com/google/uuid"
)

// ProgressFunc receives human-readable load progress lines.
type ProgressFunc func(msg string)

// Options tune a load.
type Options struct {
	// NoCache bypasses snapshot reads. Fresh live data is still written.
	NoCache  bool
	Progress ProgressFunc
}

// Loader materializes the three datasets. It dials the warehouse at most
// once and remembers the outcome for the remaining datasets.
type Loader struct {
	cfg     config.Config
	cache   *store.Cache
	client  *warehouse.Client
	dialed  bool
	dialErr error
}

// NewLoader returns a loader. cache may be nil when the snapshot store
// could not be opened; loading then skips straight to warehouse or sample.
func NewLoader(cfg config.Config, cache *store.Cache) *Loader {
	return &Loader{cfg: cfg, cache: cache}
}

// Close releases the warehouse connection if one was opened.
func (l *Loader) Close() error {
	if l.client != nil {
		return l.client.Close()
	}
	return nil
}

// LoadBundle materializes all three datasets.
func (l *Loader) LoadBundle(ctx context.Context, opts Options) *model.Bundle {
	b := &model.Bundle{}
	b.Inflation, b.InflationLoad = l.LoadInflation(ctx, opts)
	b.Economic, b.EconomicLoad = l.LoadEconomic(ctx, opts)
	b.Prices, b.PricesLoad = l.LoadPrices(ctx, opts)
	return b
}

// LoadInflation materializes the monthly inflation dataset.
func (l *Loader) LoadInflation(ctx context.Context, opts Options) ([]model.InflationRecord, model.LoadResult) {
	if l.cfg.General.UseSampleData {
		report(opts, "inflation: sample data (forced)")
		return l.sampleInflation(nil)
	}

	if !opts.NoCache && l.cache != nil {
		if fresh, err := l.cache.Fresh(model.DatasetInflation, l.ttl()); err == nil && fresh {
			if records, err := l.cache.LoadInflation(); err == nil {
				if meta, ok, err := l.cache.Meta(model.DatasetInflation); err == nil && ok {
					meta.Source = model.SourceCache
					report(opts, fmt.Sprintf("inflation: %d rows from snapshot", len(records)))
					return records, meta
				}
			}
		}
	}

	client, err := l.connect(ctx)
	if err != nil {
		report(opts, fmt.Sprintf("inflation: warehouse unavailable, using sample data (%v)", err))
		return l.sampleInflation(err)
	}

	records, skipped, err := client.FetchInflation(ctx)
	if err != nil {
		report(opts, fmt.Sprintf("inflation: fetch failed, using sample data (%v)", err))
		return l.sampleInflation(err)
	}
	if skipped > 0 {
		report(opts, fmt.Sprintf("inflation: skipped %d malformed rows", skipped))
	}

	res := l.liveResult(model.DatasetInflation, len(records))
	if l.cache != nil {
		if err := l.cache.SaveInflation(records, res); err != nil {
			report(opts, fmt.Sprintf("inflation: snapshot write failed: %v", err))
		}
	}
	report(opts, fmt.Sprintf("inflation: %d rows live", len(records)))
	return records, res
}

// LoadEconomic materializes the yearly macro dataset.
func (l *Loader) LoadEconomic(ctx context.Context, opts Options) ([]model.EconomicRecord, model.LoadResult) {
	if l.cfg.General.UseSampleData {
		report(opts, "economic: sample data (forced)")
		return l.sampleEconomic(nil)
	}

	if !opts.NoCache && l.cache != nil {
		if fresh, err := l.cache.Fresh(model.DatasetEconomic, l.ttl()); err == nil && fresh {
			if records, err := l.cache.LoadEconomic(); err == nil {
				if meta, ok, err := l.cache.Meta(model.DatasetEconomic); err == nil && ok {
					meta.Source = model.SourceCache
					report(opts, fmt.Sprintf("economic: %d rows from snapshot", len(records)))
					return records, meta
				}
			}
		}
	}

	client, err := l.connect(ctx)
	if err != nil {
		report(opts, fmt.Sprintf("economic: warehouse unavailable, using sample data (%v)", err))
		return l.sampleEconomic(err)
	}

	records, skipped, err := client.FetchEconomic(ctx)
	if err != nil {
		report(opts, fmt.Sprintf("economic: fetch failed, using sample data (%v)", err))
		return l.sampleEconomic(err)
	}
	if skipped > 0 {
		report(opts, fmt.Sprintf("economic: skipped %d malformed rows", skipped))
	}

	res := l.liveResult(model.DatasetEconomic, len(records))
	if l.cache != nil {
		if err := l.cache.SaveEconomic(records, res); err != nil {
			report(opts, fmt.Sprintf("economic: snapshot write failed: %v", err))
		}
	}
	report(opts, fmt.Sprintf("economic: %d rows live", len(records)))
	return records, res
}

// LoadPrices materializes the retail product-price dataset.
func (l *Loader) LoadPrices(ctx context.Context, opts Options) ([]model.ProductPriceRecord, model.LoadResult) {
	if l.cfg.General.UseSampleData {
		report(opts, "prices: sample data (forced)")
		return l.samplePrices(nil)
	}

	if !opts.NoCache && l.cache != nil {
		if fresh, err := l.cache.Fresh(model.DatasetPrices, l.ttl()); err == nil && fresh {
			if records, err := l.cache.LoadPrices(); err == nil {
				if meta, ok, err := l.cache.Meta(model.DatasetPrices); err == nil && ok {
					meta.Source = model.SourceCache
					report(opts, fmt.Sprintf("prices: %d rows from snapshot", len(records)))
					return records, meta
				}
			}
		}
	}

	client, err := l.connect(ctx)
	if err != nil {
		report(opts, fmt.Sprintf("prices: warehouse unavailable, using sample data (%v)", err))
		return l.samplePrices(err)
	}

	records, skipped, err := client.FetchPrices(ctx)
	if err != nil {
		report(opts, fmt.Sprintf("prices: fetch failed, using sample data (%v)", err))
		return l.samplePrices(err)
	}
	if skipped > 0 {
		report(opts, fmt.Sprintf("prices: skipped %d malformed rows", skipped))
	}

	res := l.liveResult(model.DatasetPrices, len(records))
	if l.cache != nil {
		if err := l.cache.SavePrices(records, res); err != nil {
			report(opts, fmt.Sprintf("prices: snapshot write failed: %v", err))
		}
	}
	report(opts, fmt.Sprintf("prices: %d rows live", len(records)))
	return records, res
}

// connect dials the warehouse once and memoizes the outcome so a dead
// warehouse costs one timeout, not three.
func (l *Loader) connect(ctx context.Context) (*warehouse.Client, error) {
	if l.dialed {
		return l.client, l.dialErr
	}
	l.dialed = true
	l.client, l.dialErr = warehouse.Open(ctx, l.cfg.Warehouse)
	return l.client, l.dialErr
}

func (l *Loader) sampleInflation(reason error) ([]model.InflationRecord, model.LoadResult) {
	records := generate.Inflation(generate.NewRand(l.seed()))
	return records, l.sampleResult(model.DatasetInflation, len(records), reason)
}

func (l *Loader) sampleEconomic(reason error) ([]model.EconomicRecord, model.LoadResult) {
	records := generate.Economic(generate.NewRand(l.seed()))
	return records, l.sampleResult(model.DatasetEconomic, len(records), reason)
}

func (l *Loader) samplePrices(reason error) ([]model.ProductPriceRecord, model.LoadResult) {
	records := generate.Prices(generate.NewRand(l.seed()))
	return records, l.sampleResult(model.DatasetPrices, len(records), reason)
}

func (l *Loader) liveResult(dataset string, rows int) model.LoadResult {
	return model.LoadResult{
		Dataset:   dataset,
		Source:    model.SourceLive,
		FetchedAt: time.Now().UTC(),
		LoadID:    uuid.New(),
		Rows:      rows,
	}
}

func (l *Loader) sampleResult(dataset string, rows int, reason error) model.LoadResult {
	return model.LoadResult{
		Dataset:        dataset,
		Source:         model.SourceSample,
		FetchedAt:      time.Now().UTC(),
		LoadID:         uuid.New(),
		Rows:           rows,
		FallbackReason: reason,
	}
}

func (l *Loader) seed() int64 {
	if l.cfg.General.SampleSeed != 0 {
		return l.cfg.General.SampleSeed
	}
	return generate.DefaultSeed
}

func (l *Loader) ttl() time.Duration {
	minutes := l.cfg.General.CacheTTLMinutes
	if minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}

func report(opts Options, msg string) {
	if opts.Progress != nil {
		opts.Progress(msg)
	}
}
