package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DataSource says which path actually served a dataset.
type DataSource int

const (
	SourceSample DataSource = iota
	SourceLive
	SourceCache
)

func (s DataSource) String() string {
	switch s {
	case SourceLive:
		return "live"
	case SourceCache:
		return "cache"
	default:
		return "sample"
	}
}

// ParseDataSource maps a stored source label back to its enum value.
func ParseDataSource(s string) DataSource {
	switch s {
	case "live":
		return SourceLive
	case "cache":
		return SourceCache
	default:
		return SourceSample
	}
}

// Dataset names used in snapshot metadata and the export command.
const (
	DatasetInflation = "inflation"
	DatasetEconomic  = "economic"
	DatasetPrices    = "prices"
)

// LoadResult records how one dataset was obtained. FallbackReason is non-nil
// exactly when a warehouse attempt failed and sample data was substituted;
// callers branch on Source, never on message text.
type LoadResult struct {
	Dataset        string
	Source         DataSource
	FetchedAt      time.Time
	LoadID         uuid.UUID
	Rows           int
	FallbackReason error
}

// UsedFallback reports whether sample data stood in for a failed live fetch.
func (r LoadResult) UsedFallback() bool {
	return r.Source == SourceSample && r.FallbackReason != nil
}

// Describe renders the result for status lines and notices.
func (r LoadResult) Describe() string {
	switch {
	case r.UsedFallback():
		return fmt.Sprintf("sample data (%v)", r.FallbackReason)
	case r.Source == SourceCache:
		return fmt.Sprintf("cached snapshot from %s", r.FetchedAt.Format("15:04"))
	case r.Source == SourceLive:
		return "live warehouse data"
	default:
		return "sample data"
	}
}

// Bundle is the full loaded state: the three datasets plus how each one was
// obtained.
type Bundle struct {
	Inflation []InflationRecord
	Economic  []EconomicRecord
	Prices    []ProductPriceRecord

	InflationLoad LoadResult
	EconomicLoad  LoadResult
	PricesLoad    LoadResult
}

// Loads returns the three load results in dataset order.
func (b *Bundle) Loads() []LoadResult {
	return []LoadResult{b.InflationLoad, b.EconomicLoad, b.PricesLoad}
}

// AnyFallback reports whether any dataset fell back to sample data.
func (b *Bundle) AnyFallback() bool {
	for _, r := range b.Loads() {
		if r.UsedFallback() {
			return true
		}
	}
	return false
}
