package cli

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1234, "1.2K"},
		{1_500_000, "1.5M"},
		{2_000_000_000, "2.0B"},
		{-1234, "-1.2K"},
	}
	for _, tt := range tests {
		if got := FormatCount(tt.in); got != tt.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatRate(t *testing.T) {
	if got := FormatRate(5.234); got != "5.23%" {
		t.Errorf("FormatRate(5.234) = %q, want 5.23%%", got)
	}
	if got := FormatRate(-1.2); got != "-1.20%" {
		t.Errorf("FormatRate(-1.2) = %q, want -1.20%%", got)
	}
	if got := FormatRate(math.NaN()); got != "n/a" {
		t.Errorf("FormatRate(NaN) = %q, want n/a", got)
	}
}

func TestFormatSignedRate(t *testing.T) {
	if got := FormatSignedRate(1.5); got != "+1.50%" {
		t.Errorf("FormatSignedRate(1.5) = %q, want +1.50%%", got)
	}
	if got := FormatSignedRate(-0.75); got != "-0.75%" {
		t.Errorf("FormatSignedRate(-0.75) = %q, want -0.75%%", got)
	}
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{45230.4, "$45,230"},
		{250, "$250"},
		{45.67, "$45.7"},
		{2.5, "$2.50"},
	}
	for _, tt := range tests {
		if got := FormatUSD(tt.in); got != tt.want {
			t.Errorf("FormatUSD(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatEUR(t *testing.T) {
	if got := FormatEUR(decimal.RequireFromString("2.5")); got != "€2.50" {
		t.Errorf("FormatEUR(2.5) = %q, want €2.50", got)
	}
}

func TestFormatMonth(t *testing.T) {
	d := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	if got := FormatMonth(d); got != "Jun 2023" {
		t.Errorf("FormatMonth = %q, want Jun 2023", got)
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2023, time.June, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want string
	}{
		{time.Time{}, "never"},
		{now.Add(-30 * time.Second), "30s ago"},
		{now.Add(-12 * time.Minute), "12m ago"},
		{now.Add(-65 * time.Minute), "1h 05m ago"},
	}
	for _, tt := range tests {
		if got := FormatAge(tt.at, now); got != tt.want {
			t.Errorf("FormatAge(%v) = %q, want %q", tt.at, got, tt.want)
		}
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{1, 2, 3}); got != "▁▄█" {
		t.Errorf("sparkline = %q, want ▁▄█", got)
	}
	// Negative series keeps the same shape: scaling is min-to-max.
	if got := RenderSparkline([]float64{-1, 0, 1}); got != "▁▄█" {
		t.Errorf("negative sparkline = %q, want ▁▄█", got)
	}
	if got := RenderSparkline([]float64{1, math.NaN(), 3}); got != "▁ █" {
		t.Errorf("gapped sparkline = %q, want ▁ █", got)
	}
	if got := RenderSparkline([]float64{2, 2}); got != "▁▁" {
		t.Errorf("flat sparkline = %q, want ▁▁", got)
	}
	if got := RenderSparkline(nil); got != "" {
		t.Errorf("empty sparkline = %q, want empty", got)
	}
}
