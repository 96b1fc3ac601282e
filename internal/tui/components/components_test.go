package components

import (
	"math"
	"strings"
	"testing"

	"infla/internal/model"
	"infla/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
	theme.SetActive("flexoki-dark")
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4} {
		for _, total := range []int{80, 97, 120, 179} {
			widths := LayoutRow(total, n)
			if len(widths) != n {
				t.Fatalf("LayoutRow(%d, %d) returned %d widths", total, n, len(widths))
			}
			sum := 0
			for _, w := range widths {
				sum += w
			}
			if sum != total {
				t.Errorf("LayoutRow(%d, %d) widths sum to %d", total, n, sum)
			}
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	cards := []struct{ Label, Value, Caption string }{
		{"Latest Avg", "4.2%", "headline, 2023"},
		{"Peak", "18.9%", "Germany · Oct 2022"},
		{"Records", "28,032", "all years"},
	}
	row := MetricCardRow(cards, 120)

	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 120 {
			t.Errorf("line %d width = %d, want 120", i, w)
		}
	}
}

func TestCardRowPadsToTallest(t *testing.T) {
	short := ContentCard("Short", "one line", 30)
	tall := ContentCard("Tall", "1\n2\n3\n4\n5", 30)

	joined := CardRow([]string{tall, short})
	got := len(strings.Split(joined, "\n"))
	want := len(strings.Split(tall, "\n"))
	if got != want {
		t.Errorf("joined height = %d, want %d (tallest card)", got, want)
	}
}

func TestHeatmapRendersNaNAsGap(t *testing.T) {
	grid := model.HeatGrid{
		Rows:   []string{"Food", "Energy"},
		Cols:   []string{"DE", "FR"},
		Values: [][]float64{{2.5, math.NaN()}, {9.1, 4.0}},
	}
	out := Heatmap(grid, theme.Active.RateColor, 10, 6, false)

	if !strings.Contains(out, "·") {
		t.Error("NaN cell should render as a dimmed dot")
	}
	if !strings.Contains(out, "2.5") || !strings.Contains(out, "9.1") {
		t.Error("numeric cells should render their values")
	}
	if strings.Contains(out, "NaN") {
		t.Error("NaN must never leak into the rendered grid")
	}
}

func TestHeatmapAbbreviatesColumns(t *testing.T) {
	grid := model.HeatGrid{
		Rows:   []string{"GDP/Capita"},
		Cols:   []string{"Food Inflation"},
		Values: [][]float64{{0.8}},
	}
	out := Heatmap(grid, theme.Active.CorrelationColor, 12, 6, true)
	if !strings.Contains(out, "FI") {
		t.Errorf("wide column label should abbreviate to initials, got %q", out)
	}
}

func TestSparklineHandlesNegativeRates(t *testing.T) {
	out := Sparkline([]float64{-0.5, 0.2, 1.4, 8.9}, theme.Active.Accent)
	if out == "" {
		t.Fatal("sparkline empty for valid series")
	}
	if !strings.Contains(out, "█") {
		t.Error("max value should render the tallest block")
	}
}

func TestTabVisualWidth(t *testing.T) {
	for _, tab := range Tabs {
		active := TabVisualWidth(tab, true)
		inactive := TabVisualWidth(tab, false)
		if active != lipgloss.Width(tab.Name) {
			t.Errorf("%s active width = %d, want %d", tab.Name, active, lipgloss.Width(tab.Name))
		}
		if inactive != active+2 {
			t.Errorf("%s inactive width = %d, want %d", tab.Name, inactive, active+2)
		}
	}
}

func TestPassRateColorBuckets(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{100, PassRateColor(100)},
		{80, PassRateColor(80)},
	}
	if tests[0].want != tests[1].want {
		t.Error("80%% and 100%% should share the healthy color")
	}
	if PassRateColor(79) == PassRateColor(80) {
		t.Error("79%% should drop out of the healthy bucket")
	}
	if PassRateColor(10) == PassRateColor(60) {
		t.Error("10%% and 60%% should be in different buckets")
	}
}
