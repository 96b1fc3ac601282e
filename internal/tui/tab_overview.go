package tui

import (
	"fmt"
	"sort"
	"strings"

	"infla/internal/cli"
	"infla/internal/model"
	"infla/internal/pipeline"
	"infla/internal/tui/components"
	"infla/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// overviewState tracks the overview tab: headline inflation narrowed to an
// optional single year. yearIdx -1 means the full window.
type overviewState struct {
	yearIdx int
	years   []int

	records []model.InflationRecord
	summary model.InflationSummary
	latest  []model.CountryRate
	series  []model.CountrySeries
}

func (a *App) recomputeOverview() {
	headline := pipeline.FilterInflation(a.filteredInflation(), pipeline.InflationFilter{Codes: []string{"CP00"}})

	seen := map[int]bool{}
	a.overview.years = a.overview.years[:0]
	for _, r := range headline {
		if !seen[r.Year] {
			seen[r.Year] = true
			a.overview.years = append(a.overview.years, r.Year)
		}
	}
	sort.Ints(a.overview.years)
	if a.overview.yearIdx >= len(a.overview.years) {
		a.overview.yearIdx = -1
	}

	records := headline
	if a.overview.yearIdx >= 0 {
		year := a.overview.years[a.overview.yearIdx]
		records = pipeline.FilterInflation(headline, pipeline.InflationFilter{FromYear: year, ToYear: year})
	}

	a.overview.records = records
	a.overview.summary = pipeline.Summarize(records)
	a.overview.latest = pipeline.LatestByCountry(records)
	a.overview.series = pipeline.CountrySeries(records)
}

func (a App) updateOverviewKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "]":
		a.overview.yearIdx++
		if a.overview.yearIdx >= len(a.overview.years) {
			a.overview.yearIdx = -1
		}
		a.recomputeOverview()
	case "[":
		a.overview.yearIdx--
		if a.overview.yearIdx < -1 {
			a.overview.yearIdx = len(a.overview.years) - 1
		}
		a.recomputeOverview()
	}
	return a, nil
}

func (a App) overviewWindowLabel() string {
	if a.overview.yearIdx < 0 || a.overview.yearIdx >= len(a.overview.years) {
		return "all years"
	}
	return fmt.Sprintf("%d", a.overview.years[a.overview.yearIdx])
}

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.overview.summary
	var b strings.Builder

	// Row 1: Metric cards
	cards := []struct{ Label, Value, Caption string }{
		{"Latest Avg", cli.FormatRate(s.LatestAverage), fmt.Sprintf("headline, %d", s.LatestYear)},
		{"Peak", cli.FormatRate(s.Max.Value), fmt.Sprintf("%s · %s", s.Max.Country, cli.FormatMonth(s.Max.Date))},
		{"Low", cli.FormatRate(s.Min.Value), fmt.Sprintf("%s · %s", s.Min.Country, cli.FormatMonth(s.Min.Date))},
		{"Records", cli.FormatCount(int64(len(a.overview.records))), a.overviewWindowLabel() + "  [ ] to cycle"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Latest rate per country
	if len(a.overview.latest) > 0 {
		vals := make([]float64, len(a.overview.latest))
		labels := make([]string, len(a.overview.latest))
		for i, cr := range a.overview.latest {
			vals[i] = cr.Value
			labels[i] = cr.Code
		}
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Latest Rate by Country (%s)", cli.FormatMonth(a.overview.latest[0].Date)),
			components.BarChart(vals, labels, t.Blue, components.CardInnerWidth(cw), 10),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 3: Per-country trend sparklines
	if len(a.overview.series) > 0 {
		innerW := components.CardInnerWidth(cw)
		labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		valueStyle := lipgloss.NewStyle().Background(t.Surface).Bold(true)

		var body strings.Builder
		for i, cs := range a.overview.series {
			last := latestSeriesValue(cs.Points)
			line := fmt.Sprintf("%s %s %s",
				labelStyle.Render(fmt.Sprintf("%-12s", truncStr(cs.Country, 12))),
				components.Sparkline(seriesValues(cs.Points, innerW-22), t.Accent),
				valueStyle.Foreground(t.RateColor(last)).Render(fmt.Sprintf("%7s", cli.FormatRate(last))),
			)
			body.WriteString(line)
			if i < len(a.overview.series)-1 {
				body.WriteString("\n")
			}
		}
		b.WriteString(components.ContentCard("Headline Trend (YoY)", body.String(), cw))
	}

	return b.String()
}

// seriesValues flattens series points to values, resampled to fit maxW cells.
func seriesValues(points []model.SeriesPoint, maxW int) []float64 {
	vals := make([]float64, len(points))
	for i, p := range points {
		vals[i] = p.Value
	}
	if maxW > 0 && len(vals) > maxW {
		step := float64(len(vals)) / float64(maxW)
		out := make([]float64, maxW)
		for i := range out {
			out[i] = vals[int(float64(i)*step)]
		}
		return out
	}
	return vals
}

func latestSeriesValue(points []model.SeriesPoint) float64 {
	for i := len(points) - 1; i >= 0; i-- {
		if points[i].Value == points[i].Value { // skip NaN gaps
			return points[i].Value
		}
	}
	return 0
}
