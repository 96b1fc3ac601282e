package tui

import (
	"fmt"
	"math"
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

// economyIndicators lists the selectable indicator columns, in cycle order.
var economyIndicators = []struct {
	Name  string
	Value func(model.EconomicRow) float64
}{
	{"GDP per capita", func(r model.EconomicRow) float64 { return r.GDPPerCapita }},
	{"CPI", func(r model.EconomicRow) float64 { return r.CPI }},
	{"Inflation rate", func(r model.EconomicRow) float64 { return r.InflationRate }},
	{"GDP growth", func(r model.EconomicRow) float64 { return r.GDPGrowth }},
	{"Food inflation", func(r model.EconomicRow) float64 { return r.FoodInflation }},
	{"Housing inflation", func(r model.EconomicRow) float64 { return r.HousingInflation }},
	{"Transport inflation", func(r model.EconomicRow) float64 { return r.TransportInflation }},
}

// economyState tracks the economy tab: joined macro rows, the correlation
// matrix, and which indicator/year the bar chart shows.
type economyState struct {
	indicatorIdx int
	yearIdx      int
	years        []int

	rows     []model.EconomicRow
	summary  model.EconomicSummary
	corr     model.HeatGrid
	profiles []model.CountryProfile
}

func (a *App) recomputeEconomy() {
	a.economy.rows = pipeline.CombineEconomic(a.filteredEconomic(), a.filteredInflation())
	a.economy.summary = pipeline.SummarizeEconomy(a.economy.rows)
	a.economy.corr = pipeline.Correlation(a.economy.rows)
	a.economy.profiles = pipeline.Profiles(a.economy.rows)

	seen := map[int]bool{}
	a.economy.years = a.economy.years[:0]
	for _, r := range a.economy.rows {
		if !seen[r.Year] {
			seen[r.Year] = true
			a.economy.years = append(a.economy.years, r.Year)
		}
	}
	sort.Ints(a.economy.years)
	if a.economy.yearIdx >= len(a.economy.years) {
		a.economy.yearIdx = len(a.economy.years) - 1
	}
}

func (a App) updateEconomyKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "i":
		a.economy.indicatorIdx = (a.economy.indicatorIdx + 1) % len(economyIndicators)
	case "]":
		if n := len(a.economy.years); n > 0 {
			a.economy.yearIdx = (a.economy.yearIdx + 1) % n
		}
	case "[":
		if n := len(a.economy.years); n > 0 {
			a.economy.yearIdx = (a.economy.yearIdx - 1 + n) % n
		}
	}
	return a, nil
}

func (a App) renderEconomyTab(cw int) string {
	t := theme.Active
	s := a.economy.summary
	var b strings.Builder

	// Row 1: Latest-year averages
	cards := []struct{ Label, Value, Caption string }{
		{"GDP/Capita", cli.FormatUSD(s.AvgGDPPerCapita), fmt.Sprintf("avg, %d", s.Year)},
		{"Growth", cli.FormatSignedRate(s.AvgGrowth), fmt.Sprintf("avg, %d", s.Year)},
		{"Inflation", cli.FormatRate(s.AvgInflation), fmt.Sprintf("avg, %d", s.Year)},
		{"Food Infl.", cli.FormatRate(s.AvgFoodInflation), fmt.Sprintf("avg, %d", s.Year)},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Selected indicator by country for the selected year
	ind := economyIndicators[a.economy.indicatorIdx]
	if len(a.economy.years) > 0 {
		year := a.economy.years[a.economy.yearIdx]
		var vals []float64
		var labels []string
		for _, r := range a.economy.rows {
			if r.Year != year {
				continue
			}
			v := ind.Value(r)
			if math.IsNaN(v) {
				continue
			}
			vals = append(vals, v)
			labels = append(labels, r.CountryCode)
		}
		b.WriteString(components.ContentCard(
			fmt.Sprintf("%s by Country, %d  (i indicator, [ ] year)", ind.Name, year),
			components.BarChart(vals, labels, t.Magenta, components.CardInnerWidth(cw), 9),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 3: Correlation matrix and country profiles
	halves := components.LayoutRow(cw, 2)
	left := components.ContentCard("Indicator Correlations",
		components.Heatmap(a.economy.corr, t.CorrelationColor, 14, 7, true),
		halves[0])

	var profBody strings.Builder
	for i, p := range a.economy.profiles {
		profBody.WriteString(lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).
			Render(fmt.Sprintf("%-12s", truncStr(p.Country, 12))))
		profBody.WriteString(components.Sparkline(p.Values, t.Cyan))
		if i < len(a.economy.profiles)-1 {
			profBody.WriteString("\n")
		}
	}
	right := components.ContentCard("Country Profiles (normalized)", profBody.String(), halves[1])
	b.WriteString(components.CardRow([]string{left, right}))

	return b.String()
}
