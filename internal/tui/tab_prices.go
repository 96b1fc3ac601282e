package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"infla/internal/cli"
	"infla/internal/model"
	"infla/internal/pipeline"
	"infla/internal/tui/components"
	"infla/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const pricesTopN = 10

// pricesState tracks the prices tab: food price aggregates over an optional
// single-year window. yearIdx -1 means all months.
type pricesState struct {
	yearIdx int
	years   []int

	records    []model.ProductPriceRecord
	summary    model.PriceSummary
	byCategory []model.CategoryPrice
	series     []model.CountryPriceSeries
	top        []model.ProductPriceRecord
}

func (a *App) recomputePrices() {
	all := a.filteredPrices()

	seen := map[int]bool{}
	a.prices.years = a.prices.years[:0]
	for _, r := range all {
		if !seen[r.Year] {
			seen[r.Year] = true
			a.prices.years = append(a.prices.years, r.Year)
		}
	}
	sort.Ints(a.prices.years)
	if a.prices.yearIdx >= len(a.prices.years) {
		a.prices.yearIdx = -1
	}

	records := all
	if a.prices.yearIdx >= 0 {
		year := a.prices.years[a.prices.yearIdx]
		from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
		records = pipeline.FilterPrices(all, pipeline.PriceFilter{From: from, To: to})
	}

	a.prices.records = records
	a.prices.summary = pipeline.SummarizePrices(records)
	a.prices.byCategory = pipeline.PricesByCategory(records)
	a.prices.series = pipeline.PriceSeries(records)
	a.prices.top = pipeline.TopProducts(records, pricesTopN)
}

func (a App) updatePricesKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "]":
		a.prices.yearIdx++
		if a.prices.yearIdx >= len(a.prices.years) {
			a.prices.yearIdx = -1
		}
		a.recomputePrices()
	case "[":
		a.prices.yearIdx--
		if a.prices.yearIdx < -1 {
			a.prices.yearIdx = len(a.prices.years) - 1
		}
		a.recomputePrices()
	}
	return a, nil
}

func (a App) pricesWindowLabel() string {
	if a.prices.yearIdx < 0 || a.prices.yearIdx >= len(a.prices.years) {
		return "all months"
	}
	return fmt.Sprintf("%d", a.prices.years[a.prices.yearIdx])
}

func (a App) renderPricesTab(cw int) string {
	t := theme.Active
	s := a.prices.summary
	var b strings.Builder

	// Row 1: Metric cards
	cards := []struct{ Label, Value, Caption string }{
		{"Avg Unit Price", cli.FormatEUR(s.AvgUnitPrice), a.pricesWindowLabel() + "  [ ] to cycle"},
		{"Category Infl.", cli.FormatRate(s.AvgCategoryInflation), "food categories"},
		{"Overall Infl.", cli.FormatRate(s.AvgOverallInflation), "headline context"},
		{"Deviation", cli.FormatSignedRate(s.AvgDeviation), "price vs category mean"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Average unit price per category
	if len(a.prices.byCategory) > 0 {
		innerW := components.CardInnerWidth(cw)
		barW := innerW - 42
		if barW < 10 {
			barW = 10
		}

		maxPrice := 0.0
		for _, c := range a.prices.byCategory {
			if v, _ := c.AvgPrice.Float64(); v > maxPrice {
				maxPrice = v
			}
		}

		var body strings.Builder
		for i, c := range a.prices.byCategory {
			v, _ := c.AvgPrice.Float64()
			w := 0
			if maxPrice > 0 {
				w = int(v / maxPrice * float64(barW))
			}
			fmt.Fprintf(&body, "%s %s %s",
				lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).
					Render(fmt.Sprintf("%-20s", truncStr(c.Category, 20))),
				lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).
					Render(strings.Repeat("█", w)+strings.Repeat("░", barW-w)),
				lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
					Render(fmt.Sprintf("%10s/%s", cli.FormatEUR(c.AvgPrice), c.Unit)),
			)
			if i < len(a.prices.byCategory)-1 {
				body.WriteString("\n")
			}
		}
		b.WriteString(components.ContentCard("Average Unit Price by Category", body.String(), cw))
		b.WriteString("\n")
	}

	// Row 3: Per-country price trend and most expensive products
	halves := components.LayoutRow(cw, 2)

	var trendBody strings.Builder
	for i, cs := range a.prices.series {
		vals := make([]float64, len(cs.Points))
		for j, p := range cs.Points {
			vals[j] = p.AvgPrice
		}
		trendBody.WriteString(lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render(fmt.Sprintf("%-12s", truncStr(cs.Country, 12))))
		trendBody.WriteString(components.Sparkline(vals, t.Green))
		if i < len(a.prices.series)-1 {
			trendBody.WriteString("\n")
		}
	}
	left := components.ContentCard("Price Trend by Country", trendBody.String(), halves[0])

	var topBody strings.Builder
	for i, r := range a.prices.top {
		fmt.Fprintf(&topBody, "%s %s %s",
			lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).
				Render(fmt.Sprintf("%-22s", truncStr(r.ProductName, 22))),
			lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
				Render(fmt.Sprintf("%-3s", r.CountryCode)),
			lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface).Bold(true).
				Render(fmt.Sprintf("%9s", cli.FormatEUR(r.PricePerUnit))),
		)
		if i < len(a.prices.top)-1 {
			topBody.WriteString("\n")
		}
	}
	right := components.ContentCard(fmt.Sprintf("Top %d by Unit Price", pricesTopN), topBody.String(), halves[1])

	b.WriteString(components.CardRow([]string{left, right}))
	return b.String()
}
