package tui

import (
	"fmt"
	"strings"

	"infla/internal/cli"
	"infla/internal/model"
	"infla/internal/pipeline"
	"infla/internal/refdata"
	"infla/internal/tui/components"
	"infla/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// categoriesState tracks the categories tab: main-category averages plus a
// drill-down into the subtree of one selected main category.
type categoriesState struct {
	mainIdx int

	averages []model.CategoryRate
	heat     model.HeatGrid
	yearHeat model.HeatGrid
	subtree  []model.CategoryRate
}

func (a *App) recomputeCategories() {
	records := a.filteredInflation()
	mains := pipeline.FilterInflation(records, pipeline.InflationFilter{Levels: []int{1}})

	a.categories.averages = pipeline.CategoryAverages(mains)
	a.categories.heat = pipeline.CategoryCountryHeat(mains)
	a.categories.yearHeat = pipeline.YearlyCategoryHeat(mains)

	products := refdata.MainProducts()
	if a.categories.mainIdx >= len(products) {
		a.categories.mainIdx = 0
	}
	selected := products[a.categories.mainIdx]
	a.categories.subtree = pipeline.CategoryAverages(pipeline.Subtree(records, selected.Code))
}

func (a App) updateCategoriesKey(key string) (tea.Model, tea.Cmd) {
	n := len(refdata.MainProducts())
	switch key {
	case "l":
		a.categories.mainIdx = (a.categories.mainIdx + 1) % n
		a.recomputeCategories()
	case "h":
		a.categories.mainIdx = (a.categories.mainIdx - 1 + n) % n
		a.recomputeCategories()
	}
	return a, nil
}

func (a App) renderCategoriesTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	// Row 1: Average rate per main category
	if len(a.categories.averages) > 0 {
		innerW := components.CardInnerWidth(cw)
		nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

		maxRate := 0.0
		for _, c := range a.categories.averages {
			if v := c.Value; v > maxRate {
				maxRate = v
			}
		}

		var body strings.Builder
		barW := innerW - 38
		if barW < 10 {
			barW = 10
		}
		for i, c := range a.categories.averages {
			w := 0
			if maxRate > 0 && c.Value > 0 {
				w = int(c.Value / maxRate * float64(barW))
			}
			bar := lipgloss.NewStyle().Foreground(t.RateColor(c.Value)).Background(t.Surface).
				Render(strings.Repeat("█", w) + strings.Repeat("░", barW-w))
			fmt.Fprintf(&body, "%s %s %s",
				nameStyle.Render(fmt.Sprintf("%-28s", truncStr(c.Name, 28))),
				bar,
				lipgloss.NewStyle().Foreground(t.RateColor(c.Value)).Background(t.Surface).Bold(true).
					Render(fmt.Sprintf("%7s", cli.FormatRate(c.Value))),
			)
			if i < len(a.categories.averages)-1 {
				body.WriteString("\n")
			}
		}
		b.WriteString(components.ContentCard("Average Rate by Category", body.String(), cw))
		b.WriteString("\n")
	}

	// Row 2: Category × country and category × year heatmaps
	halves := components.LayoutRow(cw, 2)
	left := components.ContentCard("Category × Country",
		components.Heatmap(a.categories.heat, t.RateColor, 18, 6, false),
		halves[0])
	right := components.ContentCard("Category × Year",
		components.Heatmap(a.categories.yearHeat, t.RateColor, 18, 7, false),
		halves[1])
	b.WriteString(components.CardRow([]string{left, right}))
	b.WriteString("\n")

	// Row 3: Drill-down into the selected main category
	products := refdata.MainProducts()
	selected := products[a.categories.mainIdx]
	if len(a.categories.subtree) > 0 {
		var body strings.Builder
		for i, c := range a.categories.subtree {
			indent := strings.Repeat("  ", refdata.LevelForCode(c.Code)-1)
			nameStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
			if c.Code == selected.Code {
				nameStyle = nameStyle.Foreground(t.TextPrimary).Bold(true)
			}
			fmt.Fprintf(&body, "%s %s",
				nameStyle.Render(fmt.Sprintf("%-40s", truncStr(indent+c.Name, 40))),
				lipgloss.NewStyle().Foreground(t.RateColor(c.Value)).Background(t.Surface).
					Render(fmt.Sprintf("%7s", cli.FormatRate(c.Value))),
			)
			if i < len(a.categories.subtree)-1 {
				body.WriteString("\n")
			}
		}
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Drill-down: %s  (h/l to cycle)", selected.Name),
			body.String(), cw))
	}

	return b.String()
}
