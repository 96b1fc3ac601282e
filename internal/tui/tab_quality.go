package tui

import (
	"fmt"
	"strings"

	"infla/internal/cli"
	"infla/internal/quality"
	"infla/internal/tui/components"
	"infla/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// qualityStatusCycle is the s-key cycle: everything, then passes, then fails.
var qualityStatusCycle = []quality.Status{"", quality.StatusPass, quality.StatusFail}

// qualityState tracks the quality tab: the last computed report plus the
// status filter for the check list.
type qualityState struct {
	statusIdx int
	report    *quality.Report
}

func (a App) updateQualityKey(key string) (tea.Model, tea.Cmd) {
	if key == "s" {
		a.qual.statusIdx = (a.qual.statusIdx + 1) % len(qualityStatusCycle)
	}
	return a, nil
}

func (a App) renderQualityTab(cw int) string {
	t := theme.Active
	rep := a.qual.report
	if rep == nil {
		return ""
	}
	var b strings.Builder

	// Row 1: Metric cards
	cards := []struct{ Label, Value, Caption string }{
		{"Checks", cli.FormatCount(int64(len(rep.Checks))), "across 3 sources"},
		{"Passing", cli.FormatCount(int64(rep.Passing())), fmt.Sprintf("%.0f%% pass rate", rep.PassRate())},
		{"Failing", cli.FormatCount(int64(rep.Failing())), "need attention"},
		{"Total Rows", cli.FormatCount(int64(rep.TotalRows)), "loaded this session"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Pass-rate meter and source volumes
	halves := components.LayoutRow(cw, 2)
	meter := components.PassRateMeter(rep.PassRate(), 80, components.CardInnerWidth(halves[0]))
	left := components.ContentCard("Pass Rate", meter, halves[0])

	var volBody strings.Builder
	for i, v := range rep.Volumes {
		fmt.Fprintf(&volBody, "%s %s",
			lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).
				Render(fmt.Sprintf("%-14s", v.Source)),
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
				Render(fmt.Sprintf("%10s rows", cli.FormatNumber(int64(v.Rows)))),
		)
		if i < len(rep.Volumes)-1 {
			volBody.WriteString("\n")
		}
	}
	right := components.ContentCard("Source Volumes", volBody.String(), halves[1])
	b.WriteString(components.CardRow([]string{left, right}))
	b.WriteString("\n")

	// Row 3: Check list, narrowed by the status cycle
	status := qualityStatusCycle[a.qual.statusIdx]
	checks := rep.Filter("", status)

	filterLabel := "all"
	if status != "" {
		filterLabel = string(status)
	}

	var body strings.Builder
	if len(checks) == 0 {
		body.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render("No checks match this filter."))
	}
	for i, c := range checks {
		statusStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true)
		mark := "✓"
		if c.Status == quality.StatusFail {
			statusStyle = statusStyle.Foreground(t.Red)
			mark = "✗"
		}

		details := make([]string, 0, len(c.Details))
		for _, d := range c.Details {
			details = append(details, d.Label+"="+d.Value)
		}

		fmt.Fprintf(&body, "%s %s %s %s",
			statusStyle.Render(mark),
			lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).
				Render(fmt.Sprintf("%-26s", truncStr(c.Name, 26))),
			lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
				Render(fmt.Sprintf("%-10s", c.Source)),
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
				Render(truncStr(strings.Join(details, "  "), components.CardInnerWidth(cw)-40)),
		)
		if i < len(checks)-1 {
			body.WriteString("\n")
		}
	}
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Checks: %s  (s to cycle)", filterLabel),
		body.String(), cw))

	return b.String()
}
