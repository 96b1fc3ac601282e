package components

import (
	"fmt"
	"strings"

	"infla/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a progress bar with percentage, used on the loading
// screen.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	var barColor lipgloss.Color
	switch {
	case pct >= 0.8:
		barColor = t.AccentBright
	case pct >= 0.5:
		barColor = t.Accent
	default:
		barColor = t.Cyan
	}

	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// PassRateColor maps a quality pass rate (0-100) to a verdict color:
// green at 80+, amber above half, red below.
func PassRateColor(rate float64) string {
	t := theme.Active
	switch {
	case rate >= 80:
		return string(t.Green)
	case rate >= 50:
		return string(t.Yellow)
	default:
		return string(t.Red)
	}
}

// PassRateMeter renders the labeled quality gauge with a threshold marker.
func PassRateMeter(rate, threshold float64, width int) string {
	t := theme.Active

	if rate < 0 {
		rate = 0
	}
	if rate > 100 {
		rate = 100
	}

	barW := width - 18
	if barW < 10 {
		barW = 10
	}

	bar := progress.New(
		progress.WithSolidFill(PassRateColor(rate)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	rateStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(PassRateColor(rate))).Background(t.Surface).Bold(true)
	thresholdStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render("pass rate") +
		spaceStyle.Render(" ") +
		bar.ViewAs(rate/100) +
		spaceStyle.Render(" ") +
		rateStyle.Render(fmt.Sprintf("%5.1f%%", rate)) +
		spaceStyle.Render(" ") +
		thresholdStyle.Render(fmt.Sprintf("(goal %.0f%%)", threshold))
}
