package components

import (
	"fmt"

	"infla/internal/model"
	"infla/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: data-source badge on the
// left, data age and hints on the right.
func RenderStatusBar(width int, bundle *model.Bundle, dataAge string, loading bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().Foreground(t.TextMuted).Width(width)

	left := " " + SourceBadge(bundle) + "  [r]eload  [t]heme  [?]help  [q]uit"
	if loading {
		left = " loading...  [q]uit"
	}

	right := ""
	if dataAge != "" {
		right = fmt.Sprintf("data: %s ", dataAge)
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}

// SourceBadge summarizes where the bundle's datasets came from. Mixed
// sources show the worst case first so a fallback is never hidden.
func SourceBadge(bundle *model.Bundle) string {
	t := theme.Active
	if bundle == nil {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("no data")
	}

	sample, cache, live := 0, 0, 0
	for _, r := range bundle.Loads() {
		switch r.Source {
		case model.SourceLive:
			live++
		case model.SourceCache:
			cache++
		default:
			sample++
		}
	}

	switch {
	case sample == 3:
		return lipgloss.NewStyle().Foreground(t.Yellow).Render("● sample")
	case sample > 0:
		return lipgloss.NewStyle().Foreground(t.Orange).Render("● mixed")
	case cache > 0 && live == 0:
		return lipgloss.NewStyle().Foreground(t.Cyan).Render("● cache")
	case cache > 0:
		return lipgloss.NewStyle().Foreground(t.Cyan).Render("● live+cache")
	default:
		return lipgloss.NewStyle().Foreground(t.Green).Render("● live")
	}
}
