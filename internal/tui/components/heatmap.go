package components

import (
	"fmt"
	"math"
	"strings"

	"infla/internal/model"
	"infla/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// ColorFunc maps a cell value to its color. Pass theme.Active.RateColor for
// rate grids and theme.Active.CorrelationColor for correlation matrices.
type ColorFunc func(v float64) lipgloss.Color

// Heatmap renders a labeled value grid. Row labels truncate to labelW; each
// cell prints the value over a color chosen by colorFor. NaN cells render
// dimmed.
func Heatmap(grid model.HeatGrid, colorFor ColorFunc, labelW, cellW int, abbrevCols bool) string {
	if len(grid.Rows) == 0 || len(grid.Cols) == 0 {
		return ""
	}
	t := theme.Active

	if cellW < 5 {
		cellW = 5
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	headStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	naStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder

	// Column header
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, "")))
	for _, col := range grid.Cols {
		name := col
		if abbrevCols {
			name = abbreviate(col, cellW-1)
		}
		b.WriteString(headStyle.Render(fmt.Sprintf("%*s", cellW, name)))
	}
	b.WriteString("\n")

	for i, row := range grid.Rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncate(row, labelW-1))))
		for _, v := range grid.Values[i] {
			if math.IsNaN(v) {
				b.WriteString(naStyle.Render(fmt.Sprintf("%*s", cellW, "·")))
				continue
			}
			cellStyle := lipgloss.NewStyle().Foreground(colorFor(v)).Background(t.Surface)
			b.WriteString(cellStyle.Render(fmt.Sprintf("%*.1f", cellW, v)))
		}
		if i < len(grid.Rows)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// abbreviate shortens a column label to its initials when it does not fit,
// so "Food Inflation" becomes "FI" in narrow correlation cells.
func abbreviate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	words := strings.Fields(s)
	if len(words) > 1 {
		var initials strings.Builder
		for _, w := range words {
			initials.WriteByte(w[0])
		}
		if initials.Len() <= limit {
			return initials.String()
		}
	}
	return truncate(s, limit)
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
