package tui

import (
	"fmt"
	"strings"
	"time"

	"infla/internal/config"
	"infla/internal/store"
	"infla/internal/tui/components"
	"infla/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldSampleMode
	settingsFieldCacheTTL
	settingsFieldPurge
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab cursor plus the purge confirmation.
type settingsState struct {
	cursor       int
	confirmPurge bool
	message      string
}

func (a App) updateSettingsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		a.settings.cursor = (a.settings.cursor + 1) % settingsFieldCount
		a.settings.confirmPurge = false
		a.settings.message = ""
	case "k", "up":
		a.settings.cursor = (a.settings.cursor - 1 + settingsFieldCount) % settingsFieldCount
		a.settings.confirmPurge = false
		a.settings.message = ""
	case "enter", " ":
		return a.settingsActivate()
	case "esc":
		a.settings.confirmPurge = false
		a.settings.message = ""
	}
	return a, nil
}

func (a App) settingsActivate() (tea.Model, tea.Cmd) {
	switch a.settings.cursor {
	case settingsFieldTheme:
		next := theme.Next(theme.Active.Name)
		theme.SetActive(next.Name)
		a.cfg.Appearance.Theme = next.Name
		a.settings.message = a.saveSetting(func(cfg *config.Config) {
			cfg.Appearance.Theme = next.Name
		})

	case settingsFieldSampleMode:
		a.cfg.General.UseSampleData = !a.cfg.General.UseSampleData
		mode := a.cfg.General.UseSampleData
		a.settings.message = a.saveSetting(func(cfg *config.Config) {
			cfg.General.UseSampleData = mode
		})

	case settingsFieldPurge:
		if !a.settings.confirmPurge {
			a.settings.confirmPurge = true
			return a, nil
		}
		a.settings.confirmPurge = false
		a.settings.message = a.purgeSnapshot()
	}
	return a, nil
}

// saveSetting applies mutate to the on-disk config and reports the outcome.
func (a App) saveSetting(mutate func(*config.Config)) string {
	cfg, _ := config.Load()
	mutate(&cfg)
	if err := config.Save(cfg); err != nil {
		return fmt.Sprintf("save failed: %v", err)
	}
	return "saved"
}

func (a App) purgeSnapshot() string {
	cache, err := store.Open(a.snapshotPath)
	if err != nil {
		return fmt.Sprintf("purge failed: %v", err)
	}
	defer cache.Close()
	if err := cache.Purge(); err != nil {
		return fmt.Sprintf("purge failed: %v", err)
	}
	return "snapshot purged; press r to reload"
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	sampleMode := "off"
	if a.cfg.General.UseSampleData {
		sampleMode = "on"
	}
	ttl := a.cfg.General.CacheTTLMinutes
	if ttl <= 0 {
		ttl = 60
	}

	purgeValue := "enter to purge"
	if a.settings.confirmPurge {
		purgeValue = "enter again to confirm"
	}

	fields := []struct {
		label string
		value string
		hint  string
	}{
		{"Theme", theme.Active.Name, "enter to cycle"},
		{"Sample mode", sampleMode, "enter to toggle"},
		{"Snapshot TTL", fmt.Sprintf("%d min", ttl), "edit via config file"},
		{"Purge snapshot", purgeValue, a.snapshotPath},
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	cursorStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	var body strings.Builder
	for i, f := range fields {
		cursor := "  "
		ls, vs := labelStyle, valueStyle
		if i == a.settings.cursor {
			cursor = cursorStyle.Render("▸ ")
			ls = ls.Foreground(t.TextPrimary)
			vs = vs.Foreground(t.AccentBright).Bold(true)
		}
		fmt.Fprintf(&body, "%s%s %s  %s",
			cursor,
			ls.Render(fmt.Sprintf("%-16s", f.label)),
			vs.Render(fmt.Sprintf("%-24s", truncStr(f.value, 24))),
			hintStyle.Render(truncStr(f.hint, components.CardInnerWidth(cw)-48)),
		)
		if i < len(fields)-1 {
			body.WriteString("\n")
		}
	}
	b.WriteString(components.ContentCard("Settings  (j/k move, enter apply)", body.String(), cw))
	b.WriteString("\n")

	// Session info card
	var info strings.Builder
	fmt.Fprintf(&info, "%s %s\n",
		labelStyle.Render(fmt.Sprintf("%-16s", "Config file")),
		hintStyle.Render(config.ConfigPath()))
	fmt.Fprintf(&info, "%s %s\n",
		labelStyle.Render(fmt.Sprintf("%-16s", "Load time")),
		valueStyle.Render(a.loadTime.Truncate(10*time.Millisecond).String()))
	for _, r := range a.bundle.Loads() {
		fmt.Fprintf(&info, "%s %s\n",
			labelStyle.Render(fmt.Sprintf("%-16s", r.Dataset)),
			valueStyle.Render(r.Describe()))
	}
	if a.settings.message != "" {
		info.WriteString(cursorStyle.Render(a.settings.message))
	}
	b.WriteString(components.ContentCard("Session", strings.TrimRight(info.String(), "\n"), cw))

	return b.String()
}
