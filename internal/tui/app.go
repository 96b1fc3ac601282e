// Package tui provides the interactive Bubble Tea dashboard for infla.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"infla/internal/config"
	"infla/internal/dataset"
	"infla/internal/model"
	"infla/internal/pipeline"
	"infla/internal/quality"
	"infla/internal/store"
	"infla/internal/tui/components"
	"infla/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// BundleLoadedMsg is sent when the dataset loader finishes.
type BundleLoadedMsg struct {
	Bundle   *model.Bundle
	LoadTime time.Duration
}

// ProgressMsg carries one loader progress line.
type ProgressMsg struct {
	Line string
}

// App is the root Bubble Tea model.
type App struct {
	cfg          config.Config
	snapshotPath string
	countries    []string
	noCache      bool

	// Data
	bundle   *model.Bundle
	loaded   bool
	loading  bool
	loadTime time.Duration

	// Pre-computed per-tab aggregates (see recompute)
	overview   overviewState
	categories categoriesState
	economy    economyState
	prices     pricesState
	qual       qualityState
	settings   settingsState

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	// Loading — channel-based progress subscription
	spinner      spinner.Model
	progressLine string
	loadSub      chan tea.Msg
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 180
	minContentHeight = 5
)

// NewApp creates the dashboard model. countries narrows every tab; nil
// means all eight.
func NewApp(cfg config.Config, snapshotPath string, countries []string, noCache bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		cfg:          cfg,
		snapshotPath: snapshotPath,
		countries:    countries,
		noCache:      noCache,
		needSetup:    !config.Exists(),
		spinner:      sp,
		loadSub:      make(chan tea.Msg, 1),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadBundleCmd(a.cfg, a.snapshotPath, a.noCache, a.loadSub),
		a.spinner.Tick,
		tickCmd(),
	)
}

func (a *App) ttl() time.Duration {
	minutes := a.cfg.General.CacheTTLMinutes
	if minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}

// recompute rebuilds every tab's aggregates from the loaded bundle and the
// current filter state. Cheap enough to run on every filter keystroke.
func (a *App) recompute() {
	if a.bundle == nil {
		return
	}
	a.recomputeOverview()
	a.recomputeCategories()
	a.recomputeEconomy()
	a.recomputePrices()
	a.qual.report = quality.Run(a.bundle, a.cfg.Quality.MinTotalRows)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case BundleLoadedMsg:
		a.bundle = msg.Bundle
		a.loaded = true
		a.loading = false
		a.loadTime = msg.LoadTime
		a.recompute()

		// Activate first-run setup after the first load
		if a.needSetup && a.setupForm == nil {
			a.setupForm = newSetupForm(&a.setupVals, a.cfg)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case ProgressMsg:
		a.progressLine = msg.Line
		return a, waitForLoadMsg(a.loadSub)

	case spinner.TickMsg:
		if !a.loaded || a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		// Auto-reload once the snapshot TTL lapses.
		if a.loaded && !a.loading && a.bundle != nil && a.staleData() {
			a.loading = true
			cmds = append(cmds, loadBundleCmd(a.cfg, a.snapshotPath, true, a.loadSub), a.spinner.Tick)
		}
		return a, tea.Batch(cmds...)
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

// staleData reports whether the oldest non-sample dataset is past the TTL.
// Sample data never goes stale; there is nothing fresher to fetch.
func (a App) staleData() bool {
	stale := false
	for _, r := range a.bundle.Loads() {
		if r.Source == model.SourceSample {
			continue
		}
		if time.Since(r.FetchedAt) > a.ttl() {
			stale = true
		}
	}
	return stale
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if !a.loaded {
		return a, nil
	}

	// First-run setup wizard intercepts all keys
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if key == "q" {
		return a, tea.Quit
	}

	// Manual reload
	if key == "r" && !a.loading {
		a.loading = true
		a.progressLine = ""
		return a, tea.Batch(loadBundleCmd(a.cfg, a.snapshotPath, true, a.loadSub), a.spinner.Tick)
	}

	// Cycle theme
	if key == "t" {
		next := theme.Next(theme.Active.Name)
		theme.SetActive(next.Name)
		a.cfg.Appearance.Theme = next.Name
		cfg, _ := config.Load()
		cfg.Appearance.Theme = next.Name
		_ = config.Save(cfg)
		return a, nil
	}

	// Tab navigation
	switch key {
	case "tab", "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "shift+tab", "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "1", "2", "3", "4", "5", "6":
		a.activeTab = int(key[0] - '1')
		return a, nil
	}
	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
	}

	// Per-tab keys
	switch a.activeTab {
	case tabOverview:
		return a.updateOverviewKey(key)
	case tabCategories:
		return a.updateCategoriesKey(key)
	case tabEconomy:
		return a.updateEconomyKey(key)
	case tabPrices:
		return a.updatePricesKey(key)
	case tabQuality:
		return a.updateQualityKey(key)
	case tabSettings:
		return a.updateSettingsKey(key)
	}
	return a, nil
}

// Tab indexes match components.Tabs order.
const (
	tabOverview = iota
	tabCategories
	tabEconomy
	tabPrices
	tabQuality
	tabSettings
)

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.cfg = a.setupVals.apply(a.cfg)
		a.needSetup = false
		a.setupForm = nil
		// A fresh warehouse config deserves a fresh load.
		a.loading = true
		return a, tea.Batch(loadBundleCmd(a.cfg, a.snapshotPath, true, a.loadSub), a.spinner.Tick)
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  infla needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spinnerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ infla"))
	b.WriteString(subtitleStyle.Render(" · Inflation Analytics"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	if a.progressLine != "" {
		b.WriteString(subtitleStyle.Render(" " + a.progressLine))
	} else {
		b.WriteString(subtitleStyle.Render(" Loading datasets..."))
	}

	card := cardStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"o c e p u x", "Jump to tab"},
		{"1-6", "Jump to tab by number"},
		{"tab / shift+tab", "Next / previous tab"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-16s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Per tab"))
	b.WriteString("\n")
	tabBindings := []struct{ key, desc string }{
		{"[ ]", "Cycle year / month window"},
		{"h l", "Cycle main category (Categories)"},
		{"i", "Cycle indicator (Economy)"},
		{"s", "Cycle status filter (Quality)"},
		{"j k / enter", "Navigate settings"},
	}
	for _, bind := range tabBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-16s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"r", "Reload data"},
		{"t", "Cycle theme"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-16s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	dataAge := a.dataAge()
	statusBar := components.RenderStatusBar(w, a.bundle, dataAge, a.loading)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabCategories:
		content = a.renderCategoriesTab(cw)
	case tabEconomy:
		content = a.renderEconomyTab(cw)
	case tabPrices:
		content = a.renderPricesTab(cw)
	case tabQuality:
		content = a.renderQualityTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// dataAge describes the oldest dataset's age, for the status bar.
func (a App) dataAge() string {
	if a.bundle == nil {
		return ""
	}
	var oldest time.Time
	for _, r := range a.bundle.Loads() {
		if oldest.IsZero() || r.FetchedAt.Before(oldest) {
			oldest = r.FetchedAt
		}
	}
	if oldest.IsZero() {
		return ""
	}
	age := time.Since(oldest)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	default:
		return fmt.Sprintf("%dh %dm ago", int(age.Hours()), int(age.Minutes())%60)
	}
}

// ─── Filters ────────────────────────────────────────────────────

// filteredInflation narrows the inflation dataset to the selected countries.
func (a App) filteredInflation() []model.InflationRecord {
	return pipeline.FilterInflation(a.bundle.Inflation, pipeline.InflationFilter{Countries: a.countries})
}

func (a App) filteredEconomic() []model.EconomicRecord {
	return pipeline.FilterEconomic(a.bundle.Economic, pipeline.EconomicFilter{Countries: a.countries})
}

func (a App) filteredPrices() []model.ProductPriceRecord {
	return pipeline.FilterPrices(a.bundle.Prices, pipeline.PriceFilter{Countries: a.countries})
}

// ─── Messages and commands ──────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// loadBundleCmd runs the dataset loader in a background goroutine. It
// streams ProgressMsg updates and a final BundleLoadedMsg through sub.
func loadBundleCmd(cfg config.Config, snapshotPath string, noCache bool, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()

			// Non-blocking send so the loader is never stalled on the UI.
			progress := func(line string) {
				select {
				case sub <- ProgressMsg{Line: line}:
				default:
				}
			}

			cache, err := store.Open(snapshotPath)
			if err != nil {
				cache = nil
			}
			loader := dataset.NewLoader(cfg, cache)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			bundle := loader.LoadBundle(ctx, dataset.Options{NoCache: noCache, Progress: progress})
			cancel()
			_ = loader.Close()
			if cache != nil {
				_ = cache.Close()
			}

			sub <- BundleLoadedMsg{Bundle: bundle, LoadTime: time.Since(start)}
		}()

		// Block until the first message (ProgressMsg or BundleLoadedMsg)
		return <-sub
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader
// goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

// ─── Mouse support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1. Hitboxes
// mirror RenderTabBar: one leading space, two spaces between tabs.
func (a App) tabAtX(x int) int {
	pos := 1
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 2
	}
	return -1
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color
// so gaps between cards keep the app background.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
