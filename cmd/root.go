package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"infla/internal/config"
	"infla/internal/dataset"
	"infla/internal/model"
	"infla/internal/pipeline"
	"infla/internal/store"
	"infla/internal/tui/theme"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagCountries []string
	flagFrom      string
	flagTo        string
	flagSample    bool
	flagNoCache   bool
	flagDataDir   string
	flagQuiet     bool
)

// appCfg is the effective configuration: file, then .env/environment, then
// flags. Populated by initConfig before any RunE executes.
var appCfg config.Config

var rootCmd = &cobra.Command{
	Use:   "infla",
	Short: "Inflation analytics CLI",
	Long:  "Explore HICP inflation rates, macro indicators, and retail food prices across eight EU countries.",
	RunE:  runOverview,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringSliceVarP(&flagCountries, "countries", "c", nil, "Filter to countries (names, comma-separated)")
	rootCmd.PersistentFlags().StringVar(&flagFrom, "from", "", "Start of the window (YYYY or YYYY-MM)")
	rootCmd.PersistentFlags().StringVar(&flagTo, "to", "", "End of the window (YYYY or YYYY-MM)")
	rootCmd.PersistentFlags().BoolVar(&flagSample, "sample", false, "Force sample data, skip the warehouse")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Bypass snapshot reads, fetch fresh")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory for the snapshot cache")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// initConfig assembles the effective config. A .env in the working directory
// loads first so INFLA_* entries there behave like real environment
// variables, matching how the warehouse credentials are provisioned.
func initConfig() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Config error, using defaults: %v\n", err)
	}
	cfg = config.ApplyEnv(cfg)

	if flagSample {
		cfg.General.UseSampleData = true
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	if len(flagCountries) == 0 && len(cfg.General.DefaultCountries) > 0 {
		flagCountries = cfg.General.DefaultCountries
	}

	theme.SetActive(cfg.Appearance.Theme)
	appCfg = cfg
}

// dataDir resolves the snapshot directory: flag, then env/config, then XDG.
func dataDir() string {
	if appCfg.General.DataDir != "" {
		return appCfg.General.DataDir
	}
	return config.DefaultDataDir()
}

func snapshotPath() string {
	return filepath.Join(dataDir(), "snapshot.db")
}

// loadBundle is the shared data loading path used by all commands. The
// snapshot cache is best-effort; a broken cache degrades to warehouse or
// sample data rather than failing the command.
func loadBundle() *model.Bundle {
	cache, err := store.Open(snapshotPath())
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Snapshot cache unavailable: %v\n", err)
		}
		cache = nil
	}
	if cache != nil {
		defer cache.Close()
	}

	loader := dataset.NewLoader(appCfg, cache)
	defer loader.Close()

	opts := dataset.Options{NoCache: flagNoCache}
	if !flagQuiet {
		opts.Progress = func(msg string) {
			fmt.Fprintf(os.Stderr, "  %s\n", msg)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	bundle := loader.LoadBundle(ctx, opts)
	printSourceNotices(bundle)
	return bundle
}

// printSourceNotices tells the user which datasets fell back to sample
// data. Derived from the typed load results, not from progress text.
func printSourceNotices(bundle *model.Bundle) {
	if flagQuiet {
		return
	}
	for _, r := range bundle.Loads() {
		if r.UsedFallback() {
			fmt.Fprintf(os.Stderr, "  %s: using sample data: %v\n", r.Dataset, r.FallbackReason)
		}
	}
}

// yearWindow parses --from/--to down to calendar years. Zero means
// unbounded.
func yearWindow() (int, int, error) {
	from, err := parseYear(flagFrom)
	if err != nil {
		return 0, 0, fmt.Errorf("--from: %w", err)
	}
	to, err := parseYear(flagTo)
	if err != nil {
		return 0, 0, fmt.Errorf("--to: %w", err)
	}
	if from != 0 && to != 0 && from > to {
		return 0, 0, fmt.Errorf("--from %d is after --to %d", from, to)
	}
	return from, to, nil
}

// monthWindow parses --from/--to at month granularity. A bare year expands
// to its first (from) or last (to) month. Zero times mean unbounded.
func monthWindow() (time.Time, time.Time, error) {
	from, err := parseMonth(flagFrom, false)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--from: %w", err)
	}
	to, err := parseMonth(flagTo, true)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--to: %w", err)
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("--from %s is after --to %s", flagFrom, flagTo)
	}
	return from, to, nil
}

func parseYear(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if i := strings.IndexByte(s, '-'); i >= 0 {
		s = s[:i]
	}
	year, err := strconv.Atoi(s)
	if err != nil || year < 1900 || year > 2999 {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return year, nil
}

func parseMonth(s string, endOfYear bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01", s); err == nil {
		return t.UTC(), nil
	}
	year, err := parseYear(s)
	if err != nil {
		return time.Time{}, err
	}
	month := time.January
	if endOfYear {
		month = time.December
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
}

// inflationFilter builds the shared inflation filter from persistent flags.
func inflationFilter() (pipeline.InflationFilter, error) {
	from, to, err := yearWindow()
	if err != nil {
		return pipeline.InflationFilter{}, err
	}
	return pipeline.InflationFilter{
		Countries: flagCountries,
		FromYear:  from,
		ToYear:    to,
	}, nil
}

func economicFilter() (pipeline.EconomicFilter, error) {
	from, to, err := yearWindow()
	if err != nil {
		return pipeline.EconomicFilter{}, err
	}
	return pipeline.EconomicFilter{
		Countries: flagCountries,
		FromYear:  from,
		ToYear:    to,
	}, nil
}

func priceFilter(categories, brands []string) (pipeline.PriceFilter, error) {
	from, to, err := monthWindow()
	if err != nil {
		return pipeline.PriceFilter{}, err
	}
	return pipeline.PriceFilter{
		Countries:  flagCountries,
		Categories: categories,
		Brands:     brands,
		From:       from,
		To:         to,
	}, nil
}
