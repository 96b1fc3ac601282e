package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"infla/internal/model"
	"infla/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagExportDataset string
	flagExportOut     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a filtered dataset as CSV",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagExportDataset, "dataset", "", "Dataset to export (inflation, economic, prices)")
	exportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "", "Output file (default stdout)")
	_ = exportCmd.MarkFlagRequired("dataset")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	switch flagExportDataset {
	case model.DatasetInflation, model.DatasetEconomic, model.DatasetPrices:
	default:
		return fmt.Errorf("unknown dataset %q (want inflation, economic, or prices)", flagExportDataset)
	}

	var out io.Writer = os.Stdout
	if flagExportOut != "" {
		f, err := os.Create(flagExportOut)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	bundle := loadBundle()
	w := csv.NewWriter(out)

	var err error
	switch flagExportDataset {
	case model.DatasetInflation:
		err = exportInflation(w, bundle)
	case model.DatasetEconomic:
		err = exportEconomic(w, bundle)
	case model.DatasetPrices:
		err = exportPrices(w, bundle)
	}
	if err != nil {
		return err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	if flagExportOut != "" && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %s\n", flagExportOut)
	}
	return nil
}

func exportInflation(w *csv.Writer, bundle *model.Bundle) error {
	filter, err := inflationFilter()
	if err != nil {
		return err
	}
	records := pipeline.FilterInflation(bundle.Inflation, filter)

	header := []string{"country_code", "country_name", "product_code", "product_name",
		"date", "year", "month", "inflation_rate_yoy", "inflation_rate_mom",
		"price_index", "hierarchy_level", "parent_code"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.CountryCode, r.CountryName, r.ProductCode, r.ProductName,
			r.Date.Format("2006-01-02"),
			strconv.Itoa(r.Year), strconv.Itoa(r.Month),
			formatCSVFloat(r.YoY), formatCSVFloat(r.MoM), formatCSVFloat(r.PriceIndex),
			strconv.Itoa(r.Level), r.ParentCode,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportEconomic(w *csv.Writer, bundle *model.Bundle) error {
	filter, err := economicFilter()
	if err != nil {
		return err
	}
	records := pipeline.FilterEconomic(bundle.Economic, filter)

	header := []string{"country_code", "country_name", "year",
		"gdp_per_capita", "cpi", "inflation_rate", "gdp_growth"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.CountryCode, r.CountryName, strconv.Itoa(r.Year),
			formatCSVFloat(r.GDPPerCapita), formatCSVFloat(r.CPI),
			formatCSVFloat(r.InflationRate), formatCSVFloat(r.GDPGrowth),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportPrices(w *csv.Writer, bundle *model.Bundle) error {
	filter, err := priceFilter(nil, nil)
	if err != nil {
		return err
	}
	records := pipeline.FilterPrices(bundle.Prices, filter)

	header := []string{"record_id", "product_id", "product_name", "brand",
		"country_code", "country_name", "food_category", "price", "currency",
		"price_per_unit", "unit", "date", "year", "month", "nutrition_grade",
		"category_inflation", "overall_inflation", "gdp_per_capita",
		"gdp_growth", "price_deviation"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.FormatInt(r.RecordID, 10), strconv.FormatInt(r.ProductID, 10),
			r.ProductName, r.Brand, r.CountryCode, r.CountryName, r.FoodCategory,
			r.Price.StringFixed(2), r.Currency, r.PricePerUnit.StringFixed(2),
			r.Unit, r.Date.Format("2006-01-02"),
			strconv.Itoa(r.Year), strconv.Itoa(r.Month), r.NutritionGrade,
			formatCSVFloat(r.CategoryInflation), formatCSVFloat(r.OverallInflation),
			formatCSVFloat(r.GDPPerCapita), formatCSVFloat(r.GDPGrowth),
			formatCSVFloat(r.PriceDeviation),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func formatCSVFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
