// Package cmd - quote command
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"freight-quote/adapters/xlsx"
	"freight-quote/core/output"
	"freight-quote/core/pipeline"
	"freight-quote/core/refdata"
	"freight-quote/internal/config"
	"freight-quote/internal/logging"
)

var (
	outputFormat string
	companyName  string
	dataDir      string
	showDetails  bool
	writeFiles   bool
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote <shipments-file>",
	Short: "Price a shipment batch and report profitability",
	Long: `Price every shipment of a batch against the master tables and
produce the result table and profitability summary.

The shipments file is an xlsx workbook or a csv file with the columns
ORIGIN, DESTINATION, TARIFF_SCHEDULE, WEIGHT, DELIVERY_TYPE and
SERVICE_TYPE.

Examples:
  freight-quote quote shipments.xlsx --company "Acme Logistics"
  freight-quote quote shipments.csv --format json
  freight-quote quote shipments.xlsx --write`,
	Args: cobra.ExactArgs(1),
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, csv)")
	quoteCmd.Flags().StringVarP(&companyName, "company", "c", "", "company name for the summary")
	quoteCmd.Flags().StringVar(&dataDir, "data", "", "master table directory")
	quoteCmd.Flags().BoolVarP(&showDetails, "details", "d", true, "show the per-shipment result table")
	quoteCmd.Flags().BoolVarP(&writeFiles, "write", "w", false, "write csv and json report files")
}

func runQuote(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	dir := dataDir
	if dir == "" {
		dir = cfg.DataDir
	}
	company := companyName
	if company == "" {
		company = cfg.Company
	}
	format := outputFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}

	tables, err := xlsx.LoadMasters(dir)
	if err != nil {
		return err
	}
	snapshot, err := refdata.Build(tables)
	if err != nil {
		return err
	}

	batch, err := xlsx.LoadShipments(args[0])
	if err != nil {
		return err
	}

	report, err := pipeline.Run(batch, snapshot, pipeline.Options{
		Company:             company,
		FirstMileMonthly:    cfg.FixedCosts.FirstMileMonthly,
		FixedInHouseMonthly: cfg.FixedCosts.InHouseMonthly,
	})
	if err != nil {
		return err
	}

	if err := output.Render(os.Stdout, output.Format(format), report, showDetails); err != nil {
		return err
	}

	if writeFiles {
		return writeReportFiles(report, company, cfg.Output.Directory)
	}
	return nil
}

// writeReportFiles exports the result table as CSV and the full report
// as JSON next to each other in the output directory
func writeReportFiles(report *output.Report, company, dir string) error {
	now := time.Now()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	csvPath := filepath.Join(dir, output.ReportFileName(company, now, "csv"))
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return err
	}
	if err := output.RenderCSV(csvFile, report.Results); err != nil {
		csvFile.Close()
		return err
	}
	if err := csvFile.Close(); err != nil {
		return err
	}

	jsonPath := filepath.Join(dir, output.ReportFileName(company, now, "json"))
	jsonFile, err := os.Create(jsonPath)
	if err != nil {
		return err
	}
	if err := output.RenderJSON(jsonFile, report); err != nil {
		jsonFile.Close()
		return err
	}
	if err := jsonFile.Close(); err != nil {
		return err
	}

	logging.Sugar.Infow("report files written", "csv", csvPath, "json", jsonPath)
	fmt.Printf("\nReport written to %s and %s\n", csvPath, jsonPath)
	return nil
}
