// Package output renders quoting reports for the surrounding layer.
// It fixes the result-table column contract and produces human and
// machine-readable outputs.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"freight-quote/core/assemble"
	"freight-quote/core/summary"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable report
	FormatCLI Format = "cli"

	// FormatJSON is the machine-readable full report
	FormatJSON Format = "json"

	// FormatCSV is the result table alone
	FormatCSV Format = "csv"
)

// Report is the complete output of one quoting run
type Report struct {
	// RunID identifies the run
	RunID string `json:"run_id"`

	// Results are the per-shipment rows, in input order
	Results []assemble.ShipmentResult `json:"results"`

	// Summary is the company-level roll-up
	Summary summary.Summary `json:"summary"`

	// UnmatchedOrigins and UnmatchedDestinations are the capped
	// unresolved-name diagnostics
	UnmatchedOrigins      []string `json:"unmatched_origins,omitempty"`
	UnmatchedDestinations []string `json:"unmatched_destinations,omitempty"`

	// Metadata contains execution context
	Metadata ReportMetadata `json:"metadata"`
}

// ReportMetadata contains execution context
type ReportMetadata struct {
	// Timestamp is when the run was performed
	Timestamp string `json:"timestamp"`

	// Duration is how long the run took
	Duration string `json:"duration"`

	// Version is the tool version
	Version string `json:"version"`
}

// ResultColumns is the fixed, ordered column contract of the result
// table. Columns the pipeline could not populate are emitted as null
// cells, never dropped.
var ResultColumns = []string{
	"ORIGIN REGION", "DESTINATION REGION", "ORIGIN CITY", "DESTINATION CITY",
	"ORIGIN POSTAL CODE", "DESTINATION POSTAL CODE", "TARIFF SCHEDULE", "WEIGHT",
	"DELIVERY TYPE", "SERVICE TYPE", "ORIGIN CITY ID", "DESTINATION CITY ID",
	"ORIGIN REGION ID", "DESTINATION REGION ID", "SERVICE ID", "DELIVERY TYPE ID",
	"TARIFF REVENUE", "SURCHARGE", "HANDLING REVENUE", "LAST MILE REVENUE",
	"NET REVENUE", "TRUNK COST", "FIRST MILE COST", "LAST MILE COST",
	"HANDLING COST", "TOTAL COST", "NET PROFIT", "MARGIN %", "DISTANCE KM",
}

// ResultRow projects one result onto ResultColumns. Nil cells are
// nulls: unresolved identifiers and missing tariff revenue.
func ResultRow(r assemble.ShipmentResult) []*string {
	return []*string{
		r.Origin.RegionName,
		r.Destination.RegionName,
		cell(r.Origin.Name),
		cell(r.Destination.Name),
		r.Origin.PostalCode,
		r.Destination.PostalCode,
		cell(r.Schedule),
		cell(formatFloat(r.WeightKG)),
		cell(r.DeliveryType),
		cell(r.ServiceType),
		r.Origin.CityID,
		r.Destination.CityID,
		r.Origin.RegionID,
		r.Destination.RegionID,
		r.ServiceID,
		r.DeliveryTypeID,
		nullable(r.TariffRevenue.Valid, r.TariffRevenue.Decimal.String),
		cell(r.Surcharge.String()),
		cell(r.HandlingRevenue.String()),
		cell(r.LastMileRevenue.String()),
		nullable(r.NetRevenue.Valid, r.NetRevenue.Decimal.String),
		cell(r.TrunkCost.String()),
		cell(r.FirstMileCost.String()),
		cell(r.LastMileCost.String()),
		cell(r.HandlingCost.String()),
		cell(r.TotalCost.String()),
		nullable(r.NetProfit.Valid, r.NetProfit.Decimal.String),
		cell(r.Margin.String()),
		cell(formatFloat(r.DistanceKM)),
	}
}

// Render writes the report in the requested format
func Render(w io.Writer, format Format, report *Report, showDetails bool) error {
	switch format {
	case FormatJSON:
		return RenderJSON(w, report)
	case FormatCSV:
		return RenderCSV(w, report.Results)
	default:
		return RenderCLI(w, report, showDetails)
	}
}

// RenderJSON writes the full report as indented JSON
func RenderJSON(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// RenderCSV writes the result table as CSV; null cells are empty
func RenderCSV(w io.Writer, results []assemble.ShipmentResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ResultColumns); err != nil {
		return err
	}
	for _, r := range results {
		record := make([]string, len(ResultColumns))
		for i, c := range ResultRow(r) {
			if c != nil {
				record[i] = *c
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// RenderCLI writes the summary view and, optionally, the result table
func RenderCLI(w io.Writer, report *Report, showDetails bool) error {
	s := report.Summary
	fmt.Fprintf(w, "Commercial Evaluation — %s\n", s.Company)
	fmt.Fprintf(w, "Generated: %s\n\n", s.GeneratedAt.Format("2006-01-02 15:04:05"))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Shipments\t%d\n", s.ShipmentCount)
	fmt.Fprintf(tw, "Average weight (kg)\t%s\n", formatFloat(s.AvgWeightKG))
	fmt.Fprintf(tw, "Average distance (km)\t%s\n", formatFloat(s.AvgDistanceKM))
	fmt.Fprintf(tw, "Tariff revenue\t%s\n", s.TotalTariffRevenue.StringFixed(2))
	fmt.Fprintf(tw, "Surcharges\t%s\n", s.TotalSurcharge.StringFixed(2))
	fmt.Fprintf(tw, "Handling revenue\t%s\n", s.TotalHandlingRevenue.StringFixed(2))
	fmt.Fprintf(tw, "Last-mile revenue\t%s\n", s.TotalLastMileRevenue.StringFixed(2))
	fmt.Fprintf(tw, "Gross revenue\t%s\n", s.GrossRevenue.StringFixed(2))
	fmt.Fprintf(tw, "Trunk cost\t%s\n", s.TotalTrunkCost.StringFixed(2))
	fmt.Fprintf(tw, "First-mile cost\t%s\n", s.TotalFirstMileCost.StringFixed(2))
	fmt.Fprintf(tw, "Last-mile cost\t%s\n", s.TotalLastMileCost.StringFixed(2))
	fmt.Fprintf(tw, "Handling cost\t%s\n", s.TotalHandlingCost.StringFixed(2))
	fmt.Fprintf(tw, "Variable cost\t%s\n", s.VariableCost.StringFixed(2))
	fmt.Fprintf(tw, "Fixed in-house cost\t%s\n", s.FixedInHouseCost.StringFixed(2))
	fmt.Fprintf(tw, "Monthly profit\t%s\n", s.MonthlyProfit.StringFixed(2))
	fmt.Fprintf(tw, "Margin\t%s%%\n", s.Margin.Mul(hundred).StringFixed(2))
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(report.UnmatchedOrigins) > 0 {
		fmt.Fprintf(w, "\nUnmatched origins (showing up to 10): %v\n", report.UnmatchedOrigins)
	}
	if len(report.UnmatchedDestinations) > 0 {
		fmt.Fprintf(w, "Unmatched destinations (showing up to 10): %v\n", report.UnmatchedDestinations)
	}

	if showDetails && len(report.Results) > 0 {
		fmt.Fprintln(w)
		if err := RenderCSV(w, report.Results); err != nil {
			return err
		}
	}
	return nil
}

func cell(s string) *string {
	return &s
}

func nullable(valid bool, render func() string) *string {
	if !valid {
		return nil
	}
	v := render()
	return &v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var hundred = decimal.NewFromInt(100)
