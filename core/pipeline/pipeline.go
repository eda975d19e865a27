// Package pipeline orchestrates one quoting run: batch validation,
// location resolution, assembly, and aggregation.
package pipeline

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"freight-quote/core/assemble"
	"freight-quote/core/input"
	"freight-quote/core/location"
	"freight-quote/core/output"
	"freight-quote/core/refdata"
	"freight-quote/core/summary"
	"freight-quote/internal/logging"
)

// Version is the tool version stamped on reports
const Version = "0.1.0"

// Options are the per-run parameters
type Options struct {
	// Company labels the summary and the report file name
	Company string

	// FirstMileMonthly is the fixed monthly first-mile budget,
	// amortized equally across the batch
	FirstMileMonthly decimal.Decimal

	// FixedInHouseMonthly is the fixed monthly in-house cost charged
	// against the batch in the summary
	FixedInHouseMonthly decimal.Decimal
}

// Run processes one shipment batch against a reference snapshot.
//
// The run is synchronous and single-pass: requests flow through
// location resolution, assembly, and aggregation, and the result rows
// come back in input order, one per request. The only error Run
// returns is the fatal configuration error for a batch missing a
// required column; every reference lookup miss degrades inside the
// stages instead.
func Run(batch *refdata.Table, snapshot *refdata.Snapshot, opts Options) (*output.Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := logging.With(zap.String("run_id", runID))

	requests, err := input.Parse(batch)
	if err != nil {
		return nil, err
	}
	log.Info("batch accepted", zap.Int("shipments", len(requests)))

	shipments, unmatchedOrigins, unmatchedDestinations := location.Resolve(requests, snapshot)
	if len(unmatchedOrigins) > 0 || len(unmatchedDestinations) > 0 {
		log.Warn("unresolved locations",
			zap.Strings("origins", unmatchedOrigins),
			zap.Strings("destinations", unmatchedDestinations))
	}

	results := assemble.Assemble(shipments, snapshot, opts.FirstMileMonthly)
	sum := summary.Aggregate(results, opts.Company, opts.FixedInHouseMonthly, start)

	log.Info("run complete",
		zap.String("gross_revenue", sum.GrossRevenue.String()),
		zap.String("monthly_profit", sum.MonthlyProfit.String()),
		zap.Duration("duration", time.Since(start)))

	return &output.Report{
		RunID:                 runID,
		Results:               results,
		Summary:               sum,
		UnmatchedOrigins:      unmatchedOrigins,
		UnmatchedDestinations: unmatchedDestinations,
		Metadata: output.ReportMetadata{
			Timestamp: start.Format(time.RFC3339),
			Duration:  time.Since(start).String(),
			Version:   Version,
		},
	}, nil
}
