// Package summary rolls per-shipment results up into the company-level
// profitability summary.
package summary

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"freight-quote/core/assemble"
)

// Summary is the company-wide roll-up of one quoting run
type Summary struct {
	// Company is the report label supplied by the caller
	Company string `json:"company"`

	// GeneratedAt is the generation timestamp supplied by the caller
	GeneratedAt time.Time `json:"generated_at"`

	// ShipmentCount is the number of shipments in the batch
	ShipmentCount int `json:"shipment_count"`

	// AvgWeightKG and AvgDistanceKM are batch averages, rounded to
	// two decimals, zero for an empty batch
	AvgWeightKG   float64 `json:"avg_weight_kg"`
	AvgDistanceKM float64 `json:"avg_distance_km"`

	// Revenue totals. Null per-shipment revenue counts as zero.
	TotalTariffRevenue   decimal.Decimal `json:"total_tariff_revenue"`
	TotalSurcharge       decimal.Decimal `json:"total_surcharge"`
	TotalHandlingRevenue decimal.Decimal `json:"total_handling_revenue"`
	TotalLastMileRevenue decimal.Decimal `json:"total_last_mile_revenue"`

	// GrossRevenue is the sum of all revenue totals
	GrossRevenue decimal.Decimal `json:"gross_revenue"`

	// Cost totals
	TotalTrunkCost     decimal.Decimal `json:"total_trunk_cost"`
	TotalFirstMileCost decimal.Decimal `json:"total_first_mile_cost"`
	TotalLastMileCost  decimal.Decimal `json:"total_last_mile_cost"`
	TotalHandlingCost  decimal.Decimal `json:"total_handling_cost"`

	// VariableCost is the sum of all cost totals
	VariableCost decimal.Decimal `json:"variable_cost"`

	// FixedInHouseCost is the fixed monthly in-house cost applied to
	// the run
	FixedInHouseCost decimal.Decimal `json:"fixed_in_house_cost"`

	// MonthlyProfit is gross revenue minus variable and fixed costs
	MonthlyProfit decimal.Decimal `json:"monthly_profit"`

	// Margin is the profit-to-gross-revenue ratio, zero when gross
	// revenue is zero
	Margin decimal.Decimal `json:"margin"`
}

// Aggregate computes the summary for a result batch. It is a pure
// function: aggregating the same batch twice yields identical
// summaries, and no input is mutated. The caller supplies the
// generation timestamp.
func Aggregate(results []assemble.ShipmentResult, company string, fixedInHouse decimal.Decimal, generatedAt time.Time) Summary {
	s := Summary{
		Company:          company,
		GeneratedAt:      generatedAt,
		ShipmentCount:    len(results),
		FixedInHouseCost: fixedInHouse,
	}

	var totalWeight, totalDistance float64
	for _, r := range results {
		if r.TariffRevenue.Valid {
			s.TotalTariffRevenue = s.TotalTariffRevenue.Add(r.TariffRevenue.Decimal)
		}
		s.TotalSurcharge = s.TotalSurcharge.Add(r.Surcharge)
		s.TotalHandlingRevenue = s.TotalHandlingRevenue.Add(r.HandlingRevenue)
		s.TotalLastMileRevenue = s.TotalLastMileRevenue.Add(r.LastMileRevenue)

		s.TotalTrunkCost = s.TotalTrunkCost.Add(r.TrunkCost)
		s.TotalFirstMileCost = s.TotalFirstMileCost.Add(r.FirstMileCost)
		s.TotalLastMileCost = s.TotalLastMileCost.Add(r.LastMileCost)
		s.TotalHandlingCost = s.TotalHandlingCost.Add(r.HandlingCost)

		totalWeight += r.WeightKG
		totalDistance += r.DistanceKM
	}

	s.GrossRevenue = s.TotalTariffRevenue.
		Add(s.TotalSurcharge).
		Add(s.TotalHandlingRevenue).
		Add(s.TotalLastMileRevenue)
	s.VariableCost = s.TotalTrunkCost.
		Add(s.TotalFirstMileCost).
		Add(s.TotalLastMileCost).
		Add(s.TotalHandlingCost)
	s.MonthlyProfit = s.GrossRevenue.Sub(s.VariableCost).Sub(fixedInHouse)

	if !s.GrossRevenue.IsZero() {
		s.Margin = s.MonthlyProfit.Div(s.GrossRevenue)
	}

	if len(results) > 0 {
		s.AvgWeightKG = round2(totalWeight / float64(len(results)))
		s.AvgDistanceKM = round2(totalDistance / float64(len(results)))
	}

	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
