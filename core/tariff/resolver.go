// Package tariff resolves per-kilogram rates from weight-bracket
// tariff schedules.
package tariff

import (
	"github.com/shopspring/decimal"

	"freight-quote/core/refdata"
)

// Rate resolves the applicable per-kilogram rate for a shipment.
//
// The bracket policy is two-sided and is literal business logic, not
// an approximation:
//
//  1. among the schedule's brackets whose weight threshold covers the
//     shipment (threshold >= weight), the MINIMUM rate applies;
//  2. when the shipment is heavier than every bracket, the MAXIMUM
//     rate across the schedule applies as a ceiling fallback.
//
// A schedule with no brackets yields ok=false: no tariff exists and
// the revenue side of the quote stays null.
func Rate(schedule string, weightKG float64, brackets []refdata.TariffBracket) (decimal.Decimal, bool) {
	var covering, all []decimal.Decimal
	for _, b := range brackets {
		if b.Schedule != schedule {
			continue
		}
		all = append(all, b.RatePerKG)
		if b.WeightKG >= weightKG {
			covering = append(covering, b.RatePerKG)
		}
	}

	if len(all) == 0 {
		return decimal.Zero, false
	}
	if len(covering) > 0 {
		return decimal.Min(covering[0], covering[1:]...), true
	}
	return decimal.Max(all[0], all[1:]...), true
}

// Revenue computes the client tariff revenue for a shipment: resolved
// rate times weight. A schedule with no brackets yields an invalid
// (null) amount, which downstream sums treat as zero.
func Revenue(schedule string, weightKG float64, brackets []refdata.TariffBracket) decimal.NullDecimal {
	rate, ok := Rate(schedule, weightKG, brackets)
	if !ok {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{
		Decimal: rate.Mul(decimal.NewFromFloat(weightKG)),
		Valid:   true,
	}
}
