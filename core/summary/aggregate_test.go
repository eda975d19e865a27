package summary

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"freight-quote/core/assemble"
)

func mustEqual(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	w, err := decimal.NewFromString(want)
	if err != nil {
		t.Fatalf("bad expectation %q: %v", want, err)
	}
	if !got.Equal(w) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func valid(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: dec(s), Valid: true}
}

func sampleResults() []assemble.ShipmentResult {
	return []assemble.ShipmentResult{
		{
			WeightKG:        10,
			DistanceKM:      2000,
			TariffRevenue:   valid("500"),
			Surcharge:       dec("500"),
			HandlingRevenue: dec("1000"),
			LastMileRevenue: dec("2000"),
			TrunkCost:       dec("200"),
			FirstMileCost:   dec("1000000"),
			LastMileCost:    dec("2000"),
			HandlingCost:    dec("1000"),
		},
		{
			WeightKG:   30,
			DistanceKM: 1000,
			// Null tariff: counts as zero in the revenue totals.
			Surcharge:       dec("100"),
			HandlingRevenue: dec("0"),
			LastMileRevenue: dec("0"),
			TrunkCost:       dec("600"),
			FirstMileCost:   dec("1000000"),
			LastMileCost:    dec("0"),
			HandlingCost:    dec("0"),
		},
	}
}

func TestAggregateTotals(t *testing.T) {
	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	s := Aggregate(sampleResults(), "Acme Logistics", dec("2000000"), at)

	if s.Company != "Acme Logistics" {
		t.Errorf("company = %q", s.Company)
	}
	if !s.GeneratedAt.Equal(at) {
		t.Errorf("generated at = %v, want %v", s.GeneratedAt, at)
	}
	if s.ShipmentCount != 2 {
		t.Errorf("shipment count = %d, want 2", s.ShipmentCount)
	}

	mustEqual(t, "total tariff revenue", s.TotalTariffRevenue, "500")
	mustEqual(t, "total surcharge", s.TotalSurcharge, "600")
	mustEqual(t, "total handling revenue", s.TotalHandlingRevenue, "1000")
	mustEqual(t, "total last-mile revenue", s.TotalLastMileRevenue, "2000")
	mustEqual(t, "gross revenue", s.GrossRevenue, "4100")

	mustEqual(t, "total trunk cost", s.TotalTrunkCost, "800")
	mustEqual(t, "total first-mile cost", s.TotalFirstMileCost, "2000000")
	mustEqual(t, "total last-mile cost", s.TotalLastMileCost, "2000")
	mustEqual(t, "total handling cost", s.TotalHandlingCost, "1000")
	mustEqual(t, "variable cost", s.VariableCost, "2003800")

	// 4100 - 2003800 - 2000000
	mustEqual(t, "monthly profit", s.MonthlyProfit, "-3999700")

	if s.AvgWeightKG != 20 {
		t.Errorf("avg weight = %v, want 20", s.AvgWeightKG)
	}
	if s.AvgDistanceKM != 1500 {
		t.Errorf("avg distance = %v, want 1500", s.AvgDistanceKM)
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	results := sampleResults()

	first := Aggregate(results, "Acme", dec("2000000"), at)
	second := Aggregate(results, "Acme", dec("2000000"), at)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("aggregation is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAggregateEmptyBatchMarginGuard(t *testing.T) {
	at := time.Now()
	s := Aggregate(nil, "Acme", dec("2000000"), at)

	if s.ShipmentCount != 0 {
		t.Errorf("shipment count = %d, want 0", s.ShipmentCount)
	}
	mustEqual(t, "gross revenue", s.GrossRevenue, "0")
	// Division guard: gross revenue 0 means margin 0, never a fault.
	mustEqual(t, "margin", s.Margin, "0")
	mustEqual(t, "monthly profit", s.MonthlyProfit, "-2000000")
	if s.AvgWeightKG != 0 || s.AvgDistanceKM != 0 {
		t.Errorf("averages = %v/%v, want 0/0", s.AvgWeightKG, s.AvgDistanceKM)
	}
}

func TestAggregateDoesNotMutateInput(t *testing.T) {
	results := sampleResults()
	snapshot := make([]assemble.ShipmentResult, len(results))
	copy(snapshot, results)

	Aggregate(results, "Acme", dec("2000000"), time.Now())

	if !reflect.DeepEqual(results, snapshot) {
		t.Error("aggregation mutated its input")
	}
}

func TestAggregateAveragesRounded(t *testing.T) {
	results := []assemble.ShipmentResult{
		{WeightKG: 1}, {WeightKG: 1}, {WeightKG: 2},
	}
	s := Aggregate(results, "Acme", decimal.Zero, time.Now())

	// 4/3 rounds to two decimals
	if s.AvgWeightKG != 1.33 {
		t.Errorf("avg weight = %v, want 1.33", s.AvgWeightKG)
	}
}
