package tariff

import (
	"testing"

	"github.com/shopspring/decimal"

	"freight-quote/core/refdata"
)

func bracket(schedule string, weight float64, rate int64) refdata.TariffBracket {
	return refdata.TariffBracket{
		Schedule:  schedule,
		WeightKG:  weight,
		RatePerKG: decimal.NewFromInt(rate),
	}
}

func TestRateBracketPolicy(t *testing.T) {
	brackets := []refdata.TariffBracket{
		bracket("A", 50, 100),
		bracket("A", 100, 80),
		bracket("B", 10, 999),
	}

	tests := []struct {
		name     string
		schedule string
		weight   float64
		want     int64
		wantOK   bool
	}{
		{
			// Both brackets cover 30kg; the cheaper one wins.
			name:     "minimum rate among covering brackets",
			schedule: "A",
			weight:   30,
			want:     80,
			wantOK:   true,
		},
		{
			name:     "exact threshold counts as covering",
			schedule: "A",
			weight:   100,
			want:     80,
			wantOK:   true,
		},
		{
			// Heavier than every bracket: ceiling fallback to the
			// maximum rate of the schedule.
			name:     "overweight falls back to maximum rate",
			schedule: "A",
			weight:   120,
			want:     100,
			wantOK:   true,
		},
		{
			name:     "other schedules do not leak in",
			schedule: "B",
			weight:   5,
			want:     999,
			wantOK:   true,
		},
		{
			name:     "unknown schedule has no rate",
			schedule: "C",
			weight:   10,
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, ok := Rate(tt.schedule, tt.weight, brackets)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !rate.Equal(decimal.NewFromInt(tt.want)) {
				t.Errorf("rate = %s, want %d", rate, tt.want)
			}
		})
	}
}

func TestRateNonMonotonicRates(t *testing.T) {
	// The minimum-rate rule applies literally even when rates do not
	// increase with threshold.
	brackets := []refdata.TariffBracket{
		bracket("A", 50, 70),
		bracket("A", 100, 90),
	}

	rate, ok := Rate("A", 30, brackets)
	if !ok {
		t.Fatal("expected a rate")
	}
	if !rate.Equal(decimal.NewFromInt(70)) {
		t.Errorf("rate = %s, want 70", rate)
	}
}

func TestRateEmptyBrackets(t *testing.T) {
	if _, ok := Rate("A", 10, nil); ok {
		t.Error("expected no rate for an empty bracket set")
	}
}

func TestRevenue(t *testing.T) {
	brackets := []refdata.TariffBracket{bracket("A", 1000, 50)}

	revenue := Revenue("A", 10, brackets)
	if !revenue.Valid {
		t.Fatal("expected valid revenue")
	}
	if !revenue.Decimal.Equal(decimal.NewFromInt(500)) {
		t.Errorf("revenue = %s, want 500", revenue.Decimal)
	}
}

func TestRevenueUnknownScheduleIsNull(t *testing.T) {
	revenue := Revenue("missing", 10, nil)
	if revenue.Valid {
		t.Errorf("revenue = %s, want null", revenue.Decimal)
	}
}
