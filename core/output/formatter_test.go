package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"freight-quote/core/assemble"
	"freight-quote/core/location"
	"freight-quote/core/summary"
)

func strp(s string) *string { return &s }

func sampleResult() assemble.ShipmentResult {
	return assemble.ShipmentResult{
		Origin: location.Resolved{
			Name:       "Santiago",
			CityID:     strp("10"),
			RegionID:   strp("1"),
			RegionName: strp("Metropolitana"),
			PostalCode: strp("8320000"),
		},
		Destination: location.Resolved{
			// Unmatched side: identifiers stay nil.
			Name: "Atlantis",
		},
		Schedule:      "A",
		WeightKG:      10,
		DeliveryType:  "Home Delivery",
		ServiceType:   "Express",
		ServiceID:     strp("1"),
		TariffRevenue: decimal.NullDecimal{Decimal: decimal.NewFromInt(500), Valid: true},
		Surcharge:     decimal.NewFromInt(500),
		TotalCost:     decimal.NewFromInt(200),
	}
}

func TestResultRowMatchesColumnContract(t *testing.T) {
	row := ResultRow(sampleResult())
	if len(row) != len(ResultColumns) {
		t.Fatalf("row has %d cells for %d columns", len(row), len(ResultColumns))
	}
}

func TestResultRowEmitsNulls(t *testing.T) {
	row := ResultRow(sampleResult())
	byColumn := make(map[string]*string, len(row))
	for i, c := range row {
		byColumn[ResultColumns[i]] = c
	}

	for _, col := range []string{
		"DESTINATION REGION", "DESTINATION CITY ID", "DESTINATION REGION ID",
		"DESTINATION POSTAL CODE", "DELIVERY TYPE ID", "NET REVENUE", "NET PROFIT",
	} {
		if byColumn[col] != nil {
			t.Errorf("%s = %q, want null", col, *byColumn[col])
		}
	}

	// Unmatched display name is still present, and margin guards to a
	// real zero rather than a null.
	if byColumn["DESTINATION CITY"] == nil || *byColumn["DESTINATION CITY"] != "Atlantis" {
		t.Errorf("DESTINATION CITY should keep the original name")
	}
	if byColumn["MARGIN %"] == nil || *byColumn["MARGIN %"] != "0" {
		t.Errorf("MARGIN %% should be 0, got %v", byColumn["MARGIN %"])
	}
	if byColumn["TARIFF REVENUE"] == nil || *byColumn["TARIFF REVENUE"] != "500" {
		t.Errorf("TARIFF REVENUE should be 500")
	}
}

func TestRenderCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderCSV(&buf, []assemble.ShipmentResult{sampleResult()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}
	if records[0][0] != "ORIGIN REGION" {
		t.Errorf("header = %v", records[0][:3])
	}
	if len(records[1]) != len(ResultColumns) {
		t.Errorf("row width = %d, want %d", len(records[1]), len(ResultColumns))
	}
}

func TestRenderJSONNullFields(t *testing.T) {
	report := &Report{
		RunID:   "test",
		Results: []assemble.ShipmentResult{sampleResult()},
		Summary: summary.Summary{Company: "Acme"},
	}

	var buf bytes.Buffer
	if err := RenderJSON(&buf, report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	results := decoded["results"].([]interface{})
	first := results[0].(map[string]interface{})
	if v, present := first["net_profit"]; !present || v != nil {
		t.Errorf("net_profit should be present and null, got %v", v)
	}
}

func TestRenderCLISummary(t *testing.T) {
	report := &Report{
		RunID: "test",
		Summary: summary.Summary{
			Company:       "Acme",
			GeneratedAt:   time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
			ShipmentCount: 1,
			GrossRevenue:  decimal.NewFromInt(4000),
		},
		UnmatchedOrigins: []string{"Atlantis"},
	}

	var buf bytes.Buffer
	if err := RenderCLI(&buf, report, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Acme") {
		t.Errorf("summary should carry the company name:\n%s", out)
	}
	if !strings.Contains(out, "Atlantis") {
		t.Errorf("summary should surface unmatched origins:\n%s", out)
	}
}

func TestSanitizeCompany(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Logistics", "Acme_Logistics"},
		{"Acme & Co. S.A.", "Acme__Co_SA"},
		{"  padded  ", "padded"},
		{"dots.and/slashes", "dotsandslashes"},
	}
	for _, tt := range tests {
		if got := SanitizeCompany(tt.in); got != tt.want {
			t.Errorf("SanitizeCompany(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReportFileName(t *testing.T) {
	ts := time.Date(2026, 9, 1, 15, 4, 5, 0, time.UTC)
	got := ReportFileName("Acme Logistics", ts, "csv")
	want := "Quote_Report_Acme_Logistics_20260901_150405.csv"
	if got != want {
		t.Errorf("file name = %q, want %q", got, want)
	}
}
