package input

import (
	"testing"

	"freight-quote/core/refdata"
	"freight-quote/internal/errors"
)

func batchTable(header []string, rows [][]string) *refdata.Table {
	return refdata.NewTable("shipments", header, rows)
}

var fullHeader = []string{
	"ORIGIN", "DESTINATION", "TARIFF_SCHEDULE", "WEIGHT", "DELIVERY_TYPE", "SERVICE_TYPE",
}

func TestParsePreservesRowOrder(t *testing.T) {
	batch := batchTable(fullHeader, [][]string{
		{"Santiago", "Arica", "A", "10", "Home Delivery", "Express"},
		{"Arica", "Santiago", "B", "20.5", "Pickup", "Standard"},
	})

	requests, err := Parse(batch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(requests))
	}
	if requests[0].Origin != "Santiago" || requests[1].Origin != "Arica" {
		t.Errorf("row order not preserved: %+v", requests)
	}
	if requests[1].WeightKG != 20.5 {
		t.Errorf("weight = %v, want 20.5", requests[1].WeightKG)
	}
}

func TestParseMissingRequiredColumnIsFatal(t *testing.T) {
	batch := batchTable(
		[]string{"ORIGIN", "DESTINATION", "TARIFF_SCHEDULE", "DELIVERY_TYPE", "SERVICE_TYPE"},
		[][]string{{"Santiago", "Arica", "A", "Home Delivery", "Express"}})

	_, err := Parse(batch)
	if err == nil {
		t.Fatal("expected configuration error for missing WEIGHT column")
	}
	if !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("error type = %v, want %v", err, errors.TypeConfig)
	}
}

func TestParseNonNumericWeightCoercesToZero(t *testing.T) {
	batch := batchTable(fullHeader, [][]string{
		{"Santiago", "Arica", "A", "heavy", "Home Delivery", "Express"},
	})

	requests, err := Parse(batch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requests[0].WeightKG != 0 {
		t.Errorf("weight = %v, want 0 for non-numeric input", requests[0].WeightKG)
	}
}

func TestParseHeaderFormattingDoesNotMatter(t *testing.T) {
	batch := batchTable(
		[]string{" origin ", "Destination", "tariff_schedule", " WEIGHT", "delivery_type", "service_type"},
		[][]string{{"Santiago", "Arica", "A", "10", "Home Delivery", "Express"}})

	requests, err := Parse(batch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requests[0].Schedule != "A" || requests[0].WeightKG != 10 {
		t.Errorf("request = %+v", requests[0])
	}
}
