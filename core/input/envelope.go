// Package input provides the shipment batch envelope.
// It validates the raw quote table and turns it into shipment
// requests before any pipeline stage runs.
package input

import (
	"strconv"

	"freight-quote/core/refdata"
)

// Shipment batch column names
const (
	ColOrigin       = "ORIGIN"
	ColDestination  = "DESTINATION"
	ColSchedule     = "TARIFF_SCHEDULE"
	ColWeight       = "WEIGHT"
	ColDeliveryType = "DELIVERY_TYPE"
	ColServiceType  = "SERVICE_TYPE"
)

// RequiredColumns are the columns every shipment batch must carry.
// A batch missing any of them is rejected before processing begins.
var RequiredColumns = []string{
	ColOrigin,
	ColDestination,
	ColSchedule,
	ColWeight,
	ColDeliveryType,
	ColServiceType,
}

// ShipmentRequest is one raw shipment row. Requests are created once
// from the batch table and read-only downstream.
type ShipmentRequest struct {
	// Origin is the free-text origin location name
	Origin string `json:"origin"`

	// Destination is the free-text destination location name
	Destination string `json:"destination"`

	// Schedule is the tariff schedule identifier
	Schedule string `json:"tariff_schedule"`

	// WeightKG is the shipment weight; non-numeric input reads as 0
	WeightKG float64 `json:"weight_kg"`

	// DeliveryType is the delivery type display name
	DeliveryType string `json:"delivery_type"`

	// ServiceType is the service type display name
	ServiceType string `json:"service_type"`
}

// Parse validates the batch table and extracts one request per row,
// in row order. The only fatal condition is a structurally missing
// required column; cell-level problems degrade (weight coerces to 0).
func Parse(batch *refdata.Table) ([]ShipmentRequest, error) {
	if err := batch.Require(RequiredColumns...); err != nil {
		return nil, err
	}

	requests := make([]ShipmentRequest, 0, batch.Len())
	for i := 0; i < batch.Len(); i++ {
		weight, err := strconv.ParseFloat(batch.Cell(i, ColWeight), 64)
		if err != nil {
			weight = 0
		}
		requests = append(requests, ShipmentRequest{
			Origin:       batch.Cell(i, ColOrigin),
			Destination:  batch.Cell(i, ColDestination),
			Schedule:     batch.Cell(i, ColSchedule),
			WeightKG:     weight,
			DeliveryType: batch.Cell(i, ColDeliveryType),
			ServiceType:  batch.Cell(i, ColServiceType),
		})
	}
	return requests, nil
}
