// Package assemble joins resolved shipments against the reference
// snapshot and produces fully priced and costed shipment results.
package assemble

import (
	"github.com/shopspring/decimal"

	"freight-quote/core/location"
	"freight-quote/core/refdata"
	"freight-quote/core/tariff"
)

// ShipmentResult is one shipment after pricing and costing. Results
// are created once, one per request and in request order, and never
// mutated afterwards.
type ShipmentResult struct {
	// Origin and Destination carry the resolved location identifiers;
	// an unmatched side keeps its original name with nil identifiers
	Origin      location.Resolved `json:"origin"`
	Destination location.Resolved `json:"destination"`

	// Schedule is the tariff schedule identifier from the request
	Schedule string `json:"tariff_schedule"`

	// WeightKG is the shipment weight
	WeightKG float64 `json:"weight_kg"`

	// DeliveryType and ServiceType are the request display names
	DeliveryType string `json:"delivery_type"`
	ServiceType  string `json:"service_type"`

	// ServiceID and DeliveryTypeID are nil when the display name has
	// no master record
	ServiceID      *string `json:"service_id"`
	DeliveryTypeID *string `json:"delivery_type_id"`

	// Revenue line items. TariffRevenue and NetRevenue are null when
	// the schedule has no brackets.
	TariffRevenue   decimal.NullDecimal `json:"tariff_revenue"`
	Surcharge       decimal.Decimal     `json:"surcharge"`
	HandlingRevenue decimal.Decimal     `json:"handling_revenue"`
	LastMileRevenue decimal.Decimal     `json:"last_mile_revenue"`
	NetRevenue      decimal.NullDecimal `json:"net_revenue"`

	// Cost line items; absent reference rows contribute zero
	TrunkCost     decimal.Decimal `json:"trunk_cost"`
	FirstMileCost decimal.Decimal `json:"first_mile_cost"`
	LastMileCost  decimal.Decimal `json:"last_mile_cost"`
	HandlingCost  decimal.Decimal `json:"handling_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`

	// Derived profitability. Margin is the profit-to-gross ratio,
	// guarded to zero when gross revenue is zero or profit is null.
	NetProfit  decimal.NullDecimal `json:"net_profit"`
	Margin     decimal.Decimal     `json:"margin"`
	DistanceKM float64             `json:"distance_km"`
}

// Assemble prices and costs every shipment in batch order.
//
// Every join degrades on a miss: an absent surcharge, trunk route,
// handling or last-mile row contributes zero and never rejects the
// shipment. Handling and last-mile are modeled break-even, the charged
// amount equals the internal cost. The fixed monthly first-mile budget
// is amortized equally across the batch.
func Assemble(shipments []location.Shipment, snapshot *refdata.Snapshot, firstMileMonthly decimal.Decimal) []ShipmentResult {
	firstMilePerShipment := decimal.Zero
	if len(shipments) > 0 {
		firstMilePerShipment = firstMileMonthly.Div(decimal.NewFromInt(int64(len(shipments))))
	}

	results := make([]ShipmentResult, 0, len(shipments))
	for _, shipment := range shipments {
		results = append(results, assembleOne(shipment, snapshot, firstMilePerShipment))
	}
	return results
}

func assembleOne(shipment location.Shipment, snapshot *refdata.Snapshot, firstMileCost decimal.Decimal) ShipmentResult {
	req := shipment.Request
	result := ShipmentResult{
		Origin:        shipment.Origin,
		Destination:   shipment.Destination,
		Schedule:      req.Schedule,
		WeightKG:      req.WeightKG,
		DeliveryType:  req.DeliveryType,
		ServiceType:   req.ServiceType,
		FirstMileCost: firstMileCost,
	}

	if id, ok := snapshot.ServiceID(req.ServiceType); ok {
		result.ServiceID = &id
	}
	if id, ok := snapshot.DeliveryTypeID(req.DeliveryType); ok {
		result.DeliveryTypeID = &id
	}

	result.TariffRevenue = tariff.Revenue(req.Schedule, req.WeightKG, snapshot.BracketsFor(req.Schedule))

	if result.ServiceID != nil && result.DeliveryTypeID != nil {
		key := refdata.ServiceDeliveryKey{
			ServiceID:      *result.ServiceID,
			DeliveryTypeID: *result.DeliveryTypeID,
		}
		result.Surcharge = snapshot.Surcharge(key)
		handling := snapshot.HandlingCost(key)
		result.HandlingRevenue = handling
		result.HandlingCost = handling
	}

	if result.TariffRevenue.Valid {
		result.NetRevenue = decimal.NullDecimal{
			Decimal: result.TariffRevenue.Decimal.Add(result.Surcharge),
			Valid:   true,
		}
	}

	if shipment.Origin.RegionID != nil && shipment.Destination.RegionID != nil {
		route := snapshot.TrunkRoute(refdata.RouteKey{
			OriginRegionID: *shipment.Origin.RegionID,
			DestRegionID:   *shipment.Destination.RegionID,
		})
		result.TrunkCost = route.CostPerKG.Mul(decimal.NewFromFloat(req.WeightKG))
		result.DistanceKM = route.DistanceKM
	}

	if shipment.Destination.RegionID != nil && shipment.Destination.CityID != nil {
		lastMile := snapshot.LastMileCost(refdata.PlaceKey{
			RegionID: *shipment.Destination.RegionID,
			CityID:   *shipment.Destination.CityID,
		})
		result.LastMileRevenue = lastMile
		result.LastMileCost = lastMile
	}

	result.TotalCost = result.TrunkCost.
		Add(result.FirstMileCost).
		Add(result.LastMileCost).
		Add(result.HandlingCost)

	if result.TariffRevenue.Valid {
		gross := result.TariffRevenue.Decimal.
			Add(result.Surcharge).
			Add(result.HandlingRevenue).
			Add(result.LastMileRevenue)
		result.NetProfit = decimal.NullDecimal{
			Decimal: gross.Sub(result.TotalCost),
			Valid:   true,
		}
		if !gross.IsZero() {
			result.Margin = result.NetProfit.Decimal.Div(gross)
		}
	}

	return result
}
