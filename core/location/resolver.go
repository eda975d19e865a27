// Package location resolves free-text origin and destination names
// against the city and region masters.
package location

import (
	"strings"

	"freight-quote/core/input"
	"freight-quote/core/refdata"
)

// maxUnmatched caps each unmatched-name diagnostic list
const maxUnmatched = 10

// Resolved holds one side (origin or destination) of a shipment after
// the city lookup. Name always carries the original free-text value;
// the remaining fields stay nil when the lookup missed.
type Resolved struct {
	Name       string  `json:"name"`
	CityID     *string `json:"city_id"`
	RegionID   *string `json:"region_id"`
	RegionName *string `json:"region"`
	PostalCode *string `json:"postal_code"`
}

// Matched reports whether the side resolved to a known city
func (r Resolved) Matched() bool {
	return r.CityID != nil
}

// Shipment is a shipment request enriched with resolved locations
type Shipment struct {
	Request     input.ShipmentRequest
	Origin      Resolved
	Destination Resolved
}

// cityRecord is one entry of the name lookup, the city joined with its
// region name
type cityRecord struct {
	cityID     string
	regionID   string
	regionName *string
	postalCode string
}

// Resolve enriches every request with origin and destination
// identifiers and reports the distinct unmatched names per side, each
// list capped at 10 entries for display. No shipment is dropped: an
// unmatched side keeps nil identifiers.
//
// City names are matched uppercased and trimmed. When the city master
// repeats a name, the first row in table order wins.
func Resolve(requests []input.ShipmentRequest, snapshot *refdata.Snapshot) ([]Shipment, []string, []string) {
	lookup := buildCityLookup(snapshot)

	shipments := make([]Shipment, 0, len(requests))
	var unmatchedOrigins, unmatchedDestinations []string
	seenOrigins := make(map[string]bool)
	seenDestinations := make(map[string]bool)

	for _, req := range requests {
		origin, originOK := resolveSide(req.Origin, lookup)
		destination, destinationOK := resolveSide(req.Destination, lookup)

		if !originOK && !seenOrigins[req.Origin] {
			seenOrigins[req.Origin] = true
			if len(unmatchedOrigins) < maxUnmatched {
				unmatchedOrigins = append(unmatchedOrigins, req.Origin)
			}
		}
		if !destinationOK && !seenDestinations[req.Destination] {
			seenDestinations[req.Destination] = true
			if len(unmatchedDestinations) < maxUnmatched {
				unmatchedDestinations = append(unmatchedDestinations, req.Destination)
			}
		}

		shipments = append(shipments, Shipment{
			Request:     req,
			Origin:      origin,
			Destination: destination,
		})
	}

	return shipments, unmatchedOrigins, unmatchedDestinations
}

func buildCityLookup(snapshot *refdata.Snapshot) map[string]cityRecord {
	lookup := make(map[string]cityRecord)
	for _, city := range snapshot.Cities() {
		key := normalizeName(city.Name)
		if _, dup := lookup[key]; dup {
			continue
		}
		record := cityRecord{
			cityID:     city.ID,
			regionID:   city.RegionID,
			postalCode: city.PostalCode,
		}
		// A dangling region reference is tolerated: the identifier is
		// kept but no display name joins.
		if region, ok := snapshot.Region(city.RegionID); ok {
			name := region.Name
			record.regionName = &name
		}
		lookup[key] = record
	}
	return lookup
}

func resolveSide(name string, lookup map[string]cityRecord) (Resolved, bool) {
	resolved := Resolved{Name: name}
	record, ok := lookup[normalizeName(name)]
	if !ok {
		return resolved, false
	}
	resolved.CityID = strPtr(record.cityID)
	resolved.RegionID = strPtr(record.regionID)
	resolved.RegionName = record.regionName
	resolved.PostalCode = strPtr(record.postalCode)
	return resolved, true
}

func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func strPtr(s string) *string {
	return &s
}
