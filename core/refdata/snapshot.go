// Package refdata - master table snapshot.
package refdata

import (
	"strconv"

	"github.com/shopspring/decimal"

	"freight-quote/internal/errors"
)

// Master table names
const (
	TableRegion       = "region"
	TableCity         = "city"
	TableTrunkRoute   = "trunk_route"
	TableServiceType  = "service_type"
	TableSurcharge    = "surcharge"
	TableWeightTariff = "weight_tariff"
	TableHandlingCost = "handling_cost"
	TableLastMileCost = "last_mile_cost"
	TableDeliveryType = "delivery_type"
)

// MasterTables lists every table a snapshot is built from
var MasterTables = []string{
	TableRegion,
	TableCity,
	TableTrunkRoute,
	TableServiceType,
	TableSurcharge,
	TableWeightTariff,
	TableHandlingCost,
	TableLastMileCost,
	TableDeliveryType,
}

// Column names per master table
const (
	ColRegionID     = "REGION_ID"
	ColRegionName   = "REGION"
	ColCityID       = "CITY_ID"
	ColCityName     = "CITY"
	ColPostalCode   = "POSTAL_CODE"
	ColOriginRegion = "ORIGIN_REGION_ID"
	ColDestRegion   = "DEST_REGION_ID"
	ColCostPerKG    = "COST_PER_KG"
	ColDistanceKM   = "DISTANCE_KM"
	ColServiceID    = "SERVICE_ID"
	ColServiceType  = "SERVICE_TYPE"
	ColDeliveryID   = "DELIVERY_TYPE_ID"
	ColDeliveryType = "DELIVERY_TYPE"
	ColSurcharge    = "SURCHARGE"
	ColSchedule     = "TARIFF_SCHEDULE"
	ColWeightKG     = "WEIGHT_KG"
	ColRatePerKG    = "RATE_PER_KG"
	ColHandlingCost = "HANDLING_COST"
	ColLastMileCost = "LAST_MILE_COST"
)

// requiredColumns are the columns each master table must carry.
// A missing column is fatal: the joins that consume the table cannot
// degrade to zero without it.
var requiredColumns = map[string][]string{
	TableRegion:       {ColRegionID, ColRegionName},
	TableCity:         {ColCityID, ColCityName, ColRegionID, ColPostalCode},
	TableTrunkRoute:   {ColOriginRegion, ColDestRegion, ColCostPerKG, ColDistanceKM},
	TableServiceType:  {ColServiceID, ColServiceType},
	TableSurcharge:    {ColServiceID, ColDeliveryID, ColSurcharge},
	TableWeightTariff: {ColSchedule, ColWeightKG, ColRatePerKG},
	TableHandlingCost: {ColServiceID, ColDeliveryID, ColHandlingCost},
	TableLastMileCost: {ColRegionID, ColCityID, ColLastMileCost},
	TableDeliveryType: {ColDeliveryID, ColDeliveryType},
}

// Region is a top-level geography record
type Region struct {
	ID   string
	Name string
}

// City is a city/commune record belonging to a region. A RegionID that
// references no known region is tolerated; it simply never joins.
type City struct {
	ID         string
	Name       string
	RegionID   string
	PostalCode string
}

// ServiceType is a sellable service record
type ServiceType struct {
	ID   string
	Name string
}

// DeliveryType is a delivery modality record
type DeliveryType struct {
	ID   string
	Name string
}

// TariffBracket is one step of a tariff schedule's rate function
type TariffBracket struct {
	Schedule  string
	WeightKG  float64
	RatePerKG decimal.Decimal
}

// ServiceDeliveryKey joins surcharge and handling tables
type ServiceDeliveryKey struct {
	ServiceID      string
	DeliveryTypeID string
}

// RouteKey joins the trunk route table by region pair
type RouteKey struct {
	OriginRegionID string
	DestRegionID   string
}

// PlaceKey joins the last-mile table by destination region and city
type PlaceKey struct {
	RegionID string
	CityID   string
}

// TrunkRoute is the cost and distance of a region-to-region leg
type TrunkRoute struct {
	CostPerKG  decimal.Decimal
	DistanceKM float64
}

// Snapshot is IMMUTABLE after Build returns.
// Every keyed table is an explicit map; when the source table carries
// duplicate join keys the first row in table order wins. Each run
// loads its own snapshot, so concurrent runs never share one.
type Snapshot struct {
	regions       map[string]Region
	cities        []City
	brackets      map[string][]TariffBracket
	surcharges    map[ServiceDeliveryKey]decimal.Decimal
	trunkRoutes   map[RouteKey]TrunkRoute
	handlingCosts map[ServiceDeliveryKey]decimal.Decimal
	lastMileCosts map[PlaceKey]decimal.Decimal
	serviceByName map[string]string
	deliverByName map[string]string
}

// Build constructs a snapshot from the nine master tables.
// A missing table or a missing required column is a configuration
// error; malformed numeric cells degrade per-row instead (weight
// brackets with a non-numeric weight are dropped, money cells that do
// not parse read as zero).
func Build(tables map[string]*Table) (*Snapshot, error) {
	for _, name := range MasterTables {
		t, ok := tables[name]
		if !ok {
			return nil, errors.Newf(errors.TypeConfig, "missing master table %q", name)
		}
		if err := t.Require(requiredColumns[name]...); err != nil {
			return nil, err
		}
	}

	s := &Snapshot{
		regions:       make(map[string]Region),
		brackets:      make(map[string][]TariffBracket),
		surcharges:    make(map[ServiceDeliveryKey]decimal.Decimal),
		trunkRoutes:   make(map[RouteKey]TrunkRoute),
		handlingCosts: make(map[ServiceDeliveryKey]decimal.Decimal),
		lastMileCosts: make(map[PlaceKey]decimal.Decimal),
		serviceByName: make(map[string]string),
		deliverByName: make(map[string]string),
	}

	regions := tables[TableRegion]
	for i := 0; i < regions.Len(); i++ {
		r := Region{ID: regions.Cell(i, ColRegionID), Name: regions.Cell(i, ColRegionName)}
		if _, dup := s.regions[r.ID]; !dup {
			s.regions[r.ID] = r
		}
	}

	cities := tables[TableCity]
	s.cities = make([]City, 0, cities.Len())
	for i := 0; i < cities.Len(); i++ {
		s.cities = append(s.cities, City{
			ID:         cities.Cell(i, ColCityID),
			Name:       cities.Cell(i, ColCityName),
			RegionID:   cities.Cell(i, ColRegionID),
			PostalCode: cities.Cell(i, ColPostalCode),
		})
	}

	services := tables[TableServiceType]
	for i := 0; i < services.Len(); i++ {
		name := services.Cell(i, ColServiceType)
		if _, dup := s.serviceByName[name]; !dup {
			s.serviceByName[name] = services.Cell(i, ColServiceID)
		}
	}

	deliveries := tables[TableDeliveryType]
	for i := 0; i < deliveries.Len(); i++ {
		name := deliveries.Cell(i, ColDeliveryType)
		if _, dup := s.deliverByName[name]; !dup {
			s.deliverByName[name] = deliveries.Cell(i, ColDeliveryID)
		}
	}

	tariffs := tables[TableWeightTariff]
	for i := 0; i < tariffs.Len(); i++ {
		weight, err := strconv.ParseFloat(tariffs.Cell(i, ColWeightKG), 64)
		if err != nil {
			// Mirrors the master hygiene rule: bracket rows without a
			// usable weight cannot participate in bracket selection.
			continue
		}
		s.brackets[tariffs.Cell(i, ColSchedule)] = append(
			s.brackets[tariffs.Cell(i, ColSchedule)],
			TariffBracket{
				Schedule:  tariffs.Cell(i, ColSchedule),
				WeightKG:  weight,
				RatePerKG: parseAmount(tariffs.Cell(i, ColRatePerKG)),
			})
	}

	surcharges := tables[TableSurcharge]
	for i := 0; i < surcharges.Len(); i++ {
		key := ServiceDeliveryKey{
			ServiceID:      surcharges.Cell(i, ColServiceID),
			DeliveryTypeID: surcharges.Cell(i, ColDeliveryID),
		}
		if _, dup := s.surcharges[key]; !dup {
			s.surcharges[key] = parseAmount(surcharges.Cell(i, ColSurcharge))
		}
	}

	trunks := tables[TableTrunkRoute]
	for i := 0; i < trunks.Len(); i++ {
		key := RouteKey{
			OriginRegionID: trunks.Cell(i, ColOriginRegion),
			DestRegionID:   trunks.Cell(i, ColDestRegion),
		}
		if _, dup := s.trunkRoutes[key]; !dup {
			distance, _ := strconv.ParseFloat(trunks.Cell(i, ColDistanceKM), 64)
			s.trunkRoutes[key] = TrunkRoute{
				CostPerKG:  parseAmount(trunks.Cell(i, ColCostPerKG)),
				DistanceKM: distance,
			}
		}
	}

	handling := tables[TableHandlingCost]
	for i := 0; i < handling.Len(); i++ {
		key := ServiceDeliveryKey{
			ServiceID:      handling.Cell(i, ColServiceID),
			DeliveryTypeID: handling.Cell(i, ColDeliveryID),
		}
		if _, dup := s.handlingCosts[key]; !dup {
			s.handlingCosts[key] = parseAmount(handling.Cell(i, ColHandlingCost))
		}
	}

	lastMile := tables[TableLastMileCost]
	for i := 0; i < lastMile.Len(); i++ {
		key := PlaceKey{
			RegionID: lastMile.Cell(i, ColRegionID),
			CityID:   lastMile.Cell(i, ColCityID),
		}
		if _, dup := s.lastMileCosts[key]; !dup {
			s.lastMileCosts[key] = parseAmount(lastMile.Cell(i, ColLastMileCost))
		}
	}

	return s, nil
}

// Region returns a region by identifier
func (s *Snapshot) Region(id string) (Region, bool) {
	r, ok := s.regions[id]
	return r, ok
}

// Cities returns the city records in table order
func (s *Snapshot) Cities() []City {
	return s.cities
}

// ServiceID maps a service display name to its identifier
func (s *Snapshot) ServiceID(name string) (string, bool) {
	id, ok := s.serviceByName[name]
	return id, ok
}

// DeliveryTypeID maps a delivery type display name to its identifier
func (s *Snapshot) DeliveryTypeID(name string) (string, bool) {
	id, ok := s.deliverByName[name]
	return id, ok
}

// BracketsFor returns all brackets of a tariff schedule
func (s *Snapshot) BracketsFor(schedule string) []TariffBracket {
	return s.brackets[schedule]
}

// Surcharge returns the flat surcharge for a service/delivery pair,
// zero when the pair is absent
func (s *Snapshot) Surcharge(key ServiceDeliveryKey) decimal.Decimal {
	return s.surcharges[key]
}

// TrunkRoute returns the trunk leg for a region pair; absent pairs
// read as zero cost and zero distance
func (s *Snapshot) TrunkRoute(key RouteKey) TrunkRoute {
	return s.trunkRoutes[key]
}

// HandlingCost returns the flat handling amount for a service/delivery
// pair, zero when absent
func (s *Snapshot) HandlingCost(key ServiceDeliveryKey) decimal.Decimal {
	return s.handlingCosts[key]
}

// LastMileCost returns the flat last-mile amount for a destination,
// zero when absent
func (s *Snapshot) LastMileCost(key PlaceKey) decimal.Decimal {
	return s.lastMileCosts[key]
}

// parseAmount reads a money cell; unparseable cells read as zero
func parseAmount(cell string) decimal.Decimal {
	d, err := decimal.NewFromString(cell)
	if err != nil {
		return decimal.Zero
	}
	return d
}
