// Package refdatatest provides master-table fixtures for tests.
package refdatatest

import (
	"testing"

	"freight-quote/core/refdata"
)

// Tables returns a complete, mutable set of master tables:
//
//   - regions 1 (Metropolitana) and 2 (Arica y Parinacota)
//   - cities Santiago (10, region 1) and Arica (20, region 2)
//   - service Express (1), delivery type Home Delivery (1)
//   - schedule A with a single 1000kg / 50-per-kg bracket
//   - surcharge (1,1) = 500, handling (1,1) = 1000
//   - trunk route 1→2 = 20 per kg over 2000 km
//   - last mile (region 2, city 20) = 2000
//
// Tests overwrite individual tables before building a snapshot.
func Tables() map[string]*refdata.Table {
	return map[string]*refdata.Table{
		refdata.TableRegion: refdata.NewTable(refdata.TableRegion,
			[]string{"REGION_ID", "REGION"},
			[][]string{
				{"1", "Metropolitana"},
				{"2", "Arica y Parinacota"},
			}),
		refdata.TableCity: refdata.NewTable(refdata.TableCity,
			[]string{"CITY_ID", "CITY", "REGION_ID", "POSTAL_CODE"},
			[][]string{
				{"10", "Santiago", "1", "8320000"},
				{"20", "Arica", "2", "1000000"},
			}),
		refdata.TableTrunkRoute: refdata.NewTable(refdata.TableTrunkRoute,
			[]string{"ORIGIN_REGION_ID", "DEST_REGION_ID", "COST_PER_KG", "DISTANCE_KM"},
			[][]string{
				{"1", "2", "20", "2000"},
			}),
		refdata.TableServiceType: refdata.NewTable(refdata.TableServiceType,
			[]string{"SERVICE_ID", "SERVICE_TYPE"},
			[][]string{
				{"1", "Express"},
			}),
		refdata.TableSurcharge: refdata.NewTable(refdata.TableSurcharge,
			[]string{"SERVICE_ID", "DELIVERY_TYPE_ID", "SURCHARGE"},
			[][]string{
				{"1", "1", "500"},
			}),
		refdata.TableWeightTariff: refdata.NewTable(refdata.TableWeightTariff,
			[]string{"TARIFF_SCHEDULE", "WEIGHT_KG", "RATE_PER_KG"},
			[][]string{
				{"A", "1000", "50"},
			}),
		refdata.TableHandlingCost: refdata.NewTable(refdata.TableHandlingCost,
			[]string{"SERVICE_ID", "DELIVERY_TYPE_ID", "HANDLING_COST"},
			[][]string{
				{"1", "1", "1000"},
			}),
		refdata.TableLastMileCost: refdata.NewTable(refdata.TableLastMileCost,
			[]string{"REGION_ID", "CITY_ID", "LAST_MILE_COST"},
			[][]string{
				{"2", "20", "2000"},
			}),
		refdata.TableDeliveryType: refdata.NewTable(refdata.TableDeliveryType,
			[]string{"DELIVERY_TYPE_ID", "DELIVERY_TYPE"},
			[][]string{
				{"1", "Home Delivery"},
			}),
	}
}

// Snapshot builds the fixture snapshot, failing the test on error
func Snapshot(t *testing.T) *refdata.Snapshot {
	t.Helper()
	snapshot, err := refdata.Build(Tables())
	if err != nil {
		t.Fatalf("building fixture snapshot: %v", err)
	}
	return snapshot
}

// SnapshotWith builds a snapshot from the fixture tables after
// applying overrides for the named tables
func SnapshotWith(t *testing.T, overrides map[string]*refdata.Table) *refdata.Snapshot {
	t.Helper()
	tables := Tables()
	for name, table := range overrides {
		tables[name] = table
	}
	snapshot, err := refdata.Build(tables)
	if err != nil {
		t.Fatalf("building fixture snapshot: %v", err)
	}
	return snapshot
}
