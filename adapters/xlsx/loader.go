// Package xlsx loads master tables and shipment batches from
// spreadsheet files. It is the file-layer collaborator of the core:
// everything it produces is a generic refdata.Table.
package xlsx

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"freight-quote/core/refdata"
	"freight-quote/internal/errors"
)

// masterFiles maps each master table to its file in the data directory
var masterFiles = map[string]string{
	refdata.TableRegion:       "REGION.xlsx",
	refdata.TableCity:         "CITY.xlsx",
	refdata.TableTrunkRoute:   "TRUNK_ROUTE.xlsx",
	refdata.TableServiceType:  "SERVICE_TYPE.xlsx",
	refdata.TableSurcharge:    "SURCHARGE.xlsx",
	refdata.TableWeightTariff: "WEIGHT_TARIFF.xlsx",
	refdata.TableHandlingCost: "HANDLING_COST.xlsx",
	refdata.TableLastMileCost: "LAST_MILE_COST.xlsx",
	refdata.TableDeliveryType: "DELIVERY_TYPE.xlsx",
}

// MissingMasters returns the master file names absent from dir, sorted
// for stable reporting. An empty result means the directory is
// complete.
func MissingMasters(dir string) []string {
	var missing []string
	for _, file := range masterFiles {
		if _, err := os.Stat(filepath.Join(dir, file)); err != nil {
			missing = append(missing, file)
		}
	}
	sort.Strings(missing)
	return missing
}

// LoadMasters reads all nine master tables from dir. Missing files are
// reported together as one configuration error.
func LoadMasters(dir string) (map[string]*refdata.Table, error) {
	if missing := MissingMasters(dir); len(missing) > 0 {
		return nil, errors.MissingMasters(missing)
	}

	tables := make(map[string]*refdata.Table, len(masterFiles))
	for name, file := range masterFiles {
		path := filepath.Join(dir, file)
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeConfig, err, "cannot open master file %s", file)
		}
		table, err := parseWorkbook(name, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		tables[name] = table
	}
	return tables, nil
}

// LoadShipments reads a shipment batch from an xlsx or csv file,
// chosen by extension.
func LoadShipments(path string) (*refdata.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInput, err, "cannot open shipment file %s", path)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ParseShipmentsCSV(f)
	}
	return ParseShipmentsXLSX(f)
}

// ParseShipmentsXLSX reads a shipment batch from the first sheet of an
// xlsx workbook.
func ParseShipmentsXLSX(r io.Reader) (*refdata.Table, error) {
	return parseWorkbook("shipments", r)
}

// ParseShipmentsCSV reads a shipment batch from CSV.
func ParseShipmentsCSV(r io.Reader) (*refdata.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Parsing("failed to parse CSV", err)
	}
	if len(rows) == 0 {
		return nil, errors.Input("shipment file has no header row")
	}
	return refdata.NewTable("shipments", rows[0], rows[1:]), nil
}

// parseWorkbook reads the first sheet of a workbook into a table
func parseWorkbook(name string, r io.Reader) (*refdata.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Parsing("failed to open workbook", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Parsing("failed to read sheet", err)
	}
	if len(rows) == 0 {
		return nil, errors.Newf(errors.TypeInput, "table %q has no header row", name)
	}
	return refdata.NewTable(name, rows[0], rows[1:]), nil
}
