// Package cmd - masters command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"freight-quote/adapters/xlsx"
	"freight-quote/core/refdata"
	"freight-quote/internal/config"
	"freight-quote/internal/errors"
)

// mastersCmd validates the master table directory
var mastersCmd = &cobra.Command{
	Use:   "masters",
	Short: "Validate the master table directory",
	Long: `Check that all nine master files exist in the data directory and
that every table carries the columns the quoting pipeline joins on.`,
	RunE: runMasters,
}

func init() {
	mastersCmd.Flags().StringVar(&dataDir, "data", "", "master table directory")
}

func runMasters(cmd *cobra.Command, args []string) error {
	dir := dataDir
	if dir == "" {
		dir = config.Get().DataDir
	}

	if missing := xlsx.MissingMasters(dir); len(missing) > 0 {
		return errors.MissingMasters(missing)
	}

	tables, err := xlsx.LoadMasters(dir)
	if err != nil {
		return err
	}
	if _, err := refdata.Build(tables); err != nil {
		return err
	}

	fmt.Printf("All master tables in %s are complete.\n", dir)
	for _, name := range refdata.MasterTables {
		fmt.Printf("  %-16s %d rows\n", name, tables[name].Len())
	}
	return nil
}
