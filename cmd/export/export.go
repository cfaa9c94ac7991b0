// Package export handles the filtered report export command.
package export

import (
	"psharma/arledger/cmd/root"
	"psharma/arledger/internal/contacts"
	"psharma/arledger/internal/filter"
	"psharma/arledger/internal/ledger"
	"psharma/arledger/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the export command.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export filtered outstanding bills to CSV or XLSX",
	Long: `Reconcile a ledger export and write the outstanding bills that pass the
company, day-count, and date filters. Exports use exactly the same filter
semantics as the summary views.`,
	Run: exportFunc,
}

func exportFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Input == "" {
		root.Log.Fatal("Input file is required (--input)")
	}
	if root.SharedFlags.Output == "" {
		root.Log.Fatal("Output file is required (--output)")
	}

	parties, err := ledger.ParseFile(root.SharedFlags.Input, root.Logger())
	if err != nil {
		root.Log.Fatalf("Error parsing ledger file: %v", err)
	}

	// phone numbers ride along in the export when the book has them
	book, err := root.DataStore().LoadContacts()
	if err != nil {
		root.Log.Warnf("Failed to load contacts, continuing without: %v", err)
	} else {
		parties = contacts.Merge(parties, book, root.Logger())
	}

	criteria := filter.Criteria{
		Companies: root.SharedFlags.Companies,
		MinDays:   root.SharedFlags.MinDays,
	}
	criteria.ParseDates(root.SharedFlags.FromDate, root.SharedFlags.ToDate)

	cls := root.LoadClassifier()
	records := report.Collect(parties, criteria, cls)

	sheet := ""
	if root.Cfg != nil {
		sheet = root.Cfg.Export.Sheet
	}
	if err := report.WriteFile(records, root.SharedFlags.Output, sheet, root.Logger()); err != nil {
		root.Log.Fatalf("Error writing report: %v", err)
	}

	root.Log.Infof("Exported %d bills to %s", len(records), root.SharedFlags.Output)

	for _, t := range report.CompanyTotals(parties, criteria, cls) {
		root.Log.Infof("  %-24s %4d bills  %12s", t.Company, t.Bills, t.Total.StringFixed(2))
	}
}
