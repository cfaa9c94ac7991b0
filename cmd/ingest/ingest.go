// Package ingest handles the ledger ingestion command.
package ingest

import (
	"psharma/arledger/cmd/root"
	"psharma/arledger/internal/currencyutils"
	"psharma/arledger/internal/ledger"
	"psharma/arledger/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the ingest command.
var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Parse and reconcile a ledger export",
	Long: `Parse a CSV or XLSX ledger export, reconcile every party's credits
against their oldest bills, and print the dataset summary.`,
	Run: ingestFunc,
}

func ingestFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Input == "" {
		root.Log.Fatal("Input file is required (--input)")
	}

	parties, err := ledger.ParseFile(root.SharedFlags.Input, root.Logger())
	if err != nil {
		root.Log.Fatalf("Error parsing ledger file: %v", err)
	}

	summary := report.BuildSummary(parties)
	root.Log.Infof("Parties: %d", summary.Parties)
	root.Log.Infof("Outstanding bills: %d", summary.Bills)
	root.Log.Infof("Total debit: %s", currencyutils.FormatAmount(summary.TotalDebit))
	root.Log.Infof("Total credit: %s", currencyutils.FormatAmount(summary.TotalCredit))
	root.Log.Infof("Net balance: %s", currencyutils.FormatAmount(summary.NetBalance))

	cls := root.LoadClassifier()
	unmapped := report.UnmappedParties(parties, cls)
	if len(unmapped) > 0 {
		root.Log.Warnf("%d parties carry bills with no matching company prefix:", len(unmapped))
		for _, name := range unmapped {
			root.Log.Warnf("  %s", name)
		}
	}
}
