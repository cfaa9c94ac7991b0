// Package classify handles prefix-table maintenance and ad hoc lookups.
package classify

import (
	"psharma/arledger/cmd/root"
	"psharma/arledger/internal/classifier"

	"github.com/spf13/cobra"
)

var (
	guideFile string
	billNo    string
)

// Cmd represents the classify command.
var Cmd = &cobra.Command{
	Use:   "classify",
	Short: "Maintain the company prefix table and classify bill numbers",
	Long: `Load a two-column prefix guide (Prefix, Company Name) to replace the
prefix table, or look up which company a bill number belongs to.`,
	Run: classifyFunc,
}

func init() {
	Cmd.Flags().StringVarP(&guideFile, "guide", "g", "", "Prefix guide file (CSV or XLSX) to install")
	Cmd.Flags().StringVarP(&billNo, "bill", "b", "", "Bill number to classify")
}

func classifyFunc(cmd *cobra.Command, args []string) {
	if guideFile == "" && billNo == "" {
		root.Log.Fatal("Either --guide or --bill is required")
	}

	cls := root.LoadClassifier()

	if guideFile != "" {
		table, err := classifier.LoadGuideFile(guideFile, root.Logger())
		if err != nil {
			root.Log.Fatalf("Error loading prefix guide: %v", err)
		}
		cls.Replace(table)
		if err := root.DataStore().SavePrefixes(cls.Snapshot()); err != nil {
			root.Log.Warnf("Failed to persist prefix table: %v", err)
		}
		root.Log.Infof("Installed %d prefixes from %s", len(table), guideFile)
	}

	if billNo != "" {
		if company, ok := cls.Classify(billNo); ok {
			root.Log.Infof("%s -> %s", billNo, company)
		} else {
			root.Log.Infof("%s -> %s (no matching prefix)", billNo, classifier.CompanyUnmapped)
		}
	}
}
