// Package contacts handles the phone-book maintenance command.
package contacts

import (
	"sort"

	"psharma/arledger/cmd/root"

	"github.com/spf13/cobra"
)

var (
	partyName string
	phone     string
)

// Cmd represents the contacts command.
var Cmd = &cobra.Command{
	Use:   "contacts",
	Short: "Maintain the party phone book",
	Long: `Record a phone number for a party, or list the stored contacts. Numbers
are matched back onto parties by name (exact, then punctuation-insensitive)
during export and reminder generation.`,
	Run: contactsFunc,
}

func init() {
	Cmd.Flags().StringVarP(&partyName, "party", "p", "", "Party name exactly as it appears in the ledger")
	Cmd.Flags().StringVarP(&phone, "number", "n", "", "Phone number to store")
}

func contactsFunc(cmd *cobra.Command, args []string) {
	ds := root.DataStore()

	book, err := ds.LoadContacts()
	if err != nil {
		root.Log.Fatalf("Error loading contacts: %v", err)
	}

	if partyName != "" && phone != "" {
		book[partyName] = phone
		if err := ds.SaveContacts(book); err != nil {
			root.Log.Fatalf("Error saving contacts: %v", err)
		}
		root.Log.Infof("Stored number for %s", partyName)
		return
	}

	if len(book) == 0 {
		root.Log.Info("No contacts stored")
		return
	}

	names := make([]string, 0, len(book))
	for name := range book {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		root.Log.Infof("  %-32s %s", name, book[name])
	}
}
