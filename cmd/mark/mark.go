// Package mark applies session mutations to a reconciled party: paid and
// dispute marks, partial payments, and their undos. The mutations live only
// for the run; the ledger source file is never written back.
package mark

import (
	"fmt"
	"strings"

	"psharma/arledger/cmd/root"
	"psharma/arledger/internal/currencyutils"
	"psharma/arledger/internal/ledger"
	"psharma/arledger/internal/models"
	"psharma/arledger/internal/session"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	partyName string
	billNo    string
	action    string
	amount    string
	confirmed bool
)

// Cmd represents the mark command.
var Cmd = &cobra.Command{
	Use:   "mark",
	Short: "Mark a bill paid or disputed, or record a partial payment",
	Long: `Reconcile the ledger, locate a bill by party and bill number, apply the
requested mutation, and print the party's updated position. Actions:
paid, dispute, undo, pay (requires --amount), undo-pay.`,
	Run: markFunc,
}

func init() {
	Cmd.Flags().StringVarP(&partyName, "party", "p", "", "Party name (required)")
	Cmd.Flags().StringVarP(&billNo, "bill", "b", "", "Bill number (required)")
	Cmd.Flags().StringVarP(&action, "action", "a", "", "One of: paid, dispute, undo, pay, undo-pay (required)")
	Cmd.Flags().StringVar(&amount, "amount", "", "Payment amount for --action pay")
	Cmd.Flags().BoolVar(&confirmed, "confirm-overpayment", false, "Allow a payment beyond the outstanding amount")
	_ = Cmd.MarkFlagRequired("party")
	_ = Cmd.MarkFlagRequired("bill")
	_ = Cmd.MarkFlagRequired("action")
}

func markFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Input == "" {
		root.Log.Fatal("Input file is required (--input)")
	}

	parties, err := ledger.ParseFile(root.SharedFlags.Input, root.Logger())
	if err != nil {
		root.Log.Fatalf("Error parsing ledger file: %v", err)
	}

	party := findParty(parties, partyName)
	if party == nil {
		root.Log.Fatalf("No party named %q in the ledger", partyName)
	}
	bill := findBill(party, billNo)
	if bill == nil {
		root.Log.Fatalf("No bill numbered %q for party %q", billNo, party.PartyName)
	}

	updated, err := apply(party, bill.ID)
	if err != nil {
		root.Log.Fatalf("Error applying %s: %v", action, err)
	}

	printParty(updated)
}

func apply(party *models.Party, billID string) (*models.Party, error) {
	switch strings.ToLower(action) {
	case "paid":
		return session.MarkPaid(party, billID)
	case "dispute":
		return session.MarkDispute(party, billID)
	case "undo":
		return session.UndoStatus(party, billID)
	case "pay":
		amt, err := decimal.NewFromString(strings.TrimSpace(amount))
		if err != nil {
			return nil, fmt.Errorf("invalid --amount %q: %w", amount, err)
		}
		return session.ApplyPartialPayment(party, billID, amt, confirmed)
	case "undo-pay":
		return session.UndoPartialPayment(party, billID)
	default:
		return nil, fmt.Errorf("unknown action %q", action)
	}
}

func printParty(party *models.Party) {
	fmt.Printf("%s\n", strings.TrimSpace(party.PartyName))
	for _, b := range party.Bills {
		fmt.Printf("  %-18s %-12s %10s  %s\n",
			b.DisplayNo(), b.BillDate, currencyutils.FormatAmount(b.BillAmt), b.Status)
	}
	fmt.Printf("Outstanding: %s", currencyutils.FormatAmount(party.BalanceDebit))
	if party.BalanceCredit.IsPositive() {
		fmt.Printf("  Credit: %s  Net: %s",
			currencyutils.FormatAmount(party.BalanceCredit),
			currencyutils.FormatAmount(party.RawBalance))
	}
	fmt.Println()
}

func findParty(parties []*models.Party, name string) *models.Party {
	for _, p := range parties {
		if p.PartyName == name {
			return p
		}
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for _, p := range parties {
		if strings.ToLower(strings.TrimSpace(p.PartyName)) == want {
			return p
		}
	}
	return nil
}

func findBill(party *models.Party, no string) *models.Bill {
	for i := range party.Bills {
		if strings.EqualFold(strings.TrimSpace(party.Bills[i].BillNo), strings.TrimSpace(no)) {
			return &party.Bills[i]
		}
	}
	return nil
}
