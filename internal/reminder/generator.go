// Package reminder produces payment-reminder text for a finalized party.
// The contract with the core is narrow: a generator receives a complete,
// already-reconciled Party and the classifier, and returns freeform text.
package reminder

import (
	"context"
	"fmt"
	"strings"

	"psharma/arledger/internal/classifier"
	"psharma/arledger/internal/currencyutils"
	"psharma/arledger/internal/models"
)

// Generator turns a finalized party into reminder text.
type Generator interface {
	Generate(ctx context.Context, party *models.Party, cls *classifier.Classifier) (string, error)
}

// TemplateGenerator is the deterministic default: a plain-text summary of
// the party's outstanding bills grouped under their company names.
type TemplateGenerator struct{}

// NewTemplateGenerator creates the default generator.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

// Generate renders the reminder text.
func (g *TemplateGenerator) Generate(_ context.Context, party *models.Party, cls *classifier.Classifier) (string, error) {
	if party == nil {
		return "", fmt.Errorf("no party supplied")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", strings.TrimSpace(party.PartyName))
	b.WriteString("This is a gentle reminder about the following outstanding bills:\n\n")

	for _, bill := range party.Bills {
		if !bill.IsActive() || !bill.BillAmt.IsPositive() {
			continue
		}
		company := cls.Company(bill.BillNo)
		fmt.Fprintf(&b, "  %-18s %-12s %10s  [%s]",
			bill.DisplayNo(), bill.BillDate, currencyutils.FormatAmount(bill.BillAmt), company)
		if bill.Days > 0 {
			fmt.Fprintf(&b, "  (%d days)", bill.Days)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nTotal outstanding: %s\n", currencyutils.FormatAmount(party.BalanceDebit))
	if party.BalanceCredit.IsPositive() {
		fmt.Fprintf(&b, "Credit on account: %s\n", currencyutils.FormatAmount(party.BalanceCredit))
		fmt.Fprintf(&b, "Net payable: %s\n", currencyutils.FormatAmount(party.RawBalance))
	}
	b.WriteString("\nKindly arrange the payment at the earliest. Please ignore this message if already paid.\n")

	return b.String(), nil
}
