package models

import (
	"github.com/shopspring/decimal"
)

// Party aggregates all bills for one customer.
//
// PartyName is preserved exactly as supplied by the source file. It doubles
// as the join key for external phone-number lookups, so it must never be
// normalized on write.
type Party struct {
	ID            string          `json:"id"`
	PartyName     string          `json:"partyName"`
	RawBalance    decimal.Decimal `json:"rawBalance"`
	BalanceDebit  decimal.Decimal `json:"balanceDebit"`
	BalanceCredit decimal.Decimal `json:"balanceCredit"`
	PhoneNumber   string          `json:"phoneNumber"`
	Bills         []Bill          `json:"bills"`
}

// Clone returns a deep copy of the party. Session mutations operate on
// clones so read-only consumers never observe a half-applied change.
func (p *Party) Clone() *Party {
	clone := *p
	clone.Bills = make([]Bill, len(p.Bills))
	copy(clone.Bills, p.Bills)
	return &clone
}

// ActiveTotal returns the sum of outstanding amounts over bills that are
// neither paid nor disputed.
func (p *Party) ActiveTotal() decimal.Decimal {
	total := decimal.Zero
	for _, b := range p.Bills {
		if b.IsActive() {
			total = total.Add(b.BillAmt)
		}
	}
	return total
}
