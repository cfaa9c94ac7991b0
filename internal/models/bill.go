// Package models defines the core data structures for the receivables ledger:
// raw export rows, bills, and party aggregates.
package models

import (
	"github.com/shopspring/decimal"
)

// BillStatus is the session-local classification of a bill. It is independent
// of the underlying ledger source and never written back to it.
type BillStatus string

const (
	// StatusUnpaid is the default status of every bill.
	StatusUnpaid BillStatus = "unpaid"
	// StatusPaid marks a bill settled outside the ledger (or via partial payment).
	StatusPaid BillStatus = "paid"
	// StatusDispute marks a bill under dispute with the party.
	StatusDispute BillStatus = "dispute"
)

// Bill is a single invoice line owed by a party.
//
// BillAmt is the current outstanding amount; it is reduced by credit
// allocation at finalize time and by partial payments afterwards.
// OriginalBillAmt is fixed at creation and never changes, so the two fields
// together reveal whether a bill was adjusted.
type Bill struct {
	ID               string          `json:"id"`
	BillNo           string          `json:"billNo"`
	BillDate         string          `json:"billDate"`
	BillAmt          decimal.Decimal `json:"billAmt"`
	OriginalBillAmt  decimal.Decimal `json:"originalBillAmt"`
	DueDate          string          `json:"dueDate"`
	Days             int             `json:"days"`
	Status           BillStatus      `json:"status"`
	ManualAdjustment decimal.Decimal `json:"manualAdjustment"`
}

// IsAdjusted reports whether credit allocation or a payment reduced the bill
// below its original amount.
func (b Bill) IsAdjusted() bool {
	return !b.BillAmt.Equal(b.OriginalBillAmt)
}

// DisplayNo returns the bill number with the adjusted marker appended when
// the outstanding amount no longer matches the original.
func (b Bill) DisplayNo() string {
	if b.IsAdjusted() {
		return b.BillNo + " (B)"
	}
	return b.BillNo
}

// IsActive reports whether the bill counts toward active aggregates, i.e. it
// is neither paid nor disputed.
func (b Bill) IsActive() bool {
	return b.Status != StatusPaid && b.Status != StatusDispute
}
