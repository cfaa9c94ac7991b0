// Package session applies post-reconciliation mutations to parties: paid and
// dispute marks, partial payments, and their undos. Every operation clones
// the party and returns a new snapshot, so concurrent readers of the old
// value never see a half-applied change. FIFO allocation is never re-run
// here; only the aggregates are recomputed from the current bill list.
package session

import (
	"errors"
	"fmt"

	"psharma/arledger/internal/currencyutils"
	"psharma/arledger/internal/models"

	"github.com/shopspring/decimal"
)

var (
	// ErrBillNotFound is returned when the bill id does not belong to the party.
	ErrBillNotFound = errors.New("bill not found")

	// ErrConfirmOverpayment is returned when a partial payment exceeds the
	// outstanding amount and the caller has not confirmed the overpayment.
	// The mutation is aborted; all other state is untouched.
	ErrConfirmOverpayment = errors.New("payment exceeds outstanding amount, confirmation required")

	// ErrInvalidTransition is returned for status changes outside
	// unpaid -> paid/dispute -> unpaid.
	ErrInvalidTransition = errors.New("status transition not permitted")

	// ErrNoAdjustment is returned when undoing a partial payment on a bill
	// that has none recorded.
	ErrNoAdjustment = errors.New("bill has no partial payment to undo")
)

// MarkPaid sets a bill's status to paid. The amount is untouched; the bill
// simply drops out of active aggregates.
func MarkPaid(party *models.Party, billID string) (*models.Party, error) {
	return setStatus(party, billID, models.StatusPaid)
}

// MarkDispute sets a bill's status to dispute.
func MarkDispute(party *models.Party, billID string) (*models.Party, error) {
	return setStatus(party, billID, models.StatusDispute)
}

// UndoStatus resets a bill to unpaid regardless of its prior status.
func UndoStatus(party *models.Party, billID string) (*models.Party, error) {
	clone := party.Clone()
	bill, err := findBill(clone, billID)
	if err != nil {
		return nil, err
	}
	bill.Status = models.StatusUnpaid
	recompute(clone)
	return clone, nil
}

func setStatus(party *models.Party, billID string, status models.BillStatus) (*models.Party, error) {
	clone := party.Clone()
	bill, err := findBill(clone, billID)
	if err != nil {
		return nil, err
	}
	if bill.Status != models.StatusUnpaid {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, bill.Status, status)
	}
	bill.Status = status
	recompute(clone)
	return clone, nil
}

// ApplyPartialPayment records an amount received against a bill. A payment
// covering the full outstanding amount settles the bill (status paid); a
// smaller one reduces it and leaves it unpaid, overwriting any dispute mark.
// Payments beyond the outstanding amount go through only when confirmed.
func ApplyPartialPayment(party *models.Party, billID string, amount decimal.Decimal, confirmed bool) (*models.Party, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be positive, got %s", amount)
	}

	clone := party.Clone()
	bill, err := findBill(clone, billID)
	if err != nil {
		return nil, err
	}

	outstanding := bill.BillAmt
	if amount.GreaterThan(outstanding) && !confirmed {
		return nil, ErrConfirmOverpayment
	}

	if amount.GreaterThanOrEqual(outstanding) {
		bill.BillAmt = decimal.Zero
		bill.Status = models.StatusPaid
	} else {
		bill.BillAmt = currencyutils.Round2(outstanding.Sub(amount))
		bill.Status = models.StatusUnpaid
	}
	bill.ManualAdjustment = currencyutils.Round2(bill.ManualAdjustment.Add(amount))

	recompute(clone)
	return clone, nil
}

// UndoPartialPayment reverts the bill's cumulative manual adjustment in one
// step. There is no history stack: the whole running total comes back at
// once and the status is recomputed from the restored amount.
func UndoPartialPayment(party *models.Party, billID string) (*models.Party, error) {
	clone := party.Clone()
	bill, err := findBill(clone, billID)
	if err != nil {
		return nil, err
	}
	if bill.ManualAdjustment.IsZero() {
		return nil, ErrNoAdjustment
	}

	bill.BillAmt = currencyutils.Round2(bill.BillAmt.Add(bill.ManualAdjustment))
	bill.ManualAdjustment = decimal.Zero
	if bill.BillAmt.IsPositive() {
		bill.Status = models.StatusUnpaid
	} else {
		bill.Status = models.StatusPaid
	}

	recompute(clone)
	return clone, nil
}

func findBill(party *models.Party, billID string) (*models.Bill, error) {
	for i := range party.Bills {
		if party.Bills[i].ID == billID {
			return &party.Bills[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s in party %s", ErrBillNotFound, billID, party.PartyName)
}

// recompute refreshes the party aggregates from the current bill list.
// BalanceCredit was fixed at finalize time and is never touched here.
func recompute(party *models.Party) {
	party.BalanceDebit = currencyutils.Round2(party.ActiveTotal())
	party.RawBalance = currencyutils.Round2(party.BalanceDebit.Sub(party.BalanceCredit))
}
