package ledger

import (
	"testing"

	"psharma/arledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawBill(billNo, billDate, amount string) models.Bill {
	amt := decimal.RequireFromString(amount)
	return models.Bill{
		ID:              uuid.NewString(),
		BillNo:          billNo,
		BillDate:        billDate,
		BillAmt:         amt,
		OriginalBillAmt: amt,
		Status:          models.StatusUnpaid,
	}
}

func TestFinalizeFIFOOrdering(t *testing.T) {
	raw := []models.Bill{
		rawBill("B1", "2024-03-01", "100"),
		rawBill("B2", "2024-01-01", "200"),
		rawBill("B3", "2024-02-01", "50"),
		rawBill("", "", "-250"),
	}

	party := Finalize(&models.Party{ID: "p1", PartyName: "Acme"}, raw)

	// Jan (200) and Feb (50) are fully absorbed, Mar (100) untouched.
	require.Len(t, party.Bills, 1)
	assert.Equal(t, "B1", party.Bills[0].BillNo)
	assert.True(t, party.Bills[0].BillAmt.Equal(decimal.NewFromInt(100)))
	assert.True(t, party.BalanceDebit.Equal(decimal.NewFromInt(100)))
	assert.True(t, party.BalanceCredit.IsZero())
	assert.True(t, party.RawBalance.Equal(decimal.NewFromInt(100)))
}

func TestFinalizePartialAbsorption(t *testing.T) {
	raw := []models.Bill{
		rawBill("X1", "01-Jan-24", "300"),
		rawBill("", "", "-100"),
	}

	party := Finalize(&models.Party{ID: "p1", PartyName: "Acme"}, raw)

	require.Len(t, party.Bills, 1)
	bill := party.Bills[0]
	assert.True(t, bill.BillAmt.Equal(decimal.NewFromInt(200)), "got %s", bill.BillAmt)
	assert.True(t, bill.OriginalBillAmt.Equal(decimal.NewFromInt(300)))
	assert.True(t, bill.IsAdjusted())
	assert.Equal(t, "X1 (B)", bill.DisplayNo())
	assert.True(t, party.BalanceCredit.IsZero())
	assert.True(t, party.BalanceDebit.Equal(decimal.NewFromInt(200)))
}

func TestFinalizeLeftoverCredit(t *testing.T) {
	raw := []models.Bill{
		rawBill("X1", "01-Jan-24", "300"),
		rawBill("", "", "-500"),
	}

	party := Finalize(&models.Party{ID: "p1", PartyName: "Acme"}, raw)

	assert.Empty(t, party.Bills)
	assert.True(t, party.BalanceDebit.IsZero())
	assert.True(t, party.BalanceCredit.Equal(decimal.NewFromInt(200)))
	assert.True(t, party.RawBalance.Equal(decimal.NewFromInt(-200)))
}

func TestFinalizeCreditConservation(t *testing.T) {
	raw := []models.Bill{
		rawBill("A", "2024-01-10", "120.50"),
		rawBill("B", "2024-02-10", "80.25"),
		rawBill("C", "2024-03-10", "40"),
		rawBill("", "", "-150"),
		rawBill("", "", "-10.75"),
	}

	totalPositive := decimal.Zero
	totalNegative := decimal.Zero
	for _, b := range raw {
		if b.BillAmt.IsPositive() {
			totalPositive = totalPositive.Add(b.BillAmt)
		} else {
			totalNegative = totalNegative.Add(b.BillAmt.Abs())
		}
	}

	party := Finalize(&models.Party{ID: "p1", PartyName: "Acme"}, raw)

	remaining := decimal.Zero
	for _, b := range party.Bills {
		remaining = remaining.Add(b.BillAmt)
	}

	creditConsumed := totalPositive.Sub(remaining)
	// credit is neither created nor destroyed
	assert.True(t, creditConsumed.Add(party.BalanceCredit).Equal(totalNegative),
		"consumed %s + leftover %s != pooled %s", creditConsumed, party.BalanceCredit, totalNegative)
}

func TestFinalizeStableTieOrder(t *testing.T) {
	raw := []models.Bill{
		rawBill("FIRST", "2024-01-01", "10"),
		rawBill("SECOND", "2024-01-01", "20"),
		rawBill("THIRD", "2024-01-01", "30"),
	}

	party := Finalize(&models.Party{ID: "p1", PartyName: "Acme"}, raw)

	require.Len(t, party.Bills, 3)
	assert.Equal(t, "FIRST", party.Bills[0].BillNo)
	assert.Equal(t, "SECOND", party.Bills[1].BillNo)
	assert.Equal(t, "THIRD", party.Bills[2].BillNo)
}

func TestFinalizeUnparsableDateAbsorbsFirst(t *testing.T) {
	raw := []models.Bill{
		rawBill("DATED", "2024-01-01", "100"),
		rawBill("UNDATED", "garbage", "60"),
		rawBill("", "", "-60"),
	}

	party := Finalize(&models.Party{ID: "p1", PartyName: "Acme"}, raw)

	// the undated bill sorts as oldest and soaks up the whole pool
	require.Len(t, party.Bills, 1)
	assert.Equal(t, "DATED", party.Bills[0].BillNo)
	assert.True(t, party.Bills[0].BillAmt.Equal(decimal.NewFromInt(100)))
}

func TestFinalizeZeroAmountBillsDropped(t *testing.T) {
	raw := []models.Bill{
		rawBill("ZERO", "2024-01-01", "0"),
		rawBill("KEPT", "2024-02-01", "10"),
	}

	party := Finalize(&models.Party{ID: "p1", PartyName: "Acme"}, raw)

	require.Len(t, party.Bills, 1)
	assert.Equal(t, "KEPT", party.Bills[0].BillNo)
}

func TestFinalizeIdempotentWithoutNegatives(t *testing.T) {
	raw := []models.Bill{
		rawBill("A", "2024-01-01", "100"),
		rawBill("B", "2024-02-01", "50"),
		rawBill("", "", "-30"),
	}

	party := Finalize(&models.Party{ID: "p1", PartyName: "Acme"}, raw)
	first := party.Clone()

	// after the first run no negative bills remain, so a second pass is a no-op
	again := Finalize(party, party.Bills)

	require.Len(t, again.Bills, len(first.Bills))
	for i := range again.Bills {
		assert.True(t, again.Bills[i].BillAmt.Equal(first.Bills[i].BillAmt))
	}
	assert.True(t, again.BalanceDebit.Equal(first.BalanceDebit))
	assert.True(t, again.BalanceCredit.Equal(first.BalanceCredit))
}
