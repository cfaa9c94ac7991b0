package ledger

import (
	"testing"

	"psharma/arledger/internal/logging"
	"psharma/arledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRowsOpeningCreditSettlesFirstBill(t *testing.T) {
	rows := []models.RawRow{
		{PartyName: "Acme", Balance: "-100"},
		{BillNo: "X1", BillAmt: "300", BillDate: "01-Jan-24", Days: "40"},
	}

	parties := GroupRows(rows, &logging.MockLogger{})

	require.Len(t, parties, 1)
	party := parties[0]
	assert.Equal(t, "Acme", party.PartyName)
	assert.True(t, party.BalanceCredit.IsZero())

	require.Len(t, party.Bills, 1)
	bill := party.Bills[0]
	assert.Equal(t, "X1", bill.BillNo)
	assert.True(t, bill.BillAmt.Equal(decimal.NewFromInt(200)), "got %s", bill.BillAmt)
	assert.True(t, bill.OriginalBillAmt.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 40, bill.Days)
	assert.True(t, party.BalanceDebit.Equal(decimal.NewFromInt(200)))
}

func TestGroupRowsOpeningDebitIsOldestBill(t *testing.T) {
	rows := []models.RawRow{
		{PartyName: "Acme", Balance: "50"},
		{BillNo: "X1", BillAmt: "100", BillDate: "01-Jan-24"},
		{BillAmt: "-50"},
	}

	parties := GroupRows(rows, &logging.MockLogger{})

	require.Len(t, parties, 1)
	party := parties[0]
	// the dateless opening bill absorbs the credit before the dated one
	require.Len(t, party.Bills, 1)
	assert.Equal(t, "X1", party.Bills[0].BillNo)
	assert.True(t, party.Bills[0].BillAmt.Equal(decimal.NewFromInt(100)))
	assert.True(t, party.BalanceDebit.Equal(decimal.NewFromInt(100)))
}

func TestGroupRowsMultipleParties(t *testing.T) {
	rows := []models.RawRow{
		{PartyName: "Acme"},
		{BillNo: "A1", BillAmt: "100", BillDate: "01-Jan-24"},
		{PartyName: "Bolt Traders"},
		{BillNo: "B1", BillAmt: "200", BillDate: "02-Jan-24"},
		{BillNo: "B2", BillAmt: "300", BillDate: "03-Jan-24"},
	}

	parties := GroupRows(rows, &logging.MockLogger{})

	require.Len(t, parties, 2)
	assert.Equal(t, "Acme", parties[0].PartyName)
	assert.Len(t, parties[0].Bills, 1)
	assert.Equal(t, "Bolt Traders", parties[1].PartyName)
	assert.Len(t, parties[1].Bills, 2)
}

func TestGroupRowsDuplicateNamesStayDistinct(t *testing.T) {
	rows := []models.RawRow{
		{PartyName: "Acme"},
		{BillNo: "A1", BillAmt: "100", BillDate: "01-Jan-24"},
		{PartyName: "Acme"},
		{BillNo: "A2", BillAmt: "200", BillDate: "02-Jan-24"},
	}

	parties := GroupRows(rows, &logging.MockLogger{})

	require.Len(t, parties, 2)
	assert.NotEqual(t, parties[0].ID, parties[1].ID)
	assert.Equal(t, "A1", parties[0].Bills[0].BillNo)
	assert.Equal(t, "A2", parties[1].Bills[0].BillNo)
}

func TestGroupRowsPartyNamePreservedVerbatim(t *testing.T) {
	rows := []models.RawRow{
		{PartyName: "  M/s. Acme & Co  "},
	}

	parties := GroupRows(rows, &logging.MockLogger{})

	require.Len(t, parties, 1)
	assert.Equal(t, "  M/s. Acme & Co  ", parties[0].PartyName)
}

func TestGroupRowsReceivedReducesBillAmount(t *testing.T) {
	rows := []models.RawRow{
		{PartyName: "Acme"},
		{BillNo: "X1", BillAmt: "1,000.00", Received: "250", BillDate: "01-Jan-24"},
	}

	parties := GroupRows(rows, &logging.MockLogger{})

	require.Len(t, parties, 1)
	require.Len(t, parties[0].Bills, 1)
	assert.True(t, parties[0].Bills[0].BillAmt.Equal(decimal.NewFromInt(750)))
}

func TestGroupRowsPaddingRowsDropped(t *testing.T) {
	rows := []models.RawRow{
		{PartyName: "Acme"},
		{},
		{BillAmt: "0.00"},
		{BillNo: "X1", BillAmt: "100", BillDate: "01-Jan-24"},
	}

	parties := GroupRows(rows, &logging.MockLogger{})

	require.Len(t, parties, 1)
	assert.Len(t, parties[0].Bills, 1)
}

func TestGroupRowsZeroAmountWithBillNoKept(t *testing.T) {
	rows := []models.RawRow{
		{PartyName: "Acme"},
		{BillNo: "FREE1", BillAmt: "0", BillDate: "01-Jan-24"},
	}

	parties := GroupRows(rows, &logging.MockLogger{})

	require.Len(t, parties, 1)
	// kept as a raw bill but dropped by finalization since it has no amount
	assert.Empty(t, parties[0].Bills)
	assert.True(t, parties[0].BalanceDebit.IsZero())
}

func TestGroupRowsOrphanDetailRowsSkipped(t *testing.T) {
	logger := &logging.MockLogger{}
	rows := []models.RawRow{
		{BillNo: "ORPHAN", BillAmt: "100", BillDate: "01-Jan-24"},
		{PartyName: "Acme"},
		{BillNo: "X1", BillAmt: "50", BillDate: "02-Jan-24"},
	}

	parties := GroupRows(rows, logger)

	require.Len(t, parties, 1)
	require.Len(t, parties[0].Bills, 1)
	assert.Equal(t, "X1", parties[0].Bills[0].BillNo)
	assert.True(t, logger.HasEntry("warn", "Detail row before any party header, skipping"))
}

func TestGroupRowsEmptyInput(t *testing.T) {
	parties := GroupRows(nil, &logging.MockLogger{})
	assert.Empty(t, parties)
}
