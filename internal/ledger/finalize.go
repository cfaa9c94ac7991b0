package ledger

import (
	"sort"

	"psharma/arledger/internal/currencyutils"
	"psharma/arledger/internal/dateutils"
	"psharma/arledger/internal/logging"
	"psharma/arledger/internal/models"

	"github.com/shopspring/decimal"
)

// Finalize settles a party's raw bills by allocating the aggregate credit
// against the oldest positive bills first. It runs exactly once per party;
// the session layer recomputes aggregates afterwards but never calls this
// again, because a second allocation would reshuffle which bills absorbed
// credit.
//
// The output bill list contains only the positive bills that survived
// allocation, in oldest-first order. Fully absorbed bills and all negative
// bills are gone; a partially absorbed bill keeps its original amount in
// OriginalBillAmt.
func Finalize(party *models.Party, raw []models.Bill) *models.Party {
	positives := make([]models.Bill, 0, len(raw))
	credit := decimal.Zero
	for _, b := range raw {
		switch {
		case b.BillAmt.IsPositive():
			positives = append(positives, b)
		case b.BillAmt.IsNegative():
			credit = credit.Add(b.BillAmt.Abs())
		}
	}
	credit = currencyutils.Round2(credit)

	// Oldest first; stable so same-day bills keep their file order. An
	// unparsable date sorts as 0 and therefore absorbs credit first.
	sort.SliceStable(positives, func(i, j int) bool {
		return dateutils.ParseMillis(positives[i].BillDate) < dateutils.ParseMillis(positives[j].BillDate)
	})

	bills := make([]models.Bill, 0, len(positives))
	for _, b := range positives {
		if credit.IsPositive() {
			if credit.GreaterThanOrEqual(b.BillAmt) {
				// fully settled by credit, bill disappears
				credit = currencyutils.Round2(credit.Sub(b.BillAmt))
				continue
			}
			b.BillAmt = currencyutils.Round2(b.BillAmt.Sub(credit))
			credit = decimal.Zero
		}
		bills = append(bills, b)
	}

	debit := decimal.Zero
	for _, b := range bills {
		debit = debit.Add(b.BillAmt)
	}
	debit = currencyutils.Round2(debit)

	party.Bills = bills
	party.BalanceDebit = debit
	party.BalanceCredit = credit
	party.RawBalance = currencyutils.Round2(debit.Sub(credit))
	return party
}

// ParseFile is the full ingestion pipeline: read the export, group the rows,
// finalize every party.
func ParseFile(path string, logger logging.Logger) ([]*models.Party, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	rows, err := ReadFile(path, logger)
	if err != nil {
		return nil, err
	}
	return GroupRows(rows, logger), nil
}
