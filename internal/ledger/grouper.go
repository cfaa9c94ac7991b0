package ledger

import (
	"strings"

	"psharma/arledger/internal/currencyutils"
	"psharma/arledger/internal/logging"
	"psharma/arledger/internal/models"

	"github.com/google/uuid"
)

// GroupRows splits the flat row stream into finalized parties. A row with a
// non-empty party name starts a new party; every following row without one
// is a detail row for that party. Each party is finalized exactly once,
// immediately when the next header row (or the end of input) is reached.
func GroupRows(rows []models.RawRow, logger logging.Logger) []*models.Party {
	if logger == nil {
		logger = logging.GetLogger()
	}

	var parties []*models.Party
	var current *models.Party
	var raw []models.Bill

	flush := func() {
		if current == nil {
			return
		}
		parties = append(parties, Finalize(current, raw))
		current = nil
		raw = nil
	}

	for i, row := range rows {
		if strings.TrimSpace(row.PartyName) != "" {
			flush()
			current = &models.Party{
				ID: uuid.NewString(),
				// preserved byte for byte: this is the external join key
				PartyName: row.PartyName,
			}
			if opening := currencyutils.Round2(currencyutils.CleanCurrency(row.Balance)); !opening.IsZero() {
				// The header's balance is the party's opening position. It
				// enters reconciliation as a dateless bill: positive amounts
				// are the oldest debt, negative amounts feed the credit pool.
				raw = append(raw, models.Bill{
					ID:              uuid.NewString(),
					BillAmt:         opening,
					OriginalBillAmt: opening,
					Status:          models.StatusUnpaid,
				})
			}
			continue
		}

		if current == nil {
			logger.Warn("Detail row before any party header, skipping",
				logging.Field{Key: "row", Value: i + 1},
				logging.Field{Key: "billNo", Value: row.BillNo})
			continue
		}

		if bill, ok := detailBill(row); ok {
			raw = append(raw, bill)
		}
	}
	flush()

	logger.Info("Grouped ledger rows",
		logging.Field{Key: "rows", Value: len(rows)},
		logging.Field{Key: "parties", Value: len(parties)})
	return parties
}

// detailBill converts a detail row into a raw bill. Padding rows, i.e. rows
// with zero amount and neither bill number nor date, are dropped.
func detailBill(row models.RawRow) (models.Bill, bool) {
	amount := currencyutils.CleanCurrency(row.BillAmt)
	received := currencyutils.CleanCurrency(row.Received)
	// subtract only a nonzero Received to avoid negative-zero artifacts
	if !received.IsZero() {
		amount = amount.Sub(received)
	}
	amount = currencyutils.Round2(amount)

	billNo := strings.TrimSpace(row.BillNo)
	billDate := strings.TrimSpace(row.BillDate)
	if amount.IsZero() && billNo == "" && billDate == "" {
		return models.Bill{}, false
	}

	return models.Bill{
		ID:              uuid.NewString(),
		BillNo:          billNo,
		BillDate:        billDate,
		BillAmt:         amount,
		OriginalBillAmt: amount,
		DueDate:         strings.TrimSpace(row.DueDate),
		Days:            currencyutils.ParseDayCount(row.Days),
		Status:          models.StatusUnpaid,
	}, true
}
