// Package report builds filtered exports and summaries from the reconciled
// party list. It goes through the same filter predicate as every display
// path; a report must never select a different set of bills than the views.
package report

import (
	"sort"

	"psharma/arledger/internal/classifier"
	"psharma/arledger/internal/currencyutils"
	"psharma/arledger/internal/filter"
	"psharma/arledger/internal/models"

	"github.com/shopspring/decimal"
)

// BillRecord is one exported row: a bill with its party and derived company.
type BillRecord struct {
	PartyName   string `csv:"Party Name"`
	PhoneNumber string `csv:"Phone"`
	BillNo      string `csv:"Bill No."`
	Company     string `csv:"Company"`
	BillDate    string `csv:"Bill Date"`
	DueDate     string `csv:"Due Date"`
	Days        int    `csv:"Days"`
	Amount      string `csv:"Amount"`
	Original    string `csv:"Original Amount"`
	Status      string `csv:"Status"`
}

// Collect flattens the parties into export records, applying the criteria
// in active mode (paid and disputed bills are left out).
func Collect(parties []*models.Party, c filter.Criteria, cls *classifier.Classifier) []BillRecord {
	var records []BillRecord
	for _, party := range parties {
		for _, bill := range party.Bills {
			if !filter.MatchesActive(bill, c, cls) {
				continue
			}
			records = append(records, BillRecord{
				PartyName:   party.PartyName,
				PhoneNumber: party.PhoneNumber,
				BillNo:      bill.DisplayNo(),
				Company:     cls.Company(bill.BillNo),
				BillDate:    bill.BillDate,
				DueDate:     bill.DueDate,
				Days:        bill.Days,
				Amount:      currencyutils.FormatAmount(bill.BillAmt),
				Original:    currencyutils.FormatAmount(bill.OriginalBillAmt),
				Status:      string(bill.Status),
			})
		}
	}
	return records
}

// Summary aggregates the whole dataset after reconciliation.
type Summary struct {
	Parties     int
	Bills       int
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	NetBalance  decimal.Decimal
}

// BuildSummary computes dataset-level totals.
func BuildSummary(parties []*models.Party) Summary {
	s := Summary{
		Parties:     len(parties),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, p := range parties {
		s.Bills += len(p.Bills)
		s.TotalDebit = s.TotalDebit.Add(p.BalanceDebit)
		s.TotalCredit = s.TotalCredit.Add(p.BalanceCredit)
	}
	s.TotalDebit = currencyutils.Round2(s.TotalDebit)
	s.TotalCredit = currencyutils.Round2(s.TotalCredit)
	s.NetBalance = currencyutils.Round2(s.TotalDebit.Sub(s.TotalCredit))
	return s
}

// CompanyTotal is the outstanding position of one company across all parties.
type CompanyTotal struct {
	Company string
	Bills   int
	Total   decimal.Decimal
}

// CompanyTotals groups the filtered bills by their classified company,
// sorted by descending outstanding amount. Unclassified bills land under
// the Unmapped sentinel.
func CompanyTotals(parties []*models.Party, c filter.Criteria, cls *classifier.Classifier) []CompanyTotal {
	totals := make(map[string]*CompanyTotal)
	for _, party := range parties {
		for _, bill := range party.Bills {
			if !filter.MatchesActive(bill, c, cls) {
				continue
			}
			company := cls.Company(bill.BillNo)
			t, ok := totals[company]
			if !ok {
				t = &CompanyTotal{Company: company, Total: decimal.Zero}
				totals[company] = t
			}
			t.Bills++
			t.Total = t.Total.Add(bill.BillAmt)
		}
	}

	out := make([]CompanyTotal, 0, len(totals))
	for _, t := range totals {
		t.Total = currencyutils.Round2(t.Total)
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total.Equal(out[j].Total) {
			return out[i].Company < out[j].Company
		}
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

// UnmappedParties lists the names of parties carrying at least one active
// bill whose number matched no prefix. This is the actionable follow-up
// list for maintaining the prefix guide.
func UnmappedParties(parties []*models.Party, cls *classifier.Classifier) []string {
	var names []string
	for _, party := range parties {
		for _, bill := range party.Bills {
			if !bill.IsActive() || !bill.BillAmt.IsPositive() {
				continue
			}
			if _, ok := cls.Classify(bill.BillNo); !ok {
				names = append(names, party.PartyName)
				break
			}
		}
	}
	return names
}
