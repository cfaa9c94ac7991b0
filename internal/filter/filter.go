// Package filter evaluates the bill-selection criteria shared by the
// dashboard views, reports, and exports. Every consumer must go through
// Matches/MatchesActive so that filtering semantics never diverge between
// surfaces.
package filter

import (
	"strings"

	"psharma/arledger/internal/classifier"
	"psharma/arledger/internal/dateutils"
	"psharma/arledger/internal/models"
)

// Criteria describes a bill filter. Zero values mean "not set": an empty
// company list, MinDays 0, and From/To 0 each disable their check.
type Criteria struct {
	Companies []string
	MinDays   int
	From      int64 // epoch millis, inclusive
	To        int64 // epoch millis, inclusive
}

// ParseDates builds date bounds from the textual from/to values used on the
// command line. An unparsable bound is treated as unset.
func (c *Criteria) ParseDates(from, to string) {
	c.From = dateutils.ParseMillis(from)
	c.To = dateutils.ParseMillis(to)
}

// Matches reports whether a bill passes the company, day-count, and date
// criteria. This is the "display" mode: the bill's paid/dispute status is
// ignored. Bills with no outstanding amount never match.
func Matches(bill models.Bill, c Criteria, cls *classifier.Classifier) bool {
	if !bill.BillAmt.IsPositive() {
		return false
	}

	if len(c.Companies) > 0 {
		company := cls.Company(bill.BillNo)
		found := false
		for _, want := range c.Companies {
			if strings.EqualFold(company, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if c.MinDays > 0 && bill.Days < c.MinDays {
		return false
	}

	if c.From != 0 || c.To != 0 {
		d := dateutils.ParseMillis(bill.BillDate)
		if d == 0 {
			// no valid date, excluded whenever a date bound is active
			return false
		}
		if c.From != 0 && c.To != 0 {
			if d < c.From || d > c.To {
				return false
			}
		} else {
			// Single-bound convention: one bound, whichever side it was
			// given on, means "everything up to this date" inclusive.
			bound := c.From
			if bound == 0 {
				bound = c.To
			}
			if d > bound {
				return false
			}
		}
	}

	return true
}

// MatchesActive is the "active" mode: like Matches but bills already marked
// paid or disputed are excluded. Aggregations of outstanding amounts use
// this form.
func MatchesActive(bill models.Bill, c Criteria, cls *classifier.Classifier) bool {
	if !bill.IsActive() {
		return false
	}
	return Matches(bill, c, cls)
}

// Bills returns the party's bills passing the criteria in active mode.
func Bills(party *models.Party, c Criteria, cls *classifier.Classifier) []models.Bill {
	var out []models.Bill
	for _, b := range party.Bills {
		if MatchesActive(b, c, cls) {
			out = append(out, b)
		}
	}
	return out
}
