// Package contacts merges externally stored phone numbers into reconciled
// parties. The phone book is keyed by party name; matching is first exact
// (trimmed, case-insensitive) and then fuzzy with punctuation stripped, so
// "M/s. Acme & Co" still finds "MS ACME CO".
//
// The merge is fire-and-forget with respect to the ledger model: a missing
// or unreadable phone book never fails reconciliation.
package contacts

import (
	"regexp"
	"strings"

	"psharma/arledger/internal/logging"
	"psharma/arledger/internal/models"
)

var punctuation = regexp.MustCompile(`[^a-z0-9]`)

// PhoneBook maps party names to phone numbers.
type PhoneBook map[string]string

// normalizeName is the exact-match key: trimmed and lowercased.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// fuzzyKey strips everything but letters and digits.
func fuzzyKey(name string) string {
	return punctuation.ReplaceAllString(normalizeName(name), "")
}

// Merge returns a new party list with phone numbers populated from the
// book. Parties already carrying a number keep it unless the book has an
// override. The input parties are not mutated.
func Merge(parties []*models.Party, book PhoneBook, logger logging.Logger) []*models.Party {
	if logger == nil {
		logger = logging.GetLogger()
	}

	exact := make(map[string]string, len(book))
	fuzzy := make(map[string]string, len(book))
	for name, phone := range book {
		if phone == "" {
			continue
		}
		exact[normalizeName(name)] = phone
		if key := fuzzyKey(name); key != "" {
			fuzzy[key] = phone
		}
	}

	matched := 0
	out := make([]*models.Party, len(parties))
	for i, p := range parties {
		clone := p.Clone()
		if phone, ok := exact[normalizeName(p.PartyName)]; ok {
			clone.PhoneNumber = phone
			matched++
		} else if phone, ok := fuzzy[fuzzyKey(p.PartyName)]; ok {
			clone.PhoneNumber = phone
			matched++
		}
		out[i] = clone
	}

	logger.Info("Merged phone book into parties",
		logging.Field{Key: "parties", Value: len(parties)},
		logging.Field{Key: "matched", Value: matched})
	return out
}
