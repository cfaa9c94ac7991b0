// Package classifier maps bill numbers to company names through a mutable
// prefix table. The table can be replaced wholesale at runtime (for example
// from an uploaded guide file); classification is always derived at read
// time and never cached on a bill, so a new table retroactively reclassifies
// everything.
package classifier

import (
	"regexp"
	"strings"
	"sync/atomic"

	"psharma/arledger/internal/logging"
)

// CompanyUnmapped is the sentinel category for bills whose number matches no
// known prefix. It is a display/grouping value, not an error.
const CompanyUnmapped = "Unmapped"

// Table maps a bill-number prefix to a company name.
type Table map[string]string

var nonAlnum = regexp.MustCompile(`[^A-Z0-9]`)

// entry is one prefix with its precomputed normalized forms.
type entry struct {
	raw          string // trimmed, uppercased prefix
	starStripped string // raw with a single leading '*' removed
	alnum        string // raw with all non-alphanumerics removed
	company      string
}

// Classifier resolves bill numbers against the current prefix table.
// Replace swaps the whole table atomically, so concurrent Classify calls
// never observe a partially-updated table.
type Classifier struct {
	entries atomic.Pointer[[]entry]
	source  atomic.Pointer[Table]
	logger  logging.Logger
}

// New creates a Classifier with an empty table.
func New(logger logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.GetLogger()
	}
	c := &Classifier{logger: logger}
	c.Replace(Table{})
	return c
}

// Replace installs a new prefix table, discarding the previous one.
func (c *Classifier) Replace(table Table) {
	entries := make([]entry, 0, len(table))
	for prefix, company := range table {
		raw := strings.ToUpper(strings.TrimSpace(prefix))
		if raw == "" {
			continue
		}
		entries = append(entries, entry{
			raw:          raw,
			starStripped: strings.TrimPrefix(raw, "*"),
			alnum:        nonAlnum.ReplaceAllString(raw, ""),
			company:      company,
		})
	}

	snapshot := make(Table, len(table))
	for k, v := range table {
		snapshot[k] = v
	}

	c.entries.Store(&entries)
	c.source.Store(&snapshot)

	c.logger.Debug("Prefix table replaced",
		logging.Field{Key: "prefixes", Value: len(entries)})
}

// Snapshot returns a copy of the currently installed table.
func (c *Classifier) Snapshot() Table {
	src := c.source.Load()
	out := make(Table, len(*src))
	for k, v := range *src {
		out[k] = v
	}
	return out
}

// Classify resolves a bill number to a company name. The second return
// value is false when no prefix matches.
//
// Matching runs in four stages, each tried across the whole table before
// the next: the raw uppercased bill number against the raw prefix, then the
// bill number with a leading '*' stripped, then with the star stripped from
// both sides, and finally an alphanumeric-only comparison that tolerates
// slash and dash drift between the ledger and the guide file.
func (c *Classifier) Classify(billNo string) (string, bool) {
	raw := strings.ToUpper(strings.TrimSpace(billNo))
	if raw == "" {
		return "", false
	}

	entries := *c.entries.Load()
	starStripped := strings.TrimPrefix(raw, "*")
	alnum := nonAlnum.ReplaceAllString(raw, "")

	for _, e := range entries {
		if strings.HasPrefix(raw, e.raw) {
			return e.company, true
		}
	}
	for _, e := range entries {
		if strings.HasPrefix(starStripped, e.raw) {
			return e.company, true
		}
	}
	for _, e := range entries {
		if e.starStripped != "" && strings.HasPrefix(starStripped, e.starStripped) {
			return e.company, true
		}
	}
	for _, e := range entries {
		if e.alnum != "" && strings.HasPrefix(alnum, e.alnum) {
			return e.company, true
		}
	}

	return "", false
}

// Company resolves a bill number to a company name, substituting the
// Unmapped sentinel on a miss. This is the form used by filtering,
// reporting, and export.
func (c *Classifier) Company(billNo string) string {
	if company, ok := c.Classify(billNo); ok {
		return company
	}
	return CompanyUnmapped
}
