package contacts

import (
	"testing"

	"psharma/arledger/internal/logging"
	"psharma/arledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeExactMatch(t *testing.T) {
	parties := []*models.Party{
		{ID: "p1", PartyName: "Acme Traders"},
		{ID: "p2", PartyName: "Nobody Known"},
	}
	book := PhoneBook{"Acme Traders": "+91 98765 43210"}

	out := Merge(parties, book, &logging.MockLogger{})

	require.Len(t, out, 2)
	assert.Equal(t, "+91 98765 43210", out[0].PhoneNumber)
	assert.Empty(t, out[1].PhoneNumber)
}

func TestMergeExactMatchIgnoresCaseAndPadding(t *testing.T) {
	parties := []*models.Party{{ID: "p1", PartyName: "  ACME TRADERS  "}}
	book := PhoneBook{"acme traders": "12345"}

	out := Merge(parties, book, &logging.MockLogger{})

	assert.Equal(t, "12345", out[0].PhoneNumber)
}

func TestMergeFuzzyMatch(t *testing.T) {
	parties := []*models.Party{{ID: "p1", PartyName: "M/s. Acme & Co"}}
	book := PhoneBook{"MS ACME CO": "55555"}

	out := Merge(parties, book, &logging.MockLogger{})

	assert.Equal(t, "55555", out[0].PhoneNumber)
}

func TestMergeExactWinsOverFuzzy(t *testing.T) {
	parties := []*models.Party{{ID: "p1", PartyName: "Acme Co"}}
	book := PhoneBook{
		"Acme Co":  "exact",
		"A-cme Co": "fuzzy",
	}

	out := Merge(parties, book, &logging.MockLogger{})

	assert.Equal(t, "exact", out[0].PhoneNumber)
}

func TestMergeSkipsEmptyNumbers(t *testing.T) {
	parties := []*models.Party{{ID: "p1", PartyName: "Acme"}}
	book := PhoneBook{"Acme": ""}

	out := Merge(parties, book, &logging.MockLogger{})

	assert.Empty(t, out[0].PhoneNumber)
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	party := &models.Party{ID: "p1", PartyName: "Acme"}
	book := PhoneBook{"Acme": "99999"}

	out := Merge([]*models.Party{party}, book, &logging.MockLogger{})

	assert.Empty(t, party.PhoneNumber)
	assert.Equal(t, "99999", out[0].PhoneNumber)
	assert.NotSame(t, party, out[0])
}

func TestMergeEmptyBook(t *testing.T) {
	parties := []*models.Party{{ID: "p1", PartyName: "Acme"}}

	out := Merge(parties, nil, &logging.MockLogger{})

	require.Len(t, out, 1)
	assert.Empty(t, out[0].PhoneNumber)
}
