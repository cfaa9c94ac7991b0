package models

// RawRow is one row of the ledger export exactly as read from the file,
// before any parsing. Missing cells are empty strings.
//
// A row with a non-empty PartyName opens a new party; rows with an empty
// PartyName are detail rows belonging to the most recently opened party.
type RawRow struct {
	PartyName string `csv:"Party Name"`
	BillNo    string `csv:"Bill No."`
	BillDate  string `csv:"Bill Date"`
	BillAmt   string `csv:"Bill Amt."`
	Received  string `csv:"Received"`
	Balance   string `csv:"Balance"`
	DueDate   string `csv:"Due Date"`
	Days      string `csv:"Days"`
}

// IsHeader reports whether the row starts a new party.
func (r RawRow) IsHeader() bool {
	return r.PartyName != ""
}
