// Package parsererror defines the typed errors raised by ledger and guide
// file ingestion.
package parsererror

import "fmt"

// ParseError represents a failure to parse a specific field of a row.
type ParseError struct {
	Source string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Source, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError means the input file does not conform to the expected
// format for its reader, e.g. an unsupported extension or a missing header.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// DataExtractionError means required data could not be extracted from a file
// even though its overall format was readable.
type DataExtractionError struct {
	FilePath       string
	FieldName      string
	RawDataSnippet string
	Msg            string
}

func (e *DataExtractionError) Error() string {
	if e.RawDataSnippet != "" {
		return fmt.Sprintf("data extraction failed in file '%s' for field '%s': %s. Raw data snippet: '%s'",
			e.FilePath, e.FieldName, e.Msg, e.RawDataSnippet)
	}
	return fmt.Sprintf("data extraction failed in file '%s' for field '%s': %s",
		e.FilePath, e.FieldName, e.Msg)
}
