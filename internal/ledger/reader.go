// Package ledger turns a flat ledger export into reconciled per-party
// records. Reading happens in three steps: the file reader produces raw
// rows, the grouper splits them into parties, and the finalizer allocates
// each party's credit against its oldest bills.
package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"psharma/arledger/internal/logging"
	"psharma/arledger/internal/models"
	"psharma/arledger/internal/parsererror"

	"github.com/xuri/excelize/v2"
)

// Column headers expected in the export. Readers match them by name so the
// column order in the file does not matter.
const (
	colPartyName = "Party Name"
	colBillNo    = "Bill No."
	colBillDate  = "Bill Date"
	colBillAmt   = "Bill Amt."
	colReceived  = "Received"
	colBalance   = "Balance"
	colDueDate   = "Due Date"
	colDays      = "Days"
)

// ReadFile reads a ledger export into raw rows. CSV and XLSX are supported;
// any other extension fails the whole operation, as does an unreadable
// file. No partial dataset is ever returned.
func ReadFile(path string, logger logging.Logger) ([]models.RawRow, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.Info("Reading ledger export", logging.Field{Key: "file", Value: path})

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		file, err := os.Open(path) // #nosec G304 -- CLI tool reads user-provided paths
		if err != nil {
			return nil, fmt.Errorf("error opening ledger file: %w", err)
		}
		defer func() {
			if err := file.Close(); err != nil {
				logger.WithError(err).Warn("Failed to close ledger file")
			}
		}()
		return ReadCSV(file, logger)
	case ".xlsx":
		return readXLSX(path, logger)
	default:
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "CSV or XLSX ledger export",
			Msg:            fmt.Sprintf("unsupported extension %q", filepath.Ext(path)),
		}
	}
}

// ReadCSV reads ledger rows from CSV data. The first row must be the
// header; columns are matched by name and missing cells default to empty.
func ReadCSV(r io.Reader, logger logging.Logger) ([]models.RawRow, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, &parsererror.InvalidFormatError{
				FilePath:       "(from reader)",
				ExpectedFormat: "ledger CSV",
				Msg:            "file is empty",
			}
		}
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	var rows []models.RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.WithError(err).Warn("Skipping malformed CSV row")
			continue
		}
		rows = append(rows, mapRecord(header, record))
	}

	logger.Info("Ledger rows read", logging.Field{Key: "rows", Value: len(rows)})
	return rows, nil
}

func readXLSX(path string, logger logging.Logger) ([]models.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening ledger workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "XLSX ledger export",
			Msg:            "workbook has no sheets",
		}
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading ledger sheet: %w", err)
	}
	if len(records) == 0 {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "XLSX ledger export",
			Msg:            "sheet is empty",
		}
	}

	header := records[0]
	rows := make([]models.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, mapRecord(header, record))
	}

	logger.Info("Ledger rows read", logging.Field{Key: "rows", Value: len(rows)})
	return rows, nil
}

// mapRecord maps a record onto a RawRow by header name. Short records are
// padded with empty cells.
func mapRecord(header, record []string) models.RawRow {
	var row models.RawRow
	for i, name := range header {
		var val string
		if i < len(record) {
			val = record[i]
		}
		switch strings.TrimSpace(name) {
		case colPartyName:
			row.PartyName = val
		case colBillNo:
			row.BillNo = val
		case colBillDate:
			row.BillDate = val
		case colBillAmt:
			row.BillAmt = val
		case colReceived:
			row.Received = val
		case colBalance:
			row.Balance = val
		case colDueDate:
			row.DueDate = val
		case colDays:
			row.Days = val
		}
	}
	return row
}
