package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"psharma/arledger/internal/logging"
	"psharma/arledger/internal/parsererror"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

// WriteFile writes the records to CSV or XLSX depending on the output
// file's extension.
func WriteFile(records []BillRecord, path, sheet string, logger logging.Logger) error {
	if logger == nil {
		logger = logging.GetLogger()
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return writeCSV(records, path, logger)
	case ".xlsx":
		return writeXLSX(records, path, sheet, logger)
	default:
		return &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "CSV or XLSX output",
			Msg:            fmt.Sprintf("unsupported extension %q", filepath.Ext(path)),
		}
	}
}

func writeCSV(records []BillRecord, path string, logger logging.Logger) error {
	file, err := os.Create(path) // #nosec G304 -- CLI tool writes user-provided paths
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close output file")
		}
	}()

	if err := gocsv.MarshalFile(&records, file); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}

	logger.Info("Report written",
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "rows", Value: len(records)})
	return nil
}

var xlsxHeaders = []string{
	"Party Name", "Phone", "Bill No.", "Company", "Bill Date",
	"Due Date", "Days", "Amount", "Original Amount", "Status",
}

func writeXLSX(records []BillRecord, path, sheet string, logger logging.Logger) error {
	if sheet == "" {
		sheet = "Outstanding"
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			logger.WithError(err).Debug("Could not remove default sheet")
		}
	}

	for col, h := range xlsxHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("error writing header: %w", err)
		}
	}

	for i, r := range records {
		values := []interface{}{
			r.PartyName, r.PhoneNumber, r.BillNo, r.Company, r.BillDate,
			r.DueDate, r.Days, r.Amount, r.Original, r.Status,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("error writing row %d: %w", i+2, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("error saving workbook: %w", err)
	}

	logger.Info("Report written",
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "rows", Value: len(records)})
	return nil
}
