package classifier

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"psharma/arledger/internal/logging"
	"psharma/arledger/internal/parsererror"

	"github.com/xuri/excelize/v2"
)

// LoadGuideFile reads a two-column prefix guide (Prefix, Company Name) from
// a CSV or XLSX file. The header row is skipped. The result is meant to be
// installed wholesale via Classifier.Replace.
func LoadGuideFile(path string, logger logging.Logger) (Table, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.Info("Loading prefix guide", logging.Field{Key: "file", Value: path})

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readGuideCSV(path)
	case ".xlsx":
		rows, err = readGuideXLSX(path)
	default:
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "CSV or XLSX prefix guide",
			Msg:            fmt.Sprintf("unsupported extension %q", filepath.Ext(path)),
		}
	}
	if err != nil {
		return nil, err
	}

	table := make(Table)
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 2 {
			continue
		}
		prefix := strings.TrimSpace(row[0])
		company := strings.TrimSpace(row[1])
		if prefix == "" || company == "" {
			continue
		}
		table[prefix] = company
	}

	if len(table) == 0 {
		return nil, &parsererror.DataExtractionError{
			FilePath:  path,
			FieldName: "Prefix",
			Msg:       "guide file contains no usable prefix rows",
		}
	}

	logger.Info("Prefix guide loaded",
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "prefixes", Value: len(table)})
	return table, nil
}

func readGuideCSV(path string) ([][]string, error) {
	file, err := os.Open(path) // #nosec G304 -- CLI tool reads user-provided paths
	if err != nil {
		return nil, fmt.Errorf("error opening guide file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading guide CSV: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func readGuideXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening guide workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "XLSX prefix guide",
			Msg:            "workbook has no sheets",
		}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading guide sheet: %w", err)
	}
	return rows, nil
}
