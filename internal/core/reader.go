package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SourceFormat identifies the layout of an entry export.
type SourceFormat string

const (
	FormatCSV  SourceFormat = "csv"
	FormatXLSX SourceFormat = "xlsx"
)

// FormatFromPath picks the source format from a file extension.
func FormatFromPath(path string) (SourceFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadStats describes what a read consumed.
type ReadStats struct {
	Rows      int   // data rows returned, excluding the header and blank rows
	BytesRead int64 // CSV only
}

// ReadEntriesFile opens path and reads every entry record from it.
func ReadEntriesFile(path string) ([]EntryRecord, ReadStats, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, ReadStats{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return ReadEntries(f, format)
}

// ReadEntries reads every entry record from r. The first row must be the
// header; blank rows are ignored. Missing required columns abort the read.
func ReadEntries(r io.Reader, format SourceFormat) ([]EntryRecord, ReadStats, error) {
	switch format {
	case FormatCSV:
		return readCSV(r)
	case FormatXLSX:
		return readXLSX(r)
	default:
		return nil, ReadStats{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func readCSV(r io.Reader) ([]EntryRecord, ReadStats, error) {
	counter := WrapForReading(r)
	cr := csv.NewReader(counter)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ReadStats{}, ErrEmptyInput
	}
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("read header: %w", err)
	}

	idx, err := ValidateHeaders(header, EntryFieldSpecs)
	if err != nil {
		return nil, ReadStats{}, err
	}

	var records []EntryRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, ReadStats{}, fmt.Errorf("read csv: %w", err)
		}
		if isEmptyRow(row) {
			continue
		}
		line, _ := cr.FieldPos(0)
		records = append(records, idx.Record(row, line))
	}

	return records, ReadStats{Rows: len(records), BytesRead: counter.BytesRead}, nil
}

func readXLSX(r io.Reader) ([]EntryRecord, ReadStats, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ReadStats{}, ErrEmptyInput
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ReadStats{}, ErrEmptyInput
	}

	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	idx, err := ValidateHeaders(header, EntryFieldSpecs)
	if err != nil {
		return nil, ReadStats{}, err
	}

	var records []EntryRecord
	for i, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		records = append(records, idx.Record(row, i+2))
	}

	return records, ReadStats{Rows: len(records)}, nil
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
