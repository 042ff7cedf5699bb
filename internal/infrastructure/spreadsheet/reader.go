// Package spreadsheet reads and writes the tabular files used for bulk
// product import and export: CSV and Excel workbooks.
package spreadsheet

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// Format is a supported file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var (
	// ErrEmptyFile is returned when the file has no content
	ErrEmptyFile = errors.New("file is empty")
	// ErrInvalidEncoding is returned when a CSV file is not UTF-8
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")
	// ErrMissingHeader is returned when the first row is missing
	ErrMissingHeader = errors.New("file has no header row")
	// ErrUnsupportedFormat is returned for anything other than .csv and .xlsx
	ErrUnsupportedFormat = errors.New("unsupported file format, expected .csv or .xlsx")
)

// FormatOf returns the format implied by a file name
func FormatOf(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", ErrUnsupportedFormat
}

// ParseFormat parses "csv" or "xlsx"; empty means csv
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", ErrUnsupportedFormat
}

// Row is one data row keyed by normalised header
type Row struct {
	LineNumber int
	data       map[string]string
}

// Get returns the value in column header; matching ignores case and surrounding spaces
func (r Row) Get(header string) string {
	return r.data[normalizeHeader(header)]
}

// IsEmpty reports whether every cell is blank
func (r Row) IsEmpty() bool {
	for _, v := range r.data {
		if v != "" {
			return false
		}
	}
	return true
}

// Table is a parsed file: headers in file order plus the non-empty data rows
type Table struct {
	Headers []string
	Rows    []Row
}

// HasHeader reports whether the table carries a column
func (t *Table) HasHeader(name string) bool {
	want := normalizeHeader(name)
	for _, h := range t.Headers {
		if normalizeHeader(h) == want {
			return true
		}
	}
	return false
}

// Read parses r in the given format
func Read(format Format, r io.Reader) (*Table, error) {
	switch format {
	case FormatCSV:
		return ReadCSV(r)
	case FormatXLSX:
		return ReadXLSX(r)
	}
	return nil, ErrUnsupportedFormat
}

// ReadCSV parses a UTF-8 CSV file, stripping a leading byte order mark
func ReadCSV(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(3); err == nil && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		_, _ = br.Discard(3)
	}

	head, err := br.Peek(4096)
	if err != nil && err != io.EOF && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(head) == 0 {
		return nil, ErrEmptyFile
	}
	if !utf8.Valid(trimPartialRune(head)) {
		return nil, ErrInvalidEncoding
	}

	cr := csv.NewReader(br)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return fromRecords(records)
}

// ReadXLSX parses the first worksheet of an Excel workbook
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", sheets[0], err)
	}
	return fromRecords(records)
}

func fromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrMissingHeader
	}
	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}
	if len(headers) == 0 {
		return nil, ErrMissingHeader
	}

	t := &Table{Headers: headers}
	for i, rec := range records[1:] {
		row := Row{LineNumber: i + 2, data: make(map[string]string, len(headers))}
		for j, h := range headers {
			if j < len(rec) {
				row.data[normalizeHeader(h)] = strings.TrimSpace(rec[j])
			} else {
				row.data[normalizeHeader(h)] = ""
			}
		}
		if !row.IsEmpty() {
			t.Rows = append(t.Rows, row)
		}
	}
	return t, nil
}

// trimPartialRune drops a multi-byte rune cut off by the peek window
func trimPartialRune(b []byte) []byte {
	for i := 1; i <= utf8.UTFMax && i <= len(b); i++ {
		if utf8.RuneStart(b[len(b)-i]) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}
			break
		}
	}
	return b
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}
