// Package tabular reads header-first tables from CSV and Excel files.
package tabular

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cinemood/cinemood-server/internal/normalize"
)

// ErrNoHeader is returned when a source has no header row.
var ErrNoHeader = errors.New("tabular: missing header row")

// Format identifies the on-disk encoding of a table.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFor picks the format from a file extension. Anything that is not
// an Excel workbook is read as CSV.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// Table is a header row plus data rows. Rows may be ragged.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// New builds a table and indexes its header.
func New(header []string, rows [][]string) *Table {
	t := &Table{Header: header, Rows: rows, index: make(map[string]int, len(header))}
	for i, h := range header {
		key := normalize.Header(h)
		if _, dup := t.index[key]; !dup {
			t.index[key] = i
		}
	}
	return t
}

// Column returns the index of the first alias present in the header.
// Aliases are compared case-insensitively after trimming.
// Returns -1 when none of the aliases exists.
func (t *Table) Column(aliases ...string) int {
	for _, a := range aliases {
		if i, ok := t.index[normalize.Header(a)]; ok {
			return i
		}
	}
	return -1
}

// Cell returns the cleaned value at row r, column c.
// The boolean is false when the cell is absent or empty.
func (t *Table) Cell(r, c int) (string, bool) {
	if c < 0 || r < 0 || r >= len(t.Rows) {
		return "", false
	}
	row := t.Rows[r]
	if c >= len(row) {
		return "", false
	}
	v := normalize.Cell(row[c])
	return v, v != ""
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Read loads a table from path, choosing the decoder from the extension.
// A missing file yields an error matching os.ErrNotExist.
func Read(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	switch FormatFor(path) {
	case FormatXLSX:
		return readXLSX(path)
	default:
		return readCSV(path)
	}
}

func readCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV decodes CSV from r. Records may have differing field counts.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows [][]string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, rec)
	}

	return New(header, rows), nil
}

func readXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	return New(rows[0], rows[1:]), nil
}
