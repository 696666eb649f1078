package capability

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// utf8BOM is the byte-order marker Excel prepends to UTF-8 CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseTokens converts freeform delimited text into a measurement
// sequence. Input is split on newlines and commas; tokens are trimmed,
// empty tokens dropped, and tokens that fail numeric conversion excluded.
// Order of the surviving values is preserved.
func ParseTokens(text string) []float64 {
	values := make([]float64, 0)
	for _, line := range strings.Split(text, "\n") {
		for _, token := range strings.Split(line, ",") {
			if v, ok := parseValue(token); ok {
				values = append(values, v)
			}
		}
	}
	return values
}

// ParseCSV extracts a measurement sequence from raw CSV bytes.
//
// A header row is assumed when the first row contains any cell that does
// not convert to a number; otherwise the file is treated as headerless.
// With exactly one column the column is used directly and the column
// argument is ignored. With multiple columns the caller must name the
// measurement column — a header name when the file has a header, a
// 0-based index otherwise. An unresolved selection yields an empty
// sequence rather than a guess.
//
// Quoting damage never aborts the parse: lazy quoting is enabled and
// any record that still fails to read is dropped, the same way a
// non-numeric cell is dropped.
func ParseCSV(data []byte, column string) ([]float64, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		rows = append(rows, record)
	}
	return columnValues(rows, column), nil
}

// ParseWorkbook extracts a measurement sequence from xlsx bytes. The
// first sheet is used when sheet is empty; column selection and header
// handling follow ParseCSV.
func ParseWorkbook(data []byte, sheet, column string) ([]float64, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return columnValues(rows, column), nil
}

// columnValues resolves the measurement column in a row grid and parses
// its cells. Rows that are entirely empty are skipped; cells that fail
// conversion are dropped.
func columnValues(rows [][]string, column string) []float64 {
	rows = dropEmptyRows(rows)
	if len(rows) == 0 {
		return []float64{}
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	hasHeader := looksLikeHeader(rows[0])

	idx := -1
	switch {
	case width == 1:
		idx = 0
	case hasHeader:
		want := strings.ToLower(strings.TrimSpace(column))
		if want == "" {
			return []float64{}
		}
		for j, name := range rows[0] {
			if strings.ToLower(strings.TrimSpace(name)) == want {
				idx = j
				break
			}
		}
	default:
		// Headerless multi-column: the identifier is a 0-based index.
		j, err := strconv.Atoi(strings.TrimSpace(column))
		if err == nil && j >= 0 && j < width {
			idx = j
		}
	}
	if idx < 0 {
		return []float64{}
	}

	data := rows
	if hasHeader {
		data = rows[1:]
	}

	values := make([]float64, 0, len(data))
	for _, row := range data {
		if idx >= len(row) {
			continue
		}
		if v, ok := parseValue(row[idx]); ok {
			values = append(values, v)
		}
	}
	return values
}

// looksLikeHeader reports whether a row reads as column labels: at least
// one non-empty cell that does not convert to a number. A fully numeric
// first row is taken as data, so a lone value is not swallowed as a
// label.
func looksLikeHeader(row []string) bool {
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if _, ok := parseValue(cell); !ok {
			return true
		}
	}
	return false
}

// parseValue attempts numeric conversion of a single raw token. Thousands
// separators are tolerated the way spreadsheet exports write them.
func parseValue(token string) (float64, bool) {
	token = strings.ReplaceAll(strings.TrimSpace(token), ",", "")
	if token == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func dropEmptyRows(rows [][]string) [][]string {
	kept := make([][]string, 0, len(rows))
	for _, row := range rows {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			kept = append(kept, row)
		}
	}
	return kept
}
