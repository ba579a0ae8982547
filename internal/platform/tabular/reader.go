// Package tabular reads and writes the flat comma-separated tables the
// archive is curated in. Reading never fails: malformed quoting and ragged
// rows degrade to empty values instead of errors.
package tabular

import (
	"bytes"
	"strings"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// Row is one data row keyed by trimmed header name. Absent values are "".
type Row map[string]string

// Get returns the field value or "" when the column does not exist.
func (r Row) Get(name string) string {
	return r[name]
}

// Table is a parsed file: the header in column order plus its data rows.
type Table struct {
	Header []string
	Rows   []Row
}

func (t Table) HasColumn(name string) bool {
	for _, h := range t.Header {
		if h == name {
			return true
		}
	}
	return false
}

// StripBOM removes a leading UTF-8 byte-order-mark.
func StripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, bomUTF8)
}

// Records splits raw text into physical rows of untrimmed fields.
//
// A field starting with '"' is quoted until the matching unescaped quote;
// "" inside it is a literal quote and line breaks inside it are kept. Outside
// quotes a '\r' before '\n', ',' or end of input is dropped. An unterminated
// quote is closed at end of input.
func Records(data []byte) [][]string {
	data = StripBOM(data)

	var (
		rows     [][]string
		row      []string
		field    []byte
		inQuotes bool
		started  bool
	)

	endField := func() {
		row = append(row, string(field))
		field = field[:0]
		started = false
	}
	endRow := func() {
		endField()
		rows = append(rows, row)
		row = nil
	}

	for i := 0; i < len(data); i++ {
		c := data[i]
		if inQuotes {
			if c == '"' {
				if i+1 < len(data) && data[i+1] == '"' {
					field = append(field, '"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			field = append(field, c)
			continue
		}

		switch c {
		case '"':
			if !started && len(field) == 0 {
				inQuotes = true
				started = true
				continue
			}
			field = append(field, c)
		case ',':
			endField()
		case '\n':
			endRow()
		case '\r':
			if i+1 == len(data) || data[i+1] == '\n' || data[i+1] == ',' {
				continue
			}
			field = append(field, c)
		default:
			started = true
			field = append(field, c)
		}
	}

	if inQuotes || started || len(field) > 0 || len(row) > 0 {
		endRow()
	}

	return rows
}

// Parse reads a whole file into header-keyed rows. Rows whose fields are
// all blank are dropped, the first remaining row is the header, short rows
// are padded with "" and long rows are truncated to the header arity.
func Parse(data []byte) Table {
	var table Table
	for _, record := range Records(data) {
		if isBlankRecord(record) {
			continue
		}
		if table.Header == nil {
			table.Header = make([]string, len(record))
			for i, cell := range record {
				table.Header[i] = strings.TrimSpace(cell)
			}
			continue
		}

		row := make(Row, len(table.Header))
		for i, name := range table.Header {
			if name == "" {
				continue
			}
			if i < len(record) {
				row[name] = strings.TrimSpace(record[i])
			} else {
				row[name] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
