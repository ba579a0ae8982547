package tabular

import (
	"strings"

	"github.com/valyala/bytebufferpool"
)

// WriteOptions controls the byte layout of encoded tables.
type WriteOptions struct {
	BOM  bool
	CRLF bool
}

// SpreadsheetOptions writes a BOM and CRLF line endings so spreadsheet tools
// open the file as UTF-8.
var SpreadsheetOptions = WriteOptions{BOM: true, CRLF: true}

// Encode renders a header and positional rows. Fields are quoted only when
// they contain a delimiter, a quote or a line break.
func Encode(header []string, rows [][]string, opts WriteOptions) []byte {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if opts.BOM {
		_, _ = buf.Write(bomUTF8)
	}
	lineEnd := "\n"
	if opts.CRLF {
		lineEnd = "\r\n"
	}

	writeRecord(buf, header, lineEnd)
	for _, row := range rows {
		writeRecord(buf, row, lineEnd)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out
}

// EncodeRows renders keyed rows in header column order.
func EncodeRows(header []string, rows []Row, opts WriteOptions) []byte {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		record := make([]string, len(header))
		for i, name := range header {
			record[i] = row[name]
		}
		records = append(records, record)
	}
	return Encode(header, records, opts)
}

func writeRecord(buf *bytebufferpool.ByteBuffer, fields []string, lineEnd string) {
	for i, field := range fields {
		if i > 0 {
			_ = buf.WriteByte(',')
		}
		if !needsQuotes(field) {
			_, _ = buf.WriteString(field)
			continue
		}
		_ = buf.WriteByte('"')
		_, _ = buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		_ = buf.WriteByte('"')
	}
	_, _ = buf.WriteString(lineEnd)
}

func needsQuotes(field string) bool {
	return strings.ContainsAny(field, ",\"\r\n")
}
