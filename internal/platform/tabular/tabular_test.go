package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_QuotingRoundTrip(t *testing.T) {
	t.Parallel()

	values := []string{
		`plain`,
		`comma, inside`,
		`He said "hi"`,
		"line one\nline two",
		"crlf one\r\nline two",
		`"fully quoted"`,
		`mixed "quote", comma` + "\nand newline",
	}

	rows := make([][]string, 0, len(values))
	for i, v := range values {
		rows = append(rows, []string{string(rune('a' + i)), v})
	}

	for _, opts := range []WriteOptions{{}, SpreadsheetOptions} {
		table := Parse(Encode([]string{"id", "value"}, rows, opts))
		require.Len(t, table.Rows, len(values))
		for i, v := range values {
			assert.Equal(t, v, table.Rows[i].Get("value"), "row %d opts %+v", i, opts)
		}
	}
}

func TestParse_BOMIdempotent(t *testing.T) {
	t.Parallel()

	body := "competition,edition\nWC,2026\n"
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, body...)

	plain := Parse([]byte(body))
	bom := Parse(withBOM)

	assert.Equal(t, plain, bom)
	assert.Equal(t, []string{"competition", "edition"}, bom.Header)
}

func TestParse_LineEndingsAndTrailingCR(t *testing.T) {
	t.Parallel()

	table := Parse([]byte("a,b\r\n1,2\r\n3,4\n5,6\r"))
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "2", table.Rows[0].Get("b"))
	assert.Equal(t, "4", table.Rows[1].Get("b"))
	assert.Equal(t, "6", table.Rows[2].Get("b"))
}

func TestParse_RaggedAndBlankRows(t *testing.T) {
	t.Parallel()

	input := " name , club ,height\n" +
		",,\n" +
		"  \n" +
		"Tanaka\n" +
		"Suzuki,Kashima,180,extra,cells\n"

	table := Parse([]byte(input))
	assert.Equal(t, []string{"name", "club", "height"}, table.Header)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, Row{"name": "Tanaka", "club": "", "height": ""}, table.Rows[0])
	assert.Equal(t, Row{"name": "Suzuki", "club": "Kashima", "height": "180"}, table.Rows[1])
}

func TestParse_UnterminatedQuoteClosesAtEOF(t *testing.T) {
	t.Parallel()

	table := Parse([]byte("name,note\nA,\"open field\nstill open"))
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "A", table.Rows[0].Get("name"))
	assert.Equal(t, "open field\nstill open", table.Rows[0].Get("note"))
}

func TestRecords_StrayQuoteInUnquotedField(t *testing.T) {
	t.Parallel()

	records := Records([]byte(`5'11",x` + "\n"))
	require.Len(t, records, 1)
	assert.Equal(t, []string{`5'11"`, "x"}, records[0])
}

func TestParse_EmptyInput(t *testing.T) {
	t.Parallel()

	table := Parse(nil)
	assert.Nil(t, table.Header)
	assert.Empty(t, table.Rows)
}

func TestEncodeRows_FollowsHeaderOrder(t *testing.T) {
	t.Parallel()

	out := EncodeRows([]string{"b", "a"}, []Row{{"a": "1", "b": "2", "c": "ignored"}}, WriteOptions{})
	assert.Equal(t, "b,a\n2,1\n", string(out))
}

func TestEncode_SpreadsheetLayout(t *testing.T) {
	t.Parallel()

	out := Encode([]string{"k"}, [][]string{{"v"}}, SpreadsheetOptions)
	assert.Equal(t, "\xEF\xBB\xBFk\r\nv\r\n", string(out))
}

func TestReadFile_MissingAndAtomicWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "table.csv")

	_, found, err := ReadFile(path)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, WriteFileAtomic(path, []byte("k\nv1\n")))
	require.NoError(t, WriteFileAtomic(path, []byte("k\nv2\n")))

	table, found, err := ReadFile(path)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "v2", table.Rows[0].Get("k"))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}
