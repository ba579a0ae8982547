// Package textnorm holds the pure field normalizers applied to every value
// read from the curated spreadsheets. Every function is total: unparseable
// input yields the empty value instead of an error.
package textnorm

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var spaceReplacer = strings.NewReplacer(
	"\u00a0", " ",
	"\u2007", " ",
	"\u2009", " ",
	"\u200a", " ",
	"\u202f", " ",
	"\u3000", " ",
	"\t", " ",
)

var invisibleReplacer = strings.NewReplacer(
	"\u200b", "",
	"\u200c", "",
	"\u200d", "",
	"\u2060", "",
	"\ufeff", "",
	"\u00ad", "",
)

// Letters that do not decompose under NFD but are folded by hand.
var letterFolds = strings.NewReplacer(
	"ø", "o", "Ø", "O",
	"ß", "ss",
	"ł", "l", "Ł", "L",
	"đ", "d", "Đ", "D",
	"ð", "d", "Ð", "D",
	"þ", "th", "Þ", "Th",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ı", "i",
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var (
	isoDateRe     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	compactDateRe = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})$`)
	genericDateRe = regexp.MustCompile(`^(\d{4})\s*[-/.年]\s*(\d{1,2})\s*[-/.月]\s*(\d{1,2})(?:\D|$)`)
	heightRe      = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(cm|m)?`)
	intRe         = regexp.MustCompile(`^[+-]?\d+$`)
)

// Text trims, maps the non-breaking, narrow and ideographic space variants to
// an ASCII space and collapses whitespace runs.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(spaceReplacer.Replace(s)), " ")
}

// Date returns an ISO YYYY-MM-DD date or "".
//
// The exact ISO form is tried first, then a compact YYYYMMDD form, then the
// generic year-month-day pattern with '/', '.', '-' or 年月日 separators. Any
// trailing annotation after the day (an age suffix, a time) is ignored.
func Date(s string) string {
	s = width.Narrow.String(Text(s))
	if s == "" {
		return ""
	}

	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		return formatDate(m[1], m[2], m[3])
	}
	if m := compactDateRe.FindStringSubmatch(s); m != nil {
		return formatDate(m[1], m[2], m[3])
	}
	if m := genericDateRe.FindStringSubmatch(s); m != nil {
		return formatDate(m[1], m[2], m[3])
	}
	return ""
}

// CompactDate returns the normalized date as YYYYMMDD, or "".
func CompactDate(s string) string {
	return strings.ReplaceAll(Date(s), "-", "")
}

func formatDate(y, m, d string) string {
	year, _ := strconv.Atoi(y)
	month, _ := strconv.Atoi(m)
	day, _ := strconv.Atoi(d)
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return ""
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(month) || t.Day() != day {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// Height converts "1,83m", "1.83 m", "183cm" or "183" to whole centimeters.
// Values below 3 are read as meters. Implausible heights yield "".
func Height(s string) string {
	s = strings.ToLower(width.Narrow.String(Text(s)))
	m := heightRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return ""
	}
	if m[2] == "m" || (m[2] == "" && value < 3) {
		value *= 100
	}

	cm := int(math.Round(value))
	if cm < 100 || cm > 250 {
		return ""
	}
	return strconv.Itoa(cm)
}

// Int parses a whole number, tolerating full-width digits and surrounding
// space. ok is false for anything else.
func Int(s string) (int, bool) {
	s = width.Narrow.String(Text(s))
	if !intRe.MatchString(s) {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FoldDiacritics removes combining marks and folds the letters that do not
// decompose (ø, ß, ł, ...). Case is preserved.
func FoldDiacritics(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return letterFolds.Replace(out)
}

// FoldKey is the comparison form used for display-name matching: NFKC,
// lower case, zero-width characters removed and whitespace collapsed.
func FoldKey(s string) string {
	s = norm.NFKC.String(s)
	s = invisibleReplacer.Replace(s)
	return Text(strings.ToLower(s))
}
