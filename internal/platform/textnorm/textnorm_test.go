package textnorm

import "testing"

func TestText(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                         "",
		"  Kaoru   Mitoma ":        "Kaoru Mitoma",
		"Kaoru\u00a0Mitoma":        "Kaoru Mitoma",
		"Kaoru\u202f\u2007Mitoma":  "Kaoru Mitoma",
		"\u4e09\u7b18\u3000\u85ab": "\u4e09\u7b18 \u85ab",
		"a  b\t\tc\n d":            "a b c d",
	}
	for in, want := range tests {
		if got := Text(in); got != want {
			t.Fatalf("Text(%q): got=%q want=%q", in, got, want)
		}
	}
}

func TestDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-05", "2024-01-05"},
		{"2024/1/5", "2024-01-05"},
		{"2024.1.5", "2024-01-05"},
		{"2024-1-5", "2024-01-05"},
		{"1997/05/20 (28)", "1997-05-20"},
		{"1997/5/20（28歳）", "1997-05-20"},
		{"1997年5月20日", "1997-05-20"},
		{"２０２４／１／５", "2024-01-05"},
		{"20251101", "2025-11-01"},
		{" 2025-11-01 ", "2025-11-01"},
		{"2024-02-30", ""},
		{"2024/13/1", ""},
		{"not-a-date", ""},
		{"", ""},
		{"05/01/2024", ""},
	}
	for _, tt := range tests {
		if got := Date(tt.in); got != tt.want {
			t.Fatalf("Date(%q): got=%q want=%q", tt.in, got, tt.want)
		}
	}
}

func TestCompactDate(t *testing.T) {
	t.Parallel()

	if got := CompactDate("2025/10/1"); got != "20251001" {
		t.Fatalf("unexpected compact date: %q", got)
	}
	if got := CompactDate("tbc"); got != "" {
		t.Fatalf("expected empty compact date, got %q", got)
	}
}

func TestHeight(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"1,83m":   "183",
		"1.83 m":  "183",
		"183cm":   "183",
		"183 cm":  "183",
		"183":     "183",
		"1.8m":    "180",
		"182.6cm": "183",
		"１８３ｃｍ":   "183",
		"":        "",
		"n/a":     "",
		"6'0":     "",
		"999cm":   "",
	}
	for in, want := range tests {
		if got := Height(in); got != want {
			t.Fatalf("Height(%q): got=%q want=%q", in, got, want)
		}
	}
}

func TestInt(t *testing.T) {
	t.Parallel()

	if v, ok := Int(" 10 "); !ok || v != 10 {
		t.Fatalf("expected 10, got=%d ok=%v", v, ok)
	}
	if v, ok := Int("２３"); !ok || v != 23 {
		t.Fatalf("expected 23 from full-width digits, got=%d ok=%v", v, ok)
	}
	if _, ok := Int("10a"); ok {
		t.Fatalf("expected 10a to be rejected")
	}
	if _, ok := Int(""); ok {
		t.Fatalf("expected empty input to be rejected")
	}
}

func TestFoldDiacritics(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Éder Militão":     "Eder Militao",
		"Martin Ødegaard":  "Martin Odegaard",
		"Łukasz Fabiański": "Lukasz Fabianski",
		"Müller":           "Muller",
		"三笘 薫":             "三笘 薫",
	}
	for in, want := range tests {
		if got := FoldDiacritics(in); got != want {
			t.Fatalf("FoldDiacritics(%q): got=%q want=%q", in, got, want)
		}
	}
}

func TestFoldKey(t *testing.T) {
	t.Parallel()

	if got := FoldKey("  Manchester\u200b  CITY\ufeff "); got != "manchester city" {
		t.Fatalf("unexpected fold: %q", got)
	}
	if got := FoldKey("ＦＣ東京"); got != "fc東京" {
		t.Fatalf("expected NFKC width fold, got %q", got)
	}
}
