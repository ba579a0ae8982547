package club

import (
	"errors"
	"testing"
)

func masterFixture() []MasterRow {
	return []MasterRow{
		{ClubKey: "arsenal", LeagueKey: "eng1", LeagueDisplay: "Premier League", DisplayEN: "Arsenal", DisplayJA: "アーセナル", Aliases: "Arsenal FC | The Gunners"},
		{ClubKey: "brighton", LeagueKey: "eng1", LeagueDisplay: "Premier League", DisplayEN: "Brighton & Hove Albion", DisplayJA: "ブライトン", Aliases: "Brighton; BHAFC"},
		{ClubKey: "celtic", LeagueKey: "sco1", LeagueDisplay: "Scottish Premiership", DisplayEN: "Celtic", DisplayJA: "セルティック", Aliases: "Celtic FC/Glasgow Celtic"},
		{ClubKey: "fc-tokyo", LeagueKey: "j1", LeagueDisplay: "J1リーグ", DisplayEN: "FC Tokyo", DisplayJA: "FC東京"},
		{ClubKey: "", LeagueKey: "j1", LeagueDisplay: "J1リーグ", DisplayEN: "Keyless"},
	}
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	resolver, err := NewResolver(masterFixture(), nil, KeyModeLenient)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	if resolver.Len() != 4 {
		t.Fatalf("expected 4 keyed clubs, got=%d", resolver.Len())
	}

	tests := []struct {
		name     string
		league   string
		club     string
		wantKey  string
		resolved bool
	}{
		{name: "exact english", league: "Premier League", club: "Arsenal", wantKey: "arsenal", resolved: true},
		{name: "case and spacing", league: " premier  LEAGUE ", club: "ARSENAL ", wantKey: "arsenal", resolved: true},
		{name: "japanese display", league: "Premier League", club: "ブライトン", wantKey: "brighton", resolved: true},
		{name: "alias token", league: "Premier League", club: "The Gunners", wantKey: "arsenal", resolved: true},
		{name: "alias slash separated", league: "Scottish Premiership", club: "Glasgow Celtic", wantKey: "celtic", resolved: true},
		{name: "input contains name", league: "Premier League", club: "Brighton & Hove Albion FC", wantKey: "brighton", resolved: true},
		{name: "name contains input", league: "Scottish Premiership", club: "Celt", wantKey: "celtic", resolved: true},
		{name: "full width and zero width", league: "J1リーグ", club: "ＦＣ東京\u200b", wantKey: "fc-tokyo", resolved: true},
		{name: "league typo falls back to whole master", league: "Premire League", club: "Arsenal", wantKey: "arsenal", resolved: true},
		{name: "empty league searches whole master", league: "", club: "Celtic", wantKey: "celtic", resolved: true},
		{name: "unknown club", league: "Premier League", club: "Chelsea", resolved: false},
		{name: "empty club", league: "Premier League", club: "  ", resolved: false},
	}

	for _, tt := range tests {
		got, ok := resolver.Resolve(tt.league, tt.club)
		if ok != tt.resolved {
			t.Fatalf("%s: resolved=%v want=%v (%+v)", tt.name, ok, tt.resolved, got)
		}
		if ok && got.ClubKey != tt.wantKey {
			t.Fatalf("%s: got club key=%q want=%q", tt.name, got.ClubKey, tt.wantKey)
		}
	}
}

func TestResolver_LeagueMatchDoesNotFallBack(t *testing.T) {
	t.Parallel()

	resolver, err := NewResolver(masterFixture(), nil, KeyModeLenient)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	// The league matched, so a club that exists only in another league stays unresolved.
	if got, ok := resolver.Resolve("Premier League", "Celtic"); ok {
		t.Fatalf("expected unresolved, got %+v", got)
	}
}

func TestResolver_FirstMatchingRowWins(t *testing.T) {
	t.Parallel()

	rows := []MasterRow{
		{ClubKey: "man-utd", LeagueDisplay: "Premier League", DisplayEN: "Manchester United", Aliases: "Man"},
		{ClubKey: "man-city", LeagueDisplay: "Premier League", DisplayEN: "Man City"},
		{ClubKey: "everton", LeagueDisplay: "Premier League", DisplayEN: "Everton"},
	}
	resolver, err := NewResolver(rows, nil, KeyModeLenient)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	tests := []struct {
		club string
		want string
	}{
		{"Man City", "man-utd"},
		{"Manchester", "man-utd"},
		{"Everton FC", "everton"},
	}
	for _, tc := range tests {
		got, ok := resolver.Resolve("Premier League", tc.club)
		if !ok || got.ClubKey != tc.want {
			t.Fatalf("Resolve(%q): expected %s, got %+v ok=%v", tc.club, tc.want, got, ok)
		}
	}
}

func TestResolver_DuplicateKeys(t *testing.T) {
	t.Parallel()

	rows := []MasterRow{
		{ClubKey: "dup", LeagueDisplay: "L", DisplayEN: "First"},
		{ClubKey: "dup", LeagueDisplay: "L", DisplayEN: "Second"},
	}

	lenient, err := NewResolver(rows, nil, KeyModeLenient)
	if err != nil {
		t.Fatalf("lenient resolver: %v", err)
	}
	row, ok := lenient.ByKey("dup")
	if !ok || row.DisplayEN != "Second" {
		t.Fatalf("expected last write to win, got %+v", row)
	}

	_, err = NewResolver(rows, nil, KeyModeStrict)
	var dupErr *DuplicateKeyError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
	if dupErr.Key != "dup" || dupErr.Table != "club" {
		t.Fatalf("unexpected duplicate error: %+v", dupErr)
	}

	_, err = NewResolver(nil, []League{{LeagueKey: "j1"}, {LeagueKey: "j1"}}, KeyModeStrict)
	if !errors.As(err, &dupErr) || dupErr.Table != "league" {
		t.Fatalf("expected league duplicate error, got %v", err)
	}
}

func TestSplitAliases(t *testing.T) {
	t.Parallel()

	got := SplitAliases(" A | B/C ;D, ,E ")
	want := []string{"A", "B", "C", "D", "E"}
	if len(got) != len(want) {
		t.Fatalf("unexpected aliases: %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected alias at %d: got=%q want=%q", i, got[i], want[i])
		}
	}
}

func TestUnresolvedSet(t *testing.T) {
	t.Parallel()

	set := NewUnresolvedSet()
	set.Add("Premier League", "Chelsea")
	set.Add("Premier  League", "Chelsea ")
	set.Add("Bundesliga", "Union Berlin")
	set.Add("Bundesliga", "")

	other := NewUnresolvedSet()
	other.Add("Bundesliga", "Union Berlin")
	set.Merge(other)

	pairs := set.Pairs()
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %+v", pairs)
	}
	if pairs[0].League != "Bundesliga" || pairs[0].Count != 2 {
		t.Fatalf("unexpected first pair: %+v", pairs[0])
	}
	if pairs[1].Club != "Chelsea" || pairs[1].Count != 2 {
		t.Fatalf("unexpected second pair: %+v", pairs[1])
	}
}
