// Package club resolves the free-text league and club names typed into the
// spreadsheets to the canonical keys of the club master table.
package club

import (
	"fmt"
	"strings"

	"github.com/football-archive/pipeline/internal/platform/textnorm"
)

// KeyMode selects how duplicate master keys are treated.
type KeyMode string

const (
	// KeyModeLenient keeps the source behavior: the last row with a key wins.
	KeyModeLenient KeyMode = "lenient"
	// KeyModeStrict rejects a master table that repeats a key.
	KeyModeStrict KeyMode = "strict"
)

// DuplicateKeyError reports a repeated key found in strict mode.
type DuplicateKeyError struct {
	Table string
	Key   string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s key %q", e.Table, e.Key)
}

type candidate struct {
	row    MasterRow
	league string
	names  []string
}

// Resolver matches display names against the club master. It is built once
// per run and is read-only afterwards.
type Resolver struct {
	candidates []candidate
	byClubKey  map[string]MasterRow
	leagues    map[string]League
}

// NewResolver indexes the master tables. In lenient mode duplicate keys
// shadow earlier rows in key lookups; in strict mode they are an error.
func NewResolver(rows []MasterRow, leagues []League, mode KeyMode) (*Resolver, error) {
	r := &Resolver{
		candidates: make([]candidate, 0, len(rows)),
		byClubKey:  make(map[string]MasterRow, len(rows)),
		leagues:    make(map[string]League, len(leagues)),
	}

	for _, row := range rows {
		if row.ClubKey == "" {
			continue
		}
		if _, exists := r.byClubKey[row.ClubKey]; exists && mode == KeyModeStrict {
			return nil, &DuplicateKeyError{Table: "club", Key: row.ClubKey}
		}
		r.byClubKey[row.ClubKey] = row
		r.candidates = append(r.candidates, candidate{
			row:    row,
			league: textnorm.FoldKey(row.LeagueDisplay),
			names:  matchNames(row),
		})
	}

	for _, league := range leagues {
		if league.LeagueKey == "" {
			continue
		}
		if _, exists := r.leagues[league.LeagueKey]; exists && mode == KeyModeStrict {
			return nil, &DuplicateKeyError{Table: "league", Key: league.LeagueKey}
		}
		r.leagues[league.LeagueKey] = league
	}

	return r, nil
}

func matchNames(row MasterRow) []string {
	raw := append([]string{row.DisplayEN, row.DisplayJA}, SplitAliases(row.Aliases)...)
	out := make([]string, 0, len(raw))
	for _, name := range raw {
		if folded := textnorm.FoldKey(name); folded != "" {
			out = append(out, folded)
		}
	}
	return out
}

// Resolve maps a (league, club) display pair to master keys.
//
// Candidates are the rows whose league display equals the league text; when
// none do, the whole master is searched so a mistyped league label still
// resolves an unambiguous club. A row matches when one of its names equals,
// contains or is contained in the club text; the first matching row in
// master order wins.
func (r *Resolver) Resolve(league, club string) (Resolution, bool) {
	clubText := textnorm.FoldKey(club)
	if clubText == "" {
		return Resolution{}, false
	}
	leagueText := textnorm.FoldKey(league)

	pool := make([]*candidate, 0, 32)
	if leagueText != "" {
		for i := range r.candidates {
			if r.candidates[i].league == leagueText {
				pool = append(pool, &r.candidates[i])
			}
		}
	}
	if len(pool) == 0 {
		for i := range r.candidates {
			pool = append(pool, &r.candidates[i])
		}
	}

	for _, c := range pool {
		for _, name := range c.names {
			if strings.Contains(name, clubText) || strings.Contains(clubText, name) {
				return toResolution(c.row), true
			}
		}
	}

	return Resolution{}, false
}

// ByKey returns the master row for a club key.
func (r *Resolver) ByKey(clubKey string) (MasterRow, bool) {
	row, ok := r.byClubKey[strings.TrimSpace(clubKey)]
	return row, ok
}

// League returns the league master row for a key.
func (r *Resolver) League(leagueKey string) (League, bool) {
	league, ok := r.leagues[strings.TrimSpace(leagueKey)]
	return league, ok
}

// Len returns the number of distinct club keys.
func (r *Resolver) Len() int {
	return len(r.byClubKey)
}

func toResolution(row MasterRow) Resolution {
	return Resolution{
		LeagueKey: row.LeagueKey,
		ClubKey:   row.ClubKey,
		DisplayJA: row.DisplayJA,
		DisplayEN: row.DisplayEN,
	}
}
