package club

import (
	"strings"
)

// MasterRow is one row of the club master table. ClubKey and LeagueKey are
// the stable identifiers used in URLs and cross references.
type MasterRow struct {
	ClubKey       string
	LeagueKey     string
	LeagueDisplay string
	DisplayJA     string
	DisplayEN     string
	Aliases       string
	Status        string
	Notes         string
}

// League is one row of the league master table.
type League struct {
	LeagueKey string
	DisplayJA string
	DisplayEN string
	Country   string
	Aliases   string
}

// Resolution is the outcome of matching a free-text (league, club) pair.
type Resolution struct {
	LeagueKey string
	ClubKey   string
	DisplayJA string
	DisplayEN string
}

// UnresolvedPair is a (league, club) display pair no master row matched.
type UnresolvedPair struct {
	League string `json:"league"`
	Club   string `json:"club"`
	Count  int    `json:"count"`
}

// SplitAliases splits an alias cell on any of | / ; , and drops empty tokens.
func SplitAliases(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		switch r {
		case '|', '/', ';', ',':
			return true
		}
		return false
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
