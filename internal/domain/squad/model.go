package squad

import (
	"github.com/football-archive/pipeline/internal/domain/player"
	"github.com/football-archive/pipeline/internal/platform/tabular"
)

// Columns is the squad table header in file order.
var Columns = []string{
	"season", "window", "league", "club", "league_key", "club_key",
	"club_shirt_no", "position_primary", "name_en", "birth_date", "height_cm",
	"snapshot_date", "name_ja", "nationality", "foot", "join_date", "prev_club",
	"contract_until", "source", "notes",
}

// Entry is one player on a club squad for a season window.
type Entry struct {
	Season        string
	Window        string
	League        string
	Club          string
	LeagueKey     string
	ClubKey       string
	ShirtNo       string
	Position      player.Position
	NameEN        string
	BirthDate     string
	HeightCM      string
	SnapshotDate  string
	NameJA        string
	Nationality   string
	Foot          string
	JoinDate      string
	PrevClub      string
	ContractUntil string
	Source        string
	Notes         string
}

func (e Entry) Key() player.Key {
	return player.Key{Name: e.NameEN, BirthDate: e.BirthDate}
}

// GroupKey identifies the squad an entry belongs to for snapshot selection.
// The club key is preferred; the raw club text stands in when unresolved.
func (e Entry) GroupKey() string {
	club := e.ClubKey
	if club == "" {
		club = "raw:" + e.Club
	}
	return e.Season + "\x1f" + e.Window + "\x1f" + club
}

// Row lays the entry out under the squad table columns.
func (e Entry) Row() tabular.Row {
	return tabular.Row{
		"season":           e.Season,
		"window":           e.Window,
		"league":           e.League,
		"club":             e.Club,
		"league_key":       e.LeagueKey,
		"club_key":         e.ClubKey,
		"club_shirt_no":    e.ShirtNo,
		"position_primary": string(e.Position),
		"name_en":          e.NameEN,
		"birth_date":       e.BirthDate,
		"height_cm":        e.HeightCM,
		"snapshot_date":    e.SnapshotDate,
		"name_ja":          e.NameJA,
		"nationality":      e.Nationality,
		"foot":             e.Foot,
		"join_date":        e.JoinDate,
		"prev_club":        e.PrevClub,
		"contract_until":   e.ContractUntil,
		"source":           e.Source,
		"notes":            e.Notes,
	}
}
