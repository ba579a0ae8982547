package csvfile

import (
	"context"

	"github.com/football-archive/pipeline/internal/domain/club"
	"github.com/football-archive/pipeline/internal/platform/textnorm"
)

var (
	ClubMasterColumns = []string{
		"club_key", "league_key", "league_display", "club_display_ja",
		"club_display_en", "aliases", "status", "notes",
	}
	LeagueMasterColumns = []string{
		"league_key", "league_display_ja", "league_display_en", "country", "aliases",
	}
)

// ClubRepository reads the club master (required) and the league master
// (optional).
type ClubRepository struct {
	clubPath   string
	leaguePath string
}

func NewClubRepository(clubPath, leaguePath string) *ClubRepository {
	return &ClubRepository{clubPath: clubPath, leaguePath: leaguePath}
}

func (r *ClubRepository) ListClubs(ctx context.Context) ([]club.MasterRow, error) {
	table, err := readTable(ctx, r.clubPath, true)
	if err != nil {
		return nil, err
	}

	out := make([]club.MasterRow, 0, len(table.Rows))
	for _, row := range table.Rows {
		out = append(out, club.MasterRow{
			ClubKey:       textnorm.Text(row.Get("club_key")),
			LeagueKey:     textnorm.Text(row.Get("league_key")),
			LeagueDisplay: textnorm.Text(row.Get("league_display")),
			DisplayJA:     textnorm.Text(row.Get("club_display_ja")),
			DisplayEN:     textnorm.Text(row.Get("club_display_en")),
			Aliases:       textnorm.Text(row.Get("aliases")),
			Status:        textnorm.Text(row.Get("status")),
			Notes:         textnorm.Text(row.Get("notes")),
		})
	}
	return out, nil
}

func (r *ClubRepository) ListLeagues(ctx context.Context) ([]club.League, error) {
	table, err := readTable(ctx, r.leaguePath, false)
	if err != nil {
		return nil, err
	}

	out := make([]club.League, 0, len(table.Rows))
	for _, row := range table.Rows {
		out = append(out, club.League{
			LeagueKey: textnorm.Text(row.Get("league_key")),
			DisplayJA: textnorm.Text(row.Get("league_display_ja")),
			DisplayEN: textnorm.Text(row.Get("league_display_en")),
			Country:   textnorm.Text(row.Get("country")),
			Aliases:   textnorm.Text(row.Get("aliases")),
		})
	}
	return out, nil
}
