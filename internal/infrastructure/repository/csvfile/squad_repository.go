package csvfile

import (
	"context"

	"github.com/football-archive/pipeline/internal/domain/player"
	"github.com/football-archive/pipeline/internal/domain/squad"
	"github.com/football-archive/pipeline/internal/platform/textnorm"
)

var SquadColumns = squad.Columns

type SquadRepository struct {
	path string
}

func NewSquadRepository(path string) *SquadRepository {
	return &SquadRepository{path: path}
}

func (r *SquadRepository) ListEntries(ctx context.Context) ([]squad.Entry, error) {
	table, err := readTable(ctx, r.path, false)
	if err != nil {
		return nil, err
	}

	out := make([]squad.Entry, 0, len(table.Rows))
	for _, row := range table.Rows {
		out = append(out, squad.Entry{
			Season:        textnorm.Text(row.Get("season")),
			Window:        textnorm.Text(row.Get("window")),
			League:        textnorm.Text(row.Get("league")),
			Club:          textnorm.Text(row.Get("club")),
			LeagueKey:     textnorm.Text(row.Get("league_key")),
			ClubKey:       textnorm.Text(row.Get("club_key")),
			ShirtNo:       textnorm.Text(row.Get("club_shirt_no")),
			Position:      player.NormalizePosition(row.Get("position_primary")),
			NameEN:        textnorm.Text(row.Get("name_en")),
			BirthDate:     textnorm.Date(row.Get("birth_date")),
			HeightCM:      textnorm.Height(row.Get("height_cm")),
			SnapshotDate:  textnorm.Date(row.Get("snapshot_date")),
			NameJA:        textnorm.Text(row.Get("name_ja")),
			Nationality:   textnorm.Text(row.Get("nationality")),
			Foot:          textnorm.Text(row.Get("foot")),
			JoinDate:      textnorm.Date(row.Get("join_date")),
			PrevClub:      textnorm.Text(row.Get("prev_club")),
			ContractUntil: textnorm.Date(row.Get("contract_until")),
			Source:        textnorm.Text(row.Get("source")),
			Notes:         textnorm.Text(row.Get("notes")),
		})
	}
	return out, nil
}

func (r *SquadRepository) SaveEntries(ctx context.Context, entries []squad.Entry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		row := e.Row()
		record := make([]string, len(SquadColumns))
		for i, col := range SquadColumns {
			record[i] = row[col]
		}
		rows = append(rows, record)
	}
	return writeTable(ctx, r.path, SquadColumns, rows)
}
