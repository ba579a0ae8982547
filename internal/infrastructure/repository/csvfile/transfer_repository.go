package csvfile

import (
	"context"

	"github.com/football-archive/pipeline/internal/domain/transfer"
	"github.com/football-archive/pipeline/internal/platform/textnorm"
)

var TransferColumns = []string{
	"season", "window", "date", "player_name", "from_club_key", "to_club_key",
	"move_type", "note", "importance",
}

type TransferRepository struct {
	path string
}

func NewTransferRepository(path string) *TransferRepository {
	return &TransferRepository{path: path}
}

func (r *TransferRepository) ListEvents(ctx context.Context) ([]transfer.Event, error) {
	table, err := readTable(ctx, r.path, false)
	if err != nil {
		return nil, err
	}

	out := make([]transfer.Event, 0, len(table.Rows))
	for _, row := range table.Rows {
		importance, _ := textnorm.Int(row.Get("importance"))
		out = append(out, transfer.Event{
			Season:      textnorm.Text(row.Get("season")),
			Window:      textnorm.Text(row.Get("window")),
			Date:        textnorm.Date(row.Get("date")),
			PlayerName:  textnorm.Text(row.Get("player_name")),
			FromClubKey: textnorm.Text(row.Get("from_club_key")),
			ToClubKey:   textnorm.Text(row.Get("to_club_key")),
			MoveType:    textnorm.Text(row.Get("move_type")),
			Note:        textnorm.Text(row.Get("note")),
			Importance:  importance,
		})
	}
	return out, nil
}
