package csvfile

import (
	"context"

	"github.com/football-archive/pipeline/internal/domain/matchevent"
	"github.com/football-archive/pipeline/internal/platform/textnorm"
)

var MatchEventColumns = []string{
	"competition", "edition", "match_id", "event_id", "event_type", "team",
	"player", "assist", "minute", "period", "round", "vs", "note",
}

type MatchEventRepository struct {
	path string
}

func NewMatchEventRepository(path string) *MatchEventRepository {
	return &MatchEventRepository{path: path}
}

func (r *MatchEventRepository) ListEvents(ctx context.Context) ([]matchevent.Event, error) {
	table, err := readTable(ctx, r.path, false)
	if err != nil {
		return nil, err
	}

	out := make([]matchevent.Event, 0, len(table.Rows))
	for _, row := range table.Rows {
		out = append(out, matchevent.Event{
			Competition: textnorm.Text(row.Get("competition")),
			Edition:     textnorm.Text(row.Get("edition")),
			MatchID:     textnorm.Text(row.Get("match_id")),
			EventID:     textnorm.Text(row.Get("event_id")),
			Type:        textnorm.Text(row.Get("event_type")),
			Team:        textnorm.Text(row.Get("team")),
			Player:      textnorm.Text(row.Get("player")),
			Assist:      textnorm.Text(row.Get("assist")),
			Minute:      textnorm.Text(row.Get("minute")),
			Period:      textnorm.Text(row.Get("period")),
			Round:       textnorm.Text(row.Get("round")),
			Opponent:    textnorm.Text(row.Get("vs")),
			Note:        textnorm.Text(row.Get("note")),
		})
	}
	return out, nil
}
