package csvfile

import (
	"context"

	"github.com/football-archive/pipeline/internal/domain/callup"
	"github.com/football-archive/pipeline/internal/domain/player"
	"github.com/football-archive/pipeline/internal/platform/textnorm"
)

var CallupColumns = []string{
	"competition", "edition", "confederation", "confederation_bucket", "country",
	"nt_shirt_no", "position_primary", "name_en", "birth_date", "height_cm",
	"current_club", "snapshot_date", "name_ja", "national_debut", "source", "notes",
}

type CallupRepository struct {
	path string
}

func NewCallupRepository(path string) *CallupRepository {
	return &CallupRepository{path: path}
}

func (r *CallupRepository) ListEntries(ctx context.Context) ([]callup.Entry, error) {
	table, err := readTable(ctx, r.path, false)
	if err != nil {
		return nil, err
	}

	out := make([]callup.Entry, 0, len(table.Rows))
	for _, row := range table.Rows {
		out = append(out, callup.Entry{
			Competition:         textnorm.Text(row.Get("competition")),
			Edition:             textnorm.Text(row.Get("edition")),
			Confederation:       textnorm.Text(row.Get("confederation")),
			ConfederationBucket: textnorm.Text(row.Get("confederation_bucket")),
			Country:             textnorm.Text(row.Get("country")),
			ShirtNo:             textnorm.Text(row.Get("nt_shirt_no")),
			Position:            player.NormalizePosition(row.Get("position_primary")),
			NameEN:              textnorm.Text(row.Get("name_en")),
			BirthDate:           textnorm.Date(row.Get("birth_date")),
			HeightCM:            textnorm.Height(row.Get("height_cm")),
			CurrentClub:         textnorm.Text(row.Get("current_club")),
			SnapshotDate:        textnorm.Date(row.Get("snapshot_date")),
			NameJA:              textnorm.Text(row.Get("name_ja")),
			NationalDebut:       textnorm.Text(row.Get("national_debut")),
			Source:              textnorm.Text(row.Get("source")),
			Notes:               textnorm.Text(row.Get("notes")),
		})
	}
	return out, nil
}
