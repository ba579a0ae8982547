package csvfile

import (
	"context"

	"github.com/football-archive/pipeline/internal/domain/namemap"
	"github.com/football-archive/pipeline/internal/domain/player"
	"github.com/football-archive/pipeline/internal/platform/textnorm"
)

var (
	NameMapColumns = []string{"key", "name_en", "birth_date", "name_ja", "source", "updated_at"}
	FailureColumns = []string{"key", "reason", "checked_at"}
)

// NameMapRepository persists the name map and the lookup failure cache as
// two files. Both are optional on read and rewritten in full on save.
type NameMapRepository struct {
	entriesPath  string
	failuresPath string
}

func NewNameMapRepository(entriesPath, failuresPath string) *NameMapRepository {
	return &NameMapRepository{entriesPath: entriesPath, failuresPath: failuresPath}
}

func (r *NameMapRepository) ListEntries(ctx context.Context) ([]namemap.Entry, error) {
	table, err := readTable(ctx, r.entriesPath, false)
	if err != nil {
		return nil, err
	}

	out := make([]namemap.Entry, 0, len(table.Rows))
	for _, row := range table.Rows {
		nameEN := textnorm.Text(row.Get("name_en"))
		birthDate := textnorm.Date(row.Get("birth_date"))
		if nameEN == "" || birthDate == "" {
			if key, ok := player.ParseKey(row.Get("key")); ok {
				nameEN, birthDate = key.Name, key.BirthDate
			}
		}
		out = append(out, namemap.Entry{
			NameEN:    nameEN,
			BirthDate: birthDate,
			NameJA:    textnorm.Text(row.Get("name_ja")),
			Source:    textnorm.Text(row.Get("source")),
			UpdatedAt: parseTimestamp(row.Get("updated_at")),
		})
	}
	return out, nil
}

func (r *NameMapRepository) ListFailures(ctx context.Context) ([]namemap.Failure, error) {
	table, err := readTable(ctx, r.failuresPath, false)
	if err != nil {
		return nil, err
	}

	out := make([]namemap.Failure, 0, len(table.Rows))
	for _, row := range table.Rows {
		out = append(out, namemap.Failure{
			Key:       textnorm.Text(row.Get("key")),
			Reason:    namemap.ParseReason(textnorm.Text(row.Get("reason"))),
			CheckedAt: parseTimestamp(row.Get("checked_at")),
		})
	}
	return out, nil
}

// SaveEntries rewrites the name map. Entries are written in the order
// given; the store already returns them sorted by key.
func (r *NameMapRepository) SaveEntries(ctx context.Context, entries []namemap.Entry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		key := player.Key{Name: e.NameEN, BirthDate: e.BirthDate}
		rows = append(rows, []string{
			key.String(), e.NameEN, e.BirthDate, e.NameJA, e.Source, formatTimestamp(e.UpdatedAt),
		})
	}
	return writeTable(ctx, r.entriesPath, NameMapColumns, rows)
}

func (r *NameMapRepository) SaveFailures(ctx context.Context, failures []namemap.Failure) error {
	rows := make([][]string, 0, len(failures))
	for _, f := range failures {
		rows = append(rows, []string{f.Key, string(f.Reason), formatTimestamp(f.CheckedAt)})
	}
	return writeTable(ctx, r.failuresPath, FailureColumns, rows)
}
