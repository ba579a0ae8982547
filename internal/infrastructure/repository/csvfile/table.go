// Package csvfile persists the archive tables as spreadsheet-compatible
// delimited text files.
package csvfile

import (
	"context"
	"io/fs"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/football-archive/pipeline/internal/platform/tabular"
)

const timestampLayout = time.RFC3339

// readTable loads path. A missing optional file yields an empty table; a
// missing required file is an error matching fs.ErrNotExist.
func readTable(ctx context.Context, path string, required bool) (tabular.Table, error) {
	if err := ctx.Err(); err != nil {
		return tabular.Table{}, err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		if required {
			return tabular.Table{}, crerr.Wrap(fs.ErrNotExist, "required table path is empty")
		}
		return tabular.Table{}, nil
	}

	table, found, err := tabular.ReadFile(path)
	if err != nil {
		return tabular.Table{}, crerr.Wrapf(err, "read table %s", path)
	}
	if !found && required {
		return tabular.Table{}, crerr.Wrapf(fs.ErrNotExist, "required table %s", path)
	}
	return table, nil
}

func writeTable(ctx context.Context, path string, header []string, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data := tabular.Encode(header, rows, tabular.SpreadsheetOptions)
	if err := tabular.WriteFileAtomic(path, data); err != nil {
		return crerr.Wrapf(err, "write table %s", path)
	}
	return nil
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}

// parseTimestamp accepts RFC3339 or a bare date. Anything else is the zero
// time, which never suppresses a retry.
func parseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse(timestampLayout, raw); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC()
	}
	return time.Time{}
}
