package csvfile

import (
	"context"

	crerr "github.com/cockroachdb/errors"

	"github.com/football-archive/pipeline/internal/platform/tabular"
)

// TableRepository reads and rewrites whole tables without a fixed schema so
// columns unknown to the pipeline survive a rewrite.
type TableRepository struct{}

func NewTableRepository() *TableRepository {
	return &TableRepository{}
}

func (r *TableRepository) LoadTable(ctx context.Context, path string) (tabular.Table, bool, error) {
	if err := ctx.Err(); err != nil {
		return tabular.Table{}, false, err
	}
	table, found, err := tabular.ReadFile(path)
	if err != nil {
		return tabular.Table{}, false, crerr.Wrapf(err, "read table %s", path)
	}
	return table, found, nil
}

func (r *TableRepository) SaveTable(ctx context.Context, path string, table tabular.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data := tabular.EncodeRows(table.Header, table.Rows, tabular.SpreadsheetOptions)
	if err := tabular.WriteFileAtomic(path, data); err != nil {
		return crerr.Wrapf(err, "write table %s", path)
	}
	return nil
}
