package squad

import "context"

type Repository interface {
	ListEntries(ctx context.Context) ([]Entry, error)
	SaveEntries(ctx context.Context, entries []Entry) error
}
