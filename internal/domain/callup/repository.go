package callup

import "context"

type Repository interface {
	ListEntries(ctx context.Context) ([]Entry, error)
}
