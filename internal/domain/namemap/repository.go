package namemap

import "context"

type Repository interface {
	ListEntries(ctx context.Context) ([]Entry, error)
	ListFailures(ctx context.Context) ([]Failure, error)
	SaveEntries(ctx context.Context, entries []Entry) error
	SaveFailures(ctx context.Context, failures []Failure) error
}
