package club

import "context"

type Repository interface {
	ListClubs(ctx context.Context) ([]MasterRow, error)
	ListLeagues(ctx context.Context) ([]League, error)
}
