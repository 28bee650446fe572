package news

import "context"

type Repository interface {
	Insert(ctx context.Context, item Item) error
	ListByWeek(ctx context.Context, season, week int) ([]Item, error)
}
