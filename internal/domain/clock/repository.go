package clock

import "context"

type Repository interface {
	// Get reads season and week in a single query. Missing keys default to
	// season 1, week 0.
	Get(ctx context.Context) (LeagueClock, error)
	SetWeek(ctx context.Context, week int) error
	SetSeason(ctx context.Context, season int) error
}
