package result

import "context"

type Repository interface {
	Insert(ctx context.Context, res GameResult) error
	ListBySeason(ctx context.Context, season int) ([]GameResult, error)
	ListByWeek(ctx context.Context, season, week int) ([]GameResult, error)
	ListAll(ctx context.Context) ([]GameResult, error)
	// GetForWeek finds a prior submission by the given team for the given
	// (season, week). Used as the once-per-week pre-insert check; concurrent
	// submissions can still both pass it.
	GetForWeek(ctx context.Context, season, week int, userTeamID int64) (GameResult, bool, error)
}
