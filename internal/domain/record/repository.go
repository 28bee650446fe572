package record

import "context"

type Repository interface {
	ListBySeason(ctx context.Context, season int) ([]SeasonRecord, error)
	ListAll(ctx context.Context) ([]SeasonRecord, error)
	Get(ctx context.Context, season int, teamID int64) (SeasonRecord, bool, error)
	// Upsert writes the aggregate keyed on (season, team_id).
	Upsert(ctx context.Context, rec SeasonRecord) error
	// ReplaceSeason swaps a season's rows for a freshly computed set in one
	// transaction (records rebuild).
	ReplaceSeason(ctx context.Context, season int, recs []SeasonRecord) error
}
