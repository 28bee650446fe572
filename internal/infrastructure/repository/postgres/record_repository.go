package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/DFR0S7/CMR-Bot/internal/domain/record"
	qb "github.com/DFR0S7/CMR-Bot/internal/platform/querybuilder"
)

const recordUpsertSuffix = `ON CONFLICT (season, team_id) DO UPDATE SET
	team_name = EXCLUDED.team_name,
	taken_by = EXCLUDED.taken_by,
	taken_by_name = EXCLUDED.taken_by_name,
	wins = EXCLUDED.wins,
	losses = EXCLUDED.losses,
	user_wins = EXCLUDED.user_wins,
	user_losses = EXCLUDED.user_losses`

type RecordRepository struct {
	db *sqlx.DB
}

func NewRecordRepository(db *sqlx.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) ListBySeason(ctx context.Context, season int) ([]record.SeasonRecord, error) {
	query, args, err := qb.Select("*").From("records").
		Where(qb.Eq("season", season)).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list records query: %w", err)
	}

	var rows []recordTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list records season=%d: %w", season, err)
	}

	return recordsToDomain(rows), nil
}

func (r *RecordRepository) ListAll(ctx context.Context) ([]record.SeasonRecord, error) {
	query, args, err := qb.Select("*").From("records").
		OrderBy("season", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list all records query: %w", err)
	}

	var rows []recordTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list all records: %w", err)
	}

	return recordsToDomain(rows), nil
}

func (r *RecordRepository) Get(ctx context.Context, season int, teamID int64) (record.SeasonRecord, bool, error) {
	query, args, err := qb.Select("*").From("records").
		Where(
			qb.Eq("season", season),
			qb.Eq("team_id", teamID),
		).
		ToSQL()
	if err != nil {
		return record.SeasonRecord{}, false, fmt.Errorf("build get record query: %w", err)
	}

	var row recordTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return record.SeasonRecord{}, false, nil
		}
		return record.SeasonRecord{}, false, fmt.Errorf("get record season=%d team=%d: %w", season, teamID, err)
	}

	return row.toDomain(), true, nil
}

func (r *RecordRepository) Upsert(ctx context.Context, rec record.SeasonRecord) error {
	query, args, err := qb.InsertModel("records", newRecordTableModel(rec), recordUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert record query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert record season=%d team=%d: %w", rec.Season, rec.TeamID, err)
	}

	return nil
}

func (r *RecordRepository) ReplaceSeason(ctx context.Context, season int, recs []record.SeasonRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace season tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("records").
		Where(qb.Eq("season", season)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete season records query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete season=%d records: %w", season, err)
	}

	for _, rec := range recs {
		query, args, err := qb.InsertModel("records", newRecordTableModel(rec), "")
		if err != nil {
			return fmt.Errorf("build insert record query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert record season=%d team=%d: %w", rec.Season, rec.TeamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace season tx: %w", err)
	}

	return nil
}

func recordsToDomain(rows []recordTableModel) []record.SeasonRecord {
	out := make([]record.SeasonRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
