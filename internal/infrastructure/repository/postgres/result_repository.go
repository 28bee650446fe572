package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/DFR0S7/CMR-Bot/internal/domain/result"
	qb "github.com/DFR0S7/CMR-Bot/internal/platform/querybuilder"
)

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) Insert(ctx context.Context, res result.GameResult) error {
	query, args, err := qb.InsertModel("results", newResultInsertModel(res), "")
	if err != nil {
		return fmt.Errorf("build insert result query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert result season=%d week=%d team=%d: %w", res.Season, res.Week, res.UserTeamID, err)
	}

	return nil
}

func (r *ResultRepository) ListBySeason(ctx context.Context, season int) ([]result.GameResult, error) {
	query, args, err := qb.Select("*").From("results").
		Where(qb.Eq("season", season)).
		OrderBy("created_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list results query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list results season=%d: %w", season, err)
	}

	return resultsToDomain(rows), nil
}

func (r *ResultRepository) ListByWeek(ctx context.Context, season, week int) ([]result.GameResult, error) {
	query, args, err := qb.Select("*").From("results").
		Where(
			qb.Eq("season", season),
			qb.Eq("week", week),
		).
		OrderBy("created_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list week results query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list results season=%d week=%d: %w", season, week, err)
	}

	return resultsToDomain(rows), nil
}

func (r *ResultRepository) ListAll(ctx context.Context) ([]result.GameResult, error) {
	query, args, err := qb.Select("*").From("results").
		OrderBy("season", "created_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list all results query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list all results: %w", err)
	}

	return resultsToDomain(rows), nil
}

func (r *ResultRepository) GetForWeek(ctx context.Context, season, week int, userTeamID int64) (result.GameResult, bool, error) {
	query, args, err := qb.Select("*").From("results").
		Where(
			qb.Eq("season", season),
			qb.Eq("week", week),
			qb.Eq("user_team_id", userTeamID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return result.GameResult{}, false, fmt.Errorf("build get week result query: %w", err)
	}

	var row resultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return result.GameResult{}, false, nil
		}
		return result.GameResult{}, false, fmt.Errorf("get result season=%d week=%d team=%d: %w", season, week, userTeamID, err)
	}

	return row.toDomain(), true, nil
}

func resultsToDomain(rows []resultTableModel) []result.GameResult {
	out := make([]result.GameResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
