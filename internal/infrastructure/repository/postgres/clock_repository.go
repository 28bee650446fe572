package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/DFR0S7/CMR-Bot/internal/domain/clock"
	qb "github.com/DFR0S7/CMR-Bot/internal/platform/querybuilder"
)

const (
	metaKeySeason = "current_season"
	metaKeyWeek   = "current_week"

	metaUpsertSuffix = "ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value"
)

// ClockRepository keeps the league clock in the meta key/value table. Values
// are stored as text.
type ClockRepository struct {
	db *sqlx.DB
}

func NewClockRepository(db *sqlx.DB) *ClockRepository {
	return &ClockRepository{db: db}
}

func (r *ClockRepository) Get(ctx context.Context) (clock.LeagueClock, error) {
	query, args, err := qb.Select("key", "value").From("meta").
		Where(qb.In("key", []any{metaKeySeason, metaKeyWeek})).
		ToSQL()
	if err != nil {
		return clock.LeagueClock{}, fmt.Errorf("build get clock query: %w", err)
	}

	var rows []struct {
		Key   string `db:"key"`
		Value string `db:"value"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return clock.LeagueClock{}, fmt.Errorf("get clock: %w", err)
	}

	lc := clock.LeagueClock{Season: 1, Week: 0}
	for _, row := range rows {
		n, err := strconv.Atoi(row.Value)
		if err != nil {
			return clock.LeagueClock{}, fmt.Errorf("parse meta %s=%q: %w", row.Key, row.Value, err)
		}
		switch row.Key {
		case metaKeySeason:
			lc.Season = n
		case metaKeyWeek:
			lc.Week = n
		}
	}

	return lc, nil
}

func (r *ClockRepository) SetWeek(ctx context.Context, week int) error {
	return r.setMeta(ctx, metaKeyWeek, strconv.Itoa(week))
}

func (r *ClockRepository) SetSeason(ctx context.Context, season int) error {
	return r.setMeta(ctx, metaKeySeason, strconv.Itoa(season))
}

func (r *ClockRepository) setMeta(ctx context.Context, key, value string) error {
	query, args, err := qb.InsertInto("meta").
		Columns("key", "value").
		Values(key, value).
		Suffix(metaUpsertSuffix).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set meta query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set meta %s=%s: %w", key, value, err)
	}

	return nil
}
