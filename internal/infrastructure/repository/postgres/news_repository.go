package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/DFR0S7/CMR-Bot/internal/domain/news"
	qb "github.com/DFR0S7/CMR-Bot/internal/platform/querybuilder"
)

type newsTableModel struct {
	ID        int64     `db:"id"`
	Season    int       `db:"season"`
	Week      int       `db:"week"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
}

func (m newsTableModel) toDomain() news.Item {
	return news.Item{
		ID:        m.ID,
		Season:    m.Season,
		Week:      m.Week,
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}

type NewsRepository struct {
	db *sqlx.DB
}

func NewNewsRepository(db *sqlx.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) Insert(ctx context.Context, item news.Item) error {
	query, args, err := qb.InsertInto("news_feed").
		Columns("season", "week", "text").
		Values(item.Season, item.Week, item.Text).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert news query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert news season=%d week=%d: %w", item.Season, item.Week, err)
	}

	return nil
}

func (r *NewsRepository) ListByWeek(ctx context.Context, season, week int) ([]news.Item, error) {
	query, args, err := qb.Select("*").From("news_feed").
		Where(
			qb.Eq("season", season),
			qb.Eq("week", week),
		).
		OrderBy("created_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list news query: %w", err)
	}

	var rows []newsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list news season=%d week=%d: %w", season, week, err)
	}

	out := make([]news.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
