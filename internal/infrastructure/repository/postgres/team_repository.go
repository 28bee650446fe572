package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/DFR0S7/CMR-Bot/internal/domain/team"
	qb "github.com/DFR0S7/CMR-Bot/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		OrderBy("conference", "name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return teamsToDomain(rows), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team id=%d: %w", id, err)
	}

	return row.toDomain(), true, nil
}

func (r *TeamRepository) GetByOccupant(ctx context.Context, userID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("taken_by", userID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by occupant query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by occupant=%s: %w", userID, err)
	}

	return row.toDomain(), true, nil
}

func (r *TeamRepository) ListByCoachName(ctx context.Context, coachName string) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("taken_by_name", coachName)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams by coach query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams by coach=%s: %w", coachName, err)
	}

	return teamsToDomain(rows), nil
}

func (r *TeamRepository) ListOpen(ctx context.Context, stars float64) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("stars", stars),
			qb.IsNull("taken_by"),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list open teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list open teams stars=%v: %w", stars, err)
	}

	return teamsToDomain(rows), nil
}

func (r *TeamRepository) SearchNames(ctx context.Context, search string, limit int) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.ILike("name", "%"+search+"%")).
		OrderBy("name").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search team names query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("search team names %q: %w", search, err)
	}

	return teamsToDomain(rows), nil
}

func (r *TeamRepository) SearchCoachNames(ctx context.Context, search string, limit int) ([]string, error) {
	query, args, err := qb.Select("DISTINCT taken_by_name").From("teams").
		Where(
			qb.IsNotNull("taken_by"),
			qb.ILike("taken_by_name", "%"+search+"%"),
		).
		OrderBy("taken_by_name").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search coach names query: %w", err)
	}

	var names []string
	if err := r.db.SelectContext(ctx, &names, query, args...); err != nil {
		return nil, fmt.Errorf("search coach names %q: %w", search, err)
	}

	return names, nil
}

// Claim is the conditional atomic update closing the check-then-act race on
// team claiming: the occupant is only written when the row still has none.
func (r *TeamRepository) Claim(ctx context.Context, id int64, userID, userName string) error {
	query, args, err := qb.Update("teams").
		Set("taken_by", userID).
		Set("taken_by_name", userName).
		Where(
			qb.Eq("id", id),
			qb.IsNull("taken_by"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build claim team query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("claim team id=%d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("claim team id=%d rows affected: %w", id, err)
	}
	if affected == 0 {
		return team.ErrTaken
	}

	return nil
}

func (r *TeamRepository) Assign(ctx context.Context, id int64, userID, userName string) error {
	query, args, err := qb.Update("teams").
		Set("taken_by", userID).
		Set("taken_by_name", userName).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build assign team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("assign team id=%d: %w", id, err)
	}

	return nil
}

func (r *TeamRepository) Release(ctx context.Context, id int64) error {
	query, args, err := qb.Update("teams").
		Set("taken_by", nil).
		Set("taken_by_name", nil).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build release team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("release team id=%d: %w", id, err)
	}

	return nil
}

func (r *TeamRepository) ListOccupants(ctx context.Context) ([]team.Occupant, error) {
	query, args, err := qb.Select("taken_by", "taken_by_name", "name").From("teams").
		Where(qb.IsNotNull("taken_by")).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list occupants query: %w", err)
	}

	var rows []struct {
		TakenBy     string `db:"taken_by"`
		TakenByName string `db:"taken_by_name"`
		Name        string `db:"name"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list occupants: %w", err)
	}

	out := make([]team.Occupant, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Occupant{
			UserID:   row.TakenBy,
			UserName: row.TakenByName,
			TeamName: row.Name,
		})
	}

	return out, nil
}

func teamsToDomain(rows []teamTableModel) []team.Team {
	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
