package postgres

import (
	"database/sql"
	"time"

	"github.com/DFR0S7/CMR-Bot/internal/domain/result"
)

type resultTableModel struct {
	ID               int64          `db:"id"`
	Season           int            `db:"season"`
	Week             int            `db:"week"`
	UserTeamID       int64          `db:"user_team_id"`
	UserTeamName     string         `db:"user_team_name"`
	OpponentTeamID   int64          `db:"opponent_team_id"`
	OpponentTeamName string         `db:"opponent_team_name"`
	UserScore        int            `db:"user_score"`
	OpponentScore    int            `db:"opponent_score"`
	Summary          sql.NullString `db:"summary"`
	Outcome          string         `db:"outcome"`
	TakenBy          sql.NullString `db:"taken_by"`
	TakenByName      sql.NullString `db:"taken_by_name"`
	CreatedAt        time.Time      `db:"created_at"`
}

type resultInsertModel struct {
	Season           int            `db:"season"`
	Week             int            `db:"week"`
	UserTeamID       int64          `db:"user_team_id"`
	UserTeamName     string         `db:"user_team_name"`
	OpponentTeamID   int64          `db:"opponent_team_id"`
	OpponentTeamName string         `db:"opponent_team_name"`
	UserScore        int            `db:"user_score"`
	OpponentScore    int            `db:"opponent_score"`
	Summary          sql.NullString `db:"summary"`
	Outcome          string         `db:"outcome"`
	TakenBy          sql.NullString `db:"taken_by"`
	TakenByName      sql.NullString `db:"taken_by_name"`
}

func newResultInsertModel(res result.GameResult) resultInsertModel {
	return resultInsertModel{
		Season:           res.Season,
		Week:             res.Week,
		UserTeamID:       res.UserTeamID,
		UserTeamName:     res.UserTeamName,
		OpponentTeamID:   res.OpponentTeamID,
		OpponentTeamName: res.OpponentTeamName,
		UserScore:        res.UserScore,
		OpponentScore:    res.OpponentScore,
		Summary:          nullString(res.Summary),
		Outcome:          res.Outcome,
		TakenBy:          nullString(res.TakenBy),
		TakenByName:      nullString(res.TakenByName),
	}
}

func (m resultTableModel) toDomain() result.GameResult {
	return result.GameResult{
		ID:               m.ID,
		Season:           m.Season,
		Week:             m.Week,
		UserTeamID:       m.UserTeamID,
		UserTeamName:     m.UserTeamName,
		OpponentTeamID:   m.OpponentTeamID,
		OpponentTeamName: m.OpponentTeamName,
		UserScore:        m.UserScore,
		OpponentScore:    m.OpponentScore,
		Summary:          fromNullString(m.Summary),
		Outcome:          m.Outcome,
		TakenBy:          fromNullString(m.TakenBy),
		TakenByName:      fromNullString(m.TakenByName),
		CreatedAt:        m.CreatedAt,
	}
}
