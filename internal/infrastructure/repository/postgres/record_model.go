package postgres

import (
	"database/sql"

	"github.com/DFR0S7/CMR-Bot/internal/domain/record"
)

type recordTableModel struct {
	Season      int            `db:"season"`
	TeamID      int64          `db:"team_id"`
	TeamName    string         `db:"team_name"`
	TakenBy     sql.NullString `db:"taken_by"`
	TakenByName sql.NullString `db:"taken_by_name"`
	Wins        int            `db:"wins"`
	Losses      int            `db:"losses"`
	UserWins    int            `db:"user_wins"`
	UserLosses  int            `db:"user_losses"`
}

func newRecordTableModel(rec record.SeasonRecord) recordTableModel {
	return recordTableModel{
		Season:      rec.Season,
		TeamID:      rec.TeamID,
		TeamName:    rec.TeamName,
		TakenBy:     nullString(rec.TakenBy),
		TakenByName: nullString(rec.TakenByName),
		Wins:        rec.Wins,
		Losses:      rec.Losses,
		UserWins:    rec.UserWins,
		UserLosses:  rec.UserLosses,
	}
}

func (m recordTableModel) toDomain() record.SeasonRecord {
	return record.SeasonRecord{
		Season:      m.Season,
		TeamID:      m.TeamID,
		TeamName:    m.TeamName,
		TakenBy:     fromNullString(m.TakenBy),
		TakenByName: fromNullString(m.TakenByName),
		Wins:        m.Wins,
		Losses:      m.Losses,
		UserWins:    m.UserWins,
		UserLosses:  m.UserLosses,
	}
}
