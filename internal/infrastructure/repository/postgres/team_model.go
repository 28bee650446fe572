package postgres

import (
	"database/sql"

	"github.com/DFR0S7/CMR-Bot/internal/domain/team"
)

type teamTableModel struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Conference  sql.NullString `db:"conference"`
	Stars       float64        `db:"stars"`
	TakenBy     sql.NullString `db:"taken_by"`
	TakenByName sql.NullString `db:"taken_by_name"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:          m.ID,
		Name:        m.Name,
		Conference:  fromNullString(m.Conference),
		Stars:       m.Stars,
		TakenBy:     fromNullString(m.TakenBy),
		TakenByName: fromNullString(m.TakenByName),
	}
}
