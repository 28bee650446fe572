package postgres

import "database/sql"

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func fromNullString(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}
