package team

import (
	"context"
	"errors"
)

// ErrTaken is returned by Claim when the team already has an occupant at
// write time.
var ErrTaken = errors.New("team already taken")

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, id int64) (Team, bool, error)
	GetByOccupant(ctx context.Context, userID string) (Team, bool, error)
	ListByCoachName(ctx context.Context, coachName string) ([]Team, error)
	// ListOpen returns teams at the given desirability tier with no occupant.
	ListOpen(ctx context.Context, stars float64) ([]Team, error)
	// SearchNames matches team names case-insensitively on a substring.
	SearchNames(ctx context.Context, search string, limit int) ([]Team, error)
	// SearchCoachNames matches occupant display names case-insensitively.
	SearchCoachNames(ctx context.Context, search string, limit int) ([]string, error)
	// Claim sets the occupant only if the team is currently unclaimed.
	// Returns ErrTaken when another occupant won the race.
	Claim(ctx context.Context, id int64, userID, userName string) error
	// Assign sets the occupant unconditionally (admin move).
	Assign(ctx context.Context, id int64, userID, userName string) error
	// Release clears the occupant.
	Release(ctx context.Context, id int64) error
	// ListOccupants returns the occupant id/name pairs of all taken teams.
	ListOccupants(ctx context.Context) ([]Occupant, error)
}

// Occupant is a (user id, display name, team name) triple for a taken team.
type Occupant struct {
	UserID   string
	UserName string
	TeamName string
}
