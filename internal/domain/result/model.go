package result

import "time"

const (
	OutcomeWin  = "W"
	OutcomeLoss = "L"
)

// GameResult is one submitted game, recorded from the submitting side's
// perspective. TakenBy/TakenByName capture the submitting occupant at the
// time of submission; rows are append-only.
type GameResult struct {
	ID               int64
	Season           int
	Week             int
	UserTeamID       int64
	UserTeamName     string
	OpponentTeamID   int64
	OpponentTeamName string
	UserScore        int
	OpponentScore    int
	Summary          string
	Outcome          string
	TakenBy          string
	TakenByName      string
	CreatedAt        time.Time
}

// OutcomeFor derives the outcome flag: a tie counts as a loss for the
// submitting side.
func OutcomeFor(userScore, opponentScore int) string {
	if userScore > opponentScore {
		return OutcomeWin
	}
	return OutcomeLoss
}
