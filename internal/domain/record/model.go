package record

// SeasonRecord is the per (season, team) win/loss aggregate. UserWins and
// UserLosses count only games against other human-controlled teams, so
// UserWins+UserLosses never exceeds Wins+Losses.
type SeasonRecord struct {
	Season      int
	TeamID      int64
	TeamName    string
	TakenBy     string
	TakenByName string
	Wins        int
	Losses      int
	UserWins    int
	UserLosses  int
}

// Add folds one game outcome into the aggregate.
func (r *SeasonRecord) Add(won, vsHuman bool) {
	if won {
		r.Wins++
	} else {
		r.Losses++
	}
	if vsHuman {
		if won {
			r.UserWins++
		} else {
			r.UserLosses++
		}
	}
}
