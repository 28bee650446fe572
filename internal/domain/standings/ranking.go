package standings

import (
	"sort"

	"github.com/DFR0S7/CMR-Bot/internal/domain/record"
	"github.com/DFR0S7/CMR-Bot/internal/domain/result"
)

// Row is one rankable line: a single season record, or an all-time aggregate
// for one occupant.
type Row struct {
	TakenBy     string
	TakenByName string
	TeamName    string
	Wins        int
	Losses      int
	UserWins    int
	UserLosses  int
}

// WinPct is the overall win percentage, 0 when no games were played.
func (r Row) WinPct() float64 {
	games := r.Wins + r.Losses
	if games == 0 {
		return 0
	}
	return float64(r.Wins) / float64(games)
}

// UserWinPct is the win percentage against human-controlled teams only.
func (r Row) UserWinPct() float64 {
	games := r.UserWins + r.UserLosses
	if games == 0 {
		return 0
	}
	return float64(r.UserWins) / float64(games)
}

type tally struct {
	wins   int
	losses int
}

type pair struct {
	a string
	b string
}

// Ledger holds directional head-to-head tallies between occupants. The entry
// for (a, b) is a's record specifically against b; (b, a) is tracked
// separately from b's submissions.
type Ledger map[pair]tally

// Add folds one submitted game into a's tally against b.
func (l Ledger) Add(a, b string, won bool) {
	t := l[pair{a, b}]
	if won {
		t.wins++
	} else {
		t.losses++
	}
	l[pair{a, b}] = t
}

// WinPct returns a's head-to-head win percentage against b, 0 when the two
// never met.
func (l Ledger) WinPct(a, b string) float64 {
	t, ok := l[pair{a, b}]
	if !ok {
		return 0
	}
	games := t.wins + t.losses
	if games == 0 {
		return 0
	}
	return float64(t.wins) / float64(games)
}

// OccupantsByTeamID maps team id to the occupant recorded for it. The first
// record per team wins, matching how opponents are resolved when results are
// tallied.
func OccupantsByTeamID(recs []record.SeasonRecord) map[int64]string {
	out := make(map[int64]string, len(recs))
	for _, r := range recs {
		if r.TakenBy == "" {
			continue
		}
		if _, ok := out[r.TeamID]; !ok {
			out[r.TeamID] = r.TakenBy
		}
	}
	return out
}

// BuildLedger rebuilds the head-to-head ledger from the game log. Only games
// with a human submitter and a resolvable human opponent count.
func BuildLedger(results []result.GameResult, occupantByTeam map[int64]string) Ledger {
	ledger := make(Ledger)
	for _, r := range results {
		if r.TakenBy == "" || r.OpponentTeamID == 0 {
			continue
		}
		opp, ok := occupantByTeam[r.OpponentTeamID]
		if !ok || opp == "" {
			continue
		}
		ledger.Add(r.TakenBy, opp, r.Outcome == result.OutcomeWin)
	}
	return ledger
}

// Compare orders two rows, negative when a ranks ahead of b.
//
// The logic is deliberately pairwise, not a transitive sort key: when the
// rows are within one win of each other the comparison proceeds through win
// percentage, human-only win percentage and head-to-head percentage, but a
// gap of two or more wins short-circuits on raw wins alone. Applied over
// three or more rows this can produce inconsistent orderings (A ahead of B,
// B ahead of C, C ahead of A). Existing rankings depend on this behavior, so
// it must not be "fixed" into a transitive key.
func Compare(a, b Row, ledger Ledger) int {
	winDiff := a.Wins - b.Wins
	if winDiff < 0 {
		winDiff = -winDiff
	}

	if winDiff <= 1 {
		if apct, bpct := a.WinPct(), b.WinPct(); apct != bpct {
			return cmpDesc(apct, bpct)
		}
	} else {
		return b.Wins - a.Wins
	}

	if apct, bpct := a.UserWinPct(), b.UserWinPct(); apct != bpct {
		return cmpDesc(apct, bpct)
	}

	aH2H := ledger.WinPct(a.TakenBy, b.TakenBy)
	bH2H := ledger.WinPct(b.TakenBy, a.TakenBy)
	if aH2H != bH2H {
		return cmpDesc(aH2H, bH2H)
	}

	return 0
}

func cmpDesc(a, b float64) int {
	if a > b {
		return -1
	}
	return 1
}

// Rank sorts rows best-first with Compare, keeping input order for ties.
func Rank(rows []Row, ledger Ledger) {
	sort.SliceStable(rows, func(i, j int) bool {
		return Compare(rows[i], rows[j], ledger) < 0
	})
}

// SeasonRows converts a season's records into rankable rows, keeping only
// teams whose occupant is still active (present in activeUsers).
func SeasonRows(recs []record.SeasonRecord, activeUsers map[string]bool) []Row {
	rows := make([]Row, 0, len(recs))
	for _, r := range recs {
		if !activeUsers[r.TakenBy] {
			continue
		}
		rows = append(rows, Row{
			TakenBy:     r.TakenBy,
			TakenByName: r.TakenByName,
			TeamName:    r.TeamName,
			Wins:        r.Wins,
			Losses:      r.Losses,
			UserWins:    r.UserWins,
			UserLosses:  r.UserLosses,
		})
	}
	return rows
}

// AllTimeRows sums records across every season per occupant, restricted to
// occupants who currently hold a team. Historical occupants with no current
// team are dropped entirely. The displayed team is the occupant's current
// one, not any historical team.
func AllTimeRows(recs []record.SeasonRecord, currentTeamByUser map[string]string) []Row {
	index := make(map[string]int)
	rows := make([]Row, 0)
	for _, r := range recs {
		teamName, active := currentTeamByUser[r.TakenBy]
		if !active {
			continue
		}

		i, ok := index[r.TakenBy]
		if !ok {
			name := r.TakenByName
			if name == "" {
				name = "Unknown"
			}
			if teamName == "" {
				teamName = "No Team"
			}
			rows = append(rows, Row{
				TakenBy:     r.TakenBy,
				TakenByName: name,
				TeamName:    teamName,
			})
			i = len(rows) - 1
			index[r.TakenBy] = i
		}

		rows[i].Wins += r.Wins
		rows[i].Losses += r.Losses
		rows[i].UserWins += r.UserWins
		rows[i].UserLosses += r.UserLosses
	}
	return rows
}
