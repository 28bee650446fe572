package standings

import (
	"testing"

	"github.com/DFR0S7/CMR-Bot/internal/domain/record"
	"github.com/DFR0S7/CMR-Bot/internal/domain/result"
)

func TestCompare_CloseRecordsFallThroughToUserPct(t *testing.T) {
	t.Parallel()

	// Same 4-2 record, so overall win% ties and the comparison must fall
	// through to the human-only percentage.
	a := Row{TakenBy: "u1", Wins: 4, Losses: 2, UserWins: 1, UserLosses: 2}
	b := Row{TakenBy: "u2", Wins: 4, Losses: 2, UserWins: 2, UserLosses: 1}

	if got := Compare(a, b, Ledger{}); got <= 0 {
		t.Fatalf("Compare(a, b) = %d, want > 0 (b has better user win%%)", got)
	}
	if got := Compare(b, a, Ledger{}); got >= 0 {
		t.Fatalf("Compare(b, a) = %d, want < 0", got)
	}
}

func TestCompare_WinGapShortCircuitsOnRawWins(t *testing.T) {
	t.Parallel()

	// a has two more wins than b. The comparison must stop at raw wins even
	// though b's percentages are all better.
	a := Row{TakenBy: "u1", Wins: 6, Losses: 6}
	b := Row{TakenBy: "u2", Wins: 4, Losses: 0, UserWins: 3, UserLosses: 0}

	if got := Compare(a, b, Ledger{}); got >= 0 {
		t.Fatalf("Compare(a, b) = %d, want < 0 (raw wins decide past the gap)", got)
	}
}

func TestCompare_H2HBreaksRemainingTies(t *testing.T) {
	t.Parallel()

	ledger := Ledger{}
	ledger.Add("u1", "u2", true)
	ledger.Add("u1", "u2", true)
	ledger.Add("u2", "u1", false)

	a := Row{TakenBy: "u1", Wins: 3, Losses: 3, UserWins: 2, UserLosses: 2}
	b := Row{TakenBy: "u2", Wins: 3, Losses: 3, UserWins: 2, UserLosses: 2}

	if got := Compare(a, b, ledger); got >= 0 {
		t.Fatalf("Compare(a, b) = %d, want < 0 (u1 is 2-0 vs u2 head to head)", got)
	}
}

func TestLedger_DirectionalLookup(t *testing.T) {
	t.Parallel()

	occupants := map[int64]string{10: "x", 20: "y"}
	results := []result.GameResult{
		{TakenBy: "x", OpponentTeamID: 20, Outcome: result.OutcomeWin},
		{TakenBy: "x", OpponentTeamID: 20, Outcome: result.OutcomeWin},
		{TakenBy: "x", OpponentTeamID: 20, Outcome: result.OutcomeLoss},
		{TakenBy: "y", OpponentTeamID: 10, Outcome: result.OutcomeWin},
		{TakenBy: "y", OpponentTeamID: 10, Outcome: result.OutcomeLoss},
		{TakenBy: "y", OpponentTeamID: 10, Outcome: result.OutcomeLoss},
	}

	ledger := BuildLedger(results, occupants)

	if got := ledger.WinPct("x", "y"); got < 0.666 || got > 0.667 {
		t.Fatalf("WinPct(x, y) = %v, want 2/3", got)
	}
	if got := ledger.WinPct("y", "x"); got < 0.333 || got > 0.334 {
		t.Fatalf("WinPct(y, x) = %v, want 1/3", got)
	}
	if got := ledger.WinPct("x", "nobody"); got != 0 {
		t.Fatalf("WinPct vs unknown = %v, want 0", got)
	}
}

func TestBuildLedger_SkipsAIGames(t *testing.T) {
	t.Parallel()

	occupants := map[int64]string{10: "x"}
	results := []result.GameResult{
		// AI submitter.
		{TakenBy: "", OpponentTeamID: 10, Outcome: result.OutcomeWin},
		// Opponent has no occupant record.
		{TakenBy: "x", OpponentTeamID: 99, Outcome: result.OutcomeWin},
	}

	if ledger := BuildLedger(results, occupants); len(ledger) != 0 {
		t.Fatalf("expected empty ledger, got %d entries", len(ledger))
	}
}

func TestSeasonRows_FiltersInactiveOccupants(t *testing.T) {
	t.Parallel()

	recs := []record.SeasonRecord{
		{Season: 1, TeamID: 10, TakenBy: "active", Wins: 5},
		{Season: 1, TeamID: 20, TakenBy: "departed", Wins: 9},
		{Season: 1, TeamID: 30, TakenBy: "", Wins: 2},
	}

	rows := SeasonRows(recs, map[string]bool{"active": true})
	if len(rows) != 1 || rows[0].TakenBy != "active" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestAllTimeRows_AggregatesAcrossSeasons(t *testing.T) {
	t.Parallel()

	recs := []record.SeasonRecord{
		{Season: 1, TeamID: 10, TakenBy: "u1", TakenByName: "Coach One", Wins: 8, Losses: 4, UserWins: 3, UserLosses: 1},
		{Season: 2, TeamID: 15, TakenBy: "u1", TakenByName: "Coach One", Wins: 2, Losses: 1, UserWins: 1, UserLosses: 0},
		// Nonzero history but no current team: dropped entirely.
		{Season: 1, TeamID: 20, TakenBy: "gone", TakenByName: "Old Coach", Wins: 12},
	}
	current := map[string]string{"u1": "Current U"}

	rows := AllTimeRows(recs, current)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	got := rows[0]
	if got.Wins != 10 || got.Losses != 5 || got.UserWins != 4 || got.UserLosses != 1 {
		t.Fatalf("bad aggregate: %+v", got)
	}
	if got.TeamName != "Current U" {
		t.Fatalf("team name = %q, want current team", got.TeamName)
	}
}

func TestRank_OrdersBestFirst(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{TakenBy: "mid", Wins: 5, Losses: 5},
		{TakenBy: "top", Wins: 9, Losses: 1},
		{TakenBy: "bottom", Wins: 1, Losses: 9},
	}

	Rank(rows, Ledger{})

	want := []string{"top", "mid", "bottom"}
	for i, w := range want {
		if rows[i].TakenBy != w {
			t.Fatalf("rank %d = %s, want %s", i+1, rows[i].TakenBy, w)
		}
	}
}
