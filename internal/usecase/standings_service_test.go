package usecase

import (
	"context"
	"testing"

	"github.com/DFR0S7/CMR-Bot/internal/domain/clock"
	"github.com/DFR0S7/CMR-Bot/internal/domain/record"
	"github.com/DFR0S7/CMR-Bot/internal/domain/result"
	"github.com/DFR0S7/CMR-Bot/internal/domain/team"
)

func TestStandingsService_SeasonRanking_SkipsDepartedCoaches(t *testing.T) {
	t.Parallel()

	teamRepo := &stubTeamRepository{teams: []team.Team{
		{ID: 1, Name: "Akron", TakenBy: "u1", TakenByName: "Coach One"},
		{ID: 2, Name: "Buffalo", TakenBy: "u2", TakenByName: "Coach Two"},
	}}
	recordRepo := &stubRecordRepository{recs: []record.SeasonRecord{
		{Season: 2, TeamID: 1, TeamName: "Akron", TakenBy: "u1", TakenByName: "Coach One", Wins: 5, Losses: 2},
		{Season: 2, TeamID: 2, TeamName: "Buffalo", TakenBy: "u2", TakenByName: "Coach Two", Wins: 6, Losses: 1},
		// u3 left the league; their record stays but must not rank.
		{Season: 2, TeamID: 3, TeamName: "Toledo", TakenBy: "u3", TakenByName: "Gone", Wins: 7, Losses: 0},
	}}
	clockRepo := &stubClockRepository{lc: clock.LeagueClock{Season: 2, Week: 8}}

	service := NewStandingsService(teamRepo, recordRepo, &stubResultRepository{}, clockRepo)

	lc, rows, err := service.SeasonRanking(context.Background())
	if err != nil {
		t.Fatalf("SeasonRanking error: %v", err)
	}
	if lc.Season != 2 {
		t.Fatalf("unexpected clock: %+v", lc)
	}
	if len(rows) != 2 {
		t.Fatalf("departed coach must be excluded, got %+v", rows)
	}
	if rows[0].TakenBy != "u2" || rows[1].TakenBy != "u1" {
		t.Fatalf("unexpected order: %+v", rows)
	}
}

func TestStandingsService_SeasonRanking_H2HBreaksTies(t *testing.T) {
	t.Parallel()

	teamRepo := &stubTeamRepository{teams: []team.Team{
		{ID: 1, Name: "Akron", TakenBy: "u1", TakenByName: "Coach One"},
		{ID: 2, Name: "Buffalo", TakenBy: "u2", TakenByName: "Coach Two"},
	}}
	recordRepo := &stubRecordRepository{recs: []record.SeasonRecord{
		{Season: 1, TeamID: 1, TeamName: "Akron", TakenBy: "u1", TakenByName: "Coach One", Wins: 4, Losses: 4, UserWins: 1, UserLosses: 1},
		{Season: 1, TeamID: 2, TeamName: "Buffalo", TakenBy: "u2", TakenByName: "Coach Two", Wins: 4, Losses: 4, UserWins: 1, UserLosses: 1},
	}}
	resultRepo := &stubResultRepository{rows: []result.GameResult{
		// u2 beat u1 head to head.
		{Season: 1, Week: 3, UserTeamID: 2, OpponentTeamID: 1, Outcome: result.OutcomeWin, TakenBy: "u2"},
	}}
	clockRepo := &stubClockRepository{lc: clock.LeagueClock{Season: 1, Week: 9}}

	service := NewStandingsService(teamRepo, recordRepo, resultRepo, clockRepo)

	_, rows, err := service.SeasonRanking(context.Background())
	if err != nil {
		t.Fatalf("SeasonRanking error: %v", err)
	}
	if rows[0].TakenBy != "u2" {
		t.Fatalf("head-to-head winner must rank first: %+v", rows)
	}
}

func TestStandingsService_AllTimeRanking(t *testing.T) {
	t.Parallel()

	teamRepo := &stubTeamRepository{teams: []team.Team{
		{ID: 5, Name: "Kent State", TakenBy: "u1", TakenByName: "Coach One"},
		{ID: 6, Name: "Ohio", TakenBy: "u2", TakenByName: "Coach Two"},
	}}
	recordRepo := &stubRecordRepository{recs: []record.SeasonRecord{
		{Season: 1, TeamID: 1, TeamName: "Akron", TakenBy: "u1", TakenByName: "Coach One", Wins: 3, Losses: 5},
		{Season: 2, TeamID: 5, TeamName: "Kent State", TakenBy: "u1", TakenByName: "Coach One", Wins: 8, Losses: 1},
		{Season: 2, TeamID: 6, TeamName: "Ohio", TakenBy: "u2", TakenByName: "Coach Two", Wins: 5, Losses: 4},
		{Season: 1, TeamID: 2, TeamName: "Buffalo", TakenBy: "u9", TakenByName: "Departed", Wins: 9, Losses: 0},
	}}

	service := NewStandingsService(teamRepo, recordRepo, &stubResultRepository{}, &stubClockRepository{})

	rows, err := service.AllTimeRanking(context.Background())
	if err != nil {
		t.Fatalf("AllTimeRanking error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("departed coaches must be excluded, got %+v", rows)
	}
	if rows[0].TakenBy != "u1" || rows[0].Wins != 11 || rows[0].Losses != 6 {
		t.Fatalf("unexpected aggregate: %+v", rows[0])
	}
	if rows[0].TeamName != "Kent State" {
		t.Fatalf("all-time row must show the current team: %+v", rows[0])
	}
}
