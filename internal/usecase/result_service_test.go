package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/DFR0S7/CMR-Bot/internal/domain/clock"
	"github.com/DFR0S7/CMR-Bot/internal/domain/result"
	"github.com/DFR0S7/CMR-Bot/internal/domain/team"
)

func newResultFixture(teams []team.Team, lc clock.LeagueClock) (*ResultService, *stubRecordRepository, *stubResultRepository, *stubClockRepository) {
	teamRepo := &stubTeamRepository{teams: teams}
	recordRepo := &stubRecordRepository{}
	resultRepo := &stubResultRepository{}
	clockRepo := &stubClockRepository{lc: lc}
	return NewResultService(teamRepo, recordRepo, resultRepo, clockRepo), recordRepo, resultRepo, clockRepo
}

func TestResultService_SubmitGameResult_WinAgainstHuman(t *testing.T) {
	t.Parallel()

	service, recordRepo, resultRepo, clockRepo := newResultFixture([]team.Team{
		{ID: 1, Name: "Akron", TakenBy: "u1", TakenByName: "Coach One"},
		{ID: 2, Name: "Buffalo", TakenBy: "u2", TakenByName: "Coach Two"},
	}, clock.LeagueClock{Season: 3, Week: 5})

	res, err := service.SubmitGameResult(context.Background(), GameResultInput{
		UserID:        "u1",
		UserName:      "Coach One",
		Opponent:      "Buffalo",
		UserScore:     28,
		OpponentScore: 21,
		Summary:       "Late pick six seals it",
	})
	if err != nil {
		t.Fatalf("SubmitGameResult error: %v", err)
	}

	if res.Season != 3 || res.Week != 5 || res.Outcome != result.OutcomeWin {
		t.Fatalf("unexpected result row: %+v", res)
	}
	if clockRepo.getCalls != 1 {
		t.Fatalf("clock read %d times, want exactly 1", clockRepo.getCalls)
	}
	if len(resultRepo.rows) != 1 {
		t.Fatalf("expected 1 stored result, got %d", len(resultRepo.rows))
	}

	mine, ok, _ := recordRepo.Get(context.Background(), 3, 1)
	if !ok || mine.Wins != 1 || mine.Losses != 0 || mine.UserWins != 1 {
		t.Fatalf("unexpected submitter record: %+v", mine)
	}
	theirs, ok, _ := recordRepo.Get(context.Background(), 3, 2)
	if !ok || theirs.Wins != 0 || theirs.Losses != 1 || theirs.UserLosses != 1 {
		t.Fatalf("unexpected opponent record: %+v", theirs)
	}
}

func TestResultService_SubmitGameResult_TieCountsAsLoss(t *testing.T) {
	t.Parallel()

	service, recordRepo, _, _ := newResultFixture([]team.Team{
		{ID: 1, Name: "Akron", TakenBy: "u1", TakenByName: "Coach One"},
		{ID: 2, Name: "Buffalo"},
	}, clock.LeagueClock{Season: 1, Week: 1})

	res, err := service.SubmitGameResult(context.Background(), GameResultInput{
		UserID:        "u1",
		UserName:      "Coach One",
		Opponent:      "Buffalo",
		UserScore:     17,
		OpponentScore: 17,
	})
	if err != nil {
		t.Fatalf("SubmitGameResult error: %v", err)
	}
	if res.Outcome != result.OutcomeLoss {
		t.Fatalf("tie must record a loss, got %s", res.Outcome)
	}

	mine, _, _ := recordRepo.Get(context.Background(), 1, 1)
	if mine.Losses != 1 || mine.UserLosses != 0 {
		t.Fatalf("AI game must not touch user-only columns: %+v", mine)
	}
}

func TestResultService_SubmitGameResult_AIOpponentRecordUntouched(t *testing.T) {
	t.Parallel()

	service, recordRepo, _, _ := newResultFixture([]team.Team{
		{ID: 1, Name: "Akron", TakenBy: "u1", TakenByName: "Coach One"},
		{ID: 2, Name: "Buffalo"},
	}, clock.LeagueClock{Season: 1, Week: 1})

	if _, err := service.SubmitGameResult(context.Background(), GameResultInput{
		UserID:        "u1",
		UserName:      "Coach One",
		Opponent:      "Buffalo",
		UserScore:     31,
		OpponentScore: 10,
	}); err != nil {
		t.Fatalf("SubmitGameResult error: %v", err)
	}

	if _, ok, _ := recordRepo.Get(context.Background(), 1, 2); ok {
		t.Fatal("AI opponent must not get a record row")
	}
}

func TestResultService_SubmitGameResult_WeeklyGuard(t *testing.T) {
	t.Parallel()

	service, _, resultRepo, _ := newResultFixture([]team.Team{
		{ID: 1, Name: "Akron", TakenBy: "u1", TakenByName: "Coach One"},
		{ID: 2, Name: "Buffalo"},
	}, clock.LeagueClock{Season: 2, Week: 4})

	resultRepo.rows = []result.GameResult{
		{Season: 2, Week: 4, UserTeamID: 1, Outcome: result.OutcomeWin},
	}

	if _, err := service.SubmitGameResult(context.Background(), GameResultInput{
		UserID:        "u1",
		UserName:      "Coach One",
		Opponent:      "Buffalo",
		UserScore:     14,
		OpponentScore: 7,
	}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(resultRepo.rows) != 1 {
		t.Fatalf("guarded submission must not insert, have %d rows", len(resultRepo.rows))
	}
}

func TestResultService_SubmitGameResult_NoTeam(t *testing.T) {
	t.Parallel()

	service, _, _, _ := newResultFixture([]team.Team{
		{ID: 1, Name: "Akron"},
	}, clock.LeagueClock{Season: 1, Week: 0})

	if _, err := service.SubmitGameResult(context.Background(), GameResultInput{
		UserID:        "u1",
		UserName:      "Coach One",
		Opponent:      "Akron",
		UserScore:     10,
		OpponentScore: 3,
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResultService_FindTeamByName_SubstringFallback(t *testing.T) {
	t.Parallel()

	service, _, resultRepo, _ := newResultFixture([]team.Team{
		{ID: 1, Name: "Akron", TakenBy: "u1", TakenByName: "Coach One"},
		{ID: 2, Name: "Bowling Green"},
		{ID: 3, Name: "Kent State"},
	}, clock.LeagueClock{Season: 1, Week: 2})

	res, err := service.SubmitGameResult(context.Background(), GameResultInput{
		UserID:        "u1",
		UserName:      "Coach One",
		Opponent:      "bowling",
		UserScore:     20,
		OpponentScore: 13,
	})
	if err != nil {
		t.Fatalf("SubmitGameResult error: %v", err)
	}
	if res.OpponentTeamName != "Bowling Green" {
		t.Fatalf("substring lookup resolved %q", res.OpponentTeamName)
	}
	if len(resultRepo.rows) != 1 {
		t.Fatalf("expected 1 stored result, got %d", len(resultRepo.rows))
	}
}

func TestResultService_FindTeamByName_Ambiguous(t *testing.T) {
	t.Parallel()

	service, _, _, _ := newResultFixture([]team.Team{
		{ID: 1, Name: "Akron", TakenBy: "u1", TakenByName: "Coach One"},
		{ID: 2, Name: "Miami (OH)"},
		{ID: 3, Name: "Miami"},
	}, clock.LeagueClock{Season: 1, Week: 2})

	// "Miami" matches team 3 exactly, so it is not ambiguous.
	if _, err := service.SubmitGameResult(context.Background(), GameResultInput{
		UserID: "u1", UserName: "Coach One", Opponent: "Miami", UserScore: 7, OpponentScore: 3,
	}); err != nil {
		t.Fatalf("exact match must win over substring: %v", err)
	}

	if _, err := service.SubmitAnyGameResult(context.Background(), AnyGameResultInput{
		TeamName: "Akron", OpponentName: "Mia", TeamScore: 7, OpponentScore: 3, Week: 1,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ambiguity error, got %v", err)
	}
}

func TestResultService_SubmitAnyGameResult_OnlyHumanSidesRecorded(t *testing.T) {
	t.Parallel()

	service, recordRepo, resultRepo, _ := newResultFixture([]team.Team{
		{ID: 1, Name: "Akron", TakenBy: "u1", TakenByName: "Coach One"},
		{ID: 2, Name: "Buffalo"},
		{ID: 3, Name: "Kent State"},
	}, clock.LeagueClock{Season: 2, Week: 9})

	// Two AI teams: the row is logged but no records move.
	if _, err := service.SubmitAnyGameResult(context.Background(), AnyGameResultInput{
		TeamName: "Buffalo", OpponentName: "Kent State", TeamScore: 24, OpponentScore: 21, Week: 3,
	}); err != nil {
		t.Fatalf("SubmitAnyGameResult error: %v", err)
	}
	if len(resultRepo.rows) != 1 {
		t.Fatalf("expected logged row, got %d", len(resultRepo.rows))
	}
	if len(recordRepo.recs) != 0 {
		t.Fatalf("AI vs AI must not create records: %+v", recordRepo.recs)
	}

	// Human vs AI: only the human side gets a record, not a user-game one.
	if _, err := service.SubmitAnyGameResult(context.Background(), AnyGameResultInput{
		TeamName: "Akron", OpponentName: "Buffalo", TeamScore: 10, OpponentScore: 17, Week: 4,
	}); err != nil {
		t.Fatalf("SubmitAnyGameResult error: %v", err)
	}
	mine, ok, _ := recordRepo.Get(context.Background(), 2, 1)
	if !ok || mine.Losses != 1 || mine.UserLosses != 0 {
		t.Fatalf("unexpected human-side record: %+v", mine)
	}
	if _, ok, _ := recordRepo.Get(context.Background(), 2, 2); ok {
		t.Fatal("AI side must not get a record row")
	}
}

func TestResultService_BoxScoreRecords(t *testing.T) {
	t.Parallel()

	service, _, _, _ := newResultFixture([]team.Team{
		{ID: 1, Name: "Akron", TakenBy: "u1", TakenByName: "Coach One"},
		{ID: 2, Name: "Buffalo", TakenBy: "u2", TakenByName: "Coach Two"},
		{ID: 3, Name: "Toledo"},
	}, clock.LeagueClock{Season: 3, Week: 5})

	res, err := service.SubmitGameResult(context.Background(), GameResultInput{
		UserID: "u1", UserName: "Coach One", Opponent: "Buffalo", UserScore: 28, OpponentScore: 21,
	})
	if err != nil {
		t.Fatalf("SubmitGameResult error: %v", err)
	}

	mine, theirs, human, err := service.BoxScoreRecords(context.Background(), res)
	if err != nil {
		t.Fatalf("BoxScoreRecords error: %v", err)
	}
	if !human {
		t.Fatal("opponent should be human")
	}
	if mine.Wins != 1 || mine.Losses != 0 {
		t.Fatalf("unexpected submitter record: %+v", mine)
	}
	if theirs.Wins != 0 || theirs.Losses != 1 {
		t.Fatalf("unexpected opponent record: %+v", theirs)
	}
}

func TestResultService_BoxScoreRecords_AIOpponent(t *testing.T) {
	t.Parallel()

	service, _, _, _ := newResultFixture([]team.Team{
		{ID: 1, Name: "Akron", TakenBy: "u1", TakenByName: "Coach One"},
		{ID: 3, Name: "Toledo"},
	}, clock.LeagueClock{Season: 1, Week: 2})

	res, err := service.SubmitGameResult(context.Background(), GameResultInput{
		UserID: "u1", UserName: "Coach One", Opponent: "Toledo", UserScore: 14, OpponentScore: 35,
	})
	if err != nil {
		t.Fatalf("SubmitGameResult error: %v", err)
	}

	mine, _, human, err := service.BoxScoreRecords(context.Background(), res)
	if err != nil {
		t.Fatalf("BoxScoreRecords error: %v", err)
	}
	if human {
		t.Fatal("AI opponent reported as human")
	}
	if mine.Losses != 1 {
		t.Fatalf("unexpected submitter record: %+v", mine)
	}
}
