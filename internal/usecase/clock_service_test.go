package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DFR0S7/CMR-Bot/internal/domain/clock"
	"github.com/DFR0S7/CMR-Bot/internal/domain/news"
	"github.com/DFR0S7/CMR-Bot/internal/domain/result"
)

func TestClockService_AdvanceWeek(t *testing.T) {
	t.Parallel()

	clockRepo := &stubClockRepository{lc: clock.LeagueClock{Season: 2, Week: 6}}
	newsRepo := &stubNewsRepository{items: []news.Item{
		{Season: 2, Week: 6, Text: "Coach on the hot seat"},
		{Season: 2, Week: 5, Text: "Old news"},
	}}
	resultRepo := &stubResultRepository{rows: []result.GameResult{
		{Season: 2, Week: 6, UserTeamName: "Akron", OpponentTeamName: "Buffalo"},
		{Season: 2, Week: 3, UserTeamName: "Toledo", OpponentTeamName: "Ohio"},
	}}

	service := NewClockService(clockRepo, newsRepo, resultRepo)
	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	adv, err := service.AdvanceWeek(context.Background(), 48)
	if err != nil {
		t.Fatalf("AdvanceWeek error: %v", err)
	}

	if adv.Completed.Week != 6 || adv.Next.Week != 7 || adv.Next.Season != 2 {
		t.Fatalf("unexpected clocks: %+v", adv)
	}
	if clockRepo.lc.Week != 7 {
		t.Fatalf("week not persisted, clock=%+v", clockRepo.lc)
	}
	if got, want := adv.NextAdvance, fixed.Add(48*time.Hour); !got.Equal(want) {
		t.Fatalf("next advance %v, want %v", got, want)
	}
	if len(adv.News) != 1 || adv.News[0].Text != "Coach on the hot seat" {
		t.Fatalf("summary must cover the completed week only: %+v", adv.News)
	}
	if len(adv.Results) != 1 || adv.Results[0].UserTeamName != "Akron" {
		t.Fatalf("summary results wrong: %+v", adv.Results)
	}
	if clockRepo.getCalls != 1 {
		t.Fatalf("clock read %d times, want exactly 1", clockRepo.getCalls)
	}
}

func TestClockService_AdvanceWeek_InvalidHours(t *testing.T) {
	t.Parallel()

	service := NewClockService(&stubClockRepository{}, &stubNewsRepository{}, &stubResultRepository{})
	if _, err := service.AdvanceWeek(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestClockService_AdvanceSeason(t *testing.T) {
	t.Parallel()

	clockRepo := &stubClockRepository{lc: clock.LeagueClock{Season: 3, Week: 14}}
	service := NewClockService(clockRepo, &stubNewsRepository{}, &stubResultRepository{})

	next, err := service.AdvanceSeason(context.Background())
	if err != nil {
		t.Fatalf("AdvanceSeason error: %v", err)
	}
	if next.Season != 4 || next.Week != 0 {
		t.Fatalf("unexpected next clock: %+v", next)
	}
	if clockRepo.lc.Season != 4 || clockRepo.lc.Week != 0 {
		t.Fatalf("clock not persisted: %+v", clockRepo.lc)
	}
}
