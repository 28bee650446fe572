package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/DFR0S7/CMR-Bot/internal/domain/clock"
	"github.com/DFR0S7/CMR-Bot/internal/domain/news"
	"github.com/DFR0S7/CMR-Bot/internal/domain/result"
)

type ClockService struct {
	clockRepo  clock.Repository
	newsRepo   news.Repository
	resultRepo result.Repository

	now func() time.Time
}

func NewClockService(clockRepo clock.Repository, newsRepo news.Repository, resultRepo result.Repository) *ClockService {
	return &ClockService{
		clockRepo:  clockRepo,
		newsRepo:   newsRepo,
		resultRepo: resultRepo,
		now:        time.Now,
	}
}

// WeekAdvance is everything the advance announcement needs: the position that
// was just completed, the new position, when the next advance lands, and the
// completed week's press releases and results.
type WeekAdvance struct {
	Completed   clock.LeagueClock
	Next        clock.LeagueClock
	NextAdvance time.Time
	News        []news.Item
	Results     []result.GameResult
}

// AdvanceWeek moves the league one week forward and gathers the summary of
// the week that just ended.
func (s *ClockService) AdvanceWeek(ctx context.Context, hoursToNext int) (WeekAdvance, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClockService.AdvanceWeek")
	defer span.End()

	if hoursToNext <= 0 {
		return WeekAdvance{}, fmt.Errorf("%w: hours until next advance must be positive", ErrInvalidInput)
	}

	lc, err := s.clockRepo.Get(ctx)
	if err != nil {
		return WeekAdvance{}, fmt.Errorf("get league clock: %w", err)
	}

	items, err := s.newsRepo.ListByWeek(ctx, lc.Season, lc.Week)
	if err != nil {
		return WeekAdvance{}, fmt.Errorf("list week news: %w", err)
	}
	results, err := s.resultRepo.ListByWeek(ctx, lc.Season, lc.Week)
	if err != nil {
		return WeekAdvance{}, fmt.Errorf("list week results: %w", err)
	}

	next := clock.LeagueClock{Season: lc.Season, Week: lc.Week + 1}
	if err := s.clockRepo.SetWeek(ctx, next.Week); err != nil {
		return WeekAdvance{}, fmt.Errorf("set week: %w", err)
	}

	return WeekAdvance{
		Completed:   lc,
		Next:        next,
		NextAdvance: s.now().Add(time.Duration(hoursToNext) * time.Hour),
		News:        items,
		Results:     results,
	}, nil
}

// AdvanceSeason starts the next season at week zero.
func (s *ClockService) AdvanceSeason(ctx context.Context) (clock.LeagueClock, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClockService.AdvanceSeason")
	defer span.End()

	lc, err := s.clockRepo.Get(ctx)
	if err != nil {
		return clock.LeagueClock{}, fmt.Errorf("get league clock: %w", err)
	}

	next := clock.LeagueClock{Season: lc.Season + 1, Week: 0}
	if err := s.clockRepo.SetSeason(ctx, next.Season); err != nil {
		return clock.LeagueClock{}, fmt.Errorf("set season: %w", err)
	}
	if err := s.clockRepo.SetWeek(ctx, next.Week); err != nil {
		return clock.LeagueClock{}, fmt.Errorf("set week: %w", err)
	}

	return next, nil
}

// Current returns the league clock as a single read.
func (s *ClockService) Current(ctx context.Context) (clock.LeagueClock, error) {
	lc, err := s.clockRepo.Get(ctx)
	if err != nil {
		return clock.LeagueClock{}, fmt.Errorf("get league clock: %w", err)
	}
	return lc, nil
}
