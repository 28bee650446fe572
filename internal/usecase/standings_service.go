package usecase

import (
	"context"
	"fmt"

	"github.com/DFR0S7/CMR-Bot/internal/domain/clock"
	"github.com/DFR0S7/CMR-Bot/internal/domain/record"
	"github.com/DFR0S7/CMR-Bot/internal/domain/result"
	"github.com/DFR0S7/CMR-Bot/internal/domain/standings"
	"github.com/DFR0S7/CMR-Bot/internal/domain/team"
)

type StandingsService struct {
	teamRepo   team.Repository
	recordRepo record.Repository
	resultRepo result.Repository
	clockRepo  clock.Repository
}

func NewStandingsService(
	teamRepo team.Repository,
	recordRepo record.Repository,
	resultRepo result.Repository,
	clockRepo clock.Repository,
) *StandingsService {
	return &StandingsService{
		teamRepo:   teamRepo,
		recordRepo: recordRepo,
		resultRepo: resultRepo,
		clockRepo:  clockRepo,
	}
}

// SeasonRanking ranks the current season's records, restricted to teams whose
// occupant still holds a team. The returned clock is the one the ranking was
// computed against.
func (s *StandingsService) SeasonRanking(ctx context.Context) (clock.LeagueClock, []standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.SeasonRanking")
	defer span.End()

	lc, err := s.clockRepo.Get(ctx)
	if err != nil {
		return clock.LeagueClock{}, nil, fmt.Errorf("get league clock: %w", err)
	}

	recs, err := s.recordRepo.ListBySeason(ctx, lc.Season)
	if err != nil {
		return clock.LeagueClock{}, nil, fmt.Errorf("list season records: %w", err)
	}

	occupants, err := s.teamRepo.ListOccupants(ctx)
	if err != nil {
		return clock.LeagueClock{}, nil, fmt.Errorf("list occupants: %w", err)
	}
	activeUsers := make(map[string]bool, len(occupants))
	for _, occ := range occupants {
		activeUsers[occ.UserID] = true
	}

	results, err := s.resultRepo.ListBySeason(ctx, lc.Season)
	if err != nil {
		return clock.LeagueClock{}, nil, fmt.Errorf("list season results: %w", err)
	}

	ledger := standings.BuildLedger(results, standings.OccupantsByTeamID(recs))
	rows := standings.SeasonRows(recs, activeUsers)
	standings.Rank(rows, ledger)

	return lc, rows, nil
}

// AllTimeRanking aggregates every season per occupant and ranks the result.
// Occupants who no longer hold a team are excluded.
func (s *StandingsService) AllTimeRanking(ctx context.Context) ([]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.AllTimeRanking")
	defer span.End()

	recs, err := s.recordRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all records: %w", err)
	}

	occupants, err := s.teamRepo.ListOccupants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list occupants: %w", err)
	}
	currentTeamByUser := make(map[string]string, len(occupants))
	for _, occ := range occupants {
		currentTeamByUser[occ.UserID] = occ.TeamName
	}

	results, err := s.resultRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all results: %w", err)
	}

	ledger := standings.BuildLedger(results, standings.OccupantsByTeamID(recs))
	rows := standings.AllTimeRows(recs, currentTeamByUser)
	standings.Rank(rows, ledger)

	return rows, nil
}
