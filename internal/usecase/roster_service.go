package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/DFR0S7/CMR-Bot/internal/domain/team"
	"github.com/DFR0S7/CMR-Bot/internal/platform/session"
)

// RosterService covers the admin-facing roster operations: the team board,
// resets, coach moves and the autocomplete lookups behind them.
type RosterService struct {
	teamRepo team.Repository
	sessions *session.Store

	openTierStars float64
}

func NewRosterService(teamRepo team.Repository, sessions *session.Store, openTierStars float64) *RosterService {
	return &RosterService{
		teamRepo:      teamRepo,
		sessions:      sessions,
		openTierStars: openTierStars,
	}
}

// TeamBoard returns the teams shown on the public roster display: the open
// prestige tier plus every taken team, in conference then name order.
func (s *RosterService) TeamBoard(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.TeamBoard")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	board := make([]team.Team, 0, len(teams))
	for _, t := range teams {
		if t.Stars == s.openTierStars || t.Taken() {
			board = append(board, t)
		}
	}

	return board, nil
}

// ResetTeam clears a team's occupant and the former coach's offer state. The
// returned team still carries the old occupant so the caller can tear down
// their channel and role.
func (s *RosterService) ResetTeam(ctx context.Context, teamID int64) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ResetTeam")
	defer span.End()

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team id=%d: %w", teamID, err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team id=%d", ErrNotFound, teamID)
	}
	if !t.Taken() {
		return team.Team{}, fmt.Errorf("%w: team %s has no coach", ErrInvalidInput, t.Name)
	}

	if err := s.teamRepo.Release(ctx, t.ID); err != nil {
		return team.Team{}, fmt.Errorf("release team id=%d: %w", t.ID, err)
	}

	s.sessions.ClearOffered(t.TakenBy)
	s.sessions.ClearOffers(t.TakenBy)

	return t, nil
}

// MoveCoach reassigns a coach to another team. The previous team, if any, is
// released; both are returned for channel and role upkeep.
func (s *RosterService) MoveCoach(ctx context.Context, userID, userName string, teamID int64) (from, to team.Team, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.MoveCoach")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return team.Team{}, team.Team{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	target, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, team.Team{}, fmt.Errorf("get team id=%d: %w", teamID, err)
	}
	if !exists {
		return team.Team{}, team.Team{}, fmt.Errorf("%w: team id=%d", ErrNotFound, teamID)
	}
	if target.Taken() && target.TakenBy != userID {
		return team.Team{}, team.Team{}, fmt.Errorf("%w: team %s is coached by %s", ErrConflict, target.Name, target.TakenByName)
	}

	current, hadTeam, err := s.teamRepo.GetByOccupant(ctx, userID)
	if err != nil {
		return team.Team{}, team.Team{}, fmt.Errorf("get occupied team: %w", err)
	}
	if hadTeam {
		if current.ID == target.ID {
			return team.Team{}, team.Team{}, fmt.Errorf("%w: already coaching %s", ErrInvalidInput, target.Name)
		}
		if err := s.teamRepo.Release(ctx, current.ID); err != nil {
			return team.Team{}, team.Team{}, fmt.Errorf("release team id=%d: %w", current.ID, err)
		}
	}

	if err := s.teamRepo.Assign(ctx, target.ID, userID, userName); err != nil {
		return team.Team{}, team.Team{}, fmt.Errorf("assign team id=%d: %w", target.ID, err)
	}

	target.TakenBy = userID
	target.TakenByName = userName
	return current, target, nil
}

// SearchTeams backs team-name autocomplete.
func (s *RosterService) SearchTeams(ctx context.Context, query string, limit int) ([]team.Team, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	teams, err := s.teamRepo.SearchNames(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search teams %q: %w", query, err)
	}
	return teams, nil
}

// SearchCoaches backs coach-name autocomplete.
func (s *RosterService) SearchCoaches(ctx context.Context, query string, limit int) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	names, err := s.teamRepo.SearchCoachNames(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search coaches %q: %w", query, err)
	}
	return names, nil
}

// TeamsOf lists the teams credited to a coach name, for the coach lookup
// display.
func (s *RosterService) TeamsOf(ctx context.Context, coachName string) ([]team.Team, error) {
	coachName = strings.TrimSpace(coachName)
	if coachName == "" {
		return nil, fmt.Errorf("%w: coach name is required", ErrInvalidInput)
	}
	teams, err := s.teamRepo.ListByCoachName(ctx, coachName)
	if err != nil {
		return nil, fmt.Errorf("list teams by coach=%s: %w", coachName, err)
	}
	return teams, nil
}
