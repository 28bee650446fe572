package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/DFR0S7/CMR-Bot/internal/domain/clock"
	"github.com/DFR0S7/CMR-Bot/internal/domain/record"
	"github.com/DFR0S7/CMR-Bot/internal/domain/result"
	"github.com/DFR0S7/CMR-Bot/internal/domain/team"
)

type ResultService struct {
	teamRepo   team.Repository
	recordRepo record.Repository
	resultRepo result.Repository
	clockRepo  clock.Repository
}

func NewResultService(
	teamRepo team.Repository,
	recordRepo record.Repository,
	resultRepo result.Repository,
	clockRepo clock.Repository,
) *ResultService {
	return &ResultService{
		teamRepo:   teamRepo,
		recordRepo: recordRepo,
		resultRepo: resultRepo,
		clockRepo:  clockRepo,
	}
}

type GameResultInput struct {
	UserID        string
	UserName      string
	Opponent      string
	UserScore     int
	OpponentScore int
	Summary       string
}

// SubmitGameResult records a game for the submitting coach's team in the
// current week. One submission per team per week; a prior row for the same
// (season, week, team) rejects the new one.
func (s *ResultService) SubmitGameResult(ctx context.Context, input GameResultInput) (result.GameResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.SubmitGameResult")
	defer span.End()

	if strings.TrimSpace(input.UserID) == "" {
		return result.GameResult{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Opponent) == "" {
		return result.GameResult{}, fmt.Errorf("%w: opponent is required", ErrInvalidInput)
	}
	if input.UserScore < 0 || input.OpponentScore < 0 {
		return result.GameResult{}, fmt.Errorf("%w: scores cannot be negative", ErrInvalidInput)
	}

	lc, err := s.clockRepo.Get(ctx)
	if err != nil {
		return result.GameResult{}, fmt.Errorf("get league clock: %w", err)
	}

	userTeam, exists, err := s.teamRepo.GetByOccupant(ctx, input.UserID)
	if err != nil {
		return result.GameResult{}, fmt.Errorf("get occupied team: %w", err)
	}
	if !exists {
		return result.GameResult{}, fmt.Errorf("%w: you are not coaching a team", ErrNotFound)
	}

	if _, taken, err := s.resultRepo.GetForWeek(ctx, lc.Season, lc.Week, userTeam.ID); err != nil {
		return result.GameResult{}, fmt.Errorf("check week submission: %w", err)
	} else if taken {
		return result.GameResult{}, fmt.Errorf("%w: result already submitted for week %d", ErrConflict, lc.Week)
	}

	opponent, err := s.findTeamByName(ctx, input.Opponent)
	if err != nil {
		return result.GameResult{}, err
	}
	if opponent.ID == userTeam.ID {
		return result.GameResult{}, fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}

	res := result.GameResult{
		Season:           lc.Season,
		Week:             lc.Week,
		UserTeamID:       userTeam.ID,
		UserTeamName:     userTeam.Name,
		OpponentTeamID:   opponent.ID,
		OpponentTeamName: opponent.Name,
		UserScore:        input.UserScore,
		OpponentScore:    input.OpponentScore,
		Summary:          strings.TrimSpace(input.Summary),
		Outcome:          result.OutcomeFor(input.UserScore, input.OpponentScore),
		TakenBy:          input.UserID,
		TakenByName:      input.UserName,
	}
	if err := s.resultRepo.Insert(ctx, res); err != nil {
		return result.GameResult{}, fmt.Errorf("insert result: %w", err)
	}

	won := res.Outcome == result.OutcomeWin
	vsHuman := opponent.Taken()

	if err := s.applyRecord(ctx, lc.Season, userTeam, won, vsHuman); err != nil {
		return result.GameResult{}, err
	}
	if vsHuman {
		if err := s.applyRecord(ctx, lc.Season, opponent, !won, true); err != nil {
			return result.GameResult{}, err
		}
	}

	return res, nil
}

type AnyGameResultInput struct {
	TeamName      string
	OpponentName  string
	TeamScore     int
	OpponentScore int
	Week          int
	Summary       string
}

// SubmitAnyGameResult records a game between any two teams for any week of
// the current season. Admin path: no occupancy requirement and no weekly
// guard. Records are only touched for human-occupied sides.
func (s *ResultService) SubmitAnyGameResult(ctx context.Context, input AnyGameResultInput) (result.GameResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.SubmitAnyGameResult")
	defer span.End()

	if strings.TrimSpace(input.TeamName) == "" || strings.TrimSpace(input.OpponentName) == "" {
		return result.GameResult{}, fmt.Errorf("%w: both team names are required", ErrInvalidInput)
	}
	if input.Week < 0 {
		return result.GameResult{}, fmt.Errorf("%w: week cannot be negative", ErrInvalidInput)
	}
	if input.TeamScore < 0 || input.OpponentScore < 0 {
		return result.GameResult{}, fmt.Errorf("%w: scores cannot be negative", ErrInvalidInput)
	}

	lc, err := s.clockRepo.Get(ctx)
	if err != nil {
		return result.GameResult{}, fmt.Errorf("get league clock: %w", err)
	}

	subject, err := s.findTeamByName(ctx, input.TeamName)
	if err != nil {
		return result.GameResult{}, err
	}
	opponent, err := s.findTeamByName(ctx, input.OpponentName)
	if err != nil {
		return result.GameResult{}, err
	}
	if subject.ID == opponent.ID {
		return result.GameResult{}, fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}

	res := result.GameResult{
		Season:           lc.Season,
		Week:             input.Week,
		UserTeamID:       subject.ID,
		UserTeamName:     subject.Name,
		OpponentTeamID:   opponent.ID,
		OpponentTeamName: opponent.Name,
		UserScore:        input.TeamScore,
		OpponentScore:    input.OpponentScore,
		Summary:          strings.TrimSpace(input.Summary),
		Outcome:          result.OutcomeFor(input.TeamScore, input.OpponentScore),
		TakenBy:          subject.TakenBy,
		TakenByName:      subject.TakenByName,
	}
	if err := s.resultRepo.Insert(ctx, res); err != nil {
		return result.GameResult{}, fmt.Errorf("insert result: %w", err)
	}

	won := res.Outcome == result.OutcomeWin
	bothHuman := subject.Taken() && opponent.Taken()

	if subject.Taken() {
		if err := s.applyRecord(ctx, lc.Season, subject, won, bothHuman); err != nil {
			return result.GameResult{}, err
		}
	}
	if opponent.Taken() {
		if err := s.applyRecord(ctx, lc.Season, opponent, !won, bothHuman); err != nil {
			return result.GameResult{}, err
		}
	}

	return res, nil
}

// findTeamByName resolves a team by exact name first, then by unique
// case-insensitive substring.
func (s *ResultService) findTeamByName(ctx context.Context, name string) (team.Team, error) {
	name = strings.TrimSpace(name)

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return team.Team{}, fmt.Errorf("list teams: %w", err)
	}

	for _, t := range teams {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}

	lower := strings.ToLower(name)
	var match team.Team
	var found bool
	for _, t := range teams {
		if strings.Contains(strings.ToLower(t.Name), lower) {
			if found {
				return team.Team{}, fmt.Errorf("%w: team name %q is ambiguous", ErrInvalidInput, name)
			}
			match = t
			found = true
		}
	}
	if !found {
		return team.Team{}, fmt.Errorf("%w: team %q", ErrNotFound, name)
	}

	return match, nil
}

// BoxScoreRecords fetches the current season records for both sides of a
// submitted game. opponentHuman reports whether the opponent currently has a
// coach; AI opponents never carry a record worth showing.
func (s *ResultService) BoxScoreRecords(ctx context.Context, gr result.GameResult) (userRec, oppRec record.SeasonRecord, opponentHuman bool, err error) {
	userRec, _, err = s.recordRepo.Get(ctx, gr.Season, gr.UserTeamID)
	if err != nil {
		return record.SeasonRecord{}, record.SeasonRecord{}, false, fmt.Errorf("get record season=%d team=%d: %w", gr.Season, gr.UserTeamID, err)
	}

	opponent, found, err := s.teamRepo.GetByID(ctx, gr.OpponentTeamID)
	if err != nil {
		return record.SeasonRecord{}, record.SeasonRecord{}, false, fmt.Errorf("get team id=%d: %w", gr.OpponentTeamID, err)
	}
	if !found || !opponent.Taken() {
		return userRec, record.SeasonRecord{}, false, nil
	}

	oppRec, _, err = s.recordRepo.Get(ctx, gr.Season, gr.OpponentTeamID)
	if err != nil {
		return record.SeasonRecord{}, record.SeasonRecord{}, false, fmt.Errorf("get record season=%d team=%d: %w", gr.Season, gr.OpponentTeamID, err)
	}

	return userRec, oppRec, true, nil
}

func (s *ResultService) applyRecord(ctx context.Context, season int, t team.Team, won, vsHuman bool) error {
	rec, exists, err := s.recordRepo.Get(ctx, season, t.ID)
	if err != nil {
		return fmt.Errorf("get record season=%d team=%d: %w", season, t.ID, err)
	}
	if !exists {
		rec = record.SeasonRecord{Season: season, TeamID: t.ID}
	}

	rec.TeamName = t.Name
	rec.TakenBy = t.TakenBy
	rec.TakenByName = t.TakenByName
	rec.Add(won, vsHuman)

	if err := s.recordRepo.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("upsert record season=%d team=%d: %w", season, t.ID, err)
	}

	return nil
}
