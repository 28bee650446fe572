package usecase

import (
	"context"
	"strings"

	"github.com/DFR0S7/CMR-Bot/internal/domain/clock"
	"github.com/DFR0S7/CMR-Bot/internal/domain/news"
	"github.com/DFR0S7/CMR-Bot/internal/domain/record"
	"github.com/DFR0S7/CMR-Bot/internal/domain/result"
	"github.com/DFR0S7/CMR-Bot/internal/domain/team"
)

type stubTeamRepository struct {
	teams []team.Team

	// calls counts every query so tests can assert an operation never
	// reached the repository.
	calls int
}

func (s *stubTeamRepository) List(_ context.Context) ([]team.Team, error) {
	s.calls++
	out := make([]team.Team, len(s.teams))
	copy(out, s.teams)
	return out, nil
}

func (s *stubTeamRepository) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	s.calls++
	for _, t := range s.teams {
		if t.ID == id {
			return t, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (s *stubTeamRepository) GetByOccupant(_ context.Context, userID string) (team.Team, bool, error) {
	s.calls++
	for _, t := range s.teams {
		if t.TakenBy == userID && userID != "" {
			return t, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (s *stubTeamRepository) ListByCoachName(_ context.Context, coachName string) ([]team.Team, error) {
	s.calls++
	var out []team.Team
	for _, t := range s.teams {
		if t.TakenByName == coachName {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubTeamRepository) ListOpen(_ context.Context, stars float64) ([]team.Team, error) {
	s.calls++
	var out []team.Team
	for _, t := range s.teams {
		if t.Stars == stars && !t.Taken() {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubTeamRepository) SearchNames(_ context.Context, search string, limit int) ([]team.Team, error) {
	s.calls++
	var out []team.Team
	for _, t := range s.teams {
		if strings.Contains(strings.ToLower(t.Name), strings.ToLower(search)) {
			out = append(out, t)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *stubTeamRepository) SearchCoachNames(_ context.Context, search string, limit int) ([]string, error) {
	s.calls++
	seen := make(map[string]bool)
	var out []string
	for _, t := range s.teams {
		if t.TakenByName == "" || seen[t.TakenByName] {
			continue
		}
		if strings.Contains(strings.ToLower(t.TakenByName), strings.ToLower(search)) {
			seen[t.TakenByName] = true
			out = append(out, t.TakenByName)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *stubTeamRepository) Claim(_ context.Context, id int64, userID, userName string) error {
	s.calls++
	for i, t := range s.teams {
		if t.ID == id {
			if t.Taken() {
				return team.ErrTaken
			}
			s.teams[i].TakenBy = userID
			s.teams[i].TakenByName = userName
			return nil
		}
	}
	return team.ErrTaken
}

func (s *stubTeamRepository) Assign(_ context.Context, id int64, userID, userName string) error {
	s.calls++
	for i, t := range s.teams {
		if t.ID == id {
			s.teams[i].TakenBy = userID
			s.teams[i].TakenByName = userName
			return nil
		}
	}
	return nil
}

func (s *stubTeamRepository) Release(_ context.Context, id int64) error {
	s.calls++
	for i, t := range s.teams {
		if t.ID == id {
			s.teams[i].TakenBy = ""
			s.teams[i].TakenByName = ""
			return nil
		}
	}
	return nil
}

func (s *stubTeamRepository) ListOccupants(_ context.Context) ([]team.Occupant, error) {
	s.calls++
	var out []team.Occupant
	for _, t := range s.teams {
		if t.Taken() {
			out = append(out, team.Occupant{UserID: t.TakenBy, UserName: t.TakenByName, TeamName: t.Name})
		}
	}
	return out, nil
}

type stubRecordRepository struct {
	recs []record.SeasonRecord

	replacedSeasons []int
}

func (s *stubRecordRepository) ListBySeason(_ context.Context, season int) ([]record.SeasonRecord, error) {
	var out []record.SeasonRecord
	for _, r := range s.recs {
		if r.Season == season {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubRecordRepository) ListAll(_ context.Context) ([]record.SeasonRecord, error) {
	out := make([]record.SeasonRecord, len(s.recs))
	copy(out, s.recs)
	return out, nil
}

func (s *stubRecordRepository) Get(_ context.Context, season int, teamID int64) (record.SeasonRecord, bool, error) {
	for _, r := range s.recs {
		if r.Season == season && r.TeamID == teamID {
			return r, true, nil
		}
	}
	return record.SeasonRecord{}, false, nil
}

func (s *stubRecordRepository) Upsert(_ context.Context, rec record.SeasonRecord) error {
	for i, r := range s.recs {
		if r.Season == rec.Season && r.TeamID == rec.TeamID {
			s.recs[i] = rec
			return nil
		}
	}
	s.recs = append(s.recs, rec)
	return nil
}

func (s *stubRecordRepository) ReplaceSeason(_ context.Context, season int, recs []record.SeasonRecord) error {
	kept := s.recs[:0]
	for _, r := range s.recs {
		if r.Season != season {
			kept = append(kept, r)
		}
	}
	s.recs = append(kept, recs...)
	s.replacedSeasons = append(s.replacedSeasons, season)
	return nil
}

type stubResultRepository struct {
	rows []result.GameResult
}

func (s *stubResultRepository) Insert(_ context.Context, res result.GameResult) error {
	res.ID = int64(len(s.rows) + 1)
	s.rows = append(s.rows, res)
	return nil
}

func (s *stubResultRepository) ListBySeason(_ context.Context, season int) ([]result.GameResult, error) {
	var out []result.GameResult
	for _, r := range s.rows {
		if r.Season == season {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubResultRepository) ListByWeek(_ context.Context, season, week int) ([]result.GameResult, error) {
	var out []result.GameResult
	for _, r := range s.rows {
		if r.Season == season && r.Week == week {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubResultRepository) ListAll(_ context.Context) ([]result.GameResult, error) {
	out := make([]result.GameResult, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *stubResultRepository) GetForWeek(_ context.Context, season, week int, userTeamID int64) (result.GameResult, bool, error) {
	for _, r := range s.rows {
		if r.Season == season && r.Week == week && r.UserTeamID == userTeamID {
			return r, true, nil
		}
	}
	return result.GameResult{}, false, nil
}

type stubClockRepository struct {
	lc clock.LeagueClock

	getCalls int
}

func (s *stubClockRepository) Get(_ context.Context) (clock.LeagueClock, error) {
	s.getCalls++
	return s.lc, nil
}

func (s *stubClockRepository) SetWeek(_ context.Context, week int) error {
	s.lc.Week = week
	return nil
}

func (s *stubClockRepository) SetSeason(_ context.Context, season int) error {
	s.lc.Season = season
	return nil
}

type stubNewsRepository struct {
	items []news.Item
}

func (s *stubNewsRepository) Insert(_ context.Context, item news.Item) error {
	item.ID = int64(len(s.items) + 1)
	s.items = append(s.items, item)
	return nil
}

func (s *stubNewsRepository) ListByWeek(_ context.Context, season, week int) ([]news.Item, error) {
	var out []news.Item
	for _, item := range s.items {
		if item.Season == season && item.Week == week {
			out = append(out, item)
		}
	}
	return out, nil
}
