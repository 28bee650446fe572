package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/DFR0S7/CMR-Bot/internal/domain/record"
	"github.com/DFR0S7/CMR-Bot/internal/domain/result"
)

// RebuildService recomputes the records table from the append-only results
// log. A crashed submission can leave records short of results; this makes
// that repairable without hand-editing rows.
type RebuildService struct {
	recordRepo record.Repository
	resultRepo result.Repository
}

func NewRebuildService(recordRepo record.Repository, resultRepo result.Repository) *RebuildService {
	return &RebuildService{
		recordRepo: recordRepo,
		resultRepo: resultRepo,
	}
}

type RebuildResult struct {
	SeasonCount  int
	SuccessCount int
	FailedCount  int
	WorkerCount  int
	Seasons      []RebuildSeasonResult
}

type RebuildSeasonResult struct {
	Season     int
	Records    int
	DurationMs int64
	Err        string
}

// RebuildRecords replays every season's game log into fresh record rows, one
// season per worker through a bounded pool.
func (s *RebuildService) RebuildRecords(ctx context.Context, maxWorkers int) (RebuildResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RebuildService.RebuildRecords")
	defer span.End()

	all, err := s.resultRepo.ListAll(ctx)
	if err != nil {
		return RebuildResult{}, fmt.Errorf("list all results: %w", err)
	}

	bySeason := make(map[int][]result.GameResult)
	for _, row := range all {
		bySeason[row.Season] = append(bySeason[row.Season], row)
	}

	seasons := make([]int, 0, len(bySeason))
	for season := range bySeason {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)

	workerCount := normalizeRebuildWorkerCount(maxWorkers, len(seasons))
	out := RebuildResult{
		SeasonCount: len(seasons),
		WorkerCount: workerCount,
		Seasons:     make([]RebuildSeasonResult, 0, len(seasons)),
	}
	if len(seasons) == 0 {
		return out, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RebuildResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan RebuildSeasonResult, len(seasons))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, season := range seasons {
		season := season
		rows := bySeason[season]
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RebuildSeasonResult{Season: season}

			recs := recordsFromResults(season, rows)
			if err := s.recordRepo.ReplaceSeason(ctx, season, recs); err != nil {
				row.Err = err.Error()
				failedCount.Add(1)
			} else {
				row.Records = len(recs)
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			results <- row
		}); err != nil {
			workers.Done()
			return RebuildResult{}, fmt.Errorf("submit season to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		out.Seasons = append(out.Seasons, row)
	}
	sort.SliceStable(out.Seasons, func(i, j int) bool {
		return out.Seasons[i].Season < out.Seasons[j].Season
	})

	out.SuccessCount = int(successCount.Load())
	out.FailedCount = int(failedCount.Load())
	return out, nil
}

type rebuildOccupant struct {
	userID   string
	userName string
}

// recordsFromResults folds one season's game log into record aggregates. A
// team counts as human-occupied when any row in the season credits it with a
// submitter; the first such row wins, matching how standings resolve
// opponents.
func recordsFromResults(season int, rows []result.GameResult) []record.SeasonRecord {
	occupants := make(map[int64]rebuildOccupant)
	for _, row := range rows {
		if row.TakenBy == "" {
			continue
		}
		if _, ok := occupants[row.UserTeamID]; !ok {
			occupants[row.UserTeamID] = rebuildOccupant{userID: row.TakenBy, userName: row.TakenByName}
		}
	}

	index := make(map[int64]int)
	recs := make([]record.SeasonRecord, 0)

	touch := func(teamID int64, teamName string) int {
		i, ok := index[teamID]
		if !ok {
			rec := record.SeasonRecord{Season: season, TeamID: teamID, TeamName: teamName}
			if occ, human := occupants[teamID]; human {
				rec.TakenBy = occ.userID
				rec.TakenByName = occ.userName
			}
			recs = append(recs, rec)
			i = len(recs) - 1
			index[teamID] = i
		}
		return i
	}

	for _, row := range rows {
		won := row.Outcome == result.OutcomeWin
		_, subjectHuman := occupants[row.UserTeamID]
		_, opponentHuman := occupants[row.OpponentTeamID]
		bothHuman := subjectHuman && opponentHuman

		if subjectHuman {
			i := touch(row.UserTeamID, row.UserTeamName)
			recs[i].Add(won, bothHuman)
		}
		if opponentHuman {
			i := touch(row.OpponentTeamID, row.OpponentTeamName)
			recs[i].Add(!won, bothHuman)
		}
	}

	return recs
}

func normalizeRebuildWorkerCount(value, seasonCount int) int {
	if seasonCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > 4 {
		value = 4
	}
	if value > seasonCount {
		value = seasonCount
	}
	return value
}
