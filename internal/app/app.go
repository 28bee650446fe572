package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/sourcegraph/conc"

	"github.com/DFR0S7/CMR-Bot/internal/config"
	"github.com/DFR0S7/CMR-Bot/internal/infrastructure/repository/postgres"
	"github.com/DFR0S7/CMR-Bot/internal/interfaces/discord"
	"github.com/DFR0S7/CMR-Bot/internal/interfaces/health"
	"github.com/DFR0S7/CMR-Bot/internal/observability"
	"github.com/DFR0S7/CMR-Bot/internal/platform/keepalive"
	"github.com/DFR0S7/CMR-Bot/internal/platform/logging"
	"github.com/DFR0S7/CMR-Bot/internal/platform/session"
	"github.com/DFR0S7/CMR-Bot/internal/usecase"
)

// Run wires the full bot and blocks until the context is canceled or a
// runner fails.
func Run(ctx context.Context, cfg config.Config, logger *logging.Logger) error {
	if logger == nil {
		logger = logging.Default()
	}

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return fmt.Errorf("init uptrace: %w", err)
	}
	defer func() {
		if err := shutdownUptrace(context.Background()); err != nil {
			logger.Warn("shutdown uptrace", "error", err)
		}
	}()

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return fmt.Errorf("init pyroscope: %w", err)
	}
	defer func() {
		if err := stopPyroscope(); err != nil {
			logger.Warn("stop pyroscope", "error", err)
		}
	}()

	db, err := NewDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("close db", "error", err)
		}
	}()

	teamRepo := postgres.NewTeamRepository(db)
	recordRepo := postgres.NewRecordRepository(db)
	resultRepo := postgres.NewResultRepository(db)
	clockRepo := postgres.NewClockRepository(db)
	newsRepo := postgres.NewNewsRepository(db)

	sessions := session.NewStore()

	svc := discord.Services{
		Offers:    usecase.NewOfferService(teamRepo, sessions, cfg.OpenTierStars),
		Results:   usecase.NewResultService(teamRepo, recordRepo, resultRepo, clockRepo),
		Standings: usecase.NewStandingsService(teamRepo, recordRepo, resultRepo, clockRepo),
		Clock:     usecase.NewClockService(clockRepo, newsRepo, resultRepo),
		News:      usecase.NewNewsService(newsRepo, clockRepo),
		Roster:    usecase.NewRosterService(teamRepo, sessions, cfg.OpenTierStars),
		Rebuild:   usecase.NewRebuildService(recordRepo, resultRepo),
	}

	bot, err := discord.New(cfg, svc, logger)
	if err != nil {
		return err
	}

	healthServer := health.NewServer(cfg.HealthAddr, cfg.ServiceName, cfg.ServiceVersion, logger)
	pinger := keepalive.NewPinger(cfg.SelfPingURL, cfg.SelfPingInterval, logger)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu     sync.Mutex
		runErr error
	)
	fail := func(err error) {
		mu.Lock()
		if runErr == nil {
			runErr = err
		}
		mu.Unlock()
	}

	var wg conc.WaitGroup
	wg.Go(func() {
		if err := bot.Run(runCtx); err != nil {
			logger.Error("bot stopped", "error", err)
			fail(err)
		}
		cancel()
	})
	wg.Go(func() {
		if err := healthServer.Run(runCtx); err != nil {
			logger.Error("health server stopped", "error", err)
			fail(err)
		}
		cancel()
	})
	wg.Go(func() {
		pinger.Run(runCtx)
	})

	wg.Wait()
	return runErr
}
