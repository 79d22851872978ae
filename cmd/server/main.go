// Package main is the entry point for the AEGIS fraud operations
// aggregation service. It fetches raw records from the upstream fraud
// platform (or bundled fixtures in presentation mode), normalizes them
// into a consistent snapshot, and serves derived analytics over HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aegisops/aegis/internal/clientdata"
	"github.com/aegisops/aegis/internal/config"
	"github.com/aegisops/aegis/internal/database"
	"github.com/aegisops/aegis/internal/events"
	"github.com/aegisops/aegis/internal/modules/accounts"
	accountshandlers "github.com/aegisops/aegis/internal/modules/accounts/handlers"
	"github.com/aegisops/aegis/internal/modules/alerts"
	alertshandlers "github.com/aegisops/aegis/internal/modules/alerts/handlers"
	"github.com/aegisops/aegis/internal/modules/compliance"
	compliancehandlers "github.com/aegisops/aegis/internal/modules/compliance/handlers"
	"github.com/aegisops/aegis/internal/modules/dashboard"
	dashboardhandlers "github.com/aegisops/aegis/internal/modules/dashboard/handlers"
	"github.com/aegisops/aegis/internal/modules/graph"
	graphhandlers "github.com/aegisops/aegis/internal/modules/graph/handlers"
	"github.com/aegisops/aegis/internal/modules/risk"
	riskhandlers "github.com/aegisops/aegis/internal/modules/risk/handlers"
	"github.com/aegisops/aegis/internal/modules/scenarios"
	scenarioshandlers "github.com/aegisops/aegis/internal/modules/scenarios/handlers"
	"github.com/aegisops/aegis/internal/modules/settings"
	settingshandlers "github.com/aegisops/aegis/internal/modules/settings/handlers"
	"github.com/aegisops/aegis/internal/modules/signals"
	signalshandlers "github.com/aegisops/aegis/internal/modules/signals/handlers"
	"github.com/aegisops/aegis/internal/normalize"
	"github.com/aegisops/aegis/internal/refresh"
	"github.com/aegisops/aegis/internal/reliability"
	"github.com/aegisops/aegis/internal/scheduler"
	"github.com/aegisops/aegis/internal/server"
	"github.com/aegisops/aegis/internal/snapshot"
	"github.com/aegisops/aegis/internal/source"
	"github.com/aegisops/aegis/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting AEGIS")

	// Settings database: durable UI preferences and upstream credentials.
	settingsDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "settings.db"),
		Profile: database.ProfileStandard,
		Name:    "settings",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open settings database")
	}
	defer settingsDB.Close()
	if err := settingsDB.Migrate(settings.Schema); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate settings database")
	}

	// Cache database: ephemeral upstream payload cache for stale fallback.
	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "cache.db"),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cache database")
	}
	defer cacheDB.Close()
	if err := cacheDB.Migrate(clientdata.Schema); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate cache database")
	}

	settingsRepo := settings.NewRepository(settingsDB.Conn(), log)
	if err := cfg.UpdateFromSettings(settingsRepo); err != nil {
		log.Warn().Err(err).Msg("Failed to overlay settings from database, using environment values")
	}

	bus := events.NewBus()
	store := snapshot.NewStore()
	norm := normalize.New(log)
	cacheRepo := clientdata.NewRepository(cacheDB.Conn())

	settingsService := settings.NewService(settingsRepo, bus, log)

	live := source.NewLiveSource(cfg.UpstreamAPIURL, cfg.UpstreamAPIKey, cacheRepo, log)
	fixture := source.NewFixtureSource()
	selector := source.NewSelector(live, fixture, settingsService.PresentationMode(), log)

	refresher := refresh.New(selector, norm, store, bus, log)

	// Flipping presentation mode swaps the active source and refreshes
	// immediately so the snapshot reflects the new source.
	bus.Subscribe(events.TopicPresentationMode, func(payload any) {
		on, ok := payload.(bool)
		if !ok {
			return
		}
		selector.SetPresentationMode(on)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			refresher.Refresh(ctx)
		}()
	})

	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.RefreshSchedule, refresher); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule snapshot refresh")
	}

	var backupService *reliability.BackupService
	if cfg.Backup != nil && cfg.Backup.Enabled {
		s3Client, err := reliability.NewS3Client(context.Background(), cfg.Backup, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 client")
		}
		backupService = reliability.NewBackupService(
			s3Client, settingsDB.Conn(), store, cfg.DataDir, cfg.Backup.Keep, log,
		)
		if err := sched.AddJob(cfg.Backup.Schedule, backupService); err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule backups")
		}
		log.Info().Str("bucket", cfg.Backup.Bucket).Msg("Backups enabled")
	}

	// First refresh before the server accepts traffic, so the initial
	// snapshot is populated (or flagged stale) rather than empty.
	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		refresher.Refresh(ctx)
		cancel()
	}

	sched.Start()
	defer sched.Stop()

	handlers := server.Handlers{
		Dashboard:  dashboardhandlers.NewHandler(dashboard.NewService(store, log), log),
		Alerts:     alertshandlers.NewHandler(alerts.NewService(store, log), log),
		Risk:       riskhandlers.NewHandler(risk.NewService(store, log), log),
		Accounts:   accountshandlers.NewHandler(accounts.NewService(store, log), log),
		Compliance: compliancehandlers.NewHandler(compliance.NewService(store, log), log),
		Scenarios:  scenarioshandlers.NewHandler(scenarios.NewService(store, log), log),
		Graph:      graphhandlers.NewHandler(graph.NewService(store, log), log),
		Signals:    signalshandlers.NewHandler(signals.NewService(store, log), bus, log),
		Settings:   settingshandlers.NewHandler(settingsService, log),
	}

	srv := server.New(server.Config{
		Log:       log,
		Config:    cfg,
		Store:     store,
		Selector:  selector,
		Refresher: refresher,
		Backup:    backupService,
		Handlers:  handlers,
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal().Err(err).Msg("Server failed")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("AEGIS stopped")
}
