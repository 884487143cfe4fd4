package main

import (
	"context"
	"database/sql"
	"path/filepath"

	"github.com/bagdasarian/simpleprefix/internal/config"
	"github.com/bagdasarian/simpleprefix/internal/db"
	"github.com/bagdasarian/simpleprefix/internal/format"
	"github.com/bagdasarian/simpleprefix/internal/repository"
	"github.com/bagdasarian/simpleprefix/internal/repository/postgres"
	"github.com/bagdasarian/simpleprefix/internal/repository/yamlfile"
	"github.com/bagdasarian/simpleprefix/internal/scheduler"
	"github.com/bagdasarian/simpleprefix/internal/scoreboard"
	"github.com/bagdasarian/simpleprefix/internal/service"
	"github.com/bagdasarian/simpleprefix/internal/watcher"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type app struct {
	cfg    *config.Config
	logger *zap.Logger
	level  zap.AtomicLevel

	signal   *watcher.SelfWriteSignal
	settings *config.SettingsStore
	database *sql.DB
	backend  repository.PermissionBackend

	board        *scoreboard.Board
	executor     *scheduler.Executor
	sessions     *service.Sessions
	registry     service.GroupRegistry
	resolver     service.GroupResolver
	synchronizer service.TeamSynchronizer
	events       service.EventService
	chat         service.ChatFormatter
	formats      service.FormatService
	migration    service.MigrationService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger, err := newLogger(cfg.Log.Format, level)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		logger: logger,
		level:  level,
		signal: watcher.NewSelfWriteSignal(),
	}

	a.settings = config.NewSettingsStore(filepath.Join(cfg.Data.Dir, cfg.Data.SettingsFile), a.signal)
	if err := a.settings.Load(); err != nil {
		return nil, err
	}
	a.applyLogLevel(a.settings.Current())

	if cfg.Backend.Enabled {
		database, err := db.NewPostgres(ctx, cfg.Database)
		if err != nil {
			logger.Warn("permission backend unavailable, using local groups", zap.Error(err))
		} else {
			a.database = database
			a.backend = postgres.NewPermissionBackend(database)
			logger.Info("permission backend connected")
		}
	}

	limits := config.NegotiateLimits(cfg.Protocol.Version)
	renderer := format.NewLegacyRenderer(limits.Legacy)
	logger.Info("protocol limits negotiated",
		zap.String("version", cfg.Protocol.Version),
		zap.Int("prefix", limits.Prefix),
		zap.Int("identifier", limits.Identifier),
		zap.Bool("legacy", limits.Legacy))

	store := yamlfile.NewGroupStore(filepath.Join(cfg.Data.Dir, cfg.Data.GroupsFile))

	a.board = scoreboard.NewBoard()
	a.executor = scheduler.NewExecutor(logger, 0)
	a.sessions = service.NewSessions()
	a.registry = service.NewGroupRegistry(store, a.backend, a.signal, a.settings, logger)
	a.resolver = service.NewGroupResolver(a.backend, a.registry, a.settings, logger)
	a.synchronizer = service.NewTeamSynchronizer(a.resolver, a.registry, a.board, limits, renderer, a.settings, logger)
	a.events = service.NewEventService(a.sessions, a.registry, a.resolver, a.synchronizer, a.executor, a.settings, logger)
	a.chat = service.NewChatFormatter(a.resolver, a.registry, renderer, a.settings)
	a.formats = service.NewFormatService(a.settings, a.sessions, a.synchronizer, logger)
	a.migration = service.NewMigrationService(a.registry, a.settings, logger)

	if err := a.registry.Load(ctx); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *app) newWatcher() *watcher.ConfigWatcher {
	return watcher.New(
		filepath.Join(a.cfg.Data.Dir, a.cfg.Data.GroupsFile),
		a.settings.Path(),
		watcher.Dependencies{
			Registry:         a.registry,
			Settings:         a.settings,
			Synchronizer:     a.synchronizer,
			Users:            a.sessions,
			Executor:         a.executor,
			Signal:           a.signal,
			OnSettingsReload: a.applyLogLevel,
		},
		a.logger,
	)
}

// applyLogLevel переключает уровень логов по settings.debug
func (a *app) applyLogLevel(settings config.Settings) {
	if settings.General.Debug {
		a.level.SetLevel(zapcore.DebugLevel)
		return
	}
	a.level.SetLevel(zapcore.InfoLevel)
}

func (a *app) close() {
	a.executor.Stop()
	if a.database != nil {
		a.database.Close()
	}
	_ = a.logger.Sync()
}

func newLogger(encoding string, level zap.AtomicLevel) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if encoding == "console" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = level
	return cfg.Build()
}
