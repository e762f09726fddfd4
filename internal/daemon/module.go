package daemon

import (
	"context"
	"time"

	"github.com/matheus3301/minda/internal/api"
	"github.com/matheus3301/minda/internal/bus"
	"github.com/matheus3301/minda/internal/config"
	"github.com/matheus3301/minda/internal/diary"
	"github.com/matheus3301/minda/internal/lock"
	"github.com/matheus3301/minda/internal/logging"
	"github.com/matheus3301/minda/internal/prefs"
	"github.com/matheus3301/minda/internal/profile"
	"github.com/matheus3301/minda/internal/status"
	"github.com/matheus3301/minda/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Params holds the resolved profile configuration passed to the fx module.
type Params struct {
	Profile    string
	SocketPath string         // optional override for testing; empty = use default
	Config     *config.Config // optional; nil = load ~/.minda/config.toml
}

// Module returns the fx module for the daemon, composing all providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("daemon",
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideBus,
			provideStateMachine,
			provideLock,
			provideStore,
			provideEntryStore,
			provideDiaryService,
			providePreferences,
			api.NewDiaryService,
			api.NewPreferencesService,
			provideDaemonService,
			NewServer,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideConfig(p Params) (*config.Config, error) {
	if p.Config != nil {
		return p.Config, nil
	}
	return config.LoadOrDefault(profile.ConfigPath())
}

func provideLogger(p Params, cfg *config.Config) (*zap.Logger, error) {
	return logging.New(profile.LogPath(p.Profile), p.Profile, cfg.LogLevel)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideStateMachine(b *bus.Bus) *status.Machine {
	return status.NewMachine(b)
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if err := profile.EnsureDir(p.Profile); err != nil {
		return nil, err
	}
	logger.Info("acquiring profile lock", zap.String("profile", p.Profile))
	l, err := lock.Acquire(profile.Dir(p.Profile))
	if err != nil {
		return nil, err
	}
	logger.Info("profile lock acquired")
	return l, nil
}

// provideStore depends on the lock so the database is only opened by its owner.
func provideStore(p Params, cfg *config.Config, _ *lock.Lock, m *status.Machine, logger *zap.Logger) (*store.DB, error) {
	if err := m.Transition(status.Migrating); err != nil {
		return nil, err
	}
	dbPath := profile.DBPath(p.Profile)
	db, err := store.OpenMigrated(dbPath, store.MigrateOptions{DestructiveFallback: cfg.DestructiveMigrations}, logger)
	if err != nil {
		_ = m.Transition(status.Error)
		return nil, err
	}
	logger.Info("store initialized", zap.String("path", dbPath))
	return db, nil
}

func provideEntryStore(db *store.DB, b *bus.Bus, logger *zap.Logger) *store.EntryStore {
	return store.NewEntryStore(db, b, logger.Named("entries"))
}

func provideDiaryService(entries *store.EntryStore, logger *zap.Logger) *diary.Service {
	return diary.NewService(entries, logger.Named("diary"))
}

func providePreferences(p Params, b *bus.Bus, logger *zap.Logger) *prefs.Store {
	return prefs.Open(profile.PrefsDir(p.Profile), b, logger.Named("prefs"))
}

func provideDaemonService(p Params, m *status.Machine, entries *store.EntryStore) *api.DaemonService {
	return api.NewDaemonService(p.Profile, m, entries)
}

func registerLifecycle(lc fx.Lifecycle, srv *Server, lk *lock.Lock, db *store.DB, svc *diary.Service, cfg *config.Config, machine *status.Machine, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.SeedSampleEntry {
				_ = machine.Transition(status.Seeding)
				if _, err := svc.SeedIfEmpty(ctx, time.Now()); err != nil {
					logger.Error("seeding failed", zap.Error(err))
					_ = machine.Transition(status.Degraded)
				} else {
					_ = machine.Transition(status.Ready)
				}
			} else {
				_ = machine.Transition(status.Ready)
			}

			// Start gRPC server in background.
			go func() {
				if err := srv.Start(); err != nil {
					logger.Error("gRPC server error", zap.Error(err))
				}
			}()

			logger.Info("daemon ready", zap.String("status", string(machine.Current())))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			_ = machine.Transition(status.Stopping)
			srv.Stop(ctx)
			if err := db.Close(); err != nil {
				logger.Warn("error closing store", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("daemon stopped")
			return nil
		},
	})
}
