// Package app composes the state core into a runnable fx application:
// storage adapter, event bus, the five state containers, the last-message
// projector and the story sweeper, all bound to one profile.
package app

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/pombo-im/pombo/internal/bus"
	"github.com/pombo-im/pombo/internal/config"
	"github.com/pombo-im/pombo/internal/lock"
	"github.com/pombo-im/pombo/internal/logging"
	"github.com/pombo-im/pombo/internal/profile"
	"github.com/pombo-im/pombo/internal/seed"
	"github.com/pombo-im/pombo/internal/state"
	"github.com/pombo-im/pombo/internal/storage"
)

// Params holds the resolved profile configuration passed to the fx module.
type Params struct {
	ProfileName string
}

// Module returns the fx module composing all providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("pombo",
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideBus,
			provideLock,
			provideAdapter,
			provideAuth,
			provideSettings,
			provideChats,
			provideMessages,
			provideStories,
			provideProjector,
			provideSweeper,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideConfig() *config.Config {
	cfg, err := config.Load(profile.ConfigPath())
	if err != nil {
		// No config file is the common case on first run.
		return &config.Config{}
	}
	return cfg
}

func provideLogger(p Params) (*zap.Logger, error) {
	return logging.New(profile.LogPath(p.ProfileName), p.ProfileName)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if err := profile.EnsureDir(p.ProfileName); err != nil {
		return nil, err
	}
	l, err := lock.Acquire(profile.Dir(p.ProfileName))
	if err != nil {
		return nil, err
	}
	logger.Info("profile lock acquired", zap.String("profile", p.ProfileName))
	return l, nil
}

func provideAdapter(p Params, cfg *config.Config, _ *lock.Lock, logger *zap.Logger) (storage.Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Storage {
	case config.StoragePebble:
		adapter, err := storage.OpenPebble(profile.PebbleDir(p.ProfileName))
		if err != nil {
			return nil, fmt.Errorf("open pebble backend: %w", err)
		}
		logger.Info("storage ready", zap.String("backend", "pebble"))
		return adapter, nil
	case config.StorageMemory:
		logger.Info("storage ready", zap.String("backend", "memory"))
		return storage.NewMemory(), nil
	default:
		adapter, err := storage.OpenSQLite(profile.SnapshotDBPath(p.ProfileName))
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		logger.Info("storage ready", zap.String("backend", "sqlite"))
		return adapter, nil
	}
}

func provideAuth(adapter storage.Adapter, b *bus.Bus, logger *zap.Logger) *state.Auth {
	return state.NewAuth(adapter, b, logger)
}

func provideSettings(adapter storage.Adapter, b *bus.Bus, logger *zap.Logger) *state.Settings {
	return state.NewSettings(adapter, b, logger)
}

func provideChats(adapter storage.Adapter, b *bus.Bus, logger *zap.Logger) *state.Chats {
	return state.NewChats(adapter, b, logger)
}

func provideMessages(adapter storage.Adapter, b *bus.Bus, logger *zap.Logger) *state.Messages {
	return state.NewMessages(adapter, b, logger)
}

func provideStories(adapter storage.Adapter, b *bus.Bus, logger *zap.Logger) *state.Stories {
	return state.NewStories(adapter, b, logger)
}

func provideProjector(chats *state.Chats, messages *state.Messages, b *bus.Bus, logger *zap.Logger) *state.Projector {
	return state.NewProjector(chats, messages, b, logger)
}

func provideSweeper(stories *state.Stories, cfg *config.Config, logger *zap.Logger) *state.Sweeper {
	return state.NewSweeper(stories, cfg.SweepEvery(), logger)
}

func registerLifecycle(
	lc fx.Lifecycle,
	cfg *config.Config,
	adapter storage.Adapter,
	chats *state.Chats,
	messages *state.Messages,
	stories *state.Stories,
	projector *state.Projector,
	sweeper *state.Sweeper,
	lk *lock.Lock,
	logger *zap.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			projector.Start(context.Background())
			sweeper.Start(context.Background())

			if cfg.SeedDemoData {
				applied, err := seed.Apply(adapter, chats, messages, stories, logger)
				if err != nil {
					logger.Warn("seeding failed", zap.Error(err))
				} else if applied {
					logger.Info("fresh profile seeded")
				}
			}

			logger.Info("state core ready")
			return nil
		},
		OnStop: func(_ context.Context) error {
			sweeper.Stop()
			projector.Stop()
			if err := adapter.Close(); err != nil {
				logger.Warn("error closing storage", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("stopped")
			return nil
		},
	})
}
