// Package cli provides CLI commands using Bubble Tea TUI.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/bnema/tabstrip/internal/cli/styles"
	"github.com/bnema/tabstrip/internal/domain/build"
	"github.com/bnema/tabstrip/internal/infrastructure/config"
	"github.com/bnema/tabstrip/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/tabstrip/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info

	db *sqlite.LazyDB

	// Context with logger
	ctx        context.Context
	logCleanup func()
}

// NewApp creates the CLI application for cfg. Commands log to stderr at the
// configured level, which TABSTRIP_LOG_LEVEL overrides.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	level := cfg.Logging.Level
	if envLevel := os.Getenv("TABSTRIP_LOG_LEVEL"); envLevel != "" {
		level = envLevel
	}
	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(level),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
	})

	return &App{
		Config: cfg,
		Theme:  styles.NewTheme(),
		db:     sqlite.NewLazyDB(cfg.Persistence.DatabasePath),
		ctx:    logging.WithContext(context.Background(), logger),
	}, nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.logCleanup != nil {
		a.logCleanup()
		a.logCleanup = nil
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Repositories opens the snapshot database on first use.
func (a *App) Repositories(ctx context.Context) (*sqlite.Repositories, error) {
	return a.db.Repositories(ctx)
}

// DatabasePath returns the snapshot database location.
func (a *App) DatabasePath() string {
	return a.db.Path()
}

// LockDir returns where running sessions keep their lock files, or "" when
// it cannot be resolved.
func (a *App) LockDir() string {
	dir, err := config.GetLockDir()
	if err != nil {
		logging.FromContext(a.ctx).Debug().Err(err).Msg("lock directory unavailable")
		return ""
	}
	return dir
}

// InteractiveContext returns a context whose logger stays off the terminal:
// it writes to the rotated log file when file logging is enabled and is
// silent otherwise.
func (a *App) InteractiveContext() (context.Context, error) {
	logCfg := a.Config.Logging
	if !logCfg.EnableFileLog {
		return logging.WithContext(context.Background(), zerolog.Nop()), nil
	}

	rotatorCfg, err := logCfg.RotatorConfig()
	if err != nil {
		return nil, err
	}
	rotator, err := logging.NewLogRotator(rotatorCfg)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	prev := a.logCleanup
	a.logCleanup = func() {
		if prev != nil {
			prev()
		}
		_ = rotator.Close()
	}

	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(logCfg.Level),
		Format:     logCfg.Format,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		Output:     rotator,
	})
	logger.Debug().Str("path", rotator.Path()).Msg("interactive logging to file")
	return logging.WithContext(context.Background(), logger), nil
}
