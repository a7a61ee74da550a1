// Package bootstrap assembles a tab strip session from configuration.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/tabstrip/internal/application/usecase"
	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/domain/tabmodel"
	"github.com/bnema/tabstrip/internal/infrastructure/config"
	"github.com/bnema/tabstrip/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/tabstrip/internal/infrastructure/snapshot"
	"github.com/bnema/tabstrip/internal/infrastructure/tabfactory"
	"github.com/bnema/tabstrip/internal/logging"
)

const recentSessionsLimit = 200

// Options tunes StartWorkspace.
type Options struct {
	Type entity.SessionType
	// Restore re-creates the tabs of a previous session.
	Restore bool
	// RestoreID names the session to restore. Empty picks the latest one.
	RestoreID entity.SessionID
	// LockDir holds the session lock files. Empty disables stale session
	// detection.
	LockDir string
	Clock   func() time.Time
}

// Workspace is a running tab strip session: the tab models, the factory
// creating tabs in them and, when persistence is enabled, the session record
// and its snapshot service.
type Workspace struct {
	Config  *config.Config
	Tabs    *tabmodel.Session
	Creator *tabfactory.Factory
	Manage  *usecase.ManageTabsUseCase

	// Session is nil when persistence is disabled.
	Session  *entity.Session
	Restored *usecase.ApplyOutput

	clock     func() time.Time
	db        *sqlite.LazyDB
	snapshots *snapshot.Service
	unwatch   func()
	lock      *sessionLock
	sessionUC *usecase.ManageSessionUseCase

	endOnce sync.Once
	endErr  error
}

// StartWorkspace builds the tab models described by cfg. With persistence
// enabled it records a new session, restores a previous one when asked and
// starts saving snapshots of the normal model.
func StartWorkspace(ctx context.Context, cfg *config.Config, opts Options) (*Workspace, context.Context, error) {
	if cfg == nil {
		return nil, ctx, errors.New("config is nil")
	}
	log := logging.FromContext(ctx)

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	timer := newStartupTimer(clock)

	tabs := tabmodel.NewSession(tabmodel.SessionConfig{
		Logger:              *log,
		Clock:               clock,
		StrictPreconditions: cfg.Debug.StrictPreconditions,
		DefaultGroupColor:   cfg.Groups.DefaultColor,
	})
	creator := tabfactory.New(tabs, tabfactory.Config{Clock: clock, Logger: *log})

	w := &Workspace{
		Config:  cfg,
		Tabs:    tabs,
		Creator: creator,
		Manage:  usecase.NewManageTabsUseCase(tabs, creator),
		clock:   clock,
	}

	timer.mark("model")

	if !cfg.Persistence.Enabled {
		log.Debug().Msg("persistence disabled, session is not recorded")
		return w, ctx, nil
	}

	w.db = sqlite.NewLazyDB(cfg.Persistence.DatabasePath)
	repos, err := w.db.Repositories(ctx)
	if err != nil {
		return nil, ctx, fmt.Errorf("open session database: %w", err)
	}

	w.sessionUC = usecase.NewManageSessionUseCase(repos.Sessions)
	started, err := w.sessionUC.StartSession(ctx, usecase.StartSessionInput{Type: opts.Type, Now: clock()})
	if err != nil {
		_ = w.db.Close()
		return nil, ctx, err
	}
	w.Session = started.Session
	sessionCtx := started.Context
	sessionLog := logging.FromContext(sessionCtx)
	timer.mark("database")

	if opts.LockDir != "" {
		lock, lockErr := lockSession(opts.LockDir, w.Session.ID)
		if lockErr != nil {
			// Only stale session cleanup depends on the lock.
			sessionLog.Warn().Err(lockErr).Msg("failed to acquire session lock")
		} else {
			w.lock = lock
		}
		endStaleSessions(sessionCtx, w.sessionUC, opts.LockDir, clock(), sessionLog)
	}

	if opts.Restore {
		restoreUC := usecase.NewRestoreSessionUseCase(repos.States, creator)
		restored, restoreErr := restore(sessionCtx, restoreUC, tabs.Normal(), opts.RestoreID, w.Session.ID)
		switch {
		case errors.Is(restoreErr, usecase.ErrSessionNotFound) && opts.RestoreID == "":
			sessionLog.Debug().Msg("no previous session to restore")
		case restoreErr != nil && opts.RestoreID != "":
			_ = w.End(sessionCtx)
			return nil, ctx, restoreErr
		case restoreErr != nil:
			sessionLog.Warn().Err(restoreErr).Msg("session restore failed")
		default:
			w.Restored = restored
		}
		timer.mark("restore")
	}

	provider := snapshot.NewFilterProvider(w.Session.ID, tabs.Normal(), clock)
	w.snapshots = snapshot.NewService(
		usecase.NewSnapshotSessionUseCase(repos.States),
		provider,
		cfg.Persistence.SnapshotIntervalMs,
	)
	w.snapshots.Start(logging.WithComponent(sessionCtx, "snapshot"))
	w.snapshots.SetReady()
	w.unwatch = snapshot.Watch(w.snapshots, tabs.Normal())
	if w.Restored != nil && len(w.Restored.Tabs) > 0 {
		w.snapshots.MarkDirty()
	}
	timer.mark("snapshots")
	timer.logDebug(sessionCtx)

	return w, sessionCtx, nil
}

func restore(
	ctx context.Context,
	uc *usecase.RestoreSessionUseCase,
	filter *tabmodel.GroupFilter,
	sessionID, currentID entity.SessionID,
) (*usecase.ApplyOutput, error) {
	loaded, err := uc.Load(ctx, usecase.RestoreInput{SessionID: sessionID, CurrentSessionID: currentID})
	if err != nil {
		return nil, err
	}
	return uc.Apply(ctx, loaded.State, filter)
}

// Remover returns the closure use case of the selected model.
func (w *Workspace) Remover() *usecase.RemoveTabsUseCase {
	return usecase.NewRemoveTabsUseCase(w.Tabs.CurrentFilter(), usecase.GroupDialogPolicy{})
}

// Ungrouper returns the ungroup use case of the selected model.
func (w *Workspace) Ungrouper() *usecase.UngroupTabsUseCase {
	return usecase.NewUngroupTabsUseCase(w.Tabs.CurrentFilter(), usecase.GroupDialogPolicy{})
}

// CommitExpiredClosures finalizes closures older than the configured undo
// timeout in both models.
func (w *Workspace) CommitExpiredClosures() {
	timeout := w.Config.Closure.UndoTimeout()
	if timeout <= 0 {
		return
	}
	now := w.clock()
	w.Tabs.Normal().Model().CommitExpiredClosures(now, timeout)
	if incognito := w.Tabs.Incognito(); incognito != nil {
		incognito.Model().CommitExpiredClosures(now, timeout)
	}
}

// End commits pending closures, saves the final snapshot and marks the
// session ended. It is safe to call more than once.
func (w *Workspace) End(ctx context.Context) error {
	w.endOnce.Do(func() {
		w.Tabs.Normal().Model().CommitAllTabClosures()
		w.Tabs.DestroyIncognito()

		var errs []error
		if w.unwatch != nil {
			w.unwatch()
		}
		if w.snapshots != nil {
			if err := w.snapshots.Stop(ctx); err != nil {
				errs = append(errs, fmt.Errorf("save final snapshot: %w", err))
			}
		}
		if w.Session != nil && w.sessionUC != nil {
			if err := w.sessionUC.EndSession(ctx, w.Session.ID, w.clock()); err != nil {
				errs = append(errs, err)
			}
		}
		if w.lock != nil {
			w.lock.release()
		}
		if w.db != nil {
			if err := w.db.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close database: %w", err))
			}
		}
		w.endErr = errors.Join(errs...)
	})
	return w.endErr
}

// endStaleSessions marks sessions ended whose process no longer holds their
// lock. It runs in the background with its own context.
func endStaleSessions(
	ctx context.Context,
	sessionUC *usecase.ManageSessionUseCase,
	lockDir string,
	now time.Time,
	log *zerolog.Logger,
) {
	bgCtx := logging.WithContext(context.WithoutCancel(ctx), *log)
	go func() {
		recent, err := sessionUC.GetRecentSessions(bgCtx, recentSessionsLimit)
		if err != nil {
			log.Warn().Err(err).Msg("background: failed to list sessions")
			return
		}
		for _, s := range recent {
			if s == nil || !s.IsActive() {
				continue
			}
			if !lockIsStale(lockDir, s.ID) {
				continue
			}
			if err := sessionUC.EndSession(bgCtx, s.ID, now); err != nil {
				log.Warn().Err(err).Str("session_id", string(s.ID)).Msg("failed to end stale session")
				continue
			}
			removeLock(lockDir, s.ID)
		}
	}()
}
