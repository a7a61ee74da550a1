// Package snapshot saves the normal tab model of a session, debounced.
package snapshot

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/bnema/tabstrip/internal/application/port"
	"github.com/bnema/tabstrip/internal/application/usecase"
	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/logging"
)

const (
	defaultInterval   = 5 * time.Second
	defaultRetries    = 3
	defaultRetryDelay = 50 * time.Millisecond
)

// Service handles debounced session state snapshots.
//
// MarkDirty and SaveNow read the tab model through the provider, so they
// must run on the goroutine that owns it. The timer only writes the state
// captured by the last MarkDirty.
type Service struct {
	snapshotUC *usecase.SnapshotSessionUseCase
	provider   port.SessionStateProvider
	interval   time.Duration
	retries    int
	retryDelay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	dirty   bool
	pending *entity.SessionState
	ready   bool // the session row exists, snapshots can reference it
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewService creates a new snapshot service.
func NewService(
	snapshotUC *usecase.SnapshotSessionUseCase,
	provider port.SessionStateProvider,
	intervalMs int,
) *Service {
	interval := time.Duration(intervalMs) * time.Millisecond
	if intervalMs <= 0 {
		interval = defaultInterval
	}
	return &Service{
		snapshotUC: snapshotUC,
		provider:   provider,
		interval:   interval,
		retries:    defaultRetries,
		retryDelay: defaultRetryDelay,
	}
}

// Start begins watching for dirty state.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctx, s.cancel = context.WithCancel(ctx)
	logging.FromContext(ctx).Debug().Dur("interval", s.interval).Msg("snapshot service started")
}

// SetReady marks the service as ready to save snapshots. Call it once the
// session has been persisted. A snapshot that was waiting is scheduled.
func (s *Service) SetReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
	if s.dirty && s.pending != nil {
		s.scheduleLocked(0)
	}
}

// Stop stops the service and saves final state.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	return s.SaveNow(ctx)
}

// MarkDirty captures the current state and schedules a save after the
// debounce interval. Each call restarts the interval.
func (s *Service) MarkDirty() {
	state := s.provider.SessionState()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.dirty = true
	s.pending = state
	s.scheduleLocked(s.interval)
}

func (s *Service) scheduleLocked(after time.Duration) {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(after, func() {
		s.mu.Lock()
		ctx := s.ctx
		s.mu.Unlock()

		if ctx == nil || ctx.Err() != nil {
			return
		}

		if err := s.saveSnapshot(ctx); err != nil {
			logging.FromContext(ctx).Error().Err(err).Msg("failed to save session snapshot")
		}
	})
}

// SaveNow captures and saves the current state immediately when it changed
// since the last save.
func (s *Service) SaveNow(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	dirty := s.dirty
	s.mu.Unlock()

	if !dirty {
		return nil
	}

	state := s.provider.SessionState()
	s.mu.Lock()
	s.pending = state
	s.mu.Unlock()

	return s.saveSnapshot(ctx)
}

func (s *Service) saveSnapshot(ctx context.Context) error {
	s.mu.Lock()
	if !s.ready || s.pending == nil {
		// Keep the snapshot until the session row exists.
		s.mu.Unlock()
		return nil
	}
	state := s.pending
	s.dirty = false
	s.mu.Unlock()

	sessionID := s.provider.SessionID()
	if sessionID == "" {
		return nil
	}

	var err error
retry:
	for attempt := 0; ; attempt++ {
		err = s.snapshotUC.Execute(ctx, usecase.SnapshotInput{
			SessionID: sessionID,
			State:     state,
		})
		if err == nil || !isForeignKeyError(err) || attempt == s.retries {
			break
		}
		logging.FromContext(ctx).Debug().Int("attempt", attempt+1).Msg("snapshot waiting for session row")
		select {
		case <-ctx.Done():
			err = errors.Join(err, ctx.Err())
			break retry
		case <-time.After(s.retryDelay):
		}
	}

	if err != nil {
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
	}
	return err
}

func isForeignKeyError(err error) bool {
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
