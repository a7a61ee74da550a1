package snapshot

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bnema/tabstrip/internal/application/usecase"
	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/domain/tabmodel"
	repomocks "github.com/bnema/tabstrip/internal/domain/repository/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testProvider struct {
	sessionID entity.SessionID
	captures  int
}

func (p *testProvider) SessionState() *entity.SessionState {
	p.captures++
	return &entity.SessionState{Version: entity.SessionStateVersion, SessionID: p.sessionID}
}

func (p *testProvider) SessionID() entity.SessionID {
	return p.sessionID
}

func TestService_SaveSnapshot_RetriesTransientFKAndSucceeds(t *testing.T) {
	repo := repomocks.NewMockSessionStateRepository(t)
	calls := 0
	repo.EXPECT().
		SaveSnapshot(mock.Anything, mock.AnythingOfType("*entity.SessionState")).
		RunAndReturn(func(_ context.Context, _ *entity.SessionState) error {
			calls++
			if calls == 1 {
				return errors.New("FOREIGN KEY constraint failed")
			}
			return nil
		})

	uc := usecase.NewSnapshotSessionUseCase(repo)
	provider := &testProvider{sessionID: "20260207_120000_fk_retry_ok"}
	svc := NewService(uc, provider, 1)
	svc.retryDelay = time.Millisecond
	svc.ready = true
	svc.dirty = true
	svc.pending = provider.SessionState()

	err := svc.saveSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.False(t, svc.dirty)
}

func TestService_SaveSnapshot_RetriesTransientFKAndFails(t *testing.T) {
	repo := repomocks.NewMockSessionStateRepository(t)
	calls := 0
	fkErr := errors.New("save session snapshot: FOREIGN KEY constraint failed")
	repo.EXPECT().
		SaveSnapshot(mock.Anything, mock.AnythingOfType("*entity.SessionState")).
		RunAndReturn(func(_ context.Context, _ *entity.SessionState) error {
			calls++
			return fkErr
		})

	uc := usecase.NewSnapshotSessionUseCase(repo)
	provider := &testProvider{sessionID: "20260207_120000_fk_retry_fail"}
	svc := NewService(uc, provider, 1)
	svc.retryDelay = time.Millisecond
	svc.ready = true
	svc.dirty = true
	svc.pending = provider.SessionState()

	err := svc.saveSnapshot(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, fkErr)
	assert.Equal(t, svc.retries+1, calls)
	assert.True(t, svc.dirty)
}

func TestService_SaveSnapshot_DoesNotRetryNonFKError(t *testing.T) {
	repo := repomocks.NewMockSessionStateRepository(t)
	calls := 0
	nonFKErr := errors.New("database is read-only")
	repo.EXPECT().
		SaveSnapshot(mock.Anything, mock.AnythingOfType("*entity.SessionState")).
		RunAndReturn(func(_ context.Context, _ *entity.SessionState) error {
			calls++
			return nonFKErr
		})

	uc := usecase.NewSnapshotSessionUseCase(repo)
	provider := &testProvider{sessionID: "20260207_120000_non_fk"}
	svc := NewService(uc, provider, 1)
	svc.retryDelay = time.Millisecond
	svc.ready = true
	svc.dirty = true
	svc.pending = provider.SessionState()

	err := svc.saveSnapshot(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, nonFKErr)
	assert.Equal(t, 1, calls)
	assert.True(t, svc.dirty)
}

func TestService_SaveSnapshot_WaitsUntilReady(t *testing.T) {
	repo := repomocks.NewMockSessionStateRepository(t)
	provider := &testProvider{sessionID: "20260207_120000_not_ready"}
	svc := NewService(usecase.NewSnapshotSessionUseCase(repo), provider, 1)
	svc.dirty = true
	svc.pending = provider.SessionState()

	require.NoError(t, svc.saveSnapshot(context.Background()))
	assert.True(t, svc.dirty)
}

func TestService_SetReady_SavesPendingDirtySnapshot(t *testing.T) {
	repo := repomocks.NewMockSessionStateRepository(t)
	saved := make(chan struct{}, 1)
	repo.EXPECT().
		SaveSnapshot(mock.Anything, mock.AnythingOfType("*entity.SessionState")).
		RunAndReturn(func(_ context.Context, _ *entity.SessionState) error {
			saved <- struct{}{}
			return nil
		})

	uc := usecase.NewSnapshotSessionUseCase(repo)
	provider := &testProvider{sessionID: "20260207_120000_ready_flush"}
	svc := NewService(uc, provider, 1)
	svc.Start(context.Background())
	svc.dirty = true
	svc.pending = provider.SessionState()

	svc.SetReady()

	select {
	case <-saved:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected pending snapshot to be saved after SetReady")
	}
	svc.mu.Lock()
	dirty := svc.dirty
	svc.mu.Unlock()
	assert.False(t, dirty)
}

func TestService_MarkDirty_DebouncesSaves(t *testing.T) {
	repo := repomocks.NewMockSessionStateRepository(t)
	saved := make(chan *entity.SessionState, 4)
	repo.EXPECT().
		SaveSnapshot(mock.Anything, mock.AnythingOfType("*entity.SessionState")).
		RunAndReturn(func(_ context.Context, state *entity.SessionState) error {
			saved <- state
			return nil
		})

	provider := &testProvider{sessionID: "20260207_120000_debounce"}
	svc := NewService(usecase.NewSnapshotSessionUseCase(repo), provider, 20)
	svc.Start(context.Background())
	svc.SetReady()

	for range 3 {
		svc.MarkDirty()
	}
	assert.Equal(t, 3, provider.captures)

	select {
	case <-saved:
	case <-time.After(time.Second):
		t.Fatal("expected a debounced save")
	}
	select {
	case <-saved:
		t.Fatal("expected a single save for a burst of changes")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestService_Stop_SavesFinalState(t *testing.T) {
	repo := repomocks.NewMockSessionStateRepository(t)
	repo.EXPECT().
		SaveSnapshot(mock.Anything, mock.AnythingOfType("*entity.SessionState")).
		Return(nil).
		Once()

	provider := &testProvider{sessionID: "20260207_120000_stop"}
	svc := NewService(usecase.NewSnapshotSessionUseCase(repo), provider, 60_000)
	svc.Start(context.Background())
	svc.SetReady()
	svc.MarkDirty()

	require.NoError(t, svc.Stop(context.Background()))
	assert.Equal(t, 2, provider.captures, "stop captures the latest state")

	// Nothing changed since: no second save.
	require.NoError(t, svc.SaveNow(context.Background()))
}

func TestWatch_MarksDirtyOnModelAndGroupEvents(t *testing.T) {
	session := tabmodel.NewSession(tabmodel.SessionConfig{
		Logger:              zerolog.Nop(),
		StrictPreconditions: true,
	})
	filter := session.Normal()
	provider := NewFilterProvider("20260207_120000_watch", filter, nil)

	repo := repomocks.NewMockSessionStateRepository(t)
	svc := NewService(usecase.NewSnapshotSessionUseCase(repo), provider, 60_000)
	detach := Watch(svc, filter)

	for i := 1; i <= 2; i++ {
		tab := entity.NewTab(entity.TabID(i), fmt.Sprintf("https://example.com/%d", i))
		filter.Model().AddTab(tab, -1, entity.LaunchFromChromeUI, entity.LiveInBackground)
	}
	require.True(t, filter.MergeListOfTabsToGroup([]entity.TabID{2}, 1))

	svc.mu.Lock()
	dirty, pending := svc.dirty, svc.pending
	svc.mu.Unlock()
	require.True(t, dirty)
	require.NotNil(t, pending)
	assert.Len(t, pending.Tabs, 2)
	assert.Len(t, pending.Groups, 1)

	detach()
	svc.mu.Lock()
	svc.dirty = false
	svc.mu.Unlock()
	require.True(t, filter.Model().SelectTab(2))
	assert.False(t, svc.dirty)
	require.NoError(t, svc.Stop(context.Background()))
}
