package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabstrip/internal/application/usecase"
	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/infrastructure/config"
	"github.com/bnema/tabstrip/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/tabstrip/internal/logging"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func testContext() context.Context {
	return logging.WithContext(context.Background(), zerolog.Nop())
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Persistence.DatabasePath = filepath.Join(t.TempDir(), "tabstrip.sqlite")
	cfg.Persistence.SnapshotIntervalMs = 60000
	return cfg
}

func openTab(t *testing.T, ctx context.Context, w *Workspace, url string) *entity.Tab {
	t.Helper()
	out, err := w.Manage.Create(ctx, usecase.CreateTabInput{URL: url, ParentID: entity.InvalidTabID, Index: -1})
	require.NoError(t, err)
	require.NotNil(t, out.Tab)
	return out.Tab
}

func TestStartWorkspace_WithoutPersistence(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Persistence.Enabled = false

	w, _, err := StartWorkspace(testContext(), cfg, Options{})
	require.NoError(t, err)
	assert.Nil(t, w.Session)
	assert.NotNil(t, w.Tabs.Normal())

	openTab(t, testContext(), w, "https://example.com")
	assert.Equal(t, 1, w.Tabs.Normal().Model().Count())
	require.NoError(t, w.End(testContext()))
}

func TestStartWorkspace_NilConfig(t *testing.T) {
	_, _, err := StartWorkspace(testContext(), nil, Options{})
	require.Error(t, err)
}

func TestWorkspace_EndSavesSnapshotAndRestores(t *testing.T) {
	cfg := testConfig(t)
	clock := newTestClock()
	ctx := testContext()

	first, firstCtx, err := StartWorkspace(ctx, cfg, Options{Clock: clock.Now})
	require.NoError(t, err)
	require.NotNil(t, first.Session)

	a := openTab(t, firstCtx, first, "https://a.example")
	b := openTab(t, firstCtx, first, "https://b.example")
	c := openTab(t, firstCtx, first, "https://c.example")
	require.True(t, first.Tabs.Normal().MergeTabsToGroup(c.ID, b.ID))
	groupID := b.GroupID
	require.True(t, first.Tabs.Normal().SetTabGroupTitle(groupID, "work"))
	require.NoError(t, first.Manage.Switch(firstCtx, a.ID))

	require.NoError(t, first.End(firstCtx))
	require.NoError(t, first.End(firstCtx), "End is idempotent")

	second, secondCtx, err := StartWorkspace(ctx, cfg, Options{Clock: clock.Now, Restore: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.End(secondCtx) })

	require.NotNil(t, second.Restored)
	assert.Len(t, second.Restored.Tabs, 3)
	assert.Zero(t, second.Restored.Skipped)

	model := second.Tabs.Normal().Model()
	require.Equal(t, 3, model.Count())
	assert.Equal(t, a.ID, model.CurrentTab().ID)
	assert.Equal(t, "work", second.Tabs.Normal().TabGroupTitle(groupID))
	assert.Len(t, second.Tabs.Normal().TabsInGroup(groupID), 2)

	next := openTab(t, secondCtx, second, "https://d.example")
	assert.Greater(t, int(next.ID), int(c.ID), "restored ids are reserved")
}

func TestWorkspace_RestoreUnknownSessionFails(t *testing.T) {
	cfg := testConfig(t)

	_, _, err := StartWorkspace(testContext(), cfg, Options{Restore: true, RestoreID: "20200101_000000_dead"})
	require.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestWorkspace_RestoreWithoutHistoryIsQuiet(t *testing.T) {
	cfg := testConfig(t)

	w, ctx, err := StartWorkspace(testContext(), cfg, Options{Restore: true})
	require.NoError(t, err)
	assert.Nil(t, w.Restored)
	require.NoError(t, w.End(ctx))
}

func TestWorkspace_EndMarksSessionEnded(t *testing.T) {
	cfg := testConfig(t)
	ctx := testContext()

	w, wctx, err := StartWorkspace(ctx, cfg, Options{})
	require.NoError(t, err)
	id := w.Session.ID
	require.NoError(t, w.End(wctx))

	db := sqlite.NewLazyDB(cfg.Persistence.DatabasePath)
	t.Cleanup(func() { _ = db.Close() })
	repos, err := db.Repositories(ctx)
	require.NoError(t, err)

	session, err := repos.Sessions.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.False(t, session.IsActive())
}

func TestWorkspace_CommitExpiredClosures(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Persistence.Enabled = false
	cfg.Closure.UndoTimeoutMs = 1000

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	w, ctx, err := StartWorkspace(testContext(), cfg, Options{Clock: func() time.Time { return now }})
	require.NoError(t, err)

	tab := openTab(t, ctx, w, "https://example.com")
	openTab(t, ctx, w, "https://example.org")
	require.True(t, w.Remover().ForceCloseTabs(ctx, entity.CloseTab(tab)))
	require.True(t, w.Tabs.Normal().Model().IsClosurePending(tab.ID))

	w.CommitExpiredClosures()
	assert.True(t, w.Tabs.Normal().Model().IsClosurePending(tab.ID))

	now = now.Add(2 * time.Second)
	w.CommitExpiredClosures()
	assert.False(t, w.Tabs.Normal().Model().IsClosurePending(tab.ID))
}

func TestSessionLock(t *testing.T) {
	dir := t.TempDir()

	lock, err := lockSession(dir, "s1")
	require.NoError(t, err)
	assert.FileExists(t, sessionLockPath(dir, "s1"))
	assert.False(t, lockIsStale(dir, "s1"), "held lock is live")

	_, err = lockSession(dir, "s1")
	require.Error(t, err)

	lock.release()
	_, err = os.Stat(sessionLockPath(dir, "s1"))
	assert.True(t, os.IsNotExist(err))

	f, err := os.Create(sessionLockPath(dir, "s2"))
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.True(t, lockIsStale(dir, "s2"))
	assert.False(t, lockIsStale(dir, "missing"))
}
