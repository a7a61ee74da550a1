package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/tabstrip/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.NewConnection(testCtx(), filepath.Join(t.TempDir(), "tabstrip.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSessionRepository_CRUD(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewSessionRepository(openTestDB(t))

	startedAt := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	s := &entity.Session{ID: "20260110_080000_abcd", Type: entity.SessionTypeInteractive, StartedAt: startedAt}
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.Type, got.Type)
	assert.True(t, got.StartedAt.Equal(startedAt))
	assert.Nil(t, got.EndedAt)

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, s.ID, active.ID)

	endedAt := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkEnded(ctx, s.ID, endedAt))

	active2, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Nil(t, active2)

	got2, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got2.EndedAt)
	assert.True(t, got2.EndedAt.Equal(endedAt))

	recent, err := repo.GetRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, s.ID, recent[0].ID)

	require.NoError(t, repo.Delete(ctx, s.ID))
	gone, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestSessionRepository_RejectsInvalidSession(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewSessionRepository(openTestDB(t))

	err := repo.Save(ctx, &entity.Session{ID: "x", Type: "browser", StartedAt: time.Now()})
	require.ErrorIs(t, err, entity.ErrInvalidSession)
}

func TestSessionRepository_MarkEndedUnknown(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewSessionRepository(openTestDB(t))

	err := repo.MarkEnded(ctx, "missing", time.Now())
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSessionRepository_RecentOrderAndActiveType(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewSessionRepository(openTestDB(t))

	base := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, &entity.Session{ID: "a", Type: entity.SessionTypeInteractive, StartedAt: base}))
	require.NoError(t, repo.Save(ctx, &entity.Session{ID: "b", Type: entity.SessionTypeInteractive, StartedAt: base.Add(time.Hour)}))
	require.NoError(t, repo.Save(ctx, &entity.Session{ID: "c", Type: entity.SessionTypeReplay, StartedAt: base.Add(2 * time.Hour)}))

	recent, err := repo.GetRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, entity.SessionID("c"), recent[0].ID)
	assert.Equal(t, entity.SessionID("b"), recent[1].ID)

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, entity.SessionID("b"), active.ID, "replays are never the active session")
}

func TestSessionStateRepository_SaveAndGet(t *testing.T) {
	ctx := testCtx()
	db := openTestDB(t)
	sessions := sqlite.NewSessionRepository(db)
	states := sqlite.NewSessionStateRepository(db)

	s := &entity.Session{ID: "s1", Type: entity.SessionTypeInteractive, StartedAt: time.Now()}
	require.NoError(t, sessions.Save(ctx, s))

	state := &entity.SessionState{
		Version:   entity.SessionStateVersion,
		SessionID: s.ID,
		Tabs: []entity.TabSnapshot{
			{ID: 1, URL: "https://example.com", Title: "Example", GroupID: "g1"},
			{ID: 2, URL: "https://example.org", IsPinned: true, ParentID: 1},
		},
		Groups:         []entity.GroupSnapshot{{ID: "g1", Title: "Work", Color: entity.TabGroupColorBlue, Synced: true}},
		ActiveTabIndex: 1,
		SavedAt:        time.Date(2026, 1, 10, 8, 30, 0, 0, time.UTC),
	}
	require.NoError(t, states.SaveSnapshot(ctx, state))

	got, err := states.GetSnapshot(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, state.Tabs, got.Tabs)
	assert.Equal(t, state.Groups, got.Groups)
	assert.Equal(t, 1, got.ActiveTabIndex)
	assert.True(t, got.SavedAt.Equal(state.SavedAt))

	// Upsert replaces the previous snapshot.
	state.Tabs = state.Tabs[:1]
	require.NoError(t, states.SaveSnapshot(ctx, state))
	got, err = states.GetSnapshot(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, got.Tabs, 1)

	missing, err := states.GetSnapshot(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, states.DeleteSnapshot(ctx, s.ID))
	got, err = states.GetSnapshot(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStateRepository_RequiresSessionRow(t *testing.T) {
	ctx := testCtx()
	states := sqlite.NewSessionStateRepository(openTestDB(t))

	err := states.SaveSnapshot(ctx, &entity.SessionState{SessionID: "orphan", SavedAt: time.Now()})
	require.Error(t, err)
	require.Error(t, states.SaveSnapshot(ctx, nil))
}

func TestSessionStateRepository_GetLatestSnapshot(t *testing.T) {
	ctx := testCtx()
	db := openTestDB(t)
	sessions := sqlite.NewSessionRepository(db)
	states := sqlite.NewSessionStateRepository(db)

	base := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	save := func(id entity.SessionID, savedAt time.Time, tabs int) {
		t.Helper()
		require.NoError(t, sessions.Save(ctx, &entity.Session{ID: id, Type: entity.SessionTypeInteractive, StartedAt: base}))
		state := &entity.SessionState{Version: entity.SessionStateVersion, SessionID: id, SavedAt: savedAt}
		for i := range tabs {
			state.Tabs = append(state.Tabs, entity.TabSnapshot{ID: entity.TabID(i + 1), URL: "https://example.com"})
		}
		require.NoError(t, states.SaveSnapshot(ctx, state))
	}

	save("old", base.Add(time.Minute), 2)
	save("newer", base.Add(2*time.Minute+500*time.Millisecond), 1)
	save("empty", base.Add(time.Hour), 0)
	save("current", base.Add(2*time.Hour), 3)

	latest, err := states.GetLatestSnapshot(ctx, "current")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, entity.SessionID("newer"), latest.SessionID)

	none, err := sqlite.NewSessionStateRepository(openTestDB(t)).GetLatestSnapshot(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestSessionRepository_DeleteCascadesToSnapshot(t *testing.T) {
	ctx := testCtx()
	db := openTestDB(t)
	sessions := sqlite.NewSessionRepository(db)
	states := sqlite.NewSessionStateRepository(db)

	require.NoError(t, sessions.Save(ctx, &entity.Session{ID: "s", Type: entity.SessionTypeInteractive, StartedAt: time.Now()}))
	require.NoError(t, states.SaveSnapshot(ctx, &entity.SessionState{SessionID: "s", SavedAt: time.Now()}))

	require.NoError(t, sessions.Delete(ctx, "s"))

	got, err := states.GetSnapshot(ctx, "s")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNewConnection_InMemoryAndMigrationStatus(t *testing.T) {
	ctx := testCtx()

	db, err := sqlite.NewConnection(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	version, err := sqlite.GetMigrationStatus(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	_, err = sqlite.NewConnection(ctx, "")
	require.Error(t, err)
}
