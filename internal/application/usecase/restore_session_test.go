package usecase_test

import (
	"errors"
	"testing"
	"time"

	"github.com/bnema/tabstrip/internal/application/usecase"
	"github.com/bnema/tabstrip/internal/domain/entity"
	repomocks "github.com/bnema/tabstrip/internal/domain/repository/mocks"
	"github.com/bnema/tabstrip/internal/infrastructure/tabfactory"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restorableState(sessionID entity.SessionID) *entity.SessionState {
	return &entity.SessionState{
		Version:   entity.SessionStateVersion,
		SessionID: sessionID,
		Tabs: []entity.TabSnapshot{
			{ID: 4, URL: "https://example.com/a", Title: "A", IsPinned: true},
			{ID: 7, URL: "https://example.com/b", Title: "B", GroupID: "g-work"},
			{ID: 9, URL: "https://example.com/c", Title: "C", GroupID: "g-work", ParentID: 7},
		},
		Groups: []entity.GroupSnapshot{
			{ID: "g-work", Title: "Work", Color: "blue", Synced: true},
			{ID: "g-hidden", Title: "Archived", Hidden: true},
		},
		ActiveTabIndex: 2,
		SavedAt:        time.Now(),
	}
}

func TestRestoreSessionUseCase_Load_ByID(t *testing.T) {
	ctx := testContext()

	stateRepo := repomocks.NewMockSessionStateRepository(t)
	sessionID := entity.SessionID("20260101_120000_restore")
	expected := restorableState(sessionID)

	stateRepo.EXPECT().GetSnapshot(ctx, sessionID).Return(expected, nil)

	uc := usecase.NewRestoreSessionUseCase(stateRepo, nil)

	output, err := uc.Load(ctx, usecase.RestoreInput{SessionID: sessionID})
	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, expected, output.State)
}

func TestRestoreSessionUseCase_Load_LatestExcludesCurrent(t *testing.T) {
	ctx := testContext()

	stateRepo := repomocks.NewMockSessionStateRepository(t)
	current := entity.SessionID("20260101_130000_current")
	expected := restorableState("20260101_120000_previous")

	stateRepo.EXPECT().GetLatestSnapshot(ctx, current).Return(expected, nil)

	uc := usecase.NewRestoreSessionUseCase(stateRepo, nil)

	output, err := uc.Load(ctx, usecase.RestoreInput{CurrentSessionID: current})
	require.NoError(t, err)
	assert.Equal(t, expected, output.State)
}

func TestRestoreSessionUseCase_Load_NotFound(t *testing.T) {
	ctx := testContext()

	stateRepo := repomocks.NewMockSessionStateRepository(t)
	sessionID := entity.SessionID("nonexistent")

	stateRepo.EXPECT().GetSnapshot(ctx, sessionID).Return(nil, nil)

	uc := usecase.NewRestoreSessionUseCase(stateRepo, nil)

	_, err := uc.Load(ctx, usecase.RestoreInput{SessionID: sessionID})
	require.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestRestoreSessionUseCase_Load_RepositoryError(t *testing.T) {
	ctx := testContext()

	stateRepo := repomocks.NewMockSessionStateRepository(t)
	repoErr := errors.New("database locked")

	stateRepo.EXPECT().GetLatestSnapshot(ctx, entity.SessionID("")).Return(nil, repoErr)

	uc := usecase.NewRestoreSessionUseCase(stateRepo, nil)

	_, err := uc.Load(ctx, usecase.RestoreInput{})
	require.ErrorIs(t, err, repoErr)
}

func TestRestoreSessionUseCase_Load_VersionMismatch(t *testing.T) {
	ctx := testContext()

	stateRepo := repomocks.NewMockSessionStateRepository(t)
	sessionID := entity.SessionID("20260101_120000_future")

	futureState := restorableState(sessionID)
	futureState.Version = entity.SessionStateVersion + 1

	stateRepo.EXPECT().GetSnapshot(ctx, sessionID).Return(futureState, nil)

	uc := usecase.NewRestoreSessionUseCase(stateRepo, nil)

	_, err := uc.Load(ctx, usecase.RestoreInput{SessionID: sessionID})
	require.ErrorIs(t, err, usecase.ErrVersionMismatch)
}

func TestRestoreSessionUseCase_Apply_RecreatesFrozenTabs(t *testing.T) {
	ctx := testContext()

	s := newTestSession(t)
	f := s.Normal()
	factory := tabfactory.New(s, tabfactory.Config{Logger: zerolog.Nop()})
	stateRepo := repomocks.NewMockSessionStateRepository(t)

	uc := usecase.NewRestoreSessionUseCase(stateRepo, factory)
	out, err := uc.Apply(ctx, restorableState("prev"), f)
	require.NoError(t, err)

	assert.Len(t, out.Tabs, 3)
	assert.Zero(t, out.Skipped)
	assert.Equal(t, tabIDs(4, 7, 9), liveIDs(f))
	assert.Equal(t, entity.TabID(9), f.Model().CurrentTab().ID)
	assert.Equal(t, entity.TabID(7), f.Model().TabByID(9).ParentID)
	assert.True(t, f.Model().TabByID(4).IsPinned)
	assert.Equal(t, entity.TabID(10), factory.NextID())

	meta, ok := f.TabGroupMetadata("g-work")
	require.True(t, ok)
	assert.Equal(t, "Work", meta.Title)
	assert.True(t, meta.Synced)
	assert.Equal(t, 2, f.TabCountForGroup("g-work"))

	hidden, ok := f.TabGroupMetadata("g-hidden")
	require.True(t, ok)
	assert.True(t, hidden.Hidden)
	assert.False(t, f.TabGroupExists("g-hidden"))

	require.NoError(t, f.Model().Verify())
}

func TestRestoreSessionUseCase_Apply_SkipsTakenIDs(t *testing.T) {
	ctx := testContext()

	s := newTestSession(t)
	f := s.Normal()
	addTabs(t, f, 7)
	factory := tabfactory.New(s, tabfactory.Config{FirstID: 8, Logger: zerolog.Nop()})

	uc := usecase.NewRestoreSessionUseCase(repomocks.NewMockSessionStateRepository(t), factory)
	out, err := uc.Apply(ctx, restorableState("prev"), f)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Skipped)
	assert.Equal(t, tabIDs(7, 4, 9), liveIDs(f))
	require.NoError(t, f.Model().Verify())
}

func TestRestoreSessionUseCase_Apply_WithoutCreator(t *testing.T) {
	ctx := testContext()
	f := newTestSession(t).Normal()

	uc := usecase.NewRestoreSessionUseCase(repomocks.NewMockSessionStateRepository(t), nil)
	out, err := uc.Apply(ctx, restorableState("prev"), f)
	require.NoError(t, err)

	assert.Equal(t, 3, out.Skipped)
	assert.Zero(t, f.Model().Count())

	_, err = uc.Apply(ctx, nil, f)
	require.Error(t, err)
}

func TestRestoreSessionUseCase_DeleteSnapshot(t *testing.T) {
	ctx := testContext()

	stateRepo := repomocks.NewMockSessionStateRepository(t)
	stateRepo.EXPECT().DeleteSnapshot(ctx, entity.SessionID("old")).Return(nil)

	uc := usecase.NewRestoreSessionUseCase(stateRepo, nil)
	require.NoError(t, uc.DeleteSnapshot(ctx, "old"))
}
