package usecase_test

import (
	"testing"

	"github.com/bnema/tabstrip/internal/application/port"
	portmocks "github.com/bnema/tabstrip/internal/application/port/mocks"
	"github.com/bnema/tabstrip/internal/application/usecase"
	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/infrastructure/tabfactory"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestManageTabsUseCase_Create_NilCreatorIsNoOp(t *testing.T) {
	ctx := testContext()
	s := newTestSession(t)

	uc := usecase.NewManageTabsUseCase(s, nil)
	out, err := uc.Create(ctx, usecase.CreateTabInput{URL: "https://example.com", ParentID: entity.InvalidTabID, Index: -1})

	require.NoError(t, err)
	assert.Nil(t, out.Tab)
	assert.Zero(t, s.Normal().Model().Count())
}

func TestManageTabsUseCase_Create_PassesOpenerAndGroup(t *testing.T) {
	ctx := testContext()
	s := newTestSession(t)
	f := s.Normal()
	addTabs(t, f, 1, 2)
	gid := groupTabs(t, f, 1)

	created := entity.NewTab(3, "https://example.com/child")
	creator := portmocks.NewMockTabCreator(t)
	creator.EXPECT().CreateNewTab(mock.Anything).
		Run(func(params port.NewTabParams) {
			require.NotNil(t, params.Parent)
			assert.Equal(t, entity.TabID(1), params.Parent.ID)
			assert.Equal(t, gid, params.GroupID)
			assert.Equal(t, entity.LaunchFromTabGroupUI, params.LaunchType)
			assert.Equal(t, entity.LiveInBackground, params.State)
			assert.Equal(t, -1, params.Index)
		}).
		Return(created)

	uc := usecase.NewManageTabsUseCase(s, creator)
	out, err := uc.Create(ctx, usecase.CreateTabInput{
		URL:             "https://example.com/child",
		Background:      true,
		ParentID:        1,
		GroupWithParent: true,
		Index:           -1,
	})

	require.NoError(t, err)
	assert.Same(t, created, out.Tab)
}

func TestManageTabsUseCase_Create_CreatorDeclines(t *testing.T) {
	ctx := testContext()
	s := newTestSession(t)

	creator := portmocks.NewMockTabCreator(t)
	creator.EXPECT().CreateNewTab(mock.Anything).Return(nil)

	uc := usecase.NewManageTabsUseCase(s, creator)
	out, err := uc.Create(ctx, usecase.CreateTabInput{ParentID: entity.InvalidTabID, Index: -1})

	require.NoError(t, err)
	assert.Nil(t, out.Tab)
}

func TestManageTabsUseCase_Create_UnknownOpener(t *testing.T) {
	ctx := testContext()
	s := newTestSession(t)
	creator := portmocks.NewMockTabCreator(t)

	uc := usecase.NewManageTabsUseCase(s, creator)
	_, err := uc.Create(ctx, usecase.CreateTabInput{ParentID: 42, Index: -1})

	require.Error(t, err)
}

func TestManageTabsUseCase_Create_WithFactory(t *testing.T) {
	ctx := testContext()
	s := newTestSession(t)
	factory := tabfactory.New(s, tabfactory.Config{Logger: zerolog.Nop()})

	uc := usecase.NewManageTabsUseCase(s, factory)
	first, err := uc.Create(ctx, usecase.CreateTabInput{ParentID: entity.InvalidTabID, Index: -1})
	require.NoError(t, err)
	second, err := uc.Create(ctx, usecase.CreateTabInput{URL: "https://example.com", ParentID: first.Tab.ID, Index: -1})
	require.NoError(t, err)

	assert.Equal(t, first.Tab.ID, second.Tab.ParentID)
	assert.Same(t, second.Tab, s.Normal().Model().CurrentTab())
	assert.Equal(t, []entity.TabID{first.Tab.ID, second.Tab.ID}, liveIDs(s.Normal()))
}

func TestManageTabsUseCase_SwitchMovePinRename(t *testing.T) {
	ctx := testContext()
	s := newTestSession(t)
	f := s.Normal()
	tabs := addTabs(t, f, 1, 2, 3)

	uc := usecase.NewManageTabsUseCase(s, nil)

	require.NoError(t, uc.Switch(ctx, 3))
	assert.Same(t, tabs[2], f.Model().CurrentTab())
	require.Error(t, uc.Switch(ctx, 9))

	require.NoError(t, uc.Move(ctx, 1, 2))
	assert.Equal(t, tabIDs(2, 3, 1), liveIDs(f))
	require.Error(t, uc.Move(ctx, 9, 0))

	require.NoError(t, uc.Pin(ctx, 2, true))
	assert.True(t, tabs[1].IsPinned)

	require.NoError(t, uc.Rename(ctx, 2, "Docs"))
	assert.Equal(t, "Docs", tabs[1].Title)
	require.Error(t, uc.Rename(ctx, 9, "x"))
}

func TestManageTabsUseCase_SwitchNextPreviousWraps(t *testing.T) {
	ctx := testContext()
	s := newTestSession(t)
	f := s.Normal()
	addTabs(t, f, 1, 2, 3)
	uc := usecase.NewManageTabsUseCase(s, nil)

	require.Equal(t, entity.TabID(1), f.Model().CurrentTab().ID)

	require.NoError(t, uc.SwitchPrevious(ctx))
	assert.Equal(t, entity.TabID(3), f.Model().CurrentTab().ID)

	require.NoError(t, uc.SwitchNext(ctx))
	assert.Equal(t, entity.TabID(1), f.Model().CurrentTab().ID)

	require.NoError(t, uc.SwitchByIndex(ctx, 1))
	assert.Equal(t, entity.TabID(2), f.Model().CurrentTab().ID)
	require.NoError(t, uc.SwitchByIndex(ctx, 7))
	assert.Equal(t, entity.TabID(2), f.Model().CurrentTab().ID)

	assert.Equal(t, entity.InvalidTabID, uc.GetNext(s.Model(true), 1))
}

func TestManageTabsUseCase_UndoClose(t *testing.T) {
	ctx := testContext()
	s := newTestSession(t)
	f := s.Normal()
	tabs := addTabs(t, f, 1, 2, 3)
	uc := usecase.NewManageTabsUseCase(s, nil)

	assert.Empty(t, uc.UndoClose(ctx))

	require.True(t, f.CloseTabs(entity.CloseTabs([]*entity.Tab{tabs[0], tabs[2]})))
	require.Equal(t, tabIDs(2), liveIDs(f))

	restored := uc.UndoClose(ctx)
	assert.Len(t, restored, 2)
	assert.Equal(t, tabIDs(1, 2, 3), liveIDs(f))
}
