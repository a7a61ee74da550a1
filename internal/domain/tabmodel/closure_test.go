package tabmodel_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabstrip/internal/domain/entity"
)

func TestClosure_CloseAndCancelGroupedTab(t *testing.T) {
	f := newTestFilter(t)
	m := f.Model()
	tabs := addTabs(t, f, 1, 2, 3)
	gid := groupTabs(t, f, 2, 3)
	r := newRecorder(f)

	require.True(t, f.CloseTabs(entity.CloseTab(tabs[1])))

	assert.Equal(t, tabIDs(1, 3), liveIDs(m))
	assert.Equal(t, tabIDs(2), idsOfTabs(m.PendingClosures()))
	assert.True(t, tabs[1].IsClosing())
	assert.Equal(t, tabIDs(1, 2, 3), liveIDs(m.ComprehensiveModel()))
	assert.Equal(t, 2, f.TabGroup(gid).Size(), "pending members stay in the group")
	assert.Equal(t, tabIDs(3), idsOfTabs(f.TabsInGroup(gid)))
	assert.Equal(t, []string{"pending [2] all=false"}, r.events)
	require.NoError(t, m.Verify())

	r.reset()
	require.True(t, m.CancelTabClosure(2))

	assert.Equal(t, tabIDs(1, 2, 3), liveIDs(m))
	assert.Empty(t, m.PendingClosures())
	assert.False(t, tabs[1].IsClosing())
	assert.Equal(t, entity.TabID(2), m.CurrentTab().ID)
	assert.Equal(t, tabIDs(2, 3), f.TabGroup(gid).TabIDs())
	assert.Equal(t, []string{"undone 2", "select 2<-1"}, r.events)
	require.NoError(t, m.Verify())
}

func TestClosure_SelectionFollowsNextTab(t *testing.T) {
	f := newTestFilter(t)
	m := f.Model()
	tabs := addTabs(t, f, 1, 2, 3)
	require.True(t, m.SelectTab(2))
	r := newRecorder(f)

	require.True(t, m.CloseTabs(entity.CloseTab(tabs[1])))

	assert.Equal(t, entity.TabID(3), m.CurrentTab().ID)
	assert.Equal(t, []string{"pending [2] all=false", "select 3<-2"}, r.events)
}

func TestClosure_SingleMissingTabFails(t *testing.T) {
	f := newTestFilter(t)
	m := f.Model()
	tabs := addTabs(t, f, 1, 2)
	r := newRecorder(f)

	assert.False(t, m.CloseTabs(entity.CloseTab(entity.NewTab(9, ""))))
	assert.False(t, f.CloseTabs(entity.CloseTab(nil)))
	assert.Empty(t, r.events)

	require.True(t, m.CloseTabs(entity.CloseTab(tabs[0])))
	assert.False(t, m.CloseTabs(entity.CloseTab(tabs[0])), "pending tab is no longer live")
}

func TestClosure_ListIsBestEffort(t *testing.T) {
	f := newTestFilter(t)
	m := f.Model()
	tabs := addTabs(t, f, 1, 2, 3)

	ok := m.CloseTabs(entity.CloseTabs([]*entity.Tab{tabs[2], entity.NewTab(9, ""), tabs[0], tabs[2]}))

	require.True(t, ok)
	assert.Equal(t, tabIDs(2), liveIDs(m))
	assert.Equal(t, tabIDs(1, 3), idsOfTabs(m.PendingClosures()))
	assert.True(t, m.CloseTabs(entity.CloseTabs(nil)))
}

func TestClosure_AllTabs(t *testing.T) {
	tests := []struct {
		name      string
		allowUndo bool
	}{
		{name: "with undo", allowUndo: true},
		{name: "without undo", allowUndo: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFilter(t)
			m := f.Model()
			tabs := addTabs(t, f, 1, 2, 3, 4)
			groupTabs(t, f, 2, 3)
			r := newRecorder(f)

			require.True(t, m.CloseTabs(entity.CloseAll(entity.WithUndo(tt.allowUndo))))

			assert.Zero(t, m.Count())
			assert.Equal(t, -1, m.Index())
			assert.Nil(t, m.CurrentTab())
			if tt.allowUndo {
				assert.Len(t, m.PendingClosures(), 4)
				assert.Equal(t, 4, m.ComprehensiveModel().Count())
				assert.Equal(t, 1, f.GroupCount())
				assert.Equal(t, []string{"pending [1 2 3 4] all=true"}, r.events)
			} else {
				assert.Empty(t, m.PendingClosures())
				assert.Zero(t, m.ComprehensiveModel().Count())
				assert.Zero(t, f.GroupCount())
				for _, tab := range tabs {
					assert.True(t, tab.IsDestroyed())
				}
				assert.Equal(t, []string{"group removed", "closed [1 2 3 4]"}, r.events)
			}
			require.NoError(t, m.Verify())
		})
	}
}

func TestClosure_RoundTripIsIdempotent(t *testing.T) {
	f := newTestFilter(t)
	m := f.Model()
	tabs := addTabs(t, f, 1, 2, 3, 4)
	gid := groupTabs(t, f, 2, 3)

	require.True(t, f.CloseTabs(entity.CloseTab(tabs[1])))
	require.True(t, m.CancelTabClosure(2))
	first := liveIDs(m)
	firstGroup := f.TabGroup(gid).TabIDs()
	firstSelected := m.CurrentTab().ID

	require.True(t, f.CloseTabs(entity.CloseTab(tabs[1])))
	require.True(t, m.CancelTabClosure(2))

	assert.Equal(t, first, liveIDs(m))
	assert.Equal(t, tabIDs(1, 2, 3, 4), first)
	assert.Equal(t, firstGroup, f.TabGroup(gid).TabIDs())
	assert.Equal(t, firstSelected, m.CurrentTab().ID)
	assert.False(t, tabs[1].IsClosing())
	require.NoError(t, m.Verify())
}

func TestClosure_CommitIsIrreversible(t *testing.T) {
	f := newTestFilter(t)
	m := f.Model()
	tabs := addTabs(t, f, 1, 2, 3)
	gid := groupTabs(t, f, 2, 3)
	r := newRecorder(f)

	require.True(t, m.CloseTabs(entity.CloseTab(tabs[1])))
	require.True(t, m.CommitTabClosure(2))

	assert.True(t, tabs[1].IsDestroyed())
	assert.False(t, m.CancelTabClosure(2))
	assert.False(t, m.CommitTabClosure(2))
	assert.Equal(t, tabIDs(1, 3), liveIDs(m.ComprehensiveModel()))
	assert.Equal(t, tabIDs(3), f.TabGroup(gid).TabIDs())
	assert.Equal(t, entity.TabID(3), f.LastShownTabID(gid))
	assert.Equal(t, []string{"pending [2] all=false", "committed 2"}, r.events)
	require.NoError(t, m.Verify())
}

func TestClosure_CommitAll(t *testing.T) {
	f := newTestFilter(t)
	m := f.Model()
	tabs := addTabs(t, f, 1, 2, 3)

	require.True(t, m.CloseTabs(entity.CloseTabs(tabs[:2])))
	m.CommitAllTabClosures()

	assert.Empty(t, m.PendingClosures())
	assert.Equal(t, tabIDs(3), liveIDs(m.ComprehensiveModel()))
	assert.True(t, tabs[0].IsDestroyed())
	assert.True(t, tabs[1].IsDestroyed())
}

func TestClosure_CommitExpired(t *testing.T) {
	s, clock := newTestSession(t)
	f := s.Normal()
	m := f.Model()
	tabs := addTabs(t, f, 1, 2, 3)

	require.True(t, m.CloseTabs(entity.CloseTab(tabs[0])))
	clock.Advance(3 * time.Second)
	require.True(t, m.CloseTabs(entity.CloseTab(tabs[1])))
	clock.Advance(3 * time.Second)

	assert.Equal(t, 1, m.CommitExpiredClosures(clock.Now(), 5*time.Second))
	assert.True(t, tabs[0].IsDestroyed())
	assert.True(t, m.IsClosurePending(2))

	assert.Zero(t, m.CommitExpiredClosures(clock.Now(), 5*time.Second))
	clock.Advance(2 * time.Second)
	assert.Equal(t, 1, m.CommitExpiredClosures(clock.Now(), 5*time.Second))
	assert.Empty(t, m.PendingClosures())
}

func TestClosure_FormerIndexAndRestorePosition(t *testing.T) {
	f := newTestFilter(t)
	m := f.Model()
	tabs := addTabs(t, f, 1, 2, 3, 4)

	require.True(t, m.CloseTabs(entity.CloseTab(tabs[1])))
	index, ok := m.FormerIndex(2)
	require.True(t, ok)
	assert.Equal(t, 1, index)
	_, ok = m.FormerIndex(3)
	assert.False(t, ok)

	// 1 moves to the end while 2 is pending; 2 comes back before its old
	// right-hand neighbour.
	require.True(t, m.MoveTab(1, 2))
	assert.Equal(t, tabIDs(3, 4, 1), liveIDs(m))
	require.True(t, m.CancelTabClosure(2))
	assert.Equal(t, tabIDs(2, 3, 4, 1), liveIDs(m))
	require.NoError(t, m.Verify())
}

func TestClosure_CancelFollowsMovedGroup(t *testing.T) {
	f := newTestFilter(t)
	m := f.Model()
	tabs := addTabs(t, f, 1, 2, 3, 4)
	gid := groupTabs(t, f, 3, 4)

	require.True(t, m.CloseTabs(entity.CloseTab(tabs[1])))
	require.True(t, f.MoveGroup(gid, 0))
	assert.Equal(t, tabIDs(3, 4, 1), liveIDs(m))

	require.True(t, m.CancelTabClosure(2))
	assert.Equal(t, tabIDs(3, 4, 1, 2), liveIDs(m))
	require.NoError(t, m.Verify())
}

func TestClosure_CancelKeepsGroupsContiguous(t *testing.T) {
	f := newTestFilter(t)
	m := f.Model()
	tabs := addTabs(t, f, 1, 2, 3)
	gid := f.CreateSingleTabGroup(1)

	// 2 is pending between 1 and 3 when they end up in the same group.
	require.True(t, m.CloseTabs(entity.CloseTab(tabs[1])))
	require.True(t, f.MergeTabsToGroup(3, 1))
	assert.Equal(t, tabIDs(1, 3), liveIDs(m))

	require.True(t, m.CancelTabClosure(2))
	assert.Equal(t, tabIDs(1, 3, 2), liveIDs(m))
	assert.Equal(t, tabIDs(1, 3, 2), liveIDs(m.ComprehensiveModel()))
	assert.Equal(t, tabIDs(1, 3), f.TabGroup(gid).TabIDs())
	require.NoError(t, m.Verify())
}

func TestClosure_NextTabIfClosed(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		closing  int
		uponExit bool
		want     entity.TabID
	}{
		{name: "unselected tab keeps selection", selected: 1, closing: 5, want: 1},
		{name: "same group sibling after", selected: 3, closing: 3, want: 4},
		{name: "same group sibling before", selected: 4, closing: 4, want: 3},
		{name: "opener wins", selected: 6, closing: 6, want: 1},
		{name: "upon exit ignores opener", selected: 6, closing: 6, uponExit: true, want: 5},
		{name: "next in display order", selected: 2, closing: 2, want: 3},
		{name: "previous when last", selected: 5, closing: 5, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFilter(t)
			m := f.Model()
			addTabs(t, f, 1, 2, 3, 4, 5)
			groupTabs(t, f, 3, 4)
			opened := entity.NewTab(6, "")
			opened.ParentID = 1
			m.AddTab(opened, -1, entity.LaunchFromLink, entity.LiveInBackground)
			if tt.closing == 5 && tt.selected == 5 {
				require.True(t, m.RemoveTab(opened))
			}
			require.True(t, m.SelectTab(entity.TabID(tt.selected)))

			before := liveIDs(m)
			got := m.NextTabIfClosed(entity.TabID(tt.closing), tt.uponExit)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, before, liveIDs(m), "query does not mutate")

			target := m.TabByID(entity.TabID(tt.closing))
			require.True(t, m.CloseTabs(entity.CloseTab(target, entity.WithUponExit(tt.uponExit))))
			assert.Equal(t, got, m.CurrentTab().ID, "query agrees with the real closure")
		})
	}
}

func TestClosure_LastTabLeavesNoSelection(t *testing.T) {
	f := newTestFilter(t)
	m := f.Model()
	tabs := addTabs(t, f, 1)

	assert.Equal(t, entity.InvalidTabID, m.NextTabIfClosed(1, false))
	require.True(t, m.CloseTabs(entity.CloseTab(tabs[0], entity.WithUndo(false))))
	assert.Nil(t, m.CurrentTab())
	require.NoError(t, m.Verify())
}

func TestClosure_LastClosedBatch(t *testing.T) {
	s, clock := newTestSession(t)
	f := s.Normal()
	m := f.Model()
	tabs := addTabs(t, f, 1, 2, 3, 4)

	assert.Empty(t, m.LastClosedBatch())

	require.True(t, m.CloseTabs(entity.CloseTab(tabs[0])))
	clock.Advance(time.Second)
	require.True(t, m.CloseTabs(entity.CloseTabs([]*entity.Tab{tabs[3], tabs[2]})))

	assert.Equal(t, tabIDs(3, 4), idsOfTabs(m.LastClosedBatch()))

	require.True(t, m.CancelTabClosure(3))
	require.True(t, m.CancelTabClosure(4))
	assert.Equal(t, tabIDs(1), idsOfTabs(m.LastClosedBatch()))
}

func TestClosure_LastClosedBatchAtSameInstant(t *testing.T) {
	f := newTestFilter(t)
	m := f.Model()
	tabs := addTabs(t, f, 1, 2, 3)

	require.True(t, m.CloseTabs(entity.CloseTab(tabs[0])))
	require.True(t, m.CloseTabs(entity.CloseTab(tabs[1])))

	assert.Equal(t, tabIDs(2), idsOfTabs(m.LastClosedBatch()))

	require.True(t, m.CancelTabClosure(2))
	assert.Equal(t, tabIDs(1), idsOfTabs(m.LastClosedBatch()))
}
