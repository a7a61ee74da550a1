package tabmodel_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/domain/tabmodel"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestSession(t *testing.T) (*tabmodel.Session, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := tabmodel.NewSession(tabmodel.SessionConfig{
		Logger:              zerolog.Nop(),
		Clock:               clock.Now,
		StrictPreconditions: true,
	})
	return s, clock
}

func newTestFilter(t *testing.T) *tabmodel.GroupFilter {
	t.Helper()
	s, _ := newTestSession(t)
	return s.Normal()
}

// addTabs appends background tabs with the given ids.
func addTabs(t *testing.T, f *tabmodel.GroupFilter, ids ...int) []*entity.Tab {
	t.Helper()
	tabs := make([]*entity.Tab, 0, len(ids))
	for _, id := range ids {
		tab := entity.NewTab(entity.TabID(id), fmt.Sprintf("https://example.com/%d", id))
		f.Model().AddTab(tab, -1, entity.LaunchFromChromeUI, entity.LiveInBackground)
		tabs = append(tabs, tab)
	}
	return tabs
}

// groupTabs groups ids, in order, into a new group and returns its id.
func groupTabs(t *testing.T, f *tabmodel.GroupFilter, ids ...int) entity.TabGroupID {
	t.Helper()
	require.NotEmpty(t, ids)
	rest := make([]entity.TabID, 0, len(ids)-1)
	for _, id := range ids[1:] {
		rest = append(rest, entity.TabID(id))
	}
	require.True(t, f.MergeListOfTabsToGroup(rest, entity.TabID(ids[0])))
	gid := f.Model().TabByID(entity.TabID(ids[0])).GroupID
	require.NotEqual(t, entity.NoTabGroup, gid)
	return gid
}

func liveIDs(list tabmodel.TabList) []entity.TabID {
	return tabmodel.IDsOf(list)
}

func tabIDs(v ...int) []entity.TabID {
	out := make([]entity.TabID, len(v))
	for i, id := range v {
		out[i] = entity.TabID(id)
	}
	return out
}

func idsOfTabs(tabs []*entity.Tab) []entity.TabID {
	out := make([]entity.TabID, len(tabs))
	for i, t := range tabs {
		out[i] = t.ID
	}
	return out
}

// recorder logs events as strings, capturing model state at notification time.
type recorder struct {
	tabmodel.EmptyTabModelObserver
	tabmodel.EmptyTabGroupObserver

	model  *tabmodel.Collection
	events []string
}

func newRecorder(f *tabmodel.GroupFilter) *recorder {
	r := &recorder{model: f.Model()}
	f.Model().AddObserver(r)
	f.AddObserver(r)
	return r
}

func (r *recorder) add(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) reset() { r.events = nil }

func (r *recorder) DidAddTab(tab *entity.Tab, _ entity.TabLaunchType, _ entity.TabCreationState) {
	r.add("add %d@%d", tab.ID, r.model.IndexOf(tab))
}

func (r *recorder) DidSelectTab(tab *entity.Tab, lastID entity.TabID) {
	r.add("select %d<-%d", tab.ID, lastID)
}

func (r *recorder) DidMoveTab(tab *entity.Tab, newIndex, oldIndex int) {
	r.add("move %d %d->%d", tab.ID, oldIndex, newIndex)
}

func (r *recorder) OnTabsPendingClosure(tabs []*entity.Tab, isAllTabs bool) {
	r.add("pending %v all=%t", idsOfTabs(tabs), isAllTabs)
}

func (r *recorder) OnTabClosureUndone(tab *entity.Tab) {
	r.add("undone %d", tab.ID)
}

func (r *recorder) OnTabClosureCommitted(tab *entity.Tab) {
	r.add("committed %d", tab.ID)
}

func (r *recorder) DidCloseTabs(tabs []*entity.Tab) {
	r.add("closed %v", idsOfTabs(tabs))
}

func (r *recorder) DidRemoveTab(tab *entity.Tab) {
	r.add("removed %d", tab.ID)
}

func (r *recorder) DidCreateTabGroup(entity.TabGroupID) {
	r.add("group created")
}

func (r *recorder) DidRemoveTabGroup(entity.TabGroupID) {
	r.add("group removed")
}

func (r *recorder) DidMoveTabOutOfGroup(tab *entity.Tab, _ entity.TabGroupID) {
	r.add("ungrouped %d", tab.ID)
}

func (r *recorder) OnTabGroupClosurePending(meta entity.UndoGroupMetadata) {
	r.add("group pending hiding=%t", meta.Hiding)
}
