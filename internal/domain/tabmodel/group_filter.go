package tabmodel

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/bnema/tabstrip/internal/domain/entity"
)

// GroupFilter layers tab groups over a Collection. It keeps one TabGroup per
// group id present in the comprehensive order (live and pending tabs), holds
// group metadata and keeps every group's live tabs contiguous.
//
// The group map is derived from collection events only; callers mutate groups
// through the filter's operations, never directly.
type GroupFilter struct {
	model     *Collection
	groups    map[entity.TabGroupID]*entity.TabGroup
	metadata  map[entity.TabGroupID]*entity.TabGroupMetadata
	observers Registry[TabGroupObserver]

	defaultColor entity.TabGroupColor
	pre          Preconditions
	log          zerolog.Logger
}

// GroupFilterConfig configures a GroupFilter.
type GroupFilterConfig struct {
	DefaultColor entity.TabGroupColor
}

// NewGroupFilter installs a filter on model and adopts the groups of the tabs
// it already holds. A collection accepts a single filter.
func NewGroupFilter(model *Collection, cfg GroupFilterConfig) *GroupFilter {
	if model == nil {
		panic("tabmodel: group filter requires a collection")
	}
	if model.tracker != nil {
		panic("tabmodel: collection already has a group filter")
	}
	color := cfg.DefaultColor
	if color == "" {
		color = entity.DefaultTabGroupColor
	}
	f := &GroupFilter{
		model:        model,
		groups:       make(map[entity.TabGroupID]*entity.TabGroup),
		metadata:     make(map[entity.TabGroupID]*entity.TabGroupMetadata),
		defaultColor: color,
		pre:          model.pre,
		log:          model.log.With().Str("component", "tab_group_filter").Logger(),
	}
	model.order = f
	model.tracker = f

	model.beginBatch()
	defer model.endBatch()
	for _, t := range model.rewound {
		if t.IsGrouped() {
			f.track(t)
		}
	}
	return f
}

// Model returns the wrapped collection.
func (f *GroupFilter) Model() *Collection { return f.model }

// AddObserver registers a group observer.
func (f *GroupFilter) AddObserver(o TabGroupObserver) bool { return f.observers.Add(o) }

// RemoveObserver unregisters a group observer.
func (f *GroupFilter) RemoveObserver(o TabGroupObserver) bool { return f.observers.Remove(o) }

// membershipTracker

func (f *GroupFilter) tabAdded(tab *entity.Tab) {
	if tab.IsGrouped() {
		f.track(tab)
	}
}

func (f *GroupFilter) tabRestored(tab *entity.Tab) {
	if g := f.groupOf(tab); g != nil {
		g.Resync(f.model.rewoundIDs())
		if m := f.metadata[tab.GroupID]; m != nil {
			m.Hidden = false
		}
	}
}

func (f *GroupFilter) tabMoved(tab *entity.Tab) {
	if g := f.groupOf(tab); g != nil {
		g.Resync(f.model.rewoundIDs())
	}
}

func (f *GroupFilter) tabDropped(tab *entity.Tab) {
	f.untrack(tab)
}

func (f *GroupFilter) tabSelected(tab *entity.Tab) {
	if g := f.groupOf(tab); g != nil {
		g.SetLastShown(tab.ID)
	}
}

func (f *GroupFilter) groupOf(tab *entity.Tab) *entity.TabGroup {
	if !tab.IsGrouped() {
		return nil
	}
	g := f.groups[tab.GroupID]
	if g == nil || !g.Contains(tab.ID) {
		return nil
	}
	return g
}

// track adds tab to the group named by its GroupID, creating the group.
func (f *GroupFilter) track(tab *entity.Tab) {
	id := tab.GroupID
	g, exists := f.groups[id]
	if !exists {
		g = entity.NewTabGroup(id)
		f.groups[id] = g
	}
	m := f.metadata[id]
	if m == nil {
		m = &entity.TabGroupMetadata{Color: f.defaultColor}
		f.metadata[id] = m
	}
	m.Hidden = false
	g.Add(tab.ID, f.model.rewoundIDs())

	if !exists {
		f.log.Debug().Str("group_id", id.Short()).Int("tab_id", int(tab.ID)).Msg("tab group created")
		f.model.emit(func() {
			f.observers.Notify(func(o TabGroupObserver) { o.DidCreateTabGroup(id) })
		})
	}
}

// untrack removes tab from its group and discards the group once empty.
func (f *GroupFilter) untrack(tab *entity.Tab) {
	g := f.groupOf(tab)
	if g == nil {
		return
	}
	g.Remove(tab.ID)
	if g.Size() > 0 {
		return
	}

	id := g.ID()
	delete(f.groups, id)
	if m := f.metadata[id]; m == nil || !m.Persists() {
		delete(f.metadata, id)
	}
	f.log.Debug().Str("group_id", id.Short()).Msg("tab group removed")
	f.model.emit(func() {
		f.observers.Notify(func(o TabGroupObserver) { o.DidRemoveTabGroup(id) })
	})
}

// ValidIndex keeps groups contiguous: a grouped tab lands inside its group's
// run, any other tab lands outside every foreign run.
func (f *GroupFilter) ValidIndex(tab *entity.Tab, others []*entity.Tab, requested int, movingRight bool) int {
	requested = max(0, min(requested, len(others)))
	if tab.IsGrouped() {
		if start, end := runBounds(others, tab.GroupID); start >= 0 {
			return max(start, min(requested, end+1))
		}
	}
	return snapOutsideRuns(others, requested, tab.GroupID, movingRight)
}

// snapOutsideRuns moves index out of the middle of a run belonging to a group
// other than own: past its end when movingRight, to its start otherwise.
func snapOutsideRuns(others []*entity.Tab, index int, own entity.TabGroupID, movingRight bool) int {
	if index <= 0 || index >= len(others) {
		return index
	}
	prev, next := others[index-1], others[index]
	if !prev.IsGrouped() || prev.GroupID != next.GroupID || prev.GroupID == own {
		return index
	}
	start, end := runBounds(others, prev.GroupID)
	if movingRight {
		return end + 1
	}
	return start
}

// runBounds returns the first and last index of group id in tabs, or -1, -1.
func runBounds(tabs []*entity.Tab, id entity.TabGroupID) (start, end int) {
	start, end = -1, -1
	for i, t := range tabs {
		if t.GroupID != id {
			continue
		}
		if start < 0 {
			start = i
		}
		end = i
	}
	return start, end
}

// verify checks group membership, contiguity and last shown invariants.
func (f *GroupFilter) verify() error {
	var errs []error

	expected := make(map[entity.TabGroupID][]entity.TabID)
	for _, t := range f.model.rewound {
		if t.IsGrouped() {
			expected[t.GroupID] = append(expected[t.GroupID], t.ID)
		}
	}
	for id, ids := range expected {
		g := f.groups[id]
		if g == nil {
			errs = append(errs, fmt.Errorf("group %s has tabs but is not tracked", id.Short()))
			continue
		}
		if !slices.Equal(g.TabIDs(), ids) {
			errs = append(errs, fmt.Errorf("group %s holds %v, want %v", id.Short(), g.TabIDs(), ids))
		}
		if err := g.Validate(); err != nil {
			errs = append(errs, err)
		}
		if f.metadata[id] == nil {
			errs = append(errs, fmt.Errorf("group %s has no metadata", id.Short()))
		}
	}
	for id := range f.groups {
		if _, ok := expected[id]; !ok {
			errs = append(errs, fmt.Errorf("group %s is tracked without tabs", id.Short()))
		}
	}

	for id := range expected {
		start, end := runBounds(f.model.tabs, id)
		if start < 0 {
			continue
		}
		for i := start; i <= end; i++ {
			if f.model.tabs[i].GroupID != id {
				errs = append(errs, fmt.Errorf("group %s is not contiguous: index %d holds tab %d",
					id.Short(), i, f.model.tabs[i].ID))
				break
			}
		}
	}
	return errors.Join(errs...)
}
