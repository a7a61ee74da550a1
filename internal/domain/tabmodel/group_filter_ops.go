package tabmodel

import (
	"slices"

	"github.com/bnema/tabstrip/internal/domain/entity"
)

// CreateSingleTabGroup puts an ungrouped live tab into a new group of its own
// and returns the new group id, or NoTabGroup when the tab is not live.
func (f *GroupFilter) CreateSingleTabGroup(tabID entity.TabID) entity.TabGroupID {
	tab := f.model.TabByID(tabID)
	if tab == nil {
		return entity.NoTabGroup
	}
	if !f.pre.check(!tab.IsGrouped(), "tab %d already belongs to group %s", tabID, tab.GroupID.Short()) {
		return entity.NoTabGroup
	}

	f.model.beginBatch()
	defer f.model.endBatch()
	return f.assignNewGroup(tab)
}

func (f *GroupFilter) assignNewGroup(tab *entity.Tab) entity.TabGroupID {
	id := entity.NewTabGroupID()
	tab.GroupID = id
	f.track(tab)
	f.model.emit(func() {
		f.observers.Notify(func(o TabGroupObserver) { o.DidMergeTabToGroup(tab, id) })
	})
	return id
}

// MergeTabsToGroup moves src to the end of dst's group. When src is grouped
// its whole live group moves along, keeping its order. An ungrouped dst gets
// a new group first.
func (f *GroupFilter) MergeTabsToGroup(srcID, dstID entity.TabID) bool {
	src, dst := f.model.TabByID(srcID), f.model.TabByID(dstID)
	if src == nil || dst == nil || src == dst {
		return false
	}
	if src.IsGrouped() && src.GroupID == dst.GroupID {
		return true
	}

	f.model.beginBatch()
	defer f.model.endBatch()

	if !dst.IsGrouped() {
		f.assignNewGroup(dst)
	}
	moving := []*entity.Tab{src}
	if src.IsGrouped() {
		moving = f.TabsInGroup(src.GroupID)
	}
	for _, t := range moving {
		f.mergeTab(t, dst.GroupID)
	}
	return true
}

// MergeListOfTabsToGroup appends every listed live tab, in list order, to the
// end of dst's group. Unknown ids are skipped.
func (f *GroupFilter) MergeListOfTabsToGroup(ids []entity.TabID, dstID entity.TabID) bool {
	dst := f.model.TabByID(dstID)
	if dst == nil {
		return false
	}

	f.model.beginBatch()
	defer f.model.endBatch()

	if !dst.IsGrouped() {
		f.assignNewGroup(dst)
	}
	for _, id := range ids {
		if t := f.model.TabByID(id); t != nil && t != dst {
			f.mergeTab(t, dst.GroupID)
		}
	}
	return true
}

// mergeTab moves a live tab right after the live run of group id and makes it
// a member. Must run inside a batch.
func (f *GroupFilter) mergeTab(tab *entity.Tab, id entity.TabGroupID) {
	if tab.GroupID == id {
		return
	}
	f.untrack(tab)
	tab.GroupID = entity.NoTabGroup

	others := slices.DeleteFunc(slices.Clone(f.model.tabs), func(t *entity.Tab) bool { return t == tab })
	if _, end := runBounds(others, id); end >= 0 {
		f.model.relocate(tab, end+1)
	}
	tab.GroupID = id
	f.track(tab)

	f.log.Debug().Int("tab_id", int(tab.ID)).Str("group_id", id.Short()).Msg("tab merged into group")
	f.model.emit(func() {
		f.observers.Notify(func(o TabGroupObserver) { o.DidMergeTabToGroup(tab, id) })
	})
}

// MoveTabOutOfGroupInDirection ungroups a live tab and places it right before
// (trailing=false) or right after (trailing=true) the remaining live run of its
// former group.
func (f *GroupFilter) MoveTabOutOfGroupInDirection(tabID entity.TabID, trailing bool) bool {
	tab := f.model.TabByID(tabID)
	if tab == nil || !tab.IsGrouped() {
		return false
	}

	f.model.beginBatch()
	defer f.model.endBatch()

	previous := tab.GroupID
	others := slices.DeleteFunc(slices.Clone(f.model.tabs), func(t *entity.Tab) bool { return t == tab })
	start, end := runBounds(others, previous)

	f.untrack(tab)
	tab.GroupID = entity.NoTabGroup
	if start >= 0 {
		to := start
		if trailing {
			to = end + 1
		}
		f.model.relocate(tab, to)
	}

	f.log.Debug().
		Int("tab_id", int(tab.ID)).
		Str("group_id", previous.Short()).
		Bool("trailing", trailing).
		Msg("tab moved out of group")

	f.model.emit(func() {
		f.observers.Notify(func(o TabGroupObserver) { o.DidMoveTabOutOfGroup(tab, previous) })
	})
	return true
}

// MoveGroup moves the live run of group id so that its first tab ends up at
// index. The target is corrected so the run never splits another group.
func (f *GroupFilter) MoveGroup(id entity.TabGroupID, index int) bool {
	members := f.TabsInGroup(id)
	if len(members) == 0 {
		return false
	}
	from := f.model.indexOf(members[0].ID)
	others := slices.DeleteFunc(slices.Clone(f.model.tabs), func(t *entity.Tab) bool { return t.GroupID == id })
	to := max(0, min(index, len(others)))
	to = snapOutsideRuns(others, to, id, to > from)
	if to == from {
		return true
	}

	f.model.beginBatch()
	defer f.model.endBatch()

	f.model.reorder(slices.Concat(others[:to], members, others[to:]))

	f.log.Debug().Str("group_id", id.Short()).Int("from", from).Int("to", to).Msg("tab group moved")
	f.model.emit(func() {
		f.observers.Notify(func(o TabGroupObserver) { o.DidMoveTabGroup(id, from, to) })
	})
	return true
}

// CloseTabs is the group-aware closure entry point. It honours
// CloseWholeGroups and HideTabGroups and reports every group whose last live
// tab closes with undo through OnTabGroupClosurePending.
func (f *GroupFilter) CloseTabs(params entity.ClosureParams) bool {
	targets := f.model.resolveTargets(params)
	if params.Kind() == entity.CloseSingleTab && len(targets) == 0 {
		return false
	}
	if params.CloseWholeGroups() {
		targets = f.expandGroups(targets)
	}
	if len(targets) == 0 {
		return true
	}
	closed := f.fullyClosedGroups(targets)

	f.model.beginBatch()
	defer f.model.endBatch()

	if params.HideTabGroups() {
		for _, id := range closed {
			if m := f.metadata[id]; m != nil {
				m.Hidden = true
			}
		}
	}
	f.model.closeResolved(targets, params.AllowUndo(), params.UponExit(), params.Kind() == entity.CloseAllTabs)

	if !params.AllowUndo() {
		return true
	}
	for _, id := range closed {
		undo := entity.UndoGroupMetadata{
			GroupID:   id,
			Incognito: f.model.incognito,
			Hiding:    params.HideTabGroups(),
		}
		f.model.emit(func() {
			f.observers.Notify(func(o TabGroupObserver) { o.OnTabGroupClosurePending(undo) })
		})
	}
	return true
}

// expandGroups adds every live member of the targets' groups, in display order.
func (f *GroupFilter) expandGroups(targets []*entity.Tab) []*entity.Tab {
	groups := make(map[entity.TabGroupID]struct{})
	wanted := make(tabSet, len(targets))
	for _, t := range targets {
		wanted[t.ID] = struct{}{}
		if t.IsGrouped() {
			groups[t.GroupID] = struct{}{}
		}
	}
	out := make([]*entity.Tab, 0, len(targets))
	for _, t := range f.model.tabs {
		if _, ok := groups[t.GroupID]; wanted.has(t.ID) || (t.IsGrouped() && ok) {
			out = append(out, t)
		}
	}
	return out
}

// fullyClosedGroups returns, in display order, the groups whose live tabs are
// all in targets.
func (f *GroupFilter) fullyClosedGroups(targets []*entity.Tab) []entity.TabGroupID {
	closing := make(tabSet, len(targets))
	for _, t := range targets {
		closing[t.ID] = struct{}{}
	}
	var out []entity.TabGroupID
	for _, t := range targets {
		if !t.IsGrouped() || slices.Contains(out, t.GroupID) {
			continue
		}
		all := true
		for _, member := range f.TabsInGroup(t.GroupID) {
			if !closing.has(member.ID) {
				all = false
				break
			}
		}
		if all {
			out = append(out, t.GroupID)
		}
	}
	return out
}

// ClosingGroups returns the groups whose last live tab params would close.
// Nothing is mutated.
func (f *GroupFilter) ClosingGroups(params entity.ClosureParams) []entity.TabGroupID {
	targets := f.model.resolveTargets(params)
	if params.CloseWholeGroups() {
		targets = f.expandGroups(targets)
	}
	return f.fullyClosedGroups(targets)
}

// EmptiedGroups returns the groups that would lose every live tab if tabs
// left them. Tabs that are not live are ignored.
func (f *GroupFilter) EmptiedGroups(tabs []*entity.Tab) []entity.TabGroupID {
	live := slices.DeleteFunc(slices.Clone(tabs), func(t *entity.Tab) bool {
		return t == nil || f.model.TabByID(t.ID) != t
	})
	return f.fullyClosedGroups(live)
}

// TabsInGroup returns the live tabs of group id in display order.
func (f *GroupFilter) TabsInGroup(id entity.TabGroupID) []*entity.Tab {
	if id == entity.NoTabGroup {
		return nil
	}
	var out []*entity.Tab
	for _, t := range f.model.tabs {
		if t.GroupID == id {
			out = append(out, t)
		}
	}
	return out
}

// RelatedTabList returns the live tabs of id's group, or just the tab when it
// is ungrouped. Unknown ids yield nil.
func (f *GroupFilter) RelatedTabList(id entity.TabID) []*entity.Tab {
	tab := f.model.TabByID(id)
	if tab == nil {
		return nil
	}
	if !tab.IsGrouped() {
		return []*entity.Tab{tab}
	}
	return f.TabsInGroup(tab.GroupID)
}

// TabGroupExists reports whether id has at least one live or pending tab.
func (f *GroupFilter) TabGroupExists(id entity.TabGroupID) bool {
	_, ok := f.groups[id]
	return ok
}

// TabGroup returns a snapshot of group id, pending members included, or nil.
func (f *GroupFilter) TabGroup(id entity.TabGroupID) *entity.TabGroup {
	if g := f.groups[id]; g != nil {
		return g.Clone()
	}
	return nil
}

// GroupIDs returns every tracked group in comprehensive display order.
func (f *GroupFilter) GroupIDs() []entity.TabGroupID {
	out := make([]entity.TabGroupID, 0, len(f.groups))
	for _, t := range f.model.rewound {
		if t.IsGrouped() && !slices.Contains(out, t.GroupID) {
			out = append(out, t.GroupID)
		}
	}
	return out
}

// GroupCount returns the number of tracked groups.
func (f *GroupFilter) GroupCount() int {
	return len(f.groups)
}

// TabCountForGroup returns the number of live tabs in group id.
func (f *GroupFilter) TabCountForGroup(id entity.TabGroupID) int {
	return len(f.TabsInGroup(id))
}

// LastShownTabID returns the last shown member of group id or InvalidTabID.
func (f *GroupFilter) LastShownTabID(id entity.TabGroupID) entity.TabID {
	if g := f.groups[id]; g != nil {
		return g.LastShown()
	}
	return entity.InvalidTabID
}

// RepresentativeTabs returns one entry per ungrouped live tab or live group,
// in display order. A group is represented by its last shown tab when it is
// live, else by its first live tab.
func (f *GroupFilter) RepresentativeTabs() []*entity.Tab {
	var out []*entity.Tab
	seen := make(map[entity.TabGroupID]struct{})
	for _, t := range f.model.tabs {
		if !t.IsGrouped() {
			out = append(out, t)
			continue
		}
		if _, ok := seen[t.GroupID]; ok {
			continue
		}
		seen[t.GroupID] = struct{}{}
		if shown := f.model.TabByID(f.LastShownTabID(t.GroupID)); shown != nil {
			out = append(out, shown)
		} else {
			out = append(out, t)
		}
	}
	return out
}
