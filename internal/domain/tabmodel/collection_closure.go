package tabmodel

import (
	"slices"
	"time"

	"github.com/bnema/tabstrip/internal/domain/entity"
)

type tabSet map[entity.TabID]struct{}

func (s tabSet) has(id entity.TabID) bool {
	_, ok := s[id]
	return ok
}

// CloseTabs closes the tabs described by params. Closed tabs become pending
// closures when undo is allowed and are destroyed otherwise.
// Returns false only when a single-tab closure targets a tab that is not live.
// Group options are ignored here; GroupFilter.CloseTabs honours them.
func (c *Collection) CloseTabs(params entity.ClosureParams) bool {
	targets := c.resolveTargets(params)
	if params.Kind() == entity.CloseSingleTab && len(targets) == 0 {
		return false
	}
	if len(targets) == 0 {
		return true
	}

	c.beginBatch()
	defer c.endBatch()
	c.closeResolved(targets, params.AllowUndo(), params.UponExit(), params.Kind() == entity.CloseAllTabs)
	return true
}

// resolveTargets returns the live tabs a request names, deduplicated and in
// display order.
func (c *Collection) resolveTargets(params entity.ClosureParams) []*entity.Tab {
	if params.Kind() == entity.CloseAllTabs {
		return slices.Clone(c.tabs)
	}
	wanted := make(tabSet)
	for _, t := range params.Tabs() {
		if t != nil {
			wanted[t.ID] = struct{}{}
		}
	}
	targets := make([]*entity.Tab, 0, len(wanted))
	for _, t := range c.tabs {
		if wanted.has(t.ID) {
			targets = append(targets, t)
		}
	}
	return targets
}

// closeResolved applies a closure to live targets. Must run inside a batch.
func (c *Collection) closeResolved(targets []*entity.Tab, allowUndo, uponExit, isAllTabs bool) {
	closing := make(tabSet, len(targets))
	for _, t := range targets {
		closing[t.ID] = struct{}{}
	}
	next := c.nextSelection(closing, uponExit)
	now := c.clock()
	c.closures++
	batch := c.closures

	formerIndex := make(map[entity.TabID]int, len(targets))
	for _, t := range targets {
		formerIndex[t.ID] = c.indexOf(t.ID)
	}

	c.tabs = slices.DeleteFunc(c.tabs, func(t *entity.Tab) bool { return closing.has(t.ID) })
	for _, t := range targets {
		if allowUndo {
			t.SetClosing(true)
			c.pending[t.ID] = &pendingClosure{tab: t, index: formerIndex[t.ID], closedAt: now, batch: batch}
			continue
		}
		c.removeRewound(t)
		t.Destroy()
		if c.tracker != nil {
			c.tracker.tabDropped(t)
		}
	}

	lastID := c.selected
	selectionChanged := closing.has(lastID)
	if selectionChanged {
		c.setSelected(c.TabByID(next))
	}

	c.log.Debug().
		Int("count", len(targets)).
		Bool("allow_undo", allowUndo).
		Bool("all_tabs", isAllTabs).
		Int("next_selected", int(next)).
		Msg("tabs closed")

	closed := slices.Clone(targets)
	if allowUndo {
		c.emit(func() {
			c.observers.Notify(func(o TabModelObserver) { o.OnTabsPendingClosure(closed, isAllTabs) })
		})
	} else {
		c.emit(func() {
			c.observers.Notify(func(o TabModelObserver) { o.DidCloseTabs(closed) })
		})
	}
	if selectionChanged && next.IsValid() {
		c.emitSelect(c.TabByID(next), lastID)
	}
	c.emitEmptyIfDrained()
}

// NextTabIfClosed returns the tab that would be selected if id closed now.
// It never mutates the collection.
func (c *Collection) NextTabIfClosed(id entity.TabID, uponExit bool) entity.TabID {
	return c.nextSelection(tabSet{id: {}}, uponExit)
}

// nextSelection computes the selection after the tabs in closing leave the
// live order. The opener wins unless uponExit is set; then same-group
// siblings, then the next tab, then the previous one.
func (c *Collection) nextSelection(closing tabSet, uponExit bool) entity.TabID {
	current := c.CurrentTab()
	if current == nil {
		for _, t := range c.tabs {
			if !closing.has(t.ID) {
				return t.ID
			}
		}
		return entity.InvalidTabID
	}
	if !closing.has(current.ID) {
		return current.ID
	}

	if !uponExit && current.ParentID.IsValid() && !closing.has(current.ParentID) {
		if parent := c.TabByID(current.ParentID); parent != nil && parent.GroupID == current.GroupID {
			return parent.ID
		}
	}

	index := c.indexOf(current.ID)
	if current.IsGrouped() {
		if id := c.scan(index, closing, func(t *entity.Tab) bool { return t.GroupID == current.GroupID }); id.IsValid() {
			return id
		}
	}
	return c.scan(index, closing, func(*entity.Tab) bool { return true })
}

// scan looks after index, then before it, for the closest live tab that is
// not closing and matches accept.
func (c *Collection) scan(index int, closing tabSet, accept func(*entity.Tab) bool) entity.TabID {
	for i := index + 1; i < len(c.tabs); i++ {
		if t := c.tabs[i]; !closing.has(t.ID) && accept(t) {
			return t.ID
		}
	}
	for i := index - 1; i >= 0; i-- {
		if t := c.tabs[i]; !closing.has(t.ID) && accept(t) {
			return t.ID
		}
	}
	return entity.InvalidTabID
}

// IsClosurePending reports whether id is a pending closure.
func (c *Collection) IsClosurePending(id entity.TabID) bool {
	_, ok := c.pending[id]
	return ok
}

// PendingClosures returns pending tabs in rewound order.
func (c *Collection) PendingClosures() []*entity.Tab {
	out := make([]*entity.Tab, 0, len(c.pending))
	for _, t := range c.rewound {
		if c.IsClosurePending(t.ID) {
			out = append(out, t)
		}
	}
	return out
}

// LastClosedBatch returns, in rewound order, the pending tabs of the most
// recent closure call.
func (c *Collection) LastClosedBatch() []*entity.Tab {
	var latest uint64
	for _, p := range c.pending {
		latest = max(latest, p.batch)
	}
	var out []*entity.Tab
	for _, t := range c.PendingClosures() {
		if c.pending[t.ID].batch == latest {
			out = append(out, t)
		}
	}
	return out
}

// FormerIndex returns the live index a pending tab had when it was closed.
func (c *Collection) FormerIndex(id entity.TabID) (int, bool) {
	p, ok := c.pending[id]
	if !ok {
		return -1, false
	}
	return p.index, true
}

// CommitTabClosure destroys a pending tab. Irreversible.
func (c *Collection) CommitTabClosure(id entity.TabID) bool {
	if !c.IsClosurePending(id) {
		return false
	}
	c.beginBatch()
	defer c.endBatch()
	c.commit(id)
	c.emitEmptyIfDrained()
	return true
}

// CommitAllTabClosures destroys every pending tab.
func (c *Collection) CommitAllTabClosures() {
	if len(c.pending) == 0 {
		return
	}
	c.beginBatch()
	defer c.endBatch()
	for _, t := range c.PendingClosures() {
		c.commit(t.ID)
	}
	c.emitEmptyIfDrained()
}

// CommitExpiredClosures destroys pending tabs closed at least timeout ago.
// Returns the number of committed tabs.
func (c *Collection) CommitExpiredClosures(now time.Time, timeout time.Duration) int {
	expired := make([]entity.TabID, 0)
	for _, t := range c.PendingClosures() {
		if now.Sub(c.pending[t.ID].closedAt) >= timeout {
			expired = append(expired, t.ID)
		}
	}
	if len(expired) == 0 {
		return 0
	}
	c.beginBatch()
	defer c.endBatch()
	for _, id := range expired {
		c.commit(id)
	}
	c.emitEmptyIfDrained()
	return len(expired)
}

func (c *Collection) commit(id entity.TabID) {
	p := c.pending[id]
	delete(c.pending, id)
	c.removeRewound(p.tab)
	p.tab.Destroy()
	if c.tracker != nil {
		c.tracker.tabDropped(p.tab)
	}

	c.log.Debug().Int("tab_id", int(id)).Msg("tab closure committed")

	tab := p.tab
	c.emit(func() {
		c.observers.Notify(func(o TabModelObserver) { o.OnTabClosureCommitted(tab) })
	})
}

// CancelTabClosure restores a pending tab next to its former neighbours and
// selects it.
func (c *Collection) CancelTabClosure(id entity.TabID) bool {
	p, ok := c.pending[id]
	if !ok {
		return false
	}

	c.beginBatch()
	defer c.endBatch()

	tab := p.tab
	delete(c.pending, id)

	pos := c.rewoundIndex(tab)
	index := 0
	for _, t := range c.rewound[:pos] {
		if !c.IsClosurePending(t.ID) {
			index++
		}
	}
	corrected := index
	if c.order != nil {
		corrected = c.order.ValidIndex(tab, c.tabs, index, true)
	}

	if corrected == index {
		c.tabs = slices.Insert(c.tabs, index, tab)
	} else {
		c.removeRewound(tab)
		c.insertAt(tab, corrected)
	}
	tab.SetClosing(false)
	if c.tracker != nil {
		c.tracker.tabRestored(tab)
	}

	lastID := c.selected
	c.setSelected(tab)

	c.log.Debug().Int("tab_id", int(id)).Int("index", corrected).Msg("tab closure undone")

	c.emit(func() {
		c.observers.Notify(func(o TabModelObserver) { o.OnTabClosureUndone(tab) })
	})
	if lastID != id {
		c.emitSelect(tab, lastID)
	}
	return true
}
