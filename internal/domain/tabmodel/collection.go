package tabmodel

import (
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/tabstrip/internal/domain/entity"
)

// CollectionConfig configures a Collection.
type CollectionConfig struct {
	Incognito     bool
	Logger        zerolog.Logger
	Clock         func() time.Time
	Preconditions Preconditions
}

// Collection is the ordered tab sequence of one browsing context.
//
// Live tabs are addressable by id and index. Tabs closed with undo move to the
// pending set and stay in the rewound order (live + pending, in their former
// positions) until they are committed or cancelled.
type Collection struct {
	incognito bool
	active    bool

	tabs     []*entity.Tab
	rewound  []*entity.Tab
	pending  map[entity.TabID]*pendingClosure
	selected entity.TabID

	order   OrderController
	tracker membershipTracker

	observers          Registry[TabModelObserver]
	incognitoObservers Registry[IncognitoObserver]
	count              *Supplier[int]
	current            *Supplier[*entity.Tab]

	batchDepth int
	queue      []func()
	closures   uint64

	pre   Preconditions
	log   zerolog.Logger
	clock func() time.Time
}

type pendingClosure struct {
	tab      *entity.Tab
	index    int
	closedAt time.Time
	batch    uint64 // closure call that made the tab pending
}

// NewCollection creates an empty collection.
func NewCollection(cfg CollectionConfig) *Collection {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	component := "tab_model"
	if cfg.Incognito {
		component = "incognito_tab_model"
	}
	return &Collection{
		incognito: cfg.Incognito,
		tabs:      make([]*entity.Tab, 0, 16),
		rewound:   make([]*entity.Tab, 0, 16),
		pending:   make(map[entity.TabID]*pendingClosure),
		selected:  entity.InvalidTabID,
		count:     NewSupplier(0),
		current:   NewSupplier[*entity.Tab](nil),
		pre:       cfg.Preconditions,
		log:       cfg.Logger.With().Str("component", component).Logger(),
		clock:     clock,
	}
}

// IsIncognito reports whether this collection holds private tabs.
func (c *Collection) IsIncognito() bool { return c.incognito }

// IsActiveModel reports whether this collection is the one shown to the user.
func (c *Collection) IsActiveModel() bool { return c.active }

func (c *Collection) setActive(active bool) { c.active = active }

// Count returns the number of live tabs.
func (c *Collection) Count() int { return len(c.tabs) }

// TabAt returns the live tab at index or nil.
func (c *Collection) TabAt(index int) *entity.Tab {
	if index < 0 || index >= len(c.tabs) {
		return nil
	}
	return c.tabs[index]
}

// IndexOf returns the live index of tab or -1.
func (c *Collection) IndexOf(tab *entity.Tab) int {
	if tab == nil {
		return -1
	}
	return c.indexOf(tab.ID)
}

func (c *Collection) indexOf(id entity.TabID) int {
	return slices.IndexFunc(c.tabs, func(t *entity.Tab) bool { return t.ID == id })
}

func (c *Collection) rewoundIndex(tab *entity.Tab) int {
	return slices.Index(c.rewound, tab)
}

// TabByID returns the live tab with id or nil.
func (c *Collection) TabByID(id entity.TabID) *entity.Tab {
	if i := c.indexOf(id); i >= 0 {
		return c.tabs[i]
	}
	return nil
}

// Index returns the selected live index or -1.
func (c *Collection) Index() int {
	return c.indexOf(c.selected)
}

// CurrentTab returns the selected tab or nil.
func (c *Collection) CurrentTab() *entity.Tab {
	return c.TabByID(c.selected)
}

// Tabs returns a copy of the live order.
func (c *Collection) Tabs() []*entity.Tab {
	return slices.Clone(c.tabs)
}

// CountSupplier exposes the live tab count.
func (c *Collection) CountSupplier() *Supplier[int] { return c.count }

// CurrentTabSupplier exposes the selected tab.
func (c *Collection) CurrentTabSupplier() *Supplier[*entity.Tab] { return c.current }

// AddObserver registers a tab model observer.
func (c *Collection) AddObserver(o TabModelObserver) bool { return c.observers.Add(o) }

// RemoveObserver unregisters a tab model observer.
func (c *Collection) RemoveObserver(o TabModelObserver) bool { return c.observers.Remove(o) }

// AddIncognitoObserver registers an incognito observer.
func (c *Collection) AddIncognitoObserver(o IncognitoObserver) bool {
	return c.incognitoObservers.Add(o)
}

// RemoveIncognitoObserver unregisters an incognito observer.
func (c *Collection) RemoveIncognitoObserver(o IncognitoObserver) bool {
	return c.incognitoObservers.Remove(o)
}

// AddTab inserts tab at index. Out of range indices append. The order
// controller may move the insertion point to keep groups contiguous.
func (c *Collection) AddTab(
	tab *entity.Tab,
	index int,
	launchType entity.TabLaunchType,
	state entity.TabCreationState,
) {
	if !c.pre.check(tab != nil, "add nil tab") {
		return
	}
	if !c.pre.check(tab.ID.IsValid(), "add tab with invalid id %d", tab.ID) {
		return
	}
	if !c.pre.check(c.TabByID(tab.ID) == nil && c.pending[tab.ID] == nil, "tab %d already in model", tab.ID) {
		return
	}
	if !c.pre.check(tab.Incognito == c.incognito, "tab %d incognito=%t added to incognito=%t model",
		tab.ID, tab.Incognito, c.incognito) {
		return
	}

	c.beginBatch()
	defer c.endBatch()

	wasEmpty := len(c.rewound) == 0
	if index < 0 || index > len(c.tabs) {
		index = len(c.tabs)
	}
	if c.order != nil {
		index = c.order.ValidIndex(tab, c.tabs, index, true)
	}

	tab.SetClosing(false)
	c.insertAt(tab, index)
	if c.tracker != nil {
		c.tracker.tabAdded(tab)
	}

	lastID := c.selected
	selects := state.SelectsOnAdd() || !lastID.IsValid()
	if selects {
		c.setSelected(tab)
	}

	c.log.Debug().
		Int("tab_id", int(tab.ID)).
		Int("index", index).
		Str("launch_type", launchType.String()).
		Bool("selected", selects).
		Msg("tab added")

	c.emit(func() {
		c.observers.Notify(func(o TabModelObserver) { o.DidAddTab(tab, launchType, state) })
	})
	if selects && lastID != tab.ID {
		c.emitSelect(tab, lastID)
	}
	if c.incognito && wasEmpty {
		c.emit(func() {
			c.incognitoObservers.Notify(func(o IncognitoObserver) { o.WasFirstTabCreated() })
		})
	}
}

// RemoveTab detaches a live tab without destroying it.
func (c *Collection) RemoveTab(tab *entity.Tab) bool {
	if !c.pre.check(tab != nil, "remove nil tab") {
		return false
	}
	if !c.pre.check(c.pending[tab.ID] == nil, "remove tab %d pending closure", tab.ID) {
		return false
	}
	index := c.indexOf(tab.ID)
	if !c.pre.check(index >= 0, "remove tab %d not in model", tab.ID) {
		return false
	}

	c.beginBatch()
	defer c.endBatch()

	next := c.nextSelection(map[entity.TabID]struct{}{tab.ID: {}}, false)
	c.tabs = slices.Delete(c.tabs, index, index+1)
	c.removeRewound(tab)
	if c.tracker != nil {
		c.tracker.tabDropped(tab)
	}

	lastID := c.selected
	if lastID == tab.ID {
		c.setSelected(c.TabByID(next))
	}

	c.log.Debug().Int("tab_id", int(tab.ID)).Int("index", index).Msg("tab detached")

	c.emit(func() {
		c.observers.Notify(func(o TabModelObserver) { o.DidRemoveTab(tab) })
	})
	if lastID == tab.ID && next.IsValid() {
		c.emitSelect(c.TabByID(next), lastID)
	}
	c.emitEmptyIfDrained()
	return true
}

// MoveTab moves a live tab so that it ends up at newIndex. The order
// controller may correct the target. Pending tabs cannot be moved.
func (c *Collection) MoveTab(id entity.TabID, newIndex int) bool {
	from := c.indexOf(id)
	if from < 0 {
		return false
	}
	tab := c.tabs[from]
	newIndex = max(0, min(newIndex, len(c.tabs)-1))

	to := newIndex
	if c.order != nil {
		others := slices.Delete(slices.Clone(c.tabs), from, from+1)
		to = c.order.ValidIndex(tab, others, newIndex, newIndex > from)
	}
	if to == from {
		return true
	}

	c.beginBatch()
	defer c.endBatch()
	c.relocate(tab, to)
	return true
}

// SelectTab selects a live tab.
func (c *Collection) SelectTab(id entity.TabID) bool {
	tab := c.TabByID(id)
	if tab == nil {
		return false
	}
	if c.selected == id {
		return true
	}

	c.beginBatch()
	defer c.endBatch()

	lastID := c.selected
	c.setSelected(tab)
	c.emitSelect(tab, lastID)
	return true
}

// relocate moves a live tab to final index to, keeping the rewound order
// consistent, and queues the move notification.
func (c *Collection) relocate(tab *entity.Tab, to int) {
	from := c.indexOf(tab.ID)
	if from < 0 || from == to {
		return
	}
	c.tabs = slices.Delete(c.tabs, from, from+1)
	c.removeRewound(tab)
	c.insertAt(tab, to)
	if c.tracker != nil {
		c.tracker.tabMoved(tab)
	}

	c.log.Debug().Int("tab_id", int(tab.ID)).Int("from", from).Int("to", to).Msg("tab moved")

	c.emit(func() {
		c.observers.Notify(func(o TabModelObserver) { o.DidMoveTab(tab, to, from) })
	})
}

// reorder applies target as the new live order using relocations.
// target must be a permutation of the live tabs.
func (c *Collection) reorder(target []*entity.Tab) {
	for i, tab := range target {
		if c.tabs[i] != tab {
			c.relocate(tab, i)
		}
	}
}

// insertAt inserts a tab that is neither live nor rewound at live index.
func (c *Collection) insertAt(tab *entity.Tab, index int) {
	c.rewound = slices.Insert(c.rewound, c.rewoundInsertPos(index), tab)
	c.tabs = slices.Insert(c.tabs, index, tab)
}

// rewoundInsertPos maps a live insertion index to a rewound position:
// directly before the live tab currently at index, or at the end.
func (c *Collection) rewoundInsertPos(index int) int {
	if index < len(c.tabs) {
		return c.rewoundIndex(c.tabs[index])
	}
	return len(c.rewound)
}

func (c *Collection) removeRewound(tab *entity.Tab) {
	if i := c.rewoundIndex(tab); i >= 0 {
		c.rewound = slices.Delete(c.rewound, i, i+1)
	}
}

func (c *Collection) rewoundIDs() []entity.TabID {
	ids := make([]entity.TabID, len(c.rewound))
	for i, t := range c.rewound {
		ids[i] = t.ID
	}
	return ids
}

func (c *Collection) setSelected(tab *entity.Tab) {
	if tab == nil {
		c.selected = entity.InvalidTabID
		return
	}
	c.selected = tab.ID
	if c.tracker != nil {
		c.tracker.tabSelected(tab)
	}
}

func (c *Collection) emitSelect(tab *entity.Tab, lastID entity.TabID) {
	c.emit(func() {
		c.observers.Notify(func(o TabModelObserver) { o.DidSelectTab(tab, lastID) })
	})
}

func (c *Collection) emitEmptyIfDrained() {
	if !c.incognito || len(c.rewound) > 0 {
		return
	}
	c.emit(func() {
		c.incognitoObservers.Notify(func(o IncognitoObserver) { o.DidBecomeEmpty() })
	})
}

// beginBatch defers notifications until the matching endBatch.
func (c *Collection) beginBatch() {
	c.batchDepth++
}

// endBatch flushes queued notifications once the outermost batch ends.
func (c *Collection) endBatch() {
	c.batchDepth--
	if c.batchDepth > 0 {
		return
	}
	// Suppliers are part of the applied state observers may read.
	c.publish()
	for len(c.queue) > 0 {
		queued := c.queue
		c.queue = nil
		for _, fn := range queued {
			fn()
		}
	}
	c.publish()
}

func (c *Collection) publish() {
	c.count.set(len(c.tabs))
	c.current.set(c.CurrentTab())
}

// emit queues fn while a batch is open and runs it immediately otherwise.
func (c *Collection) emit(fn func()) {
	if c.batchDepth > 0 {
		c.queue = append(c.queue, fn)
		return
	}
	fn()
}
