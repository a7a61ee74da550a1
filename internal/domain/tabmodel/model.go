// Package tabmodel holds the authoritative in-memory tab model: ordered tab
// collections, tab groups layered on top of them, pending closures and the
// observer fan-out that reports every mutation.
//
// All types in this package are meant to be used from a single owner
// goroutine. Nothing here blocks or locks.
package tabmodel

import "github.com/bnema/tabstrip/internal/domain/entity"

// TabList is a read-only ordered view of tabs.
type TabList interface {
	IsIncognito() bool
	Count() int
	TabAt(index int) *entity.Tab
	IndexOf(tab *entity.Tab) int
}

// TabModel is the mutation and query surface of one browsing context.
// *Collection and EmptyTabModel implement it.
type TabModel interface {
	TabList

	IsActiveModel() bool
	Index() int
	CurrentTab() *entity.Tab
	TabByID(id entity.TabID) *entity.Tab
	ComprehensiveModel() TabList
	IsClosurePending(id entity.TabID) bool
	PendingClosures() []*entity.Tab
	NextTabIfClosed(id entity.TabID, uponExit bool) entity.TabID

	AddTab(tab *entity.Tab, index int, launchType entity.TabLaunchType, state entity.TabCreationState)
	RemoveTab(tab *entity.Tab) bool
	CloseTabs(params entity.ClosureParams) bool
	CommitTabClosure(id entity.TabID) bool
	CommitAllTabClosures()
	CancelTabClosure(id entity.TabID) bool
	MoveTab(id entity.TabID, newIndex int) bool
	SelectTab(id entity.TabID) bool

	AddObserver(o TabModelObserver) bool
	RemoveObserver(o TabModelObserver) bool
	CountSupplier() *Supplier[int]
	CurrentTabSupplier() *Supplier[*entity.Tab]
}

// OrderController corrects insertion and move targets.
// others is the live order without tab; requested and the result are
// insertion indices into others.
type OrderController interface {
	ValidIndex(tab *entity.Tab, others []*entity.Tab, requested int, movingRight bool) int
}

// membershipTracker keeps derived structures in sync with a Collection.
// Hooks run after the collection state is updated and before any observer.
type membershipTracker interface {
	tabAdded(tab *entity.Tab)
	tabRestored(tab *entity.Tab)
	tabMoved(tab *entity.Tab)
	tabDropped(tab *entity.Tab)
	tabSelected(tab *entity.Tab)
	verify() error
}

var (
	_ TabModel = (*Collection)(nil)
	_ TabModel = (*EmptyTabModel)(nil)
)
