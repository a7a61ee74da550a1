package tabmodel

import "github.com/bnema/tabstrip/internal/domain/entity"

// EmptyTabModel is a TabModel with no tabs that ignores every mutation.
// It stands in for a browsing context that has not been created yet.
type EmptyTabModel struct {
	incognito bool
	count     *Supplier[int]
	current   *Supplier[*entity.Tab]
}

// NewEmptyTabModel returns an empty model.
func NewEmptyTabModel(incognito bool) *EmptyTabModel {
	return &EmptyTabModel{
		incognito: incognito,
		count:     NewSupplier(0),
		current:   NewSupplier[*entity.Tab](nil),
	}
}

func (m *EmptyTabModel) IsIncognito() bool                  { return m.incognito }
func (m *EmptyTabModel) Count() int                         { return 0 }
func (m *EmptyTabModel) TabAt(int) *entity.Tab              { return nil }
func (m *EmptyTabModel) IndexOf(*entity.Tab) int            { return -1 }
func (m *EmptyTabModel) IsActiveModel() bool                { return false }
func (m *EmptyTabModel) Index() int                         { return -1 }
func (m *EmptyTabModel) CurrentTab() *entity.Tab            { return nil }
func (m *EmptyTabModel) TabByID(entity.TabID) *entity.Tab   { return nil }
func (m *EmptyTabModel) ComprehensiveModel() TabList        { return m }
func (m *EmptyTabModel) IsClosurePending(entity.TabID) bool { return false }
func (m *EmptyTabModel) PendingClosures() []*entity.Tab     { return nil }

func (m *EmptyTabModel) NextTabIfClosed(entity.TabID, bool) entity.TabID {
	return entity.InvalidTabID
}

func (m *EmptyTabModel) AddTab(*entity.Tab, int, entity.TabLaunchType, entity.TabCreationState) {}
func (m *EmptyTabModel) RemoveTab(*entity.Tab) bool                                             { return false }
func (m *EmptyTabModel) CloseTabs(entity.ClosureParams) bool                                    { return false }
func (m *EmptyTabModel) CommitTabClosure(entity.TabID) bool                                     { return false }
func (m *EmptyTabModel) CommitAllTabClosures()                                                  {}
func (m *EmptyTabModel) CancelTabClosure(entity.TabID) bool                                     { return false }
func (m *EmptyTabModel) MoveTab(entity.TabID, int) bool                                         { return false }
func (m *EmptyTabModel) SelectTab(entity.TabID) bool                                            { return false }
func (m *EmptyTabModel) AddObserver(TabModelObserver) bool                                      { return false }
func (m *EmptyTabModel) RemoveObserver(TabModelObserver) bool                                   { return false }

func (m *EmptyTabModel) CountSupplier() *Supplier[int]              { return m.count }
func (m *EmptyTabModel) CurrentTabSupplier() *Supplier[*entity.Tab] { return m.current }
