package tabmodel

import "github.com/bnema/tabstrip/internal/domain/entity"

// TabModelObserver receives tab lifecycle events. Every event is delivered
// after the mutation it describes has been fully applied.
// Embed EmptyTabModelObserver to implement only the methods you need.
type TabModelObserver interface {
	DidAddTab(tab *entity.Tab, launchType entity.TabLaunchType, state entity.TabCreationState)
	DidSelectTab(tab *entity.Tab, lastID entity.TabID)
	DidMoveTab(tab *entity.Tab, newIndex, oldIndex int)
	// OnTabsPendingClosure fires once per undoable closure request.
	OnTabsPendingClosure(tabs []*entity.Tab, isAllTabs bool)
	OnTabClosureUndone(tab *entity.Tab)
	OnTabClosureCommitted(tab *entity.Tab)
	// DidCloseTabs fires once per non-undoable closure request.
	DidCloseTabs(tabs []*entity.Tab)
	// DidRemoveTab fires when a tab is detached without being destroyed.
	DidRemoveTab(tab *entity.Tab)
}

// TabGroupObserver receives group mutations from a GroupFilter.
type TabGroupObserver interface {
	DidCreateTabGroup(groupID entity.TabGroupID)
	DidMergeTabToGroup(tab *entity.Tab, groupID entity.TabGroupID)
	DidMoveTabOutOfGroup(tab *entity.Tab, previousGroupID entity.TabGroupID)
	DidMoveTabGroup(groupID entity.TabGroupID, fromIndex, toIndex int)
	DidChangeTabGroupMetadata(groupID entity.TabGroupID, metadata entity.TabGroupMetadata)
	DidRemoveTabGroup(groupID entity.TabGroupID)
	OnTabGroupClosurePending(metadata entity.UndoGroupMetadata)
}

// IncognitoObserver receives incognito lifecycle events.
type IncognitoObserver interface {
	WasFirstTabCreated()
	DidBecomeEmpty()
}

// EmptyTabModelObserver implements TabModelObserver with no-ops.
type EmptyTabModelObserver struct{}

func (EmptyTabModelObserver) DidAddTab(*entity.Tab, entity.TabLaunchType, entity.TabCreationState) {}
func (EmptyTabModelObserver) DidSelectTab(*entity.Tab, entity.TabID)                               {}
func (EmptyTabModelObserver) DidMoveTab(*entity.Tab, int, int)                                     {}
func (EmptyTabModelObserver) OnTabsPendingClosure([]*entity.Tab, bool)                             {}
func (EmptyTabModelObserver) OnTabClosureUndone(*entity.Tab)                                       {}
func (EmptyTabModelObserver) OnTabClosureCommitted(*entity.Tab)                                    {}
func (EmptyTabModelObserver) DidCloseTabs([]*entity.Tab)                                           {}
func (EmptyTabModelObserver) DidRemoveTab(*entity.Tab)                                             {}

// EmptyTabGroupObserver implements TabGroupObserver with no-ops.
type EmptyTabGroupObserver struct{}

func (EmptyTabGroupObserver) DidCreateTabGroup(entity.TabGroupID)                                  {}
func (EmptyTabGroupObserver) DidMergeTabToGroup(*entity.Tab, entity.TabGroupID)                    {}
func (EmptyTabGroupObserver) DidMoveTabOutOfGroup(*entity.Tab, entity.TabGroupID)                  {}
func (EmptyTabGroupObserver) DidMoveTabGroup(entity.TabGroupID, int, int)                          {}
func (EmptyTabGroupObserver) DidChangeTabGroupMetadata(entity.TabGroupID, entity.TabGroupMetadata) {}
func (EmptyTabGroupObserver) DidRemoveTabGroup(entity.TabGroupID)                                  {}
func (EmptyTabGroupObserver) OnTabGroupClosurePending(entity.UndoGroupMetadata)                    {}
