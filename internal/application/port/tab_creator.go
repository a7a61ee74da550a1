package port

import "github.com/bnema/tabstrip/internal/domain/entity"

// NewTabParams describes a tab the user asked for.
type NewTabParams struct {
	URL        string
	Parent     *entity.Tab // opener, may be nil
	Index      int         // -1 appends
	LaunchType entity.TabLaunchType
	State      entity.TabCreationState
	Incognito  bool
	GroupID    entity.TabGroupID // joins this group when non-empty
}

// FrozenTabState is the persisted form a tab is recreated from.
type FrozenTabState struct {
	URL       string
	Title     string
	GroupID   entity.TabGroupID
	ParentID  entity.TabID
	IsPinned  bool
	Incognito bool
}

// TabCreator materializes tabs and adds them to the matching tab model.
// A nil result means no tab was created.
type TabCreator interface {
	CreateNewTab(params NewTabParams) *entity.Tab
	CreateFrozenTab(state FrozenTabState, id entity.TabID, index int) *entity.Tab
}
