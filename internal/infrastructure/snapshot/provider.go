package snapshot

import (
	"time"

	"github.com/bnema/tabstrip/internal/application/port"
	"github.com/bnema/tabstrip/internal/application/usecase"
	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/domain/tabmodel"
)

// FilterProvider captures the state of one group filter.
type FilterProvider struct {
	sessionID entity.SessionID
	filter    *tabmodel.GroupFilter
	clock     func() time.Time
}

// NewFilterProvider creates a provider for filter. A nil clock uses time.Now.
func NewFilterProvider(sessionID entity.SessionID, filter *tabmodel.GroupFilter, clock func() time.Time) *FilterProvider {
	if clock == nil {
		clock = time.Now
	}
	return &FilterProvider{sessionID: sessionID, filter: filter, clock: clock}
}

func (p *FilterProvider) SessionState() *entity.SessionState {
	return usecase.CaptureSessionState(p.sessionID, p.filter, p.clock())
}

func (p *FilterProvider) SessionID() entity.SessionID { return p.sessionID }

var _ port.SessionStateProvider = (*FilterProvider)(nil)

// Watch marks s dirty on every model or group event of filter. The returned
// function detaches the observers.
func Watch(s *Service, filter *tabmodel.GroupFilter) func() {
	mo := &modelObserver{mark: s.MarkDirty}
	gobs := &groupObserver{mark: s.MarkDirty}
	filter.Model().AddObserver(mo)
	filter.AddObserver(gobs)
	return func() {
		filter.Model().RemoveObserver(mo)
		filter.RemoveObserver(gobs)
	}
}

type modelObserver struct {
	mark func()
}

func (o *modelObserver) DidAddTab(*entity.Tab, entity.TabLaunchType, entity.TabCreationState) {
	o.mark()
}
func (o *modelObserver) DidSelectTab(*entity.Tab, entity.TabID)   { o.mark() }
func (o *modelObserver) DidMoveTab(*entity.Tab, int, int)         { o.mark() }
func (o *modelObserver) OnTabsPendingClosure([]*entity.Tab, bool) { o.mark() }
func (o *modelObserver) OnTabClosureUndone(*entity.Tab)           { o.mark() }
func (o *modelObserver) OnTabClosureCommitted(*entity.Tab)        { o.mark() }
func (o *modelObserver) DidCloseTabs([]*entity.Tab)               { o.mark() }
func (o *modelObserver) DidRemoveTab(*entity.Tab)                 { o.mark() }

type groupObserver struct {
	tabmodel.EmptyTabGroupObserver
	mark func()
}

func (o *groupObserver) DidMergeTabToGroup(*entity.Tab, entity.TabGroupID)   { o.mark() }
func (o *groupObserver) DidMoveTabOutOfGroup(*entity.Tab, entity.TabGroupID) { o.mark() }
func (o *groupObserver) DidChangeTabGroupMetadata(entity.TabGroupID, entity.TabGroupMetadata) {
	o.mark()
}
func (o *groupObserver) DidRemoveTabGroup(entity.TabGroupID) { o.mark() }
