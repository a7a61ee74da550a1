package usecase

import (
	"context"
	"slices"

	"github.com/bnema/tabstrip/internal/application/port"
	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/domain/tabmodel"
	"github.com/bnema/tabstrip/internal/logging"
)

// TabUngrouper moves tabs out of their groups, asking for confirmation when
// that would destroy a synced or shared group.
type TabUngrouper interface {
	UngroupTabs(ctx context.Context, ids []entity.TabID, trailing, allowDialog bool, listener port.ConfirmationListener) *Confirmation
	UngroupTabGroup(ctx context.Context, id entity.TabGroupID, trailing, allowDialog bool, listener port.ConfirmationListener) *Confirmation
	Resolve(ctx context.Context, c *Confirmation, accepted bool) bool
}

type groupQuerier interface {
	Model() *tabmodel.Collection
	TabsInGroup(id entity.TabGroupID) []*entity.Tab
}

type groupMover interface {
	MoveTabOutOfGroupInDirection(tabID entity.TabID, trailing bool) bool
}

// groupedTabs returns the live grouped tabs among ids, in list order and
// without duplicates.
func groupedTabs[F groupQuerier](f F, ids []entity.TabID) []*entity.Tab {
	out := make([]*entity.Tab, 0, len(ids))
	for _, id := range ids {
		tab := f.Model().TabByID(id)
		if tab == nil || !tab.IsGrouped() || slices.Contains(out, tab) {
			continue
		}
		out = append(out, tab)
	}
	return out
}

// moveOutOfGroups ungroups ids one by one. Trailing moves start from the end
// of the list so the tabs keep their relative order after the group.
func moveOutOfGroups[F interface {
	groupQuerier
	groupMover
}](f F, ids []entity.TabID, trailing bool) int {
	tabs := groupedTabs(f, ids)
	if trailing {
		slices.Reverse(tabs)
	}
	moved := 0
	for _, tab := range tabs {
		if f.MoveTabOutOfGroupInDirection(tab.ID, trailing) {
			moved++
		}
	}
	return moved
}

// UngroupTabsUseCase is the TabUngrouper of one group filter.
type UngroupTabsUseCase struct {
	filter *tabmodel.GroupFilter
	policy port.DialogPolicy
}

// NewUngroupTabsUseCase creates an UngroupTabsUseCase. A nil policy selects
// GroupDialogPolicy. It panics without a filter.
func NewUngroupTabsUseCase(filter *tabmodel.GroupFilter, policy port.DialogPolicy) *UngroupTabsUseCase {
	if filter == nil {
		panic("usecase: UngroupTabsUseCase requires a tab group filter")
	}
	if policy == nil {
		policy = GroupDialogPolicy{}
	}
	return &UngroupTabsUseCase{filter: filter, policy: policy}
}

// UngroupTabs moves the listed tabs out of their groups, before the rest of
// the group or after it when trailing. Ids that are not live grouped tabs
// are ignored; when none is left it returns nil without telling listener.
func (uc *UngroupTabsUseCase) UngroupTabs(
	ctx context.Context,
	ids []entity.TabID,
	trailing, allowDialog bool,
	listener port.ConfirmationListener,
) *Confirmation {
	log := logging.FromContext(ctx)

	tabs := groupedTabs(uc.filter, ids)
	if len(tabs) == 0 {
		log.Debug().Int("requested", len(ids)).Msg("nothing to ungroup")
		return nil
	}

	destroyed := uc.filter.EmptiedGroups(tabs)
	c := &Confirmation{
		action:   actionUngroup,
		listener: listener,
		trailing: trailing,
		dialog:   uc.policy.DialogFor(destructions(uc.filter, destroyed, false)),
	}
	for _, tab := range tabs {
		c.ungroup = append(c.ungroup, tab.ID)
	}

	log.Debug().
		Int("tab_count", len(c.ungroup)).
		Bool("trailing", trailing).
		Int("destroyed_groups", len(destroyed)).
		Str("dialog", c.dialog.String()).
		Msg("ungroup requested")

	if c.announce(allowDialog) {
		uc.apply(ctx, c)
		c.finish()
	}
	return c
}

// UngroupTabGroup ungroups every live tab of group id.
func (uc *UngroupTabsUseCase) UngroupTabGroup(
	ctx context.Context,
	id entity.TabGroupID,
	trailing, allowDialog bool,
	listener port.ConfirmationListener,
) *Confirmation {
	ctx = logging.WithGroupID(ctx, id.Short())
	members := uc.filter.TabsInGroup(id)
	ids := make([]entity.TabID, 0, len(members))
	for _, tab := range members {
		ids = append(ids, tab.ID)
	}
	return uc.UngroupTabs(ctx, ids, trailing, allowDialog, listener)
}

// Resolve completes an ungroup confirmation waiting for the user.
func (uc *UngroupTabsUseCase) Resolve(ctx context.Context, c *Confirmation, accepted bool) bool {
	if c == nil || c.action != actionUngroup || !c.settle(accepted) {
		return false
	}

	logging.FromContext(ctx).Debug().
		Str("dialog", c.dialog.String()).
		Str("result", c.result.String()).
		Msg("ungroup confirmation resolved")

	if accepted {
		uc.apply(ctx, c)
	}
	c.finish()
	return accepted
}

func (uc *UngroupTabsUseCase) apply(ctx context.Context, c *Confirmation) {
	moved := moveOutOfGroups(uc.filter, c.ungroup, c.trailing)
	c.applied = moved > 0

	logging.FromContext(ctx).Info().
		Int("moved", moved).
		Bool("trailing", c.trailing).
		Msg("tabs ungrouped")
}

// EmptyTabUngrouper is the TabUngrouper of a model that cannot hold tabs.
type EmptyTabUngrouper struct{}

func (EmptyTabUngrouper) UngroupTabs(context.Context, []entity.TabID, bool, bool, port.ConfirmationListener) *Confirmation {
	return nil
}

func (EmptyTabUngrouper) UngroupTabGroup(context.Context, entity.TabGroupID, bool, bool, port.ConfirmationListener) *Confirmation {
	return nil
}

func (EmptyTabUngrouper) Resolve(context.Context, *Confirmation, bool) bool { return false }

var (
	_ TabUngrouper = (*UngroupTabsUseCase)(nil)
	_ TabUngrouper = EmptyTabUngrouper{}
)
