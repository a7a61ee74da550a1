package usecase

import (
	"context"

	"github.com/bnema/tabstrip/internal/application/port"
	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/domain/tabmodel"
	"github.com/bnema/tabstrip/internal/logging"
)

// TabRemover closes and removes tabs, asking for confirmation when closing
// would destroy a synced or shared group.
type TabRemover interface {
	CloseTabs(ctx context.Context, params entity.ClosureParams, allowDialog bool, listener port.ConfirmationListener) *Confirmation
	PrepareCloseTabs(ctx context.Context, params entity.ClosureParams, allowDialog bool, listener port.ConfirmationListener) *Confirmation
	ForceCloseTabs(ctx context.Context, params entity.ClosureParams) bool
	RemoveTab(ctx context.Context, tab *entity.Tab, allowDialog bool, listener port.ConfirmationListener) *Confirmation
	Resolve(ctx context.Context, c *Confirmation, accepted bool) bool
}

// RemoveTabsUseCase is the TabRemover of one group filter.
type RemoveTabsUseCase struct {
	filter *tabmodel.GroupFilter
	policy port.DialogPolicy
}

// NewRemoveTabsUseCase creates a RemoveTabsUseCase. A nil policy selects
// GroupDialogPolicy. It panics without a filter.
func NewRemoveTabsUseCase(filter *tabmodel.GroupFilter, policy port.DialogPolicy) *RemoveTabsUseCase {
	if filter == nil {
		panic("usecase: RemoveTabsUseCase requires a tab group filter")
	}
	if policy == nil {
		policy = GroupDialogPolicy{}
	}
	return &RemoveTabsUseCase{filter: filter, policy: policy}
}

// CloseTabs closes the tabs params names. Without a dialog the closure is
// applied before returning; otherwise the returned confirmation waits for
// Resolve.
func (uc *RemoveTabsUseCase) CloseTabs(
	ctx context.Context,
	params entity.ClosureParams,
	allowDialog bool,
	listener port.ConfirmationListener,
) *Confirmation {
	c := uc.closeConfirmation(ctx, actionCloseTabs, params, listener)
	if c.announce(allowDialog) {
		uc.apply(ctx, c)
		c.finish()
	}
	return c
}

// PrepareCloseTabs runs the confirmation flow for params without closing
// anything. Once the confirmation proceeds the caller closes Params() with
// ForceCloseTabs.
func (uc *RemoveTabsUseCase) PrepareCloseTabs(
	ctx context.Context,
	params entity.ClosureParams,
	allowDialog bool,
	listener port.ConfirmationListener,
) *Confirmation {
	c := uc.closeConfirmation(ctx, actionPrepareClose, params, listener)
	if c.announce(allowDialog) {
		c.finish()
	}
	return c
}

func (uc *RemoveTabsUseCase) closeConfirmation(
	ctx context.Context,
	action confirmationAction,
	params entity.ClosureParams,
	listener port.ConfirmationListener,
) *Confirmation {
	destroyed := uc.filter.ClosingGroups(params)
	c := &Confirmation{
		action:   action,
		params:   params,
		listener: listener,
		dialog:   uc.policy.DialogFor(destructions(uc.filter, destroyed, params.HideTabGroups())),
	}

	logging.FromContext(ctx).Debug().
		Str("action", action.String()).
		Str("kind", params.Kind().String()).
		Int("tab_count", len(params.Tabs())).
		Int("destroyed_groups", len(destroyed)).
		Str("dialog", c.dialog.String()).
		Msg("closure requested")
	return c
}

// ForceCloseTabs closes params without any confirmation.
func (uc *RemoveTabsUseCase) ForceCloseTabs(ctx context.Context, params entity.ClosureParams) bool {
	closed := uc.filter.CloseTabs(params)

	logging.FromContext(ctx).Info().
		Str("kind", params.Kind().String()).
		Bool("allow_undo", params.AllowUndo()).
		Bool("hide_groups", params.HideTabGroups()).
		Bool("closed", closed).
		Int("remaining", uc.filter.Model().Count()).
		Msg("tabs closed")
	return closed
}

// RemoveTab detaches a live tab from the model without destroying it.
// A tab that is not live still gets its listener notices, with no dialog,
// and the returned confirmation reports nothing applied.
func (uc *RemoveTabsUseCase) RemoveTab(
	ctx context.Context,
	tab *entity.Tab,
	allowDialog bool,
	listener port.ConfirmationListener,
) *Confirmation {
	log := logging.FromContext(ctx)
	if tab == nil || uc.filter.Model().TabByID(tab.ID) != tab {
		log.Debug().Msg("remove requested for a tab that is not live")
		c := &Confirmation{action: actionRemoveTab, listener: listener, dialog: entity.DialogNone}
		c.announce(allowDialog)
		c.finish()
		return c
	}

	destroyed := uc.filter.EmptiedGroups([]*entity.Tab{tab})
	c := &Confirmation{
		action:   actionRemoveTab,
		tab:      tab,
		listener: listener,
		dialog:   uc.policy.DialogFor(destructions(uc.filter, destroyed, false)),
	}
	log.Debug().
		Int("tab_id", int(tab.ID)).
		Str("dialog", c.dialog.String()).
		Msg("tab removal requested")

	if c.announce(allowDialog) {
		uc.apply(ctx, c)
		c.finish()
	}
	return c
}

// Resolve completes a confirmation waiting for the user. Accepting applies
// the request unless it was only prepared. It reports whether the request
// proceeds; resolving twice or resolving a foreign confirmation does nothing.
func (uc *RemoveTabsUseCase) Resolve(ctx context.Context, c *Confirmation, accepted bool) bool {
	if c == nil || c.action == actionUngroup || !c.settle(accepted) {
		return false
	}

	logging.FromContext(ctx).Debug().
		Str("action", c.action.String()).
		Str("dialog", c.dialog.String()).
		Str("result", c.result.String()).
		Msg("confirmation resolved")

	if accepted {
		uc.apply(ctx, c)
	}
	c.finish()
	return accepted
}

func (uc *RemoveTabsUseCase) apply(ctx context.Context, c *Confirmation) {
	switch c.action {
	case actionCloseTabs:
		c.applied = uc.ForceCloseTabs(ctx, c.params)
	case actionRemoveTab:
		c.applied = uc.filter.Model().RemoveTab(c.tab)
		logging.FromContext(ctx).Info().
			Int("tab_id", int(c.tab.ID)).
			Bool("removed", c.applied).
			Msg("tab removed")
	}
}

// EmptyTabRemover is the TabRemover of a model that cannot hold tabs.
type EmptyTabRemover struct{}

func (EmptyTabRemover) CloseTabs(context.Context, entity.ClosureParams, bool, port.ConfirmationListener) *Confirmation {
	return nil
}

func (EmptyTabRemover) PrepareCloseTabs(context.Context, entity.ClosureParams, bool, port.ConfirmationListener) *Confirmation {
	return nil
}

func (EmptyTabRemover) ForceCloseTabs(context.Context, entity.ClosureParams) bool { return false }

func (EmptyTabRemover) RemoveTab(context.Context, *entity.Tab, bool, port.ConfirmationListener) *Confirmation {
	return nil
}

func (EmptyTabRemover) Resolve(context.Context, *Confirmation, bool) bool { return false }

var (
	_ TabRemover = (*RemoveTabsUseCase)(nil)
	_ TabRemover = EmptyTabRemover{}
)
