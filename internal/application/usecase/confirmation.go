package usecase

import (
	"github.com/bnema/tabstrip/internal/application/port"
	"github.com/bnema/tabstrip/internal/domain/entity"
)

type confirmationAction int

const (
	actionCloseTabs confirmationAction = iota
	actionPrepareClose
	actionRemoveTab
	actionUngroup
)

func (a confirmationAction) String() string {
	switch a {
	case actionCloseTabs:
		return "close_tabs"
	case actionPrepareClose:
		return "prepare_close"
	case actionRemoveTab:
		return "remove_tab"
	case actionUngroup:
		return "ungroup"
	default:
		return "unknown"
	}
}

// Confirmation tracks one destructive request through its dialog.
// When a dialog is shown the request stays pending until Resolve is called on
// the use case that issued it; never resolving it cancels the request.
type Confirmation struct {
	action   confirmationAction
	dialog   entity.DialogType
	listener port.ConfirmationListener

	params   entity.ClosureParams
	tab      *entity.Tab
	ungroup  []entity.TabID
	trailing bool

	resolved bool
	result   entity.ConfirmationResult
	applied  bool
}

// Dialog returns the dialog the request warranted.
func (c *Confirmation) Dialog() entity.DialogType { return c.dialog }

// Pending reports whether the request is waiting for the user.
func (c *Confirmation) Pending() bool { return !c.resolved }

// Result returns the outcome. Only meaningful once Pending is false.
func (c *Confirmation) Result() entity.ConfirmationResult { return c.result }

// Proceed reports whether the request was resolved and may go ahead.
func (c *Confirmation) Proceed() bool { return c.resolved && c.result.Proceeds() }

// Applied reports whether the model was mutated on behalf of the request.
// Always false for prepared closures; the caller applies those itself.
func (c *Confirmation) Applied() bool { return c.applied }

// Params returns the closure request carried by a close confirmation.
func (c *Confirmation) Params() entity.ClosureParams { return c.params }

// announce notifies the listener and reports whether the request proceeds
// without waiting for a dialog.
func (c *Confirmation) announce(allowDialog bool) bool {
	skip := c.dialog == entity.DialogNone || !allowDialog
	if c.listener != nil {
		c.listener.WillShowDialog(c.dialog, skip)
	}
	if skip {
		c.resolved = true
		c.result = entity.ConfirmationImmediateContinue
	}
	return skip
}

// settle records a user decision. It returns false when the confirmation
// was already resolved.
func (c *Confirmation) settle(accepted bool) bool {
	if c.resolved {
		return false
	}
	c.resolved = true
	c.result = entity.ConfirmationRejected
	if accepted {
		c.result = entity.ConfirmationAccepted
	}
	return true
}

func (c *Confirmation) finish() {
	if c.listener != nil {
		c.listener.OnConfirmationDialogResult(c.dialog, c.result)
	}
}
