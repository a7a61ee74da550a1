package entity

// DialogType is the confirmation dialog a destructive action warrants.
type DialogType int

const (
	DialogNone DialogType = iota
	DialogSyncDestruction
	DialogCollaborationDestruction
)

// String implements fmt.Stringer.
func (d DialogType) String() string {
	switch d {
	case DialogNone:
		return "none"
	case DialogSyncDestruction:
		return "sync"
	case DialogCollaborationDestruction:
		return "collaboration"
	default:
		return "unknown"
	}
}

// ConfirmationResult is the outcome reported after a destructive action.
type ConfirmationResult int

const (
	ConfirmationImmediateContinue ConfirmationResult = iota
	ConfirmationAccepted
	ConfirmationRejected
)

// String implements fmt.Stringer.
func (r ConfirmationResult) String() string {
	switch r {
	case ConfirmationImmediateContinue:
		return "immediate_continue"
	case ConfirmationAccepted:
		return "accepted"
	case ConfirmationRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Proceeds reports whether the action goes ahead.
func (r ConfirmationResult) Proceeds() bool {
	return r != ConfirmationRejected
}
