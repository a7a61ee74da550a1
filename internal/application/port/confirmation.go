package port

import "github.com/bnema/tabstrip/internal/domain/entity"

// ConfirmationListener follows a destructive action through its optional
// confirmation dialog. WillShowDialog always comes first, followed by
// exactly one OnConfirmationDialogResult.
type ConfirmationListener interface {
	WillShowDialog(dialog entity.DialogType, willSkip bool)
	OnConfirmationDialogResult(dialog entity.DialogType, result entity.ConfirmationResult)
}

// GroupDestruction describes a group that an action would leave without any
// live tab.
type GroupDestruction struct {
	GroupID  entity.TabGroupID
	Metadata entity.TabGroupMetadata
	Hiding   bool
}

// DialogPolicy picks the dialog warranted by destroying groups.
type DialogPolicy interface {
	DialogFor(destroyed []GroupDestruction) entity.DialogType
}
