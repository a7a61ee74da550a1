package usecase

import (
	"github.com/bnema/tabstrip/internal/application/port"
	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/domain/tabmodel"
)

// GroupDialogPolicy warns before destroying groups that live beyond this
// device. Destroying a shared group outranks destroying a synced one; a synced
// group that is only hidden needs no warning.
type GroupDialogPolicy struct{}

// DialogFor implements port.DialogPolicy.
func (GroupDialogPolicy) DialogFor(destroyed []port.GroupDestruction) entity.DialogType {
	dialog := entity.DialogNone
	for _, d := range destroyed {
		if d.Metadata.Shared {
			return entity.DialogCollaborationDestruction
		}
		if d.Metadata.Synced && !d.Hiding {
			dialog = entity.DialogSyncDestruction
		}
	}
	return dialog
}

func destructions(filter *tabmodel.GroupFilter, ids []entity.TabGroupID, hiding bool) []port.GroupDestruction {
	out := make([]port.GroupDestruction, 0, len(ids))
	for _, id := range ids {
		meta, _ := filter.TabGroupMetadata(id)
		out = append(out, port.GroupDestruction{GroupID: id, Metadata: meta, Hiding: hiding})
	}
	return out
}

var _ port.DialogPolicy = GroupDialogPolicy{}
