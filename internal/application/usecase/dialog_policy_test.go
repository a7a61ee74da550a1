package usecase_test

import (
	"testing"

	"github.com/bnema/tabstrip/internal/application/port"
	"github.com/bnema/tabstrip/internal/application/usecase"
	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestGroupDialogPolicy_DialogFor(t *testing.T) {
	synced := entity.TabGroupMetadata{Synced: true}
	shared := entity.TabGroupMetadata{Shared: true, Synced: true}

	tests := []struct {
		name      string
		destroyed []port.GroupDestruction
		want      entity.DialogType
	}{
		{name: "nothing destroyed", want: entity.DialogNone},
		{
			name:      "local group",
			destroyed: []port.GroupDestruction{{GroupID: "a"}},
			want:      entity.DialogNone,
		},
		{
			name:      "synced group",
			destroyed: []port.GroupDestruction{{GroupID: "a", Metadata: synced}},
			want:      entity.DialogSyncDestruction,
		},
		{
			name:      "synced group hidden",
			destroyed: []port.GroupDestruction{{GroupID: "a", Metadata: synced, Hiding: true}},
			want:      entity.DialogNone,
		},
		{
			name:      "shared group hidden",
			destroyed: []port.GroupDestruction{{GroupID: "a", Metadata: shared, Hiding: true}},
			want:      entity.DialogCollaborationDestruction,
		},
		{
			name: "shared outranks synced",
			destroyed: []port.GroupDestruction{
				{GroupID: "a", Metadata: synced},
				{GroupID: "b", Metadata: shared},
			},
			want: entity.DialogCollaborationDestruction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.GroupDialogPolicy{}.DialogFor(tt.destroyed))
		})
	}
}
