package tabmodel

import "github.com/bnema/tabstrip/internal/domain/entity"

// TabGroupMetadata returns a copy of the metadata of group id.
func (f *GroupFilter) TabGroupMetadata(id entity.TabGroupID) (entity.TabGroupMetadata, bool) {
	if m := f.metadata[id]; m != nil {
		return *m, true
	}
	return entity.TabGroupMetadata{}, false
}

// AllTabGroupMetadata returns a copy of every metadata entry, including
// entries that outlived their group.
func (f *GroupFilter) AllTabGroupMetadata() map[entity.TabGroupID]entity.TabGroupMetadata {
	out := make(map[entity.TabGroupID]entity.TabGroupMetadata, len(f.metadata))
	for id, m := range f.metadata {
		out[id] = *m
	}
	return out
}

// TabGroupTitle returns the title of group id, empty when unknown.
func (f *GroupFilter) TabGroupTitle(id entity.TabGroupID) string {
	if m := f.metadata[id]; m != nil {
		return m.Title
	}
	return ""
}

// TabGroupColor returns the color of group id, the default color when unknown.
func (f *GroupFilter) TabGroupColor(id entity.TabGroupID) entity.TabGroupColor {
	if m := f.metadata[id]; m != nil && m.Color != "" {
		return m.Color
	}
	return f.defaultColor
}

// TabGroupCollapsed reports whether group id is collapsed, false when unknown.
func (f *GroupFilter) TabGroupCollapsed(id entity.TabGroupID) bool {
	if m := f.metadata[id]; m != nil {
		return m.Collapsed
	}
	return false
}

func (f *GroupFilter) SetTabGroupTitle(id entity.TabGroupID, title string) bool {
	return f.updateMetadata(id, func(m *entity.TabGroupMetadata) { m.Title = title })
}

func (f *GroupFilter) SetTabGroupColor(id entity.TabGroupID, color entity.TabGroupColor) bool {
	return f.updateMetadata(id, func(m *entity.TabGroupMetadata) { m.Color = color })
}

func (f *GroupFilter) SetTabGroupCollapsed(id entity.TabGroupID, collapsed bool) bool {
	return f.updateMetadata(id, func(m *entity.TabGroupMetadata) { m.Collapsed = collapsed })
}

func (f *GroupFilter) SetTabGroupSynced(id entity.TabGroupID, synced bool) bool {
	return f.updateMetadata(id, func(m *entity.TabGroupMetadata) { m.Synced = synced })
}

func (f *GroupFilter) SetTabGroupShared(id entity.TabGroupID, shared bool) bool {
	return f.updateMetadata(id, func(m *entity.TabGroupMetadata) { m.Shared = shared })
}

// SetTabGroupRetained marks metadata as outliving the group's last tab.
// Clearing it on a group without tabs drops the metadata.
func (f *GroupFilter) SetTabGroupRetained(id entity.TabGroupID, retained bool) bool {
	return f.updateMetadata(id, func(m *entity.TabGroupMetadata) { m.Retained = retained })
}

// ApplyTabGroupMetadata replaces the metadata of a tracked group, or stores
// metadata that persists on its own. Hidden only sticks to groups without tabs.
func (f *GroupFilter) ApplyTabGroupMetadata(id entity.TabGroupID, meta entity.TabGroupMetadata) bool {
	if id == entity.NoTabGroup {
		return false
	}
	if f.metadata[id] == nil {
		if !meta.Persists() {
			return false
		}
		f.metadata[id] = &entity.TabGroupMetadata{}
	}
	return f.updateMetadata(id, func(m *entity.TabGroupMetadata) {
		*m = meta
		m.Hidden = meta.Hidden && !f.TabGroupExists(id)
	})
}

// updateMetadata applies fn to existing metadata and notifies on change.
func (f *GroupFilter) updateMetadata(id entity.TabGroupID, fn func(*entity.TabGroupMetadata)) bool {
	m := f.metadata[id]
	if m == nil {
		return false
	}
	before := *m
	fn(m)
	if *m == before {
		return true
	}
	if !f.TabGroupExists(id) && !m.Persists() {
		delete(f.metadata, id)
	}

	snapshot := *m
	f.model.beginBatch()
	defer f.model.endBatch()
	f.model.emit(func() {
		f.observers.Notify(func(o TabGroupObserver) { o.DidChangeTabGroupMetadata(id, snapshot) })
	})
	return true
}
