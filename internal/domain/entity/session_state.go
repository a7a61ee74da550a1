package entity

import "time"

// SessionStateVersion is the current schema version for session state.
// Increment when making breaking changes to the serialization format.
const SessionStateVersion = 1

// SessionState is a snapshot of the normal tab model of a session.
// This is serialized to JSON and stored in the database. Incognito tabs are
// never part of it.
type SessionState struct {
	Version        int             `json:"version"`
	SessionID      SessionID       `json:"session_id"`
	Tabs           []TabSnapshot   `json:"tabs"`
	Groups         []GroupSnapshot `json:"groups"`
	ActiveTabIndex int             `json:"active_tab_index"`
	SavedAt        time.Time       `json:"saved_at"`
}

// TabSnapshot captures the state of a single tab.
type TabSnapshot struct {
	ID       TabID      `json:"id"`
	URL      string     `json:"url"`
	Title    string     `json:"title"`
	GroupID  TabGroupID `json:"group_id,omitempty"`
	ParentID TabID      `json:"parent_id"`
	IsPinned bool       `json:"is_pinned"`
}

// GroupSnapshot captures the metadata of a tab group.
type GroupSnapshot struct {
	ID        TabGroupID    `json:"id"`
	Title     string        `json:"title"`
	Color     TabGroupColor `json:"color"`
	Collapsed bool          `json:"collapsed"`
	Synced    bool          `json:"synced"`
	Shared    bool          `json:"shared"`
	Retained  bool          `json:"retained"`
	Hidden    bool          `json:"hidden"`
}

// SnapshotFromTabs creates a SessionState from live tabs in display order.
// Tabs that ShouldSkipPersisting are dropped; the active index is remapped to
// the kept tabs and falls back to 0.
func SnapshotFromTabs(
	sessionID SessionID,
	tabs []*Tab,
	active TabID,
	groups map[TabGroupID]TabGroupMetadata,
	savedAt time.Time,
) *SessionState {
	state := &SessionState{
		Version:   SessionStateVersion,
		SessionID: sessionID,
		Tabs:      make([]TabSnapshot, 0, len(tabs)),
		Groups:    make([]GroupSnapshot, 0, len(groups)),
		SavedAt:   savedAt,
	}

	seen := make(map[TabGroupID]struct{}, len(groups))
	for _, tab := range tabs {
		if tab == nil || tab.Incognito || tab.ShouldSkipPersisting() {
			continue
		}
		if tab.ID == active {
			state.ActiveTabIndex = len(state.Tabs)
		}
		state.Tabs = append(state.Tabs, snapshotTab(tab))

		if !tab.IsGrouped() {
			continue
		}
		if _, ok := seen[tab.GroupID]; ok {
			continue
		}
		seen[tab.GroupID] = struct{}{}
		state.Groups = append(state.Groups, snapshotGroup(tab.GroupID, groups[tab.GroupID]))
	}

	// Metadata of hidden or retained groups without tabs goes last.
	for id, meta := range groups {
		if _, ok := seen[id]; ok || !meta.Persists() {
			continue
		}
		state.Groups = append(state.Groups, snapshotGroup(id, meta))
	}
	return state
}

func snapshotTab(tab *Tab) TabSnapshot {
	return TabSnapshot{
		ID:       tab.ID,
		URL:      tab.URL,
		Title:    tab.Title,
		GroupID:  tab.GroupID,
		ParentID: tab.ParentID,
		IsPinned: tab.IsPinned,
	}
}

func snapshotGroup(id TabGroupID, meta TabGroupMetadata) GroupSnapshot {
	return GroupSnapshot{
		ID:        id,
		Title:     meta.Title,
		Color:     meta.Color,
		Collapsed: meta.Collapsed,
		Synced:    meta.Synced,
		Shared:    meta.Shared,
		Retained:  meta.Retained,
		Hidden:    meta.Hidden,
	}
}

// Metadata converts the snapshot back into group metadata.
func (g GroupSnapshot) Metadata() TabGroupMetadata {
	return TabGroupMetadata{
		Title:     g.Title,
		Color:     g.Color,
		Collapsed: g.Collapsed,
		Synced:    g.Synced,
		Shared:    g.Shared,
		Retained:  g.Retained,
		Hidden:    g.Hidden,
	}
}

// GroupCount returns the number of groups with at least one tab.
func (s *SessionState) GroupCount() int {
	seen := make(map[TabGroupID]struct{})
	for _, tab := range s.Tabs {
		if tab.GroupID != NoTabGroup {
			seen[tab.GroupID] = struct{}{}
		}
	}
	return len(seen)
}

// SessionInfo provides summary information for session listings.
type SessionInfo struct {
	Session    *Session
	State      *SessionState
	TabCount   int
	GroupCount int
	IsCurrent  bool
	UpdatedAt  time.Time
}
