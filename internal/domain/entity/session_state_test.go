package entity_test

import (
	"testing"
	"time"

	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotFromTabs_SkipsNewTabPagesAndRemapsActive(t *testing.T) {
	savedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	ntp := entity.NewTab(1, entity.NewTabPageURL)
	pinnedNTP := entity.NewTab(2, entity.NewTabPageURL)
	pinnedNTP.IsPinned = true
	site := entity.NewTab(3, "https://example.com")
	site.Title = "Example"

	state := entity.SnapshotFromTabs("s1", []*entity.Tab{ntp, pinnedNTP, site}, 3, nil, savedAt)

	require.Len(t, state.Tabs, 2)
	assert.Equal(t, entity.TabID(2), state.Tabs[0].ID)
	assert.Equal(t, entity.TabID(3), state.Tabs[1].ID)
	assert.Equal(t, "Example", state.Tabs[1].Title)
	assert.Equal(t, 1, state.ActiveTabIndex)
	assert.Equal(t, entity.SessionStateVersion, state.Version)
	assert.True(t, state.SavedAt.Equal(savedAt))
	assert.Empty(t, state.Groups)
}

func TestSnapshotFromTabs_GroupsInDisplayOrderThenPersistingMetadata(t *testing.T) {
	a := entity.NewTab(1, "https://a.test")
	a.GroupID = "g-b"
	b := entity.NewTab(2, "https://b.test")
	b.GroupID = "g-a"
	c := entity.NewTab(3, entity.NewTabPageURL)
	c.GroupID = "g-a"

	groups := map[entity.TabGroupID]entity.TabGroupMetadata{
		"g-a":      {Title: "A", Color: entity.TabGroupColorBlue},
		"g-b":      {Title: "B", Color: entity.TabGroupColorRed, Synced: true},
		"g-hidden": {Title: "H", Hidden: true},
		"g-gone":   {Title: "gone"},
	}

	state := entity.SnapshotFromTabs("s1", []*entity.Tab{a, b, c}, entity.InvalidTabID, groups, time.Now())

	require.Len(t, state.Tabs, 3, "grouped new tab pages are kept")
	require.Len(t, state.Groups, 3)
	assert.Equal(t, entity.TabGroupID("g-b"), state.Groups[0].ID)
	assert.True(t, state.Groups[0].Synced)
	assert.Equal(t, entity.TabGroupID("g-a"), state.Groups[1].ID)
	assert.Equal(t, entity.TabGroupID("g-hidden"), state.Groups[2].ID)
	assert.Equal(t, groups["g-hidden"], state.Groups[2].Metadata())
	assert.Equal(t, 2, state.GroupCount())
	assert.Zero(t, state.ActiveTabIndex)
}

func TestSnapshotFromTabs_NeverIncludesIncognitoTabs(t *testing.T) {
	tab := entity.NewTab(1, "https://private.test")
	tab.Incognito = true

	state := entity.SnapshotFromTabs("s1", []*entity.Tab{tab, nil}, 1, nil, time.Now())
	assert.Empty(t, state.Tabs)
}
