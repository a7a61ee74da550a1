package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/tabstrip/internal/domain/entity"
)

func TestTab_ShouldSkipPersisting(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		pinned  bool
		groupID entity.TabGroupID
		want    bool
	}{
		{name: "plain new tab page", url: entity.NewTabPageURL, want: true},
		{name: "home alias", url: "about:home", want: true},
		{name: "chrome newtab with trailing slash", url: "chrome://newtab/", want: true},
		{name: "pinned new tab page", url: entity.NewTabPageURL, pinned: true, want: false},
		{name: "grouped new tab page", url: entity.NewTabPageURL, groupID: "g1", want: false},
		{name: "regular page", url: "https://example.com", want: false},
		{name: "empty url", url: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab := entity.NewTab(1, tt.url)
			tab.IsPinned = tt.pinned
			tab.GroupID = tt.groupID

			assert.Equal(t, tt.want, tab.ShouldSkipPersisting())
		})
	}
}

func TestTab_ClosingAndDestroyed(t *testing.T) {
	tab := entity.NewTab(1, "https://example.com")
	assert.False(t, tab.IsClosing())
	assert.Equal(t, entity.InvalidTabID, tab.ParentID)

	tab.SetClosing(true)
	assert.True(t, tab.IsClosing())
	assert.False(t, tab.IsDestroyed())

	tab.Destroy()
	assert.True(t, tab.IsClosing())
	assert.True(t, tab.IsDestroyed())
}

func TestTab_DisplayTitle(t *testing.T) {
	tab := entity.NewTab(1, entity.NewTabPageURL)
	assert.Equal(t, "New Tab", tab.DisplayTitle())

	tab.URL = "https://go.dev"
	assert.Equal(t, "https://go.dev", tab.DisplayTitle())

	tab.Title = "Go"
	assert.Equal(t, "Go", tab.DisplayTitle())
}

func TestTabLaunchType_RoundTrip(t *testing.T) {
	assert.Equal(t, entity.LaunchFromRestore, entity.ParseTabLaunchType(entity.LaunchFromRestore.String()))
	assert.Equal(t, entity.LaunchFromChromeUI, entity.ParseTabLaunchType("bogus"))
	assert.Equal(t, "unknown", entity.TabLaunchType(99).String())
}

func TestTabCreationState_SelectsOnAdd(t *testing.T) {
	assert.True(t, entity.LiveInForeground.SelectsOnAdd())
	assert.False(t, entity.LiveInBackground.SelectsOnAdd())
	assert.False(t, entity.FrozenOnRestore.SelectsOnAdd())
}
