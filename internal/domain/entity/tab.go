package entity

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// TabID uniquely identifies a tab within a browsing session.
type TabID int

// InvalidTabID is the sentinel for "no tab".
const InvalidTabID TabID = -1

// String implements fmt.Stringer.
func (id TabID) String() string {
	return strconv.Itoa(int(id))
}

// IsValid reports whether id refers to a tab.
func (id TabID) IsValid() bool {
	return id >= 0
}

// NewTabPageURL is the canonical address of the new tab page.
const NewTabPageURL = "about:newtab"

var newTabPageURLs = map[string]struct{}{
	"about:newtab":           {},
	"about:home":             {},
	"chrome://newtab":        {},
	"chrome-native://newtab": {},
	"dumb://home":            {},
}

// Tab represents a browser tab as seen by the tab model.
// The model owns only membership and ordering; content lives elsewhere.
type Tab struct {
	ID        TabID
	GroupID   TabGroupID // NoTabGroup when ungrouped
	ParentID  TabID      // Opener tab, InvalidTabID when none
	URL       string
	Title     string
	IsPinned  bool
	Incognito bool
	CreatedAt time.Time

	closing   bool
	destroyed bool
}

// NewTab creates an ungrouped tab without opener.
func NewTab(id TabID, rawURL string) *Tab {
	return &Tab{
		ID:        id,
		ParentID:  InvalidTabID,
		URL:       rawURL,
		CreatedAt: time.Now(),
	}
}

// DisplayTitle returns the title, falling back to URL or "New Tab".
func (t *Tab) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	if t.URL != "" && !t.IsNewTabPage() {
		return t.URL
	}
	return "New Tab"
}

// IsClosing reports whether the tab has been closed (pending or committed).
func (t *Tab) IsClosing() bool {
	return t.closing
}

// SetClosing sets the closing flag.
func (t *Tab) SetClosing(closing bool) {
	t.closing = closing
}

// IsDestroyed reports whether the tab was permanently closed.
func (t *Tab) IsDestroyed() bool {
	return t.destroyed
}

// Destroy marks the tab as permanently closed. Irreversible.
func (t *Tab) Destroy() {
	t.closing = true
	t.destroyed = true
}

// IsGrouped reports whether the tab belongs to a tab group.
func (t *Tab) IsGrouped() bool {
	return t.GroupID != NoTabGroup
}

// IsNewTabPage reports whether the tab shows the new tab page.
func (t *Tab) IsNewTabPage() bool {
	return IsNewTabPageURL(t.URL)
}

// ShouldSkipPersisting reports whether serializers may drop this tab.
// Only unpinned, ungrouped new tab pages are skippable.
func (t *Tab) ShouldSkipPersisting() bool {
	return !t.IsPinned && t.IsNewTabPage() && !t.IsGrouped()
}

// IsNewTabPageURL reports whether rawURL addresses the new tab page.
func IsNewTabPageURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	key := strings.ToLower(u.Scheme) + ":" + strings.TrimSuffix(strings.ToLower(u.Opaque), "/")
	if u.Host != "" {
		key = strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host)
	}
	_, ok := newTabPageURLs[key]
	return ok
}

// TabLaunchType describes why a tab was added.
type TabLaunchType int

const (
	LaunchFromLink TabLaunchType = iota
	LaunchFromExternalApp
	LaunchFromChromeUI
	LaunchFromRestore
	LaunchFromLongPressBackground
	LaunchFromTabGroupUI
	LaunchFromReparenting
)

var launchTypeNames = map[TabLaunchType]string{
	LaunchFromLink:                "link",
	LaunchFromExternalApp:         "external_app",
	LaunchFromChromeUI:            "chrome_ui",
	LaunchFromRestore:             "restore",
	LaunchFromLongPressBackground: "long_press_background",
	LaunchFromTabGroupUI:          "tab_group_ui",
	LaunchFromReparenting:         "reparenting",
}

// String implements fmt.Stringer.
func (l TabLaunchType) String() string {
	if name, ok := launchTypeNames[l]; ok {
		return name
	}
	return "unknown"
}

// ParseTabLaunchType resolves a launch type name, defaulting to LaunchFromChromeUI.
func ParseTabLaunchType(name string) TabLaunchType {
	for l, n := range launchTypeNames {
		if n == name {
			return l
		}
	}
	return LaunchFromChromeUI
}

// TabCreationState describes how a tab comes to life.
type TabCreationState int

const (
	LiveInForeground TabCreationState = iota
	LiveInBackground
	FrozenOnRestore
	FrozenForLazyLoad
)

// SelectsOnAdd reports whether a tab added with this state takes the selection.
func (s TabCreationState) SelectsOnAdd() bool {
	return s == LiveInForeground
}
