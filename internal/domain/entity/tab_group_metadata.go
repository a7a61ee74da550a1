package entity

import "strings"

// TabGroupColor is the display color of a tab group.
type TabGroupColor string

const (
	TabGroupColorGrey   TabGroupColor = "grey"
	TabGroupColorBlue   TabGroupColor = "blue"
	TabGroupColorRed    TabGroupColor = "red"
	TabGroupColorYellow TabGroupColor = "yellow"
	TabGroupColorGreen  TabGroupColor = "green"
	TabGroupColorPink   TabGroupColor = "pink"
	TabGroupColorPurple TabGroupColor = "purple"
	TabGroupColorCyan   TabGroupColor = "cyan"
	TabGroupColorOrange TabGroupColor = "orange"
)

// DefaultTabGroupColor is reported for groups without a color.
const DefaultTabGroupColor = TabGroupColorGrey

// TabGroupColors lists every color in picker order.
func TabGroupColors() []TabGroupColor {
	return []TabGroupColor{
		TabGroupColorGrey,
		TabGroupColorBlue,
		TabGroupColorRed,
		TabGroupColorYellow,
		TabGroupColorGreen,
		TabGroupColorPink,
		TabGroupColorPurple,
		TabGroupColorCyan,
		TabGroupColorOrange,
	}
}

// ParseTabGroupColor resolves a color name case-insensitively.
func ParseTabGroupColor(name string) (TabGroupColor, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range TabGroupColors() {
		if string(c) == name {
			return c, true
		}
	}
	return DefaultTabGroupColor, false
}

// TabGroupMetadata holds display and sync state for a group.
type TabGroupMetadata struct {
	Title     string
	Color     TabGroupColor
	Collapsed bool

	// Synced groups are mirrored by a sync service; destroying them warns.
	Synced bool
	// Shared groups have collaborators; destroying them warns.
	Shared bool
	// Retained metadata outlives the last local tab, e.g. a synced group
	// with no tabs on this device.
	Retained bool
	// Hidden is set when the group's tabs were closed with group hiding; the
	// metadata outlives the tabs until a tab joins the group again.
	Hidden bool
}

// Persists reports whether the metadata survives an empty group.
func (m TabGroupMetadata) Persists() bool {
	return m.Retained || m.Hidden
}
