package entity

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// TabGroupID identifies a tab group. Values are opaque tokens.
type TabGroupID string

// NoTabGroup marks an ungrouped tab.
const NoTabGroup TabGroupID = ""

// NotFound is returned by TabGroup.IndexOf for non-members.
const NotFound = -1

// NewTabGroupID mints a fresh group token.
func NewTabGroupID() TabGroupID {
	return TabGroupID(uuid.NewString())
}

// Short returns an abbreviated form for logs and terminal output.
func (id TabGroupID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// TabGroup is an ordered set of tab ids sharing a group identity.
// The internal order mirrors display order; LastShown is always a member
// while the group is non-empty.
type TabGroup struct {
	id        TabGroupID
	tabIDs    []TabID
	lastShown TabID
}

// NewTabGroup creates an empty group.
func NewTabGroup(id TabGroupID) *TabGroup {
	return &TabGroup{
		id:        id,
		tabIDs:    make([]TabID, 0, 4),
		lastShown: InvalidTabID,
	}
}

// ID returns the group identifier.
func (g *TabGroup) ID() TabGroupID {
	return g.id
}

// Add inserts tabID and re-sorts the group to follow order.
// Returns false if tabID was already a member.
func (g *TabGroup) Add(tabID TabID, order []TabID) bool {
	if !tabID.IsValid() {
		panic(fmt.Sprintf("tab group %s: cannot add invalid tab id %d", g.id.Short(), tabID))
	}
	if g.Contains(tabID) {
		return false
	}

	g.tabIDs = append(g.tabIDs, tabID)
	if len(g.tabIDs) == 1 {
		g.lastShown = tabID
		return true
	}

	g.Resync(order)
	return true
}

// Resync reorders members to follow order. Members absent from order keep
// their relative position at the front.
func (g *TabGroup) Resync(order []TabID) {
	for _, id := range order {
		g.MoveToEnd(id)
	}
}

// Remove drops tabID from the group. If it was the last shown member the
// member after it (or else before it) becomes last shown.
func (g *TabGroup) Remove(tabID TabID) bool {
	pos := g.IndexOf(tabID)
	if pos == NotFound {
		return false
	}

	if g.lastShown == tabID {
		switch {
		case pos+1 < len(g.tabIDs):
			g.lastShown = g.tabIDs[pos+1]
		case pos > 0:
			g.lastShown = g.tabIDs[pos-1]
		default:
			g.lastShown = InvalidTabID
		}
	}

	g.tabIDs = slices.Delete(g.tabIDs, pos, pos+1)
	return true
}

// MoveToEnd repositions tabID at the end of the internal order.
func (g *TabGroup) MoveToEnd(tabID TabID) {
	pos := g.IndexOf(tabID)
	if pos == NotFound {
		return
	}
	g.tabIDs = append(slices.Delete(g.tabIDs, pos, pos+1), tabID)
}

// SetLastShown records tabID as the last shown member.
func (g *TabGroup) SetLastShown(tabID TabID) bool {
	if !g.Contains(tabID) {
		return false
	}
	g.lastShown = tabID
	return true
}

// Contains reports membership.
func (g *TabGroup) Contains(tabID TabID) bool {
	return g.IndexOf(tabID) != NotFound
}

// Size returns the member count.
func (g *TabGroup) Size() int {
	return len(g.tabIDs)
}

// TabIDs returns a copy of the members in display order.
func (g *TabGroup) TabIDs() []TabID {
	return slices.Clone(g.tabIDs)
}

// LastShown returns the last shown member or InvalidTabID.
func (g *TabGroup) LastShown() TabID {
	return g.lastShown
}

// FirstTabID returns the first member or InvalidTabID.
func (g *TabGroup) FirstTabID() TabID {
	if len(g.tabIDs) == 0 {
		return InvalidTabID
	}
	return g.tabIDs[0]
}

// LastTabID returns the last member or InvalidTabID.
func (g *TabGroup) LastTabID() TabID {
	if len(g.tabIDs) == 0 {
		return InvalidTabID
	}
	return g.tabIDs[len(g.tabIDs)-1]
}

// IndexOf returns the position of tabID or NotFound.
func (g *TabGroup) IndexOf(tabID TabID) int {
	return slices.Index(g.tabIDs, tabID)
}

// Validate checks the last shown invariant.
func (g *TabGroup) Validate() error {
	if len(g.tabIDs) == 0 {
		if g.lastShown != InvalidTabID {
			return fmt.Errorf("tab group %s: empty group has last shown tab %d", g.id.Short(), g.lastShown)
		}
		return nil
	}
	if !g.Contains(g.lastShown) {
		return fmt.Errorf("tab group %s: last shown tab %d is not a member", g.id.Short(), g.lastShown)
	}
	return nil
}

// Clone returns an independent copy.
func (g *TabGroup) Clone() *TabGroup {
	return &TabGroup{
		id:        g.id,
		tabIDs:    slices.Clone(g.tabIDs),
		lastShown: g.lastShown,
	}
}
