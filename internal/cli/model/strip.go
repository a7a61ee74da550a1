package model

import (
	"github.com/bnema/tabstrip/internal/cli/styles"
	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/domain/tabmodel"
	taburl "github.com/bnema/tabstrip/internal/domain/url"
)

// BuildStrip prepares the tabs of filter for rendering. A nil filter yields
// an empty strip.
func BuildStrip(filter *tabmodel.GroupFilter, incognito bool) styles.Strip {
	strip := styles.Strip{Incognito: incognito}
	if filter == nil {
		return strip
	}

	model := filter.Model()
	current := model.CurrentTab()
	groups := make(map[entity.TabGroupID]*styles.StripGroup)

	for _, tab := range model.Tabs() {
		st := stripTab(tab)
		st.Selected = tab == current
		if tab.IsGrouped() {
			g, ok := groups[tab.GroupID]
			if !ok {
				g = &styles.StripGroup{
					ID:        tab.GroupID,
					Title:     filter.TabGroupTitle(tab.GroupID),
					Color:     filter.TabGroupColor(tab.GroupID),
					Collapsed: filter.TabGroupCollapsed(tab.GroupID),
					Size:      filter.TabCountForGroup(tab.GroupID),
				}
				groups[tab.GroupID] = g
			}
			st.Group = g
		}
		strip.Tabs = append(strip.Tabs, st)
	}

	for _, tab := range model.PendingClosures() {
		strip.Pending = append(strip.Pending, stripTab(tab))
	}
	return strip
}

// stripTab labels untitled tabs with their host rather than the full URL.
func stripTab(tab *entity.Tab) styles.StripTab {
	title := tab.DisplayTitle()
	if tab.Title == "" {
		if host := taburl.Host(tab.URL); host != "" {
			title = host
		}
	}
	return styles.StripTab{
		ID:     tab.ID,
		Title:  title,
		Pinned: tab.IsPinned,
	}
}
