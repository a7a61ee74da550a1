package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bnema/tabstrip/internal/domain/entity"
)

const defaultMaxTitle = 18

// StripGroup is a tab group as the strip shows it.
type StripGroup struct {
	ID        entity.TabGroupID
	Title     string
	Color     entity.TabGroupColor
	Collapsed bool
	Size      int
}

// Label returns the group title, or its size when untitled.
func (g StripGroup) Label() string {
	if g.Title == "" {
		return fmt.Sprintf("%d tabs", g.Size)
	}
	return fmt.Sprintf("%s (%d)", g.Title, g.Size)
}

// StripTab is one tab as the strip shows it.
type StripTab struct {
	ID       entity.TabID
	Title    string
	Pinned   bool
	Selected bool
	// Group is nil for ungrouped tabs.
	Group *StripGroup
}

// Strip is a tab model prepared for rendering.
type Strip struct {
	Tabs      []StripTab
	Pending   []StripTab
	Incognito bool
}

// StripRenderer draws a Strip as a single row of tabs with group chips.
type StripRenderer struct {
	theme    *Theme
	MaxTitle int
}

// NewStripRenderer creates a strip renderer with the given theme.
func NewStripRenderer(theme *Theme) *StripRenderer {
	return &StripRenderer{theme: theme, MaxTitle: defaultMaxTitle}
}

// Render draws the strip. A positive width pins the bar width.
func (r *StripRenderer) Render(s Strip, width int) string {
	if len(s.Tabs) == 0 {
		empty := r.theme.Subtle.Render("no tabs")
		if s.Incognito {
			empty = r.incognitoBadge() + " " + empty
		}
		return r.bar(empty, width)
	}

	var cells []string
	if s.Incognito {
		cells = append(cells, r.incognitoBadge())
	}

	var current entity.TabGroupID
	for _, tab := range s.Tabs {
		if tab.Group == nil {
			current = entity.NoTabGroup
			cells = append(cells, r.renderTab(tab))
			continue
		}
		if tab.Group.ID != current {
			current = tab.Group.ID
			cells = append(cells, r.renderGroup(*tab.Group))
		}
		if tab.Group.Collapsed && !tab.Selected {
			continue
		}
		cells = append(cells, r.renderTab(tab))
	}

	return r.bar(lipgloss.JoinHorizontal(lipgloss.Top, join(cells, " ")...), width)
}

// RenderPending lists tabs whose closure can still be undone.
func (r *StripRenderer) RenderPending(pending []StripTab) string {
	if len(pending) == 0 {
		return ""
	}
	titles := make([]string, 0, len(pending))
	for _, tab := range pending {
		titles = append(titles, r.label(tab))
	}
	return fmt.Sprintf("%s %s %s",
		r.theme.WarningStyle.Render(IconUndo),
		r.theme.Subtle.Render("closed:"),
		r.theme.ClosingTab.Render(strings.Join(titles, ", ")),
	)
}

func (r *StripRenderer) renderTab(tab StripTab) string {
	style := r.theme.InactiveTab
	if tab.Group != nil {
		style = style.Foreground(r.theme.GroupColor(tab.Group.Color))
	}
	if tab.Selected {
		style = r.theme.ActiveTab
	}
	return style.Render(r.label(tab))
}

func (r *StripRenderer) renderGroup(g StripGroup) string {
	label := g.Label()
	if g.Collapsed {
		label = IconCollapse + " " + label
	}
	return r.theme.GroupBadge(label, g.Color)
}

func (r *StripRenderer) label(tab StripTab) string {
	title := tab.Title
	if r.MaxTitle > 0 {
		title = ansi.Truncate(title, r.MaxTitle, "…")
	}
	label := fmt.Sprintf("%d %s", tab.ID, title)
	if tab.Pinned {
		label = IconPin + " " + label
	}
	return label
}

func (r *StripRenderer) incognitoBadge() string {
	return r.theme.StatusBadge(IconIncognito+" incognito", r.theme.Text, r.theme.SurfaceVariant)
}

func (r *StripRenderer) bar(row string, width int) string {
	if width > 0 {
		return r.theme.TabBar.Width(width).Render(row)
	}
	return r.theme.TabBar.Render(row)
}

// join inserts a separator between items.
func join(items []string, sep string) []string {
	if len(items) == 0 {
		return items
	}
	result := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			result = append(result, sep)
		}
		result = append(result, item)
	}
	return result
}
