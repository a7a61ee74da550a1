package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/tabstrip/internal/domain/entity"
)

// CountBadge renders "n <unit>" with a plural s when needed.
func (t *Theme) CountBadge(n int, unit string) string {
	text := fmt.Sprintf("%d %s", n, unit)
	if n != 1 {
		text += "s"
	}
	return t.BadgeMuted.Render(text)
}

// AccentBadge renders a badge with accent color.
func (t *Theme) AccentBadge(text string) string {
	return t.Badge.Render(text)
}

// MutedBadge renders a badge with muted colors.
func (t *Theme) MutedBadge(text string) string {
	return t.BadgeMuted.Render(text)
}

// StatusBadge renders a status badge with custom colors.
func (t *Theme) StatusBadge(text string, fg, bg lipgloss.Color) string {
	style := lipgloss.NewStyle().
		Foreground(fg).
		Background(bg).
		Padding(0, 1)
	return style.Render(text)
}

// GroupBadge renders a group chip in the group's color.
func (t *Theme) GroupBadge(label string, color entity.TabGroupColor) string {
	return t.StatusBadge(label, t.Background, t.GroupColor(color))
}

// DialogBadge renders the dialog a confirmation asked for.
func (t *Theme) DialogBadge(d entity.DialogType) string {
	switch d {
	case entity.DialogCollaborationDestruction:
		return t.StatusBadge(d.String(), t.Background, t.Error)
	case entity.DialogSyncDestruction:
		return t.StatusBadge(d.String(), t.Background, t.Warning)
	default:
		return t.MutedBadge(d.String())
	}
}
