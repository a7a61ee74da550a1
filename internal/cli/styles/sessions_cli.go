package styles

import (
	"fmt"
	"strings"

	"github.com/bnema/tabstrip/internal/application/usecase"
	"github.com/bnema/tabstrip/internal/domain/entity"
)

// SessionsCLIRenderer renders non-interactive CLI output for sessions subcommands
// (e.g. `tabstrip sessions list`, `delete`).
type SessionsCLIRenderer struct {
	theme *Theme
}

func NewSessionsCLIRenderer(theme *Theme) *SessionsCLIRenderer {
	return &SessionsCLIRenderer{theme: theme}
}

func (r *SessionsCLIRenderer) RenderEmptyList() string {
	return r.theme.Subtle.Render("No saved sessions found.")
}

func (r *SessionsCLIRenderer) RenderList(items []entity.SessionInfo, limit int) string {
	if len(items) == 0 {
		return r.RenderEmptyList()
	}

	var b strings.Builder
	title := fmt.Sprintf("%s %s", r.theme.Highlight.Render(IconSessionStack), r.theme.Title.Render("Sessions"))
	b.WriteString(title)
	if limit > 0 {
		b.WriteString(r.theme.Subtle.Render(fmt.Sprintf(" (showing up to %d)", limit)))
	}
	b.WriteString("\n\n")

	for _, s := range items {
		b.WriteString(r.renderOne(s))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(r.theme.Subtle.Render("Tip: use `tabstrip tui --restore <id>` to reopen a session."))
	return b.String()
}

func (r *SessionsCLIRenderer) renderOne(info entity.SessionInfo) string {
	status := IconStop
	statusStyle := r.theme.Subtle
	switch {
	case info.IsCurrent:
		status = "●"
		statusStyle = r.theme.Highlight
	case info.Session.IsActive():
		status = IconPlay
		statusStyle = r.theme.SuccessStyle
	}

	return fmt.Sprintf("%s %s  %s %s  %s",
		statusStyle.Render(status),
		r.theme.Highlight.Render(string(info.Session.ID)),
		r.theme.CountBadge(info.TabCount, "tab"),
		r.theme.CountBadge(info.GroupCount, "group"),
		r.theme.Subtle.Render(usecase.GetRelativeTime(info.UpdatedAt)),
	)
}

func (r *SessionsCLIRenderer) RenderDeleted(sessionID entity.SessionID) string {
	return fmt.Sprintf("%s Session %s deleted.",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(string(sessionID)),
	)
}

func (r *SessionsCLIRenderer) RenderRestored(out *usecase.ApplyOutput) string {
	if out == nil {
		return r.theme.Subtle.Render("Nothing to restore.")
	}
	msg := fmt.Sprintf("%s Restored %d tabs", r.theme.SuccessStyle.Render(IconRestore), len(out.Tabs))
	if out.Skipped > 0 {
		msg += r.theme.WarningStyle.Render(fmt.Sprintf(" (%d skipped)", out.Skipped))
	}
	return msg
}

func (r *SessionsCLIRenderer) RenderError(err error) string {
	return fmt.Sprintf("%s %v", r.theme.ErrorStyle.Render(IconX), err)
}
