package styles

import (
	"errors"
	"fmt"

	"github.com/bnema/tabstrip/internal/application/scenario"
)

// ReplayRenderer renders scenario replay progress.
type ReplayRenderer struct {
	theme *Theme
}

func NewReplayRenderer(theme *Theme) *ReplayRenderer {
	return &ReplayRenderer{theme: theme}
}

// RenderHeader announces a scenario.
func (r *ReplayRenderer) RenderHeader(name string, steps int) string {
	return fmt.Sprintf("%s %s %s",
		r.theme.Highlight.Render(IconTab),
		r.theme.Title.Render(name),
		r.theme.CountBadge(steps, "step"),
	)
}

// RenderStep renders one step result on a single line.
func (r *ReplayRenderer) RenderStep(res scenario.StepResult) string {
	return "  " + r.theme.Subtle.Render(res.String())
}

// RenderPassed renders the summary line of a passing scenario.
func (r *ReplayRenderer) RenderPassed(report *scenario.Report) string {
	return fmt.Sprintf("%s %s passed",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(report.Name),
	)
}

// RenderFailed renders the failing step of a scenario.
func (r *ReplayRenderer) RenderFailed(name string, err error) string {
	var stepErr *scenario.StepError
	if errors.As(err, &stepErr) {
		return fmt.Sprintf("%s %s failed at step %d (%s)\n    %s",
			r.theme.ErrorStyle.Render(IconX),
			r.theme.Highlight.Render(name),
			stepErr.Index,
			stepErr.Op,
			r.theme.ErrorStyle.Render(stepErr.Err.Error()),
		)
	}
	return fmt.Sprintf("%s %s: %v", r.theme.ErrorStyle.Render(IconX), r.theme.Highlight.Render(name), err)
}

// RenderSummary renders the totals of a replay run.
func (r *ReplayRenderer) RenderSummary(passed, failed int) string {
	style := r.theme.SuccessStyle
	if failed > 0 {
		style = r.theme.ErrorStyle
	}
	return style.Render(fmt.Sprintf("%d passed, %d failed", passed, failed))
}
