package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config status messages with styled output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderPaths lists where configuration, snapshots and logs live.
func (r *ConfigRenderer) RenderPaths(configFile, databaseFile, logDir string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	pathStyle := r.theme.Subtle

	return fmt.Sprintf(
		"\n  %s Config   %s\n  %s Database %s\n  %s Logs     %s\n",
		iconStyle.Render(IconConfig), pathStyle.Render(configFile),
		iconStyle.Render(IconDatabase), pathStyle.Render(databaseFile),
		iconStyle.Render(IconInfo), pathStyle.Render(logDir),
	)
}

// RenderTOML renders the effective configuration with section headers
// highlighted.
func (r *ConfigRenderer) RenderTOML(content []byte) string {
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "[") {
			lines[i] = r.theme.Highlight.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// RenderWritten renders the message shown after writing a config file.
func (r *ConfigRenderer) RenderWritten(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("\n  %s Wrote %s\n", iconStyle.Render(IconCheck), r.theme.Subtle.Render(path))
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)

	return fmt.Sprintf(
		"\n  %s Config error: %v\n",
		iconStyle.Render(IconX),
		err,
	)
}
