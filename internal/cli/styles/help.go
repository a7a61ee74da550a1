package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap defines keybindings that can be rendered as help.
type KeyMap interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// StripKeyMap defines keybindings for the interactive tab strip.
type StripKeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	MoveRight key.Binding
	MoveLeft  key.Binding
	NewTab    key.Binding
	OpenChild key.Binding
	Close     key.Binding
	CloseAll  key.Binding
	Undo      key.Binding
	Group     key.Binding
	Single    key.Binding
	Ungroup   key.Binding
	Collapse  key.Binding
	Color     key.Binding
	Pin       key.Binding
	Incognito key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k StripKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.NewTab, k.Close, k.Undo, k.Group, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k StripKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.MoveRight, k.MoveLeft},
		{k.NewTab, k.OpenChild, k.Pin, k.Incognito},
		{k.Close, k.CloseAll, k.Undo},
		{k.Group, k.Single, k.Ungroup, k.Collapse, k.Color},
		{k.Help, k.Quit},
	}
}

// DefaultStripKeyMap returns the default tab strip keybindings.
func DefaultStripKeyMap() StripKeyMap {
	return StripKeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next tab"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev tab"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys("shift+right", "L"),
			key.WithHelp("L", "move right"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("shift+left", "H"),
			key.WithHelp("H", "move left"),
		),
		NewTab: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "new tab"),
		),
		OpenChild: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open from tab"),
		),
		Close: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close"),
		),
		CloseAll: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "close all"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo close"),
		),
		Group: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "group with next"),
		),
		Single: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "new group"),
		),
		Ungroup: key.NewBinding(
			key.WithKeys("U"),
			key.WithHelp("U", "leave group"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "collapse group"),
		),
		Color: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "cycle color"),
		),
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pin"),
		),
		Incognito: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "incognito"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewStyledHelp creates a themed help model.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Text)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	return h
}
