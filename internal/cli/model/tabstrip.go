// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/tabstrip/internal/application/usecase"
	"github.com/bnema/tabstrip/internal/bootstrap"
	"github.com/bnema/tabstrip/internal/cli/styles"
	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/domain/tabmodel"
	"github.com/bnema/tabstrip/internal/infrastructure/config"
	"github.com/bnema/tabstrip/internal/logging"
)

const expiryTickInterval = 500 * time.Millisecond

// TabStripModel is the Bubble Tea model of the interactive tab strip.
type TabStripModel struct {
	// UI components
	help    help.Model
	keys    styles.StripKeyMap
	strip   *styles.StripRenderer
	confirm *styles.ConfirmModel
	// resolve settles the confirmation the dialog was opened for.
	resolve func(accepted bool) bool

	// State
	width         int
	statusMessage string

	// Dependencies
	ctx   context.Context
	ws    *bootstrap.Workspace
	theme *styles.Theme
}

// NewTabStripModel creates the tab strip model for a running workspace.
func NewTabStripModel(ctx context.Context, theme *styles.Theme, ws *bootstrap.Workspace) TabStripModel {
	return TabStripModel{
		help:  styles.NewStyledHelp(theme),
		keys:  styles.DefaultStripKeyMap(),
		strip: styles.NewStripRenderer(theme),
		width: 80,
		ctx:   ctx,
		ws:    ws,
		theme: theme,
	}
}

// expiryTickMsg asks the model to commit closures past their undo window.
type expiryTickMsg time.Time

func expiryTick() tea.Cmd {
	return tea.Tick(expiryTickInterval, func(t time.Time) tea.Msg {
		return expiryTickMsg(t)
	})
}

// ConfigChangedMsg carries a configuration reloaded from disk.
type ConfigChangedMsg struct {
	Config *config.Config
}

// Init implements tea.Model.
func (m TabStripModel) Init() tea.Cmd {
	return expiryTick()
}

// Update implements tea.Model.
func (m TabStripModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case expiryTickMsg:
		m.ws.CommitExpiredClosures()
		return m, expiryTick()

	case ConfigChangedMsg:
		if msg.Config != nil {
			m.ws.Config = msg.Config
			m.statusMessage = "Configuration reloaded"
		}
		return m, nil
	}

	// Handle confirm modal
	if m.confirm != nil {
		return m.handleConfirmModal(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m TabStripModel) handleConfirmModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	confirm, cmd := m.confirm.Update(msg)
	m.confirm = &confirm
	if !m.confirm.Done() {
		return m, cmd
	}

	accepted := m.confirm.Result()
	if m.resolve != nil {
		m.resolve(accepted)
	}
	if accepted {
		m.statusMessage = ""
	} else {
		m.statusMessage = "Canceled"
	}
	m.confirm = nil
	m.resolve = nil
	return m, cmd
}

// ask opens a dialog for c when it is still waiting for the user.
func (m *TabStripModel) ask(c *usecase.Confirmation, action string, resolve func(bool) bool) {
	if c == nil || !c.Pending() {
		return
	}
	confirm := styles.NewConfirm(m.theme, c.Dialog(), action)
	m.confirm = &confirm
	m.resolve = resolve
}

func (m TabStripModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMessage = ""
	ctx := m.ctx
	log := logging.FromContext(ctx)

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if key.Matches(msg, m.keys.Incognito) {
		m.ws.Tabs.SelectModel(!m.ws.Tabs.IsIncognitoSelected())
		return m, nil
	}
	if key.Matches(msg, m.keys.NewTab) {
		m.report(m.createTab(entity.InvalidTabID))
		return m, nil
	}
	if key.Matches(msg, m.keys.Undo) {
		if restored := m.ws.Manage.UndoClose(ctx); len(restored) == 0 {
			m.statusMessage = "Nothing to undo"
		}
		return m, nil
	}

	filter := m.ws.Tabs.CurrentFilter()
	if filter == nil {
		return m, nil
	}
	current := filter.Model().CurrentTab()

	if key.Matches(msg, m.keys.CloseAll) {
		remover := m.ws.Remover()
		c := remover.CloseTabs(ctx, entity.CloseAll(entity.WithUndo(m.ws.Config.Closure.UndoEnabled)), true, nil)
		m.ask(c, "Close all tabs including", func(ok bool) bool { return remover.Resolve(ctx, c, ok) })
		return m, nil
	}
	if current == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		m.report(m.ws.Manage.SwitchNext(ctx))

	case key.Matches(msg, m.keys.Prev):
		m.report(m.ws.Manage.SwitchPrevious(ctx))

	case key.Matches(msg, m.keys.MoveRight):
		m.report(m.ws.Manage.Move(ctx, current.ID, filter.Model().IndexOf(current)+1))

	case key.Matches(msg, m.keys.MoveLeft):
		if index := filter.Model().IndexOf(current); index > 0 {
			m.report(m.ws.Manage.Move(ctx, current.ID, index-1))
		}

	case key.Matches(msg, m.keys.OpenChild):
		m.report(m.createTab(current.ID))

	case key.Matches(msg, m.keys.Pin):
		m.report(m.ws.Manage.Pin(ctx, current.ID, !current.IsPinned))

	case key.Matches(msg, m.keys.Close):
		remover := m.ws.Remover()
		c := remover.CloseTabs(ctx, entity.CloseTab(current, entity.WithUndo(m.ws.Config.Closure.UndoEnabled)), true, nil)
		m.ask(c, "Close the last tab of", func(ok bool) bool { return remover.Resolve(ctx, c, ok) })

	case key.Matches(msg, m.keys.Group):
		next := nextTab(filter, current)
		if next == nil || !filter.MergeTabsToGroup(next.ID, current.ID) {
			m.statusMessage = "Nothing to group with"
		}

	case key.Matches(msg, m.keys.Single):
		if current.IsGrouped() {
			m.statusMessage = "Tab is already grouped"
			break
		}
		filter.CreateSingleTabGroup(current.ID)

	case key.Matches(msg, m.keys.Ungroup):
		ungrouper := m.ws.Ungrouper()
		c := ungrouper.UngroupTabs(ctx, []entity.TabID{current.ID}, m.ws.Config.Groups.UngroupTrailing, true, nil)
		if c == nil {
			m.statusMessage = "Tab is not grouped"
			break
		}
		m.ask(c, "Remove the last tab from", func(ok bool) bool { return ungrouper.Resolve(ctx, c, ok) })

	case key.Matches(msg, m.keys.Collapse):
		if current.IsGrouped() {
			filter.SetTabGroupCollapsed(current.GroupID, !filter.TabGroupCollapsed(current.GroupID))
		}

	case key.Matches(msg, m.keys.Color):
		if current.IsGrouped() {
			filter.SetTabGroupColor(current.GroupID, nextColor(filter.TabGroupColor(current.GroupID)))
		}
	}

	log.Debug().Str("key", msg.String()).Msg("key handled")
	return m, nil
}

func (m *TabStripModel) createTab(parent entity.TabID) error {
	_, err := m.ws.Manage.Create(m.ctx, usecase.CreateTabInput{
		Incognito:       m.ws.Tabs.IsIncognitoSelected(),
		ParentID:        parent,
		GroupWithParent: parent.IsValid(),
		Index:           -1,
	})
	return err
}

func (m *TabStripModel) report(err error) {
	if err != nil {
		m.statusMessage = fmt.Sprintf("Error: %v", err)
	}
}

func nextTab(filter *tabmodel.GroupFilter, tab *entity.Tab) *entity.Tab {
	model := filter.Model()
	return model.TabAt(model.IndexOf(tab) + 1)
}

func nextColor(c entity.TabGroupColor) entity.TabGroupColor {
	colors := entity.TabGroupColors()
	i := slices.Index(colors, c)
	return colors[(i+1)%len(colors)]
}

// View implements tea.Model.
func (m TabStripModel) View() string {
	// Handle confirm modal
	if m.confirm != nil {
		return m.confirm.View()
	}

	t := m.theme
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	incognito := m.ws.Tabs.IsIncognitoSelected()
	filter := m.ws.Tabs.CurrentFilter()
	strip := BuildStrip(filter, incognito)
	b.WriteString(m.strip.Render(strip, m.width))
	b.WriteString("\n")

	if pending := m.strip.RenderPending(strip.Pending); pending != "" {
		b.WriteString(pending)
		b.WriteString("\n")
	}

	if m.statusMessage != "" {
		b.WriteString("\n")
		b.WriteString(t.Subtle.Render(m.statusMessage))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m TabStripModel) renderHeader() string {
	t := m.theme

	iconStyle := lipgloss.NewStyle().Foreground(t.Accent)
	header := iconStyle.Render(styles.IconTab) + t.Title.MarginLeft(1).Render("Tabs")

	normal := m.ws.Tabs.Normal()
	header += "  " + t.CountBadge(normal.Model().Count(), "tab")
	header += " " + t.CountBadge(normal.GroupCount(), "group")
	if m.ws.Session != nil {
		header += "  " + t.Subtle.Render(styles.IconSessionStack+" "+logging.ShortSessionID(string(m.ws.Session.ID)))
	}
	return header
}
