package entity

import "slices"

// ClosureKind selects which tabs a closure request targets.
type ClosureKind int

const (
	CloseSingleTab ClosureKind = iota
	CloseTabList
	CloseAllTabs
)

// String implements fmt.Stringer.
func (k ClosureKind) String() string {
	switch k {
	case CloseSingleTab:
		return "single"
	case CloseTabList:
		return "list"
	case CloseAllTabs:
		return "all"
	default:
		return "unknown"
	}
}

// ClosureParams describes a close request. Values are immutable once built.
type ClosureParams struct {
	kind             ClosureKind
	tabs             []*Tab
	allowUndo        bool
	uponExit         bool
	closeWholeGroups bool
	hideTabGroups    bool
}

// ClosureOption customizes ClosureParams at construction.
type ClosureOption func(*ClosureParams)

// WithUndo allows or forbids undoing the closure.
func WithUndo(allow bool) ClosureOption {
	return func(p *ClosureParams) { p.allowUndo = allow }
}

// WithUponExit selects strictly positional selection after the closure.
func WithUponExit(uponExit bool) ClosureOption {
	return func(p *ClosureParams) { p.uponExit = uponExit }
}

// WithWholeGroups expands every target to all tabs of its group.
func WithWholeGroups(whole bool) ClosureOption {
	return func(p *ClosureParams) { p.closeWholeGroups = whole }
}

// WithHideTabGroups keeps closed groups' metadata instead of deleting it.
func WithHideTabGroups(hide bool) ClosureOption {
	return func(p *ClosureParams) { p.hideTabGroups = hide }
}

// CloseTab builds a single-tab closure. Undo is allowed by default.
func CloseTab(tab *Tab, opts ...ClosureOption) ClosureParams {
	return newClosureParams(CloseSingleTab, []*Tab{tab}, opts)
}

// CloseTabs builds a list closure. Undo is allowed by default.
func CloseTabs(tabs []*Tab, opts ...ClosureOption) ClosureParams {
	return newClosureParams(CloseTabList, slices.Clone(tabs), opts)
}

// CloseAll builds an all-tabs closure. Undo is allowed by default.
func CloseAll(opts ...ClosureOption) ClosureParams {
	return newClosureParams(CloseAllTabs, nil, opts)
}

func newClosureParams(kind ClosureKind, tabs []*Tab, opts []ClosureOption) ClosureParams {
	p := ClosureParams{
		kind:      kind,
		tabs:      tabs,
		allowUndo: true,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Kind returns the closure kind.
func (p ClosureParams) Kind() ClosureKind { return p.kind }

// Tabs returns a copy of the explicit targets (empty for CloseAllTabs).
func (p ClosureParams) Tabs() []*Tab { return slices.Clone(p.tabs) }

// AllowUndo reports whether closed tabs become pending closures.
func (p ClosureParams) AllowUndo() bool { return p.allowUndo }

// UponExit reports whether selection ignores opener heuristics.
func (p ClosureParams) UponExit() bool { return p.uponExit }

// CloseWholeGroups reports whether targets expand to their groups.
func (p ClosureParams) CloseWholeGroups() bool { return p.closeWholeGroups }

// HideTabGroups reports whether closed groups keep their metadata.
func (p ClosureParams) HideTabGroups() bool { return p.hideTabGroups }

// WithTabs returns a copy targeting tabs as a list closure.
func (p ClosureParams) WithTabs(tabs []*Tab) ClosureParams {
	p.kind = CloseTabList
	p.tabs = slices.Clone(tabs)
	return p
}

// UndoGroupMetadata describes a group closure that can be undone as a unit.
type UndoGroupMetadata struct {
	GroupID   TabGroupID
	Incognito bool
	Hiding    bool
}
