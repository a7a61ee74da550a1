package scenario

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/tabstrip/internal/application/port"
	"github.com/bnema/tabstrip/internal/application/usecase"
	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/domain/tabmodel"
	"github.com/bnema/tabstrip/internal/logging"
)

var (
	// ErrUnknownOp is returned for a step whose op is not supported.
	ErrUnknownOp = errors.New("unknown op")
	// ErrStepFailed is returned when an operation is rejected by the model.
	ErrStepFailed = errors.New("step failed")
	// ErrInvariant is returned when the model is inconsistent after a step.
	ErrInvariant = errors.New("model invariant violated")
	// ErrExpectation is returned when the model differs from a step's expect block.
	ErrExpectation = errors.New("expectation not met")
)

// StepError reports the step a run stopped at.
type StepError struct {
	Index int
	Op    string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// CreatorFunc builds the tab creator of a scenario session.
type CreatorFunc func(session *tabmodel.Session, clock func() time.Time) port.TabCreator

// Options configures a Runner.
type Options struct {
	Logger zerolog.Logger
	// NewCreator is required by open steps.
	NewCreator CreatorFunc
	// Start is the clock value of the first step. Defaults to 2024-01-01 UTC.
	Start time.Time
}

// Runner replays scenarios.
type Runner struct {
	opts Options
}

// NewRunner creates a Runner.
func NewRunner(opts Options) *Runner {
	if opts.Start.IsZero() {
		opts.Start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return &Runner{opts: opts}
}

// StepResult is the state of the selected model after a step.
type StepResult struct {
	Index     int
	Op        string
	Incognito bool
	Order     []entity.TabID
	Selected  entity.TabID
	Pending   []entity.TabID
	Groups    [][]entity.TabID
	// Dialog is empty when the step raised no confirmation.
	Dialog  string
	Applied bool
}

func (r StepResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %-12s order=%v selected=%d", r.Index, r.Op, r.Order, r.Selected)
	if len(r.Groups) > 0 {
		fmt.Fprintf(&b, " groups=%v", r.Groups)
	}
	if len(r.Pending) > 0 {
		fmt.Fprintf(&b, " pending=%v", r.Pending)
	}
	if r.Dialog != "" {
		fmt.Fprintf(&b, " dialog=%s applied=%t", r.Dialog, r.Applied)
	}
	if r.Incognito {
		b.WriteString(" (incognito)")
	}
	return b.String()
}

// Report holds the results of the steps that ran.
type Report struct {
	Name  string
	Steps []StepResult
}

// Run replays sc against a new session. It stops at the first failing step
// and returns the report up to that step along with a *StepError.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Report, error) {
	if sc == nil || len(sc.Steps) == 0 {
		return nil, ErrNoSteps
	}
	ctx = logging.WithContext(ctx, r.opts.Logger)
	log := logging.FromContext(ctx)

	st, err := r.newRun(sc.Settings)
	if err != nil {
		return nil, err
	}

	report := &Report{Name: sc.Name}
	for i, step := range sc.Steps {
		index := i + 1
		st.now = st.now.Add(time.Millisecond)

		out, err := st.exec(ctx, step)
		if err == nil {
			err = st.verify()
		}
		result := st.result(index, step.Op, out)
		report.Steps = append(report.Steps, result)
		if err == nil && step.Expect != nil {
			err = st.check(step, *step.Expect, result)
		}
		if err != nil {
			log.Debug().Int("step", index).Str("op", step.Op).Err(err).Msg("scenario step failed")
			return report, &StepError{Index: index, Op: step.Op, Err: err}
		}
		log.Debug().Int("step", index).Str("op", step.Op).Msg("scenario step done")
	}

	log.Info().Str("scenario", sc.Name).Int("steps", len(report.Steps)).Msg("scenario passed")
	return report, nil
}

type run struct {
	session  *tabmodel.Session
	creator  port.TabCreator
	tabs     *usecase.ManageTabsUseCase
	now      time.Time
	timeout  time.Duration
	trailing bool
}

// outcome carries the confirmation a step produced, if any.
type outcome struct {
	confirmation *usecase.Confirmation
}

func (r *Runner) newRun(s Settings) (*run, error) {
	color := entity.DefaultTabGroupColor
	if s.DefaultColor != "" {
		c, ok := entity.ParseTabGroupColor(s.DefaultColor)
		if !ok {
			return nil, fmt.Errorf("unknown default color %q", s.DefaultColor)
		}
		color = c
	}

	st := &run{
		now:      r.opts.Start,
		timeout:  time.Duration(s.UndoTimeoutMs) * time.Millisecond,
		trailing: s.UngroupTrailing == nil || *s.UngroupTrailing,
	}
	clock := func() time.Time { return st.now }
	st.session = tabmodel.NewSession(tabmodel.SessionConfig{
		Logger:              r.opts.Logger,
		Clock:               clock,
		StrictPreconditions: s.Strict,
		DefaultGroupColor:   color,
	})
	if r.opts.NewCreator != nil {
		st.creator = r.opts.NewCreator(st.session, clock)
	}
	st.tabs = usecase.NewManageTabsUseCase(st.session, st.creator)
	return st, nil
}

func (st *run) filter() *tabmodel.GroupFilter {
	return st.session.CurrentFilter()
}

func (st *run) model() *tabmodel.Collection {
	return st.filter().Model()
}

func (st *run) live(id int) (*entity.Tab, error) {
	tab := st.model().TabByID(entity.TabID(id))
	if tab == nil {
		return nil, fmt.Errorf("%w: tab %d is not live", ErrStepFailed, id)
	}
	return tab, nil
}

func (st *run) group(tabID int) (entity.TabGroupID, error) {
	tab, err := st.live(tabID)
	if err != nil {
		return entity.NoTabGroup, err
	}
	if !tab.IsGrouped() {
		return entity.NoTabGroup, fmt.Errorf("%w: tab %d is not grouped", ErrStepFailed, tabID)
	}
	return tab.GroupID, nil
}

// targets lists Tab and Tabs, in that order.
func targets(step Step) []entity.TabID {
	var ids []entity.TabID
	if step.Tab != 0 {
		ids = append(ids, entity.TabID(step.Tab))
	}
	for _, id := range step.Tabs {
		ids = append(ids, entity.TabID(id))
	}
	return ids
}

type operation func(st *run, ctx context.Context, step Step) (outcome, error)

var operations = map[string]operation{
	"open":              (*run).open,
	"select":            (*run).selectTab,
	"move":              (*run).move,
	"pin":               (*run).pin,
	"rename":            (*run).rename,
	"close":             (*run).close,
	"remove":            (*run).remove,
	"group":             (*run).groupTabs,
	"single_group":      (*run).singleGroup,
	"ungroup":           (*run).ungroup,
	"move_group":        (*run).moveGroup,
	"set_group":         (*run).setGroup,
	"undo":              (*run).undo,
	"commit":            (*run).commit,
	"tick":              (*run).tick,
	"incognito":         (*run).selectIncognito,
	"normal":            (*run).selectNormal,
	"destroy_incognito": (*run).destroyIncognito,
}

func (st *run) exec(ctx context.Context, step Step) (outcome, error) {
	op, ok := operations[step.Op]
	if !ok {
		return outcome{}, fmt.Errorf("%w %q", ErrUnknownOp, step.Op)
	}
	return op(st, ctx, step)
}

func (st *run) open(ctx context.Context, step Step) (outcome, error) {
	index := -1
	if step.Index != nil {
		index = *step.Index
	}
	parent := entity.InvalidTabID
	if step.Parent != 0 {
		parent = entity.TabID(step.Parent)
	}
	out, err := st.tabs.Create(ctx, usecase.CreateTabInput{
		URL:             step.URL,
		Incognito:       step.Incognito,
		Background:      step.Background,
		ParentID:        parent,
		GroupWithParent: step.GroupWithParent,
		Index:           index,
	})
	if err != nil {
		return outcome{}, fmt.Errorf("%w: %v", ErrStepFailed, err)
	}
	if out.Tab == nil {
		return outcome{}, fmt.Errorf("%w: no tab created", ErrStepFailed)
	}
	return outcome{}, nil
}

func (st *run) selectTab(ctx context.Context, step Step) (outcome, error) {
	if err := st.tabs.Switch(ctx, entity.TabID(step.Tab)); err != nil {
		return outcome{}, fmt.Errorf("%w: %v", ErrStepFailed, err)
	}
	return outcome{}, nil
}

func (st *run) move(ctx context.Context, step Step) (outcome, error) {
	if step.Index == nil {
		return outcome{}, fmt.Errorf("%w: move needs an index", ErrStepFailed)
	}
	if err := st.tabs.Move(ctx, entity.TabID(step.Tab), *step.Index); err != nil {
		return outcome{}, fmt.Errorf("%w: %v", ErrStepFailed, err)
	}
	return outcome{}, nil
}

func (st *run) pin(ctx context.Context, step Step) (outcome, error) {
	pinned := step.Pinned == nil || *step.Pinned
	if err := st.tabs.Pin(ctx, entity.TabID(step.Tab), pinned); err != nil {
		return outcome{}, fmt.Errorf("%w: %v", ErrStepFailed, err)
	}
	return outcome{}, nil
}

func (st *run) rename(ctx context.Context, step Step) (outcome, error) {
	if step.Title == nil {
		return outcome{}, fmt.Errorf("%w: rename needs a title", ErrStepFailed)
	}
	if err := st.tabs.Rename(ctx, entity.TabID(step.Tab), *step.Title); err != nil {
		return outcome{}, fmt.Errorf("%w: %v", ErrStepFailed, err)
	}
	return outcome{}, nil
}

func (st *run) close(ctx context.Context, step Step) (outcome, error) {
	opts := []entity.ClosureOption{
		entity.WithUndo(step.Undo == nil || *step.Undo),
		entity.WithUponExit(step.UponExit),
		entity.WithWholeGroups(step.WholeGroups),
		entity.WithHideTabGroups(step.HideGroups),
	}

	var params entity.ClosureParams
	switch ids := targets(step); {
	case step.All:
		params = entity.CloseAll(opts...)
	case len(ids) == 1 && step.Tab != 0:
		params = entity.CloseTab(st.model().TabByID(ids[0]), opts...)
	default:
		tabs := make([]*entity.Tab, 0, len(ids))
		for _, id := range ids {
			tabs = append(tabs, st.model().TabByID(id))
		}
		params = entity.CloseTabs(tabs, opts...)
	}

	remover := usecase.NewRemoveTabsUseCase(st.filter(), nil)
	c := remover.CloseTabs(ctx, params, step.Answer != "", nil)
	if c.Pending() {
		remover.Resolve(ctx, c, step.Answer == AnswerAccept)
	}
	return outcome{confirmation: c}, nil
}

func (st *run) remove(ctx context.Context, step Step) (outcome, error) {
	tab, err := st.live(step.Tab)
	if err != nil {
		return outcome{}, err
	}
	remover := usecase.NewRemoveTabsUseCase(st.filter(), nil)
	c := remover.RemoveTab(ctx, tab, step.Answer != "", nil)
	if c != nil && c.Pending() {
		remover.Resolve(ctx, c, step.Answer == AnswerAccept)
	}
	return outcome{confirmation: c}, nil
}

func (st *run) groupTabs(_ context.Context, step Step) (outcome, error) {
	if !st.filter().MergeListOfTabsToGroup(targets(step), entity.TabID(step.Into)) {
		return outcome{}, fmt.Errorf("%w: cannot group into tab %d", ErrStepFailed, step.Into)
	}
	return outcome{}, nil
}

func (st *run) singleGroup(_ context.Context, step Step) (outcome, error) {
	if id := st.filter().CreateSingleTabGroup(entity.TabID(step.Tab)); id == entity.NoTabGroup {
		return outcome{}, fmt.Errorf("%w: cannot create a group for tab %d", ErrStepFailed, step.Tab)
	}
	return outcome{}, nil
}

func (st *run) ungroup(ctx context.Context, step Step) (outcome, error) {
	trailing := st.trailing
	if step.Trailing != nil {
		trailing = *step.Trailing
	}
	allowDialog := step.Answer != ""

	ungrouper := usecase.NewUngroupTabsUseCase(st.filter(), nil)
	var c *usecase.Confirmation
	if step.GroupOf != 0 {
		id, err := st.group(step.GroupOf)
		if err != nil {
			return outcome{}, err
		}
		c = ungrouper.UngroupTabGroup(ctx, id, trailing, allowDialog, nil)
	} else {
		c = ungrouper.UngroupTabs(ctx, targets(step), trailing, allowDialog, nil)
	}
	if c != nil && c.Pending() {
		ungrouper.Resolve(ctx, c, step.Answer == AnswerAccept)
	}
	return outcome{confirmation: c}, nil
}

func (st *run) moveGroup(_ context.Context, step Step) (outcome, error) {
	if step.Index == nil {
		return outcome{}, fmt.Errorf("%w: move_group needs an index", ErrStepFailed)
	}
	id, err := st.group(step.GroupOf)
	if err != nil {
		return outcome{}, err
	}
	if !st.filter().MoveGroup(id, *step.Index) {
		return outcome{}, fmt.Errorf("%w: cannot move group of tab %d", ErrStepFailed, step.GroupOf)
	}
	return outcome{}, nil
}

func (st *run) setGroup(_ context.Context, step Step) (outcome, error) {
	id, err := st.group(step.GroupOf)
	if err != nil {
		return outcome{}, err
	}
	f := st.filter()
	if step.Title != nil {
		f.SetTabGroupTitle(id, *step.Title)
	}
	if step.Color != "" {
		color, ok := entity.ParseTabGroupColor(step.Color)
		if !ok {
			return outcome{}, fmt.Errorf("%w: unknown color %q", ErrStepFailed, step.Color)
		}
		f.SetTabGroupColor(id, color)
	}
	if step.Collapsed != nil {
		f.SetTabGroupCollapsed(id, *step.Collapsed)
	}
	if step.Synced != nil {
		f.SetTabGroupSynced(id, *step.Synced)
	}
	if step.Shared != nil {
		f.SetTabGroupShared(id, *step.Shared)
	}
	return outcome{}, nil
}

func (st *run) undo(ctx context.Context, _ Step) (outcome, error) {
	if len(st.tabs.UndoClose(ctx)) == 0 {
		return outcome{}, fmt.Errorf("%w: nothing to undo", ErrStepFailed)
	}
	return outcome{}, nil
}

func (st *run) commit(_ context.Context, step Step) (outcome, error) {
	model := st.model()
	if step.Tab == 0 {
		model.CommitAllTabClosures()
		return outcome{}, nil
	}
	if !model.CommitTabClosure(entity.TabID(step.Tab)) {
		return outcome{}, fmt.Errorf("%w: tab %d is not pending", ErrStepFailed, step.Tab)
	}
	return outcome{}, nil
}

func (st *run) tick(_ context.Context, step Step) (outcome, error) {
	st.now = st.now.Add(time.Duration(step.AdvanceMs) * time.Millisecond)
	if st.timeout > 0 {
		st.model().CommitExpiredClosures(st.now, st.timeout)
	}
	return outcome{}, nil
}

func (st *run) selectIncognito(context.Context, Step) (outcome, error) {
	st.session.SelectModel(true)
	return outcome{}, nil
}

func (st *run) selectNormal(context.Context, Step) (outcome, error) {
	st.session.SelectModel(false)
	return outcome{}, nil
}

func (st *run) destroyIncognito(context.Context, Step) (outcome, error) {
	st.session.DestroyIncognito()
	return outcome{}, nil
}

func (st *run) verify() error {
	var errs []error
	if err := st.session.Normal().Model().Verify(); err != nil {
		errs = append(errs, fmt.Errorf("normal: %w", err))
	}
	if f := st.session.Incognito(); f != nil {
		if err := f.Model().Verify(); err != nil {
			errs = append(errs, fmt.Errorf("incognito: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvariant, errors.Join(errs...))
	}
	return nil
}

func (st *run) result(index int, op string, out outcome) StepResult {
	model := st.model()
	res := StepResult{
		Index:     index,
		Op:        op,
		Incognito: st.session.IsIncognitoSelected(),
		Selected:  entity.InvalidTabID,
	}
	if current := model.CurrentTab(); current != nil {
		res.Selected = current.ID
	}

	groupIndex := make(map[entity.TabGroupID]int)
	for _, tab := range model.Tabs() {
		res.Order = append(res.Order, tab.ID)
		if !tab.IsGrouped() {
			continue
		}
		i, ok := groupIndex[tab.GroupID]
		if !ok {
			i = len(res.Groups)
			groupIndex[tab.GroupID] = i
			res.Groups = append(res.Groups, nil)
		}
		res.Groups[i] = append(res.Groups[i], tab.ID)
	}
	for _, tab := range model.PendingClosures() {
		res.Pending = append(res.Pending, tab.ID)
	}
	if c := out.confirmation; c != nil {
		res.Dialog = c.Dialog().String()
		res.Applied = c.Applied()
	}
	return res
}

func toIDs(ids []int) []entity.TabID {
	out := make([]entity.TabID, len(ids))
	for i, id := range ids {
		out[i] = entity.TabID(id)
	}
	return out
}

func (st *run) check(step Step, want Expect, got StepResult) error {
	var diffs []string
	if want.Order != nil && !slices.Equal(toIDs(want.Order), got.Order) {
		diffs = append(diffs, fmt.Sprintf("order: want %v, got %v", want.Order, got.Order))
	}
	if want.Selected != nil && entity.TabID(*want.Selected) != got.Selected {
		diffs = append(diffs, fmt.Sprintf("selected: want %d, got %d", *want.Selected, got.Selected))
	}
	if want.Pending != nil {
		pending := slices.Sorted(slices.Values(got.Pending))
		if !slices.Equal(slices.Sorted(slices.Values(toIDs(want.Pending))), pending) {
			diffs = append(diffs, fmt.Sprintf("pending: want %v, got %v", want.Pending, got.Pending))
		}
	}
	if want.Groups != nil {
		groups := make([][]entity.TabID, len(want.Groups))
		for i, g := range want.Groups {
			groups[i] = toIDs(g)
		}
		if !slices.EqualFunc(groups, got.Groups, slices.Equal[[]entity.TabID]) {
			diffs = append(diffs, fmt.Sprintf("groups: want %v, got %v", want.Groups, got.Groups))
		}
	}
	if want.Dialog != "" && want.Dialog != got.Dialog {
		diffs = append(diffs, fmt.Sprintf("dialog: want %s, got %q", want.Dialog, got.Dialog))
	}
	if want.Applied != nil && *want.Applied != got.Applied {
		diffs = append(diffs, fmt.Sprintf("applied: want %t, got %t", *want.Applied, got.Applied))
	}
	if want.Title != nil || want.Color != "" {
		diffs = append(diffs, st.checkMetadata(step, want)...)
	}

	if len(diffs) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrExpectation, strings.Join(diffs, "\n  - "))
	}
	return nil
}

func (st *run) checkMetadata(step Step, want Expect) []string {
	ref := step.GroupOf
	for _, alt := range []int{step.Tab, step.Into} {
		if ref == 0 {
			ref = alt
		}
	}
	id, err := st.group(ref)
	if err != nil {
		return []string{fmt.Sprintf("group metadata: %v", err)}
	}
	var diffs []string
	f := st.filter()
	if want.Title != nil && f.TabGroupTitle(id) != *want.Title {
		diffs = append(diffs, fmt.Sprintf("title: want %q, got %q", *want.Title, f.TabGroupTitle(id)))
	}
	if want.Color != "" && string(f.TabGroupColor(id)) != want.Color {
		diffs = append(diffs, fmt.Sprintf("color: want %s, got %s", want.Color, f.TabGroupColor(id)))
	}
	return diffs
}
