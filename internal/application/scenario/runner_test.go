package scenario_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bnema/tabstrip/internal/application/port"
	"github.com/bnema/tabstrip/internal/application/scenario"
	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/domain/tabmodel"
	"github.com/bnema/tabstrip/internal/infrastructure/tabfactory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunner() *scenario.Runner {
	return scenario.NewRunner(scenario.Options{
		NewCreator: func(session *tabmodel.Session, clock func() time.Time) port.TabCreator {
			return tabfactory.New(session, tabfactory.Config{Clock: clock})
		},
	})
}

func TestRunner_Testdata(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			sc, err := scenario.Load(file)
			require.NoError(t, err)

			report, err := newRunner().Run(context.Background(), sc)
			require.NoError(t, err)
			assert.Len(t, report.Steps, len(sc.Steps))
		})
	}
}

func TestRunner_ExpectationMismatch(t *testing.T) {
	sc, err := scenario.ParseBytes([]byte(`
steps:
  - op: open
  - op: open
    expect:
      order: [2, 1]
      selected: 1
`))
	require.NoError(t, err)

	report, err := newRunner().Run(context.Background(), sc)
	require.Error(t, err)
	require.ErrorIs(t, err, scenario.ErrExpectation)

	var stepErr *scenario.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 2, stepErr.Index)
	assert.Equal(t, "open", stepErr.Op)
	assert.Contains(t, err.Error(), "order: want [2 1], got [1 2]")
	assert.Contains(t, err.Error(), "selected: want 1, got 2")

	require.Len(t, report.Steps, 2)
	assert.Equal(t, []entity.TabID{1, 2}, report.Steps[1].Order)
}

func TestRunner_FailedStep(t *testing.T) {
	sc, err := scenario.ParseBytes([]byte(`
steps:
  - op: open
  - op: undo
`))
	require.NoError(t, err)

	_, err = newRunner().Run(context.Background(), sc)
	require.ErrorIs(t, err, scenario.ErrStepFailed)
	assert.Contains(t, err.Error(), "nothing to undo")
}

func TestRunner_OpenWithoutCreator(t *testing.T) {
	sc, err := scenario.ParseBytes([]byte("steps:\n  - op: open\n"))
	require.NoError(t, err)

	_, err = scenario.NewRunner(scenario.Options{}).Run(context.Background(), sc)
	require.ErrorIs(t, err, scenario.ErrStepFailed)
}

func TestRunner_Incognito(t *testing.T) {
	sc, err := scenario.ParseBytes([]byte(`
steps:
  - op: open
  - op: incognito
    expect:
      order: []
      selected: -1
  - op: open
    incognito: true
    expect:
      order: [2]
      selected: 2
  - op: close
    tab: 2
    undo: false
    expect:
      order: []
      pending: []
  - op: destroy_incognito
    expect:
      order: [1]
      selected: 1
`))
	require.NoError(t, err)

	report, err := newRunner().Run(context.Background(), sc)
	require.NoError(t, err)
	assert.True(t, report.Steps[2].Incognito)
	assert.False(t, report.Steps[4].Incognito)
}

func TestRunner_UngroupSharedGroupAsks(t *testing.T) {
	sc, err := scenario.ParseBytes([]byte(`
config:
  ungroup_trailing: false
steps:
  - op: open
  - op: open
  - op: open
  - op: group
    tabs: [3]
    into: 2
  - op: set_group
    group_of: 2
    shared: true
  - op: ungroup
    group_of: 2
    answer: reject
    expect:
      dialog: collaboration
      applied: false
      groups: [[2, 3]]
  - op: ungroup
    group_of: 2
    answer: accept
    expect:
      order: [1, 2, 3]
      groups: []
      applied: true
`))
	require.NoError(t, err)

	_, err = newRunner().Run(context.Background(), sc)
	require.NoError(t, err)
}

func TestRunner_UnknownDefaultColor(t *testing.T) {
	sc, err := scenario.ParseBytes([]byte("config:\n  default_color: mauve\nsteps:\n  - op: open\n"))
	require.NoError(t, err)

	_, err = newRunner().Run(context.Background(), sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mauve")
}

func TestStepResult_String(t *testing.T) {
	r := scenario.StepResult{
		Index:    3,
		Op:       "close",
		Order:    []entity.TabID{1, 2},
		Selected: 1,
		Pending:  []entity.TabID{3},
		Dialog:   "none",
		Applied:  true,
	}
	s := r.String()
	assert.True(t, strings.HasPrefix(s, "#3 close"))
	assert.Contains(t, s, "order=[1 2] selected=1")
	assert.Contains(t, s, "pending=[3]")
	assert.Contains(t, s, "dialog=none applied=true")
}
