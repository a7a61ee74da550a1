// Package scenario replays scripted tab operations against a fresh session
// and checks the tab model after every step.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a named list of steps run against a new session.
type Scenario struct {
	Name     string   `yaml:"name"`
	Settings Settings `yaml:"config"`
	Steps    []Step   `yaml:"steps"`
}

// Settings configures the session a scenario runs in.
type Settings struct {
	DefaultColor string `yaml:"default_color"`
	// UngroupTrailing is the direction of ungroup steps without their own.
	UngroupTrailing *bool `yaml:"ungroup_trailing"`
	// UndoTimeoutMs is used by tick steps.
	UndoTimeoutMs int `yaml:"undo_timeout_ms"`
	// Strict panics on model misuse instead of ignoring the call.
	Strict bool `yaml:"strict"`
}

// Step is one operation. Which fields apply depends on Op. Tab ids start at
// 1 and 0 leaves a tab field unset.
type Step struct {
	Op string `yaml:"op"`

	Tab  int   `yaml:"tab"`
	Tabs []int `yaml:"tabs"`
	// Into is the destination tab of a group step.
	Into int `yaml:"into"`
	// GroupOf names a group through one of its tabs.
	GroupOf int  `yaml:"group_of"`
	Index   *int `yaml:"index"`

	// open
	URL             string `yaml:"url"`
	Parent          int    `yaml:"parent"`
	GroupWithParent bool   `yaml:"group_with_parent"`
	Background      bool   `yaml:"background"`
	Incognito       bool   `yaml:"incognito"`

	// close
	All         bool  `yaml:"all"`
	Undo        *bool `yaml:"undo"`
	UponExit    bool  `yaml:"upon_exit"`
	WholeGroups bool  `yaml:"whole_groups"`
	HideGroups  bool  `yaml:"hide_groups"`

	// ungroup
	Trailing *bool `yaml:"trailing"`

	// Answer to a confirmation dialog: "accept" or "reject". Without an
	// answer dialogs are skipped.
	Answer string `yaml:"answer"`

	// set_group
	Title     *string `yaml:"title"`
	Color     string  `yaml:"color"`
	Collapsed *bool   `yaml:"collapsed"`
	Synced    *bool   `yaml:"synced"`
	Shared    *bool   `yaml:"shared"`

	// pin
	Pinned *bool `yaml:"pinned"`

	// tick
	AdvanceMs int `yaml:"advance_ms"`

	Expect *Expect `yaml:"expect"`
}

// Expect describes the model after a step. Unset fields are not checked.
type Expect struct {
	Order    []int   `yaml:"order"`
	Selected *int    `yaml:"selected"`
	Pending  []int   `yaml:"pending"`
	Groups   [][]int `yaml:"groups"`
	Dialog   string  `yaml:"dialog"`
	Applied  *bool   `yaml:"applied"`
	Title    *string `yaml:"title"`
	Color    string  `yaml:"color"`
}

// Answers to a confirmation dialog.
const (
	AnswerAccept = "accept"
	AnswerReject = "reject"
)

// ErrNoSteps is returned for a scenario without steps.
var ErrNoSteps = errors.New("scenario has no steps")

// Parse decodes a YAML scenario. Unknown keys are rejected.
func Parse(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoSteps
		}
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, ErrNoSteps
	}
	for i, step := range sc.Steps {
		if _, ok := operations[step.Op]; !ok {
			return nil, fmt.Errorf("step %d: %w %q", i+1, ErrUnknownOp, step.Op)
		}
		switch step.Answer {
		case "", AnswerAccept, AnswerReject:
		default:
			return nil, fmt.Errorf("step %d: answer must be %q or %q (got: %q)", i+1, AnswerAccept, AnswerReject, step.Answer)
		}
	}
	return &sc, nil
}

// ParseBytes decodes a YAML scenario held in memory.
func ParseBytes(data []byte) (*Scenario, error) {
	return Parse(bytes.NewReader(data))
}

// Load reads a YAML scenario file.
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = path
	}
	return sc, nil
}
