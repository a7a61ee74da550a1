package tabmodel

import (
	"errors"
	"fmt"
)

// Verify checks the structural invariants of the collection and, when a
// GroupFilter is installed, of its groups. It returns every violation found.
func (c *Collection) Verify() error {
	var errs []error

	live := make(tabSet, len(c.tabs))
	for _, t := range c.tabs {
		if live.has(t.ID) {
			errs = append(errs, fmt.Errorf("tab %d appears twice in live order", t.ID))
		}
		live[t.ID] = struct{}{}
		if c.IsClosurePending(t.ID) {
			errs = append(errs, fmt.Errorf("tab %d is both live and pending", t.ID))
		}
		if t.IsClosing() || t.IsDestroyed() {
			errs = append(errs, fmt.Errorf("live tab %d is marked closing", t.ID))
		}
	}
	for id, p := range c.pending {
		if p.tab.ID != id {
			errs = append(errs, fmt.Errorf("pending entry %d holds tab %d", id, p.tab.ID))
		}
		if !p.tab.IsClosing() || p.tab.IsDestroyed() {
			errs = append(errs, fmt.Errorf("pending tab %d has wrong closing state", id))
		}
		if c.rewoundIndex(p.tab) < 0 {
			errs = append(errs, fmt.Errorf("pending tab %d missing from comprehensive order", id))
		}
	}

	if len(c.rewound) != len(c.tabs)+len(c.pending) {
		errs = append(errs, fmt.Errorf("comprehensive order has %d tabs, want %d live + %d pending",
			len(c.rewound), len(c.tabs), len(c.pending)))
	}
	next := 0
	for _, t := range c.rewound {
		if c.IsClosurePending(t.ID) {
			continue
		}
		if next >= len(c.tabs) || c.tabs[next] != t {
			errs = append(errs, errors.New("live order is not a subsequence of comprehensive order"))
			break
		}
		next++
	}

	switch {
	case len(c.tabs) == 0 && c.selected.IsValid():
		errs = append(errs, fmt.Errorf("empty model selects tab %d", c.selected))
	case len(c.tabs) > 0 && c.Index() < 0:
		errs = append(errs, fmt.Errorf("selection %d is not a live tab", c.selected))
	}

	if c.tracker != nil {
		if err := c.tracker.verify(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
