package bootstrap

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/tabstrip/internal/logging"
)

// startupTimer records how long each workspace startup phase took.
type startupTimer struct {
	mu     sync.Mutex
	clock  func() time.Time
	start  time.Time
	last   time.Time
	phases map[string]time.Duration
	order  []string
}

func newStartupTimer(clock func() time.Time) *startupTimer {
	now := clock()
	return &startupTimer{
		clock:  clock,
		start:  now,
		last:   now,
		phases: make(map[string]time.Duration),
	}
}

// mark records the time elapsed since the previous mark under phase.
func (t *startupTimer) mark(phase string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock()
	if _, seen := t.phases[phase]; !seen {
		t.order = append(t.order, phase)
	}
	t.phases[phase] += now.Sub(t.last)
	t.last = now
}

func (t *startupTimer) total() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last.Sub(t.start)
}

func (t *startupTimer) logDebug(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	event := logging.FromContext(ctx).Debug().Dur("total", t.last.Sub(t.start))
	for _, phase := range t.order {
		event = event.Dur(phase, t.phases[phase])
	}
	event.Msg("workspace startup timing")
}
