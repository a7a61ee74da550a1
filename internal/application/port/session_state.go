package port

import "github.com/bnema/tabstrip/internal/domain/entity"

// SessionStateProvider exposes the current tab model state for snapshots.
// Implementations are called from the goroutine that owns the tab model.
type SessionStateProvider interface {
	// SessionState returns a snapshot of the normal tab model.
	SessionState() *entity.SessionState
	// SessionID returns the current session ID.
	SessionID() entity.SessionID
}
