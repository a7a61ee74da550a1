package repository

import (
	"context"

	"github.com/bnema/tabstrip/internal/domain/entity"
)

// SessionStateRepository persists tab model snapshots.
type SessionStateRepository interface {
	// SaveSnapshot saves or updates a session state snapshot.
	SaveSnapshot(ctx context.Context, state *entity.SessionState) error

	// GetSnapshot returns the latest snapshot for a session, or nil.
	GetSnapshot(ctx context.Context, sessionID entity.SessionID) (*entity.SessionState, error)

	// GetLatestSnapshot returns the most recently saved snapshot of any
	// session other than exclude, or nil.
	GetLatestSnapshot(ctx context.Context, exclude entity.SessionID) (*entity.SessionState, error)

	// DeleteSnapshot removes a session's snapshot.
	DeleteSnapshot(ctx context.Context, sessionID entity.SessionID) error
}
