package repository

import (
	"context"
	"time"

	"github.com/bnema/tabstrip/internal/domain/entity"
)

// SessionRepository persists session metadata.
type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	FindByID(ctx context.Context, id entity.SessionID) (*entity.Session, error)

	// GetActive returns the most recent interactive session that has not ended.
	GetActive(ctx context.Context) (*entity.Session, error)
	GetRecent(ctx context.Context, limit int) ([]*entity.Session, error)
	MarkEnded(ctx context.Context, id entity.SessionID, endedAt time.Time) error

	// Delete removes a session record and its snapshot.
	Delete(ctx context.Context, id entity.SessionID) error
}
