package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/domain/repository"
	"github.com/bnema/tabstrip/internal/logging"
)

const defaultRecentSessions = 20

type sessionRepo struct {
	queries *queries
}

func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepo{queries: newQueries(db)}
}

func (r *sessionRepo) Save(ctx context.Context, session *entity.Session) error {
	log := logging.FromContext(ctx)
	if err := session.Validate(); err != nil {
		return err
	}

	log.Debug().Str("session_id", string(session.ID)).Str("type", string(session.Type)).Msg("saving session")

	var endedAt sql.NullTime
	if session.EndedAt != nil {
		endedAt = sql.NullTime{Time: session.EndedAt.UTC(), Valid: true}
	}

	return r.queries.insertSession(ctx, sessionRow{
		ID:        string(session.ID),
		Type:      string(session.Type),
		StartedAt: session.StartedAt.UTC(),
		EndedAt:   endedAt,
	})
}

func (r *sessionRepo) FindByID(ctx context.Context, id entity.SessionID) (*entity.Session, error) {
	row, err := r.queries.getSessionByID(ctx, string(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return sessionFromRow(row), nil
}

func (r *sessionRepo) GetActive(ctx context.Context) (*entity.Session, error) {
	row, err := r.queries.getActiveSession(ctx, string(entity.SessionTypeInteractive))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return sessionFromRow(row), nil
}

func (r *sessionRepo) GetRecent(ctx context.Context, limit int) ([]*entity.Session, error) {
	if limit <= 0 {
		limit = defaultRecentSessions
	}
	rows, err := r.queries.getRecentSessions(ctx, int64(limit))
	if err != nil {
		return nil, err
	}

	sessions := make([]*entity.Session, len(rows))
	for i := range rows {
		sessions[i] = sessionFromRow(rows[i])
	}
	return sessions, nil
}

func (r *sessionRepo) MarkEnded(ctx context.Context, id entity.SessionID, endedAt time.Time) error {
	n, err := r.queries.markSessionEnded(ctx, string(id), endedAt.UTC())
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", id, sql.ErrNoRows)
	}
	return nil
}

func (r *sessionRepo) Delete(ctx context.Context, id entity.SessionID) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("session_id", string(id)).Msg("deleting session")
	return r.queries.deleteSession(ctx, string(id))
}

func sessionFromRow(row sessionRow) *entity.Session {
	var endedAt *time.Time
	if row.EndedAt.Valid {
		t := row.EndedAt.Time.UTC()
		endedAt = &t
	}

	return &entity.Session{
		ID:        entity.SessionID(row.ID),
		Type:      entity.SessionType(row.Type),
		StartedAt: row.StartedAt.UTC(),
		EndedAt:   endedAt,
	}
}
