package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/domain/repository"
	"github.com/bnema/tabstrip/internal/logging"
)

type sessionStateRepo struct {
	db      *sql.DB
	queries *queries
}

// NewSessionStateRepository creates a new session state repository.
func NewSessionStateRepository(db *sql.DB) repository.SessionStateRepository {
	return &sessionStateRepo{
		db:      db,
		queries: newQueries(db),
	}
}

// SaveSnapshot saves or updates a session state snapshot.
func (r *sessionStateRepo) SaveSnapshot(ctx context.Context, state *entity.SessionState) error {
	log := logging.FromContext(ctx)
	if state == nil {
		return errors.New("session state cannot be nil")
	}

	stateJSON, err := json.Marshal(state)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal session state")
		return err
	}

	log.Debug().
		Str("session_id", string(state.SessionID)).
		Int("tab_count", len(state.Tabs)).
		Int("group_count", len(state.Groups)).
		Msg("saving session state snapshot")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			log.Debug().Err(rollbackErr).Msg("snapshot rollback reported non-terminal error")
		}
	}()

	if err := r.queries.withTx(tx).upsertSessionState(ctx, sessionStateRow{
		SessionID:  string(state.SessionID),
		StateJSON:  string(stateJSON),
		Version:    int64(state.Version),
		TabCount:   int64(len(state.Tabs)),
		GroupCount: int64(len(state.Groups)),
		UpdatedAt:  state.SavedAt.UTC(),
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot transaction: %w", err)
	}

	return nil
}

// GetSnapshot returns the latest snapshot for a session.
func (r *sessionStateRepo) GetSnapshot(ctx context.Context, sessionID entity.SessionID) (*entity.SessionState, error) {
	row, err := r.queries.getSessionState(ctx, string(sessionID))
	return decodeState(ctx, row, err)
}

// GetLatestSnapshot returns the most recently saved non-empty snapshot of a
// session other than exclude.
func (r *sessionStateRepo) GetLatestSnapshot(ctx context.Context, exclude entity.SessionID) (*entity.SessionState, error) {
	row, err := r.queries.getLatestSessionState(ctx, string(exclude))
	return decodeState(ctx, row, err)
}

func decodeState(ctx context.Context, row sessionStateRow, err error) (*entity.SessionState, error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var state entity.SessionState
	if err := json.Unmarshal([]byte(row.StateJSON), &state); err != nil {
		logging.FromContext(ctx).Error().Err(err).
			Str("session_id", row.SessionID).
			Msg("failed to unmarshal session state")
		return nil, fmt.Errorf("decode session state %s: %w", row.SessionID, err)
	}

	return &state, nil
}

// DeleteSnapshot removes a session's snapshot.
func (r *sessionStateRepo) DeleteSnapshot(ctx context.Context, sessionID entity.SessionID) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("session_id", string(sessionID)).Msg("deleting session state snapshot")
	return r.queries.deleteSessionState(ctx, string(sessionID))
}
