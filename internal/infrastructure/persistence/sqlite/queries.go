package sqlite

import (
	"context"
	"database/sql"
	"time"
)

// dbtx is satisfied by *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	db dbtx
}

func newQueries(db dbtx) *queries { return &queries{db: db} }

func (q *queries) withTx(tx *sql.Tx) *queries { return &queries{db: tx} }

type sessionRow struct {
	ID        string
	Type      string
	StartedAt time.Time
	EndedAt   sql.NullTime
}

const sessionColumns = `id, type, started_at, ended_at`

func scanSession(row interface{ Scan(dest ...any) error }) (sessionRow, error) {
	var r sessionRow
	err := row.Scan(&r.ID, &r.Type, &r.StartedAt, &r.EndedAt)
	return r, err
}

const insertSession = `
INSERT INTO sessions (id, type, started_at, ended_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    type = excluded.type,
    started_at = excluded.started_at,
    ended_at = excluded.ended_at`

func (q *queries) insertSession(ctx context.Context, r sessionRow) error {
	_, err := q.db.ExecContext(ctx, insertSession, r.ID, r.Type, r.StartedAt, r.EndedAt)
	return err
}

const getSessionByID = `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`

func (q *queries) getSessionByID(ctx context.Context, id string) (sessionRow, error) {
	return scanSession(q.db.QueryRowContext(ctx, getSessionByID, id))
}

const getActiveSession = `
SELECT ` + sessionColumns + ` FROM sessions
WHERE ended_at IS NULL AND type = ?
ORDER BY started_at DESC, id DESC
LIMIT 1`

func (q *queries) getActiveSession(ctx context.Context, sessionType string) (sessionRow, error) {
	return scanSession(q.db.QueryRowContext(ctx, getActiveSession, sessionType))
}

const getRecentSessions = `
SELECT ` + sessionColumns + ` FROM sessions
ORDER BY started_at DESC, id DESC
LIMIT ?`

func (q *queries) getRecentSessions(ctx context.Context, limit int64) ([]sessionRow, error) {
	rows, err := q.db.QueryContext(ctx, getRecentSessions, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sessionRow
	for rows.Next() {
		r, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const markSessionEnded = `UPDATE sessions SET ended_at = ? WHERE id = ?`

func (q *queries) markSessionEnded(ctx context.Context, id string, endedAt time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, markSessionEnded, endedAt, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteSession = `DELETE FROM sessions WHERE id = ?`

func (q *queries) deleteSession(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteSession, id)
	return err
}

type sessionStateRow struct {
	SessionID  string
	StateJSON  string
	Version    int64
	TabCount   int64
	GroupCount int64
	UpdatedAt  time.Time
}

const upsertSessionState = `
INSERT INTO session_states (session_id, state_json, version, tab_count, group_count, updated_at, updated_at_ms)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (session_id) DO UPDATE SET
    state_json = excluded.state_json,
    version = excluded.version,
    tab_count = excluded.tab_count,
    group_count = excluded.group_count,
    updated_at = excluded.updated_at,
    updated_at_ms = excluded.updated_at_ms`

func (q *queries) upsertSessionState(ctx context.Context, r sessionStateRow) error {
	_, err := q.db.ExecContext(ctx, upsertSessionState,
		r.SessionID, r.StateJSON, r.Version, r.TabCount, r.GroupCount, r.UpdatedAt, r.UpdatedAt.UnixMilli())
	return err
}

const getSessionState = `SELECT session_id, state_json FROM session_states WHERE session_id = ?`

func (q *queries) getSessionState(ctx context.Context, sessionID string) (sessionStateRow, error) {
	var r sessionStateRow
	err := q.db.QueryRowContext(ctx, getSessionState, sessionID).Scan(&r.SessionID, &r.StateJSON)
	return r, err
}

const getLatestSessionState = `
SELECT session_id, state_json FROM session_states
WHERE session_id <> ? AND tab_count > 0
ORDER BY updated_at_ms DESC, session_id DESC
LIMIT 1`

func (q *queries) getLatestSessionState(ctx context.Context, exclude string) (sessionStateRow, error) {
	var r sessionStateRow
	err := q.db.QueryRowContext(ctx, getLatestSessionState, exclude).Scan(&r.SessionID, &r.StateJSON)
	return r, err
}

const deleteSessionState = `DELETE FROM session_states WHERE session_id = ?`

func (q *queries) deleteSessionState(ctx context.Context, sessionID string) error {
	_, err := q.db.ExecContext(ctx, deleteSessionState, sessionID)
	return err
}
