package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/bnema/tabstrip/internal/logging"
)

// LazyDB opens the snapshot database on first use, so commands that never
// touch persistence skip the WASM compilation and migrations.
type LazyDB struct {
	dbPath string

	mu   sync.Mutex
	db   *sql.DB
	err  error
	done bool
}

// NewLazyDB creates a new lazy database provider.
func NewLazyDB(dbPath string) *LazyDB {
	return &LazyDB{dbPath: dbPath}
}

// DB returns the database connection, opening it on the first call. A
// failed open is remembered and returned by later calls.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.done {
		l.done = true
		log := logging.FromContext(ctx)
		log.Debug().Str("path", l.dbPath).Msg("lazy database initialization starting")

		l.db, l.err = NewConnection(ctx, l.dbPath)
		if l.err != nil {
			log.Error().Err(l.err).Msg("lazy database initialization failed")
		}
	}

	if l.err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", l.err)
	}
	return l.db, nil
}

// Repositories opens the database and returns both session repositories.
func (l *LazyDB) Repositories(ctx context.Context) (*Repositories, error) {
	db, err := l.DB(ctx)
	if err != nil {
		return nil, err
	}
	return &Repositories{
		Sessions: NewSessionRepository(db),
		States:   NewSessionStateRepository(db),
	}, nil
}

// Close closes the database connection if it was opened.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	l.err = fmt.Errorf("database closed")
	return err
}

// IsInitialized returns true if the database has been opened.
func (l *LazyDB) IsInitialized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.db != nil
}

// Path returns the database path.
func (l *LazyDB) Path() string {
	return l.dbPath
}
