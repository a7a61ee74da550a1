// Package sqlite stores sessions and tab model snapshots in SQLite.
package sqlite

import "github.com/bnema/tabstrip/internal/domain/repository"

// Repositories groups the repositories backed by one database.
type Repositories struct {
	Sessions repository.SessionRepository
	States   repository.SessionStateRepository
}
