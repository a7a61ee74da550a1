package config

import "github.com/bnema/tabstrip/internal/domain/entity"

const (
	// DefaultUndoTimeoutMs matches the lifetime of an undo snackbar.
	DefaultUndoTimeoutMs = 10000
	// DefaultSnapshotIntervalMs debounces snapshot writes.
	DefaultSnapshotIntervalMs = 5000

	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 5
	defaultLogMaxAge     = 7
)

// DefaultConfig returns the default configuration values.
func DefaultConfig() *Config {
	return &Config{
		Closure: ClosureConfig{
			UndoEnabled:   true,
			UndoTimeoutMs: DefaultUndoTimeoutMs,
		},
		Groups: GroupsConfig{
			UngroupTrailing: true,
			DefaultColor:    entity.DefaultTabGroupColor,
		},
		Persistence: PersistenceConfig{
			Enabled: true,
			// DatabasePath is resolved from XDG at load time.
			DatabasePath:       "",
			SnapshotIntervalMs: DefaultSnapshotIntervalMs,
		},
		Logging: LoggingConfig{
			Level:         "info",
			Format:        "console",
			EnableFileLog: false,
			MaxSizeMB:     defaultLogMaxSizeMB,
			MaxBackups:    defaultLogMaxBackups,
			MaxAge:        defaultLogMaxAge,
			Compress:      true,
		},
		Debug: DebugConfig{
			StrictPreconditions: false,
		},
	}
}
