package config

import (
	"time"

	"github.com/bnema/tabstrip/internal/domain/entity"
)

// Config represents the complete configuration for tabstrip.
type Config struct {
	// Closure controls how closed tabs linger before they are destroyed.
	Closure ClosureConfig `mapstructure:"closure" yaml:"closure" toml:"closure"`
	// Groups controls tab group behavior.
	Groups GroupsConfig `mapstructure:"groups" yaml:"groups" toml:"groups"`
	// Persistence controls session snapshots.
	Persistence PersistenceConfig `mapstructure:"persistence" yaml:"persistence" toml:"persistence"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging" toml:"logging"`
	Debug       DebugConfig       `mapstructure:"debug" yaml:"debug" toml:"debug"`
}

// ClosureConfig holds undo settings for tab closures.
type ClosureConfig struct {
	// UndoEnabled keeps closed tabs as pending closures that can be restored.
	UndoEnabled bool `mapstructure:"undo_enabled" yaml:"undo_enabled" toml:"undo_enabled"`
	// UndoTimeoutMs is how long a pending closure stays undoable (0 = until exit).
	UndoTimeoutMs int `mapstructure:"undo_timeout_ms" yaml:"undo_timeout_ms" toml:"undo_timeout_ms"`
}

// UndoTimeout returns UndoTimeoutMs as a duration.
func (c ClosureConfig) UndoTimeout() time.Duration {
	return time.Duration(c.UndoTimeoutMs) * time.Millisecond
}

// GroupsConfig holds tab group settings.
type GroupsConfig struct {
	// UngroupTrailing moves ungrouped tabs after their group instead of before it.
	UngroupTrailing bool `mapstructure:"ungroup_trailing" yaml:"ungroup_trailing" toml:"ungroup_trailing"`
	// DefaultColor is the color given to new groups.
	DefaultColor entity.TabGroupColor `mapstructure:"default_color" yaml:"default_color" toml:"default_color"`
}

// PersistenceConfig holds session snapshot settings.
type PersistenceConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" toml:"enabled"`
	// DatabasePath defaults to $XDG_DATA_HOME/tabstrip/tabstrip.sqlite.
	DatabasePath string `mapstructure:"database_path" yaml:"database_path" toml:"database_path"`
	// SnapshotIntervalMs debounces snapshot writes after the model changes.
	SnapshotIntervalMs int `mapstructure:"snapshot_interval_ms" yaml:"snapshot_interval_ms" toml:"snapshot_interval_ms"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level"`
	Format string `mapstructure:"format" yaml:"format" toml:"format"`

	// File output configuration
	EnableFileLog bool   `mapstructure:"enable_file_log" yaml:"enable_file_log" toml:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" yaml:"log_dir" toml:"log_dir"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups    int    `mapstructure:"max_backups" yaml:"max_backups" toml:"max_backups"`
	// MaxAge in days, 0 keeps old files forever.
	MaxAge   int  `mapstructure:"max_age" yaml:"max_age" toml:"max_age"`
	Compress bool `mapstructure:"compress" yaml:"compress" toml:"compress"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	// StrictPreconditions panics on misuse of the tab model instead of ignoring it.
	StrictPreconditions bool `mapstructure:"strict_preconditions" yaml:"strict_preconditions" toml:"strict_preconditions"`
}
