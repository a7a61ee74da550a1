package config

import (
	"fmt"
	"strings"

	"github.com/bnema/tabstrip/internal/application/port"
	"github.com/bnema/tabstrip/internal/domain/entity"
)

// Section names for grouping config keys.
const (
	SectionClosure     = "Closure"
	SectionGroups      = "Groups"
	SectionPersistence = "Persistence"
	SectionLogging     = "Logging"
	SectionDebug       = "Debug"
)

// SchemaProvider implements port.ConfigSchemaProvider.
type SchemaProvider struct{}

var _ port.ConfigSchemaProvider = (*SchemaProvider)(nil)

// NewSchemaProvider creates a new SchemaProvider.
func NewSchemaProvider() *SchemaProvider {
	return &SchemaProvider{}
}

// GetSchema returns all configuration keys with their metadata.
func (p *SchemaProvider) GetSchema() []entity.ConfigKeyInfo {
	defaults := DefaultConfig()

	keys := make([]entity.ConfigKeyInfo, 0, 16)
	keys = append(keys, p.getClosureKeys(defaults)...)
	keys = append(keys, p.getGroupsKeys(defaults)...)
	keys = append(keys, p.getPersistenceKeys(defaults)...)
	keys = append(keys, p.getLoggingKeys(defaults)...)
	keys = append(keys, p.getDebugKeys(defaults)...)
	return keys
}

func (*SchemaProvider) getClosureKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "closure.undo_enabled",
			Type:        "bool",
			Default:     fmt.Sprintf("%t", defaults.Closure.UndoEnabled),
			Description: "Keep closed tabs restorable until the undo timeout expires",
			Section:     SectionClosure,
		},
		{
			Key:         "closure.undo_timeout_ms",
			Type:        "int",
			Default:     fmt.Sprintf("%d", defaults.Closure.UndoTimeoutMs),
			Description: "Milliseconds a closed tab stays restorable (0 = until exit)",
			Range:       fmt.Sprintf("0-%d", maxUndoTimeoutMs),
			Section:     SectionClosure,
		},
	}
}

func (*SchemaProvider) getGroupsKeys(defaults *Config) []entity.ConfigKeyInfo {
	colors := entity.TabGroupColors()
	values := make([]string, len(colors))
	for i, c := range colors {
		values[i] = string(c)
	}
	return []entity.ConfigKeyInfo{
		{
			Key:         "groups.ungroup_trailing",
			Type:        "bool",
			Default:     fmt.Sprintf("%t", defaults.Groups.UngroupTrailing),
			Description: "Place ungrouped tabs after their former group instead of before it",
			Section:     SectionGroups,
		},
		{
			Key:         "groups.default_color",
			Type:        "string",
			Default:     string(defaults.Groups.DefaultColor),
			Description: "Color given to newly created tab groups",
			Values:      values,
			Section:     SectionGroups,
		},
	}
}

func (*SchemaProvider) getPersistenceKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "persistence.enabled",
			Type:        "bool",
			Default:     fmt.Sprintf("%t", defaults.Persistence.Enabled),
			Description: "Save session snapshots so tabs can be restored",
			Section:     SectionPersistence,
		},
		{
			Key:         "persistence.database_path",
			Type:        "string",
			Default:     "(XDG data dir)/tabstrip.sqlite",
			Description: "SQLite database holding session snapshots",
			Section:     SectionPersistence,
		},
		{
			Key:         "persistence.snapshot_interval_ms",
			Type:        "int",
			Default:     fmt.Sprintf("%d", defaults.Persistence.SnapshotIntervalMs),
			Description: "Delay between a tab change and the snapshot write",
			Range:       ">=0",
			Section:     SectionPersistence,
		},
	}
}

func (*SchemaProvider) getLoggingKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "logging.level",
			Type:        "string",
			Default:     defaults.Logging.Level,
			Description: "Log verbosity level",
			Values:      []string{"trace", "debug", "info", "warn", "error", "disabled"},
			Section:     SectionLogging,
		},
		{
			Key:         "logging.format",
			Type:        "string",
			Default:     defaults.Logging.Format,
			Description: "Log output format",
			Values:      []string{"console", "json"},
			Section:     SectionLogging,
		},
		{
			Key:         "logging.enable_file_log",
			Type:        "bool",
			Default:     fmt.Sprintf("%t", defaults.Logging.EnableFileLog),
			Description: "Write logs to a rotated file (always on in the TUI)",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.log_dir",
			Type:        "string",
			Default:     "(XDG state dir)/logs",
			Description: "Directory for log files",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.max_size_mb",
			Type:        "int",
			Default:     fmt.Sprintf("%d", defaults.Logging.MaxSizeMB),
			Description: "Rotate the log file past this size",
			Range:       ">=0",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.max_backups",
			Type:        "int",
			Default:     fmt.Sprintf("%d", defaults.Logging.MaxBackups),
			Description: "Rotated log files to keep",
			Range:       ">=0",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.max_age",
			Type:        "int",
			Default:     fmt.Sprintf("%d", defaults.Logging.MaxAge),
			Description: "Maximum age of log files in days",
			Range:       ">=0",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.compress",
			Type:        "bool",
			Default:     fmt.Sprintf("%t", defaults.Logging.Compress),
			Description: "Gzip rotated log files",
			Section:     SectionLogging,
		},
	}
}

func (*SchemaProvider) getDebugKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "debug.strict_preconditions",
			Type:        "bool",
			Default:     fmt.Sprintf("%t", defaults.Debug.StrictPreconditions),
			Description: "Panic on invalid tab model calls instead of ignoring them",
			Section:     SectionDebug,
		},
	}
}

// Sections returns the section names of keys in first-seen order.
func Sections(keys []entity.ConfigKeyInfo) []string {
	var out []string
	seen := make(map[string]bool)
	for _, k := range keys {
		if !seen[k.Section] {
			seen[k.Section] = true
			out = append(out, k.Section)
		}
	}
	return out
}

// FormatKey renders one key as "key = default  # description".
func FormatKey(k entity.ConfigKeyInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s = %s", k.Key, k.Default)
	if len(k.Values) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(k.Values, "|"))
	}
	if k.Range != "" {
		fmt.Fprintf(&b, " (%s)", k.Range)
	}
	if k.Description != "" {
		fmt.Fprintf(&b, "  # %s", k.Description)
	}
	return b.String()
}
