package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "undo timeout zero", mutate: func(c *Config) { c.Closure.UndoTimeoutMs = 0 }},
		{name: "undo timeout max", mutate: func(c *Config) { c.Closure.UndoTimeoutMs = maxUndoTimeoutMs }},
		{
			name:    "undo timeout negative",
			mutate:  func(c *Config) { c.Closure.UndoTimeoutMs = -1 },
			wantKey: "closure.undo_timeout_ms",
		},
		{
			name:    "undo timeout too large",
			mutate:  func(c *Config) { c.Closure.UndoTimeoutMs = maxUndoTimeoutMs + 1 },
			wantKey: "closure.undo_timeout_ms",
		},
		{
			name:    "snapshot interval negative",
			mutate:  func(c *Config) { c.Persistence.SnapshotIntervalMs = -5 },
			wantKey: "persistence.snapshot_interval_ms",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantKey: "logging.level",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantKey: "logging.format",
		},
		{
			name:    "negative max age",
			mutate:  func(c *Config) { c.Logging.MaxAge = -1 },
			wantKey: "logging.max_age",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantKey != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantKey)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateConfig_CollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Closure.UndoTimeoutMs = -1
	cfg.Logging.Level = "loud"

	err := validateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closure.undo_timeout_ms")
	assert.Contains(t, err.Error(), "logging.level")
}
