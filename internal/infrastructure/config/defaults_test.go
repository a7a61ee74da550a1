package config

import (
	"testing"
	"time"

	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Closure.UndoEnabled)
	assert.Equal(t, 10*time.Second, cfg.Closure.UndoTimeout())
	assert.True(t, cfg.Groups.UngroupTrailing)
	assert.Equal(t, entity.TabGroupColorGrey, cfg.Groups.DefaultColor)
	assert.True(t, cfg.Persistence.Enabled)
	assert.Empty(t, cfg.Persistence.DatabasePath)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Debug.StrictPreconditions)

	require.NoError(t, validateConfig(cfg))
}

func TestLoggingConfig_RotatorConfig(t *testing.T) {
	t.Setenv("TABSTRIP_ENV", "")
	t.Setenv("XDG_STATE_HOME", "/tmp/state")

	cfg := DefaultConfig().Logging
	rc, err := cfg.RotatorConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/state/tabstrip/logs", rc.Dir)
	assert.Equal(t, "tabstrip.log", rc.FileName)
	assert.Equal(t, 7*24*time.Hour, rc.MaxAge)

	cfg.LogDir = "/var/log/custom"
	rc, err = cfg.RotatorConfig()
	require.NoError(t, err)
	assert.Equal(t, "/var/log/custom", rc.Dir)
}
