package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaProvider_KeysHaveDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	keys := NewSchemaProvider().GetSchema()
	require.NotEmpty(t, keys)

	seen := make(map[string]bool)
	for _, k := range keys {
		assert.False(t, seen[k.Key], "duplicate key %s", k.Key)
		seen[k.Key] = true
		assert.True(t, mgr.viper.IsSet(k.Key), "no viper default for %s", k.Key)
		assert.NotEmpty(t, k.Description, k.Key)
		assert.NotEmpty(t, k.Section, k.Key)
	}

	assert.Equal(t,
		[]string{SectionClosure, SectionGroups, SectionPersistence, SectionLogging, SectionDebug},
		Sections(keys),
	)
}

func TestSchemaProvider_DefaultColorValues(t *testing.T) {
	for _, k := range NewSchemaProvider().GetSchema() {
		if k.Key == "groups.default_color" {
			assert.Equal(t, "grey", k.Default)
			assert.Contains(t, k.Values, "blue")
			return
		}
	}
	t.Fatal("groups.default_color missing from schema")
}

func TestFormatKey(t *testing.T) {
	keys := NewSchemaProvider().GetSchema()
	line := FormatKey(keys[1])
	assert.Equal(t,
		"closure.undo_timeout_ms = 10000 (0-600000)  # Milliseconds a closed tab stays restorable (0 = until exit)",
		line,
	)
}

func TestWriteSchemaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), SchemaFileName)
	require.NoError(t, WriteSchemaFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Title      string                     `json:"title"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "tabstrip configuration", doc.Title)
	for _, section := range []string{"closure", "groups", "persistence", "logging", "debug"} {
		assert.Contains(t, doc.Properties, section)
	}
	assert.Contains(t, string(data), "undo_timeout_ms")
}
