package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/logging"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config         *Config
	viper          *viper.Viper
	mu             sync.RWMutex
	callbacks      []func(*Config)
	watching       bool
	skipNextReload bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	// TABSTRIP_CLOSURE_UNDO_TIMEOUT_MS and friends are picked up by AutomaticEnv.
	v.SetEnvPrefix("TABSTRIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short names shared with logging.NewFromEnv.
	if err := v.BindEnv("logging.level", "TABSTRIP_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind TABSTRIP_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "TABSTRIP_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind TABSTRIP_LOG_FORMAT: %w", err)
	}
	if err := v.BindEnv("persistence.database_path", "TABSTRIP_DATABASE_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind TABSTRIP_DATABASE_PATH: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := ensureDatabasePath(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			configFile := m.viper.ConfigFileUsed()
			if configFile == "" {
				configFile, _ = GetConfigFile()
			}
			return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
		}

		if createErr := m.createDefaultConfig(); createErr != nil {
			configDir, _ := GetConfigDir()
			return fmt.Errorf(
				"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
				configDir,
				createErr,
			)
		}
		if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
			return fmt.Errorf(
				"failed to read newly created config file: %w\nThe config file was created but couldn't be read. Please check the file format",
				rereadErr,
			)
		}
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

func ensureDatabasePath(config *Config) error {
	if config.Persistence.DatabasePath != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Persistence.DatabasePath = dbPath
	return nil
}

// normalizeConfig replaces unknown enum values with their defaults.
func normalizeConfig(config *Config) {
	if color, ok := entity.ParseTabGroupColor(string(config.Groups.DefaultColor)); ok {
		config.Groups.DefaultColor = color
	} else {
		config.Groups.DefaultColor = entity.DefaultTabGroupColor
	}

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	switch strings.ToLower(config.Logging.Format) {
	case "json":
		config.Logging.Format = "json"
	case "", "console", "text":
		config.Logging.Format = "console"
	}

	config.Persistence.DatabasePath = strings.TrimSpace(config.Persistence.DatabasePath)
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent external modification
	configCopy := *m.config
	return &configCopy
}

// Save saves the provided configuration to disk and updates Viper.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.viper.Set("closure.undo_enabled", cfg.Closure.UndoEnabled)
	m.viper.Set("closure.undo_timeout_ms", cfg.Closure.UndoTimeoutMs)
	m.viper.Set("groups.ungroup_trailing", cfg.Groups.UngroupTrailing)
	m.viper.Set("groups.default_color", string(cfg.Groups.DefaultColor))
	m.viper.Set("persistence.enabled", cfg.Persistence.Enabled)
	m.viper.Set("persistence.database_path", cfg.Persistence.DatabasePath)
	m.viper.Set("persistence.snapshot_interval_ms", cfg.Persistence.SnapshotIntervalMs)
	m.viper.Set("logging.level", cfg.Logging.Level)
	m.viper.Set("logging.format", cfg.Logging.Format)
	m.viper.Set("debug.strict_preconditions", cfg.Debug.StrictPreconditions)

	if m.watching {
		m.skipNextReload = true
	}
	if err := m.viper.WriteConfig(); err != nil {
		m.skipNextReload = false
		return fmt.Errorf("failed to write config: %w", err)
	}

	if m.watching {
		// The fsnotify handler syncs viper and notifies callbacks.
		configCopy := *cfg
		m.config = &configCopy
		return nil
	}
	return m.reload()
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// createDefaultConfig creates a default configuration file and its schema.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	m.viper.SetConfigType("toml")
	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	log := logging.NewFromEnv()
	log.Info().Str("path", configFile).Msg("created default configuration file")

	if err := WriteSchemaFile(filepath.Join(filepath.Dir(configFile), SchemaFileName)); err != nil {
		log.Warn().Err(err).Msg("failed to write config schema")
	}
	return nil
}

// setDefaults sets default values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setClosureDefaults(defaults)
	m.setGroupsDefaults(defaults)
	m.setPersistenceDefaults(defaults)
	m.setLoggingDefaults(defaults)
	m.viper.SetDefault("debug.strict_preconditions", defaults.Debug.StrictPreconditions)
}

func (m *Manager) setClosureDefaults(defaults *Config) {
	m.viper.SetDefault("closure.undo_enabled", defaults.Closure.UndoEnabled)
	m.viper.SetDefault("closure.undo_timeout_ms", defaults.Closure.UndoTimeoutMs)
}

func (m *Manager) setGroupsDefaults(defaults *Config) {
	m.viper.SetDefault("groups.ungroup_trailing", defaults.Groups.UngroupTrailing)
	m.viper.SetDefault("groups.default_color", string(defaults.Groups.DefaultColor))
}

func (m *Manager) setPersistenceDefaults(defaults *Config) {
	m.viper.SetDefault("persistence.enabled", defaults.Persistence.Enabled)
	m.viper.SetDefault("persistence.database_path", defaults.Persistence.DatabasePath)
	m.viper.SetDefault("persistence.snapshot_interval_ms", defaults.Persistence.SnapshotIntervalMs)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age", defaults.Logging.MaxAge)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)
}

// RotatorConfig returns the file logger settings, resolving an empty LogDir
// to the XDG log directory.
func (c LoggingConfig) RotatorConfig() (logging.RotatorConfig, error) {
	dir := c.LogDir
	if dir == "" {
		var err error
		if dir, err = GetLogDir(); err != nil {
			return logging.RotatorConfig{}, fmt.Errorf("failed to get log directory: %w", err)
		}
	}
	return logging.RotatorConfig{
		Dir:        dir,
		FileName:   appName + ".log",
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAge:     time.Duration(c.MaxAge) * 24 * time.Hour,
		Compress:   c.Compress,
	}, nil
}

// New returns a new default configuration instance.
func New() *Config {
	return DefaultConfig()
}

// Global configuration manager instance
var globalManager *Manager
var globalManagerOnce sync.Once

// Init initializes the global configuration manager.
func Init() error {
	var err error
	globalManagerOnce.Do(func() {
		globalManager, err = NewManager()
		if err != nil {
			return
		}
		err = globalManager.Load()
	})
	return err
}

// Get returns the global configuration.
func Get() *Config {
	if globalManager == nil || globalManager.config == nil {
		// Return defaults if not initialized
		return DefaultConfig()
	}
	return globalManager.Get()
}

// GetManager returns the global configuration manager.
func GetManager() *Manager {
	return globalManager
}
