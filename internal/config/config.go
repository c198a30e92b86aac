// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/med/internal/logger"
	"gopkg.in/yaml.v3"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger   logger.Config     `toml:"logger" yaml:"logger"`
	Editor   EditorConfig      `toml:"editor" yaml:"editor"`
	Keys     map[string]string `toml:"keys" yaml:"keys"`         // operation name -> key
	Commands map[string]string `toml:"commands" yaml:"commands"` // ctrl+<letter> -> command name
	Metrics  MetricsConfig     `toml:"metrics" yaml:"metrics"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	StatusBarHeight int    `toml:"status_bar_height" yaml:"status_bar_height"`
	MessageTimeout  string `toml:"message_timeout" yaml:"message_timeout"` // Go duration, e.g. "4s"
	SystemClipboard bool   `toml:"system_clipboard" yaml:"system_clipboard"`
	Theme           string `toml:"theme" yaml:"theme"`
	ThemesDir       string `toml:"themes_dir" yaml:"themes_dir"`
}

// MessageTimeoutDuration parses MessageTimeout, falling back to the default.
func (e EditorConfig) MessageTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(e.MessageTimeout)
	if err != nil || d <= 0 {
		return MessageTimeout
	}
	return d
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Addr    string `toml:"addr" yaml:"addr"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			StatusBarHeight: StatusBarHeight,
			MessageTimeout:  MessageTimeout.String(),
			SystemClipboard: SystemClipboard,
			Theme:           DefaultTheme,
			ThemesDir:       ThemesDir(),
		},
		Keys:     map[string]string{},
		Commands: map[string]string{},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    DefaultMetricsAddr,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/med/config.toml, or "" when the user
// config directory is unknown.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
}

// ThemesDir returns $XDG_CONFIG_HOME/med/themes, or "" when the user config
// directory is unknown.
func ThemesDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName, ThemesDirName)
}

// loadFromFile decodes filePath on top of cfg. The format follows the file
// extension: .yaml/.yml use YAML, anything else TOML. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		logger.Debugf("Config file not found: %s", filePath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading config file '%s': %w", filePath, err)
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
		}
	default:
		metadata, err := toml.Decode(string(data), cfg)
		if err != nil {
			return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
		}
		if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
			logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, undecoded)
		}
	}
	logger.Infof("Loaded configuration from: %s", filePath)
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	if d, err := time.ParseDuration(c.Editor.MessageTimeout); err != nil || d <= 0 {
		c.Editor.MessageTimeout = defaults.Editor.MessageTimeout
	}
	if c.Editor.Theme == "" {
		c.Editor.Theme = defaults.Editor.Theme
	}
	if c.Editor.ThemesDir == "" {
		c.Editor.ThemesDir = defaults.Editor.ThemesDir
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = defaults.Metrics.Addr
	}
	if c.Keys == nil {
		c.Keys = defaults.Keys
	}
	if c.Commands == nil {
		c.Commands = defaults.Commands
	}
}

// Load builds a configuration from defaults, the file at path (DefaultPath()
// when empty) and flag overrides, in that order.
func Load(path string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	if path == "" && flags != nil {
		path = flags.ConfigFilePath
	}
	if path == "" {
		path = DefaultPath()
	}

	var err error
	if path != "" {
		err = loadFromFile(path, cfg)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, err
}

// LoadConfig runs Load once and stores the result for Get. It should be
// called only once, typically from main.
func LoadConfig(path string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(path, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
