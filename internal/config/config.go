package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kassa/internal/errors"
	"kassa/internal/format"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the client configuration: where the checkout API
// lives, how alerts behave, how prices are displayed, and UI defaults.
type Config struct {
	Server struct {
		URL            string `yaml:"url"`             // Base URL of the checkout API
		Event          string `yaml:"event"`           // Event slug appended to the API path
		TimeoutSeconds int    `yaml:"timeout_seconds"` // Per-request timeout
	} `yaml:"server"`
	Alert struct {
		BlinkCount      int  `yaml:"blink_count"`       // Number of on/off toggles per blink sequence
		BlinkIntervalMS int  `yaml:"blink_interval_ms"` // Delay between toggles
		Sound           bool `yaml:"sound"`             // Ring the terminal bell on alerts
	} `yaml:"alert"`
	Price struct {
		Rounded bool   `yaml:"rounded"` // Show nearest-5 rounded value alongside exact price
		Prefix  string `yaml:"prefix"`  // Currency prefix, e.g. "$"
		Suffix  string `yaml:"suffix"`  // Currency suffix, e.g. " €"
	} `yaml:"price"`
	UI struct {
		StartMode string `yaml:"start_mode"` // Mode activated when the TUI starts
		Theme     string `yaml:"theme"`      // Theme name
	} `yaml:"ui"`
	Log struct {
		File  string `yaml:"file"`  // Log file used while the TUI owns the terminal
		Level string `yaml:"level"` // debug, info, warn, error
		JSON  bool   `yaml:"json"`  // JSON log lines
	} `yaml:"log"`
	Theme struct {
		Name     string `yaml:"name"`
		Primary  string `yaml:"primary"`
		Success  string `yaml:"success"`
		Warning  string `yaml:"warning"`
		Error    string `yaml:"error"`
		Info     string `yaml:"info"`
		Emphasis string `yaml:"emphasis"`
		Border   string `yaml:"border"`
	} `yaml:"theme"`
}

// Dir returns the configuration directory (~/.config/kassa).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "kassa"), nil
}

// DefaultPath returns ~/.config/kassa/config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
// Environment overrides are applied after the file is merged.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	if err == nil {
		var tempCfg Config
		if err := yaml.Unmarshal(data, &tempCfg); err != nil {
			return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
		}
		cfg.merge(&tempCfg)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv reads a .env file from the working directory, if present.
// Variables already set in the environment win.
func LoadEnv() bool {
	return godotenv.Load(".env") == nil
}

// merge copies every value set in other over c. Booleans are always
// taken from the file, matching how they are written by SaveConfig.
func (c *Config) merge(other *Config) {
	if other.Server.URL != "" {
		c.Server.URL = other.Server.URL
	}
	if other.Server.Event != "" {
		c.Server.Event = other.Server.Event
	}
	if other.Server.TimeoutSeconds != 0 {
		c.Server.TimeoutSeconds = other.Server.TimeoutSeconds
	}

	if other.Alert.BlinkCount != 0 {
		c.Alert.BlinkCount = other.Alert.BlinkCount
	}
	if other.Alert.BlinkIntervalMS != 0 {
		c.Alert.BlinkIntervalMS = other.Alert.BlinkIntervalMS
	}
	c.Alert.Sound = other.Alert.Sound

	c.Price.Rounded = other.Price.Rounded
	if other.Price.Prefix != "" {
		c.Price.Prefix = other.Price.Prefix
	}
	if other.Price.Suffix != "" {
		c.Price.Suffix = other.Price.Suffix
	}

	if other.UI.StartMode != "" {
		c.UI.StartMode = other.UI.StartMode
	}
	if other.UI.Theme != "" {
		c.UI.Theme = other.UI.Theme
	}

	if other.Log.File != "" {
		c.Log.File = other.Log.File
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	c.Log.JSON = other.Log.JSON

	c.ApplyTheme(c.UI.Theme)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("KASSA_SERVER_URL"); v != "" {
		c.Server.URL = v
	}
	if v := os.Getenv("KASSA_EVENT"); v != "" {
		c.Server.Event = v
	}
	if v := os.Getenv("KASSA_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Server.URL = "http://localhost:8000"
	cfg.Server.TimeoutSeconds = 10

	cfg.Alert.BlinkCount = 6
	cfg.Alert.BlinkIntervalMS = 150
	cfg.Alert.Sound = true

	cfg.Price.Rounded = false
	cfg.Price.Suffix = " €"

	cfg.UI.StartMode = "item_find"
	cfg.UI.Theme = "default"

	cfg.Log.Level = "info"
	if dir, err := Dir(); err == nil {
		cfg.Log.File = filepath.Join(dir, "kassa.log")
	}

	cfg.ApplyTheme(cfg.UI.Theme)
	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrInvalidConfig
	}

	u, err := url.Parse(c.Server.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.NewConfigError("invalid server url", "server.url", errors.InvalidConfig, err)
	}
	if c.Server.TimeoutSeconds < 1 {
		return errors.NewConfigError("timeout must be >= 1 second", "server.timeout_seconds", errors.InvalidConfig, nil)
	}

	if c.Alert.BlinkCount < 0 {
		return errors.NewConfigError("blink count must be >= 0", "alert.blink_count", errors.InvalidConfig, nil)
	}
	if c.Alert.BlinkIntervalMS < 10 {
		return errors.NewConfigError("blink interval must be >= 10ms", "alert.blink_interval_ms", errors.InvalidConfig, nil)
	}

	if c.UI.StartMode == "" {
		return errors.NewConfigError("start mode is required", "ui.start_mode", errors.InvalidConfig, nil)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.NewConfigError("invalid log level", "log.level", errors.InvalidConfig, nil)
	}
	return nil
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}

// BlinkInterval returns the delay between alert toggles.
func (c *Config) BlinkInterval() time.Duration {
	return time.Duration(c.Alert.BlinkIntervalMS) * time.Millisecond
}

// Currency returns the configured price decoration.
func (c *Config) Currency() format.Currency {
	return format.Currency{Prefix: c.Price.Prefix, Suffix: c.Price.Suffix}
}

// NewTestConfig creates a configuration instance for testing purposes.
func NewTestConfig() *Config {
	cfg := defaultConfig()
	cfg.Server.URL = "http://kassa.test"
	cfg.Server.Event = "testcon"
	cfg.Alert.BlinkCount = 4
	cfg.Alert.BlinkIntervalMS = 10
	cfg.Alert.Sound = false
	cfg.Log.File = ""
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary":  "213", // Purple
			"success":  "114", // Green
			"warning":  "220", // Yellow
			"error":    "196", // Red
			"info":     "39",  // Blue
			"emphasis": "212", // Light Pink
			"border":   "213", // Purple
		},
		"dark": {
			"primary":  "105",
			"success":  "78",
			"warning":  "214",
			"error":    "160",
			"info":     "33",
			"emphasis": "147",
			"border":   "105",
		},
		"light": {
			"primary":  "135",
			"success":  "150",
			"warning":  "222",
			"error":    "210",
			"info":     "117",
			"emphasis": "219",
			"border":   "135",
		},
		"monochrome": {
			"primary":  "245",
			"success":  "252",
			"warning":  "241",
			"error":    "255",
			"info":     "248",
			"emphasis": "255",
			"border":   "245",
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}
	return themes["default"]
}

// ApplyTheme sets the theme colors from a named theme.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Success = theme["success"]
	c.Theme.Warning = theme["warning"]
	c.Theme.Error = theme["error"]
	c.Theme.Info = theme["info"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Border = theme["border"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
