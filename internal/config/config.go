package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
)

// Config represents the application configuration
type Config struct {
	// DataDir holds the database, socket and logs unless overridden below
	DataDir  string `yaml:"data_dir"`
	Database string `yaml:"database"`
	Socket   string `yaml:"socket"`
	LogLevel string `yaml:"log_level"`

	HTTP   HTTPConfig   `yaml:"http"`
	Events EventsConfig `yaml:"events"`

	// Columns overrides column titles, keyed by status
	Columns map[string]string `yaml:"columns,omitempty"`

	KeyMappings KeyMappings `yaml:"key_mappings"`
	Theme       Theme       `yaml:"theme"`
}

// HTTPConfig configures `kanban serve`
type HTTPConfig struct {
	Addr string `yaml:"addr"`
	// RateLimit is the number of requests per second allowed per client.
	// Unset means 10; a negative value disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
}

// EventsConfig configures the daemon client
type EventsConfig struct {
	// DebounceMS is the batching window; 0 keeps the client default
	DebounceMS int `yaml:"debounce_ms"`
}

// Default returns a config with every field set
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the config file named by KANBAN_CONFIG, or the one in the
// user's config directory. A missing file yields the defaults.
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(configPath)
}

// LoadFrom reads the config at path. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &config, nil
}

// Save writes the config to Path()
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the config to path, creating its directory
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Path returns the config file location
func Path() (string, error) {
	if p := os.Getenv("KANBAN_CONFIG"); p != "" {
		return p, nil
	}

	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "kanban", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "kanban", "config.yaml"), nil
}

// Validate reports every invalid field at once
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.DataDir, validation.Required),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.HTTP),
		validation.Field(&c.Events),
	); err != nil {
		return err
	}

	for key := range c.Columns {
		if _, err := models.ParseStatus(key); err != nil {
			return fmt.Errorf("columns: %w", err)
		}
	}
	return nil
}

// Validate implements validation.Validatable
func (h HTTPConfig) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Addr, validation.Required),
	)
}

// Validate implements validation.Validatable
func (e EventsConfig) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.DebounceMS, validation.Min(0)),
	)
}

// DatabasePath returns the sqlite file path
func (c *Config) DatabasePath() string {
	if c.Database != "" {
		return c.Database
	}
	return filepath.Join(c.DataDir, "kanban.db")
}

// SocketPath returns the daemon socket path
func (c *Config) SocketPath() string {
	if c.Socket != "" {
		return c.Socket
	}
	return filepath.Join(c.DataDir, "kanban.sock")
}

// LogDir returns the directory log files are written to
func (c *Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// Debounce returns the configured event batching window, or 0 for the default
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Events.DebounceMS) * time.Millisecond
}

// ColumnTitles returns the title overrides keyed by status. Unknown keys are
// rejected by Validate and skipped here.
func (c *Config) ColumnTitles() map[models.Status]string {
	titles := make(map[models.Status]string, len(c.Columns))
	for key, title := range c.Columns {
		if status, err := models.ParseStatus(key); err == nil && title != "" {
			titles[status] = title
		}
	}
	return titles
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = "127.0.0.1:8080"
	}
	if c.HTTP.RateLimit == 0 {
		c.HTTP.RateLimit = 10
	}
	c.KeyMappings.applyDefaults()
	c.Theme.applyDefaults()
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".kanban"
	}
	return filepath.Join(homeDir, ".kanban")
}
