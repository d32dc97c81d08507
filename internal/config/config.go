package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"thumbline/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version   int               `toml:"version"`
	Indicator IndicatorSettings `toml:"indicator"`
	List      ListSettings      `toml:"list"`
	Logging   LoggingSettings   `toml:"logging"`
}

// IndicatorSettings configures the custom scroll indicator
type IndicatorSettings struct {
	Enabled        bool    `toml:"enabled"`
	Width          int     `toml:"width"`            // thumb column width in cells
	MinThumbHeight float64 `toml:"min_thumb_height"` // floor for the thumb height
	TransitionMs   int     `toml:"transition_ms"`    // geometry animation duration
}

// ListSettings configures the wrapped list itself
type ListSettings struct {
	ShowPositionIndicator bool `toml:"show_position_indicator"` // the list's own "more above/below" lines
}

// LoggingSettings configures log output
type LoggingSettings struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	thumblineDir := filepath.Join(configDir, "thumbline")
	os.MkdirAll(thumblineDir, 0755)

	return &configService{
		filePath: filepath.Join(thumblineDir, "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	// Check if config file exists
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		// Return default config if file doesn't exist
		cfg := DefaultConfig()

		if cs.bus != nil {
			cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: ""})
		}

		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	// Check if config file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse on top of the defaults so absent keys keep their default values
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Indicator.Width <= 0 {
		cfg.Indicator.Width = DefaultIndicatorWidth
	}
	if cfg.Indicator.TransitionMs <= 0 {
		cfg.Indicator.TransitionMs = DefaultTransitionMs
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Defaults for the indicator settings
const (
	DefaultIndicatorWidth = 1
	DefaultMinThumbHeight = 10.0
	DefaultTransitionMs   = 50
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Indicator: IndicatorSettings{
			Enabled:        true,
			Width:          DefaultIndicatorWidth,
			MinThumbHeight: DefaultMinThumbHeight,
			TransitionMs:   DefaultTransitionMs,
		},
		List: ListSettings{
			ShowPositionIndicator: true,
		},
		Logging: LoggingSettings{
			Level: "info",
		},
	}
}
