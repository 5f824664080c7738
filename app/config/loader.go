package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of the watch configuration
type Loader struct {
	path string
}

// NewLoader creates a new configuration loader
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and validates the YAML watch configuration file
func (l *Loader) Load() (*WatchConfig, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config WatchConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.setDefaults(&config)

	if err := l.validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", l.path, err)
	}

	return &config, nil
}

// setDefaults applies default values to configuration
func (l *Loader) setDefaults(config *WatchConfig) {
	if config.Marker == "" {
		config.Marker = "BGSDS"
	}
	if config.Settings.ListingTimeout == 0 {
		config.Settings.ListingTimeout = 30 // seconds
	}
	if config.Settings.DocumentTimeout == 0 {
		config.Settings.DocumentTimeout = 120 // seconds, PDFs may be large
	}
	if config.Settings.NotifyTimeout == 0 {
		config.Settings.NotifyTimeout = 30 // seconds
	}
}

// validate validates the configuration
func (l *Loader) validate(config *WatchConfig) error {
	if config.URL == "" {
		return fmt.Errorf("listing URL is required")
	}

	parsed, err := url.Parse(config.URL)
	if err != nil || !parsed.IsAbs() {
		return fmt.Errorf("listing URL must be absolute: %q", config.URL)
	}

	for i, keyword := range config.Keywords {
		if keyword == "" {
			return fmt.Errorf("keyword %d is empty", i+1)
		}
	}

	return nil
}
