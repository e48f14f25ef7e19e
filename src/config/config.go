// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied before any file or environment value.
const (
	// DefaultAuthority is the token authority base URL.
	DefaultAuthority = "https://login.microsoftonline.com"

	// DefaultGraphBaseURL is the versioned directory API root.
	DefaultGraphBaseURL = "https://graph.microsoft.com/v1.0"

	// DefaultScope is the resource-wide application scope.
	DefaultScope = "https://graph.microsoft.com/.default"

	// DefaultTimeout is the HTTP timeout in seconds.
	DefaultTimeout = 30
)

// ErrIncomplete indicates that a required identity field is missing.
var ErrIncomplete = errors.New("config: tenantId and clientId are required")

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config holds the client identity and endpoint settings for a run.
//
// The configuration can be loaded from a JSON or YAML file specified on the
// command line or by the GRAPH_LOOKUP_CONFIG_FILE environment variable, with
// defaults applied for any missing values. Supported file extensions:
// .json, .yaml, .yml
type Config struct {
	// TenantID: Directory tenant the client application belongs to
	TenantID string `json:"tenantId" yaml:"tenantId"`
	// ClientID: Application (client) identifier
	ClientID string `json:"clientId" yaml:"clientId"`
	// Authority: Token authority base URL
	Authority string `json:"authority,omitempty" yaml:"authority,omitempty"`
	// GraphBaseURL: Versioned directory API root
	GraphBaseURL string `json:"graphBaseUrl,omitempty" yaml:"graphBaseUrl,omitempty"`
	// Scopes: OAuth2 scopes requested for the access token
	Scopes []string `json:"scopes,omitempty" yaml:"scopes,omitempty"`
	// Timeout: HTTP timeout in seconds for authority and directory calls
	Timeout int `json:"timeoutSeconds,omitempty" yaml:"timeoutSeconds,omitempty"`
}

// detectConfigFormat determines the configuration file format based on file extension.
//
// Parameters:
//   - configPath: Path to the configuration file
//
// Returns:
//   - configFormat: The detected format (configFormatJSON or configFormatYAML)
//
// The function uses case-insensitive extension matching for cross-platform compatibility.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
//
// Parameters:
//   - data: Raw configuration file contents
//   - config: Pointer to Config struct to populate
//   - format: The configuration format (configFormatJSON or configFormatYAML)
//
// Returns:
//   - error: Any parsing error encountered during unmarshaling
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// Load loads configuration from a JSON or YAML file and applies defaults.
//
// Parameters:
//   - configPath: Path to the configuration file (optional, can be empty)
//     Supported formats: .json, .yaml, .yml
//
// Returns:
//   - A pointer to the loaded Config struct with defaults applied
//   - An error if the configuration file cannot be read or parsed
//
// Configuration Priority:
//  1. Default values are set
//  2. GRAPH_LOOKUP_CONFIG_FILE environment variable is checked if configPath is empty
//  3. Config file values override defaults (if file exists and is valid)
//  4. AZURE_TENANT_ID / AZURE_CLIENT_ID environment variables fill in missing identity fields
func Load(configPath string) (*Config, error) {
	config := &Config{
		Authority:    DefaultAuthority,
		GraphBaseURL: DefaultGraphBaseURL,
		Scopes:       []string{DefaultScope},
		Timeout:      DefaultTimeout,
	}

	// Check environment variable for config file path if not provided
	if configPath == "" {
		configPath = os.Getenv("GRAPH_LOOKUP_CONFIG_FILE")
	}

	// Try to load from file if path is provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Detect format and unmarshal accordingly
		format := detectConfigFormat(configPath)
		if err := unmarshalConfig(data, config, format); err != nil {
			return nil, err
		}

		// Validate and set defaults for invalid values
		if config.Authority == "" {
			config.Authority = DefaultAuthority
		}
		if config.GraphBaseURL == "" {
			config.GraphBaseURL = DefaultGraphBaseURL
		}
		if len(config.Scopes) == 0 {
			config.Scopes = []string{DefaultScope}
		}
		if config.Timeout <= 0 {
			config.Timeout = DefaultTimeout
		}
	}

	// Fill in identity from environment if not set in config
	if config.TenantID == "" {
		config.TenantID = os.Getenv("AZURE_TENANT_ID")
	}
	if config.ClientID == "" {
		config.ClientID = os.Getenv("AZURE_CLIENT_ID")
	}

	return config, nil
}

// Validate reports whether the configuration identifies a client application.
func (c *Config) Validate() error {
	if c.TenantID == "" || c.ClientID == "" {
		return ErrIncomplete
	}
	return nil
}
