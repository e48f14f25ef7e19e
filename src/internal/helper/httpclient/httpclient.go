// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package httpclient

import (
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Config holds HTTP client configuration shared by the token and directory clients.
type Config struct {
	Timeout   time.Duration // HTTP request timeout
	Version   string        // Application version for User-Agent
	UserAgent string        // Custom User-Agent string, if empty will be constructed from Version

	mu     sync.Mutex
	client *http.Client
}

// NewConfig creates a new HTTP configuration with default values.
//
// It initializes the configuration with a default timeout of 30 seconds
// and the provided application version.
//
// Parameters:
//   - version: Application version string
//
// Returns:
//   - *Config: New HTTP configuration
func NewConfig(version string) *Config {
	return &Config{
		Timeout:   30 * time.Second,
		Version:   version,
		UserAgent: "",
	}
}

// GetUserAgent returns the User-Agent string, constructing it if not set.
//
// If a custom User-Agent is configured, it returns that. Otherwise, it
// constructs a default one including the application version and GitHub URL.
//
// Returns:
//   - string: User-Agent string
func (c *Config) GetUserAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return fmt.Sprintf("Graph-UPN-Lookup/%s (+https://github.com/H0llyW00dzZ/graph-upn-lookup)", c.Version)
}

// Client returns an HTTP client configured with the current timeout.
//
// It creates or reuses an http.Client, ensuring it uses the configured timeout.
//
// Returns:
//   - *http.Client: Configured HTTP client
//
// Thread Safety: Safe for concurrent use.
func (c *Config) Client() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		c.client = &http.Client{Timeout: c.Timeout}
		return c.client
	}

	if c.client.Timeout != c.Timeout {
		c.client.Timeout = c.Timeout
	}

	return c.client
}
