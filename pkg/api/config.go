// Package api serves configuration validation over HTTP
package api

import "errors"

// ErrAPIAddrRequired is returned when no listen address is configured
var (
	ErrAPIAddrRequired = errors.New("api address is required")
)

// Config represents API service configuration
type Config struct {
	Addr string `yaml:"addr" default:":8080"`
}

// Validate validates the API configuration
func (c *Config) Validate() error {
	if c.Addr == "" {
		return ErrAPIAddrRequired
	}
	return nil
}
