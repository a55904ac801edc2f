// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package adapter

import (
	"fmt"
	"strings"
	"time"
)

// Default connection settings of the adapter board
const (
	DefaultPort     = "/dev/ttyAMA0"
	DefaultBaudRate = 115200
	DefaultTimeout  = 1 * time.Second
)

// Config holds the session's connection settings.
// It is fixed when the Session is created.
type Config struct {
	Port     string
	BaudRate int
	Timeout  time.Duration
}

// DefaultConfig returns the adapter's factory connection settings
func DefaultConfig() Config {
	return Config{
		Port:     DefaultPort,
		BaudRate: DefaultBaudRate,
		Timeout:  DefaultTimeout,
	}
}

// Validate returns a ConfigError for the first invalid setting
func (c Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return &ConfigError{Key: "port", Message: "must not be empty"}
	}
	if c.BaudRate <= 0 {
		return &ConfigError{Key: "baud", Message: fmt.Sprintf("must be positive, got %d", c.BaudRate)}
	}
	if c.Timeout <= 0 {
		return &ConfigError{Key: "timeout", Message: fmt.Sprintf("must be positive, got %s", c.Timeout)}
	}
	return nil
}

// String returns a formatted configuration summary
func (c Config) String() string {
	result := fmt.Sprintf("Selected port:     %s\n", c.Port)
	result += fmt.Sprintf("Selected baudrate: %d\n", c.BaudRate)
	result += fmt.Sprintf("Selected timeout:  %s\n", c.Timeout)
	return result
}
