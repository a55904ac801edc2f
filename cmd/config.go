// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Thermoquad/hopper/pkg/adapter"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// fileConfig mirrors the keys accepted in a --config TOML file
type fileConfig struct {
	Port        string `toml:"port"`
	Baud        int    `toml:"baud"`
	Timeout     string `toml:"timeout"`
	TimeoutMS   int64  `toml:"timeout_ms"`
	URL         string `toml:"url"`
	Username    string `toml:"username"`
	NoSSLVerify bool   `toml:"no_ssl_verify"`
	LogLevel    string `toml:"log_level"`
}

// settings is the resolved configuration for one CLI invocation
type settings struct {
	Adapter     adapter.Config
	URL         string
	Username    string
	NoSSLVerify bool
	LogLevel    zerolog.Level
}

func defaultSettings() settings {
	return settings{
		Adapter:  adapter.DefaultConfig(),
		LogLevel: zerolog.WarnLevel,
	}
}

// loadSettingsFile overlays the keys defined in a TOML file onto base
func loadSettingsFile(path string, base settings) (settings, error) {
	cfg := base

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return settings{}, &adapter.ConfigError{Key: "config", Message: fmt.Sprintf("load %s: %v", path, err)}
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return settings{}, &adapter.ConfigError{Key: undecoded[0].String(), Message: "unknown key in " + path}
	}

	if meta.IsDefined("port") {
		cfg.Adapter.Port = strings.TrimSpace(raw.Port)
	}

	if meta.IsDefined("baud") {
		cfg.Adapter.BaudRate = raw.Baud
	}

	if meta.IsDefined("timeout") {
		d, err := parseTimeout(raw.Timeout)
		if err != nil {
			return settings{}, err
		}
		cfg.Adapter.Timeout = d
	}

	if meta.IsDefined("timeout_ms") {
		cfg.Adapter.Timeout = time.Duration(raw.TimeoutMS) * time.Millisecond
	}

	if meta.IsDefined("url") {
		cfg.URL = strings.TrimSpace(raw.URL)
	}

	if meta.IsDefined("username") {
		cfg.Username = strings.TrimSpace(raw.Username)
	}

	if meta.IsDefined("no_ssl_verify") {
		cfg.NoSSLVerify = raw.NoSSLVerify
	}

	if meta.IsDefined("log_level") {
		level, err := parseLogLevel(raw.LogLevel)
		if err != nil {
			return settings{}, err
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

// resolveSettings applies defaults, then the config file, then explicitly set flags
func resolveSettings(flags *pflag.FlagSet) (settings, error) {
	cfg := defaultSettings()

	if configPath != "" {
		var err error
		cfg, err = loadSettingsFile(configPath, cfg)
		if err != nil {
			return settings{}, err
		}
	}

	if flags.Changed("port") {
		cfg.Adapter.Port = strings.TrimSpace(portName)
	}
	if flags.Changed("baud") {
		cfg.Adapter.BaudRate = baudRate
	}
	if flags.Changed("timeout") {
		d, err := parseTimeout(timeout)
		if err != nil {
			return settings{}, err
		}
		cfg.Adapter.Timeout = d
	}
	if flags.Changed("url") {
		cfg.URL = strings.TrimSpace(wsURL)
	}
	if flags.Changed("username") {
		cfg.Username = strings.TrimSpace(wsUsername)
	}
	if flags.Changed("no-ssl-verify") {
		cfg.NoSSLVerify = wsNoSSLVerify
	}
	if flags.Changed("log-level") {
		level, err := parseLogLevel(logLevel)
		if err != nil {
			return settings{}, err
		}
		cfg.LogLevel = level
	}

	// The WebSocket URL identifies the session when no serial port is used
	if cfg.URL != "" {
		cfg.Adapter.Port = cfg.URL
	}

	if err := cfg.Adapter.Validate(); err != nil {
		return settings{}, err
	}
	return cfg, nil
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, &adapter.ConfigError{Key: "timeout", Message: err.Error()}
	}
	return d, nil
}

func parseLogLevel(s string) (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.NoLevel, &adapter.ConfigError{Key: "log_level", Message: fmt.Sprintf("unknown level %q", s)}
	}
	return level, nil
}
