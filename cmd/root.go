// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Config file flag
	configPath string

	// Serial connection flags
	portName string
	baudRate int
	timeout  string

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Logging flags
	logLevel string

	// Resolved once in PersistentPreRunE
	current settings
)

var rootCmd = &cobra.Command{
	Use:   "hopper",
	Short: "Feed/motion adapter command tool",
	Long: `Hopper - A CLI tool for driving the feed/motion adapter board.

Encodes stepper, food dispenser and water pump commands into the adapter's
fixed 21-byte frames and sends them over a serial port or a WebSocket bridge.

Connection modes:
  Serial:    --port /dev/ttyAMA0 [--baud 115200] [--timeout 1s]
  WebSocket: --url ws://host/path [--username user]

Settings may also come from a TOML file given with --config. Flags that are
set explicitly override the file.

For WebSocket authentication, the password is read from the HOPPER_PASSWORD
environment variable, or prompted interactively if not set.`,
	Version:           "0.3.0",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file")

	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", defaultSettings().Adapter.Port, "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", defaultSettings().Adapter.BaudRate, "Baud rate (serial only)")
	rootCmd.PersistentFlags().StringVarP(&timeout, "timeout", "t", defaultSettings().Adapter.Timeout.String(), "Reply read timeout")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultSettings().LogLevel.String(), "Log level (debug, info, warn, error)")
}

// loadSettings resolves defaults, the config file and flags, then sets up logging
func loadSettings(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd.Flags())
	if err != nil {
		return err
	}
	current = s
	initLogger(s.LogLevel)
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
