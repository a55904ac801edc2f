// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var controlCmd = &cobra.Command{
	Use:   "control",
	Short: "Interactive TUI for driving the adapter board",
	Long: `Drive the adapter board from an interactive terminal UI.

Type a command line and press Enter to send it. The event log shows every
frame sent, hello world replies and rejected commands.

Commands:
` + grammarHelp() + `

Other input:
  stats   show session statistics
  help    list commands
  quit    exit (also Esc or Ctrl+C)

Supports both serial and WebSocket connections.`,
	Args: cobra.NoArgs,
	RunE: runControl,
}

func init() {
	rootCmd.AddCommand(controlCmd)
}

func runControl(cmd *cobra.Command, args []string) error {
	// Console log lines would tear the alt screen
	log.Logger = log.Logger.Level(zerolog.Disabled)

	session, conn, connInfo, err := openSession(current)
	if err != nil {
		return err
	}
	defer conn.Close()

	m := initialControlModel(session, connInfo)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
