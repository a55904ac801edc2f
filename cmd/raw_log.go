// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/Thermoquad/hopper/pkg/adapter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rawLogCmd = &cobra.Command{
	Use:   "raw_log",
	Short: "Display reply lines from the adapter as they arrive",
	Long: `Continuously read and display lines sent by the adapter board.

Each line is shown with a timestamp and its bytes escaped, which helps when
checking OK/NOK replies by hand while another tool sends commands.

Supports both serial and WebSocket connections.`,
	Args: cobra.NoArgs,
	RunE: runRawLog,
}

func init() {
	rootCmd.AddCommand(rawLogCmd)
}

func runRawLog(cmd *cobra.Command, args []string) error {
	// Open connection (serial or WebSocket)
	conn, connInfo, err := OpenConnection(current)
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Printf("Hopper - Raw Reply Log\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	transport := adapter.NewLineTransport(conn, current.Adapter.Timeout)

	for {
		line, err := transport.ReadLine()
		if err != nil {
			// For WebSocket connections, a read error usually means
			// the connection is permanently closed - exit gracefully
			if errors.Is(err, ErrConnectionClosed) {
				log.Info().Msg("connection closed")
				return nil
			}
			log.Error().Err(err).Msg("read error")
			// Brief pause before retry on transient errors (e.g., serial)
			time.Sleep(10 * time.Millisecond)
			continue
		}
		if len(line) == 0 {
			continue
		}
		fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05.000"), adapter.Printable(line))
	}
}
