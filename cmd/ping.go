// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Thermoquad/hopper/pkg/adapter"
	"github.com/spf13/cobra"
)

var (
	pingCount    int
	pingInterval time.Duration
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Repeat hello world requests and report round trip times",
	Long: `Send SAY_HELLO_WORLD several times over one connection and time each reply.

Each attempt waits at most the read timeout. Useful for checking a WebSocket
bridge or a flaky serial cable over a longer period than "hello".

Exit codes:
  0 - All requests answered
  1 - One or more requests timed out or failed
  2 - Connection error`,
	Args: cobra.NoArgs,
	RunE: runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
	pingCmd.Flags().IntVar(&pingCount, "count", 3, "Number of hello world requests to send")
	pingCmd.Flags().DurationVar(&pingInterval, "interval", 100*time.Millisecond, "Delay between requests")
}

func runPing(cmd *cobra.Command, args []string) error {
	if pingCount < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", pingCount)
	}

	session, conn, connInfo, err := openSession(current)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	fmt.Printf("Hopper - Hello World Ping\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Timeout: %s per request\n", session.Config().Timeout)
	fmt.Printf("Count: %d requests\n\n", pingCount)

	replies := 0
	for i := 1; i <= pingCount; i++ {
		fmt.Printf("Hello %d/%d: ", i, pingCount)

		start := time.Now()
		result, reply, err := session.CheckConnection()
		rtt := time.Since(start)

		switch {
		case err != nil:
			fmt.Printf("FAILED: %v\n", err)
		case result == adapter.Connected:
			fmt.Printf("%s, reply=%s, rtt=%v\n", result, adapter.Printable(reply), rtt.Round(time.Millisecond))
			replies++
		default:
			fmt.Printf("TIMEOUT (no reply in %s)\n", session.Config().Timeout)
		}

		if i < pingCount {
			time.Sleep(pingInterval)
		}
	}

	failed := pingCount - replies

	// Summary
	fmt.Printf("\n--- Ping statistics ---\n")
	fmt.Printf("%d requests sent, %d replies received, %.0f%% loss\n",
		pingCount, replies, float64(failed)/float64(pingCount)*100)

	if failed > 0 {
		os.Exit(1)
	}
	return nil
}
