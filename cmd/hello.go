// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Thermoquad/hopper/pkg/adapter"
	"github.com/spf13/cobra"
)

var helloCmd = &cobra.Command{
	Use:   "hello",
	Short: "Check the connection with a hello world request",
	Long: `Send SAY_HELLO_WORLD and wait for one reply line until the read timeout.

The check is a single attempt; it never retries.

Exit codes:
  0 - Reply received before timeout
  1 - Timeout reached without a reply
  2 - Connection or transport error`,
	Args: cobra.NoArgs,
	RunE: runHello,
}

func init() {
	rootCmd.AddCommand(helloCmd)
}

func runHello(cmd *cobra.Command, args []string) error {
	session, conn, connInfo, err := openSession(current)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("Requested Hello World on %s\n", connInfo)
	result, line, err := session.CheckConnection()
	conn.Close()

	if err != nil {
		var ioErr *adapter.IOError
		if errors.As(err, &ioErr) {
			fmt.Fprintf(os.Stderr, "Transport error: %v\n", err)
			os.Exit(2)
		}
		return err
	}

	switch result {
	case adapter.Connected:
		fmt.Printf("SUCCESS: Received Hello World on %s\n", connInfo)
		fmt.Printf("  Reply: %s\n", strings.TrimRight(string(line), "\r\n"))
		return nil
	default:
		fmt.Fprintf(os.Stderr, "TIMEOUT: No reply within %s on %s\n", session.Config().Timeout, connInfo)
		os.Exit(1)
	}

	return nil
}
