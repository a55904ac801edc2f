// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Thermoquad/hopper/pkg/adapter"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <command> [args...]",
	Short: "Print the frame for a command without sending it",
	Long: `Encode a command into its 21-byte frame and print it. Nothing is sent.

Flag parsing is disabled for this command so negative values can be given
directly, e.g. "hopper encode rotate 1234 -9999 0".

Commands:
` + grammarHelp(),
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 && (args[0] == "-h" || args[0] == "--help") {
			return cmd.Help()
		}
		return runEncode(os.Stdout, args)
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode <hex>",
	Short: "Decode a frame given as hex bytes",
	Long: `Decode a 21-byte frame given as hex and print the command it carries.

Spaces between hex pairs are allowed, e.g.
  hopper decode "30 54 54 54 54 54 54 54 54 54 54 54 54 54 54 54 54 54 54 0A 0D"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDecode(os.Stdout, strings.Join(args, ""))
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List all commands with opcodes and field layouts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printCatalog(os.Stdout)
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved connection configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printSettings(os.Stdout, current)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd, decodeCmd, catalogCmd, configCmd)
}

func runEncode(w io.Writer, args []string) error {
	command, err := parseCommandLine(args)
	if err != nil {
		return err
	}

	frame, err := adapter.Encode(command)
	if err != nil {
		return err
	}

	fmt.Fprint(w, adapter.FormatFrame(frame))
	return nil
}

func runDecode(w io.Writer, hexText string) error {
	raw, err := hex.DecodeString(strings.ReplaceAll(hexText, " ", ""))
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}

	command, err := adapter.Decode(raw)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, adapter.FormatCommand(command))
	return nil
}

func printCatalog(w io.Writer) {
	fmt.Fprintf(w, "%-6s %-30s %s\n", "OPCODE", "COMMAND", "FIELDS")
	for _, d := range adapter.Catalog() {
		fields := make([]string, len(d.Fields))
		for i, f := range d.Fields {
			fields[i] = fmt.Sprintf("%c:%s[%d..%d]%s", f.Label, f.Name, f.Min, f.Max, f.Unit)
		}
		layout := strings.Join(fields, " ")
		if layout == "" {
			layout = "-"
		}
		fmt.Fprintf(w, "0x%02X   %-30s %s\n", byte(d.Opcode), d.Name, layout)
	}
}

func printSettings(w io.Writer, s settings) {
	fmt.Fprintln(w, "Requested to print current port config:")
	fmt.Fprint(w, s.Adapter.String())
	if s.URL != "" {
		fmt.Fprintf(w, "WebSocket URL:     %s\n", s.URL)
		if s.Username != "" {
			fmt.Fprintf(w, "Username:          %s\n", s.Username)
		}
		if s.NoSSLVerify {
			fmt.Fprintln(w, "TLS verification:  disabled")
		}
	}
	fmt.Fprintf(w, "Log level:         %s\n", s.LogLevel)
}
