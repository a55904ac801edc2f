// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package adapter

import (
	"fmt"
	"strings"
)

// FormatOpcode returns the human-readable name for an opcode
func FormatOpcode(op Opcode) string {
	if d, ok := Lookup(op); ok {
		return d.Name
	}
	return "UNKNOWN"
}

// FormatCommand formats a command as NAME (0xNN) followed by its fields
func FormatCommand(cmd Command) string {
	d, ok := Lookup(cmd.Opcode())
	if !ok {
		return fmt.Sprintf("UNKNOWN (0x%02X)", byte(cmd.Opcode()))
	}

	result := fmt.Sprintf("%s (0x%02X)", d.Name, byte(d.Opcode))
	values := cmd.Values()
	for i, spec := range d.Fields {
		if i >= len(values) {
			break
		}
		result += fmt.Sprintf(" %c=%+05d", spec.Label, values[i])
		if spec.Unit != "" {
			result += spec.Unit
		}
	}
	return result
}

// FormatFrame formats a frame as its decoded command and printable bytes.
// Frames that fail to decode are shown with the decode error and a hex dump.
func FormatFrame(f Frame) string {
	cmd, err := DecodeFrame(f)
	if err != nil {
		return fmt.Sprintf("INVALID FRAME (%v)\n  %s\n", err, HexDump(f[:]))
	}
	return fmt.Sprintf("%s\n  Wire: %s\n  Hex:  %s\n", FormatCommand(cmd), Printable(f[:]), HexDump(f[:]))
}

// Printable renders frame bytes as ASCII with the terminator escaped
func Printable(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		switch {
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c >= 0x20 && c < 0x7F:
			sb.WriteByte(c)
		default:
			fmt.Fprintf(&sb, `\x%02X`, c)
		}
	}
	return sb.String()
}

// HexDump renders bytes as space-separated hex pairs
func HexDump(b []byte) string {
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = fmt.Sprintf("%02X", c)
	}
	return strings.Join(parts, " ")
}
