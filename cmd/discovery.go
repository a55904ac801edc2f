// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"

	"github.com/Thermoquad/hopper/pkg/adapter"
	"github.com/spf13/cobra"
	"go.bug.st/serial/enumerator"
)

var discoveryUSBOnly bool

var discoveryCmd = &cobra.Command{
	Use:   "discovery",
	Short: "Find the adapter board among local serial ports",
	Long: `Enumerate local serial ports and send SAY_HELLO_WORLD on each one.

Every port is opened with the configured baud rate and read timeout, probed
once and closed again. Ports that reply are listed as candidates for --port.

Examples:
  # Probe every serial port at 115200 baud
  hopper discovery

  # Only USB adapters, longer timeout
  hopper discovery --usb-only -t 2s

Exit codes:
  0 - At least one port replied
  1 - No port replied
  2 - Ports could not be enumerated`,
	Args: cobra.NoArgs,
	RunE: runDiscovery,
}

func init() {
	rootCmd.AddCommand(discoveryCmd)
	discoveryCmd.Flags().BoolVar(&discoveryUSBOnly, "usb-only", false, "Only probe USB serial ports")
}

// discoveredPort is the probe outcome for one enumerated port
type discoveredPort struct {
	name   string
	detail string
	result adapter.ProbeResult
	reply  []byte
	err    error
}

func runDiscovery(cmd *cobra.Command, args []string) error {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Enumeration error: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("Hopper - Adapter Discovery\n")
	fmt.Printf("Baud rate: %d\n", current.Adapter.BaudRate)
	fmt.Printf("Timeout: %s per port\n\n", current.Adapter.Timeout)

	found := 0
	for _, p := range ports {
		if discoveryUSBOnly && !p.IsUSB {
			continue
		}

		d := probePort(p)
		fmt.Printf("%-20s %-32s ", d.name, d.detail)
		switch {
		case d.err != nil:
			fmt.Printf("ERROR (%v)\n", d.err)
		case d.result == adapter.Connected:
			fmt.Printf("%s %s\n", d.result, adapter.Printable(d.reply))
			found++
		default:
			fmt.Printf("%s\n", d.result)
		}
	}

	// Summary
	fmt.Printf("\n--- Discovery summary ---\n")
	fmt.Printf("Ports probed: %d, replied: %d\n", countProbed(ports), found)

	if found == 0 {
		fmt.Printf("No adapter replied. Check cabling, baud rate and board power.\n")
		os.Exit(1)
	}

	return nil
}

func probePort(p *enumerator.PortDetails) discoveredPort {
	d := discoveredPort{name: p.Name, detail: "-"}
	if p.IsUSB {
		d.detail = fmt.Sprintf("USB %s:%s %s", p.VID, p.PID, p.Product)
	}

	s := current
	s.URL = ""
	s.Adapter.Port = p.Name

	session, conn, _, err := openSession(s)
	if err != nil {
		d.err = err
		return d
	}
	defer conn.Close()

	d.result, d.reply, d.err = session.CheckConnection()
	return d
}

func countProbed(ports []*enumerator.PortDetails) int {
	if !discoveryUSBOnly {
		return len(ports)
	}
	n := 0
	for _, p := range ports {
		if p.IsUSB {
			n++
		}
	}
	return n
}
