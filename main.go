// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// Hopper - Feeder Adapter Board Client
//
// A CLI tool for sending fixed-width command frames to the hopper adapter
// board over serial or a WebSocket bridge.

package main

import (
	"os"

	"github.com/Thermoquad/hopper/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
