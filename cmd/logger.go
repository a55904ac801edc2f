// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// initLogger installs a console logger on stderr as the global zerolog logger.
// Stdout stays reserved for command output.
func initLogger(level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05.000",
	}
	logger := zerolog.New(output).Level(level).With().Timestamp().Str("app", "hopper").Logger()
	log.Logger = logger
	return logger
}
