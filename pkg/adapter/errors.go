// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package adapter

import (
	"errors"
	"fmt"
)

// ErrMalformedFrame is wrapped by every error returned from Decode.
var ErrMalformedFrame = errors.New("malformed frame")

// RangeError reports a field value outside its declared bounds.
// No bytes are produced for a command that fails with a RangeError.
type RangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

// Error implements the error interface
func (e *RangeError) Error() string {
	bound := "upper"
	if e.Value < e.Min {
		bound = "lower"
	}
	return fmt.Sprintf("%s=%d violates %s bound (valid %d to %d)", e.Field, e.Value, bound, e.Min, e.Max)
}

// IOError reports a transport read or write failure.
type IOError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("transport %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying transport error
func (e *IOError) Unwrap() error {
	return e.Err
}

// ConfigError reports an invalid session configuration.
type ConfigError struct {
	Key     string
	Message string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Key == "" {
		return "invalid configuration: " + e.Message
	}
	return fmt.Sprintf("invalid configuration %q: %s", e.Key, e.Message)
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedFrame, fmt.Sprintf(format, args...))
}
