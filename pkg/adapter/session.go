// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package adapter

import (
	"errors"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// ProbeResult is the outcome of a liveness check
type ProbeResult int

// Probe outcomes
const (
	NoResponse ProbeResult = iota
	Connected
)

// String returns the probe result name
func (r ProbeResult) String() string {
	switch r {
	case Connected:
		return "CONNECTED"
	case NoResponse:
		return "NO_RESPONSE"
	default:
		return "UNKNOWN"
	}
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the session logger. The default discards all output.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// Session sends command frames over one Transport.
// Calls are serialized, so at most one command is in flight.
type Session struct {
	mu        sync.Mutex
	transport Transport
	cfg       Config
	log       zerolog.Logger
	stats     *Statistics
}

// NewSession creates a session over an open transport
func NewSession(t Transport, cfg Config, opts ...Option) (*Session, error) {
	if t == nil {
		return nil, &ConfigError{Message: "transport is nil"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		transport: t,
		cfg:       cfg,
		log:       zerolog.Nop(),
		stats:     NewStatistics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the session's connection settings
func (s *Session) Config() Config {
	return s.cfg
}

// Stats returns a snapshot of the session counters
func (s *Session) Stats() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.clone()
}

// Send encodes cmd and writes the frame.
// A RangeError rejects the command before anything is written.
func (s *Session) Send(cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.send(cmd)
}

func (s *Session) send(cmd Command) error {
	frame, err := Encode(cmd)
	if err != nil {
		s.stats.Rejected++
		s.log.Warn().Err(err).Str("command", FormatOpcode(cmd.Opcode())).Msg("command rejected")
		return err
	}

	n, err := s.transport.Write(frame.Bytes())
	if err == nil && n != FrameSize {
		err = io.ErrShortWrite
	}
	if err != nil {
		s.stats.WriteErrors++
		s.log.Error().Err(err).Str("command", FormatOpcode(frame.Opcode())).Int("written", n).Msg("frame write failed")
		return &IOError{Op: "write", Err: err}
	}

	s.stats.recordSent(frame.Opcode(), n)
	s.log.Debug().
		Str("command", FormatOpcode(frame.Opcode())).
		Str("wire", Printable(frame.Bytes())).
		Msg("frame sent")
	return nil
}

// CheckConnection sends SayHelloWorld and waits for one reply line within
// the transport timeout. It makes a single attempt.
// The reply line is returned when the result is Connected.
func (s *Session) CheckConnection() (ProbeResult, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug().Str("port", s.cfg.Port).Msg("requesting hello world")
	if err := s.send(SayHelloWorld{}); err != nil {
		return NoResponse, nil, err
	}

	line, err := s.transport.ReadLine()
	if err != nil {
		s.stats.ReadErrors++
		s.log.Error().Err(err).Msg("probe read failed")
		var ioErr *IOError
		if errors.As(err, &ioErr) {
			return NoResponse, nil, err
		}
		return NoResponse, nil, &IOError{Op: "read", Err: err}
	}

	if len(line) == 0 {
		s.stats.recordProbe(NoResponse)
		s.log.Info().Str("port", s.cfg.Port).Dur("timeout", s.cfg.Timeout).Msg("probe timed out")
		return NoResponse, nil, nil
	}

	s.stats.recordProbe(Connected)
	s.log.Info().Str("port", s.cfg.Port).Str("reply", Printable(line)).Msg("probe replied")
	return Connected, line, nil
}

// MoveToCoordinate moves the axes to an absolute position in mm
func (s *Session) MoveToCoordinate(x, y, z int) error {
	return s.Send(MoveToCoordinate{X: x, Y: y, Z: z})
}

// RotateStepper rotates the steppers by the given revolutions
func (s *Session) RotateStepper(x, y, z int) error {
	return s.Send(RotateStepper{X: x, Y: y, Z: z})
}

// SetCurrentPositionAsZero zeroes the stepper software position
func (s *Session) SetCurrentPositionAsZero() error {
	return s.Send(SetCurrentPositionAsZero{})
}

// ForceStopMovement stops the steppers.
// The position must be zeroed again afterwards.
func (s *Session) ForceStopMovement() error {
	return s.Send(ForceStopMovement{})
}

// ForceStopAll stops steppers, pump and dispenser
func (s *Session) ForceStopAll() error {
	return s.Send(ForceStopAll{})
}

// RotateFoodDispenser rotates both dispenser wheels
func (s *Session) RotateFoodDispenser(foodA, foodB int) error {
	return s.Send(RotateFoodDispenser{FoodA: foodA, FoodB: foodB})
}

// RotateWaterPump runs the pump for timeMs milliseconds
func (s *Session) RotateWaterPump(timeMs int) error {
	return s.Send(RotateWaterPump{TimeMs: timeMs})
}

// FeedWater pumps the given amount of water in ml
func (s *Session) FeedWater(milliliters int) error {
	return s.Send(FeedWater{Milliliters: milliliters})
}
