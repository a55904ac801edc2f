// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package adapter

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeTransport records writes and replays scripted ReadLine results
type fakeTransport struct {
	written  bytes.Buffer
	writeErr error
	short    bool
	lines    [][]byte
	readErr  error
	reads    int
}

func (f *fakeTransport) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	if f.short {
		f.written.Write(p[:len(p)/2])
		return len(p) / 2, nil
	}
	return f.written.Write(p)
}

func (f *fakeTransport) ReadLine() ([]byte, error) {
	f.reads++
	if f.readErr != nil {
		return nil, f.readErr
	}
	if len(f.lines) == 0 {
		return nil, nil
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func newTestSession(t *testing.T, tr Transport, opts ...Option) *Session {
	t.Helper()
	s, err := NewSession(tr, DefaultConfig(), opts...)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

func TestNewSession_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		tr   Transport
		cfg  Config
		key  string
	}{
		{"nil transport", nil, DefaultConfig(), ""},
		{"empty port", &fakeTransport{}, Config{Port: " ", BaudRate: 9600, Timeout: time.Second}, "port"},
		{"zero baud", &fakeTransport{}, Config{Port: "/dev/null", Timeout: time.Second}, "baud"},
		{"zero timeout", &fakeTransport{}, Config{Port: "/dev/null", BaudRate: 9600}, "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSession(tt.tr, tt.cfg)
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error = %v, want ConfigError", err)
			}
			if cfgErr.Key != tt.key {
				t.Errorf("ConfigError.Key = %q, want %q", cfgErr.Key, tt.key)
			}
		})
	}
}

func TestSession_Send(t *testing.T) {
	tr := &fakeTransport{}
	s := newTestSession(t, tr)

	if err := s.MoveToCoordinate(4444, 652, 10); err != nil {
		t.Fatalf("MoveToCoordinate failed: %v", err)
	}
	if err := s.FeedWater(15); err != nil {
		t.Fatalf("FeedWater failed: %v", err)
	}

	want := "1X+4444Y+0652Z+0010\n\r" + "7W+0015TTTTTTTTTTTT\n\r"
	if tr.written.String() != want {
		t.Errorf("written = %q, want %q", tr.written.String(), want)
	}

	stats := s.Stats()
	if stats.FramesSent != 2 || stats.BytesWritten != 2*FrameSize {
		t.Errorf("stats = %d frames, %d bytes", stats.FramesSent, stats.BytesWritten)
	}
	if stats.ByOpcode[OpFeedWater] != 1 {
		t.Errorf("ByOpcode[FEED_WATER] = %d, want 1", stats.ByOpcode[OpFeedWater])
	}
}

func TestSession_ConvenienceMethods(t *testing.T) {
	tr := &fakeTransport{}
	s := newTestSession(t, tr)

	calls := []struct {
		name string
		call func() error
		op   Opcode
	}{
		{"rotate", func() error { return s.RotateStepper(1, 2, 3) }, OpRotateStepper},
		{"zero", s.SetCurrentPositionAsZero, OpSetCurrentPositionAsZero},
		{"stop", s.ForceStopMovement, OpForceStopMovement},
		{"stop all", s.ForceStopAll, OpForceStopAll},
		{"dispense", func() error { return s.RotateFoodDispenser(1, -1) }, OpRotateFoodDispenser},
		{"pump", func() error { return s.RotateWaterPump(500) }, OpRotateWaterPump},
	}

	for _, c := range calls {
		t.Run(c.name, func(t *testing.T) {
			tr.written.Reset()
			if err := c.call(); err != nil {
				t.Fatalf("call failed: %v", err)
			}
			b := tr.written.Bytes()
			if len(b) != FrameSize || Opcode(b[0]) != c.op {
				t.Errorf("written %q, want one %s frame", b, FormatOpcode(c.op))
			}
		})
	}
}

func TestSession_RangeErrorWritesNothing(t *testing.T) {
	tr := &fakeTransport{}
	s := newTestSession(t, tr)

	err := s.RotateStepper(1234, -10000, 0)
	var rangeErr *RangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("error = %v, want RangeError", err)
	}
	if rangeErr.Field != "y" {
		t.Errorf("RangeError.Field = %q, want y", rangeErr.Field)
	}
	if tr.written.Len() != 0 {
		t.Errorf("%d bytes written for rejected command", tr.written.Len())
	}

	if err := s.FeedWater(-1); err == nil {
		t.Error("FeedWater(-1) should fail")
	}
	if s.Stats().Rejected != 2 {
		t.Errorf("Rejected = %d, want 2", s.Stats().Rejected)
	}
}

func TestSession_WriteError(t *testing.T) {
	cause := errors.New("port unplugged")
	tr := &fakeTransport{writeErr: cause}
	s := newTestSession(t, tr)

	err := s.ForceStopAll()
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("error = %v, want IOError", err)
	}
	if ioErr.Op != "write" || !errors.Is(err, cause) {
		t.Errorf("IOError = %+v", ioErr)
	}
	if s.Stats().WriteErrors != 1 {
		t.Errorf("WriteErrors = %d, want 1", s.Stats().WriteErrors)
	}
}

func TestSession_ShortWrite(t *testing.T) {
	s := newTestSession(t, &fakeTransport{short: true})

	err := s.ForceStopAll()
	if !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("error = %v, want io.ErrShortWrite", err)
	}
}

func TestCheckConnection_Connected(t *testing.T) {
	tr := &fakeTransport{lines: [][]byte{[]byte("Hello World\n")}}
	s := newTestSession(t, tr)

	result, line, err := s.CheckConnection()
	if err != nil {
		t.Fatalf("CheckConnection failed: %v", err)
	}
	if result != Connected {
		t.Errorf("result = %v, want CONNECTED", result)
	}
	if string(line) != "Hello World\n" {
		t.Errorf("line = %q", line)
	}
	if tr.written.String() != "0TTTTTTTTTTTTTTTTTT\n\r" {
		t.Errorf("probe frame = %q", tr.written.String())
	}
}

func TestCheckConnection_NoResponse(t *testing.T) {
	tr := &fakeTransport{}
	s := newTestSession(t, tr)

	result, line, err := s.CheckConnection()
	if err != nil {
		t.Fatalf("CheckConnection failed: %v", err)
	}
	if result != NoResponse {
		t.Errorf("result = %v, want NO_RESPONSE", result)
	}
	if line != nil {
		t.Errorf("line = %q, want nil", line)
	}
	if tr.reads != 1 {
		t.Errorf("ReadLine called %d times, want exactly 1 (no retry)", tr.reads)
	}

	stats := s.Stats()
	if stats.Probes != 1 || stats.ProbeTimeouts != 1 || stats.ProbeReplies != 0 {
		t.Errorf("probe stats = %+v", stats)
	}
}

func TestCheckConnection_ReadError(t *testing.T) {
	cause := errors.New("device reset")
	s := newTestSession(t, &fakeTransport{readErr: cause})

	result, _, err := s.CheckConnection()
	if result != NoResponse {
		t.Errorf("result = %v, want NO_RESPONSE", result)
	}
	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "read" {
		t.Fatalf("error = %v, want read IOError", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("IOError does not wrap cause")
	}
}

func TestCheckConnection_WriteError(t *testing.T) {
	tr := &fakeTransport{writeErr: errors.New("closed")}
	s := newTestSession(t, tr)

	if _, _, err := s.CheckConnection(); err == nil {
		t.Fatal("CheckConnection should fail when the probe frame cannot be written")
	}
	if tr.reads != 0 {
		t.Errorf("ReadLine called %d times after failed write", tr.reads)
	}
}

func TestSession_Logging(t *testing.T) {
	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf).Level(zerolog.DebugLevel)
	s := newTestSession(t, &fakeTransport{}, WithLogger(logger))

	if err := s.ForceStopMovement(); err != nil {
		t.Fatalf("ForceStopMovement failed: %v", err)
	}
	_ = s.FeedWater(-1)

	out := logBuf.String()
	if !strings.Contains(out, `"message":"frame sent"`) || !strings.Contains(out, "FORCE_STOP_MOVEMENT") {
		t.Errorf("missing frame sent log: %s", out)
	}
	if !strings.Contains(out, `"message":"command rejected"`) {
		t.Errorf("missing rejected log: %s", out)
	}
}

func TestSession_Config(t *testing.T) {
	s := newTestSession(t, &fakeTransport{})
	cfg := s.Config()
	if cfg != DefaultConfig() {
		t.Errorf("Config() = %+v, want defaults", cfg)
	}
	if !strings.Contains(cfg.String(), "/dev/ttyAMA0") {
		t.Errorf("Config.String() = %q", cfg.String())
	}
}

func TestStatistics_String(t *testing.T) {
	s := newTestSession(t, &fakeTransport{lines: [][]byte{[]byte("ok\n")}})
	_ = s.ForceStopAll()
	_, _, _ = s.CheckConnection()

	out := s.Stats().String()
	for _, want := range []string{"Frames Sent:", "FORCE_STOP_ALL", "SAY_HELLO_WORLD", "1 replied"} {
		if !strings.Contains(out, want) {
			t.Errorf("Stats().String() missing %q:\n%s", want, out)
		}
	}
}

func TestProbeResult_String(t *testing.T) {
	if Connected.String() != "CONNECTED" || NoResponse.String() != "NO_RESPONSE" || ProbeResult(9).String() != "UNKNOWN" {
		t.Error("unexpected ProbeResult names")
	}
}
