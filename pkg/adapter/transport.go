// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package adapter

import (
	"bytes"
	"errors"
	"io"
	"time"
)

// Transport is the byte channel a Session writes frames to.
//
// ReadLine blocks for at most the transport's configured timeout. It returns
// an empty line and a nil error when the timeout elapses without data.
type Transport interface {
	io.Writer
	ReadLine() ([]byte, error)
}

// ReadTimeoutSetter is implemented by streams whose per-read timeout can be
// changed, such as serial.Port.
type ReadTimeoutSetter interface {
	SetReadTimeout(t time.Duration) error
}

// LineTransport adapts a stream whose reads time out by returning zero
// bytes (as go.bug.st/serial does after SetReadTimeout) into a Transport.
type LineTransport struct {
	rw      io.ReadWriter
	timeout time.Duration
	pending []byte
	buf     []byte
}

// NewLineTransport wraps rw. timeout bounds a whole ReadLine call when rw
// implements ReadTimeoutSetter; otherwise the last read may overrun it by
// up to the stream's own read timeout.
func NewLineTransport(rw io.ReadWriter, timeout time.Duration) *LineTransport {
	return &LineTransport{
		rw:      rw,
		timeout: timeout,
		buf:     make([]byte, 64),
	}
}

// Write writes p to the underlying stream
func (t *LineTransport) Write(p []byte) (int, error) {
	return t.rw.Write(p)
}

// Timeout returns the ReadLine timeout
func (t *LineTransport) Timeout() time.Duration {
	return t.timeout
}

// ReadLine returns the next line including its '\n'.
// A line still incomplete when the timeout elapses is returned as-is.
// io.EOF from the stream ends the read like a timeout.
func (t *LineTransport) ReadLine() ([]byte, error) {
	deadline := time.Now().Add(t.timeout)

	for {
		// A '\r' left over from a "\n\r" terminated reply belongs to the previous line
		t.pending = bytes.TrimLeft(t.pending, "\r")

		if i := bytes.IndexByte(t.pending, '\n'); i >= 0 {
			return t.take(i + 1), nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return t.take(len(t.pending)), nil
		}

		// Each read may only wait for what is left of the deadline
		if s, ok := t.rw.(ReadTimeoutSetter); ok {
			if err := s.SetReadTimeout(remaining); err != nil {
				return nil, err
			}
		}

		n, err := t.rw.Read(t.buf)
		if n > 0 {
			t.pending = append(t.pending, t.buf[:n]...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				t.pending = bytes.TrimLeft(t.pending, "\r")
				if i := bytes.IndexByte(t.pending, '\n'); i >= 0 {
					return t.take(i + 1), nil
				}
				return t.take(len(t.pending)), nil
			}
			return nil, err
		}
	}
}

// take removes and returns the first n pending bytes
func (t *LineTransport) take(n int) []byte {
	if n == 0 {
		return nil
	}
	line := make([]byte, n)
	copy(line, t.pending[:n])
	t.pending = t.pending[n:]
	return line
}
