// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package adapter

import (
	"fmt"
	"time"
)

// Statistics tracks frames sent and probe outcomes for a session
type Statistics struct {
	StartTime    time.Time
	LastSendTime time.Time

	// Counters
	FramesSent    uint64
	BytesWritten  uint64
	Rejected      uint64
	WriteErrors   uint64
	ReadErrors    uint64
	Probes        uint64
	ProbeReplies  uint64
	ProbeTimeouts uint64

	// Per-opcode frame counts
	ByOpcode map[Opcode]uint64
}

// NewStatistics creates a new statistics tracker
func NewStatistics() *Statistics {
	return &Statistics{
		StartTime: time.Now(),
		ByOpcode:  make(map[Opcode]uint64),
	}
}

func (s *Statistics) recordSent(op Opcode, n int) {
	s.FramesSent++
	s.BytesWritten += uint64(n)
	s.ByOpcode[op]++
	s.LastSendTime = time.Now()
}

func (s *Statistics) recordProbe(result ProbeResult) {
	s.Probes++
	switch result {
	case Connected:
		s.ProbeReplies++
	case NoResponse:
		s.ProbeTimeouts++
	}
}

// clone returns a deep copy safe to hand to callers
func (s *Statistics) clone() Statistics {
	c := *s
	c.ByOpcode = make(map[Opcode]uint64, len(s.ByOpcode))
	for k, v := range s.ByOpcode {
		c.ByOpcode[k] = v
	}
	return c
}

// String returns a formatted statistics summary
func (s Statistics) String() string {
	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Frames Sent:     %8d\n", s.FramesSent)
	result += fmt.Sprintf("Bytes Written:   %8d\n", s.BytesWritten)

	if s.Rejected > 0 {
		result += fmt.Sprintf("Rejected:        %8d\n", s.Rejected)
	}
	if s.WriteErrors > 0 {
		result += fmt.Sprintf("Write Errors:    %8d\n", s.WriteErrors)
	}
	if s.ReadErrors > 0 {
		result += fmt.Sprintf("Read Errors:     %8d\n", s.ReadErrors)
	}
	if s.Probes > 0 {
		result += fmt.Sprintf("Probes:          %8d (%d replied, %d timed out)\n", s.Probes, s.ProbeReplies, s.ProbeTimeouts)
	}

	for _, d := range catalog {
		if n := s.ByOpcode[d.Opcode]; n > 0 {
			result += fmt.Sprintf("  %-30s %5d\n", d.Name, n)
		}
	}

	result += "================================\n"
	return result
}
