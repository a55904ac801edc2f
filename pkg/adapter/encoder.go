// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package adapter

import "fmt"

// Frame is a complete wire-format command frame.
// It is a value type: every Encode call returns a fresh copy.
type Frame [FrameSize]byte

// Bytes returns the frame as a byte slice ready for transmission.
func (f Frame) Bytes() []byte {
	return f[:]
}

// Opcode returns the frame's opcode byte.
func (f Frame) Opcode() Opcode {
	return Opcode(f[OpcodeOffset])
}

// emptyFrame returns a frame filled with filler bytes and the terminator.
func emptyFrame() Frame {
	var f Frame
	for i := 0; i < FrameSize-terminatorLen; i++ {
		f[i] = FillerByte
	}
	f[FrameSize-2] = TermByte1
	f[FrameSize-1] = TermByte2
	return f
}

// Encode builds the wire frame for a command.
// All fields are range-checked before any byte is written; on error the
// zero Frame is returned.
func Encode(cmd Command) (Frame, error) {
	d, ok := Lookup(cmd.Opcode())
	if !ok {
		// Unreachable for the closed command set.
		return Frame{}, fmt.Errorf("no catalog entry for opcode 0x%02X", byte(cmd.Opcode()))
	}

	values := cmd.Values()
	if len(values) != len(d.Fields) {
		return Frame{}, fmt.Errorf("%s: got %d values, layout has %d fields", d.Name, len(values), len(d.Fields))
	}

	for i, spec := range d.Fields {
		if err := CheckField(spec.Name, values[i], spec.Min, spec.Max); err != nil {
			return Frame{}, fmt.Errorf("%s: %w", d.Name, err)
		}
	}

	f := emptyFrame()
	f[OpcodeOffset] = byte(d.Opcode)
	for i, spec := range d.Fields {
		off := fieldOffset(i)
		f[off] = spec.Label
		putField(f[off+1:off+SlotSize], values[i])
	}

	return f, nil
}

// MustEncode encodes a command and panics on error.
// Intended for commands without fields or with constant arguments.
func MustEncode(cmd Command) Frame {
	f, err := Encode(cmd)
	if err != nil {
		panic(fmt.Sprintf("adapter: encode error: %v", err))
	}
	return f
}
