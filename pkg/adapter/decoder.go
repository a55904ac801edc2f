// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package adapter

// Decode parses a wire frame back into a Command.
// Every structural check failure wraps ErrMalformedFrame.
func Decode(b []byte) (Command, error) {
	if len(b) != FrameSize {
		return nil, malformed("frame length %d (expected %d)", len(b), FrameSize)
	}

	if b[FrameSize-2] != TermByte1 || b[FrameSize-1] != TermByte2 {
		return nil, malformed("bad terminator 0x%02X 0x%02X", b[FrameSize-2], b[FrameSize-1])
	}

	d, ok := Lookup(Opcode(b[OpcodeOffset]))
	if !ok {
		return nil, malformed("unknown opcode 0x%02X", b[OpcodeOffset])
	}

	values := make([]int, len(d.Fields))
	for i, spec := range d.Fields {
		off := fieldOffset(i)
		if b[off] != spec.Label {
			return nil, malformed("%s: expected label '%c' at offset %d, got 0x%02X", d.Name, spec.Label, off, b[off])
		}
		v, err := DecodeField(b[off+1 : off+SlotSize])
		if err != nil {
			return nil, err
		}
		if err := CheckField(spec.Name, v, spec.Min, spec.Max); err != nil {
			return nil, malformed("%s: %v", d.Name, err)
		}
		values[i] = v
	}

	// Everything between the last field and the terminator must be filler
	for i := fieldOffset(len(d.Fields)); i < FrameSize-terminatorLen; i++ {
		if b[i] != FillerByte {
			return nil, malformed("%s: non-filler byte 0x%02X at offset %d", d.Name, b[i], i)
		}
	}

	return d.build(values), nil
}

// DecodeFrame is Decode for a Frame value.
func DecodeFrame(f Frame) (Command, error) {
	return Decode(f[:])
}
