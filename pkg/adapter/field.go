// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package adapter

// CheckField returns a RangeError if value is outside [min, max].
func CheckField(name string, value, min, max int) error {
	if value < min || value > max {
		return &RangeError{Field: name, Value: value, Min: min, Max: max}
	}
	return nil
}

// EncodeField encodes value as a sign byte followed by four zero-padded
// ASCII digits, most significant first.
func EncodeField(name string, value, min, max int) ([FieldSize]byte, error) {
	var out [FieldSize]byte
	if err := CheckField(name, value, min, max); err != nil {
		return out, err
	}
	putField(out[:], value)
	return out, nil
}

// putField writes an already range-checked value into dst[0:FieldSize].
func putField(dst []byte, value int) {
	if value < 0 {
		dst[0] = SignMinus
		value = -value
	} else {
		dst[0] = SignPlus
	}
	dst[1] = byte(value/1000) + '0'
	dst[2] = byte(value%1000/100) + '0'
	dst[3] = byte(value%100/10) + '0'
	dst[4] = byte(value%10) + '0'
}

// DecodeField parses a 5-byte signed field back to an integer.
func DecodeField(b []byte) (int, error) {
	if len(b) != FieldSize {
		return 0, malformed("field length %d (expected %d)", len(b), FieldSize)
	}

	var negative bool
	switch b[0] {
	case SignPlus:
	case SignMinus:
		negative = true
	default:
		return 0, malformed("invalid sign byte 0x%02X", b[0])
	}

	value := 0
	for i, d := range b[1:] {
		if d < '0' || d > '9' {
			return 0, malformed("invalid digit byte 0x%02X at field offset %d", d, i+1)
		}
		value = value*10 + int(d-'0')
	}

	if negative {
		value = -value
	}
	return value, nil
}
