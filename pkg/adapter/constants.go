// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package adapter implements the command frame protocol of the feed/motion
// adapter board (stepper axes, food dispenser, water pump).
//
// Every command is sent as a fixed 21-byte ASCII frame: one opcode byte,
// up to three labelled signed fields of six bytes each, 'T' filler and a
// "\n\r" terminator. There is no checksum and no byte stuffing. This package
// provides the command catalog, frame encoding/decoding, formatting and a
// Session that drives a line-oriented Transport.
package adapter

// Frame geometry
const (
	FrameSize     = 21
	FillerByte    = 'T'
	TermByte1     = '\n'
	TermByte2     = '\r'
	OpcodeOffset  = 0
	FieldsOffset  = 1
	MaxFields     = 3
	FieldSize     = 5 // sign + 4 digits
	SlotSize      = 1 + FieldSize
	FieldDigits   = 4
	terminatorLen = 2
)

// Field bounds
const (
	FieldMax         = 9999
	FieldMinSigned   = -FieldMax
	FieldMinUnsigned = 0
)

// Sign bytes
const (
	SignPlus  = '+'
	SignMinus = '-'
)

// Axis labels
const (
	LabelX     = 'X'
	LabelY     = 'Y'
	LabelZ     = 'Z'
	LabelFoodA = 'A'
	LabelFoodB = 'B'
	LabelWater = 'W'
)

// Opcode identifies the command a frame encodes.
type Opcode byte

// Command opcodes
const (
	OpSayHelloWorld            Opcode = 0x30
	OpMoveToCoordinate         Opcode = 0x31
	OpRotateStepper            Opcode = 0x32
	OpSetCurrentPositionAsZero Opcode = 0x33
	OpForceStopMovement        Opcode = 0x34
	OpForceStopAll             Opcode = 0x35
	OpRotateFoodDispenser      Opcode = 0x36
	OpFeedWater                Opcode = 0x37
	OpRotateWaterPump          Opcode = 0x38
)

// The widest command must fit between the opcode and the terminator.
// A negative array length here fails the build if the layout constants drift.
var _ [FrameSize - terminatorLen - FieldsOffset - MaxFields*SlotSize]struct{}
