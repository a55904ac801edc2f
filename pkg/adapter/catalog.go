// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package adapter

// FieldSpec describes one labelled numeric field of a command.
type FieldSpec struct {
	Name  string
	Label byte
	Min   int
	Max   int
	Unit  string
}

// fieldOffset returns the byte offset of the field's label within a frame.
func fieldOffset(index int) int {
	return FieldsOffset + index*SlotSize
}

// Descriptor describes a command's opcode and field layout.
type Descriptor struct {
	Opcode Opcode
	Name   string
	Fields []FieldSpec

	build func(values []int) Command
}

func signed(name string, label byte, unit string) FieldSpec {
	return FieldSpec{Name: name, Label: label, Min: FieldMinSigned, Max: FieldMax, Unit: unit}
}

func unsigned(name string, label byte, unit string) FieldSpec {
	return FieldSpec{Name: name, Label: label, Min: FieldMinUnsigned, Max: FieldMax, Unit: unit}
}

// catalog is indexed by opcode order. Keep in sync with the Op* constants.
var catalog = []Descriptor{
	{
		Opcode: OpSayHelloWorld,
		Name:   "SAY_HELLO_WORLD",
		build:  func([]int) Command { return SayHelloWorld{} },
	},
	{
		Opcode: OpMoveToCoordinate,
		Name:   "MOVE_TO_COORDINATE",
		Fields: []FieldSpec{signed("x", LabelX, "mm"), signed("y", LabelY, "mm"), signed("z", LabelZ, "mm")},
		build:  func(v []int) Command { return MoveToCoordinate{X: v[0], Y: v[1], Z: v[2]} },
	},
	{
		Opcode: OpRotateStepper,
		Name:   "ROTATE_STEPPER",
		Fields: []FieldSpec{signed("x", LabelX, "rev"), signed("y", LabelY, "rev"), signed("z", LabelZ, "rev")},
		build:  func(v []int) Command { return RotateStepper{X: v[0], Y: v[1], Z: v[2]} },
	},
	{
		Opcode: OpSetCurrentPositionAsZero,
		Name:   "SET_CURRENT_POSITION_AS_ZERO",
		build:  func([]int) Command { return SetCurrentPositionAsZero{} },
	},
	{
		Opcode: OpForceStopMovement,
		Name:   "FORCE_STOP_MOVEMENT",
		build:  func([]int) Command { return ForceStopMovement{} },
	},
	{
		Opcode: OpForceStopAll,
		Name:   "FORCE_STOP_ALL",
		build:  func([]int) Command { return ForceStopAll{} },
	},
	{
		Opcode: OpRotateFoodDispenser,
		Name:   "ROTATE_FOOD_DISPENSER",
		Fields: []FieldSpec{signed("food_a", LabelFoodA, "steps"), signed("food_b", LabelFoodB, "steps")},
		build:  func(v []int) Command { return RotateFoodDispenser{FoodA: v[0], FoodB: v[1]} },
	},
	{
		Opcode: OpFeedWater,
		Name:   "FEED_WATER",
		Fields: []FieldSpec{unsigned("milliliters", LabelWater, "ml")},
		build:  func(v []int) Command { return FeedWater{Milliliters: v[0]} },
	},
	{
		Opcode: OpRotateWaterPump,
		Name:   "ROTATE_WATER_PUMP",
		Fields: []FieldSpec{unsigned("time", LabelWater, "ms")},
		build:  func(v []int) Command { return RotateWaterPump{TimeMs: v[0]} },
	},
}

// Lookup returns the descriptor for an opcode.
func Lookup(op Opcode) (Descriptor, bool) {
	i := int(op) - int(OpSayHelloWorld)
	if i < 0 || i >= len(catalog) || catalog[i].Opcode != op {
		return Descriptor{}, false
	}
	return catalog[i], true
}

// Catalog returns a copy of all command descriptors in opcode order.
func Catalog() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}
