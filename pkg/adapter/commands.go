// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package adapter

// Command is one of the adapter commands defined in this package.
// The set is closed: only types declared here implement it.
type Command interface {
	// Opcode returns the frame opcode for the command.
	Opcode() Opcode
	// Values returns field values in catalog order.
	Values() []int

	command()
}

// SayHelloWorld is the liveness probe. The adapter answers with one line.
type SayHelloWorld struct{}

// MoveToCoordinate moves the cartesian axes to an absolute position in mm.
type MoveToCoordinate struct {
	X, Y, Z int
}

// RotateStepper rotates the steppers by a number of revolutions.
type RotateStepper struct {
	X, Y, Z int
}

// SetCurrentPositionAsZero zeroes the software position of all steppers.
// Useful after power-up or after ForceStopMovement.
type SetCurrentPositionAsZero struct{}

// ForceStopMovement stops stepper motion only.
type ForceStopMovement struct{}

// ForceStopAll stops steppers, pump and dispenser.
type ForceStopAll struct{}

// RotateFoodDispenser rotates the two dispenser wheels.
type RotateFoodDispenser struct {
	FoodA, FoodB int
}

// FeedWater runs the pump until the given volume has been delivered.
type FeedWater struct {
	Milliliters int
}

// RotateWaterPump runs the pump for a duration in milliseconds.
type RotateWaterPump struct {
	TimeMs int
}

func (SayHelloWorld) Opcode() Opcode            { return OpSayHelloWorld }
func (MoveToCoordinate) Opcode() Opcode         { return OpMoveToCoordinate }
func (RotateStepper) Opcode() Opcode            { return OpRotateStepper }
func (SetCurrentPositionAsZero) Opcode() Opcode { return OpSetCurrentPositionAsZero }
func (ForceStopMovement) Opcode() Opcode        { return OpForceStopMovement }
func (ForceStopAll) Opcode() Opcode             { return OpForceStopAll }
func (RotateFoodDispenser) Opcode() Opcode      { return OpRotateFoodDispenser }
func (FeedWater) Opcode() Opcode                { return OpFeedWater }
func (RotateWaterPump) Opcode() Opcode          { return OpRotateWaterPump }

func (SayHelloWorld) Values() []int            { return nil }
func (c MoveToCoordinate) Values() []int       { return []int{c.X, c.Y, c.Z} }
func (c RotateStepper) Values() []int          { return []int{c.X, c.Y, c.Z} }
func (SetCurrentPositionAsZero) Values() []int { return nil }
func (ForceStopMovement) Values() []int        { return nil }
func (ForceStopAll) Values() []int             { return nil }
func (c RotateFoodDispenser) Values() []int    { return []int{c.FoodA, c.FoodB} }
func (c FeedWater) Values() []int              { return []int{c.Milliliters} }
func (c RotateWaterPump) Values() []int        { return []int{c.TimeMs} }

func (SayHelloWorld) command()            {}
func (MoveToCoordinate) command()         {}
func (RotateStepper) command()            {}
func (SetCurrentPositionAsZero) command() {}
func (ForceStopMovement) command()        {}
func (ForceStopAll) command()             {}
func (RotateFoodDispenser) command()      {}
func (FeedWater) command()                {}
func (RotateWaterPump) command()          {}
