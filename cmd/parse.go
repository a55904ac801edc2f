// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Thermoquad/hopper/pkg/adapter"
)

// verb describes one command word of the text grammar used by encode and control
type verb struct {
	name  string
	args  []string
	build func(v []int) adapter.Command
}

var verbs = []verb{
	{"hello", nil, func([]int) adapter.Command { return adapter.SayHelloWorld{} }},
	{"move", []string{"X", "Y", "Z"}, func(v []int) adapter.Command {
		return adapter.MoveToCoordinate{X: v[0], Y: v[1], Z: v[2]}
	}},
	{"rotate", []string{"X", "Y", "Z"}, func(v []int) adapter.Command {
		return adapter.RotateStepper{X: v[0], Y: v[1], Z: v[2]}
	}},
	{"zero", nil, func([]int) adapter.Command { return adapter.SetCurrentPositionAsZero{} }},
	{"stop", nil, func([]int) adapter.Command { return adapter.ForceStopMovement{} }},
	{"stop-all", nil, func([]int) adapter.Command { return adapter.ForceStopAll{} }},
	{"dispense", []string{"A", "B"}, func(v []int) adapter.Command {
		return adapter.RotateFoodDispenser{FoodA: v[0], FoodB: v[1]}
	}},
	{"pump", []string{"MS"}, func(v []int) adapter.Command { return adapter.RotateWaterPump{TimeMs: v[0]} }},
	{"water", []string{"ML"}, func(v []int) adapter.Command { return adapter.FeedWater{Milliliters: v[0]} }},
}

// usage returns "verb ARG ARG" for a verb
func (v verb) usage() string {
	return strings.TrimSpace(v.name + " " + strings.Join(v.args, " "))
}

// grammarHelp lists every accepted command line form
func grammarHelp() string {
	lines := make([]string, len(verbs))
	for i, v := range verbs {
		lines[i] = "  " + v.usage()
	}
	return strings.Join(lines, "\n")
}

// parseCommandLine turns words such as ["move", "10", "-20", "30"] into a command.
// Range checks are left to the encoder.
func parseCommandLine(words []string) (adapter.Command, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	name := strings.ToLower(words[0])
	for _, v := range verbs {
		if v.name != name {
			continue
		}

		args := words[1:]
		if len(args) != len(v.args) {
			return nil, fmt.Errorf("%s expects %d argument(s), got %d (usage: %s)", v.name, len(v.args), len(args), v.usage())
		}

		values := make([]int, len(args))
		for i, a := range args {
			n, err := strconv.Atoi(a)
			if err != nil {
				return nil, fmt.Errorf("%s: argument %s=%q is not an integer", v.name, v.args[i], a)
			}
			values[i] = n
		}
		return v.build(values), nil
	}

	return nil, fmt.Errorf("unknown command %q", words[0])
}
