// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/Thermoquad/hopper/pkg/adapter"
	"github.com/spf13/cobra"
)

var (
	moveX, moveY, moveZ       int
	rotateX, rotateY, rotateZ int
	foodA, foodB              int
	pumpMs                    int
	waterMl                   int
)

var moveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move the axes to an absolute coordinate in mm",
	Long: `Move the cartesian axes to an absolute position.

Each coordinate is in millimetres and must be in range -9999 to 9999.
Use --x=-10 style for negative values.`,
	Args: cobra.NoArgs,
	RunE: runSend(func() adapter.Command {
		return adapter.MoveToCoordinate{X: moveX, Y: moveY, Z: moveZ}
	}),
}

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Rotate the steppers by a number of revolutions",
	Long: `Rotate up to three steppers at the same time.

Each value is a number of revolutions in range -9999 to 9999.`,
	Args: cobra.NoArgs,
	RunE: runSend(func() adapter.Command {
		return adapter.RotateStepper{X: rotateX, Y: rotateY, Z: rotateZ}
	}),
}

var zeroCmd = &cobra.Command{
	Use:   "zero",
	Short: "Set the current stepper position as zero",
	Long:  `Reset the X, Y and Z software position to zero. Useful after power-up.`,
	Args:  cobra.NoArgs,
	RunE:  runSend(func() adapter.Command { return adapter.SetCurrentPositionAsZero{} }),
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Force the steppers to stop",
	Long: `Force the steppers to stop moving.

The current position must be reset with "zero" afterwards.`,
	Args: cobra.NoArgs,
	RunE: runSend(func() adapter.Command { return adapter.ForceStopMovement{} }),
}

var stopAllCmd = &cobra.Command{
	Use:   "stop-all",
	Short: "Stop steppers, water pump and food dispenser",
	Args:  cobra.NoArgs,
	RunE:  runSend(func() adapter.Command { return adapter.ForceStopAll{} }),
}

var dispenseCmd = &cobra.Command{
	Use:   "dispense",
	Short: "Rotate the two food dispenser wheels",
	Args:  cobra.NoArgs,
	RunE: runSend(func() adapter.Command {
		return adapter.RotateFoodDispenser{FoodA: foodA, FoodB: foodB}
	}),
}

var pumpCmd = &cobra.Command{
	Use:   "pump",
	Short: "Run the water pump for a duration in ms",
	Args:  cobra.NoArgs,
	RunE:  runSend(func() adapter.Command { return adapter.RotateWaterPump{TimeMs: pumpMs} }),
}

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Pump an amount of water in ml",
	Args:  cobra.NoArgs,
	RunE:  runSend(func() adapter.Command { return adapter.FeedWater{Milliliters: waterMl} }),
}

func init() {
	moveCmd.Flags().IntVar(&moveX, "x", 0, "X coordinate [mm]")
	moveCmd.Flags().IntVar(&moveY, "y", 0, "Y coordinate [mm]")
	moveCmd.Flags().IntVar(&moveZ, "z", 0, "Z coordinate [mm]")

	rotateCmd.Flags().IntVar(&rotateX, "x", 0, "X axis revolutions")
	rotateCmd.Flags().IntVar(&rotateY, "y", 0, "Y axis revolutions")
	rotateCmd.Flags().IntVar(&rotateZ, "z", 0, "Z axis revolutions")

	dispenseCmd.Flags().IntVar(&foodA, "a", 0, "Food wheel A rotation")
	dispenseCmd.Flags().IntVar(&foodB, "b", 0, "Food wheel B rotation")

	pumpCmd.Flags().IntVar(&pumpMs, "ms", 0, "Pump run time [ms], 0 to 9999")
	waterCmd.Flags().IntVar(&waterMl, "ml", 0, "Amount of water [ml], 0 to 9999")
	pumpCmd.MarkFlagRequired("ms")
	waterCmd.MarkFlagRequired("ml")

	rootCmd.AddCommand(moveCmd, rotateCmd, zeroCmd, stopCmd, stopAllCmd, dispenseCmd, pumpCmd, waterCmd)
}

// runSend returns a RunE that builds one command and sends it.
// The command is encoded before the port is opened so range errors never touch the device.
func runSend(build func() adapter.Command) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		command := build()
		if _, err := adapter.Encode(command); err != nil {
			return err
		}

		session, conn, connInfo, err := openSession(current)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := session.Send(command); err != nil {
			return err
		}

		fmt.Printf("Sent %s on %s\n", adapter.FormatCommand(command), connInfo)
		return nil
	}
}
