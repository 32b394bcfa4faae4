// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 The Swarmlight Authors

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swarmlight/swarmctl/pkg/lightswarm"
)

var (
	encodeChannels string
	encodeLevel    int
	encodeInterval int
	encodeStep     int
	encodePseudo   int
	encodeValues   string
)

var encodeCmd = &cobra.Command{
	Use:   "encode [action]",
	Short: "Show Lightswarm packet bytes without touching a device",
	Long: `Encode a Lightswarm command and print the raw and framed bytes per
channel, for protocol debugging and firmware bring-up. No device I/O happens.

With --values, frame an arbitrary comma-separated byte sequence instead of a
command; values outside 0-255 are rejected.

Examples:
  swarmctl encode level --channels 10 --level 100
  swarmctl encode fade --channels 1,2 --level 255 --interval 1 --step 5
  swarmctl encode --values 192,219,10`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().StringVarP(&encodeChannels, "channels", "c", "", "Comma-separated channel addresses")
	encodeCmd.Flags().IntVar(&encodeLevel, "level", 0, "Brightness level 0-255 (level, fade)")
	encodeCmd.Flags().IntVar(&encodeInterval, "interval", 0, "Fade tick interval 1-255 (fade)")
	encodeCmd.Flags().IntVar(&encodeStep, "step", 0, "Fade step size 0-255 (fade)")
	encodeCmd.Flags().IntVar(&encodePseudo, "pseudo", 0, "Pseudo address 0-65535 (set_pseudo)")
	encodeCmd.Flags().StringVar(&encodeValues, "values", "", "Frame this comma-separated byte sequence instead of a command")
}

func runEncode(cmd *cobra.Command, args []string) error {
	if encodeValues != "" {
		return encodeValueList(encodeValues)
	}
	if len(args) == 0 {
		return fmt.Errorf("an action argument or --values is required")
	}
	channels, err := parseChannels(encodeChannels)
	if err != nil {
		return err
	}

	swarmCmd := lightswarm.Command{
		Name:   "encode " + args[0],
		Action: args[0],
	}
	if cmd.Flags().Changed("level") {
		swarmCmd.Level = &encodeLevel
	}
	if cmd.Flags().Changed("interval") {
		swarmCmd.Interval = &encodeInterval
	}
	if cmd.Flags().Changed("step") {
		swarmCmd.Step = &encodeStep
	}
	if cmd.Flags().Changed("pseudo") {
		swarmCmd.PseudoAddress = &encodePseudo
	}

	for _, channel := range channels {
		raw, err := lightswarm.EncodeChannel(swarmCmd, channel)
		if err != nil {
			return err
		}
		framed := lightswarm.Frame(raw)
		fmt.Printf("Channel %d:\n", channel)
		fmt.Printf("  Raw:    % X\n", raw)
		fmt.Printf("  Framed: % X\n", framed)
	}
	return nil
}

func encodeValueList(list string) error {
	parts := strings.Split(list, ",")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("invalid value %q: must be an integer", part)
		}
		values = append(values, n)
	}

	framed, err := lightswarm.FrameValues(values)
	if err != nil {
		return err
	}
	fmt.Printf("Framed: % X\n", framed)
	return nil
}
