// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 The Swarmlight Authors

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swarmlight/swarmctl/pkg/sk6812"
	"github.com/swarmlight/swarmctl/pkg/transport"
)

var (
	stripChannels   string
	stripBrightness float64
	stripEffect     string
	stripDryRun     bool
)

var stripCmd = &cobra.Command{
	Use:   "strip <colour>",
	Short: "Set SK6812 LED strip channels to a colour",
	Long: `Build and send one JSON command line to the LED strip.

All addressed LEDs travel in a single array, so the strip applies the whole
command at once. Use "all" as the channel list to address every LED.

Colours: ` + strings.Join(sk6812.ColourNames(), ", ") + `

Examples:
  swarmctl strip warm --channels all --brightness 0.5 --effect on
  swarmctl strip red --channels 0,1,2
  swarmctl strip off --channels all --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runStrip,
}

func init() {
	rootCmd.AddCommand(stripCmd)
	stripCmd.Flags().StringVarP(&stripChannels, "channels", "c", "all", `Comma-separated LED indices, or "all"`)
	stripCmd.Flags().Float64Var(&stripBrightness, "brightness", 0, "Brightness passed through to the firmware")
	stripCmd.Flags().StringVar(&stripEffect, "effect", "", "Effect name passed through to the firmware")
	stripCmd.Flags().BoolVar(&stripDryRun, "dry-run", false, "Print the JSON line instead of writing to the device")
}

func runStrip(cmd *cobra.Command, args []string) error {
	channels, err := parseStripChannels(stripChannels)
	if err != nil {
		return err
	}

	ledCmd := sk6812.Command{
		Name:     "strip " + args[0],
		Channels: channels,
		Colour:   args[0],
	}
	// Brightness and effect are firmware-interpreted; only forward what the
	// user actually set.
	if cmd.Flags().Changed("brightness") {
		ledCmd.Brightness = &stripBrightness
	}
	if cmd.Flags().Changed("effect") {
		ledCmd.Effect = &stripEffect
	}

	if stripDryRun {
		envelopes, err := sk6812.Encode(ledCmd)
		if err != nil {
			return err
		}
		payload, err := sk6812.Marshal(envelopes)
		if err != nil {
			return err
		}
		fmt.Print(string(payload))
		return nil
	}

	dial, connInfo, err := buildDialer(cfg.Strip)
	if err != nil {
		return err
	}
	tx := transport.New("strip", dial)
	defer tx.Close()

	if err := sk6812.NewController(tx).Submit(ledCmd); err != nil {
		return err
	}

	target := fmt.Sprintf("%d LED(s)", len(channels))
	if len(channels) == 1 && channels[0] == sk6812.All {
		target = "all LEDs"
	}
	fmt.Printf("Set %s to %s via %s\n", target, args[0], connInfo)
	return nil
}

// parseStripChannels splits a comma-separated list of LED indices. The
// element "all" addresses every LED on the strip.
func parseStripChannels(s string) ([]sk6812.ChannelIndex, error) {
	parts := strings.Split(s, ",")
	channels := make([]sk6812.ChannelIndex, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if part == "all" {
			channels = append(channels, sk6812.All)
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid LED index %q: must be a non-negative integer or \"all\"", part)
		}
		channels = append(channels, sk6812.ChannelIndex(n))
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("no channels given")
	}
	return channels, nil
}
