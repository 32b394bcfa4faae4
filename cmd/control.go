// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 The Swarmlight Authors

package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/swarmlight/swarmctl/pkg/lightswarm"
	"github.com/swarmlight/swarmctl/pkg/sk6812"
	"github.com/swarmlight/swarmctl/pkg/transport"
)

var controlCmd = &cobra.Command{
	Use:   "control",
	Short: "Interactive TUI for driving the lights and the strip",
	Long: `Control Swarmlight devices via an interactive terminal UI.

The left panel lists every Lightswarm action and strip colour; the right
panel takes the target channels and parameters. Enter sends the selected
command.

Both device protocols are transmit-only, so there is no telemetry: the
event log shows what was sent and whether the write succeeded, and the
status line shows each device's connection state. Connections open lazily
on the first send and recover on the send after a failure.

Supports both serial and WebSocket bridge connections.`,
	RunE: runControl,
}

func init() {
	rootCmd.AddCommand(controlCmd)
}

// controlDevices bundles the two device controllers the TUI drives.
type controlDevices struct {
	lights     *lightswarm.Controller
	lightsTx   *transport.Manager
	lightsInfo string

	strip     *sk6812.Controller
	stripTx   *transport.Manager
	stripInfo string
}

func runControl(cmd *cobra.Command, args []string) error {
	lightsDial, lightsInfo, err := buildDialer(cfg.Lightswarm)
	if err != nil {
		return err
	}
	stripDial, stripInfo, err := buildDialer(cfg.Strip)
	if err != nil {
		return err
	}

	lights := transport.New("lightswarm", lightsDial)
	strip := transport.New("strip", stripDial)
	defer lights.Close()
	defer strip.Close()

	m := initialControlModel(controlDevices{
		lights:     lightswarm.NewController(lights),
		lightsTx:   lights,
		lightsInfo: lightsInfo,
		strip:      sk6812.NewController(strip),
		stripTx:    strip,
		stripInfo:  stripInfo,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}
	return nil
}
