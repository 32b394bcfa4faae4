// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 The Swarmlight Authors

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swarmlight/swarmctl/internal/config"
	"github.com/swarmlight/swarmctl/pkg/transport"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports on this host",
	Long: `Enumerate the serial ports present on this host and mark the platform
default the devices are expected on.`,
	RunE: runPorts,
}

func init() {
	rootCmd.AddCommand(portsCmd)
}

func runPorts(cmd *cobra.Command, args []string) error {
	ports, err := transport.ListPorts()
	if err != nil {
		return fmt.Errorf("failed to enumerate serial ports: %v", err)
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found")
		return nil
	}

	defaultPort := config.DefaultPort()
	for _, port := range ports {
		if port == defaultPort {
			fmt.Printf("%s (platform default)\n", port)
		} else {
			fmt.Println(port)
		}
	}
	return nil
}
