// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 The Swarmlight Authors

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/swarmlight/swarmctl/internal/config"
	"github.com/swarmlight/swarmctl/internal/logging"
	"github.com/swarmlight/swarmctl/internal/version"
)

var (
	// Configuration flags
	cfgFile  string
	logLevel string

	// Serial connection flags
	portName string
	baudRate int

	// WebSocket bridge flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Loaded configuration, available to all subcommands
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "swarmctl",
	Short: "Swarmlight serial lighting control",
	Long: `Swarmctl drives the two Swarmlight device families from one tool: the
Lightswarm mains fixtures, which speak a framed binary protocol, and the
SK6812 LED strips, which take newline-terminated JSON.

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 115200]
  WebSocket: --url ws://host/path [--username user]

Without --port the platform's usual USB serial port is used; a YAML config
file (--config) can pin a different port and baud rate per device.

For WebSocket authentication, the password is read from the SWARMCTL_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell
history.`,
	Version:      version.Full(),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		level := logLevel
		if level == "" {
			level = cfg.LogLevel
		}
		return logging.Initialize(level)
	},
}

func init() {
	// Configuration flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log verbosity: debug, info, warn, error (default silent)")

	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device (default per platform)")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 0, "Baud rate (serial only, default 115200)")

	// WebSocket bridge flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket bridge URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")
}

// Execute runs the root command
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}
