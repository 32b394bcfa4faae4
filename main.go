// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 The Swarmlight Authors

// Swarmctl drives Swarmlight lighting hardware over serial: the Lightswarm
// mains fixtures via a framed binary protocol and the SK6812 LED strips via
// newline-terminated JSON.
//
// Usage:
//
//	swarmctl [command] [flags]
//
// See 'swarmctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/swarmlight/swarmctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
