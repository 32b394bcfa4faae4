// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 The Swarmlight Authors

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/swarmlight/swarmctl/internal/config"
	"github.com/swarmlight/swarmctl/pkg/transport"
)

// PasswordEnvVar is checked before prompting for bridge authentication
const PasswordEnvVar = "SWARMCTL_PASSWORD"

// promptedPassword caches an interactively entered password so commands
// that dial both devices prompt once, not twice
var promptedPassword string

// getPassword reads the bridge password from the environment, or prompts for
// it interactively
func getPassword() (string, error) {
	// First check environment variable
	if pw := os.Getenv(PasswordEnvVar); pw != "" {
		return pw, nil
	}
	if promptedPassword != "" {
		return promptedPassword, nil
	}

	// Prompt user for password (hide input)
	fmt.Fprint(os.Stderr, "Password: ")

	// Read password without echo
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		// Fallback to regular input if terminal functions fail
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read password: %v", err)
		}
		fmt.Fprintln(os.Stderr) // newline after password
		promptedPassword = strings.TrimSpace(password)
		return promptedPassword, nil
	}

	fmt.Fprintln(os.Stderr) // newline after password
	promptedPassword = string(passwordBytes)
	return promptedPassword, nil
}

// resolveSerial returns the port and baud rate for a device. Command-line
// flags win over the config file.
func resolveSerial(device config.DeviceConfig) (string, int) {
	port := device.Port
	if portName != "" {
		port = portName
	}
	baud := device.Baud
	if baudRate != 0 {
		baud = baudRate
	}
	return port, baud
}

// buildDialer picks the transport for a device from the connection flags: a
// WebSocket bridge when --url is given, the device's serial port otherwise.
// The returned description names the endpoint for status output.
func buildDialer(device config.DeviceConfig) (transport.DialFunc, string, error) {
	if wsURL != "" {
		password := ""
		if wsUsername != "" {
			var err error
			password, err = getPassword()
			if err != nil {
				return nil, "", err
			}
		}
		dial := transport.NewBridgeDialer(transport.BridgeConfig{
			URL:           wsURL,
			Username:      wsUsername,
			Password:      password,
			SkipSSLVerify: wsNoSSLVerify,
		})
		return dial, fmt.Sprintf("WebSocket: %s", wsURL), nil
	}

	port, baud := resolveSerial(device)
	return transport.NewSerialDialer(port, baud), fmt.Sprintf("Serial: %s @ %d baud", port, baud), nil
}
