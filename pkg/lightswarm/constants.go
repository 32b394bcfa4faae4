// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The Swarmlight Authors

// Package lightswarm implements the Lightswarm binary serial protocol.
//
// Lightswarm is a compact command protocol for addressable lighting devices.
// Each command addresses one 16-bit channel and is transmitted as a
// checksummed byte sequence wrapped in SLIP-style byte stuffing. This package
// provides the action catalog, command encoding, and the frame codec; the
// link is transmit-only, so no decoder exists.
package lightswarm

// Protocol framing bytes
const (
	EndByte = 0xC0 // frame delimiter
	EscByte = 0xDB // escape introducer
	EscEnd  = 0xDC // escaped delimiter (follows EscByte)
	EscEsc  = 0xDD // escaped escape (follows EscByte)
)

// Action opcodes - Link management 0x00-0x03
const (
	OpNothing      = 0x00
	OpReset        = 0x01
	OpPingRequest  = 0x02
	OpPingResponse = 0x03
)

// Action opcodes - Lighting control 0x20-0x2D
//
// Opcodes 0x26-0x31 and 0x7E exist in the firmware but are reserved;
// they are deliberately absent from the catalog so their names fail as
// unknown instead of encoding an unimplemented opcode.
const (
	OpOn        = 0x20
	OpOff       = 0x21
	OpLevel     = 0x22
	OpFade      = 0x23
	OpSetPseudo = 0x25
	OpToggle    = 0x2D
)
