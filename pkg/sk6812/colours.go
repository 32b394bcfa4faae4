// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The Swarmlight Authors

// Package sk6812 encodes commands for SK6812 RGBW LED strips. The strip
// firmware consumes newline-terminated JSON arrays over serial, one entry
// per addressed LED, so unlike the lightswarm wire protocol there is no
// byte-level framing here.
package sk6812

import (
	"fmt"
	"sort"

	"github.com/swarmlight/swarmctl/pkg/protocol"
)

// Colour is an RGBW quadruple as the strip firmware expects it. It marshals
// to a 4-element JSON array.
type Colour [4]uint8

// colours maps the colour names the firmware understands to channel values.
var colours = map[string]Colour{
	"natural": {0, 0, 0, 255},
	"cool":    {255, 255, 255, 255},
	"warm":    {253, 244, 220, 0},
	"red":     {255, 0, 0, 0},
	"green":   {0, 255, 0, 0},
	"blue":    {0, 0, 255, 0},
	"off":     {0, 0, 0, 0},
}

// LookupColour resolves a colour name to its RGBW values.
func LookupColour(name string) (Colour, error) {
	c, ok := colours[name]
	if !ok {
		return Colour{}, protocol.NewUnknownActionError(fmt.Sprintf("unknown settings for: %s", name))
	}
	return c, nil
}

// ColourNames returns the known colour names in sorted order.
func ColourNames() []string {
	names := make([]string, 0, len(colours))
	for name := range colours {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
