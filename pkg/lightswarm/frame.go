// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The Swarmlight Authors

package lightswarm

import (
	"fmt"

	"github.com/swarmlight/swarmctl/pkg/protocol"
)

// Frame applies byte stuffing and delimiters to a raw byte sequence. The
// result begins and ends with EndByte; occurrences of EndByte and EscByte in
// the body are replaced with [EscByte, EscEnd] and [EscByte, EscEsc], so the
// delimiter never appears unescaped inside a frame.
func Frame(raw []byte) []byte {
	// Pre-allocate for the worst case where every byte needs an escape
	framed := make([]byte, 0, len(raw)*2+2)
	framed = append(framed, EndByte)
	for _, b := range raw {
		switch b {
		case EndByte:
			framed = append(framed, EscByte, EscEnd)
		case EscByte:
			framed = append(framed, EscByte, EscEsc)
		default:
			framed = append(framed, b)
		}
	}
	framed = append(framed, EndByte)
	return framed
}

// FrameValues frames a sequence of untyped integer values. Unlike Frame,
// whose []byte input is 8-bit by construction, this is a general utility for
// hand-assembled sequences: every value is checked against [0,255] and an
// out-of-range value fails with ByteOutOfRange before any framing happens.
func FrameValues(values []int) ([]byte, error) {
	raw := make([]byte, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return nil, protocol.NewByteOutOfRangeError(
				fmt.Sprintf("8-bit value expected at index %d, got %d", i, v))
		}
		raw[i] = byte(v)
	}
	return Frame(raw), nil
}
