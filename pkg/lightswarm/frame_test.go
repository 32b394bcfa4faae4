// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The Swarmlight Authors

package lightswarm

import (
	"bytes"
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/swarmlight/swarmctl/pkg/protocol"
)

// getFuzzRounds returns the number of fuzz rounds from FUZZ_ROUNDS env var, default 1000
func getFuzzRounds() int {
	if envRounds := os.Getenv("FUZZ_ROUNDS"); envRounds != "" {
		if rounds, err := strconv.Atoi(envRounds); err == nil && rounds > 0 {
			return rounds
		}
	}
	return 1000
}

// getFuzzSeed returns the seed from FUZZ_SEED env var, or generates one from current time
func getFuzzSeed() int64 {
	if envSeed := os.Getenv("FUZZ_SEED"); envSeed != "" {
		if seed, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			return seed
		}
	}
	return time.Now().UnixNano()
}

// newFuzzRng creates a new random number generator and logs the seed for reproducibility
func newFuzzRng(t *testing.T) *rand.Rand {
	seed := getFuzzSeed()
	t.Logf("Seed: %d (reproduce with FUZZ_SEED=%d)", seed, seed)
	return rand.New(rand.NewSource(seed))
}

// unframe undoes byte stuffing, test-side only. The device is the real
// consumer of frames; nothing in the library decodes them.
func unframe(t *testing.T, framed []byte) []byte {
	t.Helper()
	if len(framed) < 2 || framed[0] != EndByte || framed[len(framed)-1] != EndByte {
		t.Fatalf("frame not delimited by 0x%02X: %X", EndByte, framed)
	}
	var raw []byte
	interior := framed[1 : len(framed)-1]
	for i := 0; i < len(interior); i++ {
		b := interior[i]
		if b != EscByte {
			raw = append(raw, b)
			continue
		}
		i++
		if i >= len(interior) {
			t.Fatalf("frame ends mid-escape: %X", framed)
		}
		switch interior[i] {
		case EscEnd:
			raw = append(raw, EndByte)
		case EscEsc:
			raw = append(raw, EscByte)
		default:
			t.Fatalf("invalid escape pair 0x%02X 0x%02X in %X", EscByte, interior[i], framed)
		}
	}
	return raw
}

func TestFrame(t *testing.T) {
	tests := []struct {
		name   string
		raw    []byte
		expect []byte
	}{
		{
			name:   "level packet passes through untouched",
			raw:    []byte{0x00, 0x0A, 0x22, 0x64, 0x4C},
			expect: []byte{0xC0, 0x00, 0x0A, 0x22, 0x64, 0x4C, 0xC0},
		},
		{
			name:   "end byte is escaped",
			raw:    []byte{0xC0},
			expect: []byte{0xC0, 0xDB, 0xDC, 0xC0},
		},
		{
			name:   "escape byte is escaped",
			raw:    []byte{0xDB},
			expect: []byte{0xC0, 0xDB, 0xDD, 0xC0},
		},
		{
			name:   "empty payload still delimited",
			raw:    nil,
			expect: []byte{0xC0, 0xC0},
		},
		{
			name:   "both reserved bytes in sequence",
			raw:    []byte{0xC0, 0xDB},
			expect: []byte{0xC0, 0xDB, 0xDC, 0xDB, 0xDD, 0xC0},
		},
		{
			name:   "reserved bytes between plain bytes",
			raw:    []byte{0x01, 0xC0, 0x02, 0xDB, 0x03},
			expect: []byte{0xC0, 0x01, 0xDB, 0xDC, 0x02, 0xDB, 0xDD, 0x03, 0xC0},
		},
		{
			name:   "escape substitutes are not themselves escaped",
			raw:    []byte{0xDC, 0xDD},
			expect: []byte{0xC0, 0xDC, 0xDD, 0xC0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Frame(tt.raw)
			if !bytes.Equal(got, tt.expect) {
				t.Errorf("Frame(%X)\n  got:  %X\n  want: %X", tt.raw, got, tt.expect)
			}
		})
	}
}

func TestFrame_InteriorNeverContainsEndByte(t *testing.T) {
	payloads := [][]byte{
		{0xC0, 0xC0, 0xC0},
		{0xDB, 0xC0, 0xDB},
		{0x00, 0xFF, 0xC0, 0x7F},
	}

	for _, raw := range payloads {
		framed := Frame(raw)
		interior := framed[1 : len(framed)-1]
		if bytes.IndexByte(interior, EndByte) != -1 {
			t.Errorf("Frame(%X) leaks a delimiter into the interior: %X", raw, framed)
		}
	}
}

func TestFrameValues(t *testing.T) {
	t.Run("valid values match byte framing", func(t *testing.T) {
		got, err := FrameValues([]int{0x00, 0x0A, 0x22, 0x64, 0x4C})
		if err != nil {
			t.Fatalf("FrameValues failed: %v", err)
		}
		want := Frame([]byte{0x00, 0x0A, 0x22, 0x64, 0x4C})
		if !bytes.Equal(got, want) {
			t.Errorf("FrameValues\n  got:  %X\n  want: %X", got, want)
		}
	})

	t.Run("boundary values pass", func(t *testing.T) {
		if _, err := FrameValues([]int{0, 255}); err != nil {
			t.Errorf("FrameValues([0, 255]) failed: %v", err)
		}
	})

	tests := []struct {
		name   string
		values []int
	}{
		{name: "value above a byte", values: []int{1, 256, 2}},
		{name: "negative value", values: []int{-1}},
		{name: "large value", values: []int{70000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			framed, err := FrameValues(tt.values)
			if err == nil {
				t.Fatalf("FrameValues(%v) returned %X, want error", tt.values, framed)
			}
			if !protocol.IsByteOutOfRangeError(err) {
				t.Errorf("error = %v, want byte out of range error", err)
			}
		})
	}
}

// ============================================================
// Framing Fuzz Tests
// ============================================================

// TestFuzzFrame_RoundTrip frames random payloads and verifies un-stuffing
// recovers the original bytes exactly
func TestFuzzFrame_RoundTrip(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		length := rng.Intn(64)
		raw := make([]byte, length)
		rng.Read(raw)

		framed := Frame(raw)
		recovered := unframe(t, framed)
		if !bytes.Equal(raw, recovered) {
			t.Fatalf("Round %d: round trip mismatch\n  raw:       %X\n  framed:    %X\n  recovered: %X",
				i, raw, framed, recovered)
		}
	}
}

// TestFuzzFrame_ReservedHeavyPayloads hammers payloads built mostly from the
// reserved framing bytes, where stuffing does all its work
func TestFuzzFrame_ReservedHeavyPayloads(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	reserved := []byte{EndByte, EscByte, EscEnd, EscEsc}
	for i := 0; i < rounds; i++ {
		length := rng.Intn(32) + 1
		raw := make([]byte, length)
		for j := range raw {
			if rng.Intn(4) == 0 {
				raw[j] = byte(rng.Intn(256))
			} else {
				raw[j] = reserved[rng.Intn(len(reserved))]
			}
		}

		framed := Frame(raw)

		interior := framed[1 : len(framed)-1]
		if bytes.IndexByte(interior, EndByte) != -1 {
			t.Fatalf("Round %d: delimiter inside frame interior: %X", i, framed)
		}

		recovered := unframe(t, framed)
		if !bytes.Equal(raw, recovered) {
			t.Fatalf("Round %d: round trip mismatch for %X", i, raw)
		}
	}
}
