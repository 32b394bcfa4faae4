package lightswarm

import (
	"bytes"
	"testing"

	"github.com/swarmlight/swarmctl/pkg/protocol"
)

func intp(v int) *int { return &v }

func TestEncodeChannel(t *testing.T) {
	tests := []struct {
		name    string
		cmd     Command
		channel uint16
		expect  []byte
	}{
		{
			name:    "level 100 on channel 10",
			cmd:     Command{Action: "level", Level: intp(100)},
			channel: 10,
			expect:  []byte{0x00, 0x0A, 0x22, 0x64, 0x4C},
		},
		{
			name:    "on with high channel address",
			cmd:     Command{Action: "on"},
			channel: 0xABCD,
			expect:  []byte{0xAB, 0xCD, 0x20, 0x46},
		},
		{
			name:    "off on channel 1",
			cmd:     Command{Action: "off"},
			channel: 1,
			expect:  []byte{0x00, 0x01, 0x21, 0x20},
		},
		{
			name:    "toggle on channel 2",
			cmd:     Command{Action: "toggle"},
			channel: 2,
			expect:  []byte{0x00, 0x02, 0x2D, 0x2F},
		},
		{
			name: "fade carries level interval step in order",
			cmd: Command{
				Action:   "fade",
				Level:    intp(200),
				Interval: intp(5),
				Step:     intp(10),
			},
			channel: 3,
			expect:  []byte{0x00, 0x03, 0x23, 0xC8, 0x05, 0x0A, 0xE7},
		},
		{
			name:    "set_pseudo splits the 16-bit address",
			cmd:     Command{Action: "set_pseudo", PseudoAddress: intp(0x0304)},
			channel: 0x0102,
			expect:  []byte{0x01, 0x02, 0x25, 0x03, 0x04, 0x21},
		},
		{
			name:    "ping request",
			cmd:     Command{Action: "ping_request"},
			channel: 0,
			expect:  []byte{0x00, 0x00, 0x02, 0x02},
		},
		{
			name:    "reset",
			cmd:     Command{Action: "reset"},
			channel: 0,
			expect:  []byte{0x00, 0x00, 0x01, 0x01},
		},
		{
			name:    "level zero is valid",
			cmd:     Command{Action: "level", Level: intp(0)},
			channel: 10,
			expect:  []byte{0x00, 0x0A, 0x22, 0x00, 0x28},
		},
		{
			name:    "level 255 is valid",
			cmd:     Command{Action: "level", Level: intp(255)},
			channel: 10,
			expect:  []byte{0x00, 0x0A, 0x22, 0xFF, 0xD7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeChannel(tt.cmd, tt.channel)
			if err != nil {
				t.Fatalf("EncodeChannel failed: %v", err)
			}
			if !bytes.Equal(got, tt.expect) {
				t.Errorf("encoded bytes\n  got:  %X\n  want: %X", got, tt.expect)
			}

			// Last byte must be the XOR of everything before it.
			if ck := Checksum(got[:len(got)-1]); ck != got[len(got)-1] {
				t.Errorf("checksum byte = 0x%02X, want 0x%02X", got[len(got)-1], ck)
			}

			// Encoding is pure; a second call must agree.
			again, err := EncodeChannel(tt.cmd, tt.channel)
			if err != nil {
				t.Fatalf("second EncodeChannel failed: %v", err)
			}
			if !bytes.Equal(got, again) {
				t.Errorf("encoding not deterministic: %X then %X", got, again)
			}
		})
	}
}

func TestEncodeChannel_Errors(t *testing.T) {
	tests := []struct {
		name  string
		cmd   Command
		check func(error) bool
		kind  string
	}{
		{
			name:  "unknown action",
			cmd:   Command{Action: "blink"},
			check: protocol.IsUnknownActionError,
			kind:  "unknown action",
		},
		{
			name:  "empty action",
			cmd:   Command{Action: ""},
			check: protocol.IsUnknownActionError,
			kind:  "unknown action",
		},
		{
			name:  "level without value",
			cmd:   Command{Action: "level"},
			check: protocol.IsMissingValueError,
			kind:  "missing value",
		},
		{
			name:  "level above range",
			cmd:   Command{Action: "level", Level: intp(300)},
			check: protocol.IsOutOfRangeError,
			kind:  "out of range",
		},
		{
			name:  "level below range",
			cmd:   Command{Action: "level", Level: intp(-1)},
			check: protocol.IsOutOfRangeError,
			kind:  "out of range",
		},
		{
			name: "fade interval zero rejected",
			cmd: Command{
				Action:   "fade",
				Level:    intp(100),
				Interval: intp(0),
				Step:     intp(1),
			},
			check: protocol.IsOutOfRangeError,
			kind:  "out of range",
		},
		{
			name: "fade missing step",
			cmd: Command{
				Action:   "fade",
				Level:    intp(100),
				Interval: intp(1),
			},
			check: protocol.IsMissingValueError,
			kind:  "missing value",
		},
		{
			name:  "pseudo address above 16 bits",
			cmd:   Command{Action: "set_pseudo", PseudoAddress: intp(0x10000)},
			check: protocol.IsOutOfRangeError,
			kind:  "out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeChannel(tt.cmd, 1)
			if err == nil {
				t.Fatalf("EncodeChannel returned %X, want %s error", got, tt.kind)
			}
			if !tt.check(err) {
				t.Errorf("error = %v, want %s error", err, tt.kind)
			}
			if got != nil {
				t.Errorf("failed encode returned bytes: %X", got)
			}
		})
	}
}

func TestEncodeFrames_MultiChannel(t *testing.T) {
	cmd := Command{
		Action:   "level",
		Channels: []uint16{1, 2, 768},
		Level:    intp(50),
	}

	frames, err := EncodeFrames(cmd)
	if err != nil {
		t.Fatalf("EncodeFrames failed: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("frame count = %d, want 3", len(frames))
	}

	for i, frame := range frames {
		raw, err := EncodeChannel(cmd, cmd.Channels[i])
		if err != nil {
			t.Fatalf("EncodeChannel(%d) failed: %v", cmd.Channels[i], err)
		}
		if want := Frame(raw); !bytes.Equal(frame, want) {
			t.Errorf("frame %d\n  got:  %X\n  want: %X", i, frame, want)
		}
		if frame[0] != EndByte || frame[len(frame)-1] != EndByte {
			t.Errorf("frame %d not delimited: %X", i, frame)
		}
	}
}

func TestEncodeFrames_NoFramesOnValidationFailure(t *testing.T) {
	// The bad value must poison the whole command, even though channels
	// 1 and 2 would encode fine on their own.
	cmd := Command{
		Action:   "level",
		Channels: []uint16{1, 2, 3},
		Level:    intp(999),
	}

	frames, err := EncodeFrames(cmd)
	if err == nil {
		t.Fatal("EncodeFrames accepted an out-of-range level")
	}
	if !protocol.IsOutOfRangeError(err) {
		t.Errorf("error = %v, want out of range error", err)
	}
	if frames != nil {
		t.Errorf("failed encode returned frames: %X", frames)
	}
}

func TestEncodeFrames_NoChannels(t *testing.T) {
	frames, err := EncodeFrames(Command{Action: "on"})
	if err != nil {
		t.Fatalf("EncodeFrames failed: %v", err)
	}
	if len(frames) != 0 {
		t.Errorf("frame count = %d, want 0 for a command with no channels", len(frames))
	}
}

func TestChecksum(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		expect byte
	}{
		{name: "empty", data: nil, expect: 0x00},
		{name: "single byte", data: []byte{0x42}, expect: 0x42},
		{name: "level packet body", data: []byte{0x00, 0x0A, 0x22, 0x64}, expect: 0x4C},
		{name: "pair cancels", data: []byte{0xFF, 0xFF}, expect: 0x00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Checksum(tt.data); got != tt.expect {
				t.Errorf("Checksum(%X) = 0x%02X, want 0x%02X", tt.data, got, tt.expect)
			}
		})
	}
}

func TestChecksum_SelfCancelling(t *testing.T) {
	// XOR-ing a body with its own checksum always lands on zero, which is
	// how the receiver verifies a packet.
	body := []byte{0x00, 0x0A, 0x22, 0x64}
	withSum := append(append([]byte(nil), body...), Checksum(body))
	if got := Checksum(withSum); got != 0 {
		t.Errorf("Checksum over body+checksum = 0x%02X, want 0x00", got)
	}
}
