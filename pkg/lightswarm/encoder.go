package lightswarm

import (
	"github.com/swarmlight/swarmctl/pkg/protocol"
)

// Command is one logical Lightswarm request. A command targeting N channels
// encodes to N independent byte sequences, each separately checksummed and
// framed; there is no batching across channels on the wire.
type Command struct {
	Name          string   // request label, used for logging only
	Channels      []uint16 // target channel addresses
	Action        string
	Level         *int
	Interval      *int
	Step          *int
	PseudoAddress *int
}

// param returns the value of the named command field, or nil when unset.
func (c Command) param(field string) any {
	var p *int
	switch field {
	case "level":
		p = c.Level
	case "interval":
		p = c.Interval
	case "step":
		p = c.Step
	case "pseudo_address":
		p = c.PseudoAddress
	}
	if p == nil {
		return nil
	}
	return *p
}

// extraPayload validates and assembles the action-specific payload bytes by
// walking the catalog parameter specs.
func extraPayload(cmd Command, action Action) ([]byte, error) {
	var extra []byte
	for _, spec := range action.Params {
		value, err := protocol.CheckValue(cmd.param(spec.Field), cmd.Action, spec.Bracket)
		if err != nil {
			return nil, err
		}
		if spec.Split16 {
			extra = append(extra, byte(value>>8), byte(value))
		} else {
			extra = append(extra, byte(value))
		}
	}
	return extra, nil
}

// EncodeChannel encodes one channel of a command into an unframed byte
// sequence: address high byte, address low byte, opcode, action parameters,
// then the XOR checksum of all preceding bytes.
func EncodeChannel(cmd Command, channel uint16) ([]byte, error) {
	action, err := LookupAction(cmd.Action)
	if err != nil {
		return nil, err
	}
	extra, err := extraPayload(cmd, action)
	if err != nil {
		return nil, err
	}

	raw := make([]byte, 0, 4+len(extra))
	raw = append(raw, byte(channel>>8), byte(channel), action.Opcode)
	raw = append(raw, extra...)
	raw = append(raw, Checksum(raw))
	return raw, nil
}

// EncodeFrames encodes a command for every target channel and returns one
// framed payload per channel. No I/O happens here; catalog and validation
// failures surface before anything can reach a device.
func EncodeFrames(cmd Command) ([][]byte, error) {
	frames := make([][]byte, 0, len(cmd.Channels))
	for _, channel := range cmd.Channels {
		raw, err := EncodeChannel(cmd, channel)
		if err != nil {
			return nil, err
		}
		frames = append(frames, Frame(raw))
	}
	return frames, nil
}

// Checksum returns the bitwise XOR of all bytes in data.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum ^= b
	}
	return sum
}
