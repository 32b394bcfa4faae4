package sk6812

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/swarmlight/swarmctl/pkg/protocol"
)

// All addresses every LED on the strip at once. The firmware receives it as
// the string "all" in place of a numeric index.
const All ChannelIndex = -1

// ChannelIndex is one LED position on the strip, or All.
type ChannelIndex int

// MarshalJSON writes the sentinel as "all" and everything else as a number.
func (c ChannelIndex) MarshalJSON() ([]byte, error) {
	if c == All {
		return []byte(`"all"`), nil
	}
	return []byte(strconv.Itoa(int(c))), nil
}

// Command is one logical strip request. A command targeting N channels
// expands into N envelope entries sent together in a single JSON array.
type Command struct {
	Name       string // request label, used for logging only
	Channels   []ChannelIndex
	Colour     string
	Brightness *float64
	Effect     *string
}

// Envelope is one per-LED record inside the JSON array the firmware reads.
// Brightness and effect are carried through without interpretation; the
// firmware owns their meaning, so absent values go out as null rather than
// being dropped.
type Envelope struct {
	Index      ChannelIndex `json:"index"`
	Set        Colour       `json:"set"`
	Brightness *float64     `json:"brightness"`
	Effect     *string      `json:"effect"`
}

// Encode expands cmd into one envelope per target channel. The colour name
// is resolved first, so an unknown name fails before anything is built.
func Encode(cmd Command) ([]Envelope, error) {
	set, err := LookupColour(cmd.Colour)
	if err != nil {
		return nil, err
	}

	envelopes := make([]Envelope, 0, len(cmd.Channels))
	for _, channel := range cmd.Channels {
		if channel < 0 && channel != All {
			return nil, protocol.NewOutOfRangeError(
				fmt.Sprintf("channel index must be non-negative, got %d", int(channel)))
		}
		envelopes = append(envelopes, Envelope{
			Index:      channel,
			Set:        set,
			Brightness: cmd.Brightness,
			Effect:     cmd.Effect,
		})
	}
	return envelopes, nil
}

// Marshal serializes envelopes to the wire form: a UTF-8 JSON array
// terminated by a newline. An empty set still produces a valid "[]" line.
func Marshal(envelopes []Envelope) ([]byte, error) {
	if envelopes == nil {
		envelopes = []Envelope{}
	}
	data, err := json.Marshal(envelopes)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
