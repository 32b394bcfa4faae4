package sk6812

import (
	"bytes"
	"errors"
	"testing"

	"github.com/swarmlight/swarmctl/pkg/protocol"
)

type recordingSender struct {
	sent [][]byte
	err  error
}

func (r *recordingSender) Send(payload []byte) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, append([]byte(nil), payload...))
	return nil
}

func TestControllerSubmit_OneWritePerCommand(t *testing.T) {
	sender := &recordingSender{}
	ctrl := NewController(sender)

	err := ctrl.Submit(Command{
		Name:       "hallway on",
		Channels:   []ChannelIndex{0, 1, 2},
		Colour:     "warm",
		Brightness: floatp(0.5),
		Effect:     strp("on"),
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	// Three channels, one write: the firmware parses whole lines.
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d payloads, want 1", len(sender.sent))
	}
	payload := sender.sent[0]
	if payload[len(payload)-1] != '\n' {
		t.Errorf("payload does not end with newline: %q", payload)
	}
	if bytes.Count(payload, []byte(`"index"`)) != 3 {
		t.Errorf("payload does not carry 3 envelopes: %s", payload)
	}
}

func TestControllerSubmit_UnknownColourSendsNothing(t *testing.T) {
	sender := &recordingSender{}
	ctrl := NewController(sender)

	err := ctrl.Submit(Command{
		Channels: []ChannelIndex{0},
		Colour:   "rainbow",
	})
	if err == nil {
		t.Fatal("Submit accepted an unknown colour")
	}
	if !protocol.IsUnknownActionError(err) {
		t.Errorf("error = %v, want unknown action error", err)
	}
	if len(sender.sent) != 0 {
		t.Errorf("sent %d payloads for an invalid command, want 0", len(sender.sent))
	}
}

func TestControllerSubmit_TransportFailurePropagates(t *testing.T) {
	errDown := errors.New("strip unplugged")
	ctrl := NewController(&recordingSender{err: errDown})

	err := ctrl.Submit(Command{
		Channels: []ChannelIndex{All},
		Colour:   "off",
	})
	if !errors.Is(err, errDown) {
		t.Errorf("Submit error = %v, want the transport cause", err)
	}
}
