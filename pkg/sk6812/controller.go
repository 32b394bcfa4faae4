package sk6812

import (
	"go.uber.org/zap"

	"github.com/swarmlight/swarmctl/internal/logging"
)

// Sender delivers one serialized payload to the strip. *transport.Manager
// satisfies it.
type Sender interface {
	Send(payload []byte) error
}

// Controller validates, encodes and transmits strip commands over a single
// device connection.
type Controller struct {
	tx Sender
}

// NewController creates a Controller that transmits through tx.
func NewController(tx Sender) *Controller {
	return &Controller{tx: tx}
}

// Submit encodes cmd and writes the whole command as one JSON line. Unlike
// the per-channel lightswarm wire format, all channels travel in a single
// write, so a command either reaches the strip complete or not at all.
func (c *Controller) Submit(cmd Command) error {
	envelopes, err := Encode(cmd)
	if err != nil {
		return err
	}
	payload, err := Marshal(envelopes)
	if err != nil {
		return err
	}
	logging.Debug("sending strip payload",
		zap.String("name", cmd.Name),
		zap.String("colour", cmd.Colour),
		zap.Int("channels", len(envelopes)),
		zap.Int("bytes", len(payload)),
	)
	return c.tx.Send(payload)
}
