package lightswarm

import (
	"go.uber.org/zap"

	"github.com/swarmlight/swarmctl/internal/logging"
)

// Sender delivers one framed payload to the device. *transport.Manager
// satisfies it.
type Sender interface {
	Send(payload []byte) error
}

// Controller validates, encodes and transmits Lightswarm commands over a
// single device connection.
type Controller struct {
	tx Sender
}

// NewController creates a Controller that transmits through tx.
func NewController(tx Sender) *Controller {
	return &Controller{tx: tx}
}

// Submit encodes cmd for every addressed channel and writes one framed
// packet per channel, in channel order. Every channel is validated and
// encoded before the first write, so a validation failure transmits
// nothing. A transport failure aborts the remaining channels; packets
// already written stay written and are not retried.
func (c *Controller) Submit(cmd Command) error {
	frames, err := EncodeFrames(cmd)
	if err != nil {
		return err
	}
	for i, frame := range frames {
		logging.Debug("sending packet",
			zap.String("name", cmd.Name),
			zap.String("action", cmd.Action),
			zap.Uint16("channel", cmd.Channels[i]),
			zap.Int("bytes", len(frame)),
		)
		if err := c.tx.Send(frame); err != nil {
			return err
		}
	}
	return nil
}
