// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The Swarmlight Authors

// Package transport owns the serial connections to lighting devices.
//
// One Manager guards one device. All sends on a device are serialized by an
// exclusive lock; the connection is opened lazily on the first send and
// reopened on the send after a failure. Delivery is single-attempt: a failed
// send reports a transport error and leaves reconnection to the next call.
package transport

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/swarmlight/swarmctl/internal/logging"
	"github.com/swarmlight/swarmctl/pkg/protocol"
)

// Conn is the byte-stream handle a Manager writes to. Serial ports and
// WebSocket bridges both satisfy it.
type Conn interface {
	io.Reader
	io.Writer
	io.Closer
}

// DialFunc opens a fresh connection to a device.
type DialFunc func() (Conn, error)

// State is the connection state of one device.
type State int

const (
	StateDisconnected State = iota
	StateConnected
)

// String returns a human-readable name for the state
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnected:
		return "CONNECTED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Manager owns the connection to one device and serializes every write to
// it. Two devices get two fully independent Managers; a failure on one never
// affects the other. The zero state is Disconnected and there is no terminal
// state - recovery is always attempted on the next Send.
type Manager struct {
	device string
	dial   DialFunc

	mu    sync.Mutex
	state State
	conn  Conn
}

// New creates a Manager for the named device. No connection is opened until
// the first Send.
func New(device string, dial DialFunc) *Manager {
	return &Manager{device: device, dial: dial}
}

// Device returns the device name this manager owns.
func (m *Manager) Device() string {
	return m.device
}

// State reports the current connection state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Send delivers one fully-framed payload to the device. The whole
// check-state / reconnect-if-needed / write sequence runs under the
// manager's lock, so concurrent callers interleave at payload boundaries
// only and two callers can never race to open two handles.
//
// A dial or write failure returns a transport error and resets the state to
// Disconnected for a clean retry on the NEXT call; the current call is never
// retried. A write that consumes fewer bytes than given without reporting an
// error is recorded and returned as fatal.
func (m *Manager) Send(payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateDisconnected {
		conn, err := m.dial()
		if err != nil {
			return protocol.NewTransportError(m.device, "connect failed", err)
		}
		m.conn = conn
		m.state = StateConnected
		logging.Info("connected to device", zap.String("device", m.device))
	}

	logging.LogRawBytes("TX "+m.device, payload)
	n, err := m.conn.Write(payload)
	if err != nil {
		m.dropConn()
		return protocol.NewTransportError(m.device, "write failed", err)
	}
	if n < len(payload) {
		m.dropConn()
		fatal := protocol.NewFatalError(m.device,
			fmt.Sprintf("short write: %d of %d bytes", n, len(payload)), nil)
		logging.Error("unexpected transport failure",
			zap.String("device", m.device),
			zap.Error(fatal),
		)
		return fatal
	}
	return nil
}

// dropConn closes the handle best-effort and resets to Disconnected. A close
// failure is logged, never propagated; the next Send reopens from scratch.
// Callers must hold m.mu.
func (m *Manager) dropConn() {
	if m.conn != nil {
		if err := m.conn.Close(); err != nil {
			logging.Warn("close failed",
				zap.String("device", m.device),
				zap.Error(err),
			)
		}
	}
	m.conn = nil
	m.state = StateDisconnected
	logging.Debug("connection state changed",
		zap.String("device", m.device),
		zap.Stringer("state", StateDisconnected),
	)
}

// Close shuts the connection down. The manager stays usable afterwards; a
// later Send reconnects.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn == nil {
		return nil
	}
	err := m.conn.Close()
	m.conn = nil
	m.state = StateDisconnected
	return err
}
