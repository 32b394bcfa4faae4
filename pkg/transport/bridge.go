// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The Swarmlight Authors

package transport

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

// ErrBridgeClosed is returned when reading from a closed bridge connection
var ErrBridgeClosed = errors.New("bridge connection closed")

// bridgeConn adapts a WebSocket connection carrying the raw device byte
// stream to the Conn interface. Incoming binary messages are buffered so
// reads can consume them incrementally.
type bridgeConn struct {
	conn      *websocket.Conn
	buf       []byte
	bufOffset int
	closed    bool
}

func (b *bridgeConn) Read(p []byte) (int, error) {
	if b.closed {
		return 0, ErrBridgeClosed
	}

	// Drain any leftover from the previous message first
	if b.bufOffset < len(b.buf) {
		n := copy(p, b.buf[b.bufOffset:])
		b.bufOffset += n
		return n, nil
	}

	for {
		messageType, data, err := b.conn.ReadMessage()
		if err != nil {
			b.closed = true
			return 0, err
		}

		// Only binary messages carry device bytes
		if messageType != websocket.BinaryMessage {
			continue
		}

		b.buf = data
		b.bufOffset = 0
		n := copy(p, b.buf)
		b.bufOffset = n
		return n, nil
	}
}

func (b *bridgeConn) Write(p []byte) (int, error) {
	if err := b.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (b *bridgeConn) Close() error {
	b.closed = true
	return b.conn.Close()
}

// BridgeConfig describes a serial-over-WebSocket bridge endpoint.
type BridgeConfig struct {
	URL           string
	Username      string
	Password      string
	SkipSSLVerify bool
}

// NewBridgeDialer returns a DialFunc that connects to a serial-over-WebSocket
// bridge using HTTP Basic authentication. The remote end relays every binary
// message onto the device's serial port unchanged.
func NewBridgeDialer(cfg BridgeConfig) DialFunc {
	return func() (Conn, error) {
		u, err := url.Parse(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid URL: %v", err)
		}
		if u.Scheme != "ws" && u.Scheme != "wss" {
			return nil, fmt.Errorf("unsupported URL scheme: %s (use ws:// or wss://)", u.Scheme)
		}

		dialer := websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		}
		if u.Scheme == "wss" {
			dialer.TLSClientConfig = &tls.Config{
				InsecureSkipVerify: cfg.SkipSSLVerify,
			}
		}

		headers := http.Header{}
		if cfg.Username != "" && cfg.Password != "" {
			credentials := base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.Password))
			headers.Set("Authorization", "Basic "+credentials)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		conn, resp, err := dialer.DialContext(ctx, cfg.URL, headers)
		if err != nil {
			if resp != nil {
				return nil, fmt.Errorf("bridge connection failed (HTTP %d): %v", resp.StatusCode, err)
			}
			return nil, fmt.Errorf("bridge connection failed: %v", err)
		}

		return &bridgeConn{conn: conn}, nil
	}
}
