// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The Swarmlight Authors

package transport

import (
	"fmt"

	"go.bug.st/serial"
)

// serialConn wraps a serial port handle
type serialConn struct {
	port serial.Port
}

func (s *serialConn) Read(p []byte) (int, error) {
	return s.port.Read(p)
}

func (s *serialConn) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

func (s *serialConn) Close() error {
	return s.port.Close()
}

// NewSerialDialer returns a DialFunc that opens the named port at the given
// baud rate with 8 data bits, no parity and one stop bit.
func NewSerialDialer(portName string, baudRate int) DialFunc {
	return func() (Conn, error) {
		mode := &serial.Mode{
			BaudRate: baudRate,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		}

		port, err := serial.Open(portName, mode)
		if err != nil {
			return nil, fmt.Errorf("failed to open serial port %s: %v", portName, err)
		}
		return &serialConn{port: port}, nil
	}
}

// ListPorts enumerates the serial ports present on this host.
func ListPorts() ([]string, error) {
	return serial.GetPortsList()
}
