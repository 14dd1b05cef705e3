// Package channel abstracts the control channel to the virtual gamepad bus
// device node. The bus accepts fixed-size command buffers identified by a
// control code; responses are either returned synchronously or completed
// asynchronously by the driver (readiness waits, feedback notifications).
//
// The package defines the interface consumed by the vigem client plus the
// Windows implementation. Everything above this layer is platform agnostic
// and testable against a fake Conn.
package channel

import (
	"context"
	"errors"
)

// Conn is one open handle to the bus device node.
//
// Control performs one synchronous request/response round trip. The in buffer
// is the encoded request; out, if non-nil, receives the response and must be
// sized for it.
//
// Await submits the request and blocks until the driver completes it, the
// context is cancelled, or the channel fails. It owns its own completion
// event, so a pending Await does not block concurrent Control calls on the
// same Conn. On success it returns the completed buffer (which may alias buf).
//
// Implementations may fail any call with ErrReset once the underlying handle
// is gone; callers must treat that as fatal for the connection.
type Conn interface {
	Control(code uint32, in, out []byte) error
	Await(ctx context.Context, code uint32, buf []byte) ([]byte, error)
	Close() error
}

var (
	// ErrNotFound means no bus device node exists (driver not installed or
	// not running).
	ErrNotFound = errors.New("channel: bus device not found")

	// ErrClosed is returned for operations on a closed Conn.
	ErrClosed = errors.New("channel: closed")

	// ErrReset means the device handle failed mid-operation and the
	// connection is unusable.
	ErrReset = errors.New("channel: connection reset")

	// ErrRejected means the driver declined the request (resource limits,
	// bad parameters). The channel itself is still healthy.
	ErrRejected = errors.New("channel: request rejected by driver")

	// ErrNotReady means the driver declined because the addressed device is
	// not yet exposed to the input subsystem.
	ErrNotReady = errors.New("channel: device not ready")

	// ErrUnsupported is returned by Open on platforms without a bus driver.
	ErrUnsupported = errors.New("channel: platform not supported")
)
