// Package vigem is a client for the virtual gamepad emulation bus driver.
// It speaks the driver's control protocol directly: connect to the bus
// device node, plug in virtual Xbox 360 or DualShock 4 targets, submit
// input reports and receive force-feedback notifications.
//
// A Client owns one open channel to the bus and is shared by any number of
// targets; the client must outlive every target created from it.
package vigem

import (
	"context"
	"encoding"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/openvpad/govigem/pkg/bus"
	"github.com/openvpad/govigem/pkg/channel"
)

// TargetID selects the emulated hardware identity of a target.
type TargetID struct {
	Vendor  uint16
	Product uint16
}

// Option configures a Client.
type Option func(*Client)

// WithLogger attaches a logger used for debug-level protocol tracing.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// Client is one connection to the bus driver.
type Client struct {
	conn    channel.Conn
	log     *slog.Logger
	version uint32

	// The bus accepts one outstanding control request per handle; mu pairs
	// each request with its response. Asynchronous waits (readiness,
	// feedback) go through Conn.Await and do not hold mu.
	mu     sync.Mutex
	closed atomic.Bool
}

// Connect discovers the bus device node, opens it and performs the version
// handshake. When several bus instances are present the first one speaking
// our protocol version wins.
func Connect(opts ...Option) (*Client, error) {
	paths, err := channel.DiscoverPaths()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDriverUnavailable, err)
	}
	var lastErr error = ErrDriverUnavailable
	for _, path := range paths {
		c, err := ConnectPath(path, opts...)
		if err == nil {
			return c, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// ConnectPath opens the bus device node at an explicit path and performs the
// version handshake.
func ConnectPath(path string, opts ...Option) (*Client, error) {
	conn, err := channel.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDriverUnavailable, err)
	}
	c, err := WithConn(conn, opts...)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return c, nil
}

// WithConn builds a client on an already-open channel and performs the
// version handshake. Primarily useful for testing against a fake channel.
// The client takes ownership of conn.
func WithConn(conn channel.Conn, opts ...Option) (*Client, error) {
	c := &Client{conn: conn, log: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.handshake(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) handshake() error {
	in, _ := bus.CheckVersion{}.MarshalBinary()
	var reply bus.CheckVersionReply
	out := make([]byte, reply.ReplySize())
	if err := c.conn.Control(bus.CodeCheckVersion, in, out); err != nil {
		return c.mapChannelError(err)
	}
	if err := reply.UnmarshalBinary(out); err != nil {
		return err
	}
	c.version = reply.Version
	c.log.Debug("bus handshake complete", "version", reply.Version)
	return nil
}

// Version returns the protocol version negotiated with the driver.
func (c *Client) Version() uint32 { return c.version }

// Close releases the channel. Every target created from this client becomes
// unusable; their operations fail with ErrConnectionLost.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	return c.conn.Close()
}

// exchange performs one serialized request/response round trip. reply may be
// nil for requests acknowledged by bare completion.
func (c *Client) exchange(code uint32, req encoding.BinaryMarshaler, reply busReply) error {
	if c.closed.Load() {
		return ErrConnectionLost
	}
	in, err := req.MarshalBinary()
	if err != nil {
		return err
	}
	var out []byte
	if reply != nil {
		out = make([]byte, reply.ReplySize())
	}

	c.mu.Lock()
	err = c.conn.Control(code, in, out)
	c.mu.Unlock()

	if err != nil {
		return c.mapChannelError(err)
	}
	if reply != nil {
		return reply.UnmarshalBinary(out)
	}
	return nil
}

// await submits a driver-completed request outside the exchange lock so a
// pending wait never blocks report submission on the same client.
func (c *Client) await(ctx context.Context, code uint32, buf []byte) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrConnectionLost
	}
	out, err := c.conn.Await(ctx, code, buf)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, c.mapChannelError(err)
	}
	return out, nil
}

func (c *Client) mapChannelError(err error) error {
	switch {
	case errors.Is(err, channel.ErrNotReady):
		return ErrTargetNotReady
	case errors.Is(err, channel.ErrRejected):
		return fmt.Errorf("%w: %v", ErrDriverRejected, err)
	case errors.Is(err, channel.ErrClosed), errors.Is(err, channel.ErrReset):
		c.closed.Store(true)
		return ErrConnectionLost
	default:
		return fmt.Errorf("%w: %v", ErrConnectionLost, err)
	}
}

type busReply interface {
	ReplySize() int
	UnmarshalBinary([]byte) error
}
