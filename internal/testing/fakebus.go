// Package testing provides a scriptable in-memory bus channel so the client
// and target lifecycle can be exercised without the driver.
package testing

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/openvpad/govigem/pkg/bus"
	"github.com/openvpad/govigem/pkg/channel"
)

// FakeBus implements channel.Conn with driver-like behavior: a slot budget
// for plugins, per-target readiness gates, queued feedback events and fault
// injection for connection loss.
type FakeBus struct {
	mu         sync.Mutex
	version    uint32
	slots      int
	nextSerial uint32
	targets    map[uint32]*fakeTarget
	unplugs    map[uint32]int
	closed     bool
	reset      bool
	down       chan struct{}
	downOnce   sync.Once
}

type fakeTarget struct {
	targetType int32
	vendor     uint16
	product    uint16
	userIndex  uint32
	ready      chan struct{}
	readyOnce  sync.Once
	feedback   chan [3]byte
	reports    [][]byte
}

// NewFakeBus returns a fake bus speaking the current protocol version with
// four free slots.
func NewFakeBus() *FakeBus {
	return &FakeBus{
		version: bus.Version,
		slots:   4,
		targets: make(map[uint32]*fakeTarget),
		unplugs: make(map[uint32]int),
		down:    make(chan struct{}),
	}
}

// SetVersion changes the protocol version the fake bus reports during the
// handshake.
func (f *FakeBus) SetVersion(v uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.version = v
}

// SetSlots changes the number of targets the fake bus accepts at once.
func (f *FakeBus) SetSlots(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slots = n
}

// MarkReady completes any pending and future readiness waits for serial.
func (f *FakeBus) MarkReady(serial uint32) {
	f.mu.Lock()
	t := f.targets[serial]
	f.mu.Unlock()
	if t != nil {
		t.readyOnce.Do(func() { close(t.ready) })
	}
}

// PushFeedback queues one feedback event for serial.
func (f *FakeBus) PushFeedback(serial uint32, large, small, led uint8) {
	f.mu.Lock()
	t := f.targets[serial]
	f.mu.Unlock()
	if t != nil {
		t.feedback <- [3]byte{large, small, led}
	}
}

// SetUserIndex sets the user index reported for serial.
func (f *FakeBus) SetUserIndex(serial, index uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t := f.targets[serial]; t != nil {
		t.userIndex = index
	}
}

// InjectReset makes every subsequent operation fail as if the driver went
// away, and unblocks pending waits with the same failure.
func (f *FakeBus) InjectReset() {
	f.mu.Lock()
	f.reset = true
	f.mu.Unlock()
	f.downOnce.Do(func() { close(f.down) })
}

// Reports returns the raw report payloads submitted for serial, in order.
func (f *FakeBus) Reports(serial uint32) [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t := f.targets[serial]; t != nil {
		return append([][]byte(nil), t.reports...)
	}
	return nil
}

// PluggedCount returns the number of currently plugged targets.
func (f *FakeBus) PluggedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.targets)
}

// UnplugCount returns how many unplug requests were received for serial.
func (f *FakeBus) UnplugCount(serial uint32) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unplugs[serial]
}

// TargetInfo reports the hardware class and identity serial was plugged with.
func (f *FakeBus) TargetInfo(serial uint32) (targetType int32, vendor, product uint16, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.targets[serial]
	if t == nil {
		return 0, 0, 0, false
	}
	return t.targetType, t.vendor, t.product, true
}

func (f *FakeBus) putHeader(b []byte) {
	binary.LittleEndian.PutUint32(b[0:4], uint32(len(b)))
	binary.LittleEndian.PutUint32(b[4:8], f.version)
}

// Control implements channel.Conn.
func (f *FakeBus) Control(code uint32, in, out []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return channel.ErrClosed
	}
	if f.reset {
		return channel.ErrReset
	}

	switch code {
	case bus.CodeCheckVersion:
		if len(in) != bus.HeaderSize || len(out) != bus.HeaderSize {
			return channel.ErrRejected
		}
		f.putHeader(out)
		return nil

	case bus.CodePluginTarget:
		var req bus.PluginTarget
		if err := req.UnmarshalBinary(in); err != nil {
			return channel.ErrRejected
		}
		if len(f.targets) >= f.slots {
			return channel.ErrRejected
		}
		f.nextSerial++
		serial := f.nextSerial
		f.targets[serial] = &fakeTarget{
			targetType: req.TargetType,
			vendor:     req.VendorID,
			product:    req.ProductID,
			ready:      make(chan struct{}),
			feedback:   make(chan [3]byte, 8),
		}
		if len(out) != bus.HeaderSize+4 {
			return channel.ErrRejected
		}
		f.putHeader(out)
		binary.LittleEndian.PutUint32(out[8:12], serial)
		return nil

	case bus.CodeUnplugTarget:
		serial, ok := f.serialOf(in)
		if !ok {
			return channel.ErrRejected
		}
		if _, exists := f.targets[serial]; !exists {
			return channel.ErrRejected
		}
		f.unplugs[serial]++
		delete(f.targets, serial)
		return nil

	case bus.CodeXUsbSubmitReport, bus.CodeDS4SubmitReport:
		serial, report, err := bus.UnmarshalReport(in, len(in)-bus.HeaderSize-4)
		if err != nil {
			return channel.ErrRejected
		}
		t := f.targets[serial]
		if t == nil {
			return channel.ErrRejected
		}
		t.reports = append(t.reports, append([]byte(nil), report...))
		return nil

	case bus.CodeXUsbGetUserIndex:
		serial, ok := f.serialOf(in)
		if !ok {
			return channel.ErrRejected
		}
		t := f.targets[serial]
		if t == nil || len(out) != bus.HeaderSize+4 {
			return channel.ErrRejected
		}
		f.putHeader(out)
		binary.LittleEndian.PutUint32(out[8:12], t.userIndex)
		return nil

	default:
		return channel.ErrRejected
	}
}

// Await implements channel.Conn.
func (f *FakeBus) Await(ctx context.Context, code uint32, buf []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, channel.ErrClosed
	}
	if f.reset {
		f.mu.Unlock()
		return nil, channel.ErrReset
	}
	serial, ok := f.serialOf(buf)
	var t *fakeTarget
	if ok {
		t = f.targets[serial]
	}
	f.mu.Unlock()
	if t == nil {
		return nil, channel.ErrRejected
	}

	switch code {
	case bus.CodeWaitDeviceReady:
		select {
		case <-t.ready:
			return buf, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-f.down:
			return nil, channel.ErrReset
		}

	case bus.CodeXUsbRequestNotification, bus.CodeDS4RequestNotification:
		select {
		case fb := <-t.feedback:
			out := append([]byte(nil), buf...)
			if len(out) != bus.NotificationSize {
				return nil, channel.ErrRejected
			}
			out[12], out[13], out[14] = fb[0], fb[1], fb[2]
			return out, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-f.down:
			return nil, channel.ErrReset
		}

	default:
		return nil, channel.ErrRejected
	}
}

// Close implements channel.Conn.
func (f *FakeBus) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.downOnce.Do(func() { close(f.down) })
	return nil
}

func (f *FakeBus) serialOf(b []byte) (uint32, bool) {
	if len(b) < bus.HeaderSize+4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b[8:12]), true
}
