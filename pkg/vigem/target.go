package vigem

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/openvpad/govigem/pkg/bus"
)

// State is the lifecycle state of a target.
type State int32

const (
	// StateCreated is the initial state; no driver-side resource exists.
	StateCreated State = iota
	// StatePluggedIn means the driver allocated the virtual device, but it
	// is not yet visible to the input subsystem.
	StatePluggedIn
	// StateReady means the device is enumerated and accepts report updates.
	StateReady
	// StateUnplugged is terminal; the driver-side device is released.
	StateUnplugged
	// StateErrored is terminal; the channel failed underneath the target.
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StatePluggedIn:
		return "plugged-in"
	case StateReady:
		return "ready"
	case StateUnplugged:
		return "unplugged"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// target is the lifecycle core shared by both hardware classes. The variant
// supplies the target type and the per-class control codes; everything else
// is written once against those.
type target struct {
	client     *Client
	id         TargetID
	targetType int32
	reportCode uint32
	notifyCode uint32
	log        *slog.Logger

	mu     sync.Mutex
	state  State
	serial uint32

	listenMu     sync.Mutex
	listenCancel context.CancelFunc
}

func newTarget(client *Client, id TargetID, targetType int32, reportCode, notifyCode uint32) target {
	return target{
		client:     client,
		id:         id,
		targetType: targetType,
		reportCode: reportCode,
		notifyCode: notifyCode,
		log:        client.log,
	}
}

// ID returns the vendor and product ids the target was constructed with.
func (t *target) ID() TargetID { return t.id }

// State returns the current lifecycle state.
func (t *target) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Serial returns the driver-assigned serial number. It is defined only once
// the target is plugged in.
func (t *target) Serial() (uint32, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state {
	case StatePluggedIn, StateReady:
		return t.serial, nil
	case StateUnplugged:
		return 0, ErrAlreadyUnplugged
	case StateErrored:
		return 0, ErrConnectionLost
	default:
		return 0, ErrNotPluggedIn
	}
}

// Plugin asks the driver to allocate the virtual device. On success the
// target holds the driver-assigned serial and moves to PluggedIn. If the
// driver refuses the state stays Created and the call may be retried.
func (t *target) Plugin() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state {
	case StatePluggedIn, StateReady:
		return ErrAlreadyPluggedIn
	case StateUnplugged:
		return ErrAlreadyUnplugged
	case StateErrored:
		return ErrConnectionLost
	}

	req := &bus.PluginTarget{
		SerialHint: 1,
		TargetType: t.targetType,
		VendorID:   t.id.Vendor,
		ProductID:  t.id.Product,
	}
	var reply bus.PluginReply
	if err := t.client.exchange(bus.CodePluginTarget, req, &reply); err != nil {
		if errors.Is(err, ErrConnectionLost) {
			t.state = StateErrored
		} else if errors.Is(err, ErrDriverRejected) {
			return ErrNoFreeSlot
		}
		return err
	}
	t.serial = reply.Serial
	t.state = StatePluggedIn
	t.log.Debug("target plugged in",
		"serial", t.serial, "vendor", t.id.Vendor, "product", t.id.Product)
	return nil
}

// WaitReady blocks until the driver signals that the device is enumerated,
// the context expires, or the channel fails. A deadline expiry returns
// ErrReadyTimeout with the target left in PluggedIn, so the wait can be
// retried with a longer bound.
func (t *target) WaitReady(ctx context.Context) error {
	t.mu.Lock()
	switch t.state {
	case StateReady:
		t.mu.Unlock()
		return nil
	case StateCreated:
		t.mu.Unlock()
		return ErrNotPluggedIn
	case StateUnplugged:
		t.mu.Unlock()
		return ErrAlreadyUnplugged
	case StateErrored:
		t.mu.Unlock()
		return ErrConnectionLost
	}
	serial := t.serial
	t.mu.Unlock()

	// The wait completes asynchronously and must not hold the client's
	// exchange lock: updates from other targets proceed in the meantime.
	buf, err := bus.NewWaitDeviceReady(serial).MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := t.client.await(ctx, bus.CodeWaitDeviceReady, buf); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrReadyTimeout
		}
		if errors.Is(err, ErrConnectionLost) {
			t.fail()
		}
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StatePluggedIn {
		t.state = StateReady
		t.log.Debug("target ready", "serial", t.serial)
	}
	return nil
}

// update submits one encoded report. Valid only in Ready; elsewhere it fails
// deterministically without touching the channel.
func (t *target) update(report []byte) error {
	t.mu.Lock()
	switch t.state {
	case StateReady:
	case StateUnplugged:
		t.mu.Unlock()
		return ErrAlreadyUnplugged
	case StateErrored:
		t.mu.Unlock()
		return ErrConnectionLost
	default:
		t.mu.Unlock()
		return ErrTargetNotReady
	}
	serial := t.serial
	t.mu.Unlock()

	req := &bus.SubmitReport{Serial: serial, Report: report}
	if err := t.client.exchange(t.reportCode, req, nil); err != nil {
		if errors.Is(err, ErrConnectionLost) {
			t.fail()
		}
		return err
	}
	return nil
}

// Unplug releases the driver-side device. The target moves to Unplugged
// regardless of driver acknowledgement; a pending feedback wait is
// cancelled.
func (t *target) Unplug() error {
	t.mu.Lock()
	switch t.state {
	case StateCreated:
		t.mu.Unlock()
		return ErrNotPluggedIn
	case StateUnplugged:
		t.mu.Unlock()
		return ErrAlreadyUnplugged
	case StateErrored:
		t.mu.Unlock()
		return ErrConnectionLost
	}
	serial := t.serial
	t.state = StateUnplugged
	t.mu.Unlock()

	t.stopListener()

	err := t.client.exchange(bus.CodeUnplugTarget, bus.NewUnplugTarget(serial), nil)
	if err != nil {
		t.log.Debug("unplug not acknowledged", "serial", serial, "error", err)
		return err
	}
	t.log.Debug("target unplugged", "serial", serial)
	return nil
}

// Close releases the target. A still plugged-in target is unplugged best
// effort; errors are discarded since no caller can act on them during
// teardown. Close is idempotent.
func (t *target) Close() error {
	t.mu.Lock()
	attached := t.state == StatePluggedIn || t.state == StateReady
	t.mu.Unlock()
	if attached {
		_ = t.Unplug()
	}
	t.stopListener()
	return nil
}

// fail marks the target errored after a channel failure.
func (t *target) fail() {
	t.mu.Lock()
	if t.state != StateUnplugged {
		t.state = StateErrored
	}
	t.mu.Unlock()
	t.stopListener()
}
