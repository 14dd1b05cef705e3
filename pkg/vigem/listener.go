package vigem

import (
	"context"
	"errors"

	"github.com/openvpad/govigem/pkg/bus"
)

// Feedback is one driver-originated notification: vibration motor
// magnitudes plus the LED index (player slot on Xbox 360, lightbar preset
// on DualShock 4).
type Feedback struct {
	LargeMotor uint8
	SmallMotor uint8
	LedNumber  uint8
}

// Listen starts the feedback listener for this target: a persistent wait on
// the driver's notification path, re-armed after every event. Events arrive
// on the first channel; the loop ends by delivering exactly one final error
// on the second channel and closing both.
//
// The target must be Ready, and at most one listener may be active per
// target. The listener stops when ctx is cancelled, the target is unplugged
// or closed, or the channel fails. Cancellation never delivers a stale or
// partial event.
//
// Listening does not block Update calls issued concurrently on the same
// target or client.
func (t *target) Listen(ctx context.Context) (<-chan Feedback, <-chan error) {
	events := make(chan Feedback, 8)
	errc := make(chan error, 1)

	t.mu.Lock()
	state, serial := t.state, t.serial
	t.mu.Unlock()

	fail := func(err error) (<-chan Feedback, <-chan error) {
		errc <- err
		close(events)
		close(errc)
		return events, errc
	}
	if state != StateReady {
		return fail(ErrTargetNotReady)
	}

	t.listenMu.Lock()
	if t.listenCancel != nil {
		t.listenMu.Unlock()
		return fail(ErrListenerActive)
	}
	lctx, cancel := context.WithCancel(ctx)
	t.listenCancel = cancel
	t.listenMu.Unlock()

	go t.listenLoop(lctx, serial, events, errc)
	return events, errc
}

func (t *target) listenLoop(ctx context.Context, serial uint32, events chan<- Feedback, errc chan<- error) {
	defer close(events)
	defer close(errc)
	defer func() {
		t.listenMu.Lock()
		t.listenCancel = nil
		t.listenMu.Unlock()
	}()

	for {
		buf := bus.NotificationBuffer(serial)
		completed, err := t.client.await(ctx, t.notifyCode, buf)
		if err != nil {
			if errors.Is(err, ErrConnectionLost) {
				t.fail()
			}
			errc <- err
			return
		}

		var n bus.Notification
		if err := n.UnmarshalBinary(completed); err != nil {
			errc <- err
			return
		}
		if n.Serial != serial {
			// Completion for a recycled serial; not ours.
			continue
		}

		ev := Feedback{LargeMotor: n.LargeMotor, SmallMotor: n.SmallMotor, LedNumber: n.LedNumber}
		select {
		case events <- ev:
			t.log.Debug("feedback event",
				"serial", serial, "large", ev.LargeMotor, "small", ev.SmallMotor, "led", ev.LedNumber)
		case <-ctx.Done():
			errc <- ctx.Err()
			return
		}
	}
}

// stopListener cancels the active feedback wait, if any.
func (t *target) stopListener() {
	t.listenMu.Lock()
	cancel := t.listenCancel
	t.listenMu.Unlock()
	if cancel != nil {
		cancel()
	}
}
