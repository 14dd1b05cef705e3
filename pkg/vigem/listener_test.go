package vigem_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvpad/govigem/pkg/vigem"
)

func recvFeedback(t *testing.T, events <-chan vigem.Feedback) vigem.Feedback {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "event channel closed early")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for feedback event")
		return vigem.Feedback{}
	}
}

func recvFinalError(t *testing.T, errc <-chan error) error {
	t.Helper()
	select {
	case err, ok := <-errc:
		require.True(t, ok, "error channel closed without final error")
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for final listener error")
		return nil
	}
}

func TestListenDeliversFeedback(t *testing.T) {
	fake, pad, serial := newReadyXbox360(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, errc := pad.Listen(ctx)

	fake.PushFeedback(serial, 0xAA, 0x55, 1)
	ev := recvFeedback(t, events)
	assert.Equal(t, vigem.Feedback{LargeMotor: 0xAA, SmallMotor: 0x55, LedNumber: 1}, ev)

	// The wait re-arms after every event.
	fake.PushFeedback(serial, 0, 0, 2)
	ev = recvFeedback(t, events)
	assert.Equal(t, vigem.Feedback{LedNumber: 2}, ev)

	cancel()
	assert.ErrorIs(t, recvFinalError(t, errc), context.Canceled)

	// Both channels end closed.
	_, ok := <-events
	assert.False(t, ok)
	_, ok2 := <-errc
	assert.False(t, ok2)
}

func TestListenRequiresReady(t *testing.T) {
	_, client := newTestClient(t)
	pad := vigem.NewXbox360(client, vigem.Xbox360WiredID)
	require.NoError(t, pad.Plugin())

	events, errc := pad.Listen(context.Background())
	assert.ErrorIs(t, recvFinalError(t, errc), vigem.ErrTargetNotReady)
	_, ok := <-events
	assert.False(t, ok)
}

func TestListenSingleListener(t *testing.T) {
	_, pad, _ := newReadyXbox360(t)

	ctx, cancel := context.WithCancel(context.Background())
	_, errc1 := pad.Listen(ctx)

	_, errc2 := pad.Listen(context.Background())
	assert.ErrorIs(t, recvFinalError(t, errc2), vigem.ErrListenerActive)

	cancel()
	assert.ErrorIs(t, recvFinalError(t, errc1), context.Canceled)
}

func TestUnplugStopsListener(t *testing.T) {
	_, pad, _ := newReadyXbox360(t)

	events, errc := pad.Listen(context.Background())
	require.NoError(t, pad.Unplug())

	assert.ErrorIs(t, recvFinalError(t, errc), context.Canceled)
	_, ok := <-events
	assert.False(t, ok)
}

func TestConnectionLossEndsListener(t *testing.T) {
	fake, pad, _ := newReadyXbox360(t)

	_, errc := pad.Listen(context.Background())
	fake.InjectReset()

	assert.ErrorIs(t, recvFinalError(t, errc), vigem.ErrConnectionLost)
	assert.Eventually(t, func() bool {
		return pad.State() == vigem.StateErrored
	}, 2*time.Second, 10*time.Millisecond)
}
