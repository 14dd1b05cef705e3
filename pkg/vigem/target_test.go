package vigem_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bustest "github.com/openvpad/govigem/internal/testing"
	"github.com/openvpad/govigem/pkg/bus"
	"github.com/openvpad/govigem/pkg/device/ds4"
	"github.com/openvpad/govigem/pkg/device/xbox360"
	"github.com/openvpad/govigem/pkg/vigem"
)

func newTestClient(t *testing.T) (*bustest.FakeBus, *vigem.Client) {
	t.Helper()
	fake := bustest.NewFakeBus()
	client, err := vigem.WithConn(fake)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return fake, client
}

func newReadyXbox360(t *testing.T) (*bustest.FakeBus, *vigem.Xbox360, uint32) {
	t.Helper()
	fake, client := newTestClient(t)
	pad := vigem.NewXbox360(client, vigem.Xbox360WiredID)
	require.NoError(t, pad.Plugin())
	serial, err := pad.Serial()
	require.NoError(t, err)
	fake.MarkReady(serial)
	require.NoError(t, pad.WaitReady(context.Background()))
	return fake, pad, serial
}

func TestPluginLifecycle(t *testing.T) {
	fake, client := newTestClient(t)
	pad := vigem.NewXbox360(client, vigem.Xbox360WiredID)

	assert.Equal(t, vigem.StateCreated, pad.State())
	_, err := pad.Serial()
	assert.ErrorIs(t, err, vigem.ErrNotPluggedIn)

	require.NoError(t, pad.Plugin())
	assert.Equal(t, vigem.StatePluggedIn, pad.State())

	serial, err := pad.Serial()
	require.NoError(t, err)
	targetType, vendor, product, ok := fake.TargetInfo(serial)
	require.True(t, ok)
	assert.Equal(t, bus.TargetXbox360Wired, targetType)
	assert.Equal(t, uint16(xbox360.DefaultVID), vendor)
	assert.Equal(t, uint16(xbox360.DefaultPID), product)

	assert.ErrorIs(t, pad.Plugin(), vigem.ErrAlreadyPluggedIn)
}

func TestUpdateRequiresReady(t *testing.T) {
	fake, client := newTestClient(t)
	pad := vigem.NewXbox360(client, vigem.Xbox360WiredID)

	// Created: fails without touching the channel.
	assert.ErrorIs(t, pad.Update(&xbox360.Gamepad{}), vigem.ErrTargetNotReady)

	require.NoError(t, pad.Plugin())
	serial, err := pad.Serial()
	require.NoError(t, err)

	// PluggedIn but not yet Ready: same deterministic failure, no I/O.
	assert.ErrorIs(t, pad.Update(&xbox360.Gamepad{}), vigem.ErrTargetNotReady)
	assert.Empty(t, fake.Reports(serial))
}

func TestWaitReady(t *testing.T) {
	fake, client := newTestClient(t)
	pad := vigem.NewXbox360(client, vigem.Xbox360WiredID)

	assert.ErrorIs(t, pad.WaitReady(context.Background()), vigem.ErrNotPluggedIn)

	require.NoError(t, pad.Plugin())
	serial, err := pad.Serial()
	require.NoError(t, err)

	fake.MarkReady(serial)
	require.NoError(t, pad.WaitReady(context.Background()))
	assert.Equal(t, vigem.StateReady, pad.State())

	// Already Ready: trivially succeeds.
	assert.NoError(t, pad.WaitReady(context.Background()))
}

func TestWaitReadyTimeout(t *testing.T) {
	fake, client := newTestClient(t)
	pad := vigem.NewXbox360(client, vigem.Xbox360WiredID)
	require.NoError(t, pad.Plugin())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, pad.WaitReady(ctx), vigem.ErrReadyTimeout)
	assert.Equal(t, vigem.StatePluggedIn, pad.State())

	// The wait is retryable with a longer bound.
	serial, err := pad.Serial()
	require.NoError(t, err)
	fake.MarkReady(serial)
	require.NoError(t, pad.WaitReady(context.Background()))
	assert.Equal(t, vigem.StateReady, pad.State())
}

func TestUpdateSubmitsReport(t *testing.T) {
	fake, pad, serial := newReadyXbox360(t)

	require.NoError(t, pad.Update(&xbox360.Gamepad{
		Buttons:     xbox360.ButtonA | xbox360.ButtonX,
		LeftTrigger: 127,
		ThumbLX:     30000,
		ThumbLY:     -30000,
	}))

	reports := fake.Reports(serial)
	require.Len(t, reports, 1)
	assert.Equal(t, []byte{0x00, 0x50, 0x7F, 0x00, 0x30, 0x75, 0xD0, 0x8A, 0x00, 0x00, 0x00, 0x00}, reports[0])
}

func TestNoFreeSlot(t *testing.T) {
	fake, client := newTestClient(t)
	fake.SetSlots(0)

	pad := vigem.NewXbox360(client, vigem.Xbox360WiredID)
	assert.ErrorIs(t, pad.Plugin(), vigem.ErrNoFreeSlot)
	assert.Equal(t, vigem.StateCreated, pad.State())

	// A freed slot makes the retry succeed.
	fake.SetSlots(1)
	require.NoError(t, pad.Plugin())
	assert.Equal(t, vigem.StatePluggedIn, pad.State())
}

func TestUnplugIdempotent(t *testing.T) {
	fake, pad, serial := newReadyXbox360(t)

	require.NoError(t, pad.Unplug())
	assert.Equal(t, vigem.StateUnplugged, pad.State())
	assert.Equal(t, 1, fake.UnplugCount(serial))

	// The second unplug fails locally without reaching the driver.
	assert.ErrorIs(t, pad.Unplug(), vigem.ErrAlreadyUnplugged)
	assert.Equal(t, 1, fake.UnplugCount(serial))

	assert.ErrorIs(t, pad.Update(&xbox360.Gamepad{}), vigem.ErrAlreadyUnplugged)
}

func TestCloseUnplugsOnce(t *testing.T) {
	fake, pad, serial := newReadyXbox360(t)

	require.NoError(t, pad.Close())
	assert.Equal(t, vigem.StateUnplugged, pad.State())
	assert.Equal(t, 1, fake.UnplugCount(serial))
	assert.Equal(t, 0, fake.PluggedCount())

	require.NoError(t, pad.Close())
	assert.Equal(t, 1, fake.UnplugCount(serial))
}

func TestConnectionLossMarksErrored(t *testing.T) {
	fake, pad, _ := newReadyXbox360(t)

	fake.InjectReset()
	assert.ErrorIs(t, pad.Update(&xbox360.Gamepad{}), vigem.ErrConnectionLost)
	assert.Equal(t, vigem.StateErrored, pad.State())

	// The whole client is gone; new targets cannot attach.
	assert.ErrorIs(t, pad.Unplug(), vigem.ErrConnectionLost)
}

func TestUserIndex(t *testing.T) {
	fake, pad, serial := newReadyXbox360(t)

	fake.SetUserIndex(serial, 2)
	index, err := pad.UserIndex()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), index)
}

func TestDualShock4Reports(t *testing.T) {
	fake, client := newTestClient(t)
	pad := vigem.NewDualShock4(client, vigem.DualShock4WiredID)
	require.NoError(t, pad.Plugin())

	serial, err := pad.Serial()
	require.NoError(t, err)
	targetType, vendor, product, ok := fake.TargetInfo(serial)
	require.True(t, ok)
	assert.Equal(t, bus.TargetDualShock4Wired, targetType)
	assert.Equal(t, uint16(ds4.DefaultVID), vendor)
	assert.Equal(t, uint16(ds4.DefaultPID), product)

	fake.MarkReady(serial)
	require.NoError(t, pad.WaitReady(context.Background()))

	basic := ds4.NewReport()
	basic.Buttons = ds4.WithDpad(ds4.ButtonCross, ds4.DpadNorth)
	require.NoError(t, pad.Update(&basic))

	extended := ds4.NewReportEx()
	require.NoError(t, pad.UpdateEx(&extended))

	reports := fake.Reports(serial)
	require.Len(t, reports, 2)
	assert.Len(t, reports[0], ds4.ReportSize)
	assert.Len(t, reports[1], ds4.ReportExSize)
}
