package vigem_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bustest "github.com/openvpad/govigem/internal/testing"
	"github.com/openvpad/govigem/pkg/bus"
	"github.com/openvpad/govigem/pkg/vigem"
)

func TestHandshake(t *testing.T) {
	fake := bustest.NewFakeBus()
	client, err := vigem.WithConn(fake)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, bus.Version, client.Version())
}

func TestHandshakeVersionMismatch(t *testing.T) {
	fake := bustest.NewFakeBus()
	fake.SetVersion(0x0002)

	_, err := vigem.WithConn(fake)
	assert.ErrorIs(t, err, bus.ErrProtocolMismatch)
}

func TestConnectPathUnavailable(t *testing.T) {
	_, err := vigem.ConnectPath("/nonexistent/bus/node")
	assert.ErrorIs(t, err, vigem.ErrDriverUnavailable)
}

func TestCloseIdempotent(t *testing.T) {
	fake := bustest.NewFakeBus()
	client, err := vigem.WithConn(fake)
	require.NoError(t, err)

	assert.NoError(t, client.Close())
	assert.NoError(t, client.Close())

	pad := vigem.NewXbox360(client, vigem.Xbox360WiredID)
	assert.ErrorIs(t, pad.Plugin(), vigem.ErrConnectionLost)
}
