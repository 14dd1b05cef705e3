package xbox360_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvpad/govigem/pkg/device/xbox360"
)

func TestInputReports(t *testing.T) {
	type testCase struct {
		name           string
		gamepad        xbox360.Gamepad
		expectedReport []byte
	}

	cases := []testCase{
		{
			name:           "Neutral",
			gamepad:        xbox360.Gamepad{},
			expectedReport: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name: "A and X with sticks and trigger",
			gamepad: xbox360.Gamepad{
				Buttons:     xbox360.ButtonA | xbox360.ButtonX,
				LeftTrigger: 127,
				ThumbLX:     30000,
				ThumbLY:     -30000,
			},
			expectedReport: []byte{0x00, 0x50, 0x7F, 0x00, 0x30, 0x75, 0xD0, 0x8A, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name: "Guide button",
			gamepad: xbox360.Gamepad{
				Buttons: xbox360.ButtonGuide,
			},
			expectedReport: []byte{0x00, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name: "Axis extremes",
			gamepad: xbox360.Gamepad{
				ThumbLX: -32768,
				ThumbLY: 32767,
				ThumbRX: -1,
				ThumbRY: 1,
			},
			expectedReport: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x80, 0xFF, 0x7F, 0xFF, 0xFF, 0x01, 0x00},
		},
		{
			name: "Undefined button bits are masked",
			gamepad: xbox360.Gamepad{
				Buttons: 0xFFFF,
			},
			expectedReport: []byte{0xFF, 0xF7, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			report, err := c.gamepad.MarshalBinary()
			require.NoError(t, err)
			assert.Equal(t, c.expectedReport, report)
		})
	}
}

func TestReportRoundTrip(t *testing.T) {
	in := xbox360.Gamepad{
		Buttons:      xbox360.ButtonB | xbox360.ButtonStart | xbox360.ButtonLShoulder,
		LeftTrigger:  12,
		RightTrigger: 255,
		ThumbLX:      1,
		ThumbLY:      -2,
		ThumbRX:      32767,
		ThumbRY:      -32768,
	}
	report, err := in.MarshalBinary()
	require.NoError(t, err)

	var out xbox360.Gamepad
	require.NoError(t, out.UnmarshalBinary(report))
	assert.Equal(t, in, out)
}

func TestUnmarshalShortBuffer(t *testing.T) {
	var g xbox360.Gamepad
	err := g.UnmarshalBinary(make([]byte, xbox360.ReportSize-1))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
