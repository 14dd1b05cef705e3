package ds4_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvpad/govigem/pkg/device/ds4"
)

func TestInputReports(t *testing.T) {
	type testCase struct {
		name           string
		report         ds4.Report
		expectedReport []byte
	}

	cases := []testCase{
		{
			name:           "Neutral",
			report:         ds4.NewReport(),
			expectedReport: []byte{0x80, 0x80, 0x80, 0x80, 0x08, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name: "Cross with hat north",
			report: func() ds4.Report {
				r := ds4.NewReport()
				r.Buttons = ds4.WithDpad(ds4.ButtonCross, ds4.DpadNorth)
				return r
			}(),
			expectedReport: []byte{0x80, 0x80, 0x80, 0x80, 0x20, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name: "Triggers and sticks",
			report: ds4.Report{
				ThumbLX: 0x00, ThumbLY: 0xFF, ThumbRX: 0x80, ThumbRY: 0x80,
				Buttons:  ds4.DpadNone,
				TriggerL: 0x40, TriggerR: 0xC0,
			},
			expectedReport: []byte{0x00, 0xFF, 0x80, 0x80, 0x08, 0x00, 0x00, 0x40, 0xC0},
		},
		{
			name: "Hat value above released encodes as released",
			report: func() ds4.Report {
				r := ds4.NewReport()
				r.Buttons = ds4.WithDpad(r.Buttons, 0x000F)
				return r
			}(),
			expectedReport: []byte{0x80, 0x80, 0x80, 0x80, 0x08, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name: "Undefined special bits are masked",
			report: func() ds4.Report {
				r := ds4.NewReport()
				r.Special = 0xFF
				return r
			}(),
			expectedReport: []byte{0x80, 0x80, 0x80, 0x80, 0x08, 0x00, 0x07, 0x00, 0x00},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			report, err := c.report.MarshalBinary()
			require.NoError(t, err)
			assert.Equal(t, c.expectedReport, report)
		})
	}
}

func TestTouchPointPacking(t *testing.T) {
	p := ds4.NewTouchPoint(1920, 942)
	assert.True(t, p.Active())
	assert.Equal(t, uint16(1920), p.X())
	assert.Equal(t, uint16(942), p.Y())

	clamped := ds4.NewTouchPoint(5000, 5000)
	assert.Equal(t, p, clamped)

	inactive := ds4.InactiveTouchPoint()
	assert.False(t, inactive.Active())
}

func TestReportExLayout(t *testing.T) {
	ex := ds4.NewReportEx()
	b, err := ex.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, ds4.ReportExSize)

	// Basic report prefix.
	assert.Equal(t, []byte{0x80, 0x80, 0x80, 0x80, 0x08, 0x00, 0x00, 0x00, 0x00}, b[0:9])
	// Status word with the cable flag.
	assert.Equal(t, []byte{0x10, 0x00}, b[29:31])
	// No touch reports; every point carries the inactive marker.
	assert.Equal(t, uint8(0), b[32])
	for _, offset := range []int{34, 38, 43, 47, 52, 56} {
		assert.Equal(t, uint8(0x80), b[offset], "contact byte at offset %d", offset)
	}
}

func TestReportExRoundTrip(t *testing.T) {
	ex := ds4.NewReportEx()
	ex.Buttons = ds4.WithDpad(ds4.ButtonTriangle|ds4.ButtonShoulderLeft, ds4.DpadEast)
	ex.Timestamp = 0x1234
	ex.Temp = 33
	ex.GyroX, ex.GyroY, ex.GyroZ = -100, 200, -300
	ex.AccelX, ex.AccelY, ex.AccelZ = 400, -500, 600
	ex.Status = ds4.StatusWithBattery(ds4.BatteryFull)

	p1 := ds4.NewTouchPoint(960, 471)
	ex.SetTouchReports(ds4.NewTouchReport(7, &p1, nil))

	b, err := ex.MarshalBinary()
	require.NoError(t, err)

	var out ds4.ReportEx
	require.NoError(t, out.UnmarshalBinary(b))
	assert.Equal(t, ex, out)
	assert.Equal(t, uint8(1), out.NumTouchReports)
	assert.Equal(t, uint16(960), out.TouchReports[0].Points[0].X())
	assert.Equal(t, uint16(471), out.TouchReports[0].Points[0].Y())
	assert.False(t, out.TouchReports[0].Points[1].Active())
}

func TestUnmarshalShortBuffers(t *testing.T) {
	var r ds4.Report
	assert.ErrorIs(t, r.UnmarshalBinary(make([]byte, ds4.ReportSize-1)), io.ErrUnexpectedEOF)

	var ex ds4.ReportEx
	assert.ErrorIs(t, ex.UnmarshalBinary(make([]byte, ds4.ReportExSize-1)), io.ErrUnexpectedEOF)
}
