// Package ds4 models the input reports of a wired DualShock 4 controller:
// the 9-byte basic report and the 63-byte extended report carrying sensor
// and touchpad data.
package ds4

import (
	"encoding/binary"
	"io"
)

// Report is the basic DualShock 4 input snapshot. Sticks are unsigned bytes
// centered at 0x80; the button word carries the hat value in its low nibble.
//
// Wire layout (little endian, 9 bytes):
//
//	ThumbLX, ThumbLY, ThumbRX, ThumbRY: 1 byte each
//	Buttons: 2 bytes
//	Special: 1 byte
//	TriggerL, TriggerR: 1 byte each
type Report struct {
	ThumbLX  uint8
	ThumbLY  uint8
	ThumbRX  uint8
	ThumbRY  uint8
	Buttons  uint16
	Special  uint8
	TriggerL uint8
	TriggerR uint8
}

// NewReport returns a neutral report: sticks centered, hat released.
func NewReport() Report {
	return Report{
		ThumbLX: 0x80, ThumbLY: 0x80, ThumbRX: 0x80, ThumbRY: 0x80,
		Buttons: DpadNone,
	}
}

// WithDpad replaces the hat value in a button word.
func WithDpad(buttons, dpad uint16) uint16 {
	return buttons&^dpadMask | dpad&dpadMask
}

// sanitizeButtons applies the masking policy: undefined special bits are
// dropped and hat values above DpadNone encode as released.
func sanitizeButtons(buttons uint16) uint16 {
	if buttons&dpadMask > DpadNone {
		buttons = WithDpad(buttons, DpadNone)
	}
	return buttons
}

func (r *Report) put(b []byte) {
	b[0] = r.ThumbLX
	b[1] = r.ThumbLY
	b[2] = r.ThumbRX
	b[3] = r.ThumbRY
	binary.LittleEndian.PutUint16(b[4:6], sanitizeButtons(r.Buttons))
	b[6] = r.Special & validSpecial
	b[7] = r.TriggerL
	b[8] = r.TriggerR
}

func (r *Report) get(b []byte) {
	r.ThumbLX = b[0]
	r.ThumbLY = b[1]
	r.ThumbRX = b[2]
	r.ThumbRY = b[3]
	r.Buttons = binary.LittleEndian.Uint16(b[4:6])
	r.Special = b[6]
	r.TriggerL = b[7]
	r.TriggerR = b[8]
}

// MarshalBinary encodes Report to 9 bytes.
func (r *Report) MarshalBinary() ([]byte, error) {
	b := make([]byte, ReportSize)
	r.put(b)
	return b, nil
}

// UnmarshalBinary decodes 9 bytes into Report.
func (r *Report) UnmarshalBinary(data []byte) error {
	if len(data) < ReportSize {
		return io.ErrUnexpectedEOF
	}
	r.get(data)
	return nil
}

// StatusWithBattery builds a status word with the cable flag set and the
// given battery value (0..10 charge, or one of the Battery* specials) in the
// low nibble.
func StatusWithBattery(battery uint16) uint16 {
	return StatusCableConnected | battery&0xF
}

// ReportEx is the extended DualShock 4 input report: the basic fields plus
// timestamp, temperature, gyroscope, accelerometer, status and up to three
// touch reports. Sensor axes are raw signed 16-bit values, no scaling.
//
// Wire layout (little endian, 63 bytes): basic report (9), Timestamp (2),
// Temp (1), Gyro X/Y/Z (6), Accel X/Y/Z (6), reserved (5), Status (2),
// reserved (1), NumTouchReports (1), TouchReports (27, most recent first),
// reserved (3).
type ReportEx struct {
	Report
	Timestamp       uint16
	Temp            uint8
	GyroX           int16
	GyroY           int16
	GyroZ           int16
	AccelX          int16
	AccelY          int16
	AccelZ          int16
	Status          uint16
	NumTouchReports uint8
	TouchReports    [maxTouchReports]TouchReport
}

// NewReportEx returns a neutral extended report with the cable flag set.
func NewReportEx() ReportEx {
	ex := ReportEx{
		Report: NewReport(),
		Status: StatusCableConnected,
	}
	for i := range ex.TouchReports {
		ex.TouchReports[i] = NewTouchReport(0, nil, nil)
	}
	return ex
}

// SetTouchReports installs up to three touch reports, most recent first, and
// updates NumTouchReports.
func (r *ReportEx) SetTouchReports(reports ...TouchReport) {
	for i := range r.TouchReports {
		if i < len(reports) {
			r.TouchReports[i] = reports[i]
		} else {
			r.TouchReports[i] = NewTouchReport(0, nil, nil)
		}
	}
	n := len(reports)
	if n > maxTouchReports {
		n = maxTouchReports
	}
	r.NumTouchReports = uint8(n)
}

// MarshalBinary encodes ReportEx to 63 bytes.
func (r *ReportEx) MarshalBinary() ([]byte, error) {
	b := make([]byte, ReportExSize)
	r.Report.put(b[0:9])
	binary.LittleEndian.PutUint16(b[9:11], r.Timestamp)
	b[11] = r.Temp
	binary.LittleEndian.PutUint16(b[12:14], uint16(r.GyroX))
	binary.LittleEndian.PutUint16(b[14:16], uint16(r.GyroY))
	binary.LittleEndian.PutUint16(b[16:18], uint16(r.GyroZ))
	binary.LittleEndian.PutUint16(b[18:20], uint16(r.AccelX))
	binary.LittleEndian.PutUint16(b[20:22], uint16(r.AccelY))
	binary.LittleEndian.PutUint16(b[22:24], uint16(r.AccelZ))
	// b[24:29] reserved
	binary.LittleEndian.PutUint16(b[29:31], r.Status)
	// b[31] reserved
	b[32] = r.NumTouchReports
	for i := range r.TouchReports {
		r.TouchReports[i].put(b[33+i*TouchReportSize:])
	}
	// b[60:63] reserved
	return b, nil
}

// UnmarshalBinary decodes 63 bytes into ReportEx.
func (r *ReportEx) UnmarshalBinary(data []byte) error {
	if len(data) < ReportExSize {
		return io.ErrUnexpectedEOF
	}
	r.Report.get(data[0:9])
	r.Timestamp = binary.LittleEndian.Uint16(data[9:11])
	r.Temp = data[11]
	r.GyroX = int16(binary.LittleEndian.Uint16(data[12:14]))
	r.GyroY = int16(binary.LittleEndian.Uint16(data[14:16]))
	r.GyroZ = int16(binary.LittleEndian.Uint16(data[16:18]))
	r.AccelX = int16(binary.LittleEndian.Uint16(data[18:20]))
	r.AccelY = int16(binary.LittleEndian.Uint16(data[20:22]))
	r.AccelZ = int16(binary.LittleEndian.Uint16(data[22:24]))
	r.Status = binary.LittleEndian.Uint16(data[29:31])
	r.NumTouchReports = data[32]
	for i := range r.TouchReports {
		r.TouchReports[i].get(data[33+i*TouchReportSize : 33+(i+1)*TouchReportSize])
	}
	return nil
}
