// Package xbox360 models the input report of a wired Xbox 360 controller and
// its 12-byte XINPUT-compatible wire image.
package xbox360

import (
	"encoding/binary"
	"io"
)

// Gamepad is one snapshot of controller input. Axes are raw signed 16-bit
// values with no dead zone or scaling; triggers are 0-255.
//
// Wire layout (little endian, 12 bytes):
//
//	Buttons: 2 bytes
//	LeftTrigger: 1 byte
//	RightTrigger: 1 byte
//	ThumbLX: 2 bytes (int16)
//	ThumbLY: 2 bytes (int16)
//	ThumbRX: 2 bytes (int16)
//	ThumbRY: 2 bytes (int16)
type Gamepad struct {
	Buttons      uint16
	LeftTrigger  uint8
	RightTrigger uint8
	ThumbLX      int16
	ThumbLY      int16
	ThumbRX      int16
	ThumbRY      int16
}

// MarshalBinary encodes Gamepad to 12 bytes. Button bits outside
// ValidButtons are masked.
func (g *Gamepad) MarshalBinary() ([]byte, error) {
	b := make([]byte, ReportSize)
	binary.LittleEndian.PutUint16(b[0:2], g.Buttons&ValidButtons)
	b[2] = g.LeftTrigger
	b[3] = g.RightTrigger
	binary.LittleEndian.PutUint16(b[4:6], uint16(g.ThumbLX))
	binary.LittleEndian.PutUint16(b[6:8], uint16(g.ThumbLY))
	binary.LittleEndian.PutUint16(b[8:10], uint16(g.ThumbRX))
	binary.LittleEndian.PutUint16(b[10:12], uint16(g.ThumbRY))
	return b, nil
}

// UnmarshalBinary decodes 12 bytes into Gamepad.
func (g *Gamepad) UnmarshalBinary(data []byte) error {
	if len(data) < ReportSize {
		return io.ErrUnexpectedEOF
	}
	g.Buttons = binary.LittleEndian.Uint16(data[0:2])
	g.LeftTrigger = data[2]
	g.RightTrigger = data[3]
	g.ThumbLX = int16(binary.LittleEndian.Uint16(data[4:6]))
	g.ThumbLY = int16(binary.LittleEndian.Uint16(data[6:8]))
	g.ThumbRX = int16(binary.LittleEndian.Uint16(data[8:10]))
	g.ThumbRY = int16(binary.LittleEndian.Uint16(data[10:12]))
	return nil
}
