// Package bus defines the binary command buffers exchanged with the virtual
// gamepad bus driver and the control codes that identify them.
//
// Every buffer starts with an 8-byte little-endian header of declared total
// size and protocol version. The driver rejects buffers whose header does not
// match what it expects, so encoding always derives the header from the
// payload and decoding validates it before touching the payload. The codec
// performs no I/O.
package bus

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Version is the protocol version this codec speaks.
const Version uint32 = 0x0001

// HeaderSize is the size of the {Size, Version} prefix on every buffer.
const HeaderSize = 8

// Control codes understood by the bus driver.
const (
	CodePluginTarget    uint32 = 0x2AA004
	CodeUnplugTarget    uint32 = 0x2AA008
	CodeCheckVersion    uint32 = 0x2AA00C
	CodeWaitDeviceReady uint32 = 0x2AA010

	CodeXUsbRequestNotification uint32 = 0x2AE804
	CodeXUsbSubmitReport        uint32 = 0x2AA808
	CodeDS4SubmitReport         uint32 = 0x2AA80C
	CodeDS4RequestNotification  uint32 = 0x2AE810
	CodeXUsbGetUserIndex        uint32 = 0x2AE81C
)

// Emulated hardware classes accepted by PluginTarget.
const (
	TargetXbox360Wired    int32 = 0
	TargetDualShock4Wired int32 = 2
)

// ErrProtocolMismatch is returned when a buffer is truncated, its declared
// size disagrees with its actual length, or its version differs from the one
// this codec implements.
var ErrProtocolMismatch = errors.New("bus: protocol mismatch")

func putHeader(b []byte) {
	binary.LittleEndian.PutUint32(b[0:4], uint32(len(b)))
	binary.LittleEndian.PutUint32(b[4:8], Version)
}

// checkHeader validates the header of a received buffer against its actual
// length and the expected total size.
func checkHeader(data []byte, want int) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: buffer truncated at %d bytes", ErrProtocolMismatch, len(data))
	}
	size := binary.LittleEndian.Uint32(data[0:4])
	version := binary.LittleEndian.Uint32(data[4:8])
	if version != Version {
		return fmt.Errorf("%w: version 0x%04x, want 0x%04x", ErrProtocolMismatch, version, Version)
	}
	if int(size) != len(data) || len(data) != want {
		return fmt.Errorf("%w: declared size %d, received %d, want %d", ErrProtocolMismatch, size, len(data), want)
	}
	return nil
}
