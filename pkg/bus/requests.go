package bus

import (
	"encoding/binary"
	"fmt"
)

// CheckVersion is the connect handshake request. The request carries only the
// header; the version field doubles as the client's offer.
type CheckVersion struct{}

// MarshalBinary encodes CheckVersion to 8 bytes.
func (CheckVersion) MarshalBinary() ([]byte, error) {
	b := make([]byte, HeaderSize)
	putHeader(b)
	return b, nil
}

// CheckVersionReply is the handshake response: the driver echoes the header
// with its own version. Unmarshal fails with ErrProtocolMismatch when the
// driver speaks a different version.
type CheckVersionReply struct {
	Version uint32
}

// ReplySize returns the expected response buffer size.
func (CheckVersionReply) ReplySize() int { return HeaderSize }

// UnmarshalBinary decodes and validates the 8-byte handshake response.
func (r *CheckVersionReply) UnmarshalBinary(data []byte) error {
	if err := checkHeader(data, HeaderSize); err != nil {
		return err
	}
	r.Version = binary.LittleEndian.Uint32(data[4:8])
	return nil
}

// PluginTarget asks the driver to allocate a virtual controller of the given
// hardware class. SerialHint seeds the driver's slot search; the assigned
// serial comes back in PluginReply.
type PluginTarget struct {
	SerialHint uint32
	TargetType int32
	VendorID   uint16
	ProductID  uint16
}

const pluginTargetSize = HeaderSize + 12

// MarshalBinary encodes PluginTarget to 20 bytes.
func (p *PluginTarget) MarshalBinary() ([]byte, error) {
	b := make([]byte, pluginTargetSize)
	putHeader(b)
	binary.LittleEndian.PutUint32(b[8:12], p.SerialHint)
	binary.LittleEndian.PutUint32(b[12:16], uint32(p.TargetType))
	binary.LittleEndian.PutUint16(b[16:18], p.VendorID)
	binary.LittleEndian.PutUint16(b[18:20], p.ProductID)
	return b, nil
}

// UnmarshalBinary decodes 20 bytes into PluginTarget.
func (p *PluginTarget) UnmarshalBinary(data []byte) error {
	if err := checkHeader(data, pluginTargetSize); err != nil {
		return err
	}
	p.SerialHint = binary.LittleEndian.Uint32(data[8:12])
	p.TargetType = int32(binary.LittleEndian.Uint32(data[12:16]))
	p.VendorID = binary.LittleEndian.Uint16(data[16:18])
	p.ProductID = binary.LittleEndian.Uint16(data[18:20])
	return nil
}

// PluginReply carries the driver-assigned serial number of a plugged target.
type PluginReply struct {
	Serial uint32
}

const pluginReplySize = HeaderSize + 4

// ReplySize returns the expected response buffer size.
func (PluginReply) ReplySize() int { return pluginReplySize }

// UnmarshalBinary decodes the 12-byte plugin response.
func (r *PluginReply) UnmarshalBinary(data []byte) error {
	if err := checkHeader(data, pluginReplySize); err != nil {
		return err
	}
	r.Serial = binary.LittleEndian.Uint32(data[8:12])
	if r.Serial == 0 {
		return fmt.Errorf("%w: driver assigned serial 0", ErrProtocolMismatch)
	}
	return nil
}

// serialRequest is the shared shape of every request addressing one target.
type serialRequest struct {
	Serial uint32
}

const serialRequestSize = HeaderSize + 4

func (s *serialRequest) MarshalBinary() ([]byte, error) {
	b := make([]byte, serialRequestSize)
	putHeader(b)
	binary.LittleEndian.PutUint32(b[8:12], s.Serial)
	return b, nil
}

func (s *serialRequest) UnmarshalBinary(data []byte) error {
	if err := checkHeader(data, serialRequestSize); err != nil {
		return err
	}
	s.Serial = binary.LittleEndian.Uint32(data[8:12])
	return nil
}

// WaitDeviceReady asks the driver to complete the request once the target is
// enumerated by the input subsystem. Completion is asynchronous.
type WaitDeviceReady struct{ serialRequest }

// NewWaitDeviceReady builds a readiness wait for the given serial.
func NewWaitDeviceReady(serial uint32) *WaitDeviceReady {
	return &WaitDeviceReady{serialRequest{Serial: serial}}
}

// UnplugTarget releases the driver-side target with the given serial.
type UnplugTarget struct{ serialRequest }

// NewUnplugTarget builds an unplug request for the given serial.
func NewUnplugTarget(serial uint32) *UnplugTarget {
	return &UnplugTarget{serialRequest{Serial: serial}}
}

// RequestNotification arms the driver's feedback path for one target. The
// driver completes the buffer asynchronously when feedback is pending; the
// completed buffer decodes as Notification.
type RequestNotification struct{ serialRequest }

// NewRequestNotification builds a feedback wait for the given serial.
func NewRequestNotification(serial uint32) *RequestNotification {
	return &RequestNotification{serialRequest{Serial: serial}}
}

// NotificationSize is the completed feedback buffer size.
const NotificationSize = serialRequestSize + 3

// NotificationBuffer allocates the in/out buffer handed to the channel for a
// feedback wait. The driver reads the serial and overwrites the trailing
// feedback bytes on completion.
func NotificationBuffer(serial uint32) []byte {
	b := make([]byte, NotificationSize)
	putHeader(b)
	binary.LittleEndian.PutUint32(b[8:12], serial)
	return b
}

// Notification is a completed feedback buffer: vibration motor magnitudes and
// the LED index (player slot for Xbox360, lightbar preset for DualShock4).
type Notification struct {
	Serial     uint32
	LargeMotor uint8
	SmallMotor uint8
	LedNumber  uint8
}

// UnmarshalBinary decodes the 15-byte completed feedback buffer.
func (n *Notification) UnmarshalBinary(data []byte) error {
	if err := checkHeader(data, NotificationSize); err != nil {
		return err
	}
	n.Serial = binary.LittleEndian.Uint32(data[8:12])
	n.LargeMotor = data[12]
	n.SmallMotor = data[13]
	n.LedNumber = data[14]
	return nil
}

// SubmitReport wraps one encoded input report for a plugged target. The
// report bytes come from the device packages; their length is fixed per
// hardware class and is folded into the declared total size.
type SubmitReport struct {
	Serial uint32
	Report []byte
}

// MarshalBinary encodes the request as header + serial + report bytes.
func (s *SubmitReport) MarshalBinary() ([]byte, error) {
	b := make([]byte, serialRequestSize+len(s.Report))
	putHeader(b)
	binary.LittleEndian.PutUint32(b[8:12], s.Serial)
	copy(b[12:], s.Report)
	return b, nil
}

// UnmarshalReport decodes a submit buffer carrying a report of reportLen
// bytes, returning the serial and the report payload.
func UnmarshalReport(data []byte, reportLen int) (serial uint32, report []byte, err error) {
	if err := checkHeader(data, serialRequestSize+reportLen); err != nil {
		return 0, nil, err
	}
	return binary.LittleEndian.Uint32(data[8:12]), data[12:], nil
}

// XUsbGetUserIndex asks for the XInput user index of a plugged Xbox360
// target. Request and reply share the same 12-byte shape.
type XUsbGetUserIndex struct{ serialRequest }

// NewXUsbGetUserIndex builds a user index query for the given serial.
func NewXUsbGetUserIndex(serial uint32) *XUsbGetUserIndex {
	return &XUsbGetUserIndex{serialRequest{Serial: serial}}
}

// UserIndexReply carries the XInput user index of an Xbox360 target.
type UserIndexReply struct {
	UserIndex uint32
}

const userIndexReplySize = HeaderSize + 4

// ReplySize returns the expected response buffer size.
func (UserIndexReply) ReplySize() int { return userIndexReplySize }

// UnmarshalBinary decodes the 12-byte user index response.
func (r *UserIndexReply) UnmarshalBinary(data []byte) error {
	if err := checkHeader(data, userIndexReplySize); err != nil {
		return err
	}
	r.UserIndex = binary.LittleEndian.Uint32(data[8:12])
	return nil
}
