package ds4

// Default vendor and product ids of the wired DualShock 4 controller.
const (
	DefaultVID = 0x054C
	DefaultPID = 0x05C4
)

// Button bitmasks. The low nibble of the button word is not a bitmask but
// the D-pad hat value (see the Dpad constants).
const (
	ButtonThumbRight    uint16 = 1 << 15 // R3
	ButtonThumbLeft     uint16 = 1 << 14 // L3
	ButtonOptions       uint16 = 1 << 13
	ButtonShare         uint16 = 1 << 12
	ButtonTriggerRight  uint16 = 1 << 11 // R2 digital
	ButtonTriggerLeft   uint16 = 1 << 10 // L2 digital
	ButtonShoulderRight uint16 = 1 << 9  // R1
	ButtonShoulderLeft  uint16 = 1 << 8  // L1
	ButtonTriangle      uint16 = 1 << 7
	ButtonCircle        uint16 = 1 << 6
	ButtonCross         uint16 = 1 << 5
	ButtonSquare        uint16 = 1 << 4
)

// D-pad hat values occupying the low nibble of the button word.
const (
	DpadNorth     uint16 = 0x0
	DpadNortheast uint16 = 0x1
	DpadEast      uint16 = 0x2
	DpadSoutheast uint16 = 0x3
	DpadSouth     uint16 = 0x4
	DpadSouthwest uint16 = 0x5
	DpadWest      uint16 = 0x6
	DpadNorthwest uint16 = 0x7
	DpadNone      uint16 = 0x8

	dpadMask uint16 = 0x000F
)

// Special button bitmasks.
const (
	SpecialPSHome   uint8 = 1 << 0
	SpecialTouchpad uint8 = 1 << 1
	SpecialMicMute  uint8 = 1 << 2

	validSpecial uint8 = SpecialPSHome | SpecialTouchpad | SpecialMicMute
)

// Status word flags and battery values (low nibble).
const (
	StatusCableConnected uint16 = 1 << 4
	StatusDongle         uint16 = 1 << 11

	BatteryFull        uint16 = 11
	BatteryNotCharging uint16 = 14
	BatteryChargeError uint16 = 15
)

// Touchpad extents.
const (
	TouchpadMaxX uint16 = 1920
	TouchpadMaxY uint16 = 942

	touchInactive uint8 = 0x80
)

// Wire image sizes.
const (
	ReportSize      = 9
	ReportExSize    = 63
	TouchPointSize  = 4
	TouchReportSize = 9
	maxTouchReports = 3
)
