package xbox360

// Default vendor and product ids of the wired Xbox 360 controller.
const (
	DefaultVID = 0x045E
	DefaultPID = 0x028E
)

// Button bitmasks (XInput compatible).
const (
	ButtonDPadUp    uint16 = 0x0001
	ButtonDPadDown  uint16 = 0x0002
	ButtonDPadLeft  uint16 = 0x0004
	ButtonDPadRight uint16 = 0x0008
	ButtonStart     uint16 = 0x0010
	ButtonBack      uint16 = 0x0020
	ButtonLThumb    uint16 = 0x0040 // Left stick button
	ButtonRThumb    uint16 = 0x0080 // Right stick button
	ButtonLShoulder uint16 = 0x0100 // Left bumper (LB)
	ButtonRShoulder uint16 = 0x0200 // Right bumper (RB)
	ButtonGuide     uint16 = 0x0400 // Xbox/Guide button (center logo)
	ButtonA         uint16 = 0x1000
	ButtonB         uint16 = 0x2000
	ButtonX         uint16 = 0x4000
	ButtonY         uint16 = 0x8000
)

// ValidButtons covers every defined button bit. Bits outside this set are
// silently masked when a report is encoded.
const ValidButtons = ButtonDPadUp | ButtonDPadDown | ButtonDPadLeft | ButtonDPadRight |
	ButtonStart | ButtonBack | ButtonLThumb | ButtonRThumb |
	ButtonLShoulder | ButtonRShoulder | ButtonGuide |
	ButtonA | ButtonB | ButtonX | ButtonY

// ReportSize is the size of the encoded Gamepad wire image.
const ReportSize = 12
