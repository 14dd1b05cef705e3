package ds4

// TouchPoint is one packed touchpad contact. X is 0..1920, Y is 0..942,
// packed as 12 bits each. Bit 7 of the contact byte marks the point inactive.
//
// Wire layout (4 bytes):
//
//	contact: 1 byte
//	x low 8 bits: 1 byte
//	x high 4 bits | y low 4 bits: 1 byte
//	y high 8 bits: 1 byte
type TouchPoint struct {
	contact uint8
	xLo     uint8
	xHiYLo  uint8
	yHi     uint8
}

// NewTouchPoint returns an active touch point at (x, y), clamped to the
// touchpad extents.
func NewTouchPoint(x, y uint16) TouchPoint {
	if x > TouchpadMaxX {
		x = TouchpadMaxX
	}
	if y > TouchpadMaxY {
		y = TouchpadMaxY
	}
	return TouchPoint{
		contact: 0,
		xLo:     uint8(x & 0xFF),
		xHiYLo:  uint8((x>>8)&0xF)<<4 | uint8(y&0xF),
		yHi:     uint8(y >> 4),
	}
}

// InactiveTouchPoint returns a released touch point.
func InactiveTouchPoint() TouchPoint {
	return TouchPoint{contact: touchInactive}
}

// Active reports whether the point is a live contact.
func (p TouchPoint) Active() bool { return p.contact&touchInactive == 0 }

// X returns the unpacked X coordinate.
func (p TouchPoint) X() uint16 { return uint16(p.xHiYLo&0xF0)<<4 | uint16(p.xLo) }

// Y returns the unpacked Y coordinate.
func (p TouchPoint) Y() uint16 { return uint16(p.yHi)<<4 | uint16(p.xHiYLo&0x0F) }

func (p TouchPoint) put(b []byte) {
	b[0] = p.contact
	b[1] = p.xLo
	b[2] = p.xHiYLo
	b[3] = p.yHi
}

func (p *TouchPoint) get(b []byte) {
	p.contact = b[0]
	p.xLo = b[1]
	p.xHiYLo = b[2]
	p.yHi = b[3]
}

// TouchReport is one timestamped pair of touch points (9 bytes on the wire).
// The timestamp should be incremented for each new report.
type TouchReport struct {
	Timestamp uint8
	Points    [2]TouchPoint
}

// NewTouchReport builds a touch report; nil points are filled as inactive.
func NewTouchReport(timestamp uint8, p1, p2 *TouchPoint) TouchReport {
	r := TouchReport{
		Timestamp: timestamp,
		Points:    [2]TouchPoint{InactiveTouchPoint(), InactiveTouchPoint()},
	}
	if p1 != nil {
		r.Points[0] = *p1
	}
	if p2 != nil {
		r.Points[1] = *p2
	}
	return r
}

func (r TouchReport) put(b []byte) {
	b[0] = r.Timestamp
	r.Points[0].put(b[1:5])
	r.Points[1].put(b[5:9])
}

func (r *TouchReport) get(b []byte) {
	r.Timestamp = b[0]
	r.Points[0].get(b[1:5])
	r.Points[1].get(b[5:9])
}
