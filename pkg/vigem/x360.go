package vigem

import (
	"errors"

	"github.com/openvpad/govigem/pkg/bus"
	"github.com/openvpad/govigem/pkg/device/xbox360"
)

// Xbox360WiredID is the default identity of a wired Xbox 360 target.
var Xbox360WiredID = TargetID{Vendor: xbox360.DefaultVID, Product: xbox360.DefaultPID}

// Xbox360 is a virtual wired Xbox 360 controller attached to a Client.
type Xbox360 struct {
	target
}

// NewXbox360 creates a new, not yet plugged-in Xbox 360 target. The client
// must outlive the target.
func NewXbox360(client *Client, id TargetID) *Xbox360 {
	return &Xbox360{newTarget(client, id,
		bus.TargetXbox360Wired,
		bus.CodeXUsbSubmitReport,
		bus.CodeXUsbRequestNotification)}
}

// Update submits a new input report. The target must be Ready.
func (x *Xbox360) Update(gamepad *xbox360.Gamepad) error {
	report, err := gamepad.MarshalBinary()
	if err != nil {
		return err
	}
	return x.update(report)
}

// UserIndex returns the XInput user index (player slot) assigned to this
// target by the system.
func (x *Xbox360) UserIndex() (uint32, error) {
	serial, err := x.Serial()
	if err != nil {
		return 0, err
	}
	var reply bus.UserIndexReply
	err = x.client.exchange(bus.CodeXUsbGetUserIndex, bus.NewXUsbGetUserIndex(serial), &reply)
	if err != nil {
		if errors.Is(err, ErrConnectionLost) {
			x.fail()
		}
		return 0, err
	}
	return reply.UserIndex, nil
}
