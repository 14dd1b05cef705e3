package vigem

import (
	"github.com/openvpad/govigem/pkg/bus"
	"github.com/openvpad/govigem/pkg/device/ds4"
)

// DualShock4WiredID is the default identity of a wired DualShock 4 target.
var DualShock4WiredID = TargetID{Vendor: ds4.DefaultVID, Product: ds4.DefaultPID}

// DualShock4 is a virtual wired DualShock 4 controller attached to a Client.
type DualShock4 struct {
	target
}

// NewDualShock4 creates a new, not yet plugged-in DualShock 4 target. The
// client must outlive the target.
func NewDualShock4(client *Client, id TargetID) *DualShock4 {
	return &DualShock4{newTarget(client, id,
		bus.TargetDualShock4Wired,
		bus.CodeDS4SubmitReport,
		bus.CodeDS4RequestNotification)}
}

// Update submits a new basic input report. The target must be Ready.
func (d *DualShock4) Update(report *ds4.Report) error {
	payload, err := report.MarshalBinary()
	if err != nil {
		return err
	}
	return d.update(payload)
}

// UpdateEx submits a new extended input report carrying sensor, status and
// touchpad data. The target must be Ready.
func (d *DualShock4) UpdateEx(report *ds4.ReportEx) error {
	payload, err := report.MarshalBinary()
	if err != nil {
		return err
	}
	return d.update(payload)
}
