// Package cmd implements the govigem CLI commands.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/openvpad/govigem/pkg/vigem"
)

// Bus holds the connection flags shared by every command that talks to the
// bus driver.
type Bus struct {
	Device string `help:"Bus device node path (default: first discovered)" env:"GOVIGEM_DEVICE"`
}

func (b *Bus) connect(logger *slog.Logger) (*vigem.Client, error) {
	if b.Device != "" {
		return vigem.ConnectPath(b.Device, vigem.WithLogger(logger))
	}
	return vigem.Connect(vigem.WithLogger(logger))
}

// Pad is the command-facing view of a plugged target, satisfied by both
// controller types.
type Pad interface {
	Plugin() error
	WaitReady(ctx context.Context) error
	Serial() (uint32, error)
	State() vigem.State
	Listen(ctx context.Context) (<-chan vigem.Feedback, <-chan error)
	Unplug() error
	Close() error
}

func newPad(client *vigem.Client, padType, vendor, product string) (Pad, error) {
	switch padType {
	case "x360":
		id, err := overrideID(vigem.Xbox360WiredID, vendor, product)
		if err != nil {
			return nil, err
		}
		return vigem.NewXbox360(client, id), nil
	case "ds4":
		id, err := overrideID(vigem.DualShock4WiredID, vendor, product)
		if err != nil {
			return nil, err
		}
		return vigem.NewDualShock4(client, id), nil
	default:
		return nil, fmt.Errorf("unknown controller type %q", padType)
	}
}

func overrideID(id vigem.TargetID, vendor, product string) (vigem.TargetID, error) {
	if vendor != "" {
		v, err := strconv.ParseUint(vendor, 16, 16)
		if err != nil {
			return id, fmt.Errorf("invalid vendor id %q: %w", vendor, err)
		}
		id.Vendor = uint16(v)
	}
	if product != "" {
		p, err := strconv.ParseUint(product, 16, 16)
		if err != nil {
			return id, fmt.Errorf("invalid product id %q: %w", product, err)
		}
		id.Product = uint16(p)
	}
	return id, nil
}

var (
	_ Pad = (*vigem.Xbox360)(nil)
	_ Pad = (*vigem.DualShock4)(nil)
)
