package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openvpad/govigem/pkg/vigem"
)

// Plug creates a virtual controller and keeps it plugged in until
// interrupted, a script finishes, or the interactive session ends.
type Plug struct {
	Bus `embed:""`

	Type         string        `help:"Controller type" enum:"x360,ds4" default:"x360"`
	Vendor       string        `help:"Vendor id override (hex)" placeholder:"045E"`
	Product      string        `help:"Product id override (hex)" placeholder:"028E"`
	ReadyTimeout time.Duration `help:"How long to wait for device enumeration" default:"5s"`
	Script       string        `help:"YAML input script to play (x360 only)" type:"existingfile"`
	Interactive  bool          `help:"Drive the pad from the keyboard (x360 only)"`
}

func (p *Plug) Run(logger *slog.Logger) error {
	if p.Script != "" && p.Interactive {
		return errors.New("--script and --interactive are mutually exclusive")
	}
	if (p.Script != "" || p.Interactive) && p.Type != "x360" {
		return errors.New("scripted and interactive input require --type=x360")
	}

	var script *Script
	if p.Script != "" {
		s, err := LoadScript(p.Script)
		if err != nil {
			return err
		}
		script = s
	}

	client, err := p.connect(logger)
	if err != nil {
		return err
	}
	defer client.Close()

	pad, err := newPad(client, p.Type, p.Vendor, p.Product)
	if err != nil {
		return err
	}
	defer pad.Close()

	serial, err := plugAndWait(logger, pad, p.ReadyTimeout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case script != nil:
		err = playScript(ctx, logger, pad.(*vigem.Xbox360), script)
	case p.Interactive:
		err = runInteractive(ctx, logger, pad.(*vigem.Xbox360))
	default:
		logger.Info("controller attached, press ctrl-c to unplug", "serial", serial)
		<-ctx.Done()
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("unplugging", "serial", serial)
	return pad.Unplug()
}

// plugAndWait runs the plug-in handshake up to readiness and returns the
// driver-assigned serial.
func plugAndWait(logger *slog.Logger, pad Pad, timeout time.Duration) (uint32, error) {
	if err := pad.Plugin(); err != nil {
		return 0, err
	}
	serial, err := pad.Serial()
	if err != nil {
		return 0, err
	}
	logger.Debug("plugged in, waiting for enumeration", "serial", serial)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := pad.WaitReady(ctx); err != nil {
		return 0, err
	}
	logger.Info("controller ready", "serial", serial)
	return serial, nil
}
