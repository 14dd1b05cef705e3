package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Monitor plugs a virtual controller and prints the force-feedback events the
// driver sends for it until interrupted.
type Monitor struct {
	Bus `embed:""`

	Type         string        `help:"Controller type" enum:"x360,ds4" default:"x360"`
	ReadyTimeout time.Duration `help:"How long to wait for device enumeration" default:"5s"`
}

func (m *Monitor) Run(logger *slog.Logger) error {
	client, err := m.connect(logger)
	if err != nil {
		return err
	}
	defer client.Close()

	pad, err := newPad(client, m.Type, "", "")
	if err != nil {
		return err
	}
	defer pad.Close()

	serial, err := plugAndWait(logger, pad, m.ReadyTimeout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("listening for feedback, press ctrl-c to stop", "serial", serial)
	events, errc := pad.Listen(ctx)
	for ev := range events {
		logger.Info("feedback",
			"serial", serial,
			"large_motor", ev.LargeMotor,
			"small_motor", ev.SmallMotor,
			"led", ev.LedNumber)
	}
	if err := <-errc; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
