package cmd

import (
	"context"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/openvpad/govigem/pkg/device/xbox360"
	"github.com/openvpad/govigem/pkg/vigem"
)

// tapDuration is how long a keypress keeps its input asserted before the pad
// returns to neutral.
const tapDuration = 80 * time.Millisecond

var interactiveKeys = map[byte]xbox360.Gamepad{
	'w':  {ThumbLY: 32767},
	's':  {ThumbLY: -32768},
	'a':  {ThumbLX: -32768},
	'd':  {ThumbLX: 32767},
	'j':  {Buttons: xbox360.ButtonA},
	'k':  {Buttons: xbox360.ButtonB},
	'u':  {Buttons: xbox360.ButtonX},
	'i':  {Buttons: xbox360.ButtonY},
	'e':  {LeftTrigger: 255},
	'r':  {RightTrigger: 255},
	'1':  {Buttons: xbox360.ButtonLShoulder},
	'2':  {Buttons: xbox360.ButtonRShoulder},
	'\r': {Buttons: xbox360.ButtonStart},
	'\t': {Buttons: xbox360.ButtonBack},
}

// runInteractive drives the pad from raw keyboard input until q or ctrl-c.
func runInteractive(ctx context.Context, logger *slog.Logger, pad *vigem.Xbox360) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		logger.Error("interactive mode needs a terminal on stdin")
		return nil
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, oldState)

	logger.Info("interactive mode: wasd sticks, jkui buttons, e/r triggers, 1/2 bumpers, enter start, tab back, q quits")

	keys := make(chan byte)
	go func() {
		buf := make([]byte, 1)
		for {
			if _, err := os.Stdin.Read(buf); err != nil {
				close(keys)
				return
			}
			select {
			case keys <- buf[0]:
			case <-ctx.Done():
				return
			}
		}
	}()

	neutral := xbox360.Gamepad{}
	for {
		select {
		case <-ctx.Done():
			return pad.Update(&neutral)
		case key, ok := <-keys:
			if !ok || key == 'q' || key == 0x03 { // ctrl-c arrives raw
				return pad.Update(&neutral)
			}
			g, mapped := interactiveKeys[key]
			if !mapped {
				continue
			}
			if err := pad.Update(&g); err != nil {
				return err
			}
			select {
			case <-time.After(tapDuration):
			case <-ctx.Done():
			}
			if err := pad.Update(&neutral); err != nil {
				return err
			}
		}
	}
}
