package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/openvpad/govigem/pkg/device/xbox360"
	"github.com/openvpad/govigem/pkg/vigem"
)

// Script is a played-back input sequence for an Xbox 360 target.
type Script struct {
	// Interval is the default hold time of a step without an explicit hold.
	Interval time.Duration `yaml:"interval"`
	Steps    []ScriptStep  `yaml:"steps"`
}

// ScriptStep is one input snapshot held for a duration.
type ScriptStep struct {
	Buttons      []string      `yaml:"buttons"`
	LeftTrigger  uint8         `yaml:"left_trigger"`
	RightTrigger uint8         `yaml:"right_trigger"`
	ThumbLX      int16         `yaml:"lx"`
	ThumbLY      int16         `yaml:"ly"`
	ThumbRX      int16         `yaml:"rx"`
	ThumbRY      int16         `yaml:"ry"`
	Hold         time.Duration `yaml:"hold"`
}

var buttonsByName = map[string]uint16{
	"dpad_up":    xbox360.ButtonDPadUp,
	"dpad_down":  xbox360.ButtonDPadDown,
	"dpad_left":  xbox360.ButtonDPadLeft,
	"dpad_right": xbox360.ButtonDPadRight,
	"start":      xbox360.ButtonStart,
	"back":       xbox360.ButtonBack,
	"lthumb":     xbox360.ButtonLThumb,
	"rthumb":     xbox360.ButtonRThumb,
	"lb":         xbox360.ButtonLShoulder,
	"rb":         xbox360.ButtonRShoulder,
	"guide":      xbox360.ButtonGuide,
	"a":          xbox360.ButtonA,
	"b":          xbox360.ButtonB,
	"x":          xbox360.ButtonX,
	"y":          xbox360.ButtonY,
}

// LoadScript parses a YAML input script.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScript(data)
}

// ParseScript parses YAML script bytes and validates every step.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	if s.Interval <= 0 {
		s.Interval = 100 * time.Millisecond
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("invalid script: no steps")
	}
	for i, step := range s.Steps {
		if _, err := step.Gamepad(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return &s, nil
}

// Gamepad converts a step into an input report.
func (s ScriptStep) Gamepad() (xbox360.Gamepad, error) {
	g := xbox360.Gamepad{
		LeftTrigger:  s.LeftTrigger,
		RightTrigger: s.RightTrigger,
		ThumbLX:      s.ThumbLX,
		ThumbLY:      s.ThumbLY,
		ThumbRX:      s.ThumbRX,
		ThumbRY:      s.ThumbRY,
	}
	for _, name := range s.Buttons {
		bit, ok := buttonsByName[strings.ToLower(name)]
		if !ok {
			return g, fmt.Errorf("unknown button %q", name)
		}
		g.Buttons |= bit
	}
	return g, nil
}

func playScript(ctx context.Context, logger *slog.Logger, pad *vigem.Xbox360, script *Script) error {
	logger.Info("playing script", "steps", len(script.Steps))
	for i, step := range script.Steps {
		g, err := step.Gamepad()
		if err != nil {
			return err
		}
		if err := pad.Update(&g); err != nil {
			return err
		}
		hold := step.Hold
		if hold <= 0 {
			hold = script.Interval
		}
		select {
		case <-time.After(hold):
		case <-ctx.Done():
			logger.Info("script interrupted", "step", i)
			return ctx.Err()
		}
	}
	// Release everything at the end.
	return pad.Update(&xbox360.Gamepad{})
}
