package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvpad/govigem/pkg/device/xbox360"
)

func TestParseScript(t *testing.T) {
	script, err := ParseScript([]byte(`
interval: 50ms
steps:
  - buttons: [a, x]
    left_trigger: 127
    lx: 30000
    ly: -30000
  - buttons: [START]
    hold: 250ms
`))
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, script.Interval)
	require.Len(t, script.Steps, 2)

	g, err := script.Steps[0].Gamepad()
	require.NoError(t, err)
	assert.Equal(t, xbox360.Gamepad{
		Buttons:     xbox360.ButtonA | xbox360.ButtonX,
		LeftTrigger: 127,
		ThumbLX:     30000,
		ThumbLY:     -30000,
	}, g)

	// Button names are case insensitive.
	g, err = script.Steps[1].Gamepad()
	require.NoError(t, err)
	assert.Equal(t, xbox360.ButtonStart, g.Buttons)
	assert.Equal(t, 250*time.Millisecond, script.Steps[1].Hold)
}

func TestParseScriptDefaults(t *testing.T) {
	script, err := ParseScript([]byte("steps:\n  - buttons: [a]\n"))
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, script.Interval)
}

func TestParseScriptErrors(t *testing.T) {
	_, err := ParseScript([]byte("steps: []\n"))
	assert.ErrorContains(t, err, "no steps")

	_, err = ParseScript([]byte("steps:\n  - buttons: [warp]\n"))
	assert.ErrorContains(t, err, `unknown button "warp"`)

	_, err = ParseScript([]byte("steps: {not: a list}\n"))
	assert.ErrorContains(t, err, "invalid script")
}
