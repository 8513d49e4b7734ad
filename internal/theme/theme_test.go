package theme

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/meow/internal/render"
)

func TestDisabledWritesPlainText(t *testing.T) {
	var buf bytes.Buffer
	th := New(&buf, false, DefaultPalette())
	assert.False(t, th.Enabled())

	line := render.Line{
		{Text: "     1", Role: render.RoleNumber},
		{Text: " | ", Role: render.RolePlain},
		{Text: "a", Role: render.RoleRed},
		{Text: "\tb", Role: render.RoleHighlight},
	}
	require.NoError(t, th.WriteLine(&buf, line))
	assert.Equal(t, "     1 | a\tb\n", buf.String())
}

func TestEnabledStylesRoles(t *testing.T) {
	var buf bytes.Buffer
	th := New(&buf, true, DefaultPalette())
	require.True(t, th.Enabled())

	number := th.Sprint(render.RoleNumber, "7")
	assert.Contains(t, number, "\x1b[")
	assert.Contains(t, number, "33m")
	assert.Contains(t, number, "7")

	red := th.Sprint(render.RoleRed, "r")
	assert.Contains(t, red, "31m")

	assert.Equal(t, "plain", th.Sprint(render.RolePlain, "plain"))
	assert.Equal(t, "norm", th.Sprint(render.RoleNormal, "norm"))
	assert.Equal(t, "", th.Sprint(render.RoleNumber, ""))
}

func TestEnabledKeepsTabs(t *testing.T) {
	th := New(&bytes.Buffer{}, true, DefaultPalette())
	assert.Contains(t, th.Sprint(render.RoleHighlight, "a\tb"), "a\tb")
}

func TestCustomPalette(t *testing.T) {
	p := DefaultPalette()
	p.Number = "94"
	th := New(&bytes.Buffer{}, true, p)
	assert.Contains(t, th.Sprint(render.RoleNumber, "1"), "94m")
}

func TestParseANSIColor(t *testing.T) {
	assert.Equal(t, "3", string(parseANSIColor("33")))
	assert.Equal(t, "8", string(parseANSIColor("90")))
	assert.Equal(t, "212", string(parseANSIColor("212")))
}

func TestColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "xterm-256color")

	assert.True(t, ColorEnabled(ModeAlways, false))
	assert.False(t, ColorEnabled(ModeNever, true))
	assert.True(t, ColorEnabled(ModeAuto, true))
	assert.False(t, ColorEnabled(ModeAuto, false))
	assert.True(t, ColorEnabled("", true))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(ModeAuto, true))
	assert.True(t, ColorEnabled(ModeAlways, false))

	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "dumb")
	assert.False(t, ColorEnabled(ModeAuto, true))
}
