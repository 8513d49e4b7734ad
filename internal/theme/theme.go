package theme

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/gubarz/meow/internal/render"
)

// Palette holds ANSI color codes for the configurable roles.
type Palette struct {
	Number    string
	Highlight string
	Error     string
	Success   string
	Filename  string
}

// DefaultPalette returns the stock colors.
func DefaultPalette() Palette {
	return Palette{
		Number:    "33", // Yellow
		Highlight: "36", // Cyan
		Error:     "31", // Red
		Success:   "32", // Green
		Filename:  "35", // Magenta
	}
}

// rainbowCodes follows render.Rainbow order.
var rainbowCodes = map[render.Role]string{
	render.RoleRed:     "31",
	render.RoleYellow:  "33",
	render.RoleGreen:   "32",
	render.RoleCyan:    "36",
	render.RoleBlue:    "34",
	render.RoleMagenta: "35",
}

// Theme maps segment roles to styles. A disabled theme writes every role
// as plain text. Themes are not modified after New.
type Theme struct {
	enabled bool
	styles  map[render.Role]lipgloss.Style
}

// Disabled returns the theme used when color output is off.
func Disabled() *Theme {
	return &Theme{}
}

// New returns a theme for out. When enabled is false it is equivalent to
// Disabled. An enabled theme emits at least 16-color ANSI sequences even
// when out is not a terminal.
func New(out io.Writer, enabled bool, p Palette) *Theme {
	if !enabled {
		return Disabled()
	}

	r := lipgloss.NewRenderer(out)
	profile := termenv.NewOutput(out).EnvColorProfile()
	if profile == termenv.Ascii {
		profile = termenv.ANSI
	}
	r.SetColorProfile(profile)

	fg := func(code string) lipgloss.Style {
		return r.NewStyle().Foreground(parseANSIColor(code)).TabWidth(lipgloss.NoTabConversion)
	}

	t := &Theme{
		enabled: true,
		styles: map[render.Role]lipgloss.Style{
			render.RoleNumber:    fg(p.Number),
			render.RoleHighlight: fg(p.Highlight),
			render.RoleError:     fg(p.Error),
			render.RoleSuccess:   fg(p.Success),
			render.RoleFilename:  fg(p.Filename),
		},
	}
	for role, code := range rainbowCodes {
		t.styles[role] = fg(code)
	}
	return t
}

// Enabled reports whether the theme emits styling.
func (t *Theme) Enabled() bool {
	return t.enabled
}

// Sprint renders text in role.
func (t *Theme) Sprint(role render.Role, text string) string {
	if !t.enabled || text == "" {
		return text
	}
	style, ok := t.styles[role]
	if !ok {
		return text
	}
	return style.Render(text)
}

// WriteLine writes the segments of line followed by a newline.
func (t *Theme) WriteLine(w io.Writer, line render.Line) error {
	for _, seg := range line {
		if _, err := io.WriteString(w, t.Sprint(seg.Role, seg.Text)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// parseANSIColor converts ANSI color codes to lipgloss colors
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}

// Color modes accepted by ColorEnabled.
const (
	ModeAuto   = "auto"
	ModeAlways = "always"
	ModeNever  = "never"
)

// ColorEnabled decides whether to color output. In auto mode color follows
// tty, except when NO_COLOR is set or TERM is "dumb".
func ColorEnabled(mode string, tty bool) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return tty
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
