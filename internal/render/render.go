// Package render turns one raw input line into styled output segments.
//
// Rendering is pure: it performs no I/O and resolves no escape sequences.
// Segments carry a semantic Role; the theme decides what a role looks like
// when the line is written.
package render

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gubarz/meow/internal/options"
)

// Role names the semantic style of a segment.
type Role int

const (
	RolePlain Role = iota
	RoleNormal
	RoleNumber
	RoleHighlight
	RoleError
	RoleSuccess
	RoleFilename
	RoleRed
	RoleYellow
	RoleGreen
	RoleCyan
	RoleBlue
	RoleMagenta
)

// Rainbow is the cyclic palette used by rainbow mode, indexed by character
// position.
var Rainbow = [...]Role{RoleRed, RoleYellow, RoleGreen, RoleCyan, RoleBlue, RoleMagenta}

// Segment is a run of text rendered with a single role.
type Segment struct {
	Text string
	Role Role
}

// Line is the ordered segment sequence of one output line, without the
// trailing newline.
type Line []Segment

// String returns the line text with all styling dropped.
func (l Line) String() string {
	var b strings.Builder
	for _, seg := range l {
		b.WriteString(seg.Text)
	}
	return b.String()
}

const (
	numberWidth = 6
	numberSep   = " | "
)

// Prefix returns the number column for a labelled line.
func Prefix(n int) Line {
	return Line{
		{Text: fmt.Sprintf("%*d", numberWidth, n), Role: RoleNumber},
		{Text: numberSep, Role: RolePlain},
	}
}

// BlankPrefix returns an unlabelled number column of the same width as
// Prefix.
func BlankPrefix() Line {
	return Line{{Text: strings.Repeat(" ", numberWidth) + numberSep, Role: RolePlain}}
}

// Render produces the body of one output line: the transformed text,
// highlight or rainbow emphasis, the length suffix and the end marker.
// The number column is not part of it.
func Render(raw string, opts options.Set) Line {
	body := Transform(raw, opts)

	var line Line
	switch {
	case opts.Highlight != "" && strings.Contains(body, opts.Highlight):
		line = highlight(body, opts.Highlight)
	case opts.Rainbow:
		line = rainbow(body)
	default:
		line = appendText(line, body, RolePlain)
	}

	if opts.ShowLength {
		// A raw line never holds a newline, so the line count is always 1.
		line = append(line,
			Segment{Text: " ", Role: RolePlain},
			Segment{Text: fmt.Sprintf("[%dL, %dC]", 1, utf8.RuneCountInString(body)), Role: RoleNormal},
		)
	}

	if opts.ShowEnds {
		role := RolePlain
		if opts.Colors {
			role = RoleHighlight
		}
		line = append(line, Segment{Text: "$", Role: role})
	}

	return line
}

// Transform applies the character substitutions selected by -A and -T.
func Transform(raw string, opts options.Set) string {
	switch {
	case opts.ShowNonprinting:
		var b strings.Builder
		b.Grow(len(raw))
		for _, r := range raw {
			switch {
			case r == '\t':
				if opts.ShowTabs {
					b.WriteString("^I")
				} else {
					b.WriteRune(r)
				}
			case unicode.IsControl(r):
				b.WriteByte('^')
				b.WriteByte(caret(r))
			default:
				b.WriteRune(r)
			}
		}
		return b.String()
	case opts.ShowTabs:
		return strings.ReplaceAll(raw, "\t", "^I")
	default:
		return raw
	}
}

// caret maps a control character to the second byte of its ^X form.
func caret(r rune) byte {
	c := r + 64
	if c > '~' {
		return '?'
	}
	return byte(c)
}

func highlight(body, pattern string) Line {
	parts := strings.Split(body, pattern)
	line := appendText(nil, parts[0], RolePlain)
	for _, part := range parts[1:] {
		line = append(line, Segment{Text: pattern, Role: RoleHighlight})
		line = appendText(line, part, RolePlain)
	}
	return line
}

func rainbow(body string) Line {
	line := make(Line, 0, utf8.RuneCountInString(body))
	i := 0
	for _, r := range body {
		line = append(line, Segment{Text: string(r), Role: Rainbow[i%len(Rainbow)]})
		i++
	}
	return line
}

func appendText(line Line, text string, role Role) Line {
	if text == "" {
		return line
	}
	return append(line, Segment{Text: text, Role: role})
}
