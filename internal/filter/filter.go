// Package filter decides which lines of a stream are visible and how they
// are numbered.
package filter

import (
	"strings"

	"github.com/gubarz/meow/internal/options"
)

// State is the per-source traversal state. The zero value is the state
// before the first line of a source.
type State struct {
	Count     int  // labels handed out so far
	PrevBlank bool // blank status of the last line that reached the grep check
}

// Result is the verdict for a single line.
type Result struct {
	Visible bool
	// Label is the line number to print, or 0 for no number.
	Label int
}

// Advance classifies line and returns the verdict together with the state
// to pass for the next line. st is not modified.
func Advance(line string, st State, opts options.Set) (Result, State) {
	blank := strings.TrimSpace(line) == ""

	if opts.SqueezeBlank && blank && st.PrevBlank {
		return Result{}, st
	}

	// Lines dropped by grep still count for squeeze tracking.
	st.PrevBlank = blank

	if opts.Grep != "" && !strings.Contains(line, opts.Grep) {
		return Result{}, st
	}

	res := Result{Visible: true}
	switch {
	case opts.NumberNonblank:
		if !blank {
			st.Count++
			res.Label = st.Count
		}
	case opts.NumberAll:
		st.Count++
		res.Label = st.Count
	}
	return res, st
}
