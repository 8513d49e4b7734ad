package options

// Set is the bundle of display toggles applied to every line of a render
// pass. It is passed by value; derive variants with the With* methods
// instead of mutating a shared copy.
type Set struct {
	NumberAll       bool // -n: number every visible line
	NumberNonblank  bool // -b: number visible non-blank lines, overrides NumberAll
	ShowEnds        bool // -E
	ShowTabs        bool // -T
	SqueezeBlank    bool // -s
	ShowNonprinting bool // -A
	ShowLength      bool // -l
	Rainbow         bool // -r
	Colors          bool // false after -C or when stdout is not a terminal

	// Highlight and Grep are literal substrings. The empty string means unset.
	Highlight string
	Grep      string
}

// Numbered reports whether visible lines carry a number column.
func (s Set) Numbered() bool {
	return s.NumberAll || s.NumberNonblank
}

// WithGrep returns a copy of s filtering on pattern.
func (s Set) WithGrep(pattern string) Set {
	s.Grep = pattern
	return s
}

// WithHighlight returns a copy of s highlighting pattern.
func (s Set) WithHighlight(pattern string) Set {
	s.Highlight = pattern
	return s
}

// WithRainbow returns a copy of s with rainbow coloring forced on.
func (s Set) WithRainbow() Set {
	s.Rainbow = true
	return s
}

// WithColors returns a copy of s with color output set to enabled.
func (s Set) WithColors(enabled bool) Set {
	s.Colors = enabled
	return s
}
