package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivedSetsLeaveBaseUntouched(t *testing.T) {
	base := Set{NumberAll: true, Grep: "keep"}

	grep := base.WithGrep("x")
	hl := base.WithHighlight("y")
	rb := base.WithRainbow()

	assert.Equal(t, "keep", base.Grep)
	assert.Empty(t, base.Highlight)
	assert.False(t, base.Rainbow)

	assert.Equal(t, "x", grep.Grep)
	assert.True(t, grep.NumberAll)
	assert.Equal(t, "y", hl.Highlight)
	assert.Equal(t, "keep", hl.Grep)
	assert.True(t, rb.Rainbow)
}

func TestNumbered(t *testing.T) {
	assert.False(t, Set{}.Numbered())
	assert.True(t, Set{NumberAll: true}.Numbered())
	assert.True(t, Set{NumberNonblank: true}.Numbered())
	assert.True(t, Set{NumberAll: true, NumberNonblank: true}.Numbered())
}
