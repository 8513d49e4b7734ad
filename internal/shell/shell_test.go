package shell

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/meow/internal/options"
	"github.com/gubarz/meow/internal/session"
	"github.com/gubarz/meow/internal/theme"
)

type fixture struct {
	dir    string
	out    *bytes.Buffer
	errOut *bytes.Buffer
	shell  *Shell
}

func newFixture(t *testing.T, input string, base session.Config) *fixture {
	t.Helper()
	f := &fixture{dir: t.TempDir(), out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	d := session.New(f.out, f.errOut, theme.Disabled(), nil)
	f.shell = New(strings.NewReader(input), f.out, d, base)
	return f
}

func (f *fixture) file(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunBannerPromptAndExit(t *testing.T) {
	f := newFixture(t, "exit\nhelp\n", session.Config{})
	require.NoError(t, f.shell.Run(context.Background()))

	out := f.out.String()
	assert.True(t, strings.HasPrefix(out, "\n=== Meow Interactive Shell ===\n"))
	assert.Contains(t, out, "meow> ")
	assert.NotContains(t, out, "Available commands")
	assert.Equal(t, []string{"exit"}, f.shell.History())
}

func TestRunEndsAtEOF(t *testing.T) {
	f := newFixture(t, "help", session.Config{})
	require.NoError(t, f.shell.Run(context.Background()))
	assert.Contains(t, f.out.String(), "Available commands:")
	assert.Equal(t, []string{"help"}, f.shell.History())
}

func TestBlankInputIsNotRecorded(t *testing.T) {
	f := newFixture(t, "\n   \nhistory\nquit\n", session.Config{})
	require.NoError(t, f.shell.Run(context.Background()))
	assert.Equal(t, []string{"history", "quit"}, f.shell.History())
	assert.Contains(t, f.out.String(), "Command history:\n  1. history\n")
}

func TestCatUsesBaseOptions(t *testing.T) {
	f := newFixture(t, "", session.Config{Options: options.Set{NumberAll: true}})
	path := f.file(t, "a.txt", "x\ny\n")

	assert.True(t, f.shell.Execute(context.Background(), "cat "+path))
	assert.Equal(t, "     1 | x\n     2 | y\n", f.out.String())
}

func TestGrepOverridesPattern(t *testing.T) {
	f := newFixture(t, "", session.Config{Options: options.Set{Grep: "never"}})
	path := f.file(t, "a.txt", "foo\nbar\nfoobar\n")

	f.shell.Execute(context.Background(), "grep foo "+path)
	assert.Equal(t, "foo\nfoobar\n", f.out.String())
}

func TestQuotedPattern(t *testing.T) {
	f := newFixture(t, "", session.Config{})
	path := f.file(t, "a.txt", "two words\ntwo\n")

	f.shell.Execute(context.Background(), `grep "two words" `+path)
	assert.Equal(t, "two words\n", f.out.String())
}

func TestHashIsLiteralWithoutQuotes(t *testing.T) {
	f := newFixture(t, "", session.Config{})
	path := f.file(t, "a.c", "#include <x>\nint main;\n")

	f.shell.Execute(context.Background(), "grep #include "+path)
	assert.Equal(t, "#include <x>\n", f.out.String())
}

func TestHighlightAndRainbowRender(t *testing.T) {
	f := newFixture(t, "", session.Config{})
	path := f.file(t, "a.txt", "meow\n")

	f.shell.Execute(context.Background(), "highlight e "+path)
	f.shell.Execute(context.Background(), "rainbow "+path)
	assert.Equal(t, "meow\nmeow\n", f.out.String())
}

func TestDerivedOptionsDoNotLeak(t *testing.T) {
	f := newFixture(t, "", session.Config{})
	path := f.file(t, "a.txt", "foo\nbar\n")

	f.shell.Execute(context.Background(), "grep foo "+path)
	f.shell.Execute(context.Background(), "cat "+path)
	assert.Equal(t, "foo\nfoo\nbar\n", f.out.String())
}

func TestMissingFileRecordsAndContinues(t *testing.T) {
	f := newFixture(t, "grep x missing.txt\nhistory\nexit\n", session.Config{})
	require.NoError(t, f.shell.Run(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "Error: Could not open file 'missing.txt'\n")
	assert.Contains(t, out, "  1. grep x missing.txt\n  2. history\n")
	assert.Equal(t, []string{"grep x missing.txt", "history", "exit"}, f.shell.History())
}

func TestUsageMessages(t *testing.T) {
	tests := map[string]string{
		"cat":            "Usage: cat <file>\n",
		"grep x":         "Usage: grep <pattern> <file>\n",
		"highlight":      "Usage: highlight <pattern> <file>\n",
		"rainbow":        "Usage: rainbow <file>\n",
		"highlight only": "Usage: highlight <pattern> <file>\n",
	}
	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			f := newFixture(t, "", session.Config{})
			assert.True(t, f.shell.Execute(context.Background(), input))
			assert.Equal(t, want, f.out.String())
			assert.Equal(t, []string{input}, f.shell.History())
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	f := newFixture(t, "", session.Config{})
	assert.True(t, f.shell.Execute(context.Background(), "purr loudly"))
	assert.Equal(t, "Unknown command: 'purr'\nType 'help' to see available commands\n", f.out.String())
}

func TestShellNeverPages(t *testing.T) {
	f := newFixture(t, "", session.Config{Page: true})
	path := f.file(t, "a.txt", "plain\n")

	f.shell.Execute(context.Background(), "cat "+path)
	assert.Equal(t, "plain\n", f.out.String())
	assert.Empty(t, f.errOut.String())
}

func TestReadErrorInsideShellIsReported(t *testing.T) {
	f := newFixture(t, "", session.Config{})
	path := f.file(t, "bad.bin", "ok\n\xff\n")

	assert.True(t, f.shell.Execute(context.Background(), "cat "+path))
	assert.Equal(t, "ok\n", f.out.String())
	assert.Contains(t, f.errOut.String(), "meow: "+path+": stream did not contain valid UTF-8")
}
