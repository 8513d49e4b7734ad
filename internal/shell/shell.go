// Package shell implements the interactive meow prompt.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
	"pkt.systems/pslog"

	"github.com/gubarz/meow/internal/render"
	"github.com/gubarz/meow/internal/session"
	"github.com/gubarz/meow/internal/source"
)

const helpText = `Available commands:
  cat <file>    - Display file contents
  grep <pattern> <file> - Find pattern in file
  highlight <pattern> <file> - Highlight pattern in file
  rainbow <file> - Display file with rainbow colors
  history       - Show command history
  help          - Show this help
  exit/quit     - Exit the shell
`

// Shell reads commands from in and renders files through a session driver.
// Its only state is the command history.
type Shell struct {
	in      *bufio.Reader
	out     io.Writer
	driver  *session.Driver
	base    session.Config
	history []string
}

// New returns a shell. base is the configuration every command starts
// from; paging is always off inside the shell.
func New(in io.Reader, out io.Writer, driver *session.Driver, base session.Config) *Shell {
	base.Page = false
	return &Shell{
		in:     bufio.NewReader(in),
		out:    out,
		driver: driver,
		base:   base,
	}
}

// History returns the recorded command lines, oldest first.
func (s *Shell) History() []string {
	return append([]string(nil), s.history...)
}

// Run loops until exit, quit, end of input or a read error.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintf(s.out, "\n%s\n", s.sprint(render.RoleSuccess, "=== Meow Interactive Shell ==="))
	fmt.Fprintln(s.out, "Type 'help' for available commands, 'exit' to quit")
	fmt.Fprintln(s.out)

	for {
		fmt.Fprintf(s.out, "%s ", s.sprint(render.RoleSuccess, "meow>"))

		input, err := s.in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || input == "") {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !s.Execute(ctx, input) {
			return nil
		}
	}
}

// Execute records and runs one command line. It returns false when the
// shell should stop.
func (s *Shell) Execute(ctx context.Context, input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return true
	}
	s.history = append(s.history, input)

	parts := split(input)
	if len(parts) == 0 {
		return true
	}
	pslog.Ctx(ctx).Debug("shell.command", "name", parts[0], "args", len(parts)-1)

	cfg := s.base
	switch parts[0] {
	case "exit", "quit":
		return false
	case "help":
		fmt.Fprint(s.out, helpText)
	case "history":
		fmt.Fprintln(s.out, "Command history:")
		for i, cmd := range s.history {
			fmt.Fprintf(s.out, "  %d. %s\n", i+1, cmd)
		}
	case "cat":
		if len(parts) < 2 {
			s.usage("cat <file>")
			break
		}
		s.show(ctx, cfg, parts[1])
	case "grep":
		if len(parts) < 3 {
			s.usage("grep <pattern> <file>")
			break
		}
		cfg.Options = cfg.Options.WithGrep(parts[1])
		s.show(ctx, cfg, parts[2])
	case "highlight":
		if len(parts) < 3 {
			s.usage("highlight <pattern> <file>")
			break
		}
		cfg.Options = cfg.Options.WithHighlight(parts[1])
		s.show(ctx, cfg, parts[2])
	case "rainbow":
		if len(parts) < 2 {
			s.usage("rainbow <file>")
			break
		}
		cfg.Options = cfg.Options.WithRainbow()
		s.show(ctx, cfg, parts[1])
	default:
		fmt.Fprintln(s.out, s.sprint(render.RoleError, fmt.Sprintf("Unknown command: '%s'", parts[0])))
		fmt.Fprintln(s.out, "Type 'help' to see available commands")
	}
	return true
}

func (s *Shell) show(ctx context.Context, cfg session.Config, name string) {
	src, err := source.Open(name)
	if err != nil {
		pslog.Ctx(ctx).Debug("shell.open.failed", "file", name, "err", err)
		fmt.Fprintln(s.out, s.sprint(render.RoleError, fmt.Sprintf("Error: Could not open file '%s'", name)))
		return
	}
	defer src.Close()

	err = s.driver.Process(ctx, cfg, src)
	var srcErr *session.SourceError
	if err != nil && !errors.As(err, &srcErr) {
		s.driver.Report(name, err)
	}
}

func (s *Shell) usage(text string) {
	fmt.Fprintln(s.out, s.sprint(render.RoleError, "Usage: "+text))
}

func (s *Shell) sprint(role render.Role, text string) string {
	return s.driver.Theme().Sprint(role, text)
}

// split tokenizes a command line. Quotes group words; a line without
// quotes, or with unbalanced ones, is split on whitespace.
func split(input string) []string {
	if !strings.ContainsAny(input, `"'`) {
		return strings.Fields(input)
	}
	parts, err := shlex.Split(input)
	if err != nil {
		return strings.Fields(input)
	}
	return parts
}
