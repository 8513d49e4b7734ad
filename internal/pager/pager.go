package pager

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/google/shlex"
	"pkt.systems/pslog"
)

// Builtin is the pager setting that selects the built-in viewport pager.
const Builtin = "builtin"

// DefaultCommand is the external pager used when none is configured.
const DefaultCommand = "less"

// ErrStart is returned when the pager cannot be started.
var ErrStart = errors.New("failed to start pager")

// Pager displays a whole document and returns once the user is done.
type Pager interface {
	Page(ctx context.Context, content []byte) error
}

// New returns the pager described by cmdline: "builtin" or a command line
// such as "less -R". An empty cmdline means DefaultCommand.
func New(cmdline string) (Pager, error) {
	cmdline = strings.TrimSpace(cmdline)
	if cmdline == "" {
		cmdline = DefaultCommand
	}
	if cmdline == Builtin {
		return &Viewport{}, nil
	}
	fields, err := shlex.Split(cmdline)
	if err != nil {
		return nil, fmt.Errorf("invalid pager %q: %w", cmdline, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("invalid pager %q", cmdline)
	}
	return &Command{Name: fields[0], Args: fields[1:]}, nil
}

// ============================================================================
// External pager
// ============================================================================

// Command pipes content into an external program.
type Command struct {
	Name string
	Args []string

	// Stdout and Stderr default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Page runs the pager with content on its standard input and waits for it
// to exit. No timeout applies.
func (c *Command) Page(ctx context.Context, content []byte) error {
	log := pslog.Ctx(ctx).With("pager", c.Name)

	cmd := exec.Command(c.Name, c.Args...)
	cmd.Stdin = bytes.NewReader(content)
	cmd.Stdout = c.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = c.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	cmd.Env = os.Environ()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w %s: %w", ErrStart, c.Name, err)
	}
	log.Debug("pager.started", "bytes", len(content))

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("pager %s: %w", c.Name, err)
	}
	log.Debug("pager.exited")
	return nil
}
