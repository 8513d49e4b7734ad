package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"pkt.systems/psi"
	"pkt.systems/pslog"

	"github.com/gubarz/meow/internal/config"
	"github.com/gubarz/meow/internal/options"
	"github.com/gubarz/meow/internal/pager"
	"github.com/gubarz/meow/internal/session"
	"github.com/gubarz/meow/internal/shell"
	"github.com/gubarz/meow/internal/theme"
)

var version = "0.1.0"

// flags mirrors the command line surface.
type flags struct {
	number          bool
	numberNonblank  bool
	showEnds        bool
	showTabs        bool
	squeezeBlank    bool
	showNonprinting bool
	showLength      bool
	rainbow         bool
	noColor         bool
	interactive     bool
	meta            bool
	page            bool
	animate         bool
	grep            string
	highlight       string
}

// argError marks a command line that could not be parsed.
type argError struct {
	err error
}

func (e *argError) Error() string { return e.err.Error() }
func (e *argError) Unwrap() error { return e.err }

// streams are the process streams handed to the command.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "meow: error loading config: %v\n", err)
	}
}

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole, MinLevel: pslog.InfoLevel}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd(streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
	root.SetArgs(os.Args[1:])
	return exitCode(root, root.ExecuteContext(ctx), os.Stderr)
}

func exitCode(root *cobra.Command, err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var aerr *argError
	switch {
	case errors.As(err, &aerr):
		fmt.Fprintf(stderr, "meow: %v\n", aerr.err)
		_ = root.Help()
	case errors.Is(err, session.ErrIncomplete):
		// Each failed input was already reported.
	default:
		fmt.Fprintf(stderr, "meow: %v\n", err)
	}
	return 1
}

func newRootCmd(s streams) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "meow [OPTIONS]... [FILE]...",
		Short: "Concatenate files to standard output with enhancements",
		Long: `Concatenate FILE(s) to standard output with enhancements.

If FILE is not specified or is -, read standard input.`,
		Example: `  meow -n file.txt            Display file with line numbers
  meow -ET file.txt           Show tabs and line endings
  meow -g 'pattern' file.txt  Only show lines matching 'pattern'
  meow -r file.txt            Display rainbow text`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f, args, s)
		},
	}
	cmd.SetOut(s.out)
	cmd.SetErr(s.err)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &argError{err: err}
	})

	fl := cmd.Flags()
	fl.BoolVarP(&f.number, "number", "n", false, "number all output lines")
	fl.BoolVarP(&f.numberNonblank, "number-nonblank", "b", false, "number nonempty output lines")
	fl.BoolVarP(&f.showEnds, "show-ends", "E", false, "display $ at end of each line")
	fl.BoolVarP(&f.showTabs, "show-tabs", "T", false, "display TAB characters as ^I")
	fl.BoolVarP(&f.squeezeBlank, "squeeze-blank", "s", false, "suppress repeated empty output lines")
	fl.BoolVarP(&f.showNonprinting, "show-nonprinting", "A", false, "show all non-printing characters")
	fl.BoolVarP(&f.showLength, "show-length", "l", false, "show line and character count")
	fl.BoolVarP(&f.rainbow, "rainbow", "r", false, "enable rainbow text mode")
	fl.BoolVarP(&f.noColor, "no-color", "C", false, "disable colors")
	fl.BoolVarP(&f.interactive, "interactive", "i", false, "enter interactive mode after processing")
	fl.BoolVarP(&f.meta, "meta", "m", false, "show file metadata")
	fl.BoolVarP(&f.page, "page", "p", false, "use pager (like less) for output")
	fl.BoolVarP(&f.animate, "animate", "a", false, "animate text display")
	fl.StringVarP(&f.grep, "grep", "g", "", "only show lines matching `pattern`")
	fl.StringVarP(&f.highlight, "highlight", "H", "", "highlight `pattern` in output")

	return cmd
}

func run(ctx context.Context, f *flags, files []string, s streams) error {
	if f.noColor {
		config.SetColor(theme.ModeNever)
	}
	tty := false
	if out, ok := s.out.(*os.File); ok {
		tty = theme.IsTerminal(out)
	}
	colors := theme.ColorEnabled(config.GetColor(), tty)
	th := theme.New(s.out, colors, theme.Palette{
		Number:    config.GetColorNumber(),
		Highlight: config.GetColorHighlight(),
		Error:     config.GetColorError(),
		Success:   config.GetColorSuccess(),
		Filename:  config.GetColorFilename(),
	})

	var pg pager.Pager
	if f.page {
		var err error
		if pg, err = pager.New(config.GetPager()); err != nil {
			return err
		}
	}

	cfg := session.Config{
		Options:   f.options(colors),
		Animate:   f.animate,
		Page:      f.page,
		Meta:      f.meta,
		CharDelay: config.GetAnimateCharDelay(),
		LineDelay: config.GetAnimateLineDelay(),
	}
	pslog.Ctx(ctx).Debug("meow.start", "files", len(files), "color", colors, "interactive", f.interactive)

	d := session.New(s.out, s.err, th, pg)

	var runErr error
	// With -i and no files, stdin belongs to the shell.
	if len(files) > 0 || !f.interactive {
		runErr = d.Run(ctx, cfg, files, s.in)
		if runErr != nil && !errors.Is(runErr, session.ErrIncomplete) {
			return runErr
		}
	}

	if f.interactive {
		if err := shell.New(s.in, s.out, d, cfg).Run(ctx); err != nil {
			return err
		}
	}
	return runErr
}

func (f *flags) options(colors bool) options.Set {
	return options.Set{
		NumberAll:       f.number,
		NumberNonblank:  f.numberNonblank,
		ShowEnds:        f.showEnds,
		ShowTabs:        f.showTabs,
		SqueezeBlank:    f.squeezeBlank,
		ShowNonprinting: f.showNonprinting,
		ShowLength:      f.showLength,
		Rainbow:         f.rainbow,
		Colors:          colors,
		Highlight:       f.highlight,
		Grep:            f.grep,
	}
}
