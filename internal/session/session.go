// Package session drives inputs through filtering and rendering to the
// output stream.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"pkt.systems/pslog"

	"github.com/gubarz/meow/internal/filter"
	"github.com/gubarz/meow/internal/options"
	"github.com/gubarz/meow/internal/pager"
	"github.com/gubarz/meow/internal/render"
	"github.com/gubarz/meow/internal/source"
	"github.com/gubarz/meow/internal/theme"
)

// StdinOperand is the file operand naming standard input.
const StdinOperand = "-"

// ErrIncomplete is returned by Run when at least one source could not be
// opened or read. The failures have already been reported.
var ErrIncomplete = errors.New("some inputs could not be read")

// SourceError is a reported open or read failure of one source.
type SourceError struct {
	Name string
	Err  error
}

func (e *SourceError) Error() string {
	return e.Name + ": " + e.Err.Error()
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Config selects how sources are processed.
type Config struct {
	Options options.Set

	// Animate and Page replace line rendering with whole-content output.
	// Page takes precedence.
	Animate bool
	Page    bool
	// Meta adds size and age to multi-file banners.
	Meta bool

	CharDelay time.Duration
	LineDelay time.Duration
}

// Driver writes rendered sources to out and diagnostics to errOut.
type Driver struct {
	out    io.Writer
	errOut io.Writer
	theme  *theme.Theme
	pager  pager.Pager

	sleep func(context.Context, time.Duration) error
	now   func() time.Time
}

// New returns a driver. pg may be nil when page mode is never used.
func New(out, errOut io.Writer, th *theme.Theme, pg pager.Pager) *Driver {
	if th == nil {
		th = theme.Disabled()
	}
	return &Driver{
		out:    out,
		errOut: errOut,
		theme:  th,
		pager:  pg,
		sleep:  sleepCtx,
		now:    time.Now,
	}
}

// Theme returns the theme the driver writes with.
func (d *Driver) Theme() *theme.Theme {
	return d.theme
}

// Run processes each named file in order, or stdin when names is empty.
// Open and read failures are reported and skipped; Run then returns an
// error wrapping ErrIncomplete. A pager failure stops Run immediately.
func (d *Driver) Run(ctx context.Context, cfg Config, names []string, stdin io.Reader) error {
	if len(names) == 0 {
		names = []string{StdinOperand}
	}
	banners := len(names) > 1

	failed := 0
	for _, name := range names {
		var src *source.Source
		if name == StdinOperand {
			src = source.FromReader(source.StdinName, stdin)
		} else {
			var err error
			src, err = source.Open(name)
			if err != nil {
				d.Report(name, err)
				failed++
				continue
			}
		}

		if banners {
			if err := d.banner(src, cfg.Meta); err != nil {
				src.Close()
				return err
			}
		}

		err := d.Process(ctx, cfg, src)
		src.Close()
		var srcErr *SourceError
		switch {
		case err == nil:
		case errors.As(err, &srcErr):
			failed++
		default:
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrIncomplete, failed, len(names))
	}
	return nil
}

// Process renders a single source according to cfg. Read failures are
// reported and returned as *SourceError.
func (d *Driver) Process(ctx context.Context, cfg Config, src *source.Source) error {
	log := pslog.Ctx(ctx).With("source", src.Name)

	switch {
	case cfg.Page:
		log.Debug("source.page")
		return d.page(ctx, src)
	case cfg.Animate:
		log.Debug("source.animate")
		return d.animate(ctx, cfg, src)
	}

	log.Debug("source.render")
	w := bufio.NewWriter(d.out)
	defer w.Flush()

	opts := cfg.Options
	sc := source.NewScanner(src)
	var st filter.State
	for sc.Scan() {
		line := sc.Text()

		var res filter.Result
		res, st = filter.Advance(line, st, opts)
		if !res.Visible {
			continue
		}

		var out render.Line
		if opts.Numbered() {
			if res.Label > 0 {
				out = render.Prefix(res.Label)
			} else {
				out = render.BlankPrefix()
			}
		}
		out = append(out, render.Render(line, opts)...)
		if err := d.theme.WriteLine(w, out); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		if ferr := w.Flush(); ferr != nil {
			return ferr
		}
		return d.fail(src.Name, err)
	}
	log.Debug("source.done", "lines", st.Count)
	return w.Flush()
}

// Report writes a diagnostic for name to the error stream.
func (d *Driver) Report(name string, err error) {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	fmt.Fprintln(d.errOut, d.theme.Sprint(render.RoleError, fmt.Sprintf("meow: %s: %v", name, err)))
}

func (d *Driver) fail(name string, err error) error {
	d.Report(name, err)
	return &SourceError{Name: name, Err: err}
}

func (d *Driver) banner(src *source.Source, meta bool) error {
	suffix := ""
	if meta {
		suffix = src.Meta(d.now())
	}
	_, err := fmt.Fprintf(d.out, "\n===> %s%s <===\n", d.theme.Sprint(render.RoleFilename, src.Name), suffix)
	return err
}

func (d *Driver) page(ctx context.Context, src *source.Source) error {
	content, err := io.ReadAll(src)
	if err != nil {
		return d.fail(src.Name, err)
	}
	if d.pager == nil {
		return fmt.Errorf("%w: no pager configured", pager.ErrStart)
	}
	return d.pager.Page(ctx, content)
}

// animate echoes the source one character at a time. Rendering options do
// not apply.
func (d *Driver) animate(ctx context.Context, cfg Config, src *source.Source) error {
	lines, err := source.ReadLines(src)
	if err != nil {
		return d.fail(src.Name, err)
	}
	for _, line := range lines {
		for _, r := range line {
			if _, err := io.WriteString(d.out, string(r)); err != nil {
				return err
			}
			if err := d.sleep(ctx, cfg.CharDelay); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(d.out, "\n"); err != nil {
			return err
		}
		if err := d.sleep(ctx, cfg.LineDelay); err != nil {
			return err
		}
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
