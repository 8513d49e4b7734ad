// Package source opens inputs and splits them into decoded text lines.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// StdinName is the display name used for standard input.
const StdinName = "stdin"

// ErrInvalidUTF8 is reported for a line whose bytes do not decode as UTF-8.
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// Source is one named input.
type Source struct {
	Name string
	r    io.Reader
	file *os.File
}

// Open opens the named file for reading.
func Open(name string) (*Source, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return &Source{Name: name, r: f, file: f}, nil
}

// FromReader wraps r as a source called name. Close is a no-op for it.
func FromReader(name string, r io.Reader) *Source {
	return &Source{Name: name, r: r}
}

// Read implements io.Reader.
func (s *Source) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// Close releases the underlying file, if any.
func (s *Source) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

// Meta describes the file behind s as " [<size>] [<age>]" relative to now.
// It returns "" when s is not a file or cannot be stat'ed.
func (s *Source) Meta(now time.Time) string {
	if s.file == nil {
		return ""
	}
	info, err := s.file.Stat()
	if err != nil {
		return ""
	}
	return Describe(info, now)
}

// Describe formats size and modification age of info.
func Describe(info fs.FileInfo, now time.Time) string {
	size := humanize.IBytes(uint64(max(info.Size(), 0)))
	mod := info.ModTime()
	if mod.IsZero() {
		return fmt.Sprintf(" [%s] [unknown time]", size)
	}
	return fmt.Sprintf(" [%s] [%s]", size, Age(now.Sub(mod)))
}

// Age renders d as whole minutes, hours or days ago.
func Age(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	switch {
	case secs < 60*60:
		return fmt.Sprintf("%d mins ago", secs/60)
	case secs < 60*60*24:
		return fmt.Sprintf("%d hours ago", secs/(60*60))
	default:
		return fmt.Sprintf("%d days ago", secs/(60*60*24))
	}
}

// Scanner yields the lines of a reader without their terminators. A line
// ends at "\n"; a "\r" right before it is dropped as well. Unlike
// bufio.Scanner it has no line length limit.
type Scanner struct {
	r    *bufio.Reader
	line string
	err  error
	done bool
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReader(r)}
}

// Scan advances to the next line. It returns false at end of input or on
// the first error; check Err afterwards.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}
	raw, err := s.r.ReadString('\n')
	if err != nil && err != io.EOF {
		s.fail(err)
		return false
	}
	if err == io.EOF {
		s.done = true
		if raw == "" {
			return false
		}
	}
	raw = strings.TrimSuffix(raw, "\n")
	raw = strings.TrimSuffix(raw, "\r")
	if !utf8.ValidString(raw) {
		s.fail(ErrInvalidUTF8)
		return false
	}
	s.line = raw
	return true
}

func (s *Scanner) fail(err error) {
	s.err = err
	s.done = true
	s.line = ""
}

// Text returns the current line.
func (s *Scanner) Text() string {
	return s.line
}

// Err returns the error that stopped the scan, or nil at a clean EOF.
func (s *Scanner) Err() error {
	return s.err
}

// ReadLines reads every line of r. On error it returns the lines read so
// far along with the error.
func ReadLines(r io.Reader) ([]string, error) {
	sc := NewScanner(r)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
