package extract

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/headerx/internal/headerfile"
	"github.com/jorge-barreto/headerx/internal/marker"
	"github.com/jorge-barreto/headerx/internal/ux"
)

// Options control a run. They are fixed once the run starts.
type Options struct {
	OutputDir      string // relative header names are resolved against it; "" means cwd
	LineDirectives bool   // emit #line after the guard
	Strict         bool   // fail on a block left open at end of file
	DryRun         bool   // report headers without writing them
	Verbose        bool
}

// DefaultOptions matches the behaviour of a bare `headerx file.c`.
func DefaultOptions() Options {
	return Options{LineDirectives: true}
}

// Summary counts what a run did.
type Summary struct {
	Files   int
	Headers int
}

// Extractor splits mixed source files into header files.
type Extractor struct {
	Options Options
	Out     *ux.Printer

	// Create opens a destination header. Defaults to headerfile.Create.
	Create func(path string) (io.WriteCloser, error)
}

// New returns an Extractor writing real files.
func New(opts Options, out *ux.Printer) *Extractor {
	return &Extractor{Options: opts, Out: out}
}

// Run processes paths in order and stops at the first failure.
func (x *Extractor) Run(ctx context.Context, paths []string) (Summary, error) {
	var sum Summary
	if len(paths) == 0 {
		return sum, ErrNoFiles
	}
	for _, path := range paths {
		if ctx.Err() != nil {
			return sum, ctx.Err()
		}
		n, err := x.ProcessFile(path)
		sum.Headers += n
		if err != nil {
			return sum, err
		}
		sum.Files++
	}
	return sum, nil
}

// ProcessFile extracts every header block from the named file and returns
// the number of headers written.
func (x *Extractor) ProcessFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, &Error{File: path, Err: fmt.Errorf("could not open source file: %w", err)}
	}
	defer f.Close()
	return x.Extract(f, path)
}

// Extract scans r, named source in diagnostics and #line directives.
func (x *Extractor) Extract(r io.Reader, source string) (int, error) {
	s := &scan{x: x, source: source}
	return s.run(r)
}

func (x *Extractor) out() *ux.Printer {
	if x.Out == nil {
		return ux.Discard()
	}
	return x.Out
}

func (x *Extractor) create(path string) (io.WriteCloser, error) {
	if x.Options.DryRun {
		return nopCloser{io.Discard}, nil
	}
	if x.Create != nil {
		return x.Create(path)
	}
	f, err := headerfile.Create(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (x *Extractor) headerPath(name string) string {
	if x.Options.OutputDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(x.Options.OutputDir, name)
}

// scan is the per-file state. It is Capturing exactly when w is non-nil.
type scan struct {
	x      *Extractor
	source string
	line   int

	w        io.WriteCloser
	header   string
	openedAt int
	written  int
}

func (s *scan) run(r io.Reader) (int, error) {
	br := bufio.NewReader(r)
	for {
		text, readErr := br.ReadString('\n')
		if text != "" {
			s.line++
			if err := s.step(text); err != nil {
				return s.written, s.abort(err)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return s.written, s.abort(&Error{File: s.source, Line: s.line, Err: fmt.Errorf("reading source: %w", readErr)})
		}
	}
	return s.written, s.finish()
}

func (s *scan) step(text string) error {
	if s.w == nil {
		if marker.IsStart(text) {
			return s.open(text)
		}
		return nil
	}
	if marker.IsEnd(text) {
		return s.close()
	}
	return s.write(text)
}

func (s *scan) open(text string) error {
	x := s.x
	if x.Options.Verbose {
		x.out().Trace(s.source, s.line, "Found %s", marker.StartPrefix)
	}
	decl, err := marker.Parse(text)
	if err != nil {
		return &Error{File: s.source, Line: s.line, Err: fmt.Errorf("invalid %s line: %w", marker.StartPrefix, err)}
	}
	if x.Options.Verbose {
		x.out().Trace(s.source, s.line, "Parsed header file name: %s, and tag: %s", decl.Filename, decl.Tag)
	}

	path := x.headerPath(decl.Filename)
	w, err := x.create(path)
	if err != nil {
		return &Error{File: s.source, Line: s.line, Header: path, Err: fmt.Errorf("could not open output file %s: %w", path, err)}
	}
	s.w, s.header, s.openedAt = w, path, s.line

	if x.Options.DryRun {
		x.out().Planned(path, decl.Tag, s.source, s.line)
	}

	guard := fmt.Sprintf("#ifndef %s\n#define %s\n", decl.Tag, decl.Tag)
	if x.Options.LineDirectives {
		guard += fmt.Sprintf("#line %d \"%s\"\n", s.line, s.source)
	}
	return s.write(guard)
}

func (s *scan) write(text string) error {
	if _, err := io.WriteString(s.w, text); err != nil {
		return &Error{File: s.source, Line: s.line, Header: s.header, Err: fmt.Errorf("writing %s: %w", s.header, err)}
	}
	return nil
}

func (s *scan) close() error {
	x := s.x
	if x.Options.Verbose {
		x.out().Trace(s.source, s.line, "Found %s", marker.EndPrefix)
	}
	if err := s.write("#endif\n"); err != nil {
		return err
	}
	return s.release()
}

func (s *scan) release() error {
	w, header := s.w, s.header
	s.w, s.header = nil, ""
	if err := w.Close(); err != nil {
		return &Error{File: s.source, Line: s.line, Header: header, Err: fmt.Errorf("closing %s: %w", header, err)}
	}
	s.written++
	if s.x.Options.Verbose && !s.x.Options.DryRun {
		s.x.out().Extracted(header, s.source, s.openedAt)
	}
	return nil
}

// finish handles end of input. A block left open keeps what was captured,
// without #endif; strict mode additionally reports it as an error.
func (s *scan) finish() error {
	if s.w == nil {
		return nil
	}
	header, openedAt := s.header, s.openedAt
	if err := s.release(); err != nil {
		return err
	}
	if s.x.Options.Strict {
		return &Error{File: s.source, Line: openedAt, Header: header, Err: ErrUnterminated}
	}
	s.x.out().Warn("%s:%d: header %s has no //ENDX, written without #endif", s.source, openedAt, header)
	return nil
}

// abort drops a header still being written after the fatal error cause. A
// failure to clean up is reported alongside cause.
func (s *scan) abort(cause error) error {
	if s.w == nil {
		return cause
	}
	w, header := s.w, s.header
	s.w, s.header = nil, ""

	var err error
	if a, ok := w.(interface{ Abort() error }); ok {
		err = a.Abort()
	} else {
		err = w.Close()
	}
	if err != nil {
		return errors.Join(cause, fmt.Errorf("discarding %s: %w", header, err))
	}
	return cause
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
