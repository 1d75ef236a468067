// Package source produces the lazy stream of candidates to match:
// lines read from files, directory trees or the standard input, or
// file names when searching names instead of contents. Candidates are
// handed to a visitor one at a time; the full input is never held in
// memory.
package source

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Scanner buffer sizing: a line longer than maxLineSize ends the scan
// of that file; the scanner error surfaces as a diagnostic and the
// run continues with the next input.
const maxLineSize = 1024 * 1024

// Options configures a Source.
type Options struct {
	// Targets are the file or directory arguments. Empty means the
	// standard input.
	Targets []string

	// Recursive descends into directory targets.
	Recursive bool

	// MaxDepth limits recursion; negative means unlimited. Depth 0 is
	// the target directory itself.
	MaxDepth int

	// Include and Exclude are glob patterns applied to file paths
	// during traversal.
	Include []string
	Exclude []string

	// Names makes each file path a candidate instead of each content
	// line.
	Names bool

	// Stdin is the reader used when no targets are given.
	Stdin io.Reader

	// Diag receives human-readable diagnostics for per-item failures
	// (unreadable files, binary content). Never nil after New.
	Diag io.Writer
}

// Source yields candidates in a single forward pass.
type Source struct {
	opts   Options
	filter *Filter
}

// New validates the configuration: glob patterns must compile and
// every root target must exist. Both are fatal errors.
func New(opts Options) (*Source, error) {
	filter, err := NewFilter(opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}
	for _, target := range opts.Targets {
		if _, err := os.Lstat(target); err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", target, err)
		}
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Diag == nil {
		opts.Diag = os.Stderr
	}
	return &Source{opts: opts, filter: filter}, nil
}

// Scan walks the configured inputs and calls emit for every
// candidate. Per-item failures are reported to the diagnostic writer
// and do not stop the scan; only errors detected at New are fatal.
func (s *Source) Scan(emit func(Candidate)) error {
	if len(s.opts.Targets) == 0 {
		s.scanLines("", s.opts.Stdin, emit)
		return nil
	}

	for _, target := range s.opts.Targets {
		info, err := os.Stat(target)
		if err != nil {
			s.diag("%s: %v", target, err)
			continue
		}
		if info.IsDir() {
			if !s.opts.Recursive {
				s.diag("%s: is a directory", target)
				continue
			}
			s.scanTree(target, emit)
			continue
		}
		s.scanFile(target, emit)
	}
	return nil
}

func (s *Source) scanTree(root string, emit func(Candidate)) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.diag("%s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if s.opts.MaxDepth >= 0 && depth(root, path) >= s.opts.MaxDepth {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if s.opts.MaxDepth >= 0 && depth(root, path) > s.opts.MaxDepth {
			return nil
		}
		if !s.filter.Match(path, d.Name()) {
			return nil
		}
		s.scanFile(path, emit)
		return nil
	})
}

func (s *Source) scanFile(path string, emit func(Candidate)) {
	if s.opts.Names {
		emit(Candidate{Origin: Origin{Path: path}, Text: path})
		return
	}

	file, err := os.Open(path)
	if err != nil {
		s.diag("%s: %v", path, err)
		return
	}
	defer file.Close()

	s.scanLines(path, file, emit)
}

// scanLines splits r into line candidates. A NUL byte or invalid
// UTF-8 marks the source as binary; the remainder is skipped with a
// diagnostic so one unreadable input never aborts the run.
func (s *Source) scanLines(path string, r io.Reader, emit func(Candidate)) {
	name := Origin{Path: path}.Name()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if bytes.IndexByte(raw, 0) >= 0 || !utf8.Valid(raw) {
			s.diag("%s: binary content, skipping", name)
			return
		}
		emit(Candidate{
			Origin: Origin{Path: path, Line: line},
			Text:   string(raw),
		})
	}
	if err := scanner.Err(); err != nil {
		s.diag("%s: %v", name, err)
	}
}

func (s *Source) diag(format string, args ...any) {
	fmt.Fprintf(s.opts.Diag, "fzgrep: "+format+"\n", args...)
}

// depth counts path separators between root and path.
func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
