package source

import (
	"fmt"

	"github.com/zyedidia/glob"
)

// Filter decides which file paths take part in the search based on
// include and exclude glob patterns. A path passes when it matches at
// least one include pattern (or there are none) and no exclude
// pattern. Patterns are matched against both the full path and the
// base name, so `--include '*.go'` works at any depth.
type Filter struct {
	include []*glob.Glob
	exclude []*glob.Glob
}

// NewFilter compiles the glob patterns. A malformed pattern is a
// fatal configuration error.
func NewFilter(include, exclude []string) (*Filter, error) {
	f := &Filter{}
	for _, pattern := range include {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		f.include = append(f.include, g)
	}
	for _, pattern := range exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		f.exclude = append(f.exclude, g)
	}
	return f, nil
}

// Match reports whether path (with base name base) passes the filter.
func (f *Filter) Match(path, base string) bool {
	if len(f.include) > 0 {
		ok := false
		for _, g := range f.include {
			if g.MatchString(path) || g.MatchString(base) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	for _, g := range f.exclude {
		if g.MatchString(path) || g.MatchString(base) {
			return false
		}
	}
	return true
}
