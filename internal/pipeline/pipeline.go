// Package pipeline accumulates scored matches from the candidate
// stream and orders them deterministically. Candidates flow in one at
// a time and are disposable immediately after scoring; only matches
// (plus their requested context lines) are retained.
package pipeline

import (
	"github.com/flavono123/fzgrep/internal/scorer"
	"github.com/flavono123/fzgrep/internal/source"
)

// Match is a successfully scored candidate together with everything
// the presenter needs: origin, text, score, matched positions and the
// surrounding context lines. Never mutated after the scan completes.
type Match struct {
	Origin    source.Origin
	Text      string
	Score     int
	Positions []int
	Before    []string
	After     []string
}

// Options controls match selection.
type Options struct {
	// Invert keeps only candidates that do NOT match, with a synthetic
	// zero score so ordering falls through to the path/line tie-break.
	Invert bool

	// Before and After are the number of surrounding context lines to
	// capture per match.
	Before int
	After  int
}

// ScoreFunc is the scoring capability consumed by the pipeline.
type ScoreFunc func(text string) (scorer.Match, bool)

// Pipeline feeds candidates through the scorer and accumulates
// matches. It is not safe for concurrent use; the scan is a single
// linear pass.
type Pipeline struct {
	score   ScoreFunc
	opts    Options
	matches []Match

	// sliding window of preceding lines within the current source
	window []string
	// indices of matches still collecting trailing context
	open    []int
	path    string
	started bool
}

func New(score ScoreFunc, opts Options) *Pipeline {
	return &Pipeline{score: score, opts: opts}
}

// Feed processes one candidate. Candidates must arrive in source
// order: line numbers ascending within a file, files contiguous.
func (p *Pipeline) Feed(c source.Candidate) {
	if !p.started || c.Origin.Path != p.path {
		p.window = p.window[:0]
		p.open = p.open[:0]
		p.path = c.Origin.Path
		p.started = true
	}

	for i := 0; i < len(p.open); {
		idx := p.open[i]
		p.matches[idx].After = append(p.matches[idx].After, c.Text)
		if len(p.matches[idx].After) >= p.opts.After {
			p.open = append(p.open[:i], p.open[i+1:]...)
			continue
		}
		i++
	}

	m, ok := p.score(c.Text)
	if keep := ok != p.opts.Invert; keep {
		match := Match{
			Origin: c.Origin,
			Text:   c.Text,
		}
		if ok {
			match.Score = m.Score
			match.Positions = m.Positions
		}
		if p.opts.Before > 0 && len(p.window) > 0 {
			match.Before = append([]string(nil), p.window...)
		}
		p.matches = append(p.matches, match)
		if p.opts.After > 0 {
			p.open = append(p.open, len(p.matches)-1)
		}
	}

	if p.opts.Before > 0 {
		if len(p.window) == p.opts.Before {
			copy(p.window, p.window[1:])
			p.window = p.window[:len(p.window)-1]
		}
		p.window = append(p.window, c.Text)
	}
}

// Results hands off the accumulated matches by move: the pipeline
// gives up ownership and is left empty.
func (p *Pipeline) Results() []Match {
	out := p.matches
	p.matches = nil
	p.open = nil
	return out
}
