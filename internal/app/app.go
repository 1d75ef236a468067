// Package app wires the run together: candidate source, match
// pipeline, ranker and presenter, in that order, as one linear pass.
package app

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/flavono123/fzgrep/internal/cli"
	"github.com/flavono123/fzgrep/internal/picker"
	"github.com/flavono123/fzgrep/internal/pipeline"
	"github.com/flavono123/fzgrep/internal/render"
	"github.com/flavono123/fzgrep/internal/scorer"
	"github.com/flavono123/fzgrep/internal/source"
)

// App runs one search request.
type App struct {
	req    *cli.Request
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *log.Logger
}

func New(req *cli.Request) *App {
	return &App{
		req:    req,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: log.New(os.Stderr, "", 0),
	}
}

// WithStreams overrides the standard streams, for tests.
func (a *App) WithStreams(stdin io.Reader, stdout, stderr io.Writer) *App {
	a.stdin = stdin
	a.stdout = stdout
	a.stderr = stderr
	a.logger = log.New(stderr, "", 0)
	return a
}

// Run executes the request. Any returned error is fatal; per-item
// failures have already been reported to stderr by the source.
func (a *App) Run() error {
	req := a.req

	if req.Verbosity >= 1 {
		a.logger.Printf("fzgrep: query=%q targets=%v invert=%v top=%d",
			req.Query, req.Targets, req.Invert, req.Top)
	}

	renderer, err := a.renderer()
	if err != nil {
		return err
	}

	src, err := source.New(source.Options{
		Targets:   req.Targets,
		Recursive: req.Recursive,
		MaxDepth:  req.MaxDepth,
		Include:   req.Include,
		Exclude:   req.Exclude,
		Names:     req.Names,
		Stdin:     a.stdin,
		Diag:      a.stderr,
	})
	if err != nil {
		return err
	}

	if req.Interactive {
		return a.runInteractive(src)
	}

	sc := scorer.New(req.Query, req.CaseSensitive)
	pipe := pipeline.New(sc.Score, pipeline.Options{
		Invert: req.Invert,
		Before: req.Before,
		After:  req.After,
	})

	if err := src.Scan(pipe.Feed); err != nil {
		return err
	}

	matches := pipeline.Rank(pipe.Results(), req.Top)
	if req.Verbosity >= 2 {
		a.logger.Printf("fzgrep: %d match(es)", len(matches))
	}
	if req.Quiet {
		return nil
	}

	for _, m := range matches {
		fmt.Fprintln(a.stdout, renderer.Result(m))
	}
	return nil
}

// runInteractive collects the candidates and hands them to the
// terminal picker; the accepted line goes to stdout.
func (a *App) runInteractive(src *source.Source) error {
	var items []source.Candidate
	if err := src.Scan(func(c source.Candidate) {
		items = append(items, c)
	}); err != nil {
		return err
	}

	chosen, picked, err := picker.Run(a.req.Query, items)
	if err != nil {
		return err
	}
	if picked {
		fmt.Fprintln(a.stdout, chosen.Text)
	}
	return nil
}

// renderer resolves color support and style overrides up front so an
// invalid override aborts before any output is produced.
func (a *App) renderer() (*render.Renderer, error) {
	color := a.req.Color.Enabled(a.stdout)

	lr := lipgloss.NewRenderer(a.stdout)
	if color && lr.ColorProfile() == termenv.Ascii {
		// --color=always on a non-terminal still needs escape codes
		lr.SetColorProfile(termenv.ANSI)
	}

	styles := render.DefaultStyles(lr)
	if a.req.ColorOverrides != "" {
		parsed, err := render.ParseOverrides(lr, a.req.ColorOverrides, styles)
		if err != nil {
			return nil, err
		}
		styles = parsed
	}

	return render.New(render.Options{
		ShowName: a.req.FileName,
		ShowLine: a.req.LineNumber,
		Color:    color,
		Styles:   styles,
	}), nil
}
