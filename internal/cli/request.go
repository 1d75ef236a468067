// Package cli turns command line arguments and persisted defaults
// into a run request. Parsing failures are fatal configuration
// errors; nothing is printed to stdout before parsing succeeds.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/flavono123/fzgrep/internal/config"
	"github.com/flavono123/fzgrep/internal/render"
)

// Exit codes. Success covers every normal completion, matches found
// or not; Failure is reserved for fatal configuration and input
// errors.
const (
	ExitSuccess = 0
	ExitFailure = 2
)

// ErrHelp is returned when the user asked for usage; the caller
// should exit successfully without running a search.
var ErrHelp = pflag.ErrHelp

// Request is the full run configuration.
type Request struct {
	Query   string
	Targets []string

	Recursive bool
	MaxDepth  int
	Include   []string
	Exclude   []string
	Names     bool

	CaseSensitive bool
	Invert        bool
	Top           int
	Before        int
	After         int

	LineNumber bool
	FileName   bool
	Quiet      bool
	Verbosity  int

	Color          render.ColorMode
	ColorOverrides string

	Interactive bool
}

// Parse builds a Request from args (without the program name),
// layering flags over the persisted defaults in cfg.
func Parse(args []string, cfg config.Config) (*Request, error) {
	fs := pflag.NewFlagSet("fzgrep", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: fzgrep [OPTION]... PATTERN [TARGET]...\n")
		fmt.Fprint(os.Stderr, "Fuzzy-search PATTERN in each TARGET, best matches first.\n\n")
		fmt.Fprint(os.Stderr, fs.FlagUsages())
		fmt.Fprint(os.Stderr, "\nWith no TARGET, search the standard input; with --recursive, the current directory.\nWith more than one TARGET, assume -f.\n")
	}

	recursive := fs.BoolP("recursive", "r", false, "recurse into directory targets")
	maxDepth := fs.Int("max-depth", -1, "descend at most NUM directory levels")
	include := fs.StringArray("include", nil, "search only files matching GLOB")
	exclude := fs.StringArray("exclude", nil, "skip files matching GLOB")
	names := fs.Bool("names", false, "match file names instead of file contents")

	caseSensitive := fs.BoolP("case-sensitive", "s", false, "match case exactly (default: ignore case)")
	invert := fs.Bool("invert-match", false, "select candidates that do not match")
	top := fs.Int("top", 0, "print only the NUM best matches")
	context := fs.IntP("context", "C", 0, "print NUM lines of surrounding context")
	before := fs.IntP("before-context", "B", 0, "print NUM lines of leading context")
	after := fs.IntP("after-context", "A", 0, "print NUM lines of trailing context")

	lineNumber := fs.BoolP("line-number", "n", false, "print line numbers with matching lines")
	fs.BoolP("with-filename", "f", false, "print the file name with output lines")
	fs.BoolP("no-filename", "F", false, "suppress the file name prefix on output")
	quiet := fs.BoolP("quiet", "q", false, "suppress all normal output")
	verbose := fs.CountP("verbose", "v", "increase log verbosity; may be repeated")

	color := fs.String("color", "auto", "colorize output: always, auto or never")
	colorOverrides := fs.String("color-overrides", "", "grep-style capability list, e.g. 'ms=01;31:fn=35'")
	interactive := fs.Bool("interactive", false, "pick matches in an interactive terminal UI")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	positional := fs.Args()
	if len(positional) == 0 {
		return nil, errors.New("missing PATTERN argument")
	}

	req := &Request{
		Query:          positional[0],
		Targets:        positional[1:],
		Recursive:      *recursive,
		MaxDepth:       *maxDepth,
		Include:        *include,
		Exclude:        *exclude,
		Names:          *names,
		CaseSensitive:  *caseSensitive,
		Invert:         *invert,
		Top:            *top,
		Before:         *before,
		After:          *after,
		LineNumber:     *lineNumber,
		Quiet:          *quiet,
		Verbosity:      *verbose,
		ColorOverrides: *colorOverrides,
		Interactive:    *interactive,
	}

	if len(req.Targets) == 0 && req.Recursive {
		req.Targets = []string{"."}
	}

	if fs.Changed("context") {
		if fs.Changed("before-context") || fs.Changed("after-context") {
			return nil, errors.New("--context conflicts with --before-context/--after-context")
		}
		req.Before, req.After = *context, *context
	}

	if err := validate(req, fs); err != nil {
		return nil, err
	}

	req.FileName = trackFileName(req, fs)

	if !fs.Changed("top") && cfg.Top > 0 {
		req.Top = cfg.Top
	}
	if req.ColorOverrides == "" {
		req.ColorOverrides = cfg.ColorOverrides
	}
	when := *color
	if !fs.Changed("color") && cfg.Color != "" {
		when = cfg.Color
	}
	mode, err := colorMode(when)
	if err != nil {
		return nil, err
	}
	req.Color = mode

	return req, nil
}

func validate(req *Request, fs *pflag.FlagSet) error {
	if fs.Changed("with-filename") && fs.Changed("no-filename") {
		return errors.New("--with-filename conflicts with --no-filename")
	}
	if fs.Changed("top") && req.Top < 1 {
		return errors.New("--top must be at least 1")
	}
	if req.Before < 0 || req.After < 0 {
		return errors.New("context sizes cannot be negative")
	}
	if req.Names && len(req.Targets) == 0 {
		return errors.New("--names requires file or directory targets")
	}
	if req.Interactive && req.Quiet {
		return errors.New("--interactive conflicts with --quiet")
	}
	return nil
}

// trackFileName resolves the file name prefix default: explicit flags
// win; otherwise it is shown when the run can span several files.
func trackFileName(req *Request, fs *pflag.FlagSet) bool {
	if fs.Changed("with-filename") {
		return true
	}
	if fs.Changed("no-filename") {
		return false
	}
	if req.Names {
		return false
	}
	return len(req.Targets) > 1 || req.Recursive
}

func colorMode(when string) (render.ColorMode, error) {
	switch when {
	case "always":
		return render.ColorAlways, nil
	case "auto":
		return render.ColorAuto, nil
	case "never":
		return render.ColorNever, nil
	default:
		return render.ColorAuto, fmt.Errorf("invalid --color value %q", when)
	}
}
