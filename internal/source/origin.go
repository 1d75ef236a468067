package source

// stdinName is how the standard input is identified in output,
// following the grep convention.
const stdinName = "(standard input)"

// Origin identifies where a candidate came from: a file path plus a
// 1-based line number, or the standard input. Path is empty for
// stdin; Line is zero when the candidate is a file name rather than a
// content line.
type Origin struct {
	Path string
	Line int
}

// Name returns the displayable source name.
func (o Origin) Name() string {
	if o.Path == "" {
		return stdinName
	}
	return o.Path
}

// Candidate is one unit of text eligible for matching: a content line
// or a file name. Immutable once produced.
type Candidate struct {
	Origin Origin
	Text   string
}
