// Package scorer adapts the fuzzy matching algorithm behind a stable
// interface. The rest of the program never touches the algorithm
// directly, so it can be swapped without redesigning the pipeline.
package scorer

import (
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/unicode/norm"
)

// Match holds the outcome of scoring a single candidate: a quality
// score (higher is better) and the rune indices of the candidate text
// that satisfied the query, in strictly increasing order.
type Match struct {
	Score     int
	Positions []int
}

// Scorer scores candidate texts against a fixed query.
type Scorer struct {
	query         []rune
	pattern       string
	caseSensitive bool
}

// New builds a Scorer for query. The query is NFC-normalized so that
// input typed in a terminal matches file content regardless of the
// unicode composition form. Matching is case-insensitive unless
// caseSensitive is set.
func New(query string, caseSensitive bool) *Scorer {
	pattern := norm.NFC.String(query)
	return &Scorer{
		query:         []rune(pattern),
		pattern:       pattern,
		caseSensitive: caseSensitive,
	}
}

// Score matches text against the query. It reports ok=false when the
// query characters do not appear, in order, within text. An empty
// query matches everything with the minimal score and no positions.
func (s *Scorer) Score(text string) (Match, bool) {
	if len(s.query) == 0 {
		return Match{}, true
	}

	found := fuzzy.Find(s.pattern, []string{text})
	if len(found) == 0 {
		return Match{}, false
	}

	m := found[0]
	positions, ok := runePositions(m.MatchedIndexes, text)
	if !ok {
		return Match{}, false
	}
	if s.caseSensitive && !s.exactCase(positions, text) {
		positions = s.exactPositions(text)
		if positions == nil {
			return Match{}, false
		}
	}

	return Match{Score: m.Score, Positions: positions}, true
}

// exactCase reports whether the candidate runes at the matched
// positions equal the query runes without case folding.
func (s *Scorer) exactCase(positions []int, text string) bool {
	runes := []rune(text)
	if len(positions) != len(s.query) {
		return false
	}
	for i, pos := range positions {
		if runes[pos] != s.query[i] {
			return false
		}
	}
	return true
}

// exactPositions finds the leftmost exact-case subsequence of the
// query in text. The folded matcher can settle on differently-cased
// runes even when an exact-case subsequence exists elsewhere, so a
// failed exactCase check is not yet a miss.
func (s *Scorer) exactPositions(text string) []int {
	positions := make([]int, 0, len(s.query))
	next := 0
	for i, r := range []rune(text) {
		if next == len(s.query) {
			break
		}
		if r == s.query[next] {
			positions = append(positions, i)
			next++
		}
	}
	if next < len(s.query) {
		return nil
	}
	return positions
}

// runePositions converts the matcher's matched indices, which are
// byte offsets into text, to rune indices. Offsets that do not land
// on a rune boundary or do not increase strictly are treated as no
// match.
func runePositions(offsets []int, text string) ([]int, bool) {
	byteToRune := make(map[int]int, len(text))
	n := 0
	for i := range text {
		byteToRune[i] = n
		n++
	}

	positions := make([]int, 0, len(offsets))
	prev := -1
	for _, off := range offsets {
		pos, ok := byteToRune[off]
		if !ok || pos <= prev {
			return nil, false
		}
		positions = append(positions, pos)
		prev = pos
	}
	return positions, true
}
