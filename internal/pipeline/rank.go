package pipeline

import "sort"

// Rank orders matches by the total order that makes output
// deterministic: score descending, then origin path ascending (stdin
// sorts first), then line number ascending. When top is positive only
// the first top matches of the fully ordered sequence are kept, so a
// limited run is always a prefix of the unlimited one.
func Rank(matches []Match, top int) []Match {
	sort.Slice(matches, func(i, j int) bool {
		return less(matches[i], matches[j])
	})
	if top > 0 && top < len(matches) {
		matches = matches[:top]
	}
	return matches
}

func less(a, b Match) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Origin.Path != b.Origin.Path {
		return a.Origin.Path < b.Origin.Path
	}
	return a.Origin.Line < b.Origin.Line
}
