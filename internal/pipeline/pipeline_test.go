package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/flavono123/fzgrep/internal/pipeline"
	"github.com/flavono123/fzgrep/internal/scorer"
	"github.com/flavono123/fzgrep/internal/source"
)

func feedAll(p *pipeline.Pipeline, cands []source.Candidate) {
	for _, c := range cands {
		p.Feed(c)
	}
}

func fileLines(path string, lines ...string) []source.Candidate {
	cands := make([]source.Candidate, 0, len(lines))
	for i, line := range lines {
		cands = append(cands, source.Candidate{
			Origin: source.Origin{Path: path, Line: i + 1},
			Text:   line,
		})
	}
	return cands
}

var _ = Describe("Pipeline", func() {
	score := func(query string) pipeline.ScoreFunc {
		return scorer.New(query, false).Score
	}

	It("discards candidates that do not match", func() {
		p := pipeline.New(score("fzg"), pipeline.Options{})
		feedAll(p, fileLines("a.txt", "fzgrep.rs", "frozen.rs", "zap.rs"))

		results := p.Results()
		Expect(results).To(HaveLen(1))
		Expect(results[0].Text).To(Equal("fzgrep.rs"))
		Expect(results[0].Origin).To(Equal(source.Origin{Path: "a.txt", Line: 1}))
	})

	It("hands results off by move", func() {
		p := pipeline.New(score("a"), pipeline.Options{})
		feedAll(p, fileLines("a.txt", "aaa"))

		Expect(p.Results()).To(HaveLen(1))
		Expect(p.Results()).To(BeEmpty())
	})

	It("matches every candidate on an empty query", func() {
		p := pipeline.New(score(""), pipeline.Options{})
		feedAll(p, fileLines("a.txt", "one", "two"))

		results := p.Results()
		Expect(results).To(HaveLen(2))
		for _, r := range results {
			Expect(r.Score).To(BeZero())
			Expect(r.Positions).To(BeEmpty())
		}
	})

	Describe("invert mode", func() {
		It("keeps only non-matching candidates with a synthetic score", func() {
			p := pipeline.New(score("xyz"), pipeline.Options{Invert: true})
			feedAll(p, fileLines("a.txt", "one", "two", "three"))

			results := p.Results()
			Expect(results).To(HaveLen(3))
			for _, r := range results {
				Expect(r.Score).To(BeZero())
				Expect(r.Positions).To(BeEmpty())
			}
		})

		It("drops candidates that do match", func() {
			p := pipeline.New(score("fzg"), pipeline.Options{Invert: true})
			feedAll(p, fileLines("a.txt", "fzgrep.rs", "frozen.rs"))

			results := p.Results()
			Expect(results).To(HaveLen(1))
			Expect(results[0].Text).To(Equal("frozen.rs"))
		})
	})

	Describe("context accumulation", func() {
		It("captures lines before the match", func() {
			p := pipeline.New(score("needle"), pipeline.Options{Before: 2})
			feedAll(p, fileLines("a.txt", "one", "two", "needle", "four"))

			results := p.Results()
			Expect(results).To(HaveLen(1))
			Expect(results[0].Before).To(Equal([]string{"one", "two"}))
		})

		It("captures lines after the match", func() {
			p := pipeline.New(score("needle"), pipeline.Options{After: 2})
			feedAll(p, fileLines("a.txt", "needle", "two", "three", "four"))

			results := p.Results()
			Expect(results).To(HaveLen(1))
			Expect(results[0].After).To(Equal([]string{"two", "three"}))
		})

		It("truncates context at source boundaries", func() {
			p := pipeline.New(score("needle"), pipeline.Options{Before: 3, After: 3})
			cands := append(
				fileLines("a.txt", "above", "needle"),
				fileLines("b.txt", "needle b", "below")...,
			)
			feedAll(p, cands)

			results := p.Results()
			Expect(results).To(HaveLen(2))
			Expect(results[0].Before).To(Equal([]string{"above"}))
			Expect(results[0].After).To(BeEmpty())
			Expect(results[1].Before).To(BeEmpty())
			Expect(results[1].After).To(Equal([]string{"below"}))
		})
	})
})

var _ = Describe("Rank", func() {
	mk := func(score int, path string, line int) pipeline.Match {
		return pipeline.Match{
			Origin: source.Origin{Path: path, Line: line},
			Score:  score,
		}
	}

	It("orders by score descending", func() {
		ranked := pipeline.Rank([]pipeline.Match{
			mk(1, "a", 1), mk(9, "b", 1), mk(5, "c", 1),
		}, 0)

		Expect(ranked[0].Score).To(Equal(9))
		Expect(ranked[1].Score).To(Equal(5))
		Expect(ranked[2].Score).To(Equal(1))
	})

	It("breaks score ties by path, then line number", func() {
		ranked := pipeline.Rank([]pipeline.Match{
			mk(3, "b.txt", 1),
			mk(3, "a.txt", 9),
			mk(3, "a.txt", 2),
		}, 0)

		Expect(ranked[0].Origin).To(Equal(source.Origin{Path: "a.txt", Line: 2}))
		Expect(ranked[1].Origin).To(Equal(source.Origin{Path: "a.txt", Line: 9}))
		Expect(ranked[2].Origin).To(Equal(source.Origin{Path: "b.txt", Line: 1}))
	})

	It("sorts stdin before any file on ties", func() {
		ranked := pipeline.Rank([]pipeline.Match{
			mk(3, "a.txt", 1),
			mk(3, "", 7),
		}, 0)

		Expect(ranked[0].Origin.Path).To(BeEmpty())
	})

	It("is a deterministic function of its input", func() {
		input := func() []pipeline.Match {
			return []pipeline.Match{
				mk(2, "b", 3), mk(2, "a", 1), mk(7, "c", 2), mk(2, "a", 5),
			}
		}
		Expect(pipeline.Rank(input(), 0)).To(Equal(pipeline.Rank(input(), 0)))
	})

	It("applies the limit as a prefix of the full ordering", func() {
		input := func() []pipeline.Match {
			return []pipeline.Match{
				mk(2, "b", 3), mk(2, "a", 1), mk(7, "c", 2), mk(4, "a", 5), mk(1, "d", 1),
			}
		}

		full := pipeline.Rank(input(), 0)
		for n := 1; n <= len(full); n++ {
			Expect(pipeline.Rank(input(), n)).To(Equal(full[:n]))
		}
	})

	It("ignores a limit larger than the result count", func() {
		ranked := pipeline.Rank([]pipeline.Match{mk(1, "a", 1)}, 100)
		Expect(ranked).To(HaveLen(1))
	})
})
