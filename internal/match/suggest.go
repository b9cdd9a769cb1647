package match

import (
	"sort"
)

// DefaultMinScore is the similarity floor below which a candidate is not
// worth suggesting.
const DefaultMinScore = 0.6

// Candidate is a known name scored against the name being looked up.
type Candidate struct {
	Name  string
	Score float64
}

// CandidateList is sorted by score, best first.
type CandidateList []Candidate

// Rank scores every candidate against name. Ties are broken by name so the
// order is deterministic.
func Rank(name string, candidates []string) CandidateList {
	norm := NormalizeIdent(name)

	list := make(CandidateList, 0, len(candidates))
	for _, c := range candidates {
		if c == name {
			continue
		}

		list = append(list, Candidate{Name: c, Score: Similarity(norm, NormalizeIdent(c))})
	}

	sort.Sort(list)

	return list
}

// Suggest returns up to n candidate names scoring at least DefaultMinScore.
func Suggest(name string, candidates []string, n int) []string {
	var out []string

	for _, c := range Rank(name, candidates).AboveThreshold(DefaultMinScore).Top(n) {
		out = append(out, c.Name)
	}

	return out
}

func (c CandidateList) Len() int      { return len(c) }
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns the first n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n < 0 || n >= len(c) {
		return c
	}

	return c[:n]
}

// AboveThreshold keeps candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var out CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			out = append(out, cand)
		}
	}

	return out
}
