package tag

import "sort"

// Candidate is one entry a Selector ranks: a module id, its tag, and its
// current regulator bias (0 when an unregulated match is requested).
type Candidate struct {
	ID        uint64
	Tag       Tag
	Regulator float64
}

// Selector orders a set of candidates against a query tag and returns up
// to n ids, best match first, ties broken by ascending id (§4.A).
type Selector interface {
	Select(metric Metric, query Tag, candidates []Candidate, n int) []uint64
}

// NearestSelector is the default selector: regulated score is
// metric.Distance(query, candidate.Tag) + candidate.Regulator (larger
// regulator pushes the candidate further away, per §4.A's contract),
// sorted ascending, ties broken by ascending id.
type NearestSelector struct{}

// Select implements Selector.
func (NearestSelector) Select(metric Metric, query Tag, candidates []Candidate, n int) []uint64 {
	if n <= 0 || len(candidates) == 0 {
		return nil
	}
	type scored struct {
		id    uint64
		score float64
	}
	scratch := make([]scored, len(candidates))
	for i, c := range candidates {
		scratch[i] = scored{id: c.ID, score: metric.Distance(query, c.Tag) + c.Regulator}
	}
	sort.Slice(scratch, func(i, j int) bool {
		if scratch[i].score != scratch[j].score {
			return scratch[i].score < scratch[j].score
		}
		return scratch[i].id < scratch[j].id
	})
	if n > len(scratch) {
		n = len(scratch)
	}
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		out[i] = scratch[i].id
	}
	return out
}
