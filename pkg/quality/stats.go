package quality

import (
	"maps"
	"slices"
)

// Stats accumulates the counters of one harvest session. It is
// single-writer, process-local state owned by the session; concurrent
// sessions each get their own Stats.
type Stats struct {
	// Processed counts every raw record examined by the gate.
	Processed int
	// Accepted counts records that passed the gate, normalized
	// cleanly, and were not duplicates.
	Accepted int
	// Duplicates counts records rejected by the fingerprint set.
	Duplicates int
	// ProcessingErrors counts records that passed the gate but could
	// not be normalized.
	ProcessingErrors int

	// PagesFetched counts successfully retrieved pages.
	PagesFetched int
	// PagesLost counts pages skipped after all retries failed.
	PagesLost int

	// Rejections maps rejection reason to a running count.
	Rejections map[Reason]int
}

// NewStats returns zeroed statistics for a fresh session.
func NewStats() *Stats {
	return &Stats{Rejections: make(map[Reason]int)}
}

// Reject increments the counter of the given rejection reason.
func (s *Stats) Reject(r Reason) {
	s.Rejections[r]++
}

// Rejected returns the total number of gate rejections.
func (s *Stats) Rejected() int {
	var res int
	for _, n := range s.Rejections {
		res += n
	}
	return res
}

// AcceptanceRate returns accepted/processed as a fraction in [0,1].
// A session with no processed records has a rate of 0.
func (s *Stats) AcceptanceRate() float64 {
	if s.Processed == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Processed)
}

// Reasons returns the rejection reasons sorted by descending count,
// ties broken alphabetically, for stable report output.
func (s *Stats) Reasons() []Reason {
	res := slices.Collect(maps.Keys(s.Rejections))
	slices.SortFunc(res, func(a, b Reason) int {
		if d := s.Rejections[b] - s.Rejections[a]; d != 0 {
			return d
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})
	return res
}
