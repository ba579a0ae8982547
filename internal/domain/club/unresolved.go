package club

import (
	"sort"

	"github.com/football-archive/pipeline/internal/platform/textnorm"
)

type pairKey struct {
	league string
	club   string
}

// UnresolvedSet collects (league, club) pairs that failed to resolve so they
// can be reviewed by hand after the batch.
type UnresolvedSet struct {
	counts map[pairKey]int
}

func NewUnresolvedSet() *UnresolvedSet {
	return &UnresolvedSet{counts: make(map[pairKey]int)}
}

func (s *UnresolvedSet) Add(league, club string) {
	key := pairKey{league: textnorm.Text(league), club: textnorm.Text(club)}
	if key.club == "" {
		return
	}
	s.counts[key]++
}

// Merge adds every pair of other into s.
func (s *UnresolvedSet) Merge(other *UnresolvedSet) {
	if other == nil {
		return
	}
	for key, count := range other.counts {
		s.counts[key] += count
	}
}

func (s *UnresolvedSet) Len() int {
	return len(s.counts)
}

// Pairs returns the pairs sorted by league then club.
func (s *UnresolvedSet) Pairs() []UnresolvedPair {
	out := make([]UnresolvedPair, 0, len(s.counts))
	for key, count := range s.counts {
		out = append(out, UnresolvedPair{League: key.league, Club: key.club, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].League != out[j].League {
			return out[i].League < out[j].League
		}
		return out[i].Club < out[j].Club
	})
	return out
}
