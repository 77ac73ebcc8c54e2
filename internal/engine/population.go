package engine

import (
	"math"
	"sort"
	"sync"

	"github.com/battlesnake/cvrp/internal/solution"
)

// scored pairs a Solution with its already-computed cost, so the hot
// per-generation comparison path never recomputes it.
type scored struct {
	sol  *solution.Solution
	cost float64
}

func score(sol *solution.Solution) scored {
	return scored{sol: sol, cost: sol.Cost()}
}

// less orders scored solutions by cost ascending, breaking ties by the
// solution ordering, mirroring the original's CostedSolution::operator<.
func (s scored) less(other scored) bool {
	if s.cost != other.cost {
		return s.cost < other.cost
	}
	return s.sol.Less(other.sol)
}

// population is a deduplicating, cost-ordered, capacity-bounded set of
// Solutions. It backs both the persistent generation population and the
// transient per-generation offspring set G; both need the same "insert,
// evicting the worst member when full" behavior, just with different
// inputs and different emptiness semantics.
//
// The mutex makes Insert safe to call concurrently from mutation workers;
// the critical section is a single sorted-slice insert, bounded by
// O(log n) comparisons plus an O(n) shift, which is the brief region §5
// calls for.
type population struct {
	mu      sync.Mutex
	cap     int
	members []scored
	byHash  map[uint64][]*solution.Solution
}

func newPopulation(capacity int) *population {
	return &population{
		cap:    capacity,
		byHash: make(map[uint64][]*solution.Solution),
	}
}

// Insert attempts to add sol to the population. It returns false if sol is
// a duplicate of an existing member (by trip-sequence equality), or if the
// population is already at capacity and sol is not strictly better than
// the current worst member.
func (p *population) Insert(sol *solution.Solution) bool {
	s := score(sol)
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.insertLocked(s)
}

func (p *population) insertLocked(s scored) bool {
	h := s.sol.Hash()
	for _, existing := range p.byHash[h] {
		if existing.Equal(s.sol) {
			return false
		}
	}

	if len(p.members) >= p.cap {
		worst := p.members[len(p.members)-1]
		if !s.less(worst) {
			return false
		}
		p.removeHash(worst.sol)
		p.members = p.members[:len(p.members)-1]
	}

	idx := sort.Search(len(p.members), func(i int) bool {
		return s.less(p.members[i])
	})
	p.members = append(p.members, scored{})
	copy(p.members[idx+1:], p.members[idx:])
	p.members[idx] = s

	p.byHash[h] = append(p.byHash[h], s.sol)
	return true
}

func (p *population) removeHash(sol *solution.Solution) {
	h := sol.Hash()
	bucket := p.byHash[h]
	for i, s := range bucket {
		if s == sol {
			p.byHash[h] = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
}

// Len returns the number of members currently held.
func (p *population) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.members)
}

// Best returns the lowest cost among members, or +Inf if empty.
func (p *population) Best() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.members) == 0 {
		return math.Inf(1)
	}
	return p.members[0].cost
}

// Worst returns the highest cost among members, or +Inf if empty.
func (p *population) Worst() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.members) == 0 {
		return math.Inf(1)
	}
	return p.members[len(p.members)-1].cost
}

// Costs returns the cost of every member, in the same cost-ascending order
// as View. Used to summarize a generation's cost distribution for
// progress reporting.
func (p *population) Costs() []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]float64, len(p.members))
	for i, s := range p.members {
		out[i] = s.cost
	}
	return out
}

// View returns a contiguous, indexable snapshot of the current members, in
// cost-ascending order. The population itself is not directly indexable
// (members live behind the mutex), so the engine materializes this view
// once per generation to hand out read-only work items to parallel
// workers.
func (p *population) View() []*solution.Solution {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*solution.Solution, len(p.members))
	for i, s := range p.members {
		out[i] = s.sol
	}
	return out
}
