package operators

import (
	"github.com/battlesnake/cvrp/internal/solution"
	"github.com/battlesnake/cvrp/internal/trip"
)

// Crossover mutates sol in place by exchanging subranges between two of
// its trips, per the spec's tail-swap / tail-head-swap variants.
//
// The two crossover subjects are drawn uniformly from indices [1, T-1]
// (zero-based; the first trip never participates) and must be distinct.
// That range only contains two or more distinct values when T >= 3; for
// T < 3 there is no way to choose distinct subjects, so Crossover is a
// no-op. (The original implementation this is ported from would spin
// forever redrawing a single forced value in that case; declining to mate
// is the literal, non-hanging resolution of that same precondition.)
func Crossover(sol *solution.Solution, rng *RNG) error {
	trips := sol.Trips()
	T := len(trips)
	if T < 3 {
		return recomputeAll(trips)
	}

	a := 1 + rng.Intn(T-1)
	b := 1 + rng.Intn(T-1)
	for b == a {
		b = 1 + rng.Intn(T-1)
	}

	tripA, tripB := trips[a], trips[b]
	m := tripA.Size()
	if tripB.Size() < m {
		m = tripB.Size()
	}

	if m >= 2 {
		p := 1 + rng.Intn(m-1)
		seqA, seqB := tripA.Sequence(), tripB.Sequence()
		var newA, newB []int
		if rng.Float64() < 0.5 {
			newA, newB = splitAndCascade(seqA, seqB, p)
		} else {
			newA, newB = splitAndFlipCascade(seqA, seqB, p)
		}
		tripA.SetSequence(newA)
		tripB.SetSequence(newB)
	}

	return recomputeAll(trips)
}

func recomputeAll(trips []*trip.Trip) error {
	for _, t := range trips {
		if err := t.Recompute(); err != nil {
			return err
		}
	}
	return nil
}

// splitAndCascade implements the tail-swap variant: the suffixes a[p:] and
// b[p:] trade places.
func splitAndCascade(a, b []int, p int) (newA, newB []int) {
	newA = make([]int, 0, p+len(b)-p)
	newA = append(newA, a[:p]...)
	newA = append(newA, b[p:]...)

	newB = make([]int, 0, p+len(a)-p)
	newB = append(newB, b[:p]...)
	newB = append(newB, a[p:]...)

	return newA, newB
}

// splitAndFlipCascade implements the tail-head-swap variant: the suffix
// of a (from p onward) is paired with the prefix of b (up to p), while
// what remains of b is appended with what was removed from a. This is
// intentionally asymmetric (tail of A meets head of B, not the reverse);
// preserve it literally.
func splitAndFlipCascade(a, b []int, p int) (newA, newB []int) {
	newA = make([]int, 0, p+p)
	newA = append(newA, a[:p]...)
	newA = append(newA, b[:p]...)

	newB = make([]int, 0, len(b)-p+len(a)-p)
	newB = append(newB, b[p:]...)
	newB = append(newB, a[p:]...)

	return newA, newB
}
