// Package trip models a single vehicle's ordered client visit sequence: its
// aggregate demand, its route cost, and the nearest-neighbor local reorder
// that sharpens both whenever the sequence changes.
package trip

import (
	"fmt"
	"strings"

	"github.com/battlesnake/cvrp/internal/instance"
)

// Trip is one vehicle's route: an ordered sequence of client ids, bound to
// the Instance it was built against.
type Trip struct {
	inst     *instance.Instance
	sequence []int
	demand   int
	cost     float64
}

// New returns an empty trip bound to inst.
func New(inst *instance.Instance) *Trip {
	return &Trip{inst: inst}
}

// CanAccommodate reports whether adding id would keep demand within the
// instance's vehicle capacity.
func (t *Trip) CanAccommodate(id int) (bool, error) {
	d, err := t.inst.ClientDemand(id)
	if err != nil {
		return false, err
	}
	return t.demand+d <= t.inst.Capacity(), nil
}

// Append pushes id onto the tail of the sequence and folds its demand into
// demand_covered. It does not touch cost; call Recompute when done
// appending.
func (t *Trip) Append(id int) error {
	d, err := t.inst.ClientDemand(id)
	if err != nil {
		return err
	}
	t.sequence = append(t.sequence, id)
	t.demand += d
	return nil
}

// Sequence returns the trip's client ids, in visiting order. Callers must
// not retain the returned slice across a call to SetSequence or Recompute.
func (t *Trip) Sequence() []int {
	return t.sequence
}

// SetSequence wholesale-replaces the trip's sequence, as crossover does. It
// does not recompute demand or cost; call Recompute afterward.
func (t *Trip) SetSequence(seq []int) {
	t.sequence = seq
}

// DemandCovered returns the trip's current aggregate demand.
func (t *Trip) DemandCovered() int {
	return t.demand
}

// Cost returns the trip's current route cost.
func (t *Trip) Cost() float64 {
	return t.cost
}

// Size returns the number of clients on the trip.
func (t *Trip) Size() int {
	return len(t.sequence)
}

// IsValid reports whether the trip's demand fits the instance's capacity.
func (t *Trip) IsValid() bool {
	return t.demand <= t.inst.Capacity()
}

// Recompute resynchronizes demand_covered from the sequence and then
// reoptimizes cost via the local reorder.
func (t *Trip) Recompute() error {
	t.demand = 0
	for _, id := range t.sequence {
		d, err := t.inst.ClientDemand(id)
		if err != nil {
			return err
		}
		t.demand += d
	}
	return t.optimizeCost()
}

// optimizeCost is a greedy in-place nearest-neighbor reorder: for each
// position i, it picks the remaining client closest to the current anchor
// (the depot when i==0, otherwise sequence[i-1]), swaps it into place, and
// accumulates the chosen distance into cost. After the sweep it adds the
// final client's return-to-depot edge.
//
// The i==0 case is the only place the selector compares against the depot
// rather than the previous client; that asymmetry is load-bearing and must
// not be "fixed" into uniform anchor selection.
func (t *Trip) optimizeCost() error {
	s := t.sequence
	t.cost = 0

	if len(s) == 0 {
		return nil
	}

	anchorCost := func(i, j int) (float64, error) {
		if i == 0 {
			return t.inst.DistanceDepot(s[j])
		}
		return t.inst.Distance(s[i-1], s[j])
	}

	for i := 0; i < len(s); i++ {
		best := i
		bestCost, err := anchorCost(i, i)
		if err != nil {
			return err
		}
		for j := i + 1; j < len(s); j++ {
			c, err := anchorCost(i, j)
			if err != nil {
				return err
			}
			if c < bestCost {
				bestCost = c
				best = j
			}
		}
		if best != i {
			s[i], s[best] = s[best], s[i]
		}
		t.cost += bestCost
	}

	last, err := t.inst.DistanceDepot(s[len(s)-1])
	if err != nil {
		return err
	}
	t.cost += last
	return nil
}

// Clone returns a deep copy of the trip: same instance binding, a fresh
// sequence buffer, and the already-computed demand and cost carried over
// (cheap, since nothing about them changes by copying).
func (t *Trip) Clone() *Trip {
	seq := make([]int, len(t.sequence))
	copy(seq, t.sequence)
	return &Trip{
		inst:     t.inst,
		sequence: seq,
		demand:   t.demand,
		cost:     t.cost,
	}
}

// Equal reports whether two trips visit the same clients in the same order.
func (t *Trip) Equal(other *Trip) bool {
	if len(t.sequence) != len(other.sequence) {
		return false
	}
	for i, id := range t.sequence {
		if other.sequence[i] != id {
			return false
		}
	}
	return true
}

// Less gives trips a total order, lexicographic over their client sequence.
func (t *Trip) Less(other *Trip) bool {
	n := len(t.sequence)
	if len(other.sequence) < n {
		n = len(other.sequence)
	}
	for i := 0; i < n; i++ {
		if t.sequence[i] != other.sequence[i] {
			return t.sequence[i] < other.sequence[i]
		}
	}
	return len(t.sequence) < len(other.sequence)
}

// String renders the trip as "x->a->b->x ------- demand", mirroring the
// original implementation's trip summary.
func (t *Trip) String() string {
	var b strings.Builder
	b.WriteString("x->")
	for _, id := range t.sequence {
		fmt.Fprintf(&b, "%d->", id)
	}
	fmt.Fprintf(&b, "x ------- %d", t.demand)
	return b.String()
}
