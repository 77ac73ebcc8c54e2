package operators

import (
	"github.com/battlesnake/cvrp/internal/instance"
	"github.com/battlesnake/cvrp/internal/solution"
	"github.com/battlesnake/cvrp/internal/trip"
)

// Construct builds an initial feasible Solution by randomized greedy
// first-fit bin packing: it shuffles the client ids, then places each id on
// the first trip (in trip order) that can accommodate it, opening a new
// trip when none can. Every trip is then recomputed, applying the local
// reorder.
//
// Construct always yields a Solution whose every trip is individually
// valid, provided every client's demand is individually satisfiable (an
// invariant instance.New already enforces).
func Construct(inst *instance.Instance, rng *RNG) (*solution.Solution, error) {
	genome := inst.ClientIDs()
	rng.Shuffle(len(genome), func(i, j int) {
		genome[i], genome[j] = genome[j], genome[i]
	})

	trips := []*trip.Trip{trip.New(inst)}
	for _, id := range genome {
		placed := false
		for _, tr := range trips {
			ok, err := tr.CanAccommodate(id)
			if err != nil {
				return nil, err
			}
			if ok {
				if err := tr.Append(id); err != nil {
					return nil, err
				}
				placed = true
				break
			}
		}
		if !placed {
			tr := trip.New(inst)
			if err := tr.Append(id); err != nil {
				return nil, err
			}
			trips = append(trips, tr)
		}
	}

	for _, tr := range trips {
		if err := tr.Recompute(); err != nil {
			return nil, err
		}
	}

	return solution.New(trips), nil
}
