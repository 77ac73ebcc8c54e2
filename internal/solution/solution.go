// Package solution models an ordered collection of trips covering a CVRP
// instance's clients, together with the aggregate cost, feasibility check,
// and stable identity needed to deduplicate a population of solutions.
package solution

import (
	"fmt"
	"hash/maphash"
	"strings"

	"github.com/battlesnake/cvrp/internal/trip"
)

// seed is shared process-wide so that two Solutions built in the same
// process hash consistently; it is not meant to be stable across runs or
// processes (the dedup contract only needs in-process consistency).
var seed = maphash.MakeSeed()

// Solution is an ordered collection of Trips.
type Solution struct {
	trips []*trip.Trip
}

// New wraps an ordered slice of trips as a Solution.
func New(trips []*trip.Trip) *Solution {
	return &Solution{trips: trips}
}

// Trips returns the solution's trips, in order.
func (s *Solution) Trips() []*trip.Trip {
	return s.trips
}

// Cost returns the sum of the solution's trip costs.
func (s *Solution) Cost() float64 {
	var total float64
	for _, t := range s.trips {
		total += t.Cost()
	}
	return total
}

// IsValid reports whether every trip is individually valid and the
// multiset of client ids across all trips equals exactly {1..n}. It stops
// at the first duplicate or out-of-range id.
func (s *Solution) IsValid(n int) bool {
	seen := make([]bool, n+1)
	for _, t := range s.trips {
		if !t.IsValid() {
			return false
		}
		for _, id := range t.Sequence() {
			if id < 1 || id > n || seen[id] {
				return false
			}
			seen[id] = true
		}
	}
	for i := 1; i <= n; i++ {
		if !seen[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the solution: every trip is independently
// cloned so mutating the copy (e.g. via crossover) never touches the
// original.
func (s *Solution) Clone() *Solution {
	trips := make([]*trip.Trip, len(s.trips))
	for i, t := range s.trips {
		trips[i] = t.Clone()
	}
	return &Solution{trips: trips}
}

// Equal reports whether two solutions have element-wise equal trip
// sequences.
func (s *Solution) Equal(other *Solution) bool {
	if len(s.trips) != len(other.trips) {
		return false
	}
	for i, t := range s.trips {
		if !t.Equal(other.trips[i]) {
			return false
		}
	}
	return true
}

// Less gives solutions a total order, lexicographic over their trips.
func (s *Solution) Less(other *Solution) bool {
	n := len(s.trips)
	if len(other.trips) < n {
		n = len(other.trips)
	}
	for i := 0; i < n; i++ {
		a, b := s.trips[i], other.trips[i]
		if !a.Equal(b) {
			return a.Less(b)
		}
	}
	return len(s.trips) < len(other.trips)
}

// Hash returns a hash combining every trip's sequence, stable for the
// lifetime of the process. It is used to key a deduplicating population;
// it is not a cryptographic hash and carries no cross-process guarantee.
func (s *Solution) Hash() uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	for _, t := range s.trips {
		for _, id := range t.Sequence() {
			var b [8]byte
			putUvarint(&b, uint64(id))
			h.Write(b[:])
		}
		h.WriteByte(0xff) // trip separator
	}
	return h.Sum64()
}

func putUvarint(b *[8]byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

// String renders each trip on its own line followed by the total cost,
// matching the original implementation's plain-text solution dump.
func (s *Solution) String() string {
	var b strings.Builder
	for _, t := range s.trips {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%g\n", s.Cost())
	return b.String()
}
