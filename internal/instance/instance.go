// Package instance models an immutable description of a capacitated vehicle
// routing problem: a depot, a fleet capacity, and a set of clients with
// positions and demands.
package instance

import (
	"errors"
	"fmt"
	"math"
)

// Point is an integer coordinate pair.
type Point struct {
	X, Y int64
}

// ErrUnknownClient is the sentinel wrapped by ClientError.
var ErrUnknownClient = errors.New("unknown client")

// ClientError reports that an operation referenced a client id outside the
// instance's 1..N range.
type ClientError struct {
	ID int
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("client %d: %v", e.ID, ErrUnknownClient)
}

func (e *ClientError) Unwrap() error {
	return ErrUnknownClient
}

// InvalidInstanceError reports a schema or invariant violation discovered
// while building an Instance.
type InvalidInstanceError struct {
	Reason string
}

func (e *InvalidInstanceError) Error() string {
	return "invalid instance: " + e.Reason
}

// ClientSpec is the per-client input to New: a position and a demand.
type ClientSpec struct {
	Position Point
	Demand   int
}

// Instance is an immutable CVRP instance. Client ids are contiguous,
// 1-based, and assigned in the order clients are passed to New.
type Instance struct {
	capacity int
	depot    Point
	position []Point // indexed by id-1
	demand   []int   // indexed by id-1
}

// New builds an Instance from a vehicle capacity, a depot coordinate, and an
// ordered list of clients. Client i (0-based) becomes client id i+1.
//
// It returns an *InvalidInstanceError if capacity is not positive, any
// coordinate is negative, any demand is not positive, or any demand exceeds
// capacity (making that client individually unsatisfiable).
func New(capacity int, depot Point, clients []ClientSpec) (*Instance, error) {
	if capacity <= 0 {
		return nil, &InvalidInstanceError{Reason: fmt.Sprintf("vehicle capacity must be positive, got %d", capacity)}
	}
	if depot.X < 0 || depot.Y < 0 {
		return nil, &InvalidInstanceError{Reason: fmt.Sprintf("depot coordinates must be non-negative, got (%d,%d)", depot.X, depot.Y)}
	}

	inst := &Instance{
		capacity: capacity,
		depot:    depot,
		position: make([]Point, len(clients)),
		demand:   make([]int, len(clients)),
	}

	for i, c := range clients {
		if c.Position.X < 0 || c.Position.Y < 0 {
			return nil, &InvalidInstanceError{Reason: fmt.Sprintf("client %d: coordinates must be non-negative, got (%d,%d)", i+1, c.Position.X, c.Position.Y)}
		}
		if c.Demand <= 0 {
			return nil, &InvalidInstanceError{Reason: fmt.Sprintf("client %d: demand must be positive, got %d", i+1, c.Demand)}
		}
		if c.Demand > capacity {
			return nil, &InvalidInstanceError{Reason: fmt.Sprintf("client %d: demand %d exceeds vehicle capacity %d", i+1, c.Demand, capacity)}
		}
		inst.position[i] = c.Position
		inst.demand[i] = c.Demand
	}

	return inst, nil
}

// Capacity returns the per-vehicle capacity Q.
func (inst *Instance) Capacity() int {
	return inst.capacity
}

// Depot returns the depot coordinate.
func (inst *Instance) Depot() Point {
	return inst.depot
}

// NumClients returns the number of clients N.
func (inst *Instance) NumClients() int {
	return len(inst.demand)
}

// ClientIDs returns the client ids in ascending order, 1..N.
func (inst *Instance) ClientIDs() []int {
	ids := make([]int, len(inst.demand))
	for i := range ids {
		ids[i] = i + 1
	}
	return ids
}

func (inst *Instance) valid(id int) bool {
	return 1 <= id && id <= len(inst.demand)
}

// ClientDemand returns the demand of the given client id.
func (inst *Instance) ClientDemand(id int) (int, error) {
	if !inst.valid(id) {
		return 0, &ClientError{ID: id}
	}
	return inst.demand[id-1], nil
}

// ClientPosition returns the coordinate of the given client id.
func (inst *Instance) ClientPosition(id int) (Point, error) {
	if !inst.valid(id) {
		return Point{}, &ClientError{ID: id}
	}
	return inst.position[id-1], nil
}

// DistanceDepot returns the Euclidean distance from the depot to a client.
func (inst *Instance) DistanceDepot(id int) (float64, error) {
	p, err := inst.ClientPosition(id)
	if err != nil {
		return 0, err
	}
	return euclid(inst.depot, p), nil
}

// Distance returns the Euclidean distance between two clients. It is
// symmetric, and Distance(a, a) is always 0.
func (inst *Instance) Distance(a, b int) (float64, error) {
	pa, err := inst.ClientPosition(a)
	if err != nil {
		return 0, err
	}
	pb, err := inst.ClientPosition(b)
	if err != nil {
		return 0, err
	}
	return euclid(pa, pb), nil
}

// euclid computes the Euclidean distance between two points, carrying the
// intermediate difference in 64-bit integers so non-negative coordinates
// below 2^31 never overflow before the conversion to float64.
func euclid(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(float64(dx*dx + dy*dy))
}
