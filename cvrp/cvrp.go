// Package cvrp is the external surface of the capacitated vehicle routing
// search: it exposes the Instance construction contract an external parser
// targets, and the Solve entry point an external CLI calls. Parsing the
// instance file format and rendering the result are both out of scope —
// see package-level docs on Instance and Solution for the minimal
// boundary this package owns instead.
package cvrp

import (
	"context"
	"io"

	"github.com/battlesnake/cvrp/internal/engine"
	"github.com/battlesnake/cvrp/internal/instance"
	"github.com/battlesnake/cvrp/internal/solution"
	"github.com/battlesnake/cvrp/internal/trip"
)

// Point is an integer coordinate pair (x, y).
type Point = instance.Point

// ClientSpec is one client's position and demand, as consumed by NewInstance.
// It corresponds to one element of the external schema's "nodes" array.
type ClientSpec = instance.ClientSpec

// Instance is an immutable CVRP instance: a vehicle capacity, a depot
// coordinate, and a set of clients.
type Instance = instance.Instance

// Solution is a collection of trips produced by Solve.
type Solution = solution.Solution

// Trip is a single vehicle's ordered client sequence.
type Trip = trip.Trip

// Params are the engine's tunable constants; see engine.DefaultParams for
// the spec's defaults.
type Params = engine.Params

// Reporter receives progress updates during Solve.
type Reporter = engine.Reporter

// Progress is a snapshot of one generation's state, handed to a Reporter.
type Progress = engine.Progress

// ClientError reports an operation against an unknown client id.
type ClientError = instance.ClientError

// ErrUnknownClient is the sentinel wrapped by ClientError.
var ErrUnknownClient = instance.ErrUnknownClient

// InvalidInstanceError reports a schema or invariant violation discovered
// while building an Instance: a non-positive capacity, a negative
// coordinate, a non-positive demand, or a demand exceeding capacity.
type InvalidInstanceError = instance.InvalidInstanceError

// ErrDegeneratePopulation is returned by Solve when the initial population
// ends up empty.
var ErrDegeneratePopulation = engine.ErrDegeneratePopulation

// NewInstance builds an Instance from a vehicle capacity, a depot
// coordinate, and an ordered list of clients. Client i (0-based) becomes
// client id i+1, matching the external schema's "nodes" array ordering.
//
// Any missing or negative field upstream is the caller's responsibility to
// reject before calling NewInstance; NewInstance itself rejects a
// non-positive capacity, a negative coordinate, a non-positive demand, or a
// demand exceeding capacity, returning an *InvalidInstanceError.
func NewInstance(capacity int, depot Point, clients []ClientSpec) (*Instance, error) {
	return instance.New(capacity, depot, clients)
}

// DefaultParams returns the spec's default engine tunables.
func DefaultParams() Params {
	return engine.DefaultParams()
}

// NewWriterReporter returns a Reporter that writes a single,
// carriage-return-erased progress line on each update.
func NewWriterReporter(w io.Writer) Reporter {
	return engine.NewWriterReporter(w)
}

// Solve runs the evolutionary search to completion — generation cap,
// null-generation convergence, or ctx cancellation / an OS interrupt — and
// returns the best Solution found. A nil reporter uses a default
// stderr reporter unless HIDE_PROGRESS is set in the environment or
// params.HideProgress is true.
func Solve(ctx context.Context, inst *Instance, params Params, reporter Reporter) (*Solution, error) {
	return engine.Run(ctx, inst, params, reporter)
}
