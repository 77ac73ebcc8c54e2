package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/battlesnake/cvrp/internal/engine"
	"github.com/battlesnake/cvrp/internal/instance"
)

// smallParams shrinks the spec's defaults down to something a unit test can
// run in milliseconds while keeping every termination rule exercised.
func smallParams() engine.Params {
	p := engine.DefaultParams()
	p.MaxGenerations = 10
	p.InitialPopulation = 16
	p.MaxPopulation = 16
	p.MaxMutationsPerGeneration = 200
	p.MaxMutationsPerSubject = 50
	p.MaxContiguousNullGenerations = 3
	p.HideProgress = true
	return p
}

func TestSingleClientRoundTrip(t *testing.T) {
	inst, err := instance.New(10, instance.Point{X: 0, Y: 0}, []instance.ClientSpec{
		{Position: instance.Point{X: 3, Y: 4}, Demand: 5},
	})
	require.NoError(t, err)

	sol, err := engine.Run(context.Background(), inst, smallParams(), nil)
	require.NoError(t, err)
	require.True(t, sol.IsValid(1))
	require.Len(t, sol.Trips(), 1)
	require.Equal(t, []int{1}, sol.Trips()[0].Sequence())
	require.InDelta(t, 10.0, sol.Cost(), 1e-9)
}

func TestTwoCollinearClientsShareATrip(t *testing.T) {
	inst, err := instance.New(10, instance.Point{X: 0, Y: 0}, []instance.ClientSpec{
		{Position: instance.Point{X: 1, Y: 0}, Demand: 4},
		{Position: instance.Point{X: 2, Y: 0}, Demand: 4},
	})
	require.NoError(t, err)

	sol, err := engine.Run(context.Background(), inst, smallParams(), nil)
	require.NoError(t, err)
	require.True(t, sol.IsValid(2))
	require.Len(t, sol.Trips(), 1)
	require.InDelta(t, 4.0, sol.Cost(), 1e-9)
}

func TestCapacityForcesASplit(t *testing.T) {
	inst, err := instance.New(10, instance.Point{X: 0, Y: 0}, []instance.ClientSpec{
		{Position: instance.Point{X: 1, Y: 0}, Demand: 6},
		{Position: instance.Point{X: 2, Y: 0}, Demand: 6},
	})
	require.NoError(t, err)

	sol, err := engine.Run(context.Background(), inst, smallParams(), nil)
	require.NoError(t, err)
	require.True(t, sol.IsValid(2))
	require.Len(t, sol.Trips(), 2)
	require.InDelta(t, 6.0, sol.Cost(), 1e-9)
}

// countingReporter records one Progress per generation the loop body
// actually executes.
type countingReporter struct {
	reports []engine.Progress
	done    bool
}

func (c *countingReporter) Report(p engine.Progress) { c.reports = append(c.reports, p) }
func (c *countingReporter) Done()                    { c.done = true }

func TestNullGenerationStreakStopsEarly(t *testing.T) {
	// A two-client instance whose single feasible trip ordering is already
	// optimal: no crossover outcome can ever beat the threshold, so every
	// loop generation is null. The spec's scenario counts the already-
	// constructed initial population as "generation 0"; this test counts
	// only the loop's own reports, so it expects exactly
	// MaxContiguousNullGenerations of them (one initial generation plus
	// that many null rounds equals the spec's "+1" figure).
	inst, err := instance.New(10, instance.Point{X: 0, Y: 0}, []instance.ClientSpec{
		{Position: instance.Point{X: 1, Y: 0}, Demand: 4},
		{Position: instance.Point{X: 2, Y: 0}, Demand: 4},
	})
	require.NoError(t, err)

	params := smallParams()
	params.MaxGenerations = 50
	reporter := &countingReporter{}

	_, err = engine.Run(context.Background(), inst, params, reporter)
	require.NoError(t, err)
	require.Equal(t, params.MaxContiguousNullGenerations, len(reporter.reports))
	require.True(t, reporter.done)
}

func TestBenchDisablesEarlyStop(t *testing.T) {
	inst, err := instance.New(10, instance.Point{X: 0, Y: 0}, []instance.ClientSpec{
		{Position: instance.Point{X: 1, Y: 0}, Demand: 4},
		{Position: instance.Point{X: 2, Y: 0}, Demand: 4},
	})
	require.NoError(t, err)

	params := smallParams()
	params.MaxGenerations = 7
	params.Bench = true
	reporter := &countingReporter{}

	_, err = engine.Run(context.Background(), inst, params, reporter)
	require.NoError(t, err)
	require.Equal(t, params.MaxGenerations, len(reporter.reports))
}

func TestContextCancellationStopsEarly(t *testing.T) {
	inst, err := instance.New(10, instance.Point{X: 0, Y: 0}, []instance.ClientSpec{
		{Position: instance.Point{X: 1, Y: 0}, Demand: 4},
		{Position: instance.Point{X: 2, Y: 0}, Demand: 4},
	})
	require.NoError(t, err)

	// Construction doesn't watch the stop flag, only the generation loop
	// does, so a context canceled before Run is called still yields a
	// full initial population and a valid best solution, just zero
	// completed generations.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	params := smallParams()
	params.MaxGenerations = 50
	params.Bench = true
	reporter := &countingReporter{}

	sol, err := engine.Run(ctx, inst, params, reporter)
	require.NoError(t, err)
	require.NotNil(t, sol)
	require.True(t, sol.IsValid(2))
	require.Empty(t, reporter.reports)
}

func TestDegeneratePopulationIsAnError(t *testing.T) {
	inst, err := instance.New(10, instance.Point{X: 0, Y: 0}, []instance.ClientSpec{
		{Position: instance.Point{X: 1, Y: 0}, Demand: 4},
	})
	require.NoError(t, err)

	params := smallParams()
	params.InitialPopulation = 0
	params.MaxPopulation = 4

	_, err = engine.Run(context.Background(), inst, params, nil)
	require.ErrorIs(t, err, engine.ErrDegeneratePopulation)
}
