package cvrp_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/battlesnake/cvrp"
)

func TestNewInstanceRejectsOverCapacityDemand(t *testing.T) {
	_, err := cvrp.NewInstance(5, cvrp.Point{X: 0, Y: 0}, []cvrp.ClientSpec{
		{Position: cvrp.Point{X: 1, Y: 1}, Demand: 6},
	})
	var invalid *cvrp.InvalidInstanceError
	require.ErrorAs(t, err, &invalid)
}

func TestSolveSingleClient(t *testing.T) {
	inst, err := cvrp.NewInstance(10, cvrp.Point{X: 0, Y: 0}, []cvrp.ClientSpec{
		{Position: cvrp.Point{X: 3, Y: 4}, Demand: 5},
	})
	require.NoError(t, err)

	params := cvrp.DefaultParams()
	params.MaxGenerations = 5
	params.InitialPopulation = 8
	params.MaxPopulation = 8
	params.HideProgress = true

	sol, err := cvrp.Solve(context.Background(), inst, params, nil)
	require.NoError(t, err)
	require.True(t, sol.IsValid(1))
	require.InDelta(t, 10.0, sol.Cost(), 1e-9)
}

func TestSolveDegeneratePopulationError(t *testing.T) {
	inst, err := cvrp.NewInstance(10, cvrp.Point{X: 0, Y: 0}, []cvrp.ClientSpec{
		{Position: cvrp.Point{X: 1, Y: 0}, Demand: 4},
	})
	require.NoError(t, err)

	params := cvrp.DefaultParams()
	params.InitialPopulation = 0
	params.MaxPopulation = 4
	params.HideProgress = true

	_, err = cvrp.Solve(context.Background(), inst, params, nil)
	require.True(t, errors.Is(err, cvrp.ErrDegeneratePopulation))
}

func TestWriterReporterWritesProgressLine(t *testing.T) {
	var buf bytes.Buffer
	reporter := cvrp.NewWriterReporter(&buf)
	reporter.Report(cvrp.Progress{Generation: 1, MaxGenerations: 10, PopulationSize: 4, BestCost: 12.5})
	reporter.Done()
	require.Contains(t, buf.String(), "best=12.5")
}
