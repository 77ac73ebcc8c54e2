// Package engine implements the population-based evolutionary search: it
// seeds an initial population by randomized greedy construction, then
// repeatedly crosses parents into offspring, filters by a cost threshold
// and feasibility, culls to the best max_population members, and stops on
// convergence or cancellation.
package engine

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"sync/atomic"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/battlesnake/cvrp/internal/instance"
	"github.com/battlesnake/cvrp/internal/operators"
	"github.com/battlesnake/cvrp/internal/solution"
)

// ErrDegeneratePopulation is returned when the initial population ends up
// empty (InitialPopulation is zero; duplicate constructions are dropped, but
// the first one always lands), leaving nothing for the generation loop to
// iterate over.
var ErrDegeneratePopulation = errors.New("degenerate population: initial construction produced no members")

// workerParallelismFactor is the "20 x workers" threshold from the spec's
// scheduling choice: above it, the outer loop over parents is
// parallelized and each parent's mutation budget runs serially; at or
// below it, the outer loop is serial and the inner mutation loop is
// parallelized.
const workerParallelismFactor = 20

// Run executes the evolutionary search to completion (generation cap,
// null-generation convergence, or ctx cancellation / process signal) and
// returns the best Solution found.
//
// ctx governs cooperative cancellation: besides whatever deadline or
// cancellation the caller attaches, Run also installs SIGINT/SIGTERM
// handling for the duration of the call, so an operator's Ctrl-C stops the
// search and returns the best solution found so far rather than killing
// the process outright.
func Run(ctx context.Context, inst *instance.Instance, params Params, reporter Reporter) (*solution.Solution, error) {
	ctx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	if reporter == nil {
		if params.HideProgress || os.Getenv("HIDE_PROGRESS") != "" {
			reporter = noopReporter{}
		} else {
			reporter = NewWriterReporter(os.Stderr)
		}
	}
	bench := params.Bench || os.Getenv("BENCH") != ""

	var stopped atomic.Bool
	watchCtx, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()
	go func() {
		select {
		case <-ctx.Done():
			stopped.Store(true)
		case <-watchCtx.Done():
		}
	}()

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}

	rngPool := &sync.Pool{New: func() any { return operators.NewWorkerRNG() }}

	pop, err := initialPopulation(params, inst, workers, rngPool)
	if err != nil {
		return nil, err
	}
	if pop.Len() == 0 {
		return nil, ErrDegeneratePopulation
	}

	numClients := inst.NumClients()
	nullGenerations := 0

	for gen := 0; gen < params.MaxGenerations; gen++ {
		if stopped.Load() {
			break
		}

		genStats := statsOf(pop.Costs())
		reporter.Report(Progress{
			Generation:      gen,
			MaxGenerations:  params.MaxGenerations,
			PopulationSize:  pop.Len(),
			BestCost:        pop.Best(),
			MeanCost:        genStats.Mean(),
			CostStdDev:      genStats.StdDeviation(),
			NullGenerations: nullGenerations,
		})

		threshold := pop.Worst()
		contiguous := pop.View()

		mutationsPerSubject := params.MaxMutationsPerGeneration / len(contiguous)
		if mutationsPerSubject > params.MaxMutationsPerSubject {
			mutationsPerSubject = params.MaxMutationsPerSubject
		}

		offspring := newPopulation(params.MaxPopulation)
		mutate := func(subject *solution.Solution) error {
			if stopped.Load() {
				return nil
			}
			rng := rngPool.Get().(*operators.RNG)
			defer rngPool.Put(rng)

			child := subject.Clone()
			if err := operators.Crossover(child, rng); err != nil {
				return err
			}
			cost := child.Cost()
			if cost < threshold && child.IsValid(numClients) {
				offspring.Insert(child)
			}
			return nil
		}

		parallelOuter := len(contiguous) > workerParallelismFactor*workers
		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(workers)

		if parallelOuter {
			for _, subject := range contiguous {
				subject := subject
				g.Go(func() error {
					for m := 0; m < mutationsPerSubject; m++ {
						if err := mutate(subject); err != nil {
							return err
						}
					}
					return nil
				})
			}
		} else {
			for _, subject := range contiguous {
				for m := 0; m < mutationsPerSubject; m++ {
					subject := subject
					g.Go(func() error {
						return mutate(subject)
					})
				}
			}
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}

		if offspring.Len() > 0 && offspring.Best() < pop.Best() {
			pop = offspring
			nullGenerations = 0
		} else {
			nullGenerations++
			if nullGenerations == params.MaxContiguousNullGenerations && !bench {
				break
			}
		}

		if stopped.Load() {
			break
		}
	}

	reporter.Done()

	best := pop.View()[0]
	return best, nil
}

// initialPopulation generates params.InitialPopulation randomized greedy
// solutions in parallel, inserting each into a deduplicating population.
// Collisions are silently dropped, so the realized size may come up short
// of the request. Unlike the generation loop, construction does not test
// the stop flag: the spec only asks mutation workers and the main loop to
// honor it.
func initialPopulation(params Params, inst *instance.Instance, workers int, rngPool *sync.Pool) (*population, error) {
	pop := newPopulation(params.MaxPopulation)

	g := new(errgroup.Group)
	g.SetLimit(workers)

	for i := 0; i < params.InitialPopulation; i++ {
		g.Go(func() error {
			rng := rngPool.Get().(*operators.RNG)
			defer rngPool.Put(rng)

			sol, err := operators.Construct(inst, rng)
			if err != nil {
				return err
			}
			pop.Insert(sol)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pop, nil
}
