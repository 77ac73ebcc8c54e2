package engine

// Params holds the engine's tunable constants. DefaultParams returns the
// spec's defaults; tests typically shrink these to keep runs fast.
type Params struct {
	// MaxGenerations is the hard cap on generations.
	MaxGenerations int

	// MaxMutationsPerGeneration bounds the total offspring budget per
	// generation, across the whole population.
	MaxMutationsPerGeneration int

	// MaxMutationsPerSubject caps mutation attempts per parent.
	MaxMutationsPerSubject int

	// InitialPopulation is the number of randomized solutions seeded at
	// startup.
	InitialPopulation int

	// MaxPopulation bounds the population size after culling.
	MaxPopulation int

	// MaxContiguousNullGenerations is the convergence streak that stops
	// the search early (unless Bench is set).
	MaxContiguousNullGenerations int

	// HideProgress suppresses the default stderr reporter that Run installs
	// when it is given a nil Reporter; a Reporter passed by the caller still
	// receives every update. Defaults from the HIDE_PROGRESS environment
	// variable when left unset by the caller.
	HideProgress bool

	// Bench disables the null-generation early stop, forcing the engine
	// to run the full MaxGenerations. Defaults from the BENCH environment
	// variable when left unset by the caller.
	Bench bool
}

// DefaultParams returns the spec's default tunables.
func DefaultParams() Params {
	return Params{
		MaxGenerations:               100,
		MaxMutationsPerGeneration:    10_000_000_000,
		MaxMutationsPerSubject:       100_000,
		InitialPopulation:            100_000,
		MaxPopulation:                10_000_000,
		MaxContiguousNullGenerations: 3,
	}
}
