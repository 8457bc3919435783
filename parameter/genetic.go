package parameter

// Genetic Algorithm - Solver Configuration
const (
	// GAPoolSize is the number of routes in each population
	GAPoolSize = 100

	// GAChromosomeLength is the number of genes (ticks) per route
	GAChromosomeLength = 60

	// GAEliteCount is preserved best performers per generation
	GAEliteCount = 10

	// GAMutationProbability is the per-gene resample probability (0.0-1.0)
	GAMutationProbability = 0.02

	// GAMaxGenerations caps evolution before the solver reports exhaustion (0 = unbounded)
	GAMaxGenerations = 500

	// GAParallelism for batch evaluation (0 = GOMAXPROCS)
	GAParallelism = 0

	// GATournamentSize for selection pressure when tournament selection is used
	GATournamentSize = 3
)

// Selection strategies
const (
	SelectionRoulette   = "roulette"
	SelectionTournament = "tournament"
)
