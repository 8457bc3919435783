package parameter

// Fitness - Terminal Terms
const (
	// FitnessLandingBonus is added to every correct landing
	// Must exceed terrain width so landings outrank every other route
	FitnessLandingBonus = 100000.0

	// FitnessBoundaryPenalty is subtracted for out-of-bounds and fuel crashes
	FitnessBoundaryPenalty = 5000.0

	// FitnessFloor is the score of non-finite or pathological routes
	FitnessFloor = -1e12
)

// Fitness - Refinement Weights
// Applied only when the final position is within FitnessZoneMargin of the landing zone
const (
	FitnessWeightVerticalSpeed   = 10.0
	FitnessWeightHorizontalSpeed = 10.0
	FitnessWeightAngle           = 5.0

	// FitnessZoneMargin extends the landing zone horizontally for penalty terms
	FitnessZoneMargin = 200.0
)
