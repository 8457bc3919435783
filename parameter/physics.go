package parameter

// Physics - Environment
const (
	// Gravity is the downward acceleration in m/s²
	Gravity = 3.711

	// TickDuration is the simulated seconds per tick
	TickDuration = 1.0

	// Ceiling is the altitude above which a lander is out of bounds
	Ceiling = 3000.0
)

// Physics - Control Limits
const (
	// RotateMin and RotateMax bound the absolute rotation in degrees
	RotateMin = -90
	RotateMax = 90

	// RotateMaxDelta is the largest rotation change applied per tick
	RotateMaxDelta = 15

	// PowerMin and PowerMax bound the absolute thrust power
	PowerMin = 0
	PowerMax = 4

	// PowerMaxDelta is the largest power change applied per tick
	PowerMaxDelta = 1
)

// Physics - Landing Tolerances
const (
	ToleranceAngle           = 0.0
	ToleranceHorizontalSpeed = 20.0
	ToleranceVerticalSpeed   = 40.0
)

// Out-of-fuel policies
const (
	// OutOfFuelCoast keeps flying with zero thrust once the tank is empty
	OutOfFuelCoast = "coast"
	// OutOfFuelCrash ends the flight when thrust is demanded from an empty tank
	OutOfFuelCrash = "crash"
)
