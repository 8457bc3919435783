package parameter

import "time"

// Service - HTTP
const (
	// ServiceAddr is the default listen address
	ServiceAddr = ":3000"

	// ServiceShutdownTimeout bounds graceful shutdown
	ServiceShutdownTimeout = 5 * time.Second

	// ServiceRouteCacheSize is the number of route detail projections kept per generation
	ServiceRouteCacheSize = 256

	// ServiceWatchDebounce coalesces bursts of file change events
	ServiceWatchDebounce = 250 * time.Millisecond
)

// Logging
const (
	LogDir      = "./logs"
	LogFileName = "lander.log"

	// LogMaxSizeMB rotates the log file past this size
	LogMaxSizeMB = 10

	LogMaxBackups = 3
)

// Viewer
const (
	// ViewerAutoInterval paces auto-advance in the terminal viewer
	ViewerAutoInterval = 100 * time.Millisecond
)
