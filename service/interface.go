package service

import "context"

// Service defines the lifecycle interface for long-running process parts
// Services own listeners, watchers and front ends around one solver
//
// Lifecycle:
//  1. Construction (via its package constructor)
//  2. Register on a Hub
//  3. Run(ctx) - blocks until ctx is done or the service fails
//  4. Stop() - release resources, called once Run has returned for every service
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must be started before this one
	// Return nil or empty slice if no dependencies
	Dependencies() []string

	// Run performs the service's work until ctx is cancelled
	// Returning a non-nil error cancels every other service
	Run(ctx context.Context) error

	// Stop releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}

// Func adapts a run function into a Service without dependencies or resources
type Func struct {
	ID   string
	Deps []string
	Fn   func(ctx context.Context) error
}

func (f Func) Name() string                  { return f.ID }
func (f Func) Dependencies() []string        { return f.Deps }
func (f Func) Run(ctx context.Context) error { return f.Fn(ctx) }
func (f Func) Stop() error                   { return nil }
