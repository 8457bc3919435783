package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Hub runs registered services together; one failing stops the rest
type Hub struct {
	mu       sync.Mutex
	services map[string]Service
}

func NewHub() *Hub {
	return &Hub{services: make(map[string]Service)}
}

// Register adds svc under its unique name
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, dup := h.services[svc.Name()]; dup {
		return fmt.Errorf("service %q registered twice", svc.Name())
	}
	h.services[svc.Name()] = svc
	return nil
}

// Order lists service names with every service after its dependencies
// Independent services appear by name
func (h *Hub) Order() ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	const (
		visiting = 1
		done     = 2
	)
	mark := make(map[string]int, len(h.services))
	order := make([]string, 0, len(h.services))

	var visit func(name, from string) error
	visit = func(name, from string) error {
		svc, ok := h.services[name]
		if !ok {
			return fmt.Errorf("service %q depends on unknown service %q", from, name)
		}
		switch mark[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("service %q is part of a dependency cycle", name)
		}
		mark[name] = visiting
		for _, dep := range slices.Sorted(slices.Values(svc.Dependencies())) {
			if err := visit(dep, name); err != nil {
				return err
			}
		}
		mark[name] = done
		order = append(order, name)
		return nil
	}

	for _, name := range slices.Sorted(maps.Keys(h.services)) {
		if err := visit(name, ""); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Run starts every service and blocks until all have returned
// context.Canceled from a service counts as a clean exit
// Once all are done, Stop runs on each in reverse order
func (h *Hub) Run(ctx context.Context) error {
	order, err := h.Order()
	if err != nil {
		return err
	}

	h.mu.Lock()
	svcs := make([]Service, len(order))
	for i, name := range order {
		svcs[i] = h.services[name]
	}
	h.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	for _, svc := range svcs {
		g.Go(func() error {
			if err := svc.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("service %s: %w", svc.Name(), err)
			}
			return nil
		})
	}
	errs := []error{g.Wait()}

	for _, svc := range slices.Backward(svcs) {
		if err := svc.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", svc.Name(), err))
		}
	}
	return errors.Join(errs...)
}
