package service

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

// HTTP runs a server until its context is cancelled, then shuts it down gracefully
type HTTP struct {
	ID              string
	Server          *http.Server
	ShutdownTimeout time.Duration
	// Listener is used instead of Server.Addr when set
	Listener net.Listener
}

func (h *HTTP) Name() string           { return h.ID }
func (h *HTTP) Dependencies() []string { return nil }

func (h *HTTP) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		var err error
		if h.Listener != nil {
			err = h.Server.Serve(h.Listener)
		} else {
			err = h.Server.ListenAndServe()
		}
		errCh <- err
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), h.ShutdownTimeout)
	defer cancel()
	if err := h.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errCh
	return ctx.Err()
}

// Stop force-closes connections left over from a timed out shutdown
func (h *HTTP) Stop() error {
	return h.Server.Close()
}
