package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/klauspost/compress/gzhttp"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/lander/api"
	"github.com/lixenwraith/lander/log"
	"github.com/lixenwraith/lander/observability"
	"github.com/lixenwraith/lander/parameter"
	"github.com/lixenwraith/lander/scenario"
	"github.com/lixenwraith/lander/service"
	"github.com/lixenwraith/lander/solver"
	"github.com/lixenwraith/lander/watch"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long: `Exposes terrain, population, next and reset endpoints for a web front end,
plus /health and /metrics.`,
		RunE: runServe,
	}

	serveAddr  string
	serveWatch bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", parameter.ServiceAddr, "Listen address")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload the solver when the scenario or settings file changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	l, err := loader()
	if err != nil {
		return err
	}
	logger, err := log.New(log.Options{Level: logLevel, Dir: logDir, Tee: os.Stderr})
	if err != nil {
		return err
	}
	defer logger.Close()

	metrics := observability.New()
	src := solverSource(l, logger, metrics, nil)
	s, err := src()
	if err != nil {
		return err
	}
	host := solver.NewHost(s, src, logger)

	srv, err := api.NewServer(host, api.WithLogger(logger), api.WithMetrics(metrics))
	if err != nil {
		return err
	}

	hub := service.NewHub()
	err = hub.Register(&service.HTTP{
		ID:              "http",
		Server:          &http.Server{Addr: serveAddr, Handler: gzhttp.GzipHandler(srv.Router())},
		ShutdownTimeout: parameter.ServiceShutdownTimeout,
	})
	if err != nil {
		return err
	}
	if serveWatch {
		if err := registerWatcher(hub, l, host, logger, nil); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("serving", slog.String("addr", serveAddr), slog.Bool("watch", serveWatch))
	return hub.Run(ctx)
}

// registerWatcher reloads host whenever a scenario or settings file changes
// afterReload runs after each successful reload when set
func registerWatcher(hub *service.Hub, l scenario.Loader, host *solver.Host, logger *log.Logger, afterReload func()) error {
	w, err := watch.New(l.Paths(), parameter.ServiceWatchDebounce, func() {
		if err := host.Reload(); err == nil && afterReload != nil {
			afterReload()
		}
	}, logger)
	if err != nil {
		return err
	}
	if err := hub.Register(service.Func{ID: "watcher", Fn: w.Run}); err != nil {
		w.Close()
		return err
	}
	return nil
}
