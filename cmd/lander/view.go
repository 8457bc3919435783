package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/lander/audio"
	"github.com/lixenwraith/lander/service"
	"github.com/lixenwraith/lander/solver"
	"github.com/lixenwraith/lander/viewer"
)

var (
	viewCmd = &cobra.Command{
		Use:   "view",
		Short: "Watch the population evolve in the terminal",
		RunE:  runView,
	}

	viewSound bool
	viewWatch bool
	viewAuto  bool
)

func init() {
	viewCmd.Flags().BoolVar(&viewSound, "sound", false, "Play a chime when a route lands")
	viewCmd.Flags().BoolVar(&viewWatch, "watch", false, "Reload the solver when the scenario or settings file changes")
	viewCmd.Flags().BoolVar(&viewAuto, "auto", false, "Start with auto-advance on")
}

func runView(cmd *cobra.Command, args []string) error {
	l, err := loader()
	if err != nil {
		return err
	}
	logger, err := openLogger()
	if err != nil {
		return err
	}
	defer logger.Close()

	src := solverSource(l, logger, nil, nil)
	s, err := src()
	if err != nil {
		return err
	}
	host := solver.NewHost(s, src, logger)

	var sound *audio.Player
	if viewSound {
		p := audio.NewPlayer()
		if err := p.Open(); err != nil {
			logger.Warn("sound unavailable", slog.Any("error", err))
		} else {
			defer p.Close()
			sound = p
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	opts := []viewer.Option{viewer.WithSound(sound), viewer.WithLogger(logger)}
	if viewAuto {
		opts = append(opts, viewer.WithAutoAdvance(0))
	}
	v := viewer.New(screen, host, opts...)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hub := service.NewHub()
	err = hub.Register(service.Func{
		ID: "viewer",
		Fn: func(ctx context.Context) error {
			// Quitting the viewer ends the process
			defer cancel()
			return v.Run(ctx)
		},
	})
	if err != nil {
		return err
	}
	if viewWatch {
		redraw := func() { screen.PostEvent(tcell.NewEventInterrupt(nil)) }
		if err := registerWatcher(hub, l, host, logger, redraw); err != nil {
			return err
		}
	}

	return hub.Run(ctx)
}
