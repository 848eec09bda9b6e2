package main

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/fieldsim/fieldsim/internal/core/config"
	"github.com/fieldsim/fieldsim/internal/core/engine"
	"github.com/fieldsim/fieldsim/internal/core/observability/log"
	"github.com/fieldsim/fieldsim/internal/core/systems/physics"
	"github.com/fieldsim/fieldsim/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML simulation config")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			log.New(log.LevelInfo).Fatal("load config", log.Error(err))
		}
		cfg = loaded
	}

	logger := log.New(log.ParseLevel(cfg.Engine.LogLevel))

	eng := engine.New(cfg, logger)
	if _, err := eng.AddRobot(-1, 0, physics.RotationIdentity); err != nil {
		logger.Fatal("add robot", log.Error(err))
	}
	if _, err := eng.AddRobot(1, 0, physics.RotationFlipped); err != nil {
		logger.Fatal("add robot", log.Error(err))
	}
	// A rolling kickoff so a bare run streams something watchable.
	eng.Ball().SetVelocity(1, 0.5)

	srv := server.NewFrameServer(cfg.Engine.ListenAddr, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		logger.Fatal("start frame server", log.Error(err))
	}

	frames := eng.Subscribe(64)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return eng.Run(ctx, nil) })
	g.Go(func() error { srv.Pump(ctx, frames); return nil })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("simulation aborted", log.Error(err))
	}
	if err := srv.Stop(context.Background()); err != nil && !errors.Is(err, server.ErrServerNotRunning) {
		logger.Error("stop frame server", log.Error(err))
	}
}
