package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"calibra/internal/app"
	"calibra/internal/platform/config"
	"calibra/internal/platform/httpserver"
	"calibra/internal/platform/logger"
	"calibra/internal/platform/ops"
)

// main wires the review service, serves the ops endpoints and runs the
// background workers until SIGINT or SIGTERM.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	opts := append(a.ReadinessChecks(), ops.WithMetrics(a.PlatformMetrics))
	srv := httpserver.New(cfg.Addr, ops.NewRouter(a.Registry, opts...))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting calibra", "addr", cfg.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error { return ignoreCanceled(a.Monitor.Run(gctx)) })
	if a.Relay != nil {
		g.Go(func() error { return ignoreCanceled(a.Relay.Run(gctx)) })
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		a.Close()
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
