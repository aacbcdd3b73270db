package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"treasury_go/internal/app"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(*configPath); err != nil {
		slog.Error("bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline, err := bootstrap.BuildPipeline()
	if err != nil {
		slog.Error("pipeline assembly failed", slog.Any("error", err))
		os.Exit(1)
	}

	runErr := pipeline.Run(ctx)
	if closeErr := pipeline.Close(); closeErr != nil {
		slog.Warn("teardown incomplete", slog.Any("error", closeErr))
	}
	if runErr != nil {
		slog.Error("pipeline aborted", slog.Any("error", runErr))
		os.Exit(1)
	}

	slog.Info("all feeds drained, exiting")
}
