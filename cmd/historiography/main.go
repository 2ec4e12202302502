package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/agors/historiography/internal/app"
	"github.com/agors/historiography/internal/infrastructure/terminal"
	"github.com/agors/historiography/internal/metrics"
	"github.com/agors/historiography/internal/pkg/config"
	"github.com/agors/historiography/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "historiography: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Configuration
	cfg := config.Load()

	// 2. Logger. The terminal owns stdout, so logs go to a file.
	logFile, err := logger.OpenFile(cfg.LogPath())
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	log := logger.Init(logger.Options{
		Level:     cfg.Log.Level,
		Pretty:    cfg.Log.Pretty,
		Output:    logFile,
		SessionID: uuid.NewString(),
		Env:       cfg.Env,
	})
	log.Info().Str("data_dir", cfg.DataDir).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Terminal
	term, err := terminal.Open()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer term.Close()

	// 4. Session
	runErr := app.New(cfg, term, log).Run(ctx)
	term.Close()

	if err := metrics.WriteTextfile(cfg.MetricsPath()); err != nil {
		log.Warn().Err(err).Str("path", cfg.MetricsPath()).Msg("could not write metrics textfile")
	}

	if errors.Is(runErr, context.Canceled) {
		log.Info().Msg("stopped by signal")
		return nil
	}
	return runErr
}
