package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"waterdelivery/cmd"
	httpin "waterdelivery/internal/adapters/in/http"
	"waterdelivery/internal/pkg/logger"

	"github.com/labstack/gommon/log"
)

func main() {
	configs := cmd.LoadConfig()

	appLogger, zl, err := logger.New(configs.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err = run(configs, appLogger); err != nil {
		appLogger.Error("Application stopped", "error", err)
		os.Exit(1)
	}
}

func run(configs cmd.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := cmd.OpenDatabase(configs)
	if err != nil {
		return err
	}

	dedup, closeDedup, err := cmd.OpenDeduplicator(ctx, configs)
	if err != nil {
		return err
	}
	defer func() { _ = closeDedup() }()

	notifier, closeNotifier, err := cmd.OpenNotifier(configs, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeNotifier() }()

	app := cmd.NewCompositionRoot(configs, db, notifier, dedup, logger)

	jobManager := app.JobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, app.HTTPServer(), configs.HTTPPort, logger)
}

func startWebServer(ctx context.Context, server *httpin.Server, port string, logger *slog.Logger) error {
	e := httpin.NewEcho(server)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "port", port)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
