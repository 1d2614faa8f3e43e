package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"signyard/internal/core/routes"
	"signyard/internal/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the sync worker (default).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.cfg.ValidateServer(); err != nil {
		return err
	}

	if a.cfg.SeedOnStart {
		data, err := seed.Default()
		if err != nil {
			return err
		}
		if _, err := a.container.Seeder.Seed(ctx, data, false); err != nil {
			return fmt.Errorf("seed on start: %w", err)
		}
	}

	router, err := routes.NewRouter(a.cfg, a.container, a.log)
	if err != nil {
		return err
	}

	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	go a.container.Syncer.Run(workerCtx)

	server := &http.Server{
		Addr:              a.cfg.AppHost,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.log.Info("Starting server", zap.String("addr", a.cfg.AppHost))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
