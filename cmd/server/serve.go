package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rohits-web03/llamastore/internal/app"
	"github.com/rohits-web03/llamastore/internal/config"
)

const shutdownTimeout = 5 * time.Second

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  `Run the HTTP API. Without --allow-write only the read routes, registration and token issuance are served.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&cfg.Port, "port", "p", cfg.Port, "Port to listen on")
	cmd.Flags().BoolVar(&cfg.Mode.AllowWrite, "allow-write", cfg.Mode.AllowWrite, "Register the create, update and delete routes")
	cmd.Flags().BoolVar(&cfg.Mode.Debug, "debug", cfg.Mode.Debug, "Register the debug routes")
	return cmd
}

func serve(parent context.Context, cfg *config.Config) error {
	log, flush, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer flush()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, *cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warnw("closing database failed", "err", err)
		}
	}()

	handler, err := a.Handler()
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: handler,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("starting llama store", "port", cfg.Port, "mode", cfg.Mode.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on port %s: %w", cfg.Port, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		doneCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(doneCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("goodbye")
	return nil
}
