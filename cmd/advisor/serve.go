package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mlorentedev/advisor/internal/config"
	"github.com/mlorentedev/advisor/internal/credential"
	"github.com/mlorentedev/advisor/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the consultation page and JSON API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "override listen port")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	adv, models, err := buildAdvisor(ctx, cfg, useMock, credentialSource(cfg), logger)
	if err != nil {
		return err
	}

	if cfg.APIKey != "" {
		logger.Info("auth: API key required (X-API-Key header)")
	} else {
		logger.Info("auth: disabled (no api_key configured)")
	}

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: server.SetupMux(adv, server.Options{
			Models:    models,
			Logger:    logger,
			APIKey:    cfg.APIKey,
			RateLimit: cfg.RateLimit,
			Timeout:   cfg.RequestTimeout,
		}),
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("advisor listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// credentialSource consults the secrets store first, then the environment.
func credentialSource(cfg config.Config) credential.Source {
	return credential.Chain{credential.NewSecretStore(cfg.Secrets), credential.Env{}}
}
