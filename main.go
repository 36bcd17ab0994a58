package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskify/internal/auth"
	"taskify/internal/config"
	"taskify/internal/database"
	"taskify/internal/logging"
	"taskify/internal/router"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (optional)")
	seed := flag.Bool("seed", false, "insert default labels and the sample user at start-up")
	flag.Parse()

	if err := run(*configPath, *seed); err != nil {
		slog.Error("taskify exited", "err", err)
		os.Exit(1)
	}
}

func run(configPath string, seed bool) error {
	// load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logging.New(cfg.Log, os.Stdout)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// init database
	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("close database", "err", err)
		}
	}()

	// run migrations
	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	if seed {
		res, err := database.Seed(ctx, db, cfg.Security.BcryptCost)
		if err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
		log.Info("database seeded", "labels_created", res.LabelsCreated, "sample_user_created", res.SampleUserCreated)
	}

	codec, err := auth.NewCodec(cfg.JWT.Secret, auth.WithIssuer(cfg.JWT.Issuer))
	if err != nil {
		return fmt.Errorf("init token codec: %w", err)
	}
	sessions := auth.NewSessions(codec, auth.Cookies{Secure: cfg.Server.IsProduction()})

	// setup router
	r := router.SetupRouter(cfg, db, sessions, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("run server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
