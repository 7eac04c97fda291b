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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rohits-web03/safehands/internal/api"
	"github.com/rohits-web03/safehands/internal/api/handlers"
	"github.com/rohits-web03/safehands/internal/config"
	"github.com/rohits-web03/safehands/internal/logger"
	"github.com/rohits-web03/safehands/internal/repositories"
	"github.com/rohits-web03/safehands/internal/services"
	"github.com/rohits-web03/safehands/internal/session"
	"github.com/rs/zerolog"
)

// @title SafeHands API
// @version 1.0
// @description Digital legacy vault: assets, trusted contacts, assignments and intentions.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New("safehands", cfg.LogLevel, !cfg.IsProduction())

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func openStore(cfg config.Config, log zerolog.Logger) (repositories.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := repositories.ConnectDatabase(cfg.DB_URL, log)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	case config.DriverMemory:
		log.Warn().Msg("Using in-memory store; data is lost on restart")
		return repositories.NewMemoryStore(), func() {}, nil
	default:
		log.Warn().Msg("No database configured; persistence is disabled")
		return nil, func() {}, nil
	}
}

func openSessions(ctx context.Context, cfg config.Config, log zerolog.Logger) (session.KV, func(), error) {
	if cfg.RedisAddr == "" {
		return repositories.NewMemorySessionStore(), func() {}, nil
	}
	rs := repositories.NewRedisSessionStore(cfg.RedisAddr, cfg.RedisPassword)
	if err := rs.Ping(ctx); err != nil {
		_ = rs.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("Using Redis session store")
	return rs, func() { _ = rs.Close() }, nil
}

func run(cfg config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	kv, closeSessions, err := openSessions(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSessions()

	var storage services.FileStorage
	if cfg.R2.Enabled() {
		storage = repositories.NewR2Store(cfg.R2.AccessKeyID, cfg.R2.SecretAccessKey, cfg.R2.AccountID, cfg.R2.BucketName, cfg.R2.Region)
	} else {
		log.Warn().Msg("R2 is not configured; asset file uploads are disabled")
	}

	var google *services.GoogleAuth
	if cfg.Google.Enabled() {
		google = services.NewGoogleAuth(cfg.Google)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	vault := services.NewVault(store)
	h := handlers.New(handlers.Deps{
		Log:         log,
		Sessions:    session.NewManager(kv, cfg.JWTSecret, cfg.SessionTTL),
		Accounts:    services.NewAccounts(store, cfg.IsSuperAdminEmail),
		Google:      google,
		Vault:       vault,
		Assignments: services.NewAssignments(store),
		Intentions:  services.NewIntentions(store),
		Profiles:    services.NewProfiles(store),
		Social:      services.NewSocial(store),
		Onboarding:  services.NewOnboarding(store),
		Waitlist:    services.NewWaitlist(store),
		Files:       services.NewFiles(vault, storage, log),
		Production:  cfg.IsProduction(),
		FrontendURL: cfg.FrontendURL,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: api.SetupRouter(h, api.OptionsFromConfig(cfg, log, reg)),
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("Starting SafeHands server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
