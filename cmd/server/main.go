// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

// Package main is the entry point for the MoodMate server.
//
// MoodMate recommends movies and music from the user's mood, the local
// weather and per-domain filters. Each generation costs one credit; users
// swipe through the results and accepted cards become favorites.
//
// # Startup Order
//
//  1. Configuration (Koanf v2: defaults, config.yaml, environment)
//  2. Logging (zerolog)
//  3. Storage backend (memory or BadgerDB) behind the write-behind WAL
//  4. Recommendation engine over the static or TMDb catalog
//  5. Weather provider (static or Open-Meteo behind a circuit breaker)
//  6. Session manager
//  7. Authentication and HTTP router
//  8. Supervisor tree (WAL retry, compactor, session sweeper, HTTP server)
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The supervisor stops every
// service, open sessions are closed and the storage backend is released.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/moodmate/internal/api"
	"github.com/tomtom215/moodmate/internal/config"
	"github.com/tomtom215/moodmate/internal/logging"
	"github.com/tomtom215/moodmate/internal/session"
	"github.com/tomtom215/moodmate/internal/supervisor"
	"github.com/tomtom215/moodmate/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("auth_mode", cfg.Auth.Mode).
		Str("storage", cfg.Storage.Backend).
		Str("catalog", cfg.Catalog.Source).
		Str("weather", cfg.Weather.Provider).
		Msg("Starting MoodMate")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	persistence, err := initPersistence(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	defer persistence.Close()

	engine, err := initEngine(cfg)
	if err != nil {
		persistence.Close()
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}

	manager, err := session.NewManager(session.Config{
		InitialCredits:          cfg.Credits.InitialBalance,
		AdCooldown:              cfg.Credits.AdCooldown,
		RefundOnGenerationError: cfg.Credits.RefundOnGenerationError,
		IdleTimeout:             cfg.Session.IdleTimeout,
		RecentLimit:             cfg.Session.RecentLimit,
	}, session.Deps{
		Engine:      engine,
		Weather:     initWeather(cfg),
		Persistence: persistence.writer,
		Logger:      logging.Logger(),
	})
	if err != nil {
		persistence.Close()
		logging.Fatal().Err(err).Msg("Failed to create session manager")
	}
	defer manager.CloseAll()

	router, err := initRouter(cfg, manager, persistence.writer)
	if err != nil {
		persistence.Close()
		logging.Fatal().Err(err).Msg("Failed to initialize HTTP router")
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfigFrom(cfg.Supervisor))
	if err != nil {
		persistence.Close()
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Data layer
	tree.AddDataService(services.NewWALRetryLoopService(persistence.retry))
	if persistence.compactor != nil {
		tree.AddDataService(services.NewWALCompactorService(persistence.compactor))
	}

	// Session layer
	tree.AddSessionService(services.NewSessionSweeperService(manager, cfg.Session.SweepInterval, logging.Logger()))

	// API layer
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// errCh receives exactly one value and is never closed.
	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
		cancel()
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if n := persistence.writer.Pending(); n > 0 {
		logging.Warn().Int("pending", n).Msg("Durable writes still queued at shutdown")
	}

	logging.Info().Msg("MoodMate stopped gracefully")
}

// initRouter wires authentication, rate limiting and the API handler.
func initRouter(cfg *config.Config, sessions api.Sessions, pending api.PendingCounter) (*api.Router, error) {
	authMiddleware, issuer, err := initAuth(cfg)
	if err != nil {
		return nil, err
	}

	chiCfg := api.DefaultChiMiddlewareConfig()
	chiCfg.CORSAllowedOrigins = cfg.Security.CORSOrigins
	chiCfg.RateLimitRequests = cfg.Security.RateLimitReqs
	chiCfg.RateLimitWindow = cfg.Security.RateLimitWindow
	chiCfg.RateLimitDisabled = cfg.Security.RateLimitDisabled

	handler := api.NewHandler(sessions, api.WithPendingCounter(pending), api.WithVersion(version))
	router := api.NewRouter(handler, authMiddleware, api.NewChiMiddleware(chiCfg))
	if issuer != nil {
		router.ConfigureTokenIssuer(api.NewTokenHandler(issuer))
		logging.Warn().Msg("Token issuing endpoint enabled (non-production environment)")
	}
	return router, nil
}
