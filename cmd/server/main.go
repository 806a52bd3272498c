// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/tunila/internal/api"
	"github.com/tomtom215/tunila/internal/auth"
	"github.com/tomtom215/tunila/internal/config"
	"github.com/tomtom215/tunila/internal/logging"
	"github.com/tomtom215/tunila/internal/recommend"
	"github.com/tomtom215/tunila/internal/store"
	"github.com/tomtom215/tunila/internal/supervisor"
	"github.com/tomtom215/tunila/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("backend", cfg.Store.Backend).
		Str("auth_mode", cfg.Security.AuthMode).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting Tunila with supervisor tree")

	warnAboutSecurity(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st, err := openStore(ctx, &cfg.Store)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open song store")
	}

	if err := run(ctx, cfg, st); err != nil {
		logging.Error().Err(err).Msg("Server stopped with error")
	}

	// The HTTP server has drained by now, so no request still uses the store.
	closeCtx, closeCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer closeCancel()
	if err := st.Close(closeCtx); err != nil {
		logging.Error().Err(err).Msg("Error closing song store")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// run wires the engine and HTTP server onto the supervisor tree and blocks
// until ctx is canceled and the tree has stopped.
func run(ctx context.Context, cfg *config.Config, st store.Store) error {
	engine, err := recommend.NewEngine(st, &recommend.Config{
		Limits: recommend.LimitsConfig{
			DefaultLimit: cfg.Recommend.DefaultLimit,
			MaxLimit:     cfg.Recommend.MaxLimit,
		},
	}, logging.Logger())
	if err != nil {
		return err
	}

	var jwtManager *auth.JWTManager
	if cfg.Security.AuthMode == config.AuthModeJWT {
		jwtManager, err = auth.NewJWTManager(&cfg.Security)
		if err != nil {
			return err
		}
	}

	handler := api.NewHandler(st, engine, cfg)
	router := api.NewRouter(
		handler,
		auth.NewMiddleware(jwtManager, cfg.Security.AuthMode, cfg.Security.JWTCookieName),
		api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)),
	)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	tree.AddDataService(services.NewStoreHealthService(st, cfg.Store.HealthInterval, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// The channel receives exactly one value and is never closed.
	var runErr error
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		runErr = err
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	return runErr
}

func warnAboutSecurity(cfg *config.Config) {
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("SECURITY WARNING: CORS allows any origin (CORS_ORIGINS=*) while authentication is enabled")
	}
	if cfg.ShouldWarnAboutJWTSecret() {
		logging.Warn().Msg("SECURITY WARNING: JWT_SECRET is shorter than recommended; tokens are easier to forge")
	}
	if cfg.Security.AuthMode == config.AuthModeNone {
		logging.Warn().Msg("Authentication disabled (AUTH_MODE=none): like/unlike trust the userId in the request body")
	}
}
