// Copyright (c) 2026 Chitalka. All rights reserved.
// Author: pkruglov.dev@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/pkruglov/chitalka/internal/platform/config"
	"github.com/pkruglov/chitalka/internal/platform/constants"
)

// Server wraps the probe router and its [http.Server].
type Server struct {
	httpServer *http.Server
	log        *slog.Logger
}

// NewServer builds the probe server. The bot has no other HTTP routes, so
// the router carries only the health endpoints.
func NewServer(cfg *config.Config, log *slog.Logger, liveness, readiness http.HandlerFunc) *Server {
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(constants.DefaultWriteTimeout))
	router.Use(chimw.CleanPath)

	router.Get("/health", liveness)
	router.Get("/ready", readiness)

	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.HealthPort,
			Handler:      router,
			ReadTimeout:  constants.DefaultReadTimeout,
			WriteTimeout: constants.DefaultWriteTimeout,
			IdleTimeout:  constants.DefaultIdleTimeout,
		},
		log: log,
	}
}

// ListenAndServe blocks serving probe traffic.
func (s *Server) ListenAndServe() error {
	s.log.Info("health_server_listening", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight probe requests within the timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
