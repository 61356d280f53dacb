// Package v1 wires the HTTP surface of the bank ledger service.
// It keeps handlers thin, delegating business rules to the banking service.
package v1

import (
    "net/http"

    chi "github.com/go-chi/chi/v5"
    chimw "github.com/go-chi/chi/v5/middleware"
    "log/slog"
    "github.com/tinoosan/bankledger/internal/service/banking"
)

// Server wires handlers and middleware using Chi.
type Server struct {
    svc   banking.Service
    ready ReadyChecker
    log   *slog.Logger
    rt    *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
// ready may be nil, in which case /readyz always reports ready.
func New(svc banking.Service, ready ReadyChecker, logger *slog.Logger) *Server {
    r := chi.NewRouter()
    r.Use(chimw.RequestID)
    r.Use(requestLogger(logger))
    r.Use(recoverer(logger))
    r.Use(metricsMiddleware)

    s := &Server{
        svc:   svc,
        ready: ready,
        rt:    r,
        log:   logger,
    }
    s.routes()
    return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
    // Accounts and sessions (public)
    s.rt.With(requireJSON, s.validatePostAccount()).Post("/v1/accounts", s.postAccount)
    s.rt.Get("/v1/accounts/exists", s.accountExists)
    s.rt.With(requireJSON, s.validatePostSession()).Post("/v1/sessions", s.postSession)
    // Authenticated
    s.rt.With(s.requireSession).Delete("/v1/sessions", s.deleteSession)
    s.rt.With(s.requireSession).Get("/v1/accounts/me", s.getMe)
    s.rt.With(s.requireSession, requireJSON, s.validateAmount()).Post("/v1/accounts/me/deposit", s.deposit)
    s.rt.With(s.requireSession, requireJSON, s.validateAmount()).Post("/v1/accounts/me/withdraw", s.withdraw)
    s.rt.With(s.requireSession).Get("/v1/recipients/{id}", s.getRecipient)
    s.rt.With(s.requireSession, requireJSON, s.validatePostTransfer()).Post("/v1/transfers", s.postTransfer)
    // Health and metrics (unversioned)
    s.rt.Get("/healthz", s.healthz)
    s.rt.Get("/readyz", s.readyz)
    s.rt.Handle("/metrics", metricsHandler())
}
