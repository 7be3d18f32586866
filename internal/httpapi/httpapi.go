// Package httpapi exposes the character sheet services over a JSON REST API.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ushki/dndsheet/internal/config"
	"github.com/ushki/dndsheet/internal/service"
)

// Server wraps an http.Server with graceful shutdown, implementing the
// lifecycle Service contract.
type Server struct {
	srv         *http.Server
	logger      *zap.Logger
	gracePeriod time.Duration
}

// NewServer builds the HTTP server with all routes mounted.
func NewServer(
	cfg config.HTTPConfig,
	auth *service.AuthService,
	tokens *service.TokenProvider,
	characters *service.CharacterService,
	spells *service.SpellService,
	equipment *service.EquipmentService,
	logger *zap.Logger,
) *Server {
	mux := http.NewServeMux()

	authHandler := NewAuthHandler(auth, logger)
	authHandler.Register(mux)

	charHandler := NewCharacterHandler(characters, logger)
	catalogHandler := NewCatalogHandler(spells, equipment, logger)

	authed := RequireAuth(tokens, logger)
	charHandler.Register(mux, authed)
	catalogHandler.Register(mux, authed)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return &Server{
		srv: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      LogRequests(logger)(mux),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger:      logger,
		gracePeriod: cfg.ShutdownGracePeriod,
	}
}

// Start begins serving and blocks until the listener closes.
func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop drains in-flight requests, then forces remaining connections closed
// once the grace period elapses.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), s.gracePeriod)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("http shutdown incomplete", zap.Error(err))
		_ = s.srv.Close()
	}
}
