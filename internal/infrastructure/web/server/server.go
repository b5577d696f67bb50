package server

import (
	"aetherium-service/internal/infrastructure/config"
	"aetherium-service/internal/infrastructure/logging"
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Server encapsulates HTTP server configuration
type Server struct {
	httpServer *http.Server
	port       int
}

func NewServer(handler http.Handler, cfg config.ServerConfig) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		port: cfg.Port,
	}
}

// Start blocks until the server stops. A graceful Stop is not reported as an error.
func (s *Server) Start() error {
	ctx := context.Background()

	logging.Info(ctx, "HTTP server starting", logging.Fields{
		"port": s.port,
	})

	logging.Info(ctx, "Available endpoints", logging.Fields{
		"endpoints": []string{
			fmt.Sprintf("GET  http://localhost:%d/api/crypto?convert=GBP", s.port),
			fmt.Sprintf("GET  http://localhost:%d/api/crypto/{id}", s.port),
			fmt.Sprintf("GET  http://localhost:%d/api/crypto/history/{id}?timeframe=7d", s.port),
			fmt.Sprintf("GET  http://localhost:%d/api/crypto/get-gecko-id/{symbol}", s.port),
			fmt.Sprintf("GET  http://localhost:%d/api/crypto/chart/{symbol}", s.port),
			fmt.Sprintf("GET  http://localhost:%d/api/crypto/symbols/status", s.port),
			fmt.Sprintf("GET  ws://localhost:%d/api/crypto/stream", s.port),
			fmt.Sprintf("GET  http://localhost:%d/api/coins/{geckoId}", s.port),
			fmt.Sprintf("GET  http://localhost:%d/api/coins/{geckoId}/chart", s.port),
			fmt.Sprintf("POST http://localhost:%d/api/ai/analyze-coin", s.port),
			fmt.Sprintf("GET  http://localhost:%d/swagger/index.html", s.port),
		},
	})

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// OnShutdown registers f to run when Stop is called; hijacked websocket
// connections are not closed by Shutdown itself.
func (s *Server) OnShutdown(f func()) {
	s.httpServer.RegisterOnShutdown(f)
}

// Stop stops the HTTP server gracefully
func (s *Server) Stop(ctx context.Context) error {
	logging.Info(ctx, "Stopping HTTP server gracefully", logging.Fields{
		"port": s.port,
	})
	return s.httpServer.Shutdown(ctx)
}
