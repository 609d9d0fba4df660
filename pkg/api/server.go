package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/init-js/jshint-mode/pkg/history"
	"github.com/init-js/jshint-mode/pkg/lintconf"
	"github.com/init-js/jshint-mode/pkg/linter"
)

// Server is the HTTP front end of the lint daemon. It owns the Gin router
// and dispatches /check requests to the configured linters.
type Server struct {
	config     *Config
	configs    *lintconf.Cache
	linters    *linter.Registry
	history    *history.Storage
	httpServer *http.Server
	router     *gin.Engine
}

// NewServer creates and initializes a server instance.
//
// store may be nil, which disables check history recording. The listener is
// not opened until [Server.Serve] is called with one.
func NewServer(cfg *Config, configs *lintconf.Cache, linters *linter.Registry, store *history.Storage) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	server := &Server{
		config:  cfg,
		configs: configs,
		linters: linters,
		history: store,
		router:  router,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server, nil
}

// Serve starts the HTTP server on a pre-bound listener in a background
// goroutine. The listener comes from [Listen] so the dynamically chosen port
// is known before the first request.
func (s *Server) Serve(ln net.Listener) {
	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	log.Infof("Serving on %s", ln.Addr())

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()
}

// Stop gracefully shuts down the HTTP server, waiting for in-flight
// requests to complete (up to 10 seconds).
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	log.Info("Server stopped gracefully")
	return nil
}

// GetRouter returns the underlying Gin router instance. Primarily useful
// for tests that inject requests without opening a listener.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
