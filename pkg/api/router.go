package api

import (
	"github.com/init-js/jshint-mode/pkg/api/handlers"
)

// setupRoutes configures the check route and the catch-all greeting
func (s *Server) setupRoutes() {
	checkHandler := handlers.NewCheckHandler(s.configs, s.linters, s.history)

	s.router.POST("/check", checkHandler.Check)

	// Everything else, including GET /check, answers the greeting. Editor
	// integrations probe this to see whether the daemon is alive.
	s.router.NoRoute(handlers.Greeting)
}
