package web

import (
	"lifeline/models"
	"lifeline/web/api"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// NewServer creates and configures the RWeb server around an event store.
func NewServer(store *models.EventStore, addr string) *rweb.Server {
	return NewTestServer(store, rweb.ServerOptions{
		Address: addr,
		Verbose: true,
	})
}

// NewTestServer builds a server with caller-supplied options, typically a
// dynamic port and a ready channel for integration tests.
func NewTestServer(store *models.EventStore, opts rweb.ServerOptions) *rweb.Server {
	s := rweb.NewServer(opts)

	// Apply middleware
	s.Use(rweb.RequestInfo)          // Logs request info
	s.Use(CorsMiddleware)            // CORS headers
	s.Use(SecurityHeadersMiddleware) // Security headers
	s.Use(LoggingMiddleware)         // Request logging

	// Handlers resolve the store through the api package
	api.SetStore(store)

	setupRoutes(s, store)

	return s
}

// Run starts the server
func Run(s *rweb.Server, addr string) error {
	logger.Info("Lifeline web server starting", "address", addr)
	return s.Run()
}
