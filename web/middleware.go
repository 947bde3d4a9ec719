package web

import (
	"net/http"
	"time"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// CorsMiddleware handles CORS headers for cross-origin requests
func CorsMiddleware(c rweb.Context) error {
	c.Response().SetHeader("Access-Control-Allow-Origin", "*")
	c.Response().SetHeader("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	c.Response().SetHeader("Access-Control-Allow-Headers", "Content-Type, X-Body-Encoding, X-Requested-With")

	// Handle preflight OPTIONS requests
	if c.Request().Method() == "OPTIONS" {
		c.SetStatus(http.StatusOK)
		return nil
	}

	return c.Next()
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware(c rweb.Context) error {
	c.Response().SetHeader("X-Content-Type-Options", "nosniff")
	c.Response().SetHeader("X-Frame-Options", "DENY")
	c.Response().SetHeader("Referrer-Policy", "strict-origin-when-cross-origin")
	// img-src allows data: because event images may be inline data URIs
	c.Response().SetHeader("Content-Security-Policy",
		"default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:")

	return c.Next()
}

// LoggingMiddleware provides request logging
func LoggingMiddleware(c rweb.Context) error {
	start := time.Now()

	err := c.Next()

	logger.Debug("Request completed",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"duration", time.Since(start),
		"error", err,
	)

	return err
}
