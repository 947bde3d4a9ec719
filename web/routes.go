package web

import (
	"lifeline/models"
	"lifeline/web/api"
	"lifeline/web/pages"

	"github.com/rohanthewiz/rweb"
)

// setupRoutes configures all application routes
func setupRoutes(s *rweb.Server, store *models.EventStore) {
	// Page routes - HTML responses

	s.Get("/", func(ctx rweb.Context) error {
		ctx.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.WriteHTML(pages.TimelinePage(store))
	})

	// API v1 routes - JSON responses
	s.Get("/api/v1/events", api.ListEvents)         // Filtered event list
	s.Post("/api/v1/events", api.SaveEvent)         // Create or update an event
	s.Get("/api/v1/events/:id", api.GetEvent)       // Single event by id
	s.Delete("/api/v1/events/:id", api.DeleteEvent) // Remove an event by id

	s.Get("/api/v1/categories", api.ListCategories) // Distinct categories in use

	s.Get("/api/v1/timeline", api.GetTimeline) // Projected layout for rendering

	s.Post("/api/v1/sync", api.SyncNow)          // Trigger a remote refresh
	s.Get("/api/v1/sync/status", api.SyncStatus) // Sync state for the UI

	s.Get("/api/v1/export", api.ExportEvents)  // Download the export document
	s.Post("/api/v1/import", api.ImportEvents) // Replace the collection from a file

	s.Get("/api/v1/prefs", api.GetPrefs) // View preferences
	s.Put("/api/v1/prefs", api.SetPrefs) // Update view preferences (persists)

	s.Post("/api/v1/reset", api.ResetAll) // Clear everything (confirmed client-side)
}
