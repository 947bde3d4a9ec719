package api

import (
	"lifeline/models"

	"github.com/rohanthewiz/rweb"
)

// store is the event store handlers operate on, set once at server startup.
var store *models.EventStore

// SetStore wires the event store for the handlers in this package.
func SetStore(s *models.EventStore) {
	store = s
}

// APIResponse provides a consistent JSON response structure for all API
// endpoints. Success responses include data, error responses an error message.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// writeSuccess sends a successful JSON response with data.
func writeSuccess(ctx rweb.Context, status int, data interface{}) error {
	ctx.SetStatus(status)
	return ctx.WriteJSON(APIResponse{Success: true, Data: data})
}

// writeError sends an error JSON response.
func writeError(ctx rweb.Context, status int, message string) error {
	ctx.SetStatus(status)
	return ctx.WriteJSON(APIResponse{Success: false, Error: message})
}
