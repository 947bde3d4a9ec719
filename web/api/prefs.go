package api

import (
	"encoding/json"
	"net/http"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// prefsPayload carries the view preferences over the wire. Pointer fields
// distinguish "not sent" from "set to the zero value" so a partial update
// leaves the other preferences alone.
type prefsPayload struct {
	Zoom           *float64 `json:"zoom,omitempty"`
	FilterCategory *string  `json:"filterCategory,omitempty"`
	Query          *string  `json:"query,omitempty"`
}

// GetPrefs handles GET /api/v1/prefs
func GetPrefs(ctx rweb.Context) error {
	zoom, cat, query := store.Prefs()
	return writeSuccess(ctx, http.StatusOK, prefsPayload{
		Zoom:           &zoom,
		FilterCategory: &cat,
		Query:          &query,
	})
}

// SetPrefs handles PUT /api/v1/prefs
// Applies any preferences present in the body. Changes persist immediately,
// so a zoom tweak survives a restart even if no event is ever edited.
func SetPrefs(ctx rweb.Context) error {
	var input prefsPayload
	if err := json.Unmarshal(ctx.Request().Body(), &input); err != nil {
		logger.LogErr(serr.Wrap(err, "failed to decode request body"), "invalid JSON")
		return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
	}

	if input.Zoom != nil {
		if err := store.SetZoom(*input.Zoom); err != nil {
			return writeError(ctx, http.StatusBadRequest, "zoom must be positive")
		}
	}
	if input.FilterCategory != nil {
		store.SetFilterCategory(*input.FilterCategory)
	}
	if input.Query != nil {
		store.SetQuery(*input.Query)
	}

	zoom, cat, query := store.Prefs()
	return writeSuccess(ctx, http.StatusOK, prefsPayload{
		Zoom:           &zoom,
		FilterCategory: &cat,
		Query:          &query,
	})
}
