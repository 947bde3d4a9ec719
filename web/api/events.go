package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"lifeline/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// ListEvents handles GET /api/v1/events
// Returns all events sorted by date, with optional filtering.
//
// Query parameters:
//   - cat: Filter by exact category name (e.g., ?cat=Work)
//   - q: Case-insensitive substring search over title, notes, and category
func ListEvents(ctx rweb.Context) error {
	cat := ctx.Request().QueryParam("cat")
	query := ctx.Request().QueryParam("q")

	events := store.Events()
	if cat != "" || query != "" {
		filtered := make([]models.EventRecord, 0, len(events))
		for _, ev := range events {
			if ev.MatchesFilter(cat, query) {
				filtered = append(filtered, ev)
			}
		}
		events = filtered
	}

	return writeSuccess(ctx, http.StatusOK, events)
}

// GetEvent handles GET /api/v1/events/:id
func GetEvent(ctx rweb.Context) error {
	id := ctx.Request().Param("id")
	ev, ok := store.Lookup(id)
	if !ok {
		return writeError(ctx, http.StatusNotFound, "event not found")
	}
	return writeSuccess(ctx, http.StatusOK, ev)
}

// SaveEvent handles POST /api/v1/events
// Creates or updates an event from the JSON body. An empty id means create;
// a known id replaces the existing event in place.
//
// When the X-Body-Encoding header is "msgpack", the image field arrives as
// base64-wrapped msgpack and is unwrapped before saving. This keeps large
// data-URI images compact on the wire.
func SaveEvent(ctx rweb.Context) error {
	var ev models.EventRecord

	if ctx.Request().Header("X-Body-Encoding") == "msgpack" {
		var packed models.MsgPackEvent
		if err := json.Unmarshal(ctx.Request().Body(), &packed); err != nil {
			logger.LogErr(serr.Wrap(err, "failed to decode request body"), "invalid JSON")
			return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
		}
		rec, err := packed.ToEventRecord()
		if err != nil {
			logger.LogErr(serr.Wrap(err, "failed to decode packed image"), "bad image encoding")
			return writeError(ctx, http.StatusBadRequest, "bad image encoding")
		}
		ev = rec
	} else {
		if err := json.Unmarshal(ctx.Request().Body(), &ev); err != nil {
			logger.LogErr(serr.Wrap(err, "failed to decode request body"), "invalid JSON")
			return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
		}
	}

	saved, err := store.AddOrUpdate(context.Background(), ev)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			return writeError(ctx, http.StatusBadRequest, err.Error())
		}
		// The event is saved locally even when the remote write fails, so
		// report the saved record along with a warning status.
		logger.LogErr(err, "remote save failed", "id", saved.ID)
		return writeSuccess(ctx, http.StatusAccepted, saved)
	}

	logger.Info("Event saved", "id", saved.ID, "date", saved.DateISO)
	return writeSuccess(ctx, http.StatusOK, saved)
}

// DeleteEvent handles DELETE /api/v1/events/:id
// Removes the event locally and from the remote sheet when sync is configured.
func DeleteEvent(ctx rweb.Context) error {
	id := ctx.Request().Param("id")
	if id == "" {
		return writeError(ctx, http.StatusBadRequest, "event id is required")
	}

	if err := store.Delete(context.Background(), id); err != nil {
		logger.LogErr(err, "remote delete failed", "id", id)
		return writeSuccess(ctx, http.StatusAccepted, map[string]string{"id": id})
	}

	logger.Info("Event deleted", "id", id)
	return writeSuccess(ctx, http.StatusOK, map[string]string{"id": id})
}

// GetTimeline handles GET /api/v1/timeline
// Returns the projected timeline layout for the current events and filters.
//
// An optional anchor query parameter (a date) adds the y offset of that date
// under the current zoom, so a client can scroll to a just-saved event.
func GetTimeline(ctx rweb.Context) error {
	layout := store.Layout()
	if layout == nil {
		return writeSuccess(ctx, http.StatusOK, map[string]interface{}{"empty": true})
	}

	if anchor := ctx.Request().QueryParam("anchor"); anchor != "" {
		resp := map[string]interface{}{"layout": layout}
		if y, ok := store.ScrollOffset(anchor); ok {
			resp["anchorY"] = y
		}
		return writeSuccess(ctx, http.StatusOK, resp)
	}

	return writeSuccess(ctx, http.StatusOK, layout)
}
