package api

import (
	"context"
	"net/http"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// SyncStatus handles GET /api/v1/sync/status
// Returns the current sync state for the UI status indicator. When sync is
// not configured this returns a disabled state rather than an error so the
// UI can hide the sync controls gracefully.
func SyncStatus(ctx rweb.Context) error {
	return writeSuccess(ctx, http.StatusOK, store.Status())
}

// SyncNow handles POST /api/v1/sync
// Triggers an immediate refresh from the remote sheet. When a refresh is
// already in flight the call is a no-op, so a double-clicked sync button
// never stacks requests.
func SyncNow(ctx rweb.Context) error {
	if !store.Status().Enabled {
		return writeError(ctx, http.StatusServiceUnavailable, "sync is not configured")
	}

	if err := store.SyncFromRemote(context.Background(), false); err != nil {
		logger.LogErr(err, "manual sync failed")
		return writeError(ctx, http.StatusBadGateway, err.Error())
	}

	return writeSuccess(ctx, http.StatusOK, store.Status())
}

// ListCategories handles GET /api/v1/categories
// Returns the distinct categories currently in use, sorted.
func ListCategories(ctx rweb.Context) error {
	return writeSuccess(ctx, http.StatusOK, store.Categories())
}
