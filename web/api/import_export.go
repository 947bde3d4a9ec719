package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"lifeline/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// ExportEvents handles GET /api/v1/export
// Sends the full collection as a downloadable JSON document shaped the same
// way ImportEvents expects, so an export can be re-imported as-is. The body
// is indented so the file diffs cleanly under version control.
func ExportEvents(ctx rweb.Context) error {
	doc, err := store.ExportSnapshot()
	if err != nil {
		logger.LogErr(serr.Wrap(err, "export failed"), "export failed")
		return writeError(ctx, http.StatusInternalServerError, "export failed")
	}

	filename := fmt.Sprintf("timeline-%s.json", time.Now().Format("2006-01-02"))
	ctx.Response().SetHeader("Content-Type", "application/json")
	ctx.Response().SetHeader("Content-Disposition", `attachment; filename="`+filename+`"`)

	return ctx.Bytes(doc)
}

// ImportEvents handles POST /api/v1/import
// Replaces the entire collection from an uploaded export document. The body
// must be a JSON object with an "events" array; anything else is rejected
// and the current collection is left untouched.
func ImportEvents(ctx rweb.Context) error {
	if err := store.ImportFrom(ctx.Request().Body()); err != nil {
		if errors.Is(err, models.ErrImportFormat) {
			return writeError(ctx, http.StatusBadRequest, err.Error())
		}
		logger.LogErr(serr.Wrap(err, "import failed"), "import failed")
		return writeError(ctx, http.StatusBadRequest, "invalid import document")
	}

	count := len(store.Events())
	logger.Info("Events imported", "count", count)
	return writeSuccess(ctx, http.StatusOK, map[string]int{"imported": count})
}

// ResetAll handles POST /api/v1/reset
// Clears every event and filter. The client confirms before calling this.
func ResetAll(ctx rweb.Context) error {
	store.ResetAll()
	logger.Info("All events cleared")
	return writeSuccess(ctx, http.StatusOK, map[string]string{"status": "cleared"})
}
