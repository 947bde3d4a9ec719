package models_test

import (
	"os"
	"testing"

	"lifeline/models"
)

// setupSnapshotTestDB initializes a clean on-disk database for snapshot tests.
func setupSnapshotTestDB(t *testing.T) func() {
	t.Helper()

	os.Remove("./test_snapshot.ddb")
	os.Remove("./test_snapshot.ddb.wal")

	if err := models.InitTestDB("./test_snapshot.ddb"); err != nil {
		t.Fatalf("failed to initialize test database: %v", err)
	}

	return func() {
		models.CloseDB()
		os.Remove("./test_snapshot.ddb")
		os.Remove("./test_snapshot.ddb.wal")
	}
}

func TestDecodeSnapshotNormalizesEvents(t *testing.T) {
	blob := []byte(`{
		"events": [
			{"id": "a", "date": "2020-05-05T12:00:00Z", "title": "Legacy"},
			{"id": "b", "dateISO": "2019-01-01"},
			null
		],
		"zoom": 90,
		"filterCategory": "Work",
		"query": "acme"
	}`)

	snap, err := models.DecodeSnapshot(blob)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(snap.Events) != 2 {
		t.Fatalf("expected 2 events (null dropped), got %d", len(snap.Events))
	}
	if snap.Events[0].ID != "b" {
		t.Error("events not sorted by date after decode")
	}
	if snap.Events[1].DateISO != "2020-05-05" {
		t.Errorf("legacy date not normalized: %q", snap.Events[1].DateISO)
	}
	if snap.Events[0].Title != models.UntitledPlaceholder {
		t.Errorf("missing title not placeholdered: %q", snap.Events[0].Title)
	}
	if snap.Zoom != 90 || snap.FilterCategory != "Work" || snap.Query != "acme" {
		t.Errorf("prefs not decoded: %+v", snap)
	}
}

func TestDecodeSnapshotZoomFallback(t *testing.T) {
	snap, err := models.DecodeSnapshot([]byte(`{"events": [], "zoom": 0}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if snap.Zoom != models.DefaultZoom {
		t.Errorf("zoom = %f, want default %f", snap.Zoom, models.DefaultZoom)
	}
}

func TestDecodeSnapshotBadBlob(t *testing.T) {
	if _, err := models.DecodeSnapshot([]byte("{broken")); err == nil {
		t.Error("expected an error for an unparseable blob")
	}
}

func TestDuckSnapshotStoreRoundTrip(t *testing.T) {
	cleanup := setupSnapshotTestDB(t)
	defer cleanup()

	store := models.DuckSnapshotStore{}

	// First load on a fresh database falls back to defaults
	snap := store.LoadSnapshot()
	if len(snap.Events) != 0 || snap.Zoom != models.DefaultZoom {
		t.Errorf("fresh load should yield defaults, got %+v", snap)
	}

	snap = &models.Snapshot{
		Events: []models.EventRecord{
			{ID: "e1", DateISO: "2020-01-01", Title: "Saved"},
		},
		Zoom:           75,
		FilterCategory: "Life",
		Query:          "q",
	}
	if err := store.SaveSnapshot(snap); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded := store.LoadSnapshot()
	if len(loaded.Events) != 1 || loaded.Events[0].ID != "e1" {
		t.Fatalf("events did not round-trip: %+v", loaded.Events)
	}
	if loaded.Zoom != 75 || loaded.FilterCategory != "Life" || loaded.Query != "q" {
		t.Errorf("prefs did not round-trip: %+v", loaded)
	}

	// Save overwrites unconditionally — the second write wins outright
	snap.Events = nil
	snap.Zoom = 30
	if err := store.SaveSnapshot(snap); err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	loaded = store.LoadSnapshot()
	if len(loaded.Events) != 0 || loaded.Zoom != 30 {
		t.Errorf("overwrite did not take: %+v", loaded)
	}
}

func TestDuckSnapshotStoreCorruptBlobDegradesToDefaults(t *testing.T) {
	cleanup := setupSnapshotTestDB(t)
	defer cleanup()

	if err := models.SetState(models.SnapshotKey, "{definitely not json"); err != nil {
		t.Fatalf("failed to plant corrupt blob: %v", err)
	}

	snap := models.DuckSnapshotStore{}.LoadSnapshot()
	if snap == nil {
		t.Fatal("load must never return nil")
	}
	if len(snap.Events) != 0 || snap.Zoom != models.DefaultZoom {
		t.Errorf("corrupt blob should degrade to defaults, got %+v", snap)
	}
}
