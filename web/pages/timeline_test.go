package pages

import (
	"strings"
	"testing"

	"lifeline/models"
)

type stubSnapshotStore struct {
	snap *models.Snapshot
}

func (s *stubSnapshotStore) LoadSnapshot() *models.Snapshot {
	if s.snap == nil {
		return models.DefaultSnapshot()
	}
	return s.snap
}

func (s *stubSnapshotStore) SaveSnapshot(snap *models.Snapshot) error {
	s.snap = snap
	return nil
}

func storeWith(events ...models.EventRecord) *models.EventStore {
	return models.NewEventStore(&stubSnapshotStore{snap: &models.Snapshot{
		Events: events,
		Zoom:   models.DefaultZoom,
	}}, nil)
}

// TestTimelinePageEmptyState verifies the empty state renders when there
// are no events, and that no timeline spine is drawn.
func TestTimelinePageEmptyState(t *testing.T) {
	html := TimelinePage(storeWith())

	if !strings.Contains(html, "No events yet") {
		t.Error("empty page should show the empty state")
	}
	if strings.Contains(html, `id="timeline"`) {
		t.Error("empty page should not render the timeline container")
	}
	if !strings.Contains(html, "0 events") {
		t.Error("stats should show a zero count")
	}
}

// TestTimelinePageRendersEvents verifies event cards, year labels, and the
// now marker appear with positioned styles.
func TestTimelinePageRendersEvents(t *testing.T) {
	html := TimelinePage(storeWith(
		models.EventRecord{ID: "a1", DateISO: "2020-03-15", Title: "Moved to Lisbon", Category: "Travel"},
		models.EventRecord{ID: "b2", DateISO: "2022-07-01", Title: "Promotion", Notes: "Senior role"},
	))

	for _, want := range []string{
		"Moved to Lisbon",
		"Promotion",
		"Senior role",
		"now-marker",
		"year-label",
		`id="timeline"`,
		"2 events",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page should contain %q", want)
		}
	}

	// Cards carry the edit hook with the event id
	if !strings.Contains(html, "editEvent(") {
		t.Error("event card should wire the edit handler")
	}
}

// TestTimelinePageCategoryChips verifies chips render for categories in use
// and the active filter is marked.
func TestTimelinePageCategoryChips(t *testing.T) {
	store := storeWith(
		models.EventRecord{ID: "a1", DateISO: "2020-01-01", Title: "A", Category: "Work"},
		models.EventRecord{ID: "b2", DateISO: "2021-01-01", Title: "B", Category: "Travel"},
	)
	store.SetFilterCategory("Work")

	html := TimelinePage(store)

	if !strings.Contains(html, "Travel") {
		t.Error("chips should include Travel")
	}
	if !strings.Contains(html, "● Work") {
		t.Error("active filter chip should be marked")
	}
}

// TestTimelinePageCategoryDataList verifies the category input suggests
// existing categories through a datalist.
func TestTimelinePageCategoryDataList(t *testing.T) {
	html := TimelinePage(storeWith(
		models.EventRecord{ID: "a1", DateISO: "2020-01-01", Title: "A", Category: "Work"},
		models.EventRecord{ID: "b2", DateISO: "2021-01-01", Title: "B", Category: "Travel"},
	))

	if !strings.Contains(html, `<datalist id="categoryList">`) {
		t.Error("page should render the category datalist")
	}
	for _, want := range []string{`<option value="Work">`, `<option value="Travel">`} {
		if !strings.Contains(html, want) {
			t.Errorf("datalist should contain %q", want)
		}
	}
	if !strings.Contains(html, `list="categoryList"`) {
		t.Error("category input should reference the datalist")
	}
}

// TestDeleteRequiresConfirmation verifies the page script gates both the
// single delete and the full reset behind a confirm dialog.
func TestDeleteRequiresConfirmation(t *testing.T) {
	html := TimelinePage(storeWith())

	if !strings.Contains(html, "confirm('Delete this event?')") {
		t.Error("delete handler should ask for confirmation")
	}
	if !strings.Contains(html, "confirm('Delete every event?") {
		t.Error("reset handler should ask for confirmation")
	}
}

// TestCategoryColorStable verifies the derived color depends only on the name.
func TestCategoryColorStable(t *testing.T) {
	if categoryColor("Work", 50) != categoryColor("Work", 50) {
		t.Error("same category must map to the same color")
	}
	if categoryColor("Work", 50) == categoryColor("Travel", 50) {
		t.Error("different categories should usually differ")
	}
	if !strings.HasPrefix(categoryColor("Work", 30), "hsl(") {
		t.Errorf("unexpected color format: %s", categoryColor("Work", 30))
	}
}

// TestTimelinePageLocalOnlyStatus verifies the sync button is hidden and the
// status reads local-only when no remote is configured.
func TestTimelinePageLocalOnlyStatus(t *testing.T) {
	html := TimelinePage(storeWith())

	if !strings.Contains(html, "Local only") {
		t.Error("status should indicate local-only mode")
	}
	if strings.Contains(html, `id="sync"`) {
		t.Error("sync button should not render without a remote")
	}
}
