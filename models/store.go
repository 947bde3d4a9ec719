package models

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// ============================================================================
// Event Store (orchestrator)
//
// Owns the authoritative in-memory event collection. Every mutation persists
// the full snapshot immediately (no batching) and then attempts the matching
// remote call when sync is configured. A failed remote call is reported but
// never rolls back the local change — local state always wins.
//
// Concurrency: a mutex guards the collection because HTTP handlers run
// concurrently. The atomic syncing flag is the only guard on remote refresh:
// an overlapping SyncFromRemote is ignored outright, never queued, and the
// flag is cleared on every exit path.
// ============================================================================

var (
	ErrValidation   = errors.New("date and title are required")
	ErrImportFormat = errors.New("import payload must be an object with an events array")
)

// SyncStatus reports the sync state for UI display.
type SyncStatus struct {
	Enabled   bool       `json:"enabled"`
	Syncing   bool       `json:"syncing"`
	LastSync  *time.Time `json:"lastSync"` // nil if never synced
	LastError string     `json:"lastError,omitempty"`
}

// EventStore is the hub component: it applies mutations, resolves queries,
// and drives persistence and remote synchronization.
type EventStore struct {
	mu             sync.Mutex
	events         []EventRecord // always sorted ascending by DateISO
	zoom           float64
	filterCategory string
	query          string
	lastSync       time.Time
	lastRemoteErr  error

	local   SnapshotStore
	remote  RemoteStore // nil or disabled means local-only mode
	syncing atomic.Bool // in-flight guard for SyncFromRemote
}

// NewEventStore loads the persisted snapshot and returns a ready store.
// remote may be nil for local-only operation.
func NewEventStore(local SnapshotStore, remote RemoteStore) *EventStore {
	snap := local.LoadSnapshot()
	SortEventsByDate(snap.Events)

	return &EventStore{
		events:         snap.Events,
		zoom:           snap.Zoom,
		filterCategory: snap.FilterCategory,
		query:          snap.Query,
		local:          local,
		remote:         remote,
	}
}

// remoteEnabled reports whether a usable remote gateway is attached.
func (s *EventStore) remoteEnabled() bool {
	return s.remote != nil && s.remote.Enabled()
}

// persistLocked writes the current snapshot. Callers must hold s.mu.
// A write failure is logged, not propagated: local persistence trouble never
// blocks in-memory operation.
func (s *EventStore) persistLocked() {
	snap := &Snapshot{
		Events:         append([]EventRecord{}, s.events...),
		Zoom:           s.zoom,
		FilterCategory: s.filterCategory,
		Query:          s.query,
	}
	if err := s.local.SaveSnapshot(snap); err != nil {
		logger.LogErr(err, "failed to persist snapshot")
	}
}

// AddOrUpdate validates and applies one event: replace-in-place when an event
// with the same id exists, append otherwise, then re-sort and persist. When
// remote sync is enabled the event is upserted remotely and a silent full
// refresh follows, sequenced strictly after the upsert. A remote failure is
// returned so the caller can report it, but the local change stands.
func (s *EventStore) AddOrUpdate(ctx context.Context, ev EventRecord) (EventRecord, error) {
	ev.Title = strings.TrimSpace(ev.Title)
	ev.Category = strings.TrimSpace(ev.Category)
	ev.Notes = strings.TrimSpace(ev.Notes)
	ev.Image = strings.TrimSpace(ev.Image)
	if len(ev.DateISO) > 10 {
		ev.DateISO = ev.DateISO[:10]
	}

	if ev.DateISO == "" || ev.Title == "" {
		return EventRecord{}, ErrValidation
	}
	if ev.ID == "" {
		ev.ID = newEventID()
	}

	s.mu.Lock()
	replaced := false
	for i := range s.events {
		if s.events[i].ID == ev.ID {
			s.events[i] = ev
			replaced = true
			break
		}
	}
	if !replaced {
		s.events = append(s.events, ev)
	}
	SortEventsByDate(s.events)
	s.persistLocked()
	s.mu.Unlock()

	logger.Info("Event saved", "id", ev.ID, "date", ev.DateISO, "updated", replaced)

	if !s.remoteEnabled() {
		return ev, nil
	}

	if err := s.remote.Upsert(ctx, ev); err != nil {
		s.recordRemoteErr(err)
		return ev, serr.Wrap(err, "remote save failed")
	}
	s.recordRemoteOK()

	// Background refresh runs only after the write's own remote call has
	// completed, so the full fetch can never race the upsert it follows.
	if err := s.SyncFromRemote(ctx, true); err != nil {
		logger.LogErr(err, "post-save refresh failed")
	}
	return ev, nil
}

// Delete removes the event matching id and persists. Confirmation is the
// caller's concern. The remote delete follows the same no-rollback policy as
// AddOrUpdate. Deleting an unknown id is a no-op.
func (s *EventStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	found := false
	kept := s.events[:0]
	for _, ev := range s.events {
		if ev.ID == id {
			found = true
			continue
		}
		kept = append(kept, ev)
	}
	s.events = kept
	if found {
		s.persistLocked()
	}
	s.mu.Unlock()

	if !found {
		return nil
	}
	logger.Info("Event deleted", "id", id)

	if !s.remoteEnabled() {
		return nil
	}

	if err := s.remote.Delete(ctx, id); err != nil {
		s.recordRemoteErr(err)
		return serr.Wrap(err, "remote delete failed")
	}
	s.recordRemoteOK()

	if err := s.SyncFromRemote(ctx, true); err != nil {
		logger.LogErr(err, "post-delete refresh failed")
	}
	return nil
}

// SyncFromRemote fetches the full remote collection and replaces the local
// one wholesale — no merge, no per-item diff. A local event never upserted
// remotely is therefore dropped by a successful sync; that last-full-fetch-
// wins behavior is deliberate and must be preserved.
//
// A call while another sync is in flight is ignored, not queued. On failure
// local state is untouched. In silent mode failures are only logged by the
// callers that choose to.
func (s *EventStore) SyncFromRemote(ctx context.Context, silent bool) error {
	if !s.remoteEnabled() {
		return nil
	}
	if !s.syncing.CompareAndSwap(false, true) {
		return nil // a sync is already running; skip this one
	}
	defer s.syncing.Store(false)

	if !silent {
		logger.Info("Syncing from remote")
	}

	events, err := s.remote.List(ctx)
	if err != nil {
		s.recordRemoteErr(err)
		return serr.Wrap(err, "sync failed")
	}

	s.mu.Lock()
	s.events = events
	s.lastSync = time.Now()
	s.lastRemoteErr = nil
	s.persistLocked()
	count := len(s.events)
	s.mu.Unlock()

	if !silent {
		logger.Info("Sync complete", "events", count)
	}
	return nil
}

// StartAutoSync launches the configured background refresh behavior: an
// immediate fetch when onLoad is set, then a silent fetch per interval tick.
// A tick that lands while a sync is still in flight is skipped by the
// in-flight guard. Returns immediately; the loop stops with the context.
func (s *EventStore) StartAutoSync(ctx context.Context, onLoad bool, interval time.Duration) {
	if !s.remoteEnabled() {
		logger.Info("Remote sync not configured, running in local mode")
		return
	}

	if onLoad {
		go func() {
			if err := s.SyncFromRemote(ctx, false); err != nil {
				logger.LogErr(err, "startup sync failed")
			}
		}()
	}

	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.SyncFromRemote(ctx, true); err != nil {
					logger.LogErr(err, "background sync failed")
				}
			}
		}
	}()

	logger.Info("Auto-sync started", "on_load", onLoad, "interval", interval.String())
}

// ImportFrom replaces the collection from an exported document. Anything but
// an object containing an events array is rejected without mutating state.
func (s *EventStore) ImportFrom(blob []byte) error {
	var doc struct {
		Events []*RawEvent `json:"events"`
	}
	if err := json.Unmarshal(blob, &doc); err != nil {
		return ErrImportFormat
	}
	if doc.Events == nil {
		return ErrImportFormat
	}

	events := NormalizeEvents(doc.Events)

	s.mu.Lock()
	s.events = events
	s.persistLocked()
	s.mu.Unlock()

	logger.Info("Import complete", "events", len(events))
	return nil
}

// ExportSnapshot produces the export document: a pretty-printed JSON object
// holding the full event collection. No state change.
func (s *EventStore) ExportSnapshot() ([]byte, error) {
	doc := struct {
		Events []EventRecord `json:"events"`
	}{Events: s.Events()}

	blob, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, serr.Wrap(err, "failed to serialize export")
	}
	return blob, nil
}

// ResetAll clears the collection and the filters. The caller is responsible
// for confirming this with the user first. Zoom is kept.
func (s *EventStore) ResetAll() error {
	s.mu.Lock()
	s.events = []EventRecord{}
	s.filterCategory = ""
	s.query = ""
	s.persistLocked()
	s.mu.Unlock()

	logger.Info("All events cleared")
	return nil
}

// ----------------------------------------------------------------------------
// Query surface — the view layer is a pure consumer of these.
// ----------------------------------------------------------------------------

// Events returns a copy of the full sorted collection.
func (s *EventStore) Events() []EventRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]EventRecord{}, s.events...)
}

// FilteredEvents returns the events surviving the current category filter and
// search query, in date order.
func (s *EventStore) FilteredEvents() []EventRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]EventRecord, 0, len(s.events))
	for _, ev := range s.events {
		if ev.MatchesFilter(s.filterCategory, s.query) {
			out = append(out, ev)
		}
	}
	return out
}

// Lookup finds one event by id.
func (s *EventStore) Lookup(id string) (EventRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range s.events {
		if ev.ID == id {
			return ev, true
		}
	}
	return EventRecord{}, false
}

// Categories returns the distinct non-empty categories in use, sorted.
func (s *EventStore) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[string]bool{}
	var cats []string
	for _, ev := range s.events {
		if ev.Category != "" && !seen[ev.Category] {
			seen[ev.Category] = true
			cats = append(cats, ev.Category)
		}
	}
	sort.Strings(cats)
	return cats
}

// Layout projects the current collection onto the timeline: full set for the
// extent, filtered set for the markers. Nil when there is nothing to show.
func (s *EventStore) Layout() *TimelineLayout {
	return BuildTimeline(s.Events(), s.FilteredEvents(), s.Zoom(), time.Now())
}

// ScrollOffset returns the y position of a date under the current zoom, for
// scrolling the view to a just-saved event.
func (s *EventStore) ScrollOffset(dateISO string) (float64, bool) {
	return ProjectDate(s.Events(), dateISO, s.Zoom())
}

// Prefs returns the current view preferences.
func (s *EventStore) Prefs() (zoom float64, filterCategory, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zoom, s.filterCategory, s.query
}

// Zoom returns the pixels-per-year scale.
func (s *EventStore) Zoom() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zoom
}

// SetZoom updates the scale and persists. The zoom must stay strictly
// positive; anything else is a validation failure.
func (s *EventStore) SetZoom(zoom float64) error {
	if zoom <= 0 {
		return ErrValidation
	}
	s.mu.Lock()
	s.zoom = zoom
	s.persistLocked()
	s.mu.Unlock()
	return nil
}

// SetFilterCategory sets the active category filter ("" clears) and persists.
func (s *EventStore) SetFilterCategory(category string) {
	s.mu.Lock()
	s.filterCategory = category
	s.persistLocked()
	s.mu.Unlock()
}

// SetQuery sets the search query and persists.
func (s *EventStore) SetQuery(query string) {
	s.mu.Lock()
	s.query = query
	s.persistLocked()
	s.mu.Unlock()
}

// Status reports the sync state for display.
func (s *EventStore) Status() SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := SyncStatus{
		Enabled: s.remoteEnabled(),
		Syncing: s.syncing.Load(),
	}
	if !s.lastSync.IsZero() {
		t := s.lastSync
		st.LastSync = &t
	}
	if s.lastRemoteErr != nil {
		st.LastError = s.lastRemoteErr.Error()
	}
	return st
}

func (s *EventStore) recordRemoteErr(err error) {
	s.mu.Lock()
	s.lastRemoteErr = err
	s.mu.Unlock()
}

func (s *EventStore) recordRemoteOK() {
	s.mu.Lock()
	s.lastRemoteErr = nil
	s.mu.Unlock()
}
