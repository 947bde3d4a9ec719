package models

import (
	"encoding/json"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// SnapshotKey is the versioned key the full local state is stored under.
// Bump the suffix if the snapshot shape ever changes incompatibly.
const SnapshotKey = "life_timeline_v1"

// Snapshot is the full persisted local state: the event collection plus the
// view preferences, kept together so the UI picks up where it left off.
// An empty FilterCategory means no filter.
type Snapshot struct {
	Events         []EventRecord `json:"events"`
	Zoom           float64       `json:"zoom"`
	FilterCategory string        `json:"filterCategory"`
	Query          string        `json:"query"`
}

// rawSnapshot tolerates loose event shapes (legacy "date" field, missing
// strings) when decoding a stored or imported blob.
type rawSnapshot struct {
	Events         []*RawEvent `json:"events"`
	Zoom           float64     `json:"zoom"`
	FilterCategory string      `json:"filterCategory"`
	Query          string      `json:"query"`
}

// SnapshotStore is the single-blob persistence boundary. Implementations
// provide simple get/set semantics — no merging, no versioned history.
type SnapshotStore interface {
	LoadSnapshot() *Snapshot
	SaveSnapshot(snap *Snapshot) error
}

// DefaultSnapshot is the built-in state used when nothing is stored yet or
// the stored blob cannot be read.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{Events: []EventRecord{}, Zoom: DefaultZoom}
}

// DecodeSnapshot parses a serialized snapshot blob, normalizing every event
// and dropping records that normalize to nil. A zoom that is missing or
// non-positive falls back to the default.
func DecodeSnapshot(blob []byte) (*Snapshot, error) {
	var raw rawSnapshot
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, serr.Wrap(err, "failed to parse snapshot blob")
	}

	snap := &Snapshot{
		Events:         NormalizeEvents(raw.Events),
		Zoom:           raw.Zoom,
		FilterCategory: raw.FilterCategory,
		Query:          raw.Query,
	}
	if snap.Zoom <= 0 {
		snap.Zoom = DefaultZoom
	}
	return snap, nil
}

// EncodeSnapshot serializes the full snapshot for storage.
func EncodeSnapshot(snap *Snapshot) ([]byte, error) {
	blob, err := json.Marshal(snap)
	if err != nil {
		return nil, serr.Wrap(err, "failed to serialize snapshot")
	}
	return blob, nil
}

// DuckSnapshotStore persists the snapshot blob in the app_state table.
type DuckSnapshotStore struct{}

// LoadSnapshot reads and decodes the stored blob. Absence or a parse failure
// silently degrades to defaults — local persistence problems are never fatal.
func (DuckSnapshotStore) LoadSnapshot() *Snapshot {
	blob, err := GetState(SnapshotKey)
	if err != nil {
		logger.LogErr(err, "failed to read snapshot, using defaults")
		return DefaultSnapshot()
	}
	if blob == "" {
		return DefaultSnapshot()
	}

	snap, err := DecodeSnapshot([]byte(blob))
	if err != nil {
		logger.LogErr(err, "stored snapshot is unreadable, using defaults")
		return DefaultSnapshot()
	}
	return snap
}

// SaveSnapshot overwrites the stored blob unconditionally.
func (DuckSnapshotStore) SaveSnapshot(snap *Snapshot) error {
	blob, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	if err := SetState(SnapshotKey, string(blob)); err != nil {
		return serr.Wrap(err, "failed to write snapshot")
	}
	return nil
}
