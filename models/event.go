package models

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// UntitledPlaceholder is substituted for a missing title during normalization.
const UntitledPlaceholder = "(untitled)"

// EventRecord is one entry on the timeline. IDs are opaque and stable across
// edits; DateISO is a calendar date only (YYYY-MM-DD, no time component).
type EventRecord struct {
	ID       string `json:"id"`
	DateISO  string `json:"dateISO"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
	Image    string `json:"image"`
}

// RawEvent is the loosely-shaped wire/storage form of an event. Older
// snapshots and some remote rows carry the date under "date" instead of
// "dateISO", and any field may be absent.
type RawEvent struct {
	ID       string `json:"id"`
	DateISO  string `json:"dateISO"`
	Date     string `json:"date"` // legacy field name
	Title    string `json:"title"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
	Image    string `json:"image"`
}

// newEventID generates a short, URL-safe, practically-unique token.
// Collisions are irrelevant at personal scale, so no uniqueness check
// beyond the generator's entropy.
func newEventID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// NormalizeEvent produces a well-formed EventRecord from loose input, or nil
// when the input itself is absent. A provided id is kept verbatim so remote
// identity survives the round trip; otherwise a fresh token is assigned.
// The date is truncated to its first 10 characters (time of day discarded);
// a record with no usable date normalizes with an empty DateISO, which sorts
// first and is treated as invalid for display purposes by callers.
func NormalizeEvent(raw *RawEvent) *EventRecord {
	if raw == nil {
		return nil
	}

	date := raw.DateISO
	if date == "" {
		date = raw.Date
	}
	if len(date) > 10 {
		date = date[:10]
	}

	title := raw.Title
	if title == "" {
		title = UntitledPlaceholder
	}

	id := raw.ID
	if id == "" {
		id = newEventID()
	}

	return &EventRecord{
		ID:       id,
		DateISO:  date,
		Title:    title,
		Category: raw.Category,
		Notes:    raw.Notes,
		Image:    raw.Image,
	}
}

// NormalizeEvents runs NormalizeEvent over a raw slice, dropping entries that
// normalize to nil, and returns the result sorted by date.
func NormalizeEvents(raws []*RawEvent) []EventRecord {
	events := make([]EventRecord, 0, len(raws))
	for _, raw := range raws {
		if ev := NormalizeEvent(raw); ev != nil {
			events = append(events, *ev)
		}
	}
	SortEventsByDate(events)
	return events
}

// SortEventsByDate orders events ascending by DateISO. The sort is stable so
// same-day events keep their existing relative order. ISO dates compare
// correctly as plain strings; empty (invalid) dates sort first.
func SortEventsByDate(events []EventRecord) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].DateISO < events[j].DateISO
	})
}

// MatchesFilter reports whether the event survives a category filter plus a
// case-insensitive substring query over title, notes, and category. Empty
// filter values match everything.
func (e *EventRecord) MatchesFilter(category, query string) bool {
	if category != "" && e.Category != category {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.Notes), q) ||
		strings.Contains(strings.ToLower(e.Category), q)
}
