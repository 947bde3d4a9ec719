package models

import (
	"time"
)

// Projection constants. The zoom factor is expressed in pixels per year of
// elapsed time; the height floor and padding guarantee a usable canvas even
// for a single event or a very short span.
const (
	DefaultZoom  = 60.0
	MinCanvasPx  = 400.0
	CanvasPadPx  = 120.0
	MinSpanYears = 0.5
	hoursPerYear = 365.2425 * 24 // average Gregorian year
)

// YearTick is one gridline on the time axis, positioned at the projection of
// January 1st of its year.
type YearTick struct {
	Year int     `json:"year"`
	Y    float64 `json:"y"`
}

// EventMarker pairs an event with its vertical pixel offset.
type EventMarker struct {
	Event EventRecord `json:"event"`
	Y     float64     `json:"y"`
}

// TimelineLayout is the full geometry of a rendered timeline: total canvas
// height, year gridlines, the "now" marker, and one marker per visible event.
type TimelineLayout struct {
	Origin     time.Time     `json:"origin"`
	TotalYears float64       `json:"totalYears"`
	Height     float64       `json:"height"`
	Ticks      []YearTick    `json:"ticks"`
	NowY       float64       `json:"nowY"`
	Events     []EventMarker `json:"events"`
}

// ParseDateISO parses a normalized YYYY-MM-DD date. The bool result is false
// for empty or malformed dates, which callers treat as invalid for display.
func ParseDateISO(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// YearsBetween measures the elapsed span from a to b in fractional years,
// using a fixed average year length. This is the single unit of measure for
// all vertical positioning on the timeline.
func YearsBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / hoursPerYear
}

// BuildTimeline projects events onto the vertical axis.
//
// The origin is the date of the earliest event in the full collection and the
// horizon is now — the timeline always extends to the present instant, not
// merely to the latest event. Only the visible (filtered) events produce
// markers, but origin and extent are computed from the full set, so changing
// a filter never rescales the axis.
//
// Returns nil when the full collection holds no event with a valid date;
// there is nothing to anchor the axis to.
func BuildTimeline(all, visible []EventRecord, zoom float64, now time.Time) *TimelineLayout {
	if zoom <= 0 {
		zoom = DefaultZoom
	}

	origin, ok := earliestDate(all)
	if !ok {
		return nil
	}

	totalYears := YearsBetween(origin, now)
	if totalYears < MinSpanYears {
		totalYears = MinSpanYears
	}

	height := totalYears*zoom + CanvasPadPx
	if height < MinCanvasPx {
		height = MinCanvasPx
	}

	layout := &TimelineLayout{
		Origin:     origin,
		TotalYears: totalYears,
		Height:     height,
		NowY:       YearsBetween(origin, now) * zoom,
	}

	// One tick per whole calendar year, origin year through the current year.
	for y := origin.Year(); y <= now.Year(); y++ {
		jan1 := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		layout.Ticks = append(layout.Ticks, YearTick{
			Year: y,
			Y:    YearsBetween(origin, jan1) * zoom,
		})
	}

	for _, ev := range visible {
		d, ok := ParseDateISO(ev.DateISO)
		if !ok {
			continue
		}
		layout.Events = append(layout.Events, EventMarker{
			Event: ev,
			Y:     YearsBetween(origin, d) * zoom,
		})
	}

	return layout
}

// ProjectDate returns the y offset of an arbitrary date against the earliest
// event in the collection. Used to scroll the view to a just-saved event.
// The bool result is false when there is no valid origin or the date itself
// does not parse.
func ProjectDate(all []EventRecord, dateISO string, zoom float64) (float64, bool) {
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	origin, ok := earliestDate(all)
	if !ok {
		return 0, false
	}
	d, ok := ParseDateISO(dateISO)
	if !ok {
		return 0, false
	}
	return YearsBetween(origin, d) * zoom, true
}

// earliestDate scans for the first parseable date in a date-sorted collection.
// Records with empty dates sort first, so skipping unparseable entries finds
// the true origin.
func earliestDate(events []EventRecord) (time.Time, bool) {
	for _, ev := range events {
		if d, ok := ParseDateISO(ev.DateISO); ok {
			return d, true
		}
	}
	return time.Time{}, false
}
