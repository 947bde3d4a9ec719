package models

import (
	"math"
	"testing"
	"time"
)

// The projection tolerance: fractional-year math uses an average year length,
// so a real calendar year lands within a fraction of a pixel of zoom*1.
const yTolerance = 1.0

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBuildTimelineProjection(t *testing.T) {
	all := []EventRecord{
		{ID: "a", DateISO: "2020-01-01", Title: "Origin"},
		{ID: "b", DateISO: "2021-01-01", Title: "One year in"},
	}
	now := date("2024-06-01")

	layout := BuildTimeline(all, all, 60, now)
	if layout == nil {
		t.Fatal("expected a layout")
	}

	if !layout.Origin.Equal(date("2020-01-01")) {
		t.Errorf("origin = %v, want 2020-01-01", layout.Origin)
	}

	if len(layout.Events) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(layout.Events))
	}
	if layout.Events[0].Y != 0 {
		t.Errorf("origin event y = %f, want 0", layout.Events[0].Y)
	}
	if math.Abs(layout.Events[1].Y-60) > yTolerance {
		t.Errorf("one-year event y = %f, want 60±%f", layout.Events[1].Y, yTolerance)
	}

	// A gridline must exist for 2021 at the same offset as the 2021 event
	var tick2021 *YearTick
	for i := range layout.Ticks {
		if layout.Ticks[i].Year == 2021 {
			tick2021 = &layout.Ticks[i]
		}
	}
	if tick2021 == nil {
		t.Fatal("no gridline for 2021")
	}
	if math.Abs(tick2021.Y-layout.Events[1].Y) > 1e-9 {
		t.Errorf("2021 tick y = %f, event y = %f; expected identical", tick2021.Y, layout.Events[1].Y)
	}
}

func TestBuildTimelineTicksCoverOriginThroughNow(t *testing.T) {
	all := []EventRecord{{ID: "a", DateISO: "2019-07-15", Title: "X"}}
	now := date("2022-03-01")

	layout := BuildTimeline(all, all, 60, now)
	if layout == nil {
		t.Fatal("expected a layout")
	}

	wantYears := []int{2019, 2020, 2021, 2022}
	if len(layout.Ticks) != len(wantYears) {
		t.Fatalf("tick count = %d, want %d", len(layout.Ticks), len(wantYears))
	}
	for i, y := range wantYears {
		if layout.Ticks[i].Year != y {
			t.Errorf("tick[%d].Year = %d, want %d", i, layout.Ticks[i].Year, y)
		}
	}

	// January 1st of the origin year precedes the origin, so its tick is negative
	if layout.Ticks[0].Y >= 0 {
		t.Errorf("origin-year tick y = %f, expected negative (Jan 1 precedes origin)", layout.Ticks[0].Y)
	}
}

func TestBuildTimelineExtentFloors(t *testing.T) {
	// A single recent event: span floored at half a year, height at the minimum
	all := []EventRecord{{ID: "a", DateISO: "2024-05-20", Title: "X"}}
	now := date("2024-06-01")

	layout := BuildTimeline(all, all, 60, now)
	if layout == nil {
		t.Fatal("expected a layout")
	}
	if layout.TotalYears != MinSpanYears {
		t.Errorf("TotalYears = %f, want floor %f", layout.TotalYears, MinSpanYears)
	}
	if layout.Height != MinCanvasPx {
		t.Errorf("Height = %f, want floor %f", layout.Height, MinCanvasPx)
	}
}

func TestBuildTimelineHeightScalesWithZoom(t *testing.T) {
	all := []EventRecord{{ID: "a", DateISO: "2010-01-01", Title: "X"}}
	now := date("2024-01-01")

	layout := BuildTimeline(all, all, 60, now)
	if layout == nil {
		t.Fatal("expected a layout")
	}
	want := layout.TotalYears*60 + CanvasPadPx
	if math.Abs(layout.Height-want) > 1e-9 {
		t.Errorf("Height = %f, want totalYears*zoom+padding = %f", layout.Height, want)
	}
	if math.Abs(layout.NowY-layout.TotalYears*60) > 1e-9 {
		t.Errorf("NowY = %f, want %f", layout.NowY, layout.TotalYears*60)
	}
}

func TestBuildTimelineFilterNeverAffectsExtent(t *testing.T) {
	all := []EventRecord{
		{ID: "a", DateISO: "2000-01-01", Title: "Old", Category: "Life"},
		{ID: "b", DateISO: "2020-01-01", Title: "Recent", Category: "Work"},
	}
	now := date("2024-01-01")

	full := BuildTimeline(all, all, 60, now)
	filtered := BuildTimeline(all, all[1:], 60, now)

	if full == nil || filtered == nil {
		t.Fatal("expected layouts")
	}
	if filtered.Height != full.Height || filtered.TotalYears != full.TotalYears {
		t.Errorf("filtering changed extent: %f/%f vs %f/%f",
			filtered.Height, filtered.TotalYears, full.Height, full.TotalYears)
	}
	if !filtered.Origin.Equal(full.Origin) {
		t.Errorf("filtering changed origin: %v vs %v", filtered.Origin, full.Origin)
	}
	if len(filtered.Events) != 1 {
		t.Errorf("expected 1 visible marker, got %d", len(filtered.Events))
	}
}

func TestBuildTimelineNoValidDates(t *testing.T) {
	if layout := BuildTimeline(nil, nil, 60, time.Now()); layout != nil {
		t.Error("expected nil layout for empty collection")
	}

	undated := []EventRecord{{ID: "a", DateISO: "", Title: "X"}}
	if layout := BuildTimeline(undated, undated, 60, time.Now()); layout != nil {
		t.Error("expected nil layout when no event has a valid date")
	}
}

func TestBuildTimelineSkipsInvalidDatesInMarkers(t *testing.T) {
	all := []EventRecord{
		{ID: "bad", DateISO: "", Title: "Undated"},
		{ID: "good", DateISO: "2020-01-01", Title: "Dated"},
	}
	layout := BuildTimeline(all, all, 60, date("2021-01-01"))
	if layout == nil {
		t.Fatal("expected a layout")
	}
	if len(layout.Events) != 1 || layout.Events[0].Event.ID != "good" {
		t.Errorf("expected only the dated event to project, got %+v", layout.Events)
	}
}

func TestProjectDate(t *testing.T) {
	all := []EventRecord{{ID: "a", DateISO: "2020-01-01", Title: "X"}}

	y, ok := ProjectDate(all, "2021-01-01", 60)
	if !ok {
		t.Fatal("expected a projection")
	}
	if math.Abs(y-60) > yTolerance {
		t.Errorf("y = %f, want 60±%f", y, yTolerance)
	}

	if _, ok := ProjectDate(nil, "2021-01-01", 60); ok {
		t.Error("expected no projection without an origin")
	}
	if _, ok := ProjectDate(all, "not-a-date", 60); ok {
		t.Error("expected no projection for an invalid date")
	}
}

func TestYearsBetween(t *testing.T) {
	years := YearsBetween(date("2000-01-01"), date("2004-01-01"))
	// 2000-2004 spans one leap day beyond 4 average years: 1461d vs 1460.97d
	if math.Abs(years-4.0) > 0.01 {
		t.Errorf("YearsBetween = %f, want ~4.0", years)
	}
	if got := YearsBetween(date("2020-01-01"), date("2020-01-01")); got != 0 {
		t.Errorf("zero span = %f, want 0", got)
	}
}
