// Package pages contains the page components for the application.
package pages

import (
	"fmt"
	"html"
	"strings"

	"lifeline/models"

	"github.com/rohanthewiz/element"
)

// TimelinePage renders the single-page timeline UI: an editor form, filter
// controls, and the vertical timeline itself, positioned from the projected
// layout so the page is meaningful even before any script runs.
func TimelinePage(store *models.EventStore) string {
	zoom, filterCategory, query := store.Prefs()

	b := element.NewBuilder()

	b.Html().R(
		b.Head().R(
			b.Meta("charset", "UTF-8"),
			b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
			b.Title().T("Lifeline"),
			b.Style().T(timelineCSS),
		),
		b.Body().R(
			element.RenderComponents(b,
				TopBar{Store: store},
				EditorPanel{Categories: store.Categories()},
				ControlsBar{
					Zoom:           zoom,
					Query:          query,
					SyncEnabled:    store.Status().Enabled,
					FilterCategory: filterCategory,
					Categories:     store.Categories(),
				},
				TimelineView{Layout: store.Layout()},
			),
			b.Script().T(timelineJS),
		),
	)

	return b.String()
}

// TopBar shows the app title with event count and span stats.
type TopBar struct {
	Store *models.EventStore
}

func (tb TopBar) Render(b *element.Builder) (x any) {
	events := tb.Store.Events()

	b.Header("class", "topbar").R(
		b.H1().T("Lifeline"),
		b.DivClass("stats").R(
			b.Span("id", "stats", "class", "stat").F("%d events", len(events)),
			b.Wrap(func() {
				if layout := tb.Store.Layout(); layout != nil {
					b.Span("id", "span", "class", "stat").F("Span: %.1f years", layout.TotalYears)
				}
			}),
			b.Span("id", "remoteStatus", "class", "stat").R(
				renderSyncStatus(b, tb.Store.Status()),
			),
		),
	)
	return
}

func renderSyncStatus(b *element.Builder, st models.SyncStatus) (x any) {
	switch {
	case !st.Enabled:
		b.T("Local only")
	case st.LastError != "":
		b.Span("class", "danger").T(st.LastError)
	case st.LastSync != nil:
		b.F("Synced %s", st.LastSync.Format("15:04:05"))
	default:
		b.T("Not synced yet")
	}
	return
}

// EditorPanel is the add/edit form. The id field is hidden; the script fills
// it when a card is clicked so a save becomes an in-place update. Existing
// categories feed a datalist so the category box suggests known values.
type EditorPanel struct {
	Categories []string
}

func (ep EditorPanel) Render(b *element.Builder) (x any) {
	b.Div("class", "card editor").R(
		b.Form("id", "eventForm", "onsubmit", "return saveEvent(event)").R(
			b.Input("type", "hidden", "id", "eventId"),
			b.DivClass("form-row").R(
				b.Label("for", "date").T("Date"),
				b.Input("type", "date", "id", "date", "required"),
			),
			b.DivClass("form-row").R(
				b.Label("for", "title").T("Title"),
				b.Input("type", "text", "id", "title", "placeholder", "What happened?", "required"),
			),
			b.DivClass("form-row").R(
				b.Label("for", "category").T("Category"),
				b.Input("type", "text", "id", "category", "list", "categoryList",
					"placeholder", "Work, Travel..."),
				b.T(categoryDataList(ep.Categories)),
			),
			b.DivClass("form-row").R(
				b.Label("for", "notes").T("Notes"),
				b.TextArea("id", "notes", "rows", "3").R(),
			),
			b.DivClass("form-row").R(
				b.Label("for", "image").T("Photo"),
				b.Input("type", "file", "id", "image", "accept", "image/*"),
			),
			b.DivClass("form-actions").R(
				b.Button("type", "submit", "class", "btn btn-primary").T("Save"),
				b.Button("type", "button", "id", "clear", "class", "btn", "onclick", "clearForm()").T("Clear"),
				b.Button("type", "button", "id", "delete", "class", "btn btn-danger", "onclick", "deleteEvent()").T("Delete"),
			),
			b.Div("id", "status", "class", "help").R(),
		),
	)
	return
}

// ControlsBar holds the zoom slider, search box, category chips, and the
// sync / export / import / reset actions.
type ControlsBar struct {
	Zoom           float64
	Query          string
	SyncEnabled    bool
	FilterCategory string
	Categories     []string
}

func (cb ControlsBar) Render(b *element.Builder) (x any) {
	b.Div("class", "card controls").R(
		b.DivClass("control-group").R(
			b.Label("for", "zoom").T("Zoom"),
			b.Input("type", "range", "id", "zoom", "min", "20", "max", "200",
				"value", fmt.Sprintf("%.0f", cb.Zoom), "onchange", "setZoom(this.value)"),
		),
		b.DivClass("control-group").R(
			b.Input("type", "search", "id", "search", "placeholder", "Search events...",
				"value", cb.Query, "onchange", "setQuery(this.value)"),
		),
		b.Div("id", "categoryChips", "class", "chips").R(
			element.ForEach(cb.Categories, func(cat string) {
				label := cat
				if cat == cb.FilterCategory {
					label = "● " + cat
				}
				b.Span("class", "pill",
					"style", fmt.Sprintf("border-color:%s", categoryColor(cat, 50)),
					"onclick", fmt.Sprintf("toggleCategory(%q)", cat)).T(label)
			}),
		),
		b.DivClass("control-group actions").R(
			b.Wrap(func() {
				if cb.SyncEnabled {
					b.Button("type", "button", "id", "sync", "class", "btn", "onclick", "syncNow()").T("Sync")
				}
			}),
			b.A("href", "/api/v1/export", "id", "export", "class", "btn", "download").T("Export"),
			b.Label("for", "importFile", "class", "btn").T("Import"),
			b.Input("type", "file", "id", "importFile", "accept", "application/json",
				"onchange", "importFile(this)", "hidden"),
			b.Button("type", "button", "id", "reset", "class", "btn btn-danger", "onclick", "resetAll()").T("Reset"),
		),
	)
	return
}

// TimelineView renders the vertical timeline from a projected layout:
// year ticks down the spine, a now marker, and a positioned card per event.
type TimelineView struct {
	Layout *models.TimelineLayout
}

func (tv TimelineView) Render(b *element.Builder) (x any) {
	if tv.Layout == nil {
		b.Div("id", "empty", "class", "card empty-state").R(
			b.H3().T("No events yet"),
			b.P().T("Add your first event above to start the timeline."),
		)
		return
	}

	b.Div("id", "timeline", "class", "timeline",
		"style", fmt.Sprintf("height:%.0fpx", tv.Layout.Height)).R(
		b.Div("id", "ticks").R(
			element.ForEach(tv.Layout.Ticks, func(tick models.YearTick) {
				b.Div("class", "year-tick", "style", fmt.Sprintf("top:%.1fpx", tick.Y)).R()
				b.Div("class", "year-label", "style", fmt.Sprintf("top:%.1fpx", tick.Y)).F("%d", tick.Year)
			}),
		),
		b.Div("class", "now-marker", "style", fmt.Sprintf("top:%.1fpx", tv.Layout.NowY)).T("Now"),
		b.Div("id", "events").R(
			element.ForEach(tv.Layout.Events, func(marker models.EventMarker) {
				element.RenderComponents(b, EventCard{Marker: marker})
			}),
		),
	)
	return
}

// EventCard is one positioned entry on the timeline. Category drives the
// accent color so related events read as a group.
type EventCard struct {
	Marker models.EventMarker
}

func (ec EventCard) Render(b *element.Builder) (x any) {
	ev := ec.Marker.Event

	dotStyle := ""
	cardStyle := ""
	if ev.Category != "" {
		dotStyle = fmt.Sprintf("background:%s;border-color:%s",
			categoryColor(ev.Category, 50), categoryColor(ev.Category, 30))
		cardStyle = fmt.Sprintf("border-left-color:%s", categoryColor(ev.Category, 50))
	}

	b.Div("class", "event", "style", fmt.Sprintf("top:%.1fpx", ec.Marker.Y)).R(
		b.Div("class", "dot", "title", ev.Category, "style", dotStyle).R(),
		b.Div("class", "card event-card", "style", cardStyle,
			"onclick", fmt.Sprintf("editEvent(%q)", ev.ID)).R(
			b.DivClass("event-title").T(ev.Title),
			b.DivClass("event-date").T(ev.DateISO),
			b.Wrap(func() {
				if ev.Image != "" {
					b.DivClass("figure").R(
						b.Img("src", ev.Image, "loading", "lazy"),
					)
				}
				if ev.Category != "" {
					b.DivClass("chips").R(
						b.Span("class", "chip").T(ev.Category),
					)
				}
				if ev.Notes != "" {
					b.DivClass("event-notes").T(ev.Notes)
				}
			}),
		),
	)
	return
}

// categoryDataList builds the datalist markup backing the category input.
// The builder has no datalist helper, so this is emitted as raw markup the
// same way inline SVG is.
func categoryDataList(categories []string) string {
	var sb strings.Builder
	sb.WriteString(`<datalist id="categoryList">`)
	for _, cat := range categories {
		sb.WriteString(`<option value="` + html.EscapeString(cat) + `"></option>`)
	}
	sb.WriteString(`</datalist>`)
	return sb.String()
}

// categoryColor derives a stable accent color from the category name. The
// hue is the sum of the character codes mod 360, so the same category always
// gets the same color without any stored mapping.
func categoryColor(category string, lightness int) string {
	sum := 0
	for _, r := range category {
		sum += int(r)
	}
	return fmt.Sprintf("hsl(%d 70%% %d%%)", sum%360, lightness)
}
