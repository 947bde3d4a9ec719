// Package tui provides a terminal browser for the timeline: navigate events,
// search, delete, and trigger a remote refresh without the web UI.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lifeline/models"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dateStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("237"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	detailStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type syncDoneMsg struct {
	err error
}

type deleteDoneMsg struct {
	id  string
	err error
}

// Model is the bubbletea model for the timeline browser.
type Model struct {
	store     *models.EventStore
	events    []models.EventRecord
	cursor    int
	searching bool
	syncing   bool
	status    string
	statusErr bool
	quitting  bool

	// id awaiting delete confirmation, empty when none is pending
	confirmDelete string

	searchInput textinput.Model
}

// New builds the initial model over an event store.
func New(store *models.EventStore) Model {
	input := textinput.New()
	input.Placeholder = "search title, notes, category"
	input.CharLimit = 80
	_, _, query := store.Prefs()
	input.SetValue(query)

	m := Model{
		store:       store,
		searchInput: input,
	}
	m.reload()
	return m
}

// Run starts the TUI and blocks until the user quits.
func Run(store *models.EventStore) error {
	_, err := tea.NewProgram(New(store), tea.WithAltScreen()).Run()
	return err
}

// reload pulls the filtered event list from the store and clamps the cursor.
func (m *Model) reload() {
	m.events = m.store.FilteredEvents()
	if m.cursor >= len(m.events) {
		m.cursor = len(m.events) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(typed)
		}
		return m.handleKey(typed)

	case syncDoneMsg:
		m.syncing = false
		if typed.err != nil {
			m.status = "sync failed: " + typed.err.Error()
			m.statusErr = true
		} else {
			m.status = "synced"
			m.statusErr = false
		}
		m.reload()
		return m, nil

	case deleteDoneMsg:
		if typed.err != nil {
			m.status = "remote delete failed: " + typed.err.Error()
			m.statusErr = true
		} else {
			m.status = "deleted " + typed.id
			m.statusErr = false
		}
		m.reload()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmDelete != "" {
		id := m.confirmDelete
		m.confirmDelete = ""
		if key.String() != "y" {
			m.status = "delete cancelled"
			m.statusErr = false
			return m, nil
		}
		return m, func() tea.Msg {
			return deleteDoneMsg{id: id, err: m.store.Delete(context.Background(), id)}
		}
	}

	switch key.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.events)-1 {
			m.cursor++
		}
	case "g":
		m.cursor = 0
	case "G":
		m.cursor = len(m.events) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
	case "/":
		m.searching = true
		m.searchInput.Focus()
		m.status = "search: enter to apply, esc to cancel"
		m.statusErr = false
		return m, textinput.Blink
	case "d":
		if len(m.events) == 0 {
			break
		}
		ev := m.events[m.cursor]
		m.confirmDelete = ev.ID
		m.status = fmt.Sprintf("delete %q? y to confirm, any other key to cancel", ev.Title)
		m.statusErr = false
	case "s":
		if !m.store.Status().Enabled {
			m.status = "sync is not configured"
			m.statusErr = true
			break
		}
		if m.syncing {
			break
		}
		m.syncing = true
		m.status = "syncing..."
		m.statusErr = false
		return m, func() tea.Msg {
			return syncDoneMsg{err: m.store.SyncFromRemote(context.Background(), false)}
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		m.store.SetQuery(m.searchInput.Value())
		m.reload()
		m.status = ""
		return m, nil
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(key)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	total := len(m.store.Events())
	header := fmt.Sprintf("Lifeline  %d events", total)
	if len(m.events) != total {
		header += fmt.Sprintf(" (%d shown)", len(m.events))
	}
	if layout := m.store.Layout(); layout != nil {
		header += fmt.Sprintf("  span %.1fy", layout.TotalYears)
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n\n")
	}

	if len(m.events) == 0 {
		b.WriteString(dateStyle.Render("no events"))
		b.WriteString("\n")
	}

	for i, ev := range m.events {
		line := fmt.Sprintf("%s  %s", dateStyle.Render(ev.DateISO), ev.Title)
		if ev.Category != "" {
			line += "  " + categoryStyle.Render("["+ev.Category+"]")
		}
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.events) > 0 && m.cursor < len(m.events) {
		ev := m.events[m.cursor]
		detail := titleStyle.Render(ev.Title) + "\n" + dateStyle.Render(ev.DateISO)
		if ev.Notes != "" {
			detail += "\n" + ev.Notes
		}
		b.WriteString("\n")
		b.WriteString(detailStyle.Render(detail))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(statusStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("j/k move  / search  d delete  s sync  q quit"))
	b.WriteString("\n")

	return b.String()
}
