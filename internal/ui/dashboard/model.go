// Package dashboard is the read-only terminal dashboard: summary counters
// plus a searchable, sortable company list. It reads derived state and
// never mutates the store.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ptarn/cadence/internal/analytics"
	"github.com/ptarn/cadence/internal/keys"
	"github.com/ptarn/cadence/internal/model"
	"github.com/ptarn/cadence/internal/notify"
	"github.com/ptarn/cadence/internal/store"
	"github.com/ptarn/cadence/internal/theme"
)

// RowsLoadedMsg is sent when the company rows have been recomputed.
type RowsLoadedMsg struct {
	Counts analytics.DashboardCounts
	Rows   []analytics.CompanyRow
}

// NotificationMsg surfaces a watcher event in the status bar.
type NotificationMsg struct {
	Event notify.Event
}

// sortModes defines the sort orders cycled by Tab.
var sortModes = []struct {
	by   string
	desc bool
	name string
}{
	{analytics.SortByNextCommunication, false, "next due ↑"},
	{analytics.SortByNextCommunication, true, "next due ↓"},
	{analytics.SortByName, false, "name ↑"},
	{analytics.SortByName, true, "name ↓"},
}

// Model is the dashboard view.
type Model struct {
	list        list.Model
	store       *store.Store
	keys        *keys.KeyMap
	help        help.Model
	filter      analytics.CompanyFilter
	counts      analytics.DashboardCounts
	sortIndex   int
	searchMode  bool
	searchInput textinput.Model
	lastNotice  string
	events      <-chan notify.Event
	width       int
	height      int
}

// New creates a dashboard over the given store. events may be nil when no
// watcher is running.
func New(s *store.Store, events <-chan notify.Event, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-6)
	l.Title = "Companies"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search companies..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:  l,
		store: s,
		keys:  keys.DefaultKeyMap(),
		help:  help.New(),
		filter: analytics.CompanyFilter{
			Bucket: analytics.BucketAll,
			SortBy: analytics.SortByNextCommunication,
		},
		searchInput: si,
		events:      events,
		width:       width,
		height:      height,
	}
}

// Init loads the initial rows and starts listening for watcher events.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadRows(), m.waitForEvent())
}

// Update handles messages for the dashboard.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RowsLoadedMsg:
		m.counts = msg.Counts
		items := make([]list.Item, len(msg.Rows))
		for i, row := range msg.Rows {
			items[i] = CompanyItem{Row: row}
		}
		return m, m.list.SetItems(items)

	case NotificationMsg:
		m.lastNotice = fmt.Sprintf("%s: %s", msg.Event.Title, msg.Event.Body)
		return m, m.waitForEvent()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.filter.Search = m.searchInput.Value()
		return m, m.loadRows()
	case "esc":
		m.searchMode = false
		m.searchInput.SetValue("")
		m.filter.Search = ""
		return m, m.loadRows()
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in the normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.FilterAll):
		m.filter.Bucket = analytics.BucketAll
		return m, m.loadRows()
	case key.Matches(msg, m.keys.FilterOverdue):
		m.filter.Bucket = analytics.BucketOverdue
		return m, m.loadRows()
	case key.Matches(msg, m.keys.FilterToday):
		m.filter.Bucket = analytics.BucketToday
		return m, m.loadRows()
	case key.Matches(msg, m.keys.CycleSort):
		m.sortIndex = (m.sortIndex + 1) % len(sortModes)
		m.filter.SortBy = sortModes[m.sortIndex].by
		m.filter.SortDesc = sortModes[m.sortIndex].desc
		return m, m.loadRows()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the dashboard.
func (m Model) View() string {
	today := model.Today()

	counters := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.CounterStyle.Render(theme.OverdueStyle.Render(fmt.Sprintf("%d overdue", m.counts.OverdueCompanies))),
		theme.CounterStyle.Render(theme.DueTodayStyle.Render(fmt.Sprintf("%d due today", m.counts.DueTodayCompanies))),
		theme.CounterStyle.Render(fmt.Sprintf("%d communications", m.counts.TotalCommunications)),
		theme.CounterStyle.Render(theme.DimmedStyle.Render(today.String())),
	)

	var b strings.Builder
	b.WriteString(counters)
	b.WriteByte('\n')
	if m.searchMode {
		b.WriteString(m.searchInput.View())
		b.WriteByte('\n')
	}
	b.WriteString(m.list.View())
	b.WriteByte('\n')

	statusParts := []string{
		"bucket: " + m.filter.Bucket,
		"sort: " + sortModes[m.sortIndex].name,
	}
	if m.lastNotice != "" {
		statusParts = append(statusParts, m.lastNotice)
	}
	b.WriteString(theme.StatusBarStyle.Render(strings.Join(statusParts, "  |  ")))
	b.WriteByte('\n')
	b.WriteString(theme.HelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// loadRows recomputes counts and rows from the current snapshot.
func (m Model) loadRows() tea.Cmd {
	s := m.store
	filter := m.filter
	return func() tea.Msg {
		state := s.State()
		today := model.Today()
		return RowsLoadedMsg{
			Counts: analytics.Counts(state, today),
			Rows:   analytics.FilterCompanies(state, filter, today),
		}
	}
}

// waitForEvent blocks on the watcher event channel.
func (m Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	ch := m.events
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return NotificationMsg{Event: e}
	}
}
