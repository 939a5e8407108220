package dashboard

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ptarn/cadence/internal/analytics"
	"github.com/ptarn/cadence/internal/theme"
)

// CompanyItem wraps an analytics.CompanyRow so it can be used in a
// bubbles/list.
type CompanyItem struct {
	Row analytics.CompanyRow
}

// FilterValue returns the string used for fuzzy filtering.
func (i CompanyItem) FilterValue() string { return i.Row.Company.Name }

// ItemDelegate implements list.ItemDelegate for rendering company rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render draws a single company line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ci, ok := item.(CompanyItem)
	if !ok {
		return
	}
	row := ci.Row

	var badge string
	switch {
	case row.Status.IsOverdue:
		badge = theme.OverdueStyle.Render("OVERDUE")
	case row.Status.IsDueToday:
		badge = theme.DueTodayStyle.Render("DUE TODAY")
	default:
		badge = theme.OnTrackStyle.Render("on track")
	}

	last := "never"
	next := "-"
	if !row.LastCommunication.IsZero() {
		last = row.LastCommunication.String()
		next = row.NextDue.String()
	}
	detail := theme.DimmedStyle.Render(fmt.Sprintf("last %s · next due %s · every %dd",
		last, next, row.Company.CommunicationPeriodicity))

	line := fmt.Sprintf("%-30s %s  %s", row.Company.Name, badge, detail)
	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}
	fmt.Fprint(w, line)
}
