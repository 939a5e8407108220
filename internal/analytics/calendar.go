package analytics

import (
	"time"

	"github.com/ptarn/cadence/internal/model"
	"github.com/ptarn/cadence/internal/status"
)

// maxVisibleEvents caps how many events a calendar day shows before the
// remainder collapses into an overflow count.
const maxVisibleEvents = 3

// Event classifications used by the calendar. These are per-event: each
// event's own date plus the company's periodicity gives the event-level due
// date, independent of the company's current status.
const (
	EventOverdue   = "overdue"
	EventToday     = "today"
	EventScheduled = "scheduled"
)

// CalendarEvent is one communication placed on the calendar.
type CalendarEvent struct {
	Communication model.Communication
	CompanyName   string // "Unknown" when the company id does not resolve
	Class         string // overdue | today | scheduled
}

// DayBucket is the set of events for one day, truncated for display.
type DayBucket struct {
	Day      model.Date
	Visible  []CalendarEvent
	Overflow int // events beyond the display cap; zero when all fit
}

// MonthEvents returns the communications falling in the viewed month,
// keyed by day. Only exact calendar-date matches within the month count.
func MonthEvents(s model.State, year int, month time.Month, today model.Date) map[model.Date][]CalendarEvent {
	buckets := make(map[model.Date][]CalendarEvent)
	for _, comm := range s.Communications {
		if !comm.Date.SameMonth(year, month) {
			continue
		}
		buckets[comm.Date] = append(buckets[comm.Date], classify(s, comm, today))
	}
	return buckets
}

// DayEvents returns the truncated event bucket for a single day.
func DayEvents(s model.State, day model.Date, today model.Date) DayBucket {
	var events []CalendarEvent
	for _, comm := range s.Communications {
		if comm.Date.Equal(day) {
			events = append(events, classify(s, comm, today))
		}
	}

	bucket := DayBucket{Day: day, Visible: events}
	if len(events) > maxVisibleEvents {
		bucket.Visible = events[:maxVisibleEvents]
		bucket.Overflow = len(events) - maxVisibleEvents
	}
	return bucket
}

func classify(s model.State, comm model.Communication, today model.Date) CalendarEvent {
	ev := CalendarEvent{Communication: comm, CompanyName: "Unknown", Class: EventScheduled}
	company := s.CompanyByID(comm.CompanyID)
	if company == nil {
		return ev
	}
	ev.CompanyName = company.Name

	due := status.NextDueDate(comm.Date, company.CommunicationPeriodicity)
	switch {
	case today.After(due):
		ev.Class = EventOverdue
	case today.Equal(due):
		ev.Class = EventToday
	}
	return ev
}
