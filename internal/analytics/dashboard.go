// Package analytics builds derived views on top of the status engine:
// dashboard counts, company filtering and sorting, calendar buckets,
// per-type and per-company tallies, engagement trends, and response
// metrics. Like the status engine, every function takes the state snapshot
// and the evaluation date explicitly.
package analytics

import (
	"sort"
	"strings"

	"github.com/ptarn/cadence/internal/model"
	"github.com/ptarn/cadence/internal/status"
)

// Status buckets accepted by CompanyFilter.
const (
	BucketAll     = "all"
	BucketOverdue = "overdue"
	BucketToday   = "today"
)

// Sort keys accepted by CompanyFilter.
const (
	SortByName              = "name"
	SortByNextCommunication = "nextCommunication"
)

// DashboardCounts is the summary strip at the top of the dashboard.
type DashboardCounts struct {
	OverdueCompanies    int
	DueTodayCompanies   int
	TotalCommunications int
}

// Counts computes the dashboard summary as of today.
func Counts(s model.State, today model.Date) DashboardCounts {
	return DashboardCounts{
		OverdueCompanies:    len(status.OverdueCompanies(s, today)),
		DueTodayCompanies:   len(status.DueTodayCompanies(s, today)),
		TotalCommunications: len(s.Communications),
	}
}

// CompanyFilter controls the dashboard company listing. Zero value means
// no search, all statuses, sorted by next communication ascending.
type CompanyFilter struct {
	Search   string // case-insensitive substring on company name
	Bucket   string // all | overdue | today
	SortBy   string // name | nextCommunication
	SortDesc bool
}

// CompanyRow pairs a company with its derived due-date state for display.
type CompanyRow struct {
	Company model.Company
	Status  status.CompanyStatus
	// NextDue is the derived next-due date; the epoch placeholder when the
	// company has no communications, so those rows sort first ascending
	// (modeling "most urgent").
	NextDue model.Date
	// LastCommunication is zero when there is none.
	LastCommunication model.Date
}

// FilterCompanies applies the filter and sort to the state's companies.
func FilterCompanies(s model.State, f CompanyFilter, today model.Date) []CompanyRow {
	search := strings.ToLower(f.Search)

	var rows []CompanyRow
	for _, c := range s.Companies {
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) {
			continue
		}
		st := status.ForCompany(s, c.ID, today)
		if st == nil {
			continue
		}
		switch f.Bucket {
		case BucketOverdue:
			if !st.IsOverdue {
				continue
			}
		case BucketToday:
			if !st.IsDueToday {
				continue
			}
		}

		row := CompanyRow{Company: c, Status: *st, NextDue: model.Epoch}
		if comms := status.CompanyCommunications(s, c.ID); len(comms) > 0 {
			row.LastCommunication = comms[0].Date
			row.NextDue = status.NextDueDate(comms[0].Date, c.CommunicationPeriodicity)
		}
		rows = append(rows, row)
	}

	less := func(i, j int) bool {
		if f.SortBy == SortByName {
			return rows[i].Company.Name < rows[j].Company.Name
		}
		return rows[i].NextDue.Before(rows[j].NextDue)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if f.SortDesc {
			return less(j, i)
		}
		return less(i, j)
	})
	return rows
}
