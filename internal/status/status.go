// Package status derives due-date state from the record store. Everything
// here is a pure function of a state snapshot and an explicit evaluation
// date; nothing reads the wall clock, so results are deterministic and
// recomputed on every read rather than cached.
package status

import (
	"sort"

	"github.com/ptarn/cadence/internal/model"
)

// CompanyStatus is the derived classification of a single company.
// Overdue and due-today are mutually exclusive: overdue wins when today is
// strictly past the due date, due-today only when today equals it.
type CompanyStatus struct {
	IsOverdue  bool
	IsDueToday bool
}

// CompanyCommunications returns the company's communications sorted by date
// descending; the first element is the most recent. Ties keep their store
// insertion order.
func CompanyCommunications(s model.State, companyID string) []model.Communication {
	var comms []model.Communication
	for _, c := range s.Communications {
		if c.CompanyID == companyID {
			comms = append(comms, c)
		}
	}
	sort.SliceStable(comms, func(i, j int) bool {
		return comms[i].Date.After(comms[j].Date)
	})
	return comms
}

// NextDueDate returns the date the next communication becomes due after a
// communication on lastDate with the given periodicity in days.
func NextDueDate(lastDate model.Date, periodicityDays int) model.Date {
	return lastDate.AddDays(periodicityDays)
}

// ForCompany computes the company's status as of today. It returns nil for
// an unknown company id. A company with no communications is always overdue:
// there is no baseline to measure from.
func ForCompany(s model.State, companyID string, today model.Date) *CompanyStatus {
	company := s.CompanyByID(companyID)
	if company == nil {
		return nil
	}

	comms := CompanyCommunications(s, companyID)
	if len(comms) == 0 {
		return &CompanyStatus{IsOverdue: true, IsDueToday: false}
	}

	due := NextDueDate(comms[0].Date, company.CommunicationPeriodicity)
	switch {
	case today.After(due):
		return &CompanyStatus{IsOverdue: true}
	case today.Equal(due):
		return &CompanyStatus{IsDueToday: true}
	default:
		return &CompanyStatus{}
	}
}

// OverdueCompanies returns the companies whose status is overdue as of today.
func OverdueCompanies(s model.State, today model.Date) []model.Company {
	var out []model.Company
	for _, c := range s.Companies {
		if st := ForCompany(s, c.ID, today); st != nil && st.IsOverdue {
			out = append(out, c)
		}
	}
	return out
}

// DueTodayCompanies returns the companies due exactly today.
func DueTodayCompanies(s model.State, today model.Date) []model.Company {
	var out []model.Company
	for _, c := range s.Companies {
		if st := ForCompany(s, c.ID, today); st != nil && st.IsDueToday {
			out = append(out, c)
		}
	}
	return out
}
