// Package report produces the two flat delimited exports consumed by
// spreadsheet tools. Header rows and column order are a stable contract.
//
// The format is comma-delimited with no quoting: the only escaping is the
// substitution of commas in free-text notes. encoding/csv is deliberately
// not used here because it quotes fields, which would change the published
// format.
package report

import (
	"strconv"
	"strings"

	"github.com/ptarn/cadence/internal/model"
	"github.com/ptarn/cadence/internal/status"
)

// Row status labels.
const (
	StatusOverdue          = "Overdue"
	StatusDueToday         = "Due Today"
	StatusOnTrack          = "On Track"
	StatusNoCommunications = "No Communications"
)

const (
	detailedHeader = "Company,Communication Date,Method,Notes,Status,Next Due Date"
	summaryHeader  = "Company,Total Communications,Last Communication,Next Due Date,Status,Communication Periodicity (days)"
)

// Detailed renders one row per communication, grouped by company: all of a
// company's rows are contiguous, company groups appear in the order their
// first communication is encountered, and within a group the original
// logging order is preserved. Communications whose company id does not
// resolve are dropped.
func Detailed(s model.State, today model.Date) string {
	groupOrder := []string{}
	groups := map[string][]model.Communication{}
	for _, comm := range s.Communications {
		company := s.CompanyByID(comm.CompanyID)
		if company == nil {
			continue
		}
		if _, seen := groups[company.Name]; !seen {
			groupOrder = append(groupOrder, company.Name)
		}
		groups[company.Name] = append(groups[company.Name], comm)
	}

	var b strings.Builder
	b.WriteString(detailedHeader)
	b.WriteByte('\n')
	for _, name := range groupOrder {
		for _, comm := range groups[name] {
			company := s.CompanyByID(comm.CompanyID)
			due := status.NextDueDate(comm.Date, company.CommunicationPeriodicity)
			writeRow(&b,
				name,
				comm.Date.String(),
				comm.Type,
				strings.ReplaceAll(comm.Notes, ",", ";"),
				classify(due, today),
				due.String(),
			)
		}
	}
	return b.String()
}

// Summary renders one row per company. A company with no communications
// reports "Never" for its last communication, today as its next due date,
// and the "No Communications" status.
func Summary(s model.State, today model.Date) string {
	var b strings.Builder
	b.WriteString(summaryHeader)
	b.WriteByte('\n')
	for _, company := range s.Companies {
		var last *model.Communication
		total := 0
		for i, comm := range s.Communications {
			if comm.CompanyID != company.ID {
				continue
			}
			total++
			// Strictly-after comparison: the first-encountered of equal
			// dates wins.
			if last == nil || comm.Date.After(last.Date) {
				last = &s.Communications[i]
			}
		}

		lastDate := "Never"
		nextDue := today
		rowStatus := StatusNoCommunications
		if last != nil {
			lastDate = last.Date.String()
			nextDue = status.NextDueDate(last.Date, company.CommunicationPeriodicity)
			rowStatus = classify(nextDue, today)
		}

		writeRow(&b,
			company.Name,
			strconv.Itoa(total),
			lastDate,
			nextDue.String(),
			rowStatus,
			strconv.Itoa(company.CommunicationPeriodicity),
		)
	}
	return b.String()
}

func classify(due, today model.Date) string {
	switch {
	case today.After(due):
		return StatusOverdue
	case today.Equal(due):
		return StatusDueToday
	default:
		return StatusOnTrack
	}
}

func writeRow(b *strings.Builder, fields ...string) {
	b.WriteString(strings.Join(fields, ","))
	b.WriteByte('\n')
}
