package analytics

import (
	"time"

	"github.com/ptarn/cadence/internal/model"
)

// TallyEntry is one group in a count-by-group breakdown. Entries appear in
// first-seen order, not sorted.
type TallyEntry struct {
	Key   string
	Count int
}

// CommunicationsByType counts communications grouped by their type label.
func CommunicationsByType(s model.State) []TallyEntry {
	return tally(s.Communications, func(c model.Communication) (string, bool) {
		return c.Type, true
	})
}

// CommunicationsByCompany counts communications grouped by owning company
// name, in company insertion order. Companies with no communications are
// included with a zero count.
func CommunicationsByCompany(s model.State) []TallyEntry {
	entries := make([]TallyEntry, len(s.Companies))
	index := make(map[string]int, len(s.Companies))
	for i, company := range s.Companies {
		entries[i] = TallyEntry{Key: company.Name}
		index[company.ID] = i
	}
	for _, comm := range s.Communications {
		if i, ok := index[comm.CompanyID]; ok {
			entries[i].Count++
		}
	}
	return entries
}

// ResponseStats summarizes response tracking across all communications.
type ResponseStats struct {
	// AverageResponseTime is the mean of responseDate - date over the
	// communications that have a response date. Zero when none do.
	AverageResponseTime time.Duration
	// SuccessRate is responded / total * 100. Zero when there are no
	// communications or no responses.
	SuccessRate float64
}

// Responses computes response metrics. Communications without a response
// date are not errors; they simply do not contribute.
func Responses(s model.State) ResponseStats {
	var stats ResponseStats
	var total time.Duration
	responded := 0
	for _, comm := range s.Communications {
		if comm.ResponseDate == nil {
			continue
		}
		total += time.Duration(comm.Date.DaysUntil(*comm.ResponseDate)) * 24 * time.Hour
		responded++
	}
	if responded == 0 || len(s.Communications) == 0 {
		return stats
	}
	stats.AverageResponseTime = total / time.Duration(responded)
	stats.SuccessRate = float64(responded) / float64(len(s.Communications)) * 100
	return stats
}

// EngagementMonths is the number of trailing month buckets in a trend.
const EngagementMonths = 6

// CompanyEngagement buckets a company's communications into the six most
// recent calendar months by month-of-year distance: bucket 0 is the current
// month, bucket 1 the month before, and so on. Communications at distance
// six or more are dropped.
//
// TODO: the (todayMonth - commMonth + 12) % 12 distance ignores the year, so
// a communication from the same calendar month a year ago lands in bucket 0
// and one from seven months ago is silently dropped even though it is
// recent history; switch to a true elapsed-month count.
func CompanyEngagement(s model.State, companyID string, today model.Date) [EngagementMonths]int {
	var buckets [EngagementMonths]int
	for _, comm := range s.Communications {
		if comm.CompanyID != companyID {
			continue
		}
		dist := (int(today.Month) - int(comm.Date.Month) + 12) % 12
		if dist < EngagementMonths {
			buckets[dist]++
		}
	}
	return buckets
}

func tally(comms []model.Communication, key func(model.Communication) (string, bool)) []TallyEntry {
	var entries []TallyEntry
	index := make(map[string]int)
	for _, comm := range comms {
		k, ok := key(comm)
		if !ok {
			continue
		}
		if i, seen := index[k]; seen {
			entries[i].Count++
			continue
		}
		index[k] = len(entries)
		entries = append(entries, TallyEntry{Key: k, Count: 1})
	}
	return entries
}
