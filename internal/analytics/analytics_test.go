package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptarn/cadence/internal/model"
)

var analyticsToday = model.NewDate(2025, time.June, 15)

func analyticsState() model.State {
	return model.State{
		Companies: []model.Company{
			{ID: "1", Name: "Acme Corp", CommunicationPeriodicity: 15},
			{ID: "2", Name: "Globex", CommunicationPeriodicity: 10},
			{ID: "3", Name: "Initech", CommunicationPeriodicity: 30},
		},
		Communications: []model.Communication{
			{ID: "a", CompanyID: "1", Date: analyticsToday.AddDays(-20), Type: "Email"},
			{ID: "b", CompanyID: "2", Date: analyticsToday.AddDays(-10), Type: "Phone Call"},
			{ID: "c", CompanyID: "1", Date: analyticsToday.AddDays(-25), Type: "Email"},
			{ID: "d", CompanyID: "3", Date: analyticsToday.AddDays(-5), Type: "LinkedIn Post"},
		},
		Settings: model.DefaultSettings(),
	}
}

func TestCounts(t *testing.T) {
	c := Counts(analyticsState(), analyticsToday)

	assert.Equal(t, 1, c.OverdueCompanies)
	assert.Equal(t, 1, c.DueTodayCompanies)
	assert.Equal(t, 4, c.TotalCommunications)
}

func TestFilterCompanies_Buckets(t *testing.T) {
	s := analyticsState()

	overdue := FilterCompanies(s, CompanyFilter{Bucket: BucketOverdue}, analyticsToday)
	require.Len(t, overdue, 1)
	assert.Equal(t, "Acme Corp", overdue[0].Company.Name)
	assert.True(t, overdue[0].Status.IsOverdue)

	today := FilterCompanies(s, CompanyFilter{Bucket: BucketToday}, analyticsToday)
	require.Len(t, today, 1)
	assert.Equal(t, "Globex", today[0].Company.Name)
}

func TestFilterCompanies_Search(t *testing.T) {
	rows := FilterCompanies(analyticsState(), CompanyFilter{Search: "glo"}, analyticsToday)

	require.Len(t, rows, 1)
	assert.Equal(t, "Globex", rows[0].Company.Name)
}

func TestFilterCompanies_SortByNextDue(t *testing.T) {
	rows := FilterCompanies(analyticsState(), CompanyFilter{SortBy: SortByNextCommunication}, analyticsToday)

	require.Len(t, rows, 3)
	assert.Equal(t, "Acme Corp", rows[0].Company.Name, "earliest next-due first")
	assert.Equal(t, "Globex", rows[1].Company.Name)
	assert.Equal(t, "Initech", rows[2].Company.Name)
}

func TestFilterCompanies_NoHistorySortsFirst(t *testing.T) {
	s := analyticsState()
	s.Companies = append(s.Companies, model.Company{ID: "4", Name: "Umbrella", CommunicationPeriodicity: 30})

	rows := FilterCompanies(s, CompanyFilter{SortBy: SortByNextCommunication}, analyticsToday)
	require.Len(t, rows, 4)
	assert.Equal(t, "Umbrella", rows[0].Company.Name)
	assert.Equal(t, model.Epoch, rows[0].NextDue)
	assert.True(t, rows[0].LastCommunication.IsZero())
}

func TestFilterCompanies_SortByNameDesc(t *testing.T) {
	rows := FilterCompanies(analyticsState(), CompanyFilter{SortBy: SortByName, SortDesc: true}, analyticsToday)

	require.Len(t, rows, 3)
	assert.Equal(t, "Initech", rows[0].Company.Name)
	assert.Equal(t, "Acme Corp", rows[2].Company.Name)
}

func TestCommunicationsByType_FirstSeenOrder(t *testing.T) {
	entries := CommunicationsByType(analyticsState())

	require.Len(t, entries, 3)
	assert.Equal(t, TallyEntry{Key: "Email", Count: 2}, entries[0])
	assert.Equal(t, TallyEntry{Key: "Phone Call", Count: 1}, entries[1])
	assert.Equal(t, TallyEntry{Key: "LinkedIn Post", Count: 1}, entries[2])
}

func TestCommunicationsByCompany_IncludesZeroCounts(t *testing.T) {
	s := analyticsState()
	s.Companies = append(s.Companies, model.Company{ID: "4", Name: "Umbrella", CommunicationPeriodicity: 30})

	entries := CommunicationsByCompany(s)
	require.Len(t, entries, 4)
	assert.Equal(t, TallyEntry{Key: "Acme Corp", Count: 2}, entries[0])
	assert.Equal(t, TallyEntry{Key: "Globex", Count: 1}, entries[1])
	assert.Equal(t, TallyEntry{Key: "Initech", Count: 1}, entries[2])
	assert.Equal(t, TallyEntry{Key: "Umbrella", Count: 0}, entries[3])
}

func TestResponses_NoResponsesIsZero(t *testing.T) {
	stats := Responses(analyticsState())

	assert.Zero(t, stats.AverageResponseTime)
	assert.Zero(t, stats.SuccessRate)
}

func TestResponses(t *testing.T) {
	s := analyticsState()
	r1 := s.Communications[0].Date.AddDays(2)
	r2 := s.Communications[1].Date.AddDays(4)
	s.Communications[0].ResponseDate = &r1
	s.Communications[1].ResponseDate = &r2

	stats := Responses(s)
	assert.Equal(t, 3*24*time.Hour, stats.AverageResponseTime)
	assert.InDelta(t, 50.0, stats.SuccessRate, 0.001)
}

func TestCompanyEngagement(t *testing.T) {
	today := model.NewDate(2025, time.June, 15)
	s := model.State{
		Companies: []model.Company{{ID: "1", Name: "Acme Corp", CommunicationPeriodicity: 30}},
		Communications: []model.Communication{
			{ID: "a", CompanyID: "1", Date: model.NewDate(2025, time.June, 2), Type: "Email"},
			{ID: "b", CompanyID: "1", Date: model.NewDate(2025, time.June, 20), Type: "Email"},
			{ID: "c", CompanyID: "1", Date: model.NewDate(2025, time.April, 10), Type: "Email"},
			{ID: "d", CompanyID: "1", Date: model.NewDate(2025, time.January, 5), Type: "Email"},
			{ID: "e", CompanyID: "2", Date: model.NewDate(2025, time.June, 1), Type: "Email"},
		},
		Settings: model.DefaultSettings(),
	}

	buckets := CompanyEngagement(s, "1", today)
	assert.Equal(t, [EngagementMonths]int{2, 0, 1, 0, 0, 1}, buckets)
}

func TestCompanyEngagement_MonthDistanceIgnoresYear(t *testing.T) {
	today := model.NewDate(2025, time.June, 15)
	s := model.State{
		Companies: []model.Company{{ID: "1", Name: "Acme Corp", CommunicationPeriodicity: 30}},
		Communications: []model.Communication{
			// Same calendar month, previous year: lands in the current bucket.
			{ID: "a", CompanyID: "1", Date: model.NewDate(2024, time.June, 1), Type: "Email"},
			// Seven calendar months back: dropped despite being recent.
			{ID: "b", CompanyID: "1", Date: model.NewDate(2024, time.November, 1), Type: "Email"},
		},
		Settings: model.DefaultSettings(),
	}

	buckets := CompanyEngagement(s, "1", today)
	assert.Equal(t, [EngagementMonths]int{1, 0, 0, 0, 0, 0}, buckets)
}

func TestMonthEvents(t *testing.T) {
	s := analyticsState()
	buckets := MonthEvents(s, 2025, time.June, analyticsToday)

	// Acme's May communications are out of the viewed month.
	require.Len(t, buckets, 2)

	globex := buckets[analyticsToday.AddDays(-10)]
	require.Len(t, globex, 1)
	assert.Equal(t, "Globex", globex[0].CompanyName)
	assert.Equal(t, EventToday, globex[0].Class)

	initech := buckets[analyticsToday.AddDays(-5)]
	require.Len(t, initech, 1)
	assert.Equal(t, EventScheduled, initech[0].Class)
}

func TestDayEvents_Overflow(t *testing.T) {
	day := model.NewDate(2025, time.June, 10)
	s := model.State{
		Companies: []model.Company{{ID: "1", Name: "Acme Corp", CommunicationPeriodicity: 30}},
		Settings:  model.DefaultSettings(),
	}
	for i := 0; i < 5; i++ {
		s.Communications = append(s.Communications, model.Communication{
			ID: string(rune('a' + i)), CompanyID: "1", Date: day, Type: "Email",
		})
	}

	bucket := DayEvents(s, day, analyticsToday)
	assert.Len(t, bucket.Visible, 3)
	assert.Equal(t, 2, bucket.Overflow)
}

func TestDayEvents_UnknownCompany(t *testing.T) {
	day := model.NewDate(2025, time.June, 10)
	s := model.State{
		Communications: []model.Communication{
			{ID: "a", CompanyID: "ghost", Date: day, Type: "Email"},
		},
		Settings: model.DefaultSettings(),
	}

	bucket := DayEvents(s, day, analyticsToday)
	require.Len(t, bucket.Visible, 1)
	assert.Equal(t, "Unknown", bucket.Visible[0].CompanyName)
	assert.Equal(t, EventScheduled, bucket.Visible[0].Class)
}
