package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptarn/cadence/internal/model"
)

func stateWith(periodicity int, commDates ...model.Date) model.State {
	s := model.State{
		Companies: []model.Company{
			{ID: "1", Name: "Acme Corp", CommunicationPeriodicity: periodicity},
		},
		Settings: model.DefaultSettings(),
	}
	for i, d := range commDates {
		s.Communications = append(s.Communications, model.Communication{
			ID:        string(rune('a' + i)),
			CompanyID: "1",
			Date:      d,
			Type:      "Email",
		})
	}
	return s
}

func TestForCompany_NoHistoryIsOverdue(t *testing.T) {
	today := model.NewDate(2025, time.June, 15)
	st := ForCompany(stateWith(30), "1", today)

	require.NotNil(t, st)
	assert.True(t, st.IsOverdue)
	assert.False(t, st.IsDueToday)
}

func TestForCompany_Overdue(t *testing.T) {
	today := model.NewDate(2025, time.June, 15)
	// Last contact 20 days ago against a 15 day cadence.
	st := ForCompany(stateWith(15, today.AddDays(-20)), "1", today)

	require.NotNil(t, st)
	assert.True(t, st.IsOverdue)
	assert.False(t, st.IsDueToday)
}

func TestForCompany_DueToday(t *testing.T) {
	today := model.NewDate(2025, time.June, 15)
	st := ForCompany(stateWith(10, today.AddDays(-10)), "1", today)

	require.NotNil(t, st)
	assert.True(t, st.IsDueToday)
	assert.False(t, st.IsOverdue, "overdue and due-today are mutually exclusive")
}

func TestForCompany_OnTrack(t *testing.T) {
	today := model.NewDate(2025, time.June, 15)
	st := ForCompany(stateWith(30, today.AddDays(-5)), "1", today)

	require.NotNil(t, st)
	assert.False(t, st.IsOverdue)
	assert.False(t, st.IsDueToday)
}

func TestForCompany_UsesMostRecentCommunication(t *testing.T) {
	today := model.NewDate(2025, time.June, 15)
	// An old overdue contact followed by a fresh one: fresh wins.
	s := stateWith(10, today.AddDays(-40), today.AddDays(-2))
	st := ForCompany(s, "1", today)

	require.NotNil(t, st)
	assert.False(t, st.IsOverdue)
	assert.False(t, st.IsDueToday)
}

func TestForCompany_UnknownCompany(t *testing.T) {
	today := model.NewDate(2025, time.June, 15)
	assert.Nil(t, ForCompany(stateWith(30), "missing", today))
}

func TestNextDueDate(t *testing.T) {
	last := model.NewDate(2025, time.May, 20)
	assert.Equal(t, model.NewDate(2025, time.June, 19), NextDueDate(last, 30))
	assert.Equal(t, model.NewDate(2025, time.May, 27), NextDueDate(last, 7))
}

func TestNextDueDate_MonotonicInPeriodicity(t *testing.T) {
	last := model.NewDate(2025, time.May, 20)
	prev := NextDueDate(last, 1)
	for p := 2; p <= 60; p++ {
		next := NextDueDate(last, p)
		assert.True(t, next.After(prev), "periodicity %d", p)
		prev = next
	}
}

func TestCompanyCommunications_SortedNewestFirst(t *testing.T) {
	today := model.NewDate(2025, time.June, 15)
	s := stateWith(30, today.AddDays(-30), today.AddDays(-1), today.AddDays(-10))

	comms := CompanyCommunications(s, "1")
	require.Len(t, comms, 3)
	assert.Equal(t, today.AddDays(-1), comms[0].Date)
	assert.Equal(t, today.AddDays(-10), comms[1].Date)
	assert.Equal(t, today.AddDays(-30), comms[2].Date)
}

func TestOverdueAndDueTodayCompanies(t *testing.T) {
	today := model.NewDate(2025, time.June, 15)
	s := model.State{
		Companies: []model.Company{
			{ID: "1", Name: "Acme Corp", CommunicationPeriodicity: 15},
			{ID: "2", Name: "Globex", CommunicationPeriodicity: 10},
			{ID: "3", Name: "Initech", CommunicationPeriodicity: 30},
		},
		Communications: []model.Communication{
			{ID: "a", CompanyID: "1", Date: today.AddDays(-20), Type: "Email"},
			{ID: "b", CompanyID: "2", Date: today.AddDays(-10), Type: "Email"},
			{ID: "c", CompanyID: "3", Date: today.AddDays(-5), Type: "Email"},
		},
		Settings: model.DefaultSettings(),
	}

	overdue := OverdueCompanies(s, today)
	require.Len(t, overdue, 1)
	assert.Equal(t, "1", overdue[0].ID)

	due := DueTodayCompanies(s, today)
	require.Len(t, due, 1)
	assert.Equal(t, "2", due[0].ID)
}
