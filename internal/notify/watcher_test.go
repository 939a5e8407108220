package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptarn/cadence/internal/model"
	"github.com/ptarn/cadence/internal/store"
)

func watchState(notificationsEnabled bool) model.State {
	today := model.NewDate(2025, time.June, 15)
	settings := model.DefaultSettings()
	settings.NotificationsEnabled = notificationsEnabled
	return model.State{
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
		Settings: settings,
	}
}

func TestCheck_EmitsOverdueAndDueToday(t *testing.T) {
	today := model.NewDate(2025, time.June, 15)
	var events []Event
	w := NewWatcher(
		store.New(watchState(true)),
		NotifierFunc(func(e Event) { events = append(events, e) }),
		0,
	)

	w.Check(today)

	require.Len(t, events, 2, "one overdue plus one due today; on-track stays silent")
	assert.Equal(t, "Overdue Communication", events[0].Title)
	assert.Equal(t, "Communication with Acme Corp is overdue", events[0].Body)
	assert.Equal(t, "Communication Due Today", events[1].Title)
	assert.Equal(t, "Communication with Globex is due today", events[1].Body)
	for _, e := range events {
		assert.Equal(t, Icon, e.Icon)
	}
}

func TestCheck_DisabledSuppressesAll(t *testing.T) {
	var events []Event
	w := NewWatcher(
		store.New(watchState(false)),
		NotifierFunc(func(e Event) { events = append(events, e) }),
		0,
	)

	w.Check(model.NewDate(2025, time.June, 15))
	assert.Empty(t, events)
}

func TestCheck_RepeatsWhileConditionHolds(t *testing.T) {
	today := model.NewDate(2025, time.June, 15)
	var events []Event
	w := NewWatcher(
		store.New(watchState(true)),
		NotifierFunc(func(e Event) { events = append(events, e) }),
		0,
	)

	w.Check(today)
	w.Check(today)
	assert.Len(t, events, 4, "no deduplication between checks")
}

func TestNewWatcher_DefaultsInterval(t *testing.T) {
	w := NewWatcher(store.New(watchState(true)), NotifierFunc(func(Event) {}), 0)
	assert.Equal(t, DefaultInterval, w.interval)

	w = NewWatcher(store.New(watchState(true)), NotifierFunc(func(Event) {}), time.Minute)
	assert.Equal(t, time.Minute, w.interval)
}

func TestMulti_FansOut(t *testing.T) {
	var first, second []Event
	m := Multi{
		NotifierFunc(func(e Event) { first = append(first, e) }),
		NotifierFunc(func(e Event) { second = append(second, e) }),
	}

	m.Notify(Event{Title: "Overdue Communication"})
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0], second[0])
}
