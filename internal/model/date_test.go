package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDays_MonthAndYearBoundaries(t *testing.T) {
	assert.Equal(t, NewDate(2025, time.June, 1), NewDate(2025, time.May, 31).AddDays(1))
	assert.Equal(t, NewDate(2026, time.January, 4), NewDate(2025, time.December, 30).AddDays(5))
	assert.Equal(t, NewDate(2024, time.February, 29), NewDate(2024, time.February, 28).AddDays(1))
	assert.Equal(t, NewDate(2025, time.May, 26), NewDate(2025, time.June, 15).AddDays(-20))
}

func TestDaysUntil(t *testing.T) {
	a := NewDate(2025, time.May, 20)
	b := NewDate(2025, time.June, 4)

	assert.Equal(t, 15, a.DaysUntil(b))
	assert.Equal(t, -15, b.DaysUntil(a))
	assert.Equal(t, 0, a.DaysUntil(a))
}

func TestAddDaysDaysUntil_RoundTrip(t *testing.T) {
	d := NewDate(2025, time.January, 15)
	for _, n := range []int{0, 1, 28, 31, 365, -45} {
		assert.Equal(t, n, d.DaysUntil(d.AddDays(n)), "offset %d", n)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-15")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.June, 15), d)
	assert.Equal(t, "2025-06-15", d.String())

	_, err = ParseDate("15/06/2025")
	assert.Error(t, err)
}

func TestDate_Ordering(t *testing.T) {
	early := NewDate(2025, time.June, 14)
	late := NewDate(2025, time.June, 15)

	assert.True(t, late.After(early))
	assert.True(t, early.Before(late))
	assert.False(t, early.After(early))
	assert.True(t, early.Equal(early))
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2025, time.June, 15)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-15"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, d, parsed)

	assert.Error(t, json.Unmarshal([]byte(`"June 15"`), &parsed))
}

func TestDate_SQL(t *testing.T) {
	d := NewDate(2025, time.June, 15)

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-06-15", v)

	var scanned Date
	require.NoError(t, scanned.Scan("2025-06-15"))
	assert.Equal(t, d, scanned)

	require.NoError(t, scanned.Scan([]byte("2025-01-02")))
	assert.Equal(t, NewDate(2025, time.January, 2), scanned)

	assert.Error(t, scanned.Scan(42))
}

func TestDate_ZeroAndEpoch(t *testing.T) {
	assert.True(t, Date{}.IsZero())
	assert.False(t, Epoch.IsZero())
	assert.True(t, Epoch.Before(NewDate(2025, time.June, 15)))
}
