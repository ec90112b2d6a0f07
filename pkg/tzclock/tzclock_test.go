package tzclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/IB-AvailabilityService/pkg/types"
)

func TestAt(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	// Референс в UTC, результат - тот же календарный день по Москве
	ref := time.Date(2026, time.January, 5, 23, 0, 0, 0, time.UTC) // 02:00 6-го по Москве

	got := At(ref, types.TimeString("09:30"), loc)
	assert.Equal(t, time.Date(2026, time.January, 6, 9, 30, 0, 0, loc), got)
}

func TestAt_DSTGap(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2026-03-08: час 02:00-03:00 не существует, time.Date переносит
	// через разрыв
	ref := time.Date(2026, time.March, 8, 12, 0, 0, 0, loc)
	got := At(ref, types.TimeString("02:30"), loc)

	assert.Equal(t, "03:30", got.Format("15:04"))
	assert.Equal(t, "2026-03-08", DateKey(got, loc))
}

func TestDateKey(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Полночь UTC - ещё предыдущий день в Нью-Йорке
	instant := time.Date(2026, time.January, 6, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-01-06", DateKey(instant, time.UTC))
	assert.Equal(t, "2026-01-05", DateKey(instant, ny))
}

func TestParseDateKey(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	got, err := ParseDateKey("2026-01-05", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 5, 0, 0, 0, 0, loc), got)

	_, err = ParseDateKey("05.01.2026", loc)
	assert.Error(t, err)
}

func TestStartOfDayAndWeekday(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2026-01-05 01:00 UTC = 2026-01-04 20:00 в Нью-Йорке (воскресенье)
	instant := time.Date(2026, time.January, 5, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, time.January, 4, 0, 0, 0, 0, ny), StartOfDay(instant, ny))
	assert.Equal(t, time.Sunday, Weekday(instant, ny))
	assert.Equal(t, time.Monday, Weekday(instant, time.UTC))
}
