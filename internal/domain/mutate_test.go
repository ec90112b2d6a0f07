package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/IB-AvailabilityService/pkg/types"
)

func tb(start, end string) TimeBlock {
	return TimeBlock{Start: types.TimeString(start), End: types.TimeString(end)}
}

func modelWithMonday(blocks ...TimeBlock) AvailabilityModel {
	m := CreateDefaultAvailability()
	m.Weekly[Monday] = DaySchedule{Enabled: true, Blocks: append([]TimeBlock{}, blocks...)}
	return m
}

func TestSetDayEnabled(t *testing.T) {
	m := CreateDefaultAvailability()

	next, err := m.SetDayEnabled(Wednesday, true)
	require.NoError(t, err)
	assert.True(t, next.Weekly[Wednesday].Enabled)
	// Исходная модель не изменилась
	assert.False(t, m.Weekly[Wednesday].Enabled)

	_, err = m.SetDayEnabled(Weekday(7), true)
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}

func TestAddBlock(t *testing.T) {
	m := modelWithMonday(tb("09:00", "12:00"))

	t.Run("appends sorted", func(t *testing.T) {
		next, err := m.AddBlock(Monday, tb("07:00", "08:00"))
		require.NoError(t, err)
		require.Len(t, next.Weekly[Monday].Blocks, 2)
		assert.Equal(t, tb("07:00", "08:00"), next.Weekly[Monday].Blocks[0])
	})

	t.Run("touching allowed", func(t *testing.T) {
		next, err := m.AddBlock(Monday, tb("12:00", "13:00"))
		require.NoError(t, err)
		assert.Len(t, next.Weekly[Monday].Blocks, 2)
	})

	t.Run("overlap rejected with model unchanged", func(t *testing.T) {
		next, err := m.AddBlock(Monday, tb("11:00", "13:00"))
		assert.ErrorIs(t, err, ErrBlockOverlap)
		assert.Equal(t, m, next)
		assert.Len(t, next.Weekly[Monday].Blocks, 1)
	})

	t.Run("invalid block rejected", func(t *testing.T) {
		_, err := m.AddBlock(Monday, tb("12:00", "10:00"))
		assert.ErrorIs(t, err, ErrInvalidBlock)

		_, err = m.AddBlock(Monday, tb("25:00", "26:00"))
		assert.ErrorIs(t, err, ErrInvalidBlock)
	})

	t.Run("invalid weekday", func(t *testing.T) {
		_, err := m.AddBlock(Weekday(-1), tb("09:00", "10:00"))
		assert.ErrorIs(t, err, ErrInvalidWeekday)
	})
}

func TestRemoveBlock(t *testing.T) {
	m := modelWithMonday(tb("09:00", "10:00"), tb("11:00", "12:00"))

	next, err := m.RemoveBlock(Monday, 0)
	require.NoError(t, err)
	require.Len(t, next.Weekly[Monday].Blocks, 1)
	assert.Equal(t, tb("11:00", "12:00"), next.Weekly[Monday].Blocks[0])
	// Исходная модель не изменилась
	assert.Len(t, m.Weekly[Monday].Blocks, 2)

	// Индекс вне диапазона - явная ошибка, не тихий no-op
	_, err = m.RemoveBlock(Monday, 2)
	assert.ErrorIs(t, err, ErrBlockIndexOutOfRange)

	_, err = m.RemoveBlock(Monday, -1)
	assert.ErrorIs(t, err, ErrBlockIndexOutOfRange)
}

func TestClearBlocks(t *testing.T) {
	m := modelWithMonday(tb("09:00", "10:00"))

	next, err := m.ClearBlocks(Monday)
	require.NoError(t, err)
	assert.Empty(t, next.Weekly[Monday].Blocks)
	assert.True(t, next.Weekly[Monday].Enabled)
	assert.Len(t, m.Weekly[Monday].Blocks, 1)
}

func TestCopyDayToAll(t *testing.T) {
	m := modelWithMonday(tb("09:00", "12:00"))
	m.Weekly[Friday] = DaySchedule{Enabled: false, Blocks: []TimeBlock{tb("14:00", "15:00")}}

	next, err := m.CopyDayToAll(Monday)
	require.NoError(t, err)

	for wd := Sunday; wd <= Saturday; wd++ {
		require.Len(t, next.Weekly[wd].Blocks, 1, "day %s", wd.Key())
		assert.Equal(t, tb("09:00", "12:00"), next.Weekly[wd].Blocks[0])
	}
	// Флаги enabled не трогаем
	assert.False(t, next.Weekly[Friday].Enabled)
	assert.True(t, next.Weekly[Monday].Enabled)

	// Копии независимы: правка одного дня не видна в другом
	next.Weekly[Tuesday].Blocks[0] = tb("20:00", "21:00")
	assert.Equal(t, tb("09:00", "12:00"), next.Weekly[Wednesday].Blocks[0])
}

func TestSetRules(t *testing.T) {
	m := CreateDefaultAvailability()

	next := m.SetRules(map[string]interface{}{
		"minNoticeHours": 2.0,
		"dailyCap":       4.0,
	})

	assert.Equal(t, 2, next.Rules.MinNoticeHours)
	assert.Equal(t, 4, next.Rules.DailyCap)
	// Не указанные в патче поля приходят из дефолтов
	assert.Equal(t, DefaultWindowDays, next.Rules.WindowDays)
	// Исходная модель не изменилась
	assert.Equal(t, DefaultMinNoticeHours, m.Rules.MinNoticeHours)
}

func TestSetException(t *testing.T) {
	m := CreateDefaultAvailability()

	t.Run("blocked", func(t *testing.T) {
		next, err := m.SetException(DateException{Date: "2026-02-14", Kind: ExceptionBlocked})
		require.NoError(t, err)
		require.Len(t, next.Exceptions, 1)
		assert.Nil(t, next.Exceptions[0].Blocks)
	})

	t.Run("override sorts blocks", func(t *testing.T) {
		next, err := m.SetException(DateException{
			Date: "2026-02-14",
			Kind: ExceptionOverride,
			Blocks: []TimeBlock{
				tb("14:00", "15:00"),
				tb("09:00", "10:00"),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, tb("09:00", "10:00"), next.Exceptions[0].Blocks[0])
	})

	t.Run("replaces same date", func(t *testing.T) {
		next, err := m.SetException(DateException{Date: "2026-02-14", Kind: ExceptionBlocked})
		require.NoError(t, err)
		next, err = next.SetException(DateException{
			Date:   "2026-02-14",
			Kind:   ExceptionOverride,
			Blocks: []TimeBlock{tb("10:00", "11:00")},
		})
		require.NoError(t, err)
		require.Len(t, next.Exceptions, 1)
		assert.Equal(t, ExceptionOverride, next.Exceptions[0].Kind)
	})

	t.Run("invalid date rejected", func(t *testing.T) {
		_, err := m.SetException(DateException{Date: "14.02.2026", Kind: ExceptionBlocked})
		assert.Error(t, err)
	})

	t.Run("overlapping override blocks rejected", func(t *testing.T) {
		_, err := m.SetException(DateException{
			Date: "2026-02-14",
			Kind: ExceptionOverride,
			Blocks: []TimeBlock{
				tb("09:00", "11:00"),
				tb("10:00", "12:00"),
			},
		})
		assert.ErrorIs(t, err, ErrBlockOverlap)
	})
}

func TestRemoveException(t *testing.T) {
	m := CreateDefaultAvailability()
	m.Exceptions = []DateException{
		{Date: "2026-02-01", Kind: ExceptionBlocked},
		{Date: "2026-02-02", Kind: ExceptionBlocked},
	}

	next := m.RemoveException("2026-02-01")
	require.Len(t, next.Exceptions, 1)
	assert.Equal(t, "2026-02-02", next.Exceptions[0].Date)

	// Отсутствующая дата - no-op
	next = next.RemoveException("2026-03-01")
	assert.Len(t, next.Exceptions, 1)
}
