package generate_slots

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/IB-AvailabilityService/internal/domain"
	storage "github.com/m04kA/IB-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/IB-AvailabilityService/internal/integrations/profileservice"
)

// Фейки контрактов use case

type fakeAvailabilityRepo struct {
	record *domain.AvailabilityRecord
	err    error
}

func (f *fakeAvailabilityRepo) GetByProfileID(_ context.Context, _ int64) (*domain.AvailabilityRecord, error) {
	return f.record, f.err
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
	filter   domain.ProfileBookingsFilter
}

func (f *fakeBookingRepo) GetByProfileWithFilter(_ context.Context, filter domain.ProfileBookingsFilter) ([]*domain.Booking, error) {
	f.filter = filter
	return f.bookings, f.err
}

type fakeProfileClient struct {
	profile *profileservice.Profile
	err     error
}

func (f *fakeProfileClient) GetProfile(_ context.Context, _ int64) (*profileservice.Profile, error) {
	return f.profile, f.err
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func recordFor(t *testing.T, model domain.AvailabilityModel) *domain.AvailabilityRecord {
	t.Helper()
	payload, err := json.Marshal(model)
	require.NoError(t, err)
	return &domain.AvailabilityRecord{ProfileID: 1, OwnerID: 10, Payload: payload}
}

func newTestUseCase(avail *fakeAvailabilityRepo, book *fakeBookingRepo, prof *fakeProfileClient, now time.Time) *UseCase {
	uc := NewUseCase(avail, book, prof, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_GeneratesSlots(t *testing.T) {
	model := mondayModel()
	uc := newTestUseCase(
		&fakeAvailabilityRepo{record: recordFor(t, model)},
		&fakeBookingRepo{},
		&fakeProfileClient{profile: &profileservice.Profile{ID: 1, OwnerID: 10}},
		mondayMidnightUTC,
	)

	resp, err := uc.Execute(context.Background(), &Request{ProfileID: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ProfileID)
	assert.Equal(t, "UTC", resp.Timezone)
	require.Len(t, resp.Days, 1)
	assert.Len(t, resp.Days[0].Slots, 6)
}

func TestExecute_ProfileNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{},
		&fakeBookingRepo{},
		&fakeProfileClient{err: profileservice.ErrProfileNotFound},
		mondayMidnightUTC,
	)

	_, err := uc.Execute(context.Background(), &Request{ProfileID: 1})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestExecute_NoRecordMeansNoSlots(t *testing.T) {
	// Профиль есть, расписания нет: дефолтная модель со всеми
	// выключенными днями не даёт ни одного слота
	uc := newTestUseCase(
		&fakeAvailabilityRepo{err: storage.ErrRecordNotFound},
		&fakeBookingRepo{},
		&fakeProfileClient{profile: &profileservice.Profile{ID: 1, OwnerID: 10}},
		mondayMidnightUTC,
	)

	resp, err := uc.Execute(context.Background(), &Request{ProfileID: 1})
	require.NoError(t, err)
	assert.Empty(t, resp.Days)
}

func TestExecute_DurationOverride(t *testing.T) {
	model := mondayModel()
	model.Rules.AllowedDurationsMinutes = []int{30, 60}
	avail := &fakeAvailabilityRepo{record: recordFor(t, model)}
	prof := &fakeProfileClient{profile: &profileservice.Profile{ID: 1, OwnerID: 10}}

	t.Run("allowed duration narrows the list", func(t *testing.T) {
		uc := newTestUseCase(avail, &fakeBookingRepo{}, prof, mondayMidnightUTC)
		duration := 60

		resp, err := uc.Execute(context.Background(), &Request{ProfileID: 1, DurationMinutes: &duration})
		require.NoError(t, err)
		require.Len(t, resp.Days, 1)
		for _, s := range resp.Days[0].Slots {
			assert.Equal(t, 60, s.DurationMinutes)
		}
	})

	t.Run("disallowed duration rejected", func(t *testing.T) {
		uc := newTestUseCase(avail, &fakeBookingRepo{}, prof, mondayMidnightUTC)
		duration := 45

		_, err := uc.Execute(context.Background(), &Request{ProfileID: 1, DurationMinutes: &duration})
		assert.ErrorIs(t, err, ErrDurationNotAllowed)
	})
}

func TestExecute_DaysNarrowsWindow(t *testing.T) {
	model := mondayModel()
	// Понедельник и вторник с одинаковым блоком
	model.Weekly[domain.Tuesday] = domain.DaySchedule{
		Enabled: true,
		Blocks:  []domain.TimeBlock{block("09:00", "12:00")},
	}
	model.Rules.WindowDays = 30

	uc := newTestUseCase(
		&fakeAvailabilityRepo{record: recordFor(t, model)},
		&fakeBookingRepo{},
		&fakeProfileClient{profile: &profileservice.Profile{ID: 1, OwnerID: 10}},
		mondayMidnightUTC,
	)
	days := 0

	resp, err := uc.Execute(context.Background(), &Request{ProfileID: 1, Days: &days})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, "2026-01-05", resp.Days[0].Date)
}

func TestExecute_FromHidesEarlierDays(t *testing.T) {
	model := mondayModel()
	model.Weekly[domain.Tuesday] = domain.DaySchedule{
		Enabled: true,
		Blocks:  []domain.TimeBlock{block("09:00", "12:00")},
	}
	model.Rules.WindowDays = 1

	uc := newTestUseCase(
		&fakeAvailabilityRepo{record: recordFor(t, model)},
		&fakeBookingRepo{},
		&fakeProfileClient{profile: &profileservice.Profile{ID: 1, OwnerID: 10}},
		mondayMidnightUTC,
	)
	from := time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), &Request{ProfileID: 1, From: &from})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, "2026-01-06", resp.Days[0].Date)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeAvailabilityRepo{}, &fakeBookingRepo{}, &fakeProfileClient{}, mondayMidnightUTC)

	_, err := uc.Execute(context.Background(), &Request{ProfileID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	badDays := -1
	_, err = uc.Execute(context.Background(), &Request{ProfileID: 1, Days: &badDays})
	assert.ErrorIs(t, err, ErrInvalidInput)

	badDuration := 0
	_, err = uc.Execute(context.Background(), &Request{ProfileID: 1, DurationMinutes: &badDuration})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_BookingsWindowCoversGeneration(t *testing.T) {
	model := mondayModel()
	model.Rules.WindowDays = 5
	book := &fakeBookingRepo{}

	uc := newTestUseCase(
		&fakeAvailabilityRepo{record: recordFor(t, model)},
		book,
		&fakeProfileClient{profile: &profileservice.Profile{ID: 1, OwnerID: 10}},
		mondayMidnightUTC,
	)

	_, err := uc.Execute(context.Background(), &Request{ProfileID: 1})
	require.NoError(t, err)

	// Окно запроса бронирований накрывает окно генерации с запасом
	require.NotNil(t, book.filter.StartTime)
	require.NotNil(t, book.filter.EndTime)
	assert.True(t, book.filter.StartTime.Before(mondayMidnightUTC))
	assert.True(t, book.filter.EndTime.After(mondayMidnightUTC.AddDate(0, 0, 5)))
	assert.False(t, book.filter.IncludeInactive)
}
