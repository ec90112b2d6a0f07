package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/IB-AvailabilityService/internal/domain"
	storage "github.com/m04kA/IB-AvailabilityService/internal/infra/storage/booking"
	"github.com/m04kA/IB-AvailabilityService/internal/integrations/profileservice"
	"github.com/m04kA/IB-AvailabilityService/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	byID       map[int64]*domain.Booking
	byToken    map[uuid.UUID]*domain.Booking
	listed     []*domain.Booking
	lastFilter domain.ProfileBookingsFilter

	cancelledID     int64
	cancelledStatus domain.BookingStatus
	cancelledReason string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if b, ok := f.byID[id]; ok {
		return b, nil
	}
	return nil, storage.ErrBookingNotFound
}

func (f *fakeBookingRepo) GetByManageToken(_ context.Context, token uuid.UUID) (*domain.Booking, error) {
	if b, ok := f.byToken[token]; ok {
		return b, nil
	}
	return nil, storage.ErrBookingNotFound
}

func (f *fakeBookingRepo) GetByProfileWithFilter(_ context.Context, filter domain.ProfileBookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	return f.listed, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, reason string) error {
	f.cancelledID = id
	f.cancelledStatus = status
	f.cancelledReason = reason
	return nil
}

type fakeProfileClient struct {
	profile *profileservice.Profile
	err     error
}

func (f *fakeProfileClient) GetProfile(_ context.Context, _ int64) (*profileservice.Profile, error) {
	return f.profile, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func confirmedBooking(id int64) *domain.Booking {
	start := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:              id,
		ProfileID:       1,
		RecruiterName:   "Jane Doe",
		RecruiterEmail:  "jane@corp.example",
		StartTime:       start,
		EndTime:         start.Add(30 * time.Minute),
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
		ManageToken:     uuid.New(),
	}
}

func ownedProfile() *fakeProfileClient {
	return &fakeProfileClient{profile: &profileservice.Profile{ID: 1, OwnerID: 10}}
}

func TestGetByManageToken(t *testing.T) {
	booking := confirmedBooking(5)
	repo := &fakeBookingRepo{byToken: map[uuid.UUID]*domain.Booking{booking.ManageToken: booking}}
	svc := NewService(repo, ownedProfile(), nopLogger{})

	t.Run("found", func(t *testing.T) {
		resp, err := svc.GetByManageToken(context.Background(), booking.ManageToken)
		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.ID)
		assert.Equal(t, "2026-01-05T10:00:00Z", resp.StartTime)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := svc.GetByManageToken(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestGetProfileBookings(t *testing.T) {
	repo := &fakeBookingRepo{listed: []*domain.Booking{confirmedBooking(1), confirmedBooking(2)}}
	svc := NewService(repo, ownedProfile(), nopLogger{})

	t.Run("owner gets list", func(t *testing.T) {
		resp, err := svc.GetProfileBookings(context.Background(), &models.GetProfileBookingsRequest{
			UserID:    10,
			ProfileID: 1,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})

	t.Run("status filter passed to repo", func(t *testing.T) {
		status := string(domain.StatusConfirmed)
		_, err := svc.GetProfileBookings(context.Background(), &models.GetProfileBookingsRequest{
			UserID:    10,
			ProfileID: 1,
			Status:    &status,
		})
		require.NoError(t, err)
		require.NotNil(t, repo.lastFilter.Status)
		assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		status := "pending"
		_, err := svc.GetProfileBookings(context.Background(), &models.GetProfileBookingsRequest{
			UserID:    10,
			ProfileID: 1,
			Status:    &status,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("non-owner denied", func(t *testing.T) {
		_, err := svc.GetProfileBookings(context.Background(), &models.GetProfileBookingsRequest{
			UserID:    99,
			ProfileID: 1,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestCancelByOwner(t *testing.T) {
	t.Run("owner cancels", func(t *testing.T) {
		booking := confirmedBooking(7)
		repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{7: booking}}
		svc := NewService(repo, ownedProfile(), nopLogger{})

		err := svc.CancelByOwner(context.Background(), 7, &models.CancelByOwnerRequest{
			UserID:             10,
			CancellationReason: "нашли кандидата",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(7), repo.cancelledID)
		assert.Equal(t, domain.StatusCancelledByOwner, repo.cancelledStatus)
		assert.Equal(t, "нашли кандидата", repo.cancelledReason)
	})

	t.Run("non-owner denied", func(t *testing.T) {
		repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{7: confirmedBooking(7)}}
		svc := NewService(repo, ownedProfile(), nopLogger{})

		err := svc.CancelByOwner(context.Background(), 7, &models.CancelByOwnerRequest{UserID: 99})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Zero(t, repo.cancelledID)
	})

	t.Run("already cancelled", func(t *testing.T) {
		booking := confirmedBooking(7)
		booking.Status = domain.StatusCancelledByRecruiter
		repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{7: booking}}
		svc := NewService(repo, ownedProfile(), nopLogger{})

		err := svc.CancelByOwner(context.Background(), 7, &models.CancelByOwnerRequest{UserID: 10})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("missing booking", func(t *testing.T) {
		svc := NewService(&fakeBookingRepo{}, ownedProfile(), nopLogger{})

		err := svc.CancelByOwner(context.Background(), 404, &models.CancelByOwnerRequest{UserID: 10})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestCancelByToken(t *testing.T) {
	t.Run("recruiter cancels", func(t *testing.T) {
		booking := confirmedBooking(3)
		repo := &fakeBookingRepo{byToken: map[uuid.UUID]*domain.Booking{booking.ManageToken: booking}}
		svc := NewService(repo, ownedProfile(), nopLogger{})

		err := svc.CancelByToken(context.Background(), booking.ManageToken, &models.CancelByTokenRequest{
			CancellationReason: "планы изменились",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelledByRecruiter, repo.cancelledStatus)
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		booking := confirmedBooking(3)
		booking.Status = domain.StatusCompleted
		repo := &fakeBookingRepo{byToken: map[uuid.UUID]*domain.Booking{booking.ManageToken: booking}}
		svc := NewService(repo, ownedProfile(), nopLogger{})

		err := svc.CancelByToken(context.Background(), booking.ManageToken, &models.CancelByTokenRequest{})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("unknown token", func(t *testing.T) {
		svc := NewService(&fakeBookingRepo{}, ownedProfile(), nopLogger{})

		err := svc.CancelByToken(context.Background(), uuid.New(), &models.CancelByTokenRequest{})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}
