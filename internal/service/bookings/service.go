package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/IB-AvailabilityService/internal/domain"
	bookingRepo "github.com/m04kA/IB-AvailabilityService/internal/infra/storage/booking"
	"github.com/m04kA/IB-AvailabilityService/internal/integrations/profileservice"
	"github.com/m04kA/IB-AvailabilityService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo   BookingRepository
	profileClient ProfileServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	profileClient ProfileServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		profileClient: profileClient,
		logger:        logger,
	}
}

// GetByManageToken получает бронирование по manage-токену.
// Токен сам по себе является доказательством права доступа — рекрутер
// получает его в письме-подтверждении
func (s *Service) GetByManageToken(ctx context.Context, token uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByManageToken: fetching booking by token")

	booking, err := s.bookingRepo.GetByManageToken(ctx, token)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByManageToken: booking not found")
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByManageToken: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByManageToken - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByManageToken: successfully fetched booking id=%d", booking.ID)
	return models.FromDomainBooking(booking), nil
}

// GetProfileBookings получает бронирования профиля с гибкой фильтрацией.
// Доступно только владельцу профиля
func (s *Service) GetProfileBookings(ctx context.Context, req *models.GetProfileBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetProfileBookings: fetching bookings for profile=%d, user=%d", req.ProfileID, req.UserID)

	// Проверяем права доступа владельца
	if err := s.checkOwnerAccess(ctx, req.ProfileID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProfileBookings: invalid filter for profile=%d: %v", req.ProfileID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByProfileWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProfileBookings: repository error for profile=%d: %v", req.ProfileID, err)
		return nil, fmt.Errorf("%w: GetProfileBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProfileBookings: successfully fetched %d bookings for profile=%d", len(bookings), req.ProfileID)
	return models.FromDomainBookingList(bookings), nil
}

// CancelByOwner отменяет бронирование от имени владельца профиля.
// Доступно только владельцу профиля, статус — cancelled_by_owner
func (s *Service) CancelByOwner(ctx context.Context, bookingID int64, req *models.CancelByOwnerRequest) error {
	s.logger.Info("CancelByOwner: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("CancelByOwner: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("CancelByOwner: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: CancelByOwner - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа владельца профиля бронирования
	if err := s.checkOwnerAccess(ctx, booking.ProfileID, req.UserID); err != nil {
		s.logger.Warn("CancelByOwner: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return err
	}

	return s.cancel(ctx, booking, domain.StatusCancelledByOwner, req.CancellationReason)
}

// CancelByToken отменяет бронирование по manage-токену рекрутера.
// Статус — cancelled_by_recruiter
func (s *Service) CancelByToken(ctx context.Context, token uuid.UUID, req *models.CancelByTokenRequest) error {
	s.logger.Info("CancelByToken: cancelling booking by token")

	booking, err := s.bookingRepo.GetByManageToken(ctx, token)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("CancelByToken: booking not found")
			return ErrBookingNotFound
		}
		s.logger.Error("CancelByToken: repository error: %v", err)
		return fmt.Errorf("%w: CancelByToken - repository error: %v", ErrInternal, err)
	}

	return s.cancel(ctx, booking, domain.StatusCancelledByRecruiter, req.CancellationReason)
}

// Вспомогательные методы

// cancel выполняет отмену с проверкой текущего статуса
func (s *Service) cancel(ctx context.Context, booking *domain.Booking, status domain.BookingStatus, reason string) error {
	if !booking.CanBeCancelled() {
		s.logger.Warn("cancel: booking id=%d cannot be cancelled, status=%s", booking.ID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, booking.ID, status, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("cancel: booking id=%d not found during cancellation", booking.ID)
			return ErrBookingNotFound
		}
		s.logger.Error("cancel: repository error for booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("cancel: successfully cancelled booking id=%d with status=%s", booking.ID, status)
	return nil
}

// checkOwnerAccess проверяет, что пользователь является владельцем профиля
func (s *Service) checkOwnerAccess(ctx context.Context, profileID int64, userID int64) error {
	profile, err := s.profileClient.GetProfile(ctx, profileID)
	if err != nil {
		if errors.Is(err, profileservice.ErrProfileNotFound) {
			s.logger.Warn("checkOwnerAccess: profile id=%d not found", profileID)
			return ErrProfileNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get profile id=%d: %v", profileID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get profile: %v", ErrInternal, err)
	}

	if !profile.IsOwnedBy(userID) {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of profile=%d", userID, profileID)
		return ErrAccessDenied
	}

	return nil
}
