package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/IB-AvailabilityService/internal/domain"
	storage "github.com/m04kA/IB-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/IB-AvailabilityService/internal/integrations/profileservice"
	slotgen "github.com/m04kA/IB-AvailabilityService/internal/usecase/generate_slots"
	"github.com/m04kA/IB-AvailabilityService/pkg/tzclock"
)

// UseCase use case для создания бронирования
type UseCase struct {
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	profileClient    ProfileServiceClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	profileClient ProfileServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		profileClient:    profileClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности слота и запись выполняются в одной сериализуемой
// транзакции, чтобы два рекрутера не заняли один слот одновременно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: profile=%d, start=%s, duration=%d",
		req.ProfileID, req.StartTime.Format(time.RFC3339), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем существование профиля
	if _, err := uc.profileClient.GetProfile(ctx, req.ProfileID); err != nil {
		if errors.Is(err, profileservice.ErrProfileNotFound) {
			uc.logger.Warn("CreateBooking: profile id=%d not found", req.ProfileID)
			return nil, ErrProfileNotFound
		}
		uc.logger.Error("CreateBooking: failed to get profile id=%d: %v", req.ProfileID, err)
		return nil, fmt.Errorf("%w: failed to get profile: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 4. Выполняем проверку и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Загружаем модель доступности
		var model domain.AvailabilityModel
		record, err := uc.availabilityRepo.GetByProfileID(txCtx, req.ProfileID)
		switch {
		case err == nil:
			model = record.Model()
		case errors.Is(err, storage.ErrRecordNotFound):
			// Профиль без расписания не принимает бронирования
			uc.logger.Warn("CreateBooking: no availability record for profile=%d", req.ProfileID)
			return ErrSlotNotAvailable
		default:
			uc.logger.Error("CreateBooking: failed to load availability for profile=%d: %v", req.ProfileID, err)
			return fmt.Errorf("%w: failed to load availability: %v", ErrInternal, err)
		}

		// 4.2. Проверяем длительность против правил владельца
		if !containsDuration(model.Rules.AllowedDurationsMinutes, req.DurationMinutes) {
			uc.logger.Warn("CreateBooking: duration %d not allowed for profile=%d",
				req.DurationMinutes, req.ProfileID)
			return ErrDurationNotAllowed
		}

		loc, err := model.Location()
		if err != nil {
			uc.logger.Error("CreateBooking: bad timezone for profile=%d: %v", req.ProfileID, err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		// 4.3. Сужаем окно генерации до дня запрошенного слота
		dayIndex := calendarDaysBetween(now, req.StartTime, loc)
		if dayIndex < 0 || dayIndex > model.Rules.WindowDays {
			uc.logger.Warn("CreateBooking: requested date outside booking window: profile=%d, day_index=%d",
				req.ProfileID, dayIndex)
			return ErrSlotNotAvailable
		}
		model.Rules.WindowDays = dayIndex

		// 4.4. Загружаем активные бронирования вокруг запрошенного дня
		windowStart := req.StartTime.AddDate(0, 0, -1)
		windowEnd := req.StartTime.AddDate(0, 0, 1)
		bookings, err := uc.bookingRepo.GetByProfileWithFilter(txCtx, domain.ProfileBookingsFilter{
			ProfileID:       req.ProfileID,
			StartTime:       &windowStart,
			EndTime:         &windowEnd,
			IncludeInactive: false,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		existing := make([]domain.Booking, 0, len(bookings))
		for _, b := range bookings {
			existing = append(existing, *b)
		}

		// 4.5. Запрошенный слот обязан совпасть с одним из слотов,
		// которые генератор рекламирует для этого дня — так create и
		// список слотов не могут разойтись в семантике
		days, err := slotgen.GenerateSlots(model, existing, now)
		if err != nil {
			uc.logger.Error("CreateBooking: slot generation failed for profile=%d: %v", req.ProfileID, err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		dayKey := tzclock.DateKey(req.StartTime, loc)
		if !slotOffered(days, dayKey, req.StartTime, req.DurationMinutes) {
			uc.logger.Warn("CreateBooking: slot not available: profile=%d, start=%s",
				req.ProfileID, req.StartTime.Format(time.RFC3339))
			return ErrSlotNotAvailable
		}

		// 4.6. Создаем бронирование
		booking := &domain.Booking{
			ProfileID:       req.ProfileID,
			RecruiterName:   req.RecruiterName,
			RecruiterEmail:  req.RecruiterEmail,
			StartTime:       req.StartTime,
			EndTime:         req.StartTime.Add(time.Duration(req.DurationMinutes) * time.Minute),
			DurationMinutes: req.DurationMinutes,
			Status:          domain.StatusConfirmed,
			ManageToken:     uuid.New(),
			Notes:           req.Notes,
		}

		result, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: booking id=%d created for profile=%d", result.ID, req.ProfileID)
	return fromDomain(result), nil
}

// containsDuration проверяет вхождение длительности в список
func containsDuration(allowed []int, duration int) bool {
	for _, d := range allowed {
		if d == duration {
			return true
		}
	}
	return false
}

// slotOffered ищет слот с точным началом и длительностью среди
// сгенерированных на день
func slotOffered(days []domain.DaySlots, dayKey string, start time.Time, duration int) bool {
	for _, d := range days {
		if d.Date != dayKey {
			continue
		}
		for _, s := range d.Slots {
			if s.StartTime.Equal(start) && s.DurationMinutes == duration {
				return true
			}
		}
	}
	return false
}

// calendarDaysBetween число календарных дней между датами a и b в зоне loc
// (отрицательное, если b раньше a)
func calendarDaysBetween(a, b time.Time, loc *time.Location) int {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	aMid := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bMid := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bMid.Sub(aMid) / (24 * time.Hour))
}
