package generate_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/IB-AvailabilityService/internal/domain"
	storage "github.com/m04kA/IB-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/IB-AvailabilityService/internal/integrations/profileservice"
	"github.com/m04kA/IB-AvailabilityService/pkg/tzclock"
)

// UseCase use case для получения бронируемых слотов профиля
type UseCase struct {
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	profileClient    ProfileServiceClient
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	profileClient ProfileServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		profileClient:    profileClient,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case генерации слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: profile=%d", req.ProfileID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем существование профиля
	if _, err := uc.profileClient.GetProfile(ctx, req.ProfileID); err != nil {
		if errors.Is(err, profileservice.ErrProfileNotFound) {
			uc.logger.Warn("GenerateSlots: profile id=%d not found", req.ProfileID)
			return nil, ErrProfileNotFound
		}
		uc.logger.Error("GenerateSlots: failed to get profile id=%d: %v", req.ProfileID, err)
		return nil, fmt.Errorf("%w: failed to get profile: %v", ErrInternal, err)
	}

	// 4. Загружаем запись доступности. Отсутствие записи — не ошибка:
	// профиль без расписания просто не даёт слотов
	var model domain.AvailabilityModel
	record, err := uc.availabilityRepo.GetByProfileID(ctx, req.ProfileID)
	switch {
	case err == nil:
		model = record.Model()
	case errors.Is(err, storage.ErrRecordNotFound):
		uc.logger.Info("GenerateSlots: no availability record for profile=%d, using defaults", req.ProfileID)
		model = domain.CreateDefaultAvailability()
	default:
		uc.logger.Error("GenerateSlots: failed to load availability for profile=%d: %v", req.ProfileID, err)
		return nil, fmt.Errorf("%w: failed to load availability: %v", ErrInternal, err)
	}

	// 5. Применяем параметры запроса к правилам модели
	if req.Days != nil && *req.Days < model.Rules.WindowDays {
		model.Rules.WindowDays = *req.Days
	}
	if req.DurationMinutes != nil {
		if !durationAllowed(*req.DurationMinutes, model.Rules.AllowedDurationsMinutes) {
			uc.logger.Warn("GenerateSlots: duration %d not allowed for profile=%d",
				*req.DurationMinutes, req.ProfileID)
			return nil, ErrDurationNotAllowed
		}
		model.Rules.AllowedDurationsMinutes = []int{*req.DurationMinutes}
	}

	// 6. Загружаем активные бронирования на окно генерации
	// (с запасом в сутки с обеих сторон на сдвиги часовых поясов)
	windowStart := now.AddDate(0, 0, -1)
	windowEnd := now.AddDate(0, 0, model.Rules.WindowDays+2)
	bookings, err := uc.bookingRepo.GetByProfileWithFilter(ctx, domain.ProfileBookingsFilter{
		ProfileID:       req.ProfileID,
		StartTime:       &windowStart,
		EndTime:         &windowEnd,
		IncludeInactive: false,
	})
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to get bookings for profile=%d: %v", req.ProfileID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	existing := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		existing = append(existing, *b)
	}

	// 7. Генерируем слоты
	days, err := GenerateSlots(model, existing, now)
	if err != nil {
		// Единственная ожидаемая ошибка генератора — неразрешимый часовой
		// пояс в сохранённой записи. Это ошибка конфигурации, не запроса.
		uc.logger.Error("GenerateSlots: generation failed for profile=%d: %v", req.ProfileID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 8. Скрываем дни раньше запрошенной даты начала
	if req.From != nil {
		loc, locErr := model.Location()
		if locErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, locErr)
		}
		fromKey := tzclock.DateKey(*req.From, loc)
		filtered := days[:0]
		for _, d := range days {
			if d.Date >= fromKey {
				filtered = append(filtered, d)
			}
		}
		days = filtered
	}

	uc.logger.Info("GenerateSlots: generated %d day(s) of slots for profile=%d", len(days), req.ProfileID)

	return &Response{
		ProfileID: req.ProfileID,
		Timezone:  model.Timezone,
		Days:      days,
	}, nil
}
