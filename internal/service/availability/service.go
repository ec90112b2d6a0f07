package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/IB-AvailabilityService/internal/domain"
	availabilityRepo "github.com/m04kA/IB-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/IB-AvailabilityService/internal/integrations/profileservice"
	"github.com/m04kA/IB-AvailabilityService/internal/service/availability/models"
)

// Service сервис для работы с моделью доступности профиля
type Service struct {
	availabilityRepo AvailabilityRepository
	profileClient    ProfileServiceClient
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	profileClient ProfileServiceClient,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		profileClient:    profileClient,
		logger:           logger,
	}
}

// Get возвращает модель доступности профиля в канонической форме.
// Профиль без сохранённой модели получает модель по умолчанию —
// чтение никогда не отличает "нет записи" от "пустое расписание"
func (s *Service) Get(ctx context.Context, profileID int64) (*models.AvailabilityResponse, error) {
	s.logger.Info("Get: fetching availability for profile=%d", profileID)

	record, err := s.availabilityRepo.GetByProfileID(ctx, profileID)
	switch {
	case err == nil:
		return models.FromDomainModel(profileID, record.Model()), nil
	case errors.Is(err, availabilityRepo.ErrRecordNotFound):
		s.logger.Info("Get: no record for profile=%d, returning defaults", profileID)
		return models.FromDomainModel(profileID, domain.CreateDefaultAvailability()), nil
	default:
		s.logger.Error("Get: repository error for profile=%d: %v", profileID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
}

// Update полностью заменяет модель доступности профиля.
// Доступно только владельцу профиля. Payload нормализуется перед
// сохранением, так что в БД попадает только каноническая форма
func (s *Service) Update(ctx context.Context, req *models.UpdateAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("Update: updating availability for profile=%d by user=%d", req.ProfileID, req.UserID)

	// Проверяем права доступа владельца
	profile, err := s.profileClient.GetProfile(ctx, req.ProfileID)
	if err != nil {
		if errors.Is(err, profileservice.ErrProfileNotFound) {
			s.logger.Warn("Update: profile id=%d not found", req.ProfileID)
			return nil, ErrProfileNotFound
		}
		s.logger.Error("Update: failed to get profile id=%d: %v", req.ProfileID, err)
		return nil, fmt.Errorf("%w: Update - failed to get profile: %v", ErrInternal, err)
	}
	if !profile.IsOwnedBy(req.UserID) {
		s.logger.Warn("Update: user=%d is not the owner of profile=%d", req.UserID, req.ProfileID)
		return nil, ErrAccessDenied
	}

	// Нормализуем присланную модель
	model := domain.NormalizeAvailabilityJSON(req.Payload)

	// Непроходимая таймзона — единственное, что нормализация не чинит
	if _, err := model.Location(); err != nil {
		s.logger.Warn("Update: unresolvable timezone %q for profile=%d", model.Timezone, req.ProfileID)
		return nil, fmt.Errorf("%w: unresolvable timezone %q", ErrInvalidInput, model.Timezone)
	}

	payload, err := json.Marshal(model)
	if err != nil {
		s.logger.Error("Update: failed to marshal model for profile=%d: %v", req.ProfileID, err)
		return nil, fmt.Errorf("%w: Update - failed to marshal model: %v", ErrInternal, err)
	}

	record, err := s.availabilityRepo.Upsert(ctx, &domain.AvailabilityRecord{
		ProfileID: req.ProfileID,
		OwnerID:   profile.OwnerID,
		Payload:   payload,
	})
	if err != nil {
		s.logger.Error("Update: repository error for profile=%d: %v", req.ProfileID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated availability for profile=%d", req.ProfileID)
	return models.FromDomainModel(req.ProfileID, record.Model()), nil
}

// Delete удаляет модель доступности профиля.
// Доступно только владельцу профиля; чтение после удаления вернёт модель
// по умолчанию
func (s *Service) Delete(ctx context.Context, profileID int64, userID int64) error {
	s.logger.Info("Delete: deleting availability for profile=%d by user=%d", profileID, userID)

	profile, err := s.profileClient.GetProfile(ctx, profileID)
	if err != nil {
		if errors.Is(err, profileservice.ErrProfileNotFound) {
			s.logger.Warn("Delete: profile id=%d not found", profileID)
			return ErrProfileNotFound
		}
		s.logger.Error("Delete: failed to get profile id=%d: %v", profileID, err)
		return fmt.Errorf("%w: Delete - failed to get profile: %v", ErrInternal, err)
	}
	if !profile.IsOwnedBy(userID) {
		s.logger.Warn("Delete: user=%d is not the owner of profile=%d", userID, profileID)
		return ErrAccessDenied
	}

	if err := s.availabilityRepo.DeleteByProfileID(ctx, profileID); err != nil {
		if errors.Is(err, availabilityRepo.ErrRecordNotFound) {
			// Удаление отсутствующей записи — не ошибка
			return nil
		}
		s.logger.Error("Delete: repository error for profile=%d: %v", profileID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted availability for profile=%d", profileID)
	return nil
}
