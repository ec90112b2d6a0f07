package availability

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/IB-AvailabilityService/internal/domain"
	storage "github.com/m04kA/IB-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/IB-AvailabilityService/internal/integrations/profileservice"
	"github.com/m04kA/IB-AvailabilityService/internal/service/availability/models"
)

type fakeRepo struct {
	record   *domain.AvailabilityRecord
	getErr   error
	upserted *domain.AvailabilityRecord
	deleted  bool
}

func (f *fakeRepo) GetByProfileID(_ context.Context, _ int64) (*domain.AvailabilityRecord, error) {
	return f.record, f.getErr
}

func (f *fakeRepo) Upsert(_ context.Context, r *domain.AvailabilityRecord) (*domain.AvailabilityRecord, error) {
	f.upserted = r
	out := *r
	return &out, nil
}

func (f *fakeRepo) DeleteByProfileID(_ context.Context, _ int64) error {
	f.deleted = true
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

func ownedProfile() *fakeProfileClient {
	return &fakeProfileClient{profile: &profileservice.Profile{ID: 1, OwnerID: 10}}
}

func TestGet_ReturnsDefaultsWhenMissing(t *testing.T) {
	svc := NewService(&fakeRepo{getErr: storage.ErrRecordNotFound}, ownedProfile(), nopLogger{})

	resp, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ProfileID)
	assert.Equal(t, domain.CreateDefaultAvailability().Rules, resp.Rules)
	for _, day := range resp.Weekly {
		assert.False(t, day.Enabled)
	}
}

func TestGet_NormalizesStoredPayload(t *testing.T) {
	// Запись с мусорным блоком: чтение отдаёт каноническую форму
	record := &domain.AvailabilityRecord{
		ProfileID: 1,
		Payload: []byte(`{"weekly":{"mon":{"enabled":true,"blocks":[
			{"start":"25:00","end":"26:00"},
			{"start":"09:00","end":"12:00"}
		]}}}`),
	}
	svc := NewService(&fakeRepo{record: record}, ownedProfile(), nopLogger{})

	resp, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, resp.Weekly[domain.Monday].Blocks, 1)
	assert.True(t, resp.Weekly[domain.Monday].Enabled)
}

func TestUpdate_OwnerOnly(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, ownedProfile(), nopLogger{})

	req := &models.UpdateAvailabilityRequest{
		UserID:    99, // не владелец
		ProfileID: 1,
		Payload:   json.RawMessage(`{}`),
	}

	_, err := svc.Update(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.upserted)
}

func TestUpdate_NormalizesBeforePersisting(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, ownedProfile(), nopLogger{})

	req := &models.UpdateAvailabilityRequest{
		UserID:    10,
		ProfileID: 1,
		Payload: json.RawMessage(`{"timezone":"UTC","weekly":{"fri":{"enabled":true,"blocks":[
			{"start":"14:00","end":"13:00"}
		]}},"rules":{"dailyCap":""}}`),
	}

	resp, err := svc.Update(context.Background(), req)
	require.NoError(t, err)

	// В БД ушла каноническая форма без невалидного блока
	require.NotNil(t, repo.upserted)
	assert.Equal(t, int64(10), repo.upserted.OwnerID)

	stored := domain.NormalizeAvailabilityJSON(repo.upserted.Payload)
	assert.Empty(t, stored.Weekly[domain.Friday].Blocks)
	assert.True(t, stored.Weekly[domain.Friday].Enabled)
	assert.Equal(t, 0, stored.Rules.DailyCap)

	assert.Empty(t, resp.Weekly[domain.Friday].Blocks)
}

func TestUpdate_RejectsUnresolvableTimezone(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, ownedProfile(), nopLogger{})

	req := &models.UpdateAvailabilityRequest{
		UserID:    10,
		ProfileID: 1,
		Payload:   json.RawMessage(`{"timezone":"Mars/Olympus_Mons"}`),
	}

	_, err := svc.Update(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, repo.upserted)
}

func TestUpdate_ProfileNotFound(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeProfileClient{err: profileservice.ErrProfileNotFound}, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateAvailabilityRequest{
		UserID: 10, ProfileID: 1, Payload: json.RawMessage(`{}`),
	})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestDelete(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo, ownedProfile(), nopLogger{})

		require.NoError(t, svc.Delete(context.Background(), 1, 10))
		assert.True(t, repo.deleted)
	})

	t.Run("non-owner denied", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo, ownedProfile(), nopLogger{})

		err := svc.Delete(context.Background(), 1, 99)
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.False(t, repo.deleted)
	})
}
