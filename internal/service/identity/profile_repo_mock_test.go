package identity

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

var _ profileRepo = &profileRepoMock{}

type profileRepoMock struct {
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.Profile, error)
	UpsertFunc     func(ctx context.Context, p domain.Profile) (*domain.Profile, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByEmail []struct {
			Ctx   context.Context
			Email string
		}
		Upsert []struct {
			Ctx context.Context
			P   domain.Profile
		}
	}
	lockGetByID    sync.RWMutex
	lockGetByEmail sync.RWMutex
	lockUpsert     sync.RWMutex
}

func (mock *profileRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	if mock.GetByIDFunc == nil {
		panic("profileRepoMock.GetByIDFunc: method is nil but profileRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *profileRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *profileRepoMock) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	if mock.GetByEmailFunc == nil {
		panic("profileRepoMock.GetByEmailFunc: method is nil but profileRepo.GetByEmail was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Email string
	}{Ctx: ctx, Email: email}
	mock.lockGetByEmail.Lock()
	mock.calls.GetByEmail = append(mock.calls.GetByEmail, callInfo)
	mock.lockGetByEmail.Unlock()
	return mock.GetByEmailFunc(ctx, email)
}

func (mock *profileRepoMock) GetByEmailCalls() []struct {
	Ctx   context.Context
	Email string
} {
	mock.lockGetByEmail.RLock()
	calls := mock.calls.GetByEmail
	mock.lockGetByEmail.RUnlock()
	return calls
}

func (mock *profileRepoMock) Upsert(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	if mock.UpsertFunc == nil {
		panic("profileRepoMock.UpsertFunc: method is nil but profileRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.Profile
	}{Ctx: ctx, P: p}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, p)
}

func (mock *profileRepoMock) UpsertCalls() []struct {
	Ctx context.Context
	P   domain.Profile
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}
