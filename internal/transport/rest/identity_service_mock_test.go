package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/briefdesk-backend/internal/service/identity"
)

var _ identityService = &identityServiceMock{}

type identityServiceMock struct {
	SyncFunc func(ctx context.Context) (*identity.SyncResult, error)

	calls struct {
		Sync []struct {
			Ctx context.Context
		}
	}
	lockSync sync.RWMutex
}

func (mock *identityServiceMock) Sync(ctx context.Context) (*identity.SyncResult, error) {
	if mock.SyncFunc == nil {
		panic("identityServiceMock.SyncFunc: method is nil but identityService.Sync was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockSync.Lock()
	mock.calls.Sync = append(mock.calls.Sync, callInfo)
	mock.lockSync.Unlock()
	return mock.SyncFunc(ctx)
}

func (mock *identityServiceMock) SyncCalls() []struct {
	Ctx context.Context
} {
	mock.lockSync.RLock()
	calls := mock.calls.Sync
	mock.lockSync.RUnlock()
	return calls
}
