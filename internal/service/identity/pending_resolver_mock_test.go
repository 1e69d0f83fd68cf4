package identity

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ pendingResolver = &pendingResolverMock{}

type pendingResolverMock struct {
	ResolvePendingForIdentityFunc func(ctx context.Context, identityID uuid.UUID, email string) (int, error)

	calls struct {
		ResolvePendingForIdentity []struct {
			Ctx        context.Context
			IdentityID uuid.UUID
			Email      string
		}
	}
	lockResolvePendingForIdentity sync.RWMutex
}

func (mock *pendingResolverMock) ResolvePendingForIdentity(ctx context.Context, identityID uuid.UUID, email string) (int, error) {
	if mock.ResolvePendingForIdentityFunc == nil {
		panic("pendingResolverMock.ResolvePendingForIdentityFunc: method is nil but pendingResolver.ResolvePendingForIdentity was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		IdentityID uuid.UUID
		Email      string
	}{Ctx: ctx, IdentityID: identityID, Email: email}
	mock.lockResolvePendingForIdentity.Lock()
	mock.calls.ResolvePendingForIdentity = append(mock.calls.ResolvePendingForIdentity, callInfo)
	mock.lockResolvePendingForIdentity.Unlock()
	return mock.ResolvePendingForIdentityFunc(ctx, identityID, email)
}

func (mock *pendingResolverMock) ResolvePendingForIdentityCalls() []struct {
	Ctx        context.Context
	IdentityID uuid.UUID
	Email      string
} {
	mock.lockResolvePendingForIdentity.RLock()
	calls := mock.calls.ResolvePendingForIdentity
	mock.lockResolvePendingForIdentity.RUnlock()
	return calls
}
