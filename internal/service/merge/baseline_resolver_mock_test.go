package merge

import (
	"context"
	"github.com/streletskiy/archimap-sub000/internal/domain"
	"sync"
)

var _ baselineResolver = &baselineResolverMock{}

type baselineResolverMock struct {
	ResolveForUpdateFunc func(ctx context.Context, entity domain.EntityID) (*domain.Baseline, error)

	calls struct {
		ResolveForUpdate []struct {
			Ctx    context.Context
			Entity domain.EntityID
		}
	}
	lockResolveForUpdate sync.RWMutex
}

func (mock *baselineResolverMock) ResolveForUpdate(ctx context.Context, entity domain.EntityID) (*domain.Baseline, error) {
	if mock.ResolveForUpdateFunc == nil {
		panic("baselineResolverMock.ResolveForUpdateFunc: method is nil but baselineResolver.ResolveForUpdate was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Entity domain.EntityID
	}{Ctx: ctx, Entity: entity}
	mock.lockResolveForUpdate.Lock()
	mock.calls.ResolveForUpdate = append(mock.calls.ResolveForUpdate, callInfo)
	mock.lockResolveForUpdate.Unlock()
	return mock.ResolveForUpdateFunc(ctx, entity)
}

func (mock *baselineResolverMock) ResolveForUpdateCalls() []struct {
	Ctx    context.Context
	Entity domain.EntityID
} {
	mock.lockResolveForUpdate.RLock()
	calls := mock.calls.ResolveForUpdate
	mock.lockResolveForUpdate.RUnlock()
	return calls
}
