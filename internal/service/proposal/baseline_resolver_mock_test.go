package proposal

import (
	"context"
	"github.com/streletskiy/archimap-sub000/internal/domain"
	"sync"
)

var _ baselineResolver = &baselineResolverMock{}

type baselineResolverMock struct {
	ResolveFunc     func(ctx context.Context, entity domain.EntityID) (*domain.Baseline, error)
	ResolveManyFunc func(ctx context.Context, entities []domain.EntityID) (map[domain.EntityID]domain.Baseline, error)

	calls struct {
		Resolve []struct {
			Ctx    context.Context
			Entity domain.EntityID
		}
		ResolveMany []struct {
			Ctx      context.Context
			Entities []domain.EntityID
		}
	}
	lockResolve     sync.RWMutex
	lockResolveMany sync.RWMutex
}

func (mock *baselineResolverMock) Resolve(ctx context.Context, entity domain.EntityID) (*domain.Baseline, error) {
	if mock.ResolveFunc == nil {
		panic("baselineResolverMock.ResolveFunc: method is nil but baselineResolver.Resolve was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Entity domain.EntityID
	}{Ctx: ctx, Entity: entity}
	mock.lockResolve.Lock()
	mock.calls.Resolve = append(mock.calls.Resolve, callInfo)
	mock.lockResolve.Unlock()
	return mock.ResolveFunc(ctx, entity)
}

func (mock *baselineResolverMock) ResolveCalls() []struct {
	Ctx    context.Context
	Entity domain.EntityID
} {
	mock.lockResolve.RLock()
	calls := mock.calls.Resolve
	mock.lockResolve.RUnlock()
	return calls
}

func (mock *baselineResolverMock) ResolveMany(ctx context.Context, entities []domain.EntityID) (map[domain.EntityID]domain.Baseline, error) {
	if mock.ResolveManyFunc == nil {
		panic("baselineResolverMock.ResolveManyFunc: method is nil but baselineResolver.ResolveMany was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Entities []domain.EntityID
	}{Ctx: ctx, Entities: entities}
	mock.lockResolveMany.Lock()
	mock.calls.ResolveMany = append(mock.calls.ResolveMany, callInfo)
	mock.lockResolveMany.Unlock()
	return mock.ResolveManyFunc(ctx, entities)
}

func (mock *baselineResolverMock) ResolveManyCalls() []struct {
	Ctx      context.Context
	Entities []domain.EntityID
} {
	mock.lockResolveMany.RLock()
	calls := mock.calls.ResolveMany
	mock.lockResolveMany.RUnlock()
	return calls
}
